package image

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"mime/multipart"

	"github.com/chai2010/webp"
)

const MaxAvatarSize = 5 * 1024 * 1024 // 5MB

var AllowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
}

// ProcessAvatar decodes an uploaded image and normalizes it to lossy webp.
func ProcessAvatar(file *multipart.FileHeader) (*bytes.Buffer, string, error) {
	if file.Size > MaxAvatarSize {
		return nil, "", fmt.Errorf("image too large: max %d bytes", MaxAvatarSize)
	}

	if contentType := file.Header.Get("Content-Type"); !AllowedImageTypes[contentType] {
		return nil, "", fmt.Errorf("unsupported image type: %s", contentType)
	}

	src, err := file.Open()
	if err != nil {
		return nil, "", fmt.Errorf("could not open file: %v", err)
	}
	defer src.Close()

	img, _, err := image.Decode(src)
	if err != nil {
		return nil, "", fmt.Errorf("could not decode image: %v", err)
	}

	buf := new(bytes.Buffer)
	if err := webp.Encode(buf, img, &webp.Options{Lossless: false, Quality: 85}); err != nil {
		return nil, "", fmt.Errorf("could not encode image: %v", err)
	}

	return buf, "image/webp", nil
}
