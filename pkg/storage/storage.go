package storage

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/gosimple/slug"

	"onehux_backend/pkg/config"
)

var storageCfg config.StorageConfig

func Init(cfg *config.Config) {
	storageCfg = cfg.Storage
}

func getS3Client() (*s3.Client, error) {
	cfg, err := awsconfig.LoadDefaultConfig(context.TODO(),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			storageCfg.AccessKey,
			storageCfg.SecretKey,
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("unable to load SDK config: %v", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(fmt.Sprintf("https://%s.r2.cloudflarestorage.com", storageCfg.AccountID))
		o.UsePathStyle = true
		o.Region = "auto"
	})

	return client, nil
}

// UploadAvatar stores a processed avatar under avatars/<username>/ and returns
// its public URL.
func UploadAvatar(username string, body *bytes.Buffer, contentType string) (string, error) {
	safeUsername := slug.Make(username)
	uniqueID := fmt.Sprintf("%d-%s", time.Now().UnixNano(), uuid.New().String())
	objectKey := fmt.Sprintf("avatars/%s/%s.webp", safeUsername, uniqueID)

	client, err := getS3Client()
	if err != nil {
		return "", err
	}

	input := &s3.PutObjectInput{
		Bucket:      aws.String(storageCfg.Bucket),
		Key:         aws.String(objectKey),
		Body:        bytes.NewReader(body.Bytes()),
		ContentType: aws.String(contentType),
	}

	if _, err := client.PutObject(context.TODO(), input); err != nil {
		return "", fmt.Errorf("could not upload avatar: %v", err)
	}

	return fmt.Sprintf("%s/%s", storageCfg.PublicBaseURL, objectKey), nil
}

// DeleteObject removes a previously uploaded file given its public URL.
func DeleteObject(fullURL string) error {
	objectKey := strings.TrimPrefix(fullURL, storageCfg.PublicBaseURL+"/")

	client, err := getS3Client()
	if err != nil {
		return err
	}

	input := &s3.DeleteObjectInput{
		Bucket: aws.String(storageCfg.Bucket),
		Key:    aws.String(objectKey),
	}

	if _, err := client.DeleteObject(context.TODO(), input); err != nil {
		return fmt.Errorf("could not delete object: %v", err)
	}

	return nil
}
