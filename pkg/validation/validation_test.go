package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidPhone(t *testing.T) {
	valid := []string{
		"",
		"+15551234567",
		"5551234567",
		"+1 (555) 123-4567",
		"555-123-4567",
		"+442071234567",
	}
	for _, phone := range valid {
		assert.True(t, ValidPhone(phone), phone)
	}

	invalid := []string{
		"12345",
		"not-a-phone",
		"+1234567890123456789",
		"555 123",
	}
	for _, phone := range invalid {
		assert.False(t, ValidPhone(phone), phone)
	}
}

func TestValidateFieldNames(t *testing.T) {
	type form struct {
		Email string `json:"email" validate:"required,email"`
		Phone string `json:"phone" validate:"omitempty,phone"`
	}

	errs := Validate(&form{Email: "nope", Phone: "123"})
	assert.Equal(t, "Please enter a valid email address.", errs["email"])
	assert.Equal(t, "Please enter a valid phone number.", errs["phone"])

	errs = Validate(&form{Email: "jane@example.com", Phone: "+15551234567"})
	assert.Empty(t, errs)
}
