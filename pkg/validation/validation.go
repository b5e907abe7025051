package validation

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

// Matches after stripping formatting characters: optional +, optional leading 1,
// then 9-15 digits.
var phoneDigits = regexp.MustCompile(`^\+?1?\d{9,15}$`)

var nonPhoneChars = regexp.MustCompile(`[^\d+]`)

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())

	validate.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return ValidPhone(fl.Field().String())
	})

	// Error messages are keyed by the json field name the client submitted.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

// ValidPhone accepts formatted input like "+1 (555) 123-4567" by validating
// only the digit content.
func ValidPhone(phone string) bool {
	if phone == "" {
		return true
	}
	return phoneDigits.MatchString(nonPhoneChars.ReplaceAllString(phone, ""))
}

// Validate runs struct validation and returns a field->message map, empty on
// success.
func Validate(input interface{}) map[string]string {
	errs := map[string]string{}

	err := validate.Struct(input)
	if err == nil {
		return errs
	}

	validationErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		errs["_form"] = "Invalid input"
		return errs
	}

	for _, fe := range validationErrs {
		errs[fe.Field()] = messageFor(fe)
	}
	return errs
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "email":
		return "Please enter a valid email address."
	case "phone":
		return "Please enter a valid phone number."
	case "min":
		return fmt.Sprintf("Must be at least %s characters long.", fe.Param())
	case "max":
		return fmt.Sprintf("Must be at most %s characters long.", fe.Param())
	case "url":
		return "Please enter a valid URL."
	case "oneof":
		return "Select a valid choice."
	case "eqfield":
		return "The two password fields didn't match."
	case "eq":
		return "You must accept the terms and conditions to register."
	default:
		return "Invalid value."
	}
}
