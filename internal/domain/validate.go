package domain

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// 6 to 20 characters of letters, digits, hyphens, or spaces.
var nationalIDPattern = regexp.MustCompile(`^[A-Za-z0-9\- ]{6,20}$`)

func init() {
	validate.RegisterValidation("national_id", func(fl validator.FieldLevel) bool {
		return nationalIDPattern.MatchString(fl.Field().String())
	})
}

func ValidateStruct(data interface{}) map[string]string {
	err := validate.Struct(data)
	if err == nil {
		return nil
	}

	errs := make(map[string]string)
	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		for _, verr := range validationErrors {
			errs[verr.Field()] = messageFor(verr)
		}
	}
	return errs
}

func messageFor(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return "this field is required"
	case "email":
		return "invalid email format"
	case "national_id":
		return "must be 6 to 20 letters, digits, hyphens, or spaces"
	case "min":
		return fmt.Sprintf("minimum is %s", err.Param())
	case "max":
		return fmt.Sprintf("maximum is %s", err.Param())
	default:
		return fmt.Sprintf("invalid %s field", err.Field())
	}
}

func FormatValidationErrors(errs map[string]string) string {
	msgs := make([]string, 0, len(errs))
	for field, msg := range errs {
		msgs = append(msgs, fmt.Sprintf("%s: %s", field, msg))
	}
	return strings.Join(msgs, "; ")
}

func trim(s string) string {
	return strings.TrimSpace(s)
}
