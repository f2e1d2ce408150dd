package errors

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

type ValidationErrorResponse struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// tagMessages lets domains register messages for their own validator tags.
var tagMessages = map[string]string{
	"required": "This field is required",
	"email":    "Invalid email format",
	"min":      "Value is too short",
	"max":      "Value is too long",
}

func RegisterTagMessage(tag, message string) {
	tagMessages[tag] = message
}

func msgForTag(fe validator.FieldError) string {
	switch fe.Tag() {
	case "min":
		if fe.Param() != "" {
			return fmt.Sprintf("Must be at least %s characters", fe.Param())
		}
	case "max":
		if fe.Param() != "" {
			return fmt.Sprintf("Must not exceed %s characters", fe.Param())
		}
	}

	if msg, ok := tagMessages[fe.Tag()]; ok {
		return msg
	}
	return "Invalid value"
}

// FormatValidationErrors turns validator errors into client-facing field messages.
// Field names come from the validator's tag name func, so register one that
// reads json tags if clients should see wire names.
func FormatValidationErrors(err error) []ValidationErrorResponse {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return nil
	}

	out := make([]ValidationErrorResponse, 0, len(validationErrors))
	for _, fe := range validationErrors {
		out = append(out, ValidationErrorResponse{
			Field:   fe.Field(),
			Message: msgForTag(fe),
		})
	}

	return out
}
