package waitlist

import (
	"errors"
	"reflect"
	"regexp"
	"strings"

	apperrors "github.com/akeren/daredash-waitlist/pkg/errors"
	"github.com/go-playground/validator/v10"
)

const emailTag = "waitlist_email"

// emailChar excludes @ and Unicode whitespace (NBSP, line and paragraph
// separators and the BOM included); RE2's \s is ASCII-only.
const emailChar = `[^\t\n\v\f\r \x{00a0}\x{1680}\x{2000}-\x{200a}\x{2028}\x{2029}\x{202f}\x{205f}\x{3000}\x{feff}@]`

// emailPattern accepts local@domain.tld with no whitespace and a single @.
var emailPattern = regexp.MustCompile(`^` + emailChar + `+@` + emailChar + `+\.` + emailChar + `+$`)

func init() {
	apperrors.RegisterTagMessage(emailTag, MessageInvalidEmail)
}

func IsValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	if err := v.RegisterValidation(emailTag, func(fl validator.FieldLevel) bool {
		return IsValidEmail(fl.Field().String())
	}); err != nil {
		panic(err)
	}

	return v
}

// validateRequest reports a missing field before a malformed email, whatever
// the field order.
func validateRequest(v *validator.Validate, req *CreateWaitlistEntryRequest) error {
	err := v.Struct(req)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return apperrors.NewInternalServerError("Internal server error", err)
	}

	details := apperrors.FormatValidationErrors(validationErrors)
	for _, fe := range validationErrors {
		if fe.Tag() == "required" {
			return apperrors.NewValidationError(MessageAllFieldsRequired, details, err)
		}
	}

	return apperrors.NewValidationError(MessageInvalidEmail, details, err)
}
