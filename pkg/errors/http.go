package errors

import (
	"errors"
)

const genericErrorMessage = "Internal server error"

func HTTPStatusCode(err error) int {
	if err == nil {
		return StatusInternalServerError
	}

	switch GetErrorType(err) {
	case ErrorTypeNotFound:
		return StatusNotFound
	case ErrorTypeInvalidRequest, ErrorTypeAlreadyRegistered:
		return StatusBadRequest
	case ErrorTypeConflict:
		return StatusConflict
	case ErrorTypeRequestTimeout:
		return StatusRequestTimeout
	case ErrorTypeDatabaseError, ErrorTypeInternalServerError:
		return StatusInternalServerError
	default:
		return StatusInternalServerError
	}
}

// GetHumanReadableMessage never exposes the wrapped error, only the AppError message.
func GetHumanReadableMessage(err error) string {
	if err == nil {
		return genericErrorMessage
	}

	var appErr *AppError
	if errors.As(err, &appErr) && appErr.Message != "" {
		return appErr.Message
	}

	return genericErrorMessage
}

// IsServerError reports whether err should be logged and reported as a failure of this service.
func IsServerError(err error) bool {
	return err != nil && HTTPStatusCode(err) >= StatusInternalServerError
}
