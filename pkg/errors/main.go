package errors

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

const (
	StatusOK                  = 200
	StatusNoContent           = 204
	StatusBadRequest          = 400
	StatusNotFound            = 404
	StatusMethodNotAllowed    = 405
	StatusRequestTimeout      = 408
	StatusConflict            = 409
	StatusRequestTooLarge     = 413
	StatusInternalServerError = 500
)

const (
	ErrorTypeDatabaseError       = "DATABASE_ERROR"
	ErrorTypeNotFound            = "NOT_FOUND"
	ErrorTypeInvalidRequest      = "INVALID_REQUEST"
	ErrorTypeAlreadyRegistered   = "ALREADY_REGISTERED"
	ErrorTypeConflict            = "CONFLICT"
	ErrorTypeInternalServerError = "INTERNAL_SERVER_ERROR"
	ErrorTypeRequestTimeout      = "REQUEST_TIMEOUT"
	ErrorTypeUnknown             = "UNKNOWN_ERROR"
)

// AppError is the error shape shared by repositories, services and handlers.
// Message is safe to show to API clients; Err is for logs only.
type AppError struct {
	Type    string
	Message string
	Details any
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NewAppError(errType, message string, err error) *AppError {
	return &AppError{
		Type:    errType,
		Message: message,
		Err:     err,
	}
}

func NewNotFoundError(message string, err error) *AppError {
	return NewAppError(ErrorTypeNotFound, message, err)
}

func NewInvalidRequestError(message string, err error) *AppError {
	return NewAppError(ErrorTypeInvalidRequest, message, err)
}

// NewValidationError is an invalid request carrying per-field details.
func NewValidationError(message string, details []ValidationErrorResponse, err error) *AppError {
	appErr := NewAppError(ErrorTypeInvalidRequest, message, err)
	if len(details) > 0 {
		appErr.Details = details
	}
	return appErr
}

func NewAlreadyRegisteredError(message string, err error) *AppError {
	return NewAppError(ErrorTypeAlreadyRegistered, message, err)
}

func NewDatabaseError(message string, err error) *AppError {
	return NewAppError(ErrorTypeDatabaseError, message, err)
}

func NewConflictError(message string, err error) *AppError {
	return NewAppError(ErrorTypeConflict, message, err)
}

func NewInternalServerError(message string, err error) *AppError {
	return NewAppError(ErrorTypeInternalServerError, message, err)
}

func GetErrorType(err error) string {
	if err == nil {
		return ""
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type
	}

	return ErrorTypeUnknown
}

// GetDetails returns the client-facing details attached to an AppError, if any.
func GetDetails(err error) any {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Details
	}
	return nil
}

func IsType(err error, errType string) bool {
	return GetErrorType(err) == errType
}

const uniqueViolationCode = "23505"

// IsDuplicateKeyError is the fallback for unique violations gorm did not
// translate: a postgres 23505 or sqlite's UNIQUE constraint failure.
func IsDuplicateKeyError(err error) bool {
	if err == nil {
		return false
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == uniqueViolationCode
	}

	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
