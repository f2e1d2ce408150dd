package router

import (
	"net/http"

	"github.com/akeren/daredash-waitlist/internal/log"
	apperrors "github.com/akeren/daredash-waitlist/pkg/errors"
)

const internalServerErrorMessage = "Internal server error"

// GetLogger returns the request logger injected by the router middleware.
func GetLogger(ctx *RequestContext) *log.Logger {
	return log.GetLoggerInstanceFromContext(ctx.Request.Context(), nil)
}

func OKResult(data any, message string) *ServiceResult {
	return &ServiceResult{
		StatusCode: http.StatusOK,
		Data:       data,
		Message:    message,
	}
}

func BadRequestResult(message string, payload any) *ServiceResult {
	return &ServiceResult{
		StatusCode: http.StatusBadRequest,
		Data:       payload,
		Message:    message,
	}
}

func NotFoundResult(message string) *ServiceResult {
	return &ServiceResult{
		StatusCode: http.StatusNotFound,
		Message:    message,
	}
}

// InternalServerErrorResult hides the cause; log it before returning this.
func InternalServerErrorResult() *ServiceResult {
	return &ServiceResult{
		StatusCode: http.StatusInternalServerError,
		Message:    internalServerErrorMessage,
	}
}

func ErrorResult(statusCode int, message string, data any) *ServiceResult {
	return &ServiceResult{
		StatusCode: statusCode,
		Data:       data,
		Message:    message,
	}
}

// ResultFromError maps an AppError to its status, client message and details.
func ResultFromError(err error) *ServiceResult {
	return ErrorResult(
		apperrors.HTTPStatusCode(err),
		apperrors.GetHumanReadableMessage(err),
		apperrors.GetDetails(err),
	)
}

func PageResult(statusCode int, template string, data any) *ServiceResult {
	return &ServiceResult{
		StatusCode: statusCode,
		Data:       data,
		Template:   template,
	}
}
