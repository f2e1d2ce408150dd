package router

import (
	"github.com/gin-gonic/gin"
)

type RequestContext = gin.Context

type MiddlewareFunc = gin.HandlerFunc

// ServiceResult is what every handler returns. JSON results are rendered as
// {"message", "data"} on success and {"error", "details"} on failure; when
// Template is set the result is rendered as an HTML page with Data as the
// template data instead.
type ServiceResult struct {
	StatusCode int
	Data       any
	Message    string
	Template   string
}

type HandlerFunction func(*RequestContext) *ServiceResult

type RESTController struct {
	name         string
	mountPoint   string
	handlerCount int
	prepare      func(*RouterService, *RESTController)
}

func (result *ServiceResult) ToJSON() gin.H {
	if result.IsError() {
		body := gin.H{"error": result.Message}
		if result.Data != nil {
			body["details"] = result.Data
		}
		return body
	}

	body := gin.H{"message": result.Message}
	if result.Data != nil {
		body["data"] = result.Data
	}
	return body
}

func (result *ServiceResult) IsSuccess() bool {
	return result.StatusCode >= 200 && result.StatusCode < 300
}

func (result *ServiceResult) IsError() bool {
	return result.StatusCode >= 400
}

func (result *ServiceResult) IsPage() bool {
	return result.Template != ""
}
