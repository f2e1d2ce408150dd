package waitlist

import (
	"bytes"
	"errors"

	"github.com/akeren/daredash-waitlist/config/router"
	apperrors "github.com/akeren/daredash-waitlist/pkg/errors"
	"github.com/akeren/daredash-waitlist/pkg/reporting"
	"github.com/gin-gonic/gin/binding"
)

var errNotJSONObject = errors.New("waitlist submission body is not a JSON object")

func NewWaitlistController(service WaitlistService) *router.RESTController {
	return router.NewRESTController(
		"WaitlistController",
		"/api/waitlist",
		func(rs *router.RouterService, c *router.RESTController) {
			rs.AddPostHandler(c, "", createWaitlistEntryHandler(service))
		},
	)
}

func createWaitlistEntryHandler(service WaitlistService) router.HandlerFunction {
	return func(ctx *router.RequestContext) *router.ServiceResult {
		logger := router.GetLogger(ctx)

		var req CreateWaitlistEntryRequest

		// Field validation happens in the service; binding only decodes.
		if err := bindSubmission(ctx, &req); err != nil {
			logger.Error("Failed to decode waitlist submission", "error", err)
			reporting.CaptureError(ctx.Request.Context(), err, nil)
			return router.InternalServerErrorResult()
		}

		if err := service.CreateEntry(ctx.Request.Context(), &req); err != nil {
			return router.ErrorResult(
				apperrors.HTTPStatusCode(err),
				apperrors.GetHumanReadableMessage(err),
				nil,
			)
		}

		return router.OKResult(nil, MessageJoined)
	}
}

// bindSubmission decodes the body into req. Anything other than a JSON
// object, null included, is rejected before it can reach validation.
func bindSubmission(ctx *router.RequestContext, req *CreateWaitlistEntryRequest) error {
	raw, err := ctx.GetRawData()
	if err != nil {
		return err
	}

	body := bytes.TrimSpace(raw)
	if len(body) == 0 || body[0] != '{' {
		return errNotJSONObject
	}

	return binding.JSON.BindBody(body, req)
}
