package landing

import (
	"net/http"
	"time"

	"github.com/akeren/daredash-waitlist/config/router"
	"github.com/akeren/daredash-waitlist/domain/waitlist"
	apperrors "github.com/akeren/daredash-waitlist/pkg/errors"
	"github.com/akeren/daredash-waitlist/pkg/reporting"
)

type LandingController struct {
	service waitlist.WaitlistService
	now     func() time.Time
}

func NewLandingController(service waitlist.WaitlistService) *router.RESTController {
	ctrl := &LandingController{
		service: service,
		now:     time.Now,
	}

	return router.NewRESTController(
		"LandingController",
		"/",
		func(rs *router.RouterService, c *router.RESTController) {
			rs.SetHTMLTemplate(Templates())

			rs.AddGetHandler(c, "", ctrl.show)
			rs.AddPostHandler(c, "join", ctrl.join)
		},
	)
}

func (ctrl *LandingController) show(c *router.RequestContext) *router.ServiceResult {
	return router.PageResult(http.StatusOK, pageTemplate, newPageData(StatusIdle, waitlist.CreateWaitlistEntryRequest{}, ctrl.now()))
}

// join is the form post used when scripts are unavailable. It runs the same
// submission as the JSON endpoint and re-renders the page with the outcome.
func (ctrl *LandingController) join(c *router.RequestContext) *router.ServiceResult {
	logger := router.GetLogger(c)

	var form waitlist.CreateWaitlistEntryRequest

	if err := c.ShouldBind(&form); err != nil {
		logger.Error("Failed to decode waitlist form", "error", err)
		reporting.CaptureError(c.Request.Context(), err, nil)
		return router.PageResult(http.StatusInternalServerError, pageTemplate, newPageData(StatusError, form, ctrl.now()))
	}

	if err := ctrl.service.CreateEntry(c.Request.Context(), &form); err != nil {
		data := newPageData(StatusError, form, ctrl.now())
		if details, ok := apperrors.GetDetails(err).([]apperrors.ValidationErrorResponse); ok {
			for _, d := range details {
				data.Invalid[d.Field] = true
			}
		}
		return router.PageResult(apperrors.HTTPStatusCode(err), pageTemplate, data)
	}

	return router.PageResult(http.StatusOK, pageTemplate, newPageData(StatusSuccess, waitlist.CreateWaitlistEntryRequest{}, ctrl.now()))
}
