package landing

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/akeren/daredash-waitlist/config/router"
	"github.com/akeren/daredash-waitlist/domain/waitlist"
	"github.com/akeren/daredash-waitlist/internal/log"
	apperrors "github.com/akeren/daredash-waitlist/pkg/errors"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func newTestRouter(t *testing.T) (*router.RouterService, *waitlist.MockWaitlistRepository) {
	t.Helper()

	logger := log.NewLoggerWithWriter(io.Discard)
	repo := waitlist.NewMockWaitlistRepository(gomock.NewController(t))
	service := waitlist.NewWaitlistService(logger, repo, waitlist.ServiceConfig{})

	rs := router.CreateRouterService(logger, &router.RouterConfig{RequestTimeout: 5 * time.Second})
	rs.MountController(NewLandingControllerFactory(service).CreateController())

	return rs, repo
}

func postForm(rs *router.RouterService, values url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/join", strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	w := httptest.NewRecorder()
	rs.GetEngine().ServeHTTP(w, req)
	return w
}

func filledForm() url.Values {
	return url.Values{
		"firstName":      {"Ada"},
		"lastName":       {"Obi"},
		"email":          {"ada@example.com"},
		"referralSource": {"linkedin"},
	}
}

// html/template escapes the apostrophe in the success message.
const (
	renderedSuccess = `role="status">You&#39;re in! Stay tuned in your inbox.</div>`
	renderedError   = `role="status">Something went wrong. Please try again.</div>`
)

func TestShow_RendersIdleForm(t *testing.T) {
	rs, _ := newTestRouter(t)

	w := httptest.NewRecorder()
	rs.GetEngine().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")

	body := w.Body.String()
	assert.Contains(t, body, `data-status="idle"`)
	assert.Contains(t, body, `<input type="email" id="email" name="email" required value="">`)
	for _, opt := range ReferralOptions {
		assert.Contains(t, body, `<option value="`+opt.Value+`">`)
	}
	assert.Contains(t, body, `role="status" hidden>`)
	assert.Contains(t, body, `fetch('/api/waitlist'`)
}

func TestJoin_Success_ClearsFields(t *testing.T) {
	rs, repo := newTestRouter(t)
	repo.EXPECT().CreateEntry(gomock.Any(), gomock.Any()).Return(nil)

	w := postForm(rs, filledForm())

	assert.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `data-status="success"`)
	assert.Contains(t, body, renderedSuccess)
	assert.NotContains(t, body, `value="Ada"`)
	assert.NotContains(t, body, " selected>")
}

func TestJoin_MissingField_PreservesInput(t *testing.T) {
	rs, _ := newTestRouter(t)

	form := filledForm()
	form.Set("lastName", "")

	w := postForm(rs, form)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `data-status="error"`)
	assert.Contains(t, body, renderedError)
	assert.Contains(t, body, `value="Ada"`)
	assert.Contains(t, body, `value="ada@example.com"`)
	assert.Contains(t, body, `<option value="linkedin" selected>`)
	assert.Contains(t, body, `id="lastName" name="lastName" required value="" aria-invalid="true"`)
	assert.NotContains(t, body, renderedSuccess)
}

func TestJoin_InvalidEmail(t *testing.T) {
	rs, _ := newTestRouter(t)

	form := filledForm()
	form.Set("email", "ada at example dot com")

	w := postForm(rs, form)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `value="ada at example dot com" aria-invalid="true"`)
}

func TestJoin_Duplicate(t *testing.T) {
	rs, repo := newTestRouter(t)
	repo.EXPECT().CreateEntry(gomock.Any(), gomock.Any()).
		Return(apperrors.NewAlreadyRegisteredError(waitlist.MessageAlreadyRegistered, nil))

	w := postForm(rs, filledForm())

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), renderedError)
}

func TestJoin_DatastoreFailure(t *testing.T) {
	rs, repo := newTestRouter(t)
	repo.EXPECT().CreateEntry(gomock.Any(), gomock.Any()).Return(errors.New("connection reset by peer"))

	w := postForm(rs, filledForm())

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, renderedError)
	assert.NotContains(t, body, "connection reset")
}
