package integration

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/akeren/daredash-waitlist/config"
	"github.com/akeren/daredash-waitlist/config/router"
	"github.com/akeren/daredash-waitlist/domain"
	"github.com/akeren/daredash-waitlist/internal/log"
	"github.com/akeren/daredash-waitlist/internal/models"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type WaitlistAPITestSuite struct {
	suite.Suite
	duplicateCheck string
	db             *gorm.DB
	server         *httptest.Server
	baseURL        string
}

func (suite *WaitlistAPITestSuite) SetupSuite() {
	var err error
	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Discard,
	})
	suite.Require().NoError(err)

	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.SetMaxOpenConns(1)

	suite.Require().NoError(suite.db.AutoMigrate(models.ModelRegistry...))

	appLogger := log.NewLoggerWithWriter(io.Discard)
	appConfig := &config.ApplicationConfig{
		DB:     suite.db,
		Logger: appLogger,
		Config: &config.AppConfig{
			RequestTimeout: 30 * time.Second,
			DuplicateCheck: suite.duplicateCheck,
		},
	}
	appConfig.RouterService = router.CreateRouterService(appLogger, &router.RouterConfig{
		RequestTimeout: appConfig.Config.RequestTimeout,
	})

	domain.SetupCoreDomain(appConfig)

	suite.server = httptest.NewServer(appConfig.RouterService.GetEngine())
	suite.baseURL = suite.server.URL
}

func (suite *WaitlistAPITestSuite) TearDownSuite() {
	if suite.server != nil {
		suite.server.Close()
	}
	if suite.db != nil {
		if sqlDB, err := suite.db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
}

func (suite *WaitlistAPITestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("DELETE FROM waitlist").Error)
}

func (suite *WaitlistAPITestSuite) submit(payload map[string]string) (int, map[string]any) {
	body, err := json.Marshal(payload)
	suite.Require().NoError(err)

	resp, err := http.Post(suite.baseURL+"/api/waitlist", "application/json", bytes.NewReader(body))
	suite.Require().NoError(err)
	defer resp.Body.Close()

	var decoded map[string]any
	suite.Require().NoError(json.NewDecoder(resp.Body).Decode(&decoded))
	return resp.StatusCode, decoded
}

func (suite *WaitlistAPITestSuite) count() int64 {
	var n int64
	suite.Require().NoError(suite.db.Model(&models.WaitlistEntry{}).Count(&n).Error)
	return n
}

func signup(email string) map[string]string {
	return map[string]string{
		"firstName":      "Ada",
		"lastName":       "Obi",
		"email":          email,
		"referralSource": "instagram",
	}
}

func (suite *WaitlistAPITestSuite) TestJoinWaitlist() {
	code, body := suite.submit(signup("ada@example.com"))

	suite.Equal(http.StatusOK, code)
	suite.Equal(map[string]any{"message": "Successfully joined waitlist"}, body)

	var stored models.WaitlistEntry
	suite.Require().NoError(suite.db.Where("email = ?", "ada@example.com").First(&stored).Error)
	suite.Equal("Ada", stored.FirstName)
	suite.Equal("Obi", stored.LastName)
	suite.Equal("instagram", stored.ReferralSource)
	suite.WithinDuration(time.Now(), stored.CreatedAt, time.Minute)
}

func (suite *WaitlistAPITestSuite) TestRejectsIncompleteSubmission() {
	payload := signup("ada@example.com")
	payload["referralSource"] = ""

	code, body := suite.submit(payload)

	suite.Equal(http.StatusBadRequest, code)
	suite.Equal(map[string]any{"error": "All fields are required"}, body)
	suite.Zero(suite.count())
}

func (suite *WaitlistAPITestSuite) TestRejectsInvalidEmail() {
	code, body := suite.submit(signup("ada@localhost"))

	suite.Equal(http.StatusBadRequest, code)
	suite.Equal(map[string]any{"error": "Invalid email format"}, body)
	suite.Zero(suite.count())
}

func (suite *WaitlistAPITestSuite) TestRejectsDuplicateEmail() {
	code, _ := suite.submit(signup("ada@example.com"))
	suite.Require().Equal(http.StatusOK, code)

	code, body := suite.submit(signup("ada@example.com"))

	suite.Equal(http.StatusBadRequest, code)
	suite.Equal(map[string]any{"error": "Email already registered"}, body)
	suite.Equal(int64(1), suite.count())
}

func (suite *WaitlistAPITestSuite) TestConcurrentDuplicates_OneWins() {
	const attempts = 8

	var wg sync.WaitGroup
	codes := make(chan int, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			body, _ := json.Marshal(signup("race@example.com"))
			resp, err := http.Post(suite.baseURL+"/api/waitlist", "application/json", bytes.NewReader(body))
			if err != nil {
				codes <- 0
				return
			}
			resp.Body.Close()
			codes <- resp.StatusCode
		}()
	}

	wg.Wait()
	close(codes)

	var ok, rejected int
	for code := range codes {
		switch code {
		case http.StatusOK:
			ok++
		case http.StatusBadRequest:
			rejected++
		}
	}

	suite.Equal(1, ok)
	suite.Equal(attempts-1, rejected)
	suite.Equal(int64(1), suite.count())
}

func (suite *WaitlistAPITestSuite) TestMalformedBody() {
	resp, err := http.Post(suite.baseURL+"/api/waitlist", "application/json", strings.NewReader("not json"))
	suite.Require().NoError(err)
	defer resp.Body.Close()

	suite.Equal(http.StatusInternalServerError, resp.StatusCode)
}

func (suite *WaitlistAPITestSuite) TestLandingPageAndFormFallback() {
	resp, err := http.Get(suite.baseURL + "/")
	suite.Require().NoError(err)
	page, _ := io.ReadAll(resp.Body)
	resp.Body.Close()

	suite.Equal(http.StatusOK, resp.StatusCode)
	suite.Contains(string(page), `action="/join"`)

	form := url.Values{
		"firstName":      {"Jo"},
		"lastName":       {"Eze"},
		"email":          {"jo@example.com"},
		"referralSource": {"roger"},
	}
	resp, err = http.PostForm(suite.baseURL+"/join", form)
	suite.Require().NoError(err)
	page, _ = io.ReadAll(resp.Body)
	resp.Body.Close()

	suite.Equal(http.StatusOK, resp.StatusCode)
	suite.Contains(string(page), `data-status="success"`)
	suite.Equal(int64(1), suite.count())
}

func (suite *WaitlistAPITestSuite) TestHealthAndMetrics() {
	resp, err := http.Get(suite.baseURL + "/health")
	suite.Require().NoError(err)
	resp.Body.Close()
	suite.Equal(http.StatusOK, resp.StatusCode)

	suite.submit(signup("metrics@example.com"))

	resp, err = http.Get(suite.baseURL + "/metrics")
	suite.Require().NoError(err)
	metrics, _ := io.ReadAll(resp.Body)
	resp.Body.Close()

	suite.Contains(string(metrics), `waitlist_submissions_total{outcome="joined"}`)
	suite.Contains(string(metrics), `http_requests_total{method="POST",route="/api/waitlist",status="200"}`)
}

func TestWaitlistAPISuite(t *testing.T) {
	if os.Getenv("RUN_INTEGRATION_TESTS") != "true" {
		t.Skip("Skipping integration tests. Set RUN_INTEGRATION_TESTS=true to run them")
	}

	for _, check := range []string{config.DuplicateCheckConstraint, config.DuplicateCheckLookup} {
		t.Run(check, func(t *testing.T) {
			suite.Run(t, &WaitlistAPITestSuite{duplicateCheck: check})
		})
	}
}
