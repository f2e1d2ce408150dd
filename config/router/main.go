package router

import (
	"context"
	"fmt"
	"html/template"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/akeren/daredash-waitlist/internal/log"
	apperrors "github.com/akeren/daredash-waitlist/pkg/errors"
	"github.com/akeren/daredash-waitlist/pkg/constants"
	"github.com/akeren/daredash-waitlist/pkg/reporting"
	"github.com/akeren/daredash-waitlist/pkg/utils"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

type MiddlewareConfig struct {
	TimeoutDuration time.Duration
}

type RouterService struct {
	engine           *gin.Engine
	server           *http.Server
	logger           *log.Logger
	middlewareConfig *MiddlewareConfig
	metricsRegistry  *prometheus.Registry

	handlerToControllerMap map[string]*RESTController
}

type RouterConfig struct {
	RequestTimeout time.Duration
	// TracingServiceName enables otelgin spans under that service name when set.
	TracingServiceName string
}

func CreateRouterService(logger *log.Logger, routerConfig *RouterConfig) *RouterService {
	if mode, ok := os.LookupEnv("GIN_MODE"); ok && mode != "" {
		logger.Info("Setting Gin mode", "mode", mode)
		gin.SetMode(mode)
	}

	requestTimeout := constants.DefaultRequestTimeout
	if routerConfig != nil && routerConfig.RequestTimeout > 0 {
		requestTimeout = routerConfig.RequestTimeout
	}

	ginRouter := gin.New()

	rs := &RouterService{
		engine:                 ginRouter,
		logger:                 logger,
		middlewareConfig:       &MiddlewareConfig{TimeoutDuration: requestTimeout},
		handlerToControllerMap: make(map[string]*RESTController),
	}

	ginRouter.Use(rs.recoveryMiddleware())

	if routerConfig != nil && routerConfig.TracingServiceName != "" {
		ginRouter.Use(otelgin.Middleware(routerConfig.TracingServiceName))
		logger.Info("Tracing middleware enabled", "service", routerConfig.TracingServiceName)
	}

	// SECURITY: Gin trusts all proxies by default, which makes ClientIP() depend
	// on potentially spoofed X-Forwarded-For headers. Trust is opt-in via TRUSTED_PROXIES.
	trustedProxies := parseTrustedProxiesEnv(os.Getenv("TRUSTED_PROXIES"))
	if err := ginRouter.SetTrustedProxies(trustedProxies); err != nil {
		logger.Error("Invalid TRUSTED_PROXIES; disabling trusted proxies", "error", err)
		_ = ginRouter.SetTrustedProxies(nil)
	} else if trustedProxies == nil {
		logger.Info("Trusted proxies disabled (TRUSTED_PROXIES not set)")
	}

	rs.mountMetrics()

	ginRouter.Use(rs.reportingMiddleware())
	ginRouter.Use(rs.securityHeadersMiddleware())
	ginRouter.Use(rs.maxBodySizeMiddleware())
	ginRouter.Use(rs.corsMiddleware())
	ginRouter.Use(rs.timeoutMiddleware())
	ginRouter.Use(rs.correlationIDMiddleware())
	ginRouter.Use(rs.loggerInjectionMiddleware())
	ginRouter.Use(rs.requestLoggingMiddleware())

	ginRouter.HandleMethodNotAllowed = true
	ginRouter.RedirectTrailingSlash = true

	ginRouter.NoRoute(func(c *gin.Context) {
		logger.WithCorrelationID(c.Request.Context()).Warn("Route not found", "path", c.Request.URL.Path)
		c.JSON(http.StatusNotFound, NotFoundResult("Route not found").ToJSON())
	})

	ginRouter.NoMethod(func(c *gin.Context) {
		logger.WithCorrelationID(c.Request.Context()).Warn("Method not allowed", "method", c.Request.Method, "path", c.Request.URL.Path)
		c.JSON(http.StatusMethodNotAllowed, ErrorResult(apperrors.StatusMethodNotAllowed, "Method not allowed", nil).ToJSON())
	})

	rs.server = &http.Server{
		Addr:    ":8080", // Default, will be overridden in RunHTTPServer
		Handler: ginRouter,
		// Gin's Context is not goroutine-safe, so request time limits are
		// enforced by the server rather than by running handlers in a goroutine.
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       requestTimeout,
		WriteTimeout:      requestTimeout,
		IdleTimeout:       60 * time.Second,
	}

	logger.Info("Router service initialized")

	return rs
}

func parseTrustedProxiesEnv(v string) []string {
	s := strings.TrimSpace(v)
	if s == "" {
		return nil
	}

	if s == "*" {
		return []string{"0.0.0.0/0", "::/0"}
	}

	parts := strings.Split(s, ",")
	proxies := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			proxies = append(proxies, p)
		}
	}

	if len(proxies) == 0 {
		return nil
	}

	return proxies
}

func (routerService *RouterService) GetEngine() *gin.Engine {
	return routerService.engine
}

func (routerService *RouterService) GetLogger(c *RequestContext) *log.Logger {
	return routerService.logger.WithCorrelationID(c.Request.Context())
}

// SetHTMLTemplate registers the templates used by page results.
func (routerService *RouterService) SetHTMLTemplate(tmpl *template.Template) {
	routerService.engine.SetHTMLTemplate(tmpl)
}

func (routerService *RouterService) Cleanup() {
	routerService.logger.Info("Router service cleanup completed")
}

func (routerService *RouterService) MountController(controller *RESTController) {
	routerService.logger.Info("Mounting controller",
		"name", controller.name,
		"path", controller.mountPoint,
	)

	controller.prepare(routerService, controller)

	routerService.logger.Info("Controller mounted",
		"name", controller.name,
		"handlers", controller.handlerCount,
	)
}

func (routerService *RouterService) RunHTTPServer() error {
	addr := ":" + utils.EnvString("APP_PORT", "8080")
	routerService.server.Addr = addr

	routerService.logger.Info("Starting HTTP server", "addr", addr)

	if err := routerService.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		routerService.logger.Error("Failed to start HTTP server", "error", err)
		return fmt.Errorf("failed to start HTTP server: %w", err)
	}

	return nil
}

func (routerService *RouterService) Shutdown(ctx context.Context) error {
	routerService.logger.Info("Shutting down HTTP server gracefully...")
	return routerService.server.Shutdown(ctx)
}

// recoveryMiddleware turns panics into a generic 500 without leaking details.
func (routerService *RouterService) recoveryMiddleware() gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(io.Discard, func(c *gin.Context, recovered any) {
		routerService.logger.WithCorrelationID(c.Request.Context()).Error("Unhandled panic",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"panic", fmt.Sprint(recovered),
		)
		reporting.CapturePanic(c.Request.Context(), recovered)
		c.AbortWithStatusJSON(http.StatusInternalServerError, InternalServerErrorResult().ToJSON())
	})
}

func (routerService *RouterService) reportingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, hub := reporting.WithRequestHub(c.Request.Context())
		hub.Scope().SetRequest(c.Request)
		hub.Scope().SetTag("http.route", c.FullPath())
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

func (routerService *RouterService) correlationIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Correlation-ID")
		if id == "" {
			id = log.GenerateCorrelationID()
		}

		ctx := context.WithValue(c.Request.Context(), log.CorrelatedIDKey, id)
		c.Request = c.Request.WithContext(ctx)
		c.Header("X-Correlation-ID", id)
		c.Next()
	}
}

func (routerService *RouterService) loggerInjectionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		correlatedLogger := routerService.logger.WithCorrelationID(c.Request.Context())
		ctx := context.WithValue(c.Request.Context(), log.LoggerKeyForContext, correlatedLogger)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

func (routerService *RouterService) requestLoggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)

		routerService.logger.WithCorrelationID(c.Request.Context()).Info("HTTP request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency_ms", latency.Milliseconds(),
			"remote_addr", c.ClientIP(),
		)
	}
}

func (routerService *RouterService) securityHeadersMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.Writer.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Referrer-Policy", "no-referrer")

		if shouldSetHSTS(c) {
			h.Set("Strict-Transport-Security", buildHSTSValue())
		}

		c.Next()
	}
}

// shouldSetHSTS defaults to on in production; HSTS_ENABLED overrides. TLS may be
// terminated at a reverse proxy, so X-Forwarded-Proto counts too.
func shouldSetHSTS(c *gin.Context) bool {
	appEnv := strings.ToLower(utils.Env("APP_ENV"))

	if !utils.EnvBool("HSTS_ENABLED", appEnv == "production" || appEnv == "prod") {
		return false
	}

	if c.Request.TLS != nil {
		return true
	}

	proto := strings.ToLower(strings.TrimSpace(c.GetHeader("X-Forwarded-Proto")))
	return proto == "https"
}

func buildHSTSValue() string {
	value := fmt.Sprintf("max-age=%d", utils.EnvPositiveInt64("HSTS_MAX_AGE", 31536000))
	if utils.EnvBool("HSTS_INCLUDE_SUBDOMAINS", true) {
		value += "; includeSubDomains"
	}

	return value
}

func (routerService *RouterService) maxBodySizeMiddleware() gin.HandlerFunc {
	maxBytes := utils.EnvPositiveInt64("MAX_REQUEST_BODY_BYTES", constants.DefaultMaxRequestBodyBytes)

	return func(c *gin.Context) {
		if c.Request.ContentLength > maxBytes {
			c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, ErrorResult(
				http.StatusRequestEntityTooLarge,
				"Request payload too large",
				nil,
			).ToJSON())
			return
		}

		if c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		}

		c.Next()
	}
}

func (routerService *RouterService) corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin == "" {
			c.Next()
			return
		}

		allowedOrigins := utils.EnvList("CORS_ALLOWED_ORIGIN")
		if len(allowedOrigins) == 0 {
			routerService.logger.Warn("CORS_ALLOWED_ORIGIN not set, denying cross-origin request", "origin", origin)
			c.Next()
			return
		}

		originAllowed := false
		for _, allowedOrigin := range allowedOrigins {
			if allowedOrigin == "*" || allowedOrigin == origin {
				originAllowed = true
				break
			}
		}

		if !originAllowed {
			routerService.logger.Warn("CORS origin not allowed", "origin", origin)
			c.Next()
			return
		}

		c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept, Origin, X-Correlation-ID, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(apperrors.StatusNoContent)
			return
		}

		c.Next()
	}
}

func (routerService *RouterService) timeoutMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), routerService.middlewareConfig.TimeoutDuration)
		defer cancel()

		c.Request = c.Request.WithContext(ctx)

		// Do NOT call c.Next() in a goroutine: gin.Context is not safe for concurrent use.
		c.Next()

		if ctx.Err() == context.DeadlineExceeded && !c.Writer.Written() {
			routerService.logger.WithCorrelationID(c.Request.Context()).Warn("Request timeout detected")
			c.AbortWithStatusJSON(http.StatusRequestTimeout, ErrorResult(
				apperrors.StatusRequestTimeout,
				"Request timeout",
				nil,
			).ToJSON())
		}
	}
}
