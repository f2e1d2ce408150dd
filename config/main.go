package config

import (
	"context"
	"strings"
	"time"

	"github.com/akeren/daredash-waitlist/config/router"
	"github.com/akeren/daredash-waitlist/internal/log"
	"github.com/akeren/daredash-waitlist/internal/models"
	"github.com/akeren/daredash-waitlist/pkg/constants"
	"github.com/akeren/daredash-waitlist/pkg/utils"
	"gorm.io/gorm"
)

type ApplicationConfig struct {
	DB              *gorm.DB
	RouterService   *router.RouterService
	Logger          *log.Logger
	Config          *AppConfig
	TracingShutdown func(context.Context) error
	ReportingFlush  func(time.Duration) bool
}

type AppConfig struct {
	RequestTimeout time.Duration
	// DuplicateCheck selects how repeated emails are detected: "constraint" or "lookup".
	DuplicateCheck string
}

const (
	DuplicateCheckConstraint = "constraint"
	DuplicateCheckLookup     = "lookup"
)

func NewAppConfig() *AppConfig {
	config := &AppConfig{
		RequestTimeout: utils.EnvPositiveDuration("REQUEST_TIMEOUT", constants.DefaultRequestTimeout),
		DuplicateCheck: DuplicateCheckConstraint,
	}

	if strings.EqualFold(utils.Env("WAITLIST_DUPLICATE_CHECK"), DuplicateCheckLookup) {
		config.DuplicateCheck = DuplicateCheckLookup
	}

	return config
}

func (ac *ApplicationConfig) Cleanup() {
	if ac.TracingShutdown != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := ac.TracingShutdown(ctx); err != nil {
			ac.Logger.Error("Failed to shutdown tracer provider", "error", err)
		}
	}

	if ac.ReportingFlush != nil && !ac.ReportingFlush(2*time.Second) {
		ac.Logger.Warn("Error reporting flush timed out")
	}

	if ac.DB != nil {
		CloseDatabase(ac.DB, ac.Logger)
	}

	if ac.RouterService != nil {
		ac.RouterService.Cleanup()
	}

	ac.Logger.Info("Application cleanup completed")
}

func LoadApplicationConfiguration(logger *log.Logger, autoMigrate bool) (*ApplicationConfig, error) {
	InitializeEnvFile(logger)

	if autoMigrate {
		appEnv := GetAppEnv()
		if err := ValidateAutoMigrateAllowed(appEnv); err != nil {
			return nil, err
		}
		if appEnv == "" {
			logger.Warn("APP_ENV not set; allowing --auto-migrate as development")
		}
	}

	tracingConfig := NewTracingConfig()
	tracingShutdown, err := SetupTracing(logger, tracingConfig)
	if err != nil {
		return nil, err
	}

	reportingFlush, err := SetupErrorReporting(logger)
	if err != nil {
		return nil, err
	}

	db, err := NewDatabase(logger, NewDBConfig())
	if err != nil {
		return nil, err
	}

	if autoMigrate {
		if err := AutoMigrate(logger, db, models.ModelRegistry...); err != nil {
			return nil, err
		}
	}

	appConfig := NewAppConfig()

	routerService := router.CreateRouterService(logger, &router.RouterConfig{
		RequestTimeout:     appConfig.RequestTimeout,
		TracingServiceName: tracingConfig.RouterServiceName(),
	})

	logger.Info("Application configuration loaded successfully",
		"duplicate_check", appConfig.DuplicateCheck,
		"request_timeout", appConfig.RequestTimeout.String(),
	)

	return &ApplicationConfig{
		DB:              db,
		RouterService:   routerService,
		Logger:          logger,
		Config:          appConfig,
		TracingShutdown: tracingShutdown,
		ReportingFlush:  reportingFlush,
	}, nil
}
