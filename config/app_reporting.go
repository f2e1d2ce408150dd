package config

import (
	"time"

	"github.com/akeren/daredash-waitlist/internal/log"
	"github.com/akeren/daredash-waitlist/pkg/reporting"
	"github.com/akeren/daredash-waitlist/pkg/utils"
)

func NewReportingConfig() reporting.Config {
	return reporting.Config{
		DSN:              utils.Env("SENTRY_DSN"),
		Environment:      GetAppEnv(),
		Release:          "daredash-waitlist@" + utils.EnvString("APP_VERSION", "dev"),
		TracesSampleRate: utils.EnvRatio("SENTRY_TRACES_SAMPLE_RATE", 0),
	}
}

// SetupErrorReporting enables Sentry when SENTRY_DSN is set. The returned flush func is nil otherwise.
func SetupErrorReporting(logger *log.Logger) (func(time.Duration) bool, error) {
	cfg := NewReportingConfig()
	if !cfg.Enabled() {
		logger.Info("Error reporting disabled (SENTRY_DSN not set)")
		return nil, nil
	}

	flush, err := reporting.Init(cfg)
	if err != nil {
		logger.Error("Failed to initialise error reporting", "error", err)
		return nil, err
	}

	logger.Info("Error reporting enabled", "environment", cfg.Environment, "release", cfg.Release)
	return flush, nil
}
