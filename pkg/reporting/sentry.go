package reporting

import (
	"context"
	"fmt"
	"time"

	"github.com/getsentry/sentry-go"
)

type Config struct {
	DSN              string
	Environment      string
	Release          string
	TracesSampleRate float64
}

func (c Config) Enabled() bool {
	return c.DSN != ""
}

// Init configures the global Sentry client. The returned func flushes
// buffered events and should run on shutdown.
func Init(cfg Config) (func(timeout time.Duration) bool, error) {
	if !cfg.Enabled() {
		return nil, nil
	}

	err := sentry.Init(sentry.ClientOptions{
		Dsn:              cfg.DSN,
		Environment:      cfg.Environment,
		Release:          cfg.Release,
		EnableTracing:    cfg.TracesSampleRate > 0,
		TracesSampleRate: cfg.TracesSampleRate,
	})
	if err != nil {
		return nil, fmt.Errorf("sentry initialization failed: %w", err)
	}

	return sentry.Flush, nil
}

// HubFromContext returns the request hub set by the router, or the global hub.
func HubFromContext(ctx context.Context) *sentry.Hub {
	if ctx != nil {
		if hub := sentry.GetHubFromContext(ctx); hub != nil {
			return hub
		}
	}
	return sentry.CurrentHub()
}

// WithRequestHub attaches a per-request hub so scope data does not leak between requests.
func WithRequestHub(ctx context.Context) (context.Context, *sentry.Hub) {
	if hub := sentry.GetHubFromContext(ctx); hub != nil {
		return ctx, hub
	}
	hub := sentry.CurrentHub().Clone()
	return sentry.SetHubOnContext(ctx, hub), hub
}

// CaptureError is a no-op when Sentry is not initialised.
func CaptureError(ctx context.Context, err error, extras map[string]interface{}) {
	if err == nil {
		return
	}

	hub := HubFromContext(ctx)
	if hub == nil || hub.Client() == nil {
		return
	}

	hub.WithScope(func(scope *sentry.Scope) {
		for k, v := range extras {
			scope.SetExtra(k, v)
		}
		hub.CaptureException(err)
	})
}

func CapturePanic(ctx context.Context, recovered interface{}) {
	hub := HubFromContext(ctx)
	if hub == nil || hub.Client() == nil {
		return
	}
	hub.RecoverWithContext(ctx, recovered)
}
