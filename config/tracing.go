package config

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/akeren/daredash-waitlist/internal/log"
	"github.com/akeren/daredash-waitlist/pkg/utils"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
)

const defaultOTLPTracesPath = "/v1/traces"

type TracingConfig struct {
	Enabled     bool
	ServiceName string
	Endpoint    string
	// SampleRatio applies to root spans; child spans follow their parent.
	SampleRatio float64
}

func NewTracingConfig() TracingConfig {
	return TracingConfig{
		Enabled:     utils.EnvBool("OTEL_TRACES_ENABLED", false),
		ServiceName: utils.EnvString("OTEL_SERVICE_NAME", "daredash-waitlist"),
		Endpoint:    utils.EnvString("OTEL_EXPORTER_OTLP_ENDPOINT", "http://localhost:4318"),
		SampleRatio: utils.EnvRatio("OTEL_TRACES_SAMPLER_ARG", 1),
	}
}

// RouterServiceName is the otelgin service name, empty when tracing is off.
func (c TracingConfig) RouterServiceName() string {
	if !c.Enabled {
		return ""
	}
	return c.ServiceName
}

type otlpTarget struct {
	hostport string
	path     string
	insecure bool
}

func (t otlpTarget) options() []otlptracehttp.Option {
	opts := []otlptracehttp.Option{
		otlptracehttp.WithEndpoint(t.hostport),
		otlptracehttp.WithURLPath(t.path),
	}
	if t.insecure {
		opts = append(opts, otlptracehttp.WithInsecure())
	}
	return opts
}

// SetupTracing installs a global OTLP/HTTP tracer provider. The returned
// shutdown func is nil when tracing is disabled.
func SetupTracing(logger *log.Logger, cfg TracingConfig) (func(context.Context) error, error) {
	if !cfg.Enabled {
		return nil, nil
	}

	target, err := parseOTLPEndpoint(cfg.Endpoint)
	if err != nil {
		return nil, err
	}

	ctx := context.Background()

	exporter, err := otlptracehttp.New(ctx, target.options()...)
	if err != nil {
		return nil, fmt.Errorf("setup tracing exporter: %w", err)
	}

	res, err := resource.New(ctx, resource.WithAttributes(
		attribute.String("service.name", cfg.ServiceName),
		attribute.String("service.version", utils.EnvString("APP_VERSION", "dev")),
		attribute.String("deployment.environment", GetAppEnv()),
	))
	if err != nil {
		return nil, fmt.Errorf("setup tracing resource: %w", err)
	}

	tp := trace.NewTracerProvider(
		trace.WithBatcher(exporter),
		trace.WithResource(res),
		trace.WithSampler(trace.ParentBased(trace.TraceIDRatioBased(cfg.SampleRatio))),
	)

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	logger.Info("OpenTelemetry tracing enabled",
		"service", cfg.ServiceName,
		"endpoint", cfg.Endpoint,
		"sample_ratio", cfg.SampleRatio,
	)

	return tp.Shutdown, nil
}

// parseOTLPEndpoint accepts http(s)://host:port[/path] or a bare host:port.
// Bare endpoints are plain HTTP.
func parseOTLPEndpoint(raw string) (otlpTarget, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return otlpTarget{}, fmt.Errorf("empty OTLP endpoint")
	}

	if !strings.Contains(raw, "://") {
		// otlptracehttp.WithEndpoint takes host:port only.
		if strings.ContainsAny(raw, "/?#") {
			return otlpTarget{}, fmt.Errorf("invalid OTLP endpoint %q: use http://host:port/path to set a path", raw)
		}
		return otlpTarget{hostport: raw, path: defaultOTLPTracesPath, insecure: true}, nil
	}

	u, err := url.Parse(raw)
	if err != nil {
		return otlpTarget{}, fmt.Errorf("invalid OTLP endpoint %q: %w", raw, err)
	}
	if u.Host == "" {
		return otlpTarget{}, fmt.Errorf("invalid OTLP endpoint %q: missing host", raw)
	}

	scheme := strings.ToLower(u.Scheme)
	if scheme != "http" && scheme != "https" {
		return otlpTarget{}, fmt.Errorf("unsupported OTLP endpoint scheme %q in %q", u.Scheme, raw)
	}

	path := u.EscapedPath()
	if path == "" || path == "/" {
		path = defaultOTLPTracesPath
	}

	return otlpTarget{hostport: u.Host, path: path, insecure: scheme == "http"}, nil
}
