package config

import (
	"bytes"
	"testing"
	"time"

	"github.com/akeren/daredash-waitlist/internal/log"
	"github.com/akeren/daredash-waitlist/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAppConfig_Defaults(t *testing.T) {
	t.Setenv("REQUEST_TIMEOUT", "")
	t.Setenv("WAITLIST_DUPLICATE_CHECK", "")

	cfg := NewAppConfig()

	assert.Equal(t, 30*time.Second, cfg.RequestTimeout)
	assert.Equal(t, DuplicateCheckConstraint, cfg.DuplicateCheck)
}

func TestNewAppConfig_Overrides(t *testing.T) {
	t.Setenv("REQUEST_TIMEOUT", "5s")
	t.Setenv("WAITLIST_DUPLICATE_CHECK", " Lookup ")

	cfg := NewAppConfig()

	assert.Equal(t, 5*time.Second, cfg.RequestTimeout)
	assert.Equal(t, DuplicateCheckLookup, cfg.DuplicateCheck)
}

func TestNewAppConfig_IgnoresInvalidValues(t *testing.T) {
	t.Setenv("REQUEST_TIMEOUT", "-1s")
	t.Setenv("WAITLIST_DUPLICATE_CHECK", "transactional")

	cfg := NewAppConfig()

	assert.Equal(t, 30*time.Second, cfg.RequestTimeout)
	assert.Equal(t, DuplicateCheckConstraint, cfg.DuplicateCheck)
}

func TestBuildDialector(t *testing.T) {
	logger := log.NewLoggerWithWriter(&bytes.Buffer{})

	t.Run("unsupported driver", func(t *testing.T) {
		_, err := buildDialector(logger, &DBConfig{Driver: "mysql"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unsupported DB_DRIVER")
	})

	t.Run("sqlite", func(t *testing.T) {
		dialector, err := buildDialector(logger, &DBConfig{Driver: DBDriverSQLite, SQLitePath: ":memory:"})
		require.NoError(t, err)
		assert.Equal(t, "sqlite", dialector.Name())
	})

	t.Run("postgres reports missing env vars", func(t *testing.T) {
		t.Setenv("APP_DATABASE_URL", "")
		t.Setenv("POSTGRES_HOST", "")
		t.Setenv("POSTGRES_PORT", "5432")
		t.Setenv("POSTGRES_USER", "")
		t.Setenv("POSTGRES_DB_NAME", "waitlist")

		_, err := buildDialector(logger, &DBConfig{Driver: DBDriverPostgres})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "POSTGRES_HOST")
		assert.Contains(t, err.Error(), "POSTGRES_USER")
		assert.NotContains(t, err.Error(), "POSTGRES_DB_NAME")
	})

	t.Run("postgres prefers APP_DATABASE_URL", func(t *testing.T) {
		t.Setenv("APP_DATABASE_URL", `"postgres://u:p@db:5432/waitlist"`)

		dsn, err := buildPostgresDSN(logger, &DBConfig{SSLMode: "require"})
		require.NoError(t, err)
		assert.Equal(t, "postgres://u:p@db:5432/waitlist", dsn)
	})

	t.Run("postgres builds dsn from parts", func(t *testing.T) {
		t.Setenv("APP_DATABASE_URL", "")
		t.Setenv("POSTGRES_HOST", "db")
		t.Setenv("POSTGRES_PORT", "5432")
		t.Setenv("POSTGRES_USER", "waitlist")
		t.Setenv("POSTGRES_PASSWORD", "secret")
		t.Setenv("POSTGRES_DB_NAME", "waitlist")
		t.Setenv("POSTGRES_SSLMODE", "")

		dsn, err := buildPostgresDSN(logger, &DBConfig{SSLMode: "require"})
		require.NoError(t, err)
		assert.Equal(t, "host=db port=5432 user=waitlist password=secret dbname=waitlist sslmode=require", dsn)
	})
}

func TestParseOTLPEndpoint(t *testing.T) {
	cases := []struct {
		raw      string
		hostport string
		path     string
		insecure bool
		wantErr  bool
	}{
		{raw: "http://localhost:4318", hostport: "localhost:4318", path: "/v1/traces", insecure: true},
		{raw: "https://otel.example.com/custom", hostport: "otel.example.com", path: "/custom"},
		{raw: "collector:4318", hostport: "collector:4318", path: "/v1/traces", insecure: true},
		{raw: "collector:4318/v1/traces", wantErr: true},
		{raw: "grpc://collector:4317", wantErr: true},
		{raw: "", wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.raw, func(t *testing.T) {
			target, err := parseOTLPEndpoint(tc.raw)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.hostport, target.hostport)
			assert.Equal(t, tc.path, target.path)
			assert.Equal(t, tc.insecure, target.insecure)
		})
	}
}

func TestNewTracingConfig(t *testing.T) {
	t.Setenv("OTEL_TRACES_ENABLED", "")
	t.Setenv("OTEL_SERVICE_NAME", "")
	t.Setenv("OTEL_TRACES_SAMPLER_ARG", "")

	cfg := NewTracingConfig()
	assert.False(t, cfg.Enabled)
	assert.Equal(t, "daredash-waitlist", cfg.ServiceName)
	assert.Equal(t, 1.0, cfg.SampleRatio)
	assert.Empty(t, cfg.RouterServiceName())

	t.Setenv("OTEL_TRACES_ENABLED", "true")
	t.Setenv("OTEL_SERVICE_NAME", "waitlist-api")
	t.Setenv("OTEL_TRACES_SAMPLER_ARG", "0.2")

	cfg = NewTracingConfig()
	assert.Equal(t, "waitlist-api", cfg.RouterServiceName())
	assert.Equal(t, 0.2, cfg.SampleRatio)
}

func TestSetupTracing_Disabled(t *testing.T) {
	shutdown, err := SetupTracing(log.NewLoggerWithWriter(&bytes.Buffer{}), TracingConfig{Enabled: false, Endpoint: "grpc://ignored"})
	assert.NoError(t, err)
	assert.Nil(t, shutdown)
}

func TestNewReportingConfig(t *testing.T) {
	t.Setenv("SENTRY_DSN", " https://key@sentry.example.com/1 ")
	t.Setenv("APP_VERSION", "")
	t.Setenv("SENTRY_TRACES_SAMPLE_RATE", "3")

	cfg := NewReportingConfig()
	assert.Equal(t, "https://key@sentry.example.com/1", cfg.DSN)
	assert.Equal(t, "daredash-waitlist@dev", cfg.Release)
	assert.Equal(t, 0.0, cfg.TracesSampleRate)
}

func TestNewDatabase_SQLite(t *testing.T) {
	logger := log.NewLoggerWithWriter(&bytes.Buffer{})

	db, err := NewDatabase(logger, &DBConfig{Driver: DBDriverSQLite, SQLitePath: ":memory:", ConnectAttempts: 1})
	require.NoError(t, err)
	t.Cleanup(func() { CloseDatabase(db, logger) })

	require.NoError(t, AutoMigrate(logger, db, models.ModelRegistry...))
	assert.True(t, db.Migrator().HasIndex(&models.WaitlistEntry{}, "idx_waitlist_email"))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	assert.Equal(t, 1, sqlDB.Stats().MaxOpenConnections)
}
