package config

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/akeren/daredash-waitlist/internal/log"
	"github.com/akeren/daredash-waitlist/pkg/retry"
	"github.com/akeren/daredash-waitlist/pkg/utils"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const (
	DBDriverPostgres = "postgres"
	DBDriverSQLite   = "sqlite"
)

type DBConfig struct {
	Driver          string // postgres (default) or sqlite
	SQLitePath      string
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
	SSLMode         string // Default: "require" for prod safety
	// ConnectAttempts bounds startup connection attempts while the database comes up.
	ConnectAttempts int
}

func NewDBConfig() *DBConfig {
	return &DBConfig{
		Driver:          strings.ToLower(sanitizeEnv(GetValueFromEnvironmentVariable("DB_DRIVER", DBDriverPostgres))),
		SQLitePath:      sanitizeEnv(GetValueFromEnvironmentVariable("SQLITE_PATH", "waitlist.db")),
		MaxIdleConns:    10,
		MaxOpenConns:    100,
		ConnMaxLifetime: time.Minute,
		SSLMode:         "require",
		ConnectAttempts: utils.EnvPositiveInt("DB_CONNECT_ATTEMPTS", 5),
	}
}

// gormConfig turns driver errors into gorm sentinels (gorm.ErrDuplicatedKey in particular).
func gormConfig() *gorm.Config {
	return &gorm.Config{TranslateError: true}
}

func NewDatabase(logger *log.Logger, cfg *DBConfig) (*gorm.DB, error) {
	if cfg == nil {
		cfg = NewDBConfig()
	}

	dialector, err := buildDialector(logger, cfg)
	if err != nil {
		return nil, err
	}

	connectRetry := retry.DefaultConfig()
	connectRetry.MaxAttempts = cfg.ConnectAttempts
	connectRetry.OnRetry = func(attempt int, delay time.Duration, err error) {
		logger.Warn("Database not reachable yet, retrying",
			"attempt", attempt,
			"retry_in", delay.String(),
			"error", err,
		)
	}

	var gdb *gorm.DB
	err = retry.Do(context.Background(), connectRetry, func(context.Context) error {
		var openErr error
		gdb, openErr = gorm.Open(dialector, gormConfig())
		if openErr != nil && gdb != nil {
			if sqlDB, dbErr := gdb.DB(); dbErr == nil {
				_ = sqlDB.Close()
			}
		}
		return openErr
	})
	if err != nil {
		logger.Error("Failed to connect to database", "driver", cfg.Driver, "error", err)
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		logger.Error("Failed to get database instance", "error", err)
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	if cfg.Driver == DBDriverSQLite {
		// SQLite allows a single writer.
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
		sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}

	if err := sqlDB.Ping(); err != nil {
		logger.Error("Database ping failed", "error", err)
		return nil, fmt.Errorf("database ping failed: %w", err)
	}

	logger.Info("Database connection established successfully", "driver", cfg.Driver)
	return gdb, nil
}

func buildDialector(logger *log.Logger, cfg *DBConfig) (gorm.Dialector, error) {
	switch cfg.Driver {
	case "", DBDriverPostgres:
		dsn, err := buildPostgresDSN(logger, cfg)
		if err != nil {
			return nil, err
		}
		return postgres.Open(dsn), nil
	case DBDriverSQLite:
		logger.Info("Using SQLite database", "path", cfg.SQLitePath)
		return sqlite.Open(cfg.SQLitePath), nil
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q (supported: %s, %s)", cfg.Driver, DBDriverPostgres, DBDriverSQLite)
	}
}

func buildPostgresDSN(logger *log.Logger, cfg *DBConfig) (string, error) {
	if appDatabaseURL := sanitizeEnv(GetValueFromEnvironmentVariable("APP_DATABASE_URL", "")); appDatabaseURL != "" {
		logger.Info("Using APP_DATABASE_URL for database connection")
		return appDatabaseURL, nil
	}

	host, portStr, user, pass, dbName, ssl := getDatabaseEnvParams()
	if ssl == "" {
		ssl = cfg.SSLMode
	}

	missing := []string{}

	if host == "" {
		missing = append(missing, "POSTGRES_HOST")
	}

	if portStr == "" {
		missing = append(missing, "POSTGRES_PORT")
	}

	if user == "" {
		missing = append(missing, "POSTGRES_USER")
	}

	if dbName == "" {
		missing = append(missing, "POSTGRES_DB_NAME")
	}

	if len(missing) > 0 {
		logger.Error("Missing required database environment variables", "missing_vars", strings.Join(missing, ", "))
		return "", fmt.Errorf("missing required database env vars: %s", strings.Join(missing, ", "))
	}

	port, err := strconv.Atoi(portStr)
	if err != nil {
		logger.Error("Invalid POSTGRES_PORT", "error", err)
		return "", fmt.Errorf("invalid POSTGRES_PORT %q: %w", portStr, err)
	}

	logger.Info("Connecting to database",
		"host", host,
		"port", port,
		"user", user,
		"dbname", dbName,
		"sslmode", ssl,
	)

	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		host, port, user, pass, dbName, ssl,
	), nil
}

func getDatabaseEnvParams() (host, port, user, pass, dbName, ssl string) {
	host = sanitizeEnv(GetValueFromEnvironmentVariable("POSTGRES_HOST", ""))
	port = sanitizeEnv(GetValueFromEnvironmentVariable("POSTGRES_PORT", ""))
	user = sanitizeEnv(GetValueFromEnvironmentVariable("POSTGRES_USER", ""))
	pass = sanitizeEnv(GetValueFromEnvironmentVariable("POSTGRES_PASSWORD", ""))
	dbName = sanitizeEnv(GetValueFromEnvironmentVariable("POSTGRES_DB_NAME", ""))
	ssl = sanitizeEnv(GetValueFromEnvironmentVariable("POSTGRES_SSLMODE", ""))

	return host, port, user, pass, dbName, ssl
}

func sanitizeEnv(v string) string {
	s := strings.TrimSpace(v)

	if len(s) >= 2 && ((s[0] == '"' && s[len(s)-1] == '"') || (s[0] == '\'' && s[len(s)-1] == '\'')) {
		s = s[1 : len(s)-1]
	}

	return s
}

func AutoMigrate(logger *log.Logger, db *gorm.DB, models ...interface{}) error {
	if db == nil {
		logger.Error("Cannot migrate: db is empty")
		return fmt.Errorf("cannot migrate: db is empty")
	}

	if err := db.AutoMigrate(models...); err != nil {
		logger.Error("Database migration failed", "error", err)
		return fmt.Errorf("auto-migrate failed: %w", err)
	}

	logger.Info("Database migration completed successfully")

	return nil
}

func CloseDatabase(db *gorm.DB, logger *log.Logger) {
	if db == nil {
		return
	}

	sqlDB, err := db.DB()
	if err != nil {
		logger.Error("Failed to get SQL DB instance", "error", err)
		return
	}

	if err := sqlDB.Close(); err != nil {
		logger.Error("Failed to close database", "error", err)
	} else {
		logger.Info("Database closed successfully")
	}
}
