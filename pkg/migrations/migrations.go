package migrations

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
	"sync"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

type migrator interface {
	Up() error
	Version() (version uint, dirty bool, err error)
	Close() (sourceErr error, databaseErr error)
}

var driverFactory = func(db *sql.DB, cfg Config) (database.Driver, error) {
	return postgres.WithInstance(db, &postgres.Config{MigrationsTable: cfg.MigrationsTable})
}

var migratorFactory = func(sourceURL string, driver database.Driver) (migrator, error) {
	return migrate.NewWithDatabaseInstance(sourceURL, "postgres", driver)
}

type Logger interface {
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

type Config struct {
	Dir             string
	MigrationsTable string
	Logger          Logger
}

// Status describes the schema version recorded in the migrations table.
type Status struct {
	Version uint
	Dirty   bool
	Applied bool
}

func (c *Config) applyDefaults() {
	if strings.TrimSpace(c.Dir) == "" {
		c.Dir = "migrations"
	}
	if strings.TrimSpace(c.MigrationsTable) == "" {
		c.MigrationsTable = "schema_migrations"
	}
}

func (c Config) info(msg string, args ...any) {
	if c.Logger != nil {
		c.Logger.Info(msg, args...)
	}
}

func (c Config) warn(msg string, args ...any) {
	if c.Logger != nil {
		c.Logger.Warn(msg, args...)
	}
}

// sourceURL builds a file:// URL; ToSlash keeps Windows paths valid.
func sourceURL(dir string) (string, string, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return "", "", fmt.Errorf("migrations: resolve dir: %w", err)
	}

	u := (&url.URL{
		Scheme: "file",
		Path:   filepath.ToSlash(absDir),
	}).String()

	return u, absDir, nil
}

// open prepares a migrator and a close func that is safe to call more than once.
func open(ctx context.Context, db *sql.DB, cfg *Config) (migrator, func(), string, error) {
	if db == nil {
		return nil, nil, "", fmt.Errorf("migrations: db is nil")
	}
	if err := ctx.Err(); err != nil {
		return nil, nil, "", err
	}

	cfg.applyDefaults()

	src, absDir, err := sourceURL(cfg.Dir)
	if err != nil {
		return nil, nil, "", err
	}

	driver, err := driverFactory(db, *cfg)
	if err != nil {
		return nil, nil, "", fmt.Errorf("migrations: postgres driver: %w", err)
	}

	m, err := migratorFactory(src, driver)
	if err != nil {
		return nil, nil, "", fmt.Errorf("migrations: init: %w", err)
	}

	var once sync.Once
	closeFn := func() {
		once.Do(func() {
			srcErr, dbErr := m.Close()
			if srcErr != nil {
				cfg.warn("Migrations source close error", "error", srcErr)
			}
			if dbErr != nil {
				cfg.warn("Migrations db close error", "error", dbErr)
			}
		})
	}

	return m, closeFn, absDir, nil
}

// Up applies all pending migrations. migrate has no context support, so a
// cancelled ctx closes the migrator and returns ctx.Err().
func Up(ctx context.Context, db *sql.DB, cfg Config) error {
	if ctx == nil {
		ctx = context.Background()
	}

	m, closeMigrator, absDir, err := open(ctx, db, &cfg)
	if err != nil {
		return err
	}
	defer closeMigrator()

	cfg.info("Running SQL migrations", "dir", absDir, "table", cfg.MigrationsTable)

	errCh := make(chan error, 1)
	go func() {
		errCh <- m.Up()
	}()

	select {
	case <-ctx.Done():
		closeMigrator()
		return ctx.Err()
	case err := <-errCh:
		if errors.Is(err, migrate.ErrNoChange) {
			cfg.info("No migrations to apply")
			return nil
		}
		if err != nil {
			return fmt.Errorf("migrations: up: %w", err)
		}
	}

	cfg.info("Migrations applied successfully")
	return nil
}

// CurrentStatus reports the applied version without changing the schema.
func CurrentStatus(ctx context.Context, db *sql.DB, cfg Config) (Status, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	m, closeMigrator, _, err := open(ctx, db, &cfg)
	if err != nil {
		return Status{}, err
	}
	defer closeMigrator()

	version, dirty, err := m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return Status{}, nil
	}
	if err != nil {
		return Status{}, fmt.Errorf("migrations: version: %w", err)
	}

	return Status{Version: version, Dirty: dirty, Applied: true}, nil
}
