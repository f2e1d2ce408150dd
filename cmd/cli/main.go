package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"time"

	"github.com/akeren/daredash-waitlist/config"
	"github.com/akeren/daredash-waitlist/domain/waitlist"
	"github.com/akeren/daredash-waitlist/internal/log"
	"github.com/akeren/daredash-waitlist/pkg/migrations"
	"github.com/akeren/daredash-waitlist/pkg/utils"
	"gorm.io/gorm"
)

const (
	migrateTimeout = 5 * time.Minute
	queryTimeout   = time.Minute
)

func main() {
	// Logs go to stderr so export and stats output stays clean on stdout.
	logger := log.NewLoggerWithWriter(os.Stderr)

	config.InitializeEnvFile(logger)

	args := os.Args[1:]
	if len(args) == 0 {
		printUsage()
		os.Exit(1)
	}

	var err error

	switch args[0] {
	case "migrate":
		err = runMigrate(logger)
	case "migrate-status":
		err = runMigrateStatus(logger)
	case "export":
		err = withWaitlistService(logger, func(ctx context.Context, service waitlist.WaitlistService) error {
			entries, err := service.ListEntries(ctx)
			if err != nil {
				return err
			}
			return writeEntriesCSV(os.Stdout, entries)
		})
	case "stats":
		err = withWaitlistService(logger, func(ctx context.Context, service waitlist.WaitlistService) error {
			counts, err := service.CountByReferralSource(ctx)
			if err != nil {
				return err
			}
			return writeReferralStats(os.Stdout, counts)
		})
	case "help", "-h", "--help":
		printUsage()
		return
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n", args[0])
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		logger.Error("Command failed", "command", args[0], "error", err.Error())
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("Usage: cli <command>")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  migrate          Apply pending SQL migrations and exit")
	fmt.Println("  migrate-status   Print the applied schema version")
	fmt.Println("  export           Write all waitlist entries to stdout as CSV")
	fmt.Println("  stats            Print waitlist entry counts per referral source")
}

func openDatabase(logger *log.Logger) (*gorm.DB, *sql.DB, error) {
	db, err := config.NewDatabase(logger, config.NewDBConfig())
	if err != nil {
		return nil, nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get SQL DB instance: %w", err)
	}

	return db, sqlDB, nil
}

func closeDatabase(logger *log.Logger, sqlDB *sql.DB) {
	if err := sqlDB.Close(); err != nil {
		logger.Warn("Failed to close SQL DB", "error", err.Error())
	}
}

// SQL migrations are written for postgres; sqlite setups use --auto-migrate.
func requirePostgres() error {
	if driver := config.NewDBConfig().Driver; driver != config.DBDriverPostgres && driver != "" {
		return fmt.Errorf("SQL migrations require DB_DRIVER=%s (got %q); use --auto-migrate for %s", config.DBDriverPostgres, driver, driver)
	}
	return nil
}

func migrationsConfig(logger *log.Logger) migrations.Config {
	return migrations.Config{
		Dir:    utils.EnvString("MIGRATIONS_DIR", "migrations"),
		Logger: logger,
	}
}

func runMigrate(logger *log.Logger) error {
	if err := requirePostgres(); err != nil {
		return err
	}

	_, sqlDB, err := openDatabase(logger)
	if err != nil {
		return err
	}
	defer closeDatabase(logger, sqlDB)

	ctx, cancel := context.WithTimeout(context.Background(), migrateTimeout)
	defer cancel()

	if err := migrations.Up(ctx, sqlDB, migrationsConfig(logger)); err != nil {
		return err
	}

	logger.Info("Database migrations completed")
	return nil
}

func runMigrateStatus(logger *log.Logger) error {
	if err := requirePostgres(); err != nil {
		return err
	}

	_, sqlDB, err := openDatabase(logger)
	if err != nil {
		return err
	}
	defer closeDatabase(logger, sqlDB)

	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	status, err := migrations.CurrentStatus(ctx, sqlDB, migrationsConfig(logger))
	if err != nil {
		return err
	}

	fmt.Println(formatMigrationStatus(status))
	return nil
}

func withWaitlistService(logger *log.Logger, fn func(context.Context, waitlist.WaitlistService) error) error {
	db, sqlDB, err := openDatabase(logger)
	if err != nil {
		return err
	}
	defer closeDatabase(logger, sqlDB)

	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	service := waitlist.NewWaitlistServiceFactory(db, logger, waitlist.ServiceConfig{}).CreateService()
	return fn(ctx, service)
}
