package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/akeren/daredash-waitlist/config"
	"github.com/akeren/daredash-waitlist/domain"
	"github.com/akeren/daredash-waitlist/internal/log"
)

const shutdownTimeout = 30 * time.Second

type serverFlags struct {
	autoMigrate bool
}

func parseFlags(args []string) (serverFlags, error) {
	var f serverFlags

	fs := flag.NewFlagSet("server", flag.ContinueOnError)
	fs.BoolVar(&f.autoMigrate, "auto-migrate", false, "create or update the waitlist table before serving (development only)")
	fs.BoolVar(&f.autoMigrate, "m", false, "shorthand for --auto-migrate")

	return f, fs.Parse(args)
}

func main() {
	logger := log.NewLoggerWithJSONOutput()

	flags, err := parseFlags(os.Args[1:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		logger.Error("Invalid arguments", "error", err.Error())
		os.Exit(2)
	}

	if err := run(logger, flags); err != nil {
		logger.Error("DareDash waitlist server stopped", "error", err.Error())
		os.Exit(1)
	}
}

func run(logger *log.Logger, flags serverFlags) error {
	logger.Info("DareDash waitlist server starting", "auto_migrate", flags.autoMigrate)

	appConfig, err := config.LoadApplicationConfiguration(logger, flags.autoMigrate)
	if err != nil {
		return err
	}
	defer appConfig.Cleanup()

	domain.SetupCoreDomain(appConfig)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- appConfig.RouterService.RunHTTPServer()
	}()

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
	}

	logger.Info("Shutdown signal received, draining requests", "timeout", shutdownTimeout.String())

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := appConfig.RouterService.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error", "error", err)
		return err
	}

	logger.Info("Graceful shutdown completed")
	return nil
}
