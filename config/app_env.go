package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/akeren/daredash-waitlist/internal/log"
	"github.com/akeren/daredash-waitlist/pkg/utils"
	"github.com/joho/godotenv"
)

const AppEnvKey = "APP_ENV"

// developmentEnvs may run schema changes from the server binary.
var developmentEnvs = []string{"", "dev", "development", "local", "test", "testing"}

// InitializeEnvFile loads ENV_FILE (default .env) without overriding variables
// already set in the process environment.
func InitializeEnvFile(logger *log.Logger) {
	if utils.EnvBool("SKIP_DOTENV", false) {
		logger.Info("Skipping env file load (SKIP_DOTENV=true)")
		return
	}

	path := utils.EnvString("ENV_FILE", ".env")

	err := godotenv.Load(path)
	switch {
	case err == nil:
		logger.Info("Environment variables loaded", "file", path)
	case errors.Is(err, fs.ErrNotExist):
		logger.Info("No env file found, using process environment", "file", path)
	default:
		logger.Warn("Failed to load env file", "file", path, "error", err.Error())
	}
}

func GetValueFromEnvironmentVariable(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}

	return defaultValue
}

func GetAppEnv() string {
	return normalizeAppEnv(os.Getenv(AppEnvKey))
}

func normalizeAppEnv(env string) string {
	return strings.ToLower(strings.TrimSpace(env))
}

func IsDevelopmentEnv(env string) bool {
	env = normalizeAppEnv(env)
	for _, allowed := range developmentEnvs {
		if env == allowed {
			return true
		}
	}
	return false
}

func ValidateAutoMigrateAllowed(appEnv string) error {
	if IsDevelopmentEnv(appEnv) {
		return nil
	}

	return fmt.Errorf("--auto-migrate is not allowed when %s=%q; run the cli migrate command instead",
		AppEnvKey, normalizeAppEnv(appEnv))
}
