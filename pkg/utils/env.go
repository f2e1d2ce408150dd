package utils

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Env reads a trimmed environment variable. Blank values count as unset.
func Env(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}

func EnvString(key, defaultValue string) string {
	if v := Env(key); v != "" {
		return v
	}
	return defaultValue
}

// EnvBool falls back to defaultValue when the variable is unset or not a bool.
func EnvBool(key string, defaultValue bool) bool {
	b, err := strconv.ParseBool(Env(key))
	if err != nil {
		return defaultValue
	}
	return b
}

func EnvPositiveInt(key string, defaultValue int) int {
	v, err := strconv.Atoi(Env(key))
	if err != nil || v <= 0 {
		return defaultValue
	}
	return v
}

func EnvPositiveInt64(key string, defaultValue int64) int64 {
	v, err := strconv.ParseInt(Env(key), 10, 64)
	if err != nil || v <= 0 {
		return defaultValue
	}
	return v
}

func EnvPositiveDuration(key string, defaultValue time.Duration) time.Duration {
	v, err := time.ParseDuration(Env(key))
	if err != nil || v <= 0 {
		return defaultValue
	}
	return v
}

// EnvRatio accepts values in [0, 1], such as sample rates.
func EnvRatio(key string, defaultValue float64) float64 {
	v, err := strconv.ParseFloat(Env(key), 64)
	if err != nil || v < 0 || v > 1 {
		return defaultValue
	}
	return v
}

// EnvList splits a comma separated variable, dropping blank items.
func EnvList(key string) []string {
	raw := Env(key)
	if raw == "" {
		return nil
	}

	var items []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
