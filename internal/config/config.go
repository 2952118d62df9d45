package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"golang.org/x/text/currency"
)

type Config struct {
	// Storage
	DBPath string

	// Display
	Currency       string
	CategoriesFile string

	// Host container login command; empty means no host is present
	HostAuthCommand string

	LogLevel string
}

// LoadEnvFile loads a .env file for local use. A missing file is ignored.
func LoadEnvFile(paths ...string) {
	_ = godotenv.Load(paths...)
}

func Load() *Config {
	return &Config{
		DBPath:          getEnv("MASROUFI_DB_PATH", defaultDBPath()),
		Currency:        strings.ToUpper(getEnv("MASROUFI_CURRENCY", "IQD")),
		CategoriesFile:  getEnv("MASROUFI_CATEGORIES_FILE", ""),
		HostAuthCommand: getEnv("MASROUFI_HOST_AUTH_CMD", ""),
		LogLevel:        getEnv("LOG_LEVEL", "warn"),
	}
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errors []string

	if strings.TrimSpace(c.DBPath) == "" {
		errors = append(errors, "database path cannot be empty")
	}

	if _, err := currency.ParseISO(c.Currency); err != nil {
		errors = append(errors, fmt.Sprintf("invalid currency '%s': must be an ISO 4217 code", c.Currency))
	}

	if c.CategoriesFile != "" {
		if _, err := os.Stat(c.CategoriesFile); err != nil {
			errors = append(errors, fmt.Sprintf("categories file does not exist: %s", c.CategoriesFile))
		}
	}

	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "warning", "error":
	default:
		errors = append(errors, fmt.Sprintf("invalid log level '%s': must be one of debug, info, warn, error", c.LogLevel))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}
	return nil
}

func defaultDBPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "masroufi.db"
	}
	return filepath.Join(dir, "masroufi", "masroufi.db")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
