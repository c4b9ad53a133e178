package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"storeledger/m/internal/logger"
)

// Config holds application configuration values.
type Config struct {
	Secret         string
	HTTPPort       string
	DatabaseDriver string
	DatabaseDSN    string

	AdminUsername     string
	AdminPasswordHash string

	DefaultTaxRate decimal.Decimal
	CurrencySymbol string

	LogLevel  string
	LogFormat string
	LogOutput string
}

// Load reads configuration from environment variables with reasonable defaults.
func Load() (Config, error) {
	cfg := Config{
		Secret:         getEnv("SECRET", "dev_secret"),
		HTTPPort:       getEnv("HTTP_PORT", "8080"),
		DatabaseDriver: getEnv("DATABASE_DRIVER", "sqlite"),
		DatabaseDSN:    os.Getenv("DATABASE_DSN"),
		AdminUsername:  getEnv("ADMIN_USERNAME", "admin"),
		CurrencySymbol: getEnv("CURRENCY_SYMBOL", "IRR"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		LogFormat:      getEnv("LOG_FORMAT", "console"),
		LogOutput:      getEnv("LOG_OUTPUT", "stdout"),
	}

	if cfg.DatabaseDSN == "" {
		switch cfg.DatabaseDriver {
		case "postgres":
			host := getEnv("DB_HOST", "localhost")
			user := getEnv("DB_USER", "postgres")
			dbPort := getEnv("DB_PORT", "5432")
			name := getEnv("DB_NAME", "storeledger")
			password := os.Getenv("DB_PASSWORD")
			cfg.DatabaseDSN = fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", user, password, host, dbPort, name)
		default:
			cfg.DatabaseDSN = "store.sqlite"
		}
	}

	if _, err := strconv.Atoi(cfg.HTTPPort); err != nil {
		return Config{}, fmt.Errorf("invalid HTTP_PORT value %q", cfg.HTTPPort)
	}

	if cfg.DatabaseDriver != "sqlite" && cfg.DatabaseDriver != "postgres" {
		return Config{}, fmt.Errorf("DATABASE_DRIVER must be sqlite or postgres, got %q", cfg.DatabaseDriver)
	}

	rate, err := decimal.NewFromString(getEnv("DEFAULT_TAX_RATE", "0.09"))
	if err != nil || rate.IsNegative() || rate.GreaterThan(decimal.NewFromInt(1)) {
		return Config{}, fmt.Errorf("DEFAULT_TAX_RATE must be a fraction between 0 and 1")
	}
	cfg.DefaultTaxRate = rate

	cfg.AdminPasswordHash = os.Getenv("ADMIN_PASSWORD_HASH")
	if cfg.AdminPasswordHash == "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(getEnv("ADMIN_PASSWORD", "admin")), bcrypt.DefaultCost)
		if err != nil {
			return Config{}, fmt.Errorf("hash admin password: %w", err)
		}
		cfg.AdminPasswordHash = string(hashed)
	}

	return cfg, nil
}

// LoggerConfig returns a logger configuration from the main config
func (c Config) LoggerConfig() logger.LogConfig {
	return logger.LogConfig{Level: c.LogLevel, Format: c.LogFormat, Output: c.LogOutput}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
