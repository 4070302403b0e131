package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"

	"daily-reconciliation/internal/domain"
)

// Store drivers accepted in STORE_DRIVER.
const (
	DriverMemory   = "memory"
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
)

type Config struct {
	Store    StoreConfig
	Redis    RedisConfig
	HTTP     HTTPConfig
	Defaults DefaultsConfig
	LogLevel string
}

type StoreConfig struct {
	Driver string `validate:"oneof=memory mysql postgres"`
	DSN    string `validate:"required_unless=Driver memory"`
}

// RedisConfig is optional; an empty URL disables the date lease and the rate hint cache.
type RedisConfig struct {
	URL            string `validate:"omitempty,url"`
	LockTTLSeconds int    `validate:"gte=1"`
	HintTTLSeconds int    `validate:"gte=0"`
}

type HTTPConfig struct {
	Addr      string `validate:"required"`
	RateLimit string `validate:"required"`
}

// DefaultsConfig holds the global default delivery rates and declared coefficients.
type DefaultsConfig struct {
	CommissionHT    string `validate:"numeric"`
	TaxableSharePct string `validate:"numeric"`
	ExemptSharePct  string `validate:"numeric"`
	CoefExempt      string `validate:"numeric"`
	CoefTaxable     string `validate:"numeric"`
}

// LoadConfig reads the environment, optionally seeded from a .env file.
func LoadConfig() (Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	lockTTL, _ := strconv.Atoi(getEnv("LOCK_TTL_SECONDS", "900"))
	hintTTL, _ := strconv.Atoi(getEnv("HINT_TTL_SECONDS", "0"))

	cfg := Config{
		Store: StoreConfig{
			Driver: getEnv("STORE_DRIVER", DriverMemory),
			DSN:    getEnv("DATABASE_DSN", ""),
		},
		Redis: RedisConfig{
			URL:            getEnv("REDIS_URL", ""),
			LockTTLSeconds: lockTTL,
			HintTTLSeconds: hintTTL,
		},
		HTTP: HTTPConfig{
			Addr:      getEnv("HTTP_ADDR", ":8080"),
			RateLimit: getEnv("RATE_LIMIT", "300-M"),
		},
		Defaults: DefaultsConfig{
			CommissionHT:    getEnv("DEFAULT_COMMISSION_HT", "15"),
			TaxableSharePct: getEnv("DEFAULT_TAXABLE_SHARE_PCT", "90"),
			ExemptSharePct:  getEnv("DEFAULT_EXEMPT_SHARE_PCT", "10"),
			CoefExempt:      getEnv("DEFAULT_COEF_EXEMPT", "1.11"),
			CoefTaxable:     getEnv("DEFAULT_COEF_TAXABLE", "0.60"),
		},
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the struct tags of every section.
func (c Config) Validate() error {
	v := validator.New()
	for _, section := range []any{c.Store, c.Redis, c.HTTP, c.Defaults} {
		if err := v.Struct(section); err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}
	}
	return nil
}

// Rates returns the configured global default delivery rates.
func (d DefaultsConfig) Rates() domain.RateTable {
	return domain.RateTable{
		CommissionHT:    decimal.RequireFromString(d.CommissionHT),
		TaxableSharePct: decimal.RequireFromString(d.TaxableSharePct),
		ExemptSharePct:  decimal.RequireFromString(d.ExemptSharePct),
	}
}

// Coefficients returns the configured default declared coefficients.
func (d DefaultsConfig) Coefficients() domain.Coefficients {
	return domain.Coefficients{
		Exempt:  decimal.RequireFromString(d.CoefExempt),
		Taxable: decimal.RequireFromString(d.CoefTaxable),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
