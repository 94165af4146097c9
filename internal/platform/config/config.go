package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"worktracker/internal/domain/earnings"
)

type Config struct {
	Addr                string
	Environment         string
	LogLevel            string
	LogPretty           bool
	DeductionModel      string
	MaxBodyBytes        int64
	MaxUploadBytes      int64
	RateLimitPerMinute  int
	ImportRatePerMinute int
	MetricsEnabled      bool
	ShutdownTimeout     time.Duration
}

var defaults = map[string]any{
	"APP_ADDR":               ":8080",
	"APP_ENV":                "development",
	"LOG_LEVEL":              "info",
	"LOG_PRETTY":             false,
	"DEDUCTION_MODEL":        earnings.ModelFlat,
	"MAX_BODY_BYTES":         1048576,
	"MAX_UPLOAD_BYTES":       10485760,
	"RATE_LIMIT_PER_MINUTE":  60,
	"IMPORT_RATE_PER_MINUTE": 10,
	"METRICS_ENABLED":        true,
	"SHUTDOWN_TIMEOUT":       "10s",
}

// Load reads configuration from the environment. A .env file in the working
// directory is applied first without overriding variables already set.
func Load() Config {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "config: ignoring .env: %v\n", err)
	}
	return FromViper(newViper())
}

// LoadFile is Load with an additional config file (yaml, json, toml or env)
// whose values sit below the environment.
func LoadFile(path string) (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	v := newViper()
	if strings.TrimSpace(path) != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}
	return FromViper(v), nil
}

func newViper() *viper.Viper {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()
	return v
}

// FromViper maps an already populated viper instance onto Config.
func FromViper(v *viper.Viper) Config {
	return Config{
		Addr:                v.GetString("APP_ADDR"),
		Environment:         v.GetString("APP_ENV"),
		LogLevel:            v.GetString("LOG_LEVEL"),
		LogPretty:           v.GetBool("LOG_PRETTY"),
		DeductionModel:      strings.ToLower(strings.TrimSpace(v.GetString("DEDUCTION_MODEL"))),
		MaxBodyBytes:        v.GetInt64("MAX_BODY_BYTES"),
		MaxUploadBytes:      v.GetInt64("MAX_UPLOAD_BYTES"),
		RateLimitPerMinute:  v.GetInt("RATE_LIMIT_PER_MINUTE"),
		ImportRatePerMinute: v.GetInt("IMPORT_RATE_PER_MINUTE"),
		MetricsEnabled:      v.GetBool("METRICS_ENABLED"),
		ShutdownTimeout:     v.GetDuration("SHUTDOWN_TIMEOUT"),
	}
}

func (c Config) IsProduction() bool {
	return c.Environment == "production"
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.Addr) == "" {
		return fmt.Errorf("APP_ADDR is required")
	}
	if _, err := earnings.ModelByName(c.DeductionModel); err != nil {
		return fmt.Errorf("DEDUCTION_MODEL must be %q or %q", earnings.ModelFlat, earnings.ModelAnnualized)
	}
	if c.MaxBodyBytes < 1024 {
		return fmt.Errorf("MAX_BODY_BYTES must be at least 1024")
	}
	if c.MaxUploadBytes < c.MaxBodyBytes {
		return fmt.Errorf("MAX_UPLOAD_BYTES must not be smaller than MAX_BODY_BYTES")
	}
	if c.RateLimitPerMinute <= 0 {
		return fmt.Errorf("RATE_LIMIT_PER_MINUTE must be positive")
	}
	if c.ImportRatePerMinute <= 0 {
		return fmt.Errorf("IMPORT_RATE_PER_MINUTE must be positive")
	}
	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("SHUTDOWN_TIMEOUT must be positive")
	}
	return nil
}
