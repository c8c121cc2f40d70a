package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Port            string   `mapstructure:"PORT"`
	Env             string   `mapstructure:"ENV"`
	DatabaseURL     string   `mapstructure:"DATABASE_URL"`
	DBMaxConns      int32    `mapstructure:"DB_MAX_CONNS"`
	DBMinConns      int32    `mapstructure:"DB_MIN_CONNS"`
	MigrationsDir   string   `mapstructure:"MIGRATIONS_DIR"`
	Authority       string   `mapstructure:"AUTHORITY"`
	OpenAIAPIKey    string   `mapstructure:"OPENAI_API_KEY"`
	OpenAIModel     string   `mapstructure:"OPENAI_MODEL"`
	APIKeys         []string `mapstructure:"API_KEYS"`
	StrictAll       bool     `mapstructure:"STRICT_ALL"`
	VerifyTimeoutMS int      `mapstructure:"VERIFY_TIMEOUT_MS"`
	CORSOrigins     []string `mapstructure:"CORS_ORIGINS"`
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("PORT", "8000")
	v.SetDefault("ENV", "development")
	v.SetDefault("DB_MAX_CONNS", 10)
	v.SetDefault("DB_MIN_CONNS", 2)
	v.SetDefault("MIGRATIONS_DIR", "migrations")
	v.SetDefault("AUTHORITY", "reference")
	v.SetDefault("OPENAI_MODEL", "gpt-4o-mini")
	v.SetDefault("CORS_ORIGINS", "http://localhost:3000")

	// Bind env vars explicitly so Unmarshal picks them up
	v.BindEnv("PORT")
	v.BindEnv("ENV")
	v.BindEnv("DATABASE_URL")
	v.BindEnv("DB_MAX_CONNS")
	v.BindEnv("DB_MIN_CONNS")
	v.BindEnv("MIGRATIONS_DIR")
	v.BindEnv("AUTHORITY")
	v.BindEnv("OPENAI_API_KEY")
	v.BindEnv("OPENAI_MODEL")
	v.BindEnv("API_KEYS")
	v.BindEnv("STRICT_ALL")
	v.BindEnv("VERIFY_TIMEOUT_MS")
	v.BindEnv("CORS_ORIGINS")

	// Try reading .env file, but don't fail if missing
	_ = v.ReadInConfig()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.CORSOrigins == nil {
		if origins := v.GetString("CORS_ORIGINS"); origins != "" {
			cfg.CORSOrigins = strings.Split(origins, ",")
		}
	}
	if cfg.APIKeys == nil {
		if keys := v.GetString("API_KEYS"); keys != "" {
			cfg.APIKeys = strings.Split(keys, ",")
		}
	}

	return cfg, nil
}

func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// IsProduction returns true when the server is configured for production mode.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// VerifyTimeout returns the configured reconciliation timeout override, or
// zero when the per-calculator policy table should decide.
func (c *Config) VerifyTimeout() time.Duration {
	if c.VerifyTimeoutMS <= 0 {
		return 0
	}
	return time.Duration(c.VerifyTimeoutMS) * time.Millisecond
}

// Validate checks that the configuration is safe to run. The database is an
// optional collaborator, but the authority mode and its credentials must be
// coherent, and production refuses to run unauthenticated.
func (c *Config) Validate() error {
	switch c.Authority {
	case "reference", "off":
	case "openai":
		if c.OpenAIAPIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY is required when AUTHORITY is \"openai\"")
		}
	default:
		return fmt.Errorf("AUTHORITY must be \"reference\", \"openai\", or \"off\", got %q", c.Authority)
	}

	if c.IsProduction() && len(c.APIKeys) == 0 {
		return fmt.Errorf("API_KEYS is required in production; refusing to serve unauthenticated")
	}

	return nil
}
