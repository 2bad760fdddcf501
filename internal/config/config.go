package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	JWTSecret   string
	JWTIssuer   string
	JWTAudience string
	JWTExpiry   time.Duration
	HTTPAddr    string
	DBDSN       string
	Environment string
}

// fileConfig is the YAML shape of CONFIG_FILE. Durations are written as
// strings like "24h".
type fileConfig struct {
	JWTSecret   string `yaml:"jwt_secret"`
	JWTIssuer   string `yaml:"jwt_issuer"`
	JWTAudience string `yaml:"jwt_audience"`
	JWTExpiry   string `yaml:"jwt_expiry"`
	HTTPAddr    string `yaml:"http_addr"`
	DBDSN       string `yaml:"db_dsn"`
	Environment string `yaml:"environment"`
}

// applyFile overlays non-empty file values onto the defaults. A file that
// fails to parse is ignored.
func applyFile(config *Config, data []byte) {
	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return
	}
	if fc.JWTSecret != "" {
		config.JWTSecret = fc.JWTSecret
	}
	if fc.JWTIssuer != "" {
		config.JWTIssuer = fc.JWTIssuer
	}
	if fc.JWTAudience != "" {
		config.JWTAudience = fc.JWTAudience
	}
	if fc.JWTExpiry != "" {
		if expiry, err := time.ParseDuration(fc.JWTExpiry); err == nil {
			config.JWTExpiry = expiry
		}
	}
	if fc.HTTPAddr != "" {
		config.HTTPAddr = fc.HTTPAddr
	}
	if fc.DBDSN != "" {
		config.DBDSN = fc.DBDSN
	}
	if fc.Environment != "" {
		config.Environment = fc.Environment
	}
}

// Load builds the configuration from environment variables. If CONFIG_FILE
// points at a YAML file, its values are applied first and the environment
// overrides them.
func Load() *Config {
	config := &Config{
		JWTSecret:   "your-secret-key-change-in-production",
		JWTIssuer:   "assetflow-api",
		JWTAudience: "assetflow-api",
		JWTExpiry:   24 * time.Hour,
		HTTPAddr:    ":8080",
	}

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if data, err := os.ReadFile(path); err == nil {
			applyFile(config, data)
		}
	}

	config.JWTSecret = getEnv("JWT_SECRET", config.JWTSecret)
	config.JWTIssuer = getEnv("JWT_ISS", config.JWTIssuer)
	config.JWTAudience = getEnv("JWT_AUD", config.JWTAudience)
	config.HTTPAddr = getEnv("HTTP_ADDR", config.HTTPAddr)
	config.DBDSN = getEnv("DB_DSN", config.DBDSN)
	config.Environment = getEnv("ENVIRONMENT", config.Environment)

	if expiryStr := os.Getenv("JWT_EXPIRY"); expiryStr != "" {
		if expiry, err := time.ParseDuration(expiryStr); err == nil {
			config.JWTExpiry = expiry
		}
	}

	return config
}

// Validate checks the configuration for values that would be unsafe or
// unusable at runtime.
func (c *Config) Validate() error {
	if len(c.JWTSecret) < 32 {
		return errors.New("JWT secret must be at least 32 characters")
	}
	if c.JWTIssuer == "" {
		return errors.New("JWT issuer is required")
	}
	if c.JWTAudience == "" {
		return errors.New("JWT audience is required")
	}
	if c.JWTExpiry < time.Minute {
		return fmt.Errorf("JWT expiry %v is too short, minimum is 1m", c.JWTExpiry)
	}
	if c.JWTExpiry > 30*24*time.Hour {
		return fmt.Errorf("JWT expiry %v is too long, maximum is 720h", c.JWTExpiry)
	}
	env := c.Environment
	if env == "" {
		env = os.Getenv("ENVIRONMENT")
	}
	if env == "production" && c.JWTSecret == "your-secret-key-change-in-production" {
		return errors.New("default JWT secret is not allowed in production")
	}
	return nil
}

// LoadAndValidate loads the configuration and rejects invalid values.
func LoadAndValidate() (*Config, error) {
	cfg := Load()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
