package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func clearEnv() {
	os.Unsetenv("JWT_SECRET")
	os.Unsetenv("JWT_ISS")
	os.Unsetenv("JWT_AUD")
	os.Unsetenv("JWT_EXPIRY")
	os.Unsetenv("HTTP_ADDR")
	os.Unsetenv("DB_DSN")
	os.Unsetenv("CONFIG_FILE")
	os.Unsetenv("ENVIRONMENT")
}

func TestLoad(t *testing.T) {
	clearEnv()

	cfg := Load()

	// Check defaults
	if cfg.JWTSecret != "your-secret-key-change-in-production" {
		t.Errorf("Expected default JWT_SECRET, got %s", cfg.JWTSecret)
	}
	if cfg.JWTIssuer != "assetflow-api" {
		t.Errorf("Expected default JWT_ISS, got %s", cfg.JWTIssuer)
	}
	if cfg.JWTAudience != "assetflow-api" {
		t.Errorf("Expected default JWT_AUD, got %s", cfg.JWTAudience)
	}
	if cfg.JWTExpiry != 24*time.Hour {
		t.Errorf("Expected default JWT_EXPIRY, got %v", cfg.JWTExpiry)
	}
	if cfg.HTTPAddr != ":8080" {
		t.Errorf("Expected default HTTP_ADDR, got %s", cfg.HTTPAddr)
	}
}

func TestLoadWithEnvironment(t *testing.T) {
	clearEnv()
	os.Setenv("JWT_SECRET", "test-secret-key")
	os.Setenv("JWT_ISS", "test-issuer")
	os.Setenv("JWT_AUD", "test-audience")
	os.Setenv("JWT_EXPIRY", "2h")
	os.Setenv("HTTP_ADDR", ":9090")
	defer clearEnv()

	cfg := Load()

	if cfg.JWTSecret != "test-secret-key" {
		t.Errorf("Expected JWT_SECRET from env, got %s", cfg.JWTSecret)
	}
	if cfg.JWTIssuer != "test-issuer" {
		t.Errorf("Expected JWT_ISS from env, got %s", cfg.JWTIssuer)
	}
	if cfg.JWTAudience != "test-audience" {
		t.Errorf("Expected JWT_AUD from env, got %s", cfg.JWTAudience)
	}
	if cfg.JWTExpiry != 2*time.Hour {
		t.Errorf("Expected JWT_EXPIRY from env, got %v", cfg.JWTExpiry)
	}
	if cfg.HTTPAddr != ":9090" {
		t.Errorf("Expected HTTP_ADDR from env, got %s", cfg.HTTPAddr)
	}
}

func TestLoadWithConfigFile(t *testing.T) {
	clearEnv()
	defer clearEnv()

	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `jwt_issuer: file-issuer
jwt_expiry: 6h
http_addr: ":7070"
db_dsn: postgres://file-host/assetflow
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}
	os.Setenv("CONFIG_FILE", path)

	cfg := Load()

	if cfg.JWTIssuer != "file-issuer" {
		t.Errorf("Expected issuer from file, got %s", cfg.JWTIssuer)
	}
	if cfg.JWTExpiry != 6*time.Hour {
		t.Errorf("Expected expiry from file, got %v", cfg.JWTExpiry)
	}
	if cfg.HTTPAddr != ":7070" {
		t.Errorf("Expected addr from file, got %s", cfg.HTTPAddr)
	}
	if cfg.DBDSN != "postgres://file-host/assetflow" {
		t.Errorf("Expected DSN from file, got %s", cfg.DBDSN)
	}

	// environment beats the file
	os.Setenv("JWT_ISS", "env-issuer")
	cfg = Load()
	if cfg.JWTIssuer != "env-issuer" {
		t.Errorf("Expected env to override file issuer, got %s", cfg.JWTIssuer)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name        string
		config      *Config
		expectError bool
	}{
		{
			name: "valid config",
			config: &Config{
				JWTSecret:   "valid-secret-that-is-long-enough-for-testing",
				JWTIssuer:   "test-issuer",
				JWTAudience: "test-audience",
				JWTExpiry:   time.Hour,
			},
			expectError: false,
		},
		{
			name: "empty secret",
			config: &Config{
				JWTSecret:   "",
				JWTIssuer:   "test-issuer",
				JWTAudience: "test-audience",
				JWTExpiry:   time.Hour,
			},
			expectError: true,
		},
		{
			name: "secret too short",
			config: &Config{
				JWTSecret:   "short",
				JWTIssuer:   "test-issuer",
				JWTAudience: "test-audience",
				JWTExpiry:   time.Hour,
			},
			expectError: true,
		},
		{
			name: "empty issuer",
			config: &Config{
				JWTSecret:   "valid-secret-that-is-long-enough-for-testing",
				JWTIssuer:   "",
				JWTAudience: "test-audience",
				JWTExpiry:   time.Hour,
			},
			expectError: true,
		},
		{
			name: "empty audience",
			config: &Config{
				JWTSecret:   "valid-secret-that-is-long-enough-for-testing",
				JWTIssuer:   "test-issuer",
				JWTAudience: "",
				JWTExpiry:   time.Hour,
			},
			expectError: true,
		},
		{
			name: "negative expiry",
			config: &Config{
				JWTSecret:   "valid-secret-that-is-long-enough-for-testing",
				JWTIssuer:   "test-issuer",
				JWTAudience: "test-audience",
				JWTExpiry:   -time.Hour,
			},
			expectError: true,
		},
		{
			name: "zero expiry",
			config: &Config{
				JWTSecret:   "valid-secret-that-is-long-enough-for-testing",
				JWTIssuer:   "test-issuer",
				JWTAudience: "test-audience",
				JWTExpiry:   0,
			},
			expectError: true,
		},
		{
			name: "expiry too short",
			config: &Config{
				JWTSecret:   "valid-secret-that-is-long-enough-for-testing",
				JWTIssuer:   "test-issuer",
				JWTAudience: "test-audience",
				JWTExpiry:   30 * time.Second,
			},
			expectError: true,
		},
		{
			name: "expiry too long",
			config: &Config{
				JWTSecret:   "valid-secret-that-is-long-enough-for-testing",
				JWTIssuer:   "test-issuer",
				JWTAudience: "test-audience",
				JWTExpiry:   31 * 24 * time.Hour,
			},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if (err != nil) != tt.expectError {
				t.Errorf("Validate() error = %v, expectError %v", err, tt.expectError)
			}
		})
	}
}

func TestLoadAndValidate(t *testing.T) {
	clearEnv()
	os.Setenv("JWT_SECRET", "test-secret-key-that-is-long-enough-for-testing")
	os.Setenv("JWT_ISS", "test-issuer")
	os.Setenv("JWT_AUD", "test-audience")
	os.Setenv("JWT_EXPIRY", "1h")
	defer clearEnv()

	cfg, err := LoadAndValidate()
	if err != nil {
		t.Errorf("LoadAndValidate() failed with valid config: %v", err)
	}
	if cfg == nil {
		t.Error("LoadAndValidate() returned nil config with valid config")
	}

	// Test with invalid configuration
	os.Setenv("JWT_SECRET", "short")

	_, err = LoadAndValidate()
	if err == nil {
		t.Error("LoadAndValidate() should fail with invalid config")
	}
}

func TestProductionSecretValidation(t *testing.T) {
	clearEnv()
	os.Setenv("ENVIRONMENT", "production")
	os.Setenv("JWT_SECRET", "your-secret-key-change-in-production")
	defer clearEnv()

	cfg := Load()
	err := cfg.Validate()
	if err == nil {
		t.Error("Production validation should fail with default secret")
	}

	// Test with proper production secret
	os.Setenv("JWT_SECRET", "proper-production-secret-that-is-long-enough")

	cfg = Load()
	err = cfg.Validate()
	if err != nil {
		t.Errorf("Production validation should pass with proper secret: %v", err)
	}
}
