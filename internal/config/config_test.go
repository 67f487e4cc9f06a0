package config

import (
	"os"
	"testing"
	"time"
)

func TestLoad_WithRequiredVars(t *testing.T) {
	os.Setenv("MONGODB_URL", "mongodb://localhost:27017")
	defer os.Unsetenv("MONGODB_URL")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if cfg.MongoURL != "mongodb://localhost:27017" {
		t.Errorf("expected MongoURL to be set, got %s", cfg.MongoURL)
	}
}

func TestLoad_MissingRequired(t *testing.T) {
	os.Unsetenv("MONGODB_URL")

	_, err := Load()
	if err == nil {
		t.Fatal("expected error for missing required vars, got nil")
	}
}

func TestConfig_Defaults(t *testing.T) {
	os.Setenv("MONGODB_URL", "mongodb://localhost:27017")
	defer os.Unsetenv("MONGODB_URL")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if cfg.AppEnv != "development" {
		t.Errorf("expected default AppEnv 'development', got %s", cfg.AppEnv)
	}
	if cfg.AppPort != 8080 {
		t.Errorf("expected default AppPort 8080, got %d", cfg.AppPort)
	}
	if cfg.MongoDatabase != "userprofile-system" {
		t.Errorf("expected default MongoDatabase 'userprofile-system', got %s", cfg.MongoDatabase)
	}
	if cfg.LogFormat != "json" {
		t.Errorf("expected default LogFormat 'json', got %s", cfg.LogFormat)
	}
	if cfg.ShutdownTimeout != 30*time.Second {
		t.Errorf("expected default ShutdownTimeout 30s, got %s", cfg.ShutdownTimeout)
	}
	if !cfg.RateLimitEnabled {
		t.Error("expected rate limiting enabled by default")
	}
	if cfg.MaxRequestBodySize != 1048576 {
		t.Errorf("expected default MaxRequestBodySize 1048576, got %d", cfg.MaxRequestBodySize)
	}
}

func TestConfig_EnvHelpers(t *testing.T) {
	cfg := &Config{AppEnv: "development"}
	if !cfg.IsDevelopment() || cfg.IsProduction() {
		t.Error("expected development mode")
	}

	cfg.AppEnv = "production"
	if cfg.IsDevelopment() || !cfg.IsProduction() {
		t.Error("expected production mode")
	}
}

func TestConfig_GetCORSAllowedOrigins(t *testing.T) {
	cfg := &Config{CORSAllowedOrigins: ""}
	if got := cfg.GetCORSAllowedOrigins(); got != nil {
		t.Errorf("expected nil for empty origins, got %v", got)
	}

	cfg.CORSAllowedOrigins = "https://example.com, https://app.example.com ,"
	got := cfg.GetCORSAllowedOrigins()
	if len(got) != 2 {
		t.Fatalf("expected 2 origins, got %d: %v", len(got), got)
	}
	if got[0] != "https://example.com" || got[1] != "https://app.example.com" {
		t.Errorf("unexpected origins: %v", got)
	}
}
