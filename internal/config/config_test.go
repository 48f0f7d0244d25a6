package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"SHOPLISL_PORT", "SHOPLISL_DB_PATH", "SHOPLISL_TENANT", "SHOPLISL_LOG_LEVEL",
		"SHOPLISL_LOG_FORMAT", "SHOPLISL_REDIS_URL", "SHOPLISL_FILTER_CACHE_SIZE",
		"SHOPLISL_FILTER_CACHE_TTL_HOURS", "SHOPLISL_ALIASES_PATH", "SHOPLISL_ACCESS_PIN_HASH",
		"SHOPLISL_RATE_LIMIT", "SHOPLISL_WS_ORIGINS", "SHOPLISL_S3_ENDPOINT", "SHOPLISL_S3_BUCKET",
		"SHOPLISL_S3_REGION", "SHOPLISL_S3_ACCESS_KEY", "SHOPLISL_S3_SECRET_KEY", "SHOPLISL_BACKUP_PASSPHRASE",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != "8080" || cfg.DBPath != "shoplisl.db" || cfg.Tenant != DefaultTenant {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	if cfg.FilterCacheSize != 256 || cfg.FilterCacheTTL != 720*time.Hour || cfg.RateLimit != 60 {
		t.Errorf("unexpected numeric defaults: %+v", cfg)
	}
	if cfg.S3Region != "us-east-1" || cfg.S3Bucket != "" {
		t.Errorf("unexpected S3 defaults: %+v", cfg)
	}
	if cfg.RedisURL != "" || cfg.AccessPINHash != "" || cfg.WSOriginPatterns != nil {
		t.Errorf("optional settings should be empty: %+v", cfg)
	}
}

func TestLoadDotEnvAndOverride(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), ".env")
	content := "SHOPLISL_PORT=9000\nSHOPLISL_TENANT=family\nSHOPLISL_WS_ORIGINS=a.example, b.example\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("SHOPLISL_PORT", "9100")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != "9100" {
		t.Errorf("Port = %q, environment should win over .env", cfg.Port)
	}
	if cfg.Tenant != "family" {
		t.Errorf("Tenant = %q, want family", cfg.Tenant)
	}
	if len(cfg.WSOriginPatterns) != 2 || cfg.WSOriginPatterns[1] != "b.example" {
		t.Errorf("WSOriginPatterns = %v", cfg.WSOriginPatterns)
	}
}

func TestLoadInvalidNumbers(t *testing.T) {
	tests := []struct {
		key, value string
	}{
		{"SHOPLISL_FILTER_CACHE_SIZE", "lots"},
		{"SHOPLISL_FILTER_CACHE_SIZE", "0"},
		{"SHOPLISL_FILTER_CACHE_TTL_HOURS", "1.5"},
		{"SHOPLISL_RATE_LIMIT", "x"},
	}
	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.value)
			if _, err := Load(filepath.Join(t.TempDir(), "missing.env")); err == nil {
				t.Error("expected error")
			}
		})
	}
}
