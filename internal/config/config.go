package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// DefaultTenant is the account every client shares.
const DefaultTenant = "shared-shoplisl-user"

type Config struct {
	Port      string
	DBPath    string
	Tenant    string
	LogLevel  string
	LogFormat string

	RedisURL         string
	FilterCacheSize  int
	FilterCacheTTL   time.Duration
	AliasesPath      string
	AccessPINHash    string
	RateLimit        int
	WSOriginPatterns []string

	// Backups go to S3-compatible storage; all empty disables them.
	S3Endpoint       string
	S3Bucket         string
	S3Region         string
	S3AccessKey      string
	S3SecretKey      string
	BackupPassphrase string
}

// Load reads .env files (missing files are ignored) and then the
// environment. Variables already set in the environment win over .env.
func Load(files ...string) (Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", f, err)
		}
	}

	cfg := Config{
		Port:          getenv("SHOPLISL_PORT", "8080"),
		DBPath:        getenv("SHOPLISL_DB_PATH", "shoplisl.db"),
		Tenant:        getenv("SHOPLISL_TENANT", DefaultTenant),
		LogLevel:      getenv("SHOPLISL_LOG_LEVEL", "info"),
		LogFormat:     getenv("SHOPLISL_LOG_FORMAT", "text"),
		RedisURL:      os.Getenv("SHOPLISL_REDIS_URL"),
		AliasesPath:   os.Getenv("SHOPLISL_ALIASES_PATH"),
		AccessPINHash: os.Getenv("SHOPLISL_ACCESS_PIN_HASH"),

		S3Endpoint:       os.Getenv("SHOPLISL_S3_ENDPOINT"),
		S3Bucket:         os.Getenv("SHOPLISL_S3_BUCKET"),
		S3Region:         getenv("SHOPLISL_S3_REGION", "us-east-1"),
		S3AccessKey:      os.Getenv("SHOPLISL_S3_ACCESS_KEY"),
		S3SecretKey:      os.Getenv("SHOPLISL_S3_SECRET_KEY"),
		BackupPassphrase: os.Getenv("SHOPLISL_BACKUP_PASSPHRASE"),
	}

	var err error
	if cfg.FilterCacheSize, err = getenvInt("SHOPLISL_FILTER_CACHE_SIZE", 256); err != nil {
		return Config{}, err
	}
	ttlHours, err := getenvInt("SHOPLISL_FILTER_CACHE_TTL_HOURS", 720)
	if err != nil {
		return Config{}, err
	}
	cfg.FilterCacheTTL = time.Duration(ttlHours) * time.Hour
	if cfg.RateLimit, err = getenvInt("SHOPLISL_RATE_LIMIT", 60); err != nil {
		return Config{}, err
	}

	if origins := os.Getenv("SHOPLISL_WS_ORIGINS"); origins != "" {
		for _, o := range strings.Split(origins, ",") {
			if o = strings.TrimSpace(o); o != "" {
				cfg.WSOriginPatterns = append(cfg.WSOriginPatterns, o)
			}
		}
	}

	if cfg.FilterCacheSize <= 0 {
		return Config{}, fmt.Errorf("SHOPLISL_FILTER_CACHE_SIZE must be positive, got %d", cfg.FilterCacheSize)
	}
	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getenvInt(key string, fallback int) (int, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}
