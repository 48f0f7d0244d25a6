package main

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dukerupert/shoplisl/internal/colorfilter"
	"github.com/dukerupert/shoplisl/internal/config"
	"github.com/dukerupert/shoplisl/internal/database"
	"github.com/dukerupert/shoplisl/internal/docstore"
	"github.com/dukerupert/shoplisl/internal/logging"
	"github.com/dukerupert/shoplisl/internal/matcher"
	"github.com/dukerupert/shoplisl/internal/metrics"
	"github.com/dukerupert/shoplisl/internal/server"
	"github.com/dukerupert/shoplisl/internal/shopping"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	logger := logging.Setup(cfg.LogLevel, cfg.LogFormat)

	db, err := database.Open(cfg.DBPath)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	aliases, err := matcher.LoadAliasesFile(cfg.AliasesPath)
	if err != nil {
		slog.Error("failed to load aliases", "path", cfg.AliasesPath, "error", err)
		os.Exit(1)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	mc := metrics.New(reg)

	// Redis is optional; without it the filter cache stays in-process
	var rdb *redis.Client
	if cfg.RedisURL != "" {
		rdb, err = colorfilter.NewRedisClient(context.Background(), cfg.RedisURL)
		if err != nil {
			slog.Warn("redis unavailable, using in-process filter cache only", "error", err)
		} else {
			defer rdb.Close()
		}
	}

	svc, filters := newServices(cfg, db, rdb, matcher.New(aliases), logger, mc)

	srv := server.New(svc, filters, reg, mc, server.Config{
		AccessPINHash:    cfg.AccessPINHash,
		RateLimit:        cfg.RateLimit,
		WSOriginPatterns: cfg.WSOriginPatterns,
	}, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stopFeeds := srv.StartFeeds(ctx)
	if rl := srv.RateLimiter(); rl != nil {
		go rl.RunCleanup(ctx, 5*time.Minute)
	}

	httpServer := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           srv.Router(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		slog.Info("shoplisl starting", "addr", ":"+cfg.Port, "tenant", cfg.Tenant, "redis", rdb != nil)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down")
	stopFeeds()
	cancel()
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown error", "error", err)
		os.Exit(1)
	}
}

// newServices builds the domain services. Constructors tag their own
// component, so they get the bare logger.
func newServices(cfg config.Config, db *sql.DB, rdb *redis.Client, m *matcher.Matcher, logger *slog.Logger, mc *metrics.Collector) (*shopping.Service, *colorfilter.Service) {
	store := docstore.NewSQLStore(db, logger.With("component", "docstore"))
	svc := shopping.NewService(store, cfg.Tenant, m, logger, mc)
	cache := colorfilter.NewCache(cfg.FilterCacheSize, cfg.FilterCacheTTL, rdb, logger, mc)
	return svc, colorfilter.NewService(cache, logger, mc)
}
