package colorfilter

import (
	"context"
	"log/slog"
	"time"

	"github.com/dukerupert/shoplisl/internal/metrics"
	"golang.org/x/sync/singleflight"
)

// maxAttempts bounds how often a poor solve is repeated.
const maxAttempts = 3

// Service answers filter requests from the cache, solving on a miss.
// Concurrent requests for the same color share one solve.
type Service struct {
	cache   *Cache
	group   singleflight.Group
	logger  *slog.Logger
	metrics *metrics.Collector
	solve   func(Color) Result
}

func NewService(cache *Cache, logger *slog.Logger, mc *metrics.Collector) *Service {
	return &Service{
		cache:   cache,
		logger:  logger.With("component", "colorfilter"),
		metrics: mc,
		solve:   func(c Color) Result { return NewSolver(c, nil).Solve() },
	}
}

// Filter returns the CSS filter for hex, e.g. "#f44336".
func (s *Service) Filter(ctx context.Context, hex string) (Result, error) {
	target, err := ParseHex(hex)
	if err != nil {
		return Result{}, err
	}
	key := target.Hex()

	if r, ok := s.cache.Get(ctx, key); ok {
		return r, nil
	}

	v, err, shared := s.group.Do(key, func() (any, error) {
		start := time.Now()
		var best Result
		for attempt := 1; attempt <= maxAttempts; attempt++ {
			r := s.solve(target)
			if attempt == 1 || r.Loss < best.Loss {
				best = r
			}
			if best.Quality != Poor {
				break
			}
		}
		elapsed := time.Since(start)
		s.metrics.RecordSolve(best.Loss, elapsed.Seconds())
		s.logSolve(key, best, elapsed)

		s.cache.Put(context.WithoutCancel(ctx), key, best)
		return best, nil
	})
	if err != nil {
		return Result{}, err
	}
	if shared {
		s.logger.Debug("shared filter solve", "color", key)
	}
	return v.(Result), nil
}

func (s *Service) logSolve(key string, r Result, elapsed time.Duration) {
	args := []any{"color", key, "loss", r.Loss, "quality", r.Quality, "filter", r.Filter, "duration", elapsed}
	switch r.Quality {
	case Perfect:
		s.logger.Debug("filter solved", args...)
	case Close, Acceptable:
		s.logger.Info("filter solved", args...)
	default:
		s.logger.Warn("filter solve is poor, consider re-running", args...)
	}
}
