package server

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/dukerupert/shoplisl/internal/colorfilter"
	"github.com/dukerupert/shoplisl/internal/handler"
	"github.com/dukerupert/shoplisl/internal/metrics"
	"github.com/dukerupert/shoplisl/internal/middleware"
	"github.com/dukerupert/shoplisl/internal/model"
	"github.com/dukerupert/shoplisl/internal/shopping"
	ws "github.com/dukerupert/shoplisl/internal/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Config struct {
	// AccessPINHash is a bcrypt hash; empty leaves the API open.
	AccessPINHash string
	// RateLimit is the number of writes per minute per client IP; 0 disables it.
	RateLimit        int
	WSOriginPatterns []string
}

type Server struct {
	shopping    *shopping.Service
	hub         *ws.Hub
	articleH    *handler.ArticleHandler
	listH       *handler.ListHandler
	departmentH *handler.DepartmentHandler
	filterH     *handler.FilterHandler
	pinGuard    *middleware.PINGuard
	rateLimiter *middleware.RateLimiter
	gatherer    prometheus.Gatherer
	cfg         Config
	logger      *slog.Logger
}

func New(svc *shopping.Service, filters *colorfilter.Service, gatherer prometheus.Gatherer, mc *metrics.Collector, cfg Config, logger *slog.Logger) *Server {
	var limiter *middleware.RateLimiter
	if cfg.RateLimit > 0 {
		limiter = middleware.NewRateLimiter(cfg.RateLimit, time.Minute)
	}

	return &Server{
		shopping:    svc,
		hub:         ws.NewHub(logger, mc),
		articleH:    handler.NewArticleHandler(svc, logger.With("component", "article")),
		listH:       handler.NewListHandler(svc, logger.With("component", "list")),
		departmentH: handler.NewDepartmentHandler(),
		filterH:     handler.NewFilterHandler(filters, logger.With("component", "filter")),
		pinGuard:    middleware.NewPINGuard(cfg.AccessPINHash, logger.With("component", "auth")),
		rateLimiter: limiter,
		gatherer:    gatherer,
		cfg:         cfg,
		logger:      logger,
	}
}

// RateLimiter returns the write limiter for cleanup tasks. It is nil when
// rate limiting is disabled.
func (s *Server) RateLimiter() *middleware.RateLimiter {
	return s.rateLimiter
}

// StartFeeds subscribes to the article and list collections and broadcasts
// every snapshot to websocket clients until ctx is done or stop is called.
func (s *Server) StartFeeds(ctx context.Context) (stop func()) {
	feedLogger := s.logger.With("component", "feed")
	onError := func(err error) {
		feedLogger.Error("live feed failed", "error", err)
	}

	stopArticles := s.shopping.WatchArticles(ctx, func(articles []model.Article) {
		if articles == nil {
			articles = []model.Article{}
		}
		s.hub.Broadcast(ws.NewSnapshot("articles", articles))
	}, onError)
	stopLists := s.shopping.WatchLists(ctx, func(lists []model.ShoppingList) {
		if lists == nil {
			lists = []model.ShoppingList{}
		}
		s.hub.Broadcast(ws.NewSnapshot("lists", lists))
	}, onError)

	return func() {
		stopArticles()
		stopLists()
	}
}

func (s *Server) Router() http.Handler {
	outerMux := http.NewServeMux()

	// Public routes
	outerMux.HandleFunc("GET /health", s.healthHandler)
	if s.gatherer != nil {
		outerMux.Handle("GET /metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	}

	// Protected routes
	protectedMux := http.NewServeMux()
	s.registerProtectedRoutes(protectedMux)
	protected := middleware.LimitWrites(s.rateLimiter)(protectedMux)
	outerMux.Handle("/", s.pinGuard.Require(protected))

	return middleware.RequestLogger(s.logger.With("component", "http"))(outerMux)
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"status":    "ok",
		"wsClients": s.hub.ClientCount(),
	})
}

func (s *Server) registerProtectedRoutes(mux *http.ServeMux) {
	// Article API routes
	mux.HandleFunc("GET /api/articles", s.articleH.List)
	mux.HandleFunc("POST /api/articles", s.articleH.Create)
	mux.HandleFunc("GET /api/articles/{id}", s.articleH.Get)
	mux.HandleFunc("PUT /api/articles/{id}", s.articleH.Update)
	mux.HandleFunc("DELETE /api/articles/{id}", s.articleH.Delete)

	// List API routes
	mux.HandleFunc("GET /api/lists", s.listH.List)
	mux.HandleFunc("POST /api/lists", s.listH.Create)
	mux.HandleFunc("POST /api/lists/seed", s.listH.Seed)
	mux.HandleFunc("GET /api/lists/{id}", s.listH.Get)
	mux.HandleFunc("PUT /api/lists/{id}", s.listH.Update)
	mux.HandleFunc("DELETE /api/lists/{id}", s.listH.Delete)
	mux.HandleFunc("GET /api/lists/{id}/grouped", s.listH.Grouped)
	mux.HandleFunc("PUT /api/lists/{id}/department-order", s.listH.UpdateDepartmentOrder)
	mux.HandleFunc("POST /api/lists/{id}/clear-checked", s.listH.ClearChecked)

	// List item routes
	mux.HandleFunc("DELETE /api/lists/{id}/items", s.listH.ClearItems)
	mux.HandleFunc("POST /api/lists/{id}/items/{article_id}", s.listH.AddItem)
	mux.HandleFunc("DELETE /api/lists/{id}/items/{article_id}", s.listH.RemoveItem)
	mux.HandleFunc("POST /api/lists/{id}/items/{article_id}/toggle", s.listH.ToggleItem)
	mux.HandleFunc("PUT /api/lists/{id}/items/{article_id}/amount", s.listH.UpdateItemAmount)

	// Departments
	mux.HandleFunc("GET /api/departments", s.departmentH.List)
	mux.HandleFunc("GET /api/departments/suggest", s.departmentH.Suggest)
	mux.HandleFunc("GET /api/departments/{id}/icon", s.departmentH.Icon)

	// Icon filters
	mux.HandleFunc("GET /api/filters/{hex}", s.filterH.Get)

	// WebSocket
	mux.HandleFunc("GET /ws", ws.HandleWebSocket(s.hub, s.cfg.WSOriginPatterns))
}
