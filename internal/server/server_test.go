package server

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	ws "github.com/coder/websocket"
	"github.com/dukerupert/shoplisl/internal/colorfilter"
	"github.com/dukerupert/shoplisl/internal/database"
	"github.com/dukerupert/shoplisl/internal/docstore"
	"github.com/dukerupert/shoplisl/internal/metrics"
	"github.com/dukerupert/shoplisl/internal/model"
	"github.com/dukerupert/shoplisl/internal/shopping"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/crypto/bcrypt"
)

func setupTestServer(t *testing.T, cfg Config) (*Server, *shopping.Service) {
	t.Helper()
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	logger := slog.Default()
	reg := prometheus.NewRegistry()
	mc := metrics.New(reg)
	svc := shopping.NewService(docstore.NewSQLStore(db, logger), "test-user", nil, logger, mc)
	filters := colorfilter.NewService(colorfilter.NewCache(8, time.Hour, nil, logger, mc), logger, mc)
	return New(svc, filters, reg, mc, cfg, logger), svc
}

func TestHealthAndMetrics(t *testing.T) {
	srv, svc := setupTestServer(t, Config{})
	if _, err := svc.CreateArticle(context.Background(), model.ArticleDraft{Name: "Milch"}); err != nil {
		t.Fatal(err)
	}
	router := srv.Router()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/health", nil))
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"status":"ok"`) {
		t.Errorf("health = %d %s", rec.Code, rec.Body)
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("metrics status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `shoplisl_operations_total{op="create_article",result="ok"} 1`) {
		t.Errorf("metrics output missing create_article counter:\n%s", rec.Body)
	}
}

func TestAccessPIN(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("4711"), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}
	srv, _ := setupTestServer(t, Config{AccessPINHash: string(hash)})
	router := srv.Router()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/api/articles", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("without pin = %d, want 401", rec.Code)
	}

	req := httptest.NewRequest("GET", "/api/articles", nil)
	req.Header.Set("X-Access-PIN", "4711")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("with pin = %d, want 200", rec.Code)
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/health", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("health must stay public, got %d", rec.Code)
	}
}

func TestWriteRateLimit(t *testing.T) {
	srv, _ := setupTestServer(t, Config{RateLimit: 2})
	router := srv.Router()

	codes := make([]int, 0, 3)
	for _, name := range []string{"A-Liste", "B-Liste", "C-Liste"} {
		req := httptest.NewRequest("POST", "/api/lists", strings.NewReader(`{"name":"`+name+`"}`))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}
	if codes[0] != http.StatusCreated || codes[1] != http.StatusCreated || codes[2] != http.StatusTooManyRequests {
		t.Errorf("codes = %v", codes)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/api/lists", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("reads are not limited, got %d", rec.Code)
	}
}

func TestLiveFeedOverWebSocket(t *testing.T) {
	srv, svc := setupTestServer(t, Config{})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	stop := srv.StartFeeds(ctx)
	defer stop()

	httpSrv := httptest.NewServer(srv.Router())
	defer httpSrv.Close()

	conn, _, err := ws.Dial(ctx, "ws"+strings.TrimPrefix(httpSrv.URL, "http")+"/ws", nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.CloseNow()

	if _, err := svc.CreateArticle(ctx, model.ArticleDraft{Name: "Brot"}); err != nil {
		t.Fatal(err)
	}

	for {
		_, data, err := conn.Read(ctx)
		if err != nil {
			t.Fatalf("no articles snapshot containing the new article: %v", err)
		}
		var msg struct {
			Type string          `json:"type"`
			Data []model.Article `json:"data"`
		}
		if err := json.Unmarshal(data, &msg); err != nil {
			continue
		}
		if msg.Type == "articles_snapshot" && len(msg.Data) == 1 && msg.Data[0].Name == "Brot" {
			return
		}
	}
}

func TestUnknownRoute(t *testing.T) {
	srv, _ := setupTestServer(t, Config{})
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest("GET", "/api/nothing", nil))
	body, _ := io.ReadAll(rec.Body)
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d (%s)", rec.Code, body)
	}
}
