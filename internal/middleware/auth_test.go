package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func pinHash(t *testing.T, pin string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash pin: %v", err)
	}
	return string(hash)
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestPINGuardOpenWithoutHash(t *testing.T) {
	handler := NewPINGuard("", slog.Default()).Require(okHandler())

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("GET", "/api/lists", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
}

func TestPINGuardRequire(t *testing.T) {
	handler := NewPINGuard(pinHash(t, "4711"), slog.Default()).Require(okHandler())

	tests := []struct {
		name   string
		header string
		query  string
		want   int
	}{
		{"missing", "", "", http.StatusUnauthorized},
		{"wrong", "1234", "", http.StatusUnauthorized},
		{"header", "4711", "", http.StatusOK},
		{"query", "", "?pin=4711", http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/ws"+tt.query, nil)
			if tt.header != "" {
				req.Header.Set(PINHeader, tt.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)
			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d", rec.Code, tt.want)
			}
		})
	}
}

func TestPINGuardRemembersVerifiedPIN(t *testing.T) {
	g := NewPINGuard(pinHash(t, "4711"), slog.Default())
	if !g.Check("4711") {
		t.Fatal("valid pin rejected")
	}
	g.mu.Lock()
	remembered := g.verified["4711"]
	g.mu.Unlock()
	if !remembered {
		t.Error("verified pin not remembered")
	}
	if g.Check("0000") {
		t.Error("invalid pin accepted")
	}
}

func TestRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	handler := RequestLogger(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusNotFound)
	}))
	req := httptest.NewRequest("DELETE", "/api/articles/x", nil)
	handler.ServeHTTP(httptest.NewRecorder(), req)

	out := buf.String()
	for _, want := range []string{"level=WARN", "method=DELETE", "path=/api/articles/x", "status=404"} {
		if !strings.Contains(out, want) {
			t.Errorf("log %q missing %q", out, want)
		}
	}
}
