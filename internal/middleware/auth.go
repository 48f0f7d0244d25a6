package middleware

import (
	"log/slog"
	"net/http"
	"sync"

	"golang.org/x/crypto/bcrypt"
)

// PINHeader carries the shared access PIN. Browsers opening a websocket
// cannot set headers, so the "pin" query parameter is accepted too.
const PINHeader = "X-Access-PIN"

// PINGuard checks requests against a bcrypt hash of the shared access PIN.
type PINGuard struct {
	hash   []byte
	logger *slog.Logger

	mu       sync.Mutex
	verified map[string]bool
}

// NewPINGuard returns a guard for hash. An empty hash leaves every request
// through.
func NewPINGuard(hash string, logger *slog.Logger) *PINGuard {
	return &PINGuard{
		hash:     []byte(hash),
		logger:   logger,
		verified: make(map[string]bool),
	}
}

// Check reports whether pin matches. Successful PINs are remembered so
// bcrypt only runs once per distinct value.
func (g *PINGuard) Check(pin string) bool {
	if len(g.hash) == 0 {
		return true
	}
	if pin == "" {
		return false
	}

	g.mu.Lock()
	ok := g.verified[pin]
	g.mu.Unlock()
	if ok {
		return true
	}

	if bcrypt.CompareHashAndPassword(g.hash, []byte(pin)) != nil {
		return false
	}
	g.mu.Lock()
	g.verified[pin] = true
	g.mu.Unlock()
	return true
}

// Require rejects requests without a valid PIN with 401.
func (g *PINGuard) Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		pin := r.Header.Get(PINHeader)
		if pin == "" {
			pin = r.URL.Query().Get("pin")
		}
		if !g.Check(pin) {
			g.logger.Warn("access denied", "path", r.URL.Path, "remote", RealIP(r))
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}
