package websocket

import (
	"net/http"

	ws "github.com/coder/websocket"
)

// HandleWebSocket returns an HTTP handler that upgrades connections to
// WebSocket and runs them as Hub clients. originPatterns restricts which
// origins may connect; empty allows any.
func HandleWebSocket(hub *Hub, originPatterns []string) http.HandlerFunc {
	opts := &ws.AcceptOptions{OriginPatterns: originPatterns}
	if len(originPatterns) == 0 {
		opts.InsecureSkipVerify = true
	}

	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := ws.Accept(w, r, opts)
		if err != nil {
			hub.logger.Warn("websocket accept failed", "remote", r.RemoteAddr, "error", err)
			return
		}
		defer conn.CloseNow()

		NewClient(hub, conn, r.RemoteAddr).Run(r.Context())
	}
}
