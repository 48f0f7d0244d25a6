// Package websocket pushes live article and list snapshots to UI clients.
package websocket

import (
	"encoding/json"
	"log/slog"
	"sort"
	"sync"

	"github.com/dukerupert/shoplisl/internal/metrics"
)

// Message is one snapshot of an entity collection.
type Message struct {
	Type   string `json:"type"`
	Entity string `json:"entity"`
	Data   any    `json:"data"`
}

// NewSnapshot creates a Message of type "<entity>_snapshot".
func NewSnapshot(entity string, data any) Message {
	return Message{
		Type:   entity + "_snapshot",
		Entity: entity,
		Data:   data,
	}
}

// Hub maintains the set of active clients and the latest message of each
// type, which new clients receive on registration.
type Hub struct {
	mu      sync.RWMutex
	clients map[*Client]struct{}
	latest  map[string][]byte
	logger  *slog.Logger
	metrics *metrics.Collector
}

// NewHub creates a new Hub. mc may be nil.
func NewHub(logger *slog.Logger, mc *metrics.Collector) *Hub {
	return &Hub{
		clients: make(map[*Client]struct{}),
		latest:  make(map[string][]byte),
		logger:  logger.With("component", "websocket"),
		metrics: mc,
	}
}

// Register adds a client and queues the current snapshots for it.
func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.clients[c] = struct{}{}
	h.metrics.SetWSClients(len(h.clients))

	types := make([]string, 0, len(h.latest))
	for t := range h.latest {
		types = append(types, t)
	}
	sort.Strings(types)
	for _, t := range types {
		c.enqueue(h.latest[t])
	}
}

// Unregister removes a client from the hub and closes its send channel.
func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
		h.metrics.SetWSClients(len(h.clients))
	}
	h.mu.Unlock()
}

// Broadcast records msg as the latest of its type and sends it to all
// connected clients.
func (h *Hub) Broadcast(msg Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		h.logger.Error("marshal broadcast", "type", msg.Type, "error", err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	h.latest[msg.Type] = data
	for c := range h.clients {
		c.enqueue(data)
	}
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
