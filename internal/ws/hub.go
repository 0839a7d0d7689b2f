// Package ws fans order events out to connected vendor dashboards.
package ws

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

type OrderEvent struct {
	Type        string    `json:"type"` // "order.created", "order.status"
	OrderID     string    `json:"order_id"`
	OrderNumber string    `json:"order_number"`
	Status      string    `json:"status"`
	TotalCents  int64     `json:"total_cents"`
	At          time.Time `json:"at"`
}

// Hub tracks live websocket connections per vendor. Writes happen on the
// caller's goroutine; a connection that fails to write is dropped.
type Hub struct {
	mu    sync.RWMutex
	conns map[string]map[*websocket.Conn]bool // vendorID -> connections
}

func NewHub() *Hub {
	return &Hub{conns: make(map[string]map[*websocket.Conn]bool)}
}

func (h *Hub) Register(vendorID string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.conns[vendorID] == nil {
		h.conns[vendorID] = make(map[*websocket.Conn]bool)
	}
	h.conns[vendorID][conn] = true
}

func (h *Hub) Unregister(vendorID string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if set := h.conns[vendorID]; set != nil {
		delete(set, conn)
		if len(set) == 0 {
			delete(h.conns, vendorID)
		}
	}
}

// Notify pushes an event to every live connection of a vendor. Safe to
// call with a nil hub.
func (h *Hub) Notify(vendorID string, ev OrderEvent) {
	if h == nil {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()

	for conn := range h.conns[vendorID] {
		if err := conn.WriteJSON(ev); err != nil {
			log.Debug().Err(err).Str("vendor", vendorID).Msg("dropping dead websocket")
			conn.Close()
			delete(h.conns[vendorID], conn)
		}
	}
}
