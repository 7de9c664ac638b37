package api

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gorilla/websocket"
	"github.com/rileyhilliard/nerdminer/internal/logger"
)

// writeWait bounds a single websocket write.
const writeWait = 5 * time.Second

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Hub pushes a status snapshot to every connected client on each tick.
type Hub struct {
	provider StatusProvider
	interval time.Duration
	log      logger.Logger

	clientsMu sync.Mutex
	clients   map[*websocket.Conn]bool
	closed    bool
}

// NewHub creates a hub pushing every interval.
func NewHub(provider StatusProvider, interval time.Duration, log logger.Logger) *Hub {
	return &Hub{
		provider: provider,
		interval: interval,
		log:      log,
		clients:  make(map[*websocket.Conn]bool),
	}
}

// Run broadcasts until ctx is done, then closes every connection.
func (h *Hub) Run(ctx context.Context) {
	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			h.clientsMu.Lock()
			h.closed = true
			for conn := range h.clients {
				conn.Close()
				delete(h.clients, conn)
			}
			h.clientsMu.Unlock()
			return
		case <-ticker.C:
			h.broadcast()
		}
	}
}

// Clients returns the number of connected clients.
func (h *Hub) Clients() int {
	h.clientsMu.Lock()
	defer h.clientsMu.Unlock()
	return len(h.clients)
}

func (h *Hub) broadcast() {
	h.clientsMu.Lock()
	n := len(h.clients)
	h.clientsMu.Unlock()
	if n == 0 {
		return
	}

	body, err := sonic.Marshal(NewStatusResponse(h.provider.Status()))
	if err != nil {
		h.log.Error("encode status: %v", err)
		return
	}

	h.clientsMu.Lock()
	defer h.clientsMu.Unlock()
	for conn := range h.clients {
		_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteMessage(websocket.TextMessage, body); err != nil {
			h.log.Debug("websocket write error: %v", err)
			conn.Close()
			delete(h.clients, conn)
		}
	}
}

// register adds conn unless the hub has stopped, in which case conn is
// closed and false is returned.
func (h *Hub) register(conn *websocket.Conn) bool {
	h.clientsMu.Lock()
	if h.closed {
		h.clientsMu.Unlock()
		conn.Close()
		return false
	}
	h.clients[conn] = true
	total := len(h.clients)
	h.clientsMu.Unlock()
	h.log.Debug("websocket client connected, total clients: %d", total)
	return true
}

func (h *Hub) unregister(conn *websocket.Conn) {
	h.clientsMu.Lock()
	if _, ok := h.clients[conn]; ok {
		delete(h.clients, conn)
		conn.Close()
	}
	total := len(h.clients)
	h.clientsMu.Unlock()
	h.log.Debug("websocket client disconnected, total clients: %d", total)
}

// handleWebSocket upgrades the connection and sends an immediate snapshot.
// GET /api/ws
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Debug("websocket upgrade error: %v", err)
		return
	}

	body, err := sonic.Marshal(NewStatusResponse(s.provider.Status()))
	if err == nil {
		_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
		err = conn.WriteMessage(websocket.TextMessage, body)
	}
	if err != nil {
		conn.Close()
		return
	}

	if !s.hub.register(conn) {
		return
	}

	// Read loop to detect client disconnect
	go func() {
		defer s.hub.unregister(conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}
