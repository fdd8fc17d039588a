package server

import (
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow local connections
	},
}

// StateHandler broadcasts live session state (mode, color, finger flags)
// via WebSocket so a browser HUD can mirror the on-frame overlay.
type StateHandler struct {
	hub       *Hub
	clients   map[*websocket.Conn]bool
	mu        sync.RWMutex
	stop      chan struct{}
	closeOnce sync.Once
}

// NewStateHandler creates a new StateHandler backed by the given hub.
// Close stops its broadcast goroutine.
func NewStateHandler(hub *Hub) *StateHandler {
	h := &StateHandler{
		hub:     hub,
		clients: make(map[*websocket.Conn]bool),
		stop:    make(chan struct{}),
	}
	go h.broadcast()
	return h
}

// Close stops the broadcast goroutine and disconnects all clients. Safe
// to call more than once.
func (h *StateHandler) Close() {
	h.closeOnce.Do(func() {
		close(h.stop)

		h.mu.Lock()
		defer h.mu.Unlock()
		for conn := range h.clients {
			conn.Close()
			delete(h.clients, conn)
		}
	})
}

// ServeHTTP handles WebSocket upgrade requests.
func (h *StateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("websocket upgrade error: %v", err)
		return
	}
	defer conn.Close()

	h.mu.Lock()
	h.clients[conn] = true
	h.mu.Unlock()

	defer func() {
		h.mu.Lock()
		delete(h.clients, conn)
		h.mu.Unlock()
	}()

	// Keep connection alive by reading messages
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
}

// broadcast pushes the latest session state to all connected clients
// until Close is called.
func (h *StateHandler) broadcast() {
	ticker := time.NewTicker(66 * time.Millisecond) // ~15 FPS
	defer ticker.Stop()

	for {
		select {
		case <-h.stop:
			return
		case <-ticker.C:
		}

		h.mu.RLock()
		if len(h.clients) == 0 {
			h.mu.RUnlock()
			continue
		}

		state := h.hub.State()

		var dead []*websocket.Conn
		for conn := range h.clients {
			if err := conn.WriteJSON(state); err != nil {
				dead = append(dead, conn)
			}
		}
		h.mu.RUnlock()

		if len(dead) > 0 {
			h.mu.Lock()
			for _, conn := range dead {
				conn.Close()
				delete(h.clients, conn)
			}
			h.mu.Unlock()
		}
	}
}
