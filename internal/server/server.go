// Package server provides the HTTP control surface for an airdraw
// session: health, save history, remote commands, and live views of the
// composited output and session state.
package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/ayusman/airdraw/internal/server/api"
	"github.com/ayusman/airdraw/internal/store"
)

// Config holds the server configuration.
type Config struct {
	StaticDir string
	Store     *store.Store
	Hub       *Hub

	// OnClear and OnSave are invoked by the command endpoints. Either
	// may be nil, which disables the corresponding endpoint.
	OnClear func()
	OnSave  func() (api.SaveOutcome, error)
}

// Server represents the HTTP server for the airdraw application.
type Server struct {
	config Config
	mux    *http.ServeMux
	start  time.Time
	state  *StateHandler
}

// New creates a new Server with the given configuration.
func New(config Config) *Server {
	s := &Server{
		config: config,
		mux:    http.NewServeMux(),
		start:  time.Now(),
	}
	s.setupRoutes()
	return s
}

// setupRoutes configures all HTTP routes for the server.
func (s *Server) setupRoutes() {
	s.mux.HandleFunc("/api/health", s.handleHealth)

	if s.config.Store != nil {
		drawingsHandler := api.NewDrawingsHandler(s.config.Store)
		s.mux.Handle("/api/drawings", drawingsHandler)
		s.mux.Handle("/api/drawings/", drawingsHandler)
	}

	commands := api.NewCommandsHandler(s.config.OnClear, s.config.OnSave)
	s.mux.Handle("/api/clear", commands)
	s.mux.Handle("/api/save", commands)

	if s.config.Hub != nil {
		s.mux.Handle("/api/stream", NewStreamHandler(s.config.Hub))
		s.state = NewStateHandler(s.config.Hub)
		s.mux.Handle("/api/state", s.state)
	}

	if s.config.StaticDir != "" {
		s.mux.Handle("/", http.FileServer(http.Dir(s.config.StaticDir)))
	}
}

// handleHealth reports server liveness and uptime.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status": "ok",
		"uptime": time.Since(s.start).String(),
	})
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// ListenAndServe starts the server on the given address.
func (s *Server) ListenAndServe(addr string) error {
	return http.ListenAndServe(addr, s.mux)
}

// Close stops the state broadcast goroutine and disconnects its clients.
func (s *Server) Close() {
	if s.state != nil {
		s.state.Close()
	}
}
