// Package api provides HTTP API handlers for the airdraw control server.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/ayusman/airdraw/internal/store"
)

// DrawingsHandler handles HTTP requests for the save history.
type DrawingsHandler struct {
	store *store.Store
}

// NewDrawingsHandler creates a new DrawingsHandler with the given store.
func NewDrawingsHandler(s *store.Store) *DrawingsHandler {
	return &DrawingsHandler{store: s}
}

// ServeHTTP implements the http.Handler interface and routes requests to
// appropriate methods.
func (h *DrawingsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// Expected paths: /api/drawings or /api/drawings/{id}
	path := strings.TrimPrefix(r.URL.Path, "/api/drawings")
	path = strings.TrimPrefix(path, "/")

	if path == "" {
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		h.list(w, r)
		return
	}

	id := path
	switch r.Method {
	case http.MethodGet:
		h.get(w, r, id)
	case http.MethodDelete:
		h.delete(w, r, id)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

type drawingResponse struct {
	ID            string `json:"id"`
	InkPath       string `json:"ink_path"`
	CompositePath string `json:"composite_path"`
	ColorIndex    int    `json:"color_index"`
	CreatedAt     string `json:"created_at"`
}

type listDrawingsResponse struct {
	Drawings []drawingResponse `json:"drawings"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// toResponse converts a store.Drawing to a drawingResponse.
func toResponse(d *store.Drawing) drawingResponse {
	return drawingResponse{
		ID:            d.ID,
		InkPath:       d.InkPath,
		CompositePath: d.CompositePath,
		ColorIndex:    d.ColorIndex,
		CreatedAt:     d.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// list handles GET /api/drawings and returns the save history.
func (h *DrawingsHandler) list(w http.ResponseWriter, r *http.Request) {
	drawings, err := h.store.Drawings().List()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list drawings")
		return
	}

	response := listDrawingsResponse{
		Drawings: make([]drawingResponse, 0, len(drawings)),
	}
	for _, d := range drawings {
		response.Drawings = append(response.Drawings, toResponse(d))
	}

	writeJSON(w, http.StatusOK, response)
}

// get handles GET /api/drawings/{id}.
func (h *DrawingsHandler) get(w http.ResponseWriter, r *http.Request, id string) {
	d, err := h.store.Drawings().GetByID(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Drawing not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to get drawing")
		return
	}

	writeJSON(w, http.StatusOK, toResponse(d))
}

// delete handles DELETE /api/drawings/{id}. Only the history record is
// removed; saved files stay on disk.
func (h *DrawingsHandler) delete(w http.ResponseWriter, r *http.Request, id string) {
	if err := h.store.Drawings().Delete(id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Drawing not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to delete drawing")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
