package api

import "net/http"

// SaveOutcome reports where a save command wrote its two files.
type SaveOutcome struct {
	ID            string `json:"id,omitempty"`
	InkPath       string `json:"ink_path"`
	CompositePath string `json:"composite_path"`
}

// CommandsHandler exposes the session commands over HTTP. Clearing and
// saving are forwarded into the frame loop; quit is deliberately not
// exposed remotely.
type CommandsHandler struct {
	onClear func()
	onSave  func() (SaveOutcome, error)
}

// NewCommandsHandler creates a CommandsHandler. Nil callbacks disable
// the corresponding command.
func NewCommandsHandler(onClear func(), onSave func() (SaveOutcome, error)) *CommandsHandler {
	return &CommandsHandler{onClear: onClear, onSave: onSave}
}

// ServeHTTP routes POST /api/clear and POST /api/save.
func (h *CommandsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	switch r.URL.Path {
	case "/api/clear":
		h.clear(w, r)
	case "/api/save":
		h.save(w, r)
	default:
		http.NotFound(w, r)
	}
}

func (h *CommandsHandler) clear(w http.ResponseWriter, r *http.Request) {
	if h.onClear == nil {
		writeError(w, http.StatusServiceUnavailable, "No active session")
		return
	}

	h.onClear()
	writeJSON(w, http.StatusOK, map[string]string{"status": "cleared"})
}

func (h *CommandsHandler) save(w http.ResponseWriter, r *http.Request) {
	if h.onSave == nil {
		writeError(w, http.StatusServiceUnavailable, "No active session")
		return
	}

	outcome, err := h.onSave()
	if err != nil {
		// Save failures never end the session; report and move on.
		writeError(w, http.StatusInternalServerError, "Save failed: "+err.Error())
		return
	}

	writeJSON(w, http.StatusOK, outcome)
}
