package server

import "sync"

// FingerFlags mirrors the per-finger up/down states for the state feed.
type FingerFlags struct {
	Thumb  bool `json:"thumb"`
	Index  bool `json:"index"`
	Middle bool `json:"middle"`
	Ring   bool `json:"ring"`
	Pinky  bool `json:"pinky"`
}

// State is the session snapshot broadcast to WebSocket clients once per
// tick. Every field is derived from core session state.
type State struct {
	Mode       string      `json:"mode"`
	ColorName  string      `json:"color_name"`
	ColorIndex int         `json:"color_index"`
	BrushPx    int         `json:"brush_px"`
	Hand       string      `json:"hand,omitempty"`
	Fingers    FingerFlags `json:"fingers"`
}

// Hub decouples the frame loop from HTTP consumers: the loop publishes
// the latest composited JPEG and session state, handlers read whatever is
// current. Slow clients only ever miss frames, never block the loop.
type Hub struct {
	mu    sync.RWMutex
	frame []byte
	state State
	seq   uint64
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{}
}

// PublishFrame stores the latest composited frame as JPEG bytes.
// The hub takes ownership of the slice.
func (h *Hub) PublishFrame(jpeg []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.frame = jpeg
	h.seq++
}

// Frame returns the latest published frame and its sequence number, or
// nil if nothing has been published yet.
func (h *Hub) Frame() ([]byte, uint64) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.frame, h.seq
}

// PublishState stores the latest session state.
func (h *Hub) PublishState(s State) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.state = s
}

// State returns the latest published session state.
func (h *Hub) State() State {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.state
}
