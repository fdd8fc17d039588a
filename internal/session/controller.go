// Package session orchestrates the per-frame drawing pipeline: finger
// state detection, mode classification, smoothing, and surface mutation.
package session

import (
	"image"

	"github.com/ayusman/airdraw/internal/canvas"
	"github.com/ayusman/airdraw/internal/detector"
	"github.com/ayusman/airdraw/internal/gesture"
)

// Config holds the per-session drawing parameters.
type Config struct {
	// Width and Height are the video frame dimensions in pixels.
	Width  int
	Height int

	// BrushThickness is the draw stroke width in pixels.
	BrushThickness int

	// EraserThickness is the erase disc diameter in pixels.
	EraserThickness int

	// SmoothingFactor is the weight given to each new fingertip sample.
	SmoothingFactor float64
}

// FrameState is the outcome of processing one frame, consumed by the
// compositor and HUD.
type FrameState struct {
	Mode    gesture.Mode
	Cursor  image.Point
	Fingers detector.FingerState
	Hand    string
}

// Controller runs the drawing state machine. It owns the only mutable
// cross-frame state: the drawing surface, the cursor continuity point,
// the smoother, and the color cycler. It is driven by a single loop and
// processes exactly one frame at a time.
type Controller struct {
	cfg      Config
	surface  *canvas.Surface
	smoother *gesture.PositionSmoother
	cycler   *gesture.ColorCycler

	// prev is the cursor position from the last DRAW/ERASE/HOVER frame,
	// or nil after an IDLE/NO_HAND break. A single pointer keeps the
	// previous x and y set or unset together, so a segment is only ever
	// drawn when a complete previous point exists.
	prev *image.Point

	mode gesture.Mode
}

// New creates a controller with an empty surface of the configured frame
// dimensions. Zero-valued stroke settings fall back to the defaults.
func New(cfg Config) *Controller {
	if cfg.BrushThickness <= 0 {
		cfg.BrushThickness = canvas.DefaultBrushThickness
	}
	if cfg.EraserThickness <= 0 {
		cfg.EraserThickness = canvas.DefaultEraserThickness
	}
	if cfg.SmoothingFactor <= 0 {
		cfg.SmoothingFactor = gesture.DefaultSmoothing
	}

	return &Controller{
		cfg:      cfg,
		surface:  canvas.NewSurface(cfg.Width, cfg.Height),
		smoother: gesture.NewPositionSmoother(cfg.SmoothingFactor),
		cycler:   gesture.NewColorCycler(),
		mode:     gesture.ModeNoHand,
	}
}

// Process runs one frame through the state machine. A nil hand means no
// hand was tracked this frame. The returned state drives the compositor
// cursor and the HUD; the surface has already been mutated when it
// returns.
func (c *Controller) Process(hand *detector.HandLandmarks) FrameState {
	if hand == nil {
		c.resetCursor()
		c.mode = gesture.ModeNoHand
		return FrameState{Mode: gesture.ModeNoHand}
	}

	fingers := detector.DetectFingerStates(hand)
	mode := gesture.Classify(fingers)

	tip := hand.Points[detector.IndexTip]
	x, y := c.smoother.Smooth(int(tip.X*float64(c.cfg.Width)), int(tip.Y*float64(c.cfg.Height)))
	cursor := image.Pt(x, y)

	switch mode {
	case gesture.ModeColorChange:
		// A held color-change pose never draws; continuity breaks exactly
		// as it does for an idle pose. The debounce inside the cycler
		// absorbs the repeated per-frame triggers.
		c.cycler.Advance()
		c.resetCursor()

	case gesture.ModeDraw:
		c.surface.StrokeTo(c.prev, cursor, c.cycler.Color(), c.cfg.BrushThickness)
		c.setCursor(cursor)

	case gesture.ModeErase:
		c.surface.EraseAt(cursor, c.cfg.EraserThickness)
		c.setCursor(cursor)

	case gesture.ModeHover:
		c.setCursor(cursor)

	default:
		c.resetCursor()
	}

	c.mode = mode
	return FrameState{
		Mode:    mode,
		Cursor:  cursor,
		Fingers: fingers,
		Hand:    hand.Handedness,
	}
}

func (c *Controller) setCursor(p image.Point) {
	c.prev = &p
}

// resetCursor breaks stroke continuity. The smoother resets with the
// cursor so the next tracked position anchors fresh instead of
// interpolating across the gap.
func (c *Controller) resetCursor() {
	c.prev = nil
	c.smoother.Reset()
}

// Surface returns the persistent drawing surface.
func (c *Controller) Surface() *canvas.Surface {
	return c.surface
}

// Cycler returns the color cycler.
func (c *Controller) Cycler() *gesture.ColorCycler {
	return c.cycler
}

// Mode returns the mode of the most recently processed frame.
func (c *Controller) Mode() gesture.Mode {
	return c.mode
}

// Clear wipes the surface. Continuity is left alone: an in-flight stroke
// keeps drawing on the blank canvas.
func (c *Controller) Clear() {
	c.surface.Clear()
}

// HUDState assembles the heads-up display contents for a processed frame.
func (c *Controller) HUDState(fs FrameState) canvas.HUDState {
	return canvas.HUDState{
		Mode:        fs.Mode,
		ColorName:   c.cycler.Name(),
		ColorIndex:  c.cycler.Index(),
		PaletteSize: c.cycler.Size(),
		ActiveColor: c.cycler.Color(),
		BrushPx:     c.cfg.BrushThickness,
		EraserPx:    c.cfg.EraserThickness,
		Hand:        fs.Hand,
		Fingers:     fs.Fingers,
	}
}

// Close releases the drawing surface.
func (c *Controller) Close() {
	c.surface.Close()
}
