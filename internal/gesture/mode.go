// Package gesture interprets per-frame finger states as drawing intents.
package gesture

import "github.com/ayusman/airdraw/internal/detector"

// Mode is the interpreted intent of the tracked hand for one frame.
type Mode int

const (
	// ModeIdle means the pose was recognized as no actionable gesture.
	ModeIdle Mode = iota
	// ModeDraw lays ink along the fingertip path.
	ModeDraw
	// ModeHover moves the cursor without touching the canvas.
	ModeHover
	// ModeErase stamps background-colored discs along the fingertip path.
	ModeErase
	// ModeColorChange requests a palette advance.
	ModeColorChange
	// ModeNoHand means no hand was tracked at all. Distinct from ModeIdle:
	// both reset stroke continuity, but the HUD reports them differently.
	ModeNoHand
)

// String returns the display name of the mode.
func (m Mode) String() string {
	switch m {
	case ModeIdle:
		return "IDLE"
	case ModeDraw:
		return "DRAW"
	case ModeHover:
		return "HOVER"
	case ModeErase:
		return "ERASE"
	case ModeColorChange:
		return "COLOR_CHANGE"
	case ModeNoHand:
		return "NO_HAND"
	default:
		return "UNKNOWN"
	}
}

// Classify maps a finger state to a drawing mode using an ordered decision
// list; the first matching rule wins. The all-five rule is checked before
// the single- and double-finger rules. Every combination that matches no
// rule is idle, so classification is total over all 32 finger states.
func Classify(fs detector.FingerState) Mode {
	count := fs.Count()

	switch {
	case count == 5:
		return ModeErase
	case fs.Index && count == 1:
		return ModeDraw
	case fs.Index && fs.Middle && count == 2:
		return ModeHover
	case fs.Thumb && count == 1:
		return ModeColorChange
	default:
		return ModeIdle
	}
}
