package gesture

// DefaultSmoothing is the weight given to the newest sample.
const DefaultSmoothing = 0.7

// PositionSmoother reduces fingertip jitter with an exponential filter.
// The first sample after a reset passes through unchanged so a fresh
// stroke anchors at the real fingertip rather than interpolating across
// an idle gap or a dropped hand.
type PositionSmoother struct {
	factor  float64
	prevX   int
	prevY   int
	hasPrev bool
}

// NewPositionSmoother creates a smoother with the given smoothing factor,
// the weight applied to each new sample. Factors outside (0, 1] fall back
// to DefaultSmoothing.
func NewPositionSmoother(factor float64) *PositionSmoother {
	if factor <= 0 || factor > 1 {
		factor = DefaultSmoothing
	}
	return &PositionSmoother{factor: factor}
}

// Smooth filters the raw position against the previous smoothed position,
// truncating to integer pixel coordinates.
func (s *PositionSmoother) Smooth(x, y int) (int, int) {
	if !s.hasPrev {
		s.prevX, s.prevY = x, y
		s.hasPrev = true
		return x, y
	}

	sx := int(float64(s.prevX)*(1-s.factor) + float64(x)*s.factor)
	sy := int(float64(s.prevY)*(1-s.factor) + float64(y)*s.factor)

	s.prevX, s.prevY = sx, sy
	return sx, sy
}

// Reset discards the previous position. The next sample passes through
// unsmoothed.
func (s *PositionSmoother) Reset() {
	s.hasPrev = false
}
