// Package canvas owns the persistent ink buffer and its compositing onto
// live video frames.
package canvas

import (
	"image"
	"image/color"
	"sync"

	"gocv.io/x/gocv"
)

// Default stroke geometry, in pixels.
const (
	DefaultBrushThickness  = 8
	DefaultEraserThickness = 40
)

// backgroundScalar is the empty-canvas color. Ink is any pixel that
// differs from it; erasing paints it back.
var backgroundScalar = gocv.NewScalar(0, 0, 0, 0)

// Surface is the persistent drawing layer. It has the same dimensions as
// the video frame, starts empty, and accumulates ink until an explicit
// Clear. Strokes and erases are plain pixel overwrites, never blends.
type Surface struct {
	mat    gocv.Mat
	width  int
	height int
	mu     sync.Mutex
}

// NewSurface creates an empty surface of the given frame dimensions.
func NewSurface(width, height int) *Surface {
	return &Surface{
		mat:    gocv.NewMatWithSize(height, width, gocv.MatTypeCV8UC3),
		width:  width,
		height: height,
	}
}

// StrokeTo extends a stroke to the point p in the given color. When from
// is non-nil a solid line segment is drawn from it; otherwise p seeds a
// new stroke as a filled disc of radius thickness/2, so a stroke's first
// sample shows as a dot instead of a zero-length line.
func (s *Surface) StrokeTo(from *image.Point, p image.Point, c color.RGBA, thickness int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if from != nil {
		gocv.Line(&s.mat, *from, p, c, thickness)
		return
	}
	gocv.Circle(&s.mat, p, thickness/2, c, -1)
}

// EraseAt stamps a background-colored disc of radius thickness/2 at p.
// Unlike StrokeTo there is no segment interpolation between samples; at
// frame rate the discs overlap enough to read as a continuous wipe.
func (s *Surface) EraseAt(p image.Point, thickness int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	gocv.Circle(&s.mat, p, thickness/2, color.RGBA{0, 0, 0, 255}, -1)
}

// Clear resets the whole surface to the background color.
func (s *Surface) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.mat.SetTo(backgroundScalar)
}

// Snapshot returns a deep copy of the current ink. The caller owns the
// returned Mat and must Close it.
func (s *Surface) Snapshot() gocv.Mat {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.mat.Clone()
}

// Mat exposes the underlying buffer for compositing. Callers must not
// retain it past the current frame.
func (s *Surface) Mat() *gocv.Mat {
	return &s.mat
}

// Width returns the surface width in pixels.
func (s *Surface) Width() int { return s.width }

// Height returns the surface height in pixels.
func (s *Surface) Height() int { return s.height }

// Close releases the underlying buffer.
func (s *Surface) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.mat.Empty() {
		s.mat.Close()
	}
}
