package canvas

import (
	"image"
	"image/color"

	"gocv.io/x/gocv"

	"github.com/ayusman/airdraw/internal/gesture"
)

// MaskThreshold is the grayscale cutoff separating ink from background
// when building the composite mask.
const MaskThreshold = 10

// DefaultCursorSize is the hover ring radius in pixels.
const DefaultCursorSize = 12

var white = color.RGBA{255, 255, 255, 255}

// Compositor merges the persistent ink layer over live frames and renders
// the per-mode cursor indicator.
type Compositor struct {
	BrushThickness  int
	EraserThickness int
	CursorSize      int
}

// NewCompositor creates a compositor with the default stroke geometry.
func NewCompositor() *Compositor {
	return &Compositor{
		BrushThickness:  DefaultBrushThickness,
		EraserThickness: DefaultEraserThickness,
		CursorSize:      DefaultCursorSize,
	}
}

// Render composites the surface over the live frame and overlays the
// cursor for the given mode. Ink pixels fully replace the camera image
// beneath them: the output is the frame wherever the surface is empty and
// the surface wherever it holds ink, a binary overwrite rather than an
// alpha blend. The caller owns the returned Mat and must Close it.
func (c *Compositor) Render(frame *gocv.Mat, surface *Surface, mode gesture.Mode, cursor image.Point, active color.RGBA) gocv.Mat {
	out := c.Composite(frame, surface)
	c.drawCursor(&out, mode, cursor, active)
	return out
}

// Composite merges the surface over the frame without any cursor overlay.
// The caller owns the returned Mat and must Close it.
func (c *Compositor) Composite(frame *gocv.Mat, surface *Surface) gocv.Mat {
	ink := surface.Mat()

	gray := gocv.NewMat()
	defer gray.Close()
	gocv.CvtColor(*ink, &gray, gocv.ColorBGRToGray)

	mask := gocv.NewMat()
	defer mask.Close()
	gocv.Threshold(gray, &mask, MaskThreshold, 255, gocv.ThresholdBinary)

	invMask := gocv.NewMat()
	defer invMask.Close()
	gocv.BitwiseNot(mask, &invMask)

	bg := gocv.NewMat()
	defer bg.Close()
	gocv.BitwiseAndWithMask(*frame, *frame, &bg, invMask)

	fg := gocv.NewMat()
	defer fg.Close()
	gocv.BitwiseAndWithMask(*ink, *ink, &fg, mask)

	out := gocv.NewMat()
	gocv.Add(bg, fg, &out)
	return out
}

// drawCursor overlays the mode-specific cursor indicator. Hover shows a
// hollow ring with a center dot; draw previews the brush footprint in the
// active color; erase previews the eraser footprint in the background
// color. Idle, no-hand, and color-change frames get no cursor.
func (c *Compositor) drawCursor(frame *gocv.Mat, mode gesture.Mode, p image.Point, active color.RGBA) {
	switch mode {
	case gesture.ModeHover:
		gocv.Circle(frame, p, c.CursorSize, white, 2)
		gocv.Circle(frame, p, 3, white, -1)

	case gesture.ModeDraw:
		gocv.Circle(frame, p, c.BrushThickness/2, active, -1)
		gocv.Circle(frame, p, c.BrushThickness/2+2, white, 2)

	case gesture.ModeErase:
		gocv.Circle(frame, p, c.EraserThickness/2, color.RGBA{0, 0, 0, 255}, -1)
		gocv.Circle(frame, p, c.EraserThickness/2+2, white, 2)
	}
}
