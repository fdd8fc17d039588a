package canvas

import (
	"fmt"
	"image"
	"image/color"

	"gocv.io/x/gocv"

	"github.com/ayusman/airdraw/internal/detector"
	"github.com/ayusman/airdraw/internal/gesture"
)

// HUDState carries everything the heads-up display shows. All fields are
// derived from core session state; the layout below is presentational.
type HUDState struct {
	Mode        gesture.Mode
	ColorName   string
	ColorIndex  int
	PaletteSize int
	ActiveColor color.RGBA
	BrushPx     int
	EraserPx    int
	Hand        string
	Fingers     detector.FingerState
}

// DrawHUD renders the status bar, keyboard hints, active color swatch and
// per-finger debug readout onto the frame in place.
func DrawHUD(frame *gocv.Mat, s HUDState) {
	status := fmt.Sprintf("Mode: %s | Color: %s #%d/%d", s.Mode, s.ColorName, s.ColorIndex+1, s.PaletteSize)

	switch s.Mode {
	case gesture.ModeDraw:
		status += fmt.Sprintf(" | Brush: %dpx", s.BrushPx)
	case gesture.ModeErase:
		status += fmt.Sprintf(" | Brush: %dpx", s.EraserPx)
	}

	if s.Hand != "" {
		status += fmt.Sprintf(" | Hand: %s", s.Hand)
	}

	textSize := gocv.GetTextSize(status, gocv.FontHersheySimplex, 0.7, 2)
	gocv.Rectangle(frame, image.Rect(10, 10, textSize.X+20, 80), color.RGBA{0, 0, 0, 255}, -1)
	gocv.Rectangle(frame, image.Rect(10, 10, textSize.X+20, 80), white, 2)

	gocv.PutText(frame, status, image.Pt(15, 35), gocv.FontHersheySimplex, 0.7, white, 2)
	gocv.PutText(frame, "[c] clear  [s] save  [q] quit", image.Pt(15, 60),
		gocv.FontHersheySimplex, 0.5, color.RGBA{200, 200, 200, 255}, 1)

	// Active color swatch in the top-right corner.
	swatchX := frame.Cols() - 80
	gocv.Rectangle(frame, image.Rect(swatchX, 10, swatchX+60, 60), s.ActiveColor, -1)
	gocv.Rectangle(frame, image.Rect(swatchX, 10, swatchX+60, 60), white, 2)

	drawFingerDebug(frame, s)
}

// drawFingerDebug renders the per-finger up/down column below the status
// bar, green for up and red for down.
func drawFingerDebug(frame *gocv.Mat, s HUDState) {
	fingers := []struct {
		name string
		up   bool
	}{
		{"thumb", s.Fingers.Thumb},
		{"index", s.Fingers.Index},
		{"middle", s.Fingers.Middle},
		{"ring", s.Fingers.Ring},
		{"pinky", s.Fingers.Pinky},
	}

	y := 100
	for _, f := range fingers {
		c := color.RGBA{255, 0, 0, 255}
		state := "DOWN"
		if f.up {
			c = color.RGBA{0, 255, 0, 255}
			state = "UP"
		}

		text := fmt.Sprintf("%s: %s", f.name, state)
		if f.name == "thumb" && s.Hand != "" {
			text += fmt.Sprintf(" (%s)", s.Hand)
		}

		gocv.PutText(frame, text, image.Pt(15, y), gocv.FontHersheySimplex, 0.4, c, 1)
		y += 20
	}
}
