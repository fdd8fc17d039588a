package canvas

import (
	"image"
	"image/color"
	"testing"

	"gocv.io/x/gocv"

	"github.com/ayusman/airdraw/internal/gesture"
)

// grayFrame returns a 640x480 frame filled with a mid-gray so composite
// output can be told apart from both ink and background.
func grayFrame() gocv.Mat {
	frame := gocv.NewMatWithSize(480, 640, gocv.MatTypeCV8UC3)
	frame.SetTo(gocv.NewScalar(50, 50, 50, 0))
	return frame
}

func TestCompositor_InkReplacesFrame(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that requires GoCV Mat creation")
	}

	s := NewSurface(640, 480)
	defer s.Close()
	s.StrokeTo(nil, image.Pt(100, 100), testWhite, 16)

	frame := grayFrame()
	defer frame.Close()

	comp := NewCompositor()
	out := comp.Composite(&frame, s)
	defer out.Close()

	// Inked pixel: surface content, not camera content.
	b, g, r := pixelAt(t, &out, 100, 100)
	if b != 255 || g != 255 || r != 255 {
		t.Errorf("inked pixel = (%d,%d,%d), want white", b, g, r)
	}

	// Empty pixel: camera content shows through.
	b, g, r = pixelAt(t, &out, 400, 300)
	if b != 50 || g != 50 || r != 50 {
		t.Errorf("empty pixel = (%d,%d,%d), want frame gray", b, g, r)
	}
}

func TestCompositor_NearBackgroundInkIsMaskedOut(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that requires GoCV Mat creation")
	}

	s := NewSurface(640, 480)
	defer s.Close()
	// Below the mask threshold: treated as background.
	s.StrokeTo(nil, image.Pt(100, 100), color.RGBA{5, 5, 5, 255}, 16)

	frame := grayFrame()
	defer frame.Close()

	comp := NewCompositor()
	out := comp.Composite(&frame, s)
	defer out.Close()

	b, g, r := pixelAt(t, &out, 100, 100)
	if b != 50 || g != 50 || r != 50 {
		t.Errorf("sub-threshold ink pixel = (%d,%d,%d), want frame gray", b, g, r)
	}
}

func TestCompositor_DrawCursorPreviewsBrush(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that requires GoCV Mat creation")
	}

	s := NewSurface(640, 480)
	defer s.Close()

	frame := grayFrame()
	defer frame.Close()

	red := color.RGBA{255, 0, 0, 255}
	comp := NewCompositor()
	out := comp.Render(&frame, s, gesture.ModeDraw, image.Pt(320, 240), red)
	defer out.Close()

	// Filled brush disc in the active color at the cursor (BGR order).
	b, g, r := pixelAt(t, &out, 320, 240)
	if b != 0 || g != 0 || r != 255 {
		t.Errorf("draw cursor pixel = (%d,%d,%d), want red", b, g, r)
	}

	// The cursor is overlay only; the surface itself stays empty.
	b, g, r = pixelAt(t, s.Mat(), 320, 240)
	if b != 0 || g != 0 || r != 0 {
		t.Errorf("surface mutated by cursor: (%d,%d,%d)", b, g, r)
	}
}

func TestCompositor_EraseCursorPreviewsFootprint(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that requires GoCV Mat creation")
	}

	s := NewSurface(640, 480)
	defer s.Close()

	frame := grayFrame()
	defer frame.Close()

	comp := NewCompositor()
	out := comp.Render(&frame, s, gesture.ModeErase, image.Pt(320, 240), testWhite)
	defer out.Close()

	// Background-colored disc covers the frame at the cursor.
	b, g, r := pixelAt(t, &out, 320, 240)
	if b != 0 || g != 0 || r != 0 {
		t.Errorf("erase cursor pixel = (%d,%d,%d), want background", b, g, r)
	}
}

func TestCompositor_NoCursorForPassiveModes(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that requires GoCV Mat creation")
	}

	s := NewSurface(640, 480)
	defer s.Close()

	frame := grayFrame()
	defer frame.Close()

	comp := NewCompositor()
	for _, mode := range []gesture.Mode{gesture.ModeIdle, gesture.ModeNoHand, gesture.ModeColorChange} {
		out := comp.Render(&frame, s, mode, image.Pt(320, 240), testWhite)

		b, g, r := pixelAt(t, &out, 320, 240)
		if b != 50 || g != 50 || r != 50 {
			t.Errorf("%v: cursor pixel = (%d,%d,%d), want untouched frame gray", mode, b, g, r)
		}
		out.Close()
	}
}

func TestCompositor_HoverCursorRing(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that requires GoCV Mat creation")
	}

	s := NewSurface(640, 480)
	defer s.Close()

	frame := grayFrame()
	defer frame.Close()

	comp := NewCompositor()
	out := comp.Render(&frame, s, gesture.ModeHover, image.Pt(320, 240), testWhite)
	defer out.Close()

	// Center dot is drawn.
	b, g, r := pixelAt(t, &out, 320, 240)
	if b != 255 || g != 255 || r != 255 {
		t.Errorf("hover center dot = (%d,%d,%d), want white", b, g, r)
	}

	// The ring is hollow: halfway between dot and ring the frame shows.
	b, g, r = pixelAt(t, &out, 320+comp.CursorSize/2+1, 240)
	if b != 50 || g != 50 || r != 50 {
		t.Errorf("inside hover ring = (%d,%d,%d), want frame gray", b, g, r)
	}
}
