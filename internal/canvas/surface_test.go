package canvas

import (
	"image"
	"image/color"
	"testing"

	"gocv.io/x/gocv"
)

var testWhite = color.RGBA{255, 255, 255, 255}

// pixelAt returns the BGR values at (x, y).
func pixelAt(t *testing.T, m *gocv.Mat, x, y int) (b, g, r uint8) {
	t.Helper()
	v := m.GetVecbAt(y, x)
	return v[0], v[1], v[2]
}

func TestSurface_StartsEmpty(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that requires GoCV Mat creation")
	}

	s := NewSurface(640, 480)
	defer s.Close()

	for _, p := range []image.Point{{0, 0}, {320, 240}, {639, 479}} {
		b, g, r := pixelAt(t, s.Mat(), p.X, p.Y)
		if b != 0 || g != 0 || r != 0 {
			t.Errorf("pixel at %v = (%d,%d,%d), want background", p, b, g, r)
		}
	}
}

func TestSurface_StrokeSeedsDiscWithoutPreviousPoint(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that requires GoCV Mat creation")
	}

	s := NewSurface(640, 480)
	defer s.Close()

	s.StrokeTo(nil, image.Pt(100, 100), testWhite, 8)

	b, g, r := pixelAt(t, s.Mat(), 100, 100)
	if b != 255 || g != 255 || r != 255 {
		t.Errorf("seed disc center = (%d,%d,%d), want white", b, g, r)
	}

	// Well outside the disc radius nothing is painted.
	b, g, r = pixelAt(t, s.Mat(), 200, 200)
	if b != 0 || g != 0 || r != 0 {
		t.Errorf("pixel outside disc = (%d,%d,%d), want background", b, g, r)
	}
}

func TestSurface_StrokeConnectsSegment(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that requires GoCV Mat creation")
	}

	s := NewSurface(640, 480)
	defer s.Close()

	from := image.Pt(100, 100)
	s.StrokeTo(&from, image.Pt(200, 100), testWhite, 8)

	// The midpoint of the segment carries ink even though no sample
	// landed there.
	b, g, r := pixelAt(t, s.Mat(), 150, 100)
	if b != 255 || g != 255 || r != 255 {
		t.Errorf("segment midpoint = (%d,%d,%d), want white", b, g, r)
	}
}

func TestSurface_EraseOverwritesInk(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that requires GoCV Mat creation")
	}

	s := NewSurface(640, 480)
	defer s.Close()

	s.StrokeTo(nil, image.Pt(200, 200), testWhite, 20)
	s.EraseAt(image.Pt(200, 200), 40)

	b, g, r := pixelAt(t, s.Mat(), 200, 200)
	if b != 0 || g != 0 || r != 0 {
		t.Errorf("erased pixel = (%d,%d,%d), want background", b, g, r)
	}
}

func TestSurface_ClearThenSnapshotIsEmpty(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that requires GoCV Mat creation")
	}

	s := NewSurface(640, 480)
	defer s.Close()

	s.StrokeTo(nil, image.Pt(50, 50), testWhite, 8)
	from := image.Pt(50, 50)
	s.StrokeTo(&from, image.Pt(300, 300), testWhite, 8)
	s.Clear()

	snap := s.Snapshot()
	defer snap.Close()

	gray := gocv.NewMat()
	defer gray.Close()
	gocv.CvtColor(snap, &gray, gocv.ColorBGRToGray)

	if n := gocv.CountNonZero(gray); n != 0 {
		t.Errorf("snapshot after clear has %d non-background pixels, want 0", n)
	}
}

func TestSurface_SnapshotIsIndependentCopy(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping test that requires GoCV Mat creation")
	}

	s := NewSurface(640, 480)
	defer s.Close()

	snap := s.Snapshot()
	defer snap.Close()

	// Ink laid after the snapshot must not appear in it.
	s.StrokeTo(nil, image.Pt(100, 100), testWhite, 8)

	v := snap.GetVecbAt(100, 100)
	if v[0] != 0 || v[1] != 0 || v[2] != 0 {
		t.Errorf("snapshot mutated by later stroke: (%d,%d,%d)", v[0], v[1], v[2])
	}
}
