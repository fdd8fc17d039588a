package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"gocv.io/x/gocv"

	"github.com/ayusman/airdraw/internal/capture"
	"github.com/ayusman/airdraw/internal/detector"
	"github.com/ayusman/airdraw/internal/store"
)

// grayFrame allocates a mid-gray camera frame. Callers own the Mat.
func grayFrame(t *testing.T) *gocv.Mat {
	t.Helper()
	frame := gocv.NewMatWithSize(480, 640, gocv.MatTypeCV8UC3)
	frame.SetTo(gocv.NewScalar(50, 50, 50, 0))
	t.Cleanup(func() { frame.Close() })
	return &frame
}

func newTestApp(t *testing.T) (*App, *store.Store) {
	t.Helper()

	tmpDir := t.TempDir()
	s, err := store.New(filepath.Join(tmpDir, "test.db"))
	if err != nil {
		t.Fatalf("store.New() error = %v", err)
	}
	t.Cleanup(func() { s.Close() })

	a := New(Config{
		Store:        s,
		SaveDir:      filepath.Join(tmpDir, "saves"),
		MotionThresh: 0.05,
	})
	return a, s
}

func TestApp_ProcessFrame_DrawsInk(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	a, _ := newTestApp(t)

	frame := grayFrame(t)
	a.SetCamera(capture.NewMockCamera([]*gocv.Mat{frame}, true))

	mock := detector.NewMockDetector()
	mock.SetHands([]detector.HandLandmarks{detector.IndexUpLandmarks()})
	a.SetDetector(mock)

	if err := a.openSession(); err != nil {
		t.Fatalf("openSession() error = %v", err)
	}
	defer a.session.Close()

	out := a.processFrame(frame, true)
	out.Close()

	// First tracked sample passes through unsmoothed: tip (0.56, 0.32)
	// over a 640x480 frame lands at (358, 153).
	ink := a.session.Surface().Snapshot()
	defer ink.Close()
	if v := ink.GetVecbAt(153, 358); v[0] == 0 && v[1] == 0 && v[2] == 0 {
		t.Error("expected ink at the fingertip position")
	}

	if got := a.hub.State(); got.Mode != "DRAW" {
		t.Errorf("hub mode = %q, want DRAW", got.Mode)
	}
	if !a.hub.State().Fingers.Index {
		t.Error("expected index finger reported up")
	}
}

func TestApp_ProcessFrame_DisabledIgnoresHands(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	a, _ := newTestApp(t)

	frame := grayFrame(t)
	a.SetCamera(capture.NewMockCamera([]*gocv.Mat{frame}, true))

	mock := detector.NewMockDetector()
	mock.SetHands([]detector.HandLandmarks{detector.IndexUpLandmarks()})
	a.SetDetector(mock)

	if err := a.openSession(); err != nil {
		t.Fatalf("openSession() error = %v", err)
	}
	defer a.session.Close()

	a.SetEnabled(false)
	out := a.processFrame(frame, true)
	out.Close()

	if got := a.hub.State(); got.Mode != "NO_HAND" {
		t.Errorf("hub mode = %q, want NO_HAND while disabled", got.Mode)
	}
}

func TestApp_SaveRecordsHistory(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	a, s := newTestApp(t)

	frame := grayFrame(t)
	a.SetCamera(capture.NewMockCamera([]*gocv.Mat{frame}, true))

	mock := detector.NewMockDetector()
	mock.SetHands([]detector.HandLandmarks{detector.IndexUpLandmarks()})
	a.SetDetector(mock)

	if err := a.openSession(); err != nil {
		t.Fatalf("openSession() error = %v", err)
	}
	defer a.session.Close()

	out := a.processFrame(frame, true)
	out.Close()

	outcome, err := a.save()
	if err != nil {
		t.Fatalf("save() error = %v", err)
	}

	if _, err := os.Stat(outcome.InkPath); err != nil {
		t.Errorf("ink file missing: %v", err)
	}
	if _, err := os.Stat(outcome.CompositePath); err != nil {
		t.Errorf("composite file missing: %v", err)
	}
	if outcome.ID == "" {
		t.Fatal("expected save to be recorded with an ID")
	}

	d, err := s.Drawings().GetByID(outcome.ID)
	if err != nil {
		t.Fatalf("Drawings().GetByID() error = %v", err)
	}
	if d.InkPath != outcome.InkPath {
		t.Errorf("recorded ink path = %q, want %q", d.InkPath, outcome.InkPath)
	}
}

func TestApp_ClearCommand(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	a, _ := newTestApp(t)

	frame := grayFrame(t)
	a.SetCamera(capture.NewMockCamera([]*gocv.Mat{frame}, true))

	mock := detector.NewMockDetector()
	mock.SetHands([]detector.HandLandmarks{detector.IndexUpLandmarks()})
	a.SetDetector(mock)

	if err := a.openSession(); err != nil {
		t.Fatalf("openSession() error = %v", err)
	}
	defer a.session.Close()

	out := a.processFrame(frame, true)
	out.Close()

	a.RequestClear()
	if !a.drainCommands() {
		t.Fatal("drainCommands() reported quit")
	}

	ink := a.session.Surface().Snapshot()
	defer ink.Close()

	gray := gocv.NewMat()
	defer gray.Close()
	gocv.CvtColor(ink, &gray, gocv.ColorBGRToGray)
	if n := gocv.CountNonZero(gray); n != 0 {
		t.Errorf("surface has %d inked pixels after clear, want 0", n)
	}
}

func TestApp_FatalReadEndsPipeline(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	a, _ := newTestApp(t)

	// A non-looping camera runs dry after its last frame, like an
	// unplugged device. The loop must end the session, not spin on the
	// read error.
	frame := grayFrame(t)
	a.SetCamera(capture.NewMockCamera([]*gocv.Mat{frame, frame}, false))
	a.SetDetector(detector.NewMockDetector())

	if err := a.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	defer a.Stop()

	select {
	case <-a.Done():
	case <-time.After(3 * time.Second):
		t.Fatal("pipeline kept running after the camera ran out of frames")
	}
}

func TestApp_StopWaitsForLoopExit(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	a, _ := newTestApp(t)

	frame := grayFrame(t)
	a.SetCamera(capture.NewMockCamera([]*gocv.Mat{frame}, true))
	a.SetDetector(detector.NewMockDetector())

	if err := a.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	done := a.Done()
	a.Stop()

	// Stop must not release the camera and surface Mats while the loop
	// could still be mid-frame.
	select {
	case <-done:
	default:
		t.Error("Stop() returned before the frame loop exited")
	}
}

func TestApp_HeadlessPipeline(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	a, _ := newTestApp(t)

	// Alternating dark and bright frames keep the motion detector firing
	// so the pipeline stays in active mode and tracks hands.
	dark := gocv.NewMatWithSize(480, 640, gocv.MatTypeCV8UC3)
	defer dark.Close()
	bright := gocv.NewMatWithSize(480, 640, gocv.MatTypeCV8UC3)
	bright.SetTo(gocv.NewScalar(200, 200, 200, 0))
	defer bright.Close()

	a.SetCamera(capture.NewMockCamera([]*gocv.Mat{&dark, &bright}, true))

	mock := detector.NewMockDetector()
	mock.SetHands([]detector.HandLandmarks{detector.IndexUpLandmarks()})
	a.SetDetector(mock)

	if err := a.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	defer a.Stop()

	// Let the loop publish a few frames.
	time.Sleep(600 * time.Millisecond)

	frame, seq := a.Hub().Frame()
	if seq == 0 || len(frame) == 0 {
		t.Fatal("expected the pipeline to publish JPEG frames")
	}
	if got := a.Hub().State(); got.Mode == "" {
		t.Error("expected the pipeline to publish session state")
	}

	outcome, err := a.RequestSave()
	if err != nil {
		t.Fatalf("RequestSave() error = %v", err)
	}
	if _, err := os.Stat(outcome.InkPath); err != nil {
		t.Errorf("ink file missing: %v", err)
	}
}
