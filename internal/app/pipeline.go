package app

import (
	"fmt"
	"log"
	"time"

	"gocv.io/x/gocv"

	"github.com/ayusman/airdraw/internal/canvas"
	"github.com/ayusman/airdraw/internal/detector"
	"github.com/ayusman/airdraw/internal/server"
)

// runPipeline is the headless frame loop. It paces capture with motion
// detection, runs the drawing session, and publishes composited frames
// and state to the hub for the HTTP surfaces.
//
// Pipeline logic:
// 1. Start in idle mode (IdleFPS=5), streaming the canvas as-is
// 2. On motion, switch to active mode (ActiveFPS=15) and track hands
// 3. Feed the tracked hand through the drawing session
// 4. Composite ink over the frame, overlay cursor and HUD
// 5. After 2s without motion, drop back to idle mode
//
// A camera read failure is fatal: the loop reports it and ends the
// session rather than spinning against a dead device.
func (a *App) runPipeline(stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)

	activeMode := false
	lastMotionTime := time.Now()

	frameInterval := time.Second / time.Duration(IdleFPS)
	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			if !a.drainCommands() {
				return
			}

			frame, err := a.camera.ReadFrame()
			if err != nil {
				log.Printf("Camera read failed, ending session: %v", err)
				return
			}

			// Mirror the feed so on-screen motion matches hand motion.
			gocv.Flip(*frame, frame, 1)

			motionDetected, _ := a.motion.Detect(frame)

			if motionDetected {
				lastMotionTime = time.Now()

				if !activeMode {
					activeMode = true
					a.camera.SetFPS(ActiveFPS)
					frameInterval = time.Second / time.Duration(ActiveFPS)
					ticker.Reset(frameInterval)
					log.Println("Switched to active mode")
				}
			} else if activeMode {
				if time.Since(lastMotionTime) > time.Duration(IdleTimeoutMs)*time.Millisecond {
					activeMode = false
					a.camera.SetFPS(IdleFPS)
					frameInterval = time.Second / time.Duration(IdleFPS)
					ticker.Reset(frameInterval)
					log.Println("Switched to idle mode")
				}
			}

			out := a.processFrame(frame, activeMode)
			frame.Close()

			a.publishFrame(&out)
			out.Close()
		}
	}
}

// RunWindow runs the pipeline with a native preview window. It blocks
// until the user quits and must be called from the main goroutine; the
// HighGUI event loop does not survive thread migration.
func (a *App) RunWindow() error {
	a.mu.Lock()
	if a.stopCh != nil {
		a.mu.Unlock()
		return nil
	}
	if err := a.openSession(); err != nil {
		a.mu.Unlock()
		return err
	}
	stop := make(chan struct{})
	done := make(chan struct{})
	a.stopCh = stop
	a.done = done
	a.mu.Unlock()

	defer a.Stop()
	defer close(done)

	window := gocv.NewWindow("AirDraw")
	defer window.Close()

	activeMode := false
	lastMotionTime := time.Now()
	waitMs := 1000 / IdleFPS

	for {
		select {
		case <-stop:
			return nil
		default:
		}

		if !a.drainCommands() {
			return nil
		}

		frame, err := a.camera.ReadFrame()
		if err != nil {
			// Fatal: the session ends once frames stop arriving.
			return fmt.Errorf("read frame: %w", err)
		}

		gocv.Flip(*frame, frame, 1)

		motionDetected, _ := a.motion.Detect(frame)
		if motionDetected {
			lastMotionTime = time.Now()
			if !activeMode {
				activeMode = true
				a.camera.SetFPS(ActiveFPS)
				waitMs = 1000 / ActiveFPS
			}
		} else if activeMode && time.Since(lastMotionTime) > time.Duration(IdleTimeoutMs)*time.Millisecond {
			activeMode = false
			a.camera.SetFPS(IdleFPS)
			waitMs = 1000 / IdleFPS
		}

		out := a.processFrame(frame, activeMode)
		frame.Close()

		a.publishFrame(&out)
		window.IMShow(out)
		out.Close()

		switch window.WaitKey(waitMs) {
		case 'c':
			a.session.Clear()
			log.Println("Canvas cleared")
		case 's':
			if _, err := a.save(); err != nil {
				log.Printf("Save failed: %v", err)
			}
		case 'q', 27: // ESC
			return nil
		}
	}
}

// processFrame runs one mirrored frame through hand tracking and the
// drawing session, then composites ink, cursor, and HUD over it. The
// caller owns the returned Mat. When track is false (idle pacing or
// processing disabled) the session sees no hand, which breaks stroke
// continuity exactly like losing tracking does.
func (a *App) processFrame(frame *gocv.Mat, track bool) gocv.Mat {
	var hand *detector.HandLandmarks

	if track && a.IsEnabled() {
		hands, err := a.Detector().Detect(frame)
		if err != nil {
			log.Printf("Error detecting hands: %v", err)
		} else if len(hands) > 0 {
			hand = &hands[0]
		}
	}

	fs := a.session.Process(hand)

	out := a.compositor.Render(frame, a.session.Surface(), fs.Mode, fs.Cursor, a.session.Cycler().Color())
	canvas.DrawHUD(&out, a.session.HUDState(fs))

	a.hub.PublishState(server.State{
		Mode:       fs.Mode.String(),
		ColorName:  a.session.Cycler().Name(),
		ColorIndex: a.session.Cycler().Index(),
		BrushPx:    a.compositor.BrushThickness,
		Hand:       fs.Hand,
		Fingers: server.FingerFlags{
			Thumb:  fs.Fingers.Thumb,
			Index:  fs.Fingers.Index,
			Middle: fs.Fingers.Middle,
			Ring:   fs.Fingers.Ring,
			Pinky:  fs.Fingers.Pinky,
		},
	})

	return out
}

// publishFrame JPEG-encodes the composited frame for the MJPEG stream.
func (a *App) publishFrame(out *gocv.Mat) {
	buf, err := gocv.IMEncode(".jpg", *out)
	if err != nil {
		log.Printf("Error encoding frame: %v", err)
		return
	}
	defer buf.Close()

	// The buffer's bytes are invalidated by Close; the hub keeps its own copy.
	jpeg := make([]byte, buf.Len())
	copy(jpeg, buf.GetBytes())
	a.hub.PublishFrame(jpeg)
}
