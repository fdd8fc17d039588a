// Package app wires the airdraw pipeline together: camera capture, hand
// detection, the drawing session, compositing, and the outputs (preview
// window or MJPEG hub), plus the save history store.
package app

import (
	"errors"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ayusman/airdraw/internal/canvas"
	"github.com/ayusman/airdraw/internal/capture"
	"github.com/ayusman/airdraw/internal/detector"
	"github.com/ayusman/airdraw/internal/server"
	"github.com/ayusman/airdraw/internal/server/api"
	"github.com/ayusman/airdraw/internal/session"
	"github.com/ayusman/airdraw/internal/store"
)

// Pipeline timing constants.
const (
	// IdleFPS is the frame rate when no motion is detected.
	IdleFPS = 5
	// ActiveFPS is the frame rate during active drawing.
	ActiveFPS = 15
	// IdleTimeoutMs is the time in milliseconds without motion before
	// dropping back to idle pacing.
	IdleTimeoutMs = 2000
)

// ErrNotRunning is returned by remote commands when no pipeline is active.
var ErrNotRunning = errors.New("pipeline is not running")

// Config holds configuration options for the application.
type Config struct {
	Store        *store.Store
	CameraID     int
	SaveDir      string
	MotionThresh float64

	// BrushThickness, EraserThickness and SmoothingFactor override the
	// drawing defaults when positive.
	BrushThickness  int
	EraserThickness int
	SmoothingFactor float64
}

// Command kinds accepted by the frame loop.
const (
	cmdClear = iota
	cmdSave
	cmdQuit
)

type saveReply struct {
	outcome api.SaveOutcome
	err     error
}

// command is a request injected into the frame loop. The loop is the
// only goroutine that touches the session, so clears and saves from the
// keyboard, the tray, and the HTTP API all funnel through here.
type command struct {
	kind  int
	reply chan saveReply
}

// App orchestrates the gesture drawing pipeline.
type App struct {
	config     Config
	camera     capture.Camera
	motion     *capture.MotionDetector
	detector   detector.Detector
	session    *session.Controller
	compositor *canvas.Compositor
	hub        *server.Hub

	enabled  bool
	mu       sync.RWMutex
	stopCh   chan struct{}
	done     chan struct{}
	commands chan command
}

// New creates a new App instance with the given configuration.
func New(config Config) *App {
	motionThreshold := config.MotionThresh
	if motionThreshold <= 0 {
		motionThreshold = 1.0 // Default threshold: 1% pixel change
	}

	a := &App{
		config:     config,
		camera:     capture.NewCamera(config.CameraID),
		motion:     capture.NewMotionDetector(motionThreshold),
		compositor: canvas.NewCompositor(),
		hub:        server.NewHub(),
		enabled:    true,
		commands:   make(chan command, 8),
	}

	if config.BrushThickness > 0 {
		a.compositor.BrushThickness = config.BrushThickness
	}
	if config.EraserThickness > 0 {
		a.compositor.EraserThickness = config.EraserThickness
	}

	// Try MediaPipe first, fall back to mock detector
	if mp, err := detector.NewMediaPipeDetector(detector.DefaultConfig()); err == nil {
		a.detector = mp
		log.Println("Using MediaPipe hand detection")
	} else {
		log.Printf("MediaPipe not available (%v), using mock detector", err)
		a.detector = detector.NewMockDetector()
	}

	return a
}

// SetEnabled enables or disables gesture processing. While disabled the
// pipeline keeps streaming the composited canvas but ignores hands.
func (a *App) SetEnabled(enabled bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.enabled = enabled
}

// IsEnabled returns whether gesture processing is currently enabled.
func (a *App) IsEnabled() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.enabled
}

// SetDetector sets the hand detector implementation to use.
func (a *App) SetDetector(d detector.Detector) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.detector = d
}

// SetCamera sets the camera implementation to use. It must be called
// before Start or Run.
func (a *App) SetCamera(c capture.Camera) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.camera = c
}

// Hub returns the frame/state hub consumed by the HTTP server.
func (a *App) Hub() *server.Hub {
	return a.hub
}

// Session returns the drawing session controller.
func (a *App) Session() *session.Controller {
	return a.session
}

// Camera returns the camera instance.
func (a *App) Camera() capture.Camera {
	return a.camera
}

// Detector returns the hand detector.
func (a *App) Detector() detector.Detector {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.detector
}

// RestoreColorIndex loads the persisted palette position so a restarted
// session picks up the color it left off with.
func (a *App) RestoreColorIndex() {
	if a.config.Store == nil || a.session == nil {
		return
	}

	idx := a.config.Store.Settings().GetInt(store.SettingColorIndex, 0)
	a.session.Cycler().SetIndex(idx)
}

// openSession opens the camera and creates the session controller sized
// to the frames the device actually delivers.
func (a *App) openSession() error {
	if err := a.camera.Open(); err != nil {
		return err
	}

	// An explicit flag wins; otherwise fall back to the persisted brush
	// size from the last session, if any.
	brush := a.config.BrushThickness
	if brush <= 0 && a.config.Store != nil {
		brush = a.config.Store.Settings().GetInt(store.SettingBrushSize, 0)
	}
	if brush > 0 {
		a.compositor.BrushThickness = brush
	}

	width, height := a.camera.Size()
	a.session = session.New(session.Config{
		Width:           width,
		Height:          height,
		BrushThickness:  brush,
		EraserThickness: a.config.EraserThickness,
		SmoothingFactor: a.config.SmoothingFactor,
	})
	a.RestoreColorIndex()

	return nil
}

// Start begins the headless pipeline, publishing composited frames and
// session state to the hub.
func (a *App) Start() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	// Don't start if already running
	if a.stopCh != nil {
		return nil
	}

	if err := a.openSession(); err != nil {
		return err
	}

	a.camera.SetFPS(IdleFPS)
	a.stopCh = make(chan struct{})
	a.done = make(chan struct{})
	go a.runPipeline(a.stopCh, a.done)

	log.Println("Drawing pipeline started")
	return nil
}

// Stop halts the pipeline and releases resources. It waits for the frame
// loop to exit before closing the camera and surface Mats, so the loop
// never touches freed native memory.
func (a *App) Stop() {
	a.mu.Lock()
	stopCh, done := a.stopCh, a.done
	a.stopCh = nil
	a.done = nil
	a.mu.Unlock()

	if stopCh != nil {
		close(stopCh)
	}
	if done != nil {
		<-done
	}

	a.mu.Lock()
	a.closeResources()
	a.mu.Unlock()

	log.Println("Drawing pipeline stopped")
}

// Done returns a channel that is closed when the frame loop exits,
// whether from Stop, a quit command, or a fatal camera failure. A closed
// channel is returned when no loop is running.
func (a *App) Done() <-chan struct{} {
	a.mu.RLock()
	defer a.mu.RUnlock()

	if a.done == nil {
		closed := make(chan struct{})
		close(closed)
		return closed
	}
	return a.done
}

func (a *App) closeResources() {
	if err := a.camera.Close(); err != nil {
		log.Printf("Error closing camera: %v", err)
	}

	a.motion.Close()

	if a.detector != nil {
		if err := a.detector.Close(); err != nil {
			log.Printf("Error closing detector: %v", err)
		}
	}

	if a.session != nil {
		a.session.Close()
	}
}

// RequestClear asks the frame loop to wipe the canvas. Safe to call from
// any goroutine; the request is dropped if the loop is not running.
func (a *App) RequestClear() {
	select {
	case a.commands <- command{kind: cmdClear}:
	default:
	}
}

// RequestSave asks the frame loop to save the canvas and waits for the
// outcome.
func (a *App) RequestSave() (api.SaveOutcome, error) {
	reply := make(chan saveReply, 1)

	select {
	case a.commands <- command{kind: cmdSave, reply: reply}:
	case <-time.After(2 * time.Second):
		return api.SaveOutcome{}, ErrNotRunning
	}

	select {
	case r := <-reply:
		return r.outcome, r.err
	case <-time.After(5 * time.Second):
		return api.SaveOutcome{}, errors.New("save timed out")
	}
}

// RequestQuit asks the frame loop to exit. Only the window loop honors
// it; the headless pipeline stops via Stop.
func (a *App) RequestQuit() {
	select {
	case a.commands <- command{kind: cmdQuit}:
	default:
	}
}

// save writes the snapshot pair, records it in the save history, and
// persists the current palette position.
func (a *App) save() (api.SaveOutcome, error) {
	res, err := session.Save(a.session.Surface(), a.config.SaveDir)
	if err != nil {
		return api.SaveOutcome{}, err
	}

	outcome := api.SaveOutcome{
		InkPath:       res.InkPath,
		CompositePath: res.CompositePath,
	}

	if a.config.Store != nil {
		d := &store.Drawing{
			ID:            uuid.NewString(),
			InkPath:       res.InkPath,
			CompositePath: res.CompositePath,
			ColorIndex:    a.session.Cycler().Index(),
		}
		if err := a.config.Store.Drawings().Create(d); err != nil {
			log.Printf("Failed to record save: %v", err)
		} else {
			outcome.ID = d.ID
		}

		if err := a.config.Store.Settings().SetInt(store.SettingColorIndex, a.session.Cycler().Index()); err != nil {
			log.Printf("Failed to persist color index: %v", err)
		}
		if err := a.config.Store.Settings().SetInt(store.SettingBrushSize, a.compositor.BrushThickness); err != nil {
			log.Printf("Failed to persist brush size: %v", err)
		}
	}

	log.Printf("Saved drawing: %s", res.InkPath)
	return outcome, nil
}

// drainCommands applies all pending commands. It reports false when a
// quit was requested.
func (a *App) drainCommands() bool {
	for {
		select {
		case cmd := <-a.commands:
			switch cmd.kind {
			case cmdClear:
				a.session.Clear()
				log.Println("Canvas cleared")
			case cmdSave:
				outcome, err := a.save()
				if cmd.reply != nil {
					cmd.reply <- saveReply{outcome: outcome, err: err}
				} else if err != nil {
					log.Printf("Save failed: %v", err)
				}
			case cmdQuit:
				return false
			}
		default:
			return true
		}
	}
}
