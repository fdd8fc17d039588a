package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/ayusman/airdraw/internal/app"
	"github.com/ayusman/airdraw/internal/server"
	"github.com/ayusman/airdraw/internal/store"
	"github.com/ayusman/airdraw/internal/tray"
)

func main() {
	var (
		cameraID     = flag.Int("camera", 0, "camera device ID")
		saveDir      = flag.String("save-dir", "", "directory for saved drawings (default ~/.airdraw/drawings)")
		dbPath       = flag.String("db", "", "path to the history database (default ~/.airdraw/airdraw.db)")
		addr         = flag.String("addr", ":8080", "HTTP listen address")
		headless     = flag.Bool("headless", false, "run without a preview window, controlled from the tray and HTTP API")
		motionThresh = flag.Float64("motion", 1.0, "motion threshold as percent of changed pixels")
		brush        = flag.Int("brush", 0, "brush thickness in pixels (0 = default)")
		eraser       = flag.Int("eraser", 0, "eraser thickness in pixels (0 = default)")
	)
	flag.Parse()

	fmt.Println("AirDraw - Hand Gesture Drawing")

	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Fatalf("Failed to get home directory: %v", err)
	}

	dataDir := filepath.Join(homeDir, ".airdraw")
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		log.Fatalf("Failed to create data directory: %v", err)
	}

	if *saveDir == "" {
		*saveDir = filepath.Join(dataDir, "drawings")
	}
	if *dbPath == "" {
		*dbPath = filepath.Join(dataDir, "airdraw.db")
	}

	st, err := store.New(*dbPath)
	if err != nil {
		log.Fatalf("Failed to initialize store: %v", err)
	}
	defer st.Close()

	application := app.New(app.Config{
		Store:           st,
		CameraID:        *cameraID,
		SaveDir:         *saveDir,
		MotionThresh:    *motionThresh,
		BrushThickness:  *brush,
		EraserThickness: *eraser,
	})

	webDir := findWebDir()
	if webDir != "" {
		fmt.Printf("Serving static files from: %s\n", webDir)
	}

	srv := server.New(server.Config{
		StaticDir: webDir,
		Store:     st,
		Hub:       application.Hub(),
		OnClear:   application.RequestClear,
		OnSave:    application.RequestSave,
	})

	go func() {
		fmt.Printf("Control server listening on %s\n", *addr)
		if err := srv.ListenAndServe(*addr); err != nil {
			log.Printf("Server failed: %v", err)
		}
	}()

	if *headless {
		runHeadless(application)
		return
	}

	// The preview window owns the main thread.
	if err := application.RunWindow(); err != nil {
		log.Fatalf("Failed to run: %v", err)
	}
}

// runHeadless starts the background pipeline and hands the main thread to
// the system tray, which requires it.
func runHeadless(application *app.App) {
	if err := application.Start(); err != nil {
		log.Fatalf("Failed to start pipeline: %v", err)
	}

	t := tray.New()
	t.OnToggle(application.SetEnabled)
	t.OnClear(application.RequestClear)
	t.OnSave(func() {
		if _, err := application.RequestSave(); err != nil {
			log.Printf("Save failed: %v", err)
		}
	})
	t.OnQuit(application.Stop)

	// A fatal camera failure ends the session; take the tray down with it.
	go func() {
		<-application.Done()
		t.Quit()
	}()

	t.Run()
}

// findWebDir searches for the web directory in common locations.
// It checks: "web", "../web", "../../web", and ~/.airdraw/web.
// Returns the first existing directory or empty string if none found.
func findWebDir() string {
	// Check relative paths from current working directory
	relativePaths := []string{"web", "../web", "../../web"}
	for _, p := range relativePaths {
		if info, err := os.Stat(p); err == nil && info.IsDir() {
			absPath, err := filepath.Abs(p)
			if err == nil {
				return absPath
			}
			return p
		}
	}

	// Check home directory
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	homeWebDir := filepath.Join(homeDir, ".airdraw", "web")
	if info, err := os.Stat(homeWebDir); err == nil && info.IsDir() {
		return homeWebDir
	}

	return ""
}
