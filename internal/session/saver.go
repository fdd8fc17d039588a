package session

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gocv.io/x/gocv"

	"github.com/ayusman/airdraw/internal/canvas"
)

// SaveResult describes the files written by one save command.
type SaveResult struct {
	InkPath       string
	CompositePath string
	SavedAt       time.Time
}

// Save writes two timestamped PNGs under dir: the raw ink snapshot and
// the ink composited over an empty frame. A failed save leaves the
// session untouched; the caller reports the error and keeps drawing.
func Save(surface *canvas.Surface, dir string) (*SaveResult, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create save directory: %w", err)
	}

	now := time.Now()
	stamp := now.Format("20060102_150405")

	ink := surface.Snapshot()
	defer ink.Close()

	inkPath := filepath.Join(dir, fmt.Sprintf("drawing_%s.png", stamp))
	if ok := gocv.IMWrite(inkPath, ink); !ok {
		return nil, fmt.Errorf("write ink snapshot %s", inkPath)
	}

	// Composite over an all-background frame so the combined file shows
	// exactly what the mask keeps.
	blank := gocv.NewMatWithSize(surface.Height(), surface.Width(), gocv.MatTypeCV8UC3)
	defer blank.Close()

	comp := canvas.NewCompositor()
	combined := comp.Composite(&blank, surface)
	defer combined.Close()

	compositePath := filepath.Join(dir, fmt.Sprintf("combined_%s.png", stamp))
	if ok := gocv.IMWrite(compositePath, combined); !ok {
		return nil, fmt.Errorf("write composite %s", compositePath)
	}

	return &SaveResult{
		InkPath:       inkPath,
		CompositePath: compositePath,
		SavedAt:       now,
	}, nil
}
