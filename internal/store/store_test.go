package store

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	s, err := New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("store.New() error = %v", err)
	}
	t.Cleanup(func() { s.Close() })

	return s
}

func TestDrawingRepository_CreateAndGet(t *testing.T) {
	s := newTestStore(t)

	d := &Drawing{
		ID:            uuid.NewString(),
		InkPath:       "/saves/drawing_20250601_120000.png",
		CompositePath: "/saves/combined_20250601_120000.png",
		ColorIndex:    3,
	}

	if err := s.Drawings().Create(d); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	got, err := s.Drawings().GetByID(d.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}

	if got.InkPath != d.InkPath {
		t.Errorf("InkPath = %q, want %q", got.InkPath, d.InkPath)
	}
	if got.CompositePath != d.CompositePath {
		t.Errorf("CompositePath = %q, want %q", got.CompositePath, d.CompositePath)
	}
	if got.ColorIndex != 3 {
		t.Errorf("ColorIndex = %d, want 3", got.ColorIndex)
	}
	if got.CreatedAt.IsZero() {
		t.Error("CreatedAt not populated")
	}
}

func TestDrawingRepository_GetMissing(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Drawings().GetByID("nonexistent")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestDrawingRepository_List(t *testing.T) {
	s := newTestStore(t)

	for i := 0; i < 3; i++ {
		d := &Drawing{
			ID:            uuid.NewString(),
			InkPath:       "/saves/a.png",
			CompositePath: "/saves/b.png",
			ColorIndex:    i,
		}
		if err := s.Drawings().Create(d); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
	}

	drawings, err := s.Drawings().List()
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(drawings) != 3 {
		t.Errorf("len = %d, want 3", len(drawings))
	}
}

func TestDrawingRepository_Delete(t *testing.T) {
	s := newTestStore(t)

	d := &Drawing{
		ID:            uuid.NewString(),
		InkPath:       "/saves/a.png",
		CompositePath: "/saves/b.png",
	}
	s.Drawings().Create(d)

	if err := s.Drawings().Delete(d.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	if err := s.Drawings().Delete(d.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("second delete error = %v, want ErrNotFound", err)
	}
}

func TestSettingsRepository_RoundTrip(t *testing.T) {
	s := newTestStore(t)

	if err := s.Settings().Set(SettingColorIndex, "4"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	value, err := s.Settings().Get(SettingColorIndex)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if value != "4" {
		t.Errorf("value = %q, want 4", value)
	}

	// Set replaces the existing value.
	s.Settings().Set(SettingColorIndex, "7")
	if got := s.Settings().GetInt(SettingColorIndex, 0); got != 7 {
		t.Errorf("GetInt = %d, want 7", got)
	}
}

func TestSettingsRepository_GetIntFallback(t *testing.T) {
	s := newTestStore(t)

	if got := s.Settings().GetInt("missing", 42); got != 42 {
		t.Errorf("GetInt missing key = %d, want fallback 42", got)
	}

	s.Settings().Set(SettingBrushSize, "not-a-number")
	if got := s.Settings().GetInt(SettingBrushSize, 8); got != 8 {
		t.Errorf("GetInt non-numeric = %d, want fallback 8", got)
	}
}
