package gesture

import (
	"image/color"
	"time"
)

// ColorChangeCooldown is the minimum gap between accepted palette
// advances. A held thumb-up pose spans many frames; without the cooldown
// one gesture would advance the palette dozens of times per second.
const ColorChangeCooldown = 500 * time.Millisecond

// PaletteColor pairs a drawing color with its display name.
type PaletteColor struct {
	Name  string
	Color color.RGBA
}

// DefaultPalette is the fixed drawing palette, in cycle order.
var DefaultPalette = []PaletteColor{
	{"White", color.RGBA{255, 255, 255, 255}},
	{"Red", color.RGBA{255, 0, 0, 255}},
	{"Green", color.RGBA{0, 255, 0, 255}},
	{"Blue", color.RGBA{0, 0, 255, 255}},
	{"Yellow", color.RGBA{255, 255, 0, 255}},
	{"Magenta", color.RGBA{255, 0, 255, 255}},
	{"Cyan", color.RGBA{0, 255, 255, 255}},
	{"Purple", color.RGBA{128, 0, 128, 255}},
	{"Orange", color.RGBA{255, 165, 0, 255}},
	{"Dark Green", color.RGBA{0, 128, 0, 255}},
}

// ColorCycler steps through a fixed palette with a cooldown-debounced
// advance. Rejected advances are silent no-ops, not errors.
type ColorCycler struct {
	palette    []PaletteColor
	index      int
	lastChange time.Time
	now        func() time.Time
}

// NewColorCycler creates a cycler over the default palette.
func NewColorCycler() *ColorCycler {
	return &ColorCycler{
		palette: DefaultPalette,
		now:     time.Now,
	}
}

// Advance moves to the next palette color, wrapping at the end. The
// advance is accepted only if the cooldown has elapsed since the last
// accepted advance. Returns whether the index actually changed.
func (c *ColorCycler) Advance() bool {
	now := c.now()
	if now.Sub(c.lastChange) <= ColorChangeCooldown {
		return false
	}

	c.index = (c.index + 1) % len(c.palette)
	c.lastChange = now
	return true
}

// Color returns the active drawing color.
func (c *ColorCycler) Color() color.RGBA {
	return c.palette[c.index].Color
}

// Name returns the display name of the active color.
func (c *ColorCycler) Name() string {
	return c.palette[c.index].Name
}

// Index returns the active palette index.
func (c *ColorCycler) Index() int {
	return c.index
}

// Size returns the number of palette entries.
func (c *ColorCycler) Size() int {
	return len(c.palette)
}

// SetIndex jumps directly to the given palette index, used to restore a
// persisted selection at startup. Out-of-range values are ignored.
func (c *ColorCycler) SetIndex(i int) {
	if i < 0 || i >= len(c.palette) {
		return
	}
	c.index = i
}
