package gen

import (
	"image/color"

	"github.com/irfansharif/spectre/internal/geom"
)

// Surface is a scoped 2D drawing target with canvas semantics: Transform
// multiplies into the current state, Push/Pop save and restore it, and Fill
// does not consume the current path so that a Stroke can follow.
type Surface interface {
	Push()
	Pop()
	Transform(t geom.Affine)
	BeginPath()
	MoveTo(x, y float64)
	LineTo(x, y float64)
	ClosePath()
	Fill(c color.RGBA)
	Stroke(c color.RGBA, width float64)
}

// DrawContext carries everything a traversal needs besides the transform.
// Tiles counts the polygons emitted through it. Build it with NewDrawContext;
// a literal with a zero Palette panics on the first tile.
type DrawContext struct {
	Surface      Surface
	Palette      Palette
	Outline      color.RGBA
	OutlineWidth float64 // in tile units; <= 0 disables the outline

	Tiles int
}

// DefaultOutline is the thin black outline drawn around every tile.
var DefaultOutline = color.RGBA{A: 255}

// DefaultOutlineWidth is the outline width in tile units.
const DefaultOutlineWidth = 0.1

// NewDrawContext returns a context drawing onto s with the given palette and
// the default outline.
func NewDrawContext(s Surface, p Palette) *DrawContext {
	return &DrawContext{
		Surface:      s,
		Palette:      p,
		Outline:      DefaultOutline,
		OutlineWidth: DefaultOutlineWidth,
	}
}
