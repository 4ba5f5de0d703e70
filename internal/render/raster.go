package render

import (
	"fmt"
	"image"
	"image/color"
	"io"

	"github.com/gogpu/gg"

	"github.com/irfansharif/spectre/internal/gen"
	"github.com/irfansharif/spectre/internal/geom"
)

// Raster is a Surface backed by a gg software context. It rasterizes as it
// goes and encodes the result as PNG.
type Raster struct {
	dc  *gg.Context
	err error
}

var _ gen.Surface = (*Raster)(nil)

// NewRaster returns a width x height raster cleared to background.
func NewRaster(width, height int, background color.RGBA) *Raster {
	dc := gg.NewContext(width, height)
	dc.ClearWithColor(gg.FromColor(background))
	return &Raster{dc: dc}
}

func (r *Raster) Push() { r.dc.Push() }
func (r *Raster) Pop()  { r.dc.Pop() }

func (r *Raster) Transform(t geom.Affine) {
	r.dc.Transform(gg.Matrix{A: t.A, B: t.B, C: t.C, D: t.D, E: t.E, F: t.F})
}

func (r *Raster) BeginPath()          { r.dc.ClearPath() }
func (r *Raster) MoveTo(x, y float64) { r.dc.MoveTo(x, y) }
func (r *Raster) LineTo(x, y float64) { r.dc.LineTo(x, y) }
func (r *Raster) ClosePath()          { r.dc.ClosePath() }

func (r *Raster) Fill(c color.RGBA) {
	r.dc.SetColor(c)
	r.keep(r.dc.FillPreserve())
}

func (r *Raster) Stroke(c color.RGBA, width float64) {
	r.dc.SetColor(c)
	r.dc.SetLineWidth(width)
	r.keep(r.dc.StrokePreserve())
}

func (r *Raster) keep(err error) {
	if err != nil && r.err == nil {
		r.err = fmt.Errorf("render: raster: %w", err)
	}
}

// Err returns the first fill or stroke error.
func (r *Raster) Err() error { return r.err }

// Image returns the rendered image.
func (r *Raster) Image() image.Image { return r.dc.Image() }

// EncodePNG writes the image as PNG.
func (r *Raster) EncodePNG(w io.Writer) error {
	if r.err != nil {
		return r.err
	}
	return r.dc.EncodePNG(w)
}

// Close releases the context.
func (r *Raster) Close() error { return r.dc.Close() }
