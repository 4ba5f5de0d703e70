package app

import (
	"math"

	"github.com/irfansharif/spectre/internal/geom"
)

const (
	minZoom = 0.1
	maxZoom = 8.0
)

// View manages the window's zoom and pan over the rendered canvas. Zoom is
// applied about the viewport center, then the pan in screen pixels.
type View struct {
	Zoom          float64
	PanX, PanY    float64
	Width, Height int
}

// NewView creates a new view state with default values.
func NewView(width, height int) *View {
	return &View{
		Zoom:   1.0,
		Width:  width,
		Height: height,
	}
}

// SetZoom sets the zoom level, clamping to valid range.
func (vs *View) SetZoom(zoom float64) {
	if zoom < minZoom {
		vs.Zoom = minZoom
	} else if zoom > maxZoom {
		vs.Zoom = maxZoom
	} else {
		vs.Zoom = zoom
	}
}

// SetViewport updates the viewport dimensions.
func (vs *View) SetViewport(width, height int) {
	vs.Width = width
	vs.Height = height
}

// CenterOn pans so that canvas point pos lands on the viewport center at the
// current zoom.
func (vs *View) CenterOn(pos geom.Point) {
	viewportCenterX := float64(vs.Width) / 2.0
	viewportCenterY := float64(vs.Height) / 2.0
	vs.PanX = vs.Zoom * (viewportCenterX - pos.X)
	vs.PanY = vs.Zoom * (viewportCenterY - pos.Y)
}

// FitCanvas zooms so that a cw x ch canvas fits the viewport and centers it.
func (vs *View) FitCanvas(cw, ch int) {
	if cw <= 0 || ch <= 0 || vs.Width <= 0 || vs.Height <= 0 {
		return
	}
	vs.SetZoom(math.Min(float64(vs.Width)/float64(cw), float64(vs.Height)/float64(ch)))
	vs.CenterOn(geom.MakePoint(float64(cw)/2.0, float64(ch)/2.0))
}
