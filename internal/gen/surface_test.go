package gen

import (
	"image/color"

	"github.com/irfansharif/spectre/internal/geom"
)

// fill is one recorded Fill call with the transform in effect.
type fill struct {
	Transform geom.Affine
	Color     color.RGBA
	Path      []geom.Point
}

// recorder is a Surface that tracks the transform stack and records fills.
type recorder struct {
	current geom.Affine
	stack   []geom.Affine
	path    []geom.Point
	closed  bool

	fills   []fill
	strokes int
	ops     int
}

func newRecorder() *recorder { return &recorder{current: geom.Identity()} }

func (r *recorder) Push() { r.ops++; r.stack = append(r.stack, r.current) }
func (r *recorder) Pop() {
	r.ops++
	r.current = r.stack[len(r.stack)-1]
	r.stack = r.stack[:len(r.stack)-1]
}
func (r *recorder) Transform(t geom.Affine) { r.ops++; r.current = r.current.Mul(t) }
func (r *recorder) BeginPath()              { r.ops++; r.path = nil; r.closed = false }
func (r *recorder) MoveTo(x, y float64)     { r.ops++; r.path = append(r.path, geom.MakePoint(x, y)) }
func (r *recorder) LineTo(x, y float64)     { r.ops++; r.path = append(r.path, geom.MakePoint(x, y)) }
func (r *recorder) ClosePath()              { r.ops++; r.closed = true }
func (r *recorder) Fill(c color.RGBA) {
	r.ops++
	r.fills = append(r.fills, fill{Transform: r.current, Color: c, Path: r.path})
}
func (r *recorder) Stroke(color.RGBA, float64) { r.ops++; r.strokes++ }

var _ Surface = (*recorder)(nil)
