package render

import (
	"image/color"

	"github.com/irfansharif/spectre/internal/gen"
	"github.com/irfansharif/spectre/internal/geom"
)

// FloatsPerVertex is the interleaved vertex layout: x, y, r, g, b, a.
const FloatsPerVertex = 6

// Mesh is a Surface that flattens filled polygons into triangles and
// outlines into line segments, in the coordinates produced by the current
// transform. The result is what the GL renderer uploads. Outline widths are
// not represented; GL draws them as hairlines.
type Mesh struct {
	current geom.Affine
	stack   []geom.Affine
	path    []geom.Point
	closed  bool

	triangles []float32
	lines     []float32
	bounds    geom.Box
	polygons  int
	err       error
}

var _ gen.Surface = (*Mesh)(nil)

// NewMesh returns an empty mesh with an identity transform.
func NewMesh() *Mesh {
	return &Mesh{current: geom.Identity(), bounds: geom.EmptyBox()}
}

func (m *Mesh) Push() { m.stack = append(m.stack, m.current) }

func (m *Mesh) Pop() {
	if len(m.stack) == 0 {
		return
	}
	m.current = m.stack[len(m.stack)-1]
	m.stack = m.stack[:len(m.stack)-1]
}

func (m *Mesh) Transform(t geom.Affine) { m.current = m.current.Mul(t) }

func (m *Mesh) BeginPath() {
	m.path = m.path[:0]
	m.closed = false
}

func (m *Mesh) MoveTo(x, y float64) {
	m.path = append(m.path[:0], m.current.MulPoint(geom.MakePoint(x, y)))
	m.closed = false
}

func (m *Mesh) LineTo(x, y float64) {
	m.path = append(m.path, m.current.MulPoint(geom.MakePoint(x, y)))
}

func (m *Mesh) ClosePath() { m.closed = true }

// Fill triangulates the current path. The first triangulation error is kept
// and reported by Err; later fills still proceed.
func (m *Mesh) Fill(c color.RGBA) {
	triangles, err := earClip(m.path)
	if err != nil {
		if m.err == nil {
			m.err = err
		}
		return
	}
	for _, tri := range triangles {
		for _, p := range tri {
			m.triangles = appendVertex(m.triangles, p, c)
		}
	}
	for _, p := range m.path {
		m.bounds = m.bounds.Expand(p)
	}
	m.polygons++
}

// Stroke appends the outline of the current path as line segments.
func (m *Mesh) Stroke(c color.RGBA, _ float64) {
	n := len(m.path)
	segments := n - 1
	if m.closed {
		segments = n
	}
	for i := 0; i < segments; i++ {
		m.lines = appendVertex(m.lines, m.path[i], c)
		m.lines = appendVertex(m.lines, m.path[(i+1)%n], c)
	}
}

func appendVertex(buf []float32, p geom.Point, c color.RGBA) []float32 {
	return append(buf,
		float32(p.X), float32(p.Y), // position
		float32(c.R)/255.0, float32(c.G)/255.0,
		float32(c.B)/255.0, float32(c.A)/255.0, // color
	)
}

// Triangles returns the interleaved triangle vertex data.
func (m *Mesh) Triangles() []float32 { return m.triangles }

// Lines returns the interleaved line vertex data.
func (m *Mesh) Lines() []float32 { return m.lines }

// Polygons returns the number of filled polygons.
func (m *Mesh) Polygons() int { return m.polygons }

// Bounds returns the bounding box of every filled polygon.
func (m *Mesh) Bounds() geom.Box { return m.bounds }

// Err returns the first triangulation error, if any.
func (m *Mesh) Err() error { return m.err }
