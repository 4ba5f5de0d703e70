package gen

import (
	"github.com/irfansharif/spectre/internal/geom"
)

// Node is either a *Tile or a *MetaTile. The set is closed: the unexported
// walk method keeps other packages from adding variants.
//
// Nodes are immutable once built and are shared between parents, so a node
// can appear under several composites with different transforms.
type Node interface {
	// Draw emits the node's polygons onto dc.Surface under t.
	Draw(dc *DrawContext, t geom.Affine)
	// Quad returns the node's anchor quad.
	Quad() Quad
	// Leaves returns the number of polygons Draw emits.
	Leaves() int
	// Depth returns the nesting depth; tiles have depth 0.
	Depth() int

	walk(t geom.Affine, fn func(*Tile, geom.Affine))
}

// Tile is a single spectre polygon.
type Tile struct {
	label Label
	quad  Quad
}

var _ Node = (*Tile)(nil)

// NewTile returns a tile with the given label and the template's anchor quad.
func NewTile(label Label) (*Tile, error) {
	if !label.Valid() {
		return nil, &UnknownLabelError{Label: label, Context: "tile"}
	}
	return &Tile{label: label, quad: TemplateQuad()}, nil
}

func mustTile(label Label) *Tile {
	t, err := NewTile(label)
	if err != nil {
		panic(err)
	}
	return t
}

func (t *Tile) Label() Label { return t.label }
func (t *Tile) Quad() Quad   { return t.quad }
func (t *Tile) Leaves() int  { return 1 }
func (t *Tile) Depth() int   { return 0 }

// Draw emits one closed, filled and outlined template polygon under tr.
func (t *Tile) Draw(dc *DrawContext, tr geom.Affine) {
	s := dc.Surface
	s.Push()
	s.Transform(tr)
	s.BeginPath()
	s.MoveTo(template[0].X, template[0].Y)
	for _, p := range template[1:] {
		s.LineTo(p.X, p.Y)
	}
	s.ClosePath()
	s.Fill(dc.Palette.Color(t.label))
	if dc.OutlineWidth > 0 {
		s.Stroke(dc.Outline, dc.OutlineWidth)
	}
	s.Pop()
	dc.Tiles++
}

func (t *Tile) walk(tr geom.Affine, fn func(*Tile, geom.Affine)) { fn(t, tr) }

// Child is a node placed under a local transform.
type Child struct {
	Node      Node
	Transform geom.Affine
}

// MetaTile is a composite of child nodes, each under its own transform.
type MetaTile struct {
	children []Child
	quad     Quad
	leaves   int
	depth    int
}

var _ Node = (*MetaTile)(nil)

// NewMetaTile returns a composite over the given children. The slice is
// copied; the child nodes themselves are shared.
func NewMetaTile(children []Child, quad Quad) *MetaTile {
	m := &MetaTile{
		children: append([]Child(nil), children...),
		quad:     quad,
	}
	for _, c := range m.children {
		m.leaves += c.Node.Leaves()
		if d := c.Node.Depth() + 1; d > m.depth {
			m.depth = d
		}
	}
	return m
}

// Children returns a copy of the (node, transform) pairs in draw order.
func (m *MetaTile) Children() []Child { return append([]Child(nil), m.children...) }

func (m *MetaTile) Quad() Quad  { return m.quad }
func (m *MetaTile) Leaves() int { return m.leaves }
func (m *MetaTile) Depth() int  { return m.depth }

// Draw draws every child, in order, under t composed with the child's
// transform.
func (m *MetaTile) Draw(dc *DrawContext, t geom.Affine) {
	for _, c := range m.children {
		c.Node.Draw(dc, t.Mul(c.Transform))
	}
}

func (m *MetaTile) walk(t geom.Affine, fn func(*Tile, geom.Affine)) {
	for _, c := range m.children {
		c.Node.walk(t.Mul(c.Transform), fn)
	}
}

// Walk calls fn for every leaf tile under n, in draw order, with the tile's
// global transform.
func Walk(n Node, t geom.Affine, fn func(tile *Tile, global geom.Affine)) {
	n.walk(t, fn)
}

// Bounds returns the bounding box of every polygon under n drawn with t.
func Bounds(n Node, t geom.Affine) geom.Box {
	b := geom.EmptyBox()
	var outline [TemplateSize]geom.Point
	Walk(n, t, func(_ *Tile, global geom.Affine) {
		for i, p := range template {
			outline[i] = global.MulPoint(p)
		}
		b = b.Union(geom.BoundsOf(outline[:]))
	})
	return b
}
