package gen

import (
	"math"

	"github.com/irfansharif/spectre/internal/geom"
)

// TemplateSize is the number of vertices in the spectre outline.
const TemplateSize = 14

// AnchorIndices are the template positions that make up a tile's anchor
// quad.
var AnchorIndices = [4]int{3, 5, 7, 11}

// Quad is an anchor quadrilateral. It is only used to align copies of a
// cluster during substitution and is never drawn.
type Quad [4]geom.Point

var r3 = math.Sqrt(3) / 2

// template is the spectre outline with unit edges. Every tile at every
// generation draws exactly these points under its accumulated transform.
var template = [TemplateSize]geom.Point{
	{X: 0, Y: 0},
	{X: 1.0, Y: 0.0},
	{X: 1.5, Y: -r3},
	{X: 1.5 + r3, Y: 0.5 - r3},
	{X: 1.5 + r3, Y: 1.5 - r3},
	{X: 2.5 + r3, Y: 1.5 - r3},
	{X: 3 + r3, Y: 1.5},
	{X: 3.0, Y: 2.0},
	{X: 3 - r3, Y: 1.5},
	{X: 2.5 - r3, Y: 1.5 + r3},
	{X: 1.5 - r3, Y: 1.5 + r3},
	{X: 0.5 - r3, Y: 1.5 + r3},
	{X: -r3, Y: 1.5},
	{X: 0.0, Y: 1.0},
}

// Template returns a copy of the spectre outline.
func Template() [TemplateSize]geom.Point { return template }

// TemplateQuad returns the anchor quad extracted from the template.
func TemplateQuad() Quad {
	var q Quad
	for i, idx := range AnchorIndices {
		q[i] = template[idx]
	}
	return q
}

// Map applies t to every point of the quad.
func (q Quad) Map(t geom.Affine) Quad {
	var out Quad
	for i, p := range q {
		out[i] = t.MulPoint(p)
	}
	return out
}
