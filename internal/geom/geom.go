// Package geom is the planar math behind tile placement and viewports. An
// Affine maps tile coordinates onto a parent or onto the canvas, and composes
// in canvas order: t.Mul(u) applies u first. Boxes start empty and grow as
// points are added, and FillBox fits one box into another, which is how a
// tiling is scaled to the output size.
package geom

import (
	"fmt"
	"math"
)

// Point represents a 2D point or vector in Cartesian coordinates.
type Point struct {
	X float64
	Y float64
}

// Box represents an axis-aligned rectangle.
type Box struct {
	X float64
	Y float64
	W float64
	H float64
}

// Affine represents a 2D affine transform in row-major form:
// [ a b c ]
// [ d e f ]
// where (x', y') = (a*x + b*y + c, d*x + e*y + f)
type Affine struct {
	A float64
	B float64
	C float64
	D float64
	E float64
	F float64
}

func MakePoint(x, y float64) Point               { return Point{X: x, Y: y} }
func MakeBox(x, y, w, h float64) Box             { return Box{X: x, Y: y, W: w, H: h} }
func MakeAffine(a, b, c, d, e, f float64) Affine { return Affine{A: a, B: b, C: c, D: d, E: e, F: f} }

// ApproxEqual reports whether p and q are within eps of each other on both
// axes.
func (p Point) ApproxEqual(q Point, eps float64) bool {
	return math.Abs(p.X-q.X) <= eps && math.Abs(p.Y-q.Y) <= eps
}

// Radians converts degrees to radians.
func Radians(deg float64) float64 { return deg * math.Pi / 180.0 }

// Identity returns the identity transform.
func Identity() Affine { return MakeAffine(1, 0, 0, 0, 1, 0) }

// Rotate returns a counter-clockwise rotation about the origin.
func Rotate(angle float64) Affine {
	c, s := math.Cos(angle), math.Sin(angle)
	return MakeAffine(c, -s, 0, s, c, 0)
}

// Translate returns a translation by (dx, dy).
func Translate(dx, dy float64) Affine { return MakeAffine(1, 0, dx, 0, 1, dy) }

// Scale returns a scaling about the origin.
func Scale(sx, sy float64) Affine { return MakeAffine(sx, 0, 0, 0, sy, 0) }

// TranslateBetween returns the translation that maps p onto q.
func TranslateBetween(p, q Point) Affine { return Translate(q.X-p.X, q.Y-p.Y) }

// MulPoint applies the affine transform to a point.
func (t Affine) MulPoint(p Point) Point {
	return Point{
		X: t.A*p.X + t.B*p.Y + t.C,
		Y: t.D*p.X + t.E*p.Y + t.F,
	}
}

// Mul composes two affine transforms (applies u then t).
func (t Affine) Mul(u Affine) Affine {
	return MakeAffine(
		t.A*u.A+t.B*u.D,
		t.A*u.B+t.B*u.E,
		t.A*u.C+t.B*u.F+t.C,
		t.D*u.A+t.E*u.D,
		t.D*u.B+t.E*u.E,
		t.D*u.C+t.E*u.F+t.F,
	)
}

// Inv returns the inverse of the affine transform.
// Returns an error if the transform is not invertible (determinant is zero).
func (t Affine) Inv() (Affine, error) {
	det := t.A*t.E - t.B*t.D
	if math.Abs(det) < 1e-10 {
		return Affine{}, fmt.Errorf("affine transform is not invertible (determinant ≈ 0)")
	}
	return MakeAffine(
		t.E/det, -t.B/det, (t.B*t.F-t.C*t.E)/det,
		-t.D/det, t.A/det, (t.C*t.D-t.A*t.F)/det,
	), nil
}

// ApproxEqual reports whether every coefficient of t is within eps of the
// corresponding coefficient of u.
func (t Affine) ApproxEqual(u Affine, eps float64) bool {
	return math.Abs(t.A-u.A) <= eps && math.Abs(t.B-u.B) <= eps && math.Abs(t.C-u.C) <= eps &&
		math.Abs(t.D-u.D) <= eps && math.Abs(t.E-u.E) <= eps && math.Abs(t.F-u.F) <= eps
}

func (t Affine) String() string {
	return fmt.Sprintf("[%.6g %.6g %.6g; %.6g %.6g %.6g]", t.A, t.B, t.C, t.D, t.E, t.F)
}

// EmptyBox returns a box that contains nothing; expanding it with a point
// yields a zero-sized box at that point.
func EmptyBox() Box {
	return Box{X: math.Inf(1), Y: math.Inf(1), W: math.Inf(-1), H: math.Inf(-1)}
}

// IsEmpty reports whether the box has not been expanded by any point.
func (b Box) IsEmpty() bool { return math.IsInf(b.X, 1) }

// Expand returns the smallest box containing both b and p.
func (b Box) Expand(p Point) Box {
	if b.IsEmpty() {
		return MakeBox(p.X, p.Y, 0, 0)
	}
	xmin, ymin := math.Min(b.X, p.X), math.Min(b.Y, p.Y)
	xmax, ymax := math.Max(b.X+b.W, p.X), math.Max(b.Y+b.H, p.Y)
	return MakeBox(xmin, ymin, xmax-xmin, ymax-ymin)
}

// Union returns the smallest box containing both b and o.
func (b Box) Union(o Box) Box {
	if o.IsEmpty() {
		return b
	}
	return b.Expand(MakePoint(o.X, o.Y)).Expand(MakePoint(o.X+o.W, o.Y+o.H))
}

// BoundsOf returns the bounding box of the given points.
func BoundsOf(pts []Point) Box {
	b := EmptyBox()
	for _, p := range pts {
		b = b.Expand(p)
	}
	return b
}

// FillBox returns a transform that maps box b1 into b2, optionally allowing a
// 90-degree rotation. Both boxes need positive width and height.
func FillBox(b1, b2 Box, allowRotate bool) (Affine, error) {
	if b1.W <= 0 || b1.H <= 0 {
		return Affine{}, fmt.Errorf("source box must have positive width and height, got W=%v H=%v", b1.W, b1.H)
	}
	if b2.W <= 0 || b2.H <= 0 {
		return Affine{}, fmt.Errorf("destination box must have positive width and height, got W=%v H=%v", b2.W, b2.H)
	}

	sc := math.Min(b2.W/b1.W, b2.H/b1.H)
	rsc := math.Min(b2.W/b1.H, b2.H/b1.W)
	centerDst := MakeAffine(1, 0, b2.X+0.5*b2.W, 0, 1, b2.Y+0.5*b2.H)
	centerSrc := MakeAffine(1, 0, -(b1.X + 0.5*b1.W), 0, 1, -(b1.Y + 0.5*b1.H))
	if !allowRotate || sc > rsc {
		return centerDst.Mul(MakeAffine(sc, 0, 0, 0, sc, 0)).Mul(centerSrc), nil
	}
	rot := MakeAffine(0, -1, 0, 1, 0, 0)
	return centerDst.Mul(MakeAffine(rsc, 0, 0, 0, rsc, 0)).Mul(rot).Mul(centerSrc), nil
}
