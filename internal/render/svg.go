package render

import (
	"bytes"
	"fmt"
	"image/color"
	"io"
	"strings"

	jgeom "github.com/jbeda/geom"

	"github.com/irfansharif/spectre/internal/gen"
	"github.com/irfansharif/spectre/internal/geom"
	"github.com/irfansharif/spectre/internal/palette"
)

// svgPath is one emitted <path>: the outline in local coordinates, the
// transform it is drawn under, and its paint.
type svgPath struct {
	d           string
	transform   geom.Affine
	fill        string
	stroke      string
	strokeWidth float64
}

// SVG is a Surface that serializes to an SVG document. Paths keep their
// local coordinates and carry the accumulated transform as a matrix(), the
// way a canvas applies it.
type SVG struct {
	width, height int

	current geom.Affine
	stack   []geom.Affine
	local   []geom.Point
	closed  bool
	open    int // index of the element painted from the current path, or -1

	paths     []svgPath
	bounds    jgeom.Rect
	hasBounds bool
}

var _ gen.Surface = (*SVG)(nil)

// NewSVG returns an SVG surface. With a positive width and height the view
// box is the canvas (0, 0, width, height); otherwise it is fitted to the
// drawn content.
func NewSVG(width, height int) *SVG {
	return &SVG{width: width, height: height, current: geom.Identity(), open: -1}
}

func (s *SVG) Push() { s.stack = append(s.stack, s.current) }

func (s *SVG) Pop() {
	if len(s.stack) == 0 {
		return
	}
	s.current = s.stack[len(s.stack)-1]
	s.stack = s.stack[:len(s.stack)-1]
}

func (s *SVG) Transform(t geom.Affine) { s.current = s.current.Mul(t) }

func (s *SVG) BeginPath() {
	s.local = s.local[:0]
	s.closed = false
	s.open = -1
}

func (s *SVG) MoveTo(x, y float64) {
	s.local = append(s.local[:0], geom.MakePoint(x, y))
	s.open = -1
}

func (s *SVG) LineTo(x, y float64) {
	s.local = append(s.local, geom.MakePoint(x, y))
	s.open = -1
}

func (s *SVG) ClosePath() {
	s.closed = true
	s.open = -1
}

func (s *SVG) Fill(c color.RGBA) {
	s.paint().fill = palette.Hex(c)
}

func (s *SVG) Stroke(c color.RGBA, width float64) {
	p := s.paint()
	p.stroke = palette.Hex(c)
	p.strokeWidth = width
}

// paint returns the element for the current path, creating it on first use
// so that a Fill followed by a Stroke yields one element.
func (s *SVG) paint() *svgPath {
	if s.open >= 0 {
		return &s.paths[s.open]
	}
	s.paths = append(s.paths, svgPath{d: s.pathData(), transform: s.current, fill: "none"})
	s.open = len(s.paths) - 1
	for _, p := range s.local {
		q := s.current.MulPoint(p)
		c := jgeom.Coord{X: q.X, Y: q.Y}
		if !s.hasBounds {
			s.bounds = jgeom.Rect{Min: c, Max: c}
			s.hasBounds = true
			continue
		}
		s.bounds.ExpandToContainCoord(c)
	}
	return &s.paths[s.open]
}

func (s *SVG) pathData() string {
	var b strings.Builder
	for i, p := range s.local {
		cmd := "L"
		if i == 0 {
			cmd = "M"
		}
		fmt.Fprintf(&b, "%s%.4f,%.4f ", cmd, p.X, p.Y)
	}
	if s.closed {
		b.WriteString("Z")
	}
	return strings.TrimSpace(b.String())
}

// Paths returns the number of elements drawn so far.
func (s *SVG) Paths() int { return len(s.paths) }

// Bounds returns the bounding box of everything drawn, in document
// coordinates.
func (s *SVG) Bounds() (geom.Box, bool) {
	if !s.hasBounds {
		return geom.Box{}, false
	}
	return geom.MakeBox(s.bounds.Min.X, s.bounds.Min.Y, s.bounds.Width(), s.bounds.Height()), true
}

func (s *SVG) viewBox() jgeom.Rect {
	if s.width > 0 && s.height > 0 {
		return jgeom.Rect{Max: jgeom.Coord{X: float64(s.width), Y: float64(s.height)}}
	}
	if !s.hasBounds {
		return jgeom.Rect{Max: jgeom.Coord{X: 1, Y: 1}}
	}
	return s.bounds
}

// WriteTo writes the SVG document.
func (s *SVG) WriteTo(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	vb := s.viewBox()
	fmt.Fprintf(&buf, `<?xml version="1.0"?>
<svg version="1.1"
     viewBox="%f %f %f %f"`, vb.Min.X, vb.Min.Y, vb.Width(), vb.Height())
	if s.width > 0 && s.height > 0 {
		fmt.Fprintf(&buf, ` width="%d" height="%d"`, s.width, s.height)
	}
	buf.WriteString("\n     xmlns=\"http://www.w3.org/2000/svg\">\n")

	for _, p := range s.paths {
		t := p.transform
		style := "fill: " + p.fill
		if p.stroke != "" {
			style += fmt.Sprintf("; stroke: %s; stroke-width: %g; stroke-linejoin: round", p.stroke, p.strokeWidth)
		}
		fmt.Fprintf(&buf, "<path d='%s' transform='matrix(%f %f %f %f %f %f)' style='%s'/>\n",
			p.d, t.A, t.D, t.B, t.E, t.C, t.F, style)
	}
	buf.WriteString("</svg>\n")
	return buf.WriteTo(w)
}
