package render

import (
	"fmt"
	"image/color"
	"io"
	"math"

	"github.com/go-pdf/fpdf"

	"github.com/irfansharif/spectre/internal/gen"
	"github.com/irfansharif/spectre/internal/geom"
)

// PDF is a Surface that draws onto a single width x height page measured in
// points. Paths are mapped to page coordinates as they are built, so the page
// uses the same y-down canvas coordinates as the other surfaces.
type PDF struct {
	doc *fpdf.Fpdf

	current geom.Affine
	stack   []geom.Affine
	path    []fpdf.PointType
}

var _ gen.Surface = (*PDF)(nil)

// NewPDF returns a one-page PDF surface.
func NewPDF(width, height int) *PDF {
	doc := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           fpdf.SizeType{Wd: float64(width), Ht: float64(height)},
	})
	doc.SetMargins(0, 0, 0)
	doc.SetAutoPageBreak(false, 0)
	doc.SetLineJoinStyle("round")
	doc.AddPage()
	return &PDF{doc: doc, current: geom.Identity()}
}

func (p *PDF) Push() { p.stack = append(p.stack, p.current) }

func (p *PDF) Pop() {
	if len(p.stack) == 0 {
		return
	}
	p.current = p.stack[len(p.stack)-1]
	p.stack = p.stack[:len(p.stack)-1]
}

func (p *PDF) Transform(t geom.Affine) { p.current = p.current.Mul(t) }

func (p *PDF) BeginPath() { p.path = p.path[:0] }

func (p *PDF) MoveTo(x, y float64) {
	p.path = append(p.path[:0], p.point(x, y))
}

func (p *PDF) LineTo(x, y float64) { p.path = append(p.path, p.point(x, y)) }

// ClosePath is implicit: fpdf polygons are always closed.
func (p *PDF) ClosePath() {}

func (p *PDF) point(x, y float64) fpdf.PointType {
	q := p.current.MulPoint(geom.MakePoint(x, y))
	return fpdf.PointType{X: q.X, Y: q.Y}
}

func (p *PDF) Fill(c color.RGBA) {
	p.doc.SetFillColor(int(c.R), int(c.G), int(c.B))
	p.doc.Polygon(p.path, "F")
}

// Stroke outlines the current path. The width is given in path units and
// scaled by the current transform.
func (p *PDF) Stroke(c color.RGBA, width float64) {
	scale := math.Sqrt(math.Abs(p.current.A*p.current.E - p.current.B*p.current.D))
	p.doc.SetDrawColor(int(c.R), int(c.G), int(c.B))
	p.doc.SetLineWidth(width * scale)
	p.doc.Polygon(p.path, "D")
}

// PageCount returns the number of pages in the document.
func (p *PDF) PageCount() int { return p.doc.PageCount() }

// Err returns the first error recorded by the document.
func (p *PDF) Err() error {
	if err := p.doc.Error(); err != nil {
		return fmt.Errorf("render: pdf: %w", err)
	}
	return nil
}

// Output writes the PDF document.
func (p *PDF) Output(w io.Writer) error {
	if err := p.doc.Output(w); err != nil {
		return fmt.Errorf("render: pdf: %w", err)
	}
	return nil
}
