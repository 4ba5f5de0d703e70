package gen

import (
	"errors"
	"image/color"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/irfansharif/spectre/internal/geom"
)

const eps = 1e-9

func TestLabels(t *testing.T) {
	labels := Labels()
	require.Len(t, labels, 11)
	for _, l := range labels {
		require.True(t, l.Valid())
		parsed, err := ParseLabel(l.String())
		require.NoError(t, err)
		require.Equal(t, l, parsed)
	}
	require.False(t, noLabel.Valid())
	require.Equal(t, "Label(0)", noLabel.String())

	_, err := ParseLabel("Omega")
	require.ErrorIs(t, err, ErrUnknownLabel)
}

func TestTemplate(t *testing.T) {
	tpl := Template()
	require.Len(t, tpl, 14)
	require.Equal(t, geom.MakePoint(0, 0), tpl[0])
	require.Equal(t, geom.MakePoint(3, 2), tpl[7])

	// All fourteen edges have unit length.
	for i := range tpl {
		d := math.Hypot(tpl[i].X-tpl[(i+1)%len(tpl)].X, tpl[i].Y-tpl[(i+1)%len(tpl)].Y)
		require.InDelta(t, 1.0, d, eps, "edge %d", i)
	}

	// Callers get a copy.
	tpl[0] = geom.MakePoint(99, 99)
	require.Equal(t, geom.MakePoint(0, 0), Template()[0])

	q := TemplateQuad()
	for i, idx := range []int{3, 5, 7, 11} {
		require.Equal(t, Template()[idx], q[i])
	}
}

func TestNewTile(t *testing.T) {
	for _, l := range Labels() {
		tile, err := NewTile(l)
		require.NoError(t, err)
		require.Equal(t, l, tile.Label())
		require.Equal(t, TemplateQuad(), tile.Quad())
		require.Equal(t, 1, tile.Leaves())
		require.Zero(t, tile.Depth())
	}

	_, err := NewTile(Label(42))
	var ule *UnknownLabelError
	require.ErrorAs(t, err, &ule)
	require.Equal(t, Label(42), ule.Label)
	require.ErrorIs(t, err, ErrUnknownLabel)
}

func TestBaseCluster(t *testing.T) {
	base := BaseCluster()
	require.Zero(t, base.Level())
	require.Equal(t, 11, base.Len())
	require.Equal(t, Labels(), base.Labels())

	for _, l := range Labels() {
		n, ok := base.Get(l)
		require.True(t, ok, "label %v", l)
		if l == Gamma {
			continue
		}
		tile, ok := n.(*Tile)
		require.True(t, ok, "label %v is a plain tile", l)
		require.Equal(t, l, tile.Label())
	}

	n, _ := base.Get(Gamma)
	mystic, ok := n.(*MetaTile)
	require.True(t, ok)
	require.Equal(t, TemplateQuad(), mystic.Quad())

	children := mystic.Children()
	require.Len(t, children, 2)
	require.Equal(t, Gamma1, children[0].Node.(*Tile).Label())
	require.Equal(t, geom.Identity(), children[0].Transform)
	require.Equal(t, Gamma2, children[1].Node.(*Tile).Label())

	p8 := Template()[8]
	want := geom.Translate(p8.X, p8.Y).Mul(geom.Rotate(math.Pi / 6))
	require.True(t, children[1].Transform.ApproxEqual(want, eps))
	require.True(t, children[1].Transform.ApproxEqual(MysticTransform(), eps))

	// Children() hands out a copy.
	children[0].Transform = geom.Scale(5, 5)
	require.Equal(t, geom.Identity(), mystic.Children()[0].Transform)
}

func TestValidateRules(t *testing.T) {
	require.NoError(t, ValidateRules())

	row, err := SubstitutionRowFor(Gamma)
	require.NoError(t, err)
	require.Equal(t, 7, row.Present())
	for _, l := range []Label{Delta, Theta, Lambda, Xi, Pi, Sigma, Phi, Psi} {
		row, err := SubstitutionRowFor(l)
		require.NoError(t, err)
		require.Equal(t, 8, row.Present(), "row %v", l)
	}

	_, err = SubstitutionRowFor(Gamma1)
	require.ErrorIs(t, err, ErrUnknownLabel)
}

func TestSlotSourcesHaveRows(t *testing.T) {
	for _, row := range SubstitutionRules {
		for i, src := range row.Slots {
			if src == noLabel {
				continue
			}
			_, err := SubstitutionRowFor(src)
			require.NoError(t, err, "row %v slot %d", row.Label, i)
		}
	}
}

func TestSlotTransforms(t *testing.T) {
	r3 := math.Sqrt(3) / 2
	want := [SlotCount]geom.Affine{
		geom.MakeAffine(-1, 0, 0, 0, 1, 0),
		geom.MakeAffine(-0.5, r3, 1.5, r3, 0.5, -r3),
		geom.MakeAffine(-0.5, r3, 1.5+2*r3, r3, 0.5, r3),
		geom.MakeAffine(0.5, r3, 1.5+2*r3, r3, -0.5, -r3),
		geom.MakeAffine(1, 0, 2*r3, 0, -1, -2*r3),
		geom.MakeAffine(1, 0, 1.5+r3, 0, -1, -(1.5 + 3*r3)),
		geom.MakeAffine(0.5, -r3, r3, -r3, -0.5, -(1.5 + 2*r3)),
		geom.MakeAffine(0.5, r3, -(1.5 + 2*r3), r3, -0.5, -3*r3),
	}
	got := SlotTransforms(TemplateQuad())
	for i := range want {
		require.True(t, got[i].ApproxEqual(want[i], eps), "slot %d: got %v want %v", i, got[i], want[i])
	}

	// Slot 0 is the bare reflection.
	require.Equal(t, Reflection, got[0])
}

func TestSuperQuad(t *testing.T) {
	quad := TemplateQuad()
	sq := SuperQuad(quad, SlotTransforms(quad))
	want := Quad{
		{X: 0.6339745962155634, Y: -6.830127018922193},
		{X: 5.7320508075688785, Y: -4.732050807568876},
		{X: 6.4641016151377535, Y: 0.7320508075688783},
		{X: -3.3660254037844384, Y: 0.6339745962155614},
	}
	for i := range want {
		require.True(t, sq[i].ApproxEqual(want[i], eps), "vertex %d: got %v", i, sq[i])
	}
}

func TestSupertiles(t *testing.T) {
	base := BaseCluster()
	next, err := Supertiles(base)
	require.NoError(t, err)
	require.Equal(t, 1, next.Level())
	require.Equal(t, 9, next.Len())

	// The input generation is untouched.
	require.Equal(t, 11, base.Len())

	slots := SlotTransforms(TemplateQuad())
	superQuad := SuperQuad(TemplateQuad(), slots)
	for _, row := range SubstitutionRules {
		n, ok := next.Get(row.Label)
		require.True(t, ok)
		m := n.(*MetaTile)
		require.Equal(t, superQuad, m.Quad(), "all rows share the super quad")

		children := m.Children()
		require.Len(t, children, row.Present())
		c := 0
		for i, src := range row.Slots {
			if src == noLabel {
				continue
			}
			prev, _ := base.Get(src)
			require.Same(t, prev, children[c].Node, "row %v slot %d shares the previous node", row.Label, i)
			require.Equal(t, slots[i], children[c].Transform)
			c++
		}
	}
}

func TestSupertilesMissingLabel(t *testing.T) {
	_, err := Supertiles(newGeneration(0, map[Label]Node{}))
	require.ErrorIs(t, err, ErrUnknownLabel)

	partial := newGeneration(2, map[Label]Node{Delta: mustTile(Delta)})
	_, err = Supertiles(partial)
	var ule *UnknownLabelError
	require.ErrorAs(t, err, &ule)
	require.Equal(t, Pi, ule.Label, "first missing source in the Gamma row")
}

func TestGenerateLeafCounts(t *testing.T) {
	g, err := NewGenerator()
	require.NoError(t, err)

	tiling, err := g.Generate(3)
	require.NoError(t, err)
	require.Equal(t, 3, tiling.Iterations())

	golden := []struct {
		gamma, other int
	}{
		{2, 1},
		{8, 9},
		{62, 71},
		{488, 559},
	}
	for k, want := range golden {
		gen, ok := tiling.Generation(k)
		require.True(t, ok)
		for _, l := range gen.Labels() {
			n, _ := gen.Get(l)
			switch l {
			case Gamma:
				require.Equal(t, want.gamma, n.Leaves(), "generation %d %v", k, l)
			default:
				require.Equal(t, want.other, n.Leaves(), "generation %d %v", k, l)
			}
		}
		if k > 0 {
			require.Equal(t, 9, gen.Len())
			prev, _ := tiling.Generation(k - 1)
			for _, l := range gen.Labels() {
				n, _ := gen.Get(l)
				p, _ := prev.Get(l)
				require.Greater(t, n.Leaves(), p.Leaves(), "fan-out for %v at generation %d", l, k)
				require.Equal(t, k+1, n.Depth(), "depth for %v at generation %d", l, k)
			}
		}
	}

	_, ok := tiling.Generation(4)
	require.False(t, ok)
	require.Equal(t, 3, tiling.Final().Level())
}

func TestGenerateInvalidIterationCount(t *testing.T) {
	g, err := NewGenerator()
	require.NoError(t, err)

	_, err = g.Generate(-1)
	var iic *InvalidIterationCountError
	require.ErrorAs(t, err, &iic)
	require.Equal(t, -1, iic.N)
	require.ErrorIs(t, err, ErrInvalidIterationCount)
}

func TestDrawBaseCluster(t *testing.T) {
	g, err := NewGenerator()
	require.NoError(t, err)
	tiling, err := g.Generate(0)
	require.NoError(t, err)

	for _, tt := range []struct {
		label Label
		want  int
	}{
		{Delta, 1},
		{Gamma, 2},
		{Gamma1, 1},
	} {
		rec := newRecorder()
		dc := NewDrawContext(rec, DefaultPalette())
		n, err := tiling.Draw(dc, tt.label, geom.Identity())
		require.NoError(t, err)
		require.Equal(t, tt.want, n, "label %v", tt.label)
		require.Equal(t, tt.want, dc.Tiles)
		require.Len(t, rec.fills, tt.want)
		require.Equal(t, tt.want, rec.strokes)
		require.Empty(t, rec.stack, "pushes and pops balance")
	}
}

func TestDrawEmitsTemplateOutline(t *testing.T) {
	rec := newRecorder()
	dc := NewDrawContext(rec, DefaultPalette())
	tile := mustTile(Xi)
	tr := geom.Translate(2, 3).Mul(geom.Rotate(1))
	tile.Draw(dc, tr)

	require.Len(t, rec.fills, 1)
	f := rec.fills[0]
	tpl := Template()
	require.Equal(t, tpl[:], f.Path)
	require.True(t, rec.closed)
	require.Equal(t, tr, f.Transform)
	require.Equal(t, color.RGBA{R: 255, G: 242, B: 0, A: 255}, f.Color)
	// push, transform, begin, move, 13 lines, close, fill, stroke, pop
	require.Equal(t, 21, rec.ops)

	rec = newRecorder()
	dc = NewDrawContext(rec, DefaultPalette())
	dc.OutlineWidth = 0
	tile.Draw(dc, tr)
	require.Zero(t, rec.strokes)
}

func TestDrawFirstGeneration(t *testing.T) {
	g, err := NewGenerator()
	require.NoError(t, err)
	tiling, err := g.Generate(1)
	require.NoError(t, err)

	rec := newRecorder()
	pal := DefaultPalette()
	viewport := geom.Translate(400, 400).Mul(geom.Scale(100, 100))
	n, err := tiling.Draw(NewDrawContext(rec, pal), Delta, viewport)
	require.NoError(t, err)
	require.Equal(t, 9, n)

	// Each polygon sits at viewport * slot (* mystic placement for Gamma's
	// second half), in slot order.
	slots := SlotTransforms(TemplateQuad())
	row, _ := SubstitutionRowFor(Delta)
	var want []fill
	for i, src := range row.Slots {
		if src == Gamma {
			want = append(want,
				fill{Transform: viewport.Mul(slots[i]), Color: pal.Color(Gamma1)},
				fill{Transform: viewport.Mul(slots[i]).Mul(MysticTransform()), Color: pal.Color(Gamma2)})
			continue
		}
		want = append(want, fill{Transform: viewport.Mul(slots[i]), Color: pal.Color(src)})
	}
	require.Len(t, rec.fills, len(want))
	for i := range want {
		require.True(t, rec.fills[i].Transform.ApproxEqual(want[i].Transform, 1e-6), "polygon %d", i)
		require.Equal(t, want[i].Color, rec.fills[i].Color, "polygon %d", i)
	}

	_, err = tiling.Draw(NewDrawContext(rec, pal), Gamma1, viewport)
	require.ErrorIs(t, err, ErrUnknownLabel)
}

func TestDrawDeterministic(t *testing.T) {
	run := func() *recorder {
		g, err := NewGenerator()
		require.NoError(t, err)
		tiling, err := g.Generate(3)
		require.NoError(t, err)
		rec := newRecorder()
		n, err := tiling.Draw(NewDrawContext(rec, DefaultPalette()), Delta, geom.Identity())
		require.NoError(t, err)
		require.Equal(t, 559, n)
		return rec
	}
	a, b := run(), run()
	require.Equal(t, len(a.fills), len(b.fills))
	for i := range a.fills {
		require.Equal(t, a.fills[i].Transform, b.fills[i].Transform)
		require.Equal(t, a.fills[i].Color, b.fills[i].Color)
	}
}

func TestWalkMatchesDraw(t *testing.T) {
	g, err := NewGenerator()
	require.NoError(t, err)
	tiling, err := g.Generate(2)
	require.NoError(t, err)
	root, err := tiling.Root(Sigma)
	require.NoError(t, err)

	rec := newRecorder()
	root.Draw(NewDrawContext(rec, DefaultPalette()), geom.Identity())

	i := 0
	Walk(root, geom.Identity(), func(tile *Tile, global geom.Affine) {
		require.Equal(t, rec.fills[i].Transform, global)
		require.Equal(t, DefaultPalette().Color(tile.Label()), rec.fills[i].Color)
		i++
	})
	require.Equal(t, root.Leaves(), i)
}

func TestBounds(t *testing.T) {
	tile := mustTile(Delta)
	tpl := Template()
	want, got := geom.BoundsOf(tpl[:]), Bounds(tile, geom.Identity())
	require.InDelta(t, want.X, got.X, eps)
	require.InDelta(t, want.Y, got.Y, eps)
	require.InDelta(t, want.W, got.W, eps)
	require.InDelta(t, want.H, got.H, eps)

	moved := Bounds(tile, geom.Translate(10, -5))
	require.InDelta(t, geom.BoundsOf(tpl[:]).X+10, moved.X, eps)
	require.InDelta(t, geom.BoundsOf(tpl[:]).Y-5, moved.Y, eps)

	// A supertile covers more ground than a single tile.
	next, err := Supertiles(BaseCluster())
	require.NoError(t, err)
	n, _ := next.Get(Delta)
	b := Bounds(n, geom.Identity())
	require.Greater(t, b.W*b.H, geom.BoundsOf(tpl[:]).W*geom.BoundsOf(tpl[:]).H)
}

func TestPalette(t *testing.T) {
	pal := DefaultPalette()
	require.Equal(t, color.RGBA{R: 220, G: 220, B: 220, A: 255}, pal.Color(Delta))
	require.Equal(t, color.RGBA{R: 0, G: 255, B: 255, A: 255}, pal.Color(Psi))
	require.Equal(t, pal.Color(Gamma), pal.Color(Gamma2))

	colors := map[Label]color.RGBA{}
	for _, l := range Labels() {
		colors[l] = color.RGBA{A: 255}
	}
	_, err := NewPalette(colors)
	require.NoError(t, err)

	delete(colors, Phi)
	_, err = NewPalette(colors)
	var ule *UnknownLabelError
	require.ErrorAs(t, err, &ule)
	require.Equal(t, Phi, ule.Label)

	colors[Phi] = color.RGBA{}
	colors[Label(99)] = color.RGBA{}
	_, err = NewPalette(colors)
	require.ErrorIs(t, err, ErrUnknownLabel)

	_, err = ParsePalette(map[Label]string{Delta: "not a color"})
	require.Error(t, err)
}

func TestPaletteRejectsUnusableLookups(t *testing.T) {
	require.PanicsWithValue(t,
		"gen: color lookup on a zero Palette; use NewPalette or DefaultPalette",
		func() { Palette{}.Color(Delta) })
	require.Panics(t, func() { DefaultPalette().Color(Label(99)) })
	require.Panics(t, func() { DefaultPalette().Color(noLabel) })

	// A context built without a palette fails on the first tile instead of
	// drawing transparent polygons.
	dc := &DrawContext{Surface: newRecorder()}
	require.Panics(t, func() { mustTile(Delta).Draw(dc, geom.Identity()) })
}

func TestRandomPalette(t *testing.T) {
	a := RandomPalette(11, 2)
	require.Equal(t, a, RandomPalette(11, 2))
	require.Equal(t, a.Color(Gamma), a.Color(Gamma1))
	require.Equal(t, color.RGBA{R: 255, G: 255, B: 255, A: 255}, a.Color(Gamma))
	for _, l := range Labels() {
		require.Equal(t, uint8(255), a.Color(l).A, "label %v", l)
	}
}

func TestErrorsMessages(t *testing.T) {
	err := error(&InvalidIterationCountError{N: -3})
	require.Contains(t, err.Error(), "-3")
	require.True(t, errors.Is(err, ErrInvalidIterationCount))
	require.False(t, errors.Is(err, ErrUnknownLabel))

	err = &UnknownLabelError{Name: "Omega", Context: "parse"}
	require.Contains(t, err.Error(), `"Omega"`)
}
