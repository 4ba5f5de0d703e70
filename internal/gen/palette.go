package gen

import (
	"image/color"
	"math/rand"

	"github.com/irfansharif/spectre/internal/palette"
)

// Palette maps every label to a fill color. Values built by NewPalette are
// total over Labels(); the zero Palette holds no colors and must not be drawn
// with.
type Palette struct {
	colors [numLabels]color.RGBA
	total  bool
}

// NewPalette builds a palette from a color per label. Every label must be
// present, and no other keys are allowed.
func NewPalette(colors map[Label]color.RGBA) (Palette, error) {
	var p Palette
	for l := range colors {
		if !l.Valid() {
			return Palette{}, &UnknownLabelError{Label: l, Context: "palette"}
		}
	}
	for _, l := range Labels() {
		c, ok := colors[l]
		if !ok {
			return Palette{}, &UnknownLabelError{Label: l, Context: "palette"}
		}
		p.colors[l] = c
	}
	p.total = true
	return p, nil
}

// ParsePalette builds a palette from color specs such as "rgb(255, 160, 122)"
// or "#87cefa".
func ParsePalette(specs map[Label]string) (Palette, error) {
	colors := make(map[Label]color.RGBA, len(specs))
	for l, spec := range specs {
		c, err := palette.Parse(spec)
		if err != nil {
			return Palette{}, err
		}
		colors[l] = c
	}
	return NewPalette(colors)
}

// Color returns the fill color for l. It panics on the zero Palette and on
// labels outside the enumeration, neither of which a tile can carry.
func (p Palette) Color(l Label) color.RGBA {
	if !p.total {
		panic("gen: color lookup on a zero Palette; use NewPalette or DefaultPalette")
	}
	if !l.Valid() {
		panic((&UnknownLabelError{Label: l, Context: "palette"}).Error())
	}
	return p.colors[l]
}

var defaultColors = map[Label]string{
	Gamma:  "rgb(255, 255, 255)",
	Gamma1: "rgb(255, 255, 255)",
	Gamma2: "rgb(255, 255, 255)",
	Delta:  "rgb(220, 220, 220)",
	Theta:  "rgb(255, 191, 191)",
	Lambda: "rgb(255, 160, 122)",
	Xi:     "rgb(255, 242, 0)",
	Pi:     "rgb(135, 206, 250)",
	Sigma:  "rgb(245, 245, 220)",
	Phi:    "rgb(0, 255, 0)",
	Psi:    "rgb(0, 255, 255)",
}

// DefaultPalette returns the canonical spectre colors.
func DefaultPalette() Palette {
	p, err := ParsePalette(defaultColors)
	if err != nil {
		panic(err)
	}
	return p
}

// RandomPalette returns a seeded HSV palette. The Gamma family shares the
// plain white first color; every other label gets its own accent, jittered
// when shimmer >= 0.
func RandomPalette(seed int64, shimmer int) Palette {
	rng := rand.New(rand.NewSource(seed))
	accents := palette.Shimmered(palette.Random(rng, numLabels-3), shimmer, rng)

	colors := make(map[Label]color.RGBA, numLabels-1)
	next := 1
	for _, l := range Labels() {
		switch l {
		case Gamma, Gamma1, Gamma2:
			colors[l] = accents[0]
		default:
			colors[l] = accents[next]
			next++
		}
	}
	p, err := NewPalette(colors)
	if err != nil {
		panic(err)
	}
	return p
}
