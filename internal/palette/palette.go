// Package palette provides color handling for rendering. It parses the color
// specs used by tile color tables and implements HSV-based random palette
// generation with shimmer effects.
package palette

import (
	"fmt"
	"image/color"
	"math/rand"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Palette is an ordered list of opaque colors.
type Palette []color.RGBA

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func toRGBA(c colorful.Color) color.RGBA {
	red, green, blue := c.Clamped().RGB255()
	return color.RGBA{R: red, G: green, B: blue, A: 255}
}

func fromRGBA(c color.RGBA) colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

// Parse parses a color spec. Accepted forms are "rgb(r, g, b)" with 0-255
// components and the hex forms "#rgb" and "#rrggbb".
func Parse(spec string) (color.RGBA, error) {
	s := strings.TrimSpace(spec)
	if strings.HasPrefix(s, "#") {
		c, err := colorful.Hex(s)
		if err != nil {
			return color.RGBA{}, fmt.Errorf("palette: %w", err)
		}
		return toRGBA(c), nil
	}

	inner, ok := strings.CutPrefix(s, "rgb(")
	if !ok || !strings.HasSuffix(inner, ")") {
		return color.RGBA{}, fmt.Errorf("palette: unrecognized color spec %q", spec)
	}
	parts := strings.Split(strings.TrimSuffix(inner, ")"), ",")
	if len(parts) != 3 {
		return color.RGBA{}, fmt.Errorf("palette: %q needs 3 components, got %d", spec, len(parts))
	}
	var rgb [3]uint8
	for i, part := range parts {
		v, err := strconv.ParseUint(strings.TrimSpace(part), 10, 8)
		if err != nil {
			return color.RGBA{}, fmt.Errorf("palette: component %d of %q: %w", i, spec, err)
		}
		rgb[i] = uint8(v)
	}
	return color.RGBA{R: rgb[0], G: rgb[1], B: rgb[2], A: 255}, nil
}

// Hex formats c as "#rrggbb".
func Hex(c color.RGBA) string {
	return fromRGBA(c).Hex()
}

// Random returns n colors using HSV generation. The first color is kept
// plain white, the rest are mid-saturation, mid-brightness accents.
func Random(r *rand.Rand, n int) Palette {
	// Convert HSV to RGBA using go-colorful.
	hsb := func(h, s, b float64) color.RGBA {
		// Convert from 0-100 range to 0-360 for hue, 0-1 for saturation and brightness.
		hue := h * 3.6
		sat := clamp(s/100.0, 0, 1)
		bright := clamp(b/100.0, 0, 1)
		return toRGBA(colorful.Hsv(hue, sat, bright))
	}

	p := make(Palette, n)
	for i := range p {
		if i == 0 {
			p[i] = color.RGBA{R: 255, G: 255, B: 255, A: 255}
			continue
		}
		p[i] = hsb(r.Float64()*100, r.Float64()*50+25, r.Float64()*50+35)
	}
	return p
}

// Shimmered applies a brightness jitter to every accent color (all but the
// first) when shimmer >= 0.
func Shimmered(p Palette, shimmer int, r *rand.Rand) Palette {
	out := make(Palette, len(p))
	copy(out, p)
	if shimmer < 0 {
		return out
	}

	amount := 0.1 * float64(shimmer)
	for i := 1; i < len(out); i++ {
		h, s, v := fromRGBA(out[i]).Hsv()

		// Apply brightness jitter.
		v = clamp(v+(r.Float64()-0.5)*amount, 0, 1)

		out[i] = toRGBA(colorful.Hsv(h, s, v))
	}
	return out
}
