// Package gen implements the spectre substitution tiling, following
// https://cs.uwaterloo.ca/~csk/spectre/.
//
// The algorithm works in several stages:
//   - Build generation 0: one tile per label, with Gamma realized as the
//     two-piece "mystic".
//   - Repeatedly build supertiles: place up to eight copies of the previous
//     generation's nodes around the Delta anchor quad, using slot transforms
//     derived from a fixed alignment table, and pick which label fills each
//     slot from a fixed substitution table.
//   - Traverse the final generation from one root label, composing
//     transforms on the way down and emitting one polygon per leaf tile.
//
// Nodes are immutable and shared between parents, so memory grows with the
// number of generations rather than with the number of drawn polygons, which
// grows roughly eightfold per step.
package gen

import (
	"io"
	"log"

	"github.com/irfansharif/spectre/internal/geom"
)

// Generator builds tilings.
type Generator struct {
	logger *log.Logger
}

// Option configures a Generator.
type Option func(*Generator)

// WithLogger makes the generator report per-generation statistics to l.
func WithLogger(l *log.Logger) Option {
	return func(g *Generator) {
		if l != nil {
			g.logger = l
		}
	}
}

// NewGenerator returns a generator after checking the substitution tables.
func NewGenerator(opts ...Option) (*Generator, error) {
	if err := ValidateRules(); err != nil {
		return nil, err
	}
	g := &Generator{logger: log.New(io.Discard, "", 0)}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

// Generate builds generation 0 and applies n substitution steps. Each step
// multiplies the polygon count by up to eight, so callers bound the work by
// bounding n.
func (g *Generator) Generate(n int) (*Tiling, error) {
	if n < 0 {
		return nil, &InvalidIterationCountError{N: n}
	}

	gens := make([]Generation, 0, n+1)
	cur := BaseCluster()
	gens = append(gens, cur)
	g.logGeneration(cur)
	for i := 0; i < n; i++ {
		next, err := Supertiles(cur)
		if err != nil {
			return nil, err
		}
		gens = append(gens, next)
		g.logGeneration(next)
		cur = next
	}
	return &Tiling{generations: gens}, nil
}

func (g *Generator) logGeneration(level Generation) {
	for _, l := range level.Labels() {
		n, _ := level.Get(l)
		g.logger.Printf("generation %d: %-6v %d tiles (depth %d)", level.Level(), l, n.Leaves(), n.Depth())
	}
}

// Tiling is the materialized result of a Generate call: every generation
// from 0 to the final one.
type Tiling struct {
	generations []Generation
}

// Iterations returns the number of substitution steps applied.
func (t *Tiling) Iterations() int { return len(t.generations) - 1 }

// Generation returns generation k.
func (t *Tiling) Generation(k int) (Generation, bool) {
	if k < 0 || k >= len(t.generations) {
		return Generation{}, false
	}
	return t.generations[k], true
}

// Final returns the last generation built.
func (t *Tiling) Final() Generation { return t.generations[len(t.generations)-1] }

// Root returns the final generation's node for label.
func (t *Tiling) Root(label Label) (Node, error) {
	n, ok := t.Final().Get(label)
	if !ok {
		return nil, &UnknownLabelError{Label: label, Context: "final generation"}
	}
	return n, nil
}

// Draw draws the root for label under viewport and returns the number of
// polygons emitted.
func (t *Tiling) Draw(dc *DrawContext, label Label, viewport geom.Affine) (int, error) {
	root, err := t.Root(label)
	if err != nil {
		return 0, err
	}
	before := dc.Tiles
	root.Draw(dc, viewport)
	return dc.Tiles - before, nil
}
