package gen

import (
	"sort"
)

// Generation is one level of the substitution hierarchy: a node per label.
// It is a read-only snapshot; building the next level never changes it.
type Generation struct {
	level int
	nodes map[Label]Node
}

func newGeneration(level int, nodes map[Label]Node) Generation {
	return Generation{level: level, nodes: nodes}
}

// Level returns the number of substitution steps that produced g.
func (g Generation) Level() int { return g.level }

// Get returns the node for l.
func (g Generation) Get(l Label) (Node, bool) {
	n, ok := g.nodes[l]
	return n, ok
}

// Len returns the number of labels present.
func (g Generation) Len() int { return len(g.nodes) }

// Labels returns the labels present, in declaration order.
func (g Generation) Labels() []Label {
	out := make([]Label, 0, len(g.nodes))
	for l := range g.nodes {
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
