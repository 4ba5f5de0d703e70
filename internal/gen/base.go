package gen

import (
	"math"

	"github.com/irfansharif/spectre/internal/geom"
)

// MysticTransform places the second half of the mystic tile: rotate by 30°,
// then translate to template vertex 8.
func MysticTransform() geom.Affine {
	return geom.Translate(template[8].X, template[8].Y).Mul(geom.Rotate(math.Pi / 6))
}

// BaseCluster builds generation 0. Delta through Psi are single tiles; Gamma
// is the mystic, a fixed pair of tiles (Gamma1 and Gamma2). Gamma1 and Gamma2
// are present as plain tiles too, so the generation covers all eleven labels.
func BaseCluster() Generation {
	nodes := make(map[Label]Node, numLabels-1)
	for _, l := range []Label{Delta, Theta, Lambda, Xi, Pi, Sigma, Phi, Psi} {
		nodes[l] = mustTile(l)
	}

	g1, g2 := mustTile(Gamma1), mustTile(Gamma2)
	nodes[Gamma1] = g1
	nodes[Gamma2] = g2
	nodes[Gamma] = NewMetaTile([]Child{
		{Node: g1, Transform: geom.Identity()},
		{Node: g2, Transform: MysticTransform()},
	}, TemplateQuad())

	return newGeneration(0, nodes)
}
