package gen

import (
	"fmt"

	"github.com/irfansharif/spectre/internal/geom"
)

// SlotCount is the number of placements in a supertile.
const SlotCount = 8

// AlignmentRule advances the slot placement by one step: turn the cumulative
// rotation by Angle degrees, then translate so that the rotated quad's To
// vertex lands on the previous slot's From vertex.
type AlignmentRule struct {
	Angle    float64
	From, To int
}

// AlignmentRules derive slots 1 through 7 from slot 0.
var AlignmentRules = [SlotCount - 1]AlignmentRule{
	{Angle: 60, From: 3, To: 1},
	{Angle: 0, From: 2, To: 0},
	{Angle: 60, From: 3, To: 1},
	{Angle: 60, From: 3, To: 1},
	{Angle: 0, From: 2, To: 0},
	{Angle: 60, From: 3, To: 1},
	{Angle: -120, From: 3, To: 3},
}

// Reflection mirrors across the y-axis. It is applied to every slot after
// the placement walk.
var Reflection = geom.MakeAffine(-1, 0, 0, 0, 1, 0)

// SubstitutionRow lists, per slot, which previous-generation label fills
// it. A zero entry leaves the slot empty.
type SubstitutionRow struct {
	Label Label
	Slots [SlotCount]Label
}

// Present returns the number of filled slots.
func (r SubstitutionRow) Present() int {
	n := 0
	for _, l := range r.Slots {
		if l != noLabel {
			n++
		}
	}
	return n
}

// SubstitutionRules has one row per supertile label.
var SubstitutionRules = [...]SubstitutionRow{
	{Gamma, [SlotCount]Label{Pi, Delta, noLabel, Theta, Sigma, Xi, Phi, Gamma}},
	{Delta, [SlotCount]Label{Xi, Delta, Xi, Phi, Sigma, Pi, Phi, Gamma}},
	{Theta, [SlotCount]Label{Psi, Delta, Pi, Phi, Sigma, Pi, Phi, Gamma}},
	{Lambda, [SlotCount]Label{Psi, Delta, Xi, Phi, Sigma, Pi, Phi, Gamma}},
	{Xi, [SlotCount]Label{Psi, Delta, Pi, Phi, Sigma, Psi, Phi, Gamma}},
	{Pi, [SlotCount]Label{Psi, Delta, Xi, Phi, Sigma, Psi, Phi, Gamma}},
	{Sigma, [SlotCount]Label{Xi, Delta, Xi, Phi, Sigma, Pi, Lambda, Gamma}},
	{Phi, [SlotCount]Label{Psi, Delta, Psi, Phi, Sigma, Pi, Phi, Gamma}},
	{Psi, [SlotCount]Label{Psi, Delta, Psi, Phi, Sigma, Psi, Phi, Gamma}},
}

// superQuadSources picks the supertile's anchor quad: vertex Anchor of the
// reference quad under slot Slot.
var superQuadSources = [4]struct{ Slot, Anchor int }{
	{6, 2}, {5, 1}, {3, 2}, {0, 1},
}

// SubstitutionRowFor returns the row for l.
func SubstitutionRowFor(l Label) (SubstitutionRow, error) {
	for _, row := range SubstitutionRules {
		if row.Label == l {
			return row, nil
		}
	}
	return SubstitutionRow{}, &UnknownLabelError{Label: l, Context: "substitution table"}
}

// ValidateRules checks the fixed tables: alignment indices address a quad
// vertex, row labels are valid and distinct, and every slot entry is either
// empty or a label that itself has a row, so each generation can feed the
// next.
func ValidateRules() error {
	for i, r := range AlignmentRules {
		if r.From < 0 || r.From >= len(Quad{}) || r.To < 0 || r.To >= len(Quad{}) {
			return fmt.Errorf("gen: alignment rule %d has anchor index out of range: %+v", i, r)
		}
	}
	seen := make(map[Label]bool, len(SubstitutionRules))
	for _, row := range SubstitutionRules {
		if !row.Label.Valid() {
			return &UnknownLabelError{Label: row.Label, Context: "substitution table row"}
		}
		if seen[row.Label] {
			return fmt.Errorf("gen: duplicate substitution row for %v", row.Label)
		}
		seen[row.Label] = true
		for _, src := range row.Slots {
			if src == noLabel {
				continue
			}
			if !src.Valid() {
				return &UnknownLabelError{Label: src, Context: fmt.Sprintf("substitution row %v", row.Label)}
			}
			if _, err := SubstitutionRowFor(src); err != nil {
				return fmt.Errorf("gen: substitution row %v: %w", row.Label, err)
			}
		}
	}
	for _, s := range superQuadSources {
		if s.Slot < 0 || s.Slot >= SlotCount || s.Anchor < 0 || s.Anchor >= len(Quad{}) {
			return fmt.Errorf("gen: super quad source out of range: %+v", s)
		}
	}
	return nil
}

// SlotTransforms computes the eight placements of a cluster around the
// reference quad, reflection included.
func SlotTransforms(quad Quad) [SlotCount]geom.Affine {
	var slots [SlotCount]geom.Affine
	slots[0] = geom.Identity()

	angle := 0.0
	rotation := geom.Identity()
	rotated := quad
	for i, rule := range AlignmentRules {
		if rule.Angle != 0 {
			angle += rule.Angle
			rotation = geom.Rotate(geom.Radians(angle))
			rotated = quad.Map(rotation)
		}
		anchor := slots[i].MulPoint(quad[rule.From])
		slots[i+1] = geom.TranslateBetween(rotated[rule.To], anchor).Mul(rotation)
	}

	for i := range slots {
		slots[i] = Reflection.Mul(slots[i])
	}
	return slots
}

// SuperQuad returns the anchor quad shared by all supertiles built from
// quad with the given slots.
func SuperQuad(quad Quad, slots [SlotCount]geom.Affine) Quad {
	var q Quad
	for i, s := range superQuadSources {
		q[i] = slots[s.Slot].MulPoint(quad[s.Anchor])
	}
	return q
}

// Supertiles performs one substitution step. The reference quad is the
// Delta node's; every row becomes a MetaTile over prev's nodes placed in the
// computed slots. prev is not modified.
func Supertiles(prev Generation) (Generation, error) {
	ref, ok := prev.Get(Delta)
	if !ok {
		return Generation{}, &UnknownLabelError{Label: Delta, Context: "reference quad"}
	}
	quad := ref.Quad()
	slots := SlotTransforms(quad)
	superQuad := SuperQuad(quad, slots)

	nodes := make(map[Label]Node, len(SubstitutionRules))
	for _, row := range SubstitutionRules {
		children := make([]Child, 0, SlotCount)
		for i, src := range row.Slots {
			if src == noLabel {
				continue
			}
			n, ok := prev.Get(src)
			if !ok {
				return Generation{}, &UnknownLabelError{
					Label:   src,
					Context: fmt.Sprintf("generation %d, needed by %v slot %d", prev.Level(), row.Label, i),
				}
			}
			children = append(children, Child{Node: n, Transform: slots[i]})
		}
		nodes[row.Label] = NewMetaTile(children, superQuad)
	}
	return newGeneration(prev.Level()+1, nodes), nil
}
