package gen

import "fmt"

// Label identifies a tile kind. It selects the fill color and, for the nine
// non-Gamma-variant labels, the substitution row used to build supertiles.
type Label uint8

// noLabel marks an absent slot in a substitution row. It is never a valid
// tile label.
const noLabel Label = 0

const (
	Gamma Label = iota + 1
	Gamma1
	Gamma2
	Delta
	Theta
	Lambda
	Xi
	Pi
	Sigma
	Phi
	Psi

	numLabels = int(Psi) + 1
)

var labelNames = [numLabels]string{
	Gamma:  "Gamma",
	Gamma1: "Gamma1",
	Gamma2: "Gamma2",
	Delta:  "Delta",
	Theta:  "Theta",
	Lambda: "Lambda",
	Xi:     "Xi",
	Pi:     "Pi",
	Sigma:  "Sigma",
	Phi:    "Phi",
	Psi:    "Psi",
}

// Labels returns all eleven labels in declaration order.
func Labels() []Label {
	out := make([]Label, 0, numLabels-1)
	for l := Gamma; l <= Psi; l++ {
		out = append(out, l)
	}
	return out
}

// Valid reports whether l is one of the eleven tile labels.
func (l Label) Valid() bool { return l >= Gamma && l <= Psi }

func (l Label) String() string {
	if !l.Valid() {
		return fmt.Sprintf("Label(%d)", uint8(l))
	}
	return labelNames[l]
}

// ParseLabel returns the label with the given name.
func ParseLabel(name string) (Label, error) {
	for _, l := range Labels() {
		if labelNames[l] == name {
			return l, nil
		}
	}
	return noLabel, &UnknownLabelError{Name: name, Context: "parse"}
}
