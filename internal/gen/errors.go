package gen

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownLabel is matched by every *UnknownLabelError.
	ErrUnknownLabel = errors.New("gen: unknown label")

	// ErrInvalidIterationCount is matched by every *InvalidIterationCountError.
	ErrInvalidIterationCount = errors.New("gen: invalid iteration count")
)

// UnknownLabelError reports a label that is outside the enumeration, or that
// lacks a palette entry, substitution row or generation entry where one is
// required.
type UnknownLabelError struct {
	Label   Label
	Name    string // set instead of Label when parsing a name failed
	Context string // where the label was needed, e.g. "palette"
}

func (e *UnknownLabelError) Error() string {
	what := e.Label.String()
	if e.Name != "" {
		what = fmt.Sprintf("%q", e.Name)
	}
	return fmt.Sprintf("%v %s (%s)", ErrUnknownLabel, what, e.Context)
}

func (e *UnknownLabelError) Is(target error) bool { return target == ErrUnknownLabel }

// InvalidIterationCountError reports a negative number of substitution steps.
type InvalidIterationCountError struct {
	N int
}

func (e *InvalidIterationCountError) Error() string {
	return fmt.Sprintf("%v: %d (must be >= 0)", ErrInvalidIterationCount, e.N)
}

func (e *InvalidIterationCountError) Is(target error) bool {
	return target == ErrInvalidIterationCount
}
