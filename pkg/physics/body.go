package physics

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// ErrNonPositiveMass is returned for bodies whose mass is zero, negative or NaN.
var ErrNonPositiveMass = errors.New("mass must be positive")

// --- Body ---

// Body is a point mass. It has no identity beyond its index in the
// slice that owns it.
type Body struct {
	Mass float64
	Pos  r2.Vec
	Vel  r2.Vec
}

// Validate reports whether b can take part in the gravity law.
func (b Body) Validate() error {
	if !(b.Mass > 0) || math.IsInf(b.Mass, 1) {
		return fmt.Errorf("%w: got %g", ErrNonPositiveMass, b.Mass)
	}
	return nil
}

// Finite reports whether position and velocity are free of NaN and Inf.
func (b Body) Finite() bool {
	for _, c := range [...]float64{b.Pos.X, b.Pos.Y, b.Vel.X, b.Vel.Y} {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}

// ValidateAll checks every body and names the first offending index.
func ValidateAll(bodies []Body) error {
	for i, b := range bodies {
		if err := b.Validate(); err != nil {
			return fmt.Errorf("body %d: %w", i, err)
		}
	}
	return nil
}
