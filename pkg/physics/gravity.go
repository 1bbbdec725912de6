package physics

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Gravity holds the coupling constant and the optional separation clamp.
// A zero MinDistance leaves coincident bodies unguarded: the division by
// zero produces Inf/NaN which then spreads through later ticks.
type Gravity struct {
	G           float64
	MinDistance float64
}

// Acceleration returns the acceleration target feels from source:
// -r * G*m_source / |r|^3 with r = target.Pos - source.Pos.
func Acceleration(target, source Body, g, minDistance float64) r2.Vec {
	r := r2.Sub(target.Pos, source.Pos)
	d := r2.Norm(r)
	if minDistance > 0 && d < minDistance {
		if d == 0 {
			return r2.Vec{}
		}
		d = minDistance
	}
	mu := g * source.Mass
	return r2.Scale(-mu/(d*d*d), r)
}

// Acceleration is the method form using the receiver's constants.
func (gr Gravity) Acceleration(target, source Body) r2.Vec {
	return Acceleration(target, source, gr.G, gr.MinDistance)
}

// PairForce returns the Newtonian force on a due to b, pointing from a to b.
func PairForce(a, b Body, g float64) r2.Vec {
	dir := r2.Sub(b.Pos, a.Pos)
	d := r2.Norm(dir)
	if d == 0 {
		return r2.Vec{X: math.NaN(), Y: math.NaN()}
	}
	f := g * a.Mass * b.Mass / (d * d)
	return r2.Scale(f/d, dir)
}
