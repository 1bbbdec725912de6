package physics

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// KineticEnergy is sum(m v^2 / 2).
func KineticEnergy(bodies []Body) float64 {
	e := 0.0
	for _, b := range bodies {
		e += 0.5 * b.Mass * r2.Norm2(b.Vel)
	}
	return e
}

// PotentialEnergy is the pairwise sum of -G m_i m_j / r_ij.
func PotentialEnergy(bodies []Body, g float64) float64 {
	e := 0.0
	for i := 0; i < len(bodies); i++ {
		for j := i + 1; j < len(bodies); j++ {
			d := r2.Norm(r2.Sub(bodies[i].Pos, bodies[j].Pos))
			e -= g * bodies[i].Mass * bodies[j].Mass / d
		}
	}
	return e
}

// TotalEnergy is kinetic plus potential energy.
func TotalEnergy(bodies []Body, g float64) float64 {
	return KineticEnergy(bodies) + PotentialEnergy(bodies, g)
}

// Momentum is sum(m v).
func Momentum(bodies []Body) r2.Vec {
	var p r2.Vec
	for _, b := range bodies {
		p = r2.Add(p, r2.Scale(b.Mass, b.Vel))
	}
	return p
}

// CenterOfMass is the mass-weighted mean position. An empty or massless set
// yields NaN components.
func CenterOfMass(bodies []Body) r2.Vec {
	var sum r2.Vec
	total := 0.0
	for _, b := range bodies {
		sum = r2.Add(sum, r2.Scale(b.Mass, b.Pos))
		total += b.Mass
	}
	if total == 0 {
		return r2.Vec{X: math.NaN(), Y: math.NaN()}
	}
	return r2.Scale(1/total, sum)
}
