package simulation

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"gravity-sim/pkg/physics"
)

// ErrUnknownPreset is returned for preset names other than the Preset* ones.
var ErrUnknownPreset = errors.New("unknown preset")

const (
	PresetTwoBody   = "two-body"
	PresetThreeBody = "three-body"
)

// --- Two-body system ---

// TwoBodyParams describes a bound pair. Eccentricity scales the circular
// orbit speed: 1 gives a circular orbit, smaller values an ellipse.
type TwoBodyParams struct {
	M1, M2       float64
	Distance     float64
	Eccentricity float64
}

// ReferenceTwoBody is the pair used by the original demo.
var ReferenceTwoBody = TwoBodyParams{M1: 20, M2: 10, Distance: 100, Eccentricity: 0.7}

// TwoBodyBodies places the pair at (+d/2, 0) and (-d/2, 0) with opposite
// tangential velocities split in inverse proportion to mass, so the total
// momentum is zero.
func TwoBodyBodies(p TwoBodyParams, g float64) ([]physics.Body, error) {
	if !(p.Distance > 0) || math.IsInf(p.Distance, 0) {
		return nil, fmt.Errorf("two-body: distance must be positive, got %g", p.Distance)
	}
	if !(p.Eccentricity >= 0) || math.IsInf(p.Eccentricity, 0) {
		return nil, fmt.Errorf("two-body: eccentricity factor must be non-negative, got %g", p.Eccentricity)
	}
	bodies := []physics.Body{
		{Mass: p.M1, Pos: r2.Vec{X: p.Distance / 2}},
		{Mass: p.M2, Pos: r2.Vec{X: -p.Distance / 2}},
	}
	if err := physics.ValidateAll(bodies); err != nil {
		return nil, fmt.Errorf("two-body: %w", err)
	}

	total := p.M1 + p.M2
	v := math.Sqrt(g*total/p.Distance) * p.Eccentricity
	r := r2.Sub(bodies[0].Pos, bodies[1].Pos)
	tangent := r2.Unit(r2.Vec{X: -r.Y, Y: r.X})

	bodies[0].Vel = r2.Scale(-v*p.M2/total, tangent)
	bodies[1].Vel = r2.Scale(v*p.M1/total, tangent)
	return bodies, nil
}

func TwoBodySystem(cfg Config, p TwoBodyParams) (*Simulator, error) {
	bodies, err := TwoBodyBodies(p, cfg.G)
	if err != nil {
		return nil, err
	}
	return New(cfg, bodies)
}

func DefaultTwoBody(cfg Config) (*Simulator, error) {
	return TwoBodySystem(cfg, ReferenceTwoBody)
}

// OrbitalPeriod is the period of a circular two-body orbit of the given
// total mass and separation.
func OrbitalPeriod(totalMass, distance, g float64) float64 {
	return 2 * math.Pi * math.Sqrt(distance*distance*distance/(g*totalMass))
}

// --- Three-body system ---

// ReferenceThreeBody holds the starting points of the original demo before
// recentring.
var ReferenceThreeBody = [3]r2.Vec{{X: -30, Y: -40}, {X: 50, Y: -20}, {X: -10, Y: 60}}

// ThreeBodyBodies places three equal masses at ps, shifted so their centre
// of mass is the origin, all at rest.
func ThreeBodyBodies(mass float64, ps [3]r2.Vec) ([]physics.Body, error) {
	bodies := make([]physics.Body, len(ps))
	for i, p := range ps {
		bodies[i] = physics.Body{Mass: mass, Pos: p}
	}
	if err := physics.ValidateAll(bodies); err != nil {
		return nil, fmt.Errorf("three-body: %w", err)
	}
	com := physics.CenterOfMass(bodies)
	for i := range bodies {
		bodies[i].Pos = r2.Sub(bodies[i].Pos, com)
	}
	return bodies, nil
}

func ThreeBodySystem(cfg Config, mass float64, ps [3]r2.Vec) (*Simulator, error) {
	bodies, err := ThreeBodyBodies(mass, ps)
	if err != nil {
		return nil, err
	}
	return New(cfg, bodies)
}

func DefaultThreeBody(cfg Config) (*Simulator, error) {
	return ThreeBodySystem(cfg, 10, ReferenceThreeBody)
}

// --- Orbit velocities ---

// CircularOrbitVelocity returns (0, sqrt(g*M/|rel|)) for a body at rel from
// a stationary attractor of mass M. The direction is only tangential when
// the body starts on the x axis.
func CircularOrbitVelocity(rel r2.Vec, attractorMass, g float64) r2.Vec {
	return r2.Vec{Y: math.Sqrt(g * attractorMass / r2.Norm(rel))}
}

// OrbitVelocity is the counter-clockwise circular-orbit velocity for any
// starting position, perpendicular to rel.
func OrbitVelocity(rel r2.Vec, attractorMass, g float64) r2.Vec {
	r := r2.Norm(rel)
	v := math.Sqrt(g * attractorMass / r)
	return r2.Vec{X: -rel.Y / r * v, Y: rel.X / r * v}
}
