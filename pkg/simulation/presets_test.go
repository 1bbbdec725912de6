package simulation

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r2"

	"gravity-sim/pkg/physics"
)

func TestReferenceTwoBodyMatchesDemo(t *testing.T) {
	bodies, err := TwoBodyBodies(ReferenceTwoBody, 1)
	require.NoError(t, err)
	require.Len(t, bodies, 2)

	assert.Equal(t, r2.Vec{X: 50}, bodies[0].Pos)
	assert.Equal(t, r2.Vec{X: -50}, bodies[1].Pos)
	assert.InDelta(t, 0, bodies[0].Vel.X, 1e-15)
	assert.InEpsilon(t, -0.12780194, bodies[0].Vel.Y, 1e-6)
	assert.InDelta(t, 0, bodies[1].Vel.X, 1e-15)
	assert.InEpsilon(t, 0.25560388, bodies[1].Vel.Y, 1e-6)

	p := physics.Momentum(bodies)
	assert.InDelta(t, 0, p.Y, 1e-12)
}

func TestTwoBodyCircularRelativeSpeed(t *testing.T) {
	p := TwoBodyParams{M1: 3, M2: 1, Distance: 8, Eccentricity: 1}
	bodies, err := TwoBodyBodies(p, 2)
	require.NoError(t, err)

	rel := r2.Norm(r2.Sub(bodies[0].Vel, bodies[1].Vel))
	assert.InEpsilon(t, math.Sqrt(2*4/8.0), rel, 1e-12)
	// tangential: velocities are perpendicular to the separation
	sep := r2.Sub(bodies[0].Pos, bodies[1].Pos)
	assert.InDelta(t, 0, r2.Dot(sep, bodies[0].Vel), 1e-12)
}

func TestTwoBodyRejectsBadParams(t *testing.T) {
	tests := []struct {
		name string
		p    TwoBodyParams
	}{
		{"zero distance", TwoBodyParams{M1: 1, M2: 1, Distance: 0, Eccentricity: 1}},
		{"negative eccentricity", TwoBodyParams{M1: 1, M2: 1, Distance: 1, Eccentricity: -1}},
		{"zero mass", TwoBodyParams{M1: 0, M2: 1, Distance: 1, Eccentricity: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := TwoBodySystem(DefaultConfig(), tt.p)
			assert.Error(t, err)
		})
	}
	_, err := TwoBodyBodies(TwoBodyParams{M1: -1, M2: 1, Distance: 1, Eccentricity: 1}, 1)
	assert.ErrorIs(t, err, physics.ErrNonPositiveMass)
}

func TestThreeBodyCentroidAtOrigin(t *testing.T) {
	sim, err := DefaultThreeBody(DefaultConfig())
	require.NoError(t, err)
	require.Equal(t, 3, sim.Len())

	com := sim.CenterOfMass()
	assert.InDelta(t, 0, com.X, 1e-12)
	assert.InDelta(t, 0, com.Y, 1e-12)
	for _, b := range sim.Bodies() {
		assert.Equal(t, 10.0, b.Mass)
		assert.Equal(t, r2.Vec{}, b.Vel)
	}
	// (-30,-40) minus the centroid (10/3, 0)
	assert.InDelta(t, -30-10.0/3, sim.Body(0).Pos.X, 1e-12)
	assert.InDelta(t, -40, sim.Body(0).Pos.Y, 1e-12)
}

func TestCircularOrbitVelocity(t *testing.T) {
	v := CircularOrbitVelocity(r2.Vec{X: 100}, 1000, 1)
	assert.Equal(t, 0.0, v.X)
	assert.InEpsilon(t, math.Sqrt(10), v.Y, 1e-12)

	// on the x axis the general form agrees
	assert.InDelta(t, v.Y, OrbitVelocity(r2.Vec{X: 100}, 1000, 1).Y, 1e-12)
}

func TestOrbitVelocityIsTangential(t *testing.T) {
	rel := r2.Vec{X: 30, Y: 40}
	v := OrbitVelocity(rel, 50, 2)
	assert.InDelta(t, 0, r2.Dot(rel, v), 1e-12)
	assert.InEpsilon(t, math.Sqrt(2*50/50.0), r2.Norm(v), 1e-12)
	// counter-clockwise
	assert.Greater(t, rel.X*v.Y-rel.Y*v.X, 0.0)
}

func TestOrbitalPeriod(t *testing.T) {
	assert.InEpsilon(t, 2*math.Pi, OrbitalPeriod(1, 1, 1), 1e-12)
}
