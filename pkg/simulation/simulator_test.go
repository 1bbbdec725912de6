package simulation

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r2"

	"gravity-sim/pkg/physics"
)

func testConfig(policy physics.Policy) Config {
	cfg := DefaultConfig()
	cfg.Policy = policy
	return cfg
}

func TestNewRejectsBadInput(t *testing.T) {
	_, err := New(DefaultConfig(), []physics.Body{{Mass: 1}, {Mass: 0}})
	assert.ErrorIs(t, err, physics.ErrNonPositiveMass)

	cfg := DefaultConfig()
	cfg.G = 0
	_, err = New(cfg, []physics.Body{{Mass: 1}})
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestNewCopiesBodies(t *testing.T) {
	bodies := []physics.Body{{Mass: 1, Pos: r2.Vec{X: 1}}}
	sim, err := New(DefaultConfig(), bodies)
	require.NoError(t, err)

	bodies[0].Pos.X = 99
	assert.Equal(t, 1.0, sim.Body(0).Pos.X)

	view := sim.Bodies()
	view[0].Pos.X = 42
	assert.Equal(t, 1.0, sim.Body(0).Pos.X)
}

func TestTickKeepsOrderAndCount(t *testing.T) {
	sim, err := DefaultThreeBody(DefaultConfig())
	require.NoError(t, err)
	masses := []float64{}
	for _, b := range sim.Bodies() {
		masses = append(masses, b.Mass)
	}
	for i := 0; i < 100; i++ {
		sim.Tick(0.01)
	}
	require.Equal(t, 3, sim.Len())
	for i, m := range masses {
		assert.Equal(t, m, sim.Body(i).Mass)
	}
	assert.Equal(t, uint64(100), sim.Ticks())
	assert.InDelta(t, 1.0, sim.Elapsed(), 1e-12)
}

func TestSingleBodyInvariance(t *testing.T) {
	start := physics.Body{Mass: 5, Pos: r2.Vec{X: 3, Y: -1}, Vel: r2.Vec{X: 2, Y: 0.5}}
	for _, policy := range []physics.Policy{physics.PolicySequential, physics.PolicySnapshot} {
		t.Run(policy.String(), func(t *testing.T) {
			sim, err := New(testConfig(policy), []physics.Body{start})
			require.NoError(t, err)
			for i := 0; i < 10000; i++ {
				sim.Tick(0.1)
			}
			assert.Equal(t, start, sim.Body(0))
		})
	}
}

func TestDeterminism(t *testing.T) {
	dts := []float64{0.01, 0.02, 0.005, 0.01, 0.03}
	run := func(policy physics.Policy) []physics.Body {
		sim, err := DefaultThreeBody(testConfig(policy))
		require.NoError(t, err)
		for i := 0; i < 2000; i++ {
			sim.Tick(dts[i%len(dts)])
		}
		return sim.Bodies()
	}
	for _, policy := range []physics.Policy{physics.PolicySequential, physics.PolicySnapshot} {
		assert.Equal(t, run(policy), run(policy), policy.String())
	}
}

func TestTwoBodyNearPeriodicity(t *testing.T) {
	p := TwoBodyParams{M1: 20, M2: 10, Distance: 100, Eccentricity: 1}
	for _, policy := range []physics.Policy{physics.PolicySequential, physics.PolicySnapshot} {
		t.Run(policy.String(), func(t *testing.T) {
			const dt = 0.05
			cfg := testConfig(policy)
			sim, err := TwoBodySystem(cfg, p)
			require.NoError(t, err)
			start := sim.Bodies()

			period := OrbitalPeriod(p.M1+p.M2, p.Distance, cfg.G)
			steps := int(math.Round(period / dt))
			for i := 0; i < steps; i++ {
				sim.Tick(dt)
			}

			tol := 20 * dt
			for i, b := range sim.Bodies() {
				drift := r2.Norm(r2.Sub(b.Pos, start[i].Pos))
				assert.Less(t, drift, tol, "body %d", i)
			}
		})
	}
}

func TestTwoBodyEnergyBounded(t *testing.T) {
	cfg := testConfig(physics.PolicySnapshot)
	sim, err := DefaultTwoBody(cfg)
	require.NoError(t, err)
	e0 := sim.Energy()
	for i := 0; i < 20000; i++ {
		sim.Tick(0.05)
		require.InEpsilon(t, e0, sim.Energy(), 0.01, "tick %d", i)
	}
}

func TestDegeneratePairPropagates(t *testing.T) {
	pair := []physics.Body{
		{Mass: 1, Pos: r2.Vec{X: 1, Y: 1}},
		{Mass: 1, Pos: r2.Vec{X: 1, Y: 1}},
		{Mass: 1, Pos: r2.Vec{X: 40, Y: 0}},
	}

	sim, err := New(DefaultConfig(), pair)
	require.NoError(t, err)
	sim.Tick(0.01)
	for i := 0; i < sim.Len(); i++ {
		assert.False(t, sim.Body(i).Finite(), "body %d", i)
	}

	cfg := DefaultConfig()
	cfg.MinDistance = 0.1
	sim, err = New(cfg, pair)
	require.NoError(t, err)
	for i := 0; i < 100; i++ {
		sim.Tick(0.01)
	}
	for i := 0; i < sim.Len(); i++ {
		assert.True(t, sim.Body(i).Finite(), "body %d", i)
	}
}

func TestStepAndAdvance(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Dt = 0.25
	cfg.Speed = 3
	bodies := []physics.Body{{Mass: 1}, {Mass: 1, Pos: r2.Vec{X: 10}}}

	a, err := New(cfg, bodies)
	require.NoError(t, err)
	b, err := New(cfg, bodies)
	require.NoError(t, err)

	a.Step()
	b.Tick(0.25)
	assert.Equal(t, b.Bodies(), a.Bodies())

	a.Advance(500 * time.Millisecond)
	b.Tick(1.5)
	assert.Equal(t, b.Bodies(), a.Bodies())
	assert.InDelta(t, 1.75, a.Elapsed(), 1e-12)
}

func TestSnapshotConservesMomentumThroughSimulator(t *testing.T) {
	sim, err := DefaultTwoBody(testConfig(physics.PolicySnapshot))
	require.NoError(t, err)
	p0 := sim.Momentum()
	for i := 0; i < 1000; i++ {
		sim.Tick(0.05)
	}
	p1 := sim.Momentum()
	assert.InDelta(t, p0.X, p1.X, 1e-10)
	assert.InDelta(t, p0.Y, p1.Y, 1e-10)
}

func TestSimulatorPairForce(t *testing.T) {
	sim, err := DefaultTwoBody(DefaultConfig())
	require.NoError(t, err)
	f := sim.PairForce(0, 1)
	assert.InEpsilon(t, -0.02, f.X, 1e-12)
}
