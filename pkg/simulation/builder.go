package simulation

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/spatial/r2"

	"gravity-sim/pkg/physics"
)

var (
	// ErrUnknownStrategy is returned for velocity strategy names the
	// environment format does not define.
	ErrUnknownStrategy = errors.New("unknown velocity strategy")
	// ErrBadAttractor is returned when orbit velocities cannot be computed
	// around the builder's attractor.
	ErrBadAttractor = errors.New("bad orbit attractor")
)

type strategyKind int

const (
	strategyExplicit strategyKind = iota
	strategyZero
	strategyOrbit
)

// VelocityStrategy decides a body's initial velocity when the builder runs.
type VelocityStrategy struct {
	kind strategyKind
	vel  r2.Vec
}

// Zero starts the body at rest.
func Zero() VelocityStrategy { return VelocityStrategy{kind: strategyZero} }

// Orbit puts the body on a circular orbit around the builder's attractor,
// moving along with the attractor.
func Orbit() VelocityStrategy { return VelocityStrategy{kind: strategyOrbit} }

// Explicit uses v as given.
func Explicit(v r2.Vec) VelocityStrategy { return VelocityStrategy{kind: strategyExplicit, vel: v} }

func (s VelocityStrategy) String() string {
	switch s.kind {
	case strategyZero:
		return "zero"
	case strategyOrbit:
		return "orbit"
	}
	return "explicit"
}

type bodySpec struct {
	mass     float64
	pos      r2.Vec
	strategy VelocityStrategy
}

// --- Builder ---

// Builder assembles initial conditions from (mass, position, strategy)
// entries in insertion order.
type Builder struct {
	specs     []bodySpec
	attractor int
}

// NewBuilder returns a builder whose attractor is body 0.
func NewBuilder() *Builder {
	return &Builder{}
}

func (b *Builder) Add(mass float64, pos r2.Vec, s VelocityStrategy) *Builder {
	b.specs = append(b.specs, bodySpec{mass: mass, pos: pos, strategy: s})
	return b
}

// Attractor selects the body that Orbit entries circle.
func (b *Builder) Attractor(i int) *Builder {
	b.attractor = i
	return b
}

// Bodies resolves every strategy with gravitational constant g. The
// attractor cannot orbit itself, so an Orbit strategy on it means rest.
func (b *Builder) Bodies(g float64) ([]physics.Body, error) {
	bodies := make([]physics.Body, len(b.specs))
	for i, sp := range b.specs {
		bodies[i] = physics.Body{Mass: sp.mass, Pos: sp.pos}
		if sp.strategy.kind == strategyExplicit {
			bodies[i].Vel = sp.strategy.vel
		}
	}
	if err := physics.ValidateAll(bodies); err != nil {
		return nil, err
	}

	for i, sp := range b.specs {
		if sp.strategy.kind != strategyOrbit || i == b.attractor {
			continue
		}
		if b.attractor < 0 || b.attractor >= len(bodies) {
			return nil, fmt.Errorf("%w: index %d of %d bodies", ErrBadAttractor, b.attractor, len(bodies))
		}
		center := bodies[b.attractor]
		rel := r2.Sub(sp.pos, center.Pos)
		if rel == (r2.Vec{}) {
			return nil, fmt.Errorf("%w: body %d sits on the attractor", ErrBadAttractor, i)
		}
		bodies[i].Vel = r2.Add(center.Vel, OrbitVelocity(rel, center.Mass, g))
	}
	return bodies, nil
}

// Build resolves the bodies with cfg.G and creates a simulator.
func (b *Builder) Build(cfg Config) (*Simulator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	bodies, err := b.Bodies(cfg.G)
	if err != nil {
		return nil, fmt.Errorf("build: %w", err)
	}
	return New(cfg, bodies)
}

func vec(a [2]float64) r2.Vec {
	return r2.Vec{X: a[0], Y: a[1]}
}
