package physics

import (
	"errors"
	"fmt"
	"strings"

	"gonum.org/v1/gonum/spatial/r2"
)

// ErrUnknownPolicy is returned by ParsePolicy for unrecognised names.
var ErrUnknownPolicy = errors.New("unknown update policy")

// Policy selects how one tick distributes pairwise interactions.
type Policy int

const (
	// PolicySequential walks pairs i<j and mutates both bodies in place, so
	// later pairs see partners that already moved during this tick.
	PolicySequential Policy = iota
	// PolicySnapshot sums accelerations against the state at the start of the
	// tick and integrates every body exactly once.
	PolicySnapshot
)

func (p Policy) String() string {
	switch p {
	case PolicySequential:
		return "sequential"
	case PolicySnapshot:
		return "snapshot"
	}
	return fmt.Sprintf("Policy(%d)", int(p))
}

// ParsePolicy accepts the names produced by Policy.String. An empty name
// means PolicySequential.
func ParsePolicy(name string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "sequential":
		return PolicySequential, nil
	case "snapshot":
		return PolicySnapshot, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownPolicy, name)
}

// Integrate advances b by one semi-implicit Euler step: velocity first,
// then position with the new velocity.
func Integrate(b *Body, acc r2.Vec, dt float64) {
	b.Vel = r2.Add(b.Vel, r2.Scale(dt, acc))
	b.Pos = r2.Add(b.Pos, r2.Scale(dt, b.Vel))
}

// UpdateAgainst moves b one step under the pull of other alone.
func (b *Body) UpdateAgainst(other Body, gr Gravity, dt float64) {
	Integrate(b, gr.Acceleration(*b, other), dt)
}

// StepSequential applies the pairwise update in ascending (i, j) order.
// Body j reacts to body i after i has already been advanced for this pair.
func StepSequential(bodies []Body, gr Gravity, dt float64) {
	for i := 0; i < len(bodies); i++ {
		for j := i + 1; j < len(bodies); j++ {
			bodies[i].UpdateAgainst(bodies[j], gr, dt)
			bodies[j].UpdateAgainst(bodies[i], gr, dt)
		}
	}
}

// Stepper advances a body slice under one policy. It keeps a scratch buffer
// of accelerations so snapshot ticks do not allocate once warmed up.
type Stepper struct {
	Gravity Gravity
	Policy  Policy

	acc []r2.Vec
}

func (s *Stepper) ensureScratch(n int) {
	if cap(s.acc) < n {
		s.acc = make([]r2.Vec, n)
	}
	s.acc = s.acc[:n]
}

// Step advances bodies in place by dt.
func (s *Stepper) Step(bodies []Body, dt float64) {
	switch s.Policy {
	case PolicySnapshot:
		s.StepSnapshot(bodies, dt)
	default:
		StepSequential(bodies, s.Gravity, dt)
	}
}

// StepSnapshot computes every acceleration from the tick's starting state
// before moving anyone. Like the sequential walk, a slice with fewer than two
// bodies has no pairs and is left untouched.
func (s *Stepper) StepSnapshot(bodies []Body, dt float64) {
	if len(bodies) < 2 {
		return
	}
	s.ensureScratch(len(bodies))
	for i := range s.acc {
		s.acc[i] = r2.Vec{}
	}
	for i := 0; i < len(bodies); i++ {
		for j := i + 1; j < len(bodies); j++ {
			s.acc[i] = r2.Add(s.acc[i], s.Gravity.Acceleration(bodies[i], bodies[j]))
			s.acc[j] = r2.Add(s.acc[j], s.Gravity.Acceleration(bodies[j], bodies[i]))
		}
	}
	for i := range bodies {
		Integrate(&bodies[i], s.acc[i], dt)
	}
}
