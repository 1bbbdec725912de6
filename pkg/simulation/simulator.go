package simulation

import (
	"fmt"
	"time"

	"gonum.org/v1/gonum/spatial/r2"

	"gravity-sim/pkg/physics"
)

// --- Simulator ---

// Simulator owns an ordered, fixed-size set of bodies. Index i is the stable
// handle a renderer uses to pair body i with its visual entity.
//
// Tick is synchronous and deterministic for a fixed sequence of dt values.
// Advance derives dt from wall-clock time, so trajectories driven by it
// depend on the frame rate.
type Simulator struct {
	cfg     Config
	bodies  []physics.Body
	stepper physics.Stepper

	elapsed float64
	ticks   uint64
}

// New builds a simulator from an explicit body list without transforming it.
// The slice is copied.
func New(cfg Config, bodies []physics.Body) (*Simulator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := physics.ValidateAll(bodies); err != nil {
		return nil, fmt.Errorf("new simulator: %w", err)
	}
	own := make([]physics.Body, len(bodies))
	copy(own, bodies)
	return &Simulator{
		cfg:     cfg,
		bodies:  own,
		stepper: physics.Stepper{Gravity: cfg.gravity(), Policy: cfg.Policy},
	}, nil
}

// Tick advances every body by one application of the configured pairwise
// policy with time step dt.
func (s *Simulator) Tick(dt float64) {
	s.stepper.Step(s.bodies, dt)
	s.elapsed += dt
	s.ticks++
}

// Step ticks with the configured base step.
func (s *Simulator) Step() {
	s.Tick(s.cfg.Dt)
}

// Advance ticks once with elapsed wall-clock time scaled by the configured
// speed.
func (s *Simulator) Advance(elapsed time.Duration) {
	s.Tick(elapsed.Seconds() * s.cfg.Speed)
}

func (s *Simulator) Len() int { return len(s.bodies) }

// Body returns a copy of body i. It panics if i is out of range, like a
// slice index.
func (s *Simulator) Body(i int) physics.Body { return s.bodies[i] }

// Bodies returns a copy of the current state in index order.
func (s *Simulator) Bodies() []physics.Body {
	out := make([]physics.Body, len(s.bodies))
	copy(out, s.bodies)
	return out
}

func (s *Simulator) Config() Config { return s.cfg }

// Elapsed is the simulated time accumulated by all ticks so far.
func (s *Simulator) Elapsed() float64 { return s.elapsed }

func (s *Simulator) Ticks() uint64 { return s.ticks }

// --- Diagnostics ---

func (s *Simulator) Energy() float64 {
	return physics.TotalEnergy(s.bodies, s.cfg.G)
}

func (s *Simulator) Momentum() r2.Vec {
	return physics.Momentum(s.bodies)
}

func (s *Simulator) CenterOfMass() r2.Vec {
	return physics.CenterOfMass(s.bodies)
}

// PairForce is the force on body i due to body j.
func (s *Simulator) PairForce(i, j int) r2.Vec {
	return physics.PairForce(s.bodies[i], s.bodies[j], s.cfg.G)
}
