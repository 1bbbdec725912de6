package render

import (
	"gonum.org/v1/gonum/spatial/r2"

	"gravity-sim/pkg/physics"
)

// Segment is one piece of a body's trail in world coordinates.
type Segment struct {
	From, To r2.Vec
	Life     float64
}

// Trails keeps a fading polyline per body, indexed like the simulator.
// Life is measured in simulated time.
type Trails struct {
	MaxLife     float64
	MaxSegments int

	last []r2.Vec
	segs [][]Segment
}

func NewTrails(bodies []physics.Body, maxLife float64, maxSegments int) *Trails {
	t := &Trails{MaxLife: maxLife, MaxSegments: maxSegments}
	t.Reset(bodies)
	return t
}

// Reset drops every segment and restarts the trails at the given bodies.
func (t *Trails) Reset(bodies []physics.Body) {
	t.last = make([]r2.Vec, len(bodies))
	t.segs = make([][]Segment, len(bodies))
	for i, b := range bodies {
		t.last[i] = b.Pos
	}
}

// Record appends the move since the previous call for every body, then ages
// all segments by dt and drops the dead ones. Non-finite positions are not
// recorded.
func (t *Trails) Record(bodies []physics.Body, dt float64) {
	for i := range bodies {
		if i >= len(t.last) {
			break
		}
		b := bodies[i]
		if b.Finite() {
			t.segs[i] = append(t.segs[i], Segment{From: t.last[i], To: b.Pos, Life: t.MaxLife})
			t.last[i] = b.Pos
		}
		if t.MaxSegments > 0 && len(t.segs[i]) > t.MaxSegments {
			t.segs[i] = t.segs[i][len(t.segs[i])-t.MaxSegments:]
		}

		alive := t.segs[i][:0]
		for _, s := range t.segs[i] {
			s.Life -= dt
			if s.Life > 0 {
				alive = append(alive, s)
			}
		}
		t.segs[i] = alive
	}
}

// Segments returns body i's trail, oldest first.
func (t *Trails) Segments(i int) []Segment {
	return t.segs[i]
}

func (t *Trails) Len() int { return len(t.segs) }

// Fade is the remaining life of s as a fraction in [0, 1].
func (t *Trails) Fade(s Segment) float64 {
	if t.MaxLife <= 0 {
		return 1
	}
	f := s.Life / t.MaxLife
	if f > 1 {
		return 1
	}
	return f
}
