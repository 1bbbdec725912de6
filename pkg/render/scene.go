package render

import (
	"image/color"

	"gravity-sim/pkg/physics"
	"gravity-sim/pkg/simulation"
)

// BodySource is the read-only view a renderer needs.
type BodySource interface {
	Len() int
	Body(i int) physics.Body
}

// Sprite is body i projected onto the screen.
type Sprite struct {
	Index  int
	X, Y   float64
	Radius float64
	Color  color.RGBA
}

// Sprites projects every body of src in index order. styles may be shorter
// than the body list; missing entries use the defaults.
func Sprites(src BodySource, styles []simulation.BodyStyle, vp Viewport) []Sprite {
	out := make([]Sprite, src.Len())
	for i := range out {
		b := src.Body(i)
		x, y := vp.ToScreen(b.Pos)
		out[i] = Sprite{Index: i, X: x, Y: y, Radius: DefaultRadius, Color: DefaultColor}
		if i < len(styles) {
			if styles[i].Radius > 0 {
				out[i].Radius = styles[i].Radius
			}
			out[i].Color = ParseColor(styles[i].Color)
		}
	}
	return out
}

// Pick returns the index of the sprite nearest to (x, y) whose disc
// contains the point, or -1.
func Pick(sprites []Sprite, x, y float64) int {
	best, bestD := -1, 0.0
	for _, s := range sprites {
		dx, dy := s.X-x, s.Y-y
		d := dx*dx + dy*dy
		if d <= s.Radius*s.Radius && (best == -1 || d < bestD) {
			best, bestD = s.Index, d
		}
	}
	return best
}
