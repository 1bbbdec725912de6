package render

import (
	"gonum.org/v1/gonum/spatial/r2"
)

// Viewport maps world coordinates onto a screen of Width x Height units
// (pixels or terminal cells). The world point Center lands in the middle of
// the screen and the y axis points down, as on screen.
type Viewport struct {
	Width, Height int
	Scale         float64 // screen units per world unit
	Aspect        float64 // vertical squash; 0 means 1
	Center        r2.Vec
}

func (v Viewport) aspect() float64 {
	if v.Aspect == 0 {
		return 1
	}
	return v.Aspect
}

// ToScreen projects a world position.
func (v Viewport) ToScreen(p r2.Vec) (x, y float64) {
	x = float64(v.Width)/2 + (p.X-v.Center.X)*v.Scale
	y = float64(v.Height)/2 + (p.Y-v.Center.Y)*v.Scale*v.aspect()
	return x, y
}

// ToWorld is the inverse of ToScreen.
func (v Viewport) ToWorld(x, y float64) r2.Vec {
	return r2.Vec{
		X: (x-float64(v.Width)/2)/v.Scale + v.Center.X,
		Y: (y-float64(v.Height)/2)/(v.Scale*v.aspect()) + v.Center.Y,
	}
}

// Visible reports whether a screen point lies within margin of the screen.
func (v Viewport) Visible(x, y, margin float64) bool {
	return x >= -margin && y >= -margin &&
		x <= float64(v.Width)+margin && y <= float64(v.Height)+margin
}

// Zoom returns v with the scale multiplied by f.
func (v Viewport) Zoom(f float64) Viewport {
	v.Scale *= f
	return v
}
