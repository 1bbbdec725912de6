package render

import (
	"image/color"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r2"

	"gravity-sim/pkg/physics"
	"gravity-sim/pkg/simulation"
)

func TestParseColor(t *testing.T) {
	assert.Equal(t, color.RGBA{0xff, 0xcc, 0x00, 255}, ParseColor("#ffcc00"))
	assert.Equal(t, color.RGBA{0x12, 0x34, 0x56, 255}, ParseColor("#123456"))
	assert.Equal(t, DefaultColor, ParseColor(""))
	assert.Equal(t, DefaultColor, ParseColor("ffcc00"))
	assert.Equal(t, DefaultColor, ParseColor("#zzzzzz"))
}

func TestViewportRoundTrip(t *testing.T) {
	vp := Viewport{Width: 800, Height: 600, Scale: 2, Center: r2.Vec{X: 10, Y: -5}}

	x, y := vp.ToScreen(r2.Vec{X: 10, Y: -5})
	assert.Equal(t, 400.0, x)
	assert.Equal(t, 300.0, y)

	x, y = vp.ToScreen(r2.Vec{X: 20, Y: 0})
	assert.Equal(t, 420.0, x)
	assert.Equal(t, 310.0, y)

	p := vp.ToWorld(x, y)
	assert.InDelta(t, 20, p.X, 1e-12)
	assert.InDelta(t, 0, p.Y, 1e-12)
}

func TestViewportAspectAndZoom(t *testing.T) {
	vp := Viewport{Width: 80, Height: 24, Scale: 0.5, Aspect: 0.5}
	x, y := vp.ToScreen(r2.Vec{X: 40, Y: 40})
	assert.Equal(t, 60.0, x)
	assert.Equal(t, 22.0, y)

	z := vp.Zoom(2)
	assert.Equal(t, 1.0, z.Scale)
	assert.Equal(t, 0.5, vp.Scale)

	assert.True(t, vp.Visible(-3, 10, 4))
	assert.False(t, vp.Visible(-5, 10, 4))
}

func TestTrailsRecordAndFade(t *testing.T) {
	bodies := []physics.Body{
		{Mass: 1, Pos: r2.Vec{X: 0}},
		{Mass: 1, Pos: r2.Vec{X: 5}},
	}
	tr := NewTrails(bodies, 1.0, 0)
	require.Equal(t, 2, tr.Len())

	bodies[0].Pos = r2.Vec{X: 1}
	tr.Record(bodies, 0.25)
	segs := tr.Segments(0)
	require.Len(t, segs, 1)
	assert.Equal(t, r2.Vec{X: 0}, segs[0].From)
	assert.Equal(t, r2.Vec{X: 1}, segs[0].To)
	assert.InDelta(t, 0.75, tr.Fade(segs[0]), 1e-12)

	for i := 0; i < 3; i++ {
		tr.Record(bodies, 0.25)
	}
	// the first segment died after four ageings of 0.25
	for _, s := range tr.Segments(0) {
		assert.Positive(t, s.Life)
	}
	assert.Len(t, tr.Segments(0), 3)
}

func TestTrailsCapSegments(t *testing.T) {
	bodies := []physics.Body{{Mass: 1}}
	tr := NewTrails(bodies, 100, 4)
	for i := 1; i <= 10; i++ {
		bodies[0].Pos = r2.Vec{X: float64(i)}
		tr.Record(bodies, 0.01)
	}
	segs := tr.Segments(0)
	require.Len(t, segs, 4)
	assert.Equal(t, r2.Vec{X: 10}, segs[3].To)
}

func TestTrailsSkipNonFinite(t *testing.T) {
	bodies := []physics.Body{{Mass: 1}}
	tr := NewTrails(bodies, 1, 0)
	bodies[0].Pos = r2.Vec{X: math.NaN()}
	tr.Record(bodies, 0.1)
	assert.Empty(t, tr.Segments(0))

	tr.Reset(append(bodies, physics.Body{Mass: 2}))
	assert.Equal(t, 2, tr.Len())
}

type fakeSource []physics.Body

func (f fakeSource) Len() int                { return len(f) }
func (f fakeSource) Body(i int) physics.Body { return f[i] }

func TestSpritesAndPick(t *testing.T) {
	src := fakeSource{
		{Mass: 1, Pos: r2.Vec{X: 0, Y: 0}},
		{Mass: 1, Pos: r2.Vec{X: 10, Y: 0}},
		{Mass: 1, Pos: r2.Vec{X: -10, Y: 0}},
	}
	styles := []simulation.BodyStyle{{Color: "#ff0000", Radius: 3}, {}}
	vp := Viewport{Width: 100, Height: 100, Scale: 1}

	sprites := Sprites(src, styles, vp)
	require.Len(t, sprites, 3)
	assert.Equal(t, Sprite{Index: 0, X: 50, Y: 50, Radius: 3, Color: color.RGBA{255, 0, 0, 255}}, sprites[0])
	assert.Equal(t, DefaultRadius, sprites[1].Radius)
	assert.Equal(t, DefaultColor, sprites[2].Color)

	assert.Equal(t, 1, Pick(sprites, 61, 51))
	assert.Equal(t, 0, Pick(sprites, 51, 50))
	assert.Equal(t, -1, Pick(sprites, 50, 90))
}

func TestSpritesFromSimulator(t *testing.T) {
	sim, err := simulation.DefaultTwoBody(simulation.DefaultConfig())
	require.NoError(t, err)
	sprites := Sprites(sim, nil, Viewport{Width: 200, Height: 200, Scale: 1})
	require.Len(t, sprites, 2)
	assert.Equal(t, 150.0, sprites[0].X)
	assert.Equal(t, 50.0, sprites[1].X)
}
