package geometry

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFitWidth(t *testing.T) {
	s := FitWidth(800, 4000, 3000)
	assert.Equal(t, 800.0, s.Width)
	assert.Equal(t, 600.0, s.Height)
	assert.True(t, s.Valid())
}

func TestFitWidthDegenerate(t *testing.T) {
	assert.False(t, FitWidth(800, 0, 3000).Valid())
	assert.False(t, FitWidth(0, 4000, 3000).Valid())
}

func TestToRender(t *testing.T) {
	s := Surface{Width: 500, Height: 250}

	p := s.ToRender(NormPoint{X: 1000, Y: 1000})
	assert.Equal(t, 500.0, p.X)
	assert.Equal(t, 250.0, p.Y)

	mid := s.ToRender(NormPoint{X: 500, Y: 500})
	assert.Equal(t, 250.0, mid.X)
	assert.Equal(t, 125.0, mid.Y)
}

func TestRoundTrip(t *testing.T) {
	surfaces := []Surface{
		{Width: 640, Height: 480},
		{Width: 1280, Height: 961},
		{Width: 333, Height: 717},
	}
	points := []NormPoint{
		{0, 0}, {1000, 1000}, {500, 500}, {1, 999},
		{123.456, 654.321},
		// Out-of-range points stay valid and round-trip too.
		{-50, 1200},
	}
	for _, s := range surfaces {
		for _, p := range points {
			got := s.ToNormalized(s.ToRender(p))
			assert.InDelta(t, p.X, got.X, 1e-9)
			assert.InDelta(t, p.Y, got.Y, 1e-9)
		}
	}
}

func TestNoClamping(t *testing.T) {
	s := Surface{Width: 100, Height: 100}
	p := s.ToRender(NormPoint{X: 2000, Y: -500})
	assert.Equal(t, 200.0, p.X)
	assert.Equal(t, -50.0, p.Y)
}

func TestRenderDistance(t *testing.T) {
	d := RenderPoint{X: 0, Y: 0}.Distance(RenderPoint{X: 30, Y: 40})
	assert.Equal(t, 50.0, d)
}

func TestNormCentroid(t *testing.T) {
	pts := []NormPoint{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}}
	c := NormCentroid(pts)
	require.Equal(t, NormPoint{X: 5, Y: 5}, c)

	assert.Equal(t, NormPoint{}, NormCentroid(nil))
}

func TestBoxContains(t *testing.T) {
	b := Box{YMin: 100, XMin: 200, YMax: 300, XMax: 400}

	assert.True(t, b.Contains(NormPoint{X: 300, Y: 200}))
	// Edges are inclusive.
	assert.True(t, b.Contains(NormPoint{X: 200, Y: 100}))
	assert.True(t, b.Contains(NormPoint{X: 400, Y: 300}))
	assert.False(t, b.Contains(NormPoint{X: 401, Y: 200}))
	assert.False(t, b.Contains(NormPoint{X: 300, Y: 99}))
}

func TestBoxValid(t *testing.T) {
	assert.True(t, Box{YMin: 0, XMin: 0, YMax: 1000, XMax: 1000}.Valid())
	assert.False(t, Box{YMin: 500, XMin: 0, YMax: 100, XMax: 1000}.Valid())
	assert.False(t, Box{YMin: 0, XMin: -1, YMax: 100, XMax: 100}.Valid())

	assert.False(t, Box{YMin: 0, XMin: 0, YMax: 100, XMax: math.NaN()}.Valid())
	assert.False(t, Box{YMin: 0, XMin: 0, YMax: math.Inf(1), XMax: 100}.Valid())
}

func TestBoxExtents(t *testing.T) {
	b := Box{YMin: 0, XMin: 0, YMax: 500, XMax: 1000}
	assert.Equal(t, 1000.0, b.Width())
	assert.Equal(t, 500.0, b.Height())
	assert.Equal(t, NormPoint{X: 500, Y: 250}, b.Center())
}
