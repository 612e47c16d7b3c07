package calibrate

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"batch-gauge/pkg/geometry"
)

var testSurface = geometry.Surface{Width: 800, Height: 600}

func TestTwoClickDerivation(t *testing.T) {
	s := NewSession()
	require.NoError(t, s.Arm(10))
	assert.Equal(t, PhaseArmed, s.Phase())

	_, done := s.Click(geometry.RenderPoint{X: 0, Y: 0}, testSurface)
	assert.False(t, done)
	assert.Equal(t, PhaseAwaitingSecond, s.Phase())

	first, ok := s.FirstPoint()
	require.True(t, ok)
	assert.Equal(t, geometry.RenderPoint{}, first)

	rec, done := s.Click(geometry.RenderPoint{X: 30, Y: 40}, testSurface)
	require.True(t, done)
	// Distance 50 px over 10 mm.
	assert.Equal(t, 5.0, rec.PixelsPerMm)
	assert.Equal(t, 10.0, rec.ReferenceMm)
	assert.Equal(t, geometry.RenderPoint{X: 30, Y: 40}, rec.End)
	assert.Equal(t, testSurface, rec.Surface)
	assert.True(t, rec.Valid())

	// One-shot: resolution drops straight back to inactive.
	assert.Equal(t, PhaseInactive, s.Phase())
	assert.False(t, s.Active())
}

func TestArmGuard(t *testing.T) {
	for _, bad := range []float64{0, -3, math.NaN(), math.Inf(1), math.Inf(-1)} {
		s := NewSession()
		err := s.Arm(bad)
		require.Error(t, err, "reference length %v", bad)
		assert.ErrorIs(t, err, ErrBadReferenceLength)
		assert.Equal(t, PhaseInactive, s.Phase())
	}
}

func TestRearmClearsBuffer(t *testing.T) {
	s := NewSession()
	require.NoError(t, s.Arm(5))
	s.Click(geometry.RenderPoint{X: 9, Y: 9}, testSurface)

	require.NoError(t, s.Arm(5))
	assert.Equal(t, PhaseArmed, s.Phase())
	_, ok := s.FirstPoint()
	assert.False(t, ok)
}

func TestCancel(t *testing.T) {
	s := NewSession()
	require.NoError(t, s.Arm(25))
	s.Cancel()
	assert.Equal(t, PhaseInactive, s.Phase())

	require.NoError(t, s.Arm(25))
	s.Click(geometry.RenderPoint{X: 1, Y: 2}, testSurface)
	s.Cancel()
	assert.Equal(t, PhaseInactive, s.Phase())
	_, ok := s.FirstPoint()
	assert.False(t, ok)
}

func TestClickWhileInactiveIsIgnored(t *testing.T) {
	s := NewSession()
	rec, done := s.Click(geometry.RenderPoint{X: 3, Y: 4}, testSurface)
	assert.False(t, done)
	assert.False(t, rec.Valid())
	assert.Equal(t, PhaseInactive, s.Phase())
}

func TestZeroLengthLineYieldsInvalidRecord(t *testing.T) {
	s := NewSession()
	require.NoError(t, s.Arm(10))
	p := geometry.RenderPoint{X: 7, Y: 7}
	s.Click(p, testSurface)
	rec, done := s.Click(p, testSurface)
	require.True(t, done)
	assert.Equal(t, 0.0, rec.PixelsPerMm)
	assert.False(t, rec.Valid())
}
