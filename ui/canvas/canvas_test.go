package canvas

import (
	"testing"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"batch-gauge/internal/calibrate"
	"batch-gauge/internal/detection"
	"batch-gauge/pkg/geometry"
)

func newTestCanvas(t *testing.T) *AnnotationCanvas {
	t.Helper()
	test.NewApp()
	c := New()
	c.Resize(fyne.NewSize(200, 200))
	c.SetPhoto(whitePhoto(200, 200))
	return c
}

func tap(c *AnnotationCanvas, x, y float32) {
	c.Tapped(&fyne.PointEvent{Position: fyne.NewPos(x, y)})
}

func TestTapSelectsItem(t *testing.T) {
	c := newTestCanvas(t)
	c.SetItems([]detection.Item{
		{ID: "a", Box: geometry.Box{YMin: 0, XMin: 0, YMax: 500, XMax: 500}},
		{ID: "b", Box: geometry.Box{YMin: 100, XMin: 100, YMax: 600, XMax: 600}},
	})

	var clicked []string
	c.OnItemClick(func(item detection.Item) { clicked = append(clicked, item.ID) })

	backgroundClicks := 0
	c.OnBackgroundClick(func() { backgroundClicks++ })

	// Normalized (300,300) on a 200px surface is render (60,60): inside
	// both boxes, so the first item wins.
	tap(c, 60, 60)
	assert.Equal(t, []string{"a"}, clicked)

	tap(c, 190, 190)
	assert.Equal(t, 1, backgroundClicks)
}

func TestCalibrationClickFlow(t *testing.T) {
	c := newTestCanvas(t)

	var rec calibrate.Record
	done := 0
	c.OnCalibrationUpdate(func(r calibrate.Record) {
		rec = r
		done++
	})

	require.NoError(t, c.StartCalibration(10))
	assert.True(t, c.Calibrating())

	tap(c, 0, 0)
	assert.Zero(t, done, "first click must not resolve the pass")

	tap(c, 30, 40)
	require.Equal(t, 1, done)
	assert.InDelta(t, 5.0, rec.PixelsPerMm, 1e-9)
	assert.False(t, c.Calibrating(), "pass is one-shot")
	assert.True(t, rec.Surface.Valid())
}

func TestStartCalibrationGuard(t *testing.T) {
	c := newTestCanvas(t)
	assert.ErrorIs(t, c.StartCalibration(0), calibrate.ErrBadReferenceLength)
	assert.False(t, c.Calibrating())
}

func TestCancelCalibrationRestoresSelection(t *testing.T) {
	c := newTestCanvas(t)
	c.SetItems([]detection.Item{
		{ID: "a", Box: geometry.Box{YMin: 0, XMin: 0, YMax: 1000, XMax: 1000}},
	})

	var clicked []string
	c.OnItemClick(func(item detection.Item) { clicked = append(clicked, item.ID) })

	require.NoError(t, c.StartCalibration(10))
	c.CancelCalibration()

	tap(c, 100, 100)
	assert.Equal(t, []string{"a"}, clicked)
}

func TestEditModeAppendsVertex(t *testing.T) {
	c := newTestCanvas(t)
	c.SetItems([]detection.Item{{
		ID:   "a",
		Box:  geometry.Box{YMin: 0, XMin: 0, YMax: 1000, XMax: 1000},
		Mask: []geometry.NormPoint{{X: 0, Y: 0}, {X: 10, Y: 0}},
	}})
	c.SetSelected("a")
	c.SetEditMode(true)

	var gotID string
	var gotMask []geometry.NormPoint
	c.OnMaskUpdate(func(id string, mask []geometry.NormPoint) {
		gotID = id
		gotMask = mask
	})

	// Render (2,2) on a 200px surface is normalized (10,10).
	tap(c, 2, 2)
	assert.Equal(t, "a", gotID)
	require.Len(t, gotMask, 3)
	assert.InDelta(t, 10.0, gotMask[2].X, 1e-9)
	assert.InDelta(t, 10.0, gotMask[2].Y, 1e-9)
}
