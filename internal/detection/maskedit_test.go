package detection

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"batch-gauge/pkg/geometry"
)

func TestAppendVertexPreservesOrder(t *testing.T) {
	item := Item{
		ID:   "x",
		Mask: []geometry.NormPoint{{X: 0, Y: 0}, {X: 10, Y: 0}},
	}
	edited := AppendVertex(item, geometry.RenderPoint{X: 10, Y: 10}, unitSurface)

	require.Equal(t, []geometry.NormPoint{
		{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10},
	}, edited.Mask)

	// The original item is untouched.
	assert.Len(t, item.Mask, 2)
}

func TestAppendVertexConvertsToNormalized(t *testing.T) {
	s := geometry.Surface{Width: 500, Height: 250}
	item := Item{ID: "x"}
	edited := AppendVertex(item, geometry.RenderPoint{X: 250, Y: 125}, s)
	require.Len(t, edited.Mask, 1)
	assert.InDelta(t, 500, edited.Mask[0].X, 1e-9)
	assert.InDelta(t, 500, edited.Mask[0].Y, 1e-9)
}

func TestClearMask(t *testing.T) {
	item := Item{
		ID:   "x",
		Mask: []geometry.NormPoint{{X: 1, Y: 2}, {X: 3, Y: 4}},
	}
	cleared := ClearMask(item)
	assert.Empty(t, cleared.Mask)
	assert.Len(t, item.Mask, 2)
}

func TestItemCentroid(t *testing.T) {
	item := Item{
		Mask: []geometry.NormPoint{{X: 0, Y: 0}, {X: 30, Y: 0}, {X: 30, Y: 30}, {X: 0, Y: 30}},
	}
	assert.Equal(t, geometry.NormPoint{X: 15, Y: 15}, item.Centroid())

	// Empty mask falls back to the box center.
	boxed := Item{Box: geometry.Box{YMin: 0, XMin: 0, YMax: 100, XMax: 200}}
	assert.Equal(t, geometry.NormPoint{X: 100, Y: 50}, boxed.Centroid())
}
