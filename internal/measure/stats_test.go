package measure

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"batch-gauge/internal/detection"
)

func TestSummarize(t *testing.T) {
	items := []detection.Item{
		{ID: "a", WidthMm: 10, HeightMm: 20},
		{ID: "b", WidthMm: 20, HeightMm: 40},
		{ID: "c", WidthMm: 30, HeightMm: 60},
		{ID: "unmeasured"},
	}
	s := Summarize(items)
	assert.Equal(t, 3, s.Count)
	assert.InDelta(t, 20, s.MeanWidthMm, 1e-9)
	assert.InDelta(t, 20, s.MedianWidthMm, 1e-9)
	assert.InDelta(t, 10, s.StdDevWidthMm, 1e-9)
	assert.InDelta(t, 40, s.MeanHeightMm, 1e-9)
	assert.InDelta(t, 20, s.StdDevHeightMm, 1e-9)
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil)
	assert.Equal(t, 0, s.Count)
	assert.Equal(t, "no measured items", s.String())
}

func TestSummarizeSingle(t *testing.T) {
	s := Summarize([]detection.Item{{WidthMm: 5, HeightMm: 7}})
	assert.Equal(t, 1, s.Count)
	assert.Equal(t, 5.0, s.MeanWidthMm)
	assert.Zero(t, s.StdDevWidthMm)
	assert.Contains(t, s.String(), "1 items")
}
