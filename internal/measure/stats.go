// Package measure summarizes calibrated batch measurements.
package measure

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/stat"

	"batch-gauge/internal/detection"
)

// Summary holds aggregate statistics over the measured items of a batch.
// Items without calibrated measurements are excluded.
type Summary struct {
	Count          int
	MeanWidthMm    float64
	MedianWidthMm  float64
	StdDevWidthMm  float64
	MeanHeightMm   float64
	MedianHeightMm float64
	StdDevHeightMm float64
}

// Summarize computes batch statistics over every measured item.
func Summarize(items []detection.Item) Summary {
	var widths, heights []float64
	for _, it := range items {
		if !it.Measured() {
			continue
		}
		widths = append(widths, it.WidthMm)
		heights = append(heights, it.HeightMm)
	}
	if len(widths) == 0 {
		return Summary{}
	}

	sort.Float64s(widths)
	sort.Float64s(heights)

	s := Summary{
		Count:          len(widths),
		MeanWidthMm:    stat.Mean(widths, nil),
		MedianWidthMm:  stat.Quantile(0.5, stat.Empirical, widths, nil),
		MeanHeightMm:   stat.Mean(heights, nil),
		MedianHeightMm: stat.Quantile(0.5, stat.Empirical, heights, nil),
	}
	if len(widths) > 1 {
		s.StdDevWidthMm = stat.StdDev(widths, nil)
		s.StdDevHeightMm = stat.StdDev(heights, nil)
	}
	return s
}

// String renders a one-line status-bar summary.
func (s Summary) String() string {
	if s.Count == 0 {
		return "no measured items"
	}
	return fmt.Sprintf("%d items | width %.2f mm (median %.2f, sd %.2f) | height %.2f mm (median %.2f, sd %.2f)",
		s.Count,
		s.MeanWidthMm, s.MedianWidthMm, s.StdDevWidthMm,
		s.MeanHeightMm, s.MedianHeightMm, s.StdDevHeightMm)
}
