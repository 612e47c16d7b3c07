package calibrate

import (
	"math"

	"batch-gauge/internal/detection"
	"batch-gauge/pkg/geometry"
)

// Apply recomputes WidthMm/HeightMm for every item with a non-empty mask
// from its bounding-box extents and the record's scale factor, returning a
// new slice. The box extent in normalized units is converted to a surface
// pixel estimate using the capture-time surface (one surface pixel per
// width/1000 normalized unit on each axis), then divided by pixels-per-mm
// and rounded to two decimals.
//
// Apply is a pure projection: running it twice with the same record gives
// identical results, and it must re-run whenever PixelsPerMm changes.
func Apply(items []detection.Item, rec Record) []detection.Item {
	out := make([]detection.Item, len(items))
	copy(out, items)
	if !rec.Valid() {
		return out
	}

	pxPerUnitX := rec.Surface.Width / geometry.NormAxisRange
	pxPerUnitY := rec.Surface.Height / geometry.NormAxisRange

	for i := range out {
		if len(out[i].Mask) == 0 {
			continue
		}
		widthPx := out[i].Box.Width() * pxPerUnitX
		heightPx := out[i].Box.Height() * pxPerUnitY
		out[i].WidthMm = roundMm(widthPx / rec.PixelsPerMm)
		out[i].HeightMm = roundMm(heightPx / rec.PixelsPerMm)
	}
	return out
}

func roundMm(v float64) float64 {
	return math.Round(v*100) / 100
}
