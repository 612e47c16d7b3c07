package geometry

import "math"

// NormAxisRange is the extent of the detector's normalized coordinate
// system: both axes run 0..1000 regardless of photo resolution.
const NormAxisRange = 1000.0

// NormPoint is a point in normalized detection space.
type NormPoint struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// RenderPoint is a point in rendering-surface pixel space.
//
// NormPoint and RenderPoint are deliberately distinct struct types.
// Converting between them goes through a Surface; mixing them in
// arithmetic is a compile error.
type RenderPoint struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Distance returns the Euclidean distance to another render-space point.
func (p RenderPoint) Distance(other RenderPoint) float64 {
	dx := p.X - other.X
	dy := p.Y - other.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// Surface describes the on-screen drawing surface in pixels.
type Surface struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// FitWidth derives the surface for a photo displayed at the container's
// full width with the photo's aspect ratio preserved. The surface matches
// the scaled photo exactly, so there is never letterboxing.
func FitWidth(containerWidth, photoWidth, photoHeight float64) Surface {
	if photoWidth <= 0 || photoHeight <= 0 || containerWidth <= 0 {
		return Surface{}
	}
	scale := containerWidth / photoWidth
	return Surface{Width: containerWidth, Height: photoHeight * scale}
}

// Valid reports whether the surface has positive extent on both axes.
func (s Surface) Valid() bool {
	return s.Width > 0 && s.Height > 0
}

// ToRender maps a normalized point onto the surface. Out-of-range input is
// not clamped; it simply maps outside the visible area.
func (s Surface) ToRender(p NormPoint) RenderPoint {
	return RenderPoint{
		X: p.X / NormAxisRange * s.Width,
		Y: p.Y / NormAxisRange * s.Height,
	}
}

// ToNormalized is the exact inverse of ToRender up to floating-point
// precision.
func (s Surface) ToNormalized(p RenderPoint) NormPoint {
	return NormPoint{
		X: p.X / s.Width * NormAxisRange,
		Y: p.Y / s.Height * NormAxisRange,
	}
}

// NormCentroid returns the arithmetic mean of a set of normalized points.
func NormCentroid(points []NormPoint) NormPoint {
	if len(points) == 0 {
		return NormPoint{}
	}
	var sumX, sumY float64
	for _, p := range points {
		sumX += p.X
		sumY += p.Y
	}
	n := float64(len(points))
	return NormPoint{X: sumX / n, Y: sumY / n}
}
