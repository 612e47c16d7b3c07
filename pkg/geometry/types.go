// Package geometry provides the coordinate spaces and basic geometric
// types shared across the application.
package geometry

import "math"

// Box is an axis-aligned bounding box in normalized detection space,
// stored in the detector's (yMin, xMin, yMax, xMax) convention.
type Box struct {
	YMin float64 `json:"y_min"`
	XMin float64 `json:"x_min"`
	YMax float64 `json:"y_max"`
	XMax float64 `json:"x_max"`
}

// Valid reports whether all coordinates are finite and ordered within the
// normalized axis range.
func (b Box) Valid() bool {
	for _, v := range [4]float64{b.YMin, b.XMin, b.YMax, b.XMax} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return b.YMin >= 0 && b.YMin <= b.YMax && b.YMax <= NormAxisRange &&
		b.XMin >= 0 && b.XMin <= b.XMax && b.XMax <= NormAxisRange
}

// Contains reports whether the normalized point lies inside the box.
// Edges are inclusive.
func (b Box) Contains(p NormPoint) bool {
	return p.X >= b.XMin && p.X <= b.XMax && p.Y >= b.YMin && p.Y <= b.YMax
}

// Width returns the box extent along X in normalized units.
func (b Box) Width() float64 { return b.XMax - b.XMin }

// Height returns the box extent along Y in normalized units.
func (b Box) Height() float64 { return b.YMax - b.YMin }

// Center returns the box center in normalized space.
func (b Box) Center() NormPoint {
	return NormPoint{X: (b.XMin + b.XMax) / 2, Y: (b.YMin + b.YMax) / 2}
}
