// Package detection defines the item instances produced by the vision
// service and the operations the review canvas performs on them: boundary
// validation, hit testing, and mask editing.
package detection

import (
	"batch-gauge/pkg/geometry"
)

// Item is one segmented physical object from a detection pass.
//
// Box and Mask are in normalized detection space. WidthMm and HeightMm are
// zero until a calibration pass has been applied; they are derived values
// and are recomputed in full on every calibration change, never hand-set.
type Item struct {
	ID         string               `json:"id"`
	Box        geometry.Box         `json:"box"`
	Mask       []geometry.NormPoint `json:"mask,omitempty"`
	Confidence float64              `json:"confidence"`
	AreaPx     float64              `json:"area_px"`
	WidthMm    float64              `json:"width_mm,omitempty"`
	HeightMm   float64              `json:"height_mm,omitempty"`
	Label      string               `json:"label"`
}

// Centroid returns the arithmetic mean of the mask vertices, falling back
// to the box center when the mask is empty. Used for badge placement and
// the hover lift transform.
func (it Item) Centroid() geometry.NormPoint {
	if len(it.Mask) == 0 {
		return it.Box.Center()
	}
	return geometry.NormCentroid(it.Mask)
}

// Measured reports whether calibrated measurements are present.
func (it Item) Measured() bool {
	return it.WidthMm != 0 || it.HeightMm != 0
}

// Result is the full instance set from one detection pass. It is replaced
// atomically; individual items are only ever mutated by mask edits and
// calibration application.
type Result struct {
	ItemType string `json:"item_type"`
	Items    []Item `json:"items"`
}

// Find returns the index of the item with the given id, or -1.
func (r *Result) Find(id string) int {
	return Find(r.Items, id)
}

// Find returns the index of the item with the given id in a slice, or -1.
func Find(items []Item, id string) int {
	for i := range items {
		if items[i].ID == id {
			return i
		}
	}
	return -1
}
