package detection

import "batch-gauge/pkg/geometry"

// IndexAt converts a surface point to normalized space and returns the
// index of the first item whose bounding box contains it, or -1.
//
// First match wins in stored result order. Overlapping boxes resolving to
// the earliest-listed item is the intended tie-break, not an accident;
// there is no z-order re-sorting.
func IndexAt(p geometry.RenderPoint, items []Item, s geometry.Surface) int {
	if !s.Valid() {
		return -1
	}
	np := s.ToNormalized(p)
	for i := range items {
		if items[i].Box.Contains(np) {
			return i
		}
	}
	return -1
}

// ItemAt is IndexAt returning the matched item by value.
func ItemAt(p geometry.RenderPoint, items []Item, s geometry.Surface) (Item, bool) {
	i := IndexAt(p, items, s)
	if i < 0 {
		return Item{}, false
	}
	return items[i], true
}
