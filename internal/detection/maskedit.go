package detection

import "batch-gauge/pkg/geometry"

// AppendVertex converts a surface click to normalized space and returns a
// copy of the item with the point appended as the new last mask vertex.
// Existing vertices keep their order; editing is strictly polygon growth.
func AppendVertex(item Item, click geometry.RenderPoint, s geometry.Surface) Item {
	vertex := s.ToNormalized(click)
	mask := make([]geometry.NormPoint, len(item.Mask), len(item.Mask)+1)
	copy(mask, item.Mask)
	item.Mask = append(mask, vertex)
	return item
}

// ClearMask returns a copy of the item with an empty mask.
func ClearMask(item Item) Item {
	item.Mask = nil
	return item
}
