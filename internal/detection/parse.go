package detection

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"math"

	"github.com/google/uuid"

	"batch-gauge/pkg/geometry"
)

// wireItem mirrors one entry of the vision service's JSON output. The box
// is the detector's four-scalar (yMin, xMin, yMax, xMax) convention in
// normalized 0-1000 coordinates; mask points are [x, y] pairs in the same
// space.
type wireItem struct {
	ID         string      `json:"id,omitempty"`
	Box2D      []float64   `json:"box_2d"`
	Mask       [][]float64 `json:"mask,omitempty"`
	Label      string      `json:"label,omitempty"`
	Confidence float64     `json:"confidence"`
	AreaPx     float64     `json:"area_px,omitempty"`
}

type wireResult struct {
	ItemType string     `json:"item_type,omitempty"`
	Items    []wireItem `json:"items"`
}

// Parse decodes a detection payload and validates it at the boundary.
// Malformed entries (missing box, unordered or non-finite coordinates) are
// skipped with a warning rather than propagated into rendering.
func Parse(data []byte, logger *slog.Logger) (*Result, error) {
	if logger == nil {
		logger = slog.Default()
	}

	var wire wireResult
	if err := json.Unmarshal(data, &wire); err != nil {
		return nil, fmt.Errorf("decoding detection payload: %w", err)
	}

	result := &Result{ItemType: wire.ItemType}
	for i, w := range wire.Items {
		item, err := convertItem(w, wire.ItemType)
		if err != nil {
			logger.Warn("skipping malformed detection entry",
				"index", i, "reason", err)
			continue
		}
		result.Items = append(result.Items, item)
	}
	return result, nil
}

func convertItem(w wireItem, itemType string) (Item, error) {
	if len(w.Box2D) != 4 {
		return Item{}, fmt.Errorf("bounding box has %d coordinates, want 4", len(w.Box2D))
	}
	box := geometry.Box{
		YMin: w.Box2D[0],
		XMin: w.Box2D[1],
		YMax: w.Box2D[2],
		XMax: w.Box2D[3],
	}
	if !box.Valid() {
		return Item{}, fmt.Errorf("bounding box %v is not a valid normalized box", w.Box2D)
	}

	mask := make([]geometry.NormPoint, 0, len(w.Mask))
	for _, pt := range w.Mask {
		if len(pt) != 2 {
			return Item{}, fmt.Errorf("mask point has %d coordinates, want 2", len(pt))
		}
		if !isFinite(pt[0]) || !isFinite(pt[1]) {
			return Item{}, fmt.Errorf("mask point %v is not finite", pt)
		}
		mask = append(mask, geometry.NormPoint{X: pt[0], Y: pt[1]})
	}

	id := w.ID
	if id == "" {
		id = uuid.NewString()
	}
	label := w.Label
	if label == "" {
		label = itemType
	}

	return Item{
		ID:         id,
		Box:        box,
		Mask:       mask,
		Confidence: clamp01(w.Confidence),
		AreaPx:     math.Max(0, w.AreaPx),
		Label:      label,
	}, nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func clamp01(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
