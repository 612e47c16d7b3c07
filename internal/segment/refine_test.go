package segment

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"

	"batch-gauge/pkg/geometry"
)

func TestCropRect(t *testing.T) {
	bounds := image.Rect(0, 0, 1000, 500)
	box := geometry.Box{YMin: 0, XMin: 500, YMax: 1000, XMax: 1000}
	r := cropRect(box, bounds)
	assert.Equal(t, image.Rect(500, 0, 1000, 500), r)
}

func TestCropRectClamps(t *testing.T) {
	bounds := image.Rect(0, 0, 100, 100)
	box := geometry.Box{YMin: 900, XMin: 900, YMax: 1000, XMax: 1000}
	r := cropRect(box, bounds)
	assert.True(t, r.In(bounds))
	assert.Equal(t, image.Rect(90, 90, 100, 100), r)
}

func TestRefineMaskGuards(t *testing.T) {
	_, err := RefineMask(nil, geometry.Box{YMax: 100, XMax: 100})
	assert.Error(t, err)

	img := image.NewRGBA(image.Rect(0, 0, 100, 100))
	_, err = RefineMask(img, geometry.Box{YMin: 10, XMin: 10, YMax: 10, XMax: 10})
	assert.Error(t, err)
}
