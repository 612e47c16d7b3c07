package session

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"batch-gauge/internal/calibrate"
	"batch-gauge/internal/detection"
	"batch-gauge/pkg/geometry"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	f := New("hex nut")
	f.PhotoPath = "batch.jpg"
	f.Result = &detection.Result{
		ItemType: "hex nut",
		Items: []detection.Item{
			{
				ID:       "a",
				Box:      geometry.Box{YMin: 1, XMin: 2, YMax: 3, XMax: 4},
				Mask:     []geometry.NormPoint{{X: 2, Y: 1}, {X: 4, Y: 1}, {X: 4, Y: 3}},
				WidthMm:  1.25,
				HeightMm: 2.5,
				Label:    "hex nut",
			},
		},
	}
	f.Calibration = &calibrate.Record{
		ReferenceMm: 10,
		PixelsPerMm: 5,
		Start:       geometry.RenderPoint{X: 1, Y: 2},
		End:         geometry.RenderPoint{X: 31, Y: 42},
		Surface:     geometry.Surface{Width: 800, Height: 600},
	}

	path := filepath.Join(t.TempDir(), "review.bgauge")
	require.NoError(t, f.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 1, loaded.Version)
	assert.Equal(t, "hex nut", loaded.ItemType)
	assert.Equal(t, f.Result, loaded.Result)
	assert.Equal(t, f.Calibration, loaded.Calibration)
	assert.False(t, loaded.Modified.IsZero())
}

func TestLoadMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.bgauge"))
	assert.Error(t, err)
}
