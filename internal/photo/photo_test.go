package photo

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTestPNG(t *testing.T, w, h int) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: 200, G: 180, B: 160, A: 255})
		}
	}
	path := filepath.Join(t.TempDir(), "batch.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, img))
	require.NoError(t, f.Close())
	return path
}

func TestLoad(t *testing.T) {
	path := writeTestPNG(t, 40, 30)
	p, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 40, p.Width)
	assert.Equal(t, 30, p.Height)
	assert.Equal(t, path, p.Path)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.png"))
	assert.Error(t, err)
}

func TestLoadNotAnImage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.png")
	require.NoError(t, os.WriteFile(path, []byte("not a png"), 0o644))
	_, err := Load(path)
	assert.Error(t, err)
}

func TestSurfaceFor(t *testing.T) {
	path := writeTestPNG(t, 400, 300)
	p, err := Load(path)
	require.NoError(t, err)

	s := p.SurfaceFor(800)
	assert.Equal(t, 800.0, s.Width)
	assert.Equal(t, 600.0, s.Height)

	var nilPhoto *Photo
	assert.False(t, nilPhoto.SurfaceFor(800).Valid())
}
