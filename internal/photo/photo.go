// Package photo loads batch photographs for review.
package photo

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"batch-gauge/pkg/geometry"
)

// Photo is a loaded source photograph.
type Photo struct {
	Path   string
	Image  image.Image
	Width  int
	Height int
}

// Load reads and decodes a photograph. A failure is reported to the
// caller; nothing is drawn from a photo that did not load.
func Load(path string) (*Photo, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening photo: %w", err)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("decoding photo %s: %w", path, err)
	}

	bounds := img.Bounds()
	if bounds.Dx() <= 0 || bounds.Dy() <= 0 {
		return nil, fmt.Errorf("photo %s has empty bounds", path)
	}

	return &Photo{
		Path:   path,
		Image:  img,
		Width:  bounds.Dx(),
		Height: bounds.Dy(),
	}, nil
}

// SurfaceFor derives the rendering surface for this photo at the given
// container width, preserving aspect ratio.
func (p *Photo) SurfaceFor(containerWidth float64) geometry.Surface {
	if p == nil {
		return geometry.Surface{}
	}
	return geometry.FitWidth(containerWidth, float64(p.Width), float64(p.Height))
}
