// Package segment provides local, operator-triggered mask refinement.
// It proposes a replacement polygon for one item by thresholding the
// photo inside the item's bounding box and tracing the dominant contour.
// This is a local OpenCV pass, not the external segmentation model.
package segment

import (
	"fmt"
	"image"
	"image/draw"

	"gocv.io/x/gocv"

	"batch-gauge/pkg/geometry"
)

const (
	// Douglas-Peucker tolerance as a fraction of contour perimeter.
	simplifyEpsilon = 0.01
	// Contours smaller than this fraction of the crop are noise.
	minAreaFraction = 0.01
)

// RefineMask traces the dominant shape inside the item's bounding box and
// returns it as a mask polygon in normalized space. The photo is the full
// source image; box is the item's normalized bounding box.
func RefineMask(photo image.Image, box geometry.Box) ([]geometry.NormPoint, error) {
	if photo == nil {
		return nil, fmt.Errorf("refine mask: no photo loaded")
	}
	if !box.Valid() || box.Width() == 0 || box.Height() == 0 {
		return nil, fmt.Errorf("refine mask: degenerate bounding box")
	}

	crop := cropRect(box, photo.Bounds())
	if crop.Dx() < 4 || crop.Dy() < 4 {
		return nil, fmt.Errorf("refine mask: item region %v too small", crop)
	}

	rgba := image.NewRGBA(image.Rect(0, 0, crop.Dx(), crop.Dy()))
	draw.Draw(rgba, rgba.Bounds(), photo, crop.Min, draw.Src)

	mat, err := gocv.NewMatFromBytes(crop.Dy(), crop.Dx(), gocv.MatTypeCV8UC4, rgba.Pix)
	if err != nil {
		return nil, fmt.Errorf("refine mask: %w", err)
	}
	defer mat.Close()

	gray := gocv.NewMat()
	defer gray.Close()
	gocv.CvtColor(mat, &gray, gocv.ColorRGBAToGray)

	blurred := gocv.NewMat()
	defer blurred.Close()
	gocv.GaussianBlur(gray, &blurred, image.Point{X: 5, Y: 5}, 0, 0, gocv.BorderDefault)

	binary := gocv.NewMat()
	defer binary.Close()
	gocv.Threshold(blurred, &binary, 0, 255, gocv.ThresholdBinary|gocv.ThresholdOtsu)

	contours := gocv.FindContours(binary, gocv.RetrievalExternal, gocv.ChainApproxSimple)
	defer contours.Close()

	minArea := float64(crop.Dx()*crop.Dy()) * minAreaFraction
	best := -1
	bestArea := minArea
	for i := 0; i < contours.Size(); i++ {
		if area := gocv.ContourArea(contours.At(i)); area > bestArea {
			best = i
			bestArea = area
		}
	}
	if best < 0 {
		return nil, fmt.Errorf("refine mask: no contour above %.0f px in item region", minArea)
	}

	contour := contours.At(best)
	epsilon := simplifyEpsilon * gocv.ArcLength(contour, true)
	approx := gocv.ApproxPolyDP(contour, epsilon, true)
	defer approx.Close()

	points := approx.ToPoints()
	if len(points) < 3 {
		return nil, fmt.Errorf("refine mask: contour degenerated to %d points", len(points))
	}

	photoBounds := photo.Bounds()
	mask := make([]geometry.NormPoint, len(points))
	for i, pt := range points {
		// Crop-local pixel back to photo pixel, then to normalized space.
		px := float64(crop.Min.X-photoBounds.Min.X) + float64(pt.X)
		py := float64(crop.Min.Y-photoBounds.Min.Y) + float64(pt.Y)
		mask[i] = geometry.NormPoint{
			X: px / float64(photoBounds.Dx()) * geometry.NormAxisRange,
			Y: py / float64(photoBounds.Dy()) * geometry.NormAxisRange,
		}
	}
	return mask, nil
}

// cropRect maps a normalized box onto photo pixels, clamped to the photo.
func cropRect(box geometry.Box, bounds image.Rectangle) image.Rectangle {
	w := float64(bounds.Dx())
	h := float64(bounds.Dy())
	r := image.Rect(
		bounds.Min.X+int(box.XMin/geometry.NormAxisRange*w),
		bounds.Min.Y+int(box.YMin/geometry.NormAxisRange*h),
		bounds.Min.X+int(box.XMax/geometry.NormAxisRange*w),
		bounds.Min.Y+int(box.YMax/geometry.NormAxisRange*h),
	)
	return r.Intersect(bounds)
}
