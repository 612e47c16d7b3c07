package canvas

import (
	"image"
	"strconv"

	xdraw "golang.org/x/image/draw"

	"batch-gauge/internal/detection"
	"batch-gauge/pkg/geometry"
)

const (
	hoverLift       = 1.05
	maskThickness   = 2
	haloThickness   = 4
	handleRadius    = 4.5
	calibCapRadius  = 5
	calibThickness  = 2
	calibDashLength = 6
)

// Render rasterizes a Scene into a w by h frame. It is a pure function of
// its inputs: no scene field is mutated and repeated calls with the same
// scene produce identical frames.
//
// Draw order: photo, item overlays (skipped while calibrating), the frozen
// calibration line, then the calibration-in-progress veil and preview.
func Render(scene Scene, w, h int) *image.RGBA {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	output := image.NewRGBA(image.Rect(0, 0, w, h))
	fillBackdrop(output)

	// A missing photo or degenerate surface means the defined blank
	// state, never a partial frame.
	if scene.Photo == nil || !scene.Surface.Valid() {
		return output
	}

	surfW := int(scene.Surface.Width)
	surfH := int(scene.Surface.Height)
	xdraw.ApproxBiLinear.Scale(output, image.Rect(0, 0, surfW, surfH),
		scene.Photo, scene.Photo.Bounds(), xdraw.Src, nil)

	if !scene.Calibrating.Active {
		for i, item := range scene.Items {
			drawItem(output, scene, item, i)
		}
		if scene.Record.Valid() {
			drawCalibrationLine(output, scene.Record.Start, scene.Record.End)
		}
		return output
	}

	dimRect(output, 0, 0, surfW, surfH, dimVeil)
	if scene.Calibrating.HasFirst {
		first := scene.Calibrating.First
		if scene.Calibrating.HasCursor {
			cursor := scene.Calibrating.Cursor
			drawDashedLine(output, int(first.X), int(first.Y),
				int(cursor.X), int(cursor.Y), calibStroke, calibThickness, calibDashLength)
		}
		drawCircle(output, first.X, first.Y, calibCapRadius, calibStroke, true)
	}
	return output
}

func fillBackdrop(output *image.RGBA) {
	b := output.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			output.SetRGBA(x, y, blankBackdrop)
		}
	}
}

func drawItem(output *image.RGBA, scene Scene, item detection.Item, index int) {
	selected := item.ID != "" && item.ID == scene.SelectedID
	hovered := item.ID != "" && item.ID == scene.HoveredID

	mask := make([]geometry.RenderPoint, len(item.Mask))
	for i, p := range item.Mask {
		mask[i] = scene.Surface.ToRender(p)
	}

	topLeft := scene.Surface.ToRender(geometry.NormPoint{X: item.Box.XMin, Y: item.Box.YMin})
	bottomRight := scene.Surface.ToRender(geometry.NormPoint{X: item.Box.XMax, Y: item.Box.YMax})

	centroid := scene.Surface.ToRender(item.Centroid())
	if hovered && len(mask) > 0 {
		for i := range mask {
			mask[i] = liftPoint(mask[i], centroid)
		}
		topLeft = liftPoint(topLeft, centroid)
		bottomRight = liftPoint(bottomRight, centroid)
	}

	if scene.Flags.ShowMasks && len(mask) >= 3 {
		fill, stroke := maskFill, maskStroke
		switch {
		case selected:
			fill, stroke = selectFill, selectStroke
		case hovered:
			fill, stroke = hoverFill, hoverStroke
		}
		fillPolygon(output, mask, fill)
		if selected {
			strokePolygon(output, mask, strokeHalo, haloThickness)
		}
		strokePolygon(output, mask, stroke, maskThickness)
	}

	if scene.EditMode && selected {
		for _, p := range mask {
			drawCircle(output, p.X, p.Y, handleRadius, handleFill, true)
			drawCircle(output, p.X, p.Y, handleRadius+1, handleStroke, false)
		}
	}

	if scene.Flags.ShowBoxes {
		x1, y1 := int(topLeft.X), int(topLeft.Y)
		x2, y2 := int(bottomRight.X), int(bottomRight.Y)
		if selected {
			drawRectOutline(output, x1, y1, x2, y2, selectStroke, 2)
		} else {
			drawDashedRect(output, x1, y1, x2, y2, boxStroke)
		}
	}

	if hovered || selected {
		badgeY := int(centroid.Y) - 18
		if badgeY < 14 {
			badgeY = int(centroid.Y) + 18
		}
		drawBadge(output, strconv.Itoa(index+1), int(centroid.X), badgeY)
	}
}

// liftPoint scales p away from the centroid to lift a hovered item.
func liftPoint(p, centroid geometry.RenderPoint) geometry.RenderPoint {
	return geometry.RenderPoint{
		X: centroid.X + (p.X-centroid.X)*hoverLift,
		Y: centroid.Y + (p.Y-centroid.Y)*hoverLift,
	}
}

func drawCalibrationLine(output *image.RGBA, start, end geometry.RenderPoint) {
	drawDashedLine(output, int(start.X), int(start.Y), int(end.X), int(end.Y),
		calibStroke, calibThickness, calibDashLength)
	drawCircle(output, start.X, start.Y, calibCapRadius, calibStroke, true)
	drawCircle(output, end.X, end.Y, calibCapRadius, calibStroke, true)
}
