package canvas

import (
	"image"
	"image/color"
	"sort"

	"batch-gauge/pkg/geometry"
)

// digitPatterns contains 3x5 pixel patterns for digits 0-9, used for the
// index badges. Each digit is 5 rows of 3 bits.
var digitPatterns = [10][5]uint8{
	{0b111, 0b101, 0b101, 0b101, 0b111}, // 0
	{0b010, 0b110, 0b010, 0b010, 0b111}, // 1
	{0b111, 0b001, 0b111, 0b100, 0b111}, // 2
	{0b111, 0b001, 0b111, 0b001, 0b111}, // 3
	{0b101, 0b101, 0b111, 0b001, 0b001}, // 4
	{0b111, 0b100, 0b111, 0b001, 0b111}, // 5
	{0b111, 0b100, 0b111, 0b101, 0b111}, // 6
	{0b111, 0b001, 0b001, 0b001, 0b001}, // 7
	{0b111, 0b101, 0b111, 0b101, 0b111}, // 8
	{0b111, 0b101, 0b111, 0b001, 0b111}, // 9
}

// blendAt composites col over the existing pixel using col's alpha.
// Fully opaque colors take the fast path.
func blendAt(output *image.RGBA, x, y int, col color.RGBA) {
	bounds := output.Bounds()
	if x < bounds.Min.X || x >= bounds.Max.X || y < bounds.Min.Y || y >= bounds.Max.Y {
		return
	}
	if col.A == 255 {
		output.SetRGBA(x, y, col)
		return
	}
	if col.A == 0 {
		return
	}
	existing := output.RGBAAt(x, y)
	a := float64(col.A) / 255
	inv := 1 - a
	output.SetRGBA(x, y, color.RGBA{
		R: uint8(float64(col.R)*a + float64(existing.R)*inv),
		G: uint8(float64(col.G)*a + float64(existing.G)*inv),
		B: uint8(float64(col.B)*a + float64(existing.B)*inv),
		A: 255,
	})
}

// drawLine draws a thick line between two points using Bresenham's algorithm.
func drawLine(output *image.RGBA, x1, y1, x2, y2 int, col color.RGBA, thickness int) {
	dx := x2 - x1
	dy := y2 - y1
	if dx < 0 {
		dx = -dx
	}
	if dy < 0 {
		dy = -dy
	}

	sx := 1
	if x1 > x2 {
		sx = -1
	}
	sy := 1
	if y1 > y2 {
		sy = -1
	}

	err := dx - dy

	for {
		for t := -thickness / 2; t <= thickness/2; t++ {
			for s := -thickness / 2; s <= thickness/2; s++ {
				blendAt(output, x1+s, y1+t, col)
			}
		}

		if x1 == x2 && y1 == y2 {
			break
		}

		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
}

// drawDashedLine draws a dashed line. Dashes alternate on/off every
// dashLen steps along the traversal.
func drawDashedLine(output *image.RGBA, x1, y1, x2, y2 int, col color.RGBA, thickness, dashLen int) {
	if dashLen < 1 {
		dashLen = 4
	}

	dx := x2 - x1
	dy := y2 - y1
	if dx < 0 {
		dx = -dx
	}
	if dy < 0 {
		dy = -dy
	}

	sx := 1
	if x1 > x2 {
		sx = -1
	}
	sy := 1
	if y1 > y2 {
		sy = -1
	}

	err := dx - dy
	step := 0

	for {
		if (step/dashLen)%2 == 0 {
			for t := -thickness / 2; t <= thickness/2; t++ {
				for s := -thickness / 2; s <= thickness/2; s++ {
					blendAt(output, x1+s, y1+t, col)
				}
			}
		}

		if x1 == x2 && y1 == y2 {
			break
		}

		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
		step++
	}
}

// strokePolygon draws the closed outline of a polygon.
func strokePolygon(output *image.RGBA, points []geometry.RenderPoint, col color.RGBA, thickness int) {
	n := len(points)
	if n < 2 {
		return
	}
	for i := 0; i < n; i++ {
		p1 := points[i]
		p2 := points[(i+1)%n]
		drawLine(output, int(p1.X), int(p1.Y), int(p2.X), int(p2.Y), col, thickness)
	}
}

// fillPolygon fills a polygon using a scanline algorithm, blending col
// over the pixels already present.
func fillPolygon(output *image.RGBA, points []geometry.RenderPoint, col color.RGBA) {
	n := len(points)
	if n < 3 {
		return
	}

	bounds := output.Bounds()

	minY, maxY := points[0].Y, points[0].Y
	for _, p := range points[1:] {
		if p.Y < minY {
			minY = p.Y
		}
		if p.Y > maxY {
			maxY = p.Y
		}
	}

	for y := int(minY); y <= int(maxY); y++ {
		if y < bounds.Min.Y || y >= bounds.Max.Y {
			continue
		}

		var crossings []float64
		for i := 0; i < n; i++ {
			p1 := points[i]
			p2 := points[(i+1)%n]
			if (p1.Y <= float64(y) && p2.Y > float64(y)) ||
				(p2.Y <= float64(y) && p1.Y > float64(y)) {
				t := (float64(y) - p1.Y) / (p2.Y - p1.Y)
				crossings = append(crossings, p1.X+t*(p2.X-p1.X))
			}
		}
		sort.Float64s(crossings)

		for i := 0; i+1 < len(crossings); i += 2 {
			for x := int(crossings[i]); x <= int(crossings[i+1]); x++ {
				blendAt(output, x, y, col)
			}
		}
	}
}

// drawRectOutline draws a rectangle outline with the given thickness.
func drawRectOutline(output *image.RGBA, x1, y1, x2, y2 int, col color.RGBA, thickness int) {
	for t := 0; t < thickness; t++ {
		for x := x1; x <= x2; x++ {
			blendAt(output, x, y1+t, col)
			blendAt(output, x, y2-t, col)
		}
		for y := y1; y <= y2; y++ {
			blendAt(output, x1+t, y, col)
			blendAt(output, x2-t, y, col)
		}
	}
}

// drawDashedRect draws a dashed rectangle outline. The (x+y)%4 pattern
// keeps dashes continuous around corners.
func drawDashedRect(output *image.RGBA, x1, y1, x2, y2 int, col color.RGBA) {
	for x := x1; x <= x2; x++ {
		if (x+y1)%4 < 2 {
			blendAt(output, x, y1, col)
		}
		if (x+y2)%4 < 2 {
			blendAt(output, x, y2, col)
		}
	}
	for y := y1; y <= y2; y++ {
		if (x1+y)%4 < 2 {
			blendAt(output, x1, y, col)
		}
		if (x2+y)%4 < 2 {
			blendAt(output, x2, y, col)
		}
	}
}

// drawCircle draws a filled circle or a 2px ring centered at (cx, cy).
func drawCircle(output *image.RGBA, cx, cy, r float64, col color.RGBA, filled bool) {
	minX := int(cx - r - 1)
	maxX := int(cx + r + 1)
	minY := int(cy - r - 1)
	maxY := int(cy + r + 1)

	r2 := r * r
	innerR2 := (r - 2) * (r - 2)

	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			dx := float64(x) - cx
			dy := float64(y) - cy
			dist2 := dx*dx + dy*dy
			if filled {
				if dist2 <= r2 {
					blendAt(output, x, y, col)
				}
			} else if dist2 <= r2 && dist2 >= innerR2 {
				blendAt(output, x, y, col)
			}
		}
	}
}

// dimRect blends a translucent veil over the given region.
func dimRect(output *image.RGBA, x1, y1, x2, y2 int, col color.RGBA) {
	for y := y1; y < y2; y++ {
		for x := x1; x < x2; x++ {
			blendAt(output, x, y, col)
		}
	}
}

// drawBadge draws a numeric label on a filled circular badge centered at
// (cx, cy).
func drawBadge(output *image.RGBA, label string, cx, cy int) {
	const scale = 2
	charWidth := 3 * scale
	charHeight := 5 * scale
	spacing := scale
	labelWidth := len(label)*charWidth + (len(label)-1)*spacing

	radius := float64(labelWidth)/2 + 6
	if radius < 11 {
		radius = 11
	}
	drawCircle(output, float64(cx), float64(cy), radius, badgeFill, true)

	startX := cx - labelWidth/2
	startY := cy - charHeight/2

	for i, ch := range label {
		if ch < '0' || ch > '9' {
			continue
		}
		pattern := digitPatterns[ch-'0']
		charX := startX + i*(charWidth+spacing)

		for row := 0; row < 5; row++ {
			for c := 0; c < 3; c++ {
				if (pattern[row] & (1 << (2 - c))) != 0 {
					for dy := 0; dy < scale; dy++ {
						for dx := 0; dx < scale; dx++ {
							blendAt(output, charX+c*scale+dx, startY+row*scale+dy, badgeText)
						}
					}
				}
			}
		}
	}
}
