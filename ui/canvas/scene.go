// Package canvas provides the interactive annotation canvas: overlay
// rendering of detected items on a batch photograph, hover/selection hit
// testing, two-click calibration capture, and mask vertex editing.
package canvas

import (
	"image"
	"image/color"

	"batch-gauge/internal/calibrate"
	"batch-gauge/internal/detection"
	"batch-gauge/pkg/geometry"
)

// DisplayFlags are the overlay visibility toggles supplied by the chrome.
type DisplayFlags struct {
	ShowMasks bool
	ShowBoxes bool
}

// CalibrationOverlay describes an in-progress calibration pass for the
// render pipeline: the buffered click (if any) and the live cursor used
// to preview the reference line.
type CalibrationOverlay struct {
	Active    bool
	First     geometry.RenderPoint
	HasFirst  bool
	Cursor    geometry.RenderPoint
	HasCursor bool
}

// Scene is everything one frame is a function of. The render pipeline
// consumes it read-only; a new frame means a new Scene value.
type Scene struct {
	Photo      image.Image
	PhotoW     int
	PhotoH     int
	Surface    geometry.Surface
	Items      []detection.Item
	Flags      DisplayFlags
	HoveredID  string
	SelectedID string
	EditMode   bool

	// Completed calibration line, frozen in capture-time render space.
	Record calibrate.Record

	Calibrating CalibrationOverlay
}

// Overlay palette.
var (
	maskFill      = color.RGBA{R: 34, G: 197, B: 94, A: 96}
	maskStroke    = color.RGBA{R: 22, G: 163, B: 74, A: 255}
	hoverFill     = color.RGBA{R: 74, G: 222, B: 128, A: 140}
	hoverStroke   = color.RGBA{R: 134, G: 239, B: 172, A: 255}
	selectFill    = color.RGBA{R: 59, G: 130, B: 246, A: 128}
	selectStroke  = color.RGBA{R: 37, G: 99, B: 235, A: 255}
	strokeHalo    = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	boxStroke     = color.RGBA{R: 22, G: 163, B: 74, A: 255}
	handleFill    = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	handleStroke  = color.RGBA{R: 37, G: 99, B: 235, A: 255}
	calibStroke   = color.RGBA{R: 245, G: 158, B: 11, A: 255}
	dimVeil       = color.RGBA{R: 0, G: 0, B: 0, A: 110}
	badgeFill     = color.RGBA{R: 17, G: 24, B: 39, A: 210}
	badgeText     = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	blankBackdrop = color.RGBA{R: 24, G: 24, B: 27, A: 255}
)
