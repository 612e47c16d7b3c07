package canvas

import (
	"image"

	"fyne.io/fyne/v2"
	fynecanvas "fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"batch-gauge/internal/calibrate"
	"batch-gauge/internal/detection"
	"batch-gauge/pkg/geometry"
)

// AnnotationCanvas is the interactive canvas. It owns hover state and the
// in-progress calibration session; the detection result, calibration
// record, selection, and mode flags are supplied by the chrome and
// reported back through callbacks.
type AnnotationCanvas struct {
	widget.BaseWidget

	raster *fynecanvas.Raster

	photo          image.Image
	photoW, photoH int

	items      []detection.Item
	flags      DisplayFlags
	hoveredID  string
	selectedID string
	editMode   bool

	session *calibrate.Session
	record  calibrate.Record

	cursor    geometry.RenderPoint
	hasCursor bool

	onItemClick         func(detection.Item)
	onBackgroundClick   func()
	onCalibrationUpdate func(calibrate.Record)
	onMaskUpdate        func(id string, mask []geometry.NormPoint)
	onHoverChange       func(id string)
}

var _ fyne.Tappable = (*AnnotationCanvas)(nil)
var _ desktop.Hoverable = (*AnnotationCanvas)(nil)

// New creates an empty annotation canvas.
func New() *AnnotationCanvas {
	c := &AnnotationCanvas{
		flags:   DisplayFlags{ShowMasks: true, ShowBoxes: true},
		session: calibrate.NewSession(),
	}
	c.raster = fynecanvas.NewRaster(c.draw)
	c.raster.SetMinSize(fyne.NewSize(480, 360))
	c.ExtendBaseWidget(c)
	return c
}

// CreateRenderer implements fyne.Widget.
func (c *AnnotationCanvas) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(c.raster)
}

// SetPhoto installs the batch photograph (nil clears it).
func (c *AnnotationCanvas) SetPhoto(img image.Image) {
	c.photo = img
	c.photoW, c.photoH = 0, 0
	if img != nil {
		b := img.Bounds()
		c.photoW, c.photoH = b.Dx(), b.Dy()
	}
	c.Refresh()
}

// SetItems replaces the displayed item instances.
func (c *AnnotationCanvas) SetItems(items []detection.Item) {
	c.items = items
	if c.hoveredID != "" && detection.Find(items, c.hoveredID) < 0 {
		c.setHovered("")
	}
	c.Refresh()
}

// SetShowMasks toggles mask overlay drawing.
func (c *AnnotationCanvas) SetShowMasks(show bool) {
	c.flags.ShowMasks = show
	c.Refresh()
}

// SetShowBoxes toggles bounding-box overlay drawing.
func (c *AnnotationCanvas) SetShowBoxes(show bool) {
	c.flags.ShowBoxes = show
	c.Refresh()
}

// SetSelected updates the active selection ("" clears it).
func (c *AnnotationCanvas) SetSelected(id string) {
	c.selectedID = id
	c.Refresh()
}

// SetEditMode switches clicks between selection and vertex appending.
func (c *AnnotationCanvas) SetEditMode(on bool) {
	c.editMode = on
	c.Refresh()
}

// SetCalibrationRecord installs a completed calibration line, e.g. from a
// restored session.
func (c *AnnotationCanvas) SetCalibrationRecord(rec calibrate.Record) {
	c.record = rec
	c.Refresh()
}

// StartCalibration arms a two-click pass for the given reference length.
func (c *AnnotationCanvas) StartCalibration(referenceMm float64) error {
	if err := c.session.Arm(referenceMm); err != nil {
		return err
	}
	c.Refresh()
	return nil
}

// CancelCalibration abandons an in-progress pass.
func (c *AnnotationCanvas) CancelCalibration() {
	c.session.Cancel()
	c.Refresh()
}

// Calibrating reports whether a calibration pass is in progress.
func (c *AnnotationCanvas) Calibrating() bool {
	return c.session.Active()
}

// OnItemClick registers the callback fired when a click resolves to an
// item outside calibration and edit modes.
func (c *AnnotationCanvas) OnItemClick(fn func(detection.Item)) {
	c.onItemClick = fn
}

// OnBackgroundClick registers the callback fired when a click hits no item.
func (c *AnnotationCanvas) OnBackgroundClick(fn func()) {
	c.onBackgroundClick = fn
}

// OnCalibrationUpdate registers the callback fired once per completed
// calibration pass.
func (c *AnnotationCanvas) OnCalibrationUpdate(fn func(calibrate.Record)) {
	c.onCalibrationUpdate = fn
}

// OnMaskUpdate registers the callback fired after each vertex append.
func (c *AnnotationCanvas) OnMaskUpdate(fn func(id string, mask []geometry.NormPoint)) {
	c.onMaskUpdate = fn
}

// OnHoverChange registers the callback fired when the hovered item changes.
func (c *AnnotationCanvas) OnHoverChange(fn func(id string)) {
	c.onHoverChange = fn
}

// surface derives the drawing surface for the current widget size.
func (c *AnnotationCanvas) surface() geometry.Surface {
	return geometry.FitWidth(float64(c.Size().Width), float64(c.photoW), float64(c.photoH))
}

// draw is the raster function: a pure render of the current scene.
func (c *AnnotationCanvas) draw(w, h int) image.Image {
	scene := Scene{
		Photo:      c.photo,
		PhotoW:     c.photoW,
		PhotoH:     c.photoH,
		Surface:    geometry.FitWidth(float64(w), float64(c.photoW), float64(c.photoH)),
		Items:      c.items,
		Flags:      c.flags,
		HoveredID:  c.hoveredID,
		SelectedID: c.selectedID,
		EditMode:   c.editMode,
		Record:     c.record,
	}
	if c.session.Active() {
		scene.Calibrating.Active = true
		if first, ok := c.session.FirstPoint(); ok {
			// Event coordinates arrive in widget points; rescale to
			// raster pixels so the preview tracks the cursor.
			k := pixelScale(w, c.Size().Width)
			scene.Calibrating.First = geometry.RenderPoint{X: first.X * k, Y: first.Y * k}
			scene.Calibrating.HasFirst = true
			if c.hasCursor {
				scene.Calibrating.Cursor = geometry.RenderPoint{X: c.cursor.X * k, Y: c.cursor.Y * k}
				scene.Calibrating.HasCursor = true
			}
		}
	} else if c.record.Valid() {
		k := pixelScale(w, c.Size().Width)
		scene.Record.Start = geometry.RenderPoint{X: c.record.Start.X * k, Y: c.record.Start.Y * k}
		scene.Record.End = geometry.RenderPoint{X: c.record.End.X * k, Y: c.record.End.Y * k}
	}
	return Render(scene, w, h)
}

func pixelScale(rasterWidth int, widgetWidth float32) float64 {
	if widgetWidth <= 0 {
		return 1
	}
	return float64(rasterWidth) / float64(widgetWidth)
}

// Tapped routes a click to calibration, mask editing, or hit testing
// depending on the active mode.
func (c *AnnotationCanvas) Tapped(ev *fyne.PointEvent) {
	p := geometry.RenderPoint{X: float64(ev.Position.X), Y: float64(ev.Position.Y)}
	s := c.surface()

	if c.session.Active() {
		rec, done := c.session.Click(p, s)
		if done {
			c.record = rec
			if c.onCalibrationUpdate != nil {
				c.onCalibrationUpdate(rec)
			}
		}
		c.Refresh()
		return
	}

	if c.editMode && c.selectedID != "" {
		i := detection.Find(c.items, c.selectedID)
		if i < 0 {
			return
		}
		edited := detection.AppendVertex(c.items[i], p, s)
		c.items[i] = edited
		if c.onMaskUpdate != nil {
			c.onMaskUpdate(edited.ID, edited.Mask)
		}
		c.Refresh()
		return
	}

	if item, ok := detection.ItemAt(p, c.items, s); ok {
		if c.onItemClick != nil {
			c.onItemClick(item)
		}
	} else if c.onBackgroundClick != nil {
		c.onBackgroundClick()
	}
	c.Refresh()
}

// MouseIn implements desktop.Hoverable.
func (c *AnnotationCanvas) MouseIn(ev *desktop.MouseEvent) {
	c.MouseMoved(ev)
}

// MouseMoved tracks the hovered item and the calibration preview cursor.
func (c *AnnotationCanvas) MouseMoved(ev *desktop.MouseEvent) {
	p := geometry.RenderPoint{X: float64(ev.Position.X), Y: float64(ev.Position.Y)}

	if c.session.Active() {
		c.cursor = p
		c.hasCursor = true
		c.Refresh()
		return
	}

	id := ""
	if i := detection.IndexAt(p, c.items, c.surface()); i >= 0 {
		id = c.items[i].ID
	}
	if id != c.hoveredID {
		c.setHovered(id)
		c.Refresh()
	}
}

// MouseOut clears hover state when the pointer leaves the canvas.
func (c *AnnotationCanvas) MouseOut() {
	c.hasCursor = false
	if c.hoveredID != "" {
		c.setHovered("")
	}
	c.Refresh()
}

func (c *AnnotationCanvas) setHovered(id string) {
	c.hoveredID = id
	if c.onHoverChange != nil {
		c.onHoverChange(id)
	}
}
