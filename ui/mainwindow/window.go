// Package mainwindow provides the main application window.
package mainwindow

import (
	"fmt"
	"path/filepath"
	"strconv"

	"batch-gauge/internal/app"
	"batch-gauge/internal/calibrate"
	"batch-gauge/internal/detection"
	"batch-gauge/internal/version"
	"batch-gauge/pkg/geometry"
	"batch-gauge/ui/canvas"
	"batch-gauge/ui/prefs"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"
)

const sessionExt = ".bgauge"

// MainWindow is the primary application window. It is thin chrome: display
// toggles, calibration arming, and file plumbing. All review semantics
// live in the canvas and the session state.
type MainWindow struct {
	fyne.Window
	app    fyne.App
	state  *app.State
	prefs  *prefs.Prefs
	canvas *canvas.AnnotationCanvas

	refEntry     *widget.Entry
	calibrateBtn *widget.Button
	cancelBtn    *widget.Button
	editCheck    *widget.Check
	statusBar    *widget.Label
}

// New creates the main window.
func New(fyneApp fyne.App, state *app.State, p *prefs.Prefs) *MainWindow {
	win := fyneApp.NewWindow("Batch Gauge")

	mw := &MainWindow{
		Window: win,
		app:    fyneApp,
		state:  state,
		prefs:  p,
	}

	mw.setupUI()
	mw.setupMenus()
	mw.setupEventHandlers()
	mw.setupCanvasCallbacks()

	return mw
}

// setupUI creates the main layout.
func (mw *MainWindow) setupUI() {
	mw.canvas = canvas.New()
	mw.statusBar = widget.NewLabel("No detection loaded")

	v := mw.prefs.Get()
	mw.canvas.SetShowMasks(v.ShowMasks)
	mw.canvas.SetShowBoxes(v.ShowBoxes)

	toolbar := mw.createToolbar(v)

	content := container.NewBorder(
		toolbar,                           // top
		container.NewPadded(mw.statusBar), // bottom
		nil,
		nil,
		container.NewScroll(mw.canvas),
	)
	mw.SetContent(content)
	mw.Resize(fyne.NewSize(1100, 800))
}

// createToolbar builds the toggle and calibration controls.
func (mw *MainWindow) createToolbar(v prefs.Values) fyne.CanvasObject {
	masksCheck := widget.NewCheck("Masks", func(on bool) {
		mw.canvas.SetShowMasks(on)
		mw.prefs.Update(func(v *prefs.Values) { v.ShowMasks = on })
	})
	masksCheck.SetChecked(v.ShowMasks)

	boxesCheck := widget.NewCheck("Boxes", func(on bool) {
		mw.canvas.SetShowBoxes(on)
		mw.prefs.Update(func(v *prefs.Values) { v.ShowBoxes = on })
	})
	boxesCheck.SetChecked(v.ShowBoxes)

	mw.editCheck = widget.NewCheck("Edit Mask", func(on bool) {
		mw.canvas.SetEditMode(on)
		if on {
			mw.updateStatus("Edit mode: clicks append vertices to the selected mask")
		} else {
			mw.refreshSummary()
		}
	})

	mw.refEntry = widget.NewEntry()
	mw.refEntry.SetPlaceHolder("mm")
	mw.refEntry.SetText(strconv.FormatFloat(v.ReferenceLengthMm, 'f', -1, 64))

	mw.calibrateBtn = widget.NewButton("Calibrate", mw.onStartCalibration)
	mw.cancelBtn = widget.NewButton("Cancel", mw.onCancelCalibration)
	mw.cancelBtn.Disable()

	return container.NewHBox(
		masksCheck,
		boxesCheck,
		mw.editCheck,
		widget.NewSeparator(),
		widget.NewLabel("Reference:"),
		mw.refEntry,
		mw.calibrateBtn,
		mw.cancelBtn,
	)
}

// setupMenus creates the application menus.
func (mw *MainWindow) setupMenus() {
	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("Open Photo...", mw.onOpenPhoto),
		fyne.NewMenuItem("Open Detection...", mw.onOpenDetection),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Open Session...", mw.onOpenSession),
		fyne.NewMenuItem("Save Session", mw.onSaveSession),
		fyne.NewMenuItem("Save Session As...", mw.onSaveSessionAs),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", func() { mw.app.Quit() }),
	)

	editMenu := fyne.NewMenu("Edit",
		fyne.NewMenuItem("Snap Mask to Contour", mw.onSnapMask),
		fyne.NewMenuItem("Clear Mask", mw.onClearMask),
	)

	helpMenu := fyne.NewMenu("Help",
		fyne.NewMenuItem("About", mw.onAbout),
	)

	mw.SetMainMenu(fyne.NewMainMenu(fileMenu, editMenu, helpMenu))
}

// setupEventHandlers registers for application events.
func (mw *MainWindow) setupEventHandlers() {
	mw.state.On(app.EventPhotoLoaded, func(data interface{}) {
		mw.canvas.SetPhoto(mw.state.Photo.Image)
		mw.updateStatus("Photo loaded: " + mw.state.Photo.Path)
	})

	mw.state.On(app.EventResultReplaced, func(interface{}) {
		mw.canvas.SetItems(mw.state.Items())
		mw.refreshSummary()
	})

	mw.state.On(app.EventItemsChanged, func(interface{}) {
		mw.canvas.SetItems(mw.state.Items())
		mw.refreshSummary()
	})

	mw.state.On(app.EventCalibrationChanged, func(data interface{}) {
		if rec, ok := data.(calibrate.Record); ok {
			mw.canvas.SetCalibrationRecord(rec)
		}
		mw.refreshSummary()
	})

	mw.state.On(app.EventSelectionChanged, func(data interface{}) {
		if id, ok := data.(string); ok {
			mw.canvas.SetSelected(id)
		}
	})

	mw.state.On(app.EventSessionLoaded, func(data interface{}) {
		if path, ok := data.(string); ok {
			mw.SetTitle("Batch Gauge - " + filepath.Base(path))
		}
		mw.canvas.SetCalibrationRecord(mw.state.Calibration)
		mw.refreshSummary()
	})

	mw.state.On(app.EventModified, func(data interface{}) {
		if modified, ok := data.(bool); ok && modified {
			title := mw.Title()
			if len(title) > 0 && title[len(title)-1] != '*' {
				mw.SetTitle(title + " *")
			}
		}
	})
}

// setupCanvasCallbacks wires canvas interactions into the session state.
func (mw *MainWindow) setupCanvasCallbacks() {
	mw.canvas.OnItemClick(func(item detection.Item) {
		mw.state.SelectItem(item.ID)
		mw.showItemStatus(item)
	})

	mw.canvas.OnBackgroundClick(func() {
		mw.state.SelectItem("")
		mw.refreshSummary()
	})

	mw.canvas.OnCalibrationUpdate(func(rec calibrate.Record) {
		mw.state.SetCalibration(rec)
		mw.calibrateBtn.Enable()
		mw.cancelBtn.Disable()
	})

	mw.canvas.OnMaskUpdate(func(id string, mask []geometry.NormPoint) {
		mw.state.SetMask(id, mask)
	})

	mw.canvas.OnHoverChange(func(id string) {
		if id == "" {
			return
		}
		items := mw.state.Items()
		if i := detection.Find(items, id); i >= 0 {
			mw.showItemStatus(items[i])
		}
	})
}

func (mw *MainWindow) updateStatus(text string) {
	mw.statusBar.SetText(text)
}

// refreshSummary shows the batch statistics line.
func (mw *MainWindow) refreshSummary() {
	mw.updateStatus(mw.state.Summary().String())
}

// showItemStatus shows a single item's geometry and measurements.
func (mw *MainWindow) showItemStatus(item detection.Item) {
	label := item.Label
	if label == "" {
		label = "item"
	}
	if item.Measured() {
		mw.updateStatus(fmt.Sprintf("%s: %.1f x %.1f mm (confidence %.2f)",
			label, item.WidthMm, item.HeightMm, item.Confidence))
		return
	}
	mw.updateStatus(fmt.Sprintf("%s: not calibrated (confidence %.2f)",
		label, item.Confidence))
}

// Calibration controls

func (mw *MainWindow) onStartCalibration() {
	refMm, err := strconv.ParseFloat(mw.refEntry.Text, 64)
	if err != nil {
		dialog.ShowError(fmt.Errorf("reference length %q: %w", mw.refEntry.Text, err), mw.Window)
		return
	}
	if err := mw.canvas.StartCalibration(refMm); err != nil {
		dialog.ShowError(err, mw.Window)
		return
	}
	mw.prefs.Update(func(v *prefs.Values) { v.ReferenceLengthMm = refMm })
	mw.calibrateBtn.Disable()
	mw.cancelBtn.Enable()
	mw.updateStatus("Calibrating: click both ends of the reference object")
}

func (mw *MainWindow) onCancelCalibration() {
	mw.canvas.CancelCalibration()
	mw.calibrateBtn.Enable()
	mw.cancelBtn.Disable()
	mw.refreshSummary()
}

// Mask editing actions

func (mw *MainWindow) onSnapMask() {
	if err := mw.state.RefineSelectedMask(); err != nil {
		dialog.ShowError(err, mw.Window)
	}
}

func (mw *MainWindow) onClearMask() {
	id := mw.state.SelectedID
	if id == "" {
		mw.updateStatus("Select an item to clear its mask")
		return
	}
	items := mw.state.Items()
	if i := detection.Find(items, id); i >= 0 {
		cleared := detection.ClearMask(items[i])
		mw.state.SetMask(id, cleared.Mask)
	}
}

// File actions

func (mw *MainWindow) onOpenPhoto() {
	fd := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		reader.Close()
		path := reader.URI().Path()
		mw.prefs.Update(func(v *prefs.Values) { v.LastPhotoDir = filepath.Dir(path) })
		if err := mw.state.LoadPhoto(path); err != nil {
			dialog.ShowError(err, mw.Window)
		}
	}, mw.Window)
	fd.SetFilter(storage.NewExtensionFileFilter(
		[]string{".png", ".jpg", ".jpeg", ".tif", ".tiff", ".bmp", ".webp"}))
	if loc := listableDir(mw.prefs.Get().LastPhotoDir); loc != nil {
		fd.SetLocation(loc)
	}
	fd.Show()
}

func (mw *MainWindow) onOpenDetection() {
	fd := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		reader.Close()
		path := reader.URI().Path()
		if err := mw.state.LoadDetection(path); err != nil {
			dialog.ShowError(err, mw.Window)
		}
	}, mw.Window)
	fd.SetFilter(storage.NewExtensionFileFilter([]string{".json"}))
	fd.Show()
}

func (mw *MainWindow) onOpenSession() {
	fd := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		reader.Close()
		path := reader.URI().Path()
		mw.prefs.Update(func(v *prefs.Values) { v.LastSessionDir = filepath.Dir(path) })
		if err := mw.state.LoadSession(path); err != nil {
			dialog.ShowError(err, mw.Window)
		}
	}, mw.Window)
	fd.SetFilter(storage.NewExtensionFileFilter([]string{sessionExt}))
	if loc := listableDir(mw.prefs.Get().LastSessionDir); loc != nil {
		fd.SetLocation(loc)
	}
	fd.Show()
}

func (mw *MainWindow) onSaveSession() {
	if mw.state.SessionPath == "" {
		mw.onSaveSessionAs()
		return
	}
	if err := mw.state.SaveSession(mw.state.SessionPath); err != nil {
		dialog.ShowError(err, mw.Window)
	}
}

func (mw *MainWindow) onSaveSessionAs() {
	fd := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		writer.Close()
		path := writer.URI().Path()
		if filepath.Ext(path) != sessionExt {
			path += sessionExt
		}
		mw.prefs.Update(func(v *prefs.Values) { v.LastSessionDir = filepath.Dir(path) })
		if err := mw.state.SaveSession(path); err != nil {
			dialog.ShowError(err, mw.Window)
		}
	}, mw.Window)
	fd.SetFileName("review" + sessionExt)
	if loc := listableDir(mw.prefs.Get().LastSessionDir); loc != nil {
		fd.SetLocation(loc)
	}
	fd.Show()
}

func (mw *MainWindow) onAbout() {
	dialog.ShowInformation("About Batch Gauge",
		fmt.Sprintf("Batch Gauge v%s\n\n"+
			"Measure batches of small items from a photograph.\n\n"+
			"Built: %s\n"+
			"Commit: %s",
			version.Version, version.BuildTime, version.GitCommit),
		mw.Window)
}

// listableDir converts a directory path into a ListableURI, or nil.
func listableDir(path string) fyne.ListableURI {
	if path == "" {
		return nil
	}
	listable, err := storage.ListerForURI(storage.NewFileURI(path))
	if err != nil {
		return nil
	}
	return listable
}
