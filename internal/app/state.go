// Package app holds the session state shared between the window chrome
// and the annotation canvas, and the events that tie them together.
package app

import (
	"fmt"
	"log/slog"
	"os"
	"sync"

	"batch-gauge/internal/calibrate"
	"batch-gauge/internal/detection"
	"batch-gauge/internal/measure"
	"batch-gauge/internal/photo"
	"batch-gauge/internal/segment"
	"batch-gauge/internal/session"
	"batch-gauge/pkg/geometry"
)

// EventType identifies application events.
type EventType int

const (
	EventPhotoLoaded EventType = iota
	EventResultReplaced
	EventItemsChanged
	EventCalibrationChanged
	EventSelectionChanged
	EventSessionLoaded
	EventSessionSaved
	EventModified
)

// EventListener is called when an event fires.
type EventListener func(data interface{})

// State owns the detection result and calibration record for the session.
// It is the single mutable home for both; everything downstream receives
// them by value or renders from a snapshot.
type State struct {
	mu sync.RWMutex

	SessionPath string
	Modified    bool
	ItemType    string

	Photo       *photo.Photo
	Result      *detection.Result
	Calibration calibrate.Record
	SelectedID  string

	logger    *slog.Logger
	listeners map[EventType][]EventListener
}

// NewState creates an empty session state.
func NewState(logger *slog.Logger) *State {
	if logger == nil {
		logger = slog.Default()
	}
	return &State{
		logger:    logger,
		listeners: make(map[EventType][]EventListener),
	}
}

// On registers an event listener.
func (s *State) On(event EventType, listener EventListener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners[event] = append(s.listeners[event], listener)
}

// Emit triggers all listeners for the event type.
func (s *State) Emit(event EventType, data interface{}) {
	s.mu.RLock()
	listeners := s.listeners[event]
	s.mu.RUnlock()
	for _, l := range listeners {
		l(data)
	}
}

// SetModified flags the session dirty and notifies listeners.
func (s *State) SetModified(modified bool) {
	s.mu.Lock()
	s.Modified = modified
	s.mu.Unlock()
	s.Emit(EventModified, modified)
}

// LoadPhoto loads a batch photograph. On failure the current photo is
// kept and the error is reported upward.
func (s *State) LoadPhoto(path string) error {
	p, err := photo.Load(path)
	if err != nil {
		s.logger.Error("photo load failed", "path", path, "error", err)
		return err
	}

	s.mu.Lock()
	s.Photo = p
	s.mu.Unlock()

	s.logger.Info("photo loaded", "path", path, "width", p.Width, "height", p.Height)
	s.SetModified(true)
	s.Emit(EventPhotoLoaded, p)
	return nil
}

// LoadDetection reads a detection payload from disk and replaces the
// result set atomically.
func (s *State) LoadDetection(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading detection payload: %w", err)
	}
	result, err := detection.Parse(data, s.logger)
	if err != nil {
		return err
	}
	s.ReplaceResult(result)
	return nil
}

// ReplaceResult swaps in a new detection result. The previous instance
// set, selection, and derived measurements are discarded together.
func (s *State) ReplaceResult(result *detection.Result) {
	s.mu.Lock()
	s.Result = result
	s.SelectedID = ""
	if result != nil && result.ItemType != "" {
		s.ItemType = result.ItemType
	}
	calibration := s.Calibration
	s.mu.Unlock()

	// A still-valid calibration applies to the fresh items immediately.
	if result != nil && calibration.Valid() {
		s.applyCalibration(calibration)
	}

	count := 0
	if result != nil {
		count = len(result.Items)
	}
	s.logger.Info("detection result replaced", "items", count)
	s.SetModified(true)
	s.Emit(EventResultReplaced, result)
	s.Emit(EventSelectionChanged, "")
}

// Items returns a snapshot of the current item slice.
func (s *State) Items() []detection.Item {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.Result == nil {
		return nil
	}
	items := make([]detection.Item, len(s.Result.Items))
	copy(items, s.Result.Items)
	return items
}

// SelectItem updates the active selection ("" clears it).
func (s *State) SelectItem(id string) {
	s.mu.Lock()
	changed := s.SelectedID != id
	s.SelectedID = id
	s.mu.Unlock()
	if changed {
		s.Emit(EventSelectionChanged, id)
	}
}

// SetCalibration stores a completed calibration record and recomputes
// every derived measurement from it.
func (s *State) SetCalibration(rec calibrate.Record) {
	s.mu.Lock()
	s.Calibration = rec
	s.mu.Unlock()

	s.applyCalibration(rec)
	s.logger.Info("calibration applied",
		"pixels_per_mm", rec.PixelsPerMm, "reference_mm", rec.ReferenceMm)
	s.SetModified(true)
	s.Emit(EventCalibrationChanged, rec)
}

func (s *State) applyCalibration(rec calibrate.Record) {
	s.mu.Lock()
	if s.Result != nil {
		s.Result.Items = calibrate.Apply(s.Result.Items, rec)
	}
	s.mu.Unlock()
	s.Emit(EventItemsChanged, nil)
}

// SetMask replaces the mask of the item with the given id, re-deriving
// its measurements when a calibration is in force.
func (s *State) SetMask(id string, mask []geometry.NormPoint) {
	s.mu.Lock()
	if s.Result == nil {
		s.mu.Unlock()
		return
	}
	i := s.Result.Find(id)
	if i < 0 {
		s.mu.Unlock()
		return
	}
	s.Result.Items[i].Mask = mask
	rec := s.Calibration
	s.mu.Unlock()

	if rec.Valid() {
		s.applyCalibration(rec)
	} else {
		s.Emit(EventItemsChanged, nil)
	}
	s.SetModified(true)
}

// RefineSelectedMask proposes a contour-traced mask for the selected item
// and installs it.
func (s *State) RefineSelectedMask() error {
	s.mu.RLock()
	p := s.Photo
	id := s.SelectedID
	var box geometry.Box
	found := false
	if s.Result != nil && id != "" {
		if i := s.Result.Find(id); i >= 0 {
			box = s.Result.Items[i].Box
			found = true
		}
	}
	s.mu.RUnlock()

	if p == nil {
		return fmt.Errorf("refine mask: no photo loaded")
	}
	if !found {
		return fmt.Errorf("refine mask: no item selected")
	}

	mask, err := segment.RefineMask(p.Image, box)
	if err != nil {
		s.logger.Warn("mask refinement failed", "item", id, "error", err)
		return err
	}
	s.logger.Info("mask refined", "item", id, "vertices", len(mask))
	s.SetMask(id, mask)
	return nil
}

// Summary computes batch statistics over the current items.
func (s *State) Summary() measure.Summary {
	return measure.Summarize(s.Items())
}

// SaveSession writes the session to disk.
func (s *State) SaveSession(path string) error {
	s.mu.RLock()
	f := session.New(s.ItemType)
	if s.Photo != nil {
		f.PhotoPath = s.Photo.Path
	}
	f.Result = s.Result
	if s.Calibration.Valid() {
		rec := s.Calibration
		f.Calibration = &rec
	}
	s.mu.RUnlock()

	if err := f.Save(path); err != nil {
		return err
	}

	s.mu.Lock()
	s.SessionPath = path
	s.Modified = false
	s.mu.Unlock()

	s.logger.Info("session saved", "path", path)
	s.Emit(EventSessionSaved, path)
	return nil
}

// LoadSession restores a saved session: photo, detection result with any
// edited masks, and the calibration record.
func (s *State) LoadSession(path string) error {
	f, err := session.Load(path)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.SessionPath = path
	s.ItemType = f.ItemType
	s.mu.Unlock()

	if f.PhotoPath != "" {
		if err := s.LoadPhoto(f.PhotoPath); err != nil {
			return err
		}
	}
	if f.Calibration != nil {
		s.mu.Lock()
		s.Calibration = *f.Calibration
		s.mu.Unlock()
	}
	if f.Result != nil {
		s.ReplaceResult(f.Result)
	}

	s.mu.Lock()
	s.Modified = false
	s.mu.Unlock()

	s.Emit(EventSessionLoaded, path)
	return nil
}
