// Package calibrate implements the two-click reference-length protocol
// that converts a known physical length into a pixels-per-millimeter
// factor, and the derived per-item measurements that follow from it.
package calibrate

import (
	"errors"
	"fmt"
	"math"

	"batch-gauge/pkg/geometry"
)

// Phase is the calibration protocol state.
type Phase int

const (
	// PhaseInactive routes canvas clicks to selection instead.
	PhaseInactive Phase = iota
	// PhaseArmed awaits the first reference click.
	PhaseArmed
	// PhaseAwaitingSecond awaits the closing reference click.
	PhaseAwaitingSecond
)

func (p Phase) String() string {
	switch p {
	case PhaseInactive:
		return "inactive"
	case PhaseArmed:
		return "armed"
	case PhaseAwaitingSecond:
		return "awaiting second point"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// ErrBadReferenceLength is returned when arming with a reference length
// that is not a positive finite number. The guard lives here so that the
// pixels-per-mm division can never see a degenerate denominator.
var ErrBadReferenceLength = errors.New("reference length must be a positive finite number of millimeters")

// Record is the published outcome of a completed calibration pass.
//
// Start and End are kept in render space purely for overlay redraw; they
// take no part in computation after derivation. The capture surface is
// retained so measurement application re-runs identically whenever
// PixelsPerMm changes.
type Record struct {
	ReferenceMm float64              `json:"reference_mm"`
	PixelsPerMm float64              `json:"pixels_per_mm"`
	Start       geometry.RenderPoint `json:"start"`
	End         geometry.RenderPoint `json:"end"`
	Surface     geometry.Surface     `json:"surface"`
}

// Valid reports whether the record holds a usable scale factor.
func (r Record) Valid() bool {
	return r.PixelsPerMm > 0 && !math.IsInf(r.PixelsPerMm, 0) && r.Surface.Valid()
}

// Session is the one-shot two-click state machine. All transitions are
// synchronous; there is no background work to cancel, only state to reset.
type Session struct {
	phase       Phase
	referenceMm float64
	first       geometry.RenderPoint
}

// NewSession returns a session in the inactive phase.
func NewSession() *Session {
	return &Session{}
}

// Phase returns the current protocol phase.
func (s *Session) Phase() Phase { return s.phase }

// Active reports whether a calibration pass is in progress.
func (s *Session) Active() bool { return s.phase != PhaseInactive }

// Arm starts a pass for the given reference length, clearing any buffered
// click. Arming with a non-positive or non-finite length is rejected and
// leaves the session inactive.
func (s *Session) Arm(referenceMm float64) error {
	if referenceMm <= 0 || math.IsNaN(referenceMm) || math.IsInf(referenceMm, 0) {
		s.reset()
		return fmt.Errorf("arming calibration: %w", ErrBadReferenceLength)
	}
	s.phase = PhaseArmed
	s.referenceMm = referenceMm
	s.first = geometry.RenderPoint{}
	return nil
}

// FirstPoint returns the buffered first click while awaiting the second.
func (s *Session) FirstPoint() (geometry.RenderPoint, bool) {
	if s.phase != PhaseAwaitingSecond {
		return geometry.RenderPoint{}, false
	}
	return s.first, true
}

// Click feeds a render-space click into the protocol. The second click
// resolves the pass: the returned record carries the derived
// pixels-per-mm factor and the session drops back to inactive (one-shot).
// done is false until resolution.
func (s *Session) Click(p geometry.RenderPoint, surface geometry.Surface) (rec Record, done bool) {
	switch s.phase {
	case PhaseArmed:
		s.first = p
		s.phase = PhaseAwaitingSecond
		return Record{}, false
	case PhaseAwaitingSecond:
		rec = Record{
			ReferenceMm: s.referenceMm,
			PixelsPerMm: s.first.Distance(p) / s.referenceMm,
			Start:       s.first,
			End:         p,
			Surface:     surface,
		}
		s.reset()
		return rec, true
	default:
		return Record{}, false
	}
}

// Cancel abandons the pass and discards any buffered point.
func (s *Session) Cancel() {
	s.reset()
}

func (s *Session) reset() {
	s.phase = PhaseInactive
	s.referenceMm = 0
	s.first = geometry.RenderPoint{}
}
