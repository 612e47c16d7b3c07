// Package session provides save/restore of a review session.
package session

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"batch-gauge/internal/calibrate"
	"batch-gauge/internal/detection"
)

// File is the JSON structure of a .bgauge session file. It captures
// everything needed to resume a review: the photo reference, the detection
// result including edited masks and derived measurements, and the last
// calibration record.
type File struct {
	Version  int       `json:"version"`
	Created  time.Time `json:"created"`
	Modified time.Time `json:"modified"`

	PhotoPath string `json:"photo,omitempty"`
	ItemType  string `json:"item_type,omitempty"`

	Result      *detection.Result `json:"result,omitempty"`
	Calibration *calibrate.Record `json:"calibration,omitempty"`
}

// New creates an empty session file.
func New(itemType string) *File {
	now := time.Now()
	return &File{
		Version:  1,
		Created:  now,
		Modified: now,
		ItemType: itemType,
	}
}

// Load reads a session file.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading session: %w", err)
	}
	var f File
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decoding session %s: %w", path, err)
	}
	return &f, nil
}

// Save writes the session file, stamping the modification time.
func (f *File) Save(path string) error {
	f.Modified = time.Now()
	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding session: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}
