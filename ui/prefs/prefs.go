// Package prefs provides JSON-based application preferences.
package prefs

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
)

const prefsFile = "preferences.json"

// Values are the persisted preferences. Zero values fall back to
// Defaults at load time.
type Values struct {
	LastPhotoDir      string  `json:"last_photo_dir,omitempty"`
	LastSessionDir    string  `json:"last_session_dir,omitempty"`
	ReferenceLengthMm float64 `json:"reference_length_mm,omitempty"`
	ShowMasks         bool    `json:"show_masks"`
	ShowBoxes         bool    `json:"show_boxes"`
}

// Defaults returns the out-of-the-box preference values.
func Defaults() Values {
	return Values{
		ReferenceLengthMm: 10,
		ShowMasks:         true,
		ShowBoxes:         true,
	}
}

// Prefs wraps Values with persistence under the user config dir.
type Prefs struct {
	mu     sync.RWMutex
	values Values
	path   string
}

// Load reads preferences from ~/.config/batch-gauge/preferences.json,
// returning defaults when the file is absent or unreadable.
func Load() *Prefs {
	p := &Prefs{values: Defaults()}

	configDir, err := os.UserConfigDir()
	if err != nil {
		configDir = filepath.Join(os.Getenv("HOME"), ".config")
	}
	p.path = filepath.Join(configDir, "batch-gauge", prefsFile)

	data, err := os.ReadFile(p.path)
	if err != nil {
		return p
	}
	var v Values
	if json.Unmarshal(data, &v) == nil {
		if v.ReferenceLengthMm <= 0 {
			v.ReferenceLengthMm = Defaults().ReferenceLengthMm
		}
		p.values = v
	}
	return p
}

// Save writes preferences to disk.
func (p *Prefs) Save() error {
	p.mu.RLock()
	data, err := json.MarshalIndent(p.values, "", "  ")
	p.mu.RUnlock()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(p.path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(p.path, data, 0o644)
}

// Get returns a copy of the current values.
func (p *Prefs) Get() Values {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.values
}

// Update applies a mutation to the values under lock.
func (p *Prefs) Update(fn func(*Values)) {
	p.mu.Lock()
	fn(&p.values)
	p.mu.Unlock()
}
