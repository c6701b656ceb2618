// Package prefs holds the host-wide preferences of the panel add-in:
// the largest panel length and width a user may model.
package prefs

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/titanous/json5"

	"github.com/chazu/lignin-panel/pkg/panel"
)

// DefaultMaxMM is the default bound for both panel length and width.
const DefaultMaxMM = 3000.0

// ErrOutOfBounds is returned by Check when a dimension exceeds its bound.
var ErrOutOfBounds = errors.New("prefs: dimension out of bounds")

// Preferences are the add-in preferences. Lengths are mm.
type Preferences struct {
	MaxLengthMM float64 `json:"MaxLengthMM"`
	MaxWidthMM  float64 `json:"MaxWidthMM"`
}

// Default returns the preferences used when nothing is stored.
func Default() Preferences {
	return Preferences{MaxLengthMM: DefaultMaxMM, MaxWidthMM: DefaultMaxMM}
}

// normalize replaces unset or non-positive bounds with the defaults.
func (p Preferences) normalize() Preferences {
	if p.MaxLengthMM <= 0 {
		p.MaxLengthMM = DefaultMaxMM
	}
	if p.MaxWidthMM <= 0 {
		p.MaxWidthMM = DefaultMaxMM
	}
	return p
}

// Check reports every dimension of cfg above its bound.
func (p Preferences) Check(cfg panel.Config) error {
	p = p.normalize()
	var errs []error
	if cfg.Length > p.MaxLengthMM {
		errs = append(errs, fmt.Errorf("%w: length %.2fmm exceeds %.2fmm", ErrOutOfBounds, cfg.Length, p.MaxLengthMM))
	}
	if cfg.Width > p.MaxWidthMM {
		errs = append(errs, fmt.Errorf("%w: width %.2fmm exceeds %.2fmm", ErrOutOfBounds, cfg.Width, p.MaxWidthMM))
	}
	return errors.Join(errs...)
}

// DefaultDir returns the preferences directory, ~/.lignin-panel.
func DefaultDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".lignin-panel")
}

// DefaultPath returns the default preferences file path.
func DefaultPath() string {
	return filepath.Join(DefaultDir(), "prefs.json")
}

// Save writes p to path as indented JSON, creating parent directories.
func Save(path string, p Preferences) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("prefs: %w", err)
	}
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("prefs: encode: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// Load reads preferences from path. The file may use JSON5 syntax such as
// comments and trailing commas. A missing file yields Default with no
// error; missing or non-positive bounds take their defaults.
func Load(path string) (Preferences, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return Preferences{}, fmt.Errorf("prefs: %w", err)
	}
	var p Preferences
	if err := json5.Unmarshal(data, &p); err != nil {
		return Preferences{}, fmt.Errorf("prefs: parse %s: %w", path, err)
	}
	return p.normalize(), nil
}
