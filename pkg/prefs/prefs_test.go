package prefs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chazu/lignin-panel/pkg/panel"
)

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "prefs.json")

	want := Preferences{MaxLengthMM: 2800, MaxWidthMM: 2070}
	require.NoError(t, Save(path, want))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestLoadMissingFile(t *testing.T) {
	got, err := Load(filepath.Join(t.TempDir(), "nonexistent", "prefs.json"))
	require.NoError(t, err)
	assert.Equal(t, Default(), got)
}

func TestLoadJSON5(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.json")
	data := `{
	// sheet size of the saw
	"MaxLengthMM": 2800,
	"MaxWidthMM": 2070,
}`
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, Preferences{MaxLengthMM: 2800, MaxWidthMM: 2070}, got)
}

func TestLoadFillsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"MaxLengthMM": 1200, "MaxWidthMM": -5}`), 0644))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 1200.0, got.MaxLengthMM)
	assert.Equal(t, DefaultMaxMM, got.MaxWidthMM)
}

func TestLoadInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"MaxLengthMM": `), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestCheck(t *testing.T) {
	p := Preferences{MaxLengthMM: 2800, MaxWidthMM: 2070}

	tests := []struct {
		name    string
		length  float64
		width   float64
		wantErr bool
	}{
		{"within", 200, 400, false},
		{"at bound", 2800, 2070, false},
		{"too long", 2801, 400, true},
		{"too wide", 200, 2100, true},
		{"both", 5000, 5000, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := p.Check(panel.Config{Length: tt.length, Width: tt.width, Thickness: 18})
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrOutOfBounds)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCheckZeroValueUsesDefaults(t *testing.T) {
	var p Preferences
	assert.NoError(t, p.Check(panel.Config{Length: 3000, Width: 3000}))
	assert.ErrorIs(t, p.Check(panel.Config{Length: 3001, Width: 10}), ErrOutOfBounds)
}
