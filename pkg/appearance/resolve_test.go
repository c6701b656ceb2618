package appearance

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chazu/lignin-panel/pkg/panel"
)

var allBanded = [4]bool{true, true, true, true}

func writeTexture(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte("not really a png"), 0o644))
	return path
}

func TestResolveDefaults(t *testing.T) {
	m := Resolve(DefaultSettings(), allBanded)

	assert.Equal(t, Flat(Gray), m[panel.Top])
	assert.Equal(t, Flat(Gray), m[panel.Bottom])
	for _, s := range panel.Sides {
		assert.Equal(t, Flat(White), m[panel.SideRole(s)], "side %s", s)
	}
	assert.Len(t, m, len(panel.FaceRoles))
}

func TestResolveFrontTexture(t *testing.T) {
	tex := writeTexture(t, "oak.png")
	s := DefaultSettings()
	s.FrontTexture = "  " + tex + "  "

	m := Resolve(s, allBanded)
	top := m[panel.Top]
	require.True(t, top.IsTextured())
	assert.Equal(t, tex, top.Texture)
	assert.Equal(t, Gray, top.Color, "fallback stays the front color")
	assert.Equal(t, White, top.Tint())
}

func TestResolveBackMirrorsFront(t *testing.T) {
	tex := writeTexture(t, "walnut.jpg")

	s := DefaultSettings()
	s.FrontTexture = tex
	s.BackMirrorsFront = true
	m := Resolve(s, allBanded)
	assert.Equal(t, m[panel.Top], m[panel.Bottom])

	s.BackMirrorsFront = false
	m = Resolve(s, allBanded)
	assert.Equal(t, Flat(s.MissingColor), m[panel.Bottom])
	assert.True(t, m[panel.Top].IsTextured())
}

func TestResolveTextureFallback(t *testing.T) {
	var buf bytes.Buffer
	r := &Resolver{Checker: FileChecker{}, Log: zerolog.New(&buf)}

	s := DefaultSettings()
	s.FrontTexture = filepath.Join(t.TempDir(), "missing.png")
	s.BandingTexture = filepath.Join(t.TempDir(), "missing-abs.png")

	m := r.Resolve(s, allBanded)
	assert.Equal(t, Flat(s.FrontColor), m[panel.Top])
	for _, side := range panel.Sides {
		assert.Equal(t, Flat(s.BandingColor), m[panel.SideRole(side)])
	}
	assert.Contains(t, buf.String(), "texture not found")
	assert.Contains(t, buf.String(), `"level":"info"`)
}

func TestResolveDirectoryIsNotATexture(t *testing.T) {
	s := DefaultSettings()
	s.BandingTexture = t.TempDir()

	m := Resolve(s, allBanded)
	assert.False(t, m[panel.RoleL1].IsTextured())
}

func TestResolveDisabledSideNeverTextured(t *testing.T) {
	tex := writeTexture(t, "abs.png")
	s := DefaultSettings()
	s.BandingTexture = tex

	banding := [4]bool{true, false, true, false}
	m := Resolve(s, banding)
	for _, side := range panel.Sides {
		got := m[panel.SideRole(side)]
		if banding[side] {
			assert.Equal(t, Textured(tex, s.BandingColor), got, "side %s", side)
		} else {
			assert.Equal(t, Flat(s.MissingColor), got, "side %s", side)
		}
	}
}

func TestResolveSidesAreIndependent(t *testing.T) {
	// A checker that only accepts the texture for the first two lookups
	// simulates the file disappearing between sides.
	calls := 0
	r := &Resolver{Checker: CheckerFunc(func(string) bool {
		calls++
		return calls <= 2
	})}
	s := DefaultSettings()
	s.FrontTexture = "front.png"
	s.BandingTexture = "abs.png"

	m := r.Resolve(s, allBanded)
	assert.True(t, m[panel.Top].IsTextured())
	assert.True(t, m[panel.RoleL1].IsTextured())
	assert.False(t, m[panel.RoleL2].IsTextured())
	assert.Equal(t, Flat(s.BandingColor), m[panel.RoleW2])
}

func TestResolveToggleChangesOnlyThatSide(t *testing.T) {
	s := DefaultSettings()
	for mask := 0; mask < 16; mask++ {
		var flags [4]bool
		for i := range flags {
			flags[i] = mask&(1<<i) != 0
		}
		before := Resolve(s, flags)
		for _, side := range panel.Sides {
			toggled := flags
			toggled[side] = !toggled[side]
			after := Resolve(s, toggled)
			for _, role := range panel.FaceRoles {
				if role == panel.SideRole(side) {
					assert.NotEqual(t, before[role], after[role])
					continue
				}
				assert.Equal(t, before[role], after[role], "mask %d toggle %s role %s", mask, side, role)
			}
		}
	}
}

func TestColorClampAndHex(t *testing.T) {
	tests := []struct {
		in   Color
		want Color
		hex  string
	}{
		{Color{0.5, 0.5, 0.5}, Color{0.5, 0.5, 0.5}, "#808080"},
		{Color{-1, 2, 0.2}, Color{0, 1, 0.2}, "#00FF33"},
		{White, White, "#FFFFFF"},
	}
	for _, tt := range tests {
		got := tt.in.Clamp()
		assert.Equal(t, tt.want, got)
		assert.Equal(t, tt.hex, got.Hex())
	}
	assert.Equal(t, Neutral, ParseColor([]float64{1}))
	assert.Equal(t, Color{1, 0, 0}, ParseColor([]float64{3, -3, 0, 1}))
}
