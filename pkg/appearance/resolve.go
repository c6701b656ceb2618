package appearance

import (
	"github.com/rs/zerolog"

	"github.com/chazu/lignin-panel/pkg/panel"
)

// Settings are the appearance properties of a panel feature.
type Settings struct {
	FrontColor       Color  `json:"front_color"`
	FrontTexture     string `json:"front_texture"`
	BandingColor     Color  `json:"banding_color"`
	BandingTexture   string `json:"banding_texture"`
	MissingColor     Color  `json:"missing_color"`
	BackMirrorsFront bool   `json:"back_mirrors_front"`
}

// DefaultSettings returns a gray face, white banding and red for missing
// banding, with the back mirroring the front.
func DefaultSettings() Settings {
	return Settings{
		FrontColor:       Gray,
		BandingColor:     White,
		MissingColor:     Red,
		BackMirrorsFront: true,
	}
}

// Map is the resolved appearance of every face role.
type Map map[panel.FaceRole]Appearance

// Resolver turns Settings into a Map. The zero Resolver checks textures on
// the filesystem and does not log.
type Resolver struct {
	Checker TextureChecker
	Log     zerolog.Logger
}

// NewResolver returns a filesystem-backed resolver logging to log.
func NewResolver(log zerolog.Logger) *Resolver {
	return &Resolver{Checker: FileChecker{}, Log: log}
}

// Resolve applies the appearance rules:
//   - top shows the front texture if it exists, else the front color;
//   - bottom mirrors top exactly, or shows the missing color;
//   - a banded side shows the banding texture if it exists, else the
//     banding color; an unbanded side always shows the missing color.
//
// Missing texture files fall back to the color and are never errors.
func (r *Resolver) Resolve(s Settings, banding [4]bool) Map {
	m := make(Map, len(panel.FaceRoles))

	m[panel.Top] = r.pick(panel.Top, s.FrontTexture, s.FrontColor)
	if s.BackMirrorsFront {
		m[panel.Bottom] = m[panel.Top]
	} else {
		m[panel.Bottom] = Flat(s.MissingColor)
	}

	for _, side := range panel.Sides {
		role := panel.SideRole(side)
		if !banding[side] {
			m[role] = Flat(s.MissingColor)
			continue
		}
		m[role] = r.pick(role, s.BandingTexture, s.BandingColor)
	}
	return m
}

func (r *Resolver) pick(role panel.FaceRole, texture string, fallback Color) Appearance {
	texture = CleanPath(texture)
	if texture == "" {
		return Flat(fallback)
	}
	if r.checker().Exists(texture) {
		return Textured(texture, fallback)
	}
	r.Log.Info().
		Str("role", role.String()).
		Str("texture", texture).
		Msg("texture not found, using fallback color")
	return Flat(fallback)
}

func (r *Resolver) checker() TextureChecker {
	if r.Checker == nil {
		return FileChecker{}
	}
	return r.Checker
}

// Resolve resolves s against the filesystem without logging.
func Resolve(s Settings, banding [4]bool) Map {
	var r Resolver
	return r.Resolve(s, banding)
}
