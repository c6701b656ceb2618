package appearance

import "fmt"

// Kind distinguishes a flat color from a texture.
type Kind int

const (
	KindFlat Kind = iota
	KindTextured
)

func (k Kind) String() string {
	switch k {
	case KindFlat:
		return "flat"
	case KindTextured:
		return "textured"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Appearance is what one face or body shows. For a textured appearance
// Color is the fallback the host uses if the image cannot be drawn.
type Appearance struct {
	Kind    Kind   `json:"kind"`
	Color   Color  `json:"color"`
	Texture string `json:"texture,omitempty"`
}

// Flat returns a flat color appearance.
func Flat(c Color) Appearance {
	return Appearance{Kind: KindFlat, Color: c.Clamp()}
}

// Textured returns a texture appearance with a fallback color.
func Textured(path string, fallback Color) Appearance {
	return Appearance{Kind: KindTextured, Color: fallback.Clamp(), Texture: path}
}

// IsTextured reports whether a texture is shown.
func (a Appearance) IsTextured() bool {
	return a.Kind == KindTextured
}

// Tint is the material color applied under the appearance. Textures are
// modulated by the material color, so a texture is drawn over white.
func (a Appearance) Tint() Color {
	if a.IsTextured() {
		return White
	}
	return a.Color
}

func (a Appearance) String() string {
	if a.IsTextured() {
		return fmt.Sprintf("textured(%s, %s)", a.Texture, a.Color.Hex())
	}
	return fmt.Sprintf("flat(%s)", a.Color.Hex())
}
