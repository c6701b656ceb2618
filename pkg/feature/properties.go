package feature

import (
	"errors"
	"fmt"

	"github.com/chazu/lignin-panel/pkg/appearance"
	"github.com/chazu/lignin-panel/pkg/panel"
)

// Property names as the host stores them.
const (
	PropLength            = "Length"
	PropWidth             = "Width"
	PropThickness         = "Thickness"
	PropABSThickness      = "ABSThickness"
	PropABSL1             = "ABSL1"
	PropABSL2             = "ABSL2"
	PropABSW1             = "ABSW1"
	PropABSW2             = "ABSW2"
	PropColorForBothSides = "ColorForBothSides"
	PropBaseColor         = "BaseColor"
	PropTexture           = "Texture"
	PropABSColor          = "ABSColor"
	PropABSTexture        = "ABSTexture"
	PropMissingABSColor   = "MissingABSColor"
)

// Category tells how a property change is handled.
type Category int

const (
	// Dimensional changes re-derive every body.
	Dimensional Category = iota
	// Visual changes only repaint.
	Visual
)

func (c Category) String() string {
	switch c {
	case Dimensional:
		return "dimensional"
	case Visual:
		return "visual"
	default:
		return fmt.Sprintf("Category(%d)", int(c))
	}
}

var categories = map[string]Category{
	PropLength:            Dimensional,
	PropWidth:             Dimensional,
	PropThickness:         Dimensional,
	PropABSThickness:      Dimensional,
	PropABSL1:             Dimensional,
	PropABSL2:             Dimensional,
	PropABSW1:             Dimensional,
	PropABSW2:             Dimensional,
	PropColorForBothSides: Dimensional,
	PropBaseColor:         Visual,
	PropTexture:           Visual,
	PropABSColor:          Visual,
	PropABSTexture:        Visual,
	PropMissingABSColor:   Visual,
}

var (
	// ErrUnknownProperty is returned for a property the feature does not have.
	ErrUnknownProperty = errors.New("feature: unknown property")
	// ErrPropertyType is returned when a value has the wrong type.
	ErrPropertyType = errors.New("feature: wrong property type")
)

// CategoryOf returns the category of the named property.
func CategoryOf(name string) (Category, error) {
	c, ok := categories[name]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownProperty, name)
	}
	return c, nil
}

// Properties is the property set of a panel feature. Lengths are mm.
type Properties struct {
	Length            float64          `json:"Length"`
	Width             float64          `json:"Width"`
	Thickness         float64          `json:"Thickness"`
	ABSThickness      float64          `json:"ABSThickness"`
	ABSL1             bool             `json:"ABSL1"`
	ABSL2             bool             `json:"ABSL2"`
	ABSW1             bool             `json:"ABSW1"`
	ABSW2             bool             `json:"ABSW2"`
	ColorForBothSides bool             `json:"ColorForBothSides"`
	BaseColor         appearance.Color `json:"BaseColor"`
	Texture           string           `json:"Texture"`
	ABSColor          appearance.Color `json:"ABSColor"`
	ABSTexture        string           `json:"ABSTexture"`
	MissingABSColor   appearance.Color `json:"MissingABSColor"`
}

// DefaultProperties returns a 200 x 400 x 18 mm gray panel banded on all
// four sides with 0.5 mm white ABS.
func DefaultProperties() Properties {
	s := appearance.DefaultSettings()
	return Properties{
		Length:            200,
		Width:             400,
		Thickness:         18,
		ABSThickness:      0.5,
		ABSL1:             true,
		ABSL2:             true,
		ABSW1:             true,
		ABSW2:             true,
		ColorForBothSides: s.BackMirrorsFront,
		BaseColor:         s.FrontColor,
		ABSColor:          s.BandingColor,
		MissingABSColor:   s.MissingColor,
	}
}

// Config translates the properties into a derivation input.
func (p Properties) Config() panel.Config {
	return panel.Config{
		Length:           p.Length,
		Width:            p.Width,
		Thickness:        p.Thickness,
		BandingThickness: p.ABSThickness,
		Banding:          [4]bool{panel.SideL1: p.ABSL1, panel.SideL2: p.ABSL2, panel.SideW1: p.ABSW1, panel.SideW2: p.ABSW2},
		SkinThickness:    panel.SkinThickness,
		BackMirrorsFront: p.ColorForBothSides,
	}
}

// Settings translates the properties into appearance settings.
func (p Properties) Settings() appearance.Settings {
	return appearance.Settings{
		FrontColor:       p.BaseColor,
		FrontTexture:     p.Texture,
		BandingColor:     p.ABSColor,
		BandingTexture:   p.ABSTexture,
		MissingColor:     p.MissingABSColor,
		BackMirrorsFront: p.ColorForBothSides,
	}
}

// Get returns the named property value.
func (p Properties) Get(name string) (any, error) {
	switch name {
	case PropLength:
		return p.Length, nil
	case PropWidth:
		return p.Width, nil
	case PropThickness:
		return p.Thickness, nil
	case PropABSThickness:
		return p.ABSThickness, nil
	case PropABSL1:
		return p.ABSL1, nil
	case PropABSL2:
		return p.ABSL2, nil
	case PropABSW1:
		return p.ABSW1, nil
	case PropABSW2:
		return p.ABSW2, nil
	case PropColorForBothSides:
		return p.ColorForBothSides, nil
	case PropBaseColor:
		return p.BaseColor, nil
	case PropTexture:
		return p.Texture, nil
	case PropABSColor:
		return p.ABSColor, nil
	case PropABSTexture:
		return p.ABSTexture, nil
	case PropMissingABSColor:
		return p.MissingABSColor, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownProperty, name)
}

// Assign stores v in the named property. Lengths accept any Go number,
// colors accept a Color or an RGB(A) []float64. On error p is unchanged.
func (p *Properties) Assign(name string, v any) error {
	if _, err := CategoryOf(name); err != nil {
		return err
	}
	next := *p
	var err error
	switch name {
	case PropLength:
		next.Length, err = toFloat(name, v)
	case PropWidth:
		next.Width, err = toFloat(name, v)
	case PropThickness:
		next.Thickness, err = toFloat(name, v)
	case PropABSThickness:
		next.ABSThickness, err = toFloat(name, v)
	case PropABSL1:
		next.ABSL1, err = toBool(name, v)
	case PropABSL2:
		next.ABSL2, err = toBool(name, v)
	case PropABSW1:
		next.ABSW1, err = toBool(name, v)
	case PropABSW2:
		next.ABSW2, err = toBool(name, v)
	case PropColorForBothSides:
		next.ColorForBothSides, err = toBool(name, v)
	case PropBaseColor:
		next.BaseColor, err = toColor(name, v)
	case PropTexture:
		next.Texture, err = toString(name, v)
	case PropABSColor:
		next.ABSColor, err = toColor(name, v)
	case PropABSTexture:
		next.ABSTexture, err = toString(name, v)
	case PropMissingABSColor:
		next.MissingABSColor, err = toColor(name, v)
	}
	if err != nil {
		return err
	}
	*p = next
	return nil
}

func typeErr(name string, v any) error {
	return fmt.Errorf("%w: %s cannot hold %T", ErrPropertyType, name, v)
}

func toFloat(name string, v any) (float64, error) {
	switch x := v.(type) {
	case float64:
		return x, nil
	case float32:
		return float64(x), nil
	case int:
		return float64(x), nil
	case int64:
		return float64(x), nil
	}
	return 0, typeErr(name, v)
}

func toBool(name string, v any) (bool, error) {
	b, ok := v.(bool)
	if !ok {
		return false, typeErr(name, v)
	}
	return b, nil
}

func toString(name string, v any) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", typeErr(name, v)
	}
	return s, nil
}

func toColor(name string, v any) (appearance.Color, error) {
	switch x := v.(type) {
	case appearance.Color:
		return x.Clamp(), nil
	case []float64:
		return appearance.ParseColor(x), nil
	}
	return appearance.Color{}, typeErr(name, v)
}
