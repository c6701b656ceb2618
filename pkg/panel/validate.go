package panel

import "fmt"

// Severity indicates whether a finding makes the panel render nothing or
// is only advisory.
type Severity int

const (
	SeverityError   Severity = iota // the panel derives to an empty result
	SeverityWarning                 // the panel renders, possibly with collapsed bodies
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	default:
		return fmt.Sprintf("Severity(%d)", int(s))
	}
}

// Issue is a single validation finding on a Config.
type Issue struct {
	Field    string
	Message  string
	Severity Severity
}

func (i Issue) Error() string {
	return fmt.Sprintf("[%s] %s: %s", i.Severity, i.Field, i.Message)
}

// Validate reports why a config is degenerate or why some of its bodies
// will collapse. It is advisory; Derive never fails.
func Validate(cfg Config) []Issue {
	var issues []Issue

	dims := []struct {
		field string
		value float64
	}{
		{"length", cfg.Length},
		{"width", cfg.Width},
		{"thickness", cfg.Thickness},
		{"banding_thickness", cfg.BandingThickness},
	}
	for _, d := range dims {
		if d.value <= 0 {
			issues = append(issues, Issue{
				Field:    d.field,
				Message:  fmt.Sprintf("is %.4f, must be positive", d.value),
				Severity: SeverityError,
			})
		}
	}
	if len(issues) > 0 {
		return issues
	}

	b := cfg.BandingThickness
	if n := bandedAlong(cfg, false); float64(n)*b >= cfg.Length {
		issues = append(issues, Issue{
			Field:    "banding_thickness",
			Message:  fmt.Sprintf("%d W strip(s) of %.2fmm consume the %.2fmm length", n, b, cfg.Length),
			Severity: SeverityWarning,
		})
	}
	if n := bandedAlong(cfg, true); float64(n)*b >= cfg.Width {
		issues = append(issues, Issue{
			Field:    "banding_thickness",
			Message:  fmt.Sprintf("%d L strip(s) of %.2fmm consume the %.2fmm width", n, b, cfg.Width),
			Severity: SeverityWarning,
		})
	}

	skins := cfg.SkinThickness
	if cfg.BackMirrorsFront {
		skins *= 2
	}
	if skins >= cfg.Thickness {
		issues = append(issues, Issue{
			Field:    "thickness",
			Message:  fmt.Sprintf("%.4fmm leaves no room for %.4fmm of skins", cfg.Thickness, skins),
			Severity: SeverityWarning,
		})
	}
	return issues
}

func bandedAlong(cfg Config, alongLength bool) int {
	n := 0
	for _, s := range Sides {
		if cfg.Banded(s) && s.AlongLength() == alongLength {
			n++
		}
	}
	return n
}
