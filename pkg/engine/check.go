package engine

import (
	"errors"

	"github.com/chazu/lignin-panel/pkg/panel"
	"github.com/chazu/lignin-panel/pkg/prefs"
)

// Check runs the advisory validation of every declared panel and the
// preference bounds. Findings never stop a panel from being built.
func (d *Design) Check(p prefs.Preferences) []EvalWarning {
	var warnings []EvalWarning
	for _, spec := range d.Panels {
		cfg := spec.Properties.Config()
		for _, issue := range panel.Validate(cfg) {
			warnings = append(warnings, EvalWarning{Message: issue.Error(), Panel: spec.Name})
		}
		for _, err := range unjoin(p.Check(cfg)) {
			warnings = append(warnings, EvalWarning{Message: err.Error(), Panel: spec.Name})
		}
	}
	return warnings
}

func (w EvalWarning) Error() string {
	if w.Panel != "" {
		return w.Panel + ": " + w.Message
	}
	return w.Message
}

// unjoin splits an errors.Join result back into its parts.
func unjoin(err error) []error {
	if err == nil {
		return nil
	}
	var joined interface{ Unwrap() []error }
	if errors.As(err, &joined) {
		return joined.Unwrap()
	}
	return []error{err}
}
