package panel

import (
	"strings"
	"testing"
)

func hasIssue(issues []Issue, field, substr string) bool {
	for _, i := range issues {
		if i.Field == field && strings.Contains(i.Message, substr) {
			return true
		}
	}
	return false
}

func TestValidateScenarioIsClean(t *testing.T) {
	if issues := Validate(scenarioConfig()); len(issues) != 0 {
		t.Errorf("expected no issues, got %v", issues)
	}
}

func TestValidateNonPositive(t *testing.T) {
	cfg := scenarioConfig()
	cfg.Width = 0
	cfg.BandingThickness = -1

	issues := Validate(cfg)
	if len(issues) != 2 {
		t.Fatalf("expected 2 issues, got %v", issues)
	}
	for _, i := range issues {
		if i.Severity != SeverityError {
			t.Errorf("issue %v should be an error", i)
		}
	}
	if !hasIssue(issues, "width", "must be positive") {
		t.Error("missing width issue")
	}
}

func TestValidateOversizedBanding(t *testing.T) {
	cfg := scenarioConfig()
	cfg.BandingThickness = 200

	issues := Validate(cfg)
	if !hasIssue(issues, "banding_thickness", "consume the 400.00mm width") {
		t.Errorf("expected width warning, got %v", issues)
	}
	if !hasIssue(issues, "banding_thickness", "consume the 200.00mm length") {
		t.Errorf("expected length warning, got %v", issues)
	}
	for _, i := range issues {
		if i.Severity != SeverityWarning {
			t.Errorf("issue %v should be a warning", i)
		}
	}
}

func TestValidateSkinsExceedThickness(t *testing.T) {
	cfg := scenarioConfig()
	cfg.Thickness = 0.02

	if !hasIssue(Validate(cfg), "thickness", "no room") {
		t.Error("expected thickness warning")
	}
}
