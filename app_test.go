package main

import (
	"os"
	"testing"
)

// TestE2ECabinetExample exercises the full pipeline: script source → engine
// → features on the in-memory host → tessellate → meshes.
func TestE2ECabinetExample(t *testing.T) {
	app := NewApp()

	source, err := os.ReadFile("examples/cabinet.panel")
	if err != nil {
		t.Fatalf("failed to read cabinet.panel: %v", err)
	}

	result := app.Evaluate(string(source))

	// No errors expected.
	if len(result.Errors) > 0 {
		for _, e := range result.Errors {
			t.Errorf("eval error (line %d): %s", e.Line, e.Message)
		}
		t.FailNow()
	}
	if len(result.Warnings) > 0 {
		t.Errorf("unexpected warnings: %v", result.Warnings)
	}

	// Sides and bottom: base, front, back and one strip. Door: all seven.
	expectedCounts := map[string]int{
		"side-left":  4,
		"side-right": 4,
		"bottom":     4,
		"door":       7,
	}
	counts := map[string]int{}
	for _, m := range result.Meshes {
		counts[m.Panel]++

		// Each mesh must have non-empty geometry.
		if len(m.Vertices) == 0 {
			t.Errorf("part %q: no vertices", m.PartName)
		}
		if len(m.Normals) == 0 {
			t.Errorf("part %q: no normals", m.PartName)
		}
		if len(m.Indices) == 0 {
			t.Errorf("part %q: no indices", m.PartName)
		}

		// Must have a color assigned.
		if m.Color == "" {
			t.Errorf("part %q: no color assigned", m.PartName)
		}
		if m.PartName != m.Panel+"/"+m.Role {
			t.Errorf("part name %q does not match %s/%s", m.PartName, m.Panel, m.Role)
		}
	}

	for name, want := range expectedCounts {
		if counts[name] != want {
			t.Errorf("panel %q: expected %d meshes, got %d", name, want, counts[name])
		}
	}
	if len(app.Panels()) != 4 {
		t.Errorf("expected 4 panels, got %d", len(app.Panels()))
	}
}

// TestE2EEmptySource ensures the pipeline handles empty input gracefully.
func TestE2EEmptySource(t *testing.T) {
	app := NewApp()
	result := app.Evaluate("")

	if len(result.Errors) > 0 {
		t.Errorf("unexpected errors for empty source: %v", result.Errors)
	}
	if len(result.Meshes) != 0 {
		t.Errorf("expected 0 meshes for empty source, got %d", len(result.Meshes))
	}
}

// TestE2ESyntaxError ensures eval errors are reported, not fatal errors.
func TestE2ESyntaxError(t *testing.T) {
	app := NewApp()
	result := app.Evaluate("(panel \"test\"")

	if len(result.Errors) == 0 {
		t.Fatal("expected eval errors for syntax error")
	}
	if len(result.Meshes) != 0 {
		t.Errorf("expected 0 meshes on error, got %d", len(result.Meshes))
	}
	if app.Host() != nil || app.Panels() != nil {
		t.Error("expected no host or panels after a failed evaluation")
	}
}

// TestE2ESinglePanel ensures the default panel renders its seven bodies.
func TestE2ESinglePanel(t *testing.T) {
	app := NewApp()
	result := app.Evaluate(`(panel "shelf")`)

	if len(result.Errors) > 0 {
		for _, e := range result.Errors {
			t.Errorf("eval error: %s", e.Message)
		}
		t.FailNow()
	}
	if len(result.Meshes) != 7 {
		t.Fatalf("expected 7 meshes, got %d", len(result.Meshes))
	}
	if result.Meshes[0].PartName != "shelf/Base" {
		t.Errorf("expected part name 'shelf/Base', got %q", result.Meshes[0].PartName)
	}
	if len(app.Host().Bodies()) != 7 {
		t.Errorf("expected 7 host bodies, got %d", len(app.Host().Bodies()))
	}
	if got := app.Merged().TriangleCount(); got != 7*12 {
		t.Errorf("merged triangles = %d, want %d", got, 7*12)
	}
}

// TestE2EMergedResetsOnError ensures a failed evaluation drops the
// previous merged mesh.
func TestE2EMergedResetsOnError(t *testing.T) {
	app := NewApp()
	app.Evaluate(`(panel "shelf")`)
	if app.Merged() == nil {
		t.Fatal("expected a merged mesh")
	}

	app.Evaluate(`(panel "shelf"`)
	if app.Merged() != nil {
		t.Error("merged mesh survived a syntax error")
	}
	if app.Host() != nil {
		t.Error("host survived a syntax error")
	}
}
