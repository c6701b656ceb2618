package main

import (
	"strings"

	"github.com/rs/zerolog"

	"github.com/chazu/lignin-panel/pkg/appearance"
	"github.com/chazu/lignin-panel/pkg/engine"
	"github.com/chazu/lignin-panel/pkg/feature"
	"github.com/chazu/lignin-panel/pkg/host/memhost"
	"github.com/chazu/lignin-panel/pkg/kernel"
	"github.com/chazu/lignin-panel/pkg/kernel/boxk"
	"github.com/chazu/lignin-panel/pkg/prefs"
	"github.com/chazu/lignin-panel/pkg/tessellate"
)

// App evaluates panel scripts: it builds every declared panel as a feature
// on an in-memory host and returns the meshes a viewer needs.
type App struct {
	engine *engine.Engine
	kernel kernel.Kernel
	prefs  prefs.Preferences
	log    zerolog.Logger

	host   *memhost.Host
	panels []*feature.Panel
	merged *kernel.Mesh
}

// MeshData is the JSON-serializable mesh format of one body.
type MeshData struct {
	Vertices []float32 `json:"vertices"`
	Normals  []float32 `json:"normals"`
	Indices  []uint32  `json:"indices"`
	PartName string    `json:"partName"`
	Panel    string    `json:"panel"`
	Role     string    `json:"role"`
	Color    string    `json:"color"`
	Texture  string    `json:"texture,omitempty"`
}

// EvalErrorData is a JSON-serializable eval error or warning.
type EvalErrorData struct {
	Line    int    `json:"line"`
	Col     int    `json:"col"`
	Message string `json:"message"`
	Panel   string `json:"panel,omitempty"`
}

// EvalResult is the full result of one evaluation.
type EvalResult struct {
	Meshes   []MeshData      `json:"meshes"`
	Errors   []EvalErrorData `json:"errors"`
	Warnings []EvalErrorData `json:"warnings"`
}

// AppOption configures an App.
type AppOption func(*App)

// WithKernel replaces the default exact box kernel.
func WithKernel(k kernel.Kernel) AppOption {
	return func(a *App) { a.kernel = k }
}

// WithPreferences sets the dimension bounds panels are checked against.
func WithPreferences(p prefs.Preferences) AppOption {
	return func(a *App) { a.prefs = p }
}

// WithAppLogger sets the logger handed to the host and the features.
func WithAppLogger(log zerolog.Logger) AppOption {
	return func(a *App) { a.log = log }
}

// NewApp creates a new App with an engine and the box kernel.
func NewApp(opts ...AppOption) *App {
	a := &App{
		engine: engine.NewEngine(),
		kernel: boxk.New(),
		prefs:  prefs.Default(),
		log:    zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Panels returns the features built by the last evaluation.
func (a *App) Panels() []*feature.Panel {
	return a.panels
}

// Host returns the in-memory host of the last evaluation, or nil when
// the script did not evaluate.
func (a *App) Host() *memhost.Host {
	return a.host
}

// Merged returns every body mesh of the last evaluation as one mesh, or
// nil when nothing was tessellated.
func (a *App) Merged() *kernel.Mesh {
	return a.merged
}

// Evaluate takes panel script source and returns mesh data + errors.
func (a *App) Evaluate(source string) EvalResult {
	result := EvalResult{
		Meshes:   []MeshData{},
		Errors:   []EvalErrorData{},
		Warnings: []EvalErrorData{},
	}
	a.host, a.panels, a.merged = nil, nil, nil

	// Step 1: Evaluate the script into a design.
	d, evalErrs, err := a.engine.Evaluate(source)
	if err != nil {
		// Fatal error (panic, timeout, etc.)
		a.log.Error().Err(err).Msg("evaluate failed")
		result.Errors = append(result.Errors, EvalErrorData{Message: err.Error()})
		return result
	}

	// Step 2: Convert eval errors to the result format.
	if len(evalErrs) > 0 {
		for _, e := range evalErrs {
			result.Errors = append(result.Errors, EvalErrorData{
				Line:    e.Line,
				Col:     e.Col,
				Message: e.Message,
			})
		}
		return result
	}

	// Step 3: Advisory checks.
	for _, w := range d.Check(a.prefs) {
		result.Warnings = append(result.Warnings, EvalErrorData{
			Line:    w.Line,
			Col:     w.Col,
			Message: w.Message,
			Panel:   w.Panel,
		})
	}

	// Step 4: Build every panel on a fresh host. Host failures are
	// reported but the remaining panels are still built.
	a.host = memhost.New(a.kernel, a.log)
	resolver := appearance.NewResolver(a.log)
	for _, spec := range d.Panels {
		p, err := feature.Create(a.host, spec.Name,
			feature.WithProperties(spec.Properties),
			feature.WithVariant(spec.Variant),
			feature.WithResolver(resolver),
			feature.WithLogger(a.log),
		)
		if err != nil {
			for _, line := range strings.Split(err.Error(), "\n") {
				result.Errors = append(result.Errors, EvalErrorData{Message: line, Panel: spec.Name})
			}
		}
		a.panels = append(a.panels, p)
	}

	// Step 5: Tessellate the bodies into triangle meshes.
	meshes, err := tessellate.Tessellate(a.panels, tessellate.DefaultGap)
	if err != nil {
		a.log.Error().Err(err).Msg("tessellate failed")
		result.Errors = append(result.Errors, EvalErrorData{
			Message: "tessellation failed: " + err.Error(),
		})
		return result
	}
	a.merged = tessellate.Merge(meshes)

	// Step 6: Convert body meshes to the MeshData format.
	for _, m := range meshes {
		result.Meshes = append(result.Meshes, MeshData{
			Vertices: m.Mesh.Vertices,
			Normals:  m.Mesh.Normals,
			Indices:  m.Mesh.Indices,
			PartName: m.Mesh.BodyName,
			Panel:    m.Panel,
			Role:     m.Role,
			Color:    m.Color,
			Texture:  m.Texture,
		})
	}

	return result
}
