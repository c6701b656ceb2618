package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/docopt/docopt-go"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/chazu/lignin-panel/pkg/export"
	"github.com/chazu/lignin-panel/pkg/feature"
	"github.com/chazu/lignin-panel/pkg/kernel"
	"github.com/chazu/lignin-panel/pkg/kernel/boxk"
	"github.com/chazu/lignin-panel/pkg/kernel/sdfx"
	"github.com/chazu/lignin-panel/pkg/prefs"
)

const version = "0.1.0"

const usage = `lignin-panel.

Builds the panels declared by a script and exports them.

Usage:
  lignin-panel [options] <script>
  lignin-panel -h | --help
  lignin-panel --version

Options:
  --prefs=<file>   Preferences file (JSON or JSON5). Defaults to ~/.lignin-panel/prefs.json.
  --kernel=<name>  Solid kernel used for meshing: boxk or sdfx [default: boxk].
  --cells=<n>      Mesh cells along the longest axis for the sdfx kernel [default: 200].
  --dxf=<file>     Write a DXF plan view.
  --pdf=<file>     Write a PDF data sheet.
  --xlsx=<file>    Write an XLSX cut list.
  --json=<file>    Write the meshes, errors and warnings as JSON.
  -v --verbose     Log debug output.
  -h --help        Show this screen.
  --version        Show version.
`

type options struct {
	Script  string
	Prefs   string
	Kernel  string
	Cells   int
	DXF     string
	PDF     string
	XLSX    string
	JSON    string
	Verbose bool
}

// parseOptions reads the parsed arguments. Options without a value and
// without a default are left empty.
func parseOptions(arguments docopt.Opts) (options, error) {
	str := func(key string) string {
		s, _ := arguments.String(key)
		return s
	}
	opts := options{
		Script: str("<script>"),
		Prefs:  str("--prefs"),
		Kernel: str("--kernel"),
		DXF:    str("--dxf"),
		PDF:    str("--pdf"),
		XLSX:   str("--xlsx"),
		JSON:   str("--json"),
	}
	opts.Verbose, _ = arguments.Bool("--verbose")
	cells, err := arguments.Int("--cells")
	if err != nil {
		return opts, fmt.Errorf("--cells: %w", err)
	}
	opts.Cells = cells
	return opts, nil
}

func main() {
	arguments, err := docopt.ParseArgs(usage, os.Args[1:], version)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	opts, err := parseOptions(arguments)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if opts.Verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	if err := run(opts, log.Logger); err != nil {
		log.Error().Err(err).Msg("lignin-panel failed")
		os.Exit(1)
	}
}

func run(opts options, logger zerolog.Logger) error {
	k, err := newKernel(opts.Kernel, opts.Cells)
	if err != nil {
		return err
	}

	prefsPath := opts.Prefs
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}
	p, err := prefs.Load(prefsPath)
	if err != nil {
		logger.Warn().Err(err).Str("path", prefsPath).Msg("using default preferences")
		p = prefs.Default()
	}

	source, err := os.ReadFile(opts.Script)
	if err != nil {
		return fmt.Errorf("read script: %w", err)
	}

	app := NewApp(WithKernel(k), WithPreferences(p), WithAppLogger(logger))
	result := app.Evaluate(string(source))

	for _, w := range result.Warnings {
		logger.Warn().Str("panel", w.Panel).Msg(w.Message)
	}
	for _, e := range result.Errors {
		ev := logger.Error().Str("panel", e.Panel)
		if e.Line > 0 {
			ev = ev.Int("line", e.Line)
		}
		ev.Msg(e.Message)
	}
	if app.Host() == nil {
		return errors.New("script did not evaluate")
	}

	ev := logger.Info().
		Int("panels", len(app.Panels())).
		Int("bodies", len(result.Meshes))
	if merged := app.Merged(); merged != nil {
		ev = ev.Int("vertices", merged.VertexCount()).Int("triangles", merged.TriangleCount())
	}
	ev.Msg("built")

	if opts.JSON != "" {
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("encode result: %w", err)
		}
		if err := os.WriteFile(opts.JSON, data, 0o644); err != nil {
			return fmt.Errorf("write json: %w", err)
		}
		logger.Info().Str("path", opts.JSON).Msg("wrote json")
	}

	exports := []struct {
		path string
		fn   func(string, []*feature.Panel) error
	}{
		{opts.DXF, export.ExportDXF},
		{opts.PDF, export.ExportPDF},
		{opts.XLSX, export.ExportXLSX},
	}
	for _, ex := range exports {
		if ex.path == "" {
			continue
		}
		if err := ex.fn(ex.path, app.Panels()); err != nil {
			return err
		}
		logger.Info().Str("path", ex.path).Msg("exported")
	}
	return nil
}

// newKernel returns the kernel named on the command line.
func newKernel(name string, cells int) (kernel.Kernel, error) {
	switch name {
	case "", "boxk":
		return boxk.New(), nil
	case "sdfx":
		return sdfx.NewWithCells(cells), nil
	default:
		return nil, fmt.Errorf("unknown kernel %q, expected boxk or sdfx", name)
	}
}
