package engine

import (
	"fmt"
	"strings"

	zygo "github.com/glycerine/zygomys/zygo"

	"github.com/chazu/lignin-panel/pkg/appearance"
	"github.com/chazu/lignin-panel/pkg/feature"
)

// ---------------------------------------------------------------------------
// Source preprocessing
// ---------------------------------------------------------------------------

// preprocessSource transforms panel script source code before passing it to
// zygomys. It performs two transformations:
//
//  1. Keyword conversion: :keyword -> "__kw_keyword" (string literal)
//     This avoids the need to register keyword symbols as globals, which
//     would conflict with user-defined variables of the same name.
//
//  2. Kebab-case to underscore: abs-sides -> abs_sides
//     zygomys does not allow hyphens in identifiers (it interprets them
//     as the subtraction operator). This converts kebab-case identifiers
//     to underscore form outside of strings and comments.
//
// Both transformations respect string literal boundaries and line comments.
func preprocessSource(source string) string {
	result := make([]byte, 0, len(source)+len(source)/4)
	b := []byte(source)
	i := 0
	for i < len(b) {
		// Skip double-quoted string literals.
		if b[i] == '"' {
			result = append(result, b[i])
			i++
			for i < len(b) && b[i] != '"' {
				if b[i] == '\\' && i+1 < len(b) {
					result = append(result, b[i], b[i+1])
					i += 2
					continue
				}
				result = append(result, b[i])
				i++
			}
			if i < len(b) {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Skip backtick-quoted string literals.
		if b[i] == '`' {
			result = append(result, b[i])
			i++
			for i < len(b) && b[i] != '`' {
				result = append(result, b[i])
				i++
			}
			if i < len(b) {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Convert ; line comments to // comments for zygomys.
		// zygomys uses // for line comments, not the traditional Lisp ;.
		if b[i] == ';' {
			result = append(result, '/', '/')
			i++
			// Skip additional ; characters (;; style).
			for i < len(b) && b[i] == ';' {
				i++
			}
			for i < len(b) && b[i] != '\n' {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Transform :keyword to "__kw_keyword".
		if b[i] == ':' && i+1 < len(b) {
			// Preserve := (assignment operator).
			if b[i+1] == '=' {
				result = append(result, b[i], b[i+1])
				i += 2
				continue
			}
			// Check for keyword: colon followed by a letter.
			if isLetter(b[i+1]) {
				j := i + 1
				for j < len(b) && isKWChar(b[j]) {
					j++
				}
				kwName := string(b[i+1 : j])
				result = append(result, '"')
				result = append(result, []byte(kwPrefix)...)
				result = append(result, []byte(kwName)...)
				result = append(result, '"')
				i = j
				continue
			}
		}
		// Transform kebab-case identifiers: alpha-alpha -> alpha_alpha.
		// Only when hyphen sits between identifier characters (not a minus operator).
		if b[i] == '-' && i > 0 && i+1 < len(b) &&
			isIdentChar(b[i-1]) && isIdentStartChar(b[i+1]) {
			result = append(result, '_')
			i++
			continue
		}
		result = append(result, b[i])
		i++
	}
	return string(result)
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isKWChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '-' || c == '_'
}

func isIdentChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '_'
}

func isIdentStartChar(c byte) bool {
	return isLetter(c)
}

// ---------------------------------------------------------------------------
// Custom Sexp types for passing Go values through the zygomys environment
// ---------------------------------------------------------------------------

// sexpColor wraps an appearance.Color so it can be passed between builtins.
type sexpColor struct {
	c appearance.Color
}

func (c *sexpColor) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(color %g %g %g)", c.c.R, c.c.G, c.c.B)
}
func (c *sexpColor) Type() *zygo.RegisteredType { return nil }

// sexpPanel is what `panel` returns: a reference to a declared panel.
type sexpPanel struct {
	name string
}

func (p *sexpPanel) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(panel %q)", p.name)
}
func (p *sexpPanel) Type() *zygo.RegisteredType { return nil }

// ---------------------------------------------------------------------------
// Keyword argument parsing
// ---------------------------------------------------------------------------

// kwPrefix is the marker prepended to keyword names by preprocessSource.
const kwPrefix = "__kw_"

// isKW checks if a Sexp is a preprocessed keyword string.
// Returns the keyword name (without prefix) and true if it is.
func isKW(s zygo.Sexp) (string, bool) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", false
	}
	if strings.HasPrefix(str.S, kwPrefix) {
		return str.S[len(kwPrefix):], true
	}
	return "", false
}

// kwArgs holds the result of parsing a mixed positional+keyword argument list.
type kwArgs struct {
	kw         map[string]zygo.Sexp
	order      []string
	positional []zygo.Sexp
}

// parseArgs separates args into keyword and positional arguments.
// Keywords are identified by the __kw_ prefix added during preprocessing.
func parseArgs(args []zygo.Sexp) kwArgs {
	result := kwArgs{kw: make(map[string]zygo.Sexp)}
	i := 0
	for i < len(args) {
		name, ok := isKW(args[i])
		if !ok {
			result.positional = append(result.positional, args[i])
			i++
			continue
		}
		if _, seen := result.kw[name]; !seen {
			result.order = append(result.order, name)
		}
		if i+1 < len(args) {
			result.kw[name] = args[i+1]
			i += 2
		} else {
			// Keyword at end with no value: treat as flag with nil.
			result.kw[name] = zygo.SexpNull
			i++
		}
	}
	return result
}

// ---------------------------------------------------------------------------
// Value extraction helpers
// ---------------------------------------------------------------------------

// toFloat64 extracts a float64 from a Sexp (SexpInt or SexpFloat).
func toFloat64(s zygo.Sexp) (float64, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return float64(v.Val), nil
	case *zygo.SexpFloat:
		return v.Val, nil
	}
	return 0, fmt.Errorf("expected number, got %T (%s)", s, s.SexpString(nil))
}

// toString extracts a string from a Sexp.
func toString(s zygo.Sexp) (string, error) {
	if str, ok := s.(*zygo.SexpStr); ok {
		return str.S, nil
	}
	return "", fmt.Errorf("expected string, got %T (%s)", s, s.SexpString(nil))
}

// toKeywordString extracts a keyword name or plain string from a Sexp.
// Handles both preprocessed keywords (__kw_l1) and plain strings ("l1").
func toKeywordString(s zygo.Sexp) (string, error) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", fmt.Errorf("expected keyword or string, got %T (%s)", s, s.SexpString(nil))
	}
	if strings.HasPrefix(str.S, kwPrefix) {
		return str.S[len(kwPrefix):], nil
	}
	return str.S, nil
}

// toGo converts a script value into the Go value a property holds.
func toGo(s zygo.Sexp) (any, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return float64(v.Val), nil
	case *zygo.SexpFloat:
		return v.Val, nil
	case *zygo.SexpBool:
		return v.Val, nil
	case *zygo.SexpStr:
		return v.S, nil
	case *sexpColor:
		return v.c, nil
	}
	return nil, fmt.Errorf("unsupported value %T (%s)", s, s.SexpString(nil))
}

// toVariant converts :decomposed or :monolithic to a feature.Variant.
func toVariant(s zygo.Sexp) (feature.Variant, error) {
	name, err := toKeywordString(s)
	if err != nil {
		return 0, fmt.Errorf("expected variant keyword (:decomposed, :monolithic): %w", err)
	}
	switch name {
	case "decomposed":
		return feature.VariantDecomposed, nil
	case "monolithic":
		return feature.VariantMonolithic, nil
	}
	return 0, fmt.Errorf("invalid variant %q, expected decomposed or monolithic", name)
}

// sexpListToSlice converts a SexpPair (Lisp list) or SexpArray to a Go slice.
func sexpListToSlice(s zygo.Sexp) ([]zygo.Sexp, error) {
	switch v := s.(type) {
	case *zygo.SexpPair:
		return zygo.ListToArray(v)
	case *zygo.SexpArray:
		return v.Val, nil
	case *zygo.SexpSentinel:
		if v == zygo.SexpNull {
			return nil, nil
		}
	}
	return nil, fmt.Errorf("expected list or array, got %T", s)
}

// sideProps maps side keywords to their banding property.
var sideProps = map[string]string{
	"l1": feature.PropABSL1,
	"l2": feature.PropABSL2,
	"w1": feature.PropABSW1,
	"w2": feature.PropABSW2,
}

// panelOptions maps panel keywords to feature property names.
var panelOptions = map[string]string{
	"length":        feature.PropLength,
	"width":         feature.PropWidth,
	"thickness":     feature.PropThickness,
	"abs-thickness": feature.PropABSThickness,
	"abs-l1":        feature.PropABSL1,
	"abs-l2":        feature.PropABSL2,
	"abs-w1":        feature.PropABSW1,
	"abs-w2":        feature.PropABSW2,
	"both-sides":    feature.PropColorForBothSides,
	"base-color":    feature.PropBaseColor,
	"texture":       feature.PropTexture,
	"abs-color":     feature.PropABSColor,
	"abs-texture":   feature.PropABSTexture,
	"missing-color": feature.PropMissingABSColor,
}

// ---------------------------------------------------------------------------
// Builtin registration
// ---------------------------------------------------------------------------

// builtinFunc is the signature zygomys expects of Go builtins.
type builtinFunc = func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error)

// evalState is shared by the builtins of one evaluation.
type evalState struct {
	design *Design
	// failure is the last error a builtin returned. zygomys reports it
	// wrapped in its own text; this keeps the original message.
	failure error
}

// track records errors returned by fn.
func (st *evalState) track(fn builtinFunc) builtinFunc {
	return func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		res, err := fn(env, name, args)
		if err != nil {
			st.failure = err
		}
		return res, err
	}
}

// registerBuiltins installs the panel DSL builtins into a zygomys
// environment. The builtins append to st.design during evaluation.
//
// Source code must be preprocessed with preprocessSource() before evaluation so
// that :keyword tokens are converted to recognizable string literals.
func registerBuiltins(env *zygo.Zlisp, st *evalState) {
	d := st.design

	// -----------------------------------------------------------------------
	// (color 0.5 0.5 0.5)
	// -----------------------------------------------------------------------
	env.AddFunction("color", st.track(func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 3 {
			return zygo.SexpNull, fmt.Errorf("color requires exactly 3 arguments, got %d", len(args))
		}
		var rgb [3]float64
		for i, a := range args {
			f, err := toFloat64(a)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("color: component %d: %w", i, err)
			}
			rgb[i] = f
		}
		return &sexpColor{c: appearance.RGB(rgb[0], rgb[1], rgb[2])}, nil
	}))

	// -----------------------------------------------------------------------
	// (panel "shelf" :length 600 :width 300 :thickness 18
	//        :abs (list :l1 :w1) :abs-thickness 1
	//        :base-color (color 0.6 0.4 0.2) :texture "oak.png"
	//        :variant :monolithic)
	//
	// Unset options keep the feature defaults. :abs lists the banded sides
	// and clears the others; :abs-l1 and friends then override single sides.
	// -----------------------------------------------------------------------
	env.AddFunction("panel", st.track(func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		spec := PanelSpec{Properties: feature.DefaultProperties()}

		if len(pa.positional) > 0 {
			s, err := toString(pa.positional[0])
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("panel: name: %w", err)
			}
			spec.Name = s
		} else {
			spec.Name = nextPanelName(d)
		}
		if d.Lookup(spec.Name) != nil {
			return zygo.SexpNull, fmt.Errorf("panel: duplicate panel name %q", spec.Name)
		}

		if v, ok := pa.kw["abs"]; ok {
			sides, err := sexpListToSlice(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("panel: abs: %w", err)
			}
			for _, prop := range sideProps {
				if err := spec.Properties.Assign(prop, false); err != nil {
					return zygo.SexpNull, fmt.Errorf("panel: abs: %w", err)
				}
			}
			for _, s := range sides {
				side, err := toKeywordString(s)
				if err != nil {
					return zygo.SexpNull, fmt.Errorf("panel: abs: %w", err)
				}
				prop, ok := sideProps[side]
				if !ok {
					return zygo.SexpNull, fmt.Errorf("panel: abs: invalid side %q, expected l1, l2, w1 or w2", side)
				}
				if err := spec.Properties.Assign(prop, true); err != nil {
					return zygo.SexpNull, fmt.Errorf("panel: abs: %w", err)
				}
			}
		}

		if v, ok := pa.kw["variant"]; ok {
			variant, err := toVariant(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("panel: variant: %w", err)
			}
			spec.Variant = variant
		}

		for _, kw := range pa.order {
			if kw == "abs" || kw == "variant" {
				continue
			}
			prop, ok := panelOptions[kw]
			if !ok {
				return zygo.SexpNull, fmt.Errorf("panel: unknown option :%s", kw)
			}
			val, err := toGo(pa.kw[kw])
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("panel: %s: %w", kw, err)
			}
			if err := spec.Properties.Assign(prop, val); err != nil {
				return zygo.SexpNull, fmt.Errorf("panel: %s: %w", kw, err)
			}
		}

		d.Panels = append(d.Panels, spec)
		return &sexpPanel{name: spec.Name}, nil
	}))
}

// nextPanelName returns Panel, then Panel001, Panel002 and so on.
func nextPanelName(d *Design) string {
	name := feature.DefaultName
	for i := 1; d.Lookup(name) != nil; i++ {
		name = fmt.Sprintf("%s%03d", feature.DefaultName, i)
	}
	return name
}
