// Package feature is the panel model: it owns the property set of one
// panel, decides what a property change requires and drives the host
// through derivation, shape assignment and painting.
//
// A dimensional change re-derives every body and ends with a host
// recompute. A visual change only re-resolves appearance and refreshes
// the view. Both paths leave the host showing the same thing.
package feature

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/chazu/lignin-panel/pkg/appearance"
	"github.com/chazu/lignin-panel/pkg/host"
	"github.com/chazu/lignin-panel/pkg/panel"
)

// DefaultName is the feature name used by Create when none is given.
const DefaultName = "Panel"

// Variant selects how the panel is realized on the host.
type Variant int

const (
	// VariantDecomposed realizes the base, skins and banding strips as
	// separate bodies, each painted whole.
	VariantDecomposed Variant = iota
	// VariantMonolithic realizes one full-size box and paints its six
	// faces individually. It needs a host.FacePainter.
	VariantMonolithic
)

func (v Variant) String() string {
	switch v {
	case VariantDecomposed:
		return "decomposed"
	case VariantMonolithic:
		return "monolithic"
	default:
		return fmt.Sprintf("Variant(%d)", int(v))
	}
}

// Panel is one parametric panel feature. It is not safe for concurrent use.
type Panel struct {
	name     string
	host     host.Host
	props    Properties
	variant  Variant
	resolver *appearance.Resolver
	log      zerolog.Logger

	busy      bool
	restoring bool

	handles  map[panel.BodyRole]host.BodyHandle
	bodies   panel.Bodies
	resolved appearance.Map
}

// Option configures a Panel.
type Option func(*Panel)

// WithLogger sets the logger. The default discards everything.
func WithLogger(log zerolog.Logger) Option {
	return func(p *Panel) {
		p.log = log
		if p.resolver != nil {
			p.resolver.Log = log
		}
	}
}

// WithResolver replaces the appearance resolver.
func WithResolver(r *appearance.Resolver) Option {
	return func(p *Panel) { p.resolver = r }
}

// WithVariant selects the realization variant.
func WithVariant(v Variant) Option {
	return func(p *Panel) { p.variant = v }
}

// WithProperties replaces the default property set.
func WithProperties(props Properties) Option {
	return func(p *Panel) { p.props = props }
}

// New returns a panel feature called name on h with default properties.
// Nothing is sent to the host until the first Execute.
func New(h host.Host, name string, opts ...Option) *Panel {
	if name == "" {
		name = DefaultName
	}
	p := &Panel{
		name:     name,
		host:     h,
		props:    DefaultProperties(),
		resolver: appearance.NewResolver(zerolog.Nop()),
		log:      zerolog.Nop(),
		handles:  make(map[panel.BodyRole]host.BodyHandle),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Create builds a panel feature and runs its first recompute. The panel is
// returned even when some host calls failed.
func Create(h host.Host, name string, opts ...Option) (*Panel, error) {
	p := New(h, name, opts...)
	return p, p.Execute()
}

// Name returns the feature name, the parent of every body it creates.
func (p *Panel) Name() string { return p.name }

// Variant returns the realization variant.
func (p *Panel) Variant() Variant { return p.variant }

// Properties returns a copy of the current property set.
func (p *Panel) Properties() Properties { return p.props }

// Config returns the derivation input of the current properties.
func (p *Panel) Config() panel.Config { return p.props.Config() }

// Bodies returns the bodies of the last dimensional recompute.
func (p *Panel) Bodies() panel.Bodies { return p.bodies }

// Appearance returns the appearance map last sent to the host.
func (p *Panel) Appearance() appearance.Map { return p.resolved }

// Host returns the host the feature's bodies live in.
func (p *Panel) Host() host.Host { return p.host }

// Handle returns the host body playing role, if it was created.
func (p *Panel) Handle(role panel.BodyRole) (host.BodyHandle, bool) {
	h, ok := p.handles[role]
	return h, ok
}

// BeginRestore marks the feature as being loaded from a document. Property
// changes are stored but trigger nothing until EndRestore.
func (p *Panel) BeginRestore() { p.restoring = true }

// EndRestore ends a restore and recomputes once.
func (p *Panel) EndRestore() error {
	p.restoring = false
	return p.Execute()
}

// Set stores a property value and handles the change.
func (p *Panel) Set(name string, v any) error {
	if err := p.props.Assign(name, v); err != nil {
		return err
	}
	return p.OnChanged(name)
}

// SetProperties replaces every property and recomputes once.
func (p *Panel) SetProperties(props Properties) error {
	p.props = props
	if p.busy || p.restoring {
		return nil
	}
	return p.Execute()
}

// OnChanged handles a change of the named property. Changes arriving while
// the feature is recomputing or restoring are ignored.
func (p *Panel) OnChanged(name string) error {
	cat, err := CategoryOf(name)
	if err != nil {
		return err
	}
	if p.busy || p.restoring {
		p.log.Debug().Str("feature", p.name).Str("property", name).Msg("change ignored")
		return nil
	}
	p.log.Debug().Str("feature", p.name).Str("property", name).Stringer("category", cat).Msg("property changed")
	if cat == Dimensional {
		return p.Execute()
	}
	return p.UpdateVisual()
}

// Execute re-derives every body, hands the shapes to the host, paints them
// and asks the host to recompute. Host failures are logged and collected;
// the remaining bodies are still processed.
func (p *Panel) Execute() error {
	if p.busy {
		return nil
	}
	p.busy = true
	defer func() { p.busy = false }()

	cfg := p.props.Config()
	var bodies panel.Bodies
	switch p.variant {
	case VariantMonolithic:
		bodies = panel.Bodies{Base: panel.Monolithic(cfg)}
	default:
		bodies = panel.Derive(cfg)
	}
	p.bodies = bodies
	p.resolved = p.resolver.Resolve(p.props.Settings(), cfg.Banding)

	var errs []error
	for _, role := range panel.BodyRoles {
		h, err := p.body(role)
		if err != nil {
			errs = append(errs, p.fail(role, "create", err))
			continue
		}
		box := bodies.Get(role)
		if err := p.host.AssignShape(h, box); err != nil {
			errs = append(errs, p.fail(role, "assign shape", err))
		}
		if err := p.host.SetVisible(h, box != nil); err != nil {
			errs = append(errs, p.fail(role, "set visible", err))
		}
		if box != nil {
			errs = append(errs, p.paint(role, h)...)
		}
	}

	if err := p.host.Recompute(); err != nil {
		errs = append(errs, p.fail(panel.BodyBase, "recompute", err))
	}
	p.log.Debug().
		Str("feature", p.name).
		Stringer("variant", p.variant).
		Int("bodies", len(bodies.Present())).
		Int("errors", len(errs)).
		Msg("recomputed")
	return errors.Join(errs...)
}

// UpdateVisual re-resolves appearance and repaints existing bodies without
// touching geometry, then refreshes the view.
func (p *Panel) UpdateVisual() error {
	if p.busy {
		return nil
	}
	p.busy = true
	defer func() { p.busy = false }()

	cfg := p.props.Config()
	p.resolved = p.resolver.Resolve(p.props.Settings(), cfg.Banding)

	var errs []error
	for _, role := range panel.BodyRoles {
		h, ok := p.handles[role]
		if !ok || p.bodies.Get(role) == nil {
			continue
		}
		errs = append(errs, p.paint(role, h)...)
	}
	if err := p.host.RefreshView(); err != nil {
		errs = append(errs, p.fail(panel.BodyBase, "refresh view", err))
	}
	return errors.Join(errs...)
}

// body looks up or creates the host body for role.
func (p *Panel) body(role panel.BodyRole) (host.BodyHandle, error) {
	if h, ok := p.handles[role]; ok {
		return h, nil
	}
	h, err := p.host.CreateBody(p.name, role.String())
	if err != nil {
		return host.BodyHandle{}, err
	}
	p.handles[role] = h
	return h, nil
}

// paint applies the resolved appearance to one present body.
func (p *Panel) paint(role panel.BodyRole, h host.BodyHandle) []error {
	if p.variant == VariantMonolithic && role == panel.BodyBase {
		return p.paintFaces(h)
	}
	if err := host.ApplyAppearance(p.host, h, p.BodyAppearance(role)); err != nil {
		return []error{p.fail(role, "paint", err)}
	}
	return nil
}

// BodyAppearance returns the appearance a whole body is painted with. The
// base only shows where no skin or strip covers it, which is exactly where
// the missing color belongs. In the monolithic variant the base carries
// the top appearance.
func (p *Panel) BodyAppearance(role panel.BodyRole) appearance.Appearance {
	if p.variant == VariantMonolithic && role == panel.BodyBase {
		return p.resolved[panel.Top]
	}
	if fr, ok := role.FaceRole(); ok {
		return p.resolved[fr]
	}
	return appearance.Flat(p.props.MissingABSColor)
}

// paintFaces classifies the faces of the monolithic body and paints each
// one with its role's appearance.
func (p *Panel) paintFaces(h host.BodyHandle) []error {
	fp, ok := p.host.(host.FacePainter)
	if !ok {
		p.log.Warn().Str("feature", p.name).Msg("host cannot paint faces, using the top appearance for the whole body")
		if err := host.ApplyAppearance(p.host, h, p.resolved[panel.Top]); err != nil {
			return []error{p.fail(panel.BodyBase, "paint", err)}
		}
		return nil
	}

	faces, err := fp.Faces(h)
	if err != nil {
		return []error{p.fail(panel.BodyBase, "faces", err)}
	}
	if len(faces) == 0 {
		return nil
	}
	cls, err := panel.Classify(faces)
	if err != nil {
		return []error{p.fail(panel.BodyBase, "classify", err)}
	}

	var errs []error
	if err := fp.ClearFaceTextures(h); err != nil {
		errs = append(errs, p.fail(panel.BodyBase, "clear face textures", err))
	}
	for _, fr := range panel.FaceRoles {
		if err := host.PaintFace(fp, h, cls[fr].Index, p.resolved[fr]); err != nil {
			errs = append(errs, p.fail(panel.BodyBase, "paint face "+fr.String(), err))
		}
	}
	return errs
}

func (p *Panel) fail(role panel.BodyRole, op string, err error) error {
	p.log.Warn().
		Err(err).
		Str("feature", p.name).
		Str("body", role.String()).
		Str("op", op).
		Msg("host call failed")
	return fmt.Errorf("feature %s: %s %s: %w", p.name, op, role, err)
}
