// Package memhost is an in-memory host.Host. It keeps every body with its
// shape, visibility and paint, realizes shapes through a kernel.Kernel and
// records the calls it receives. The CLI renders panels through it and the
// feature tests use it to observe what the feature asked for.
package memhost

import (
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/chazu/lignin-panel/pkg/appearance"
	"github.com/chazu/lignin-panel/pkg/geom"
	"github.com/chazu/lignin-panel/pkg/host"
	"github.com/chazu/lignin-panel/pkg/kernel"
)

// Compile-time interface checks.
var (
	_ host.Host        = (*Host)(nil)
	_ host.FacePainter = (*Host)(nil)
	_ host.Mesher      = (*Host)(nil)
)

// Operation names accepted by FailOn and recorded in Calls.
const (
	OpCreateBody       = "CreateBody"
	OpAssignShape      = "AssignShape"
	OpSetVisible       = "SetVisible"
	OpSetFlatColor     = "SetFlatColor"
	OpSetTexture       = "SetTexture"
	OpClearTexture     = "ClearTexture"
	OpRecompute        = "Recompute"
	OpRefreshView      = "RefreshView"
	OpFaces            = "Faces"
	OpSetFaceColor     = "SetFaceColor"
	OpSetFaceTexture   = "SetFaceTexture"
	OpClearFaceTexture = "ClearFaceTextures"
)

// Body is the host-side state of one body.
type Body struct {
	Handle       host.BodyHandle
	Shape        *geom.Box
	Solid        kernel.Solid
	Visible      bool
	Color        appearance.Color
	Texture      string
	FaceColors   map[int]appearance.Color
	FaceTextures map[int]string
}

// Call is one recorded host call.
type Call struct {
	Op   string
	Body string
}

func (c Call) String() string {
	if c.Body == "" {
		return c.Op
	}
	return c.Op + "(" + c.Body + ")"
}

// Host is an in-memory document. It is not safe for concurrent use.
type Host struct {
	k   kernel.Kernel
	log zerolog.Logger

	bodies map[string]*Body  // by ID
	names  map[string]string // parent/name -> ID

	calls      []Call
	failures   map[string]error
	recomputes int
	refreshes  int
}

// New returns an empty host realizing shapes with k. A nil kernel keeps
// shapes as boxes only.
func New(k kernel.Kernel, log zerolog.Logger) *Host {
	return &Host{
		k:        k,
		log:      log,
		bodies:   make(map[string]*Body),
		names:    make(map[string]string),
		failures: make(map[string]error),
	}
}

// FailOn makes every later call of op return err. A nil err clears it.
func (h *Host) FailOn(op string, err error) {
	if err == nil {
		delete(h.failures, op)
		return
	}
	h.failures[op] = err
}

// Calls returns the recorded calls in order.
func (h *Host) Calls() []Call {
	return h.calls
}

// ResetCalls forgets the recorded calls.
func (h *Host) ResetCalls() {
	h.calls = nil
}

// Recomputes returns how many times Recompute succeeded.
func (h *Host) Recomputes() int {
	return h.recomputes
}

// Refreshes returns how many times RefreshView succeeded.
func (h *Host) Refreshes() int {
	return h.refreshes
}

// Body returns the body called name under parent.
func (h *Host) Body(parent, name string) (*Body, bool) {
	id, ok := h.names[key(parent, name)]
	if !ok {
		return nil, false
	}
	return h.bodies[id], true
}

// Bodies returns all bodies sorted by parent and name.
func (h *Host) Bodies() []*Body {
	out := make([]*Body, 0, len(h.bodies))
	for _, b := range h.bodies {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool {
		return key(out[i].Handle.Parent, out[i].Handle.Name) < key(out[j].Handle.Parent, out[j].Handle.Name)
	})
	return out
}

// Mesh implements host.Mesher by tessellating the body's solid. The body name is stamped on the mesh.
func (h *Host) Mesh(body host.BodyHandle) (*kernel.Mesh, error) {
	b, err := h.lookup(body)
	if err != nil {
		return nil, err
	}
	if h.k == nil || b.Solid == nil {
		return nil, fmt.Errorf("memhost: body %q has no solid", b.Handle.Name)
	}
	m, err := h.k.ToMesh(b.Solid)
	if err != nil {
		return nil, fmt.Errorf("memhost: mesh %q: %w", b.Handle.Name, err)
	}
	m.BodyName = b.Handle.Name
	return m, nil
}

func key(parent, name string) string {
	return parent + "/" + name
}

func (h *Host) record(op string, body host.BodyHandle) error {
	h.calls = append(h.calls, Call{Op: op, Body: body.Name})
	if err, ok := h.failures[op]; ok {
		return fmt.Errorf("memhost: %s %q: %w", op, body.Name, err)
	}
	return nil
}

func (h *Host) lookup(body host.BodyHandle) (*Body, error) {
	b, ok := h.bodies[body.ID]
	if !ok {
		return nil, fmt.Errorf("memhost: %q (%s): %w", body.Name, body.ID, host.ErrBodyNotFound)
	}
	return b, nil
}

// CreateBody implements host.Host.
func (h *Host) CreateBody(parent, name string) (host.BodyHandle, error) {
	handle := host.BodyHandle{Parent: parent, Name: name}
	if err := h.record(OpCreateBody, handle); err != nil {
		return host.BodyHandle{}, err
	}
	if id, ok := h.names[key(parent, name)]; ok {
		return h.bodies[id].Handle, nil
	}
	handle.ID = uuid.NewString()
	h.bodies[handle.ID] = &Body{
		Handle:       handle,
		Visible:      true,
		Color:        appearance.Neutral,
		FaceColors:   make(map[int]appearance.Color),
		FaceTextures: make(map[int]string),
	}
	h.names[key(parent, name)] = handle.ID
	h.log.Debug().Str("parent", parent).Str("body", name).Str("id", handle.ID).Msg("body created")
	return handle, nil
}

// AssignShape implements host.Host. The shape is realized as a kernel
// solid translated to the box origin.
func (h *Host) AssignShape(body host.BodyHandle, shape *geom.Box) error {
	if err := h.record(OpAssignShape, body); err != nil {
		return err
	}
	b, err := h.lookup(body)
	if err != nil {
		return err
	}
	b.Shape = shape
	b.Solid = nil
	if shape != nil && h.k != nil {
		s := h.k.Box(shape.Size.X, shape.Size.Y, shape.Size.Z)
		b.Solid = h.k.Translate(s, shape.Origin.X, shape.Origin.Y, shape.Origin.Z)
	}
	return nil
}

// SetVisible implements host.Host.
func (h *Host) SetVisible(body host.BodyHandle, visible bool) error {
	if err := h.record(OpSetVisible, body); err != nil {
		return err
	}
	b, err := h.lookup(body)
	if err != nil {
		return err
	}
	b.Visible = visible
	return nil
}

// SetFlatColor implements host.Host.
func (h *Host) SetFlatColor(body host.BodyHandle, c appearance.Color) error {
	if err := h.record(OpSetFlatColor, body); err != nil {
		return err
	}
	b, err := h.lookup(body)
	if err != nil {
		return err
	}
	b.Color = c.Clamp()
	return nil
}

// SetTexture implements host.Host.
func (h *Host) SetTexture(body host.BodyHandle, path string) error {
	if err := h.record(OpSetTexture, body); err != nil {
		return err
	}
	b, err := h.lookup(body)
	if err != nil {
		return err
	}
	b.Texture = path
	return nil
}

// ClearTexture implements host.Host.
func (h *Host) ClearTexture(body host.BodyHandle) error {
	if err := h.record(OpClearTexture, body); err != nil {
		return err
	}
	b, err := h.lookup(body)
	if err != nil {
		return err
	}
	b.Texture = ""
	return nil
}

// Recompute implements host.Host.
func (h *Host) Recompute() error {
	if err := h.record(OpRecompute, host.BodyHandle{}); err != nil {
		return err
	}
	h.recomputes++
	return nil
}

// RefreshView implements host.Host.
func (h *Host) RefreshView() error {
	if err := h.record(OpRefreshView, host.BodyHandle{}); err != nil {
		return err
	}
	h.refreshes++
	return nil
}

// Faces implements host.FacePainter.
func (h *Host) Faces(body host.BodyHandle) ([]geom.Face, error) {
	if err := h.record(OpFaces, body); err != nil {
		return nil, err
	}
	b, err := h.lookup(body)
	if err != nil {
		return nil, err
	}
	return b.Shape.Faces(), nil
}

// SetFaceColor implements host.FacePainter.
func (h *Host) SetFaceColor(body host.BodyHandle, face int, c appearance.Color) error {
	if err := h.record(OpSetFaceColor, body); err != nil {
		return err
	}
	b, err := h.lookup(body)
	if err != nil {
		return err
	}
	b.FaceColors[face] = c.Clamp()
	return nil
}

// SetFaceTexture implements host.FacePainter.
func (h *Host) SetFaceTexture(body host.BodyHandle, face int, path string) error {
	if err := h.record(OpSetFaceTexture, body); err != nil {
		return err
	}
	b, err := h.lookup(body)
	if err != nil {
		return err
	}
	b.FaceTextures[face] = path
	return nil
}

// ClearFaceTextures implements host.FacePainter.
func (h *Host) ClearFaceTextures(body host.BodyHandle) error {
	if err := h.record(OpClearFaceTexture, body); err != nil {
		return err
	}
	b, err := h.lookup(body)
	if err != nil {
		return err
	}
	b.FaceTextures = make(map[int]string)
	return nil
}
