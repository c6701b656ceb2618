// Package host defines the narrow interface between the panel feature and
// the CAD application that owns bodies, rendering and persistence.
//
// The feature never builds solids or scene nodes itself. It asks the host
// to create named bodies, hand them a box shape, toggle their visibility
// and paint them; everything else stays on the host side.
package host

import (
	"errors"

	"github.com/chazu/lignin-panel/pkg/appearance"
	"github.com/chazu/lignin-panel/pkg/geom"
	"github.com/chazu/lignin-panel/pkg/kernel"
)

// ErrBodyNotFound is returned when a handle does not name a live body.
var ErrBodyNotFound = errors.New("host: body not found")

// BodyHandle identifies a body created by the host. Parent is the name of
// the owning feature; Name is unique within it.
type BodyHandle struct {
	ID     string `json:"id"`
	Parent string `json:"parent"`
	Name   string `json:"name"`
}

// Host is the set of document and view operations the feature needs.
// Every call may fail; the feature logs failures and carries on.
type Host interface {
	// CreateBody returns the body called name under parent, creating it on
	// first use. Calling it again with the same names returns the same body.
	CreateBody(parent, name string) (BodyHandle, error)

	// AssignShape replaces the body's shape. A nil box is the empty shape.
	AssignShape(body BodyHandle, shape *geom.Box) error

	// SetVisible shows or hides the body.
	SetVisible(body BodyHandle, visible bool) error

	// SetFlatColor sets the body's material color.
	SetFlatColor(body BodyHandle, c appearance.Color) error

	// SetTexture draws the image at path over the body.
	SetTexture(body BodyHandle, path string) error

	// ClearTexture removes any texture from the body.
	ClearTexture(body BodyHandle) error

	// Recompute asks the document to rebuild dependents after shape changes.
	Recompute() error

	// RefreshView redraws without rebuilding.
	RefreshView() error
}

// FacePainter is implemented by hosts that can paint single faces of a
// body. The monolithic panel variant needs it.
type FacePainter interface {
	// Faces returns the faces of the body's current shape. Face.Index is
	// the value to pass back to the setters.
	Faces(body BodyHandle) ([]geom.Face, error)

	SetFaceColor(body BodyHandle, face int, c appearance.Color) error
	SetFaceTexture(body BodyHandle, face int, path string) error
	ClearFaceTextures(body BodyHandle) error
}

// Mesher is implemented by hosts that can tessellate the solids they
// realized for their bodies.
type Mesher interface {
	Mesh(body BodyHandle) (*kernel.Mesh, error)
}

// ApplyAppearance paints a whole body. The texture is cleared first so a
// stale image never survives a switch to a flat color.
func ApplyAppearance(h Host, body BodyHandle, a appearance.Appearance) error {
	var errs []error
	if err := h.ClearTexture(body); err != nil {
		errs = append(errs, err)
	}
	if err := h.SetFlatColor(body, a.Tint()); err != nil {
		errs = append(errs, err)
	}
	if a.IsTextured() {
		if err := h.SetTexture(body, a.Texture); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// PaintFace paints one face through a FacePainter. Face textures are
// cleared per body by the caller before painting.
func PaintFace(p FacePainter, body BodyHandle, face int, a appearance.Appearance) error {
	if err := p.SetFaceColor(body, face, a.Tint()); err != nil {
		return err
	}
	if a.IsTextured() {
		return p.SetFaceTexture(body, face, a.Texture)
	}
	return nil
}
