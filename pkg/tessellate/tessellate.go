// Package tessellate turns panel features into triangle meshes. Each
// present body is meshed from the solid its host realized and tagged with
// the color the body is painted with.
package tessellate

import (
	"errors"
	"fmt"

	"github.com/chazu/lignin-panel/pkg/feature"
	"github.com/chazu/lignin-panel/pkg/host"
	"github.com/chazu/lignin-panel/pkg/kernel"
)

// DefaultGap is the spacing between panels laid out in a row, mm.
const DefaultGap = 50.0

// ErrNoMesher is returned for a panel whose host cannot mesh its bodies.
var ErrNoMesher = errors.New("tessellate: host cannot mesh bodies")

// BodyMesh is the mesh of one body with its display appearance.
type BodyMesh struct {
	Panel   string       `json:"panel"`
	Role    string       `json:"role"`
	Color   string       `json:"color"` // #RRGGBB
	Texture string       `json:"texture,omitempty"`
	Mesh    *kernel.Mesh `json:"mesh"`
}

// Tessellate meshes the bodies of every panel. Panels are laid out in a
// row along X, gap apart, in the order given. The tessellator is read-only
// and never touches the features or their host state.
func Tessellate(panels []*feature.Panel, gap float64) ([]BodyMesh, error) {
	var meshes []BodyMesh
	var x float64

	for _, p := range panels {
		if p == nil {
			continue
		}
		collected, err := tessellatePanel(p, x)
		if err != nil {
			return nil, fmt.Errorf("tessellate: panel %s: %w", p.Name(), err)
		}
		meshes = append(meshes, collected...)

		if length := p.Config().Length; length > 0 {
			x += length + gap
		}
	}
	return meshes, nil
}

// tessellatePanel meshes the present bodies of one panel, shifted dx
// along X.
func tessellatePanel(p *feature.Panel, dx float64) ([]BodyMesh, error) {
	m, ok := p.Host().(host.Mesher)
	if !ok {
		return nil, ErrNoMesher
	}

	var meshes []BodyMesh
	for _, role := range p.Bodies().Present() {
		h, ok := p.Handle(role)
		if !ok {
			return nil, fmt.Errorf("%s: %w", role, host.ErrBodyNotFound)
		}
		mesh, err := m.Mesh(h)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", role, err)
		}
		mesh.Translate(float32(dx), 0, 0)
		mesh.BodyName = p.Name() + "/" + role.String()

		look := p.BodyAppearance(role)
		meshes = append(meshes, BodyMesh{
			Panel:   p.Name(),
			Role:    role.String(),
			Color:   look.Tint().Hex(),
			Texture: look.Texture,
			Mesh:    mesh,
		})
	}
	return meshes, nil
}

// Merge concatenates meshes into one, for callers that want a single
// triangle soup.
func Merge(meshes []BodyMesh) *kernel.Mesh {
	out := &kernel.Mesh{BodyName: "merged"}
	for _, m := range meshes {
		out.Append(m.Mesh)
	}
	return out
}
