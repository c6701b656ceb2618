// Package boxk implements kernel.Kernel for axis-aligned boxes. Every panel body is a box, so a solid here is the list of boxes
// it was built from and meshing is exact: two triangles per face with
// flat normals, whatever the slab thickness.
package boxk

import (
	"errors"
	"fmt"

	"github.com/chazu/lignin-panel/pkg/geom"
	"github.com/chazu/lignin-panel/pkg/kernel"
	"gonum.org/v1/gonum/spatial/r3"
)

// Compile-time interface check.
var _ kernel.Kernel = (*BoxKernel)(nil)

// ErrEmptySolid is returned when meshing a solid that holds no boxes.
var ErrEmptySolid = errors.New("boxk: empty solid")

// Solid holds the boxes it was built from; an empty box leaves none.
type Solid struct {
	boxes []*geom.Box
}

// Boxes returns the boxes that make up the solid.
func (s *Solid) Boxes() []*geom.Box {
	return s.boxes
}

// BoundingBox returns the axis-aligned bounding box of all parts.
func (s *Solid) BoundingBox() (min, max [3]float64) {
	for i, b := range s.boxes {
		lo, hi := b.Min(), b.Max()
		if i == 0 {
			min = [3]float64{lo.X, lo.Y, lo.Z}
			max = [3]float64{hi.X, hi.Y, hi.Z}
			continue
		}
		min = [3]float64{minf(min[0], lo.X), minf(min[1], lo.Y), minf(min[2], lo.Z)}
		max = [3]float64{maxf(max[0], hi.X), maxf(max[1], hi.Y), maxf(max[2], hi.Z)}
	}
	return min, max
}

// BoxKernel implements kernel.Kernel with exact box compounds.
type BoxKernel struct{}

// New returns a new BoxKernel.
func New() *BoxKernel {
	return &BoxKernel{}
}

func unwrap(s kernel.Solid) *Solid {
	bs, ok := s.(*Solid)
	if !ok {
		panic(fmt.Sprintf("boxk: foreign solid %T", s))
	}
	return bs
}

// Box creates a box with its minimum corner at the origin. A box with a
// non-positive extent yields a solid with no parts.
func (k *BoxKernel) Box(x, y, z float64) kernel.Solid {
	b := geom.NewBox(r3.Vec{}, geom.Vec(x, y, z))
	if b == nil {
		return &Solid{}
	}
	return &Solid{boxes: []*geom.Box{b}}
}

// Translate moves a solid by (x, y, z).
func (k *BoxKernel) Translate(s kernel.Solid, x, y, z float64) kernel.Solid {
	src := unwrap(s)
	d := geom.Vec(x, y, z)
	boxes := make([]*geom.Box, len(src.boxes))
	for i, b := range src.boxes {
		boxes[i] = &geom.Box{Origin: r3.Add(b.Origin, d), Size: b.Size}
	}
	return &Solid{boxes: boxes}
}

// ToMesh emits four vertices and two triangles per box face.
func (k *BoxKernel) ToMesh(s kernel.Solid) (*kernel.Mesh, error) {
	if s == nil {
		return nil, ErrEmptySolid
	}
	src := unwrap(s)
	if len(src.boxes) == 0 {
		return nil, ErrEmptySolid
	}

	m := &kernel.Mesh{
		Vertices: make([]float32, 0, len(src.boxes)*24*3),
		Normals:  make([]float32, 0, len(src.boxes)*24*3),
		Indices:  make([]uint32, 0, len(src.boxes)*36),
	}
	for _, b := range src.boxes {
		for _, f := range b.Faces() {
			base := uint32(m.VertexCount())
			for _, c := range f.Corners {
				m.Vertices = append(m.Vertices, float32(c.X), float32(c.Y), float32(c.Z))
				m.Normals = append(m.Normals, float32(f.Normal.X), float32(f.Normal.Y), float32(f.Normal.Z))
			}
			m.Indices = append(m.Indices,
				base, base+1, base+2,
				base, base+2, base+3,
			)
		}
	}
	return m, nil
}

func minf(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func maxf(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
