package geom

import "gonum.org/v1/gonum/spatial/r3"

// Face is one planar rectangular face of a box. Corners are wound
// counter-clockwise when viewed from outside, so the normal follows the
// right-hand rule.
type Face struct {
	Index   int       `json:"index"`
	Normal  r3.Vec    `json:"normal"`
	Center  r3.Vec    `json:"center"`
	Corners [4]r3.Vec `json:"corners"`
}

// Faces returns the six faces of b in the order -X, +X, -Y, +Y, -Z, +Z,
// the way a B-rep kernel reports the faces of a box primitive. The empty
// shape has no faces.
func (b *Box) Faces() []Face {
	if b == nil {
		return nil
	}
	m, M := b.Min(), b.Max()
	quads := [6]struct {
		normal  r3.Vec
		corners [4]r3.Vec
	}{
		{Vec(-1, 0, 0), [4]r3.Vec{Vec(m.X, m.Y, m.Z), Vec(m.X, m.Y, M.Z), Vec(m.X, M.Y, M.Z), Vec(m.X, M.Y, m.Z)}},
		{Vec(1, 0, 0), [4]r3.Vec{Vec(M.X, m.Y, m.Z), Vec(M.X, M.Y, m.Z), Vec(M.X, M.Y, M.Z), Vec(M.X, m.Y, M.Z)}},
		{Vec(0, -1, 0), [4]r3.Vec{Vec(m.X, m.Y, m.Z), Vec(M.X, m.Y, m.Z), Vec(M.X, m.Y, M.Z), Vec(m.X, m.Y, M.Z)}},
		{Vec(0, 1, 0), [4]r3.Vec{Vec(m.X, M.Y, m.Z), Vec(m.X, M.Y, M.Z), Vec(M.X, M.Y, M.Z), Vec(M.X, M.Y, m.Z)}},
		{Vec(0, 0, -1), [4]r3.Vec{Vec(m.X, m.Y, m.Z), Vec(m.X, M.Y, m.Z), Vec(M.X, M.Y, m.Z), Vec(M.X, m.Y, m.Z)}},
		{Vec(0, 0, 1), [4]r3.Vec{Vec(m.X, m.Y, M.Z), Vec(M.X, m.Y, M.Z), Vec(M.X, M.Y, M.Z), Vec(m.X, M.Y, M.Z)}},
	}

	faces := make([]Face, 0, len(quads))
	for i, q := range quads {
		var c r3.Vec
		for _, p := range q.corners {
			c = r3.Add(c, p)
		}
		faces = append(faces, Face{
			Index:   i,
			Normal:  q.normal,
			Center:  r3.Scale(0.25, c),
			Corners: q.corners,
		})
	}
	return faces
}

// Area returns the area of the face.
func (f Face) Area() float64 {
	e1 := r3.Sub(f.Corners[1], f.Corners[0])
	e2 := r3.Sub(f.Corners[3], f.Corners[0])
	return r3.Norm(r3.Cross(e1, e2))
}
