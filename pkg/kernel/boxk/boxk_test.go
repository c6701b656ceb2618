package boxk

import (
	"errors"
	"math"
	"testing"

	"github.com/chazu/lignin-panel/pkg/kernel"
)

func TestBoxMesh(t *testing.T) {
	k := New()
	mesh, err := k.ToMesh(k.Box(200, 400, 0.01))
	if err != nil {
		t.Fatalf("ToMesh failed: %v", err)
	}
	if got := mesh.TriangleCount(); got != 12 {
		t.Errorf("TriangleCount() = %d, want 12", got)
	}
	if got := mesh.VertexCount(); got != 24 {
		t.Errorf("VertexCount() = %d, want 24", got)
	}
	if len(mesh.Vertices) != len(mesh.Normals) {
		t.Fatalf("vertices length %d != normals length %d", len(mesh.Vertices), len(mesh.Normals))
	}
}

func TestMeshNormalsFaceOutward(t *testing.T) {
	k := New()
	mesh, err := k.ToMesh(k.Translate(k.Box(10, 20, 30), 5, 5, 5))
	if err != nil {
		t.Fatalf("ToMesh failed: %v", err)
	}
	center := [3]float32{10, 15, 20}
	for v := 0; v < mesh.VertexCount(); v++ {
		var dot float32
		for a := 0; a < 3; a++ {
			dot += (mesh.Vertices[v*3+a] - center[a]) * mesh.Normals[v*3+a]
		}
		if dot <= 0 {
			t.Errorf("vertex %d normal points inward", v)
		}
	}
}

func TestWindingMatchesNormal(t *testing.T) {
	k := New()
	mesh, err := k.ToMesh(k.Box(3, 4, 5))
	if err != nil {
		t.Fatalf("ToMesh failed: %v", err)
	}
	vert := func(i uint32) [3]float32 {
		return [3]float32{mesh.Vertices[i*3], mesh.Vertices[i*3+1], mesh.Vertices[i*3+2]}
	}
	for tri := 0; tri < mesh.TriangleCount(); tri++ {
		i0, i1, i2 := mesh.Indices[tri*3], mesh.Indices[tri*3+1], mesh.Indices[tri*3+2]
		a, b, c := vert(i0), vert(i1), vert(i2)
		e1 := [3]float32{b[0] - a[0], b[1] - a[1], b[2] - a[2]}
		e2 := [3]float32{c[0] - a[0], c[1] - a[1], c[2] - a[2]}
		cross := [3]float32{
			e1[1]*e2[2] - e1[2]*e2[1],
			e1[2]*e2[0] - e1[0]*e2[2],
			e1[0]*e2[1] - e1[1]*e2[0],
		}
		n := mesh.Normals[i0*3 : i0*3+3]
		if cross[0]*n[0]+cross[1]*n[1]+cross[2]*n[2] <= 0 {
			t.Errorf("triangle %d wound against its normal", tri)
		}
	}
}

func TestTranslateAndBoundingBox(t *testing.T) {
	k := New()
	strip := k.Translate(k.Box(200, 0.5, 17.98), 0, 399.5, 0.01)

	min, max := strip.BoundingBox()
	wantMin := [3]float64{0, 399.5, 0.01}
	wantMax := [3]float64{200, 400, 17.99}
	for i := 0; i < 3; i++ {
		if math.Abs(min[i]-wantMin[i]) > 1e-9 {
			t.Errorf("min[%d] = %f, want %f", i, min[i], wantMin[i])
		}
		if math.Abs(max[i]-wantMax[i]) > 1e-9 {
			t.Errorf("max[%d] = %f, want %f", i, max[i], wantMax[i])
		}
	}

	mesh, err := k.ToMesh(strip)
	if err != nil {
		t.Fatalf("ToMesh failed: %v", err)
	}
	if got := mesh.TriangleCount(); got != 12 {
		t.Errorf("TriangleCount() = %d, want 12", got)
	}
	if got := len(strip.(*Solid).Boxes()); got != 1 {
		t.Errorf("len(Boxes()) = %d, want 1", got)
	}
}

func TestDegenerateBox(t *testing.T) {
	k := New()
	for _, dims := range [][3]float64{{0, 1, 1}, {1, -1, 1}, {1, 1, 0}} {
		s := k.Box(dims[0], dims[1], dims[2])
		if _, err := k.ToMesh(s); !errors.Is(err, ErrEmptySolid) {
			t.Errorf("Box%v: err = %v, want ErrEmptySolid", dims, err)
		}
	}
	if _, err := k.ToMesh(nil); !errors.Is(err, ErrEmptySolid) {
		t.Errorf("nil solid: err = %v, want ErrEmptySolid", err)
	}
}

func TestKernelInterface(t *testing.T) {
	var k kernel.Kernel = New()
	s := k.Translate(k.Box(1, 2, 3), 1, 1, 1)
	min, max := s.BoundingBox()
	if min != [3]float64{1, 1, 1} || max != [3]float64{2, 3, 4} {
		t.Errorf("BoundingBox() = %v, %v", min, max)
	}
}
