package tessellate_test

import (
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/chazu/lignin-panel/pkg/appearance"
	"github.com/chazu/lignin-panel/pkg/feature"
	"github.com/chazu/lignin-panel/pkg/host"
	"github.com/chazu/lignin-panel/pkg/host/memhost"
	"github.com/chazu/lignin-panel/pkg/kernel"
	"github.com/chazu/lignin-panel/pkg/kernel/boxk"
	"github.com/chazu/lignin-panel/pkg/tessellate"
)

// newKernel returns a fresh exact box kernel for testing.
func newKernel() kernel.Kernel {
	return boxk.New()
}

// makePanel creates a recomputed panel feature on an in-memory host.
func makePanel(t *testing.T, name string, props feature.Properties, opts ...feature.Option) *feature.Panel {
	t.Helper()
	h := memhost.New(newKernel(), zerolog.Nop())
	opts = append(opts, feature.WithProperties(props))
	p, err := feature.Create(h, name, opts...)
	if err != nil {
		t.Fatalf("Create(%s): %v", name, err)
	}
	return p
}

func TestTessellateEmpty(t *testing.T) {
	meshes, err := tessellate.Tessellate(nil, tessellate.DefaultGap)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(meshes) != 0 {
		t.Errorf("expected no meshes, got %d", len(meshes))
	}
}

func TestTessellateDefaultPanel(t *testing.T) {
	p := makePanel(t, "Panel", feature.DefaultProperties())
	meshes, err := tessellate.Tessellate([]*feature.Panel{p}, tessellate.DefaultGap)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Base, front, back and four strips.
	if len(meshes) != 7 {
		t.Fatalf("expected 7 meshes, got %d", len(meshes))
	}

	colors := map[string]string{}
	for _, m := range meshes {
		if m.Mesh.TriangleCount() != 12 {
			t.Errorf("%s: expected 12 triangles, got %d", m.Role, m.Mesh.TriangleCount())
		}
		if m.Mesh.BodyName != "Panel/"+m.Role {
			t.Errorf("BodyName = %q, want %q", m.Mesh.BodyName, "Panel/"+m.Role)
		}
		colors[m.Role] = m.Color
	}

	want := map[string]string{
		"Base":   "#FF0000",
		"Front":  "#808080",
		"Back":   "#808080",
		"ABS_L1": "#FFFFFF",
		"ABS_W2": "#FFFFFF",
	}
	for role, hex := range want {
		if colors[role] != hex {
			t.Errorf("%s color = %s, want %s", role, colors[role], hex)
		}
	}
}

func TestTessellateSkipsAbsentBodies(t *testing.T) {
	props := feature.DefaultProperties()
	props.ABSL1 = false
	props.ABSW2 = false
	props.ColorForBothSides = false
	p := makePanel(t, "Panel", props)

	meshes, err := tessellate.Tessellate([]*feature.Panel{p}, tessellate.DefaultGap)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Base, front, L2 and W1 strips.
	if len(meshes) != 4 {
		t.Fatalf("expected 4 meshes, got %d", len(meshes))
	}
	for _, m := range meshes {
		switch m.Role {
		case "Back", "ABS_L1", "ABS_W2":
			t.Errorf("unexpected mesh for absent body %s", m.Role)
		}
	}
}

func TestTessellateDegeneratePanel(t *testing.T) {
	props := feature.DefaultProperties()
	props.Width = 0
	p := makePanel(t, "Panel", props)

	meshes, err := tessellate.Tessellate([]*feature.Panel{p}, tessellate.DefaultGap)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(meshes) != 0 {
		t.Errorf("expected no meshes, got %d", len(meshes))
	}
}

func TestTessellateLaysPanelsInARow(t *testing.T) {
	a := makePanel(t, "A", feature.DefaultProperties())
	props := feature.DefaultProperties()
	props.Length = 300
	b := makePanel(t, "B", props)

	meshes, err := tessellate.Tessellate([]*feature.Panel{a, b}, 50)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	minX := map[string]float32{"A": 1e9, "B": 1e9}
	for _, m := range meshes {
		for i := 0; i < len(m.Mesh.Vertices); i += 3 {
			if x := m.Mesh.Vertices[i]; x < minX[m.Panel] {
				minX[m.Panel] = x
			}
		}
	}
	if minX["A"] != 0 {
		t.Errorf("panel A starts at x=%v, want 0", minX["A"])
	}
	// 200 mm panel plus a 50 mm gap.
	if minX["B"] != 250 {
		t.Errorf("panel B starts at x=%v, want 250", minX["B"])
	}
}

func TestTessellateTexturedFront(t *testing.T) {
	props := feature.DefaultProperties()
	props.Texture = "/textures/oak.png"
	resolver := &appearance.Resolver{
		Checker: appearance.CheckerFunc(func(string) bool { return true }),
		Log:     zerolog.Nop(),
	}
	p := makePanel(t, "Panel", props, feature.WithResolver(resolver))

	meshes, err := tessellate.Tessellate([]*feature.Panel{p}, tessellate.DefaultGap)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, m := range meshes {
		if m.Role != "Front" {
			continue
		}
		if m.Texture != "/textures/oak.png" {
			t.Errorf("front texture = %q", m.Texture)
		}
		if m.Color != "#FFFFFF" {
			t.Errorf("textured front color = %s, want white tint", m.Color)
		}
		return
	}
	t.Fatal("no front mesh")
}

func TestMerge(t *testing.T) {
	p := makePanel(t, "Panel", feature.DefaultProperties())
	meshes, err := tessellate.Tessellate([]*feature.Panel{p}, tessellate.DefaultGap)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	merged := tessellate.Merge(meshes)
	if merged.TriangleCount() != 7*12 {
		t.Errorf("merged triangle count = %d, want %d", merged.TriangleCount(), 7*12)
	}
	if merged.VertexCount() != 7*24 {
		t.Errorf("merged vertex count = %d, want %d", merged.VertexCount(), 7*24)
	}
}

// plainHost hides every method of the wrapped host beyond host.Host.
type plainHost struct {
	host.Host
}

func TestTessellateNeedsMeshingHost(t *testing.T) {
	h := plainHost{memhost.New(newKernel(), zerolog.Nop())}
	p, err := feature.Create(h, "Panel", feature.WithProperties(feature.DefaultProperties()))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	_, err = tessellate.Tessellate([]*feature.Panel{p}, tessellate.DefaultGap)
	if !errors.Is(err, tessellate.ErrNoMesher) {
		t.Errorf("err = %v, want ErrNoMesher", err)
	}
}

func TestTessellateMeshesHostSolids(t *testing.T) {
	// Without a kernel the host records shapes but realizes no solids.
	h := memhost.New(nil, zerolog.Nop())
	p, err := feature.Create(h, "Panel", feature.WithProperties(feature.DefaultProperties()))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if _, err := tessellate.Tessellate([]*feature.Panel{p}, tessellate.DefaultGap); err == nil {
		t.Fatal("expected an error for bodies without solids")
	}
}
