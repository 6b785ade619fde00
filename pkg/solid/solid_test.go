package solid

import (
	"math"
	"testing"

	"github.com/florelab/bloomforge/pkg/errors"
	"github.com/florelab/bloomforge/pkg/field"
	"github.com/florelab/bloomforge/pkg/geom"
)

func testField(t *testing.T) *field.Field {
	t.Helper()
	cfg := field.DefaultConfig(geom.Rect{Width: 20, Height: 25, Margin: 0.1})
	cfg.SeedCount = 6
	cfg.PetalCount = 6
	f, err := field.Generate(cfg)
	if err != nil {
		t.Fatal(err)
	}
	return f
}

func TestPlateGeometry(t *testing.T) {
	verts, faces := plate(20, 25, 3)
	if len(verts) != 8 {
		t.Errorf("plate vertices = %d, want 8", len(verts))
	}
	if len(faces) != 12 {
		t.Errorf("plate faces = %d, want 12", len(faces))
	}
	for _, v := range verts {
		if v.Z != 0 && v.Z != 3 {
			t.Errorf("plate vertex z = %g, want 0 or 3", v.Z)
		}
	}
}

func TestCylinderGeometry(t *testing.T) {
	verts, faces := cylinder(geom.Vec2{X: 5, Y: 5}, 2, 1, 4, 12)
	if want := 2*12 + 2; len(verts) != want {
		t.Errorf("cylinder vertices = %d, want %d", len(verts), want)
	}
	if want := 4 * 12; len(faces) != want {
		t.Errorf("cylinder faces = %d, want %d", len(faces), want)
	}
	for _, v := range verts[:24] {
		r := math.Hypot(v.X-5, v.Y-5)
		if math.Abs(r-2) > 1e-9 {
			t.Errorf("rim vertex radius = %g, want 2", r)
		}
	}
}

func TestBeamSkipsCoincidentEndpoints(t *testing.T) {
	verts, faces := beam(geom.Vec2{X: 3, Y: 3}, 1, geom.Vec2{X: 3, Y: 3}, 0.5, 2, 1.5)
	if len(verts) != 0 || len(faces) != 0 {
		t.Errorf("coincident beam emitted %d verts / %d faces, want none", len(verts), len(faces))
	}
}

func TestBeamDimensions(t *testing.T) {
	verts, faces := beam(geom.Vec2{X: 0, Y: 0}, 2, geom.Vec2{X: 10, Y: 0}, 1, 3, 2)
	if len(verts) != 8 || len(faces) != 12 {
		t.Fatalf("beam emitted %d verts / %d faces, want 8/12", len(verts), len(faces))
	}
	// Long axis spans the gap between the circumferences.
	if verts[0].X != 2 || verts[2].X != 9 {
		t.Errorf("beam spans x=[%g,%g], want [2,9]", verts[0].X, verts[2].X)
	}
	// Width is 0.6×min radius, centered on the axis.
	if got := verts[0].Y - verts[1].Y; math.Abs(got-0.6) > 1e-9 {
		t.Errorf("beam width = %g, want 0.6", got)
	}
	// Height is 0.8×petal height above the plate top.
	if got := verts[4].Z; math.Abs(got-(3+1.6)) > 1e-9 {
		t.Errorf("beam top z = %g, want 4.6", got)
	}
}

func TestMeshAppendOffsets(t *testing.T) {
	m := &Mesh{}
	m.Append([]geom.Vec3{{X: 1}, {X: 2}, {X: 3}}, [][3]int{{0, 1, 2}})
	m.Append([]geom.Vec3{{Y: 1}, {Y: 2}, {Y: 3}}, [][3]int{{0, 1, 2}})
	if m.VertexCount() != 6 || m.TriangleCount() != 2 {
		t.Fatalf("mesh has %d verts / %d tris, want 6/2", m.VertexCount(), m.TriangleCount())
	}
	if m.Faces[1] != [3]int{3, 4, 5} {
		t.Errorf("second face = %v, want offset [3 4 5]", m.Faces[1])
	}
}

func TestMeshAppendScrubsNaN(t *testing.T) {
	m := &Mesh{}
	m.Append([]geom.Vec3{{X: 1, Y: 1, Z: 1}, {X: math.NaN(), Y: 2, Z: math.Inf(1)}}, nil)
	got := m.Vertices[1]
	if got.X != 1 || got.Y != 2 || got.Z != 1 {
		t.Errorf("scrubbed vertex = %+v, want (1,2,1)", got)
	}
}

func TestSolidifyMeshClosure(t *testing.T) {
	f := testField(t)
	m, err := Solidify(f, DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	if m.TriangleCount() == 0 {
		t.Fatal("solidified mesh is empty")
	}
	for i, face := range m.Faces {
		for _, idx := range face {
			if idx < 0 || idx >= m.VertexCount() {
				t.Fatalf("face %d references vertex %d outside [0,%d)", i, idx, m.VertexCount())
			}
		}
	}
	for i, v := range m.Vertices {
		if !geom.IsFinite(v.X) || !geom.IsFinite(v.Y) || !geom.IsFinite(v.Z) {
			t.Fatalf("vertex %d is not finite: %+v", i, v)
		}
	}
}

func TestSolidifyDeterminism(t *testing.T) {
	f := testField(t)
	a, err := Solidify(f, DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	b, err := Solidify(f, DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	if a.VertexCount() != b.VertexCount() || a.TriangleCount() != b.TriangleCount() {
		t.Fatal("repeated solidification differs in size")
	}
	for i := range a.Vertices {
		if a.Vertices[i] != b.Vertices[i] {
			t.Fatalf("vertex %d differs", i)
		}
	}
}

func TestSolidifyRejectsBadOptions(t *testing.T) {
	f := testField(t)
	opts := DefaultOptions()
	opts.CenterSegments = 2
	if _, err := Solidify(f, opts); !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("expected INVALID_CONFIG, got %v", err)
	}
	opts = DefaultOptions()
	opts.PlateThickness = -1
	if _, err := Solidify(f, opts); !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("expected INVALID_CONFIG, got %v", err)
	}
}

func TestSolidifyMinFeatureFiltersThinPetals(t *testing.T) {
	f := testField(t)
	coarse, err := Solidify(f, DefaultOptions())
	if err != nil {
		t.Fatal(err)
	}
	opts := DefaultOptions()
	opts.MinFeature = 1.0
	fine, err := Solidify(f, opts)
	if err != nil {
		t.Fatal(err)
	}
	if fine.TriangleCount() >= coarse.TriangleCount() {
		t.Errorf("min-feature filter did not reduce geometry: %d >= %d",
			fine.TriangleCount(), coarse.TriangleCount())
	}
}

func TestMeshNormal(t *testing.T) {
	m := &Mesh{
		Vertices: []geom.Vec3{{}, {X: 1}, {Y: 1}},
		Faces:    [][3]int{{0, 1, 2}},
	}
	if n := m.Normal(0); n != (geom.Vec3{Z: 1}) {
		t.Errorf("normal = %+v, want (0,0,1)", n)
	}
	// Degenerate triangle: zero normal, never NaN.
	m.Vertices[1] = geom.Vec3{}
	if n := m.Normal(0); n != (geom.Vec3{}) {
		t.Errorf("degenerate normal = %+v, want zero", n)
	}
}
