package sdfx

import (
	"math"
	"testing"
)

func TestBox(t *testing.T) {
	k := New()
	box := k.Box(100, 50, 25)
	mesh, err := k.ToMesh(box)
	if err != nil {
		t.Fatalf("ToMesh failed: %v", err)
	}
	if mesh.IsEmpty() {
		t.Fatal("mesh is empty")
	}
	if mesh.VertexCount() == 0 {
		t.Fatal("expected non-zero vertex count")
	}
	triCount := mesh.TriangleCount()
	if triCount == 0 {
		t.Fatal("expected non-zero triangle count")
	}
	// A box should produce exactly 12 triangles (2 per face, 6 faces).
	if triCount != 12 {
		t.Logf("box triangle count: %d (expected 12)", triCount)
	}
	// Verify vertex and index array sizes are consistent.
	if len(mesh.Vertices) != len(mesh.Normals) {
		t.Fatalf("vertices length %d != normals length %d", len(mesh.Vertices), len(mesh.Normals))
	}
	if len(mesh.Indices) != triCount*3 {
		t.Fatalf("indices length %d != triCount*3 %d", len(mesh.Indices), triCount*3)
	}
}

func TestCylinder(t *testing.T) {
	k := New()
	cyl := k.Cylinder(50, 10, 32)
	mesh, err := k.ToMesh(cyl)
	if err != nil {
		t.Fatalf("ToMesh failed: %v", err)
	}
	if mesh.IsEmpty() {
		t.Fatal("mesh is empty")
	}
	if mesh.TriangleCount() == 0 {
		t.Fatal("expected non-zero triangle count")
	}
	t.Logf("cylinder triangle count: %d", mesh.TriangleCount())
}

func TestDifference(t *testing.T) {
	k := NewWithCells(32)

	box := k.Box(100, 100, 100)
	// Boxes sit on their minimum corner and cylinders on their center, so
	// the bore is moved to the middle of the box's XY face.
	bore := k.Translate(k.Cylinder(120, 20, 32), 50, 50, 50)
	diff := k.Difference(box, bore)
	diffMesh, err := k.ToMesh(diff)
	if err != nil {
		t.Fatalf("ToMesh(diff) failed: %v", err)
	}
	if diffMesh.IsEmpty() {
		t.Fatal("difference mesh is empty")
	}

	// The bore wall shows up as vertices about 20 from the axis, well
	// inside the box along Z. A plain box has none there.
	const tol = 100.0 / 32 * 1.5
	var wall int
	for i := 0; i+2 < len(diffMesh.Vertices); i += 3 {
		x, y, z := float64(diffMesh.Vertices[i]), float64(diffMesh.Vertices[i+1]), float64(diffMesh.Vertices[i+2])
		if z < 10 || z > 90 {
			continue
		}
		r := math.Hypot(x-50, y-50)
		if r < 20-tol {
			t.Fatalf("vertex (%g,%g,%g) inside the bore", x, y, z)
		}
		if r < 20+tol {
			wall++
		}
	}
	if wall == 0 {
		t.Fatal("no vertices on the bore wall")
	}

	// Subtracting a through bore leaves the outer bounds alone.
	min, max := diff.BoundingBox()
	for i := 0; i < 3; i++ {
		if math.Abs(min[i]) > 0.5 || math.Abs(max[i]-100) > 0.5 {
			t.Errorf("bounds = %v..%v, want 0..100", min, max)
			break
		}
	}
	t.Logf("difference triangles: %d, bore wall vertices: %d", diffMesh.TriangleCount(), wall)
}

func TestUnion(t *testing.T) {
	k := New()
	box1 := k.Box(50, 50, 50)
	box2 := k.Translate(k.Box(50, 50, 50), 30, 0, 0)
	u := k.Union(box1, box2)
	mesh, err := k.ToMesh(u)
	if err != nil {
		t.Fatalf("ToMesh failed: %v", err)
	}
	if mesh.IsEmpty() {
		t.Fatal("union mesh is empty")
	}
	t.Logf("union triangle count: %d", mesh.TriangleCount())
}

func TestTranslate(t *testing.T) {
	k := New()
	box := k.Box(10, 10, 10)
	translated := k.Translate(box, 100, 200, 300)

	min, max := translated.BoundingBox()

	// Box has its minimum corner at the origin, so the translated box spans
	// (100,200,300) to (110,210,310).
	const tol = 0.5
	expectMin := [3]float64{100, 200, 300}
	expectMax := [3]float64{110, 210, 310}

	for i := 0; i < 3; i++ {
		if math.Abs(min[i]-expectMin[i]) > tol {
			t.Errorf("min[%d] = %f, expected ~%f", i, min[i], expectMin[i])
		}
		if math.Abs(max[i]-expectMax[i]) > tol {
			t.Errorf("max[%d] = %f, expected ~%f", i, max[i], expectMax[i])
		}
	}
}

func TestBoundingBox(t *testing.T) {
	k := New()
	box := k.Box(100, 50, 25)
	min, max := box.BoundingBox()

	const tol = 0.01
	expectMin := [3]float64{0, 0, 0}
	expectMax := [3]float64{100, 50, 25}

	for i := 0; i < 3; i++ {
		if math.Abs(min[i]-expectMin[i]) > tol {
			t.Errorf("min[%d] = %f, expected %f", i, min[i], expectMin[i])
		}
		if math.Abs(max[i]-expectMax[i]) > tol {
			t.Errorf("max[%d] = %f, expected %f", i, max[i], expectMax[i])
		}
	}
}

func TestSphere(t *testing.T) {
	k := NewWithCells(40)
	sphere := k.Sphere(5)
	min, max := sphere.BoundingBox()
	for i := 0; i < 3; i++ {
		if math.Abs(min[i]+5) > 0.01 || math.Abs(max[i]-5) > 0.01 {
			t.Errorf("axis %d bounds = %f..%f, expected -5..5", i, min[i], max[i])
		}
	}
	mesh, err := k.ToMesh(sphere)
	if err != nil {
		t.Fatalf("ToMesh failed: %v", err)
	}
	if mesh.TriangleCount() == 0 {
		t.Fatal("expected non-zero triangle count")
	}
}

func TestToMeshUVs(t *testing.T) {
	k := NewWithCells(20)
	mesh, err := k.ToMesh(k.Box(4, 2, 1))
	if err != nil {
		t.Fatalf("ToMesh failed: %v", err)
	}
	if !mesh.HasUVs() {
		t.Fatalf("uvs length %d for %d vertices", len(mesh.UVs), mesh.VertexCount())
	}
	const slack = 0.05
	for i, uv := range mesh.UVs {
		if uv < -slack || uv > 1+slack {
			t.Fatalf("uv[%d] = %f, expected within [0,1]", i, uv)
		}
	}
}

func TestProjectionAxes(t *testing.T) {
	tests := []struct {
		name       string
		nx, ny, nz float64
		u, v       int
	}{
		{"x dominant", 1, 0.2, 0.1, 1, 2},
		{"y dominant", 0.1, -1, 0.2, 2, 0},
		{"z dominant", 0.1, 0.2, -1, 0, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u, v := projectionAxes(tt.nx, tt.ny, tt.nz)
			if u != tt.u || v != tt.v {
				t.Errorf("projectionAxes() = (%d, %d), want (%d, %d)", u, v, tt.u, tt.v)
			}
		})
	}
}

func TestIntersection(t *testing.T) {
	k := New()
	box1 := k.Box(100, 100, 100)
	box2 := k.Translate(k.Box(100, 100, 100), 50, 0, 0)
	inter := k.Intersection(box1, box2)
	mesh, err := k.ToMesh(inter)
	if err != nil {
		t.Fatalf("ToMesh failed: %v", err)
	}
	if mesh.IsEmpty() {
		t.Fatal("intersection mesh is empty")
	}
	t.Logf("intersection triangle count: %d", mesh.TriangleCount())
}

func TestRotate(t *testing.T) {
	k := New()
	box := k.Box(100, 10, 10)

	// A long box along X rotated 90 degrees around Z should extend along Y instead.
	rotated := k.Rotate(box, 0, 0, 90)
	min, max := rotated.BoundingBox()

	// After 90-degree Z rotation, the X extent should be small and Y extent large.
	xExtent := max[0] - min[0]
	yExtent := max[1] - min[1]

	const tol = 1.0
	if math.Abs(xExtent-10) > tol {
		t.Errorf("rotated X extent = %f, expected ~10", xExtent)
	}
	if math.Abs(yExtent-100) > tol {
		t.Errorf("rotated Y extent = %f, expected ~100", yExtent)
	}
}
