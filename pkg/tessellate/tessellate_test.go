package tessellate_test

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/chazu/blockforge/pkg/kernel"
	"github.com/chazu/blockforge/pkg/kernel/sdfx"
	"github.com/chazu/blockforge/pkg/mesh"
	"github.com/chazu/blockforge/pkg/scene"
	"github.com/chazu/blockforge/pkg/tessellate"
)

// newKernel returns a coarse sdfx kernel so tests stay fast.
func newKernel() kernel.Kernel {
	return sdfx.NewWithCells(32)
}

var testMaterials = tessellate.Materials{
	"planks": {Color: colorful.Color{R: 0.6, G: 0.4, B: 0.2}, Opacity: 1},
	"iron":   {Name: "iron", Color: colorful.Color{R: 0.8, G: 0.8, B: 0.8}, Opacity: 1},
}

// makeBox creates a box primitive node with the given name and size.
func makeBox(name, material string, x, y, z float64) *scene.Node {
	return &scene.Node{
		ID:   scene.NewNodeID("defpart/" + name),
		Kind: scene.NodePrimitive,
		Name: name,
		Data: scene.PrimitiveData{Kind: scene.PrimBox, Size: mgl64.Vec3{x, y, z}, Material: material},
	}
}

// makePlace creates a transform node with a translation.
func makePlace(name string, tx, ty, tz float64, children ...scene.NodeID) *scene.Node {
	t := mgl64.Vec3{tx, ty, tz}
	return &scene.Node{
		ID:       scene.NewNodeID("place/" + name),
		Kind:     scene.NodeTransform,
		Children: children,
		Data:     scene.TransformData{Translation: &t},
	}
}

// makeGroup creates a group node with children.
func makeGroup(name string, children ...scene.NodeID) *scene.Node {
	return &scene.Node{
		ID:       scene.NewNodeID("assembly/" + name),
		Kind:     scene.NodeGroup,
		Name:     name,
		Children: children,
		Data:     scene.GroupData{Description: name},
	}
}

func assertNear(t *testing.T, what string, got, want mgl64.Vec3, tol float64) {
	t.Helper()
	for i := 0; i < 3; i++ {
		if math.Abs(got[i]-want[i]) > tol {
			t.Errorf("%s = %v, want %v (±%v)", what, got, want, tol)
			return
		}
	}
}

func TestSingleBox(t *testing.T) {
	s := scene.New()
	box := makeBox("shelf", "planks", 60, 30, 18)
	s.AddNode(box)
	s.AddRoot(box.ID)

	m, err := tessellate.Tessellate(s, newKernel(), testMaterials)
	if err != nil {
		t.Fatalf("Tessellate failed: %v", err)
	}
	if len(m.Surfaces) != 1 {
		t.Fatalf("expected 1 surface, got %d", len(m.Surfaces))
	}
	surf := m.Surfaces[0]
	if surf.Name != "shelf" {
		t.Errorf("surface name = %q, want shelf", surf.Name)
	}
	if surf.Material.Name != "planks" {
		t.Errorf("material name = %q, want planks", surf.Material.Name)
	}
	if !surf.HasUVs() {
		t.Error("kernel surfaces should carry UVs")
	}
	if m.TriangleCount() == 0 {
		t.Fatal("model should have triangles")
	}
	b := m.Bounds()
	assertNear(t, "min", b.Min, mgl64.Vec3{0, 0, 0}, 2)
	assertNear(t, "max", b.Max, mgl64.Vec3{60, 30, 18}, 2)
}

func TestPlacementStack(t *testing.T) {
	s := scene.New()
	box := makeBox("lid", "iron", 10, 2, 10)
	inner := makePlace("inner", 0, 8, 0, box.ID)
	outer := makePlace("outer", 100, 0, -50, inner.ID)
	s.AddNode(box)
	s.AddNode(inner)
	s.AddNode(outer)
	s.AddRoot(outer.ID)

	m, err := tessellate.Tessellate(s, newKernel(), testMaterials)
	if err != nil {
		t.Fatalf("Tessellate failed: %v", err)
	}
	b := m.Bounds()
	assertNear(t, "min", b.Min, mgl64.Vec3{100, 8, -50}, 1)
	assertNear(t, "max", b.Max, mgl64.Vec3{110, 10, -40}, 1)
}

func TestRotatedPlacement(t *testing.T) {
	s := scene.New()
	box := makeBox("plank", "planks", 20, 2, 4)
	rot := mgl64.Vec3{0, 0, 90}
	place := &scene.Node{
		ID:       scene.NewNodeID("place/plank"),
		Kind:     scene.NodeTransform,
		Children: []scene.NodeID{box.ID},
		Data:     scene.TransformData{Rotation: &rot},
	}
	s.AddNode(box)
	s.AddNode(place)
	s.AddRoot(place.ID)

	m, err := tessellate.Tessellate(s, newKernel(), testMaterials)
	if err != nil {
		t.Fatalf("Tessellate failed: %v", err)
	}
	// 90 degrees about Z maps +X onto +Y.
	size := m.Bounds().Size()
	assertNear(t, "size", size, mgl64.Vec3{2, 20, 4}, 1)
}

func TestAssembly(t *testing.T) {
	s := scene.New()
	left := makeBox("left-side", "planks", 2, 40, 30)
	right := makeBox("right-side", "planks", 2, 40, 30)
	top := makeBox("top", "iron", 60, 2, 30)
	for _, n := range []*scene.Node{left, right, top} {
		s.AddNode(n)
	}
	placeRight := makePlace("right", 58, 0, 0, right.ID)
	placeTop := makePlace("top", 0, 40, 0, top.ID)
	s.AddNode(placeRight)
	s.AddNode(placeTop)
	shelf := makeGroup("bookshelf", left.ID, placeRight.ID, placeTop.ID)
	s.AddNode(shelf)
	s.AddRoot(shelf.ID)

	m, err := tessellate.Tessellate(s, newKernel(), testMaterials)
	if err != nil {
		t.Fatalf("Tessellate failed: %v", err)
	}
	if len(m.Surfaces) != 3 {
		t.Fatalf("expected 3 surfaces, got %d", len(m.Surfaces))
	}
	for i, want := range []string{"left-side", "right-side", "top"} {
		if m.Surfaces[i].Name != want {
			t.Errorf("surface %d = %q, want %q", i, m.Surfaces[i].Name, want)
		}
	}
	if err := m.Validate(); err != nil {
		t.Errorf("model invalid: %v", err)
	}
}

func TestBooleanDifference(t *testing.T) {
	s := scene.New()
	block := makeBox("block", "planks", 20, 20, 20)
	hole := makeBox("hole", "", 8, 30, 8)
	placeHole := makePlace("hole", 6, -5, 6, hole.ID)
	diff := &scene.Node{
		ID:       scene.NewNodeID("difference/block"),
		Kind:     scene.NodeBoolean,
		Name:     "drilled",
		Children: []scene.NodeID{block.ID, placeHole.ID},
		Data:     scene.BooleanData{Op: scene.OpDifference, Material: "iron"},
	}
	for _, n := range []*scene.Node{block, hole, placeHole, diff} {
		s.AddNode(n)
	}
	s.AddRoot(diff.ID)

	m, err := tessellate.Tessellate(s, newKernel(), testMaterials)
	if err != nil {
		t.Fatalf("Tessellate failed: %v", err)
	}
	if len(m.Surfaces) != 1 {
		t.Fatalf("a boolean subtree should tessellate to 1 surface, got %d", len(m.Surfaces))
	}
	if got := m.Surfaces[0]; got.Name != "drilled" || got.Material.Name != "iron" {
		t.Errorf("surface = %q with %q, want drilled with iron", got.Name, got.Material.Name)
	}
	b := m.Bounds()
	assertNear(t, "max", b.Max, mgl64.Vec3{20, 20, 20}, 1.5)
}

func TestBooleanMaterialFallsBackToFirstOperand(t *testing.T) {
	s := scene.New()
	a := makeBox("a", "planks", 10, 10, 10)
	b := makeBox("b", "iron", 10, 10, 10)
	pb := makePlace("b", 5, 0, 0, b.ID)
	u := &scene.Node{
		ID:       scene.NewNodeID("union/ab"),
		Kind:     scene.NodeBoolean,
		Children: []scene.NodeID{a.ID, pb.ID},
		Data:     scene.BooleanData{Op: scene.OpUnion},
	}
	for _, n := range []*scene.Node{a, b, pb, u} {
		s.AddNode(n)
	}
	s.AddRoot(u.ID)

	m, err := tessellate.Tessellate(s, newKernel(), testMaterials)
	if err != nil {
		t.Fatalf("Tessellate failed: %v", err)
	}
	if got := m.Surfaces[0].Material.Name; got != "planks" {
		t.Errorf("material = %q, want planks", got)
	}
	assertNear(t, "max", m.Bounds().Max, mgl64.Vec3{15, 10, 10}, 1)
}

func TestSurfacesTakeNearestPartName(t *testing.T) {
	s := scene.New()
	// A part whose body is an unnamed boolean, as defpart builds it.
	block := &scene.Node{ID: scene.NewNodeID("box/_anon_1"), Kind: scene.NodePrimitive,
		Data: scene.PrimitiveData{Kind: scene.PrimBox, Size: mgl64.Vec3{10, 10, 10}, Material: "planks"}}
	bore := &scene.Node{ID: scene.NewNodeID("sphere/_anon_2"), Kind: scene.NodePrimitive,
		Data: scene.PrimitiveData{Kind: scene.PrimSphere, Radius: 3}}
	diff := &scene.Node{ID: scene.NewNodeID("difference/_anon_3"), Kind: scene.NodeBoolean,
		Children: []scene.NodeID{block.ID, bore.ID}, Data: scene.BooleanData{Op: scene.OpDifference}}
	body := makeGroup("body", diff.ID)

	// A part whose body is a placement of an unnamed primitive.
	disc := &scene.Node{ID: scene.NewNodeID("cylinder/_anon_4"), Kind: scene.NodePrimitive,
		Data: scene.PrimitiveData{Kind: scene.PrimCylinder, Radius: 2, Height: 1, Material: "iron"}}
	placeDisc := makePlace("disc", 5, 5, 0, disc.ID)
	window := makeGroup("window", placeDisc.ID)

	// An unnamed root keeps its short ID.
	loose := &scene.Node{ID: scene.NewNodeID("box/_anon_5"), Kind: scene.NodePrimitive,
		Data: scene.PrimitiveData{Kind: scene.PrimBox, Size: mgl64.Vec3{1, 1, 1}}}

	for _, n := range []*scene.Node{block, bore, diff, body, disc, placeDisc, window, loose} {
		s.AddNode(n)
	}
	s.AddRoot(body.ID)
	s.AddRoot(window.ID)
	s.AddRoot(loose.ID)

	m, err := tessellate.Tessellate(s, newKernel(), testMaterials)
	if err != nil {
		t.Fatalf("Tessellate failed: %v", err)
	}
	want := []string{"body", "window", loose.ID.Short()}
	if len(m.Surfaces) != len(want) {
		t.Fatalf("expected %d surfaces, got %d", len(want), len(m.Surfaces))
	}
	for i, name := range want {
		if m.Surfaces[i].Name != name {
			t.Errorf("surface %d = %q, want %q", i, m.Surfaces[i].Name, name)
		}
	}
}

func TestDefaultAndUnknownMaterials(t *testing.T) {
	s := scene.New()
	box := makeBox("plain", "", 5, 5, 5)
	s.AddNode(box)
	s.AddRoot(box.ID)

	m, err := tessellate.Tessellate(s, newKernel(), nil)
	if err != nil {
		t.Fatalf("Tessellate failed: %v", err)
	}
	if m.Surfaces[0].Material != mesh.DefaultMaterial() {
		t.Errorf("material = %+v, want the default", m.Surfaces[0].Material)
	}

	s = scene.New()
	box = makeBox("odd", "unobtainium", 5, 5, 5)
	s.AddNode(box)
	s.AddRoot(box.ID)
	if _, err := tessellate.Tessellate(s, newKernel(), testMaterials); !errors.Is(err, tessellate.ErrUnknownMaterial) {
		t.Fatalf("error = %v, want ErrUnknownMaterial", err)
	}
}

func TestInvalidScene(t *testing.T) {
	s := scene.New()
	box := makeBox("flat", "planks", 10, 0, 10)
	s.AddNode(box)
	s.AddRoot(box.ID)

	_, err := tessellate.Tessellate(s, newKernel(), testMaterials)
	if err == nil || !strings.Contains(err.Error(), "dimension Y") {
		t.Fatalf("error = %v, want a dimension finding", err)
	}
}

func TestEmptyScene(t *testing.T) {
	m, err := tessellate.Tessellate(scene.New(), newKernel(), testMaterials)
	if err != nil {
		t.Fatalf("Tessellate failed: %v", err)
	}
	if len(m.Surfaces) != 0 {
		t.Fatalf("expected 0 surfaces, got %d", len(m.Surfaces))
	}
}
