// Package tessellate walks a scene and produces the voxelizer's input
// model using a geometry kernel. Each primitive, and each boolean subtree,
// becomes one surface carrying its resolved material.
package tessellate

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/samber/lo"

	"github.com/chazu/blockforge/pkg/kernel"
	"github.com/chazu/blockforge/pkg/mesh"
	"github.com/chazu/blockforge/pkg/scene"
)

// ErrUnknownMaterial is returned when a node names a material that the
// material table does not define.
var ErrUnknownMaterial = errors.New("tessellate: unknown material")

// Materials maps the material names used in a scene to their definitions.
// Nodes with no material name get mesh.DefaultMaterial.
type Materials map[string]mesh.Material

func (m Materials) resolve(name string) (mesh.Material, error) {
	if name == "" {
		return mesh.DefaultMaterial(), nil
	}
	mat, ok := m[name]
	if !ok {
		return mesh.Material{}, fmt.Errorf("%w %q", ErrUnknownMaterial, name)
	}
	if mat.Name == "" {
		mat.Name = name
	}
	return mat, nil
}

// cylinderSegments is passed to kernels that facet cylinders.
const cylinderSegments = 32

// walker carries one traversal. world is the transform stack: the top is
// the product of every enclosing placement.
type walker struct {
	s        *scene.Scene
	k        kernel.Kernel
	mats     Materials
	world    []mgl64.Mat4
	surfaces []mesh.Surface
}

func (w *walker) top() mgl64.Mat4 {
	return w.world[len(w.world)-1]
}

func (w *walker) push(m mgl64.Mat4) {
	w.world = append(w.world, w.top().Mul4(m))
}

func (w *walker) pop() {
	w.world = w.world[:len(w.world)-1]
}

// Tessellate walks the scene from its roots and returns one model. The
// scene is validated first and never mutated.
func Tessellate(s *scene.Scene, k kernel.Kernel, mats Materials) (*mesh.Model, error) {
	if s == nil {
		return mesh.New("scene"), nil
	}
	if errs := scene.Errors(scene.Validate(s)); len(errs) > 0 {
		joined := errors.Join(lo.Map(errs, func(e scene.ValidationError, _ int) error { return e })...)
		return nil, fmt.Errorf("tessellate: invalid scene: %w", joined)
	}

	w := &walker{s: s, k: k, mats: mats, world: []mgl64.Mat4{mgl64.Ident4()}}
	for _, rootID := range s.Roots {
		root := s.Get(rootID)
		if root == nil {
			continue
		}
		if err := w.walk(root, ""); err != nil {
			return nil, fmt.Errorf("tessellate: error walking root %s: %w", rootID.Short(), err)
		}
	}
	return mesh.New("scene", w.surfaces...), nil
}

// walk recursively traverses a node and its children, collecting surfaces.
// part is the name of the nearest named ancestor; surfaces of unnamed
// nodes take it.
func (w *walker) walk(n *scene.Node, part string) error {
	if n.Name != "" {
		part = n.Name
	}
	switch n.Kind {
	case scene.NodePrimitive:
		d, ok := n.Data.(scene.PrimitiveData)
		if !ok {
			return fmt.Errorf("primitive node %s has unexpected data type %T", n.ID.Short(), n.Data)
		}
		solid, err := w.primitive(n, d)
		if err != nil {
			return err
		}
		return w.emit(n, part, solid, d.Material)

	case scene.NodeTransform:
		td, ok := n.Data.(scene.TransformData)
		if !ok {
			return fmt.Errorf("transform node %s has unexpected data type %T", n.ID.Short(), n.Data)
		}
		w.push(td.Matrix())
		defer w.pop()
		return w.walkChildren(n, part)

	case scene.NodeGroup:
		return w.walkChildren(n, part)

	case scene.NodeBoolean:
		solid, mat, err := w.solid(n)
		if err != nil {
			return err
		}
		return w.emit(n, part, solid, mat)

	default:
		return fmt.Errorf("unknown node kind: %v", n.Kind)
	}
}

func (w *walker) walkChildren(n *scene.Node, part string) error {
	for _, child := range w.s.Children(n) {
		if err := w.walk(child, part); err != nil {
			return err
		}
	}
	return nil
}

// emit tessellates solid and appends it as a surface named part, placed
// by the current world transform.
func (w *walker) emit(n *scene.Node, part string, solid kernel.Solid, material string) error {
	if part == "" {
		part = n.ID.Short()
	}
	mat, err := w.mats.resolve(material)
	if err != nil {
		return fmt.Errorf("node %s: %w", part, err)
	}
	km, err := w.k.ToMesh(solid)
	if err != nil {
		return fmt.Errorf("tessellate: ToMesh failed for node %s: %w", part, err)
	}
	km.PartName = part
	surface, err := mesh.FromKernel(km, w.top(), mat)
	if err != nil {
		return fmt.Errorf("node %s: %w", part, err)
	}
	w.surfaces = append(w.surfaces, surface)
	return nil
}

func (w *walker) primitive(n *scene.Node, d scene.PrimitiveData) (kernel.Solid, error) {
	switch d.Kind {
	case scene.PrimBox:
		return w.k.Box(d.Size.X(), d.Size.Y(), d.Size.Z()), nil
	case scene.PrimCylinder:
		return w.k.Cylinder(d.Height, d.Radius, cylinderSegments), nil
	case scene.PrimSphere:
		return w.k.Sphere(d.Radius), nil
	default:
		return nil, fmt.Errorf("primitive node %s has unsupported kind %v", n.ID.Short(), d.Kind)
	}
}

// solid folds a subtree into one kernel solid in the subtree's local
// frame. The returned material is the first one named inside it.
func (w *walker) solid(n *scene.Node) (kernel.Solid, string, error) {
	switch n.Kind {
	case scene.NodePrimitive:
		d, ok := n.Data.(scene.PrimitiveData)
		if !ok {
			return nil, "", fmt.Errorf("primitive node %s has unexpected data type %T", n.ID.Short(), n.Data)
		}
		s, err := w.primitive(n, d)
		return s, d.Material, err

	case scene.NodeTransform:
		td, _ := n.Data.(scene.TransformData)
		s, mat, err := w.fold(n, w.k.Union)
		if err != nil {
			return nil, "", err
		}
		if r := td.Rotation; r != nil {
			s = w.k.Rotate(s, r.X(), r.Y(), r.Z())
		}
		if t := td.Translation; t != nil {
			s = w.k.Translate(s, t.X(), t.Y(), t.Z())
		}
		return s, mat, nil

	case scene.NodeGroup:
		return w.fold(n, w.k.Union)

	case scene.NodeBoolean:
		bd, _ := n.Data.(scene.BooleanData)
		op := w.k.Union
		switch bd.Op {
		case scene.OpDifference:
			op = w.k.Difference
		case scene.OpIntersection:
			op = w.k.Intersection
		}
		s, mat, err := w.fold(n, op)
		if bd.Material != "" {
			mat = bd.Material
		}
		return s, mat, err

	default:
		return nil, "", fmt.Errorf("unknown node kind: %v", n.Kind)
	}
}

// fold combines the children of n left to right with op.
func (w *walker) fold(n *scene.Node, op func(a, b kernel.Solid) kernel.Solid) (kernel.Solid, string, error) {
	var (
		acc kernel.Solid
		mat string
	)
	for _, child := range w.s.Children(n) {
		s, m, err := w.solid(child)
		if err != nil {
			return nil, "", err
		}
		if mat == "" {
			mat = m
		}
		if acc == nil {
			acc = s
		} else {
			acc = op(acc, s)
		}
	}
	if acc == nil {
		return nil, "", fmt.Errorf("%s node %s has no solids", n.Kind, n.ID.Short())
	}
	return acc, mat, nil
}
