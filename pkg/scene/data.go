package scene

import "github.com/go-gl/mathgl/mgl64"

// ---------------------------------------------------------------------------
// Primitives
// ---------------------------------------------------------------------------

// PrimitiveKind distinguishes between primitive shapes.
type PrimitiveKind int

const (
	PrimBox      PrimitiveKind = iota // min corner at the local origin
	PrimCylinder                      // along Z, centered on the local origin
	PrimSphere                        // centered on the local origin
)

func (k PrimitiveKind) String() string {
	switch k {
	case PrimBox:
		return "box"
	case PrimCylinder:
		return "cylinder"
	case PrimSphere:
		return "sphere"
	default:
		return "unknown"
	}
}

// PrimitiveData describes one solid. Size is used by boxes; Radius by
// cylinders and spheres; Height by cylinders. Material names an entry in
// the recipe's material table, empty for the default material.
type PrimitiveData struct {
	Kind     PrimitiveKind `json:"kind"`
	Size     mgl64.Vec3    `json:"size,omitempty"`
	Radius   float64       `json:"radius,omitempty"`
	Height   float64       `json:"height,omitempty"`
	Material string        `json:"material,omitempty"`
}

func (PrimitiveData) nodeData() {}

// ---------------------------------------------------------------------------
// Transform
// ---------------------------------------------------------------------------

// TransformData places its children. Rotation is applied first, as Euler
// angles in degrees about X, then Y, then Z.
// Created by the (place ...) recipe form.
type TransformData struct {
	Translation *mgl64.Vec3 `json:"translation,omitempty"`
	Rotation    *mgl64.Vec3 `json:"rotation,omitempty"`
}

func (TransformData) nodeData() {}

// Matrix returns the local transform as a 4x4 matrix.
func (td TransformData) Matrix() mgl64.Mat4 {
	m := mgl64.Ident4()
	if td.Translation != nil {
		t := *td.Translation
		m = mgl64.Translate3D(t.X(), t.Y(), t.Z())
	}
	if td.Rotation != nil {
		r := *td.Rotation
		rot := mgl64.HomogRotate3DZ(mgl64.DegToRad(r.Z())).
			Mul4(mgl64.HomogRotate3DY(mgl64.DegToRad(r.Y()))).
			Mul4(mgl64.HomogRotate3DX(mgl64.DegToRad(r.X())))
		m = m.Mul4(rot)
	}
	return m
}

// ---------------------------------------------------------------------------
// Group
// ---------------------------------------------------------------------------

// GroupData represents a logical grouping.
// Created by the (assembly ...) and (group ...) recipe forms.
type GroupData struct {
	Description string `json:"description,omitempty"`
}

func (GroupData) nodeData() {}

// ---------------------------------------------------------------------------
// Boolean
// ---------------------------------------------------------------------------

// BooleanOp selects how a boolean node combines its children.
type BooleanOp int

const (
	OpUnion        BooleanOp = iota
	OpDifference             // first child minus every later child
	OpIntersection
)

func (op BooleanOp) String() string {
	switch op {
	case OpUnion:
		return "union"
	case OpDifference:
		return "difference"
	case OpIntersection:
		return "intersection"
	default:
		return "unknown"
	}
}

// BooleanData combines the children into one solid tessellated with a
// single material. An empty Material takes the first primitive's.
type BooleanData struct {
	Op       BooleanOp `json:"op"`
	Material string    `json:"material,omitempty"`
}

func (BooleanData) nodeData() {}
