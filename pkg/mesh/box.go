package mesh

import "github.com/go-gl/mathgl/mgl64"

// Face names one side of an axis-aligned box by its outward normal.
type Face int

const (
	FacePosX Face = iota
	FaceNegX
	FacePosY
	FaceNegY
	FacePosZ
	FaceNegZ
)

// AllFaces lists the six box faces.
var AllFaces = []Face{FacePosX, FaceNegX, FacePosY, FaceNegY, FacePosZ, FaceNegZ}

// quad returns the corner and the two edge vectors of a face. The edges
// are ordered so that u × v points outward.
func (f Face) quad(lo, hi mgl64.Vec3) (o, u, v mgl64.Vec3) {
	d := hi.Sub(lo)
	switch f {
	case FacePosX:
		return mgl64.Vec3{hi.X(), lo.Y(), hi.Z()}, mgl64.Vec3{0, 0, -d.Z()}, mgl64.Vec3{0, d.Y(), 0}
	case FaceNegX:
		return lo, mgl64.Vec3{0, 0, d.Z()}, mgl64.Vec3{0, d.Y(), 0}
	case FacePosY:
		return mgl64.Vec3{lo.X(), hi.Y(), hi.Z()}, mgl64.Vec3{d.X(), 0, 0}, mgl64.Vec3{0, 0, -d.Z()}
	case FaceNegY:
		return lo, mgl64.Vec3{d.X(), 0, 0}, mgl64.Vec3{0, 0, d.Z()}
	case FacePosZ:
		return mgl64.Vec3{lo.X(), lo.Y(), hi.Z()}, mgl64.Vec3{d.X(), 0, 0}, mgl64.Vec3{0, d.Y(), 0}
	default: // FaceNegZ
		return mgl64.Vec3{hi.X(), lo.Y(), lo.Z()}, mgl64.Vec3{-d.X(), 0, 0}, mgl64.Vec3{0, d.Y(), 0}
	}
}

// BoxFaces builds the given faces of the box [lo, hi] as one surface. Each
// face is two triangles with UVs covering the full [0,1] square.
func BoxFaces(name string, lo, hi mgl64.Vec3, mat Material, faces ...Face) Surface {
	s := Surface{Name: name, Material: mat}
	for _, f := range faces {
		o, u, v := f.quad(lo, hi)
		base := uint32(len(s.Positions))
		s.Positions = append(s.Positions, o, o.Add(u), o.Add(u).Add(v), o.Add(v))
		s.UVs = append(s.UVs, mgl64.Vec2{0, 0}, mgl64.Vec2{1, 0}, mgl64.Vec2{1, 1}, mgl64.Vec2{0, 1})
		s.Indices = append(s.Indices, base, base+1, base+2, base, base+2, base+3)
	}
	return s
}

// Box builds a closed box [lo, hi].
func Box(name string, lo, hi mgl64.Vec3, mat Material) Surface {
	return BoxFaces(name, lo, hi, mat, AllFaces...)
}
