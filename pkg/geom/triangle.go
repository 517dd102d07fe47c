package geom

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

const (
	// detEpsilon is relative to the magnitudes of the edge and direction
	// vectors, so it behaves the same for millimetre and kilometre models.
	detEpsilon = 1e-12
	// baryEpsilon widens the barycentric test so rays through a shared
	// edge hit both neighbours instead of slipping between them.
	baryEpsilon = 1e-9
)

// Triangle is a single mesh face with optional texture coordinates.
// Surface is the index of the owning surface in the source model.
type Triangle struct {
	A, B, C mgl64.Vec3
	UV      [3]mgl64.Vec2
	HasUV   bool
	Surface int
}

// Bounds returns the triangle's bounding box.
func (t Triangle) Bounds() AABB {
	return EmptyAABB().Extend(t.A).Extend(t.B).Extend(t.C)
}

// Centroid returns the mean of the three vertices.
func (t Triangle) Centroid() mgl64.Vec3 {
	return t.A.Add(t.B).Add(t.C).Mul(1.0 / 3.0)
}

// Normal returns the unnormalized face normal following the A, B, C winding.
func (t Triangle) Normal() mgl64.Vec3 {
	return t.B.Sub(t.A).Cross(t.C.Sub(t.A))
}

// Degenerate reports whether the triangle has (near) zero area.
func (t Triangle) Degenerate() bool {
	e1 := t.B.Sub(t.A)
	e2 := t.C.Sub(t.A)
	return t.Normal().Len() <= detEpsilon*e1.Len()*e2.Len()
}

// InterpolateUV returns the texture coordinate at barycentric (u, v), where
// the point is (1-u-v)*A + u*B + v*C.
func (t Triangle) InterpolateUV(u, v float64) mgl64.Vec2 {
	w := 1 - u - v
	return t.UV[0].Mul(w).Add(t.UV[1].Mul(u)).Add(t.UV[2].Mul(v))
}

// Intersect runs a two-sided Möller–Trumbore test. It returns the ray
// parameter and the barycentric coordinates of the hit. Hits at t <= 0 are
// rejected.
func Intersect(r Ray, tri Triangle) (t, u, v float64, ok bool) {
	e1 := tri.B.Sub(tri.A)
	e2 := tri.C.Sub(tri.A)
	p := r.Dir.Cross(e2)
	det := e1.Dot(p)

	scale := e1.Len() * e2.Len() * r.Dir.Len()
	if math.Abs(det) <= detEpsilon*scale {
		return 0, 0, 0, false
	}
	inv := 1 / det

	s := r.Origin.Sub(tri.A)
	u = s.Dot(p) * inv
	if u < -baryEpsilon || u > 1+baryEpsilon {
		return 0, 0, 0, false
	}

	q := s.Cross(e1)
	v = r.Dir.Dot(q) * inv
	if v < -baryEpsilon || u+v > 1+baryEpsilon {
		return 0, 0, 0, false
	}

	t = e2.Dot(q) * inv
	if t <= 0 {
		return 0, 0, 0, false
	}
	return t, u, v, true
}
