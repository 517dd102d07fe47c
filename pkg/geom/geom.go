// Package geom provides the ray casting primitives used by the voxelizer:
// axis-aligned bounding boxes, UV-mapped triangles, and a bounding volume
// hierarchy that reports every intersection along a ray.
package geom

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Axis identifies one of the three coordinate axes.
type Axis int

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	case AxisZ:
		return "z"
	default:
		return "unknown"
	}
}

// Ray is a half-line. Dir does not need to be normalized, but hit distances
// are reported in multiples of Dir.
type Ray struct {
	Origin mgl64.Vec3
	Dir    mgl64.Vec3
}

// At returns the point at parameter t along the ray.
func (r Ray) At(t float64) mgl64.Vec3 {
	return r.Origin.Add(r.Dir.Mul(t))
}

// AABB is an axis-aligned bounding box.
type AABB struct {
	Min, Max mgl64.Vec3
}

// EmptyAABB returns an inverted box that any Extend call will replace.
func EmptyAABB() AABB {
	inf := math.Inf(1)
	return AABB{
		Min: mgl64.Vec3{inf, inf, inf},
		Max: mgl64.Vec3{-inf, -inf, -inf},
	}
}

// IsEmpty reports whether the box contains no points.
func (b AABB) IsEmpty() bool {
	return b.Min[0] > b.Max[0] || b.Min[1] > b.Max[1] || b.Min[2] > b.Max[2]
}

// Extend grows the box to contain p.
func (b AABB) Extend(p mgl64.Vec3) AABB {
	for i := 0; i < 3; i++ {
		b.Min[i] = math.Min(b.Min[i], p[i])
		b.Max[i] = math.Max(b.Max[i], p[i])
	}
	return b
}

// Union returns the smallest box containing both b and o.
func (b AABB) Union(o AABB) AABB {
	if o.IsEmpty() {
		return b
	}
	return b.Extend(o.Min).Extend(o.Max)
}

// Size returns the extent along each axis.
func (b AABB) Size() mgl64.Vec3 {
	if b.IsEmpty() {
		return mgl64.Vec3{}
	}
	return b.Max.Sub(b.Min)
}

// Center returns the midpoint of the box.
func (b AABB) Center() mgl64.Vec3 {
	return b.Min.Add(b.Max).Mul(0.5)
}

// MaxExtent returns the largest extent over the three axes.
func (b AABB) MaxExtent() float64 {
	s := b.Size()
	return math.Max(s[0], math.Max(s[1], s[2]))
}

// LongestAxis returns the axis with the largest extent. Ties go to the
// lower axis.
func (b AABB) LongestAxis() Axis {
	s := b.Size()
	axis := AxisX
	if s[1] > s[axis] {
		axis = AxisY
	}
	if s[2] > s[axis] {
		axis = AxisZ
	}
	return axis
}

// Translate returns the box moved by d.
func (b AABB) Translate(d mgl64.Vec3) AABB {
	return AABB{Min: b.Min.Add(d), Max: b.Max.Add(d)}
}

// Expand returns the box grown by pad on every side.
func (b AABB) Expand(pad float64) AABB {
	p := mgl64.Vec3{pad, pad, pad}
	return AABB{Min: b.Min.Sub(p), Max: b.Max.Add(p)}
}

// IntersectRay runs the slab test and returns the parametric interval in
// which the ray is inside the box. Touching the boundary counts as a hit.
func (b AABB) IntersectRay(r Ray) (tmin, tmax float64, ok bool) {
	tmin = math.Inf(-1)
	tmax = math.Inf(1)
	for i := 0; i < 3; i++ {
		o, d := r.Origin[i], r.Dir[i]
		if d == 0 {
			if o < b.Min[i] || o > b.Max[i] {
				return 0, 0, false
			}
			continue
		}
		inv := 1 / d
		t0 := (b.Min[i] - o) * inv
		t1 := (b.Max[i] - o) * inv
		if t0 > t1 {
			t0, t1 = t1, t0
		}
		tmin = math.Max(tmin, t0)
		tmax = math.Min(tmax, t1)
		if tmin > tmax {
			return 0, 0, false
		}
	}
	return tmin, tmax, tmax >= 0
}
