package geom

import (
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl64"
)

// maxTrianglesPerLeaf is the threshold for splitting BVH nodes.
const maxTrianglesPerLeaf = 4

// coincidentEpsilon is the relative distance under which two hits along
// one ray are treated as the same crossing.
const coincidentEpsilon = 1e-9

// Hit is one ray/triangle crossing.
type Hit struct {
	T        float64
	Point    mgl64.Vec3
	Triangle int // index into the slice the BVH was built from
	Surface  int
	UV       mgl64.Vec2
	HasUV    bool
}

type bvhNode struct {
	bounds      AABB
	left, right *bvhNode
	tris        []int // leaf only
}

// BVH is a median-split bounding volume hierarchy over a fixed triangle
// slice. It is immutable once built and safe for concurrent queries.
type BVH struct {
	tris []Triangle
	root *bvhNode
}

// BuildBVH constructs a hierarchy over tris. Degenerate triangles are
// skipped; they can never produce a hit.
func BuildBVH(tris []Triangle) *BVH {
	b := &BVH{tris: tris}
	idx := make([]int, 0, len(tris))
	for i, t := range tris {
		if t.Degenerate() {
			continue
		}
		idx = append(idx, i)
	}
	if len(idx) > 0 {
		b.root = b.buildNode(idx)
	}
	return b
}

func (b *BVH) buildNode(idx []int) *bvhNode {
	node := &bvhNode{bounds: EmptyAABB()}
	for _, i := range idx {
		node.bounds = node.bounds.Union(b.tris[i].Bounds())
	}

	if len(idx) <= maxTrianglesPerLeaf {
		node.tris = idx
		return node
	}

	axis := node.bounds.LongestAxis()
	sort.SliceStable(idx, func(i, j int) bool {
		return b.tris[idx[i]].Centroid()[axis] < b.tris[idx[j]].Centroid()[axis]
	})

	mid := len(idx) / 2
	node.left = b.buildNode(idx[:mid])
	node.right = b.buildNode(idx[mid:])
	return node
}

// Len returns the number of triangles the hierarchy was built from.
func (b *BVH) Len() int { return len(b.tris) }

// Bounds returns the bounds of all non-degenerate triangles.
func (b *BVH) Bounds() AABB {
	if b.root == nil {
		return EmptyAABB()
	}
	return b.root.bounds
}

// IntersectAll returns every crossing along r ordered by distance. Ties are
// ordered by surface, then triangle index. Crossings of one surface at the
// same distance (a ray through a shared edge or vertex) are collapsed into
// the first one; touching faces of different surfaces stay separate hits.
func (b *BVH) IntersectAll(r Ray) []Hit {
	if b.root == nil {
		return nil
	}
	var hits []Hit
	b.collect(b.root, r, &hits)
	if len(hits) == 0 {
		return nil
	}

	sort.Slice(hits, func(i, j int) bool {
		if hits[i].T != hits[j].T {
			return hits[i].T < hits[j].T
		}
		if hits[i].Surface != hits[j].Surface {
			return hits[i].Surface < hits[j].Surface
		}
		return hits[i].Triangle < hits[j].Triangle
	})

	merged := hits[:1]
	for _, h := range hits[1:] {
		if !coincident(merged, h) {
			merged = append(merged, h)
		}
	}
	return merged
}

// coincident reports whether kept already holds a hit of h's surface at
// h's distance. kept is sorted by T, so only its tail is scanned.
func coincident(kept []Hit, h Hit) bool {
	tol := coincidentEpsilon * math.Max(1, math.Abs(h.T))
	for i := len(kept) - 1; i >= 0 && h.T-kept[i].T <= tol; i-- {
		if kept[i].Surface == h.Surface {
			return true
		}
	}
	return false
}

func (b *BVH) collect(n *bvhNode, r Ray, out *[]Hit) {
	if _, _, ok := n.bounds.Expand(baryEpsilon).IntersectRay(r); !ok {
		return
	}
	if n.tris != nil {
		for _, i := range n.tris {
			tri := b.tris[i]
			t, u, v, ok := Intersect(r, tri)
			if !ok {
				continue
			}
			h := Hit{
				T:        t,
				Point:    r.At(t),
				Triangle: i,
				Surface:  tri.Surface,
				HasUV:    tri.HasUV,
			}
			if tri.HasUV {
				h.UV = tri.InterpolateUV(u, v)
			}
			*out = append(*out, h)
		}
		return
	}
	b.collect(n.left, r, out)
	b.collect(n.right, r, out)
}
