// Package mesh is the voxelizer's input model: named surfaces of UV-mapped
// triangles, each bound to one material.
package mesh

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/chazu/blockforge/pkg/geom"
	"github.com/chazu/blockforge/pkg/texture"
)

// ErrInvalidSurface is wrapped by Validate for malformed surfaces.
var ErrInvalidSurface = errors.New("mesh: invalid surface")

// Material is the shading input for one surface. Name is the key used by
// block override tables.
type Material struct {
	Name    string
	Color   colorful.Color
	Opacity float64          // 0..1
	Texture *texture.Texture // optional
}

// DefaultMaterial is mid gray and opaque.
func DefaultMaterial() Material {
	return Material{Name: "default", Color: colorful.Color{R: 0.5, G: 0.5, B: 0.5}, Opacity: 1}
}

// Surface is a triangle set sharing one material. When Indices is empty
// the positions are read as a triangle list. UVs is either empty or has
// one entry per position.
type Surface struct {
	Name      string
	Positions []mgl64.Vec3
	UVs       []mgl64.Vec2
	Indices   []uint32
	Material  Material
}

// HasUVs reports whether the surface carries texture coordinates.
func (s *Surface) HasUVs() bool {
	return len(s.UVs) > 0 && len(s.UVs) == len(s.Positions)
}

// TriangleCount returns the number of triangles.
func (s *Surface) TriangleCount() int {
	if len(s.Indices) > 0 {
		return len(s.Indices) / 3
	}
	return len(s.Positions) / 3
}

func (s *Surface) corner(tri, k int) int {
	if len(s.Indices) > 0 {
		return int(s.Indices[tri*3+k])
	}
	return tri*3 + k
}

// Validate checks index ranges, UV counts and coordinate sanity.
func (s *Surface) Validate() error {
	if len(s.Indices) > 0 && len(s.Indices)%3 != 0 {
		return fmt.Errorf("%w: %s: %d indices is not a multiple of 3", ErrInvalidSurface, s.Name, len(s.Indices))
	}
	if len(s.Indices) == 0 && len(s.Positions)%3 != 0 {
		return fmt.Errorf("%w: %s: %d positions is not a multiple of 3", ErrInvalidSurface, s.Name, len(s.Positions))
	}
	if len(s.UVs) > 0 && len(s.UVs) != len(s.Positions) {
		return fmt.Errorf("%w: %s: %d uvs for %d positions", ErrInvalidSurface, s.Name, len(s.UVs), len(s.Positions))
	}
	for i, idx := range s.Indices {
		if int(idx) >= len(s.Positions) {
			return fmt.Errorf("%w: %s: index %d (%d) out of range", ErrInvalidSurface, s.Name, i, idx)
		}
	}
	for i, p := range s.Positions {
		for _, c := range p {
			if math.IsNaN(c) || math.IsInf(c, 0) {
				return fmt.Errorf("%w: %s: position %d is not finite", ErrInvalidSurface, s.Name, i)
			}
		}
	}
	return nil
}

// Model is a named collection of surfaces.
type Model struct {
	Name     string
	Surfaces []Surface
}

// New returns a model over the given surfaces.
func New(name string, surfaces ...Surface) *Model {
	return &Model{Name: name, Surfaces: surfaces}
}

// Validate validates every surface.
func (m *Model) Validate() error {
	for i := range m.Surfaces {
		if err := m.Surfaces[i].Validate(); err != nil {
			return fmt.Errorf("mesh: surface %d: %w", i, err)
		}
	}
	return nil
}

// TriangleCount returns the number of triangles across all surfaces.
func (m *Model) TriangleCount() int {
	n := 0
	for i := range m.Surfaces {
		n += m.Surfaces[i].TriangleCount()
	}
	return n
}

// Bounds returns the bounding box of every referenced vertex.
func (m *Model) Bounds() geom.AABB {
	b := geom.EmptyAABB()
	for _, t := range m.Triangles() {
		b = b.Union(t.Bounds())
	}
	return b
}

// Triangles flattens the model in surface order. Triangle.Surface indexes
// m.Surfaces.
func (m *Model) Triangles() []geom.Triangle {
	out := make([]geom.Triangle, 0, m.TriangleCount())
	for si := range m.Surfaces {
		s := &m.Surfaces[si]
		hasUV := s.HasUVs()
		for ti := 0; ti < s.TriangleCount(); ti++ {
			a, b, c := s.corner(ti, 0), s.corner(ti, 1), s.corner(ti, 2)
			tri := geom.Triangle{
				A:       s.Positions[a],
				B:       s.Positions[b],
				C:       s.Positions[c],
				HasUV:   hasUV,
				Surface: si,
			}
			if hasUV {
				tri.UV = [3]mgl64.Vec2{s.UVs[a], s.UVs[b], s.UVs[c]}
			}
			out = append(out, tri)
		}
	}
	return out
}

// Translate returns a copy of the model moved by d. Materials and UVs are
// shared with the receiver.
func (m *Model) Translate(d mgl64.Vec3) *Model {
	out := &Model{Name: m.Name, Surfaces: make([]Surface, len(m.Surfaces))}
	for i, s := range m.Surfaces {
		moved := make([]mgl64.Vec3, len(s.Positions))
		for j, p := range s.Positions {
			moved[j] = p.Add(d)
		}
		s.Positions = moved
		out.Surfaces[i] = s
	}
	return out
}

// Centered returns a copy of the model with its bounding box centered on
// the origin.
func (m *Model) Centered() *Model {
	b := m.Bounds()
	if b.IsEmpty() {
		return m.Translate(mgl64.Vec3{})
	}
	return m.Translate(b.Center().Mul(-1))
}

// Textures returns the distinct textures referenced by surface materials,
// in first-use order.
func (m *Model) Textures() []*texture.Texture {
	seen := make(map[string]bool)
	var out []*texture.Texture
	for i := range m.Surfaces {
		t := m.Surfaces[i].Material.Texture
		if t == nil || seen[t.ID] {
			continue
		}
		seen[t.ID] = true
		out = append(out, t)
	}
	return out
}
