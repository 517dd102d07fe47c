package mesh

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/chazu/blockforge/pkg/kernel"
)

// FromKernel converts a flat kernel mesh into a surface, applying xf to
// every vertex. UVs are kept when the kernel produced one pair per vertex.
func FromKernel(km *kernel.Mesh, xf mgl64.Mat4, mat Material) (Surface, error) {
	if km == nil {
		return Surface{}, fmt.Errorf("mesh: nil kernel mesh")
	}
	if len(km.Vertices)%3 != 0 {
		return Surface{}, fmt.Errorf("mesh: %s: %d vertex floats is not a multiple of 3", km.PartName, len(km.Vertices))
	}

	n := km.VertexCount()
	s := Surface{
		Name:      km.PartName,
		Positions: make([]mgl64.Vec3, n),
		Indices:   append([]uint32(nil), km.Indices...),
		Material:  mat,
	}
	for i := 0; i < n; i++ {
		p := mgl64.Vec3{
			float64(km.Vertices[i*3]),
			float64(km.Vertices[i*3+1]),
			float64(km.Vertices[i*3+2]),
		}
		s.Positions[i] = mgl64.TransformCoordinate(p, xf)
	}
	if len(km.UVs) == n*2 {
		s.UVs = make([]mgl64.Vec2, n)
		for i := range s.UVs {
			s.UVs[i] = mgl64.Vec2{float64(km.UVs[i*2]), float64(km.UVs[i*2+1])}
		}
	}
	if err := s.Validate(); err != nil {
		return Surface{}, err
	}
	return s, nil
}
