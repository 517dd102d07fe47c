package voxelize

import (
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/chazu/blockforge/pkg/geom"
	"github.com/chazu/blockforge/pkg/mesh"
	"github.com/chazu/blockforge/pkg/palette"
	"github.com/chazu/blockforge/pkg/texture"
	"github.com/chazu/blockforge/pkg/voxel"
)

// resolver turns a ray hit into a voxel: it samples the hit surface's
// texture or flat color and picks a block by override, then palette.
type resolver struct {
	model           *mesh.Model
	palette         *palette.Palette
	overrides       Overrides
	cache           *texture.Cache
	materialOpacity bool
}

// sample returns the color and alpha under a hit. Missing UVs or an
// undecodable texture fall back to the flat material color.
func (r *resolver) sample(h geom.Hit) (colorful.Color, float64) {
	mat := &r.model.Surfaces[h.Surface].Material
	if mat.Texture != nil && h.HasUV {
		if s, ok := r.cache.Get(mat.Texture); ok {
			return s.At(h.UV.X(), h.UV.Y())
		}
	}
	if r.materialOpacity {
		return mat.Color, mat.Opacity
	}
	return mat.Color, 1
}

// block returns the block id for a sample taken from the named material.
func (r *resolver) block(material string, c colorful.Color, alpha float64) string {
	if id, ok := r.overrides.Lookup(material); ok {
		return id
	}
	return r.palette.BestMatch(c, alpha).BlockID
}

func (r *resolver) resolve(h geom.Hit, cell voxel.Cell, step float64, phase voxel.Phase) voxel.Voxel {
	c, alpha := r.sample(h)
	name := r.model.Surfaces[h.Surface].Material.Name
	return voxel.Voxel{
		Position: cell.Position(step),
		Cell:     cell,
		Color:    c,
		Alpha:    alpha,
		BlockID:  r.block(name, c, alpha),
		Material: name,
		Phase:    phase,
	}
}
