package recipe

import (
	"fmt"
	"path/filepath"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/chazu/blockforge/pkg/mesh"
	"github.com/chazu/blockforge/pkg/palette"
	"github.com/chazu/blockforge/pkg/scene"
	"github.com/chazu/blockforge/pkg/tessellate"
	"github.com/chazu/blockforge/pkg/texture"
	"github.com/chazu/blockforge/pkg/voxelize"
)

// defaultMaterialColor is used by materials declared without :color.
var defaultMaterialColor = mesh.DefaultMaterial().Color

// MaterialDef is a material as written in a recipe. Texture is a path
// relative to the recipe file; the sandbox never opens it.
type MaterialDef struct {
	Name    string
	Color   colorful.Color
	Opacity float64
	Texture string
}

// Recipe is the product of one evaluation: voxelization settings, the
// block palette, the material table and the scene to tessellate.
type Recipe struct {
	Name string

	// Zero or nil means the caller's value is kept.
	Resolution int
	SolidFill  *bool
	Center     *bool

	// Blocks replaces the default palette when non-empty.
	Blocks    []palette.Entry
	Overrides voxelize.Overrides
	Materials map[string]MaterialDef
	Scene     *scene.Scene
}

func newRecipe() *Recipe {
	return &Recipe{
		Overrides: voxelize.Overrides{},
		Materials: make(map[string]MaterialDef),
		Scene:     scene.New(),
	}
}

// Palette returns the recipe's block palette, or palette.Default when the
// recipe declares no blocks.
func (r *Recipe) Palette() (*palette.Palette, error) {
	if len(r.Blocks) == 0 {
		return palette.Default(), nil
	}
	p, err := palette.New(r.Blocks)
	if err != nil {
		return nil, fmt.Errorf("recipe: %w", err)
	}
	return p, nil
}

// ResolveMaterials turns the material table into mesh materials, loading
// textures relative to dir. Materials sharing a texture path share one
// texture handle.
func (r *Recipe) ResolveMaterials(dir string) (tessellate.Materials, error) {
	loaded := make(map[string]*texture.Texture)
	out := make(tessellate.Materials, len(r.Materials))
	for name, def := range r.Materials {
		mat := mesh.Material{Name: name, Color: def.Color, Opacity: def.Opacity}
		if def.Texture != "" {
			path := def.Texture
			if !filepath.IsAbs(path) {
				path = filepath.Join(dir, path)
			}
			tex, ok := loaded[path]
			if !ok {
				var err error
				if tex, err = texture.Load(path); err != nil {
					return nil, fmt.Errorf("recipe: material %q: %w", name, err)
				}
				loaded[path] = tex
			}
			mat.Texture = tex
		}
		out[name] = mat
	}
	return out, nil
}

// Apply copies the recipe's settings over cfg.
func (r *Recipe) Apply(cfg voxelize.Config) voxelize.Config {
	if r.Resolution > 0 {
		cfg.Resolution = r.Resolution
	}
	if r.SolidFill != nil {
		cfg.SolidFill = *r.SolidFill
	}
	if r.Center != nil {
		cfg.Center = *r.Center
	}
	if len(r.Overrides) > 0 {
		merged := make(voxelize.Overrides, len(cfg.Overrides)+len(r.Overrides))
		for k, v := range cfg.Overrides {
			merged[k] = v
		}
		for k, v := range r.Overrides {
			merged[k] = v
		}
		cfg.Overrides = merged
	}
	return cfg
}

// finish makes every top-level node a root when the recipe declared no
// assembly.
func (r *Recipe) finish() {
	s := r.Scene
	if len(s.Roots) > 0 {
		return
	}
	referenced := make(map[scene.NodeID]bool)
	for _, n := range s.All() {
		for _, c := range n.Children {
			referenced[c] = true
		}
	}
	for _, n := range s.All() {
		if !referenced[n.ID] {
			s.AddRoot(n.ID)
		}
	}
}
