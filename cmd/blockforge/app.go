package main

import (
	"context"
	"fmt"
	"log"
	"math"

	"github.com/chazu/blockforge/pkg/kernel"
	"github.com/chazu/blockforge/pkg/kernel/sdfx"
	"github.com/chazu/blockforge/pkg/mesh"
	"github.com/chazu/blockforge/pkg/palette"
	"github.com/chazu/blockforge/pkg/recipe"
	"github.com/chazu/blockforge/pkg/tessellate"
	"github.com/chazu/blockforge/pkg/voxel"
	"github.com/chazu/blockforge/pkg/voxelize"
)

// App runs the recipe pipeline: evaluate, tessellate, voxelize.
type App struct {
	engine *recipe.Engine
	kernel kernel.Kernel
	logger *log.Logger

	// Palette, when set, replaces whatever palette the recipe declares.
	Palette *palette.Palette
	// Adjust runs on the merged config after the recipe is applied, so
	// command line flags win over recipe settings.
	Adjust func(*voxelize.Config)
}

// Result is everything one build produced. Errors holds recipe faults;
// when it is non-empty nothing past evaluation ran.
type Result struct {
	Recipe  *recipe.Recipe
	Model   *mesh.Model
	Config  voxelize.Config
	Step    float64
	Voxels  []voxel.Voxel
	Batches int
	Errors  []recipe.EvalError
}

// NewApp creates an App with a recipe engine and the sdfx kernel meshing
// at the given cell count. A nil logger uses the standard logger.
func NewApp(cells int, logger *log.Logger) *App {
	if logger == nil {
		logger = log.Default()
	}
	return &App{
		engine: recipe.NewEngine(),
		kernel: sdfx.NewWithCells(cells),
		logger: logger,
	}
}

// Build evaluates source and voxelizes the resulting scene. dir is the
// directory texture paths in the recipe are relative to.
func (a *App) Build(ctx context.Context, source, dir string) (*Result, error) {
	// Step 1: Evaluate the recipe.
	r, evalErrs, err := a.engine.Evaluate(source)
	if err != nil {
		return nil, fmt.Errorf("evaluate: %w", err)
	}
	if len(evalErrs) > 0 {
		return &Result{Errors: evalErrs}, nil
	}
	res := &Result{Recipe: r}

	// Step 2: Resolve materials and tessellate the scene.
	mats, err := r.ResolveMaterials(dir)
	if err != nil {
		return nil, err
	}
	model, err := tessellate.Tessellate(r.Scene, a.kernel, mats)
	if err != nil {
		return nil, err
	}
	if r.Name != "" {
		model.Name = r.Name
	}
	res.Model = model
	a.logger.Printf("recipe %q: %d surfaces, %d triangles", model.Name, len(model.Surfaces), model.TriangleCount())

	// Step 3: Merge settings and pick the palette.
	cfg := voxelize.DefaultConfig()
	cfg.Center = true
	cfg.MaterialOpacity = true
	cfg = r.Apply(cfg)
	if a.Adjust != nil {
		a.Adjust(&cfg)
	}
	res.Config = cfg

	p := a.Palette
	if p == nil {
		if p, err = r.Palette(); err != nil {
			return nil, err
		}
	}
	if res.Step, err = voxelize.StepFor(model, cfg); err != nil {
		return nil, err
	}

	// Step 4: Voxelize, logging each whole ten percent once.
	eng := voxelize.NewEngine(p)
	eng.SetLogger(a.logger)
	lastTenth := -1
	cb := voxelize.Callbacks{
		Progress: func(percent float64, status string) {
			if tenth := int(math.Floor(percent / 10)); tenth > lastTenth {
				lastTenth = tenth
				a.logger.Printf("progress %3.0f%% %s", percent, status)
			}
		},
		Batch: func(vs []voxel.Voxel) { res.Batches++ },
	}
	res.Voxels, err = eng.Voxelize(ctx, model, cfg, cb)
	if err != nil {
		return res, err
	}
	return res, nil
}
