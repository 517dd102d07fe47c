// Package voxelize converts triangle meshes into sparse block voxels.
//
// A run casts grids of parallel rays along the six axis directions (up,
// front, right, down, back, left), claims the grid cell of every crossing,
// and optionally fills solid interiors with a vertical ray parity scan.
// Each claimed cell is colored from the hit's texture or material and
// matched to a block through the override table or the palette. The first
// pass to reach a cell decides its voxel.
//
// Runs are single threaded and cooperative: at fixed intervals the engine
// reports progress, hands newly found voxels to the caller and yields.
// Cancellation through the context is honored at those checkpoints.
package voxelize

import (
	"context"
	"fmt"
	"io"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/chazu/blockforge/pkg/geom"
	"github.com/chazu/blockforge/pkg/mesh"
	"github.com/chazu/blockforge/pkg/palette"
	"github.com/chazu/blockforge/pkg/texture"
	"github.com/chazu/blockforge/pkg/voxel"
)

// Engine voxelizes models against one palette. It owns the texture cache
// and allows one run at a time; concurrent calls to Voxelize wait.
type Engine struct {
	mu      sync.Mutex
	palette *palette.Palette
	cache   *texture.Cache
	logger  *log.Logger
}

// NewEngine returns an engine that matches against p.
func NewEngine(p *palette.Palette) *Engine {
	return &Engine{
		palette: p,
		cache:   texture.NewCache(),
		logger:  log.New(io.Discard, "", 0),
	}
}

// SetLogger directs run logs to l. A nil logger discards them.
func (e *Engine) SetLogger(l *log.Logger) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if l == nil {
		l = log.New(io.Discard, "", 0)
	}
	e.logger = l
}

// Cache exposes the texture cache of the most recent run. It waits for a
// run in progress to finish.
func (e *Engine) Cache() *texture.Cache {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.cache
}

// Voxelize runs all passes over model and returns the voxels in discovery
// order. The result equals the concatenation of every batch handed to
// cb.Batch.
//
// Configuration problems are reported before any ray is cast. If ctx is
// canceled the voxels found so far are returned together with an error
// wrapping ctx.Err().
func (e *Engine) Voxelize(ctx context.Context, model *mesh.Model, cfg Config, cb Callbacks) ([]voxel.Voxel, error) {
	if model == nil {
		return nil, ErrNilModel
	}
	if e.palette.Len() == 0 {
		return nil, ErrEmptyPalette
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg = cfg.withDefaults()
	if err := model.Validate(); err != nil {
		return nil, fmt.Errorf("voxelize: %w", err)
	}
	if model.TriangleCount() == 0 {
		return nil, ErrEmptyModel
	}
	if cfg.Center {
		model = model.Centered()
	}
	g, err := newGrid(model.Bounds(), cfg.Resolution, cfg.MinStep)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("voxelize: %w", err)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	runID := uuid.New()
	started := time.Now()
	bvh := geom.BuildBVH(model.Triangles())
	e.logger.Printf("voxelize: run %s: model %q, %d triangles, bounds %v..%v, step %.6g, resolution %d, fill %v",
		runID, model.Name, bvh.Len(), g.bounds.Min, g.bounds.Max, g.step, cfg.Resolution, cfg.SolidFill)

	index := voxel.NewIndex()
	passes := len(cfg.Directions)
	if cfg.SolidFill {
		passes++
	}
	sched := newScheduler(ctx, cb, index, passes)

	e.cache.Reset()
	if textures := model.Textures(); len(textures) > 0 {
		sched.report(0, StatusWarming)
		if err := e.cache.Warm(ctx, textures, cfg.TextureWorkers); err != nil {
			return nil, fmt.Errorf("voxelize: %w", err)
		}
		e.logger.Printf("voxelize: run %s: warmed %d of %d textures", runID, e.cache.Len(), len(textures))
	}

	res := &resolver{
		model:           model,
		palette:         e.palette,
		overrides:       cfg.Overrides,
		cache:           e.cache,
		materialOpacity: cfg.MaterialOpacity,
	}
	surface := &surfaceRaycaster{bvh: bvh, grid: g, res: res, index: index, every: cfg.SurfaceYieldEvery}

	for _, d := range cfg.Directions {
		before, t0 := index.Len(), time.Now()
		if err := surface.pass(d, sched); err != nil {
			e.logger.Printf("voxelize: run %s: %v (%d voxels kept)", runID, err, index.Len())
			return index.Voxels(), err
		}
		sched.endPass()
		e.logger.Printf("voxelize: run %s: %s pass added %d voxels in %s", runID, d, index.Len()-before, time.Since(t0))
	}

	if cfg.SolidFill {
		fill := &interiorFillScanner{bvh: bvh, grid: g, res: res, index: index, every: cfg.FillYieldEvery}
		before, t0 := index.Len(), time.Now()
		if err := fill.pass(sched); err != nil {
			e.logger.Printf("voxelize: run %s: %v (%d voxels kept)", runID, err, index.Len())
			return index.Voxels(), err
		}
		sched.endPass()
		e.logger.Printf("voxelize: run %s: interior pass added %d voxels in %s", runID, index.Len()-before, time.Since(t0))
	}

	sched.finish()
	e.logger.Printf("voxelize: run %s: %d voxels in %s", runID, index.Len(), time.Since(started))
	return index.Voxels(), nil
}

// Voxelize runs a one-off engine over model.
func Voxelize(ctx context.Context, model *mesh.Model, p *palette.Palette, cfg Config, cb Callbacks) ([]voxel.Voxel, error) {
	return NewEngine(p).Voxelize(ctx, model, cfg, cb)
}

// StepFor returns the voxel edge length a run with cfg would use.
func StepFor(model *mesh.Model, cfg Config) (float64, error) {
	if model == nil {
		return 0, ErrNilModel
	}
	cfg = cfg.withDefaults()
	return Step(model.Bounds(), cfg.Resolution, cfg.MinStep)
}
