package voxelize

import (
	"errors"
	"fmt"
	"runtime"
)

// Configuration errors. They are returned before any ray is cast.
var (
	ErrInvalidResolution = errors.New("voxelize: resolution must be positive")
	ErrEmptyPalette      = errors.New("voxelize: palette is empty")
	ErrNilModel          = errors.New("voxelize: model is nil")
	ErrEmptyModel        = errors.New("voxelize: model has no triangles")
	ErrDegenerateBounds  = errors.New("voxelize: bounding box has zero volume")
	ErrInvalidDirection  = errors.New("voxelize: invalid scan direction")
)

const (
	DefaultResolution        = 64
	DefaultSurfaceYieldEvery = 150
	DefaultFillYieldEvery    = 10
	// DefaultMinStep is the smallest voxel edge the engine will use.
	DefaultMinStep = 1e-6
)

// Overrides maps material names to forced block ids. Empty ids are
// ignored.
type Overrides map[string]string

// Lookup returns the forced block id for a material, if any.
func (o Overrides) Lookup(material string) (string, bool) {
	id, ok := o[material]
	if !ok || id == "" {
		return "", false
	}
	return id, true
}

// Config controls one voxelization run.
type Config struct {
	// Resolution is the number of voxels along the longest bounding box
	// axis.
	Resolution int
	// SolidFill adds the interior fill pass.
	SolidFill bool
	// Overrides is consulted before palette matching.
	Overrides Overrides
	// Center moves the model's bounding box center to the origin first.
	Center bool
	// Directions selects and orders the surface passes. Nil means all six
	// in the default order.
	Directions []Direction
	// MaterialOpacity makes untextured hits use the material opacity as
	// their alpha instead of 1.
	MaterialOpacity bool

	// SurfaceYieldEvery is the number of rays between checkpoints in a
	// surface pass.
	SurfaceYieldEvery int
	// FillYieldEvery is the number of x columns between checkpoints in the
	// fill pass.
	FillYieldEvery int
	// MinStep bounds the voxel edge length from below.
	MinStep float64
	// TextureWorkers is the size of the texture warm-up pool.
	TextureWorkers int
}

// DefaultConfig returns the standard settings.
func DefaultConfig() Config {
	return Config{
		Resolution:        DefaultResolution,
		SurfaceYieldEvery: DefaultSurfaceYieldEvery,
		FillYieldEvery:    DefaultFillYieldEvery,
		MinStep:           DefaultMinStep,
		TextureWorkers:    runtime.NumCPU(),
	}
}

// Validate reports configuration errors.
func (c Config) Validate() error {
	if c.Resolution <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidResolution, c.Resolution)
	}
	if c.Directions != nil && len(c.Directions) == 0 {
		return fmt.Errorf("%w: empty direction list", ErrInvalidDirection)
	}
	seen := make(map[Direction]bool)
	for _, d := range c.Directions {
		if !d.valid() {
			return fmt.Errorf("%w: %+v", ErrInvalidDirection, d)
		}
		if seen[d] {
			return fmt.Errorf("%w: %s listed twice", ErrInvalidDirection, d)
		}
		seen[d] = true
	}
	return nil
}

// withDefaults fills zero tuning fields.
func (c Config) withDefaults() Config {
	if c.SurfaceYieldEvery <= 0 {
		c.SurfaceYieldEvery = DefaultSurfaceYieldEvery
	}
	if c.FillYieldEvery <= 0 {
		c.FillYieldEvery = DefaultFillYieldEvery
	}
	if c.MinStep <= 0 {
		c.MinStep = DefaultMinStep
	}
	if c.TextureWorkers <= 0 {
		c.TextureWorkers = runtime.NumCPU()
	}
	if c.Directions == nil {
		c.Directions = append([]Direction(nil), Directions[:]...)
	}
	return c
}
