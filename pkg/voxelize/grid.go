package voxelize

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/chazu/blockforge/pkg/geom"
	"github.com/chazu/blockforge/pkg/voxel"
)

// Ray origins sit this far outside the bounds on the cast axis.
const (
	surfaceStandoff = 10
	fillStandoff    = 5
)

const (
	degenerateEpsilon = 1e-12
	countSnapEpsilon  = 1e-6
)

// grid is the voxel lattice laid over a model's bounds.
type grid struct {
	bounds   geom.AABB
	step     float64
	min, max voxel.Cell // inclusive cell range covered by bounds
	counts   [3]int     // ray columns per axis
}

// Step returns the voxel edge length for bounds at the given resolution.
func Step(bounds geom.AABB, resolution int, minStep float64) (float64, error) {
	if resolution <= 0 {
		return 0, fmt.Errorf("%w: got %d", ErrInvalidResolution, resolution)
	}
	if bounds.IsEmpty() {
		return 0, ErrEmptyModel
	}
	size := bounds.Size()
	longest := bounds.MaxExtent()
	for i := 0; i < 3; i++ {
		if size[i] <= degenerateEpsilon*math.Max(longest, 1) {
			return 0, fmt.Errorf("%w: %s extent is %g", ErrDegenerateBounds, geom.Axis(i), size[i])
		}
	}
	return math.Max(longest/float64(resolution), minStep), nil
}

func newGrid(bounds geom.AABB, resolution int, minStep float64) (grid, error) {
	step, err := Step(bounds, resolution, minStep)
	if err != nil {
		return grid{}, err
	}
	g := grid{bounds: bounds, step: step}
	g.min = voxel.CellOf(bounds.Min, step)
	g.max = voxel.Cell{
		X: snapCeil(bounds.Max[0]/step) - 1,
		Y: snapCeil(bounds.Max[1]/step) - 1,
		Z: snapCeil(bounds.Max[2]/step) - 1,
	}
	g.max = voxel.Cell{X: max(g.max.X, g.min.X), Y: max(g.max.Y, g.min.Y), Z: max(g.max.Z, g.min.Z)}

	size := bounds.Size()
	for i := 0; i < 3; i++ {
		g.counts[i] = max(1, snapCeil(size[i]/step))
	}
	return g, nil
}

// snapCeil is ceil with values within countSnapEpsilon of an integer
// treated as that integer.
func snapCeil(q float64) int {
	if r := math.Round(q); math.Abs(q-r) < countSnapEpsilon {
		return int(r)
	}
	return int(math.Ceil(q))
}

// center returns the coordinate of the i-th ray column on axis a.
func (g grid) center(a geom.Axis, i int) float64 {
	return g.bounds.Min[a] + (float64(i)+0.5)*g.step
}

// cellOf quantizes p and clamps it to the bounds, so hits on the max faces
// land in the last layer instead of one past it.
func (g grid) cellOf(p mgl64.Vec3) voxel.Cell {
	return voxel.CellOf(p, g.step).Clamp(g.min, g.max)
}

// cells returns the number of cells the grid covers.
func (g grid) cells() int {
	return (g.max.X - g.min.X + 1) * (g.max.Y - g.min.Y + 1) * (g.max.Z - g.min.Z + 1)
}
