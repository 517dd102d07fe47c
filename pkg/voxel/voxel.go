// Package voxel defines the voxel value type and the cell index that keeps
// at most one voxel per grid cell.
package voxel

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// snapEpsilon absorbs float noise in coord/step so a hit on a cell
// boundary is not pushed into the cell below.
const snapEpsilon = 1e-6

// Cell is an integer grid coordinate.
type Cell struct {
	X, Y, Z int
}

func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d,%d)", c.X, c.Y, c.Z)
}

// Position returns the cell's minimum corner in world units.
func (c Cell) Position(step float64) mgl64.Vec3 {
	return mgl64.Vec3{float64(c.X) * step, float64(c.Y) * step, float64(c.Z) * step}
}

// Clamp limits each coordinate to the box spanned by a and b.
func (c Cell) Clamp(a, b Cell) Cell {
	return Cell{
		X: min(max(c.X, a.X), b.X),
		Y: min(max(c.Y, a.Y), b.Y),
		Z: min(max(c.Z, a.Z), b.Z),
	}
}

// Quantize returns floor(coord/step), treating values within snapEpsilon of
// an integer as that integer.
func Quantize(coord, step float64) int {
	q := coord / step
	if r := math.Round(q); math.Abs(q-r) < snapEpsilon {
		q = r
	}
	return int(math.Floor(q))
}

// CellOf quantizes a world point.
func CellOf(p mgl64.Vec3, step float64) Cell {
	return Cell{
		X: Quantize(p[0], step),
		Y: Quantize(p[1], step),
		Z: Quantize(p[2], step),
	}
}

// Phase records which pass produced a voxel.
type Phase int

const (
	PhaseUp Phase = iota
	PhaseFront
	PhaseRight
	PhaseDown
	PhaseBack
	PhaseLeft
	PhaseInterior
)

var phaseNames = [...]string{"up", "front", "right", "down", "back", "left", "interior"}

func (p Phase) String() string {
	if p < 0 || int(p) >= len(phaseNames) {
		return fmt.Sprintf("phase(%d)", int(p))
	}
	return phaseNames[p]
}

// Voxel is one occupied cell. Values are immutable once inserted into an
// Index.
type Voxel struct {
	Position mgl64.Vec3 // minimum corner, Cell * step
	Cell     Cell
	Color    colorful.Color
	Alpha    float64
	BlockID  string
	Material string // name of the material that was sampled
	Phase    Phase
}
