package voxelize

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/chazu/blockforge/pkg/geom"
	"github.com/chazu/blockforge/pkg/voxel"
)

// Direction is one surface pass: rays travel along Axis, toward negative
// coordinates when Negative is set.
type Direction struct {
	Axis     geom.Axis
	Negative bool
}

// The six surface passes.
var (
	Up    = Direction{Axis: geom.AxisY}
	Front = Direction{Axis: geom.AxisX}
	Right = Direction{Axis: geom.AxisZ}
	Down  = Direction{Axis: geom.AxisY, Negative: true}
	Back  = Direction{Axis: geom.AxisX, Negative: true}
	Left  = Direction{Axis: geom.AxisZ, Negative: true}
)

// Directions is the default pass order. The order decides which pass
// claims a cell first.
var Directions = [...]Direction{Up, Front, Right, Down, Back, Left}

func (d Direction) valid() bool {
	return d.Axis >= geom.AxisX && d.Axis <= geom.AxisZ
}

// Vector returns the unit ray direction.
func (d Direction) Vector() mgl64.Vec3 {
	var v mgl64.Vec3
	if d.Negative {
		v[d.Axis] = -1
	} else {
		v[d.Axis] = 1
	}
	return v
}

// Phase returns the voxel phase recorded for hits from this pass.
func (d Direction) Phase() voxel.Phase {
	switch d {
	case Up:
		return voxel.PhaseUp
	case Front:
		return voxel.PhaseFront
	case Right:
		return voxel.PhaseRight
	case Down:
		return voxel.PhaseDown
	case Back:
		return voxel.PhaseBack
	default:
		return voxel.PhaseLeft
	}
}

// Span returns the two axes the ray grid spans, in cyclic order after the
// cast axis.
func (d Direction) Span() (u, v geom.Axis) {
	return (d.Axis + 1) % 3, (d.Axis + 2) % 3
}

func (d Direction) String() string {
	return d.Phase().String()
}
