package voxelize

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/chazu/blockforge/pkg/geom"
	"github.com/chazu/blockforge/pkg/voxel"
)

// interiorFillScanner fills solid interiors by ray parity: one upward ray
// per (x, z) column, with consecutive hits paired as entry and exit.
type interiorFillScanner struct {
	bvh   *geom.BVH
	grid  grid
	res   *resolver
	index *voxel.Index
	every int
}

func (fs *interiorFillScanner) pass(sched *scheduler) error {
	nx, nz := fs.grid.counts[geom.AxisX], fs.grid.counts[geom.AxisZ]
	startY := fs.grid.bounds.Min.Y() - fillStandoff
	up := mgl64.Vec3{0, 1, 0}

	for i := 0; i < nx; i++ {
		// Columns 0..i-1 are done.
		if i > 0 && i%fs.every == 0 {
			if err := sched.checkpoint(float64(i)/float64(nx), StatusInterior); err != nil {
				return err
			}
		}
		x := fs.grid.center(geom.AxisX, i)
		for j := 0; j < nz; j++ {
			z := fs.grid.center(geom.AxisZ, j)
			hits := fs.bvh.IntersectAll(geom.Ray{Origin: mgl64.Vec3{x, startY, z}, Dir: up})
			// A trailing unpaired hit is ignored.
			for k := 0; k+1 < len(hits); k += 2 {
				fs.span(hits[k], hits[k+1], x, z)
			}
		}
	}
	return nil
}

// span fills from the entry height upward in step increments while below
// the exit height. Every cell takes its sample from the entry hit.
func (fs *interiorFillScanner) span(entry, exit geom.Hit, x, z float64) {
	step := fs.grid.step
	top := exit.Point.Y() - step*countSnapEpsilon

	var sampled *voxel.Voxel
	for n := 0; ; n++ {
		y := entry.Point.Y() + float64(n)*step
		if y >= top {
			return
		}
		cell := fs.grid.cellOf(mgl64.Vec3{x, y, z})
		if fs.index.Has(cell) {
			continue
		}
		var v voxel.Voxel
		if sampled == nil {
			v = fs.res.resolve(entry, cell, step, voxel.PhaseInterior)
			sampled = &v
		} else {
			v = *sampled
			v.Cell = cell
			v.Position = cell.Position(step)
		}
		fs.index.InsertIfAbsent(v)
	}
}
