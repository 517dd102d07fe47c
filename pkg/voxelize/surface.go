package voxelize

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/chazu/blockforge/pkg/geom"
	"github.com/chazu/blockforge/pkg/voxel"
)

// surfaceRaycaster sweeps a grid of parallel rays along one direction and
// claims the cell of every crossing, not only the nearest one.
type surfaceRaycaster struct {
	bvh   *geom.BVH
	grid  grid
	res   *resolver
	index *voxel.Index
	every int
}

// pass runs one direction. Rays pass through cell centers on the two span
// axes and start surfaceStandoff outside the bounds.
func (sr *surfaceRaycaster) pass(d Direction, sched *scheduler) error {
	u, v := d.Span()
	nu, nv := sr.grid.counts[u], sr.grid.counts[v]
	total := float64(nu * nv)
	status := surfaceStatus(d)
	phase := d.Phase()
	dir := d.Vector()

	start := sr.grid.bounds.Min[d.Axis] - surfaceStandoff
	if d.Negative {
		start = sr.grid.bounds.Max[d.Axis] + surfaceStandoff
	}

	done := 0
	for i := 0; i < nu; i++ {
		for j := 0; j < nv; j++ {
			if done > 0 && done%sr.every == 0 {
				if err := sched.checkpoint(float64(done)/total, status); err != nil {
					return err
				}
			}
			var origin mgl64.Vec3
			origin[u] = sr.grid.center(u, i)
			origin[v] = sr.grid.center(v, j)
			origin[d.Axis] = start
			sr.cast(geom.Ray{Origin: origin, Dir: dir}, phase)
			done++
		}
	}
	return nil
}

// cast inserts a voxel for every hit whose cell is still free.
func (sr *surfaceRaycaster) cast(r geom.Ray, phase voxel.Phase) {
	for _, h := range sr.bvh.IntersectAll(r) {
		cell := sr.grid.cellOf(h.Point)
		if sr.index.Has(cell) {
			continue
		}
		sr.index.InsertIfAbsent(sr.res.resolve(h, cell, sr.grid.step, phase))
	}
}
