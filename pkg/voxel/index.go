package voxel

import (
	"sort"

	"github.com/samber/lo"
)

// Index maps cells to voxels in insertion order. The first voxel written
// to a cell is kept and later writes to the same cell are dropped. Voxels
// are never removed or replaced.
//
// Index is not safe for concurrent use.
type Index struct {
	cells  map[Cell]int
	voxels []Voxel
}

// NewIndex returns an empty index.
func NewIndex() *Index {
	return &Index{cells: make(map[Cell]int)}
}

// InsertIfAbsent adds v unless its cell is already occupied and reports
// whether it was added.
func (x *Index) InsertIfAbsent(v Voxel) bool {
	if _, ok := x.cells[v.Cell]; ok {
		return false
	}
	x.cells[v.Cell] = len(x.voxels)
	x.voxels = append(x.voxels, v)
	return true
}

// Has reports whether c is occupied.
func (x *Index) Has(c Cell) bool {
	_, ok := x.cells[c]
	return ok
}

// Get returns the voxel at c.
func (x *Index) Get(c Cell) (Voxel, bool) {
	i, ok := x.cells[c]
	if !ok {
		return Voxel{}, false
	}
	return x.voxels[i], true
}

// Len returns the number of voxels.
func (x *Index) Len() int { return len(x.voxels) }

// Voxels returns a copy of all voxels in insertion order.
func (x *Index) Voxels() []Voxel {
	return x.Since(0)
}

// Since returns a copy of the voxels inserted after the first n.
func (x *Index) Since(n int) []Voxel {
	if n >= len(x.voxels) {
		return nil
	}
	return append([]Voxel(nil), x.voxels[n:]...)
}

// BlockCount is one row of a block histogram.
type BlockCount struct {
	BlockID string
	Count   int
}

// Histogram counts voxels per block id, most common first. Equal counts
// are ordered by block id.
func Histogram(voxels []Voxel) []BlockCount {
	counts := lo.CountValuesBy(voxels, func(v Voxel) string { return v.BlockID })
	out := lo.MapToSlice(counts, func(id string, n int) BlockCount {
		return BlockCount{BlockID: id, Count: n}
	})
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].BlockID < out[j].BlockID
	})
	return out
}

// PhaseCounts counts voxels per producing pass.
func PhaseCounts(voxels []Voxel) map[Phase]int {
	return lo.CountValuesBy(voxels, func(v Voxel) Phase { return v.Phase })
}
