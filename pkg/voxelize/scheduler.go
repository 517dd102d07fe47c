package voxelize

import (
	"context"
	"fmt"
	"runtime"

	"github.com/chazu/blockforge/pkg/voxel"
)

// Status labels reported through Callbacks.Progress.
const (
	StatusWarming  = "warming texture samplers"
	StatusInterior = "interior scan"
	StatusComplete = "complete"
)

func surfaceStatus(d Direction) string {
	return fmt.Sprintf("scanning %s face", d)
}

// Callbacks observe a run. All fields are optional and are called on the
// goroutine that called Voxelize.
type Callbacks struct {
	// Progress receives the overall percentage (0..100, non-decreasing)
	// and the current phase label.
	Progress func(percent float64, status string)
	// Batch receives the voxels discovered since the previous batch, in
	// discovery order. It is never called with an empty slice.
	Batch func(voxels []voxel.Voxel)
	// Yield is called at every checkpoint so the host can run. The
	// default is runtime.Gosched.
	Yield func()
}

// scheduler drives progress reporting, batch emission and cooperative
// yielding for one run. The pending batch is the tail of the index past
// the last flush.
type scheduler struct {
	ctx       context.Context
	cb        Callbacks
	index     *voxel.Index
	total     int // passes in this run
	completed int
	flushed   int
	last      float64
}

func newScheduler(ctx context.Context, cb Callbacks, index *voxel.Index, passes int) *scheduler {
	return &scheduler{ctx: ctx, cb: cb, index: index, total: passes}
}

func (s *scheduler) report(fraction float64, status string) {
	fraction = min(max(fraction, 0), 1)
	p := (float64(s.completed) + fraction) / float64(s.total) * 100
	p = min(max(p, s.last), 100)
	s.last = p
	if s.cb.Progress != nil {
		s.cb.Progress(p, status)
	}
}

func (s *scheduler) flush() {
	batch := s.index.Since(s.flushed)
	s.flushed = s.index.Len()
	if len(batch) > 0 && s.cb.Batch != nil {
		s.cb.Batch(batch)
	}
}

// checkpoint reports progress within the current pass, emits the pending
// batch and yields. It returns the context error if the run was canceled
// while yielded; the pending batch has been emitted either way.
func (s *scheduler) checkpoint(fraction float64, status string) error {
	s.report(fraction, status)
	s.flush()
	if s.cb.Yield != nil {
		s.cb.Yield()
	} else {
		runtime.Gosched()
	}
	if err := s.ctx.Err(); err != nil {
		return fmt.Errorf("voxelize: canceled during %s: %w", status, err)
	}
	return nil
}

func (s *scheduler) endPass() {
	s.completed++
}

// finish emits the remaining voxels and reports completion.
func (s *scheduler) finish() {
	s.flush()
	s.completed = s.total
	s.report(1, StatusComplete)
}
