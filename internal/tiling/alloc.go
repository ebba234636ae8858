package tiling

import (
	"sync/atomic"

	"github.com/gogpu/scenetiler/gpudata"
	"github.com/gogpu/scenetiler/scene"
)

// AlphaTileCounters hands out globally unique alpha tile indices, one
// disjoint counter per render stage, so Stage0 (clip) and Stage1 (draw)
// tiles never collide. A single instance is shared by every path's Tiler
// for the duration of one build.
type AlphaTileCounters struct {
	stage0 atomic.Uint32
	stage1 atomic.Uint32
}

// NewAlphaTileCounters returns counters starting at zero for both stages.
func NewAlphaTileCounters() *AlphaTileCounters {
	return &AlphaTileCounters{}
}

// Allocate returns the next index for the given stage. Relaxed fetch-add
// is sufficient: the only requirement on the returned values is
// uniqueness, not any causal ordering with other memory.
func (c *AlphaTileCounters) Allocate(stage gpudata.RenderStage) (uint16, error) {
	counter := &c.stage0
	if stage == gpudata.Stage1 {
		counter = &c.stage1
	}
	next := counter.Add(1) - 1
	if next > uint32(gpudata.MaxAlphaTileIndex) {
		return 0, &scene.AlphaTileOverflowError{Stage: stage.String()}
	}
	return uint16(next), nil
}
