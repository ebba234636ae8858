// Package zbuffer implements the tile-grid occlusion tracker shared by
// every draw-path tiling worker: one atomic cell per tile, each holding
// the highest-indexed fully-opaque path known to cover it.
package zbuffer

import (
	"sync/atomic"

	"github.com/gogpu/scenetiler/geom"
	"github.com/gogpu/scenetiler/gpudata"
	"github.com/gogpu/scenetiler/scene"
)

// ZBuffer is a dense grid of atomic cells over a tile-coordinate
// rectangle. Cell zero means "no opaque path covers this tile"; a nonzero
// cell holds pathIndex+1 of the highest-indexed opaque path seen so far,
// so that index 0 remains distinguishable from "empty".
//
// ZBuffer is safe for concurrent Update calls from multiple tiling
// workers; BuildSolidTiles must only be called once all tiling for the
// paths it covers has finished.
type ZBuffer struct {
	bounds geom.RectI
	cells  []atomic.Uint32
}

// New creates a ZBuffer over the given tile-coordinate rectangle, with
// every cell initialized to gpudata.ZBufferEmpty.
func New(bounds geom.RectI) *ZBuffer {
	return &ZBuffer{
		bounds: bounds,
		cells:  make([]atomic.Uint32, bounds.Area()),
	}
}

// Bounds returns the tile-coordinate rectangle this buffer covers.
func (z *ZBuffer) Bounds() geom.RectI { return z.bounds }

// Update records that pathIndex's opaque tiling fully covers tile. It is
// a no-op if tile lies outside the buffer's bounds (the tile belongs to a
// different path's dilated bounding box and cannot occlude here). The
// update is an atomic compare-and-swap max loop: concurrent Update calls
// for the same tile never lose an update.
func (z *ZBuffer) Update(tile geom.Vector2I, pathIndex uint32) {
	idx, ok := z.bounds.IndexOf(tile)
	if !ok {
		return
	}
	candidate := pathIndex + 1
	cell := &z.cells[idx]
	for {
		current := cell.Load()
		if candidate <= current {
			return
		}
		if cell.CompareAndSwap(current, candidate) {
			return
		}
	}
}

// Test reports the highest occluding path index recorded at tile, and
// whether any opaque path covers it at all. Tiles outside the buffer's
// bounds are reported as uncovered.
func (z *ZBuffer) Test(tile geom.Vector2I) (pathIndex uint32, covered bool) {
	idx, ok := z.bounds.IndexOf(tile)
	if !ok {
		return 0, false
	}
	raw := z.cells[idx].Load()
	if raw == gpudata.ZBufferEmpty {
		return 0, false
	}
	return raw - 1, true
}

// Survives reports whether a draw alpha tile belonging to pathIndex at
// tile should survive occlusion culling: true iff the stored occluder is
// no higher-indexed than pathIndex itself, i.e. no later opaque draw has
// covered the tile. An uncovered tile always survives.
func (z *ZBuffer) Survives(tile geom.Vector2I, pathIndex uint32) bool {
	idx, ok := z.bounds.IndexOf(tile)
	if !ok {
		return true
	}
	return z.cells[idx].Load() <= pathIndex+1
}

// PaintLookup resolves a draw path's index to the scene.PaintID it should
// be drawn with when emitted as a solid tile.
type PaintLookup func(pathIndex uint32) scene.PaintID

// BuildSolidTiles walks every cell and emits one gpudata.SolidTile for
// each tile whose occluding path index falls in [lo, hi), paired with
// that path's paint via paintOf. Callers restrict [lo, hi) to the
// draw-path range, since clip paths never contribute solid tiles.
func (z *ZBuffer) BuildSolidTiles(lo, hi uint32, paintOf PaintLookup) []gpudata.SolidTile {
	var out []gpudata.SolidTile
	for i := range z.cells {
		raw := z.cells[i].Load()
		if raw == gpudata.ZBufferEmpty {
			continue
		}
		pathIndex := raw - 1
		if pathIndex < lo || pathIndex >= hi {
			continue
		}
		out = append(out, gpudata.SolidTile{
			TileCoord: z.bounds.CoordsAt(i),
			PathIndex: pathIndex,
			Paint:     paintOf(pathIndex),
		})
	}
	return out
}
