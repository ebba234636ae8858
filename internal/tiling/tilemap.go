package tiling

import (
	"github.com/gogpu/scenetiler/geom"
	"github.com/gogpu/scenetiler/gpudata"
)

// tileMap is a dense, per-path grid of TileObjectPrimitive over a tile
// rectangle: one path's own bookkeeping, as opposed to the shared
// cross-path zbuffer.ZBuffer.
type tileMap struct {
	rect geom.RectI
	data []gpudata.TileObjectPrimitive
}

func newTileMap(rect geom.RectI) *tileMap {
	data := make([]gpudata.TileObjectPrimitive, rect.Area())
	for i := range data {
		data[i] = gpudata.NewTileObjectPrimitive()
	}
	return &tileMap{rect: rect, data: data}
}

func (m *tileMap) coordsToIndex(c geom.Vector2I) (int, bool) {
	return m.rect.IndexOf(c)
}

func (m *tileMap) coordsToIndexUnchecked(c geom.Vector2I) int {
	return m.rect.IndexOfUnchecked(c)
}

func (m *tileMap) indexToCoords(i int) geom.Vector2I {
	return m.rect.CoordsAt(i)
}
