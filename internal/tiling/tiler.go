// Package tiling implements the per-path scanline tiler: it walks one
// path's flattened outline one tile row at a time, emitting fill
// primitives for partially-covered tiles and marking fully-covered tiles
// in the shared Z-buffer.
package tiling

import (
	"math"

	"github.com/gogpu/scenetiler/geom"
	"github.com/gogpu/scenetiler/gpudata"
	"github.com/gogpu/scenetiler/internal/zbuffer"
	"github.com/gogpu/scenetiler/scene"
)

// PathInfo identifies what is being tiled and how its results should be
// attributed: a clip path (Stage0, no Z-buffer interaction) or a draw
// path (Stage1, contributes solid tiles to the shared Z-buffer and
// optionally references a clip).
type PathInfo struct {
	Outline   *scene.Outline
	FillRule  scene.FillRule
	Stage     gpudata.RenderStage
	IsDraw    bool
	PathIndex uint32
	Paint     scene.PaintID
	HasClip   bool
	ClipIndex uint32

	// IsOpaque reports whether this draw path's paint is fully opaque.
	// Only an opaque path's fully-solid tiles are written into the shared
	// Z-buffer: a non-opaque path can't safely occlude whatever is beneath
	// it, so its full-tile coverage is instead emitted as an ordinary
	// alpha tile. Unused for clip paths.
	IsOpaque bool

	// ClipBounds, when HasClip is set, further restricts the tile rect to
	// the clip path's own bounds: single-level clipping is approximated at
	// the bounding-box granularity, since per-tile coverage masking is a
	// GPU-side concern resolved downstream from the DrawClipTiles command.
	ClipBounds geom.RectF
}

// Tiler walks one path's outline and produces a BuiltObject. A Tiler is
// used once and discarded; it owns no state shared with other paths
// beyond the counters and zbuf it was constructed with.
type Tiler struct {
	info     PathInfo
	counters *AlphaTileCounters
	zbuf     *zbuffer.ZBuffer // nil for clip paths, which never write solid coverage

	Built *BuiltObject
}

// NewTiler creates a Tiler for info's outline, clamped to viewBox. zbuf
// may be nil when info.IsDraw is false.
func NewTiler(info PathInfo, viewBox geom.RectF, counters *AlphaTileCounters, zbuf *zbuffer.ZBuffer) *Tiler {
	bounds := info.Outline.Bounds().Intersect(viewBox)
	if info.HasClip {
		bounds = bounds.Intersect(info.ClipBounds)
	}
	return &Tiler{
		info:     info,
		counters: counters,
		zbuf:     zbuf,
		Built:    newBuiltObject(bounds),
	}
}

// GenerateTiles runs the scanline sweep described by the tiling
// algorithm: row by row, it clips every edge crossing the row into
// per-tile fill primitives, accumulates the winding backdrop entering
// each tile column from the left, and classifies each tile as solid,
// alpha, or empty.
func (t *Tiler) GenerateTiles() error {
	tileRect := t.Built.TileRect()
	if tileRect.IsEmpty() {
		return nil
	}

	segments := t.info.Outline.Segments()
	width := int(tileRect.Width())

	for ty := tileRect.MinY; ty < tileRect.MaxY; ty++ {
		rowTop := float32(ty * gpudata.TileHeight)
		rowBottom := float32((ty + 1) * gpudata.TileHeight)

		deltas := make([]int32, width)
		leftBackdrop := int32(0)
		firstLocalX := make([]float32, width)
		for i := range firstLocalX {
			firstLocalX[i] = float32(math.Inf(1))
		}

		for _, seg := range segments {
			if seg.MaxY() <= rowTop || seg.MinY() >= rowBottom {
				continue
			}

			clipped, ok := seg.ClippedToYRange(rowTop, rowBottom)
			if !ok {
				continue
			}
			if err := t.Built.generateFillPrimitivesForLine(t.counters, t.info.Stage, clipped, ty); err != nil {
				return err
			}

			left, right := clipped.From.X, clipped.To.X
			if left > right {
				left, right = right, left
			}
			for _, x := range [2]float32{left, right} {
				col := int32(math.Floor(float64(x)))/gpudata.TileWidth - tileRect.MinX
				if col >= 0 && col < int32(width) && x < firstLocalX[col] {
					firstLocalX[col] = x
				}
			}

			// Only edges spanning this row's full height contribute to the
			// backdrop carried between tile columns; partial-row edges are
			// already represented by the explicit fill geometry above.
			if seg.MinY() <= rowTop && seg.MaxY() >= rowBottom {
				x := seg.SolveXForY(rowTop)
				direction := int32(-1)
				if seg.From.Y < seg.To.Y {
					direction = 1
				}
				// deltas[col] feeds the backdrop of the columns after col, so
				// an edge on a tile's left boundary goes to the column before
				// that tile, and an edge left of the rect feeds every column.
				col := int32(math.Ceil(float64(x)/gpudata.TileWidth)) - 1 - tileRect.MinX
				if col < 0 {
					leftBackdrop += direction
				} else if col < int32(width) {
					deltas[col] += direction
				}
			}
		}

		running := leftBackdrop
		for col := int32(0); col < int32(width); col++ {
			backdrop := running
			running += deltas[col]

			tx := tileRect.MinX + col
			tileCoords := geom.Vec2I(tx, ty)
			localIndex := t.Built.tiles.coordsToIndexUnchecked(tileCoords)
			cell := &t.Built.tiles.data[localIndex]

			inside := isInside(backdrop, t.info.FillRule)
			hasEdges := cell.HasAlphaTile()

			switch {
			case hasEdges:
				if inside && backdrop != 0 {
					right := firstLocalX[col]
					if math.IsInf(float64(right), 1) {
						right = float32(tx*gpudata.TileWidth + gpudata.TileWidth)
					}
					left := float32(tx * gpudata.TileWidth)
					if err := t.Built.addActiveFill(t.counters, t.info.Stage, left, right, backdrop, tileCoords); err != nil {
						return err
					}
				}
				cell.Backdrop = clampBackdrop(backdrop)
				t.Built.AlphaTiles = append(t.Built.AlphaTiles, gpudata.AlphaTile{
					TileCoord:      tileCoords,
					PathIndex:      t.info.PathIndex,
					Paint:          t.info.Paint,
					AlphaTileIndex: cell.AlphaTileIndex,
					ClipPathIndex:  t.info.ClipIndex,
					HasClip:        t.info.HasClip,
				})
			case inside && backdrop != 0:
				cell.Backdrop = clampBackdrop(backdrop)
				if t.info.IsDraw && t.info.IsOpaque && t.zbuf != nil {
					t.zbuf.Update(tileCoords, t.info.PathIndex)
					break
				}
				// Not opaque (or a clip path, which never writes the
				// Z-buffer): the tile is still fully covered, so it needs
				// an explicit alpha tile carrying full-width coverage
				// rather than being silently dropped.
				left := float32(tx * gpudata.TileWidth)
				right := left + gpudata.TileWidth
				if err := t.Built.addActiveFill(t.counters, t.info.Stage, left, right, backdrop, tileCoords); err != nil {
					return err
				}
				t.Built.AlphaTiles = append(t.Built.AlphaTiles, gpudata.AlphaTile{
					TileCoord:      tileCoords,
					PathIndex:      t.info.PathIndex,
					Paint:          t.info.Paint,
					AlphaTileIndex: cell.AlphaTileIndex,
					ClipPathIndex:  t.info.ClipIndex,
					HasClip:        t.info.HasClip,
				})
			default:
				// backdrop == 0 (or outside under even-odd) and no local
				// edges: the tile is empty, nothing to emit.
			}
		}
	}

	return nil
}

func isInside(backdrop int32, rule scene.FillRule) bool {
	if rule == scene.FillRuleEvenOdd {
		return backdrop%2 != 0
	}
	return backdrop != 0
}

func clampBackdrop(backdrop int32) int8 {
	return int8(geom.Clamp(backdrop, math.MinInt8, math.MaxInt8))
}
