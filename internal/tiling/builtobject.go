package tiling

import (
	"math"

	"github.com/gogpu/scenetiler/geom"
	"github.com/gogpu/scenetiler/gpudata"
)

// BuiltObject is one path's tiling result: its fills (ready to stream to
// the listener as a single AddFills command), the alpha tiles it
// produced, and the per-tile bookkeeping grid used during tiling.
type BuiltObject struct {
	Bounds     geom.RectF
	Fills      []gpudata.FillBatchPrimitive
	AlphaTiles []gpudata.AlphaTile

	tiles *tileMap
}

// newBuiltObject allocates a BuiltObject whose tile grid is sized to
// bounds, rounded outward to tile boundaries.
func newBuiltObject(bounds geom.RectF) *BuiltObject {
	tileRect := bounds.RoundOutToTileBounds(gpudata.TileWidth, gpudata.TileHeight)
	return &BuiltObject{
		Bounds: bounds,
		tiles:  newTileMap(tileRect),
	}
}

// TileRect returns the tile-coordinate rectangle this object's grid
// covers.
func (b *BuiltObject) TileRect() geom.RectI { return b.tiles.rect }

// tileCoordsToLocalIndex maps an absolute tile coordinate to this
// object's local flat index, or false if the coordinate falls outside
// the object's tile rect.
func (b *BuiltObject) tileCoordsToLocalIndex(c geom.Vector2I) (int, bool) {
	return b.tiles.coordsToIndex(c)
}

// getOrAllocateAlphaTileIndex returns the alpha tile index already
// recorded for localIndex, allocating a fresh one from counters if this
// is the tile's first crossing.
func (b *BuiltObject) getOrAllocateAlphaTileIndex(counters *AlphaTileCounters, stage gpudata.RenderStage, localIndex int) (uint16, error) {
	cell := &b.tiles.data[localIndex]
	if cell.HasAlphaTile() {
		return cell.AlphaTileIndex, nil
	}
	index, err := counters.Allocate(stage)
	if err != nil {
		return 0, err
	}
	cell.AlphaTileIndex = index
	return index, nil
}

// addFill clips segment (already in view-box space) into the tile at
// tileCoords, converting it to 4.8 fixed point relative to the tile's own
// origin and appending a FillBatchPrimitive. Fills that land outside this
// object's tile rect, or that degenerate to zero width once packed, are
// silently dropped — both are expected outcomes, not errors.
func (b *BuiltObject) addFill(counters *AlphaTileCounters, stage gpudata.RenderStage, segment geom.LineSegment2F, tileCoords geom.Vector2I) error {
	localIndex, ok := b.tileCoordsToLocalIndex(tileCoords)
	if !ok {
		return nil
	}

	origin := geom.Vec2F(float32(tileCoords.X*gpudata.TileWidth), float32(tileCoords.Y*gpudata.TileHeight))
	relative := geom.NewLineSegment2F(segment.From.Sub(origin), segment.To.Sub(origin))

	primitive, ok := gpudata.NewFillBatchPrimitive(relative, 0)
	if !ok {
		return nil
	}

	index, err := b.getOrAllocateAlphaTileIndex(counters, stage, localIndex)
	if err != nil {
		return err
	}
	primitive.AlphaTileIndex = index
	b.Fills = append(b.Fills, primitive)
	return nil
}

// addActiveFill emits |winding| full-height fills spanning [left, right)
// at the top of tileCoords, representing the backdrop coverage a tile
// inherits from edges that crossed to its left earlier in the row. The
// fill direction alternates with the sign of winding, matching the
// convention addFill expects for inside/outside determination downstream.
func (b *BuiltObject) addActiveFill(counters *AlphaTileCounters, stage gpudata.RenderStage, left, right float32, winding int32, tileCoords geom.Vector2I) error {
	tileOriginY := float32(tileCoords.Y * gpudata.TileHeight)
	leftPt := geom.Vec2F(left, tileOriginY)
	rightPt := geom.Vec2F(right, tileOriginY)

	var segment geom.LineSegment2F
	if winding < 0 {
		segment = geom.NewLineSegment2F(leftPt, rightPt)
	} else {
		segment = geom.NewLineSegment2F(rightPt, leftPt)
	}

	for winding != 0 {
		if err := b.addFill(counters, stage, segment, tileCoords); err != nil {
			return err
		}
		if winding < 0 {
			winding++
		} else {
			winding--
		}
	}
	return nil
}

// generateFillPrimitivesForLine subdivides segment (already clipped to
// one tile row, at absolute tile row tileY) across every tile column it
// crosses, calling addFill once per sub-segment.
func (b *BuiltObject) generateFillPrimitivesForLine(counters *AlphaTileCounters, stage gpudata.RenderStage, segment geom.LineSegment2F, tileY int32) error {
	winding := segment.From.X > segment.To.X
	segmentLeft, segmentRight := segment.From.X, segment.To.X
	if winding {
		segmentLeft, segmentRight = segment.To.X, segment.From.X
	}

	segmentTileLeft := floorDiv(segmentLeft, gpudata.TileWidth)
	segmentTileRight := geom.AlignUp(ceilI32(segmentRight), gpudata.TileWidth) / gpudata.TileWidth

	for subsegmentTileX := segmentTileLeft; subsegmentTileX < segmentTileRight; subsegmentTileX++ {
		fillFrom, fillTo := segment.From, segment.To
		subsegmentTileRight := float32((subsegmentTileX + 1) * gpudata.TileWidth)
		if subsegmentTileRight < segmentRight {
			x := subsegmentTileRight
			point := geom.Vec2F(x, segment.SolveYForX(x))
			if !winding {
				fillTo = point
				segment = geom.NewLineSegment2F(point, segment.To)
			} else {
				fillFrom = point
				segment = geom.NewLineSegment2F(segment.From, point)
			}
		}

		fillSegment := geom.NewLineSegment2F(fillFrom, fillTo)
		fillTileCoords := geom.Vec2I(subsegmentTileX, tileY)
		if err := b.addFill(counters, stage, fillSegment, fillTileCoords); err != nil {
			return err
		}
	}
	return nil
}

func floorDiv(x float32, tileSize int32) int32 {
	return int32(math.Floor(float64(x) / float64(tileSize)))
}

func ceilI32(x float32) int32 {
	return int32(math.Ceil(float64(x)))
}
