package gpudata

import (
	"math"

	"github.com/gogpu/scenetiler/geom"
	"github.com/gogpu/scenetiler/scene"
)

// TileObjectPrimitive is the per-tile, per-path bookkeeping record stored
// in a path's tile map. Backdrop is the winding number carried into the
// tile from its row's left edge; AlphaTileIndex is the sentinel
// AlphaTileIndexNone until an edge crossing this tile allocates one.
type TileObjectPrimitive struct {
	Backdrop       int8
	AlphaTileIndex uint16
}

// NewTileObjectPrimitive returns a zero-initialized record with the alpha
// tile index set to the "unallocated" sentinel.
func NewTileObjectPrimitive() TileObjectPrimitive {
	return TileObjectPrimitive{AlphaTileIndex: AlphaTileIndexNone}
}

// HasAlphaTile reports whether an alpha tile has been allocated for this
// record.
func (t TileObjectPrimitive) HasAlphaTile() bool {
	return t.AlphaTileIndex != AlphaTileIndexNone
}

// FillBatchPrimitive packs one line segment, clipped into one tile, as one
// GPU fill instance: intra-tile pixel endpoints as 4-bit nibbles, subpixel
// fractions as 8-bit bytes, and the alpha tile index the fill accumulates
// into. See Encode for the exact wire layout.
type FillBatchPrimitive struct {
	// FromPx and ToPx are the integer pixel coordinates of the segment's
	// endpoints within the tile, each in [0, TileWidth).
	FromPx, ToPx geom.Vector2I
	// FromSubpx and ToSubpx are the 8-bit subpixel fractions of the
	// endpoints, each in [0, 255].
	FromSubpx, ToSubpx [2]uint8
	AlphaTileIndex     uint16
}

// NewFillBatchPrimitive converts a line segment already relative to a
// tile's own origin into 4.8 fixed point, clamping into the tile, and
// reports whether the result is degenerate (zero-width in fixed point) and
// should be discarded by the caller instead of packed.
func NewFillBatchPrimitive(segment geom.LineSegment2F, alphaTileIndex uint16) (FillBatchPrimitive, bool) {
	const maxFixed = float32(TileWidth*SubpixelScale - 1)

	fx := fixedClamp(segment.From.X, maxFixed)
	fy := fixedClamp(segment.From.Y, maxFixed)
	tx := fixedClamp(segment.To.X, maxFixed)
	ty := fixedClamp(segment.To.Y, maxFixed)

	if fx == tx {
		return FillBatchPrimitive{}, false
	}

	return FillBatchPrimitive{
		FromPx:         geom.Vec2I(int32(fx)>>8, int32(fy)>>8),
		ToPx:           geom.Vec2I(int32(tx)>>8, int32(ty)>>8),
		FromSubpx:      [2]uint8{uint8(int32(fx) & 0xff), uint8(int32(fy) & 0xff)},
		ToSubpx:        [2]uint8{uint8(int32(tx) & 0xff), uint8(int32(ty) & 0xff)},
		AlphaTileIndex: alphaTileIndex,
	}, true
}

func fixedClamp(v float32, maxFixed float32) float32 {
	v *= SubpixelScale
	v = geom.ClampF(v, 0, maxFixed)
	return float32(math.Floor(float64(v)))
}

// Encode packs the primitive into the exact 8-byte little-endian wire
// layout described by the data model:
//
//	byte 0: (from_x_int << 4) | from_y_int
//	byte 1: (to_x_int   << 4) | to_y_int
//	byte 2: subpx.from_x
//	byte 3: subpx.from_y
//	byte 4: subpx.to_x
//	byte 5: subpx.to_y
//	bytes 6-7: alpha_tile_index (u16 little-endian)
func (f FillBatchPrimitive) Encode() [8]byte {
	var out [8]byte
	out[0] = byte(f.FromPx.X<<4) | byte(f.FromPx.Y)
	out[1] = byte(f.ToPx.X<<4) | byte(f.ToPx.Y)
	out[2] = f.FromSubpx[0]
	out[3] = f.FromSubpx[1]
	out[4] = f.ToSubpx[0]
	out[5] = f.ToSubpx[1]
	out[6] = byte(f.AlphaTileIndex)
	out[7] = byte(f.AlphaTileIndex >> 8)
	return out
}

// DecodeFillBatchPrimitive is the inverse of Encode, used by tests to
// round-trip the wire format.
func DecodeFillBatchPrimitive(b [8]byte) FillBatchPrimitive {
	return FillBatchPrimitive{
		FromPx:         geom.Vec2I(int32(b[0]>>4), int32(b[0]&0xf)),
		ToPx:           geom.Vec2I(int32(b[1]>>4), int32(b[1]&0xf)),
		FromSubpx:      [2]uint8{b[2], b[3]},
		ToSubpx:        [2]uint8{b[4], b[5]},
		AlphaTileIndex: uint16(b[6]) | uint16(b[7])<<8,
	}
}

// AlphaTile is a GPU record for a partially-covered tile: where it is, the
// path-id (so the Z-buffer can occlusion-test it), which paint it draws
// with, and which alpha-tile index its fill primitives accumulate into.
type AlphaTile struct {
	TileCoord      geom.Vector2I
	PathIndex      uint32
	Paint          scene.PaintID
	AlphaTileIndex uint16
	ClipPathIndex  uint32
	HasClip        bool
}

// SolidTile is one fully-covered tile emitted by the Z-buffer's solid-tile
// extraction pass, carrying the paint of whichever opaque path occludes it.
type SolidTile struct {
	TileCoord geom.Vector2I
	PathIndex uint32
	Paint     scene.PaintID
}
