// Package gpudata defines the wire-level types this module hands to the
// GPU device abstraction: tile primitives, the fill-batch instance layout,
// and the RenderCommand stream. Everything here is plain, GPU-agnostic
// data — no package in this tree actually submits to a GPU.
package gpudata

// TileWidth and TileHeight are the fixed dimensions, in pixels, of one
// tile. A tile covers the pixel rectangle
// [tx*TileWidth, (tx+1)*TileWidth) x [ty*TileHeight, (ty+1)*TileHeight).
const (
	TileWidth  = 16
	TileHeight = 16
)

// SubpixelScale is the fixed-point scale factor used to pack intra-tile
// coordinates: 4 integer bits covering [0, TileWidth) and 8 fractional
// bits covering the subpixel remainder, for 4.8 fixed point overall.
const SubpixelScale = 256

// AlphaTileIndexNone is the canonical sentinel meaning "no alpha tile has
// been allocated yet for this (path, tile) pair". It is distinct from
// every valid index, since valid indices top out at 0xFFFE.
const AlphaTileIndexNone uint16 = 0xFFFF

// MaxAlphaTileIndex is the largest valid alpha tile index. A stage's
// counter overflows the moment it would hand out AlphaTileIndexNone itself.
const MaxAlphaTileIndex uint16 = 0xFFFE

// ZBufferEmpty is the Z-buffer sentinel meaning "no opaque path covers
// this tile yet".
const ZBufferEmpty uint32 = 0

// RenderStage buckets fills and alpha tiles by when they must rasterize:
// clip paths (Stage0) strictly before the draw paths (Stage1) that
// reference them.
type RenderStage uint8

const (
	// Stage0 holds clip-path fills and alpha tiles.
	Stage0 RenderStage = iota
	// Stage1 holds draw-path fills and alpha tiles.
	Stage1
)

// String implements fmt.Stringer.
func (s RenderStage) String() string {
	if s == Stage0 {
		return "stage0"
	}
	return "stage1"
}
