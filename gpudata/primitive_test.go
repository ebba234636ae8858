package gpudata

import (
	"testing"

	"github.com/gogpu/scenetiler/geom"
)

func TestFillBatchPrimitiveRoundTrip(t *testing.T) {
	f := FillBatchPrimitive{
		FromPx:         geom.Vec2I(3, 7),
		ToPx:           geom.Vec2I(15, 0),
		FromSubpx:      [2]uint8{12, 200},
		ToSubpx:        [2]uint8{255, 1},
		AlphaTileIndex: 0xBEEF,
	}
	got := DecodeFillBatchPrimitive(f.Encode())
	if got != f {
		t.Errorf("round trip mismatch: got %+v, want %+v", got, f)
	}
}

func TestFillBatchPrimitiveEncodeNibbles(t *testing.T) {
	f := FillBatchPrimitive{
		FromPx: geom.Vec2I(15, 15),
		ToPx:   geom.Vec2I(0, 0),
	}
	enc := f.Encode()
	if enc[0] != 0xFF {
		t.Errorf("byte 0 = %#x, want 0xff", enc[0])
	}
	if enc[1] != 0x00 {
		t.Errorf("byte 1 = %#x, want 0x00", enc[1])
	}
}

func TestNewFillBatchPrimitiveClampsIntoTile(t *testing.T) {
	seg := geom.NewLineSegment2F(geom.Vec2F(-4, 3), geom.Vec2F(20, 9))
	f, ok := NewFillBatchPrimitive(seg, 1)
	if !ok {
		t.Fatal("expected non-degenerate primitive")
	}
	if f.FromPx.X != 0 {
		t.Errorf("FromPx.X = %d, want clamped to 0", f.FromPx.X)
	}
	if f.ToPx.X != TileWidth-1 {
		t.Errorf("ToPx.X = %d, want clamped to %d", f.ToPx.X, TileWidth-1)
	}
}

func TestNewFillBatchPrimitiveDegenerateDiscarded(t *testing.T) {
	seg := geom.NewLineSegment2F(geom.Vec2F(4, 1), geom.Vec2F(4, 9))
	_, ok := NewFillBatchPrimitive(seg, 1)
	if ok {
		t.Error("vertical segment with identical fixed-point X should be discarded as degenerate")
	}
}

func TestTileObjectPrimitiveDefaults(t *testing.T) {
	tp := NewTileObjectPrimitive()
	if tp.HasAlphaTile() {
		t.Error("fresh TileObjectPrimitive should not report an alpha tile")
	}
	tp.AlphaTileIndex = 0
	if !tp.HasAlphaTile() {
		t.Error("index 0 is a valid allocated index and should report HasAlphaTile")
	}
}
