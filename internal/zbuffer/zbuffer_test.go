package zbuffer

import (
	"sync"
	"testing"

	"github.com/gogpu/scenetiler/geom"
	"github.com/gogpu/scenetiler/scene"
)

func identityPaint(pathIndex uint32) scene.PaintID { return scene.PaintID(pathIndex) }

func TestUpdateAndTest(t *testing.T) {
	z := New(geom.RectI{MaxX: 4, MaxY: 4})
	tile := geom.Vec2I(1, 1)

	if _, covered := z.Test(tile); covered {
		t.Fatal("fresh buffer should report uncovered")
	}

	z.Update(tile, 3)
	idx, covered := z.Test(tile)
	if !covered || idx != 3 {
		t.Fatalf("Test() = (%d, %v), want (3, true)", idx, covered)
	}
}

func TestUpdateKeepsHighestIndex(t *testing.T) {
	z := New(geom.RectI{MaxX: 2, MaxY: 2})
	tile := geom.Vec2I(0, 0)

	z.Update(tile, 5)
	z.Update(tile, 2) // lower index must not overwrite
	idx, _ := z.Test(tile)
	if idx != 5 {
		t.Errorf("Test() index = %d, want 5 (lower update must not regress)", idx)
	}

	z.Update(tile, 9)
	idx, _ = z.Test(tile)
	if idx != 9 {
		t.Errorf("Test() index = %d, want 9", idx)
	}
}

func TestUpdateOutsideBoundsIsNoop(t *testing.T) {
	z := New(geom.RectI{MaxX: 2, MaxY: 2})
	z.Update(geom.Vec2I(10, 10), 1) // must not panic
	if _, covered := z.Test(geom.Vec2I(10, 10)); covered {
		t.Error("out-of-bounds tile should never report covered")
	}
}

func TestSurvives(t *testing.T) {
	z := New(geom.RectI{MaxX: 2, MaxY: 2})
	tile := geom.Vec2I(0, 0)
	z.Update(tile, 4)

	if z.Survives(tile, 2) {
		t.Error("path 2's alpha tile should be occluded by solid path 4")
	}
	if !z.Survives(tile, 4) {
		t.Error("a path's own solid coverage should not occlude its own alpha tile")
	}
	if !z.Survives(tile, 7) {
		t.Error("path 7 should survive against a lower occluding path 4")
	}
}

func TestSurvivesUncoveredTile(t *testing.T) {
	z := New(geom.RectI{MaxX: 2, MaxY: 2})
	if !z.Survives(geom.Vec2I(1, 1), 0) {
		t.Error("an uncovered tile should always survive")
	}
}

func TestConcurrentUpdateKeepsMax(t *testing.T) {
	z := New(geom.RectI{MaxX: 1, MaxY: 1})
	tile := geom.Vec2I(0, 0)

	var wg sync.WaitGroup
	for i := uint32(0); i < 200; i++ {
		wg.Add(1)
		go func(pathIndex uint32) {
			defer wg.Done()
			z.Update(tile, pathIndex)
		}(i)
	}
	wg.Wait()

	idx, covered := z.Test(tile)
	if !covered || idx != 199 {
		t.Errorf("Test() = (%d, %v), want (199, true) after concurrent updates", idx, covered)
	}
}

func TestBuildSolidTiles(t *testing.T) {
	z := New(geom.RectI{MaxX: 2, MaxY: 2})
	z.Update(geom.Vec2I(0, 0), 1)
	z.Update(geom.Vec2I(1, 1), 3)

	tiles := z.BuildSolidTiles(0, 10, identityPaint)
	if len(tiles) != 2 {
		t.Fatalf("got %d solid tiles, want 2", len(tiles))
	}
	for _, st := range tiles {
		if st.Paint != scene.PaintID(st.PathIndex) {
			t.Errorf("tile %+v: paint does not match path index", st)
		}
	}
}

func TestBuildSolidTilesRestrictsToRange(t *testing.T) {
	z := New(geom.RectI{MaxX: 2, MaxY: 2})
	z.Update(geom.Vec2I(0, 0), 1) // clip path, outside draw range
	z.Update(geom.Vec2I(1, 1), 5) // draw path, inside range

	tiles := z.BuildSolidTiles(3, 10, identityPaint)
	if len(tiles) != 1 {
		t.Fatalf("got %d solid tiles, want 1", len(tiles))
	}
	if tiles[0].PathIndex != 5 {
		t.Errorf("PathIndex = %d, want 5", tiles[0].PathIndex)
	}
}
