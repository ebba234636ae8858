package gpudata

import (
	"testing"

	"github.com/gogpu/scenetiler/geom"
	"github.com/gogpu/scenetiler/scene"
)

type recordingListener struct {
	commands []RenderCommand
}

func (l *recordingListener) SendRenderCommand(cmd RenderCommand) {
	l.commands = append(l.commands, cmd)
}

func TestRenderCommandStreamOrdering(t *testing.T) {
	l := &recordingListener{}
	l.SendRenderCommand(StartCommand{BoundingQuad: scene.RectBoundingQuad(geom.NewRectF(0, 0, 64, 64)), PathCount: 1})
	l.SendRenderCommand(AddFillsCommand{Stage: Stage0, Fills: []FillBatchPrimitive{{}}})
	l.SendRenderCommand(AddFillsCommand{Stage: Stage1, Fills: []FillBatchPrimitive{{}}})
	l.SendRenderCommand(FlushFillsCommand{})
	l.SendRenderCommand(DrawClipTilesCommand{Tiles: []AlphaTile{{}}})
	l.SendRenderCommand(DrawSolidTilesCommand{Tiles: []SolidTile{{}}})
	l.SendRenderCommand(DrawAlphaTilesCommand{Stage: Stage1, Tiles: []AlphaTile{{}}})
	l.SendRenderCommand(FinishCommand{BuildTime: 42})

	if len(l.commands) != 8 {
		t.Fatalf("got %d commands, want 8", len(l.commands))
	}
	if _, ok := l.commands[0].(StartCommand); !ok {
		t.Errorf("first command = %T, want StartCommand", l.commands[0])
	}
	if _, ok := l.commands[len(l.commands)-1].(FinishCommand); !ok {
		t.Errorf("last command = %T, want FinishCommand", l.commands[len(l.commands)-1])
	}

	flush := -1
	clipDraw := -1
	for i, cmd := range l.commands {
		switch cmd.(type) {
		case FlushFillsCommand:
			flush = i
		case DrawClipTilesCommand:
			clipDraw = i
		}
	}
	if flush == -1 || clipDraw == -1 || clipDraw <= flush {
		t.Errorf("expected FlushFills (%d) before DrawClipTiles (%d)", flush, clipDraw)
	}
}

func TestRenderCommandMarkerConfinesType(t *testing.T) {
	var cmds []RenderCommand
	cmds = append(cmds, StartCommand{}, FinishCommand{})
	if len(cmds) != 2 {
		t.Fatalf("got %d, want 2", len(cmds))
	}
}
