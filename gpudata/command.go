package gpudata

import (
	"time"

	"github.com/gogpu/scenetiler/scene"
)

// RenderCommand is the closed sum type streamed from the scene builder to
// a RenderCommandListener. The isRenderCommand marker method confines
// implementations to this package, mirroring the pack's recording command
// interface.
type RenderCommand interface {
	isRenderCommand()
}

// StartCommand opens the stream, announcing the device-space bounding quad
// the scene renders into and the total path count so the listener can size
// its GPU buffers before any data arrives.
type StartCommand struct {
	BoundingQuad scene.BoundingQuad
	PathCount    int
}

func (StartCommand) isRenderCommand() {}

// AddPaintDataCommand carries the opaque paint blob produced upstream of
// tiling, handed through unmodified.
type AddPaintDataCommand struct {
	Paint scene.PaintInfo
}

func (AddPaintDataCommand) isRenderCommand() {}

// AddFillsCommand uploads a batch of fill primitives for one render stage.
type AddFillsCommand struct {
	Stage RenderStage
	Fills []FillBatchPrimitive
}

func (AddFillsCommand) isRenderCommand() {}

// FlushFillsCommand signals that every fill for every stage has been
// uploaded and the listener should resolve accumulated coverage into its
// alpha tile textures before any DrawAlphaTiles or DrawClipTiles command.
type FlushFillsCommand struct{}

func (FlushFillsCommand) isRenderCommand() {}

// DrawSolidTilesCommand instructs the listener to draw a batch of fully
// covered tiles directly from their paint, with no coverage lookup.
type DrawSolidTilesCommand struct {
	Tiles []SolidTile
}

func (DrawSolidTilesCommand) isRenderCommand() {}

// DrawAlphaTilesCommand instructs the listener to draw a batch of
// partially covered tiles, sampling coverage from the stage's resolved
// alpha tile texture.
type DrawAlphaTilesCommand struct {
	Stage RenderStage
	Tiles []AlphaTile
}

func (DrawAlphaTilesCommand) isRenderCommand() {}

// DrawClipTilesCommand instructs the listener to composite Stage0's
// resolved alpha tiles into a clip mask before Stage1 draw commands
// reference it.
type DrawClipTilesCommand struct {
	Tiles []AlphaTile
}

func (DrawClipTilesCommand) isRenderCommand() {}

// FinishCommand closes the stream. No further commands follow it. BuildTime
// is the wall-clock duration of the whole build, start to finish.
type FinishCommand struct {
	BuildTime time.Duration
}

func (FinishCommand) isRenderCommand() {}

// RenderCommandListener receives the ordered RenderCommand stream a build
// produces. Implementations are expected to be the GPU device abstraction;
// this package only defines the contract.
//
// A build sends, in this order: one StartCommand; one AddPaintDataCommand;
// one AddFillsCommand per clip path (Stage0) and then one per draw path
// (Stage1), each in path-index order; one FlushFillsCommand; then
// DrawSolidTilesCommand, DrawAlphaTilesCommand and DrawClipTilesCommand,
// each only when its tile list is non-empty; and finally one
// FinishCommand. SendRenderCommand is externally synchronized: the builder
// calls it only from the goroutine running the build, never concurrently.
type RenderCommandListener interface {
	SendRenderCommand(cmd RenderCommand)
}
