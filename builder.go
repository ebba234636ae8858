// Package scenetiler orchestrates the CPU-side scene-building stage of a
// GPU-accelerated 2D vector graphics renderer: it tiles a scene's clip and
// draw paths in parallel, maintains a Z-buffer for occlusion, and streams
// the resulting fills and tiles to a caller-supplied listener in the fixed
// order a downstream rasterizer expects.
package scenetiler

import (
	"log/slog"
	"time"

	"github.com/gogpu/scenetiler/executor"
	"github.com/gogpu/scenetiler/geom"
	"github.com/gogpu/scenetiler/gpudata"
	"github.com/gogpu/scenetiler/internal/tiling"
	"github.com/gogpu/scenetiler/internal/zbuffer"
	"github.com/gogpu/scenetiler/scene"
)

// clipResult is what one clip path's tiling contributes to the scene: its
// fills (emitted as its own AddFillsCommand), its alpha tiles (forwarded to
// DrawClipTiles), and the bounds a referencing draw path's own tiling is
// restricted to.
type clipResult struct {
	pathID     scene.ClipPathID
	bounds     geom.RectF
	fills      []gpudata.FillBatchPrimitive
	alphaTiles []gpudata.AlphaTile
}

// drawResult is what one draw path's tiling contributes: its fills and its
// alpha tiles, the latter pending the occlusion cull against the Z-buffer.
type drawResult struct {
	pathID     scene.DrawPathID
	fills      []gpudata.FillBatchPrimitive
	alphaTiles []gpudata.AlphaTile
}

// Build tiles scene against opts, using exec to parallelize per-path
// tiling and paint as the already-generated paint blob and metadata (paint
// generation itself is an out-of-scope collaborator; Build only consumes
// its output). Every render command is sent to listener in the fixed order
// documented on gpudata.RenderCommandListener. Build returns a non-nil
// error, without sending any further commands, on a structural failure:
// an invalid clip reference or an alpha-tile counter overflow.
func Build(s *scene.Scene, opts scene.BuildOptions, paint scene.PaintInfo, exec executor.Executor, listener gpudata.RenderCommandListener) error {
	start := time.Now()
	log := Logger()

	if err := s.Validate(); err != nil {
		log.Error("build aborted: invalid scene", "error", err)
		return err
	}

	prepared := opts.Prepare(s.ViewBox)
	viewBox := s.EffectiveViewBox(prepared)
	tileBounds := viewBox.RoundOutToTileBounds(gpudata.TileWidth, gpudata.TileHeight)

	boundingQuad := s.BoundingQuad
	if boundingQuad == (scene.BoundingQuad{}) {
		boundingQuad = prepared.BoundingQuad(viewBox)
	}

	log.Info("build started",
		"draw_paths", len(s.DrawPaths), "clip_paths", len(s.ClipPaths),
		"view_box", viewBox)

	listener.SendRenderCommand(gpudata.StartCommand{
		BoundingQuad: boundingQuad,
		PathCount:    s.PathCount(),
	})
	listener.SendRenderCommand(gpudata.AddPaintDataCommand{Paint: paint})

	counters := tiling.NewAlphaTileCounters()
	zb := zbuffer.New(tileBounds)

	clipResults, err := buildClipPaths(s, prepared, viewBox, counters, exec, log)
	if err != nil {
		log.Error("build aborted while tiling clip paths", "error", err)
		return err
	}
	// Tiling runs in parallel, but the listener is only safe for
	// externally-synchronized, single-threaded use: every SendRenderCommand
	// call happens here, back on this goroutine, after the fan-out joins.
	for _, r := range clipResults {
		listener.SendRenderCommand(gpudata.AddFillsCommand{Stage: gpudata.Stage0, Fills: r.fills})
	}

	drawResults, err := buildDrawPaths(s, prepared, viewBox, counters, zb, paint, clipResults, exec, log)
	if err != nil {
		log.Error("build aborted while tiling draw paths", "error", err)
		return err
	}
	for _, r := range drawResults {
		listener.SendRenderCommand(gpudata.AddFillsCommand{Stage: gpudata.Stage1, Fills: r.fills})
	}

	listener.SendRenderCommand(gpudata.FlushFillsCommand{})

	drawAlphas := cullDrawTiles(zb, drawResults)
	clipAlphas := collectClipTiles(clipResults)

	drawPathCount := uint32(len(s.DrawPaths))
	solidTiles := zb.BuildSolidTiles(0, drawPathCount, func(pathIndex uint32) scene.PaintID {
		return s.DrawPaths[pathIndex].Paint
	})

	if len(solidTiles) > 0 {
		listener.SendRenderCommand(gpudata.DrawSolidTilesCommand{Tiles: solidTiles})
	}
	if len(drawAlphas) > 0 {
		listener.SendRenderCommand(gpudata.DrawAlphaTilesCommand{Stage: gpudata.Stage1, Tiles: drawAlphas})
	}
	if len(clipAlphas) > 0 {
		listener.SendRenderCommand(gpudata.DrawClipTilesCommand{Tiles: clipAlphas})
	}

	listener.SendRenderCommand(gpudata.FinishCommand{BuildTime: time.Since(start)})

	log.Info("build finished",
		"solid_tiles", len(solidTiles), "draw_alpha_tiles", len(drawAlphas), "clip_alpha_tiles", len(clipAlphas))
	return nil
}

func buildClipPaths(s *scene.Scene, prepared scene.PreparedBuildOptions, viewBox geom.RectF, counters *tiling.AlphaTileCounters, exec executor.Executor, log *slog.Logger) ([]clipResult, error) {
	type outcome struct {
		result clipResult
		err    error
	}

	outcomes := executor.BuildVector(exec, len(s.ClipPaths), func(i int) outcome {
		cp := &s.ClipPaths[i]
		outline := prepared.ApplyTo(cp.Outline)
		bounds := outline.Bounds()
		if bounds.IsEmpty() {
			log.Warn("clip path has degenerate bounds", "clip_path", i)
		}

		info := tiling.PathInfo{
			Outline:   outline,
			FillRule:  cp.FillRule,
			Stage:     gpudata.Stage0,
			IsDraw:    false,
			PathIndex: uint32(i),
		}
		tiler := tiling.NewTiler(info, viewBox, counters, nil)
		if err := tiler.GenerateTiles(); err != nil {
			return outcome{err: err}
		}

		log.Debug("clip path tiled", "clip_path", i, "fills", len(tiler.Built.Fills), "alpha_tiles", len(tiler.Built.AlphaTiles))

		return outcome{result: clipResult{
			pathID:     scene.ClipPathID(i),
			bounds:     bounds,
			fills:      tiler.Built.Fills,
			alphaTiles: tiler.Built.AlphaTiles,
		}}
	})

	results := make([]clipResult, 0, len(outcomes))
	for _, o := range outcomes {
		if o.err != nil {
			return nil, o.err
		}
		results = append(results, o.result)
	}
	return results, nil
}

func findClipResult(results []clipResult, id scene.ClipPathID) (clipResult, bool) {
	for _, r := range results {
		if r.pathID == id {
			return r, true
		}
	}
	return clipResult{}, false
}

func buildDrawPaths(s *scene.Scene, prepared scene.PreparedBuildOptions, viewBox geom.RectF, counters *tiling.AlphaTileCounters, zb *zbuffer.ZBuffer, paint scene.PaintInfo, clipResults []clipResult, exec executor.Executor, log *slog.Logger) ([]drawResult, error) {
	type outcome struct {
		result drawResult
		err    error
	}

	outcomes := executor.BuildVector(exec, len(s.DrawPaths), func(i int) outcome {
		dp := &s.DrawPaths[i]
		outline := prepared.ApplyTo(dp.Outline.Transform(dp.Transform))
		if outline.Bounds().IsEmpty() {
			log.Warn("draw path has degenerate bounds", "draw_path", i)
		}

		isOpaque := false
		if int(dp.Paint) < len(paint.Metadata) {
			isOpaque = paint.Metadata[dp.Paint].IsOpaque
		}

		info := tiling.PathInfo{
			Outline:   outline,
			FillRule:  dp.FillRule,
			Stage:     gpudata.Stage1,
			IsDraw:    true,
			PathIndex: uint32(i),
			Paint:     dp.Paint,
			IsOpaque:  isOpaque,
		}
		if dp.HasClip {
			clip, ok := findClipResult(clipResults, dp.ClipPath)
			if ok {
				info.HasClip = true
				info.ClipIndex = uint32(dp.ClipPath)
				info.ClipBounds = clip.bounds
			}
		}

		tiler := tiling.NewTiler(info, viewBox, counters, zb)
		if err := tiler.GenerateTiles(); err != nil {
			return outcome{err: err}
		}

		log.Debug("draw path tiled", "draw_path", i, "fills", len(tiler.Built.Fills), "alpha_tiles", len(tiler.Built.AlphaTiles))

		return outcome{result: drawResult{
			pathID:     scene.DrawPathID(i),
			fills:      tiler.Built.Fills,
			alphaTiles: tiler.Built.AlphaTiles,
		}}
	})

	results := make([]drawResult, 0, len(outcomes))
	for _, o := range outcomes {
		if o.err != nil {
			return nil, o.err
		}
		results = append(results, o.result)
	}
	return results, nil
}

func cullDrawTiles(zb *zbuffer.ZBuffer, results []drawResult) []gpudata.AlphaTile {
	var out []gpudata.AlphaTile
	for _, r := range results {
		for _, at := range r.alphaTiles {
			if zb.Survives(at.TileCoord, uint32(r.pathID)) {
				out = append(out, at)
			}
		}
	}
	return out
}

func collectClipTiles(results []clipResult) []gpudata.AlphaTile {
	var out []gpudata.AlphaTile
	for _, r := range results {
		out = append(out, r.alphaTiles...)
	}
	return out
}
