package scene

import "github.com/gogpu/scenetiler/geom"

// SubpixelAAMode selects the subpixel antialiasing strategy the downstream
// rasterizer should apply; the tiler itself only threads the value through
// to PreparedBuildOptions, it never branches on it.
type SubpixelAAMode uint8

const (
	// SubpixelAANone disables subpixel antialiasing (grayscale AA only).
	SubpixelAANone SubpixelAAMode = iota
	// SubpixelAALCD enables LCD subpixel antialiasing.
	SubpixelAALCD
)

// BuildOptions is the caller-facing, unresolved set of build parameters.
type BuildOptions struct {
	Transform      Affine2F
	Dilation       geom.Vector2F
	SubpixelAAMode SubpixelAAMode
}

// DefaultBuildOptions returns the zero-dilation, identity-transform,
// no-subpixel-AA default options.
func DefaultBuildOptions() BuildOptions {
	return BuildOptions{Transform: IdentityAffine()}
}

// PreparedBuildOptions is BuildOptions resolved against a scene, ready for
// the tiler to apply directly to outlines. Prepare currently carries the
// caller's transform over as is.
type PreparedBuildOptions struct {
	Transform      Affine2F
	Dilation       geom.Vector2F
	SubpixelAAMode SubpixelAAMode
}

// Prepare resolves BuildOptions against the scene's view box into
// PreparedBuildOptions. Today the transform is copied through unchanged;
// viewBox exists as a seam for a future device-space fit (e.g. flipping Y
// or letterboxing into a bounding quad) without changing callers.
func (o BuildOptions) Prepare(viewBox geom.RectF) PreparedBuildOptions {
	return PreparedBuildOptions{
		Transform:      o.Transform,
		Dilation:       o.Dilation,
		SubpixelAAMode: o.SubpixelAAMode,
	}
}

// BoundingQuad returns the device-space bounding quad implied by these
// options applied to the given view box.
func (o PreparedBuildOptions) BoundingQuad(viewBox geom.RectF) BoundingQuad {
	corners := RectBoundingQuad(viewBox)
	var out BoundingQuad
	for i, c := range corners {
		out[i] = o.Transform.Apply(c)
	}
	return out
}

// ApplyTo applies the prepared transform to an outline, returning a new
// outline in device space.
func (o PreparedBuildOptions) ApplyTo(outline *Outline) *Outline {
	if o.Transform.IsIdentity() {
		return outline
	}
	return outline.Transform(o.Transform)
}

// PaintMetadata is the per-path metadata entry produced by the (out of
// scope) paint-data generation stage. The builder reads it to decide
// whether a draw path's fully covered tiles go into the Z-buffer as solid
// tiles or are emitted as alpha tiles.
type PaintMetadata struct {
	// IsOpaque reports whether this paint fully covers every pixel it
	// touches with alpha 1.0 and no blending; only opaque paints may
	// produce solid tiles that occlude paths beneath them.
	IsOpaque bool
}

// PaintInfo bundles the opaque paint-data blob consumed by the GPU with
// the per-path metadata used during tiling and occlusion culling.
type PaintInfo struct {
	Data     []byte
	Metadata []PaintMetadata
}
