// Package scene defines the input data model for the tiling pipeline: the
// scene graph of draw and clip paths, their outlines, fill rules, and the
// build options that resolve a scene against a device transform.
//
// Everything in this package is plain data supplied by the caller; scene
// never performs tiling or rasterization itself.
package scene

import (
	"github.com/gogpu/scenetiler/geom"
)

// DrawPathID identifies a path in Scene.DrawPaths. Draw path ids and clip
// path ids are disjoint spaces: a DrawPathID and a ClipPathID with the same
// numeric value refer to different paths.
type DrawPathID uint32

// ClipPathID identifies a path in Scene.ClipPaths.
type ClipPathID uint32

// PaintID identifies an entry in the scene's paint metadata, produced by
// the (out-of-scope) paint-data generation stage.
type PaintID uint32

// FillRule selects how the tiler's backdrop classifier turns a winding
// number into inside/outside coverage.
type FillRule uint8

const (
	// FillRuleNonZero treats any nonzero winding number as inside. This is
	// the default fill rule for both draw and clip paths.
	FillRuleNonZero FillRule = iota
	// FillRuleEvenOdd treats odd winding numbers as inside.
	FillRuleEvenOdd
)

// String implements fmt.Stringer.
func (f FillRule) String() string {
	if f == FillRuleEvenOdd {
		return "even-odd"
	}
	return "non-zero"
}

// Contour is a closed sequence of line segments in view-box space, produced
// by flattening a path's curves upstream of this package.
type Contour struct {
	Points []geom.Vector2F
}

// Segments returns an iterator-style slice of the contour's closed edges:
// each point connected to its successor, with the last connected back to
// the first. A contour with fewer than two points has no segments.
func (c Contour) Segments() []geom.LineSegment2F {
	n := len(c.Points)
	if n < 2 {
		return nil
	}
	segments := make([]geom.LineSegment2F, 0, n)
	for i := 0; i < n; i++ {
		from := c.Points[i]
		to := c.Points[(i+1)%n]
		if from == to {
			continue
		}
		segments = append(segments, geom.NewLineSegment2F(from, to))
	}
	return segments
}

// Bounds returns the axis-aligned bounding box of the contour's points. The
// zero value is returned for an empty contour.
func (c Contour) Bounds() geom.RectF {
	if len(c.Points) == 0 {
		return geom.RectF{}
	}
	p0 := c.Points[0]
	r := geom.NewRectF(p0.X, p0.Y, p0.X, p0.Y)
	for _, p := range c.Points[1:] {
		r = r.Union(geom.NewRectF(p.X, p.Y, p.X, p.Y))
	}
	return r
}

// Outline is an ordered sequence of closed, already-flattened contours in
// view-box space.
type Outline struct {
	Contours []Contour
}

// Bounds returns the union of all contour bounding boxes.
func (o *Outline) Bounds() geom.RectF {
	var bounds geom.RectF
	first := true
	for _, c := range o.Contours {
		if len(c.Points) == 0 {
			continue
		}
		if first {
			bounds = c.Bounds()
			first = false
			continue
		}
		bounds = bounds.Union(c.Bounds())
	}
	return bounds
}

// Segments returns every edge across every contour in the outline.
func (o *Outline) Segments() []geom.LineSegment2F {
	var out []geom.LineSegment2F
	for _, c := range o.Contours {
		out = append(out, c.Segments()...)
	}
	return out
}

// IsEmpty reports whether the outline has no contours with at least two
// points.
func (o *Outline) IsEmpty() bool {
	for _, c := range o.Contours {
		if len(c.Points) >= 2 {
			return false
		}
	}
	return true
}

// Transform applies an affine transform to every point of the outline and
// returns a new outline; the receiver is left unmodified.
func (o *Outline) Transform(t Affine2F) *Outline {
	out := &Outline{Contours: make([]Contour, len(o.Contours))}
	for i, c := range o.Contours {
		pts := make([]geom.Vector2F, len(c.Points))
		for j, p := range c.Points {
			pts[j] = t.Apply(p)
		}
		out.Contours[i] = Contour{Points: pts}
	}
	return out
}

// ClipPath is a path used only to restrict the coverage of draw paths that
// reference it; it is never drawn directly.
type ClipPath struct {
	Outline  *Outline
	FillRule FillRule
}

// DrawPath is a filled path contributing visible coverage to the scene.
// ClipPathID is optional; a zero-value ClipPathID is not itself meaningful
// and must be paired with HasClip to distinguish "no clip" from clip 0.
type DrawPath struct {
	Outline   *Outline
	Paint     PaintID
	FillRule  FillRule
	ClipPath  ClipPathID
	HasClip   bool
	Transform Affine2F
}

// Scene is the complete, immutable input to a single build: the draw and
// clip paths, the view box they are defined in, and the bounding quad used
// to size the render target.
type Scene struct {
	DrawPaths    []DrawPath
	ClipPaths    []ClipPath
	ViewBox      geom.RectF
	BoundingQuad BoundingQuad
}

// BoundingQuad is the device-space quadrilateral the scene is rendered
// into; kept as four corners (rather than a rectangle) so a rotated or
// perspective-prepared viewport can still be expressed.
type BoundingQuad [4]geom.Vector2F

// RectBoundingQuad returns the BoundingQuad for an axis-aligned rectangle,
// corners in clockwise order starting at the top-left.
func RectBoundingQuad(r geom.RectF) BoundingQuad {
	return BoundingQuad{
		{X: r.MinX, Y: r.MinY},
		{X: r.MaxX, Y: r.MinY},
		{X: r.MaxX, Y: r.MaxY},
		{X: r.MinX, Y: r.MaxY},
	}
}

// Validate checks structural invariants that must hold before a build can
// proceed: every draw path naming a clip must refer to a clip path that
// exists in the scene. It returns an *InvalidClipReferenceError wrapping
// ErrInvalidClipReference on the first violation found, in draw-path order.
func (s *Scene) Validate() error {
	for i := range s.DrawPaths {
		dp := &s.DrawPaths[i]
		if !dp.HasClip {
			continue
		}
		if uint32(dp.ClipPath) >= uint32(len(s.ClipPaths)) {
			return &InvalidClipReferenceError{
				DrawPath: DrawPathID(i),
				ClipPath: dp.ClipPath,
			}
		}
	}
	return nil
}

// EffectiveViewBox returns the scene's view box, expanded by the prepared
// build options' dilation. Implementations that need to inflate the tile
// grid to accommodate stroke dilation or pixel snapping call this instead
// of reading ViewBox directly.
func (s *Scene) EffectiveViewBox(opts PreparedBuildOptions) geom.RectF {
	vb := s.ViewBox
	return geom.NewRectF(
		vb.MinX-opts.Dilation.X, vb.MinY-opts.Dilation.Y,
		vb.MaxX+opts.Dilation.X, vb.MaxY+opts.Dilation.Y,
	)
}

// PathCount returns the total number of paths (clip plus draw) in the
// scene, used to size the Start command's path_count field.
func (s *Scene) PathCount() int {
	return len(s.DrawPaths) + len(s.ClipPaths)
}
