package scene

import "github.com/gogpu/scenetiler/geom"

// Affine2F is a 2D affine transform: [a c tx; b d ty]. It is applied to a
// point as (a*x + c*y + tx, b*x + d*y + ty).
type Affine2F struct {
	A, B, C, D, TX, TY float32
}

// IdentityAffine returns the identity transform.
func IdentityAffine() Affine2F {
	return Affine2F{A: 1, D: 1}
}

// TranslateAffine returns a transform that translates by (x, y).
func TranslateAffine(x, y float32) Affine2F {
	return Affine2F{A: 1, D: 1, TX: x, TY: y}
}

// ScaleAffine returns a transform that scales by (sx, sy).
func ScaleAffine(sx, sy float32) Affine2F {
	return Affine2F{A: sx, D: sy}
}

// Apply transforms a point by this affine matrix.
func (a Affine2F) Apply(p geom.Vector2F) geom.Vector2F {
	return geom.Vector2F{
		X: a.A*p.X + a.C*p.Y + a.TX,
		Y: a.B*p.X + a.D*p.Y + a.TY,
	}
}

// Multiply returns the transform equivalent to applying o first, then a
// (i.e. a.Multiply(o).Apply(p) == a.Apply(o.Apply(p))).
func (a Affine2F) Multiply(o Affine2F) Affine2F {
	return Affine2F{
		A:  a.A*o.A + a.C*o.B,
		B:  a.B*o.A + a.D*o.B,
		C:  a.A*o.C + a.C*o.D,
		D:  a.B*o.C + a.D*o.D,
		TX: a.A*o.TX + a.C*o.TY + a.TX,
		TY: a.B*o.TX + a.D*o.TY + a.TY,
	}
}

// IsIdentity reports whether the transform has no effect on any point.
func (a Affine2F) IsIdentity() bool {
	return a == IdentityAffine()
}
