package tripatch

import (
	"iter"
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Affine describes a 3D affine transform via coefficients. It moves
// triangles and finished patches between coordinate frames; the patch
// constructions commute with rigid motions.
//
// The coefficients (N0, …, N11) represent this augmented matrix:
//
//	| N0 N3 N6 N9  |
//	| N1 N4 N7 N10 |
//	| N2 N5 N8 N11 |
//	| 0  0  0  1   |
//
// The first three columns are the images of the unit vectors and the last
// column is the translation, so that (A * B) * v == A * (B * v).
type Affine struct {
	N0, N1, N2, N3, N4, N5, N6, N7, N8, N9, N10, N11 float64
}

// Identity is the identity transform.
var Identity = Affine{1, 0, 0, 0, 1, 0, 0, 0, 1, 0, 0, 0}

// Scale creates an affine transform representing non-uniform scaling along
// the coordinate axes.
func Scale(x, y, z float64) Affine {
	return Affine{x, 0, 0, 0, y, 0, 0, 0, z, 0, 0, 0}
}

// Translate creates an affine transform representing translation.
func Translate(v Vec3) Affine {
	return Affine{1, 0, 0, 0, 1, 0, 0, 0, 1, v.X, v.Y, v.Z}
}

// Rotate creates an affine transform representing a rotation of th radians
// about axis through the origin, counterclockwise when looking against the
// axis.
func Rotate(axis Vec3, th float64) Affine {
	rot := r3.NewRotation(th, axis.r3())
	x := rot.Rotate(r3.Vec{X: 1})
	y := rot.Rotate(r3.Vec{Y: 1})
	z := rot.Rotate(r3.Vec{Z: 1})
	return Affine{x.X, x.Y, x.Z, y.X, y.Y, y.Z, z.X, z.Y, z.Z, 0, 0, 0}
}

// RotateAbout creates an affine transform representing a rotation of th
// radians about the line through center with direction axis.
func RotateAbout(axis Vec3, th float64, center Point) Affine {
	c := Vec3(center)
	return Translate(c.Negate()).ThenRotate(axis, th).ThenTranslate(c)
}

// Coefficients returns the coefficients of the transform.
func (aff Affine) Coefficients() [12]float64 {
	return [12]float64{
		aff.N0, aff.N1, aff.N2, aff.N3, aff.N4, aff.N5,
		aff.N6, aff.N7, aff.N8, aff.N9, aff.N10, aff.N11,
	}
}

// NewAffine creates a new affine transformation from an array of
// coefficients.
func NewAffine(n [12]float64) Affine {
	return Affine{n[0], n[1], n[2], n[3], n[4], n[5], n[6], n[7], n[8], n[9], n[10], n[11]}
}

// columns returns the images of the unit vectors.
func (aff Affine) columns() (Vec3, Vec3, Vec3) {
	return Vec3{aff.N0, aff.N1, aff.N2}, Vec3{aff.N3, aff.N4, aff.N5}, Vec3{aff.N6, aff.N7, aff.N8}
}

func (aff Affine) Mul(o Affine) Affine {
	a := aff.Linear
	x := a(Vec3{o.N0, o.N1, o.N2})
	y := a(Vec3{o.N3, o.N4, o.N5})
	z := a(Vec3{o.N6, o.N7, o.N8})
	t := a(Vec3{o.N9, o.N10, o.N11}).Add(aff.Translation())
	return Affine{x.X, x.Y, x.Z, y.X, y.Y, y.Z, z.X, z.Y, z.Z, t.X, t.Y, t.Z}
}

// ThenRotate creates aff followed by a rotation of th about axis.
//
// Equivalent to "Rotate(axis, th) * aff"
func (aff Affine) ThenRotate(axis Vec3, th float64) Affine {
	return Rotate(axis, th).Mul(aff)
}

// ThenScale creates aff followed by a scale of (x, y, z).
//
// Equivalent to "Scale(x, y, z) * aff"
func (aff Affine) ThenScale(x, y, z float64) Affine {
	return Scale(x, y, z).Mul(aff)
}

// PreTranslate creates a translation of v followed by aff.
//
// Equivalent to "aff * Translate(v)"
func (aff Affine) PreTranslate(v Vec3) Affine {
	return aff.Mul(Translate(v))
}

// ThenTranslate creates aff followed by a translation of v.
//
// Equivalent to "Translate(v) * aff"
func (aff Affine) ThenTranslate(v Vec3) Affine {
	aff.N9 += v.X
	aff.N10 += v.Y
	aff.N11 += v.Z
	return aff
}

// Determinant computes the determinant of the linear part.
func (aff Affine) Determinant() float64 {
	x, y, z := aff.columns()
	return x.Dot(y.Cross(z))
}

// Invert computes the inverse transform.
//
// Produces NaN values when the determinant is zero.
func (aff Affine) Invert() Affine {
	x, y, z := aff.columns()
	invDet := 1 / aff.Determinant()
	// The rows of the inverse are the pairwise cross products of the
	// columns.
	r0 := y.Cross(z).Mul(invDet)
	r1 := z.Cross(x).Mul(invDet)
	r2 := x.Cross(y).Mul(invDet)
	inv := Affine{r0.X, r1.X, r2.X, r0.Y, r1.Y, r2.Y, r0.Z, r1.Z, r2.Z, 0, 0, 0}
	t := inv.Linear(aff.Translation()).Negate()
	return inv.WithTranslation(t)
}

func (aff Affine) IsInf() bool {
	for _, n := range aff.Coefficients() {
		if math.IsInf(n, 0) {
			return true
		}
	}
	return false
}

func (aff Affine) IsNaN() bool {
	for _, n := range aff.Coefficients() {
		if math.IsNaN(n) {
			return true
		}
	}
	return false
}

// Translation returns the translation component of this affine
// transformation.
func (aff Affine) Translation() Vec3 {
	return Vec3{aff.N9, aff.N10, aff.N11}
}

// WithTranslation replaces the translation portion of this affine
// transformation.
func (aff Affine) WithTranslation(v Vec3) Affine {
	aff.N9, aff.N10, aff.N11 = v.X, v.Y, v.Z
	return aff
}

// Linear applies the linear part of the transform to v, ignoring the
// translation. This is how free vectors such as tangents transform.
func (aff Affine) Linear(v Vec3) Vec3 {
	return Vec3{
		aff.N0*v.X + aff.N3*v.Y + aff.N6*v.Z,
		aff.N1*v.X + aff.N4*v.Y + aff.N7*v.Z,
		aff.N2*v.X + aff.N5*v.Y + aff.N8*v.Z,
	}
}

// Normal transforms the surface normal n with the inverse transpose of the
// linear part, so that it stays perpendicular to transformed tangents, and
// normalizes the result.
func (aff Affine) Normal(n Vec3) Vec3 {
	x, y, z := aff.columns()
	v := y.Cross(z).Mul(n.X).Add(z.Cross(x).Mul(n.Y)).Add(x.Cross(y).Mul(n.Z))
	if aff.Determinant() < 0 {
		v = v.Negate()
	}
	return v.Normalize()
}

func (pt Point) Transform(aff Affine) Point {
	return Point(aff.Linear(Vec3(pt)).Add(aff.Translation()))
}

func (v Vertex) Transform(aff Affine) Vertex {
	return Vertex{Point: v.Point.Transform(aff), Normal: aff.Normal(v.Normal)}
}

func (s Side) Transform(aff Affine) Side {
	if !s.OnBoundary {
		return s
	}
	return Side{
		OnBoundary: true,
		Tangent0:   aff.Linear(s.Tangent0).Normalize(),
		Tangent1:   aff.Linear(s.Tangent1).Normalize(),
	}
}

// Transform maps the cone's points and axis. Only similarity transforms
// map a cone onto a cone with the same half angle; the radius is scaled by
// the transform's linear scale factor.
func (c Cone) Transform(aff Affine) Cone {
	scale := math.Cbrt(math.Abs(aff.Determinant()))
	return Cone{
		Apex:      c.Apex.Transform(aff),
		Base:      c.Base.Transform(aff),
		Axis:      aff.Linear(c.Axis),
		HalfAngle: c.HalfAngle,
		Radius:    c.Radius * scale,
	}
}

func (t Triangle) Transform(aff Affine) Triangle {
	for i := range t.Vertices {
		t.Vertices[i] = t.Vertices[i].Transform(aff)
		t.Sides[i] = t.Sides[i].Transform(aff)
	}
	if c, ok := t.Surface.(Cone); ok {
		t.Surface = c.Transform(aff)
	}
	return t
}

func (q QuadBez) Transform(aff Affine) QuadBez {
	return QuadBez{q.P0.Transform(aff), q.P1.Transform(aff), q.P2.Transform(aff)}
}

func (c CubicBez) Transform(aff Affine) CubicBez {
	return CubicBez{c.P0.Transform(aff), c.P1.Transform(aff), c.P2.Transform(aff), c.P3.Transform(aff)}
}

func (t CubicTriangle) Transform(aff Affine) CubicTriangle {
	p := t.Poles()
	for i := range p {
		p[i] = p[i].Transform(aff)
	}
	return NewCubicTriangle(p)
}

// Transform maps the poles and keeps the weights; rational patches are
// invariant under affine maps.
func (t QuadTriangle) Transform(aff Affine) QuadTriangle {
	t.P200 = t.P200.Transform(aff)
	t.P020 = t.P020.Transform(aff)
	t.P002 = t.P002.Transform(aff)
	t.P110 = t.P110.Transform(aff)
	t.P011 = t.P011.Transform(aff)
	t.P101 = t.P101.Transform(aff)
	return t
}

func (p CubicRect) Transform(aff Affine) CubicRect {
	for r := range p.Poles {
		for c := range p.Poles[r] {
			p.Poles[r][c] = p.Poles[r][c].Transform(aff)
		}
	}
	return p
}

func (p QuadRect) Transform(aff Affine) QuadRect {
	for r := range p.Poles {
		for c := range p.Poles[r] {
			p.Poles[r][c] = p.Poles[r][c].Transform(aff)
		}
	}
	return p
}

// Transform applies aff to every element of seq.
func Transform[T interface{ Transform(Affine) T }](seq iter.Seq[T], aff Affine) iter.Seq[T] {
	return func(yield func(T) bool) {
		for v := range seq {
			if !yield(v.Transform(aff)) {
				break
			}
		}
	}
}
