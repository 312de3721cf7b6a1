package tripatch

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

var _ RectPatch = CubicRect{}
var _ RectPatch = QuadRect{}

// RectPatch is a tensor-product Bézier patch over the unit square. The
// implementations are [CubicRect] and [QuadRect].
type RectPatch interface {
	// Eval evaluates the patch at (u, v) ∈ [0, 1]².
	Eval(u, v float64) Point
	IsNaN() bool
	IsInf() bool

	isRectPatch()
}

// CubicRect is a bicubic tensor-product Bézier patch. Poles[r][c] is the
// pole in row r, which varies with u, and column c, which varies with v.
type CubicRect struct {
	Poles [4][4]Point
}

func (p CubicRect) Eval(u, v float64) Point {
	bu := bernstein3(u)
	bv := bernstein3(v)
	var s Vec3
	for r, row := range p.Poles {
		for c, pt := range row {
			s = s.Add(Vec3(pt).Mul(bu[r] * bv[c]))
		}
	}
	return Point(s)
}

func (p CubicRect) IsNaN() bool {
	for _, row := range p.Poles {
		for _, pt := range row {
			if pt.IsNaN() {
				return true
			}
		}
	}
	return false
}

func (p CubicRect) IsInf() bool {
	for _, row := range p.Poles {
		for _, pt := range row {
			if pt.IsInf() {
				return true
			}
		}
	}
	return false
}

func (CubicRect) isRectPatch() {}

// QuadRect is a rational biquadratic tensor-product Bézier patch with one
// weight per pole.
type QuadRect struct {
	Poles   [3][3]Point
	Weights [3][3]float64
}

func (p QuadRect) Eval(u, v float64) Point {
	bu := bernstein2(u)
	bv := bernstein2(v)
	var s Vec3
	var w float64
	for r, row := range p.Poles {
		for c, pt := range row {
			b := bu[r] * bv[c] * p.Weights[r][c]
			s = s.Add(Vec3(pt).Mul(b))
			w += b
		}
	}
	return Point(s.Div(w))
}

func (p QuadRect) IsNaN() bool {
	for r, row := range p.Poles {
		for c, pt := range row {
			if pt.IsNaN() || math.IsNaN(p.Weights[r][c]) {
				return true
			}
		}
	}
	return false
}

func (p QuadRect) IsInf() bool {
	for r, row := range p.Poles {
		for c, pt := range row {
			if pt.IsInf() || math.IsInf(p.Weights[r][c], 0) {
				return true
			}
		}
	}
	return false
}

func (QuadRect) isRectPatch() {}

// Pinched returns the triangular patch as one bicubic patch whose last
// column collapses into the corner B300. The rectangle is an exact
// reparametrization: Eval(u, v) equals the triangle evaluated at
// (v, (1−u)(1−v), u(1−v)).
//
// Row 0 is side 2 traversed from B030 to B300, column 0 is side 0 and row
// 3 is side 1.
func (t CubicTriangle) Pinched() CubicRect {
	third := func(a Point, wa float64, b Point, wb float64) Point {
		return Point(Vec3(a).Mul(wa).Add(Vec3(b).Mul(wb)).Div(3))
	}
	return CubicRect{Poles: [4][4]Point{
		{t.B030, t.B120, t.B210, t.B300},
		{t.B021, third(t.B120, 1, t.B111, 2), third(t.B210, 2, t.B201, 1), t.B300},
		{t.B012, third(t.B111, 2, t.B102, 1), third(t.B210, 1, t.B201, 2), t.B300},
		{t.B003, t.B102, t.B201, t.B300},
	}}
}

// Pinched returns the triangular patch as one rational biquadratic patch
// whose last row collapses into the corner P002. Eval(u, v) equals the
// triangle evaluated at ((1−u)(1−v), (1−u)v, u).
//
// The center pole blends P101 and P011 and carries the mean of their
// weights. When both weights are zero the center carries weight zero too
// and its position, the midpoint of P101 and P011, has no influence.
func (t QuadTriangle) Pinched() QuadRect {
	ws := t.W101 + t.W011
	center := t.P101.Midpoint(t.P011)
	if ws != 0 {
		center = Point(Vec3(t.P101).Mul(t.W101).Add(Vec3(t.P011).Mul(t.W011)).Div(ws))
	}
	return QuadRect{
		Poles: [3][3]Point{
			{t.P200, t.P110, t.P020},
			{t.P101, center, t.P011},
			{t.P002, t.P002, t.P002},
		},
		Weights: [3][3]float64{
			{1, t.W110, 1},
			{t.W101, ws / 2, t.W011},
			{1, 1, 1},
		},
	}
}

// packedCoeffs maps the ten poles of a cubic triangle, relabeled around
// one corner as b00 b01 b02 b03 b12 b21 b30 b20 b10 b11, to the sixteen
// poles of the bicubic patch covering the quadrilateral between that
// corner, the midpoints of its two sides and the centroid. Row 4r+c holds
// pole [r][c].
//
// The coefficients are those of Hu's subdivision of a triangular Bézier
// patch into three rectangular ones.
var packedCoeffs = mat.NewDense(16, 10, []float64{
	//   b00      b01      b02     b03     b12     b21     b30     b20      b10      b11
	1, 0, 0, 0, 0, 0, 0, 0, 0, 0,
	1.0 / 2, 1.0 / 2, 0, 0, 0, 0, 0, 0, 0, 0,
	1.0 / 4, 2.0 / 4, 1.0 / 4, 0, 0, 0, 0, 0, 0, 0,
	1.0 / 8, 3.0 / 8, 3.0 / 8, 1.0 / 8, 0, 0, 0, 0, 0, 0,

	1.0 / 2, 0, 0, 0, 0, 0, 0, 0, 1.0 / 2, 0,
	5.0 / 18, 5.0 / 18, 0, 0, 0, 0, 0, 0, 5.0 / 18, 3.0 / 18,
	11.0 / 72, 22.0 / 72, 11.0 / 72, 0, 3.0 / 72, 0, 0, 0, 11.0 / 72, 14.0 / 72,
	1.0 / 12, 3.0 / 12, 3.0 / 12, 1.0 / 12, 1.0 / 12, 0, 0, 0, 1.0 / 12, 2.0 / 12,

	1.0 / 4, 0, 0, 0, 0, 0, 0, 1.0 / 4, 2.0 / 4, 0,
	11.0 / 72, 11.0 / 72, 0, 0, 0, 3.0 / 72, 0, 11.0 / 72, 22.0 / 72, 14.0 / 72,
	5.0 / 54, 10.0 / 54, 5.0 / 54, 0, 3.0 / 54, 3.0 / 54, 0, 5.0 / 54, 10.0 / 54, 13.0 / 54,
	1.0 / 18, 3.0 / 18, 3.0 / 18, 1.0 / 18, 2.0 / 18, 1.0 / 18, 0, 1.0 / 18, 2.0 / 18, 4.0 / 18,

	1.0 / 8, 0, 0, 0, 0, 0, 1.0 / 8, 3.0 / 8, 3.0 / 8, 0,
	1.0 / 12, 1.0 / 12, 0, 0, 0, 1.0 / 12, 1.0 / 12, 3.0 / 12, 3.0 / 12, 2.0 / 12,
	1.0 / 18, 2.0 / 18, 1.0 / 18, 0, 1.0 / 18, 2.0 / 18, 1.0 / 18, 3.0 / 18, 3.0 / 18, 4.0 / 18,
	1.0 / 27, 3.0 / 27, 3.0 / 27, 1.0 / 27, 3.0 / 27, 3.0 / 27, 1.0 / 27, 3.0 / 27, 3.0 / 27, 6.0 / 27,
})

// packedOrders are the three relabelings of the poles, one per corner, in
// the column order of packedCoeffs.
func (t CubicTriangle) packedOrders() [3][10]Point {
	return [3][10]Point{
		{t.B300, t.B201, t.B102, t.B003, t.B012, t.B021, t.B030, t.B120, t.B210, t.B111},
		{t.B030, t.B120, t.B210, t.B300, t.B201, t.B102, t.B003, t.B012, t.B021, t.B111},
		{t.B003, t.B012, t.B021, t.B030, t.B120, t.B210, t.B300, t.B201, t.B102, t.B111},
	}
}

// Packed returns the triangular patch as three bicubic patches without
// degenerate corners, one per corner of the triangle, which together tile
// it exactly. Patch k has its [0][0] pole at vertex k and its [3][3] pole
// at the center of the triangular patch. Its first row runs toward vertex
// (k+2)%3 and ends at that side's midpoint, its first column toward vertex
// (k+1)%3. Row 3 and column 3 run from the side midpoints to the center
// and are shared with the neighboring patches.
func (t CubicTriangle) Packed() [3]CubicRect {
	var out [3]CubicRect
	poles := mat.NewDense(10, 3, nil)
	var grid mat.Dense
	for k, order := range t.packedOrders() {
		for i, p := range order {
			poles.SetRow(i, []float64{p.X, p.Y, p.Z})
		}
		grid.Mul(packedCoeffs, poles)
		for i := range 16 {
			out[k].Poles[i/4][i%4] = Pt(grid.At(i, 0), grid.At(i, 1), grid.At(i, 2))
		}
	}
	return out
}
