package tripatch

import "math"

var _ TrianglePatch = CubicTriangle{}
var _ TrianglePatch = QuadTriangle{}

// TrianglePatch is a curved triangular Bézier patch. The implementations
// are [CubicTriangle] and [QuadTriangle].
type TrianglePatch interface {
	// Eval evaluates the patch at barycentric coordinates (l0, l1, l2),
	// which are expected to sum to one. Eval(1, 0, 0) is the first corner.
	Eval(l0, l1, l2 float64) Point
	// Corners returns the three corner poles, which interpolate the
	// triangle's vertices.
	Corners() [3]Point
	// IsNaN and IsInf report whether a pole or weight is NaN or infinite.
	IsNaN() bool
	IsInf() bool

	isTrianglePatch()
}

// CubicTriangle is a cubic triangular Bézier patch. The field Bijk is the
// pole with barycentric multi-index (i, j, k): B300, B030 and B003 are the
// corners at the triangle's vertices 0, 1 and 2, and B111 is the interior
// pole.
//
// The poles of side i, which runs from vertex (i+1)%3 to vertex (i+2)%3,
// are B030 B021 B012 B003 for side 0, B003 B102 B201 B300 for side 1 and
// B300 B210 B120 B030 for side 2.
type CubicTriangle struct {
	B300, B210, B120, B030 Point
	B021, B012, B003       Point
	B102, B201             Point
	B111                   Point
}

// NewCubicTriangle returns the patch with poles in the order of
// [CubicTriangle.Poles].
func NewCubicTriangle(p [10]Point) CubicTriangle {
	return CubicTriangle{
		B300: p[0], B210: p[1], B120: p[2], B030: p[3],
		B021: p[4], B012: p[5], B003: p[6],
		B102: p[7], B201: p[8],
		B111: p[9],
	}
}

// Poles returns the poles going around the boundary from B300 over B030
// and B003 back toward B300, followed by the interior pole:
// B300 B210 B120 B030 B021 B012 B003 B102 B201 B111.
func (t CubicTriangle) Poles() [10]Point {
	return [10]Point{
		t.B300, t.B210, t.B120, t.B030,
		t.B021, t.B012, t.B003,
		t.B102, t.B201,
		t.B111,
	}
}

func (t CubicTriangle) Corners() [3]Point {
	return [3]Point{t.B300, t.B030, t.B003}
}

// Edge returns the boundary curve of side i, oriented from vertex (i+1)%3
// to vertex (i+2)%3.
func (t CubicTriangle) Edge(i int) CubicBez {
	switch i {
	case 0:
		return CubicBez{t.B030, t.B021, t.B012, t.B003}
	case 1:
		return CubicBez{t.B003, t.B102, t.B201, t.B300}
	case 2:
		return CubicBez{t.B300, t.B210, t.B120, t.B030}
	default:
		panic("side index out of range")
	}
}

// withEdge returns t with the inner poles of side i taken from c.
func (t CubicTriangle) withEdge(i int, c CubicBez) CubicTriangle {
	switch i {
	case 0:
		t.B021, t.B012 = c.P1, c.P2
	case 1:
		t.B102, t.B201 = c.P1, c.P2
	case 2:
		t.B210, t.B120 = c.P1, c.P2
	default:
		panic("side index out of range")
	}
	return t
}

// boundarySum returns the sum of the corners plus three times the sum of
// the six edge poles, the boundary part of 27·Eval(1/3, 1/3, 1/3).
func (t CubicTriangle) boundarySum() Vec3 {
	corners := Vec3(t.B300).Add(Vec3(t.B030)).Add(Vec3(t.B003))
	edges := Vec3(t.B210).Add(Vec3(t.B120)).
		Add(Vec3(t.B021)).Add(Vec3(t.B012)).
		Add(Vec3(t.B102)).Add(Vec3(t.B201))
	return corners.Add(edges.Mul(3))
}

// Eval evaluates the patch in the cubic Bernstein basis over the triangle.
func (t CubicTriangle) Eval(l0, l1, l2 float64) Point {
	v := Vec3(t.B300).Mul(l0 * l0 * l0).
		Add(Vec3(t.B030).Mul(l1 * l1 * l1)).
		Add(Vec3(t.B003).Mul(l2 * l2 * l2)).
		Add(Vec3(t.B210).Mul(3 * l0 * l0 * l1)).
		Add(Vec3(t.B120).Mul(3 * l0 * l1 * l1)).
		Add(Vec3(t.B021).Mul(3 * l1 * l1 * l2)).
		Add(Vec3(t.B012).Mul(3 * l1 * l2 * l2)).
		Add(Vec3(t.B102).Mul(3 * l0 * l2 * l2)).
		Add(Vec3(t.B201).Mul(3 * l0 * l0 * l2)).
		Add(Vec3(t.B111).Mul(6 * l0 * l1 * l2))
	return Point(v)
}

func (t CubicTriangle) IsNaN() bool {
	for _, p := range t.Poles() {
		if p.IsNaN() {
			return true
		}
	}
	return false
}

func (t CubicTriangle) IsInf() bool {
	for _, p := range t.Poles() {
		if p.IsInf() {
			return true
		}
	}
	return false
}

func (CubicTriangle) isTrianglePatch() {}

// QuadTriangle is a rational quadratic triangular Bézier patch. P200, P020
// and P002 are the corners at the triangle's vertices 0, 1 and 2 and carry
// weight 1. The edge pole of side 2 (vertex 0 to 1) is P110 with weight
// W110, of side 0 (vertex 1 to 2) P011 with weight W011 and of side 1
// (vertex 2 to 0) P101 with weight W101.
type QuadTriangle struct {
	P200, P020, P002 Point
	P110, P011, P101 Point
	W110, W011, W101 float64
}

func (t QuadTriangle) Corners() [3]Point {
	return [3]Point{t.P200, t.P020, t.P002}
}

// Edge returns the boundary curve of side i, oriented from vertex (i+1)%3
// to vertex (i+2)%3.
func (t QuadTriangle) Edge(i int) RatQuadBez {
	switch i {
	case 0:
		return RatQuadBez{t.P020, t.P011, t.P002, t.W011}
	case 1:
		return RatQuadBez{t.P002, t.P101, t.P200, t.W101}
	case 2:
		return RatQuadBez{t.P200, t.P110, t.P020, t.W110}
	default:
		panic("side index out of range")
	}
}

func (t QuadTriangle) withEdge(i int, q RatQuadBez) QuadTriangle {
	switch i {
	case 0:
		t.P011, t.W011 = q.P1, q.W
	case 1:
		t.P101, t.W101 = q.P1, q.W
	case 2:
		t.P110, t.W110 = q.P1, q.W
	default:
		panic("side index out of range")
	}
	return t
}

// Eval evaluates the rational patch at barycentric coordinates.
func (t QuadTriangle) Eval(l0, l1, l2 float64) Point {
	b200, b020, b002 := l0*l0, l1*l1, l2*l2
	b110 := 2 * l0 * l1 * t.W110
	b011 := 2 * l1 * l2 * t.W011
	b101 := 2 * l0 * l2 * t.W101
	v := Vec3(t.P200).Mul(b200).
		Add(Vec3(t.P020).Mul(b020)).
		Add(Vec3(t.P002).Mul(b002)).
		Add(Vec3(t.P110).Mul(b110)).
		Add(Vec3(t.P011).Mul(b011)).
		Add(Vec3(t.P101).Mul(b101))
	return Point(v.Div(b200 + b020 + b002 + b110 + b011 + b101))
}

func (t QuadTriangle) IsNaN() bool {
	return t.P200.IsNaN() || t.P020.IsNaN() || t.P002.IsNaN() ||
		t.P110.IsNaN() || t.P011.IsNaN() || t.P101.IsNaN() ||
		math.IsNaN(t.W110) || math.IsNaN(t.W011) || math.IsNaN(t.W101)
}

func (t QuadTriangle) IsInf() bool {
	return t.P200.IsInf() || t.P020.IsInf() || t.P002.IsInf() ||
		t.P110.IsInf() || t.P011.IsInf() || t.P101.IsInf() ||
		math.IsInf(t.W110, 0) || math.IsInf(t.W011, 0) || math.IsInf(t.W101, 0)
}

func (QuadTriangle) isTrianglePatch() {}
