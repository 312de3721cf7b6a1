package tripatch

// QuadBez is a polynomial quadratic Bézier curve.
type QuadBez struct {
	P0 Point
	P1 Point
	P2 Point
}

// Raise returns the cubic Bézier with the same trace and parametrization
// as q.
func (q QuadBez) Raise() CubicBez {
	return CubicBez{
		q.P0,
		q.P0.Translate(q.P1.Sub(q.P0).Mul(2.0 / 3.0)),
		q.P2.Translate(q.P1.Sub(q.P2).Mul(2.0 / 3.0)),
		q.P2,
	}
}

func (q QuadBez) IsNaN() bool {
	return q.P0.IsNaN() || q.P1.IsNaN() || q.P2.IsNaN()
}

func (q QuadBez) Eval(t float64) Point {
	mt := 1.0 - t
	a := Vec3(q.P0).Mul(mt * mt)
	b := Vec3(q.P1).Mul(mt * 2.0)
	c := Vec3(q.P2).Mul(t)
	d := b.Add(c)
	return Point(a.Add(d.Mul(t)))
}

func (q QuadBez) Subdivide() (QuadBez, QuadBez) {
	pm := q.Eval(0.5)
	return QuadBez{q.P0, q.P0.Midpoint(q.P1), pm},
		QuadBez{pm, q.P1.Midpoint(q.P2), q.P2}
}

// RatQuadBez is a rational quadratic Bézier curve in standard form: the end
// points carry weight 1 and the middle pole carries weight W. With W < 1 the
// curve is an ellipse arc, with W = 1 a parabola; a circular arc spanning the
// angle θ has W = cos(θ/2).
type RatQuadBez struct {
	P0 Point
	P1 Point
	P2 Point
	W  float64
}

func (q RatQuadBez) Eval(t float64) Point {
	b := bernstein2(t)
	wm := b[1] * q.W
	v := Vec3(q.P0).Mul(b[0]).
		Add(Vec3(q.P1).Mul(wm)).
		Add(Vec3(q.P2).Mul(b[2]))
	return Point(v.Div(b[0] + wm + b[2]))
}

// Polynomial returns the curve with its weight dropped. For W = 1 the two
// curves coincide.
func (q RatQuadBez) Polynomial() QuadBez {
	return QuadBez{q.P0, q.P1, q.P2}
}

// Reverse returns the same curve traversed from P2 to P0.
func (q RatQuadBez) Reverse() RatQuadBez {
	return RatQuadBez{q.P2, q.P1, q.P0, q.W}
}

func (q RatQuadBez) IsNaN() bool {
	return q.P0.IsNaN() || q.P1.IsNaN() || q.P2.IsNaN()
}
