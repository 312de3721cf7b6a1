package tripatch

// CubicBez is a cubic Bézier curve. The edges of a cubic triangle patch are
// cubic Béziers.
type CubicBez struct {
	P0 Point
	P1 Point
	P2 Point
	P3 Point
}

func (q CubicBez) IsInf() bool {
	return q.P0.IsInf() || q.P1.IsInf() || q.P2.IsInf() || q.P3.IsInf()
}

func (q CubicBez) IsNaN() bool {
	return q.P0.IsNaN() || q.P1.IsNaN() || q.P2.IsNaN() || q.P3.IsNaN()
}

func (cb CubicBez) Eval(t float64) Point {
	mt := 1.0 - t
	a := Vec3(cb.P0).Mul(mt * mt * mt)
	b := Vec3(cb.P1).Mul(mt * mt * 3.0)
	c := Vec3(cb.P2).Mul(mt * 3.0)
	d := Vec3(cb.P3)
	v := a.Add(b.Add(c.Add(d.Mul(t)).Mul(t)).Mul(t))
	return Point(v)
}

// Subdivide subdivides the cubic into halves, using de Casteljau.
func (c CubicBez) Subdivide() (CubicBez, CubicBez) {
	pm := c.Eval(0.5)
	return CubicBez{
			c.P0,
			c.P0.Midpoint(c.P1),
			Point(Vec3(c.P0).Add(Vec3(c.P1).Mul(2.0)).Add(Vec3(c.P2)).Mul(0.25)),
			pm,
		},
		CubicBez{
			pm,
			Point(Vec3(c.P1).Add(Vec3(c.P2).Mul(2.0)).Add(Vec3(c.P3)).Mul(0.25)),
			c.P2.Midpoint(c.P3),
			c.P3,
		}
}

// Reverse returns the same curve traversed from P3 to P0.
func (c CubicBez) Reverse() CubicBez {
	return CubicBez{c.P3, c.P2, c.P1, c.P0}
}

// thirds returns the straight cubic whose inner poles split the chord from
// p0 to p1 in thirds.
func thirds(p0, p1 Point) CubicBez {
	return CubicBez{p0, p0.Lerp(p1, 1.0/3.0), p0.Lerp(p1, 2.0/3.0), p1}
}
