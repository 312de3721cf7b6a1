package tripatch

// Line represents an infinite straight line through an origin point with a
// direction. The direction need not be normalized.
type Line struct {
	Origin Point
	Dir    Vec3
}

// Ray returns the line through origin in direction dir.
func Ray(origin Point, dir Vec3) Line {
	return Line{Origin: origin, Dir: dir}
}

// Eval returns the point Origin + t·Dir.
func (l Line) Eval(t float64) Point {
	return l.Origin.Translate(l.Dir.Mul(t))
}

func (l Line) IsNaN() bool {
	return l.Origin.IsNaN() || l.Dir.IsNaN()
}

// ClosestPoints computes the points on l and o that are closest to each
// other, returning them together with their line parameters.
//
// For skew lines the points are unique. For parallel lines every point of l
// has a closest partner; the origin of l is used. Lines with a zero direction
// degenerate to their origin.
func (l Line) ClosestPoints(o Line) (p, q Point, s, t float64) {
	w0 := l.Origin.Sub(o.Origin)
	a := l.Dir.Hypot2()
	b := l.Dir.Dot(o.Dir)
	c := o.Dir.Hypot2()
	d := l.Dir.Dot(w0)
	e := o.Dir.Dot(w0)

	den := a*c - b*b
	switch {
	case a <= zeroLength && c <= zeroLength:
		s, t = 0, 0
	case a <= zeroLength:
		s, t = 0, e/c
	case c <= zeroLength:
		s, t = -d/a, 0
	case den <= zeroLength*a*c:
		s, t = 0, e/c
	default:
		s = (b*e - c*d) / den
		t = (a*e - b*d) / den
	}
	return l.Eval(s), o.Eval(t), s, t
}

// ClosestMidpoint returns the midpoint of the shortest segment between l and
// o, the point where two nearly intersecting lines "meet".
func (l Line) ClosestMidpoint(o Line) Point {
	p, q, _, _ := l.ClosestPoints(o)
	return p.Midpoint(q)
}
