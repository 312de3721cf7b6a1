package tripatch

import (
	"fmt"
	"math"
)

// CubicEdge returns the cubic Bézier edge from v0 to v1 on a surface of
// class s. The inner poles are placed so that the curve leaves each end
// perpendicular to that end's normal and approximates a circular (or, on a
// cone, conic) arc.
//
// Degenerate configurations, such as parallel normals on a cylinder or a
// chord along a cone generator, produce the straight edge through the
// chord's thirds.
//
// Building the edge from v1 to v0 yields the reversed curve.
func CubicEdge(s Surface, v0, v1 Vertex) CubicBez {
	switch s := s.(type) {
	case nil, Generic:
		return genericCubic(v0.Point, v1.Point, v0.Normal, v1.Normal)
	case Cylinder:
		return cylinderCubic(v0.Point, v1.Point, v0.Normal, v1.Normal)
	case Cone:
		return coneCubic(s, v0.Point, v1.Point, v0.Normal, v1.Normal)
	default:
		panic(fmt.Sprintf("unhandled surface %T", s))
	}
}

// QuadEdge returns the rational quadratic Bézier edge from v0 to v1 on a
// surface of class s. Its middle pole is where the tangent lines at both
// ends meet and its weight shapes the conic through the three poles.
//
// Degenerate configurations produce the straight edge, with the pole at the
// chord's midpoint and weight 1.
func QuadEdge(s Surface, v0, v1 Vertex) RatQuadBez {
	switch s := s.(type) {
	case nil, Generic:
		return genericQuad(v0.Point, v1.Point, v0.Normal, v1.Normal)
	case Cylinder:
		return cylinderQuad(v0.Point, v1.Point, v0.Normal, v1.Normal)
	case Cone:
		return coneQuad(s, v0.Point, v1.Point, v0.Normal, v1.Normal)
	default:
		panic(fmt.Sprintf("unhandled surface %T", s))
	}
}

// CubicEdgeFromTangents returns the cubic edge from p0 to p1 with the
// prescribed end tangents. t0 points from p0 into the edge and t1 from p1
// into the edge; both must be unit vectors. It is used for sides on a
// feature edge, independent of the surface class.
func CubicEdgeFromTangents(p0, p1 Point, t0, t1 Vec3) CubicBez {
	c := p1.Sub(p0)
	k := c.Hypot()
	w := c.Div(k)
	cos0 := w.Dot(t0)
	cos1 := w.Negate().Dot(t1)
	if 1+cos0 <= zeroLength || 1+cos1 <= zeroLength {
		logFallback("tangent cubic", "tangents point away from the edge", p0, p1)
		return thirds(p0, p1)
	}
	d0, d1 := legLengths(k, cos0, cos1)
	return CubicBez{
		p0,
		p0.Translate(t0.Mul(d0)),
		p1.Translate(t1.Mul(d1)),
		p1,
	}
}

// QuadEdgeFromTangents returns the rational quadratic edge from p0 to p1
// with the prescribed unit end tangents, oriented as for
// [CubicEdgeFromTangents]. The weight sqrt((1 − t0·t1)/2) makes the edge a
// circular arc when the tangents are symmetric about the chord.
func QuadEdgeFromTangents(p0, p1 Point, t0, t1 Vec3) RatQuadBez {
	if t0.Angle(t1) > maxTangentAngle {
		logFallback("tangent quadratic", "antiparallel tangents", p0, p1)
		return straightQuad(p0, p1, 1)
	}
	pa := Ray(p0, t0).ClosestMidpoint(Ray(p1, t1))
	return RatQuadBez{p0, pa, p1, math.Sqrt((1 - t0.Dot(t1)) / 2)}
}

// legLengths returns the distances of the inner cubic poles from the start
// and the end point for a circle-like arc over a chord of length k, where
// cosᵢ is the cosine of the angle between the chord and the tangent at
// end i. For a circular arc spanning 2α the leg is 2k/(3(1+cos α)).
func legLengths(k, cos0, cos1 float64) (d0, d1 float64) {
	d0 = 2 * k / (3 * (1 + cos1))
	d1 = 2 * k / (3 * (1 + cos0))
	return d0, d1
}

func straightQuad(p0, p1 Point, w float64) RatQuadBez {
	return RatQuadBez{p0, p0.Midpoint(p1), p1, w}
}

// genericCubic projects the chord into both tangent planes and uses the
// projections as end tangents.
func genericCubic(p0, p1 Point, n0, n1 Vec3) CubicBez {
	c := p1.Sub(p0)
	k := c.Hypot()
	w := c.Div(k)

	u0 := unitOr(c.Sub(n0.Mul(c.Dot(n0))), w)
	u1 := unitOr(c.Sub(n1.Mul(c.Dot(n1))), w)
	d0, d1 := legLengths(k, w.Dot(u0), w.Dot(u1))
	return CubicBez{
		p0,
		p0.Translate(u0.Mul(d0)),
		p1.Translate(u1.Mul(-d1)),
		p1,
	}
}

// tangentToward returns the unit tangent at the end of an edge with normal
// n, in the plane spanned by n and chord and pointing along chord.
func tangentToward(n, chord Vec3) Vec3 {
	return unitOr(n.Cross(chord).Cross(n), chord.Normalize())
}

func genericQuad(p0, p1 Point, n0, n1 Vec3) RatQuadBez {
	c := p1.Sub(p0)
	h := tangentToward(n0, c)
	k := tangentToward(n1, c.Negate())
	if h.Angle(k) > maxTangentAngle {
		logFallback("generic quadratic", "antiparallel tangents", p0, p1)
		return straightQuad(p0, p1, 1)
	}
	pa := Ray(p0, h).ClosestMidpoint(Ray(p1, k))
	return RatQuadBez{p0, pa, p1, math.Sqrt((1 - h.Dot(k)) / 2)}
}

// cylinderCubic builds the edge as an elliptical arc. The cylinder axis is
// perpendicular to both normals; moving p0 along it onto the circle through
// p1 gives a circular arc whose poles are projected back onto the plane
// that contains the ellipse.
func cylinderCubic(p0, p1 Point, n0, n1 Vec3) CubicBez {
	if n1.Cross(n0).Hypot() <= parallelNormals {
		logFallback("cylinder cubic", "parallel normals", p0, p1)
		return thirds(p0, p1)
	}
	e := n1.UnitCross(n0)
	p0p := p0.Translate(e.Mul(p1.Sub(p0).Dot(e)))
	c := p1.Sub(p0p)
	k := c.Hypot()
	cos0 := c.Normalize().Cross(n0.Normalize()).Hypot()
	cos1 := c.Negate().Normalize().Cross(n1.Normalize()).Hypot()
	d0, d1 := legLengths(k, cos0, cos1)

	nEll := n0.Add(n1).Div(2).UnitCross(p1.Sub(p0))
	t0 := nEll.UnitCross(n0)
	if t0.Dot(p1.Sub(p0)) < 0 {
		t0 = t0.Negate()
	}
	t1 := nEll.UnitCross(n1)
	if t1.Dot(p0.Sub(p1)) < 0 {
		t1 = t1.Negate()
	}
	s0 := t0.Cross(e).Hypot()
	s1 := t1.Cross(e).Hypot()
	if s0 <= zeroLength || s1 <= zeroLength {
		logFallback("cylinder cubic", "tangent along the axis", p0, p1)
		return thirds(p0, p1)
	}
	return CubicBez{
		p0,
		p0.Translate(t0.Mul(d0 / s0)),
		p1.Translate(t1.Mul(d1 / s1)),
		p1,
	}
}

// cylinderQuad weights the edge with the cosine of half the angle between
// the normals, the weight of the circular arc the edge projects to.
func cylinderQuad(p0, p1 Point, n0, n1 Vec3) RatQuadBez {
	angle := n0.Angle(n1)
	if angle < minNormalAngle {
		logFallback("cylinder quadratic", "parallel normals", p0, p1)
		return straightQuad(p0, p1, 1)
	}
	w := math.Cos(angle / 2)
	b := n0.Add(n1).Cross(p1.Sub(p0))
	h := b.UnitCross(n0)
	k := b.Negate().UnitCross(n1)
	if h.Angle(k) > maxTangentAngle {
		logFallback("cylinder quadratic", "antiparallel tangents", p0, p1)
		return straightQuad(p0, p1, w)
	}
	return RatQuadBez{p0, Ray(p0, h).ClosestMidpoint(Ray(p1, k)), p1, w}
}

// alongGenerator reports whether the chord from p0 to p1 lies in the
// tangent plane at either end, as it does along a generator line.
func alongGenerator(p0, p1 Point, n0, n1 Vec3) bool {
	u := p0.Sub(p1).Normalize()
	return math.Abs(u.Dot(n0)) < coneChordGuard || math.Abs(u.Dot(n1)) < coneChordGuard
}

// coneTangents returns the tangents of the base-parallel circles through
// p0 and p1, each oriented toward the other end.
func coneTangents(cone Cone, p0, p1 Point, n0, n1 Vec3) (t0, t1 Vec3) {
	c := p1.Sub(p0)
	t0 = unitOr(n0.Cross(cone.Axis), c.Normalize())
	if t0.Dot(c) < 0 {
		t0 = t0.Negate()
	}
	t1 = unitOr(n1.Cross(cone.Axis), c.Negate().Normalize())
	if t1.Dot(c) > 0 {
		t1 = t1.Negate()
	}
	return t0, t1
}

// coneShoulder returns the apex point of the control polygon, where the two
// end tangents meet, and the shoulder parameter ρ that puts the curve's
// shoulder point on the cone.
func coneShoulder(cone Cone, p0, p1 Point, t0, t1 Vec3) (Point, float64) {
	pa := Ray(p0, t0).ClosestMidpoint(Ray(p1, t1))
	pm := p0.Midpoint(p1)
	rho := SolveConeQuadratic(pa.Sub(pm), pm.Sub(cone.Apex), cone.Axis.Normalize(), math.Cos(cone.HalfAngle))
	return pa, rho
}

func coneCubic(cone Cone, p0, p1 Point, n0, n1 Vec3) CubicBez {
	if alongGenerator(p0, p1, n0, n1) {
		logFallback("cone cubic", "chord along a generator", p0, p1)
		return thirds(p0, p1)
	}
	t0, t1 := coneTangents(cone, p0, p1, n0, n1)
	pa, rho := coneShoulder(cone, p0, p1, t0, t1)
	l0 := pa.Sub(p0)
	l1 := pa.Sub(p1)
	return CubicBez{
		p0,
		p0.Translate(unitOr(l0, Vec3{}).Mul(4 * rho * l0.Hypot() / 3)),
		p1.Translate(unitOr(l1, Vec3{}).Mul(4 * rho * l1.Hypot() / 3)),
		p1,
	}
}

func coneQuad(cone Cone, p0, p1 Point, n0, n1 Vec3) RatQuadBez {
	if alongGenerator(p0, p1, n0, n1) {
		logFallback("cone quadratic", "chord along a generator", p0, p1)
		return straightQuad(p0, p1, 1)
	}
	t0, t1 := coneTangents(cone, p0, p1, n0, n1)
	if t0.Angle(t1) > maxTangentAngle {
		logFallback("cone quadratic", "antiparallel tangents", p0, p1)
		return straightQuad(p0, p1, 1)
	}
	pa, rho := coneShoulder(cone, p0, p1, t0, t1)
	// A shoulder at the polygon apex has no finite weight.
	w := rho / (1 - rho)
	if math.IsInf(w, 0) || math.IsNaN(w) {
		logFallback("cone quadratic", "shoulder at the polygon apex", p0, p1)
		return straightQuad(p0, p1, 1)
	}
	return RatQuadBez{p0, pa, p1, w}
}
