package tripatch

// BuildCubic builds the cubic patch of a triangle. Each side is built with
// the edge construction of the triangle's surface class, or from its
// tangents if it lies on a feature edge; the interior pole is then
// recovered with [MidPole].
//
// The triangle is validated first; see [Triangle.Validate].
func BuildCubic(t Triangle) (CubicTriangle, error) {
	if err := t.Validate(); err != nil {
		return CubicTriangle{}, err
	}
	return buildCubic(t), nil
}

// BuildQuadratic builds the rational quadratic patch of a triangle, using
// the same side selection as [BuildCubic].
func BuildQuadratic(t Triangle) (QuadTriangle, error) {
	if err := t.Validate(); err != nil {
		return QuadTriangle{}, err
	}
	return buildQuadratic(t), nil
}

// BuildMixed builds a quadratic patch for triangles without inflected
// sides and a cubic patch otherwise.
//
// The cubic patch uses the generic constructions regardless of the
// surface class: inflected sides get the generic cubic edge, the others the
// degree-raised generic quadratic edge (see [ElevatedEdge]). Sides on a
// feature edge are built from their tangents in either case.
func BuildMixed(t Triangle) (TrianglePatch, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	if !t.AnyInflected() {
		return buildQuadratic(t), nil
	}
	p := cubicCorners(t)
	for i, side := range t.Sides {
		v0, v1 := t.SideEnds(i)
		if side.OnBoundary {
			p = p.withEdge(i, CubicEdgeFromTangents(v0.Point, v1.Point, side.Tangent0, side.Tangent1))
		} else {
			p = p.withEdge(i, ElevatedEdge(v0, v1))
		}
	}
	p.B111 = MidPole(Generic{}, t.Vertices, p)
	return p, nil
}

func cubicCorners(t Triangle) CubicTriangle {
	return CubicTriangle{
		B300: t.Vertices[0].Point,
		B030: t.Vertices[1].Point,
		B003: t.Vertices[2].Point,
	}
}

func buildCubic(t Triangle) CubicTriangle {
	s := t.surface()
	p := cubicCorners(t)
	for i, side := range t.Sides {
		v0, v1 := t.SideEnds(i)
		if side.OnBoundary {
			p = p.withEdge(i, CubicEdgeFromTangents(v0.Point, v1.Point, side.Tangent0, side.Tangent1))
		} else {
			p = p.withEdge(i, CubicEdge(s, v0, v1))
		}
	}
	p.B111 = MidPole(s, t.Vertices, p)
	return p
}

func buildQuadratic(t Triangle) QuadTriangle {
	s := t.surface()
	p := QuadTriangle{
		P200: t.Vertices[0].Point,
		P020: t.Vertices[1].Point,
		P002: t.Vertices[2].Point,
	}
	for i, side := range t.Sides {
		v0, v1 := t.SideEnds(i)
		if side.OnBoundary {
			p = p.withEdge(i, QuadEdgeFromTangents(v0.Point, v1.Point, side.Tangent0, side.Tangent1))
		} else {
			p = p.withEdge(i, QuadEdge(s, v0, v1))
		}
	}
	return p
}
