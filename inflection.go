package tripatch

// IsInflected reports whether the edge from v0 to v1 has an inflection:
// the tangents implied by the two normals turn to opposite sides of the
// chord, so the edge must bend one way and then the other. A quadratic,
// which cannot inflect, is then a poor fit.
func IsInflected(v0, v1 Vertex) bool {
	c := v1.Point.Sub(v0.Point)
	t01 := v0.Normal.Cross(c).UnitCross(v0.Normal)
	t10 := v1.Normal.Cross(c.Negate()).UnitCross(v1.Normal)
	return c.Cross(t01).Dot(t10.Cross(c)) > 0
}

// ElevatedEdge returns the edge from v0 to v1 as a cubic: the cubic edge
// of the generic construction if the edge is inflected, and otherwise the
// degree-raised generic quadratic edge. Elevation uses the positions only;
// the quadratic's weight is dropped.
func ElevatedEdge(v0, v1 Vertex) CubicBez {
	if IsInflected(v0, v1) {
		return genericCubic(v0.Point, v1.Point, v0.Normal, v1.Normal)
	}
	return genericQuad(v0.Point, v1.Point, v0.Normal, v1.Normal).Polynomial().Raise()
}

// AnyInflected reports whether any side of t is inflected, judged by the
// vertex normals.
func (t Triangle) AnyInflected() bool {
	for i := range t.Sides {
		if IsInflected(t.SideEnds(i)) {
			return true
		}
	}
	return false
}
