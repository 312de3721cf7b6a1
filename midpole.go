package tripatch

import "fmt"

// AuxPoint returns the point two thirds of the way along c, the point at
// which the median from a triangle's corner passes the centroid.
func AuxPoint(c CubicBez) Point {
	v := Vec3(c.P0).
		Add(Vec3(c.P3).Mul(8)).
		Add(Vec3(c.P1).Mul(6)).
		Add(Vec3(c.P2).Mul(12))
	return Point(v.Div(27))
}

// MidPoleFromAux returns the interior pole B111 for which the patch with
// the boundary poles of t passes through aux at its center, that is
// Eval(1/3, 1/3, 1/3) = aux. The interior pole of t is ignored.
//
// At the center every corner pole contributes 1/27, every edge pole 3/27
// and the interior pole 6/27, which makes the inversion exact.
func MidPoleFromAux(t CubicTriangle, aux Point) Point {
	return Point(Vec3(aux).Mul(27).Sub(t.boundarySum()).Div(6))
}

// MidPole computes the interior pole of a cubic patch from its boundary
// poles, using the auxiliary-curve technique: for each corner a curve of
// the surface class runs to the midpoint of the opposite edge, the three
// points two thirds along these curves are averaged, and the interior pole
// is chosen so the patch passes through that average at its center.
//
// verts are the triangle's vertices and t carries the nine boundary poles.
func MidPole(s Surface, verts [3]Vertex, t CubicTriangle) Point {
	switch s := s.(type) {
	case nil, Generic:
		return midPole(verts, t, func(v0, v1 Vertex) CubicBez {
			return genericCubic(v0.Point, v1.Point, v0.Normal, v1.Normal)
		}, mirroredNormal)
	case Cylinder:
		return midPole(verts, t, func(v0, v1 Vertex) CubicBez {
			return cylinderCubic(v0.Point, v1.Point, v0.Normal, v1.Normal)
		}, averageNormal)
	case Cone:
		return midPole(verts, t, func(v0, v1 Vertex) CubicBez {
			return coneCubic(s, v0.Point, v1.Point, v0.Normal, v1.Normal)
		}, func(_ [3]Vertex, _ int, mid Point) Vec3 {
			return s.normalAt(mid)
		})
	default:
		panic(fmt.Sprintf("unhandled surface %T", s))
	}
}

// midNormal estimates the surface normal at mid, the midpoint of the edge
// opposite corner i.
type midNormal func(verts [3]Vertex, i int, mid Point) Vec3

func midPole(verts [3]Vertex, t CubicTriangle, edge func(v0, v1 Vertex) CubicBez, normal midNormal) Point {
	var sum Vec3
	for i, v := range verts {
		mid := t.Edge(i).Eval(0.5)
		aux := AuxPoint(edge(v, Vertex{mid, normal(verts, i, mid)}))
		sum = sum.Add(Vec3(aux))
	}
	return MidPoleFromAux(t, Point(sum.Div(3)))
}

// mirroredNormal reflects the corner's normal across the plane bisecting
// the chord from the corner to mid. Both normals then make the same angle
// with the chord, as they do at the ends of a circular arc.
func mirroredNormal(verts [3]Vertex, i int, mid Point) Vec3 {
	n := verts[i].Normal
	w := unitOr(mid.Sub(verts[i].Point), Vec3{})
	return n.Sub(w.Mul(2 * n.Dot(w)))
}

// averageNormal is the plain average of the normals at the two ends of the
// edge opposite corner i. It is exact only when the edge is symmetric
// about the cylinder axis.
func averageNormal(verts [3]Vertex, i int, _ Point) Vec3 {
	return verts[(i+1)%3].Normal.Add(verts[(i+2)%3].Normal).Div(2)
}
