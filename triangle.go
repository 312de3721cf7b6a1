package tripatch

import (
	"fmt"
	"math"
)

// Vertex is a corner of a faceted triangle: a point on the surface and the
// unit surface normal there.
type Vertex struct {
	Point  Point
	Normal Vec3
}

// Side describes the edge of a triangle opposite one of its vertices.
//
// Side i runs from vertex (i+1)%3 to vertex (i+2)%3. When OnBoundary is
// set the side lies on a feature edge of the body, where faces meet at an
// angle, and the edge curve is built from the tangents instead of the
// vertex normals. Tangent0 is the tangent at the side's first vertex and
// points toward the second; Tangent1 is the tangent at the second vertex
// and points toward the first.
type Side struct {
	OnBoundary bool
	Tangent0   Vec3
	Tangent1   Vec3
}

// Triangle is a flat facet of a tessellated surface, together with
// everything needed to replace it with a curved patch.
//
// Triangles are values. Building a patch never modifies the triangle, and
// triangles in a batch share no state.
type Triangle struct {
	Vertices [3]Vertex
	Sides    [3]Side
	// Surface selects the edge construction. A nil Surface is treated as
	// [Generic].
	Surface Surface
}

// Tri returns the triangle with the given vertices on a generic surface
// and no boundary sides.
func Tri(v0, v1, v2 Vertex) Triangle {
	return Triangle{Vertices: [3]Vertex{v0, v1, v2}, Surface: Generic{}}
}

// SideEnds returns the first and second vertex of side i.
func (t Triangle) SideEnds(i int) (Vertex, Vertex) {
	return t.Vertices[(i+1)%3], t.Vertices[(i+2)%3]
}

func (t Triangle) surface() Surface {
	if t.Surface == nil {
		return Generic{}
	}
	return t.Surface
}

// MinEdge returns the length of the triangle's shortest edge.
func (t Triangle) MinEdge() float64 {
	m := math.Inf(1)
	for i := range 3 {
		v0, v1 := t.SideEnds(i)
		m = min(m, v0.Point.Distance(v1.Point))
	}
	return m
}

// Validate checks the preconditions of patch construction: finite
// coordinates, normals with a direction, boundary tangents with a
// direction, edges no shorter than [MinEdgeLength], and valid cone
// parameters. Errors wrap [ErrMalformedTriangle], or
// [ErrDegenerateSurface] for cone parameters.
func (t Triangle) Validate() error {
	for i, v := range t.Vertices {
		if v.Point.IsNaN() || v.Point.IsInf() {
			return fmt.Errorf("vertex %d: point %v: %w", i, v.Point, ErrMalformedTriangle)
		}
		if !hasDirection(v.Normal) {
			return fmt.Errorf("vertex %d: normal %v: %w", i, v.Normal, ErrMalformedTriangle)
		}
	}
	for i, s := range t.Sides {
		if !s.OnBoundary {
			continue
		}
		if !hasDirection(s.Tangent0) || !hasDirection(s.Tangent1) {
			return fmt.Errorf("side %d: tangents %v, %v: %w", i, s.Tangent0, s.Tangent1, ErrMalformedTriangle)
		}
	}
	if e := t.MinEdge(); e < MinEdgeLength {
		return fmt.Errorf("edge length %g below %g: %w", e, MinEdgeLength, ErrMalformedTriangle)
	}
	if c, ok := t.Surface.(Cone); ok {
		if err := c.Validate(); err != nil {
			return err
		}
	}
	return nil
}

func hasDirection(v Vec3) bool {
	h := v.Hypot()
	return h > zeroLength && !math.IsInf(h, 0) && !math.IsNaN(h)
}

// SetFaceBoundary updates side i from the normals n0 and n1 that the
// adjacent face has at the side's first and second vertex.
//
// If the normals of both faces differ at both vertices, the side lies on a
// feature edge: it is marked as boundary and its tangents are set to the
// direction of the crease, n×N, oriented along the side. Otherwise the
// faces meet smoothly and both vertex normals are replaced by the
// normalized average of the two faces' normals.
func (t *Triangle) SetFaceBoundary(i int, n0, n1 Vec3) error {
	if i < 0 || i > 2 {
		return fmt.Errorf("side %d: %w", i, ErrInvalidSide)
	}
	a, b := (i+1)%3, (i+2)%3
	p0, p1 := t.Vertices[a].Point, t.Vertices[b].Point
	m0, m1 := t.Vertices[a].Normal, t.Vertices[b].Normal

	if m0.Cross(n0).Hypot() > parallelNormals && m1.Cross(n1).Hypot() > parallelNormals {
		t0 := m0.UnitCross(n0)
		if t0.Dot(p1.Sub(p0)) <= 0 {
			t0 = t0.Negate()
		}
		t1 := m1.UnitCross(n1)
		if t1.Dot(p0.Sub(p1)) <= 0 {
			t1 = t1.Negate()
		}
		t.Sides[i] = Side{OnBoundary: true, Tangent0: t0, Tangent1: t1}
		return nil
	}

	t.Vertices[a].Normal = m0.Add(n0).Normalize()
	t.Vertices[b].Normal = m1.Add(n1).Normalize()
	return nil
}

// Neighbor identifies the triangle across a side, by its index in a batch
// and the index of the shared side in that triangle. A negative Triangle
// means the side has no neighbor.
type Neighbor struct {
	Triangle int
	Side     int
}

// NoNeighbor marks an open side.
var NoNeighbor = Neighbor{Triangle: -1, Side: -1}

// ApplyFaceBoundaries calls [Triangle.SetFaceBoundary] for every side whose
// neighbor belongs to a different face. faceIDs[i] is the face triangle i
// was tessellated from, and neighbors[i][s] the neighbor across side s of
// triangle i.
//
// Triangles are processed in slice order and sides in index order. Since a
// smooth join updates vertex normals that later triangles read through
// their own neighbors, the result depends on this order, which is fixed.
func ApplyFaceBoundaries(tris []Triangle, faceIDs []int, neighbors [][3]Neighbor) error {
	if len(faceIDs) != len(tris) || len(neighbors) != len(tris) {
		return fmt.Errorf("%d triangles, %d face IDs, %d neighbor sets: %w",
			len(tris), len(faceIDs), len(neighbors), ErrMalformedTriangle)
	}
	for i := range tris {
		for s, nb := range neighbors[i] {
			if nb.Triangle < 0 {
				continue
			}
			if nb.Triangle >= len(tris) {
				return fmt.Errorf("triangle %d side %d: neighbor %d out of range: %w", i, s, nb.Triangle, ErrMalformedTriangle)
			}
			if faceIDs[nb.Triangle] == faceIDs[i] {
				continue
			}
			if nb.Side < 0 || nb.Side > 2 {
				return fmt.Errorf("triangle %d side %d: neighbor side %d: %w", i, s, nb.Side, ErrInvalidSide)
			}
			// The shared edge runs the other way in the neighbor.
			other := tris[nb.Triangle].Vertices
			n0 := other[(nb.Side+2)%3].Normal
			n1 := other[(nb.Side+1)%3].Normal
			if err := tris[i].SetFaceBoundary(s, n0, n1); err != nil {
				return fmt.Errorf("triangle %d: %w", i, err)
			}
		}
	}
	return nil
}

// FilterSmall returns the triangles whose edges are all at least minEdge
// long, in their original order. Use [MinEdgeLength] for the threshold
// patch construction expects.
func FilterSmall(tris []Triangle, minEdge float64) []Triangle {
	out := make([]Triangle, 0, len(tris))
	for _, t := range tris {
		if t.MinEdge() >= minEdge {
			out = append(out, t)
		}
	}
	return out
}
