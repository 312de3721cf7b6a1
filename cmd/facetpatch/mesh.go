package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"

	"gopkg.in/yaml.v3"

	"honnef.co/go/tripatch"
)

// mesh is the YAML input: a list of triangles cut from the faces of a
// body.
type mesh struct {
	Triangles []meshTriangle `yaml:"triangles"`
}

type vec3 [3]float64

func (v vec3) point() tripatch.Point { return tripatch.Pt(v[0], v[1], v[2]) }
func (v vec3) vec() tripatch.Vec3    { return tripatch.Vec(v[0], v[1], v[2]) }

type meshTriangle struct {
	Points  [3]vec3 `yaml:"points"`
	Normals [3]vec3 `yaml:"normals"`
	// Surface is generic, cylinder or cone. Empty means generic.
	Surface string    `yaml:"surface"`
	Cone    *coneSpec `yaml:"cone"`
	// Face identifies the face of the body the triangle belongs to. Sides
	// shared with triangles of other faces get boundary tangents or
	// blended normals.
	Face int `yaml:"face"`
	// Boundary lists sides with explicit feature-edge tangents. They take
	// precedence over tangents derived from neighboring faces.
	Boundary []boundarySpec `yaml:"boundary"`
}

var errNoCone = errors.New("no cone data")

// coneSpec holds cone parameters the way a CAD kernel reports them. The
// half angle is in degrees.
type coneSpec struct {
	Base      vec3    `yaml:"base"`
	Direction vec3    `yaml:"direction"`
	Radius    float64 `yaml:"radius"`
	HalfAngle float64 `yaml:"half_angle"`
}

func (c *coneSpec) ConeData() (tripatch.Point, tripatch.Vec3, float64, float64, error) {
	if c == nil {
		return tripatch.Point{}, tripatch.Vec3{}, 0, 0, errNoCone
	}
	return c.Base.point(), c.Direction.vec(), c.Radius, c.HalfAngle * math.Pi / 180, nil
}

type boundarySpec struct {
	Side     int     `yaml:"side"`
	Tangents [2]vec3 `yaml:"tangents"`
}

func decodeMesh(r io.Reader) (*mesh, error) {
	var m mesh
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&m); err != nil {
		return nil, fmt.Errorf("decoding mesh: %w", err)
	}
	return &m, nil
}

// triangles converts the mesh into triangles ready for building, in input
// order. Cone parameters that cannot be resolved leave an invalid cone in
// place, so that building either falls back to the generic construction
// or reports the triangle as failed, as the options dictate.
func (m *mesh) triangles(log *slog.Logger) ([]tripatch.Triangle, error) {
	tris := make([]tripatch.Triangle, len(m.Triangles))
	faces := make([]int, len(m.Triangles))
	for i, mt := range m.Triangles {
		var verts [3]tripatch.Vertex
		for j := range verts {
			verts[j] = tripatch.Vertex{Point: mt.Points[j].point(), Normal: mt.Normals[j].vec()}
		}
		tri := tripatch.Tri(verts[0], verts[1], verts[2])
		switch mt.Surface {
		case "", "generic":
		case "cylinder":
			tri.Surface = tripatch.Cylinder{}
		case "cone":
			cone, err := tripatch.ResolveCone(mt.Cone)
			if err != nil {
				log.Warn("unresolved cone", slog.Int("triangle", i), slog.String("error", err.Error()))
			}
			tri.Surface = cone
		default:
			return nil, fmt.Errorf("triangle %d: unknown surface %q", i, mt.Surface)
		}
		tris[i] = tri
		faces[i] = mt.Face
	}

	if err := tripatch.ApplyFaceBoundaries(tris, faces, neighbors(tris)); err != nil {
		return nil, err
	}

	for i, mt := range m.Triangles {
		for _, b := range mt.Boundary {
			if b.Side < 0 || b.Side > 2 {
				return nil, fmt.Errorf("triangle %d: boundary side %d: %w", i, b.Side, tripatch.ErrInvalidSide)
			}
			tris[i].Sides[b.Side] = tripatch.Side{
				OnBoundary: true,
				Tangent0:   b.Tangents[0].vec().Normalize(),
				Tangent1:   b.Tangents[1].vec().Normalize(),
			}
		}
	}
	return tris, nil
}

// neighbors matches sides that share their end points in opposite
// directions.
func neighbors(tris []tripatch.Triangle) [][3]tripatch.Neighbor {
	type edge struct{ from, to tripatch.Point }
	sides := make(map[edge]tripatch.Neighbor, 3*len(tris))
	for i, t := range tris {
		for s := range 3 {
			v0, v1 := t.SideEnds(s)
			sides[edge{v0.Point, v1.Point}] = tripatch.Neighbor{Triangle: i, Side: s}
		}
	}
	out := make([][3]tripatch.Neighbor, len(tris))
	for i, t := range tris {
		for s := range 3 {
			v0, v1 := t.SideEnds(s)
			nb, ok := sides[edge{v1.Point, v0.Point}]
			if !ok {
				nb = tripatch.NoNeighbor
			}
			out[i][s] = nb
		}
	}
	return out
}
