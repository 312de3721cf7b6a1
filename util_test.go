package tripatch

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func diff(t *testing.T, want, got any, opts ...cmp.Option) {
	t.Helper()
	if d := cmp.Diff(want, got, opts...); d != "" {
		t.Error(d)
	}
}

func assertNear(t *testing.T, p0 Point, p1 Point, epsilon float64) {
	t.Helper()
	if d := p1.Sub(p0).Hypot(); d > epsilon {
		t.Fatalf("got %s, expected %s", p0, p1)
	}
}

func assertVecNear(t *testing.T, v0 Vec3, v1 Vec3, epsilon float64) {
	t.Helper()
	if d := v1.Sub(v0).Hypot(); d > epsilon {
		t.Fatalf("got %s, expected %s", v0, v1)
	}
}

// onSphere returns the vertex at polar angle theta and azimuth phi on the
// sphere with the given center and radius.
func onSphere(center Point, r, theta, phi float64) Vertex {
	st, ct := math.Sincos(theta)
	sp, cp := math.Sincos(phi)
	n := Vec(st*cp, st*sp, ct)
	return Vertex{Point: center.Translate(n.Mul(r)), Normal: n}
}

// onCylinder returns the vertex at angle phi and height z on the cylinder
// of radius r around the z axis.
func onCylinder(r, phi, z float64) Vertex {
	s, c := math.Sincos(phi)
	return Vertex{Point: Pt(r*c, r*s, z), Normal: Vec(c, s, 0)}
}

// testCone has its apex at (0, 0, 2), opens downward along the z axis with
// a half angle of 30° and has a base circle of radius 2/√3 at z = 0.
func testCone(t *testing.T) Cone {
	t.Helper()
	half := math.Pi / 6
	c, err := NewCone(Pt(0, 0, 0), Vec(0, 0, 1), 2*math.Tan(half), half)
	if err != nil {
		t.Fatal(err)
	}
	return c
}

// onCone returns the vertex at angle phi and height z on testCone.
func onCone(phi, z float64) Vertex {
	half := math.Pi / 6
	r := (2 - z) * math.Tan(half)
	s, c := math.Sincos(phi)
	// The outward normal tilts upward by the half angle.
	sh, ch := math.Sincos(half)
	return Vertex{Point: Pt(r*c, r*s, z), Normal: Vec(ch*c, ch*s, sh)}
}

func sphereTriangle() Triangle {
	c := Pt(1, -2, 0.5)
	return Tri(
		onSphere(c, 3, 0.4, 0.1),
		onSphere(c, 3, 0.7, 0.5),
		onSphere(c, 3, 0.5, 1.1),
	)
}

func cylinderTriangle() Triangle {
	t := Tri(
		onCylinder(2, 0.1, 0),
		onCylinder(2, 0.6, 0.3),
		onCylinder(2, 0.3, 1.2),
	)
	t.Surface = Cylinder{}
	return t
}

func coneTriangle(tt *testing.T) Triangle {
	t := Tri(
		onCone(0.1, 0.2),
		onCone(0.7, 0.4),
		onCone(0.3, 1.0),
	)
	t.Surface = testCone(tt)
	return t
}

// noShoulderTriangle lies on testCone, but its normals disagree with the
// cone so much that every end-tangent intersection falls inside the cone
// and no side has a shoulder point on it.
func noShoulderTriangle(tt *testing.T) Triangle {
	t := Tri(
		Vertex{onCone(0.1, 0.5).Point, Vec(0.4, 0.5, 0.77).Normalize()},
		Vertex{onCone(0.9, 0.5).Point, Vec(0.96, 0.27, 0.06).Normalize()},
		Vertex{Pt(0.6, 0.33, 0.8), Vec(0.27, 0.86, 0.43).Normalize()},
	)
	t.Surface = testCone(tt)
	return t
}

func flatTriangle() Triangle {
	z := Vec(0, 0, 1)
	return Tri(
		Vertex{Pt(0, 0, 0), z},
		Vertex{Pt(1, 0, 0), z},
		Vertex{Pt(0.5, 0.8660254, 0), z},
	)
}

// sampleBary yields barycentric coordinates on a regular grid over the
// triangle, corners included.
func sampleBary(n int, f func(l0, l1, l2 float64)) {
	for i := range n + 1 {
		for j := range n + 1 - i {
			l1 := float64(i) / float64(n)
			l2 := float64(j) / float64(n)
			f(1-l1-l2, l1, l2)
		}
	}
}
