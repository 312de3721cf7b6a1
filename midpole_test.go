package tripatch

import (
	"math"
	"math/rand/v2"
	"testing"
)

func TestMidPoleFromAux(t *testing.T) {
	r := rand.New(rand.NewPCG(5, 6))
	rnd := func() Point {
		return Pt(r.Float64()*10-5, r.Float64()*10-5, r.Float64()*10-5)
	}
	for range 100 {
		var poles [10]Point
		for i := range poles {
			poles[i] = rnd()
		}
		p := NewCubicTriangle(poles)
		aux := rnd()
		p.B111 = MidPoleFromAux(p, aux)
		assertNear(t, p.Eval(1.0/3, 1.0/3, 1.0/3), aux, 1e-9)
	}
}

func TestMidPoleFlat(t *testing.T) {
	tri := flatTriangle()
	p, err := BuildCubic(tri)
	if err != nil {
		t.Fatal(err)
	}
	v := tri.Vertices
	centroid := Point(Vec3(v[0].Point).Add(Vec3(v[1].Point)).Add(Vec3(v[2].Point)).Div(3))
	assertNear(t, p.B111, centroid, 1e-12)

	// The patch is the triangle itself.
	sampleBary(6, func(l0, l1, l2 float64) {
		want := Vec3(v[0].Point).Mul(l0).Add(Vec3(v[1].Point).Mul(l1)).Add(Vec3(v[2].Point).Mul(l2))
		assertNear(t, p.Eval(l0, l1, l2), Point(want), 1e-12)
	})
}

func TestMidPoleOnSurface(t *testing.T) {
	center := Pt(1, -2, 0.5)
	tests := []struct {
		name    string
		tri     Triangle
		dev     func(Point) float64
		epsilon float64
	}{
		{"sphere", sphereTriangle(), func(p Point) float64 { return p.Distance(center) - 3 }, 1e-4},
		{"cylinder", cylinderTriangle(), func(p Point) float64 { return math.Hypot(p.X, p.Y) - 2 }, 1e-4},
		{"cone", coneTriangle(t), func(p Point) float64 {
			half := math.Pi / 6
			return (math.Hypot(p.X, p.Y) - (2-p.Z)*math.Tan(half)) * math.Cos(half)
		}, 2e-2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := BuildCubic(tt.tri)
			if err != nil {
				t.Fatal(err)
			}
			if d := tt.dev(p.Eval(1.0/3, 1.0/3, 1.0/3)); math.Abs(d) > tt.epsilon {
				t.Errorf("center is %g off the surface", d)
			}
			sampleBary(10, func(l0, l1, l2 float64) {
				if d := tt.dev(p.Eval(l0, l1, l2)); math.Abs(d) > tt.epsilon {
					t.Errorf("(%g, %g, %g) is %g off the surface", l0, l1, l2, d)
				}
			})
		})
	}
}

func TestMirroredNormal(t *testing.T) {
	// On a sphere the mirrored normal is the normal at the far end of the
	// chord.
	center := Pt(1, -2, 0.5)
	v0 := onSphere(center, 3, 0.4, 0.1)
	v1 := onSphere(center, 3, 0.9, 0.7)
	verts := [3]Vertex{v0, v1, v1}
	assertVecNear(t, mirroredNormal(verts, 0, v1.Point), v1.Normal, 1e-12)
}
