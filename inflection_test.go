package tripatch

import (
	"testing"

	"github.com/google/go-cmp/cmp/cmpopts"
)

func tilted(p Point, x float64) Vertex {
	return Vertex{Point: p, Normal: Vec(x, 0, 1).Normalize()}
}

func TestIsInflected(t *testing.T) {
	tests := []struct {
		name   string
		v0, v1 Vertex
		want   bool
	}{
		{"s-curve", tilted(Pt(0, 0, 0), -0.3), tilted(Pt(1, 0, 0), -0.3), true},
		{"arc", tilted(Pt(0, 0, 0), -0.3), tilted(Pt(1, 0, 0), 0.3), false},
		{"flat", tilted(Pt(0, 0, 0), 0), tilted(Pt(1, 0, 0), 0), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsInflected(tt.v0, tt.v1); got != tt.want {
				t.Errorf("got %t, want %t", got, tt.want)
			}
			if got := IsInflected(tt.v1, tt.v0); got != tt.want {
				t.Errorf("reversed: got %t, want %t", got, tt.want)
			}
		})
	}

	tri := sphereTriangle()
	if tri.AnyInflected() {
		t.Error("sphere triangle has an inflected side")
	}
}

func TestElevatedEdge(t *testing.T) {
	approx := cmpopts.EquateApprox(0, 1e-12)

	v0, v1 := tilted(Pt(0, 0, 0), -0.3), tilted(Pt(1, 0, 0), -0.3)
	diff(t, CubicEdge(Generic{}, v0, v1), ElevatedEdge(v0, v1), approx)

	// A non-inflected edge is the raised quadratic and traces the same
	// points as the polynomial quadratic.
	v0, v1 = tilted(Pt(0, 0, 0), -0.3), tilted(Pt(1, 0, 0), 0.3)
	c := ElevatedEdge(v0, v1)
	q := QuadEdge(Generic{}, v0, v1).Polynomial()
	for i := range 11 {
		s := float64(i) / 10
		assertNear(t, c.Eval(s), q.Eval(s), 1e-12)
	}
}
