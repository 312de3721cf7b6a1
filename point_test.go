package tripatch

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestVec3Basic(t *testing.T) {
	x, y, z := Vec(1, 0, 0), Vec(0, 1, 0), Vec(0, 0, 1)
	diff(t, z, x.Cross(y))
	diff(t, x, y.Cross(z))
	diff(t, 0.0, x.Dot(y))
	diff(t, 3.0, Vec(1, 2, 2).Hypot())
	diff(t, 9.0, Vec(1, 2, 2).Hypot2())

	approx := cmpopts.EquateApprox(0, 1e-12)
	diff(t, math.Pi/2, x.Angle(y), approx)
	diff(t, math.Pi, x.Angle(x.Negate()), approx)
	diff(t, 0.0, x.Angle(x.Mul(3)), approx)
	diff(t, math.Pi/4, x.Angle(Vec(1, 1, 0)), approx)
}

func TestUnitOr(t *testing.T) {
	fallback := Vec(0, 1, 0)
	diff(t, Vec(0, 0, 1), unitOr(Vec(0, 0, 5), fallback))
	diff(t, fallback, unitOr(Vec(0, 0, 0), fallback))
	diff(t, fallback, unitOr(Vec(1e-14, 0, 0), fallback))
}

func TestPointBasic(t *testing.T) {
	p := Pt(1, 2, 3)
	q := Pt(4, 6, 3)
	diff(t, Vec(3, 4, 0), q.Sub(p))
	diff(t, 5.0, p.Distance(q))
	diff(t, 25.0, p.DistanceSquared(q))
	diff(t, Pt(2.5, 4, 3), p.Midpoint(q))
	diff(t, q, p.Translate(Vec(3, 4, 0)))
	assertNear(t, p.Lerp(q, 0.25), Pt(1.75, 3, 3), 1e-12)

	if !Pt(math.NaN(), 0, 0).IsNaN() {
		t.Error("NaN point not reported")
	}
	if !Pt(0, math.Inf(-1), 0).IsInf() {
		t.Error("infinite point not reported")
	}
}
