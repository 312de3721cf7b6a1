package tripatch

import (
	"math"
)

// MinEdgeLength is the shortest triangle edge, in model length units, for
// which curved patches are built. Shorter triangles are dropped by
// [FilterSmall] and rejected by [Triangle.Validate].
const MinEdgeLength = 0.0003

const (
	// zeroLength is the magnitude below which a vector has no usable
	// direction.
	zeroLength = 1e-12

	// maxTangentAngle is the angle between the two end tangents of an edge
	// beyond which they are treated as antiparallel and the edge degenerates
	// to its chord.
	maxTangentAngle = 179 * math.Pi / 180

	// parallelNormals is the magnitude of n₁ × n₀ at or below which a
	// cylinder edge's normals are considered parallel.
	parallelNormals = 0.01

	// minNormalAngle is the angle between two normals below which a
	// cylinder quadratic edge is a straight line.
	minNormalAngle = 0.01 * math.Pi / 180

	// coneChordGuard bounds |unit(p₀−p₁)·nᵢ| from below for the conical
	// construction; a chord this close to the tangent plane runs along a
	// generator line.
	coneChordGuard = 1e-4

	// linearCoeff is the magnitude below which the quadratic coefficient of
	// the cone shoulder equation is treated as zero.
	linearCoeff = 1e-12
)

// SolveConeQuadratic solves the cone shoulder equation
//
//	(x·a + b)·c = m·|x·a + b|
//
// for x, where, for a conical edge, a = Pa − Pm (apex point minus chord
// midpoint), b = Pm − Pt (chord midpoint minus cone tip), c is the cone's
// unit axis and m = cos(half angle). Squaring gives a0 x² + a1 x + a2 = 0
// with
//
//	a0 = (a·c)² − m²(a·a)
//	a1 = 2[(a·c)(b·c) − m²(a·b)]
//	a2 = (b·c)² − m²(b·b)
//
// c must be normalized; the coefficients assume |c| = 1.
//
// The result is the first root in [0, 1], trying the linear root when a0 is
// negligible, otherwise q/a0 before a2/q with the cancellation-free
// q = −(a1 + sign(a1)·√Δ)/2. When no root lies in [0, 1], or Δ < 0, the
// result is 0.
func SolveConeQuadratic(a, b, c Vec3, m float64) float64 {
	ac := a.Dot(c)
	bc := b.Dot(c)
	k := m * m
	a0 := ac*ac - k*a.Dot(a)
	a1 := (ac*bc - k*a.Dot(b)) * 2
	a2 := bc*bc - k*b.Dot(b)

	if math.Abs(a0) < linearCoeff {
		root := -a2 / a1
		if inUnit(root) {
			return root
		}
		return 0
	}

	delta := a1*a1 - 4*a0*a2
	if delta < 0 {
		return 0
	}
	q := -(a1 + sign(a1)*math.Sqrt(delta)) / 2
	x1 := q / a0
	x2 := a2 / q
	switch {
	case inUnit(x1):
		return x1
	case inUnit(x2):
		return x2
	default:
		return 0
	}
}

func inUnit(x float64) bool {
	return x >= 0 && x <= 1
}

// sign returns -1, 0 or 1. Unlike math.Copysign it maps zero to zero, which
// makes q vanish for a1 = 0.
func sign(x float64) float64 {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	default:
		return 0
	}
}

// bernstein3 returns the cubic Bernstein polynomials at t.
func bernstein3(t float64) [4]float64 {
	mt := 1 - t
	return [4]float64{
		mt * mt * mt,
		3 * mt * mt * t,
		3 * mt * t * t,
		t * t * t,
	}
}

// bernstein2 returns the quadratic Bernstein polynomials at t.
func bernstein2(t float64) [3]float64 {
	mt := 1 - t
	return [3]float64{
		mt * mt,
		2 * mt * t,
		t * t,
	}
}
