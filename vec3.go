package tripatch

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Vec3 is a free vector in 3D space. Unlike [Point], it has no location;
// points and vectors convert freely but the distinction documents intent.
type Vec3 struct {
	X float64
	Y float64
	Z float64
}

// Vec returns the vector ⟨x, y, z⟩.
func Vec(x, y, z float64) Vec3 {
	return Vec3{X: x, Y: y, Z: z}
}

func (v Vec3) r3() r3.Vec { return r3.Vec(v) }

// Splat returns the vector's x, y and z coordinates.
func (v Vec3) Splat() (float64, float64, float64) {
	return v.X, v.Y, v.Z
}

func (v Vec3) String() string {
	return fmt.Sprintf("⟨%g, %g, %g⟩", v.X, v.Y, v.Z)
}

// Dot returns the dot product of v and o.
func (v Vec3) Dot(o Vec3) float64 {
	return r3.Dot(v.r3(), o.r3())
}

// Cross returns the cross product v × o.
func (v Vec3) Cross(o Vec3) Vec3 {
	return Vec3(r3.Cross(v.r3(), o.r3()))
}

// UnitCross returns the normalized cross product of v and o.
func (v Vec3) UnitCross(o Vec3) Vec3 {
	return v.Cross(o).Normalize()
}

// Hypot returns the magnitude of the vector.
func (v Vec3) Hypot() float64 {
	return r3.Norm(v.r3())
}

// Hypot2 returns the squared magnitude of the vector.
//
// This function is more efficient than squaring the result of [Vec3.Hypot].
func (v Vec3) Hypot2() float64 {
	return r3.Norm2(v.r3())
}

// Normalize returns a vector of magnitude 1.0 with the same direction as v.
// This produces a NaN vector if the magnitude is 0.
func (v Vec3) Normalize() Vec3 {
	return Vec3(r3.Unit(v.r3()))
}

// Angle returns the angle in radians between v and o, in [0, π].
func (v Vec3) Angle(o Vec3) float64 {
	// atan2 stays accurate for nearly (anti)parallel vectors, where acos of
	// the normalized dot product loses most of its precision.
	return math.Atan2(v.Cross(o).Hypot(), v.Dot(o))
}

// Lerp linearly interpolates between two vectors.
func (v Vec3) Lerp(o Vec3, t float64) Vec3 {
	// v + t * (o-v)
	return v.Add(o.Sub(v).Mul(t))
}

// Add adds two vectors and returns the resulting vector.
func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3(r3.Add(v.r3(), o.r3()))
}

// Sub subtracts two vectors and returns the resulting vector.
func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3(r3.Sub(v.r3(), o.r3()))
}

func (v Vec3) Mul(f float64) Vec3 {
	return Vec3(r3.Scale(f, v.r3()))
}

func (v Vec3) Div(f float64) Vec3 {
	return Vec3{
		X: v.X / f,
		Y: v.Y / f,
		Z: v.Z / f,
	}
}

// Negate returns a new vector with the signs of x, y and z flipped.
func (v Vec3) Negate() Vec3 {
	return Vec3{
		X: -v.X,
		Y: -v.Y,
		Z: -v.Z,
	}
}

// IsInf reports whether at least one of x, y and z is infinite.
func (v Vec3) IsInf() bool {
	return math.IsInf(v.X, 0) || math.IsInf(v.Y, 0) || math.IsInf(v.Z, 0)
}

// IsNaN reports whether at least one of x, y and z is NaN.
func (v Vec3) IsNaN() bool {
	return math.IsNaN(v.X) || math.IsNaN(v.Y) || math.IsNaN(v.Z)
}

// unitOr normalizes v, returning fallback when v is too short to have a
// meaningful direction.
func unitOr(v Vec3, fallback Vec3) Vec3 {
	if h := v.Hypot(); h > zeroLength && !math.IsInf(h, 0) {
		return v.Div(h)
	}
	return fallback
}
