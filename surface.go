package tripatch

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats/scalar"
)

var _ Surface = Generic{}
var _ Surface = Cylinder{}
var _ Surface = Cone{}

// Surface is the class of the underlying surface a faceted triangle
// approximates. It selects the closed-form edge construction. The
// implementations are [Generic], [Cylinder] and [Cone].
type Surface interface {
	// Kind returns a short lowercase name of the surface class.
	Kind() string

	isSurface()
}

// Generic is the default surface class, used for spheres, freeform
// surfaces and everything not covered by a more specific class. Its edges
// are circle-like arcs determined by the vertex normals alone.
type Generic struct{}

// Cylinder is the class of circular cylinders. The cylinder's axis is
// recovered from the vertex normals, so no parameters are needed.
type Cylinder struct{}

// Cone describes a circular cone.
type Cone struct {
	// Apex is the tip of the cone.
	Apex Point
	// Base is the center of the base circle.
	Base Point
	// Axis is Base − Apex. It need not be normalized.
	Axis Vec3
	// HalfAngle is the angle between the axis and a generator line, in
	// radians.
	HalfAngle float64
	// Radius is the radius of the base circle.
	Radius float64
}

func (Generic) Kind() string  { return "generic" }
func (Cylinder) Kind() string { return "cylinder" }
func (Cone) Kind() string     { return "cone" }

func (Generic) isSurface()  {}
func (Cylinder) isSurface() {}
func (Cone) isSurface()     {}

// NewCone returns the cone with the given base circle center, the
// direction from the base toward the apex, the base radius, and the half
// angle in radians. The apex lies at base + radius/tan(halfAngle)·unit(dir).
func NewCone(base Point, dir Vec3, radius, halfAngle float64) (Cone, error) {
	switch {
	case base.IsNaN() || base.IsInf() || dir.IsNaN() || dir.IsInf():
		return Cone{}, fmt.Errorf("cone base %v, direction %v: %w", base, dir, ErrDegenerateSurface)
	case scalar.EqualWithinAbs(dir.Hypot(), 0, zeroLength):
		return Cone{}, fmt.Errorf("cone direction has zero length: %w", ErrDegenerateSurface)
	case !(radius > 0) || math.IsInf(radius, 0):
		return Cone{}, fmt.Errorf("cone radius %g: %w", radius, ErrDegenerateSurface)
	case !(halfAngle > 0 && halfAngle < math.Pi/2):
		return Cone{}, fmt.Errorf("cone half angle %g: %w", halfAngle, ErrDegenerateSurface)
	}
	apex := base.Translate(dir.Normalize().Mul(radius / math.Tan(halfAngle)))
	return Cone{
		Apex:      apex,
		Base:      base,
		Axis:      base.Sub(apex),
		HalfAngle: halfAngle,
		Radius:    radius,
	}, nil
}

// Validate reports whether c describes a proper cone. Cones built by
// [NewCone] are always valid; Validate is meant for cones decoded from
// external data.
func (c Cone) Validate() error {
	switch {
	case c.Apex.IsNaN() || c.Apex.IsInf() || c.Base.IsNaN() || c.Base.IsInf():
		return fmt.Errorf("cone apex %v, base %v: %w", c.Apex, c.Base, ErrDegenerateSurface)
	case c.Axis.IsNaN() || c.Axis.IsInf() || scalar.EqualWithinAbs(c.Axis.Hypot(), 0, zeroLength):
		return fmt.Errorf("cone axis %v: %w", c.Axis, ErrDegenerateSurface)
	case !(c.HalfAngle > 0 && c.HalfAngle < math.Pi/2):
		return fmt.Errorf("cone half angle %g: %w", c.HalfAngle, ErrDegenerateSurface)
	}
	return nil
}

// ConeQuery is the source of conical surface data, typically a CAD kernel
// that knows the analytic face a facet was tessellated from.
type ConeQuery interface {
	// ConeData returns the center of the base circle, the axis direction
	// pointing from the base toward the apex, the base radius and the half
	// angle in radians.
	ConeData() (base Point, dir Vec3, radius, halfAngle float64, err error)
}

// ResolveCone queries q and validates the result. Any failure, including
// a failing query, is reported as an error wrapping
// [ErrDegenerateSurface].
func ResolveCone(q ConeQuery) (Cone, error) {
	base, dir, radius, halfAngle, err := q.ConeData()
	if err != nil {
		return Cone{}, fmt.Errorf("querying cone: %w: %w", ErrDegenerateSurface, err)
	}
	return NewCone(base, dir, radius, halfAngle)
}

// normalAt returns the outward normal of the cone at a point on its
// surface, the direction perpendicular to the generator line through pt
// within the plane that contains the axis.
func (c Cone) normalAt(pt Point) Vec3 {
	gen := pt.Sub(c.Apex)
	tangent := gen.Cross(c.Axis)
	return gen.UnitCross(tangent)
}
