package tripatch

import "errors"

var (
	// ErrMalformedTriangle is returned for input that violates the
	// preconditions of patch construction: non-finite coordinates, normals
	// without a direction, or edges shorter than [MinEdgeLength].
	ErrMalformedTriangle = errors.New("tripatch: malformed triangle")

	// ErrDegenerateSurface is returned when the parameters of a conical
	// surface cannot be resolved or describe no cone.
	ErrDegenerateSurface = errors.New("tripatch: degenerate surface parameters")

	// ErrUnsupportedMode is returned for combinations of degree mode and
	// patch scheme that have no rectangular representation.
	ErrUnsupportedMode = errors.New("tripatch: unsupported degree mode and patch scheme")

	// ErrNonFinitePatch is returned when a triangle with valid input
	// produces a pole or weight that is NaN or infinite, typically because
	// its coordinates are close to the floating-point range limits.
	ErrNonFinitePatch = errors.New("tripatch: non-finite patch")

	// ErrInvalidSide is returned for a side index outside 0..2.
	ErrInvalidSide = errors.New("tripatch: invalid side index")
)
