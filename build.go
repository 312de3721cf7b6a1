package tripatch

import (
	"errors"
	"fmt"
	"iter"
	"log/slog"
	"runtime"
	"slices"

	"golang.org/x/sync/errgroup"
)

// DegreeMode selects the degree of the triangular patches.
type DegreeMode int

const (
	// Cubic builds cubic patches for every triangle.
	Cubic DegreeMode = iota
	// Quadratic builds rational quadratic patches for every triangle.
	Quadratic
	// Mixed builds rational quadratic patches, except for triangles with an
	// inflected side, which get cubic patches. See [BuildMixed].
	Mixed
)

var degreeNames = [...]string{Cubic: "cubic", Quadratic: "quadratic", Mixed: "mixed"}

func (m DegreeMode) String() string {
	if m < 0 || int(m) >= len(degreeNames) {
		return fmt.Sprintf("DegreeMode(%d)", int(m))
	}
	return degreeNames[m]
}

func (m DegreeMode) MarshalText() ([]byte, error) {
	if m < 0 || int(m) >= len(degreeNames) {
		return nil, fmt.Errorf("invalid degree mode %d", int(m))
	}
	return []byte(degreeNames[m]), nil
}

func (m *DegreeMode) UnmarshalText(b []byte) error {
	for i, name := range degreeNames {
		if string(b) == name {
			*m = DegreeMode(i)
			return nil
		}
	}
	return fmt.Errorf("unknown degree mode %q", b)
}

// PatchScheme selects how triangular patches are represented as
// rectangular ones.
type PatchScheme int

const (
	// Pinched represents each triangle by one rectangular patch with a
	// degenerate side.
	Pinched PatchScheme = iota
	// Packed represents each triangle by three non-degenerate rectangular
	// patches. Only cubic patches can be packed.
	Packed
)

var schemeNames = [...]string{Pinched: "pinched", Packed: "packed"}

func (s PatchScheme) String() string {
	if s < 0 || int(s) >= len(schemeNames) {
		return fmt.Sprintf("PatchScheme(%d)", int(s))
	}
	return schemeNames[s]
}

func (s PatchScheme) MarshalText() ([]byte, error) {
	if s < 0 || int(s) >= len(schemeNames) {
		return nil, fmt.Errorf("invalid patch scheme %d", int(s))
	}
	return []byte(schemeNames[s]), nil
}

func (s *PatchScheme) UnmarshalText(b []byte) error {
	for i, name := range schemeNames {
		if string(b) == name {
			*s = PatchScheme(i)
			return nil
		}
	}
	return fmt.Errorf("unknown patch scheme %q", b)
}

// Options configure patch construction.
type Options struct {
	Degree DegreeMode  `toml:"degree" yaml:"degree" json:"degree"`
	Scheme PatchScheme `toml:"scheme" yaml:"scheme" json:"scheme"`
	// ConeFallback rebuilds a cone triangle with the generic construction
	// when its cone parameters are unusable, instead of failing.
	ConeFallback bool `toml:"cone_fallback" yaml:"cone_fallback" json:"cone_fallback"`
	// Workers bounds the number of goroutines used by [BuildAll]. Zero
	// means GOMAXPROCS.
	Workers int `toml:"workers" yaml:"workers" json:"workers"`
}

// DefaultOptions returns cubic pinched patches with the cone fallback
// enabled.
func DefaultOptions() Options {
	return Options{
		Degree:       Cubic,
		Scheme:       Pinched,
		ConeFallback: true,
	}
}

// Validate reports invalid or unsupported options. Combining [Packed] with
// anything but [Cubic] returns an error wrapping [ErrUnsupportedMode].
func (o Options) Validate() error {
	if o.Degree < 0 || int(o.Degree) >= len(degreeNames) {
		return fmt.Errorf("invalid degree mode %d", int(o.Degree))
	}
	if o.Scheme < 0 || int(o.Scheme) >= len(schemeNames) {
		return fmt.Errorf("invalid patch scheme %d", int(o.Scheme))
	}
	if o.Scheme == Packed && o.Degree != Cubic {
		return fmt.Errorf("%s with %s: %w", o.Degree, o.Scheme, ErrUnsupportedMode)
	}
	if o.Workers < 0 {
		return fmt.Errorf("negative worker count %d", o.Workers)
	}
	return nil
}

func (o Options) workers() int {
	if o.Workers == 0 {
		return runtime.GOMAXPROCS(0)
	}
	return o.Workers
}

// Patch is the curved replacement of one triangle: the triangular patch
// and its rectangular representation.
type Patch struct {
	Triangle TrianglePatch
	Rects    []RectPatch
}

// Build builds the patch of a single triangle.
func Build(t Triangle, opts Options) (Patch, error) {
	if err := opts.Validate(); err != nil {
		return Patch{}, err
	}
	tp, err := buildTriangle(t, opts.Degree)
	if err != nil && opts.ConeFallback && errors.Is(err, ErrDegenerateSurface) {
		if _, ok := t.Surface.(Cone); ok {
			Logger().Warn("cone parameters unusable, using generic construction",
				slog.String("error", err.Error()))
			t.Surface = Generic{}
			tp, err = buildTriangle(t, opts.Degree)
		}
	}
	if err != nil {
		return Patch{}, err
	}
	rs := rects(tp, opts.Scheme)
	if nonFinite(tp) || slices.ContainsFunc(rs, nonFinite[RectPatch]) {
		return Patch{}, fmt.Errorf("%s patch: %w", opts.Degree, ErrNonFinitePatch)
	}
	return Patch{Triangle: tp, Rects: rs}, nil
}

func nonFinite[T interface {
	IsNaN() bool
	IsInf() bool
}](p T) bool {
	return p.IsNaN() || p.IsInf()
}

func buildTriangle(t Triangle, mode DegreeMode) (TrianglePatch, error) {
	switch mode {
	case Cubic:
		return BuildCubic(t)
	case Quadratic:
		return BuildQuadratic(t)
	case Mixed:
		return BuildMixed(t)
	default:
		panic(fmt.Sprintf("unhandled degree mode %d", int(mode)))
	}
}

func rects(tp TrianglePatch, scheme PatchScheme) []RectPatch {
	switch tp := tp.(type) {
	case CubicTriangle:
		if scheme == Packed {
			packed := tp.Packed()
			return []RectPatch{packed[0], packed[1], packed[2]}
		}
		return []RectPatch{tp.Pinched()}
	case QuadTriangle:
		return []RectPatch{tp.Pinched()}
	default:
		panic(fmt.Sprintf("unhandled patch %T", tp))
	}
}

// Patches returns an iterator over the patches of tris, built one after
// another in order. A triangle that fails yields its error and iteration
// continues with the next one.
func Patches(tris []Triangle, opts Options) iter.Seq2[Patch, error] {
	return func(yield func(Patch, error) bool) {
		for _, t := range tris {
			if !yield(Build(t, opts)) {
				break
			}
		}
	}
}

// Result is the outcome of building the triangle at Index in a batch.
type Result struct {
	Index int
	Patch Patch
	Err   error
}

// BuildAll builds the patches of all triangles concurrently, using at most
// opts.Workers goroutines. Results are in the order of tris. A failing
// triangle reports its error in its Result and does not affect the others.
func BuildAll(tris []Triangle, opts Options) []Result {
	results := make([]Result, len(tris))
	var g errgroup.Group
	g.SetLimit(opts.workers())
	for i, t := range tris {
		g.Go(func() error {
			p, err := Build(t, opts)
			results[i] = Result{Index: i, Patch: p, Err: err}
			return nil
		})
	}
	_ = g.Wait()
	return results
}
