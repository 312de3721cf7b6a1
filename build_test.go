package tripatch

import (
	"bytes"
	"errors"
	"log/slog"
	"math"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

func TestOptionsValidate(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		ok   bool
		want error
	}{
		{"default", DefaultOptions(), true, nil},
		{"quadratic pinched", Options{Degree: Quadratic, Scheme: Pinched}, true, nil},
		{"mixed pinched", Options{Degree: Mixed, Scheme: Pinched}, true, nil},
		{"cubic packed", Options{Degree: Cubic, Scheme: Packed}, true, nil},
		{"quadratic packed", Options{Degree: Quadratic, Scheme: Packed}, false, ErrUnsupportedMode},
		{"mixed packed", Options{Degree: Mixed, Scheme: Packed}, false, ErrUnsupportedMode},
		{"bad degree", Options{Degree: 7}, false, nil},
		{"bad scheme", Options{Scheme: -1}, false, nil},
		{"negative workers", Options{Workers: -2}, false, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.Validate()
			if (err == nil) != tt.ok {
				t.Fatalf("got error %v", err)
			}
			if tt.want != nil && !errors.Is(err, tt.want) {
				t.Errorf("got %v, want %v", err, tt.want)
			}
		})
	}
}

func TestModeText(t *testing.T) {
	for _, m := range []DegreeMode{Cubic, Quadratic, Mixed} {
		b, err := m.MarshalText()
		if err != nil {
			t.Fatal(err)
		}
		var got DegreeMode
		if err := got.UnmarshalText(b); err != nil {
			t.Fatal(err)
		}
		diff(t, m, got)
		diff(t, string(b), m.String())
	}
	for _, s := range []PatchScheme{Pinched, Packed} {
		b, err := s.MarshalText()
		if err != nil {
			t.Fatal(err)
		}
		var got PatchScheme
		if err := got.UnmarshalText(b); err != nil {
			t.Fatal(err)
		}
		diff(t, s, got)
	}

	var m DegreeMode
	if err := m.UnmarshalText([]byte("quartic")); err == nil {
		t.Error("unknown degree mode accepted")
	}
	if _, err := DegreeMode(9).MarshalText(); err == nil {
		t.Error("invalid degree mode marshaled")
	}
	diff(t, "PatchScheme(4)", PatchScheme(4).String())
}

func TestOptionsDecode(t *testing.T) {
	want := Options{Degree: Mixed, Scheme: Pinched, ConeFallback: false, Workers: 3}

	var fromTOML Options
	err := toml.Unmarshal([]byte(`
degree = "mixed"
scheme = "pinched"
cone_fallback = false
workers = 3
`), &fromTOML)
	if err != nil {
		t.Fatal(err)
	}
	diff(t, want, fromTOML)

	var fromYAML Options
	err = yaml.Unmarshal([]byte("degree: mixed\nscheme: pinched\ncone_fallback: false\nworkers: 3\n"), &fromYAML)
	if err != nil {
		t.Fatal(err)
	}
	diff(t, want, fromYAML)

	b, err := json.Marshal(want)
	if err != nil {
		t.Fatal(err)
	}
	diff(t, `{"degree":"mixed","scheme":"pinched","cone_fallback":false,"workers":3}`, string(b))
	var fromJSON Options
	if err := json.Unmarshal(b, &fromJSON); err != nil {
		t.Fatal(err)
	}
	diff(t, want, fromJSON)
}

func TestBuild(t *testing.T) {
	tests := []struct {
		name  string
		tri   Triangle
		opts  Options
		rects int
		check func(t *testing.T, p Patch)
	}{
		{"cubic pinched", sphereTriangle(), Options{Degree: Cubic, Scheme: Pinched}, 1, func(t *testing.T, p Patch) {
			diff(t, p.Triangle.(CubicTriangle).Pinched(), p.Rects[0])
		}},
		{"cubic packed", sphereTriangle(), Options{Degree: Cubic, Scheme: Packed}, 3, func(t *testing.T, p Patch) {
			packed := p.Triangle.(CubicTriangle).Packed()
			diff(t, []RectPatch{packed[0], packed[1], packed[2]}, p.Rects)
		}},
		{"quadratic", sphereTriangle(), Options{Degree: Quadratic}, 1, func(t *testing.T, p Patch) {
			diff(t, p.Triangle.(QuadTriangle).Pinched(), p.Rects[0])
		}},
		{"mixed smooth", sphereTriangle(), Options{Degree: Mixed}, 1, func(t *testing.T, p Patch) {
			if _, ok := p.Triangle.(QuadTriangle); !ok {
				t.Errorf("got %T, want QuadTriangle", p.Triangle)
			}
		}},
		{"mixed inflected", sTriangle(), Options{Degree: Mixed}, 1, func(t *testing.T, p Patch) {
			if _, ok := p.Rects[0].(CubicRect); !ok {
				t.Errorf("got %T, want CubicRect", p.Rects[0])
			}
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := Build(tt.tri, tt.opts)
			if err != nil {
				t.Fatal(err)
			}
			if len(p.Rects) != tt.rects {
				t.Fatalf("got %d rectangular patches, want %d", len(p.Rects), tt.rects)
			}
			tt.check(t, p)
		})
	}

	if _, err := Build(sphereTriangle(), Options{Degree: Quadratic, Scheme: Packed}); !errors.Is(err, ErrUnsupportedMode) {
		t.Errorf("got %v, want %v", err, ErrUnsupportedMode)
	}
}

func badConeTriangle(t *testing.T) Triangle {
	tri := coneTriangle(t)
	c := tri.Surface.(Cone)
	c.Axis = Vec3{}
	tri.Surface = c
	return tri
}

func TestBuildConeFallback(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, nil)))
	defer SetLogger(nil)

	tri := badConeTriangle(t)
	opts := DefaultOptions()
	p, err := Build(tri, opts)
	if err != nil {
		t.Fatal(err)
	}
	generic := tri
	generic.Surface = Generic{}
	want, err := BuildCubic(generic)
	if err != nil {
		t.Fatal(err)
	}
	diff(t, want, p.Triangle)
	if !strings.Contains(buf.String(), "cone parameters unusable") {
		t.Errorf("fallback not logged, got %q", buf.String())
	}

	opts.ConeFallback = false
	if _, err := Build(tri, opts); !errors.Is(err, ErrDegenerateSurface) {
		t.Errorf("got %v, want %v", err, ErrDegenerateSurface)
	}

	// Malformed triangles are not rescued by the fallback.
	tri.Vertices[0].Point.X = math.NaN()
	opts.ConeFallback = true
	if _, err := Build(tri, opts); !errors.Is(err, ErrMalformedTriangle) {
		t.Errorf("got %v, want %v", err, ErrMalformedTriangle)
	}
}

func TestBuildNoShoulder(t *testing.T) {
	tri := noShoulderTriangle(t)

	p, err := Build(tri, Options{Degree: Quadratic, Scheme: Pinched})
	if err != nil {
		t.Fatal(err)
	}
	q := p.Triangle.(QuadTriangle)
	diff(t, [3]float64{0, 0, 0}, [3]float64{q.W110, q.W011, q.W101})
	rect := p.Rects[0].(QuadRect)
	diff(t, 0.0, rect.Weights[1][1])
	sampleBary(6, func(l0, l1, l2 float64) {
		if pt := q.Eval(l0, l1, l2); pt.IsNaN() {
			t.Errorf("(%g, %g, %g): got %s", l0, l1, l2, pt)
		}
	})

	for _, opts := range []Options{{Degree: Cubic, Scheme: Pinched}, {Degree: Cubic, Scheme: Packed}} {
		if _, err := Build(tri, opts); err != nil {
			t.Errorf("%s %s: %v", opts.Degree, opts.Scheme, err)
		}
	}
}

// hugeTriangle is valid input whose coordinates are so large that the
// interior pole overflows.
func hugeTriangle() Triangle {
	n := Vec(1, 1, 1).Normalize()
	return Tri(
		Vertex{Pt(1e308, 0, 0), n},
		Vertex{Pt(0, 1e308, 0), n},
		Vertex{Pt(0, 0, 1e308), n},
	)
}

func TestBuildNonFinite(t *testing.T) {
	tri := hugeTriangle()
	if err := tri.Validate(); err != nil {
		t.Fatal(err)
	}
	for _, scheme := range []PatchScheme{Pinched, Packed} {
		p, err := Build(tri, Options{Degree: Cubic, Scheme: scheme})
		if !errors.Is(err, ErrNonFinitePatch) {
			t.Errorf("%s: got %v, want %v", scheme, err, ErrNonFinitePatch)
		}
		diff(t, Patch{}, p)
	}

	results := BuildAll([]Triangle{sphereTriangle(), tri, noShoulderTriangle(t)}, Options{Degree: Cubic, Workers: 2})
	for i, r := range results {
		if i == 1 {
			if !errors.Is(r.Err, ErrNonFinitePatch) {
				t.Errorf("got %v, want %v", r.Err, ErrNonFinitePatch)
			}
			continue
		}
		if r.Err != nil {
			t.Errorf("triangle %d: %v", i, r.Err)
		}
	}
}

func batch(t *testing.T) []Triangle {
	bad := sphereTriangle()
	bad.Vertices[0].Normal = Vec3{}
	return []Triangle{sphereTriangle(), bad, cylinderTriangle(), coneTriangle(t), flatTriangle(), bad}
}

func TestPatches(t *testing.T) {
	tris := batch(t)
	opts := DefaultOptions()
	var i int
	for p, err := range Patches(tris, opts) {
		want, wantErr := Build(tris[i], opts)
		diff(t, want, p)
		if (err == nil) != (wantErr == nil) {
			t.Errorf("triangle %d: got error %v, want %v", i, err, wantErr)
		}
		i++
	}
	diff(t, len(tris), i)

	i = 0
	for range Patches(tris, opts) {
		i++
		if i == 2 {
			break
		}
	}
	diff(t, 2, i)
}

func TestBuildAll(t *testing.T) {
	tris := batch(t)
	for _, workers := range []int{0, 1, 3} {
		opts := Options{Degree: Cubic, Scheme: Packed, ConeFallback: true, Workers: workers}
		results := BuildAll(tris, opts)
		if len(results) != len(tris) {
			t.Fatalf("got %d results, want %d", len(results), len(tris))
		}
		for i, r := range results {
			diff(t, i, r.Index)
			want, err := Build(tris[i], opts)
			if i == 1 || i == 5 {
				if !errors.Is(r.Err, ErrMalformedTriangle) {
					t.Errorf("triangle %d: got %v, want %v", i, r.Err, ErrMalformedTriangle)
				}
				continue
			}
			if r.Err != nil || err != nil {
				t.Fatalf("triangle %d: %v, %v", i, r.Err, err)
			}
			diff(t, want, r.Patch)
		}
	}

	if got := BuildAll(nil, DefaultOptions()); len(got) != 0 {
		t.Errorf("got %d results for no triangles", len(got))
	}
}

type coneData struct {
	base      Point
	dir       Vec3
	radius    float64
	halfAngle float64
	err       error
}

func (c coneData) ConeData() (Point, Vec3, float64, float64, error) {
	return c.base, c.dir, c.radius, c.halfAngle, c.err
}

func TestResolveCone(t *testing.T) {
	half := math.Pi / 6
	got, err := ResolveCone(coneData{Pt(0, 0, 0), Vec(0, 0, 1), 2 * math.Tan(half), half, nil})
	if err != nil {
		t.Fatal(err)
	}
	diff(t, testCone(t), got)
	assertNear(t, got.Apex, Pt(0, 0, 2), 1e-12)

	errQuery := errors.New("no conical face")
	_, err = ResolveCone(coneData{err: errQuery})
	if !errors.Is(err, ErrDegenerateSurface) || !errors.Is(err, errQuery) {
		t.Errorf("got %v, want both %v and %v", err, ErrDegenerateSurface, errQuery)
	}

	bad := []coneData{
		{Pt(0, 0, 0), Vec3{}, 1, half, nil},
		{Pt(0, 0, 0), Vec(0, 0, 1), 0, half, nil},
		{Pt(0, 0, 0), Vec(0, 0, 1), math.Inf(1), half, nil},
		{Pt(0, 0, 0), Vec(0, 0, 1), 1, 0, nil},
		{Pt(0, 0, 0), Vec(0, 0, 1), 1, math.Pi / 2, nil},
		{Pt(math.NaN(), 0, 0), Vec(0, 0, 1), 1, half, nil},
	}
	for _, q := range bad {
		if _, err := ResolveCone(q); !errors.Is(err, ErrDegenerateSurface) {
			t.Errorf("%+v: got %v, want %v", q, err, ErrDegenerateSurface)
		}
	}
}
