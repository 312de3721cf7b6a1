package main

import (
	"fmt"
	"io"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"honnef.co/go/tripatch"
)

type output struct {
	Options tripatch.Options `json:"options" yaml:"options"`
	Patches []patchOut       `json:"patches" yaml:"patches"`
	Failed  []failure        `json:"failed,omitempty" yaml:"failed,omitempty"`
}

// patchOut is the rectangular representation of the triangle at Index in
// the input.
type patchOut struct {
	Index int       `json:"index" yaml:"index"`
	Rects []rectOut `json:"rects" yaml:"rects"`
}

// rectOut is a tensor-product control grid, row by row. Weights are only
// present for rational patches.
type rectOut struct {
	Degree  int            `json:"degree" yaml:"degree"`
	Poles   [][][3]float64 `json:"poles" yaml:"poles,flow"`
	Weights [][]float64    `json:"weights,omitempty" yaml:"weights,omitempty,flow"`
}

type failure struct {
	Index int    `json:"index" yaml:"index"`
	Error string `json:"error" yaml:"error"`
}

func newOutput(opts tripatch.Options, results []tripatch.Result) output {
	out := output{Options: opts, Patches: []patchOut{}}
	for _, r := range results {
		if r.Err != nil {
			out.Failed = append(out.Failed, failure{Index: r.Index, Error: r.Err.Error()})
			continue
		}
		p := patchOut{Index: r.Index}
		for _, rect := range r.Patch.Rects {
			p.Rects = append(p.Rects, newRectOut(rect))
		}
		out.Patches = append(out.Patches, p)
	}
	return out
}

func newRectOut(r tripatch.RectPatch) rectOut {
	switch r := r.(type) {
	case tripatch.CubicRect:
		out := rectOut{Degree: 3}
		for _, row := range r.Poles {
			out.Poles = append(out.Poles, points(row[:]))
		}
		return out
	case tripatch.QuadRect:
		out := rectOut{Degree: 2}
		for i, row := range r.Poles {
			out.Poles = append(out.Poles, points(row[:]))
			out.Weights = append(out.Weights, r.Weights[i][:])
		}
		return out
	default:
		panic(fmt.Sprintf("unhandled patch %T", r))
	}
}

func points(pts []tripatch.Point) [][3]float64 {
	out := make([][3]float64, len(pts))
	for i, p := range pts {
		out[i] = [3]float64{p.X, p.Y, p.Z}
	}
	return out
}

func (o output) write(w io.Writer, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(o)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(o); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}
