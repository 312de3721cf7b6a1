// Command facetpatch replaces the triangles of a faceted body with curved
// Bézier patches and writes their rectangular control grids.
//
// Usage:
//
//	facetpatch build -i mesh.yaml [-c config.toml] [--degree cubic|quadratic|mixed]
//	    [--scheme pinched|packed] [--workers n] [--format json|yaml] [-o out]
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"

	"honnef.co/go/tripatch"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "facetpatch",
		Short:        "Build curved patches from faceted triangles",
		SilenceUsage: true,
	}
	root.AddCommand(newBuildCmd())
	return root
}

type buildFlags struct {
	input   string
	config  string
	output  string
	format  string
	degree  string
	scheme  string
	workers int
	verbose bool
}

func newBuildCmd() *cobra.Command {
	var f buildFlags
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build the patches of all triangles in a mesh",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runBuild(cmd, f)
		},
	}
	fl := cmd.Flags()
	fl.StringVarP(&f.input, "input", "i", "", "YAML mesh to read, - for standard input")
	fl.StringVarP(&f.config, "config", "c", "", "TOML file with build options")
	fl.StringVarP(&f.output, "output", "o", "", "file to write, standard output if empty")
	fl.StringVar(&f.format, "format", "json", "output format, json or yaml")
	fl.StringVar(&f.degree, "degree", "", "degree mode: cubic, quadratic or mixed")
	fl.StringVar(&f.scheme, "scheme", "", "patch scheme: pinched or packed")
	fl.IntVar(&f.workers, "workers", 0, "number of concurrent builds, 0 for GOMAXPROCS")
	fl.BoolVarP(&f.verbose, "verbose", "v", false, "log degenerate edges")
	_ = cmd.MarkFlagRequired("input")
	return cmd
}

// loadOptions starts from the defaults, applies the config file and then
// the flags that were set explicitly.
func loadOptions(cmd *cobra.Command, f buildFlags) (tripatch.Options, error) {
	opts := tripatch.DefaultOptions()
	if f.config != "" {
		b, err := os.ReadFile(f.config)
		if err != nil {
			return opts, err
		}
		if err := toml.Unmarshal(b, &opts); err != nil {
			return opts, fmt.Errorf("%s: %w", f.config, err)
		}
	}
	fl := cmd.Flags()
	if fl.Changed("degree") {
		if err := opts.Degree.UnmarshalText([]byte(f.degree)); err != nil {
			return opts, err
		}
	}
	if fl.Changed("scheme") {
		if err := opts.Scheme.UnmarshalText([]byte(f.scheme)); err != nil {
			return opts, err
		}
	}
	if fl.Changed("workers") {
		opts.Workers = f.workers
	}
	return opts, opts.Validate()
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func runBuild(cmd *cobra.Command, f buildFlags) error {
	log := newLogger(cmd.ErrOrStderr(), f.verbose)
	tripatch.SetLogger(log)
	defer tripatch.SetLogger(nil)

	if f.format != "json" && f.format != "yaml" {
		return fmt.Errorf("unknown output format %q", f.format)
	}
	opts, err := loadOptions(cmd, f)
	if err != nil {
		return err
	}

	var in io.Reader = cmd.InOrStdin()
	if f.input != "-" {
		fh, err := os.Open(f.input)
		if err != nil {
			return err
		}
		defer fh.Close()
		in = fh
	}
	m, err := decodeMesh(in)
	if err != nil {
		return err
	}
	tris, err := m.triangles(log)
	if err != nil {
		return err
	}

	results := tripatch.BuildAll(tris, opts)
	out := newOutput(opts, results)
	for _, fail := range out.Failed {
		log.Warn("triangle skipped", slog.Int("triangle", fail.Index), slog.String("error", fail.Error))
	}
	log.Info("built patches",
		slog.Int("triangles", len(tris)),
		slog.Int("patches", len(out.Patches)),
		slog.Int("failed", len(out.Failed)),
		slog.String("degree", opts.Degree.String()),
		slog.String("scheme", opts.Scheme.String()))

	if f.output == "" {
		return out.write(cmd.OutOrStdout(), f.format)
	}
	fh, err := os.Create(f.output)
	if err != nil {
		return err
	}
	if err := out.write(fh, f.format); err != nil {
		fh.Close()
		return err
	}
	return fh.Close()
}
