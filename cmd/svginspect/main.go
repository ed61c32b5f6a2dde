// Command svginspect prints the structural report of SVG files:
// canvas, rectangles, element count, coverage and issues.
//
//	svginspect [flags] FILE...
//
// Use - to read a document from the standard input.
// The exit status is 1 if at least one file could not be inspected.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"

	"github.com/benoitkugler/svgaudit/svginspect"
	"github.com/benoitkugler/svgaudit/svgraster"
	"github.com/benoitkugler/svgaudit/svgtree"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"
)

var errFailedFiles = errors.New("some files could not be inspected")

func main() {
	cmd := newRootCmd(os.Stdin, os.Stdout, os.Stderr, os.Getenv)
	if err := cmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

// report is the output for one file.
type report struct {
	Source       string              `json:"source" yaml:"source"`
	Result       *svginspect.Result  `json:"result,omitempty" yaml:"result,omitempty"`
	Palette      []svginspect.Swatch `json:"palette,omitempty" yaml:"palette,omitempty"`
	PaintedRatio *float64            `json:"paintedRatio,omitempty" yaml:"paintedRatio,omitempty"`
	ErrorKind    string              `json:"errorKind,omitempty" yaml:"errorKind,omitempty"`
	Error        string              `json:"error,omitempty" yaml:"error,omitempty"`
}

func newRootCmd(stdin io.Reader, stdout, stderr io.Writer, getenv func(string) string) *cobra.Command {
	var (
		configPath string
		flagCfg    = DefaultConfig()
	)
	cmd := &cobra.Command{
		Use:           "svginspect [flags] FILE...",
		Short:         "Report the structure of SVG documents",
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := LoadConfig(configPath, getenv)
			if err != nil {
				fmt.Fprintln(stderr, "svginspect:", err)
				return err
			}
			cfg.override(cmd, flagCfg)
			if err := cfg.Validate(); err != nil {
				fmt.Fprintln(stderr, "svginspect:", err)
				return err
			}
			lvl, _ := cfg.level()
			logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: lvl}))

			reports := inspectAll(cmd.Context(), cfg, args, stdin, logger)
			if err := writeReports(stdout, cfg.Format, reports); err != nil {
				fmt.Fprintln(stderr, "svginspect:", err)
				return err
			}
			for _, r := range reports {
				if r.Error != "" {
					return errFailedFiles
				}
			}
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&configPath, "config", "c", "", "YAML configuration file")
	flags.StringVar(&flagCfg.Builder, "builder", flagCfg.Builder, "markup parser: xml or lex")
	flags.IntVar(&flagCfg.MaxDepth, "max-depth", flagCfg.MaxDepth, "maximum nesting level visited")
	flags.StringVarP(&flagCfg.Format, "format", "f", flagCfg.Format, "output format: json or yaml")
	flags.IntVarP(&flagCfg.Jobs, "jobs", "j", flagCfg.Jobs, "number of files inspected in parallel")
	flags.BoolVar(&flagCfg.Palette, "palette", flagCfg.Palette, "summarize the fill colors")
	flags.BoolVar(&flagCfg.Raster, "raster", flagCfg.Raster, "compute the painted ratio by rasterization")
	flags.IntVar(&flagCfg.RasterSize, "raster-size", flagCfg.RasterSize, "longest side of the raster mask, in pixels")
	flags.StringVar(&flagCfg.LogLevel, "log-level", flagCfg.LogLevel, "debug, info, warn or error")
	return cmd
}

// override copies the flags explicitly set on the command line.
func (cfg *Config) override(cmd *cobra.Command, flagCfg Config) {
	flags := cmd.Flags()
	if flags.Changed("builder") {
		cfg.Builder = flagCfg.Builder
	}
	if flags.Changed("max-depth") {
		cfg.MaxDepth = flagCfg.MaxDepth
	}
	if flags.Changed("format") {
		cfg.Format = flagCfg.Format
	}
	if flags.Changed("jobs") {
		cfg.Jobs = flagCfg.Jobs
	}
	if flags.Changed("palette") {
		cfg.Palette = flagCfg.Palette
	}
	if flags.Changed("raster") {
		cfg.Raster = flagCfg.Raster
	}
	if flags.Changed("raster-size") {
		cfg.RasterSize = flagCfg.RasterSize
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = flagCfg.LogLevel
	}
}

// inspectAll runs one inspection per file, at most cfg.Jobs at a time.
// The reports are in the order of `names`.
// The standard input is read once, and shared by every "-" argument.
func inspectAll(ctx context.Context, cfg Config, names []string, stdin io.Reader, logger *slog.Logger) []report {
	builder, _ := svgtree.ByName(cfg.Builder)
	readStdin := sync.OnceValues(func() ([]byte, error) { return io.ReadAll(stdin) })
	openStdin := func() io.Reader {
		data, err := readStdin()
		return &bufferedInput{data: data, err: err}
	}

	reports := make([]report, len(names))
	var g errgroup.Group
	g.SetLimit(cfg.Jobs)
	for i, name := range names {
		i, name := i, name // per-iteration copies (go 1.21 loop semantics)
		g.Go(func() error {
			reports[i] = inspectOne(ctx, cfg, builder, name, openStdin, logger.With("source", name))
			return nil
		})
	}
	_ = g.Wait() // failures are stored in the reports
	return reports
}

// bufferedInput replays `data`, then returns `err` (io.EOF if nil).
type bufferedInput struct {
	data []byte
	err  error
}

func (b *bufferedInput) Read(p []byte) (int, error) {
	if len(b.data) == 0 {
		if b.err != nil {
			return 0, b.err
		}
		return 0, io.EOF
	}
	n := copy(p, b.data)
	b.data = b.data[n:]
	return n, nil
}

func inspectOne(ctx context.Context, cfg Config, builder svgtree.Builder, name string, openStdin func() io.Reader, logger *slog.Logger) report {
	in := svginspect.New(svginspect.Options{
		Builder:  builder,
		MaxDepth: cfg.MaxDepth,
		Observer: svginspect.LogObserver{Logger: logger},
	})
	var (
		res *svginspect.Result
		err error
	)
	if name == "-" {
		res, err = in.InspectReader(ctx, openStdin(), "<stdin>")
	} else {
		res, err = in.InspectFile(ctx, name)
	}
	out := report{Source: name}
	if err != nil {
		logger.Error("inspection failed", "error", err)
		out.Error = err.Error()
		if kind := svginspect.KindOf(err); kind != 0 {
			out.ErrorKind = kind.String()
		}
		return out
	}
	logger.Info("inspected", "elements", res.TotalElementCount, "rectangles", len(res.Items), "issues", len(res.Issues))

	out.Result = res
	if cfg.Palette {
		out.Palette = svginspect.Palette(res.Items)
	}
	if cfg.Raster {
		ratio := svgraster.PaintedRatio(res, cfg.RasterSize)
		out.PaintedRatio = &ratio
	}
	return out
}

// writeReports encodes all the reports as one list.
// A report which can't be encoded is replaced, in place,
// by a failed report, so that the other ones are still written.
func writeReports(w io.Writer, format string, reports []report) error {
	for i, r := range reports {
		if _, err := json.Marshal(r); err != nil {
			reports[i] = report{
				Source:    r.Source,
				ErrorKind: svginspect.ExtractionFailure.String(),
				Error:     fmt.Sprintf("encoding report: %s", err),
			}
		}
	}
	switch format {
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(reports); err != nil {
			return err
		}
		return enc.Close()
	default:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(reports)
	}
}
