// Command denoise filters a Monte-Carlo render with a cross-bilateral filter
// guided by optional albedo, normal and depth feature buffers.
//
// Usage:
//
//	denoise [flags] -o output.exr color.exr
//
// Integer formats (PNG, JPEG, BMP, TIFF, WebP, PPM) are read and written as
// sRGB; EXR and PFM values are used as stored. An output path with an
// unknown extension is written as EXR.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/gogpu/denoise"
	"github.com/gogpu/denoise/internal/color"
	"github.com/gogpu/denoise/internal/image"
	"github.com/gogpu/denoise/internal/report"
)

func main() {
	if err := run(os.Args[1:], os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		os.Exit(1)
	}
}

// options holds the parsed command line.
type options struct {
	input  string
	output string
	albedo string
	normal string
	depth  string

	boundary  string
	workers   int
	fitGuides bool
	stats     bool
	verbose   bool

	config []denoise.Option
}

func parseArgs(args []string, stderr io.Writer) (*options, error) {
	fs := flag.NewFlagSet("denoise", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		_, _ = fmt.Fprintf(fs.Output(), "Usage: denoise [flags] -o output color-image\n\nFlags:\n")
		fs.PrintDefaults()
	}

	var (
		o           options
		radius      = fs.Int("r", denoise.DefaultRadius, "filter radius in pixels")
		sigmaPixel  = fs.Float64("sigma-pixel", denoise.DefaultPixelSigma, "inverse sigma of the spatial term")
		sigmaAlbedo = fs.Float64("sigma-albedo", denoise.DefaultAlbedoSigma, "inverse sigma of the albedo term")
		sigmaNormal = fs.Float64("sigma-normal", denoise.DefaultNormalSigma, "inverse sigma of the normal term")
		sigmaDepth  = fs.Float64("sigma-depth", denoise.DefaultDepthSigma, "inverse sigma of the depth term")
	)
	fs.StringVar(&o.output, "o", "", "output image `file` (required)")
	fs.StringVar(&o.albedo, "a", "", "albedo guide image `file`")
	fs.StringVar(&o.normal, "n", "", "normal guide image `file`")
	fs.StringVar(&o.depth, "d", "", "depth guide image `file`")
	fs.StringVar(&o.boundary, "boundary", denoise.BoundaryWrap.String(), "out-of-image sampling: wrap, clamp or mirror")
	fs.IntVar(&o.workers, "workers", 0, "worker goroutines (0 uses all CPUs)")
	fs.BoolVar(&o.fitGuides, "fit-guides", false, "resample guides to the color image size")
	fs.BoolVar(&o.stats, "stats", false, "log noise statistics of the result")
	fs.BoolVar(&o.verbose, "v", false, "verbose logging")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if fs.NArg() != 1 {
		fs.Usage()
		return nil, fmt.Errorf("expected one input image, got %d arguments", fs.NArg())
	}
	o.input = fs.Arg(0)
	if o.output == "" {
		return nil, errors.New("no output file specified, use -o filename")
	}

	// Only flags given on the command line override library defaults.
	var err error
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "r":
			o.config = append(o.config, denoise.WithRadius(*radius))
		case "sigma-pixel":
			o.config = append(o.config, denoise.WithPixelSigma(*sigmaPixel))
		case "sigma-albedo":
			o.config = append(o.config, denoise.WithAlbedoSigma(*sigmaAlbedo))
		case "sigma-normal":
			o.config = append(o.config, denoise.WithNormalSigma(*sigmaNormal))
		case "sigma-depth":
			o.config = append(o.config, denoise.WithDepthSigma(*sigmaDepth))
		case "boundary":
			var b denoise.Boundary
			if b, err = denoise.ParseBoundary(o.boundary); err == nil {
				o.config = append(o.config, denoise.WithBoundary(b))
			}
		}
	})
	if err != nil {
		return nil, err
	}

	return &o, nil
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func run(args []string, stderr io.Writer) error {
	o, err := parseArgs(args, stderr)
	if err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			_, _ = fmt.Fprintf(stderr, "denoise: %v\n", err)
		}
		return err
	}

	log := newLogger(stderr, o.verbose)
	denoise.SetLogger(log)

	if err := denoiseFile(o, log); err != nil {
		log.Error("denoise failed", "err", err)
		return err
	}
	return nil
}

func denoiseFile(o *options, log *slog.Logger) error {
	cfg, err := denoise.NewConfig(o.config...)
	if err != nil {
		return err
	}

	set, err := loadBuffers(o)
	if err != nil {
		return err
	}

	var f denoise.Denoiser = denoise.NewCrossBilateral(cfg, denoise.WithWorkers(o.workers))

	start := time.Now()
	out, err := f.Denoise(set)
	if err != nil {
		return err
	}
	log.Info("denoised", "input", o.input, "image", set.Color.String(), "guides", set.Guides(),
		"config", cfg.String(), "elapsed", time.Since(start))

	if o.stats {
		s, err := report.Summarize(set.Color, out)
		if err != nil {
			return err
		}
		log.LogAttrs(context.Background(), slog.LevelInfo, "noise statistics", s.LogAttrs()...)
	}

	written, err := image.Save(o.output, out, color.TransferSRGB)
	if err != nil {
		return err
	}
	log.Info("saved", "output", written)
	return nil
}

// loadBuffers loads the color image and every guide that was named on the
// command line. Each guide is loaded independently of the others.
func loadBuffers(o *options) (denoise.BufferSet, error) {
	var set denoise.BufferSet

	c, err := image.Load(o.input, color.TransferSRGB)
	if err != nil {
		return set, fmt.Errorf("color %s: %w", o.input, err)
	}
	set.Color = c

	guides := []struct {
		name string
		path string
		tr   color.Transfer
		dst  **denoise.Image
	}{
		{"albedo", o.albedo, color.TransferSRGB, &set.Albedo},
		{"normal", o.normal, color.TransferLinear, &set.Normal},
		{"depth", o.depth, color.TransferLinear, &set.Depth},
	}

	for _, g := range guides {
		if g.path == "" {
			continue
		}

		var img *denoise.Image
		if o.fitGuides {
			img, err = image.LoadResized(g.path, c.Width(), c.Height(), g.tr)
		} else {
			img, err = image.Load(g.path, g.tr)
		}
		if err != nil {
			return set, fmt.Errorf("%s %s: %w", g.name, g.path, err)
		}
		*g.dst = img
	}

	return set, nil
}
