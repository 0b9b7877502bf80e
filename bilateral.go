package denoise

import (
	"math"
	"time"

	"github.com/gogpu/denoise/internal/filter"
	"github.com/gogpu/denoise/internal/parallel"
)

// CrossBilateral is the cross-bilateral denoising filter.
//
// A CrossBilateral holds only its configuration and may be used for any
// number of concurrent Run calls.
type CrossBilateral struct {
	cfg      Config
	workers  int
	tileSize int
}

// FilterOption configures a CrossBilateral.
type FilterOption func(*CrossBilateral)

// WithWorkers sets the number of worker goroutines per Run.
// Zero or negative uses GOMAXPROCS; 1 runs on the calling goroutine.
func WithWorkers(n int) FilterOption {
	return func(f *CrossBilateral) {
		f.workers = n
	}
}

// WithTileSize sets the edge length of the tiles the output is split into.
// Zero or negative uses the default of 64 pixels.
func WithTileSize(n int) FilterOption {
	return func(f *CrossBilateral) {
		f.tileSize = n
	}
}

// NewCrossBilateral creates a filter for cfg.
func NewCrossBilateral(cfg Config, opts ...FilterOption) *CrossBilateral {
	f := &CrossBilateral{cfg: cfg, tileSize: parallel.TileSize}
	for _, opt := range opts {
		opt(f)
	}
	if f.tileSize <= 0 {
		f.tileSize = parallel.TileSize
	}
	return f
}

// Config returns the filter configuration.
func (f *CrossBilateral) Config() Config {
	return f.cfg
}

// Run denoises set.Color and returns a new image with the color buffer's
// size and channel count.
//
// All preconditions are checked before any pixel is processed: an invalid
// configuration fails with ErrInvalidParameter and a guide of the wrong
// size with ErrDimensionMismatch. No partial output is returned.
func (f *CrossBilateral) Run(set BufferSet) (*Image, error) {
	if err := f.cfg.validate(); err != nil {
		return nil, err
	}
	if err := set.Validate(); err != nil {
		return nil, err
	}

	color := set.Color
	out, err := NewImage(color.width, color.height, color.channels)
	if err != nil {
		return nil, err
	}

	p := newPass(f.cfg, set)
	grid := parallel.NewTileGridSize(color.width, color.height, f.tileSize)

	var pool *parallel.WorkerPool
	if f.workers != 1 && grid.TileCount() > 1 {
		pool = parallel.NewWorkerPool(f.workers)
		defer pool.Close()
	}

	log := Logger()
	workers := 1
	if pool != nil {
		workers = pool.Workers()
	}
	log.Debug("denoise: cross bilateral",
		"image", color.String(),
		"guides", set.Guides(),
		"active_guides", len(p.guides),
		"config", f.cfg.String(),
		"workers", workers,
		"tiles", grid.TileCount())

	start := time.Now()
	grid.Execute(pool, func(t parallel.Tile) {
		p.tile(out, t)
	})
	log.Debug("denoise: cross bilateral done", "elapsed", time.Since(start))

	return out, nil
}

// Denoise implements Denoiser.
func (f *CrossBilateral) Denoise(set BufferSet) (*Image, error) {
	return f.Run(set)
}

// Weight returns the combined weight cfg assigns to a neighbor at offset
// (di, dj) whose guide means differ from the center's by the given amounts.
// The result lies in (0, 1]: factors that would underflow are held at the
// smallest positive float64. It is exactly 1 at offset (0, 0) with zero
// differences.
func Weight(cfg Config, di, dj int, albedoDiff, normalDiff, depthDiff float64) float64 {
	w := filter.FloorWeight(math.Exp(-cfg.pixelSigma * float64(di*di+dj*dj)))
	w = filter.FloorWeight(w * filter.RangeWeight(cfg.albedoSigma, albedoDiff))
	w = filter.FloorWeight(w * filter.RangeWeight(cfg.normalSigma, normalDiff))
	w = filter.FloorWeight(w * filter.RangeWeight(cfg.depthSigma, depthDiff))
	return w
}

// guidePlane is a guide buffer collapsed to per-pixel channel means.
type guidePlane struct {
	mean     []float64
	invSigma float64
}

// pass is the read-only state shared by all tiles of one Run.
type pass struct {
	color   *Image
	radius  int
	mode    filter.Mode
	spatial []float64
	guides  []guidePlane
}

func newPass(cfg Config, set BufferSet) *pass {
	p := &pass{
		color:   set.Color,
		radius:  cfg.radius,
		mode:    cfg.boundary.mode(),
		spatial: filter.CachedSpatialKernel(cfg.radius, cfg.pixelSigma),
	}

	guides := []struct {
		img      *Image
		invSigma float64
	}{
		{set.Albedo, cfg.albedoSigma},
		{set.Normal, cfg.normalSigma},
		{set.Depth, cfg.depthSigma},
	}
	for _, g := range guides {
		// An absent guide or a disabled term contributes a factor of 1.
		if g.img == nil || g.invSigma == 0 {
			continue
		}
		p.guides = append(p.guides, guidePlane{
			mean:     filter.MeanPlane(g.img.data, g.img.channels),
			invSigma: g.invSigma,
		})
	}

	return p
}

// tile computes every output pixel inside t. It reads only shared
// immutable state and writes only pixels of t.
func (p *pass) tile(out *Image, t parallel.Tile) {
	width, height := p.color.width, p.color.height
	channels := p.color.channels
	src := p.color.data
	dst := out.data
	size := filter.WindowSize(p.radius)

	cols := make([]int, size)
	rows := make([]int, size)

	for y := t.Y; y < t.Y+t.Height; y++ {
		rows = filter.ResolveTable(rows, p.mode, y, p.radius, height)

		for x := t.X; x < t.X+t.Width; x++ {
			cols = filter.ResolveTable(cols, p.mode, x, p.radius, width)
			center := y*width + x

			var acc [MaxChannels]float64
			var cumWeight float64

			for dj, v := range rows {
				kernelRow := p.spatial[dj*size : (dj+1)*size]
				rowStart := v * width

				for di, u := range cols {
					n := rowStart + u
					w := kernelRow[di]
					for _, g := range p.guides {
						w = filter.FloorWeight(w * filter.RangeWeight(g.invSigma, g.mean[center]-g.mean[n]))
					}

					for c, value := range src[n*channels : (n+1)*channels] {
						acc[c] += w * float64(value)
					}
					cumWeight += w
				}
			}

			// cumWeight >= 1: the center term has weight exactly 1.
			px := dst[center*channels : (center+1)*channels]
			for c := range px {
				px[c] = float32(acc[c] / cumWeight)
			}
		}
	}
}
