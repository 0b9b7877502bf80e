package denoise

import (
	"fmt"
	"math"
)

// Default filter parameters.
const (
	DefaultRadius      = 3
	DefaultPixelSigma  = 0.1
	DefaultAlbedoSigma = 10.0
	DefaultNormalSigma = 10.0
	DefaultDepthSigma  = 10.0
)

// Config holds the cross-bilateral filter parameters.
//
// The sigma values are inverse bandwidths: larger values narrow the Gaussian
// and make the corresponding term more selective, zero disables it.
// Config is an immutable value; create it with NewConfig.
type Config struct {
	radius      int
	pixelSigma  float64
	albedoSigma float64
	normalSigma float64
	depthSigma  float64
	boundary    Boundary
}

// Option configures a Config during creation.
//
// Example:
//
//	cfg, err := denoise.NewConfig(
//	    denoise.WithRadius(5),
//	    denoise.WithDepthSigma(0), // ignore depth
//	)
type Option func(*Config)

// DefaultConfig returns the default configuration: radius 3, inverse sigma
// 0.1 for pixel distance and 10 for albedo, normal and depth, wrapped
// boundaries.
func DefaultConfig() Config {
	return Config{
		radius:      DefaultRadius,
		pixelSigma:  DefaultPixelSigma,
		albedoSigma: DefaultAlbedoSigma,
		normalSigma: DefaultNormalSigma,
		depthSigma:  DefaultDepthSigma,
		boundary:    BoundaryWrap,
	}
}

// NewConfig applies opts on top of the defaults and validates the result.
// Only parameters without an option keep their default; an out-of-range
// value is never replaced by a default and fails with ErrInvalidParameter.
func NewConfig(opts ...Option) (Config, error) {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if c.radius < 0 {
		return fmt.Errorf("%w: radius %d is negative", ErrInvalidParameter, c.radius)
	}

	sigmas := []struct {
		name  string
		value float64
	}{
		{"pixel", c.pixelSigma},
		{"albedo", c.albedoSigma},
		{"normal", c.normalSigma},
		{"depth", c.depthSigma},
	}
	for _, s := range sigmas {
		if math.IsNaN(s.value) || math.IsInf(s.value, 0) {
			return fmt.Errorf("%w: %s inverse sigma %v is not finite", ErrInvalidParameter, s.name, s.value)
		}
		if s.value < 0 {
			return fmt.Errorf("%w: %s inverse sigma %v is negative", ErrInvalidParameter, s.name, s.value)
		}
	}

	if !c.boundary.IsValid() {
		return fmt.Errorf("%w: unknown boundary %v", ErrInvalidParameter, c.boundary)
	}

	return nil
}

// WithRadius sets the window radius. The window is (2r+1)x(2r+1) pixels.
func WithRadius(r int) Option {
	return func(c *Config) {
		c.radius = r
	}
}

// WithPixelSigma sets the inverse sigma of the spatial term.
func WithPixelSigma(s float64) Option {
	return func(c *Config) {
		c.pixelSigma = s
	}
}

// WithAlbedoSigma sets the inverse sigma of the albedo term.
func WithAlbedoSigma(s float64) Option {
	return func(c *Config) {
		c.albedoSigma = s
	}
}

// WithNormalSigma sets the inverse sigma of the normal term.
func WithNormalSigma(s float64) Option {
	return func(c *Config) {
		c.normalSigma = s
	}
}

// WithDepthSigma sets the inverse sigma of the depth term.
func WithDepthSigma(s float64) Option {
	return func(c *Config) {
		c.depthSigma = s
	}
}

// WithBoundary sets the boundary mode.
func WithBoundary(b Boundary) Option {
	return func(c *Config) {
		c.boundary = b
	}
}

// Radius returns the window radius.
func (c Config) Radius() int { return c.radius }

// WindowSize returns the window edge length, 2*Radius()+1.
func (c Config) WindowSize() int { return 2*c.radius + 1 }

// PixelSigma returns the inverse sigma of the spatial term.
func (c Config) PixelSigma() float64 { return c.pixelSigma }

// AlbedoSigma returns the inverse sigma of the albedo term.
func (c Config) AlbedoSigma() float64 { return c.albedoSigma }

// NormalSigma returns the inverse sigma of the normal term.
func (c Config) NormalSigma() float64 { return c.normalSigma }

// DepthSigma returns the inverse sigma of the depth term.
func (c Config) DepthSigma() float64 { return c.depthSigma }

// Boundary returns the boundary mode.
func (c Config) Boundary() Boundary { return c.boundary }

func (c Config) String() string {
	return fmt.Sprintf("radius=%d pixel=%g albedo=%g normal=%g depth=%g boundary=%s",
		c.radius, c.pixelSigma, c.albedoSigma, c.normalSigma, c.depthSigma, c.boundary)
}
