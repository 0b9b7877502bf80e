package denoise

import "fmt"

// BufferSet holds the color image to denoise and its optional guide buffers.
//
// All present buffers must share the color buffer's width and height;
// channel counts may differ. A nil guide is absent and its weight factor is
// a neutral 1. The filter only reads the buffers and keeps no reference to
// them after Run returns.
type BufferSet struct {
	// Color is the noisy image. Required.
	Color *Image

	// Albedo is the surface albedo guide.
	Albedo *Image

	// Normal is the shading normal guide.
	Normal *Image

	// Depth is the depth guide.
	Depth *Image
}

// Validate checks that the color buffer is present and that every guide
// matches its size.
func (s BufferSet) Validate() error {
	if s.Color == nil {
		return fmt.Errorf("%w: color buffer is required", ErrInvalidParameter)
	}
	if err := CheckDimensions(s.Color.width, s.Color.height, s.Color.channels); err != nil {
		return fmt.Errorf("color: %w", err)
	}

	guides := []struct {
		name string
		img  *Image
	}{
		{"albedo", s.Albedo},
		{"normal", s.Normal},
		{"depth", s.Depth},
	}
	for _, g := range guides {
		if g.img == nil {
			continue
		}
		if g.img.channels < 1 || g.img.channels > MaxChannels {
			return fmt.Errorf("%s: %w: %d channels", g.name, ErrInvalidDimensions, g.img.channels)
		}
		if g.img.SameSize(s.Color) {
			continue
		}
		return fmt.Errorf("%w: %s is %dx%d, color is %dx%d",
			ErrDimensionMismatch, g.name,
			g.img.Width(), g.img.Height(),
			s.Color.Width(), s.Color.Height())
	}

	return nil
}

// Guides returns the number of present guide buffers.
func (s BufferSet) Guides() int {
	n := 0
	for _, g := range []*Image{s.Albedo, s.Normal, s.Depth} {
		if g != nil {
			n++
		}
	}
	return n
}
