package denoise

import "errors"

// Errors returned by the denoiser.
var (
	// ErrDimensionMismatch is returned when a guide buffer's width or height
	// differs from the color buffer's.
	ErrDimensionMismatch = errors.New("denoise: dimension mismatch")

	// ErrInvalidParameter is returned for a negative radius, a negative or
	// non-finite inverse sigma, an unknown boundary mode or a missing color
	// buffer.
	ErrInvalidParameter = errors.New("denoise: invalid parameter")

	// ErrInvalidDimensions is returned when an image is created with a
	// non-positive size or an unsupported channel count.
	ErrInvalidDimensions = errors.New("denoise: invalid image dimensions")

	// ErrDataTooSmall is returned when wrapped pixel data is shorter than
	// width*height*channels.
	ErrDataTooSmall = errors.New("denoise: data buffer too small")
)
