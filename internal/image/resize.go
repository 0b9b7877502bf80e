package image

import (
	"image"

	"github.com/nfnt/resize"
)

// Resample returns img scaled to width x height with a Lanczos-3 filter.
// img is returned unchanged when it already has that size.
func Resample(img image.Image, width, height int) image.Image {
	b := img.Bounds()
	if b.Dx() == width && b.Dy() == height {
		return img
	}
	return resize.Resize(uint(width), uint(height), img, resize.Lanczos3)
}
