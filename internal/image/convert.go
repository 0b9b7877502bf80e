package image

import (
	"image"
	stdcolor "image/color"

	"github.com/gogpu/denoise"
	"github.com/gogpu/denoise/internal/color"
)

// decodedChannels is the channel count of images converted from integer
// formats. Alpha is dropped and grayscale is replicated.
const decodedChannels = 3

// FromStdImage converts a standard library image to a 3-channel float image,
// decoding stored values through tr.
func FromStdImage(img image.Image, tr color.Transfer) (*denoise.Image, error) {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	out, err := denoise.NewImage(width, height, decodedChannels)
	if err != nil {
		return nil, err
	}
	data := out.Data()

	switch src := img.(type) {
	case *image.Gray:
		for y := range height {
			row := src.Pix[y*src.Stride : y*src.Stride+width]
			for x, v := range row {
				f := color.Decode8(tr, v)
				off := (y*width + x) * decodedChannels
				data[off], data[off+1], data[off+2] = f, f, f
			}
		}

	case *image.NRGBA:
		for y := range height {
			row := src.Pix[y*src.Stride : y*src.Stride+width*4]
			for x := range width {
				off := (y*width + x) * decodedChannels
				data[off] = color.Decode8(tr, row[x*4])
				data[off+1] = color.Decode8(tr, row[x*4+1])
				data[off+2] = color.Decode8(tr, row[x*4+2])
			}
		}

	default:
		// Generic path through 16-bit non-premultiplied color.
		for y := range height {
			for x := range width {
				c := stdcolor.NRGBA64Model.Convert(img.At(bounds.Min.X+x, bounds.Min.Y+y)).(stdcolor.NRGBA64)
				off := (y*width + x) * decodedChannels
				data[off] = color.Decode16(tr, c.R)
				data[off+1] = color.Decode16(tr, c.G)
				data[off+2] = color.Decode16(tr, c.B)
			}
		}
	}

	return out, nil
}

// rgb returns the red, green and blue values of a pixel with any channel
// count: one channel is gray, two are red and green.
func rgb(px []float32) (r, g, b float32) {
	switch len(px) {
	case 1:
		return px[0], px[0], px[0]
	case 2:
		return px[0], px[1], 0
	default:
		return px[0], px[1], px[2]
	}
}

// ToStdImage converts a float image to an opaque standard library image with
// the given stored precision (8 or 16 bits), encoding values through tr.
// Single-channel images become grayscale.
func ToStdImage(img *denoise.Image, bits int, tr color.Transfer) image.Image {
	width, height := img.Bounds()
	rect := image.Rect(0, 0, width, height)
	gray := img.Channels() == 1

	switch {
	case bits > 8 && gray:
		out := image.NewGray16(rect)
		for y := range height {
			for x := range width {
				out.SetGray16(x, y, stdcolor.Gray16{Y: color.Encode16(tr, img.Pixel(x, y)[0])})
			}
		}
		return out

	case bits > 8:
		out := image.NewNRGBA64(rect)
		for y := range height {
			for x := range width {
				r, g, b := rgb(img.Pixel(x, y))
				out.SetNRGBA64(x, y, stdcolor.NRGBA64{
					R: color.Encode16(tr, r),
					G: color.Encode16(tr, g),
					B: color.Encode16(tr, b),
					A: 0xffff,
				})
			}
		}
		return out

	case gray:
		out := image.NewGray(rect)
		for y := range height {
			row := out.Pix[y*out.Stride:]
			for x := range width {
				row[x] = color.Encode8(tr, img.Pixel(x, y)[0])
			}
		}
		return out

	default:
		out := image.NewNRGBA(rect)
		for y := range height {
			row := out.Pix[y*out.Stride:]
			for x := range width {
				r, g, b := rgb(img.Pixel(x, y))
				row[x*4] = color.Encode8(tr, r)
				row[x*4+1] = color.Encode8(tr, g)
				row[x*4+2] = color.Encode8(tr, b)
				row[x*4+3] = 0xff
			}
		}
		return out
	}
}
