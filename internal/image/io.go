package image

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"

	"github.com/deepteams/webp"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"

	"github.com/gogpu/denoise"
	"github.com/gogpu/denoise/internal/color"
)

// I/O errors.
var (
	// ErrUnsupportedFormat is returned when an operation is not available
	// for the image format.
	ErrUnsupportedFormat = errors.New("image: unsupported format")

	// ErrEmptyData is returned when image data is empty.
	ErrEmptyData = errors.New("image: empty data")
)

// DefaultJPEGQuality is the quality used when saving JPEG files.
const DefaultJPEGQuality = 95

// Load loads an image from path. The format is detected from the content,
// so EXR, PFM and PPM files load regardless of their extension. Integer
// formats are decoded through tr; float values are returned unchanged.
func Load(path string, tr color.Transfer) (*denoise.Image, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("image: open file: %w", err)
	}
	defer func() { _ = f.Close() }()

	return Decode(f, tr)
}

// LoadResized loads an integer-format image and resamples it to
// width x height if its size differs. Float input and PPM fail with
// ErrUnsupportedFormat.
func LoadResized(path string, width, height int, tr color.Transfer) (*denoise.Image, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("image: open file: %w", err)
	}
	defer func() { _ = f.Close() }()

	br := bufio.NewReader(f)
	if isPFM(br) || isEXR(br) || isPPM(br) {
		return nil, fmt.Errorf("%w: cannot resample %s", ErrUnsupportedFormat, path)
	}

	img, _, err := image.Decode(br)
	if err != nil {
		return nil, fmt.Errorf("image: decode: %w", err)
	}
	return FromStdImage(Resample(img, width, height), tr)
}

// Decode decodes an image from r, auto-detecting the format.
func Decode(r io.Reader, tr color.Transfer) (*denoise.Image, error) {
	br := bufio.NewReader(r)
	if _, err := br.Peek(1); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmptyData
		}
		return nil, fmt.Errorf("image: read: %w", err)
	}

	switch {
	case isPFM(br):
		return DecodePFM(br)
	case isPPM(br):
		return DecodePPM(br, tr)
	case isEXR(br):
		data, err := io.ReadAll(br)
		if err != nil {
			return nil, fmt.Errorf("image: read: %w", err)
		}
		return DecodeEXR(bytes.NewReader(data), int64(len(data)))
	}

	img, _, err := image.Decode(br)
	if err != nil {
		return nil, fmt.Errorf("image: decode: %w", err)
	}
	return FromStdImage(img, tr)
}

// Save writes img to path in the format implied by the extension and
// returns the path actually written (see OutputPath). A rewritten path is
// logged at warn level through denoise.Logger.
func Save(path string, img *denoise.Image, tr color.Transfer) (string, error) {
	requested := path
	path, format := OutputPath(path)
	if path != requested {
		denoise.Logger().Warn("unknown output extension, writing default format",
			"requested", requested, "output", path, "format", format)
	}

	f, err := os.Create(filepath.Clean(path))
	if err != nil {
		return "", fmt.Errorf("image: create file: %w", err)
	}

	bw := bufio.NewWriter(f)
	if err := Encode(bw, img, format, tr); err != nil {
		_ = f.Close()
		return "", err
	}
	if err := bw.Flush(); err != nil {
		_ = f.Close()
		return "", fmt.Errorf("image: write: %w", err)
	}

	return path, f.Close()
}

// Encode writes img to w in the given format. Integer formats clamp to
// [0, 1] and encode through tr; float formats store raw values. EXR output
// is staged in memory unless w is an io.WriteSeeker.
func Encode(w io.Writer, img *denoise.Image, format Format, tr color.Transfer) error {
	switch format {
	case FormatEXR:
		return encodeEXRTo(w, img)

	case FormatPFM:
		return EncodePFM(w, img)

	case FormatPPM:
		return EncodePPM(w, img, tr)

	case FormatPNG:
		if err := png.Encode(w, ToStdImage(img, 8, tr)); err != nil {
			return fmt.Errorf("image: encode PNG: %w", err)
		}

	case FormatJPEG:
		opts := &jpeg.Options{Quality: DefaultJPEGQuality}
		if err := jpeg.Encode(w, ToStdImage(img, 8, tr), opts); err != nil {
			return fmt.Errorf("image: encode JPEG: %w", err)
		}

	case FormatBMP:
		if err := bmp.Encode(w, ToStdImage(img, 8, tr)); err != nil {
			return fmt.Errorf("image: encode BMP: %w", err)
		}

	case FormatTIFF:
		opts := &tiff.Options{Compression: tiff.Deflate, Predictor: true}
		if err := tiff.Encode(w, ToStdImage(img, 16, tr), opts); err != nil {
			return fmt.Errorf("image: encode TIFF: %w", err)
		}

	case FormatWebP:
		opts := webp.DefaultOptions()
		opts.Lossless = true
		if err := webp.Encode(w, ToStdImage(img, 8, tr), opts); err != nil {
			return fmt.Errorf("image: encode WebP: %w", err)
		}

	default:
		return fmt.Errorf("%w: %v", ErrUnsupportedFormat, format)
	}

	return nil
}
