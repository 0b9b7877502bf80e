// Package image loads and saves denoiser images.
//
// Integer formats (PNG, JPEG, BMP, TIFF, WebP, PPM) are decoded to three
// float32 channels through a transfer function. OpenEXR and Portable Float
// Map keep raw float32 values with one or three channels.
package image

import (
	"path/filepath"
	"strings"
)

// Format represents an image file format.
type Format uint8

const (
	// FormatPNG is 8-bit PNG.
	FormatPNG Format = iota

	// FormatJPEG is 8-bit baseline JPEG.
	FormatJPEG

	// FormatBMP is 8-bit Windows bitmap.
	FormatBMP

	// FormatTIFF is 16-bit TIFF.
	FormatTIFF

	// FormatWebP is 8-bit WebP, written lossless.
	FormatWebP

	// FormatPFM is Portable Float Map (32-bit float, linear).
	FormatPFM

	// FormatPPM is 8-bit binary Portable Pixmap.
	FormatPPM

	// FormatEXR is OpenEXR (32-bit float, linear, ZIP compressed).
	FormatEXR

	formatCount
)

// DefaultFormat is used for output paths with an unknown extension.
const DefaultFormat = FormatEXR

// FormatInfo contains metadata about a file format.
type FormatInfo struct {
	// Name is the short format name.
	Name string

	// Extensions lists the lower-case file extensions, including the dot.
	// The first entry is canonical.
	Extensions []string

	// BitsPerChannel is the stored precision written by Encode.
	BitsPerChannel int

	// IsFloat indicates the format stores floating-point values.
	IsFloat bool
}

var formatInfoTable = [formatCount]FormatInfo{
	FormatPNG:  {Name: "png", Extensions: []string{".png"}, BitsPerChannel: 8},
	FormatJPEG: {Name: "jpeg", Extensions: []string{".jpg", ".jpeg"}, BitsPerChannel: 8},
	FormatBMP:  {Name: "bmp", Extensions: []string{".bmp"}, BitsPerChannel: 8},
	FormatTIFF: {Name: "tiff", Extensions: []string{".tif", ".tiff"}, BitsPerChannel: 16},
	FormatWebP: {Name: "webp", Extensions: []string{".webp"}, BitsPerChannel: 8},
	FormatPFM:  {Name: "pfm", Extensions: []string{".pfm"}, BitsPerChannel: 32, IsFloat: true},
	FormatPPM:  {Name: "ppm", Extensions: []string{".ppm"}, BitsPerChannel: 8},
	FormatEXR:  {Name: "exr", Extensions: []string{".exr"}, BitsPerChannel: 32, IsFloat: true},
}

// Info returns the FormatInfo for this format.
// Returns an empty FormatInfo for invalid formats.
func (f Format) Info() FormatInfo {
	if !f.IsValid() {
		return FormatInfo{}
	}
	return formatInfoTable[f]
}

// IsValid returns true if the format is a known value.
func (f Format) IsValid() bool {
	return f < formatCount
}

// IsFloat returns true if the format stores floating-point values.
func (f Format) IsFloat() bool {
	return f.Info().IsFloat
}

// String returns the short format name.
func (f Format) String() string {
	if !f.IsValid() {
		return "unknown"
	}
	return formatInfoTable[f].Name
}

// FormatFromPath returns the format implied by the file extension.
func FormatFromPath(path string) (Format, bool) {
	ext := strings.ToLower(filepath.Ext(path))
	for f, info := range formatInfoTable {
		for _, e := range info.Extensions {
			if e == ext {
				return Format(f), true
			}
		}
	}
	return 0, false
}

// OutputPath returns the path and format an image is written to.
// A path with an unknown extension gets the extension of DefaultFormat
// in place of its own.
func OutputPath(path string) (string, Format) {
	if f, ok := FormatFromPath(path); ok {
		return path, f
	}
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + DefaultFormat.Info().Extensions[0], DefaultFormat
}
