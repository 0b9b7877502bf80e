package denoise

import "fmt"

// Image size limits.
const (
	// MaxChannels is the largest number of channels an Image may carry.
	MaxChannels = 4

	// MaxDimension is the largest width or height of an Image.
	MaxDimension = 1 << 16

	// MaxPixels is the largest width*height of an Image (256 Mpx).
	MaxPixels = 1 << 28
)

// Image is a floating-point image with 1 to MaxChannels interleaved channels.
//
// Pixel (x, y) occupies Data()[(y*width+x)*channels:][:channels]. Values are
// not clamped; HDR radiance is stored as is.
//
// Thread safety: Image is safe for concurrent reads. Writes require
// external synchronization.
type Image struct {
	data     []float32
	width    int
	height   int
	channels int
}

// NewImage creates a zero-filled image.
func NewImage(width, height, channels int) (*Image, error) {
	if err := CheckDimensions(width, height, channels); err != nil {
		return nil, err
	}
	return &Image{
		data:     make([]float32, width*height*channels),
		width:    width,
		height:   height,
		channels: channels,
	}, nil
}

// NewImageFromData wraps existing interleaved data without copying.
// The caller must keep data alive and unmodified while the image is in use.
func NewImageFromData(width, height, channels int, data []float32) (*Image, error) {
	if err := CheckDimensions(width, height, channels); err != nil {
		return nil, err
	}
	n := width * height * channels
	if len(data) < n {
		return nil, fmt.Errorf("%w: have %d values, need %d", ErrDataTooSmall, len(data), n)
	}
	return &Image{
		data:     data[:n],
		width:    width,
		height:   height,
		channels: channels,
	}, nil
}

// CheckDimensions reports whether an image of the given size can be
// created. It fails with ErrInvalidDimensions for a non-positive size, a
// side above MaxDimension, more than MaxPixels pixels or a channel count
// outside 1..MaxChannels. Decoders call it before allocating pixel data.
func CheckDimensions(width, height, channels int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	if width > MaxDimension || height > MaxDimension || int64(width)*int64(height) > MaxPixels {
		return fmt.Errorf("%w: %dx%d exceeds the size limit", ErrInvalidDimensions, width, height)
	}
	if channels < 1 || channels > MaxChannels {
		return fmt.Errorf("%w: %d channels", ErrInvalidDimensions, channels)
	}
	return nil
}

// Width returns the image width in pixels.
func (m *Image) Width() int {
	return m.width
}

// Height returns the image height in pixels.
func (m *Image) Height() int {
	return m.height
}

// Channels returns the number of channels per pixel.
func (m *Image) Channels() int {
	return m.channels
}

// Bounds returns the image dimensions as (width, height).
func (m *Image) Bounds() (int, int) {
	return m.width, m.height
}

// Data returns the interleaved pixel data.
func (m *Image) Data() []float32 {
	return m.data
}

// SameSize reports whether m and other have the same width and height.
// Channel counts are not compared.
func (m *Image) SameSize(other *Image) bool {
	return m.width == other.width && m.height == other.height
}

// Pixel returns the channels of pixel (x, y) as a view into the image data.
// Coordinates must be in range; the filter resolves neighbor coordinates
// through its boundary mode before calling Pixel.
func (m *Image) Pixel(x, y int) []float32 {
	off := (y*m.width + x) * m.channels
	return m.data[off : off+m.channels : off+m.channels]
}

// SetPixel writes pixel (x, y). Missing trailing values are left unchanged
// and extra values are ignored.
func (m *Image) SetPixel(x, y int, values ...float32) {
	copy(m.Pixel(x, y), values)
}

// Mean returns the unweighted average of the channels of pixel (x, y).
func (m *Image) Mean(x, y int) float64 {
	var sum float64
	for _, v := range m.Pixel(x, y) {
		sum += float64(v)
	}
	return sum / float64(m.channels)
}

// Fill sets every pixel to values.
func (m *Image) Fill(values ...float32) {
	if len(values) == 0 {
		return
	}
	px := make([]float32, m.channels)
	copy(px, values)
	for off := 0; off < len(m.data); off += m.channels {
		copy(m.data[off:off+m.channels], px)
	}
}

// Clone creates a deep copy of the image.
func (m *Image) Clone() *Image {
	data := make([]float32, len(m.data))
	copy(data, m.data)
	return &Image{
		data:     data,
		width:    m.width,
		height:   m.height,
		channels: m.channels,
	}
}

// String returns a short description such as "640x480x3".
func (m *Image) String() string {
	return fmt.Sprintf("%dx%dx%d", m.width, m.height, m.channels)
}
