package image

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/mrjoshuak/go-openexr/exr"

	"github.com/gogpu/denoise"
)

// ErrInvalidEXR is returned for an OpenEXR file that cannot be decoded.
var ErrInvalidEXR = errors.New("image: invalid EXR")

// Channel names written by EncodeEXR, in the sorted order OpenEXR stores
// them.
var (
	exrColorChannels = []string{"B", "G", "R"}
	exrGrayChannels  = []string{"Y"}
)

// isEXR reports whether br starts with the OpenEXR magic number. It does
// not consume input.
func isEXR(br *bufio.Reader) bool {
	sig, err := br.Peek(len(exr.MagicNumber))
	return err == nil && bytes.Equal(sig, exr.MagicNumber)
}

// exrChannels picks the channels to read from a header. Files with any of
// R, G or B load as three channels (a missing one reads as zero); all
// others load Y, or failing that the first channel, as a single channel.
func exrChannels(cl *exr.ChannelList) ([]string, error) {
	if cl == nil || cl.Len() == 0 {
		return nil, fmt.Errorf("%w: no channels", ErrInvalidEXR)
	}
	if cl.Get("R") != nil || cl.Get("G") != nil || cl.Get("B") != nil {
		return []string{"R", "G", "B"}, nil
	}
	if cl.Get("Y") != nil {
		return exrGrayChannels, nil
	}
	return []string{cl.At(0).Name}, nil
}

// DecodeEXR decodes the first part of an OpenEXR file of the given size.
// Samples of any pixel type are returned as float32 in file order with
// y=0 at the top of the data window. Tiled files are read only when they
// carry RGB channels.
func DecodeEXR(r io.ReaderAt, size int64) (*denoise.Image, error) {
	f, err := exr.OpenReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidEXR, err)
	}
	defer func() { _ = f.Close() }()

	h := f.Header(0)
	if h == nil {
		return nil, fmt.Errorf("%w: missing header", ErrInvalidEXR)
	}
	names, err := exrChannels(h.Channels())
	if err != nil {
		return nil, err
	}

	dw := h.DataWindow()
	width, height := int(dw.Width()), int(dw.Height())
	if err := denoise.CheckDimensions(width, height, len(names)); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidEXR, err)
	}

	if h.IsTiled() {
		if len(names) != 3 {
			return nil, fmt.Errorf("%w: tiled EXR without RGB channels", ErrUnsupportedFormat)
		}
		return decodeTiledEXR(f, width, height)
	}

	planes := make([][]float32, len(names))
	fb := exr.NewFrameBuffer()
	for i, name := range names {
		planes[i] = make([]float32, width*height)
		if h.Channels().Get(name) == nil {
			continue
		}
		fb.Set(name, exr.NewSliceFromFloat32(planes[i], width, height).WithOrigin(int(dw.Min.X), int(dw.Min.Y)))
	}

	sr, err := exr.NewScanlineReader(f)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidEXR, err)
	}
	sr.SetFrameBuffer(fb)
	if err := sr.ReadPixels(int(dw.Min.Y), int(dw.Max.Y)); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidEXR, err)
	}

	img, err := denoise.NewImage(width, height, len(names))
	if err != nil {
		return nil, err
	}
	data := img.Data()
	for c, plane := range planes {
		for i, v := range plane {
			data[i*len(names)+c] = v
		}
	}
	return img, nil
}

func decodeTiledEXR(f *exr.File, width, height int) (*denoise.Image, error) {
	in, err := exr.NewRGBAInputFile(f)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidEXR, err)
	}
	rgba, err := in.ReadRGBA()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidEXR, err)
	}

	img, err := denoise.NewImage(width, height, 3)
	if err != nil {
		return nil, err
	}
	minX, minY := rgba.Rect.Min.X, rgba.Rect.Min.Y
	for y := range height {
		for x := range width {
			r, g, b, _ := rgba.RGBA(minX+x, minY+y)
			img.SetPixel(x, y, r, g, b)
		}
	}
	return img, nil
}

// EncodeEXR writes img as a ZIP-compressed scanline OpenEXR file with
// 32-bit float channels. Single-channel images are written as Y; all
// others as R, G and B from their first three channels.
func EncodeEXR(w io.WriteSeeker, img *denoise.Image) error {
	width, height := img.Bounds()

	names := exrColorChannels
	if img.Channels() == 1 {
		names = exrGrayChannels
	}

	cl := exr.NewChannelList()
	for _, name := range names {
		cl.Add(exr.NewChannel(name, exr.PixelTypeFloat))
	}
	h := exr.NewScanlineHeader(width, height)
	h.SetChannels(cl)
	h.SetCompression(exr.CompressionZIP)

	planes := make(map[string][]float32, len(names))
	for _, name := range names {
		planes[name] = make([]float32, width*height)
	}
	for y := range height {
		for x := range width {
			i := y*width + x
			px := img.Pixel(x, y)
			if len(names) == 1 {
				planes["Y"][i] = px[0]
				continue
			}
			planes["R"][i], planes["G"][i], planes["B"][i] = rgb(px)
		}
	}

	fb := exr.NewFrameBuffer()
	for name, plane := range planes {
		fb.Set(name, exr.NewSliceFromFloat32(plane, width, height))
	}

	sw, err := exr.NewScanlineWriter(w, h)
	if err != nil {
		return fmt.Errorf("image: encode EXR: %w", err)
	}
	sw.SetFrameBuffer(fb)
	if err := sw.WritePixels(0, height-1); err != nil {
		_ = sw.Close()
		return fmt.Errorf("image: encode EXR: %w", err)
	}
	if err := sw.Close(); err != nil {
		return fmt.Errorf("image: encode EXR: %w", err)
	}
	return nil
}

// seekBuffer is an in-memory io.WriteSeeker used when EXR output goes to
// a plain io.Writer.
type seekBuffer struct {
	buf []byte
	pos int64
}

func (s *seekBuffer) Write(p []byte) (int, error) {
	end := int(s.pos) + len(p)
	if end > len(s.buf) {
		s.buf = append(s.buf, make([]byte, end-len(s.buf))...)
	}
	copy(s.buf[s.pos:], p)
	s.pos = int64(end)
	return len(p), nil
}

func (s *seekBuffer) Seek(offset int64, whence int) (int64, error) {
	var pos int64
	switch whence {
	case io.SeekStart:
		pos = offset
	case io.SeekCurrent:
		pos = s.pos + offset
	case io.SeekEnd:
		pos = int64(len(s.buf)) + offset
	default:
		return 0, fmt.Errorf("image: seek: invalid whence %d", whence)
	}
	if pos < 0 {
		return 0, errors.New("image: seek: negative position")
	}
	s.pos = pos
	return pos, nil
}

// encodeEXRTo writes img to w, staging the file in memory unless w can seek.
func encodeEXRTo(w io.Writer, img *denoise.Image) error {
	if ws, ok := w.(io.WriteSeeker); ok {
		return EncodeEXR(ws, img)
	}
	var sb seekBuffer
	if err := EncodeEXR(&sb, img); err != nil {
		return err
	}
	if _, err := w.Write(sb.buf); err != nil {
		return fmt.Errorf("image: encode EXR: %w", err)
	}
	return nil
}
