package image

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/gogpu/denoise"
)

// ErrInvalidPFM is returned for a malformed Portable Float Map.
var ErrInvalidPFM = errors.New("image: invalid PFM")

// isPFM reports whether br starts with a PFM signature ("PF" or "Pf"
// followed by whitespace). It does not consume input.
func isPFM(br *bufio.Reader) bool {
	sig, err := br.Peek(3)
	if err != nil {
		return false
	}
	return sig[0] == 'P' && (sig[1] == 'F' || sig[1] == 'f') && isSpace(sig[2])
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\n' || b == '\r' || b == '\t'
}

// DecodePFM decodes a Portable Float Map. "PF" files yield 3 channels and
// "Pf" files 1 channel. A negative scale marks little-endian data; samples
// are multiplied by |scale| unless it is 1. Rows are stored bottom to top
// and are flipped so that y=0 is the top row.
//
// The header size is checked against denoise.CheckDimensions before any
// pixel memory is allocated, and pixel storage grows row by row so a
// truncated file fails without reserving the full image.
func DecodePFM(r io.Reader) (*denoise.Image, error) {
	br, ok := r.(*bufio.Reader)
	if !ok {
		br = bufio.NewReader(r)
	}

	var magic string
	var width, height int
	var scale float64
	if _, err := fmt.Fscan(br, &magic, &width, &height, &scale); err != nil {
		return nil, fmt.Errorf("%w: header: %v", ErrInvalidPFM, err)
	}

	var channels int
	switch magic {
	case "PF":
		channels = 3
	case "Pf":
		channels = 1
	default:
		return nil, fmt.Errorf("%w: magic %q", ErrInvalidPFM, magic)
	}
	if scale == 0 || math.IsNaN(scale) || math.IsInf(scale, 0) {
		return nil, fmt.Errorf("%w: scale %v", ErrInvalidPFM, scale)
	}
	if err := denoise.CheckDimensions(width, height, channels); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPFM, err)
	}

	// Exactly one whitespace byte separates the header from the data.
	if b, err := br.ReadByte(); err != nil || !isSpace(b) {
		return nil, fmt.Errorf("%w: missing header terminator", ErrInvalidPFM)
	}

	var order binary.ByteOrder = binary.BigEndian
	if scale < 0 {
		order = binary.LittleEndian
	}
	factor := float32(math.Abs(scale))

	rowLen := width * channels
	buf := make([]byte, rowLen*4)
	var data []float32
	for row := range height {
		if _, err := io.ReadFull(br, buf); err != nil {
			return nil, fmt.Errorf("%w: row %d: %v", ErrInvalidPFM, row, err)
		}
		for i := range rowLen {
			v := math.Float32frombits(order.Uint32(buf[i*4:]))
			if factor != 1 {
				v *= factor
			}
			data = append(data, v)
		}
	}

	for top, bottom := 0, height-1; top < bottom; top, bottom = top+1, bottom-1 {
		a := data[top*rowLen : (top+1)*rowLen]
		b := data[bottom*rowLen : (bottom+1)*rowLen]
		for i := range a {
			a[i], b[i] = b[i], a[i]
		}
	}

	img, err := denoise.NewImageFromData(width, height, channels, data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPFM, err)
	}
	return img, nil
}

// EncodePFM writes img as a little-endian Portable Float Map. Single-channel
// images are written as "Pf"; all others as "PF" using their first three
// channels (two-channel images get a zero blue channel).
func EncodePFM(w io.Writer, img *denoise.Image) error {
	width, height := img.Bounds()

	magic, channels := "PF", 3
	if img.Channels() == 1 {
		magic, channels = "Pf", 1
	}
	if _, err := fmt.Fprintf(w, "%s\n%d %d\n-1.0\n", magic, width, height); err != nil {
		return fmt.Errorf("image: encode PFM: %w", err)
	}

	buf := make([]byte, width*channels*4)
	for row := range height {
		y := height - 1 - row
		for x := range width {
			px := img.Pixel(x, y)
			off := x * channels * 4
			if channels == 1 {
				binary.LittleEndian.PutUint32(buf[off:], math.Float32bits(px[0]))
				continue
			}
			r, g, b := rgb(px)
			binary.LittleEndian.PutUint32(buf[off:], math.Float32bits(r))
			binary.LittleEndian.PutUint32(buf[off+4:], math.Float32bits(g))
			binary.LittleEndian.PutUint32(buf[off+8:], math.Float32bits(b))
		}
		if _, err := w.Write(buf); err != nil {
			return fmt.Errorf("image: encode PFM: %w", err)
		}
	}

	return nil
}
