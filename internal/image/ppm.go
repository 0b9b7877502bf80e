package image

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	"github.com/gogpu/denoise"
	"github.com/gogpu/denoise/internal/color"
)

// ErrInvalidPPM is returned for a malformed binary Portable Pixmap.
var ErrInvalidPPM = errors.New("image: invalid PPM")

// isPPM reports whether br starts with a binary PPM signature ("P6"
// followed by whitespace). It does not consume input.
func isPPM(br *bufio.Reader) bool {
	sig, err := br.Peek(3)
	if err != nil {
		return false
	}
	return sig[0] == 'P' && sig[1] == '6' && isSpace(sig[2])
}

// DecodePPM decodes a binary (P6) Portable Pixmap to three channels,
// decoding samples through tr. Samples are one byte when maxval is below
// 256 and two big-endian bytes otherwise; both are rescaled to the full
// range first. Header comments are not supported.
func DecodePPM(r io.Reader, tr color.Transfer) (*denoise.Image, error) {
	br, ok := r.(*bufio.Reader)
	if !ok {
		br = bufio.NewReader(r)
	}

	var magic string
	var width, height, maxval int
	if _, err := fmt.Fscan(br, &magic, &width, &height, &maxval); err != nil {
		return nil, fmt.Errorf("%w: header: %v", ErrInvalidPPM, err)
	}
	if magic != "P6" {
		return nil, fmt.Errorf("%w: magic %q", ErrInvalidPPM, magic)
	}
	if maxval < 1 || maxval > 0xffff {
		return nil, fmt.Errorf("%w: maxval %d", ErrInvalidPPM, maxval)
	}
	if err := denoise.CheckDimensions(width, height, decodedChannels); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPPM, err)
	}
	if b, err := br.ReadByte(); err != nil || !isSpace(b) {
		return nil, fmt.Errorf("%w: missing header terminator", ErrInvalidPPM)
	}

	sampleSize := 1
	if maxval > 0xff {
		sampleSize = 2
	}

	rowLen := width * decodedChannels
	buf := make([]byte, rowLen*sampleSize)
	var data []float32
	for row := range height {
		if _, err := io.ReadFull(br, buf); err != nil {
			return nil, fmt.Errorf("%w: row %d: %v", ErrInvalidPPM, row, err)
		}
		for i := range rowLen {
			if sampleSize == 1 {
				v := uint8(min(int(buf[i])*0xff/maxval, 0xff))
				data = append(data, color.Decode8(tr, v))
				continue
			}
			s := int(buf[2*i])<<8 | int(buf[2*i+1])
			v := uint16(min(s*0xffff/maxval, 0xffff))
			data = append(data, color.Decode16(tr, v))
		}
	}

	return denoise.NewImageFromData(width, height, decodedChannels, data)
}

// EncodePPM writes img as an 8-bit binary Portable Pixmap, clamping to
// [0, 1] and encoding through tr. Single-channel images are replicated to
// gray.
func EncodePPM(w io.Writer, img *denoise.Image, tr color.Transfer) error {
	width, height := img.Bounds()
	if _, err := fmt.Fprintf(w, "P6\n%d %d\n255\n", width, height); err != nil {
		return fmt.Errorf("image: encode PPM: %w", err)
	}

	buf := make([]byte, width*decodedChannels)
	for y := range height {
		for x := range width {
			r, g, b := rgb(img.Pixel(x, y))
			buf[x*3] = color.Encode8(tr, r)
			buf[x*3+1] = color.Encode8(tr, g)
			buf[x*3+2] = color.Encode8(tr, b)
		}
		if _, err := w.Write(buf); err != nil {
			return fmt.Errorf("image: encode PPM: %w", err)
		}
	}
	return nil
}
