package image

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"errors"
	"math"
	"testing"

	"github.com/gogpu/denoise"
)

func TestPFMRoundTrip(t *testing.T) {
	for _, channels := range []int{1, 3} {
		img, _ := denoise.NewImage(5, 3, channels)
		for i := range img.Data() {
			img.Data()[i] = float32(i)*0.37 - 2
		}
		img.Data()[0] = 1e6 // HDR values survive unchanged

		var buf bytes.Buffer
		if err := EncodePFM(&buf, img); err != nil {
			t.Fatalf("EncodePFM: %v", err)
		}

		got, err := DecodePFM(&buf)
		if err != nil {
			t.Fatalf("DecodePFM: %v", err)
		}
		if !got.SameSize(img) || got.Channels() != channels {
			t.Fatalf("decoded %v, want %v", got, img)
		}
		for i, v := range img.Data() {
			if got.Data()[i] != v {
				t.Fatalf("channels=%d: Data()[%d] = %v, want %v", channels, i, got.Data()[i], v)
			}
		}
	}
}

func TestPFMRowOrder(t *testing.T) {
	img, _ := denoise.NewImage(1, 2, 1)
	img.SetPixel(0, 0, 1) // top
	img.SetPixel(0, 1, 2) // bottom

	var buf bytes.Buffer
	if err := EncodePFM(&buf, img); err != nil {
		t.Fatalf("EncodePFM: %v", err)
	}

	header := "Pf\n1 2\n-1.0\n"
	data := buf.Bytes()[len(header):]
	first := math.Float32frombits(binary.LittleEndian.Uint32(data))
	if first != 2 {
		t.Errorf("first stored row = %v, want bottom row 2", first)
	}
}

func TestDecodePFMBigEndian(t *testing.T) {
	var buf bytes.Buffer
	buf.WriteString("PF\n1 1\n1.0\n")
	for _, v := range []float32{0.5, 1.5, -3} {
		_ = binary.Write(&buf, binary.BigEndian, v)
	}

	img, err := DecodePFM(&buf)
	if err != nil {
		t.Fatalf("DecodePFM: %v", err)
	}
	px := img.Pixel(0, 0)
	if px[0] != 0.5 || px[1] != 1.5 || px[2] != -3 {
		t.Errorf("Pixel = %v, want [0.5 1.5 -3]", px)
	}
}

func TestEncodePFMTwoChannels(t *testing.T) {
	img, _ := denoise.NewImage(1, 1, 2)
	img.SetPixel(0, 0, 0.25, 0.75)

	var buf bytes.Buffer
	if err := EncodePFM(&buf, img); err != nil {
		t.Fatalf("EncodePFM: %v", err)
	}
	got, err := DecodePFM(&buf)
	if err != nil {
		t.Fatalf("DecodePFM: %v", err)
	}
	px := got.Pixel(0, 0)
	if got.Channels() != 3 || px[0] != 0.25 || px[1] != 0.75 || px[2] != 0 {
		t.Errorf("Pixel = %v (channels %d), want [0.25 0.75 0]", px, got.Channels())
	}
}

func TestDecodePFMInvalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"bad magic", "P6\n1 1\n-1.0\n"},
		{"zero scale", "PF\n1 1\n0\n"},
		{"negative size", "Pf\n-1 1\n-1.0\n"},
		{"truncated data", "Pf\n2 2\n-1.0\n\x00\x00\x00\x00"},
		{"truncated header", "PF\n1"},
		{"infinite scale", "Pf\n1 1\n-Inf\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := DecodePFM(bytes.NewReader([]byte(tt.data))); !errors.Is(err, ErrInvalidPFM) {
				t.Errorf("DecodePFM error = %v, want ErrInvalidPFM", err)
			}
		})
	}
}

func TestDecodePFMOversized(t *testing.T) {
	tests := []struct {
		name   string
		header string
	}{
		{"overflowing size", "PF\n4000000000 4000000000\n-1.0\n"},
		{"square root of max int", "Pf\n3037000500 3037000500\n-1.0\n"},
		{"side over limit", "Pf\n100000 1\n-1.0\n"},
		{"area over limit", "PF\n65536 65536\n-1.0\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodePFM(bytes.NewReader([]byte(tt.header)))
			if !errors.Is(err, ErrInvalidPFM) {
				t.Errorf("DecodePFM error = %v, want ErrInvalidPFM", err)
			}
			if !errors.Is(err, denoise.ErrInvalidDimensions) {
				t.Errorf("DecodePFM error = %v, want ErrInvalidDimensions", err)
			}
		})
	}
}

func TestDecodePFMTruncatedLarge(t *testing.T) {
	// Within the size limit but with a single row of data present.
	var buf bytes.Buffer
	buf.WriteString("Pf\n16384 16384\n-1.0\n")
	buf.Write(make([]byte, 16384*4))

	if _, err := DecodePFM(&buf); !errors.Is(err, ErrInvalidPFM) {
		t.Errorf("DecodePFM error = %v, want ErrInvalidPFM", err)
	}
}

func TestDecodePFMScale(t *testing.T) {
	tests := []struct {
		name   string
		header string
		order  binary.ByteOrder
	}{
		{"big endian", "Pf\n2 1\n2.0\n", binary.BigEndian},
		{"little endian", "Pf\n2 1\n-2.0\n", binary.LittleEndian},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			buf.WriteString(tt.header)
			for _, v := range []float32{0.25, -3} {
				_ = binary.Write(&buf, tt.order, v)
			}

			img, err := DecodePFM(&buf)
			if err != nil {
				t.Fatalf("DecodePFM: %v", err)
			}
			if a, b := img.Pixel(0, 0)[0], img.Pixel(1, 0)[0]; a != 0.5 || b != -6 {
				t.Errorf("pixels = [%v %v], want [0.5 -6]", a, b)
			}
		})
	}
}

func TestIsPFM(t *testing.T) {
	tests := []struct {
		data string
		want bool
	}{
		{"PF\n", true},
		{"Pf ", true},
		{"PFX", false},
		{"\x89PNG", false},
		{"P", false},
	}

	for _, tt := range tests {
		br := bufio.NewReader(bytes.NewReader([]byte(tt.data)))
		if got := isPFM(br); got != tt.want {
			t.Errorf("isPFM(%q) = %v, want %v", tt.data, got, tt.want)
		}
	}
}
