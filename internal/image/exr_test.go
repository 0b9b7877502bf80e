package image

import (
	"bufio"
	"bytes"
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/mrjoshuak/go-openexr/exr"

	"github.com/gogpu/denoise"
	"github.com/gogpu/denoise/internal/color"
)

func TestEXRRoundTrip(t *testing.T) {
	for _, channels := range []int{1, 3} {
		img, _ := denoise.NewImage(7, 5, channels)
		for i := range img.Data() {
			img.Data()[i] = float32(i)*0.37 - 4
		}
		img.Data()[0] = 1e6 // HDR values survive unchanged
		img.Data()[1] = float32(math.Inf(1))

		var buf bytes.Buffer
		if err := Encode(&buf, img, FormatEXR, color.TransferLinear); err != nil {
			t.Fatalf("Encode: %v", err)
		}
		if !isEXR(bufio.NewReader(bytes.NewReader(buf.Bytes()))) {
			t.Fatal("encoded data does not start with the EXR magic number")
		}

		got, err := DecodeEXR(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
		if err != nil {
			t.Fatalf("DecodeEXR: %v", err)
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

func TestEncodeEXRTwoChannels(t *testing.T) {
	img, _ := denoise.NewImage(1, 1, 2)
	img.SetPixel(0, 0, 0.25, 0.75)

	var buf bytes.Buffer
	if err := Encode(&buf, img, FormatEXR, color.TransferLinear); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	got, err := DecodeEXR(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	if err != nil {
		t.Fatalf("DecodeEXR: %v", err)
	}
	px := got.Pixel(0, 0)
	if got.Channels() != 3 || px[0] != 0.25 || px[1] != 0.75 || px[2] != 0 {
		t.Errorf("Pixel = %v (channels %d), want [0.25 0.75 0]", px, got.Channels())
	}
}

func TestEncodeEXRFile(t *testing.T) {
	src := gradient(t, 6, 3)
	path := filepath.Join(t.TempDir(), "out.exr")

	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := EncodeEXR(f, src); err != nil {
		t.Fatalf("EncodeEXR: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	f, err = os.Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer func() { _ = f.Close() }()
	info, err := f.Stat()
	if err != nil {
		t.Fatalf("Stat: %v", err)
	}

	got, err := DecodeEXR(f, info.Size())
	if err != nil {
		t.Fatalf("DecodeEXR: %v", err)
	}
	if d := maxDiff(got, src); d != 0 {
		t.Errorf("max difference %v, want 0", d)
	}
}

func TestDecodeEXRInvalid(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"not exr", []byte("PF\n1 1\n-1.0\n")},
		{"magic only", exr.MagicNumber},
		{"truncated header", append(append([]byte{}, exr.MagicNumber...), 2, 0, 0, 0, 'c', 'h')},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeEXR(bytes.NewReader(tt.data), int64(len(tt.data)))
			if !errors.Is(err, ErrInvalidEXR) {
				t.Errorf("DecodeEXR error = %v, want ErrInvalidEXR", err)
			}
		})
	}
}

func TestEXRChannels(t *testing.T) {
	tests := []struct {
		name     string
		channels []string
		want     []string
	}{
		{"rgb", []string{"B", "G", "R"}, []string{"R", "G", "B"}},
		{"rgba", []string{"A", "B", "G", "R"}, []string{"R", "G", "B"}},
		{"red only", []string{"R"}, []string{"R", "G", "B"}},
		{"luminance", []string{"A", "Y"}, []string{"Y"}},
		{"depth", []string{"Z"}, []string{"Z"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cl := exr.NewChannelList()
			for _, name := range tt.channels {
				cl.Add(exr.NewChannel(name, exr.PixelTypeHalf))
			}
			got, err := exrChannels(cl)
			if err != nil {
				t.Fatalf("exrChannels: %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("exrChannels = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("exrChannels = %v, want %v", got, tt.want)
					break
				}
			}
		})
	}

	if _, err := exrChannels(exr.NewChannelList()); !errors.Is(err, ErrInvalidEXR) {
		t.Errorf("exrChannels(empty) error = %v, want ErrInvalidEXR", err)
	}
}

func TestSeekBuffer(t *testing.T) {
	var sb seekBuffer
	_, _ = sb.Write([]byte("abcdef"))
	if _, err := sb.Seek(2, 0); err != nil {
		t.Fatalf("Seek: %v", err)
	}
	_, _ = sb.Write([]byte("XY"))
	if pos, _ := sb.Seek(0, 2); pos != 6 {
		t.Errorf("Seek(0, end) = %d, want 6", pos)
	}
	if string(sb.buf) != "abXYef" {
		t.Errorf("buffer = %q, want %q", sb.buf, "abXYef")
	}
	if _, err := sb.Seek(-1, 0); err == nil {
		t.Error("Seek to a negative position should fail")
	}
}
