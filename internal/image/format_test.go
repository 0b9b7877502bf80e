package image

import "testing"

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path   string
		want   Format
		wantOK bool
	}{
		{"out.png", FormatPNG, true},
		{"OUT.PNG", FormatPNG, true},
		{"a/b/c.jpg", FormatJPEG, true},
		{"c.jpeg", FormatJPEG, true},
		{"c.bmp", FormatBMP, true},
		{"c.tif", FormatTIFF, true},
		{"c.tiff", FormatTIFF, true},
		{"c.WebP", FormatWebP, true},
		{"render.pfm", FormatPFM, true},
		{"render.exr", FormatEXR, true},
		{"render.EXR", FormatEXR, true},
		{"ldr.ppm", FormatPPM, true},
		{"render.rgbe", 0, false},
		{"noext", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, ok := FormatFromPath(tt.path)
			if ok != tt.wantOK || (ok && got != tt.want) {
				t.Errorf("FormatFromPath(%q) = %v, %v; want %v, %v", tt.path, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestOutputPath(t *testing.T) {
	tests := []struct {
		in         string
		wantPath   string
		wantFormat Format
	}{
		{"out.png", "out.png", FormatPNG},
		{"out.tiff", "out.tiff", FormatTIFF},
		{"out.webp", "out.webp", FormatWebP},
		{"out.pfm", "out.pfm", FormatPFM},
		{"out.ppm", "out.ppm", FormatPPM},
		{"out.exr", "out.exr", FormatEXR},
		{"out.rgbe", "out.exr", FormatEXR},
		{"dir.v2/out", "dir.v2/out.exr", FormatEXR},
	}

	for _, tt := range tests {
		path, format := OutputPath(tt.in)
		if path != tt.wantPath || format != tt.wantFormat {
			t.Errorf("OutputPath(%q) = %q, %v; want %q, %v", tt.in, path, format, tt.wantPath, tt.wantFormat)
		}
	}
}

func TestFormatInfo(t *testing.T) {
	for f := range formatCount {
		info := f.Info()
		if info.Name == "" || len(info.Extensions) == 0 || info.BitsPerChannel == 0 {
			t.Errorf("%v: incomplete FormatInfo %+v", f, info)
		}
		if f.String() != info.Name {
			t.Errorf("String() = %q, want %q", f.String(), info.Name)
		}
	}

	for f := range formatCount {
		want := f == FormatPFM || f == FormatEXR
		if f.IsFloat() != want {
			t.Errorf("%v.IsFloat() = %v, want %v", f, f.IsFloat(), want)
		}
	}
	if Format(99).IsValid() || Format(99).String() != "unknown" || Format(99).Info().Name != "" {
		t.Error("Format(99) should be invalid")
	}
}
