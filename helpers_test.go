package denoise

import (
	"math/rand/v2"
	"testing"
)

// Test helper functions shared across denoise tests.

// newFilled creates an image with every pixel set to values.
func newFilled(t testing.TB, w, h int, values ...float32) *Image {
	t.Helper()
	img, err := NewImage(w, h, len(values))
	if err != nil {
		t.Fatalf("NewImage(%d, %d, %d): %v", w, h, len(values), err)
	}
	img.Fill(values...)
	return img
}

// newRandom creates an image with uniformly distributed values in [0, 1).
func newRandom(t testing.TB, w, h, channels int, seed uint64) *Image {
	t.Helper()
	img, err := NewImage(w, h, channels)
	if err != nil {
		t.Fatalf("NewImage(%d, %d, %d): %v", w, h, channels, err)
	}
	r := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	for i := range img.Data() {
		img.Data()[i] = r.Float32()
	}
	return img
}

// mustConfig builds a Config or fails the test.
func mustConfig(t testing.TB, opts ...Option) Config {
	t.Helper()
	cfg, err := NewConfig(opts...)
	if err != nil {
		t.Fatalf("NewConfig: %v", err)
	}
	return cfg
}

// mustRun runs the filter or fails the test.
func mustRun(t testing.TB, f *CrossBilateral, set BufferSet) *Image {
	t.Helper()
	out, err := f.Run(set)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	return out
}

func absf(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
