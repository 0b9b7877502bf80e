package filter

import (
	"math"
	"testing"
)

func TestSpatialKernelZeroRadius(t *testing.T) {
	for _, r := range []int{0, -3} {
		kernel := SpatialKernel(r, 0.1)
		if len(kernel) != 1 || kernel[0] != 1.0 {
			t.Errorf("SpatialKernel(%d) = %v, want [1]", r, kernel)
		}
	}
}

func TestSpatialKernelSize(t *testing.T) {
	tests := []struct {
		radius   int
		wantSize int
	}{
		{1, 9},
		{2, 25},
		{3, 49},
		{10, 441},
	}

	for _, tt := range tests {
		kernel := SpatialKernel(tt.radius, 0.1)
		if len(kernel) != tt.wantSize {
			t.Errorf("SpatialKernel(%d) len = %d, want %d", tt.radius, len(kernel), tt.wantSize)
		}
		if WindowSize(tt.radius)*WindowSize(tt.radius) != tt.wantSize {
			t.Errorf("WindowSize(%d)² = %d, want %d", tt.radius, WindowSize(tt.radius)*WindowSize(tt.radius), tt.wantSize)
		}
	}
}

func TestSpatialKernelCenterIsOne(t *testing.T) {
	for _, inv := range []float64{0, 0.1, 1, 50} {
		kernel := SpatialKernel(3, inv)
		center := len(kernel) / 2
		if kernel[center] != 1.0 {
			t.Errorf("SpatialKernel(3, %v) center = %v, want 1", inv, kernel[center])
		}
	}
}

func TestSpatialKernelValues(t *testing.T) {
	const inv = 0.1
	kernel := SpatialKernel(2, inv)
	size := 5

	for dj := -2; dj <= 2; dj++ {
		for di := -2; di <= 2; di++ {
			got := kernel[(dj+2)*size+di+2]
			want := math.Exp(-inv * float64(di*di+dj*dj))
			if got != want {
				t.Errorf("kernel(%d, %d) = %v, want %v", di, dj, got, want)
			}
		}
	}
}

func TestSpatialKernelBounded(t *testing.T) {
	for _, v := range SpatialKernel(5, 0.3) {
		if v <= 0 || v > 1 {
			t.Errorf("spatial weight %v outside (0, 1]", v)
		}
	}
}

func TestSpatialKernelSymmetric(t *testing.T) {
	kernel := SpatialKernel(4, 0.2)
	n := len(kernel)

	for i := range n / 2 {
		if kernel[i] != kernel[n-1-i] {
			t.Errorf("kernel[%d] = %v != kernel[%d] = %v", i, kernel[i], n-1-i, kernel[n-1-i])
		}
	}
}

func TestSpatialKernelZeroSigmaIsBox(t *testing.T) {
	for i, v := range SpatialKernel(2, 0) {
		if v != 1 {
			t.Errorf("kernel[%d] = %v, want 1 with zero inverse sigma", i, v)
		}
	}
}

func TestKernelCache(t *testing.T) {
	c := newKernelCache(4)

	a := c.get(3, 0.1)
	b := c.get(3, 0.1)
	if &a[0] != &b[0] {
		t.Error("cache returned a different table for identical parameters")
	}

	other := c.get(3, 0.2)
	if &other[0] == &a[0] {
		t.Error("cache returned the same table for a different inverse sigma")
	}
}

func TestKernelCacheEviction(t *testing.T) {
	c := newKernelCache(4)
	for r := 1; r <= 10; r++ {
		c.get(r, 0.1)
	}
	if c.len() > 4 {
		t.Errorf("cache holds %d entries, want at most 4", c.len())
	}
}

func TestCachedSpatialKernel(t *testing.T) {
	got := CachedSpatialKernel(2, 0.5)
	want := SpatialKernel(2, 0.5)

	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("CachedSpatialKernel[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func BenchmarkSpatialKernel(b *testing.B) {
	for range b.N {
		_ = SpatialKernel(10, 0.1)
	}
}

func BenchmarkCachedSpatialKernel(b *testing.B) {
	for range b.N {
		_ = CachedSpatialKernel(10, 0.1)
	}
}

func TestSpatialKernelUnderflow(t *testing.T) {
	kernel := SpatialKernel(5, 1000)

	if kernel[len(kernel)/2] != 1 {
		t.Errorf("center = %v, want 1", kernel[len(kernel)/2])
	}
	for i, w := range kernel {
		if w <= 0 || w > 1 {
			t.Fatalf("kernel[%d] = %v, outside (0, 1]", i, w)
		}
	}
	if kernel[0] != MinWeight {
		t.Errorf("corner = %v, want MinWeight", kernel[0])
	}
}
