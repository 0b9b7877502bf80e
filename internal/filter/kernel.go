package filter

import (
	"math"
	"sync"
)

// SpatialKernel returns the spatial weight table of a (2r+1)x(2r+1) window.
//
// Entry (dj+r)*(2r+1) + (di+r) holds exp(-invSigma * (di² + dj²)),
// floored at MinWeight. The table is not normalized; the center entry is
// exactly 1.
//
// For radius <= 0, returns the single-element table [1.0].
func SpatialKernel(radius int, invSigma float64) []float64 {
	if radius <= 0 {
		return []float64{1.0}
	}

	size := 2*radius + 1
	kernel := make([]float64, size*size)

	for dj := -radius; dj <= radius; dj++ {
		row := (dj + radius) * size
		for di := -radius; di <= radius; di++ {
			kernel[row+di+radius] = FloorWeight(math.Exp(-invSigma * float64(di*di+dj*dj)))
		}
	}

	return kernel
}

// WindowSize returns the edge length of the window for radius.
func WindowSize(radius int) int {
	if radius <= 0 {
		return 1
	}
	return 2*radius + 1
}

type kernelKey struct {
	radius   int
	invSigma float64
}

// kernelCache caches spatial tables keyed by the exact parameters.
type kernelCache struct {
	mu     sync.RWMutex
	cache  map[kernelKey][]float64
	maxLen int
}

var defaultKernelCache = newKernelCache(64)

func newKernelCache(maxLen int) *kernelCache {
	return &kernelCache{
		cache:  make(map[kernelKey][]float64),
		maxLen: maxLen,
	}
}

func (c *kernelCache) get(radius int, invSigma float64) []float64 {
	key := kernelKey{radius: radius, invSigma: invSigma}

	c.mu.RLock()
	if kernel, ok := c.cache[key]; ok {
		c.mu.RUnlock()
		return kernel
	}
	c.mu.RUnlock()

	kernel := SpatialKernel(radius, invSigma)

	c.mu.Lock()
	if len(c.cache) >= c.maxLen {
		// Drop half of the entries; map order makes this an arbitrary half.
		count := 0
		for k := range c.cache {
			delete(c.cache, k)
			count++
			if count >= c.maxLen/2 {
				break
			}
		}
	}
	c.cache[key] = kernel
	c.mu.Unlock()

	return kernel
}

func (c *kernelCache) len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.cache)
}

// CachedSpatialKernel returns a shared spatial table for the parameters.
// The returned slice must not be modified.
func CachedSpatialKernel(radius int, invSigma float64) []float64 {
	return defaultKernelCache.get(radius, invSigma)
}
