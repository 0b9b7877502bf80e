// Package denoise removes Monte-Carlo rendering noise with a cross-bilateral
// filter.
//
// # Overview
//
// A rendered color image is averaged over a square window around each
// pixel. Every neighbor is weighted by its spatial distance and by how
// similar it is to the center pixel in up to three low-noise guide buffers
// (albedo, shading normal, depth). Neighbors across a material or geometric
// edge get small weights, so edges survive while noise inside homogeneous
// regions is smoothed.
//
// # Quick Start
//
//	cfg, err := denoise.NewConfig(denoise.WithRadius(5))
//	if err != nil {
//	    return err
//	}
//
//	f := denoise.NewCrossBilateral(cfg)
//	out, err := f.Run(denoise.BufferSet{
//	    Color:  color,
//	    Albedo: albedo,
//	    Normal: normal, // any guide may be nil
//	})
//
// # Weights
//
// For a neighbor at offset (di, dj) the weight is the product of
//
//	exp(-pixel  · (di² + dj²))
//	exp(-albedo · (mean(albedo_c) − mean(albedo_n))²)
//	exp(-normal · (mean(normal_c) − mean(normal_n))²)
//	exp(-depth  · (mean(depth_c)  − mean(depth_n))²)
//
// where mean is the unweighted average of a pixel's channels. Every factor
// lies in (0, 1]: values that would underflow to zero are held at the
// smallest positive float64. The center pixel always has weight 1, so the
// weight sum is never below 1.
//
// # Boundaries
//
// Neighbors outside the image wrap around to the opposite edge by default
// ([BoundaryWrap]). [BoundaryClamp] and [BoundaryMirror] are available
// through [WithBoundary].
//
// # Concurrency
//
// The output is split into tiles processed on a worker pool. Each pixel is
// written exactly once and the result does not depend on the number of
// workers.
package denoise
