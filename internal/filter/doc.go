// Package filter provides the numeric kernels of the cross-bilateral denoiser.
//
// This package contains:
//   - Spatial Gaussian weight tables for a square window, cached per
//     (radius, inverse-sigma) pair
//   - Range (guide similarity) weights
//   - Per-pixel channel mean planes of guide buffers
//   - Neighbor index resolution for the wrap, clamp and mirror boundary modes
//
// The kernels operate on flat interleaved float32 planes and know nothing
// about the public image type.
package filter
