package filter

import "math"

// MinWeight is the smallest weight factor. Factors that would underflow to
// zero are raised to it, so every factor and every product of factors
// passed through FloorWeight lies in (0, 1].
const MinWeight = math.SmallestNonzeroFloat64

// FloorWeight returns w, or MinWeight if w is smaller.
func FloorWeight(w float64) float64 {
	if w < MinWeight {
		return MinWeight
	}
	return w
}

// RangeWeight returns the guide similarity factor exp(-invSigma * diff²),
// floored at MinWeight. A zero invSigma disables the term and yields
// exactly 1.
func RangeWeight(invSigma, diff float64) float64 {
	if invSigma == 0 {
		return 1
	}
	return FloorWeight(math.Exp(-invSigma * diff * diff))
}

// MeanPlane collapses an interleaved plane to one float64 per pixel holding
// the unweighted average of the pixel's channels.
//
// Because the mean is linear, mean(a) - mean(b) == mean(a - b), so guide
// differences can be taken between precomputed means.
func MeanPlane(data []float32, channels int) []float64 {
	if channels <= 0 {
		return nil
	}

	n := len(data) / channels
	plane := make([]float64, n)

	if channels == 1 {
		for i, v := range data[:n] {
			plane[i] = float64(v)
		}
		return plane
	}

	inv := 1.0 / float64(channels)
	for i := range n {
		var sum float64
		for _, v := range data[i*channels : (i+1)*channels] {
			sum += float64(v)
		}
		plane[i] = sum * inv
	}

	return plane
}
