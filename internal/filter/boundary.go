package filter

// Mode selects how neighbor coordinates outside [0, n) are mapped back into
// the image.
type Mode uint8

const (
	// ModeWrap treats the image as a torus: -1 maps to n-1.
	ModeWrap Mode = iota

	// ModeClamp repeats the edge pixel: -1 maps to 0.
	ModeClamp

	// ModeMirror reflects about the edge pixel without repeating it:
	// -1 maps to 1 and n maps to n-2.
	ModeMirror
)

// Resolve maps coordinate i into [0, n) according to mode.
// n must be positive. Offsets larger than n are handled for every mode.
func Resolve(mode Mode, i, n int) int {
	if i >= 0 && i < n {
		return i
	}

	switch mode {
	case ModeClamp:
		if i < 0 {
			return 0
		}
		return n - 1

	case ModeMirror:
		if n == 1 {
			return 0
		}
		period := 2 * (n - 1)
		i = wrap(i, period)
		if i >= n {
			i = period - i
		}
		return i

	default:
		return wrap(i, n)
	}
}

// wrap is the non-negative modulo of i by n.
func wrap(i, n int) int {
	i %= n
	if i < 0 {
		i += n
	}
	return i
}

// ResolveTable precomputes Resolve(mode, base+d, n) for d in [-radius, radius].
// Entry d+radius holds the resolved coordinate.
func ResolveTable(dst []int, mode Mode, base, radius, n int) []int {
	size := 2*radius + 1
	if cap(dst) < size {
		dst = make([]int, size)
	}
	dst = dst[:size]
	for d := -radius; d <= radius; d++ {
		dst[d+radius] = Resolve(mode, base+d, n)
	}
	return dst
}
