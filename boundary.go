package denoise

import (
	"fmt"
	"strings"

	"github.com/gogpu/denoise/internal/filter"
)

// Boundary selects how neighbors outside the image are addressed.
type Boundary uint8

const (
	// BoundaryWrap addresses the image as a torus, so a border pixel
	// averages with content from the opposite edge. This is the default.
	BoundaryWrap Boundary = iota

	// BoundaryClamp repeats the nearest edge pixel.
	BoundaryClamp

	// BoundaryMirror reflects about the edge pixel without repeating it.
	BoundaryMirror

	boundaryCount
)

var boundaryNames = [boundaryCount]string{
	BoundaryWrap:   "wrap",
	BoundaryClamp:  "clamp",
	BoundaryMirror: "mirror",
}

// String returns the lower-case boundary name.
func (b Boundary) String() string {
	if !b.IsValid() {
		return fmt.Sprintf("Boundary(%d)", uint8(b))
	}
	return boundaryNames[b]
}

// IsValid reports whether b is a known boundary mode.
func (b Boundary) IsValid() bool {
	return b < boundaryCount
}

// ParseBoundary parses "wrap", "clamp" or "mirror" (case-insensitive).
func ParseBoundary(s string) (Boundary, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, n := range boundaryNames {
		if n == name {
			return Boundary(i), nil
		}
	}
	return 0, fmt.Errorf("%w: unknown boundary %q", ErrInvalidParameter, s)
}

func (b Boundary) mode() filter.Mode {
	switch b {
	case BoundaryClamp:
		return filter.ModeClamp
	case BoundaryMirror:
		return filter.ModeMirror
	default:
		return filter.ModeWrap
	}
}
