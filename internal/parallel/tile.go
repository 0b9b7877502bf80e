// Package parallel partitions an image into independent tiles and runs
// per-tile work on a pool of goroutines.
//
// Every tile covers a disjoint rectangle of the output, so work functions
// that only write inside their own tile need no synchronization.
package parallel

// TileSize is the default edge length of a tile in pixels.
const TileSize = 64

// Tile is a rectangular region of the output image.
// Edge tiles are smaller when the image is not a multiple of the tile size.
type Tile struct {
	// X and Y are the pixel coordinates of the top-left corner.
	X, Y int

	// Width and Height are the actual tile dimensions in pixels.
	Width, Height int
}

// Pixels returns the number of pixels covered by the tile.
func (t Tile) Pixels() int {
	return t.Width * t.Height
}

// Contains reports whether pixel (px, py) lies inside the tile.
func (t Tile) Contains(px, py int) bool {
	return px >= t.X && px < t.X+t.Width &&
		py >= t.Y && py < t.Y+t.Height
}
