package parallel

// TileGrid divides a width x height image into tiles stored in row-major
// order: index = ty*TilesX() + tx.
type TileGrid struct {
	tiles  []Tile
	tilesX int
	tilesY int
	width  int
	height int
}

// NewTileGrid creates a grid of TileSize tiles covering the image.
func NewTileGrid(width, height int) *TileGrid {
	return NewTileGridSize(width, height, TileSize)
}

// NewTileGridSize creates a grid with a custom tile edge length.
// A non-positive size falls back to TileSize. Non-positive image
// dimensions produce an empty grid.
func NewTileGridSize(width, height, size int) *TileGrid {
	if size <= 0 {
		size = TileSize
	}
	if width <= 0 || height <= 0 {
		return &TileGrid{}
	}

	tilesX := (width + size - 1) / size
	tilesY := (height + size - 1) / size

	g := &TileGrid{
		tiles:  make([]Tile, 0, tilesX*tilesY),
		tilesX: tilesX,
		tilesY: tilesY,
		width:  width,
		height: height,
	}

	for ty := range tilesY {
		for tx := range tilesX {
			x, y := tx*size, ty*size
			g.tiles = append(g.tiles, Tile{
				X:      x,
				Y:      y,
				Width:  min(size, width-x),
				Height: min(size, height-y),
			})
		}
	}

	return g
}

// TileAt returns the tile at tile coordinates (tx, ty).
func (g *TileGrid) TileAt(tx, ty int) (Tile, bool) {
	if tx < 0 || tx >= g.tilesX || ty < 0 || ty >= g.tilesY {
		return Tile{}, false
	}
	return g.tiles[ty*g.tilesX+tx], true
}

// TileCount returns the total number of tiles.
func (g *TileGrid) TileCount() int {
	return len(g.tiles)
}

// TilesX returns the number of tile columns.
func (g *TileGrid) TilesX() int {
	return g.tilesX
}

// TilesY returns the number of tile rows.
func (g *TileGrid) TilesY() int {
	return g.tilesY
}

// Tiles returns all tiles. The returned slice should not be modified.
func (g *TileGrid) Tiles() []Tile {
	return g.tiles
}

// ForEach calls fn for each tile in row-major order on the calling goroutine.
func (g *TileGrid) ForEach(fn func(Tile)) {
	for _, t := range g.tiles {
		fn(t)
	}
}

// Execute runs fn once per tile on the pool and waits for completion.
// A nil pool runs the tiles sequentially.
func (g *TileGrid) Execute(pool *WorkerPool, fn func(Tile)) {
	if pool == nil || pool.Workers() == 1 || len(g.tiles) == 1 {
		g.ForEach(fn)
		return
	}

	pool.Run(len(g.tiles), func(i int) {
		fn(g.tiles[i])
	})
}
