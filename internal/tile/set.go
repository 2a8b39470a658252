package tile

import "image"

// Set is a lazily populated collection of tile copies over one raster.
//
// Entries start out absent; Put stores a tile the first time its position
// is backed up. Tiles are stored in a flat slice indexed by
// ty*TilesX + tx, so lookup is O(1) and iteration is row-major.
type Set struct {
	grid  Grid
	tiles []*Tile
	n     int
	pool  *Pool
}

// NewSet creates an empty set over the given grid, drawing tile memory from
// pool (the default pool if nil).
func NewSet(g Grid, pool *Pool) *Set {
	if pool == nil {
		pool = defaultPool
	}
	return &Set{
		grid:  g,
		tiles: make([]*Tile, g.Count()),
		pool:  pool,
	}
}

// Grid returns the geometry the set was created with.
func (s *Set) Grid() Grid { return s.grid }

// Len returns the number of stored tiles.
func (s *Set) Len() int { return s.n }

// Has reports whether tile (tx, ty) is stored.
func (s *Set) Has(tx, ty int) bool {
	return s.Get(tx, ty) != nil
}

// Get returns tile (tx, ty) or nil if it is absent or out of range.
func (s *Set) Get(tx, ty int) *Tile {
	if tx < 0 || tx >= s.grid.tilesX || ty < 0 || ty >= s.grid.tilesY {
		return nil
	}
	return s.tiles[ty*s.grid.tilesX+tx]
}

// Alloc returns a fresh pooled tile for position (tx, ty) without storing
// it. It returns nil for out-of-range positions.
func (s *Set) Alloc(tx, ty, bpp int) *Tile {
	return s.pool.Get(tx, ty, s.grid.TileRect(tx, ty), bpp)
}

// Put stores t at its own position unless a tile is already stored there.
// It reports whether t was stored; a rejected tile is returned to the pool.
func (s *Set) Put(t *Tile) bool {
	if t == nil || s.Has(t.X, t.Y) || t.X < 0 || t.X >= s.grid.tilesX || t.Y < 0 || t.Y >= s.grid.tilesY {
		s.pool.Put(t)
		return false
	}
	s.tiles[t.Y*s.grid.tilesX+t.X] = t
	s.n++
	return true
}

// ForEach calls fn for each stored tile in row-major order.
func (s *Set) ForEach(fn func(t *Tile)) {
	for _, t := range s.tiles {
		if t != nil {
			fn(t)
		}
	}
}

// Rect returns the union of the stored tiles' rectangles.
func (s *Set) Rect() image.Rectangle {
	var r image.Rectangle
	s.ForEach(func(t *Tile) { r = r.Union(t.Rect) })
	return r
}

// Close releases all tiles back to the pool. The set is empty afterwards.
func (s *Set) Close() {
	for i, t := range s.tiles {
		if t != nil {
			s.pool.Put(t)
			s.tiles[i] = nil
		}
	}
	s.n = 0
}
