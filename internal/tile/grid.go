package tile

import "image"

// Grid maps raster coordinates to tile coordinates.
type Grid struct {
	bounds image.Rectangle
	tilesX int
	tilesY int
}

// NewGrid creates the tile geometry for a raster with the given bounds.
// Tiles are aligned to bounds.Min.
func NewGrid(bounds image.Rectangle) Grid {
	if bounds.Empty() {
		return Grid{}
	}
	return Grid{
		bounds: bounds,
		tilesX: (bounds.Dx() + Width - 1) / Width,
		tilesY: (bounds.Dy() + Height - 1) / Height,
	}
}

// Bounds returns the raster bounds.
func (g Grid) Bounds() image.Rectangle { return g.bounds }

// TilesX returns the number of tile columns.
func (g Grid) TilesX() int { return g.tilesX }

// TilesY returns the number of tile rows.
func (g Grid) TilesY() int { return g.tilesY }

// Count returns the total number of tiles.
func (g Grid) Count() int { return g.tilesX * g.tilesY }

// TileRect returns the raster-space rectangle of tile (tx, ty), clipped to
// the raster bounds. It returns an empty rectangle for out-of-range tiles.
func (g Grid) TileRect(tx, ty int) image.Rectangle {
	if tx < 0 || tx >= g.tilesX || ty < 0 || ty >= g.tilesY {
		return image.Rectangle{}
	}
	origin := g.bounds.Min.Add(image.Pt(tx*Width, ty*Height))
	return image.Rectangle{Min: origin, Max: origin.Add(image.Pt(Width, Height))}.Intersect(g.bounds)
}

// ForEachInRect calls fn for every tile intersecting r, in row-major order.
func (g Grid) ForEachInRect(r image.Rectangle, fn func(tx, ty int)) {
	r = r.Intersect(g.bounds)
	if r.Empty() {
		return
	}
	r = r.Sub(g.bounds.Min)
	tx1, ty1 := r.Min.X/Width, r.Min.Y/Height
	tx2, ty2 := (r.Max.X-1)/Width, (r.Max.Y-1)/Height
	for ty := ty1; ty <= ty2; ty++ {
		for tx := tx1; tx <= tx2; tx++ {
			fn(tx, ty)
		}
	}
}
