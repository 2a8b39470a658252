package tile

import (
	"image"
	"math/bits"
)

// Bitmap flags tiles of a grid, one bit per tile. The surface marks the
// tiles each dab writes and drains them when the edits are flushed.
//
// A nil *Bitmap is an empty bitmap that ignores Mark.
type Bitmap struct {
	grid  Grid
	words []uint64
}

// NewBitmap creates a cleared bitmap for the grid. It returns nil for an
// empty grid.
func NewBitmap(g Grid) *Bitmap {
	if g.Count() == 0 {
		return nil
	}
	return &Bitmap{grid: g, words: make([]uint64, (g.Count()+63)/64)}
}

func (b *Bitmap) index(tx, ty int) (int, bool) {
	if b == nil || tx < 0 || tx >= b.grid.tilesX || ty < 0 || ty >= b.grid.tilesY {
		return 0, false
	}
	return ty*b.grid.tilesX + tx, true
}

// Mark flags tile (tx, ty). Out-of-range tiles are ignored.
func (b *Bitmap) Mark(tx, ty int) {
	if i, ok := b.index(tx, ty); ok {
		b.words[i/64] |= 1 << (i % 64)
	}
}

// MarkRect flags every tile intersecting r.
func (b *Bitmap) MarkRect(r image.Rectangle) {
	if b != nil {
		b.grid.ForEachInRect(r, b.Mark)
	}
}

// IsMarked reports whether tile (tx, ty) is flagged.
func (b *Bitmap) IsMarked(tx, ty int) bool {
	i, ok := b.index(tx, ty)
	return ok && b.words[i/64]&(1<<(i%64)) != 0
}

// Count returns the number of flagged tiles.
func (b *Bitmap) Count() int {
	if b == nil {
		return 0
	}
	n := 0
	for _, w := range b.words {
		n += bits.OnesCount64(w)
	}
	return n
}

// Drain calls fn with the raster rectangle of every flagged tile in
// row-major order and clears the bitmap.
func (b *Bitmap) Drain(fn func(r image.Rectangle)) {
	if b == nil {
		return
	}
	for wi, w := range b.words {
		b.words[wi] = 0
		for w != 0 {
			bit := bits.TrailingZeros64(w)
			w &^= 1 << bit
			i := wi*64 + bit
			fn(b.grid.TileRect(i%b.grid.tilesX, i/b.grid.tilesX))
		}
	}
}
