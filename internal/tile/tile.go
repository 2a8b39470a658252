// Package tile provides the tiled pixel storage used for undo shadows.
//
// A raster is divided into 64x64 pixel tiles addressed by column and row.
// Edge tiles are smaller when the raster is not evenly divisible. Tiles own
// a private copy of their pixels in the raster's own layout (bytes per
// pixel, row-major, tightly packed).
//
// Thread safety: Set and Bitmap are used from the single painting thread.
// Pool is safe for concurrent use.
package tile

import "image"

const (
	// Width is the width of a tile in pixels.
	Width = 64

	// Height is the height of a tile in pixels.
	Height = 64
)

// Tile is a copy of one tile's pixels.
type Tile struct {
	// X is the tile column index (0-based).
	X int

	// Y is the tile row index (0-based).
	Y int

	// Rect is the tile's pixel rectangle in raster space. It may be smaller
	// than Width x Height for edge tiles.
	Rect image.Rectangle

	// BPP is the number of bytes per pixel.
	BPP int

	// Data holds Rect.Dx()*Rect.Dy()*BPP bytes, row-major.
	Data []byte
}

// Reset clears the tile data for reuse.
func (t *Tile) Reset() {
	clear(t.Data)
}

// Stride returns the row stride in bytes.
func (t *Tile) Stride() int {
	return t.Rect.Dx() * t.BPP
}

// ByteSize returns the total size of the tile data in bytes.
func (t *Tile) ByteSize() int {
	return t.Rect.Dx() * t.Rect.Dy() * t.BPP
}

// CopyFrom fills the tile from a region of pixels laid out with the given
// stride, whose first byte is the pixel at t.Rect.Min.
func (t *Tile) CopyFrom(pix []byte, stride int) {
	row := t.Stride()
	for y := range t.Rect.Dy() {
		copy(t.Data[y*row:(y+1)*row], pix[y*stride:y*stride+row])
	}
}

// CopyTo writes the tile back into a region laid out with the given stride,
// whose first byte is the pixel at t.Rect.Min.
func (t *Tile) CopyTo(pix []byte, stride int) {
	row := t.Stride()
	for y := range t.Rect.Dy() {
		copy(pix[y*stride:y*stride+row], t.Data[y*row:(y+1)*row])
	}
}

// Swap exchanges the tile's pixels with a region laid out with the given
// stride, whose first byte is the pixel at t.Rect.Min.
func (t *Tile) Swap(pix []byte, stride int) {
	row := t.Stride()
	for y := range t.Rect.Dy() {
		a := t.Data[y*row : (y+1)*row]
		b := pix[y*stride : y*stride+row]
		for i := range a {
			a[i], b[i] = b[i], a[i]
		}
	}
}
