// Package undo records painting sessions so they can be undone.
//
// A session produces one Payload: copies of the tiles it touched, taken
// before the first write to each, plus the touched bounding box. A Log
// stores payloads as Entries; an Entry notifies observers when it is
// popped or otherwise invalidated, so deferred work on it can be dropped.
package undo

import (
	"fmt"
	"image"

	"github.com/gogpu/brushwork/internal/tile"
	"github.com/gogpu/brushwork/raster"
)

// Payload holds the pixels a session overwrote.
type Payload struct {
	// Tiles holds the tile copies.
	Tiles *tile.Set

	// Rect is the touched bounding box in raster coordinates.
	Rect image.Rectangle
}

// Restore writes the saved tiles back into r.
func (p *Payload) Restore(r raster.Raster) error {
	return p.each(r, func(t *tile.Tile, reg raster.Region) { t.CopyTo(reg.Pix, reg.Stride) })
}

// Swap exchanges the saved tiles with the pixels in r. Applying Swap twice
// leaves both unchanged, so one payload serves undo and redo.
func (p *Payload) Swap(r raster.Raster) error {
	return p.each(r, func(t *tile.Tile, reg raster.Region) { t.Swap(reg.Pix, reg.Stride) })
}

func (p *Payload) each(r raster.Raster, fn func(*tile.Tile, raster.Region)) error {
	if p == nil || p.Tiles == nil {
		return nil
	}
	bpp := r.BytesPerPixel()
	var err error
	p.Tiles.ForEach(func(t *tile.Tile) {
		if err != nil {
			return
		}
		if t.BPP != bpp {
			err = fmt.Errorf("undo: tile (%d,%d) has %d bytes per pixel, raster has %d", t.X, t.Y, t.BPP, bpp)
			return
		}
		reg, rerr := r.Region(t.Rect)
		if rerr != nil {
			err = fmt.Errorf("undo: tile (%d,%d): %w", t.X, t.Y, rerr)
			return
		}
		fn(t, reg)
	})
	return err
}

// Release returns the tile memory to its pool. The payload is empty
// afterwards.
func (p *Payload) Release() {
	if p == nil || p.Tiles == nil {
		return
	}
	p.Tiles.Close()
	p.Tiles = nil
}
