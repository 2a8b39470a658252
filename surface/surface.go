// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import (
	"image"
	stdcolor "image/color"

	"github.com/gogpu/brushwork/brush"
	"github.com/gogpu/brushwork/internal/assert"
	"github.com/gogpu/brushwork/internal/blend"
	"github.com/gogpu/brushwork/internal/color"
	"github.com/gogpu/brushwork/internal/dab"
	"github.com/gogpu/brushwork/internal/logging"
	"github.com/gogpu/brushwork/internal/tile"
	"github.com/gogpu/brushwork/raster"
	"github.com/gogpu/brushwork/undo"
)

// sampleHardness shapes the footprint GetColor averages over.
const sampleHardness = 0.5

// Surface paints dabs onto a raster with session-scoped undo.
//
// Surface is NOT thread-safe; it is driven from the painting thread.
type Surface struct {
	r    raster.Raster
	log  undo.Log
	grid tile.Grid
	opts options

	brushmark *dab.Texture
	texture   *dab.Texture

	inSession bool
	shadow    *tile.Set
	box       bbox
	resumed   *undo.Entry
	last      bbox

	// dirty holds the tiles written since the last Flush.
	dirty *tile.Bitmap
}

var _ brush.Surface = (*Surface)(nil)

// New returns a surface painting on r and recording undo steps in log.
// A nil log records into a private undo.Stack.
func New(r raster.Raster, log undo.Log, opts ...Option) *Surface {
	if log == nil {
		log = undo.NewStack()
	}
	grid := tile.NewGrid(r.Bounds())
	s := &Surface{
		r:     r,
		log:   log,
		grid:  grid,
		opts:  defaultOptions(),
		box:   emptyBBox(),
		last:  emptyBBox(),
		dirty: tile.NewBitmap(grid),
	}
	for _, opt := range opts {
		opt(&s.opts)
	}
	s.texture = s.opts.texture
	return s
}

// Raster returns the raster the surface paints on.
func (s *Surface) Raster() raster.Raster { return s.r }

// InSession reports whether a session is open.
func (s *Surface) InSession() bool { return s.inSession }

// UseTextures sets the brushmark and texture for subsequent dabs. A nil
// texture falls back to the surface's WithTexture texture.
func (s *Surface) UseTextures(brushmark, texture *dab.Texture) {
	s.brushmark = brushmark
	s.texture = texture
	if texture == nil {
		s.texture = s.opts.texture
	}
}

// BeginSession opens a session. It is a no-op while a session is open.
func (s *Surface) BeginSession() {
	if s.inSession {
		return
	}
	s.open(tile.NewSet(s.grid, nil), emptyBBox(), nil)
}

// ResumeSession opens a session that amends e: pixels already saved in
// e's payload stay saved, and EndSession updates e instead of pushing a
// new step. It reports false if a session is open or e cannot be amended.
// The tiles saved in e are marked for the next Flush, since amending
// starts by restoring them.
func (s *Surface) ResumeSession(e *undo.Entry) bool {
	if !assert.That(!s.inSession, "surface: resume inside an open session") {
		return false
	}
	if e == nil || e.Invalidated() || e.Payload == nil || e.Payload.Tiles == nil {
		logging.Logger().Debug("surface: entry cannot be resumed")
		return false
	}
	s.open(e.Payload.Tiles, bboxOf(e.Payload.Rect), e)
	e.Payload.Tiles.ForEach(func(t *tile.Tile) { s.dirty.Mark(t.X, t.Y) })
	return true
}

func (s *Surface) open(shadow *tile.Set, box bbox, resumed *undo.Entry) {
	s.inSession = true
	s.shadow = shadow
	s.box = box
	s.resumed = resumed
	if s.opts.preview != nil {
		s.opts.preview.Freeze()
	}
}

// EndSession closes the session. It returns the undo entry holding the
// session's changes: a new entry pushed to the log, the resumed entry, or
// nil if nothing was drawn.
func (s *Surface) EndSession() *undo.Entry {
	if !s.inSession {
		return nil
	}
	defer s.close()

	s.last = s.box
	if e := s.resumed; e != nil {
		e.Payload.Rect = s.box.rect()
		return e
	}
	if s.box.empty() {
		s.shadow.Close()
		return nil
	}
	p := &undo.Payload{Tiles: s.shadow, Rect: s.box.rect()}
	logging.Logger().Debug("surface: session ended", "rect", p.Rect, "tiles", p.Tiles.Len())
	return s.log.Push(p, s.opts.description)
}

func (s *Surface) close() {
	s.inSession = false
	s.shadow = nil
	s.resumed = nil
	s.box = emptyBBox()
	if s.opts.preview != nil {
		s.opts.preview.Thaw()
	}
}

// BBox returns the touched box of the open session, or of the last one if
// none is open. An empty box has x2 < x1.
func (s *Surface) BBox() (x1, y1, x2, y2 int) {
	b := s.last
	if s.inSession {
		b = s.box
	}
	return b.x1, b.y1, b.x2, b.y2
}

// Flush merges every tile written since the previous Flush into the
// visible drawable, if the raster buffers edits. Each dirty tile is
// flushed once, in row-major order.
func (s *Surface) Flush() {
	f, ok := s.r.(raster.Flusher)
	if !ok {
		s.dirty.Drain(func(image.Rectangle) {})
		return
	}
	s.dirty.Drain(f.Flush)
}

// DrawDab implements brush.Surface. It must be called inside a session.
func (s *Surface) DrawDab(d brush.Dab) bool {
	if !assert.That(s.inSession, "surface: DrawDab outside a session") {
		return false
	}
	if d.Opacity <= 0 {
		return false
	}
	m, err := dab.Generate(dab.Params{
		X:           d.X,
		Y:           d.Y,
		Radius:      d.Radius,
		Hardness:    d.Hardness,
		AspectRatio: d.AspectRatio,
		Angle:       d.Angle,
	}, s.r.Bounds(), &dab.Options{
		Selection: s.opts.selection,
		Texture:   s.texture,
		Brushmark: s.brushmark,
	})
	if !assert.That(err == nil, "surface: %v", err) || m == nil || m.Opaque == 0 {
		return false
	}

	missing := false
	s.grid.ForEachInRect(m.Rect, func(tx, ty int) {
		if !s.backup(tx, ty) {
			missing = true
		}
	})
	if missing {
		return false
	}
	reg, err := s.r.Region(m.Rect)
	if err != nil {
		logging.Logger().Warn("surface: dab region unavailable", "rect", m.Rect, "err", err)
		return false
	}
	buf := blend.Buffer{Pix: reg.Pix, Stride: reg.Stride, BPP: reg.BPP, Rect: reg.Rect}
	if !composite(buf, m, d) {
		return false
	}
	s.box.grow(m.Rect)
	s.dirty.MarkRect(m.Rect)
	return true
}

// composite applies the normal and lock-alpha shares of a dab.
func composite(buf blend.Buffer, m *dab.Mask, d brush.Dab) bool {
	src := color.ColorU8{R: d.Color.R, G: d.Color.G, B: d.Color.B, A: d.Color.A}
	lock := min(max(d.LockAlpha, 0), 1)
	if normal := d.Opacity * (1 - lock); normal > 0 {
		if err := blend.OverWithAlpha(buf, m, src, normal); err != nil {
			logging.Logger().Warn("surface: composite failed", "err", err)
			return false
		}
	}
	if locked := d.Opacity * lock; locked > 0 {
		src.A = 255
		if err := blend.LockAlpha(buf, m, src, locked); err != nil {
			logging.Logger().Warn("surface: composite failed", "err", err)
			return false
		}
	}
	return true
}

// backup copies tile (tx, ty) into the shadow before its first write in
// the session. It reports false if the tile cannot be read.
func (s *Surface) backup(tx, ty int) bool {
	if s.shadow.Has(tx, ty) {
		return true
	}
	t := s.shadow.Alloc(tx, ty, s.r.BytesPerPixel())
	if t == nil {
		return false
	}
	reg, err := s.r.Region(t.Rect)
	if err != nil {
		logging.Logger().Warn("surface: tile unavailable", "tile", [2]int{tx, ty}, "err", err)
		tile.DefaultPool().Put(t)
		return false
	}
	t.CopyFrom(reg.Pix, reg.Stride)
	return s.shadow.Put(t)
}

// GetColor implements brush.Surface: the average color under a round
// footprint, or the invalid sentinel (opaque-channel red, zero alpha) if
// the footprint holds no coverage. It never opens a session.
func (s *Surface) GetColor(x, y, radius float32) stdcolor.NRGBA {
	m, err := dab.Generate(dab.Params{
		X:           x,
		Y:           y,
		Radius:      max(radius, 1),
		Hardness:    sampleHardness,
		AspectRatio: 1,
	}, s.r.Bounds(), &dab.Options{Selection: s.opts.selection})
	if err != nil || m == nil {
		return blend.InvalidColor.Std()
	}
	reg, err := s.r.Region(m.Rect)
	if err != nil {
		logging.Logger().Warn("surface: sample region unavailable", "rect", m.Rect, "err", err)
		return blend.InvalidColor.Std()
	}
	var sum blend.Sum
	buf := blend.Buffer{Pix: reg.Pix, Stride: reg.Stride, BPP: reg.BPP, Rect: reg.Rect}
	if err := blend.Accumulate(buf, m, &sum); err != nil {
		return blend.InvalidColor.Std()
	}
	return sum.Color().Std()
}
