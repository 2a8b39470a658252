package tile

import (
	"image"
	"sync"
)

// Pool provides reuse of Tile buffers via sync.Pool.
//
// Shadows are created and dropped once per painting session, so pooling
// keeps a long painting session from churning through tile allocations.
//
// Thread safety: Pool is safe for concurrent use.
type Pool struct {
	// pools holds separate sync.Pool instances per tile shape.
	pools sync.Map // poolKey -> *sync.Pool
}

type poolKey struct {
	w, h, bpp int
}

// NewPool creates a new tile pool.
func NewPool() *Pool {
	return &Pool{}
}

// Get returns a zeroed tile covering rect for raster tile (tx, ty).
// It returns nil for an empty rectangle or non-positive bpp.
func (p *Pool) Get(tx, ty int, rect image.Rectangle, bpp int) *Tile {
	if rect.Empty() || bpp <= 0 {
		return nil
	}
	key := poolKey{w: rect.Dx(), h: rect.Dy(), bpp: bpp}
	t := p.pool(key).Get().(*Tile)
	t.Reset()
	t.X, t.Y = tx, ty
	t.Rect = rect
	t.BPP = bpp
	return t
}

// Put returns a tile to the pool. Put(nil) is a no-op.
func (p *Pool) Put(t *Tile) {
	if t == nil {
		return
	}
	key := poolKey{w: t.Rect.Dx(), h: t.Rect.Dy(), bpp: t.BPP}
	if pool, ok := p.pools.Load(key); ok {
		pool.(*sync.Pool).Put(t)
	}
	// Tiles of an unknown shape are left to the GC.
}

func (p *Pool) pool(key poolKey) *sync.Pool {
	if pool, ok := p.pools.Load(key); ok {
		return pool.(*sync.Pool)
	}
	newPool := &sync.Pool{
		New: func() any {
			return &Tile{Data: make([]byte, key.w*key.h*key.bpp)}
		},
	}
	actual, _ := p.pools.LoadOrStore(key, newPool)
	return actual.(*sync.Pool)
}

// defaultPool is the package-level tile pool.
var defaultPool = NewPool()

// DefaultPool returns the package-level pool.
func DefaultPool() *Pool { return defaultPool }
