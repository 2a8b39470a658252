// Package brushwork is a brush-stroke painting engine for Go.
//
// # Overview
//
// brushwork turns stylus samples into dabs, composites them onto a raster
// and records every stroke as one undoable step. Finished strokes can be
// refined after the fact, when the host is idle, without blocking input.
//
// # Quick Start
//
//	import "github.com/gogpu/brushwork"
//
//	cv, err := brushwork.NewCanvas(512, 512)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for i := range 50 {
//	    cv.Motion(0.01, stroke.Coords{X: float32(10 + 8*i), Y: 256, Pressure: 0.8})
//	}
//	cv.EndStroke()
//	_ = cv.Settle(context.Background())
//	_ = cv.SavePNG("stroke.png")
//
// # Architecture
//
// The library is organized into:
//   - Public API: Canvas, SetLogger
//   - Painting: brush (dynamics), stroke (record and replay), surface
//     (dabs with session-scoped undo), postprocess (deferred refinement)
//   - Storage: raster (pixel access), undo (tile-backed undo log)
//   - Scheduling: eventloop (timeouts and idle callbacks)
//   - Internal: fixed (fixed-point math), dab (RLE masks), blend
//     (compositing), tile (tile copies)
//
// # Coordinate System
//
// Raster coordinates put the origin at the top-left pixel corner with X
// increasing right and Y increasing down. Pixel (x, y) covers the square
// from (x, y) to (x+1, y+1).
//
// # Threading
//
// The engine is single-threaded and cooperative. A Canvas and everything
// it owns must be driven from one goroutine.
package brushwork

// Version is the current version of the library.
const Version = "0.1.0"
