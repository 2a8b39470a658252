// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import (
	"image"
	"math"
)

// bbox is the touched region of a session: (x1, y1) inclusive,
// (x2, y2) exclusive. An empty box has x2 < x1.
type bbox struct {
	x1, y1, x2, y2 int
}

func emptyBBox() bbox {
	return bbox{x1: math.MaxInt, y1: math.MaxInt, x2: math.MinInt, y2: math.MinInt}
}

func bboxOf(r image.Rectangle) bbox {
	if r.Empty() {
		return emptyBBox()
	}
	return bbox{x1: r.Min.X, y1: r.Min.Y, x2: r.Max.X, y2: r.Max.Y}
}

func (b bbox) empty() bool { return b.x2 < b.x1 }

func (b *bbox) grow(r image.Rectangle) {
	if r.Empty() {
		return
	}
	b.x1 = min(b.x1, r.Min.X)
	b.y1 = min(b.y1, r.Min.Y)
	b.x2 = max(b.x2, r.Max.X)
	b.y2 = max(b.y2, r.Max.Y)
}

func (b bbox) rect() image.Rectangle {
	if b.empty() {
		return image.Rectangle{}
	}
	return image.Rect(b.x1, b.y1, b.x2, b.y2)
}
