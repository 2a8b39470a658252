package blend

import (
	"image"

	"github.com/gogpu/brushwork/internal/color"
	"github.com/gogpu/brushwork/internal/dab"
)

// InvalidColor is the result of sampling a footprint with no coverage:
// opaque-channel red with zero alpha.
var InvalidColor = color.ColorF32{R: 1, G: 0, B: 0, A: 0}

// Sum accumulates mask-weighted color. The zero value is an empty sum;
// several buffers (tiles) can be added into one Sum.
type Sum struct {
	// Weight is Σ mask.
	Weight int64
	// Alpha is Σ mask·alpha.
	Alpha int64
	// R, G, B are Σ mask·premultiplied channel.
	R, G, B int64
}

// Accumulate adds the pixels of src under the mask to sum.
func Accumulate(src Buffer, m *dab.Mask, sum *Sum) error {
	if !src.valid() {
		return ErrUnsupportedFormat
	}
	if m == nil || m.Opaque == 0 || !m.Rect.Overlaps(src.Rect) {
		return nil
	}
	return m.Decode(func(x, y int, opa uint8) {
		if !(image.Point{X: x, Y: y}).In(src.Rect) {
			return
		}
		i := src.offset(x, y)
		px := src.Pix[i : i+src.BPP]
		a := uint8(255)
		if src.HasAlpha() {
			a = px[3]
		}
		w := int64(opa)
		sum.Weight += w
		sum.Alpha += w * int64(a)
		sum.R += w * int64(mulDiv255Exact(px[0], a))
		sum.G += w * int64(mulDiv255Exact(px[1], a))
		sum.B += w * int64(mulDiv255Exact(px[2], a))
	})
}

// Color returns the average straight color under the footprint. Alpha is
// the weighted mean coverage; color channels are normalized by the
// accumulated alpha. A sum with zero alpha yields InvalidColor.
func (sum Sum) Color() color.ColorF32 {
	if sum.Alpha == 0 || sum.Weight == 0 {
		return InvalidColor
	}
	a := float32(sum.Alpha)
	return color.ColorF32{
		R: min(float32(sum.R)*255/a, 255) / 255,
		G: min(float32(sum.G)*255/a, 255) / 255,
		B: min(float32(sum.B)*255/a, 255) / 255,
		A: float32(sum.Alpha) / float32(sum.Weight) / 255,
	}
}
