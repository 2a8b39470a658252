// Package blend composites colored dabs into 8-bit pixel buffers.
//
// Destination buffers hold straight (non-premultiplied) color, as host
// drawables store it, either RGB (3 bytes per pixel) or RGBA (4 bytes per
// pixel). Compositing is computed in premultiplied space with degree-tracked
// fixed-point arithmetic, so each output channel is rounded exactly once.
//
// All operations consume an RLE dab mask and an overall opacity in [0,1].
// Pixels of the mask that fall outside the buffer are ignored, so a mask
// spanning several tiles can be applied tile by tile.
package blend

import (
	"errors"
	"image"

	"github.com/gogpu/brushwork/internal/color"
	"github.com/gogpu/brushwork/internal/dab"
	"github.com/gogpu/brushwork/internal/fixed"
)

// ErrUnsupportedFormat is returned for buffers that are neither RGB nor
// RGBA with 8 bits per channel.
var ErrUnsupportedFormat = errors.New("blend: unsupported pixel format")

// Mode selects the compositing rule.
type Mode uint8

const (
	// ModeOver paints the color over the destination.
	ModeOver Mode = iota

	// ModeOverWithAlpha paints a color that carries its own alpha: 0 erases,
	// 1 paints opaquely, values between blend (smudge).
	ModeOverWithAlpha

	// ModeLockAlpha recolors the destination without changing its alpha.
	ModeLockAlpha
)

var modeNames = [...]string{
	ModeOver:          "Over",
	ModeOverWithAlpha: "OverWithAlpha",
	ModeLockAlpha:     "LockAlpha",
}

// String returns the mode name.
func (m Mode) String() string {
	if int(m) < len(modeNames) {
		return modeNames[m]
	}
	return "Unknown"
}

// Buffer is a rectangular window of 8-bit pixels in raster coordinates.
type Buffer struct {
	// Pix holds the pixels; the first byte is the pixel at Rect.Min.
	Pix []byte

	// Stride is the distance in bytes between vertically adjacent pixels.
	Stride int

	// BPP is the number of bytes per pixel: 3 (RGB) or 4 (RGBA).
	BPP int

	// Rect is the buffer's extent in raster coordinates.
	Rect image.Rectangle
}

// HasAlpha reports whether the buffer stores an alpha channel.
func (b Buffer) HasAlpha() bool { return b.BPP == 4 }

// offset returns the byte offset of raster pixel (x, y).
func (b Buffer) offset(x, y int) int {
	return (y-b.Rect.Min.Y)*b.Stride + (x-b.Rect.Min.X)*b.BPP
}

func (b Buffer) valid() bool {
	return b.BPP == 3 || b.BPP == 4
}

var s = fixed.Depth8

// Composite applies the dab mask to dst with the given mode. src.A is the
// color alpha used by ModeOverWithAlpha; the other modes treat the color as
// opaque. An opacity of zero or an empty mask leaves dst untouched.
func Composite(dst Buffer, m *dab.Mask, mode Mode, src color.ColorU8, opacity float32) error {
	if !dst.valid() {
		return ErrUnsupportedFormat
	}
	if m == nil || m.Opaque == 0 || !m.Rect.Overlaps(dst.Rect) {
		return nil
	}
	op := s.FromFloat(float64(opacity))
	if op.Raw() == 0 {
		return nil
	}
	if mode != ModeOverWithAlpha {
		src.A = 255
	}

	var pixel func(px []byte, opa uint8)
	switch {
	case mode == ModeLockAlpha && dst.HasAlpha():
		pixel = func(px []byte, opa uint8) { lockAlpha(px, opa, op, src) }
	case dst.HasAlpha():
		pixel = func(px []byte, opa uint8) { overRGBA(px, opa, op, src) }
	default:
		pixel = func(px []byte, opa uint8) { overRGB(px, opa, op, src) }
	}

	return m.Decode(func(x, y int, opa uint8) {
		if !(image.Point{X: x, Y: y}).In(dst.Rect) {
			return
		}
		i := dst.offset(x, y)
		pixel(dst.Pix[i:i+dst.BPP], opa)
	})
}

// Over paints src over dst.
func Over(dst Buffer, m *dab.Mask, src color.ColorU8, opacity float32) error {
	return Composite(dst, m, ModeOver, src, opacity)
}

// OverWithAlpha paints src, including its alpha, over dst.
func OverWithAlpha(dst Buffer, m *dab.Mask, src color.ColorU8, opacity float32) error {
	return Composite(dst, m, ModeOverWithAlpha, src, opacity)
}

// LockAlpha recolors dst's covered pixels without changing their alpha.
func LockAlpha(dst Buffer, m *dab.Mask, src color.ColorU8, opacity float32) error {
	return Composite(dst, m, ModeLockAlpha, src, opacity)
}

// coverage returns mask × opacity × color alpha at degree 3.
func coverage(opa uint8, op fixed.Value, srcA uint8) fixed.Value {
	return s.Mul(s.Mul(s.Pixel(uint32(opa)), op), s.Pixel(uint32(srcA)))
}

// overRGBA composites into a straight-alpha RGBA pixel. With
// k = mask·opacity and sa = k·srcA:
//
//	a' = sa + (1−k)·da
//	c' = (sa·src + (1−k)·da·dc) / a'
//
// A color alpha of zero therefore erases by k. A pixel whose resulting alpha
// is zero takes the raw brush color, so fully erased pixels keep a
// meaningful color for later smudging.
func overRGBA(px []byte, opa uint8, op fixed.Value, src color.ColorU8) {
	k := s.Mul(s.Pixel(uint32(opa)), op)
	sa := s.Mul(k, s.Pixel(uint32(src.A)))
	keep := s.Mul(s.Sub(s.One(2), k), s.Pixel(uint32(px[3])))
	outA := s.Add(sa, keep)

	a, err := s.Evaluate(outA)
	if err != nil || a == 0 || outA.Raw() == 0 {
		px[0], px[1], px[2], px[3] = src.R, src.G, src.B, 0
		return
	}
	srcC := [3]uint8{src.R, src.G, src.B}
	for c := range 3 {
		num := s.Add(s.Mul(sa, s.Pixel(uint32(srcC[c]))), s.Mul(keep, s.Pixel(uint32(px[c]))))
		px[c] = uint8(s.MustEvaluate(s.Div(num, outA))) //nolint:gosec // evaluated to 8 bits
	}
	px[3] = uint8(a) //nolint:gosec // evaluated to 8 bits
}

// overRGB composites into an RGB pixel: c' = sa·src + (1−sa)·dc.
func overRGB(px []byte, opa uint8, op fixed.Value, src color.ColorU8) {
	sa := coverage(opa, op, src.A)
	inv := s.Sub(s.One(3), sa)
	srcC := [3]uint8{src.R, src.G, src.B}
	for c := range 3 {
		v := s.Add(s.Mul(sa, s.Pixel(uint32(srcC[c]))), s.Mul(inv, s.Pixel(uint32(px[c]))))
		px[c] = uint8(s.MustEvaluate(v)) //nolint:gosec // evaluated to 8 bits
	}
}

// lockAlpha recolors a straight-alpha RGBA pixel. The brush color is
// premultiplied by the destination alpha before blending, so transparent
// pixels are never touched and alpha never changes:
//
//	c' = k·src + (1−k)·dc,  k = mask·opacity
func lockAlpha(px []byte, opa uint8, op fixed.Value, src color.ColorU8) {
	if px[3] == 0 {
		return
	}
	k := s.Mul(s.Pixel(uint32(opa)), op)
	inv := s.Sub(s.One(2), k)
	srcC := [3]uint8{src.R, src.G, src.B}
	for c := range 3 {
		v := s.Add(s.Mul(k, s.Pixel(uint32(srcC[c]))), s.Mul(inv, s.Pixel(uint32(px[c]))))
		px[c] = uint8(s.MustEvaluate(v)) //nolint:gosec // evaluated to 8 bits
	}
}
