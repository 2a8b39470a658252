// Package color provides the color types and conversions used by the brush
// engine: float and 8-bit RGBA plus the HSV space brush settings use.
package color

import stdcolor "image/color"

// ColorF32 represents a straight (non-premultiplied) color with float32
// components in [0,1].
type ColorF32 struct {
	R, G, B, A float32
}

// ColorU8 represents a straight color with uint8 components in [0,255].
type ColorU8 struct {
	R, G, B, A uint8
}

// HSV is a hue/saturation/value triple, each component in [0,1].
// Hue wraps: 0 and 1 are both red.
type HSV struct {
	H, S, V float32
}

// FromStd converts any standard library color to a straight ColorF32.
func FromStd(c stdcolor.Color) ColorF32 {
	if c == nil {
		return ColorF32{A: 1}
	}
	n := stdcolor.NRGBAModel.Convert(c).(stdcolor.NRGBA)
	return U8ToF32(ColorU8{R: n.R, G: n.G, B: n.B, A: n.A})
}

// Std converts c to a standard library NRGBA color.
func (c ColorF32) Std() stdcolor.NRGBA {
	u := F32ToU8(c)
	return stdcolor.NRGBA{R: u.R, G: u.G, B: u.B, A: u.A}
}
