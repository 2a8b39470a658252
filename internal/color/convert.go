package color

import "github.com/chewxy/math32"

// U8ToF32 converts ColorU8 to ColorF32.
// Each uint8 component [0,255] is mapped to float32 [0,1].
func U8ToF32(c ColorU8) ColorF32 {
	return ColorF32{
		R: float32(c.R) / 255.0,
		G: float32(c.G) / 255.0,
		B: float32(c.B) / 255.0,
		A: float32(c.A) / 255.0,
	}
}

// F32ToU8 converts ColorF32 to ColorU8.
// Each float32 component [0,1] is mapped to uint8 [0,255] with rounding.
func F32ToU8(c ColorF32) ColorU8 {
	return ColorU8{
		R: clampAndRound(c.R),
		G: clampAndRound(c.G),
		B: clampAndRound(c.B),
		A: clampAndRound(c.A),
	}
}

// clampAndRound clamps a float32 to [0,1] and converts to uint8 with rounding.
func clampAndRound(v float32) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255.0 + 0.5)
}

// RGBToHSV converts straight RGB components in [0,1] to HSV.
func RGBToHSV(r, g, b float32) HSV {
	hi := math32.Max(math32.Max(r, g), b)
	lo := math32.Min(math32.Min(r, g), b)
	d := hi - lo

	var h, s float32
	if hi > 0 {
		s = d / hi
	}
	if d > 0 {
		switch hi {
		case r:
			h = (g - b) / d
			if g < b {
				h += 6
			}
		case g:
			h = 2 + (b-r)/d
		default:
			h = 4 + (r-g)/d
		}
		h /= 6
	}
	return HSV{H: h, S: s, V: hi}
}

// RGB converts c back to straight RGB components in [0,1].
// Out-of-range saturation and value are clamped; hue wraps.
func (c HSV) RGB() (r, g, b float32) {
	h := c.H - math32.Floor(c.H)
	s := clamp01(c.S)
	v := clamp01(c.V)
	if s == 0 {
		return v, v, v
	}

	h *= 6
	i := int(h) % 6
	f := h - math32.Floor(h)
	p := v * (1 - s)
	q := v * (1 - s*f)
	t := v * (1 - s*(1-f))

	switch i {
	case 0:
		return v, t, p
	case 1:
		return q, v, p
	case 2:
		return p, v, t
	case 3:
		return p, q, v
	case 4:
		return t, p, v
	default:
		return v, p, q
	}
}

func clamp01(v float32) float32 {
	return math32.Min(math32.Max(v, 0), 1)
}
