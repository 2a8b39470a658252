package dab

import (
	"fmt"
	"image"

	"github.com/chewxy/math32"
)

// Params describes one dab in raster coordinates.
type Params struct {
	// X, Y is the dab center.
	X, Y float32

	// Radius is the outer radius in pixels along the minor axis scale.
	Radius float32

	// Hardness in (0,1] is the squared-radius fraction held fully opaque.
	// Values above 1 are clamped to 1.
	Hardness float32

	// AspectRatio ≥ 1 squashes the dab into an ellipse. Values below 1 are
	// clamped to 1.
	AspectRatio float32

	// Angle rotates the ellipse, in degrees.
	Angle float32
}

// Options adds optional per-pixel modulation to a dab.
type Options struct {
	// Selection scales each pixel's opacity by the selection value at the
	// same raster position. Pixels outside the selection image are masked
	// out entirely.
	Selection *image.Gray

	// Texture scales opacity by a tiled grayscale texture anchored at the
	// raster origin.
	Texture *Texture

	// Brushmark scales opacity by a stamp stretched over the dab's
	// ellipse, following its angle and aspect ratio.
	Brushmark *Texture
}

// curve is the two-segment opacity falloff of a dab, precomputed once.
type curve struct {
	hardness        float32
	offset1, slope1 float32
	offset2, slope2 float32
}

func newCurve(hardness float32) curve {
	c := curve{hardness: hardness, offset1: 1}
	if hardness < 1 {
		c.offset2 = 1 / (1 - hardness)
		c.slope2 = -1 / (1 - hardness)
	}
	return c
}

// at returns the opacity at squared normalized radius rr.
func (c curve) at(rr float32) float32 {
	switch {
	case rr > 1:
		return 0
	case rr <= c.hardness:
		return c.offset1 + c.slope1*rr
	default:
		return c.offset2 + c.slope2*rr
	}
}

func quantize(opa float32) uint8 {
	v := opa * AlphaThreshold
	switch {
	case v < 1:
		return 0
	case v >= AlphaThreshold:
		return AlphaThreshold
	}
	return uint8(v + 0.5)
}

// Window returns the raster window a dab covers: its bounding box with a
// one pixel fringe, clipped to bounds.
func Window(p Params, bounds image.Rectangle) image.Rectangle {
	fringe := p.Radius + 1
	x0 := int(math32.Floor(p.X - fringe))
	y0 := int(math32.Floor(p.Y - fringe))
	x1 := int(math32.Floor(p.X + fringe))
	y1 := int(math32.Floor(p.Y + fringe))
	return image.Rect(x0, y0, x1+1, y1+1).Intersect(bounds)
}

// Generate rasterizes p over bounds. It returns ErrInvalidDab for a dab
// with non-positive radius or hardness, and a nil mask when the dab lies
// entirely outside bounds. The returned stream always decodes to exactly
// Rect.Dx()*Rect.Dy() pixels.
func Generate(p Params, bounds image.Rectangle, opts *Options) (*Mask, error) {
	if !(p.Radius > 0) || !(p.Hardness > 0) {
		return nil, fmt.Errorf("%w: radius %v hardness %v", ErrInvalidDab, p.Radius, p.Hardness)
	}
	window := Window(p, bounds)
	if window.Empty() {
		return nil, nil
	}
	if opts == nil {
		opts = &Options{}
	}

	c := newCurve(math32.Min(p.Hardness, 1))
	aspect := math32.Max(p.AspectRatio, 1)
	rad := p.Angle / 360 * 2 * math32.Pi
	sn, cs := math32.Sin(rad), math32.Cos(rad)
	invR2 := 1 / (p.Radius * p.Radius)

	// Worst case: every pixel emitted, plus the terminator.
	enc := encoder{stream: make([]uint16, 0, window.Dx()*window.Dy()+2)}
	for yp := window.Min.Y; yp < window.Max.Y; yp++ {
		yy := float32(yp) + 0.5 - p.Y
		for xp := window.Min.X; xp < window.Max.X; xp++ {
			xx := float32(xp) + 0.5 - p.X
			yyr := (yy*cs - xx*sn) * aspect
			xxr := yy*sn + xx*cs
			rr := (yyr*yyr + xxr*xxr) * invR2

			opa := c.at(rr)
			if opa > 0 {
				opa *= modulation(opts, xp, yp, xxr, yyr, p.Radius)
			}
			enc.pixel(quantize(opa))
		}
	}

	return &Mask{Rect: window, Stream: enc.finish(), Opaque: enc.opaque}, nil
}

// modulation returns the product of the optional selection, texture and
// brushmark factors at raster pixel (x, y), whose ellipse-space offset from
// the dab center is (u, v).
func modulation(opts *Options, x, y int, u, v, radius float32) float32 {
	f := float32(1)
	if sel := opts.Selection; sel != nil {
		if !(image.Point{X: x, Y: y}).In(sel.Rect) {
			return 0
		}
		f *= float32(sel.GrayAt(x, y).Y) / 255
	}
	if opts.Texture != nil {
		f *= opts.Texture.At(x, y)
	}
	if opts.Brushmark != nil {
		f *= opts.Brushmark.Sample((u/radius+1)/2, (v/radius+1)/2)
	}
	return f
}
