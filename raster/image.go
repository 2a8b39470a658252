package raster

import (
	"fmt"
	"image"
	"image/color"

	"golang.org/x/image/draw"
)

// Image is an in-memory Raster.
type Image struct {
	pix    []byte
	stride int
	format Format
	rect   image.Rectangle

	updates int
	flushed image.Rectangle

	// OnFlush, if set, is called by Flush with the merged rectangle.
	OnFlush func(r image.Rectangle)
}

var (
	_ Raster      = (*Image)(nil)
	_ Flusher     = (*Image)(nil)
	_ image.Image = (*Image)(nil)
)

// New returns a zeroed (transparent black) w×h raster.
func New(w, h int, format Format) (*Image, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, w, h)
	}
	bpp := format.BytesPerPixel()
	if bpp == 0 {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedFormat, format)
	}
	return &Image{
		pix:    make([]byte, w*h*bpp),
		stride: w * bpp,
		format: format,
		rect:   image.Rect(0, 0, w, h),
	}, nil
}

// FromImage copies src into a new raster of the given format.
func FromImage(src image.Image, format Format) (*Image, error) {
	b := src.Bounds()
	m, err := New(b.Dx(), b.Dy(), format)
	if err != nil {
		return nil, err
	}
	nrgba := image.NewNRGBA(m.rect)
	draw.Copy(nrgba, image.Point{}, src, b, draw.Src, nil)
	for y := range m.rect.Dy() {
		for x := range m.rect.Dx() {
			m.set(x, y, nrgba.NRGBAAt(x, y))
		}
	}
	return m, nil
}

// Bounds implements Raster.
func (m *Image) Bounds() image.Rectangle { return m.rect }

// BytesPerPixel implements Raster.
func (m *Image) BytesPerPixel() int { return m.format.BytesPerPixel() }

// Format returns the pixel format.
func (m *Image) Format() Format { return m.format }

// Region implements Raster.
func (m *Image) Region(r image.Rectangle) (Region, error) {
	if r.Empty() || !r.In(m.rect) {
		return Region{}, fmt.Errorf("%w: %v not in %v", ErrOutOfBounds, r, m.rect)
	}
	bpp := m.format.BytesPerPixel()
	start := r.Min.Y*m.stride + r.Min.X*bpp
	end := (r.Max.Y-1)*m.stride + r.Max.X*bpp
	return Region{
		Pix:    m.pix[start:end:end],
		Stride: m.stride,
		BPP:    bpp,
		Rect:   r,
	}, nil
}

// Flush implements Flusher. The in-memory raster is always visible; Flush
// records the rectangle and calls OnFlush.
func (m *Image) Flush(r image.Rectangle) {
	r = r.Intersect(m.rect)
	if r.Empty() {
		return
	}
	m.updates++
	m.flushed = m.flushed.Union(r)
	if m.OnFlush != nil {
		m.OnFlush(r)
	}
}

// Updates returns how many non-empty flushes happened.
func (m *Image) Updates() int { return m.updates }

// Flushed returns the union of all flushed rectangles.
func (m *Image) Flushed() image.Rectangle { return m.flushed }

// Fill sets every pixel to c. RGB rasters drop alpha.
func (m *Image) Fill(c color.NRGBA) {
	for y := range m.rect.Dy() {
		for x := range m.rect.Dx() {
			m.set(x, y, c)
		}
	}
}

func (m *Image) set(x, y int, c color.NRGBA) {
	i := y*m.stride + x*m.format.BytesPerPixel()
	m.pix[i], m.pix[i+1], m.pix[i+2] = c.R, c.G, c.B
	if m.format.HasAlpha() {
		m.pix[i+3] = c.A
	}
}

// NRGBAAt returns the pixel at (x, y); RGB rasters report opaque pixels.
func (m *Image) NRGBAAt(x, y int) color.NRGBA {
	if !(image.Point{X: x, Y: y}).In(m.rect) {
		return color.NRGBA{}
	}
	i := y*m.stride + x*m.format.BytesPerPixel()
	c := color.NRGBA{R: m.pix[i], G: m.pix[i+1], B: m.pix[i+2], A: 255}
	if m.format.HasAlpha() {
		c.A = m.pix[i+3]
	}
	return c
}

// ColorModel implements image.Image.
func (m *Image) ColorModel() color.Model { return color.NRGBAModel }

// At implements image.Image.
func (m *Image) At(x, y int) color.Color { return m.NRGBAAt(x, y) }

// Snapshot returns a copy of the raster as an NRGBA image.
func (m *Image) Snapshot() *image.NRGBA {
	dst := image.NewNRGBA(m.rect)
	if m.format == FormatRGBA {
		src := &image.NRGBA{Pix: m.pix, Stride: m.stride, Rect: m.rect}
		draw.Copy(dst, image.Point{}, src, m.rect, draw.Src, nil)
		return dst
	}
	draw.Copy(dst, image.Point{}, m, m.rect, draw.Src, nil)
	return dst
}
