// Package raster provides access to rectangular pixel regions of a larger
// raster: the narrow slice of a host drawable the brush engine touches.
package raster

import (
	"errors"
	"image"
)

// Errors returned by raster implementations.
var (
	// ErrInvalidDimensions is returned when width or height is non-positive.
	ErrInvalidDimensions = errors.New("raster: invalid dimensions")

	// ErrUnsupportedFormat is returned for an unknown pixel format.
	ErrUnsupportedFormat = errors.New("raster: unsupported format")

	// ErrOutOfBounds is returned when a region is not inside the raster.
	ErrOutOfBounds = errors.New("raster: region out of bounds")
)

// Format is an 8-bit-per-channel pixel layout.
type Format uint8

const (
	// FormatRGB stores 3 bytes per pixel without alpha.
	FormatRGB Format = iota + 1

	// FormatRGBA stores 4 bytes per pixel, straight alpha.
	FormatRGBA
)

// BytesPerPixel returns the pixel size in bytes, 0 for unknown formats.
func (f Format) BytesPerPixel() int {
	switch f {
	case FormatRGB:
		return 3
	case FormatRGBA:
		return 4
	}
	return 0
}

// HasAlpha reports whether the format stores alpha.
func (f Format) HasAlpha() bool { return f == FormatRGBA }

// String returns the format name.
func (f Format) String() string {
	switch f {
	case FormatRGB:
		return "RGB"
	case FormatRGBA:
		return "RGBA"
	}
	return "Unknown"
}

// Region is a writable view into a raster. Pix aliases the raster's
// memory: writes are visible to the raster immediately.
type Region struct {
	// Pix holds the region's pixels; Pix[0] is the pixel at Rect.Min.
	Pix []byte

	// Stride is the byte distance between vertically adjacent pixels.
	Stride int

	// BPP is the number of bytes per pixel.
	BPP int

	// Rect is the region's extent in raster coordinates.
	Rect image.Rectangle
}

// Offset returns the byte offset of raster pixel (x, y) in Pix.
func (r Region) Offset(x, y int) int {
	return (y-r.Rect.Min.Y)*r.Stride + (x-r.Rect.Min.X)*r.BPP
}

// Raster is a rectangular pixel store.
type Raster interface {
	// Bounds returns the raster extent.
	Bounds() image.Rectangle

	// BytesPerPixel returns 3 (RGB) or 4 (RGBA).
	BytesPerPixel() int

	// Region returns an in-place view of r, which must lie inside Bounds.
	Region(r image.Rectangle) (Region, error)
}

// Flusher is implemented by rasters that buffer edits: Flush merges the
// edits inside r into the visible drawable.
type Flusher interface {
	Flush(r image.Rectangle)
}
