// Package dab rasterizes a single brush dab into a run-length-encoded
// opacity mask.
//
// The mask covers a window of the target raster: the dab's bounding box
// clipped to the raster bounds. Opacities are 8-bit; zero-opacity pixels
// are not stored but folded into skip counts, so compositing can jump over
// the transparent fringe of an elliptical dab without touching it.
//
// Stream layout ([]uint16, raster order over the window):
//
//	op op op 0 skip op op 0 skip ... 0 0
//
// A non-zero entry is the opacity of the next pixel. A zero entry is
// followed by a skip count of transparent pixels; counts above 65535 are
// split over consecutive skip pairs. The pair 0, 0 ends the stream.
package dab

import (
	"errors"
	"fmt"
	"image"
	"math"
)

// ErrInvalidDab is returned for a dab with nothing to draw: non-positive
// radius or hardness.
var ErrInvalidDab = errors.New("dab: invalid parameters")

// AlphaThreshold is the quantization scale. A pixel is emitted only when
// opacity × AlphaThreshold ≥ 1.
const AlphaThreshold = 255

const maxSkip = math.MaxUint16

// Mask is an RLE dab mask over Rect.
type Mask struct {
	// Rect is the window in raster coordinates. It is never empty for a
	// mask returned by Generate.
	Rect image.Rectangle

	// Stream is the encoded opacity stream described in the package doc.
	Stream []uint16

	// Opaque is the number of pixels with non-zero opacity.
	Opaque int
}

// encoder appends to a mask stream, coalescing transparent runs.
type encoder struct {
	stream []uint16
	skip   int
	opaque int
}

func (e *encoder) pixel(opa uint8) {
	if opa == 0 {
		e.skip++
		return
	}
	e.flushSkip()
	e.stream = append(e.stream, uint16(opa))
	e.opaque++
}

func (e *encoder) flushSkip() {
	for e.skip > 0 {
		n := min(e.skip, maxSkip)
		e.stream = append(e.stream, 0, uint16(n)) //nolint:gosec // n <= maxSkip
		e.skip -= n
	}
}

func (e *encoder) finish() []uint16 {
	e.flushSkip()
	return append(e.stream, 0, 0)
}

// Decode walks the stream in raster order. For every emitted pixel fn is
// called with its raster coordinates and opacity; transparent runs are
// skipped without calls. Decode stops early and returns the error if the
// stream is malformed.
func (m *Mask) Decode(fn func(x, y int, opa uint8)) error {
	w := m.Rect.Dx()
	total := w * m.Rect.Dy()
	i := 0
	for pos := 0; ; {
		if pos > total {
			return fmt.Errorf("dab: stream overruns window by %d pixels", pos-total)
		}
		if i >= len(m.Stream) {
			return errors.New("dab: unterminated stream")
		}
		v := m.Stream[i]
		i++
		if v != 0 {
			if pos == total {
				return errors.New("dab: opacity past end of window")
			}
			if fn != nil {
				fn(m.Rect.Min.X+pos%w, m.Rect.Min.Y+pos/w, uint8(v)) //nolint:gosec // opacities are 8 bit
			}
			pos++
			continue
		}
		if i >= len(m.Stream) {
			return errors.New("dab: truncated skip")
		}
		skip := int(m.Stream[i])
		i++
		if skip == 0 {
			if pos != total {
				return fmt.Errorf("dab: stream covers %d of %d pixels", pos, total)
			}
			return nil
		}
		pos += skip
	}
}

// Count returns the number of window pixels the stream accounts for:
// opacity entries plus skipped pixels.
func (m *Mask) Count() int {
	n := 0
	for i := 0; i < len(m.Stream); i++ {
		if m.Stream[i] != 0 {
			n++
			continue
		}
		i++
		if i >= len(m.Stream) || m.Stream[i] == 0 {
			break
		}
		n += int(m.Stream[i])
	}
	return n
}
