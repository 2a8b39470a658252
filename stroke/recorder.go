package stroke

import (
	stdcolor "image/color"

	"github.com/gogpu/brushwork/brush"
	"github.com/gogpu/brushwork/internal/logging"
	"github.com/gogpu/brushwork/undo"
)

// Recorder turns a stream of stylus samples into strokes. A stroke opens
// on the first sample after idle and closes when the brush requests a
// split, when End is called, or when the brush or colors change.
type Recorder struct {
	target Target
	brush  brush.Model
	fg, bg stdcolor.Color
	opts   []Option

	current *Stroke
	onStart func()
	onEnd   func(s *Stroke, e *undo.Entry)
}

// RecorderOption configures a Recorder.
type RecorderOption func(*Recorder)

// WithColors sets the initial foreground and background colors.
func WithColors(fg, bg stdcolor.Color) RecorderOption {
	return func(r *Recorder) { r.fg, r.bg = fg, bg }
}

// WithStrokeOptions applies opts to every stroke at Setup.
func WithStrokeOptions(opts ...Option) RecorderOption {
	return func(r *Recorder) { r.opts = append(r.opts, opts...) }
}

// OnStrokeStart registers fn to run before a new stroke opens its
// session.
func OnStrokeStart(fn func()) RecorderOption {
	return func(r *Recorder) { r.onStart = fn }
}

// OnStrokeEnd registers fn to receive each finished stroke that painted
// something, with its undo entry.
func OnStrokeEnd(fn func(s *Stroke, e *undo.Entry)) RecorderOption {
	return func(r *Recorder) { r.onEnd = fn }
}

// NewRecorder returns a recorder painting with b on target. Colors
// default to black on white.
func NewRecorder(target Target, b brush.Model, opts ...RecorderOption) *Recorder {
	r := &Recorder{
		target: target,
		brush:  b,
		fg:     stdcolor.Black,
		bg:     stdcolor.White,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Active reports whether a stroke is open.
func (r *Recorder) Active() bool { return r.current != nil }

// Current returns the open stroke, or nil.
func (r *Recorder) Current() *Stroke { return r.current }

// SetBrush ends the open stroke and paints later strokes with b.
func (r *Recorder) SetBrush(b brush.Model) {
	r.End()
	r.brush = b
}

// SetColors ends the open stroke and paints later strokes with fg, bg.
func (r *Recorder) SetColors(fg, bg stdcolor.Color) {
	r.End()
	r.fg, r.bg = fg, bg
}

// Motion feeds one sample, dtime seconds after the previous one.
func (r *Recorder) Motion(dtime float32, c Coords) {
	if r.current == nil {
		if r.onStart != nil {
			r.onStart()
		}
		s := New()
		s.Setup(r.brush, r.fg, r.bg, r.opts...)
		s.Start(r.target)
		r.current = s
	}
	if r.current.StrokeTo(r.target, dtime, c) {
		logging.Logger().Debug("stroke: split requested", "samples", r.current.Len())
		r.End()
	}
}

// End finishes the open stroke, if any.
func (r *Recorder) End() {
	s := r.current
	if s == nil {
		return
	}
	r.current = nil
	e := s.Stop(r.target)
	if e != nil && r.onEnd != nil {
		r.onEnd(s, e)
	}
}
