// Package stroke records and replays paint gestures.
//
// A Stroke captures the ordered (Δtime, coordinates) samples of one
// continuous gesture together with the brush, colors and textures it was
// painted with. It can be replayed onto any target, with another brush or
// with refined samples, to redraw the gesture.
//
// A Stroke moves through three states:
//
//	Idle --Start--> Active --Stop--> Finished
//
// Setup is only valid while Idle and Record only while Active. Once
// Finished the samples never change; Duplicate and WithRecords return
// modified copies instead.
package stroke

import (
	"image"
	stdcolor "image/color"
	"slices"

	"github.com/chewxy/math32"

	"github.com/gogpu/brushwork/brush"
	"github.com/gogpu/brushwork/internal/assert"
	"github.com/gogpu/brushwork/internal/color"
	"github.com/gogpu/brushwork/internal/dab"
	"github.com/gogpu/brushwork/undo"
)

// Coords is the stylus state of one sample.
type Coords struct {
	X, Y         float32
	Pressure     float32
	XTilt, YTilt float32
}

// Record is one sample: the time in seconds since the previous sample and
// the stylus state.
type Record struct {
	DTime float32
	Coords
}

// State is the lifecycle state of a Stroke.
type State uint8

const (
	StateIdle State = iota
	StateActive
	StateFinished
)

var stateNames = [...]string{
	StateIdle:     "Idle",
	StateActive:   "Active",
	StateFinished: "Finished",
}

// String returns the state name.
func (s State) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return "Unknown"
}

// Target is what a stroke paints on: a brush surface with session
// bracketing.
type Target interface {
	brush.Surface
	BeginSession()
	EndSession() *undo.Entry
}

// textured is implemented by targets that modulate dabs with the stroke's
// brushmark and texture.
type textured interface {
	UseTextures(brushmark, texture *dab.Texture)
}

// Option configures a stroke at Setup.
type Option func(*Stroke)

// WithBrushmark stamps each dab with a grayscale version of img stretched
// over the dab.
func WithBrushmark(img image.Image) Option {
	return func(s *Stroke) { s.brushmark = dab.CachedTexture(img, 0) }
}

// WithTexture modulates dabs by a grayscale version of img tiled over the
// raster.
func WithTexture(img image.Image) Option {
	return func(s *Stroke) { s.texture = dab.CachedTexture(img, 0) }
}

// WithLockAlpha paints without changing canvas alpha.
func WithLockAlpha(on bool) Option {
	return func(s *Stroke) { s.lockAlpha = on }
}

// WithEraser makes the stroke erase.
func WithEraser(on bool) Option {
	return func(s *Stroke) { s.eraser = on }
}

// Stroke is one recorded gesture.
type Stroke struct {
	brush     brush.Model
	fg, bg    stdcolor.NRGBA
	brushmark *dab.Texture
	texture   *dab.Texture
	lockAlpha bool
	eraser    bool

	state     State
	records   []Record
	totalTime float32
}

// New returns an idle stroke.
func New() *Stroke {
	return &Stroke{}
}

// Setup binds the brush, colors and options. It is only valid while Idle.
func (s *Stroke) Setup(b brush.Model, fg, bg stdcolor.Color, opts ...Option) {
	if !assert.That(s.state == StateIdle, "stroke: Setup in state %v", s.state) {
		return
	}
	s.brush = b
	s.fg = color.FromStd(fg).Std()
	s.bg = color.FromStd(bg).Std()
	for _, opt := range opts {
		opt(s)
	}
}

// State returns the lifecycle state.
func (s *Stroke) State() State { return s.state }

// Brush returns the brush the stroke paints with.
func (s *Stroke) Brush() brush.Model { return s.brush }

// Colors returns the foreground and background colors.
func (s *Stroke) Colors() (fg, bg stdcolor.NRGBA) { return s.fg, s.bg }

// Start pushes the stroke's per-stroke values into the brush and opens a
// session on t. It is only valid while Idle.
func (s *Stroke) Start(t Target) {
	if !assert.That(s.state == StateIdle, "stroke: Start in state %v", s.state) ||
		!assert.That(s.brush != nil, "stroke: Start without a brush") {
		return
	}
	s.begin(t)
}

func (s *Stroke) begin(t Target) {
	fg := color.FromStd(s.fg)
	hsv := color.RGBToHSV(fg.R, fg.G, fg.B)
	s.brush.SetBaseValue(brush.SettingColorH, hsv.H)
	s.brush.SetBaseValue(brush.SettingColorS, hsv.S)
	s.brush.SetBaseValue(brush.SettingColorV, hsv.V)
	s.brush.SetBaseValue(brush.SettingLockAlpha, flag(s.lockAlpha))
	s.brush.SetBaseValue(brush.SettingEraser, flag(s.eraser))
	s.brush.Reset()

	if tx, ok := t.(textured); ok {
		tx.UseTextures(s.brushmark, s.texture)
	}
	t.BeginSession()
	s.state = StateActive
}

func flag(on bool) float32 {
	if on {
		return 1
	}
	return 0
}

// Record appends one sample. It is only valid while Active.
func (s *Stroke) Record(dtime float32, c Coords) {
	if !assert.That(s.state == StateActive, "stroke: Record in state %v", s.state) {
		return
	}
	s.records = append(s.records, Record{DTime: dtime, Coords: c})
}

// StrokeTo records a sample and paints it on t. It returns the brush's
// split request.
func (s *Stroke) StrokeTo(t Target, dtime float32, c Coords) bool {
	if !assert.That(s.state == StateActive, "stroke: StrokeTo in state %v", s.state) {
		return false
	}
	s.records = append(s.records, Record{DTime: dtime, Coords: c})
	return s.brush.StrokeTo(t, c.X, c.Y, c.Pressure, c.XTilt, c.YTilt, dtime)
}

// Stop finishes the stroke and closes the session on t, returning the
// session's undo entry (nil if nothing was painted).
func (s *Stroke) Stop(t Target) *undo.Entry {
	if !assert.That(s.state == StateActive, "stroke: Stop in state %v", s.state) {
		return nil
	}
	s.state = StateFinished
	s.totalTime = 0
	for _, r := range s.records {
		s.totalTime += r.DTime
	}
	return t.EndSession()
}

// Render replays every sample onto t and finishes again. It is only
// valid once the stroke is Finished.
func (s *Stroke) Render(t Target) *undo.Entry {
	if !assert.That(s.state == StateFinished, "stroke: Render in state %v", s.state) ||
		!assert.That(s.brush != nil, "stroke: Render without a brush") {
		return nil
	}
	s.begin(t)
	for _, r := range s.records {
		s.brush.StrokeTo(t, r.X, r.Y, r.Pressure, r.XTilt, r.YTilt, r.DTime)
	}
	return s.Stop(t)
}

// Duplicate returns a finished copy of the stroke painted with b.
func (s *Stroke) Duplicate(b brush.Model) *Stroke {
	dup := s.clone()
	dup.brush = b
	return dup
}

// WithRecords returns a finished copy of the stroke with the samples
// replaced.
func (s *Stroke) WithRecords(records []Record) *Stroke {
	dup := s.clone()
	dup.records = slices.Clone(records)
	return dup
}

func (s *Stroke) clone() *Stroke {
	dup := *s
	dup.records = slices.Clone(s.records)
	dup.state = StateFinished
	return &dup
}

// Records returns a copy of the samples.
func (s *Stroke) Records() []Record { return slices.Clone(s.records) }

// Len returns the number of samples.
func (s *Stroke) Len() int { return len(s.records) }

// TotalTime returns the painting time in seconds, summed at Stop.
func (s *Stroke) TotalTime() float32 { return s.totalTime }

// Bounds returns the smallest integer rectangle containing every sample
// position, or the empty rectangle for a stroke without samples.
func (s *Stroke) Bounds() image.Rectangle {
	if len(s.records) == 0 {
		return image.Rectangle{}
	}
	x0, y0 := s.records[0].X, s.records[0].Y
	x1, y1 := x0, y0
	for _, r := range s.records[1:] {
		x0, y0 = math32.Min(x0, r.X), math32.Min(y0, r.Y)
		x1, y1 = math32.Max(x1, r.X), math32.Max(y1, r.Y)
	}
	return image.Rect(
		int(math32.Floor(x0)), int(math32.Floor(y0)),
		int(math32.Floor(x1))+1, int(math32.Floor(y1))+1,
	)
}
