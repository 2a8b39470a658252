// Package brush defines the brush-dynamics interfaces the engine consumes
// and a small reference brush implementing them.
//
// A Model turns stroke samples into dabs on a Surface. The reference Brush
// spaces dabs by its radius, evaluates every setting's input mapping per
// dab, and requests a stroke split when pressure returns to zero.
package brush

import (
	stdcolor "image/color"

	"github.com/chewxy/math32"

	"github.com/gogpu/brushwork/internal/assert"
	"github.com/gogpu/brushwork/internal/color"
	"github.com/gogpu/brushwork/mapping"
)

// minDtime replaces non-positive sample intervals.
const minDtime = 0.0001

// speedScale converts pixels per second into the speed input.
const speedScale = 1000

// Brush is the reference Model.
type Brush struct {
	settings [SettingCount]*mapping.Mapping
	dirty    bool

	// Stroke state: the previous sample.
	started  bool
	painting bool
	x, y     float32
	inputs   [InputCount]float32
	partial  float32
}

var _ Model = (*Brush)(nil)

// New returns a brush with every setting at its default. Opacity follows
// pressure linearly.
func New() *Brush {
	b := &Brush{}
	for s := range SettingCount {
		m := mapping.New(int(InputCount))
		m.SetBaseValue(settingInfos[s].Default)
		b.settings[s] = m
	}
	b.settings[SettingOpaqueMultiply].SetPoints(int(InputPressure),
		mapping.Point{X: 0, Y: 0}, mapping.Point{X: 1, Y: 1})
	for _, m := range b.settings {
		m.SetOnChange(b.markDirty)
	}
	return b
}

func (b *Brush) markDirty() { b.dirty = true }

// Dirty reports whether a setting changed since the last ClearDirty.
// Stroke state pushed before each stroke does not count.
func (b *Brush) Dirty() bool { return b.dirty }

// ClearDirty marks the brush as saved.
func (b *Brush) ClearDirty() { b.dirty = false }

func validSetting(id Setting) bool {
	return assert.That(id >= 0 && id < SettingCount, "brush: setting %d out of range", id)
}

// Mapping returns the mapping of setting id.
func (b *Brush) Mapping(id Setting) *mapping.Mapping {
	if !validSetting(id) {
		return nil
	}
	return b.settings[id]
}

// SetBaseValue sets the base value of setting id.
//
// Color, lock-alpha and eraser are stroke state rather than saved brush
// data: setting their base values leaves the dirty flag alone. Editing
// their mapping curves still marks the brush dirty.
func (b *Brush) SetBaseValue(id Setting, v float32) {
	if !validSetting(id) {
		return
	}
	dirty := b.dirty
	b.settings[id].SetBaseValue(v)
	if strokeState(id) {
		b.dirty = dirty
	}
}

func strokeState(id Setting) bool {
	switch id {
	case SettingColorH, SettingColorS, SettingColorV, SettingLockAlpha, SettingEraser:
		return true
	}
	return false
}

// BaseValue returns the base value of setting id.
func (b *Brush) BaseValue(id Setting) float32 {
	if !validSetting(id) {
		return 0
	}
	return b.settings[id].BaseValue()
}

// SetColor sets the paint color from straight RGB.
func (b *Brush) SetColor(c stdcolor.Color) {
	f := color.FromStd(c)
	hsv := color.RGBToHSV(f.R, f.G, f.B)
	b.SetBaseValue(SettingColorH, hsv.H)
	b.SetBaseValue(SettingColorS, hsv.S)
	b.SetBaseValue(SettingColorV, hsv.V)
}

// Reset forgets the previous sample.
func (b *Brush) Reset() {
	b.started = false
	b.painting = false
	b.partial = 0
}

// value evaluates setting id for the given inputs, clamped to its range.
func (b *Brush) value(id Setting, inputs []float32) float32 {
	info := settingInfos[id]
	return min(max(b.settings[id].Calculate(inputs), info.Min), info.Max)
}

// StrokeTo implements Model.
func (b *Brush) StrokeTo(s Surface, x, y, pressure, xtilt, ytilt, dtime float32) bool {
	if dtime <= 0 {
		dtime = minDtime
	}
	pressure = min(max(pressure, 0), 1)

	var next [InputCount]float32
	next[InputPressure] = pressure
	next[InputXTilt] = xtilt
	next[InputYTilt] = ytilt

	if !b.started {
		b.started = true
		b.x, b.y, b.inputs = x, y, next
		b.partial = 0
		return false
	}

	dist := math32.Hypot(x-b.x, y-b.y)
	next[InputSpeed] = dist / dtime / speedScale

	total := b.partial
	if spacing := b.spacing(b.inputs[:]); spacing > 0 {
		total += dist / spacing
	}
	n := int(total)
	for k := 1; k <= n; k++ {
		t := (float32(k) - b.partial) / (total - b.partial)
		var in [InputCount]float32
		for i := range in {
			in[i] = b.inputs[i] + t*(next[i]-b.inputs[i])
		}
		if in[InputPressure] > 0 {
			b.painting = true
		}
		b.drawDab(s, b.x+t*(x-b.x), b.y+t*(y-b.y), in[:])
	}
	b.partial = total - float32(n)
	b.x, b.y, b.inputs = x, y, next

	if pressure <= 0 && b.painting {
		b.painting = false
		return true
	}
	return false
}

// spacing returns the distance between dabs for the given inputs.
func (b *Brush) spacing(inputs []float32) float32 {
	perRadius := b.value(SettingDabsPerRadius, inputs)
	if perRadius <= 0 {
		return 0
	}
	return math32.Exp(b.value(SettingRadiusLog, inputs)) / perRadius
}

func (b *Brush) drawDab(s Surface, x, y float32, inputs []float32) bool {
	opacity := b.value(SettingOpaque, inputs) * b.value(SettingOpaqueMultiply, inputs)
	opacity = min(max(opacity, 0), 1)
	hardness := b.value(SettingHardness, inputs)
	if opacity <= 0 || hardness <= 0 {
		return false
	}
	radius := math32.Exp(b.value(SettingRadiusLog, inputs))

	hsv := color.HSV{
		H: b.value(SettingColorH, inputs),
		S: b.value(SettingColorS, inputs),
		V: b.value(SettingColorV, inputs),
	}
	r, g, bl := hsv.RGB()
	alpha := 1 - b.value(SettingEraser, inputs)

	if smudge := b.value(SettingSmudge, inputs); smudge > 0 {
		r, g, bl, alpha = mixSmudge(color.ColorF32{R: r, G: g, B: bl, A: alpha},
			color.FromStd(s.GetColor(x, y, radius)), smudge)
	}

	return s.DrawDab(Dab{
		X:           x,
		Y:           y,
		Radius:      radius,
		Hardness:    hardness,
		Opacity:     opacity,
		AspectRatio: b.value(SettingAspectRatio, inputs),
		Angle:       b.value(SettingAngle, inputs),
		Color:       color.ColorF32{R: r, G: g, B: bl, A: alpha}.Std(),
		LockAlpha:   b.value(SettingLockAlpha, inputs),
	})
}

// mixSmudge blends the sampled color under the dab into the paint color
// with weight smudge, in premultiplied space: a sample without alpha,
// including the invalid-sample sentinel, contributes nothing. If the mix
// has no alpha the paint color is kept.
func mixSmudge(paint, under color.ColorF32, smudge float32) (r, g, b, a float32) {
	pw := (1 - smudge) * paint.A
	uw := smudge * under.A
	a = pw + uw
	if a <= 0 {
		return paint.R, paint.G, paint.B, 0
	}
	r = (pw*paint.R + uw*under.R) / a
	g = (pw*paint.G + uw*under.G) / a
	b = (pw*paint.B + uw*under.B) / a
	return r, g, b, a
}
