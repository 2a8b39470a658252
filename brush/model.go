package brush

import (
	"image/color"

	"github.com/gogpu/brushwork/mapping"
)

// Dab is one stamp of the brush footprint.
type Dab struct {
	// X, Y is the center in raster coordinates.
	X, Y float32
	// Radius in pixels.
	Radius float32
	// Hardness in (0,1].
	Hardness float32
	// Opacity in [0,1].
	Opacity float32
	// AspectRatio ≥ 1 and Angle in degrees shape elliptical dabs.
	AspectRatio, Angle float32

	// Color is the straight paint color. Its alpha is the eraser/smudge
	// alpha: 255 paints, 0 erases.
	Color color.NRGBA

	// LockAlpha in [0,1] is the share of the dab painted without changing
	// canvas alpha.
	LockAlpha float32
}

// Surface is what a brush paints on.
type Surface interface {
	// DrawDab composites one dab. It reports whether any pixel changed.
	DrawDab(d Dab) bool

	// GetColor returns the average color under a round footprint.
	GetColor(x, y, radius float32) color.NRGBA
}

// Model turns stroke samples into dabs.
type Model interface {
	// StrokeTo advances the stroke to (x, y) with the given inputs,
	// dtime seconds after the previous sample. It returns true when the
	// brush requests the stroke be split: the caller should close the
	// current stroke and start a new one with the next sample.
	StrokeTo(s Surface, x, y, pressure, xtilt, ytilt, dtime float32) bool

	SetBaseValue(id Setting, v float32)
	BaseValue(id Setting) float32

	// Mapping returns the input mapping of a setting.
	Mapping(id Setting) *mapping.Mapping

	// Reset forgets the stroke position so the next sample starts fresh.
	Reset()
}
