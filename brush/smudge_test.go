package brush_test

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/brushwork/brush"
	"github.com/gogpu/brushwork/raster"
	"github.com/gogpu/brushwork/surface"
)

func TestSmudgeOnTransparentCanvasKeepsHue(t *testing.T) {
	img, err := raster.New(64, 64, raster.FormatRGBA)
	require.NoError(t, err)
	s := surface.New(img, nil)

	b := brush.New()
	b.SetColor(color.NRGBA{B: 255, A: 255})
	b.SetBaseValue(brush.SettingSmudge, 0.5)

	s.BeginSession()
	b.StrokeTo(s, 10, 32, 1, 0, 0, 0.01)
	b.StrokeTo(s, 50, 32, 1, 0, 0, 0.01)
	require.NotNil(t, s.EndSession())

	got := img.NRGBAAt(30, 32)
	assert.Positive(t, got.A)
	assert.Equal(t, uint8(0), got.R, "the empty-sample sentinel must not tint the paint")
	assert.GreaterOrEqual(t, got.B, uint8(250))
}
