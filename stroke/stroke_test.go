package stroke

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/brushwork/brush"
	"github.com/gogpu/brushwork/internal/dab"
	"github.com/gogpu/brushwork/raster"
	"github.com/gogpu/brushwork/surface"
	"github.com/gogpu/brushwork/undo"
)

// fakeTarget records dabs and session brackets.
type fakeTarget struct {
	dabs      []brush.Dab
	sessions  int
	open      bool
	drawn     bool
	brushmark *dab.Texture
	textured  bool
}

func (f *fakeTarget) DrawDab(d brush.Dab) bool {
	f.dabs = append(f.dabs, d)
	f.drawn = true
	return true
}

func (f *fakeTarget) GetColor(_, _, _ float32) color.NRGBA { return color.NRGBA{} }

func (f *fakeTarget) BeginSession() {
	if !f.open {
		f.open = true
		f.drawn = false
		f.sessions++
	}
}

func (f *fakeTarget) EndSession() *undo.Entry {
	f.open = false
	if !f.drawn {
		return nil
	}
	return undo.NewEntry(nil, "fake")
}

func (f *fakeTarget) UseTextures(brushmark, _ *dab.Texture) {
	f.brushmark = brushmark
	f.textured = true
}

var line = []Record{
	{DTime: 0.01, Coords: Coords{X: 0, Y: 0, Pressure: 0.5}},
	{DTime: 0.01, Coords: Coords{X: 20, Y: 0, Pressure: 1}},
	{DTime: 0.02, Coords: Coords{X: 40, Y: 10, Pressure: 1}},
}

func paint(t *testing.T, s *Stroke, target Target, records []Record) *undo.Entry {
	t.Helper()
	s.Start(target)
	for _, r := range records {
		s.StrokeTo(target, r.DTime, r.Coords)
	}
	return s.Stop(target)
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "Idle", StateIdle.String())
	assert.Equal(t, "Active", StateActive.String())
	assert.Equal(t, "Finished", StateFinished.String())
	assert.Equal(t, "Unknown", State(9).String())
}

func TestLifecycle(t *testing.T) {
	s := New()
	assert.Equal(t, StateIdle, s.State())

	b := brush.New()
	s.Setup(b, color.NRGBA{R: 255, A: 255}, color.White, WithLockAlpha(true))
	target := &fakeTarget{}

	s.Start(target)
	assert.Equal(t, StateActive, s.State())
	assert.Equal(t, 1, target.sessions)
	assert.True(t, target.textured)
	assert.Equal(t, float32(1), b.BaseValue(brush.SettingLockAlpha))
	assert.Equal(t, float32(0), b.BaseValue(brush.SettingEraser))
	assert.Equal(t, float32(1), b.BaseValue(brush.SettingColorS))
	assert.Equal(t, float32(1), b.BaseValue(brush.SettingColorV))

	for _, r := range line {
		s.StrokeTo(target, r.DTime, r.Coords)
	}
	e := s.Stop(target)
	require.NotNil(t, e)
	assert.Equal(t, StateFinished, s.State())
	assert.Equal(t, 3, s.Len())
	assert.InDelta(t, 0.04, s.TotalTime(), 1e-6)
	assert.Equal(t, line, s.Records())
	assert.NotEmpty(t, target.dabs)

	fg, bg := s.Colors()
	assert.Equal(t, color.NRGBA{R: 255, A: 255}, fg)
	assert.Equal(t, color.NRGBA{R: 255, G: 255, B: 255, A: 255}, bg)
	assert.Same(t, b, s.Brush())
}

func TestPaintingLeavesBrushClean(t *testing.T) {
	b := brush.New()
	s := New()
	s.Setup(b, color.NRGBA{R: 255, A: 255}, color.White, WithLockAlpha(true), WithEraser(true))
	e := paint(t, s, &fakeTarget{}, line)
	require.NotNil(t, e)
	assert.False(t, b.Dirty(), "per-stroke color and flags are not brush edits")

	require.NotNil(t, s.Render(&fakeTarget{}))
	assert.False(t, b.Dirty())
}

func TestRecordWithoutPainting(t *testing.T) {
	s := New()
	s.Setup(brush.New(), color.Black, color.White)
	target := &fakeTarget{}
	s.Start(target)
	s.Record(0.01, Coords{X: 1, Y: 2, Pressure: 1})
	assert.Nil(t, s.Stop(target))
	assert.Empty(t, target.dabs)
	assert.Equal(t, 1, s.Len())
}

func TestRenderReplaysIdentically(t *testing.T) {
	s := New()
	s.Setup(brush.New(), color.Black, color.White)
	first := &fakeTarget{}
	paint(t, s, first, line)

	second := &fakeTarget{}
	e := s.Render(second)
	require.NotNil(t, e)
	assert.Equal(t, first.dabs, second.dabs)
	assert.Equal(t, StateFinished, s.State())
	assert.Equal(t, 3, s.Len(), "replay does not record again")
}

func TestDuplicate(t *testing.T) {
	s := New()
	s.Setup(brush.New(), color.Black, color.White)
	paint(t, s, &fakeTarget{}, line)

	big := brush.New()
	big.SetBaseValue(brush.SettingRadiusLog, 3)
	dup := s.Duplicate(big)
	assert.Same(t, big, dup.Brush())
	assert.Equal(t, StateFinished, dup.State())
	assert.Equal(t, s.Records(), dup.Records())

	small, large := &fakeTarget{}, &fakeTarget{}
	s.Render(small)
	dup.Render(large)
	require.NotEmpty(t, large.dabs)
	assert.Greater(t, large.dabs[0].Radius, small.dabs[0].Radius)
	assert.Less(t, len(large.dabs), len(small.dabs), "larger dabs are spaced further apart")
}

func TestWithRecordsLeavesOriginal(t *testing.T) {
	s := New()
	s.Setup(brush.New(), color.Black, color.White)
	paint(t, s, &fakeTarget{}, line)

	refined := s.Records()
	for i := range refined {
		refined[i].Pressure = 0.25
	}
	dup := s.WithRecords(refined)
	refined[0].X = 99

	assert.Equal(t, line, s.Records())
	assert.Equal(t, float32(0.25), dup.Records()[1].Pressure)
	assert.Equal(t, float32(0), dup.Records()[0].X, "WithRecords copies its input")
}

func TestBounds(t *testing.T) {
	s := New()
	assert.True(t, s.Bounds().Empty())
	s.Setup(brush.New(), color.Black, color.White)
	paint(t, s, &fakeTarget{}, line)
	assert.Equal(t, image.Rect(0, 0, 41, 11), s.Bounds())
}

func TestOptions(t *testing.T) {
	mark := image.NewGray(image.Rect(0, 0, 4, 4))
	for i := range mark.Pix {
		mark.Pix[i] = 255
	}
	s := New()
	b := brush.New()
	s.Setup(b, color.Black, color.White, WithBrushmark(mark), WithTexture(mark), WithEraser(true))
	target := &fakeTarget{}
	s.Start(target)
	assert.NotNil(t, target.brushmark)
	assert.Equal(t, float32(1), b.BaseValue(brush.SettingEraser))
}

func TestRenderOnSurfaceMatchesLivePainting(t *testing.T) {
	live, err := raster.New(64, 32, raster.FormatRGBA)
	require.NoError(t, err)
	replay, err := raster.New(64, 32, raster.FormatRGBA)
	require.NoError(t, err)

	s := New()
	s.Setup(brush.New(), color.NRGBA{B: 255, A: 255}, color.White)
	e := paint(t, s, surface.New(live, nil), line)
	require.NotNil(t, e)
	require.NotNil(t, s.Render(surface.New(replay, nil)))

	assert.Equal(t, live.Snapshot().Pix, replay.Snapshot().Pix)
}
