package postprocess

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/brushwork/stroke"
)

func rec(dtime, x, y, p float32) stroke.Record {
	return stroke.Record{DTime: dtime, Coords: stroke.Coords{X: x, Y: y, Pressure: p}}
}

func pressures(records []stroke.Record) []float32 {
	out := make([]float32, len(records))
	for i, r := range records {
		out[i] = r.Pressure
	}
	return out
}

func TestSimulatedPressureThreeSamples(t *testing.T) {
	in := []stroke.Record{
		rec(0, 0, 0, 0),
		rec(10, 5, 0, 1),
		rec(10, 10, 0, 1),
	}
	out := SimulatedPressure(in)
	require.Len(t, out, 3)

	p := pressures(out)
	assert.Equal(t, float32(0), p[0])
	assert.InDelta(t, 1, p[1], 1e-6)
	assert.InDelta(t, 0, p[2], 1e-6)
	assert.Greater(t, p[1], p[0])
	assert.Greater(t, p[1], p[2], "the midpoint carries the maximum")

	assert.Equal(t, []float32{0, 1, 1}, pressures(in), "input is not modified")
	for i := range in {
		assert.Equal(t, in[i].DTime, out[i].DTime)
		assert.Equal(t, in[i].X, out[i].X)
	}
}

func TestSimulatedPressureSymmetricRamp(t *testing.T) {
	in := []stroke.Record{
		rec(0, 0, 0, 0.3),
		rec(1, 0, 5, 0.3),
		rec(1, 0, 10, 0.3),
		rec(1, 0, 15, 0.3),
		rec(1, 0, 20, 0.3),
	}
	p := pressures(SimulatedPressure(in))
	quarter := math32.Sin(math32.Pi / 4)
	want := []float32{0, quarter, 1, quarter, 0}
	for i := range want {
		assert.InDelta(t, want[i], p[i], 1e-5, "sample %d", i)
	}
	assert.InDelta(t, p[1], p[3], 1e-6)
}

func TestSimulatedPressureRampFollowsArcLength(t *testing.T) {
	// The stroke doubles back: arc length, not displacement, drives the
	// ramp.
	in := []stroke.Record{
		rec(0, 0, 0, 1),
		rec(1, 10, 0, 1),
		rec(1, 0, 0, 1),
	}
	p := pressures(SimulatedPressure(in))
	assert.InDelta(t, 0, p[0], 1e-6)
	assert.InDelta(t, 1, p[1], 1e-6)
	assert.InDelta(t, 0, p[2], 1e-6)
}

func TestSimulatedPressureDegenerate(t *testing.T) {
	assert.Empty(t, SimulatedPressure(nil))

	still := []stroke.Record{rec(0, 3, 3, 0.4), rec(1, 3, 3, 0.7)}
	assert.Equal(t, still, SimulatedPressure(still), "a zero-length stroke keeps its pressures")

	single := []stroke.Record{rec(0, 1, 2, 0.5)}
	assert.Equal(t, single, SimulatedPressure(single))
}

func TestSimulatePressureTask(t *testing.T) {
	s := stroke.New().WithRecords([]stroke.Record{
		rec(0, 0, 0, 0),
		rec(10, 5, 0, 1),
		rec(10, 10, 0, 1),
	})
	p := &Pending{stroke: s}
	assert.Same(t, s, p.Refined())

	require.NoError(t, SimulatePressure(p))
	refined := p.Refined()
	assert.NotSame(t, s, refined)
	assert.Equal(t, stroke.StateFinished, refined.State())
	assert.Equal(t, []float32{0, 1, 1}, pressures(s.Records()), "the recorded stroke is kept")
	got := pressures(refined.Records())
	assert.InDelta(t, 1, got[1], 1e-6)
	assert.InDelta(t, 0, got[2], 1e-6)
}
