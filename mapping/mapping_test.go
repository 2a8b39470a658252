package mapping

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewIsConstant(t *testing.T) {
	m := New(4)
	assert.Equal(t, 4, m.Inputs())
	assert.True(t, m.IsConstant())
	assert.Equal(t, float32(0), m.BaseValue())

	m.SetBaseValue(2.5)
	assert.Equal(t, float32(2.5), m.Calculate([]float32{1, 1, 1, 1}))
}

func TestSetPointAndN(t *testing.T) {
	m := New(2)
	m.SetPoint(1, 0, 0, 0)
	m.SetPoint(1, 1, 1, 0.5)
	assert.Equal(t, 0, m.N(1), "SetPoint must not change N")
	assert.True(t, m.IsConstant())

	m.SetN(1, 2)
	assert.Equal(t, 2, m.N(1))
	assert.False(t, m.IsConstant())
	assert.Equal(t, Point{X: 1, Y: 0.5}, m.Point(1, 1))

	m.SetN(1, 0)
	assert.True(t, m.IsConstant())
	assert.Equal(t, Point{X: 1, Y: 0.5}, m.Point(1, 1), "truncation keeps stored points")
}

func TestEvaluate(t *testing.T) {
	m := New(1)
	m.SetPoints(0, Point{0, 0}, Point{1, 1}, Point{2, 0})

	tests := []struct {
		name string
		x    float32
		want float32
	}{
		{"first point", 0, 0},
		{"rising", 0.5, 0.5},
		{"peak", 1, 1},
		{"falling", 1.5, 0.5},
		{"last point", 2, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, m.Evaluate(0, tt.x), 1e-6)
		})
	}
}

func TestEvaluateClamps(t *testing.T) {
	m := New(1)
	m.SetPoints(0, Point{0.2, -3}, Point{0.8, 7})

	assert.Equal(t, float32(-3), m.Evaluate(0, -100), "below first x holds first y")
	assert.Equal(t, float32(-3), m.Evaluate(0, 0.2))
	assert.Equal(t, float32(7), m.Evaluate(0, 0.8))
	assert.Equal(t, float32(7), m.Evaluate(0, 100), "above last x holds last y")
}

func TestEvaluateSinglePoint(t *testing.T) {
	m := New(1)
	m.SetPoints(0, Point{0.5, 0.25})
	for _, x := range []float32{-1, 0.5, 3} {
		assert.Equal(t, float32(0.25), m.Evaluate(0, x))
	}
}

func TestEvaluateSkipsNonIncreasingPoints(t *testing.T) {
	m := New(1)
	// The third point goes backwards and is ignored.
	m.SetPoints(0, Point{0, 0}, Point{1, 1}, Point{0.5, 9}, Point{2, 3})

	assert.InDelta(t, 0.5, m.Evaluate(0, 0.5), 1e-6)
	assert.InDelta(t, 2, m.Evaluate(0, 1.5), 1e-6)
	assert.Equal(t, float32(3), m.Evaluate(0, 5))
}

func TestCalculate(t *testing.T) {
	m := New(3)
	m.SetBaseValue(1)
	m.SetPoints(0, Point{0, 0}, Point{1, 2})
	m.SetPoints(2, Point{-1, -1}, Point{1, 1})

	assert.InDelta(t, 1+1+0.5, m.Calculate([]float32{0.5, 99, 0.5}), 1e-6)
	// Missing inputs evaluate at 0.
	assert.InDelta(t, 1+1+0, m.Calculate([]float32{0.5}), 1e-6)
}

func TestOnChange(t *testing.T) {
	m := New(2)
	calls := 0
	m.SetOnChange(func() { calls++ })

	m.SetBaseValue(1)
	m.SetPoint(0, 0, 0, 1)
	m.SetN(0, 1)
	m.SetPoints(1, Point{0, 0}, Point{1, 1})
	require.Equal(t, 4, calls)

	// Reads never mark the owner dirty.
	m.N(0)
	m.Point(0, 0)
	m.Evaluate(0, 0.3)
	m.Calculate(nil)
	assert.Equal(t, 4, calls)

	m.SetOnChange(nil)
	m.SetBaseValue(2)
	assert.Equal(t, 4, calls)
}
