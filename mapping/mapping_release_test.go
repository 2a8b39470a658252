//go:build !brushdebug

package mapping

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOutOfRangeIsNoop(t *testing.T) {
	m := New(1)
	calls := 0
	m.SetOnChange(func() { calls++ })

	m.SetPoint(1, 0, 1, 1)
	m.SetPoint(0, MaxPoints, 1, 1)
	m.SetN(0, MaxPoints+1)
	m.SetN(-1, 2)
	m.SetPoints(0, make([]Point, MaxPoints+1)...)

	assert.Zero(t, calls)
	assert.Zero(t, m.N(5))
	assert.Equal(t, Point{}, m.Point(0, -1))
	assert.Zero(t, m.Evaluate(3, 0.5))
	assert.True(t, m.IsConstant())
}
