// Package mapping evaluates the input curves that drive brush dynamics.
//
// A Mapping belongs to one brush setting. It holds a base value plus, for
// each brush input (pressure, tilt, speed...), an ordered list of at most
// MaxPoints control points. The setting's value for one dab is the base
// value plus the sum of every active input curve evaluated at that input's
// current value.
package mapping

import (
	"github.com/gogpu/brushwork/internal/assert"
)

// MaxPoints is the maximum number of control points per input curve.
const MaxPoints = 8

// Point is one control point of an input curve.
type Point struct {
	X, Y float32
}

type curve struct {
	points [MaxPoints]Point
	n      int
}

// Mapping maps brush input values to one setting value.
//
// The zero value has no inputs; use New.
type Mapping struct {
	base     float32
	inputs   []curve
	onChange func()
}

// New returns a mapping for the given number of inputs with base value 0
// and no active curves.
func New(inputs int) *Mapping {
	return &Mapping{inputs: make([]curve, max(inputs, 0))}
}

// Inputs returns the number of inputs the mapping was created for.
func (m *Mapping) Inputs() int { return len(m.inputs) }

// SetOnChange installs fn to be called after every mutation. The brush
// uses it to track unsaved edits. A nil fn removes the hook.
func (m *Mapping) SetOnChange(fn func()) { m.onChange = fn }

func (m *Mapping) changed() {
	if m.onChange != nil {
		m.onChange()
	}
}

// BaseValue returns the value used when no input affects the setting.
func (m *Mapping) BaseValue() float32 { return m.base }

// SetBaseValue sets the base value.
func (m *Mapping) SetBaseValue(v float32) {
	m.base = v
	m.changed()
}

func (m *Mapping) validInput(input int) bool {
	return assert.That(input >= 0 && input < len(m.inputs),
		"mapping: input %d out of range [0,%d)", input, len(m.inputs))
}

// N returns the number of active points for input. Zero means the input
// does not affect the setting.
func (m *Mapping) N(input int) int {
	if !m.validInput(input) {
		return 0
	}
	return m.inputs[input].n
}

// SetN sets the number of active points for input, truncating or extending
// the curve. Points beyond the previous count keep whatever SetPoint last
// stored there.
func (m *Mapping) SetN(input, n int) {
	if !m.validInput(input) {
		return
	}
	if !assert.That(n >= 0 && n <= MaxPoints, "mapping: point count %d out of range [0,%d]", n, MaxPoints) {
		return
	}
	m.inputs[input].n = n
	m.changed()
}

// Point returns control point index of input.
func (m *Mapping) Point(input, index int) Point {
	if !m.validInput(input) || !validIndex(index) {
		return Point{}
	}
	return m.inputs[input].points[index]
}

// SetPoint stores control point index of input. It does not change N.
func (m *Mapping) SetPoint(input, index int, x, y float32) {
	if !m.validInput(input) || !validIndex(index) {
		return
	}
	m.inputs[input].points[index] = Point{X: x, Y: y}
	m.changed()
}

// SetPoints replaces the whole curve of input and sets N accordingly.
func (m *Mapping) SetPoints(input int, pts ...Point) {
	if !m.validInput(input) {
		return
	}
	if !assert.That(len(pts) <= MaxPoints, "mapping: %d points exceed %d", len(pts), MaxPoints) {
		return
	}
	c := &m.inputs[input]
	copy(c.points[:], pts)
	c.n = len(pts)
	m.changed()
}

func validIndex(index int) bool {
	return assert.That(index >= 0 && index < MaxPoints,
		"mapping: point index %d out of range [0,%d)", index, MaxPoints)
}

// IsConstant reports whether no input affects the setting.
func (m *Mapping) IsConstant() bool {
	for i := range m.inputs {
		if m.inputs[i].n > 0 {
			return false
		}
	}
	return true
}

// Evaluate returns the contribution of input's curve at x. Between two
// points the curve is linear; outside the point range it holds the
// nearest endpoint. A point whose x does not exceed its predecessor's is
// ignored. An inactive curve contributes 0.
func (m *Mapping) Evaluate(input int, x float32) float32 {
	if !m.validInput(input) {
		return 0
	}
	c := &m.inputs[input]
	if c.n == 0 {
		return 0
	}

	p0 := c.points[0]
	if x <= p0.X {
		return p0.Y
	}
	for i := 1; i < c.n; i++ {
		p1 := c.points[i]
		if p1.X <= p0.X {
			continue
		}
		if x <= p1.X {
			t := (x - p0.X) / (p1.X - p0.X)
			return p0.Y + t*(p1.Y-p0.Y)
		}
		p0 = p1
	}
	return p0.Y
}

// Calculate returns the setting value for the given input values: the
// base value plus each active curve evaluated at its input. Missing inputs
// count as 0.
func (m *Mapping) Calculate(inputs []float32) float32 {
	v := m.base
	for i := range m.inputs {
		if m.inputs[i].n == 0 {
			continue
		}
		var x float32
		if i < len(inputs) {
			x = inputs[i]
		}
		v += m.Evaluate(i, x)
	}
	return v
}
