// Package fixed implements degree-tracked fixed-point channel arithmetic.
//
// A channel sample at depth D is an integer in [0, MAX] standing for
// raw/MAX. Multiplying two samples yields an integer at scale MAX², three
// samples MAX³ and so on. A Value records that scale as its degree, so a
// chain such as opacity × mask × color can be evaluated with integer
// products only and renormalized exactly once, in Evaluate:
//
//	s := fixed.Depth8
//	a := s.Mul(s.Pixel(mask), s.Pixel(opacity))      // degree 2
//	c := s.Add(s.Mul(a, s.Pixel(src)), s.Mul(s.Sub(s.One(2), a), s.Pixel(dst)))
//	out, err := s.Evaluate(c)                         // one clamp, one rescale
//
// Errors are sticky: once an operation fails every Value derived from it
// carries the same error and Evaluate reports it.
package fixed

import (
	"errors"
	"fmt"
	"math"
)

// ErrArithmeticRange is reported when an expression cannot be evaluated
// without losing precision: operands too many degrees apart, int64
// overflow, or division by zero.
var ErrArithmeticRange = errors.New("fixed: arithmetic range exceeded")

// MaxDegreeSpan is the largest degree difference Add and Sub accept.
const MaxDegreeSpan = 3

// Scale is the channel depth all Values of one expression share.
type Scale struct {
	bits int
	max  int64
}

// Supported channel depths.
var (
	Depth8  = Scale{bits: 8, max: 1<<8 - 1}
	Depth16 = Scale{bits: 16, max: 1<<16 - 1}
	Depth32 = Scale{bits: 32, max: 1<<32 - 1}
)

// Bits returns the channel depth in bits.
func (s Scale) Bits() int { return s.bits }

// Max returns the raw value standing for 1.0.
func (s Scale) Max() int64 { return s.max }

// Value is a fixed-point operand: raw / MAX^degree.
type Value struct {
	raw    int64
	degree int
	err    error
}

// Raw returns the unnormalized integer.
func (v Value) Raw() int64 { return v.raw }

// Degree returns the number of pending MAX factors.
func (v Value) Degree() int { return v.degree }

// Err returns the sticky error, if any.
func (v Value) Err() error { return v.err }

func (v Value) String() string {
	if v.err != nil {
		return "fixed.Value(" + v.err.Error() + ")"
	}
	return fmt.Sprintf("fixed.Value(%d/MAX^%d)", v.raw, v.degree)
}

// Pixel wraps a raw channel sample as a degree-1 Value.
func (s Scale) Pixel(raw uint32) Value {
	return Value{raw: int64(raw), degree: 1}
}

// Int wraps a plain integer as a degree-0 Value.
func (s Scale) Int(n int64) Value {
	return Value{raw: n}
}

// One returns 1.0 at the given degree.
func (s Scale) One(degree int) Value {
	p, ok := s.pow(degree)
	if !ok {
		return Value{err: rangeErr("one", degree, 0)}
	}
	return Value{raw: p, degree: degree}
}

// FromFloat quantizes f (clamped to [0,1]) to a degree-1 Value.
func (s Scale) FromFloat(f float64) Value {
	switch {
	case f <= 0 || math.IsNaN(f):
		return Value{degree: 1}
	case f >= 1:
		return Value{raw: s.max, degree: 1}
	}
	return Value{raw: int64(f*float64(s.max) + 0.5), degree: 1}
}

// Float converts v to a float64 without clamping.
func (s Scale) Float(v Value) float64 {
	p, ok := s.pow(v.degree)
	if !ok || v.err != nil {
		return math.NaN()
	}
	return float64(v.raw) / float64(p)
}

// pow returns MAX^n for n >= 0.
func (s Scale) pow(n int) (int64, bool) {
	if n < 0 {
		return 0, false
	}
	p := int64(1)
	for range n {
		var ok bool
		if p, ok = mulInt64(p, s.max); !ok {
			return 0, false
		}
	}
	return p, true
}

// promote rescales v up to the given degree.
func (s Scale) promote(v Value, degree int) (Value, bool) {
	if degree == v.degree {
		return v, true
	}
	p, ok := s.pow(degree - v.degree)
	if !ok {
		return Value{}, false
	}
	raw, ok := mulInt64(v.raw, p)
	if !ok {
		return Value{}, false
	}
	return Value{raw: raw, degree: degree}, true
}

func rangeErr(op string, a, b int) error {
	return fmt.Errorf("%w: %s of degree %d and %d", ErrArithmeticRange, op, a, b)
}

func firstErr(a, b Value) error {
	if a.err != nil {
		return a.err
	}
	return b.err
}
