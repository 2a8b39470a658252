package fixed

import "math"

type op uint8

const (
	opMul op = iota
	opDiv
	opAdd
	opSub
)

var opNames = [...]string{opMul: "multiply", opDiv: "divide", opAdd: "add", opSub: "subtract"}

// degreeRule computes the result degree of op and how far each operand must
// be promoted before combining. ok is false when the combination is not
// supported.
type degreeRule func(da, db int) (result, promoteA, promoteB int, ok bool)

var degreeRules = [...]degreeRule{
	opMul: func(da, db int) (int, int, int, bool) {
		return da + db, da, db, true
	},
	opDiv: func(da, db int) (int, int, int, bool) {
		// The numerator gains at least one degree so the quotient keeps a
		// fractional part.
		pa := max(da+1, db+1)
		return pa - db, pa, db, true
	},
	opAdd: sumRule,
	opSub: sumRule,
}

func sumRule(da, db int) (int, int, int, bool) {
	if da-db > MaxDegreeSpan || db-da > MaxDegreeSpan {
		return 0, 0, 0, false
	}
	d := max(da, db)
	return d, d, d, true
}

func (s Scale) apply(o op, a, b Value) Value {
	if err := firstErr(a, b); err != nil {
		return Value{err: err}
	}
	da, db := a.degree, b.degree
	deg, pa, pb, ok := degreeRules[o](da, db)
	if !ok {
		return Value{err: rangeErr(opNames[o], da, db)}
	}
	if a, ok = s.promote(a, pa); !ok {
		return Value{err: rangeErr(opNames[o], da, db)}
	}
	if b, ok = s.promote(b, pb); !ok {
		return Value{err: rangeErr(opNames[o], da, db)}
	}

	var raw int64
	switch o {
	case opMul:
		raw, ok = mulInt64(a.raw, b.raw)
	case opDiv:
		raw, ok = divInt64(a.raw, b.raw)
	case opAdd:
		raw, ok = addInt64(a.raw, b.raw)
	case opSub:
		raw, ok = subInt64(a.raw, b.raw)
	}
	if !ok {
		return Value{err: rangeErr(opNames[o], da, db)}
	}
	return Value{raw: raw, degree: deg}
}

// Mul returns a × b. The result degree is the sum of both degrees.
func (s Scale) Mul(a, b Value) Value { return s.apply(opMul, a, b) }

// Div returns a / b rounded toward zero.
func (s Scale) Div(a, b Value) Value { return s.apply(opDiv, a, b) }

// Add returns a + b at the larger of both degrees.
func (s Scale) Add(a, b Value) Value { return s.apply(opAdd, a, b) }

// Sub returns a − b at the larger of both degrees.
func (s Scale) Sub(a, b Value) Value { return s.apply(opSub, a, b) }

// Evaluate clamps v to [0, 1] and rescales it to a raw degree-1 sample,
// rounding to nearest.
func (s Scale) Evaluate(v Value) (uint32, error) {
	if v.err != nil {
		return 0, v.err
	}
	if v.degree == 0 {
		switch {
		case v.raw <= 0:
			return 0, nil
		case v.raw >= 1:
			return uint32(s.max), nil //nolint:gosec // max fits in 32 bits
		}
	}
	top, ok := s.pow(v.degree)
	if !ok {
		return 0, rangeErr("evaluate", v.degree, 1)
	}
	raw := min(max(v.raw, 0), top)
	div, _ := s.pow(v.degree - 1)
	return uint32((raw + div/2) / div), nil //nolint:gosec // bounded by max
}

// MustEvaluate is Evaluate for expressions known to stay within range.
// It returns 0 on error.
func (s Scale) MustEvaluate(v Value) uint32 {
	out, err := s.Evaluate(v)
	if err != nil {
		return 0
	}
	return out
}

// Overflow-checked int64 helpers.

func addInt64(a, b int64) (int64, bool) {
	if (b > 0 && a > math.MaxInt64-b) || (b < 0 && a < math.MinInt64-b) {
		return 0, false
	}
	return a + b, true
}

func subInt64(a, b int64) (int64, bool) {
	if (b > 0 && a < math.MinInt64+b) || (b < 0 && a > math.MaxInt64+b) {
		return 0, false
	}
	return a - b, true
}

func mulInt64(a, b int64) (int64, bool) {
	if (a > 0 && b > 0 && a > math.MaxInt64/b) ||
		(a > 0 && b <= 0 && b < math.MinInt64/a) ||
		(a <= 0 && b > 0 && a < math.MinInt64/b) ||
		(a < 0 && b <= 0 && b < math.MaxInt64/a) {
		return 0, false
	}
	return a * b, true
}

func divInt64(a, b int64) (int64, bool) {
	if b == 0 || (a == math.MinInt64 && b == -1) {
		return 0, false
	}
	return a / b, true
}
