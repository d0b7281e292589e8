package value

// Number is a dual-tagged numeric: it holds either a lossless int64 or a
// float64, never both meaningfully at once. Integer arithmetic stays
// integer-only until an operation forces promotion to float64, so that
// JSON numbers with no fractional or exponent part round-trip exactly
// through length/sum/index arithmetic.
type Number struct {
	isInt bool
	i     int64
	f     float64
}

// IntNumber constructs an integer Number.
func IntNumber(i int64) Number {
	return Number{isInt: true, i: i}
}

// FloatNumber constructs a float Number.
func FloatNumber(f float64) Number {
	return Number{isInt: false, f: f}
}

// IsInt reports whether n holds an integer representation.
func (n Number) IsInt() bool {
	return n.isInt
}

// Int64 returns the integer value, valid only when IsInt() is true.
func (n Number) Int64() int64 {
	return n.i
}

// Float64 returns n as a float64, promoting from int64 if necessary.
func (n Number) Float64() float64 {
	if n.isInt {
		return float64(n.i)
	}
	return n.f
}

// NumberEqual reports whether a and b have the same mathematical value,
// e.g. Number(1) == Number(1.0), matching JSON's number equality rather
// than Go's distinct int/float representations.
func NumberEqual(a, b Number) bool {
	if a.isInt && b.isInt {
		return a.i == b.i
	}
	return a.Float64() == b.Float64()
}

func compareNumber(a, b Number) CompareResult {
	if a.isInt && b.isInt {
		switch {
		case a.i < b.i:
			return CompareLess
		case a.i > b.i:
			return CompareGreater
		default:
			return CompareEqual
		}
	}
	af, bf := a.Float64(), b.Float64()
	switch {
	case af < bf:
		return CompareLess
	case af > bf:
		return CompareGreater
	default:
		return CompareEqual
	}
}

// Add returns a+b, promoting to float64 if either operand is a float.
func (n Number) Add(o Number) Number {
	if n.isInt && o.isInt {
		return IntNumber(n.i + o.i)
	}
	return FloatNumber(n.Float64() + o.Float64())
}

// Abs returns the absolute value of n.
func (n Number) Abs() Number {
	if n.isInt {
		if n.i < 0 {
			return IntNumber(-n.i)
		}
		return n
	}
	f := n.f
	if f < 0 {
		f = -f
	}
	return FloatNumber(f)
}
