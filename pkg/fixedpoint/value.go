package fixedpoint

import (
	"math"
	"strconv"
)

// DefaultPrecision is the number of decimal digits a Value can carry.
const DefaultPrecision = 8

const DefaultPow = 1e8

// Value is a fixed-point decimal backed by an int64 scaled by 1e8.
// It covers the price and quantity ranges of USDT-M futures markets.
type Value int64

const Zero = Value(0)

var One = NewFromInt(1)

func (v Value) Float64() float64 {
	return float64(v) / DefaultPow
}

func (v Value) Int64() int64 {
	return int64(v) / DefaultPow
}

func (v Value) Add(v2 Value) Value {
	return Value(int64(v) + int64(v2))
}

func (v Value) Sub(v2 Value) Value {
	return Value(int64(v) - int64(v2))
}

func (v Value) Mul(v2 Value) Value {
	return NewFromFloat(v.Float64() * v2.Float64())
}

func (v Value) Div(v2 Value) Value {
	return NewFromFloat(v.Float64() / v2.Float64())
}

func (v Value) Neg() Value {
	return Value(-int64(v))
}

func (v Value) Abs() Value {
	if v < 0 {
		return Value(-int64(v))
	}
	return v
}

func (v Value) Sign() int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}

// Compare returns 1 if v > v2, -1 if v < v2 and 0 when equal.
func (v Value) Compare(v2 Value) int {
	switch {
	case v > v2:
		return 1
	case v < v2:
		return -1
	}
	return 0
}

func (v Value) IsZero() bool {
	return v == 0
}

// Trunc drops the decimal digits beyond the given precision, toward zero.
func (v Value) Trunc(prec int) Value {
	if prec >= DefaultPrecision {
		return v
	}

	pow := int64(math.Pow10(DefaultPrecision - prec))
	return Value(int64(v) / pow * pow)
}

func (v Value) String() string {
	return strconv.FormatFloat(v.Float64(), 'f', -1, 64)
}

// FormatString renders the value with a fixed number of decimal digits.
func (v Value) FormatString(prec int) string {
	return strconv.FormatFloat(v.Float64(), 'f', prec, 64)
}

func NewFromFloat(val float64) Value {
	return Value(int64(math.Round(val * DefaultPow)))
}

func NewFromInt(val int64) Value {
	return Value(val * DefaultPow)
}

// NewFromString parses a decimal string. An empty string parses as zero since
// the exchange API omits prices that do not apply to the order type.
func NewFromString(input string) (Value, error) {
	if len(input) == 0 {
		return Zero, nil
	}

	v, err := strconv.ParseFloat(input, 64)
	if err != nil {
		return 0, err
	}

	return NewFromFloat(v), nil
}

func MustNewFromString(input string) Value {
	v, err := NewFromString(input)
	if err != nil {
		panic(err)
	}
	return v
}

func Min(a, b Value) Value {
	if a < b {
		return a
	}
	return b
}

func Max(a, b Value) Value {
	if a > b {
		return a
	}
	return b
}
