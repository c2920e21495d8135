package fixedpoint

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestArithmetic(t *testing.T) {
	a := MustNewFromString("1.5")
	b := MustNewFromString("0.5")

	assert.Equal(t, NewFromInt(2), a.Add(b))
	assert.Equal(t, One, a.Sub(b))
	assert.Equal(t, MustNewFromString("0.75"), a.Mul(b))
	assert.Equal(t, NewFromInt(3), a.Div(b))
}

func TestCompareAndSign(t *testing.T) {
	assert.Equal(t, 1, One.Compare(Zero))
	assert.Equal(t, -1, Zero.Compare(One))
	assert.Equal(t, 0, One.Compare(One))

	assert.Equal(t, 1, One.Sign())
	assert.Equal(t, -1, One.Neg().Sign())
	assert.Equal(t, 0, Zero.Sign())

	assert.Equal(t, One, One.Neg().Abs())
}

func TestTrunc(t *testing.T) {
	v := MustNewFromString("0.123456789")
	assert.Equal(t, "0.123", v.Trunc(3).String())
	assert.Equal(t, "0.12345678", v.Trunc(8).String())

	// truncation is toward zero
	n := MustNewFromString("-0.1239")
	assert.Equal(t, "-0.123", n.Trunc(3).String())
}

func TestString(t *testing.T) {
	assert.Equal(t, "0.25", MustNewFromString("0.25").String())
	assert.Equal(t, "105", NewFromInt(105).String())
	assert.Equal(t, "105.00", NewFromInt(105).FormatString(2))
}

func TestSum(t *testing.T) {
	values := []Value{
		MustNewFromString("0.25"),
		MustNewFromString("0.25"),
		MustNewFromString("0.25"),
		MustNewFromString("0.25"),
	}
	assert.Equal(t, One, Sum(values))
	assert.Equal(t, MustNewFromString("0.25"), Avg(values))
}
