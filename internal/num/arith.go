package num

import (
	"errors"
	"math"
)

// Operands are named after their stack positions: b was pushed first, a is
// the top of stack. Every binary operation computes "b op a".

var (
	ErrDivideByZero    = errors.New("divide by zero")
	ErrRemainderByZero = errors.New("remainder by zero")
	ErrNegativeRoot    = errors.New("square root of negative number")
)

// SumScale is the result scale of addition and subtraction.
func SumScale(b, a int) int { return maxInt(b, a) }

// ProductScale is the result scale of multiplication under a global scale.
func ProductScale(b, a, scale int) int { return minInt(b+a, maxInt(b, a, scale)) }

// RemainderScale is the result scale of a remainder under a global scale.
func RemainderScale(b, a, scale int) int { return maxInt(scale, a, b) }

// PowerScale is the result scale of raising a base with scale b to an
// exponent with scale a. Negative exponents yield the global scale; otherwise
// the result is min(a*b, max(scale, b)).
func PowerScale(b, a, scale int, negative bool) int {
	if negative {
		return scale
	}
	return minInt(a*b, maxInt(scale, b))
}

// RootScale is the result scale of a square root under a global scale.
func RootScale(n, scale int) int { return maxInt(n, scale) }

func Add(b, a Number) Number {
	return Of(b.Value + a.Value).SetScale(SumScale(b.Scale, a.Scale))
}

func Sub(b, a Number) Number {
	return Of(b.Value - a.Value).SetScale(SumScale(b.Scale, a.Scale))
}

func Mul(b, a Number, scale int) Number {
	return Of(b.Value * a.Value).SetScale(ProductScale(b.Scale, a.Scale, scale))
}

// Div returns b / a truncated to the global scale.
func Div(b, a Number, scale int) (Number, error) {
	if a.IsZero() {
		return Number{}, ErrDivideByZero
	}
	return Of(b.Value / a.Value).SetScale(scale), nil
}

// Mod returns b - a*q where q is b/a truncated to the global scale.
func Mod(b, a Number, scale int) (Number, error) {
	if a.IsZero() {
		return Number{}, ErrRemainderByZero
	}
	q := Of(b.Value / a.Value).SetScale(scale)
	r := Of(b.Value - q.Value*a.Value)
	return r.SetScale(RemainderScale(b.Scale, a.Scale, scale)), nil
}

// Pow raises b to the integer part of a. The returned flag is false when a
// had a non-zero fractional part that was discarded.
func Pow(b, a Number, scale int) (Number, bool) {
	exp := math.Trunc(a.Value)
	r := Of(math.Pow(b.Value, exp))
	return r.SetScale(PowerScale(b.Scale, a.Scale, scale, exp < 0)), exp == a.Value
}

func Sqrt(n Number, scale int) (Number, error) {
	if n.Value < 0 {
		return Number{}, ErrNegativeRoot
	}
	return Of(math.Sqrt(n.Value)).SetScale(RootScale(n.Scale, scale)), nil
}

func maxInt(n int, ns ...int) int {
	for _, m := range ns {
		if m > n {
			n = m
		}
	}
	return n
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
