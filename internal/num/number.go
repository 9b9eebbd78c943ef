// Package num implements the scaled numbers of the dc machine: a float64
// value paired with a count of significant fractional digits.
package num

import (
	"math"
	"math/big"
	"strconv"
	"strings"
)

// Number is a value together with the number of fractional digits that are
// significant when it is displayed or truncated.
type Number struct {
	Value float64
	Scale int
}

// Int returns an integral Number with zero scale.
func Int(n int) Number { return Number{Value: float64(n)} }

// Of returns a Number holding v, with a scale taken from the count of
// fractional digits in the shortest decimal form of v.
func Of(v float64) Number {
	v = unsigned0(v)
	_, frac, _ := splitPoint(decimalText(v))
	return Number{Value: v, Scale: len(frac)}
}

// IsZero reports whether the value is exactly zero.
func (n Number) IsZero() bool { return n.Value == 0 }

// SetScale returns n adjusted to the given scale. The decimal text of the
// value keeps at most scale fractional digits; excess digits are truncated,
// never rounded, and the truncated text is parsed back into the value.
func (n Number) SetScale(scale int) Number {
	if scale < 0 {
		scale = 0
	}
	whole, frac, hasFrac := splitPoint(decimalText(n.Value))
	text := whole
	if hasFrac && scale > 0 {
		if len(frac) > scale {
			frac = frac[:scale]
		}
		text = whole + "." + frac
	}
	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		// only non-finite values fail to round trip, and truncation is
		// meaningless for them
		v = n.Value
	}
	return Number{Value: unsigned0(v), Scale: scale}
}

// String formats n in base 10.
func (n Number) String() string { return n.Format(10) }

// Format renders n in the given radix. In base 10 exactly Scale fractional
// digits are shown. In any other radix the digit count is instead the length
// of 10^Scale written in that radix, so that a comparable amount of precision
// is retained.
func (n Number) Format(radix int) string {
	scale := n.Scale
	if radix != 10 && scale != 0 {
		scale = RadixScale(scale, radix)
	}

	var whole, frac string
	var hasFrac bool
	if radix == 10 {
		whole, frac, hasFrac = splitPoint(decimalText(n.Value))
	} else {
		whole, frac, hasFrac = radixText(n.Value, radix, scale)
	}

	switch {
	case scale < 1:
		return whole
	case !hasFrac:
		return whole + "." + strings.Repeat("0", scale)
	case len(frac) > scale:
		return whole + "." + frac[:scale]
	default:
		return whole + "." + frac + strings.Repeat("0", scale-len(frac))
	}
}

// Digits counts the digit characters of the base 10 form of n. A zero value
// instead counts as its scale.
func (n Number) Digits() int {
	if n.IsZero() {
		return n.Scale
	}
	count := 0
	for _, r := range n.Format(10) {
		if '0' <= r && r <= '9' {
			count++
		}
	}
	return count
}

// RadixScale returns the number of digits needed to write 10^scale in the
// given radix.
func RadixScale(scale, radix int) int {
	p := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(scale)), nil)
	return len(p.Text(radix))
}

const digitChars = "0123456789abcdefghijklmnopqrstuvwxyz"

// DigitValue returns the value of an input digit. The upper case hexadecimal
// letters are valid digits under any input radix.
func DigitValue(r rune) (int, bool) {
	switch {
	case '0' <= r && r <= '9':
		return int(r - '0'), true
	case 'A' <= r && r <= 'F':
		return int(r-'A') + 10, true
	}
	return 0, false
}

// Parse accumulates the given digit runs under base. The fractional run, when
// point is true, determines the resulting scale by its character count.
func Parse(whole, frac string, point bool, base int, neg bool) Number {
	var v float64
	if base == 10 && isDecimal(whole) && isDecimal(frac) {
		// correctly rounded, so that decimal output scans back exactly
		text := whole
		if text == "" {
			text = "0"
		}
		if frac != "" {
			text += "." + frac
		}
		v, _ = strconv.ParseFloat(text, 64)
	} else {
		b := float64(base)
		for i, r := range whole {
			d, _ := DigitValue(r)
			v += float64(d) * math.Pow(b, float64(len(whole)-i-1))
		}
		for i, r := range frac {
			d, _ := DigitValue(r)
			v += float64(d) * math.Pow(b, -float64(i+1))
		}
	}
	if neg {
		v = -v
	}
	if !point {
		return Number{Value: unsigned0(v)}
	}
	return Number{Value: v}.SetScale(len(frac))
}

func isDecimal(digits string) bool {
	for _, r := range digits {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func decimalText(v float64) string {
	switch {
	case math.IsInf(v, 1):
		return "Infinity"
	case math.IsInf(v, -1):
		return "-Infinity"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func radixText(v float64, radix, digits int) (whole, frac string, hasFrac bool) {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return decimalText(v), "", false
	}

	neg := v < 0
	v = math.Abs(v)
	w := math.Trunc(v)
	f := v - w

	wi, _ := new(big.Float).SetFloat64(w).Int(nil)
	whole = wi.Text(radix)
	if neg && v != 0 {
		whole = "-" + whole
	}
	if f == 0 {
		return whole, "", false
	}

	var sb strings.Builder
	for i := 0; i < digits && f != 0; i++ {
		f *= float64(radix)
		d := int(f)
		f -= float64(d)
		sb.WriteByte(digitChars[d])
	}
	return whole, sb.String(), true
}

func splitPoint(text string) (whole, frac string, hasFrac bool) {
	if i := strings.IndexByte(text, '.'); i >= 0 {
		return text[:i], text[i+1:], true
	}
	return text, "", false
}

// unsigned0 collapses negative zero, which would otherwise render as "-0".
func unsigned0(v float64) float64 {
	if v == 0 {
		return 0
	}
	return v
}
