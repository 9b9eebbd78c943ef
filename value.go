package main

import "github.com/jcorbin/godc/internal/num"

// ValueKind tags the variants of a Value.
type ValueKind uint8

const (
	NumberValue ValueKind = iota
	TextValue
)

// Value is a stack citizen: either a scaled number or an opaque text, such as
// a macro body read from a bracketed literal. The zero Value is the number 0.
type Value struct {
	kind ValueKind
	num  num.Number
	text string
}

func numberValue(n num.Number) Value { return Value{kind: NumberValue, num: n} }
func textValue(s string) Value       { return Value{kind: TextValue, text: s} }

// Kind returns which variant v holds.
func (v Value) Kind() ValueKind { return v.kind }

// Number returns the number held by v, if any.
func (v Value) Number() (num.Number, bool) { return v.num, v.kind == NumberValue }

// Text returns the text held by v, if any.
func (v Value) Text() (string, bool) { return v.text, v.kind == TextValue }

// Format renders a number in the given radix; texts render as themselves.
func (v Value) Format(radix int) string {
	switch v.kind {
	case TextValue:
		return v.text
	default:
		return v.num.Format(radix)
	}
}

// String renders v in base 10, which is also the program text evaluated when
// a number is executed as a macro.
func (v Value) String() string { return v.Format(10) }
