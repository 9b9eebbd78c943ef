package main

import "github.com/jcorbin/godc/internal/num"

func (m *Machine) push(val Value) { m.stack = append(m.stack, val) }

func (m *Machine) pushNumber(n num.Number) { m.push(numberValue(n)) }

// pop removes and returns the top of stack, reporting an underflow if empty.
func (m *Machine) pop() (val Value, ok bool) {
	i := len(m.stack) - 1
	if i < 0 {
		m.warn(errStackEmpty)
		return val, false
	}
	val, m.stack = m.stack[i], m.stack[:i]
	return val, true
}

// popNumber pops the top of stack if it is a number. A text on top is left in
// place and reported as a type mismatch.
func (m *Machine) popNumber() (num.Number, bool) {
	i := len(m.stack) - 1
	if i < 0 {
		m.warn(errStackEmpty)
		return num.Number{}, false
	}
	n, ok := m.stack[i].Number()
	if !ok {
		m.warn(errNotNumber)
		return num.Number{}, false
	}
	m.stack = m.stack[:i]
	return n, true
}

// popOperands pops a then b for a binary operation computing "b op a". When b
// cannot be popped, a is pushed back only if restore is set.
func (m *Machine) popOperands(restore bool) (b, a num.Number, ok bool) {
	if a, ok = m.popNumber(); !ok {
		return b, a, false
	}
	if b, ok = m.popNumber(); !ok {
		if restore {
			m.pushNumber(a)
		}
		return b, a, false
	}
	return b, a, true
}

func (m *Machine) peek() (val Value, ok bool) {
	i := len(m.stack) - 1
	if i < 0 {
		m.warn(errStackEmpty)
		return val, false
	}
	return m.stack[i], true
}
