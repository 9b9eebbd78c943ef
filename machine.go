package main

import (
	"context"
	"strings"
)

// Machine is a dc abstract machine: an operand stack, registers with their
// arrays, and the session settings consulted by arithmetic and output. One
// Machine serves one session; it is not safe for concurrent use.
type Machine struct {
	display Display
	logfn   func(mess string, args ...interface{})

	stack []Value
	regs  registers

	ibase int // input radix, 2 through 16
	obase int // output radix, 2 through 36
	scale int // fractional digits kept by division and friends

	// restore popped operands on every failed binary operation, rather than
	// only for division and remainder
	restoreOperands bool

	// The continuation stack: the innermost frame is last. Each macro call
	// pushes a frame; its caller resumes once it is exhausted.
	frames []*cursor
	resume bool

	// An unterminated bracketed literal carried across frames and chunks.
	pending *strings.Builder
	level   int

	ctx context.Context
}

const (
	defaultBase = 10
	maxScale    = 1 << 20
)

func (m *Machine) logf(mess string, args ...interface{}) {
	if m.logfn != nil {
		m.logfn(mess, args...)
	}
}

// warn reports an advisory through the display; evaluation carries on.
func (m *Machine) warn(err error) {
	m.logf("warn %v: %v", errorKindOf(err), err)
	m.write("dc: "+err.Error(), true)
}

// write sends text to the display, suppressing its line break if asked.
func (m *Machine) write(text string, newline bool) {
	if !newline {
		m.display.SetNewline(false)
		defer m.display.SetNewline(true)
	}
	if err := m.display.WriteText(text); err != nil {
		m.halt(err)
	}
}

func (m *Machine) halt(err error) {
	m.logf("halt error: %v", err)
	panic(haltError{err})
}

func (m *Machine) haltif(err error) {
	if err != nil {
		m.halt(err)
	}
}
