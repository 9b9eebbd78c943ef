package main

import (
	"context"
	"runtime/debug"
	"strings"
	"unicode"

	"github.com/jcorbin/godc/internal/num"
)

// exec runs the continuation stack until every frame is exhausted.
func (m *Machine) exec() {
	for len(m.frames) > 0 {
		m.haltif(m.ctx.Err())

		cur := m.frames[len(m.frames)-1]

		// a starting or resuming frame first continues any pending literal
		if m.resume {
			m.resume = false
			if m.pending != nil {
				m.logf("continue literal at depth %v", len(m.frames))
				m.readString(cur)
				continue
			}
		}

		r := cur.readRune()
		if r == eof {
			m.ret()
			continue
		}
		m.dispatch(r)
	}
}

// call evaluates text as a chunk before the rest of the current frame. An
// exhausted caller is elided rather than kept around just to be resumed.
func (m *Machine) call(text string) {
	frame := newCursor(text)
	if i := len(m.frames) - 1; i >= 0 && m.frames[i].done() {
		frame.tails = m.frames[i].tails + 1
		m.frames[i] = nil
		m.frames = m.frames[:i]
	}
	m.frames = append(m.frames, frame)
	m.resume = true
	m.logf("call depth:%v tails:%v %q", len(m.frames), frame.tails, text)
}

// ret pops an exhausted frame, resuming its caller. Each elided caller would
// have resumed with no text left, extending any pending literal by one line
// break.
func (m *Machine) ret() {
	i := len(m.frames) - 1
	frame := m.frames[i]
	m.frames[i] = nil
	m.frames = m.frames[:i]
	if m.pending != nil && frame.tails > 0 {
		m.pending.WriteString(strings.Repeat("\n", frame.tails))
	}
	m.resume = true
}

func (m *Machine) top() *cursor { return m.frames[len(m.frames)-1] }

func (m *Machine) dispatch(r rune) {
	code := opUnimplemented
	if int(r) < len(opTable) {
		code = opTable[r]
	} else if unicode.IsSpace(r) {
		code = opNop
	}
	if code != opNop && m.logfn != nil {
		m.logf("exec %q %v -- s:%v", r, opNames[code], m.stack)
	}
	opFuncs[code](m)
}

// readRegister reads a register name; the end of text names the line feed
// register, as if the line break were still there.
func (m *Machine) readRegister() rune {
	if r := m.top().readRune(); r != eof {
		return r
	}
	return '\n'
}

// readString scans a bracketed literal, whose opening bracket has already
// been read, pushing its text once the brackets balance. Inner bracket pairs
// are kept verbatim. Running out of text leaves the literal pending, with a
// line break appended, for whatever text is evaluated next.
func (m *Machine) readString(cur *cursor) {
	buf := m.pending
	if buf == nil {
		buf = new(strings.Builder)
		m.level++
	}
	m.pending = nil

	for {
		r := cur.readRune()
		if r == eof {
			buf.WriteByte('\n')
			m.pending = buf
			return
		}
		if r == '[' {
			m.level++
		}
		if r == ']' {
			if m.level--; m.level == 0 {
				break
			}
		}
		buf.WriteRune(r)
	}
	m.push(textValue(buf.String()))
}

// scanNumber reads a number literal whose first rune has already been read: a
// run of digits with at most one point, led by an optional _ for negation.
func (m *Machine) scanNumber() {
	cur := m.top()
	neg := cur.last == '_'
	point := cur.last == '.'
	var whole, frac strings.Builder
	if !neg && !point {
		whole.WriteRune(cur.last)
	}

	for {
		r := cur.readRune()
		if r == eof {
			break
		}
		if r == '.' {
			if point {
				cur.unreadRune()
				break
			}
			point = true
			continue
		}
		if _, isDigit := num.DigitValue(r); !isDigit {
			cur.unreadRune()
			break
		}
		if point {
			frac.WriteRune(r)
		} else {
			whole.WriteRune(r)
		}
	}

	m.pushNumber(num.Parse(whole.String(), frac.String(), point, m.ibase, neg))
}

func (m *Machine) evalChunk(ctx context.Context, chunk string) (err error) {
	defer func() {
		switch e := recover().(type) {
		case nil:
		case haltError:
			err = e.error
		default:
			err = panicError{e, debug.Stack()}
		}
	}()
	m.ctx = ctx
	for i := range m.frames {
		m.frames[i] = nil
	}
	m.frames = append(m.frames[:0], newCursor(chunk))
	m.resume = true
	m.exec()
	return nil
}
