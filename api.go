package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/jcorbin/godc/internal/fileinput"
)

// New creates a Machine with base 10 input and output, a global scale of 0,
// and output discarded unless an option says otherwise.
func New(opts ...Option) *Machine {
	var m Machine
	defaultOptions.apply(&m)
	Options(opts...).apply(&m)
	return &m
}

// Eval evaluates a chunk of program text; see EvalContext.
func (m *Machine) Eval(chunk string) error {
	return m.EvalContext(context.Background(), chunk)
}

// EvalContext evaluates a chunk of program text, including any macros it
// executes, then flushes the display. Operator failures are reported through
// the display rather than returned; the only errors returned are display
// write failures and ctx being done. A bracketed literal left open at the end
// of chunk is continued by the next chunk evaluated.
func (m *Machine) EvalContext(ctx context.Context, chunk string) error {
	err := m.evalChunk(ctx, chunk)
	if fl, ok := m.display.(flusher); ok {
		if ferr := fl.Flush(); err == nil {
			err = ferr
		}
	}
	return err
}

// LineReader supplies chunks to Run, returning io.EOF after the last one.
type LineReader interface {
	ReadLine() (string, error)
}

// Run evaluates every line read from in, until it returns io.EOF.
func (m *Machine) Run(ctx context.Context, in LineReader) error {
	for {
		line, err := in.ReadLine()
		if errors.Is(err, io.EOF) {
			return nil
		} else if err != nil {
			return err
		}
		if err := m.EvalContext(ctx, line); err != nil {
			if loc, ok := in.(interface{ Where() fileinput.Location }); ok {
				return fmt.Errorf("%v: %w", loc.Where(), err)
			}
			return err
		}
	}
}

// Stack returns a copy of the operand stack, top of stack last.
func (m *Machine) Stack() []Value {
	return append([]Value(nil), m.stack...)
}

// Close finishes the display, ending any open markup paragraph.
func (m *Machine) Close() error {
	switch d := m.display.(type) {
	case io.Closer:
		return d.Close()
	case flusher:
		return d.Flush()
	}
	return nil
}

func WithDisplay(d Display) Option      { return displayOption{d} }
func WithOutput(w io.Writer) Option     { return withOutput(w) }
func WithMarkup(w io.Writer) Option     { return markupOption{w} }
func WithTee(w io.Writer) Option        { return teeOption{w} }
func WithInputBase(base int) Option     { return withInputBase(base) }
func WithOutputBase(base int) Option    { return withOutputBase(base) }
func WithScale(scale int) Option        { return scaleOption(scale) }
func WithArrayLimit(limit uint) Option  { return withArrayLimit(limit) }
func WithRestoreOperands(b bool) Option { return withRestoreOperands(b) }

func WithLogf(logfn func(mess string, args ...interface{})) Option { return withLogfn(logfn) }
