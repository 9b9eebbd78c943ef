package main

import (
	"io"

	"github.com/jcorbin/godc/internal/flushio"
)

// Option configures a Machine when passed to New.
type Option interface{ apply(m *Machine) }

var defaultOptions = Options(
	withOutput(io.Discard),
	withInputBase(defaultBase),
	withOutputBase(defaultBase),
)

// Options combines any number of options into one, applied in order.
func Options(opts ...Option) Option {
	var res options
	for _, opt := range opts {
		switch impl := opt.(type) {
		case nil:
		case options:
			res = append(res, impl...)
		default:
			res = append(res, impl)
		}
	}
	if len(res) == 1 {
		return res[0]
	}
	return res
}

type options []Option

func (opts options) apply(m *Machine) {
	for _, opt := range opts {
		opt.apply(m)
	}
}

type withLogfn func(mess string, args ...interface{})

func (logfn withLogfn) apply(m *Machine) { m.logfn = logfn }

type displayOption struct{ Display }
type outputOption struct{ io.Writer }
type markupOption struct{ io.Writer }
type teeOption struct{ io.Writer }
type inputBaseOption int
type outputBaseOption int
type scaleOption int
type restoreOperandsOption bool
type arrayLimitOption uint

func withOutput(w io.Writer) outputOption              { return outputOption{w} }
func withInputBase(base int) inputBaseOption           { return inputBaseOption(base) }
func withOutputBase(base int) outputBaseOption         { return outputBaseOption(base) }
func withArrayLimit(limit uint) arrayLimitOption       { return arrayLimitOption(limit) }
func withRestoreOperands(b bool) restoreOperandsOption { return restoreOperandsOption(b) }

// setDisplay flushes any prior display before replacing it.
func (m *Machine) setDisplay(d Display) {
	if fl, ok := m.display.(flusher); ok {
		fl.Flush()
	}
	m.display = d
}

func (o displayOption) apply(m *Machine) { m.setDisplay(o.Display) }
func (o outputOption) apply(m *Machine)  { m.setDisplay(newConsoleDisplay(o.Writer)) }
func (o markupOption) apply(m *Machine)  { m.setDisplay(newMarkupDisplay(o.Writer)) }

// teeOption copies the output of the built in displays into another writer.
func (o teeOption) apply(m *Machine) {
	wf := flushio.NewWriteFlusher(o.Writer)
	switch d := m.display.(type) {
	case *consoleDisplay:
		d.out = flushio.Tee(d.out, wf)
	case *markupDisplay:
		d.out = flushio.Tee(d.out, wf)
	}
}

func (base inputBaseOption) apply(m *Machine)  { m.ibase = int(base) }
func (base outputBaseOption) apply(m *Machine) { m.obase = int(base) }
func (scale scaleOption) apply(m *Machine)     { m.scale = int(scale) }

func (b restoreOperandsOption) apply(m *Machine) { m.restoreOperands = bool(b) }

func (lim arrayLimitOption) apply(m *Machine) { m.regs.arrayLimit = uint(lim) }
