package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jcorbin/godc/internal/num"
)

type dcTestCases []dcTestCase

func (dcts dcTestCases) run(t *testing.T) {
	{
		var exclusive []dcTestCase
		for _, dct := range dcts {
			if dct.exclusive {
				exclusive = append(exclusive, dct)
			}
		}
		if len(exclusive) > 0 {
			dcts = exclusive
		}
	}
	for _, dct := range dcts {
		if !t.Run(dct.name, dct.run) {
			return
		}
	}
}

func dcTest(name string) (dct dcTestCase) {
	dct.name = name
	return dct
}

type optFunc func(m *Machine)

func (f optFunc) apply(m *Machine) { f(m) }

type dcTestCase struct {
	name    string
	opts    []Option
	inputs  []string
	expect  []func(t *testing.T, m *Machine)
	timeout time.Duration
	wantErr error

	exclusive bool
}

func (dct dcTestCase) exclusiveTest() dcTestCase {
	dct.exclusive = true
	return dct
}

func (dct dcTestCase) withOptions(opts ...Option) dcTestCase {
	dct.opts = append(dct.opts, opts...)
	return dct
}

// withStack pushes values written as by stackStrings: texts in brackets,
// numbers in base 10.
func (dct dcTestCase) withStack(values ...string) dcTestCase {
	dct.opts = append(dct.opts, optFunc(func(m *Machine) {
		for _, value := range values {
			m.push(parseValue(value))
		}
	}))
	return dct
}

// withInput adds chunks, each evaluated by its own call to EvalContext.
func (dct dcTestCase) withInput(chunks ...string) dcTestCase {
	dct.inputs = append(dct.inputs, chunks...)
	return dct
}

func (dct dcTestCase) withTimeout(timeout time.Duration) dcTestCase {
	dct.timeout = timeout
	return dct
}

func (dct dcTestCase) expectError(err error) dcTestCase {
	dct.wantErr = err
	return dct
}

func (dct dcTestCase) expectStack(values ...string) dcTestCase {
	dct.expect = append(dct.expect, func(t *testing.T, m *Machine) {
		if values == nil {
			values = []string{}
		}
		assert.Equal(t, values, stackStrings(m), "expected stack values")
	})
	return dct
}

func (dct dcTestCase) expectOutput(output string) dcTestCase {
	var out strings.Builder
	dct.opts = append(dct.opts, WithOutput(&out))
	dct.expect = append(dct.expect, func(t *testing.T, m *Machine) {
		assert.Equal(t, output, out.String(), "expected output")
	})
	return dct
}

func (dct dcTestCase) expectMarkup(output string) dcTestCase {
	var out strings.Builder
	dct.opts = append(dct.opts, WithMarkup(&out))
	dct.expect = append(dct.expect, func(t *testing.T, m *Machine) {
		assert.Equal(t, output, out.String(), "expected markup output")
	})
	return dct
}

func (dct dcTestCase) expectRegister(name rune, values ...string) dcTestCase {
	dct.expect = append(dct.expect, func(t *testing.T, m *Machine) {
		var got []string
		if reg := m.regs.regs[name]; reg != nil {
			for _, frame := range reg.frames {
				got = append(got, formatValue(frame.val))
			}
		}
		assert.Equal(t, values, got, "expected register %q values", name)
	})
	return dct
}

func (dct dcTestCase) expectSettings(ibase, obase, scale int) dcTestCase {
	dct.expect = append(dct.expect, func(t *testing.T, m *Machine) {
		assert.Equal(t, ibase, m.ibase, "expected input base")
		assert.Equal(t, obase, m.obase, "expected output base")
		assert.Equal(t, scale, m.scale, "expected scale")
	})
	return dct
}

func (dct dcTestCase) expectPending(text string) dcTestCase {
	dct.expect = append(dct.expect, func(t *testing.T, m *Machine) {
		if assert.NotNil(t, m.pending, "expected a pending literal") {
			assert.Equal(t, text, m.pending.String(), "expected pending literal")
		}
	})
	return dct
}

func (dct dcTestCase) expectDump(dump string) dcTestCase {
	dct.expect = append(dct.expect, func(t *testing.T, m *Machine) {
		var out strings.Builder
		machineDumper{m: m, out: &out}.dump()
		assert.Equal(t, dump, out.String(), "expected dump")
	})
	return dct
}

func (dct dcTestCase) run(t *testing.T) {
	var trace logWriter
	trace.prefix = "trace: "

	opts := append([]Option{WithLogf(trace.printf)}, dct.opts...)
	m := New(opts...)

	timeout := dct.timeout
	if timeout == 0 {
		timeout = time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	defer func() {
		if t.Failed() {
			trace.flushTo(t)
			lw := logWriter{prefix: "fail_dump: "}
			machineDumper{m: m, out: &lw}.dump()
			lw.flushTo(t)
		}
	}()

	var err error
	for _, chunk := range dct.inputs {
		if err = m.EvalContext(ctx, chunk); err != nil {
			break
		}
	}
	if cerr := m.Close(); err == nil {
		err = cerr
	}

	if dct.wantErr != nil {
		assert.True(t, errors.Is(err, dct.wantErr), "expected error: %v\ngot: %+v", dct.wantErr, err)
	} else {
		assert.NoError(t, err, "unexpected evaluation error")
	}

	if !t.Failed() {
		for _, expect := range dct.expect {
			expect(t, m)
		}
	}
}

//// utilities

// logWriter collects lines, logging them to a test only if asked; trace
// output is only interesting once something has failed.
type logWriter struct {
	mu     sync.Mutex
	prefix string
	buf    bytes.Buffer
	lines  []string
}

func (lw *logWriter) printf(mess string, args ...interface{}) {
	lw.mu.Lock()
	defer lw.mu.Unlock()
	lw.lines = append(lw.lines, lw.prefix+fmt.Sprintf(mess, args...))
}

func (lw *logWriter) Write(p []byte) (n int, err error) {
	lw.mu.Lock()
	defer lw.mu.Unlock()
	lw.buf.Write(p)
	for {
		i := bytes.IndexByte(lw.buf.Bytes(), '\n')
		if i < 0 {
			break
		}
		lw.lines = append(lw.lines, lw.prefix+string(lw.buf.Next(i)))
		lw.buf.Next(1)
	}
	return len(p), nil
}

func (lw *logWriter) flushTo(t *testing.T) {
	lw.mu.Lock()
	defer lw.mu.Unlock()
	if n := lw.buf.Len(); n > 0 {
		lw.lines = append(lw.lines, lw.prefix+string(lw.buf.Next(n)))
	}
	for _, line := range lw.lines {
		t.Log(line)
	}
	lw.lines = nil
}

func lines(parts ...string) string {
	return strings.Join(parts, "\n") + "\n"
}

func formatValue(val Value) string {
	if text, ok := val.Text(); ok {
		return "[" + text + "]"
	}
	return val.String()
}

func stackStrings(m *Machine) []string {
	values := make([]string, 0, len(m.stack))
	for _, val := range m.Stack() {
		values = append(values, formatValue(val))
	}
	return values
}

// parseValue reads a bracketed text or a base 10 number.
func parseValue(s string) Value {
	if strings.HasPrefix(s, "[") && strings.HasSuffix(s, "]") {
		return textValue(s[1 : len(s)-1])
	}
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	whole, frac, point := strings.Cut(s, ".")
	return numberValue(num.Parse(whole, frac, point, 10, neg))
}
