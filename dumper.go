package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

type machineDumper struct {
	m   *Machine
	out io.Writer
}

func (dump machineDumper) dump() {
	m := dump.m
	fmt.Fprintf(dump.out, "# Machine Dump\n")
	fmt.Fprintf(dump.out, "  ibase: %v obase: %v scale: %v\n", m.ibase, m.obase, m.scale)
	dump.dumpStack()
	dump.dumpFrames()
	dump.dumpRegisters()
}

func (dump machineDumper) dumpStack() {
	fmt.Fprintf(dump.out, "  stack: %v\n", dump.formatValues(dump.m.stack))
}

func (dump machineDumper) dumpFrames() {
	m := dump.m
	for i, cur := range m.frames {
		fmt.Fprintf(dump.out, "  frame[%v]: %q tails:%v\n", i, cur.remainder(), cur.tails)
	}
	if m.pending != nil {
		fmt.Fprintf(dump.out, "  pending: %q level:%v\n", m.pending.String(), m.level)
	}
}

func (dump machineDumper) dumpRegisters() {
	rs := &dump.m.regs
	for _, name := range rs.names() {
		reg := rs.regs[name]
		for i := len(reg.frames) - 1; i >= 0; i-- {
			frame := reg.frames[i]
			fmt.Fprintf(dump.out, "  %v[%v]: ", registerName(name), i)
			if frame.isSet {
				io.WriteString(dump.out, dump.formatValue(frame.val))
			} else {
				io.WriteString(dump.out, "<unset>")
			}
			frame.array.Each(func(index uint, val Value) {
				if val != (Value{}) {
					fmt.Fprintf(dump.out, " %v:%v", index, dump.formatValue(val))
				}
			})
			io.WriteString(dump.out, "\n")
		}
	}
}

func (dump machineDumper) formatValues(vals []Value) string {
	parts := make([]string, len(vals))
	for i, val := range vals {
		parts[i] = dump.formatValue(val)
	}
	return "[" + strings.Join(parts, " ") + "]"
}

func (dump machineDumper) formatValue(val Value) string {
	if text, ok := val.Text(); ok {
		return "[" + text + "]"
	}
	return val.Format(dump.m.obase)
}

func registerName(name rune) string {
	if name < ' ' || name == 0x7f {
		return fmt.Sprintf("%03o", name)
	}
	return strconv.QuoteRune(name)
}

// Snapshot is a plain copy of a machine's state, suitable for structure
// dumping tools.
type Snapshot struct {
	IBase     int
	OBase     int
	Scale     int
	Stack     []string
	Pending   string
	Registers map[string][]RegisterFrame
}

// RegisterFrame is one depth of a register within a Snapshot.
type RegisterFrame struct {
	Value string
	Array map[uint]string
}

func (m *Machine) snapshot() Snapshot {
	snap := Snapshot{
		IBase: m.ibase,
		OBase: m.obase,
		Scale: m.scale,
	}
	for _, val := range m.stack {
		snap.Stack = append(snap.Stack, val.Format(m.obase))
	}
	if m.pending != nil {
		snap.Pending = m.pending.String()
	}
	for _, name := range m.regs.names() {
		reg := m.regs.regs[name]
		if snap.Registers == nil {
			snap.Registers = make(map[string][]RegisterFrame)
		}
		frames := make([]RegisterFrame, 0, len(reg.frames))
		for _, frame := range reg.frames {
			rf := RegisterFrame{Value: frame.val.Format(m.obase)}
			frame.array.Each(func(index uint, val Value) {
				if val != (Value{}) {
					if rf.Array == nil {
						rf.Array = make(map[uint]string)
					}
					rf.Array[index] = val.Format(m.obase)
				}
			})
			frames = append(frames, rf)
		}
		snap.Registers[registerName(name)] = frames
	}
	return snap
}
