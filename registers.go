package main

import (
	"sort"

	"github.com/jcorbin/godc/internal/mem"
	"github.com/jcorbin/godc/internal/num"
)

// regFrame is one depth of a register: a value and the array scoped to it.
// Keeping both in one frame makes value and array depth move together.
type regFrame struct {
	val   Value
	isSet bool
	array *mem.Pages[Value]
}

// register is a stack of frames, named by a single rune.
type register struct {
	frames []regFrame
}

type registers struct {
	regs       map[rune]*register
	arrayLimit uint
}

func (rs *registers) get(name rune) *register {
	reg := rs.regs[name]
	if reg == nil {
		if rs.regs == nil {
			rs.regs = make(map[rune]*register)
		}
		reg = &register{}
		rs.regs[name] = reg
	}
	return reg
}

func (rs *registers) newFrame(val Value, isSet bool) regFrame {
	return regFrame{
		val:   val,
		isSet: isSet,
		array: &mem.Pages[Value]{Limit: rs.arrayLimit},
	}
}

// top returns the register's top frame, creating the first one if needed.
func (rs *registers) top(reg *register) *regFrame {
	if len(reg.frames) == 0 {
		reg.frames = append(reg.frames, rs.newFrame(Value{}, false))
	}
	return &reg.frames[len(reg.frames)-1]
}

// store replaces the value of the top frame without changing depth.
func (rs *registers) store(name rune, val Value) {
	frame := rs.top(rs.get(name))
	frame.val, frame.isSet = val, true
}

// load returns the value of the top frame; an empty register loads as 0.
func (rs *registers) load(name rune) Value {
	if reg := rs.regs[name]; reg != nil {
		if i := len(reg.frames) - 1; i >= 0 && reg.frames[i].isSet {
			return reg.frames[i].val
		}
	}
	return numberValue(num.Number{})
}

// pushFrame pushes a value along with a fresh array.
func (rs *registers) pushFrame(name rune, val Value) {
	reg := rs.get(name)
	reg.frames = append(reg.frames, rs.newFrame(val, true))
}

// popFrame pops the top value and discards its array.
func (rs *registers) popFrame(name rune) (Value, bool) {
	reg := rs.regs[name]
	if reg == nil || len(reg.frames) == 0 {
		return Value{}, false
	}
	i := len(reg.frames) - 1
	frame := reg.frames[i]
	reg.frames[i] = regFrame{}
	reg.frames = reg.frames[:i]
	return frame.val, true
}

// macro returns the program text held by the register's top value, which is
// "0" for an empty register.
func (rs *registers) macro(name rune) string {
	if reg := rs.regs[name]; reg != nil {
		if i := len(reg.frames) - 1; i >= 0 && reg.frames[i].isSet {
			return reg.frames[i].val.String()
		}
	}
	return "0"
}

func (rs *registers) arrayStore(name rune, index uint, val Value) error {
	return rs.top(rs.get(name)).array.Stor(index, val)
}

func (rs *registers) arrayLoad(name rune, index uint) (Value, error) {
	if reg := rs.regs[name]; reg != nil && len(reg.frames) > 0 {
		return reg.frames[len(reg.frames)-1].array.Load(index)
	}
	return Value{}, nil
}

// names returns every register name used so far, in order.
func (rs *registers) names() []rune {
	names := make([]rune, 0, len(rs.regs))
	for name := range rs.regs {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })
	return names
}
