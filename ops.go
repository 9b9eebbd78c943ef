package main

import (
	"math"

	"github.com/jcorbin/godc/internal/num"
)

type opcode uint8

const (
	opUnimplemented opcode = iota // <NONE>  report the rune as unimplemented
	opNop                         // space   whitespace and other controls
	opNumber                      // 0-9A-F_. scan a number literal

	opAdd  // +  b + a
	opSub  // -  b - a
	opMul  // *  b * a
	opDiv  // /  b / a
	opMod  // %  remainder of b / a
	opExp  // ^  b raised to the integer part of a
	opSqrt // v  square root

	opLess    // <r  execute register r if b < a
	opGreater // >r  execute register r if b > a
	opEqual   // =r  execute register r if b = a
	opBang    // !   negate the following comparison

	opPrint      // p  print top of stack
	opPopPrint   // n  pop and print without a line break
	opPrintChar  // P  pop and print, numbers as a character
	opPrintStack // f  print the whole stack, top first

	opClear // c  empty the stack
	opDrop  // R  pop and discard
	opDup   // d  duplicate top of stack
	opSwap  // r  swap the top two values
	opDepth // z  push the stack depth

	opStore      // sr  pop into register r
	opStackStore // Sr  pop and push onto register r
	opLoad       // lr  push the value of register r
	opStackLoad  // Lr  pop register r onto the stack
	opArrayStore // :r  store b at index a of array r
	opArrayLoad  // ;r  push the value at index a of array r

	opSetIbase // i  pop the input radix
	opGetIbase // I  push the input radix
	opSetObase // o  pop the output radix
	opGetObase // O  push the output radix
	opSetScale // k  pop the global scale
	opGetScale // K  push the global scale

	opPushScale // X  replace a number with its scale
	opDigits    // Z  replace a number with its digit count
	opToChar    // a  convert a number to a character
	opExec      // x  execute top of stack
	opString    // [  read a bracketed literal
	opComment   // #  skip the rest of the text

	opEqualNumbers // G  push 1 if b = a, 0 otherwise
	opNot          // N  push 1 if a is 0, 0 otherwise

	opMax
)

var opTable = [128]opcode{
	'0': opNumber, '1': opNumber, '2': opNumber, '3': opNumber, '4': opNumber,
	'5': opNumber, '6': opNumber, '7': opNumber, '8': opNumber, '9': opNumber,
	'A': opNumber, 'B': opNumber, 'C': opNumber, 'D': opNumber, 'E': opNumber,
	'F': opNumber, '_': opNumber, '.': opNumber,

	'+': opAdd, '-': opSub, '*': opMul, '/': opDiv, '%': opMod, '^': opExp, 'v': opSqrt,

	'<': opLess, '>': opGreater, '=': opEqual, '!': opBang,

	'p': opPrint, 'n': opPopPrint, 'P': opPrintChar, 'f': opPrintStack,

	'c': opClear, 'R': opDrop, 'd': opDup, 'r': opSwap, 'z': opDepth,

	's': opStore, 'S': opStackStore, 'l': opLoad, 'L': opStackLoad,
	':': opArrayStore, ';': opArrayLoad,

	'i': opSetIbase, 'I': opGetIbase,
	'o': opSetObase, 'O': opGetObase,
	'k': opSetScale, 'K': opGetScale,

	'X': opPushScale, 'Z': opDigits, 'a': opToChar, 'x': opExec,
	'[': opString, '#': opComment,

	'G': opEqualNumbers, 'N': opNot,
}

var opFuncs [opMax]func(m *Machine)
var opNames [opMax]string

func init() {
	for r := 0; r <= ' '; r++ {
		opTable[r] = opNop
	}
	opTable[0x7f] = opNop

	opFuncs = [...]func(m *Machine){
		(*Machine).unimplemented,
		(*Machine).nop,
		(*Machine).scanNumber,

		(*Machine).add,
		(*Machine).sub,
		(*Machine).mul,
		(*Machine).div,
		(*Machine).mod,
		(*Machine).exp,
		(*Machine).sqrt,

		(*Machine).less,
		(*Machine).greater,
		(*Machine).equal,
		(*Machine).bang,

		(*Machine).print,
		(*Machine).popPrint,
		(*Machine).printChar,
		(*Machine).printStack,

		(*Machine).clear,
		(*Machine).drop,
		(*Machine).dup,
		(*Machine).swap,
		(*Machine).depth,

		(*Machine).store,
		(*Machine).stackStore,
		(*Machine).load,
		(*Machine).stackLoad,
		(*Machine).arrayStore,
		(*Machine).arrayLoad,

		(*Machine).setIbase,
		(*Machine).getIbase,
		(*Machine).setObase,
		(*Machine).getObase,
		(*Machine).setScale,
		(*Machine).getScale,

		(*Machine).pushScale,
		(*Machine).digits,
		(*Machine).toChar,
		(*Machine).execute,
		(*Machine).bracket,
		(*Machine).comment,

		(*Machine).equalNumbers,
		(*Machine).not,
	}

	opNames = [...]string{
		"unimplemented",
		"nop",
		"number",

		"add",
		"sub",
		"mul",
		"div",
		"mod",
		"exp",
		"sqrt",

		"less",
		"greater",
		"equal",
		"bang",

		"print",
		"popPrint",
		"printChar",
		"printStack",

		"clear",
		"drop",
		"dup",
		"swap",
		"depth",

		"store",
		"stackStore",
		"load",
		"stackLoad",
		"arrayStore",
		"arrayLoad",

		"setIbase",
		"getIbase",
		"setObase",
		"getObase",
		"setScale",
		"getScale",

		"pushScale",
		"digits",
		"toChar",
		"execute",
		"bracket",
		"comment",

		"equalNumbers",
		"not",
	}
}

func (op opcode) String() string {
	if op < opMax {
		return opNames[op]
	}
	return "INVALID"
}

func (m *Machine) unimplemented() { m.warn(errUnimplemented(m.top().last)) }

func (m *Machine) nop() {}

func (m *Machine) add() {
	if b, a, ok := m.popOperands(m.restoreOperands); ok {
		m.pushNumber(num.Add(b, a))
	}
}

func (m *Machine) sub() {
	if b, a, ok := m.popOperands(m.restoreOperands); ok {
		m.pushNumber(num.Sub(b, a))
	}
}

func (m *Machine) mul() {
	if b, a, ok := m.popOperands(m.restoreOperands); ok {
		m.pushNumber(num.Mul(b, a, m.scale))
	}
}

// div and mod always restore their operands, both on underflow and on a zero
// divisor.
func (m *Machine) div() {
	if b, a, ok := m.popOperands(true); ok {
		m.divide(b, a, num.Div)
	}
}

func (m *Machine) mod() {
	if b, a, ok := m.popOperands(true); ok {
		m.divide(b, a, num.Mod)
	}
}

func (m *Machine) divide(b, a num.Number, op func(b, a num.Number, scale int) (num.Number, error)) {
	r, err := op(b, a, m.scale)
	if err != nil {
		m.pushNumber(b)
		m.pushNumber(a)
		m.warn(domainError(err))
		return
	}
	m.pushNumber(r)
}

func (m *Machine) exp() {
	b, a, ok := m.popOperands(m.restoreOperands)
	if !ok {
		return
	}
	r, exact := num.Pow(b, a, m.scale)
	if !exact {
		m.warn(errExponentFrac)
	}
	m.pushNumber(r)
}

func (m *Machine) sqrt() {
	n, ok := m.popNumber()
	if !ok {
		return
	}
	r, err := num.Sqrt(n, m.scale)
	if err != nil {
		if m.restoreOperands {
			m.pushNumber(n)
		}
		m.warn(domainError(err))
		return
	}
	m.pushNumber(r)
}

func (m *Machine) less()    { m.compare('<', false) }
func (m *Machine) greater() { m.compare('>', false) }
func (m *Machine) equal()   { m.compare('=', false) }

// bang negates a following comparison; anything else is left to be read
// again.
func (m *Machine) bang() {
	cur := m.top()
	switch r := cur.readRune(); r {
	case '<', '>', '=':
		m.compare(r, true)
	default:
		cur.unreadRune()
		m.warn(errBang)
	}
}

// compare reads a register name, then pops a and b, executing the register
// when "b op a" holds.
func (m *Machine) compare(op rune, negate bool) {
	reg := m.readRegister()
	b, a, ok := m.popOperands(m.restoreOperands)
	if !ok {
		return
	}
	var holds bool
	switch op {
	case '<':
		holds = b.Value < a.Value
	case '>':
		holds = b.Value > a.Value
	case '=':
		holds = b.Value == a.Value
	}
	if holds != negate {
		m.call(m.regs.macro(reg))
	}
}

func (m *Machine) print() {
	if val, ok := m.peek(); ok {
		m.write(val.Format(m.obase), true)
	}
}

func (m *Machine) popPrint() {
	if val, ok := m.pop(); ok {
		m.write(val.Format(m.obase), false)
	}
}

func (m *Machine) printChar() {
	if val, ok := m.pop(); ok {
		m.write(charText(val), false)
	}
}

func (m *Machine) printStack() {
	for i := len(m.stack) - 1; i >= 0; i-- {
		m.write(m.stack[i].Format(m.obase), true)
	}
}

func (m *Machine) clear() {
	for i := range m.stack {
		m.stack[i] = Value{}
	}
	m.stack = m.stack[:0]
}

func (m *Machine) drop() { m.pop() }

// dup copies a number by value, so the copy takes the scale of its shortest
// decimal form.
func (m *Machine) dup() {
	val, ok := m.peek()
	if !ok {
		return
	}
	if n, isNum := val.Number(); isNum {
		val = numberValue(num.Of(n.Value))
	}
	m.push(val)
}

// swap restores a when there is no b to swap it with.
func (m *Machine) swap() {
	a, ok := m.pop()
	if !ok {
		return
	}
	b, ok := m.pop()
	if !ok {
		m.push(a)
		return
	}
	m.push(a)
	m.push(b)
}

func (m *Machine) depth() { m.pushNumber(num.Int(len(m.stack))) }

func (m *Machine) store() {
	reg := m.readRegister()
	if val, ok := m.pop(); ok {
		m.regs.store(reg, val)
	}
}

func (m *Machine) stackStore() {
	reg := m.readRegister()
	if val, ok := m.pop(); ok {
		m.regs.pushFrame(reg, val)
	}
}

func (m *Machine) load() {
	m.push(m.regs.load(m.readRegister()))
}

func (m *Machine) stackLoad() {
	reg := m.readRegister()
	val, ok := m.regs.popFrame(reg)
	if !ok {
		m.warn(errRegisterEmpty(reg))
		return
	}
	m.push(val)
}

func (m *Machine) arrayStore() {
	reg := m.readRegister()
	index, ok := m.popIndex()
	if !ok {
		return
	}
	val, ok := m.pop()
	if !ok {
		return
	}
	if err := m.regs.arrayStore(reg, index, val); err != nil {
		m.warn(domainError(err))
	}
}

func (m *Machine) arrayLoad() {
	reg := m.readRegister()
	index, ok := m.popIndex()
	if !ok {
		return
	}
	val, err := m.regs.arrayLoad(reg, index)
	if err != nil {
		m.warn(domainError(err))
		return
	}
	m.push(val)
}

const maxIndex = 1 << 53

// popIndex pops an array index: a number with a non-negative integer value.
func (m *Machine) popIndex() (uint, bool) {
	val, ok := m.pop()
	if !ok {
		return 0, false
	}
	n, isNum := val.Number()
	if !isNum || n.Value < 0 || n.Value > maxIndex || n.Value != math.Trunc(n.Value) {
		m.warn(errBadIndex)
		return 0, false
	}
	return uint(n.Value), true
}

func (m *Machine) setIbase() {
	n, ok := m.popNumber()
	if !ok {
		return
	}
	if n.Value < 2 || n.Value > 16 {
		m.warn(errInputBase)
		return
	}
	m.ibase = int(math.Floor(n.Value))
}

func (m *Machine) setObase() {
	n, ok := m.popNumber()
	if !ok {
		return
	}
	if n.Value < 2 || n.Value > 36 {
		m.warn(errOutputBase)
		return
	}
	m.obase = int(math.Floor(n.Value))
}

func (m *Machine) setScale() {
	n, ok := m.popNumber()
	switch {
	case !ok:
	case n.Value < 0:
		m.warn(errNegativeScale)
	case n.Value > maxScale:
		m.warn(errHugeScale)
	default:
		m.scale = int(math.Floor(n.Value))
	}
}

func (m *Machine) getIbase() { m.pushNumber(num.Int(m.ibase)) }
func (m *Machine) getObase() { m.pushNumber(num.Int(m.obase)) }
func (m *Machine) getScale() { m.pushNumber(num.Int(m.scale)) }

// pushScale replaces the top value with its scale; a text has scale 0.
func (m *Machine) pushScale() {
	if val, ok := m.pop(); ok {
		n, _ := val.Number()
		m.pushNumber(num.Int(n.Scale))
	}
}

func (m *Machine) digits() {
	if n, ok := m.popNumber(); ok {
		m.pushNumber(num.Int(n.Digits()))
	}
}

func (m *Machine) toChar() {
	if val, ok := m.pop(); ok {
		m.push(textValue(charText(val)))
	}
}

// charText renders a number as the character with that code point; a text
// passes through unchanged.
func charText(val Value) string {
	if text, ok := val.Text(); ok {
		return text
	}
	n, _ := val.Number()
	return string(rune(int64(math.Trunc(n.Value))))
}

func (m *Machine) execute() {
	if val, ok := m.pop(); ok {
		m.call(val.String())
	}
}

func (m *Machine) bracket() { m.readString(m.top()) }

func (m *Machine) comment() { m.top().skip() }

func (m *Machine) equalNumbers() {
	if b, a, ok := m.popOperands(true); ok {
		m.pushNumber(boolNumber(b.Value == a.Value))
	}
}

func (m *Machine) not() {
	if n, ok := m.popNumber(); ok {
		m.pushNumber(boolNumber(n.IsZero()))
	}
}

func boolNumber(b bool) num.Number {
	if b {
		return num.Int(1)
	}
	return num.Int(0)
}
