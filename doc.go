/* Package main: dc, a reverse-polish desk calculator

Every character of program text is a command. Numbers are pushed onto an
operand stack; operators pop their operands off it and push their results.

	2 3 + p     prints 5
	5 2 / p     prints 2, since the global scale is 0
	3 k 5 2 / p prints 2.500

Numbers carry a scale: the count of fractional digits that are significant.
Literals take theirs from the digits typed after the point; arithmetic derives
one from its operands and from the global scale set by k.

Text written in brackets is pushed as a single value. Brackets nest, and a
literal may run over several lines of input:

	[1 + d p]sa  stores a macro in register a
	1 lax        loads and executes it, printing 2

Registers are named by any single character. Each holds a stack of values,
each paired with an array indexed by non-negative integers: s and l replace
and copy the top value, S and L push and pop whole frames, : and ; store and
load array elements of the top frame.

Comparisons read a register name and pop two numbers, executing the register
if the second popped compares true against the first:

	[la p la 1 + d sa 11 <b]sb 1 sa lbx   counts to 10

Problems, such as popping from an empty stack, are reported as messages
prefixed with "dc:", after which evaluation carries on with the next command.

Input comes from files named on the command line, expressions given with -e,
or a terminal prompt. A TOML config file (~/.dcrc.toml by default) may set the
initial radixes, scale and prompt; see Config.
*/
package main
