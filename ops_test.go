package main

import "testing"

func TestArithmetic(t *testing.T) {
	dcTestCases{
		dcTest("add").withInput("2 3 + p").expectOutput("5\n").expectStack("5"),
		dcTest("add keeps the larger scale").withInput("2.5 1.5 + p").expectOutput("4.0\n"),
		dcTest("sub").withInput("7 3 - p").expectOutput("4\n"),
		dcTest("sub negative").withInput("3 7.25 - p").expectOutput("-4.25\n"),
		dcTest("mul").withInput("_3 4 * p").expectOutput("-12\n"),
		dcTest("mul scale").withInput("1.5 1.25 * p").expectOutput("1.87\n"),
		dcTest("mul global scale").withInput("4 k 1.5 1.25 * p").expectOutput("1.875\n"),

		dcTest("div truncates to scale").withInput("5 2 / p").expectOutput("2\n"),
		dcTest("div with scale").withInput("3 k 5 2 / p").expectOutput("2.500\n"),
		dcTest("div by zero restores").
			withInput("1 0 /").
			expectOutput("dc: divide by zero\n").
			expectStack("1", "0"),
		dcTest("div underflow restores").
			withInput("1 /").
			expectOutput("dc: stack empty\n").
			expectStack("1"),

		dcTest("mod").withInput("7 3 % p").expectOutput("1\n"),
		dcTest("mod negative").withInput("_7 3 % p").expectOutput("-1\n"),
		dcTest("mod by zero restores").
			withInput("1 0 %").
			expectOutput("dc: remainder by zero\n").
			expectStack("1", "0"),

		dcTest("exp").withInput("2 10 ^ p").expectOutput("1024\n"),
		dcTest("exp negative truncates to scale").withInput("2 _1 ^ p").expectOutput("0\n"),
		dcTest("exp negative with scale").withInput("2 k 2 _1 ^ p").expectOutput("0.50\n"),
		dcTest("exp fraction warns").
			withInput("2 1.5 ^ p").
			expectOutput(lines(
				"dc: Runtime warning: non-zero fractional part in exponent",
				"2",
			)),
		dcTest("exp scale from exponent scale").withInput("1.5 2 ^ p").expectOutput("2\n"),
		dcTest("exp scale from both scales").withInput("1.5 2.0 ^ p").expectOutput("2.2\n"),

		dcTest("sqrt").withInput("2 v p").expectOutput("1\n"),
		dcTest("sqrt with scale").withInput("4 k 2 v p").expectOutput("1.4142\n"),
		dcTest("sqrt keeps operand scale").withInput("2.0000 v p").expectOutput("1.4142\n"),
		dcTest("sqrt negative").
			withInput("_4 v").
			expectOutput("dc: square root of negative number\n").
			expectStack(),
		dcTest("sqrt negative restored").
			withOptions(WithRestoreOperands(true)).
			withInput("_4 v").
			expectOutput("dc: square root of negative number\n").
			expectStack("-4"),

		dcTest("underflow consumes").
			withInput("1 +").
			expectOutput("dc: stack empty\n").
			expectStack(),
		dcTest("underflow restored").
			withOptions(WithRestoreOperands(true)).
			withInput("1 +").
			expectOutput("dc: stack empty\n").
			expectStack("1"),
		dcTest("text operand consumes").
			withInput("[a] 1 *").
			expectOutput("dc: not a number\n").
			expectStack("[a]"),
		dcTest("text operand restored").
			withOptions(WithRestoreOperands(true)).
			withInput("[a] 1 -").
			expectOutput("dc: not a number\n").
			expectStack("[a]", "1"),
		dcTest("text on top").
			withInput("1 [a] +").
			expectOutput("dc: not a number\n").
			expectStack("1", "[a]"),
		dcTest("exp underflow consumes").
			withInput("2 ^").
			expectOutput("dc: stack empty\n").
			expectStack(),

		dcTest("equal numbers").withInput("1 1 G p 1 2 G p").expectOutput("1\n0\n"),
		dcTest("equal numbers restores").
			withInput("1 G").
			expectOutput("dc: stack empty\n").
			expectStack("1"),
		dcTest("not").withInput("0 N p R 5 N p").expectOutput("1\n0\n"),
	}.run(t)
}

func TestStackOps(t *testing.T) {
	dcTestCases{
		dcTest("print stack").withInput("1 2 3 f").expectOutput("3\n2\n1\n").expectStack("1", "2", "3"),
		dcTest("clear").withInput("1 2 c z p").expectOutput("0\n"),
		dcTest("drop").withInput("1 2 R p").expectOutput("1\n"),
		dcTest("drop empty").withInput("R").expectOutput("dc: stack empty\n"),
		dcTest("dup").withInput("1 d + p").expectOutput("2\n"),
		dcTest("dup rescales the copy").withInput("2.50 d f").expectOutput("2.5\n2.50\n"),
		dcTest("dup integral copy").withInput("1.0 d").expectStack("1.0", "1"),
		dcTest("dup significant digits").withInput("1.25 d").expectStack("1.25", "1.25"),
		dcTest("dup text").withInput("[x]d").expectStack("[x]", "[x]"),
		dcTest("dup empty").withInput("d").expectOutput("dc: stack empty\n"),
		dcTest("swap").withInput("1 2 r f").expectOutput("1\n2\n"),
		dcTest("swap restores").withInput("1 r").expectOutput("dc: stack empty\n").expectStack("1"),
		dcTest("depth").withInput("1 2 3 z p").expectOutput("3\n"),
		dcTest("print empty then carry on").
			withInput("p", "1 p").
			expectOutput("dc: stack empty\n1\n"),
	}.run(t)
}

func TestPrinting(t *testing.T) {
	dcTestCases{
		dcTest("pop print").withInput("1 2 n n").expectOutput("21").expectStack(),
		dcTest("pop print text").withInput("[hi]n 1p").expectOutput("hi1\n"),
		dcTest("print char").withInput("65 P").expectOutput("A"),
		dcTest("print char text").withInput("[héllo]P").expectOutput("héllo"),
		dcTest("to char").withInput("65 a").expectStack("[A]"),
		dcTest("to char truncates").withInput("97.9 a").expectStack("[a]"),
		dcTest("to char text").withInput("[xy] a").expectStack("[xy]"),

		dcTest("hex output").withInput("255 16 o p").expectOutput("ff\n"),
		dcTest("binary output").withInput("10 2 o p").expectOutput("1010\n"),
		dcTest("radix fraction").withInput("16 o 1.5 p").expectOutput("1.8\n"),
		dcTest("radix fraction padded").withInput("16 o 255.25 p").expectOutput("ff.40\n"),
		dcTest("radix negative").withInput("16 o _255 p").expectOutput("-ff\n"),
		dcTest("print stack in radix").withInput("8 o 8 9 f").expectOutput("11\n10\n"),
		dcTest("pop print in radix").withInput("16 o 255 n").expectOutput("ff"),

		dcTest("digits of zero is its scale").withInput("0 Z p 0.000 Z p").expectOutput("0\n3\n"),
		dcTest("digits").withInput("1.50 Z p _12.5 Z p").expectOutput("3\n3\n"),
		dcTest("digits of text").withInput("[x] Z").expectOutput("dc: not a number\n").expectStack("[x]"),
		dcTest("push scale").withInput("1.234 X p").expectOutput("3\n"),
		dcTest("push scale of text").withInput("[abc] X p").expectOutput("0\n"),
	}.run(t)
}

func TestSettings(t *testing.T) {
	dcTestCases{
		dcTest("defaults").withInput("I p O p K p").expectOutput("10\n10\n0\n"),
		dcTest("input base").withInput("16 i FF p").expectOutput("255\n").expectSettings(16, 10, 0),
		dcTest("input base fraction").withInput("16 i A.8 p").expectOutput("10.5\n"),
		dcTest("digits above the input base").withInput("2 i 12 p").expectOutput("4\n"),
		dcTest("input base too small").
			withInput("1 i").
			expectOutput("dc: input base must be a number between 2 and 16 (inclusive)\n").
			expectSettings(10, 10, 0),
		dcTest("input base too large").
			withInput("17 i").
			expectOutput("dc: input base must be a number between 2 and 16 (inclusive)\n"),
		dcTest("output base range").
			withInput("37 o 1 o").
			expectOutput(lines(
				"dc: output base must be an integer at least 2 and no greater than 36",
				"dc: output base must be an integer at least 2 and no greater than 36",
			)),
		dcTest("output base floors").withInput("2.9 o").expectSettings(10, 2, 0),
		dcTest("negative scale").
			withInput("_1 k").
			expectOutput("dc: scale must be a nonnegative number\n"),
		dcTest("huge scale").
			withInput("2097152 k").
			expectOutput("dc: scale must be no greater than 1048576\n"),
		dcTest("scale floors").withInput("2.7 k K p").expectOutput("2\n"),
		dcTest("set from text").
			withInput("[x] k").
			expectOutput("dc: not a number\n").
			expectStack("[x]"),
		dcTest("options").
			withOptions(WithInputBase(8), WithOutputBase(2), WithScale(3)).
			withInput("10 p K p").
			expectOutput("1000\n11\n"),
	}.run(t)
}

func TestNumberScanning(t *testing.T) {
	dcTestCases{
		dcTest("negative").withInput("_1.5 p").expectOutput("-1.5\n"),
		dcTest("lone marks are zero").withInput("_ . _.").expectStack("0", "0", "0"),
		dcTest("second point starts a number").withInput("1.2.3 f").expectOutput("0.3\n1.2\n"),
		dcTest("leading point").withInput(".25 p").expectOutput("0.25\n"),
		dcTest("trailing zeros kept").withInput("1.500 p").expectOutput("1.500\n"),
		dcTest("adjacent numbers").withInput("1_2").expectStack("1", "-2"),
		dcTest("number at end of chunk").withInput("12", "3").expectStack("12", "3"),
		dcTest("controls are nops").withInput("1\t2\r\n3\f f").expectOutput("3\n2\n1\n"),
		dcTest("comment").withInput("1 # 2 3", "4").expectStack("1", "4"),
		dcTest("unimplemented").withInput("y").expectOutput("dc: 'y' (0171) is unimplemented\n"),
		dcTest("unimplemented unicode").withInput("é").expectOutput("dc: 'é' (0351) is unimplemented\n"),
		dcTest("unicode space").withInput("1\u00a02").expectStack("1", "2"),
		dcTest("bang alone").
			withInput("1 !p").
			expectOutput("dc: ! command is not implemented\n1\n"),
	}.run(t)
}
