package main

import (
	"errors"
	"fmt"
)

// ErrorKind classifies the advisories reported by operators. Each kind is
// itself an error, so that errors.Is(err, DomainError) works on any advisory.
type ErrorKind uint8

const (
	StackUnderflow ErrorKind = iota + 1
	TypeMismatch
	DomainError
	UnimplementedOperator
)

var errorKindNames = [...]string{
	StackUnderflow:        "stack underflow",
	TypeMismatch:          "type mismatch",
	DomainError:           "domain error",
	UnimplementedOperator: "unimplemented operator",
}

func (kind ErrorKind) String() string {
	if int(kind) < len(errorKindNames) && errorKindNames[kind] != "" {
		return errorKindNames[kind]
	}
	return fmt.Sprintf("ErrorKind(%d)", uint8(kind))
}

func (kind ErrorKind) Error() string { return kind.String() }

// machineError is an advisory: an operator failure that is reported through
// the display and never aborts evaluation.
type machineError struct {
	kind  ErrorKind
	mess  string
	cause error
}

func (err machineError) Error() string { return err.mess }
func (err machineError) Unwrap() error { return err.cause }

func (err machineError) Is(target error) bool {
	kind, ok := target.(ErrorKind)
	return ok && kind == err.kind
}

func advisoryf(kind ErrorKind, mess string, args ...interface{}) machineError {
	if len(args) > 0 {
		mess = fmt.Sprintf(mess, args...)
	}
	return machineError{kind: kind, mess: mess}
}

// domainError wraps a numeric failure, keeping its message.
func domainError(err error) machineError {
	return machineError{kind: DomainError, mess: err.Error(), cause: err}
}

// errorKindOf returns the kind of an advisory, or 0 for any other error.
func errorKindOf(err error) ErrorKind {
	var me machineError
	if errors.As(err, &me) {
		return me.kind
	}
	return 0
}

var (
	errStackEmpty    = advisoryf(StackUnderflow, "stack empty")
	errNotNumber     = advisoryf(TypeMismatch, "not a number")
	errBadIndex      = advisoryf(DomainError, "array index must be a nonnegative integer")
	errInputBase     = advisoryf(DomainError, "input base must be a number between 2 and 16 (inclusive)")
	errOutputBase    = advisoryf(DomainError, "output base must be an integer at least 2 and no greater than 36")
	errNegativeScale = advisoryf(DomainError, "scale must be a nonnegative number")
	errHugeScale     = advisoryf(DomainError, "scale must be no greater than %d", maxScale)
	errExponentFrac  = advisoryf(DomainError, "Runtime warning: non-zero fractional part in exponent")
	errBang          = advisoryf(UnimplementedOperator, "! command is not implemented")
)

func errUnimplemented(r rune) machineError {
	return advisoryf(UnimplementedOperator, "'%c' (0%o) is unimplemented", r, r)
}

func errRegisterEmpty(reg rune) machineError {
	if reg < ' ' {
		return advisoryf(StackUnderflow, "stack register %03o is empty", reg)
	}
	return advisoryf(StackUnderflow, "stack register '%c' (0%o) is empty", reg, reg)
}

// haltError carries a fatal error, such as a display write failure or
// context cancellation, out of the evaluation loop.
type haltError struct{ error }

func (err haltError) Error() string {
	if err.error != nil {
		return fmt.Sprintf("halted: %v", err.error)
	}
	return "halted"
}
func (err haltError) Unwrap() error { return err.error }

// panicError carries any other panic raised during evaluation, along with
// the stack where it happened.
type panicError struct {
	e     interface{}
	stack []byte
}

func (pe panicError) Error() string { return fmt.Sprint(pe) }

func (pe panicError) Format(f fmt.State, c rune) {
	fmt.Fprintf(f, "evaluation paniced: %v", pe.e)
	if c == 'v' && f.Flag('+') {
		fmt.Fprintf(f, "\nPanic stack: %s", pe.stack)
	}
}

func (pe panicError) Unwrap() error {
	err, _ := pe.e.(error)
	return err
}
