package shell

import (
	"errors"
	"fmt"

	"nickandperla.net/backforth/internal/word"
)

// Evaluation errors without parameters.
var (
	ErrStackUnderflow = errors.New("stack underflow")
	ErrDivideByZero   = errors.New("divided by zero")
	ErrEmptyList      = errors.New("empty list")
	ErrMacroFailed    = errors.New("bad arguments for macro")
)

// Error is an evaluation failure raised while executing the word Name.
// Its text is the diagnostic string pushed when a try block recovers.
type Error struct {
	Name string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s error: %v", e.Name, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// CantUnderstandError is returned for an atom with no binding.
type CantUnderstandError struct {
	Name string
}

func (e *CantUnderstandError) Error() string {
	return fmt.Sprintf("can't understand %s", e.Name)
}

// CantCoerceError is returned when a value cannot be converted.
type CantCoerceError struct {
	Value  word.Word
	Target word.Type
}

func (e *CantCoerceError) Error() string {
	return fmt.Sprintf("cannot convert %v to %v", e.Value, e.Target)
}

// WrongTypeError is returned when an operand has the wrong variant.
type WrongTypeError struct {
	Value    word.Word
	Expected word.Type
}

func (e *WrongTypeError) Error() string {
	return fmt.Sprintf("type of %v is not %v", e.Value, e.Expected)
}

// BadParseError wraps a parser failure raised by the parse builtin.
type BadParseError struct {
	Err error
}

func (e *BadParseError) Error() string { return e.Err.Error() }
func (e *BadParseError) Unwrap() error { return e.Err }

// MissingKeyError is returned by get for an absent dict key.
type MissingKeyError struct {
	Key string
}

func (e *MissingKeyError) Error() string {
	return fmt.Sprintf("no key %s", e.Key)
}

// IllegalStackEffectError is returned in strict mode when a word is rebound
// with a different exact signature.
type IllegalStackEffectError struct {
	Input, Output int
}

func (e *IllegalStackEffectError) Error() string {
	return fmt.Sprintf("illegal stack effect (%d -- %d)", e.Input, e.Output)
}

// IOError wraps a failure of an external collaborator: console, file,
// process or store. It is never recovered by try.
// TODO: decide whether I/O failures should become catchable like any other
// evaluation error; for now they halt the run.
type IOError struct {
	Op  string
	Err error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

func isFatal(err error) bool {
	var ioErr *IOError
	return errors.As(err, &ioErr)
}
