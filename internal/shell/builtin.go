package shell

import (
	"fmt"
	"math"
	"slices"
	"strings"

	"nickandperla.net/backforth/internal/word"
)

// Builtin identifies a primitive operation.
type Builtin uint8

const (
	Bye Builtin = iota
	Assign
	Eval
	Expand
	If
	Try
	Popeh
	Quote
	Explode
	Capture
	Debug
	Inspect
	Len
	Append
	Strcat
	Push
	Pop
	Shift
	Unshift
	Parse
	Echo
	Prompt
	Command
	Load
	Flatten
	Pick
	Roll
	Drop
	Clear
	Lines
	ToHex
	ToInt
	Add
	Sub
	Mul
	Div
	Neg
	Eq
	Lt
	Gt
	Infix
	MakeDict
	Get
	Put
	Keys
	Persist
	Recall

	numBuiltins
)

// OpenInfix marks the start of an infix expression closed by the )) builtin.
const OpenInfix = word.Atom("((")

var builtins = [numBuiltins]struct {
	name string
	spec TypeSpec
}{
	Bye:      {"bye", inexact(0)},
	Assign:   {"=", inexact(1)},
	Eval:     {"eval", inexact(1)},
	Expand:   {"expand", inexact(2)},
	If:       {"if", inexact(3)},
	Try:      {"try", inexact(2)},
	Popeh:    {"popeh", exact(0, 0)},
	Quote:    {"quote", inexact(0)},
	Explode:  {"explode", inexact(1)},
	Capture:  {"capture", inexact(0)},
	Debug:    {"debug", exact(0, 0)},
	Inspect:  {"inspect", exact(1, 0)},
	Len:      {"len", exact(1, 1)},
	Append:   {"append", exact(2, 1)},
	Strcat:   {"strcat", exact(2, 1)},
	Push:     {"push", exact(2, 1)},
	Pop:      {"pop", exact(1, 2)},
	Shift:    {"shift", exact(1, 2)},
	Unshift:  {"unshift", exact(2, 1)},
	Parse:    {"parse", exact(1, 1)},
	Echo:     {"echo", exact(1, 0)},
	Prompt:   {"prompt", exact(1, 1)},
	Command:  {"command", exact(2, 1)},
	Load:     {"load", exact(1, 1)},
	Flatten:  {"flatten", exact(2, 1)},
	Pick:     {"pick", exact(2, 2)},
	Roll:     {"roll", exact(2, 1)},
	Drop:     {"drop", exact(1, 0)},
	Clear:    {"clear", inexact(0)},
	Lines:    {"lines", exact(1, 1)},
	ToHex:    {"hex", exact(1, 1)},
	ToInt:    {"int", exact(1, 1)},
	Add:      {"+", exact(2, 1)},
	Sub:      {"-", exact(2, 1)},
	Mul:      {"*", exact(2, 1)},
	Div:      {"/", exact(2, 1)},
	Neg:      {"~", exact(1, 1)},
	Eq:       {"==", exact(2, 1)},
	Lt:       {"<", exact(2, 1)},
	Gt:       {">", exact(2, 1)},
	Infix:    {"))", inexact(0)},
	MakeDict: {"dict", exact(1, 1)},
	Get:      {"get", exact(2, 1)},
	Put:      {"put", exact(3, 1)},
	Keys:     {"keys", exact(1, 1)},
	Persist:  {"persist", exact(1, 0)},
	Recall:   {"recall", inexact(1)},
}

func (b Builtin) String() string { return builtins[b].name }

// Spec returns the declared stack effect.
func (b Builtin) Spec() TypeSpec { return builtins[b].spec }

func (s *Shell) dispatch(b Builtin) error {
	switch b {
	case Bye:
		s.code = nil
		s.restore = nil
		return nil
	case Assign:
		return s.assign()
	case Eval:
		return s.eval()
	case Expand:
		return s.expand()
	case If:
		return s.ifElse()
	case Try:
		return s.try()
	case Popeh:
		if n := len(s.restore); n > 0 {
			s.restore = s.restore[:n-1]
		}
		return nil
	case Quote:
		if len(s.code) == 0 {
			return ErrMacroFailed
		}
		s.push(s.popCode())
		return nil
	case Explode:
		return s.explode()
	case Capture:
		s.push(word.List(s.Stack()))
		return nil
	case Debug:
		return s.debug()
	case Inspect:
		return s.inspect()
	case Len, Append, Push, Pop, Shift, Unshift, Flatten:
		return s.listOp(b)
	case Strcat, Lines, Parse:
		return s.textOp(b)
	case Echo, Prompt, Command, Load:
		return s.ioOp(b)
	case Pick, Roll:
		return s.stackIndex(b)
	case Drop:
		s.drop(1)
		return nil
	case Clear:
		s.data = nil
		return nil
	case ToHex:
		return s.unary(func(w word.Word) (word.Word, error) {
			h, err := intoHex(w)
			return word.Hex(h), err
		})
	case ToInt:
		return s.unary(func(w word.Word) (word.Word, error) {
			n, err := intoInt(w)
			return word.Int(n), err
		})
	case Add, Sub, Mul, Div, Lt, Gt:
		return s.arith(b)
	case Neg:
		return s.unary(func(w word.Word) (word.Word, error) {
			n, err := asInt(w)
			return word.Int(-n), err
		})
	case Eq:
		lhs, rhs := s.data[len(s.data)-1], s.data[len(s.data)-2]
		s.drop(2)
		s.push(boolWord(word.Equal(lhs, rhs)))
		return nil
	case Infix:
		return s.infix()
	case MakeDict, Get, Put, Keys:
		return s.dictOp(b)
	case Persist, Recall:
		return s.storeOp(b)
	}
	return fmt.Errorf("unknown builtin %d", b)
}

func (s *Shell) assign() error {
	if len(s.code) == 0 {
		return ErrMacroFailed
	}
	next := s.code[len(s.code)-1]
	name, ok := next.(word.Atom)
	if !ok {
		return &WrongTypeError{Value: next, Expected: word.TypeAtom}
	}
	if name == "" {
		return ErrMacroFailed
	}
	value, err := s.peek(0)
	if err != nil {
		return err
	}

	spec := literal
	if l, ok := value.(word.List); ok {
		spec = s.dict.Infer(l)
	}
	if s.strict {
		if old, ok := s.dict.Get(string(name)); ok {
			if prev, ok := old.(Interpreted); ok && prev.Type.Exact && spec.Exact && prev.Type != spec {
				return &IllegalStackEffectError{Input: spec.Input, Output: spec.Output}
			}
		}
	}

	s.popCode()
	s.drop(1)
	if err := s.dict.Set(string(name), Interpreted{Type: spec, Value: value}); err != nil {
		return err
	}
	s.logger.Debug("bound", "name", string(name), "spec", spec.String())
	return nil
}

func (s *Shell) eval() error {
	top, err := s.peek(0)
	if err != nil {
		return err
	}
	if l, ok := top.(word.List); ok {
		s.drop(1)
		s.splice(l)
	}
	return nil
}

func (s *Shell) expand() error {
	names, err := s.peekList(0)
	if err != nil {
		return err
	}
	bindings := make(map[string]word.Word, len(names))
	for i, n := range names {
		a, ok := n.(word.Atom)
		if !ok {
			return &WrongTypeError{Value: n, Expected: word.TypeAtom}
		}
		v, err := s.peek(1 + i)
		if err != nil {
			return err
		}
		bindings[string(a)] = v
	}
	body, err := s.peek(1 + len(names))
	if err != nil {
		return err
	}
	s.drop(len(names) + 2)
	s.push(word.Substitute(body, bindings))
	return nil
}

func (s *Shell) ifElse() error {
	test, err := s.peek(0)
	if err != nil {
		return err
	}
	cond, err := asBool(test)
	if err != nil {
		return err
	}
	consequent, err := s.peekList(1)
	if err != nil {
		return err
	}
	alternative, err := s.peekList(2)
	if err != nil {
		return err
	}
	s.drop(3)
	if cond {
		s.splice(consequent)
	} else {
		s.splice(alternative)
	}
	return nil
}

func (s *Shell) try() error {
	body, err := s.peekList(0)
	if err != nil {
		return err
	}
	catch, err := s.peekList(1)
	if err != nil {
		return err
	}
	s.drop(2)

	s.restore = append(s.restore, env{
		dict: s.dict.Clone(),
		data: slices.Clone(s.data),
		code: append(slices.Clone(s.code), catch...),
	})
	s.code = append(s.code, word.Atom(Popeh.String()))
	s.splice(body)
	return nil
}

func (s *Shell) explode() error {
	l, err := s.peekList(0)
	if err != nil {
		return err
	}
	s.drop(1)
	for i := len(l) - 1; i >= 0; i-- {
		s.push(l[i])
	}
	return nil
}

func (s *Shell) debug() error {
	var sb strings.Builder
	for i := len(s.code) - 1; i >= 0; i-- {
		for _, line := range word.Pretty(s.code[i]) {
			sb.WriteString(line)
			sb.WriteString("\n")
		}
	}
	return s.write("debug", sb.String())
}

func (s *Shell) inspect() error {
	top, err := s.peek(0)
	if err != nil {
		return err
	}
	name, ok := top.(word.Atom)
	if !ok {
		return &WrongTypeError{Value: top, Expected: word.TypeAtom}
	}
	b, ok := s.dict.Get(string(name))
	if !ok {
		return &CantUnderstandError{Name: string(name)}
	}

	text := fmt.Sprintf("%s %v = <BUILTIN>\n", name, b.Spec())
	if def, ok := b.(Interpreted); ok {
		lines := word.Pretty(def.Value)
		lines[0] = fmt.Sprintf("%s %v = %s", name, def.Type, lines[0])
		text = strings.Join(lines, "\n") + "\n"
	}
	if err := s.write("inspect", text); err != nil {
		return err
	}
	s.drop(1)
	return nil
}

func (s *Shell) infix() error {
	n := len(s.code)
	if n < 4 || s.code[n-4] != OpenInfix {
		return ErrMacroFailed
	}
	rhs, op, lhs := s.code[n-1], s.code[n-2], s.code[n-3]
	s.code = append(s.code[:n-4], op, lhs, rhs)
	return nil
}

func (s *Shell) stackIndex(b Builtin) error {
	top, err := s.peek(0)
	if err != nil {
		return err
	}
	i, err := intoHex(top)
	if err != nil {
		return err
	}
	if int64(i) >= int64(len(s.data)-1) {
		return ErrStackUnderflow
	}
	s.drop(1)
	at := len(s.data) - 1 - int(i)
	w := s.data[at]
	if b == Roll {
		s.data = slices.Delete(s.data, at, at+1)
	}
	s.push(w)
	return nil
}

func (s *Shell) unary(fn func(word.Word) (word.Word, error)) error {
	top, err := s.peek(0)
	if err != nil {
		return err
	}
	result, err := fn(top)
	if err != nil {
		return err
	}
	s.drop(1)
	s.push(result)
	return nil
}

func (s *Shell) arith(b Builtin) error {
	lhs, err := s.peekInt(0)
	if err != nil {
		return err
	}
	rhs, err := s.peekInt(1)
	if err != nil {
		return err
	}

	var result word.Word
	switch b {
	case Add:
		result = word.Int(lhs + rhs)
	case Sub:
		result = word.Int(lhs - rhs)
	case Mul:
		result = word.Int(lhs * rhs)
	case Div:
		// The one quotient that does not fit in 32 bits fails like a zero divisor.
		if rhs == 0 || (lhs == math.MinInt32 && rhs == -1) {
			return ErrDivideByZero
		}
		result = word.Int(lhs / rhs)
	case Lt:
		result = boolWord(lhs < rhs)
	case Gt:
		result = boolWord(lhs > rhs)
	}
	s.drop(2)
	s.push(result)
	return nil
}

func boolWord(b bool) word.Word {
	if b {
		return word.Int(1)
	}
	return word.Int(0)
}
