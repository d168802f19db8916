// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

// Package word defines the backforth value type shared by the parser and
// the shell. Words are immutable: operations on lists and dicts return new
// values.
package word

import (
	"fmt"
	"strings"
)

// Type names a Word variant.
type Type int

const (
	TypeAtom Type = iota
	TypeInt
	TypeHex
	TypeStr
	TypeList
	TypeDict
)

func (t Type) String() string {
	switch t {
	case TypeAtom:
		return "atom"
	case TypeInt:
		return "integer"
	case TypeHex:
		return "hex"
	case TypeStr:
		return "string"
	case TypeList:
		return "list"
	case TypeDict:
		return "dict"
	}
	return "unknown"
}

// Word is the interface all backforth values implement.
type Word interface {
	// String returns the source representation of the word.
	String() string
	// Type returns the variant tag.
	Type() Type
}

// Atom is an identifier, resolved against the dictionary when executed.
type Atom string

func (a Atom) String() string { return string(a) }
func (a Atom) Type() Type     { return TypeAtom }

// Int is a signed 32-bit integer.
type Int int32

func (i Int) String() string { return fmt.Sprintf("%d", int32(i)) }
func (i Int) Type() Type     { return TypeInt }

// Hex is an unsigned 32-bit integer written with a # prefix.
type Hex uint32

func (h Hex) String() string { return fmt.Sprintf("#%x", uint32(h)) }
func (h Hex) Type() Type     { return TypeHex }

// Str is literal text.
type Str string

func (s Str) String() string { return `"` + string(s) + `"` }
func (s Str) Type() Type     { return TypeStr }

// List is a quoted block: deferred code or plain data.
type List []Word

func (l List) String() string {
	if len(l) == 0 {
		return "{}"
	}
	var sb strings.Builder
	sb.WriteString("{")
	for _, w := range l {
		sb.WriteString(" ")
		sb.WriteString(w.String())
	}
	sb.WriteString(" }")
	return sb.String()
}
func (l List) Type() Type { return TypeList }

// Text returns the plain text of a word: a Str without quotes, anything
// else in its source form.
func Text(w Word) string {
	if s, ok := w.(Str); ok {
		return string(s)
	}
	return w.String()
}

// Join returns the source forms of words separated by sep.
func Join(words []Word, sep string) string {
	parts := make([]string, len(words))
	for i, w := range words {
		parts[i] = w.String()
	}
	return strings.Join(parts, sep)
}

// Equal reports structural equality. Dicts compare by containment: a equals
// b when every key of a is in b with an equal value.
func Equal(a, b Word) bool {
	switch a := a.(type) {
	case List:
		bl, ok := b.(List)
		if !ok || len(a) != len(bl) {
			return false
		}
		for i := range a {
			if !Equal(a[i], bl[i]) {
				return false
			}
		}
		return true
	case Dict:
		bd, ok := b.(Dict)
		if !ok {
			return false
		}
		if a.m == nil {
			return true
		}
		for p := a.m.Oldest(); p != nil; p = p.Next() {
			v, ok := bd.Get(p.Key)
			if !ok || !Equal(p.Value, v) {
				return false
			}
		}
		return true
	}
	return a == b
}
