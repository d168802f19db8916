// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

// Package parser turns backforth source into words.
//
// Source is grouped into blocks ({...}) and lines (separated by ; or a
// newline). When a block closes, its lines are flattened last line first
// while words inside a line keep their order. The shell executes from the
// tail, so statements run top to bottom and the words of a statement run
// right to left.
package parser

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"nickandperla.net/backforth/internal/scanner"
	"nickandperla.net/backforth/internal/token"
	"nickandperla.net/backforth/internal/word"
)

// Parse errors.
var (
	ErrMissingOpenBrace  = errors.New("missing {")
	ErrMissingCloseBrace = errors.New("missing }")
	ErrMissingEndQuote   = scanner.ErrMissingEndQuote
	ErrBadHexLiteral     = errors.New("invalid hex format")
)

// Error is a parse failure with the line it was detected on.
type Error struct {
	Line int
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%v at line %d", e.Err, e.Line)
}

func (e *Error) Unwrap() error { return e.Err }

// Parse parses a complete program.
func Parse(src string) ([]word.Word, error) {
	return parse(scanner.NewFromString(src))
}

// ParseReader parses a complete program from r.
func ParseReader(r io.Reader) ([]word.Word, error) {
	return parse(scanner.New(r))
}

func parse(s *scanner.Scanner) ([]word.Word, error) {
	p := &blocks{}
	p.open()

	for {
		item, err := s.Next()
		if err != nil {
			return nil, &Error{Line: s.Line(), Err: err}
		}

		switch item.Token {
		case token.EOF:
			program := p.flatten()
			if len(*p) != 0 {
				return nil, &Error{Line: item.Line, Err: ErrMissingCloseBrace}
			}
			return program, nil
		case token.OPEN:
			p.open()
		case token.CLOSE:
			list := p.flatten()
			err = p.emit(list)
		case token.SEPARATOR:
			err = p.newline()
		case token.STRING:
			err = p.emit(word.Str(item.Value))
		case token.HEX:
			var n uint64
			n, err = strconv.ParseUint(item.Value, 16, 32)
			if err != nil {
				err = ErrBadHexLiteral
				break
			}
			err = p.emit(word.Hex(n))
		case token.WORD:
			err = p.emit(wordFor(item.Value))
		}
		if err != nil {
			return nil, &Error{Line: item.Line, Err: err}
		}
	}
}

func wordFor(text string) word.Word {
	if n, err := strconv.ParseInt(text, 10, 32); err == nil {
		return word.Int(n)
	}
	return word.Atom(text)
}

// blocks is the stack of open blocks. Each block is a stack of lines.
type blocks [][]word.List

func (b *blocks) open() {
	*b = append(*b, []word.List{{}})
}

// flatten pops the innermost block and joins its lines, last line first.
func (b *blocks) flatten() word.List {
	n := len(*b)
	if n == 0 {
		return word.List{}
	}
	lines := (*b)[n-1]
	*b = (*b)[:n-1]

	out := word.List{}
	for i := len(lines) - 1; i >= 0; i-- {
		out = append(out, lines[i]...)
	}
	return out
}

func (b *blocks) emit(w word.Word) error {
	n := len(*b)
	if n == 0 {
		return ErrMissingOpenBrace
	}
	lines := (*b)[n-1]
	lines[len(lines)-1] = append(lines[len(lines)-1], w)
	return nil
}

func (b *blocks) newline() error {
	n := len(*b)
	if n == 0 {
		return ErrMissingOpenBrace
	}
	(*b)[n-1] = append((*b)[n-1], word.List{})
	return nil
}
