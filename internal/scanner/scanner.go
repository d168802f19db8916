// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

// Package scanner provides a streaming lexer for backforth source.
package scanner

import (
	"bufio"
	"errors"
	"io"
	"strings"
	"unicode"

	"nickandperla.net/backforth/internal/token"
)

// ErrMissingEndQuote is returned when input ends inside a string literal.
var ErrMissingEndQuote = errors.New(`missing "`)

// Scanner tokenizes backforth input rune-by-rune.
type Scanner struct {
	reader *bufio.Reader
	buf    strings.Builder
	line   int // Current line number (1-based)
	last   rune
}

// Item represents a scanned token with its value.
type Item struct {
	Token token.Token
	Value string
	Line  int // Line number where this token started
}

// New creates a new Scanner from an io.Reader.
func New(r io.Reader) *Scanner {
	return &Scanner{
		reader: bufio.NewReader(r),
		line:   1,
	}
}

// NewFromString creates a new Scanner from a string.
func NewFromString(s string) *Scanner {
	return New(strings.NewReader(s))
}

// Line returns the current line number (1-based).
func (s *Scanner) Line() int {
	return s.line
}

// Next returns the next token from the input. A comment is skipped together
// with the newline that ends it, so the words around it stay on one line.
func (s *Scanner) Next() (*Item, error) {
	for {
		line := s.line
		r, err := s.read()
		if err == io.EOF {
			return &Item{Token: token.EOF, Line: s.line}, nil
		}
		if err != nil {
			return nil, err
		}

		switch {
		case r == token.RuneOpen:
			return &Item{Token: token.OPEN, Value: "{", Line: line}, nil
		case r == token.RuneClose:
			return &Item{Token: token.CLOSE, Value: "}", Line: line}, nil
		case r == token.RuneSeparator, r == token.RuneNewline:
			return &Item{Token: token.SEPARATOR, Value: string(r), Line: line}, nil
		case r == token.RuneQuote:
			text, err := s.scanString()
			if err != nil {
				return nil, err
			}
			return &Item{Token: token.STRING, Value: text, Line: line}, nil
		case unicode.IsSpace(r):
			continue
		}

		word, err := s.scanWord(r)
		if err != nil {
			return nil, err
		}
		if token.IsComment(word) {
			if err := s.skipLine(); err != nil {
				return nil, err
			}
			continue
		}
		if word[0] == token.RuneHex {
			return &Item{Token: token.HEX, Value: word[1:], Line: line}, nil
		}
		return &Item{Token: token.WORD, Value: word, Line: line}, nil
	}
}

// scanString reads verbatim up to the closing quote. There are no escapes.
func (s *Scanner) scanString() (string, error) {
	s.buf.Reset()
	for {
		r, err := s.read()
		if err == io.EOF {
			return "", ErrMissingEndQuote
		}
		if err != nil {
			return "", err
		}
		if r == token.RuneQuote {
			return s.buf.String(), nil
		}
		s.buf.WriteRune(r)
	}
}

func (s *Scanner) scanWord(first rune) (string, error) {
	s.buf.Reset()
	s.buf.WriteRune(first)
	prev := first
	for {
		r, err := s.read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}
		if token.Break(prev, r) {
			s.unread()
			break
		}
		s.buf.WriteRune(r)
		prev = r
	}
	return s.buf.String(), nil
}

// skipLine consumes input up to and including the next newline.
func (s *Scanner) skipLine() error {
	for {
		r, err := s.read()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if r == token.RuneNewline {
			return nil
		}
	}
}

func (s *Scanner) read() (rune, error) {
	r, _, err := s.reader.ReadRune()
	if err != nil {
		return 0, err
	}
	if r == '\n' {
		s.line++
	}
	s.last = r
	return r, nil
}

func (s *Scanner) unread() {
	s.reader.UnreadRune()
	if s.last == '\n' {
		s.line--
	}
}
