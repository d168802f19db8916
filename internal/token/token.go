// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

// Package token defines backforth token types and delimiter constants.
package token

import "unicode"

// Token represents a backforth token type.
type Token int

const (
	EOF Token = iota
	WORD

	OPEN      // { - Open a block
	CLOSE     // } - Close the innermost block
	SEPARATOR // ; or newline - End the current line
	STRING    // "..." - Verbatim string literal
	HEX       // #ff - Hexadecimal literal
)

// Delimiter runes.
const (
	RuneOpen      = '{'
	RuneClose     = '}'
	RuneSeparator = ';'
	RuneNewline   = '\n'
	RuneQuote     = '"'
	RuneHex       = '#'
	RuneAssign    = '='
)

// IsDelimiter returns true if the rune always ends a word.
func IsDelimiter(r rune) bool {
	switch r {
	case RuneOpen, RuneClose, RuneSeparator:
		return true
	}
	return false
}

// Break reports whether a word must end between prev and next.
// Whitespace and delimiters always break. A lone = is split off from its
// neighbours, so "k=" scans as "k" "=", while "==" stays joined.
func Break(prev, next rune) bool {
	if unicode.IsSpace(next) || IsDelimiter(next) {
		return true
	}
	switch {
	case prev == RuneAssign && next == RuneAssign:
		return false
	case prev == RuneAssign, next == RuneAssign:
		return true
	}
	return false
}

// IsComment reports whether a scanned word starts a line comment.
func IsComment(word string) bool {
	return word == "#" || (len(word) >= 2 && word[0] == RuneHex && word[1] == '!')
}

// String returns the string representation of a token.
func (t Token) String() string {
	switch t {
	case EOF:
		return "EOF"
	case WORD:
		return "WORD"
	case OPEN:
		return "OPEN"
	case CLOSE:
		return "CLOSE"
	case SEPARATOR:
		return "SEPARATOR"
	case STRING:
		return "STRING"
	case HEX:
		return "HEX"
	}
	return "UNKNOWN"
}
