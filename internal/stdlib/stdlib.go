// Package stdlib holds the backforth standard library source.
package stdlib

import _ "embed"

// Source is the prelude evaluated before user code.
//
//go:embed prelude.bf
var Source string
