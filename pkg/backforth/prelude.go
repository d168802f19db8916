// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

package backforth

import "nickandperla.net/backforth/internal/stdlib"

// DefaultPrelude contains the standard library words that are
// automatically loaded unless --no-stdlib is specified.
var DefaultPrelude = stdlib.Source

// StdlibKey is the store entry that, when present, replaces the prelude.
const StdlibKey = "__stdlib__"
