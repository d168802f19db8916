// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

package shell

import (
	"errors"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"nickandperla.net/backforth/internal/word"
)

// Binding is a dictionary entry: a Builtin or an Interpreted word.
type Binding interface {
	Spec() TypeSpec
}

// Interpreted is a user definition. A List value is spliced onto the code
// stack when called; any other value is pushed back as code.
type Interpreted struct {
	Type  TypeSpec
	Value word.Word
}

func (i Interpreted) Spec() TypeSpec { return i.Type }

// Dictionary maps names to bindings, remembering definition order.
type Dictionary struct {
	bindings *orderedmap.OrderedMap[string, Binding]
}

// NewDictionary creates a dictionary holding every builtin.
func NewDictionary() *Dictionary {
	d := &Dictionary{bindings: orderedmap.New[string, Binding]()}
	for b := Builtin(0); b < numBuiltins; b++ {
		d.Set(b.String(), b)
	}
	return d
}

// Get retrieves a binding by name.
func (d *Dictionary) Get(name string) (Binding, bool) {
	return d.bindings.Get(name)
}

// Set binds name. Rebinding keeps the original position.
func (d *Dictionary) Set(name string, b Binding) error {
	if name == "" {
		return errors.New("empty name")
	}
	d.bindings.Set(name, b)
	return nil
}

// Names returns bound names in definition order.
func (d *Dictionary) Names() []string {
	names := make([]string, 0, d.bindings.Len())
	for p := d.bindings.Oldest(); p != nil; p = p.Next() {
		names = append(names, p.Key)
	}
	return names
}

// Len returns the number of bindings.
func (d *Dictionary) Len() int {
	return d.bindings.Len()
}

// Clone creates a shallow copy of the dictionary. Bindings are immutable and
// shared with the copy.
func (d *Dictionary) Clone() *Dictionary {
	out := orderedmap.New[string, Binding]()
	for p := d.bindings.Oldest(); p != nil; p = p.Next() {
		out.Set(p.Key, p.Value)
	}
	return &Dictionary{bindings: out}
}
