package word

import (
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Dict is a record value with insertion-ordered keys. The zero value is an
// empty dict. Dicts are never mutated in place; Put returns a new one.
type Dict struct {
	m *orderedmap.OrderedMap[string, Word]
}

func (d Dict) Type() Type { return TypeDict }

func (d Dict) String() string {
	if d.Len() == 0 {
		return "dict {}"
	}
	parts := make([]string, 0, d.Len())
	for p := d.m.Oldest(); p != nil; p = p.Next() {
		parts = append(parts, p.Key+" = "+p.Value.String())
	}
	return "dict { " + strings.Join(parts, " ; ") + " }"
}

// Len returns the number of keys.
func (d Dict) Len() int {
	if d.m == nil {
		return 0
	}
	return d.m.Len()
}

// Keys returns the keys in insertion order.
func (d Dict) Keys() []string {
	keys := make([]string, 0, d.Len())
	if d.m == nil {
		return keys
	}
	for p := d.m.Oldest(); p != nil; p = p.Next() {
		keys = append(keys, p.Key)
	}
	return keys
}

// Get returns the value stored under key.
func (d Dict) Get(key string) (Word, bool) {
	if d.m == nil {
		return nil, false
	}
	return d.m.Get(key)
}

// Put returns a copy of d with key set to v. An existing key keeps its
// position.
func (d Dict) Put(key string, v Word) Dict {
	out := orderedmap.New[string, Word]()
	if d.m != nil {
		for p := d.m.Oldest(); p != nil; p = p.Next() {
			out.Set(p.Key, p.Value)
		}
	}
	out.Set(key, v)
	return Dict{m: out}
}
