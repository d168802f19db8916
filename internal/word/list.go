package word

import "slices"

// Push returns a copy of l with w appended at the back.
func (l List) Push(w Word) List {
	return append(slices.Clip(l), w)
}

// Unshift returns a copy of l with w inserted at the front.
func (l List) Unshift(w Word) List {
	out := make(List, 0, len(l)+1)
	out = append(out, w)
	return append(out, l...)
}

// Pop removes the last element. ok is false for an empty list.
func (l List) Pop() (rest List, w Word, ok bool) {
	if len(l) == 0 {
		return l, nil, false
	}
	return slices.Clip(l[:len(l)-1]), l[len(l)-1], true
}

// Shift removes the first element. ok is false for an empty list.
func (l List) Shift() (rest List, w Word, ok bool) {
	if len(l) == 0 {
		return l, nil, false
	}
	return slices.Clip(l[1:]), l[0], true
}

// Append returns the concatenation of l and other.
func (l List) Append(other List) List {
	out := make(List, 0, len(l)+len(other))
	out = append(out, l...)
	return append(out, other...)
}

// Substitute replaces every atom named in bindings, descending into nested
// lists. Substituted values are inserted as-is and not walked again.
func Substitute(w Word, bindings map[string]Word) Word {
	switch w := w.(type) {
	case Atom:
		if v, ok := bindings[string(w)]; ok {
			return v
		}
	case List:
		out := make(List, len(w))
		for i, e := range w {
			out[i] = Substitute(e, bindings)
		}
		return out
	}
	return w
}
