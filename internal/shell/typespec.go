package shell

import (
	"fmt"

	"nickandperla.net/backforth/internal/word"
)

// TypeSpec is a stack effect: how many values a word consumes and
// produces. An inexact spec gives a lower bound on Input only.
type TypeSpec struct {
	Input  int
	Output int
	Exact  bool
}

func exact(input, output int) TypeSpec {
	return TypeSpec{Input: input, Output: output, Exact: true}
}

func inexact(input int) TypeSpec {
	return TypeSpec{Input: input}
}

var literal = exact(0, 1)

func (t TypeSpec) String() string {
	if !t.Exact {
		return fmt.Sprintf("(%d -- ?)", t.Input)
	}
	return fmt.Sprintf("(%d -- %d)", t.Input, t.Output)
}

// Merge composes t followed by next.
func (t TypeSpec) Merge(next TypeSpec) TypeSpec {
	if t.Output < next.Input {
		t.Input += next.Input - t.Output
		t.Output = 0
	} else {
		t.Output -= next.Input
	}
	t.Output += next.Output
	t.Exact = t.Exact && next.Exact
	return t
}

// Infer computes the stack effect of body in execution order, from the
// last word to the first. An unknown atom makes the result inexact.
func (d *Dictionary) Infer(body word.List) TypeSpec {
	spec := exact(0, 0)
	for i := len(body) - 1; i >= 0; i-- {
		a, ok := body[i].(word.Atom)
		if !ok {
			spec = spec.Merge(literal)
			continue
		}
		b, ok := d.Get(string(a))
		if !ok {
			spec.Exact = false
			break
		}
		spec = spec.Merge(b.Spec())
		if !spec.Exact {
			break
		}
	}
	return spec
}
