package shell

import (
	"strings"

	"nickandperla.net/backforth/internal/parser"
	"nickandperla.net/backforth/internal/word"
)

func (s *Shell) listOp(b Builtin) error {
	top, err := s.peek(0)
	if err != nil {
		return err
	}

	switch b {
	case Len:
		l, err := asList(top)
		if err != nil {
			return err
		}
		s.drop(1)
		s.push(word.Int(len(l)))

	case Append:
		lhs, err := asList(top)
		if err != nil {
			return err
		}
		rhs, err := s.peekList(1)
		if err != nil {
			return err
		}
		s.drop(2)
		s.push(lhs.Append(rhs))

	case Push, Unshift:
		l, err := s.peekList(1)
		if err != nil {
			return err
		}
		s.drop(2)
		if b == Push {
			s.push(l.Push(top))
		} else {
			s.push(l.Unshift(top))
		}

	case Pop, Shift:
		l, err := asList(top)
		if err != nil {
			return err
		}
		rest, w, ok := l.Pop()
		if b == Shift {
			rest, w, ok = l.Shift()
		}
		if !ok {
			return ErrEmptyList
		}
		s.drop(1)
		s.push(rest, w)

	case Flatten:
		sep := word.Text(top)
		second, err := s.peek(1)
		if err != nil {
			return err
		}
		s.drop(2)
		s.push(word.Str(word.Join(intoList(second), sep)))
	}
	return nil
}

func (s *Shell) textOp(b Builtin) error {
	top, err := s.peek(0)
	if err != nil {
		return err
	}

	switch b {
	case Strcat:
		rhs, err := s.peek(1)
		if err != nil {
			return err
		}
		s.drop(2)
		s.push(word.Str(word.Text(top) + word.Text(rhs)))

	case Lines:
		text, err := asStr(top)
		if err != nil {
			return err
		}
		s.drop(1)
		s.push(splitLines(text))

	case Parse:
		src, err := asStr(top)
		if err != nil {
			return err
		}
		words, err := parser.Parse(src)
		if err != nil {
			return &BadParseError{Err: err}
		}
		s.drop(1)
		s.push(word.List(words))
	}
	return nil
}

// splitLines splits on newlines, dropping a trailing carriage return from
// each line and the empty string after a final newline.
func splitLines(text string) word.List {
	out := word.List{}
	for text != "" {
		line, rest, _ := strings.Cut(text, "\n")
		out = append(out, word.Str(strings.TrimSuffix(line, "\r")))
		text = rest
	}
	return out
}

func (s *Shell) dictOp(b Builtin) error {
	top, err := s.peek(0)
	if err != nil {
		return err
	}

	if b == MakeDict {
		l, err := asList(top)
		if err != nil {
			return err
		}
		d, err := buildDict(l)
		if err != nil {
			return err
		}
		s.drop(1)
		s.push(d)
		return nil
	}

	d, err := asDict(top)
	if err != nil {
		return err
	}
	if b == Keys {
		keys := word.List{}
		for _, k := range d.Keys() {
			keys = append(keys, word.Str(k))
		}
		s.drop(1)
		s.push(keys)
		return nil
	}

	second, err := s.peek(1)
	if err != nil {
		return err
	}
	key, err := keyOf(second)
	if err != nil {
		return err
	}
	switch b {
	case Get:
		v, ok := d.Get(key)
		if !ok {
			return &MissingKeyError{Key: key}
		}
		s.drop(2)
		s.push(v)
	case Put:
		v, err := s.peek(2)
		if err != nil {
			return err
		}
		s.drop(3)
		s.push(d.Put(key, v))
	}
	return nil
}

// buildDict reads "key = value" triples from the tail of l, the order in
// which statements in a block execute, so dict { a = 1 ; b = 2 } inserts a
// before b.
func buildDict(l word.List) (word.Dict, error) {
	var d word.Dict
	if len(l)%3 != 0 {
		return d, ErrMacroFailed
	}
	for i := len(l); i > 0; i -= 3 {
		k, eq, v := l[i-3], l[i-2], l[i-1]
		if eq != word.Atom(Assign.String()) {
			return d, ErrMacroFailed
		}
		key, err := keyOf(k)
		if err != nil {
			return d, err
		}
		d = d.Put(key, v)
	}
	return d, nil
}
