package shell

import (
	"math"

	"nickandperla.net/backforth/internal/word"
)

// asInt accepts an Int, or a Hex that fits in an Int.
func asInt(w word.Word) (int32, error) {
	switch v := w.(type) {
	case word.Int:
		return int32(v), nil
	case word.Hex:
		return intoInt(v)
	}
	return 0, &WrongTypeError{Value: w, Expected: word.TypeInt}
}

func intoInt(w word.Word) (int32, error) {
	switch v := w.(type) {
	case word.Int:
		return int32(v), nil
	case word.Hex:
		if v <= math.MaxInt32 {
			return int32(v), nil
		}
	}
	return 0, &CantCoerceError{Value: w, Target: word.TypeInt}
}

func intoHex(w word.Word) (uint32, error) {
	switch v := w.(type) {
	case word.Hex:
		return uint32(v), nil
	case word.Int:
		if v >= 0 {
			return uint32(v), nil
		}
	}
	return 0, &CantCoerceError{Value: w, Target: word.TypeHex}
}

// asBool accepts only an Int; zero is false.
func asBool(w word.Word) (bool, error) {
	n, ok := w.(word.Int)
	if !ok {
		return false, &WrongTypeError{Value: w, Expected: word.TypeInt}
	}
	return n != 0, nil
}

func asList(w word.Word) (word.List, error) {
	l, ok := w.(word.List)
	if !ok {
		return nil, &WrongTypeError{Value: w, Expected: word.TypeList}
	}
	return l, nil
}

// intoList wraps a non-list value in a single element list.
func intoList(w word.Word) word.List {
	if l, ok := w.(word.List); ok {
		return l
	}
	return word.List{w}
}

func asStr(w word.Word) (string, error) {
	str, ok := w.(word.Str)
	if !ok {
		return "", &WrongTypeError{Value: w, Expected: word.TypeStr}
	}
	return string(str), nil
}

func asAtom(w word.Word) (string, error) {
	a, ok := w.(word.Atom)
	if !ok {
		return "", &WrongTypeError{Value: w, Expected: word.TypeAtom}
	}
	return string(a), nil
}

func asDict(w word.Word) (word.Dict, error) {
	d, ok := w.(word.Dict)
	if !ok {
		return word.Dict{}, &WrongTypeError{Value: w, Expected: word.TypeDict}
	}
	return d, nil
}

// keyOf accepts an Atom or a Str as a dict key.
func keyOf(w word.Word) (string, error) {
	switch v := w.(type) {
	case word.Atom:
		return string(v), nil
	case word.Str:
		return string(v), nil
	}
	return "", &WrongTypeError{Value: w, Expected: word.TypeStr}
}
