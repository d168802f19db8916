package shell

import (
	"fmt"

	"nickandperla.net/backforth/internal/parser"
	"nickandperla.net/backforth/internal/word"
)

func (s *Shell) ioOp(b Builtin) error {
	top, err := s.peek(0)
	if err != nil {
		return err
	}

	switch b {
	case Echo:
		if err := s.write("echo", word.Text(top)+"\n"); err != nil {
			return err
		}
		s.drop(1)

	case Prompt:
		line, err := s.input(word.Text(top))
		if err != nil {
			return &IOError{Op: "prompt", Err: err}
		}
		s.drop(1)
		s.push(word.Str(stripNewline(line)))

	case Load:
		path, err := asStr(top)
		if err != nil {
			return err
		}
		contents, err := s.load(path)
		if err != nil {
			return &IOError{Op: "load", Err: err}
		}
		s.drop(1)
		s.push(word.Str(contents))

	case Command:
		second, err := s.peek(1)
		if err != nil {
			return err
		}
		var args []string
		for _, a := range intoList(second) {
			arg, err := asStr(a)
			if err != nil {
				return err
			}
			args = append(args, arg)
		}
		out, err := s.command(word.Text(top), args)
		if err != nil {
			return &IOError{Op: "command", Err: err}
		}
		s.drop(2)
		s.push(word.Str(out))
	}
	return nil
}

func (s *Shell) storeOp(b Builtin) error {
	top, err := s.peek(0)
	if err != nil {
		return err
	}
	name, err := asAtom(top)
	if err != nil {
		return err
	}

	if b == Persist {
		binding, ok := s.dict.Get(name)
		if !ok {
			return &CantUnderstandError{Name: name}
		}
		def, ok := binding.(Interpreted)
		if !ok {
			return &WrongTypeError{Value: top, Expected: word.TypeList}
		}
		if err := s.store.Put(name, definitionSource(name, def.Value)); err != nil {
			return &IOError{Op: "persist", Err: err}
		}
		s.drop(1)
		s.logger.Debug("persisted", "name", name)
		return nil
	}

	src, ok, err := s.store.Get(name)
	if err != nil {
		return &IOError{Op: "recall", Err: err}
	}
	if !ok {
		return &CantUnderstandError{Name: name}
	}
	words, err := parser.Parse(src)
	if err != nil {
		return &BadParseError{Err: err}
	}
	s.drop(1)
	s.splice(words)
	return nil
}

// definitionSource renders a binding as a statement that rebinds it when
// evaluated. An atom value is quoted so that it is bound rather than run.
func definitionSource(name string, value word.Word) string {
	if _, ok := value.(word.Atom); ok {
		return fmt.Sprintf("%s = %v quote", name, value)
	}
	return fmt.Sprintf("%s = %v", name, value)
}
