package shell

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nickandperla.net/backforth/internal/testutil"
	"nickandperla.net/backforth/internal/word"
)

// newTestShell returns a shell whose output is captured in the returned
// builder.
func newTestShell(t *testing.T, opts ...Option) (*Shell, *strings.Builder) {
	t.Helper()
	var out strings.Builder
	base := []Option{
		WithLogger(testutil.NewTestLogger(t)),
		WithOutputWriter(func(text string) error {
			out.WriteString(text)
			return nil
		}),
	}
	return New(append(base, opts...)...), &out
}

func evalStack(t *testing.T, s *Shell, src string) []word.Word {
	t.Helper()
	require.NoError(t, s.Eval(src), "eval %q", src)
	return s.Stack()
}

func TestAddition(t *testing.T) {
	s, _ := newTestShell(t)
	assert.Equal(t, []word.Word{word.Int(4)}, evalStack(t, s, "+ 2 2"))
}

func TestStatementOrder(t *testing.T) {
	s, _ := newTestShell(t)
	got := evalStack(t, s, "1\n2 ; 3 4")
	assert.Equal(t, []word.Word{word.Int(3), word.Int(4), word.Int(2), word.Int(1)}, got)
}

func TestDivideByZero(t *testing.T) {
	s, _ := newTestShell(t)
	err := s.Eval("/ 4 0")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDivideByZero)
	assert.Equal(t, "/ error: divided by zero", err.Error())

	var shellErr *Error
	require.ErrorAs(t, err, &shellErr)
	assert.Equal(t, "/", shellErr.Name)

	// Operands are still in place and the failing word is next.
	assert.Equal(t, []word.Word{word.Int(4), word.Int(0)}, s.Stack())
	assert.Equal(t, []word.Word{word.Atom("/")}, s.Code())
}

func TestDropUnderflow(t *testing.T) {
	s, _ := newTestShell(t)
	err := s.Eval("drop")
	assert.ErrorIs(t, err, ErrStackUnderflow)
	assert.Empty(t, s.Stack())
}

func TestUndefinedWord(t *testing.T) {
	s, _ := newTestShell(t)
	err := s.Eval("1\nnope 3\n4")

	var cu *CantUnderstandError
	require.ErrorAs(t, err, &cu)
	assert.Equal(t, "nope", cu.Name)
	assert.Equal(t, []word.Word{word.Int(3), word.Int(1)}, s.Stack())
	assert.Equal(t, []word.Word{word.Int(4), word.Atom("nope")}, s.Code())

	// Resetting drops the pending code and keeps the data.
	s.Reset()
	assert.Empty(t, s.Code())
	assert.Len(t, s.Stack(), 2)
}

func TestFailedBuiltinHasNoEffect(t *testing.T) {
	s, _ := newTestShell(t)
	err := s.Eval(`+ 1 "a"`)

	var wt *WrongTypeError
	require.ErrorAs(t, err, &wt)
	assert.Equal(t, word.TypeInt, wt.Expected)
	assert.Equal(t, []word.Word{word.Int(1), word.Str("a")}, s.Stack())
}

func TestFactorial(t *testing.T) {
	s, _ := newTestShell(t)
	got := evalStack(t, s, `
fact = { if == 0 pick 2 { 1 drop } { * fact + -1 pick 0 } }
fact 4
`)
	assert.Equal(t, []word.Word{word.Int(24)}, got)
}

func TestCountdown(t *testing.T) {
	s, _ := newTestShell(t)
	got := evalStack(t, s, `
countdown = { if == 0 pick 2 { } { countdown + -1 } }
countdown 5
`)
	assert.Equal(t, []word.Word{word.Int(0)}, got)
}

func TestTryWithoutError(t *testing.T) {
	s, _ := newTestShell(t)
	got := evalStack(t, s, `try { "ok" } { "caught" }`)
	assert.Equal(t, []word.Word{word.Str("ok")}, got)
	assert.Empty(t, s.restore)
}

func TestTryRestoresState(t *testing.T) {
	s, _ := newTestShell(t)
	got := evalStack(t, s, `
1
try {
  x = 5
  "partial"
  / 1 0
} { }
`)
	assert.Equal(t, []word.Word{word.Str("/ error: divided by zero"), word.Int(1)}, got)
	_, ok := s.Lookup("x")
	assert.False(t, ok, "binding made inside the failed body must be rolled back")
	assert.Empty(t, s.restore)
}

func TestTryRunsCatchThenRest(t *testing.T) {
	s, _ := newTestShell(t)
	got := evalStack(t, s, "try { nope } { drop }\n42")
	assert.Equal(t, []word.Word{word.Int(42)}, got)

	got = evalStack(t, s, "clear\ntry { nope } { }")
	assert.Equal(t, []word.Word{word.Str("nope error: can't understand nope")}, got)
}

func TestNestedTry(t *testing.T) {
	s, _ := newTestShell(t)
	got := evalStack(t, s, `
try {
  try { / 1 0 } { "inner" }
  nope
} { "outer" }
`)
	assert.Equal(t, []word.Word{
		word.Str("outer"),
		word.Str("nope error: can't understand nope"),
	}, got)
}

func TestIOErrorIsFatal(t *testing.T) {
	boom := errors.New("closed pipe")
	s, _ := newTestShell(t, WithOutputWriter(func(string) error { return boom }))

	err := s.Eval(`try { echo "x" } { "caught" }`)
	var ioErr *IOError
	require.ErrorAs(t, err, &ioErr)
	assert.Equal(t, "echo", ioErr.Op)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, []word.Word{word.Str("x")}, s.Stack())
}

func TestBye(t *testing.T) {
	s, _ := newTestShell(t)
	got := evalStack(t, s, "1\nbye\n2")
	assert.Equal(t, []word.Word{word.Int(1)}, got)

	got = evalStack(t, s, "try { bye } { }\n3")
	assert.Equal(t, []word.Word{word.Int(1)}, got)
	assert.Empty(t, s.restore)
	assert.Empty(t, s.Code())
}

func TestInterpretedNonList(t *testing.T) {
	s, _ := newTestShell(t)
	got := evalStack(t, s, "answer = 42\n+ answer 1")
	assert.Equal(t, []word.Word{word.Int(43)}, got)

	// An atom value runs as code.
	got = evalStack(t, s, "clear\nadd = + quote\nadd 2 3")
	assert.Equal(t, []word.Word{word.Int(5)}, got)
}

func TestAssignNeedsName(t *testing.T) {
	s, _ := newTestShell(t)
	err := s.Eval("= 1")
	assert.ErrorIs(t, err, ErrMacroFailed)

	s.Reset()
	err = s.Eval(`clear ; 3 = 1`)
	var wt *WrongTypeError
	require.ErrorAs(t, err, &wt)
	assert.Equal(t, word.TypeAtom, wt.Expected)
}

func TestNamesAndLookup(t *testing.T) {
	s, _ := newTestShell(t)
	require.NoError(t, s.Eval("sq = { * pick 0 }"))

	names := s.Names()
	assert.Equal(t, "bye", names[0])
	assert.Equal(t, "sq", names[len(names)-1])

	b, ok := s.Lookup("sq")
	require.True(t, ok)
	def, ok := b.(Interpreted)
	require.True(t, ok)
	assert.Equal(t, TypeSpec{Input: 1, Output: 1, Exact: true}, def.Spec())

	b, ok = s.Lookup("+")
	require.True(t, ok)
	assert.Equal(t, Add, b)
}

func TestLoadRunsInSourceOrder(t *testing.T) {
	s, _ := newTestShell(t)
	s.Load(word.Atom("+"), word.Int(1), word.Int(2))
	require.NoError(t, s.Run())
	assert.Equal(t, []word.Word{word.Int(3)}, s.Stack())
}
