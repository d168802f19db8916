package shell

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nickandperla.net/backforth/internal/parser"
	"nickandperla.net/backforth/internal/word"
)

func TestTypeSpecString(t *testing.T) {
	assert.Equal(t, "(2 -- 1)", exact(2, 1).String())
	assert.Equal(t, "(3 -- ?)", inexact(3).String())
}

func TestMerge(t *testing.T) {
	tests := []struct {
		name       string
		first, nxt TypeSpec
		want       TypeSpec
	}{
		{"literals stack up", literal, literal, exact(0, 2)},
		{"consumer takes produced values", exact(0, 2), exact(2, 1), exact(0, 1)},
		{"consumer reaches below", exact(0, 1), exact(2, 1), exact(1, 1)},
		{"inexact is sticky", exact(1, 1), inexact(1), TypeSpec{Input: 1, Output: 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.first.Merge(tt.nxt))
		})
	}
}

func TestInfer(t *testing.T) {
	d := NewDictionary()
	body := func(src string) word.List {
		words, err := parser.Parse(src)
		require.NoError(t, err)
		return word.List(words)
	}

	assert.Equal(t, exact(0, 0), d.Infer(word.List{}))
	assert.Equal(t, exact(0, 1), d.Infer(body("+ 1 2")))
	assert.Equal(t, exact(1, 1), d.Infer(body("* pick 0")))
	assert.Equal(t, exact(2, 1), d.Infer(body("+")))
	assert.Equal(t, exact(1, 0), d.Infer(body("drop")))

	// Statements are inferred in the order they run.
	assert.Equal(t, exact(0, 2), d.Infer(body("1\n2")))

	got := d.Infer(body("unknown 1"))
	assert.False(t, got.Exact)
	assert.Equal(t, 0, got.Input)

	got = d.Infer(body("+ eval 1"))
	assert.False(t, got.Exact)

	require.NoError(t, d.Set("sq", Interpreted{Type: exact(1, 1), Value: body("* pick 0")}))
	assert.Equal(t, exact(1, 1), d.Infer(body("sq sq")))
}

func TestDictionary(t *testing.T) {
	d := NewDictionary()
	n := d.Len()
	assert.Equal(t, int(numBuiltins), n)

	assert.Error(t, d.Set("", Interpreted{Type: literal, Value: word.Int(1)}))

	require.NoError(t, d.Set("a", Interpreted{Type: literal, Value: word.Int(1)}))
	require.NoError(t, d.Set("b", Interpreted{Type: literal, Value: word.Int(2)}))
	require.NoError(t, d.Set("a", Interpreted{Type: literal, Value: word.Int(3)}))

	names := d.Names()
	assert.Equal(t, []string{"a", "b"}, names[n:])

	clone := d.Clone()
	require.NoError(t, clone.Set("c", Interpreted{Type: literal, Value: word.Int(4)}))
	_, ok := d.Get("c")
	assert.False(t, ok)
	assert.Equal(t, n+3, clone.Len())
}
