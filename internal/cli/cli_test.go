package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"nickandperla.net/backforth/internal/testutil"
)

// run executes the root command with args and stdin, returning stdout and
// stderr.
func run(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var out, errOut strings.Builder
	cmd.SetArgs(args)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestEvalFlag(t *testing.T) {
	t.Chdir(t.TempDir())

	out, _, err := run(t, "", "-e", "+ 1 2")
	require.NoError(t, err)
	assert.Equal(t, "3\n", out)

	out, _, err = run(t, "", "-e", `1 "two" { 3 }`)
	require.NoError(t, err)
	assert.Equal(t, "1\n\"two\"\n{ 3 }\n", out)
}

func TestEvalFlagError(t *testing.T) {
	t.Chdir(t.TempDir())

	_, _, err := run(t, "", "-e", "nope")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "can't understand nope")
}

func TestRunFile(t *testing.T) {
	t.Chdir(t.TempDir())
	path := testutil.WriteScript(t, "hello.bf", "greet = { echo \"hello\" }\ngreet\necho + 2 3\n")

	out, _, err := run(t, "", path)
	require.NoError(t, err)
	assert.Equal(t, "hello\n5\n", out)
}

func TestRunMissingFile(t *testing.T) {
	t.Chdir(t.TempDir())

	_, _, err := run(t, "", "missing.bf")
	assert.Error(t, err)
}

func TestPipedREPL(t *testing.T) {
	t.Chdir(t.TempDir())

	out, _, err := run(t, "+ 1 2\nnope\necho 7\n")
	require.NoError(t, err)
	assert.Contains(t, out, "nope error: can't understand nope\n")
	assert.Contains(t, out, "7\n")
	assert.True(t, strings.HasPrefix(out, "> "))
}

func TestPipedREPLWithoutStdlib(t *testing.T) {
	t.Chdir(t.TempDir())

	out, errOut, err := run(t, "echo 1\ndup 1\nbye\necho 2\n", "--no-stdlib")
	require.NoError(t, err)
	assert.Equal(t, "> 1\n> > ", out)
	assert.Contains(t, errOut, "can't understand dup")
}

func TestWordsJSON(t *testing.T) {
	t.Chdir(t.TempDir())

	out, _, err := run(t, "", "words", "--format", "json")
	require.NoError(t, err)

	var words []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &words))
	names := map[string]bool{}
	for _, w := range words {
		names[w["name"].(string)] = true
	}
	assert.True(t, names["dup"])
	assert.True(t, names["repl"])
	assert.False(t, names["+"])
}

func TestWordsAllYAML(t *testing.T) {
	t.Chdir(t.TempDir())

	out, _, err := run(t, "", "words", "--all", "--format", "yaml")
	require.NoError(t, err)

	var words []struct {
		Name    string `yaml:"name"`
		Builtin bool   `yaml:"builtin"`
	}
	require.NoError(t, yaml.Unmarshal([]byte(out), &words))
	var builtin bool
	for _, w := range words {
		if w.Name == "+" {
			builtin = w.Builtin
		}
	}
	assert.True(t, builtin)
}

func TestWordsTable(t *testing.T) {
	t.Chdir(t.TempDir())

	out, _, err := run(t, "", "words", "--no-stdlib", "--all")
	require.NoError(t, err)
	assert.Contains(t, out, "<builtin>")
	assert.Contains(t, out, "pick")

	_, _, err = run(t, "", "words", "--format", "xml")
	assert.Error(t, err)
}

func TestHistory(t *testing.T) {
	t.Chdir(t.TempDir())
	db := filepath.Join(t.TempDir(), "words.db")

	_, _, err := run(t, "", "--db", db, "-e", "sq = { * dup }\npersist sq quote")
	require.NoError(t, err)
	_, _, err = run(t, "", "--db", db, "-e", "sq = { * * dup dup }\npersist sq quote")
	require.NoError(t, err)

	out, _, err := run(t, "", "history", "sq", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "sq = { * dup }")
	assert.Contains(t, out, "sq = { * * dup dup }")

	out, _, err = run(t, "", "history", "sq", "--db", db, "--limit", "1")
	require.NoError(t, err)
	assert.NotContains(t, out, "sq = { * dup }")
	assert.Contains(t, out, "sq = { * * dup dup }")

	out, _, err = run(t, "", "history", "nothing", "--db", db)
	require.NoError(t, err)
	assert.Equal(t, "no history for nothing\n", out)
}

func TestConfigFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "backforth.yaml"), []byte("no_stdlib: true\n"), 0644))

	_, _, err := run(t, "", "-e", "dup 1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "can't understand dup")
}

func TestVersion(t *testing.T) {
	t.Chdir(t.TempDir())

	out, _, err := run(t, "", "version")
	require.NoError(t, err)
	assert.Equal(t, "backforth v"+Version+"\n", out)
}

func TestHistoryListsAndForget(t *testing.T) {
	t.Chdir(t.TempDir())
	db := filepath.Join(t.TempDir(), "words.db")

	out, _, err := run(t, "", "history", "--db", db)
	require.NoError(t, err)
	assert.Equal(t, "no persisted words\n", out)

	_, _, err = run(t, "", "--db", db, "-e", "sq = { * dup }\ncube = { * * dup dup }\npersist sq quote\npersist cube quote")
	require.NoError(t, err)

	out, _, err = run(t, "", "history", "--db", db)
	require.NoError(t, err)
	assert.Equal(t, "cube\nsq\n", out)

	out, _, err = run(t, "", "forget", "sq", "--db", db)
	require.NoError(t, err)
	assert.Equal(t, "forgot sq\n", out)

	out, _, err = run(t, "", "history", "--db", db)
	require.NoError(t, err)
	assert.Equal(t, "cube\n", out)

	_, _, err = run(t, "", "--db", db, "-e", "recall sq quote")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "can't understand sq")

	_, _, err = run(t, "", "forget")
	assert.Error(t, err)
}
