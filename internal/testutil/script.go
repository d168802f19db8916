package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// WriteScript writes src to a file named name in a fresh temp directory and
// returns its path.
func WriteScript(t testing.TB, name, src string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(src), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}
