package store

import (
	"errors"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore(t *testing.T) {
	s := NewMemory()
	defer s.Close()

	// Test Put and Get
	err := s.Put("sq", "sq = { * dup }")
	if err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	got, ok, err := s.Get("sq")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if !ok || got != "sq = { * dup }" {
		t.Errorf("expected 'sq = { * dup }', got %q (ok=%v)", got, ok)
	}

	// Test Delete
	err = s.Delete("sq")
	if err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	_, ok, err = s.Get("sq")
	if err != nil {
		t.Fatalf("Get after delete failed: %v", err)
	}
	if ok {
		t.Error("expected miss after delete")
	}
}

func TestSQLiteStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "backforth.db")

	s, err := NewSQLite(path)
	if err != nil {
		t.Fatalf("Failed to create SQLite store: %v", err)
	}

	// Test Put and Get
	err = s.Put("greeting", `greeting = "world"`)
	if err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	got, ok, err := s.Get("greeting")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if !ok || got != `greeting = "world"` {
		t.Errorf("expected greeting source, got %q (ok=%v)", got, ok)
	}

	s.Close()

	// Reopening runs migrations again and keeps the data.
	s, err = NewSQLite(path)
	if err != nil {
		t.Fatalf("Failed to reopen SQLite store: %v", err)
	}
	defer s.Close()

	got, ok, err = s.Get("greeting")
	if err != nil {
		t.Fatalf("Get after reopen failed: %v", err)
	}
	if !ok || got != `greeting = "world"` {
		t.Errorf("expected greeting after reopen, got %q", got)
	}

	// Test Delete
	if err := s.Delete("greeting"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	_, ok, err = s.Get("greeting")
	if err != nil {
		t.Fatalf("Get after delete failed: %v", err)
	}
	if ok {
		t.Error("expected miss after delete")
	}
}

type historyStore interface {
	Store
	HistoryStore
}

func eachStore(t *testing.T, fn func(t *testing.T, s historyStore)) {
	t.Run("memory", func(t *testing.T) {
		s := NewMemory()
		defer s.Close()
		fn(t, s)
	})
	t.Run("sqlite", func(t *testing.T) {
		s, err := NewSQLite(":memory:")
		require.NoError(t, err)
		defer s.Close()
		fn(t, s)
	})
}

func TestVersioning(t *testing.T) {
	eachStore(t, func(t *testing.T, s historyStore) {
		require.NoError(t, s.Put("x", "x = 1"))
		require.NoError(t, s.Put("x", "x = 1"))
		require.NoError(t, s.Put("x", "x = 2"))
		require.NoError(t, s.Put("x", "x = 3"))

		got, ok, err := s.Get("x")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "x = 3", got)

		history, err := s.GetHistory("x", 0)
		require.NoError(t, err)
		require.Len(t, history, 3)
		assert.Equal(t, 3, history[0].Version)
		assert.Equal(t, "x = 3", history[0].Source)
		assert.Equal(t, 1, history[2].Version)
		assert.Equal(t, "x = 1", history[2].Source)
		assert.NotEmpty(t, history[0].Ts)

		history, err = s.GetHistory("x", 2)
		require.NoError(t, err)
		assert.Len(t, history, 2)

		history, err = s.GetHistory("missing", 0)
		require.NoError(t, err)
		assert.Empty(t, history)
	})
}

func TestNames(t *testing.T) {
	eachStore(t, func(t *testing.T, s historyStore) {
		for _, name := range []string{"sq", "fact", "sq", "area"} {
			require.NoError(t, s.Put(name, name+" = { }"))
		}
		names, err := s.Names()
		require.NoError(t, err)
		assert.Equal(t, []string{"area", "fact", "sq"}, names)

		require.NoError(t, s.Delete("fact"))
		names, err = s.Names()
		require.NoError(t, err)
		assert.Equal(t, []string{"area", "sq"}, names)
	})
}

const latestQuery = "SELECT version, source FROM definitions WHERE name = ? ORDER BY version DESC LIMIT 1"

func TestSQLiteQueryErrors(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	s := NewSQLiteDB(db)
	defer s.Close()

	boom := errors.New("disk I/O error")

	mock.ExpectQuery(regexp.QuoteMeta("SELECT source FROM definitions")).
		WithArgs("x").
		WillReturnError(boom)
	_, ok, err := s.Get("x")
	assert.ErrorIs(t, err, boom)
	assert.False(t, ok)

	mock.ExpectQuery(regexp.QuoteMeta(latestQuery)).
		WithArgs("x").
		WillReturnRows(sqlmock.NewRows([]string{"version", "source"}))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO definitions")).
		WithArgs("x", 1, "x = 1").
		WillReturnError(boom)
	assert.ErrorIs(t, s.Put("x", "x = 1"), boom)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT DISTINCT name FROM definitions")).
		WillReturnError(boom)
	_, err = s.Names()
	assert.ErrorIs(t, err, boom)

	mock.ExpectClose()
	require.NoError(t, s.Close())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLitePutSkipsUnchanged(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	s := NewSQLiteDB(db)

	mock.ExpectQuery(regexp.QuoteMeta(latestQuery)).
		WithArgs("x").
		WillReturnRows(sqlmock.NewRows([]string{"version", "source"}).AddRow(4, "x = 1"))
	require.NoError(t, s.Put("x", "x = 1"))

	mock.ExpectQuery(regexp.QuoteMeta(latestQuery)).
		WithArgs("x").
		WillReturnRows(sqlmock.NewRows([]string{"version", "source"}).AddRow(4, "x = 1"))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO definitions")).
		WithArgs("x", 5, "x = 2").
		WillReturnResult(sqlmock.NewResult(1, 1))
	require.NoError(t, s.Put("x", "x = 2"))

	assert.NoError(t, mock.ExpectationsWereMet())
}
