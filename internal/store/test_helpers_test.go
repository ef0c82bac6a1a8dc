package store

import (
	"path/filepath"
	"testing"

	"github.com/roach88/y2km/internal/y2km"
)

// createTestStore creates a new store in a temp directory with fixed IDs.
func createTestStore(t *testing.T, ids ...string) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path, WithIDGenerator(NewFixedGenerator(ids...)))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// createTestSequence builds a sequence from boxed values (nil is missing).
func createTestSequence(t *testing.T, values ...any) *y2km.Sequence {
	t.Helper()
	seq, err := y2km.FromAny(values)
	if err != nil {
		t.Fatalf("FromAny() failed: %v", err)
	}
	return seq
}
