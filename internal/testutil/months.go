package testutil

import (
	"path/filepath"

	"github.com/roach88/y2km/internal/store"
	"github.com/roach88/y2km/internal/y2km"
)

// TB is the part of testing.TB the helpers use. Taking it instead of
// testing.TB keeps the testing package out of binaries that link the harness.
type TB interface {
	Helper()
	Fatalf(format string, args ...any)
	TempDir() string
	Cleanup(func())
}

// Months builds a sequence from boxed values, failing the test on error.
// nil elements are missing; strings are parsed as YYYY-MM.
func Months(t TB, values ...any) *y2km.Sequence {
	t.Helper()
	seq, err := y2km.FromAny(values)
	if err != nil {
		t.Fatalf("FromAny(%v) failed: %v", values, err)
	}
	return seq
}

// TempStore opens a store in a temp directory with sequential version IDs.
// The store is closed when the test ends.
func TempStore(t TB, opts ...store.Option) *store.Store {
	t.Helper()
	opts = append([]store.Option{store.WithIDGenerator(NewSequentialIDs(""))}, opts...)
	st, err := store.Open(filepath.Join(t.TempDir(), "test.db"), opts...)
	if err != nil {
		t.Fatalf("store.Open() failed: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	return st
}
