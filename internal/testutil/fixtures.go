package testutil

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/roach88/ndtool/internal/array"
	"github.com/roach88/ndtool/internal/npy"
	"github.com/roach88/ndtool/internal/store"
)

// WriteNPY writes a to dir/name in .npy format and returns the path.
func WriteNPY(t testing.TB, dir, name string, a *array.Array) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, npy.WriteFile(path, a))
	return path
}

// WriteFile writes raw content to dir/name and returns the path.
func WriteFile(t testing.TB, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// WriteArchive creates an .ndb archive at dir/name holding arrays and
// returns its path. The archive is closed before WriteArchive returns.
func WriteArchive(t testing.TB, dir, name string, arrays map[string]*array.Array) string {
	t.Helper()
	path := filepath.Join(dir, name)

	s, err := store.Open(path)
	require.NoError(t, err)
	defer s.Close()

	for entry, a := range arrays {
		require.NoError(t, s.Put(context.Background(), entry, a))
	}
	return path
}

// DemoOperands returns the broadcast-addition operands used by demo mode:
// a (2, 3) matrix and a (3,) row.
func DemoOperands() (*array.Array, *array.Array) {
	a := array.Must(array.Shape{2, 3}, []int64{33, 59, 24, 16, 12, 18})
	b := array.Vector[int64](13, 16, 47)
	return a, b
}
