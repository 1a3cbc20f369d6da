package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOpen_InMemoryCreatesSchema(t *testing.T) {
	ctx := context.Background()
	db, err := Open(ctx, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	for _, table := range []string{"mirror", "accounts", "notifications"} {
		var n int
		err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?`, table).Scan(&n)
		require.NoError(t, err)
		require.Equal(t, 1, n, "table %s must exist", table)
	}
}

func TestOpen_FileIsReopenable(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "inodesk.db")

	db, err := Open(ctx, path)
	require.NoError(t, err)
	_, err = db.ExecContext(ctx, `INSERT INTO mirror(key, value) VALUES ('k', 'v')`)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	db, err = Open(ctx, path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	var v string
	require.NoError(t, db.QueryRowContext(ctx, `SELECT value FROM mirror WHERE key='k'`).Scan(&v))
	require.Equal(t, "v", v)
}

func TestOpen_BadPath(t *testing.T) {
	_, err := Open(context.Background(), filepath.Join(t.TempDir(), "missing", "dir", "x.db"))
	require.Error(t, err)
}
