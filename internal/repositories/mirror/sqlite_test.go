package mirror

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE mirror (
  key   TEXT PRIMARY KEY,
  value BLOB NOT NULL
);`)
	require.NoError(t, err)
	return db
}

func TestSetAndGet(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, "ino-user", []byte(`{"id":"u1"}`)))

	v, err := r.Get(ctx, "ino-user")
	require.NoError(t, err)
	require.JSONEq(t, `{"id":"u1"}`, string(v))
}

func TestGet_Missing_ReturnsNilNil(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))

	v, err := r.Get(context.Background(), "absent")
	require.NoError(t, err)
	require.Nil(t, v)
}

func TestSet_Overwrites(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, "k", []byte("old")))
	require.NoError(t, r.Set(ctx, "k", []byte("new")))

	v, err := r.Get(ctx, "k")
	require.NoError(t, err)
	require.Equal(t, []byte("new"), v)
}

func TestDelete_RemovesKeyAndIsIdempotent(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, "x", []byte{0x01}))
	require.NoError(t, r.Delete(ctx, "x"))

	v, err := r.Get(ctx, "x")
	require.NoError(t, err)
	require.Nil(t, v)

	require.NoError(t, r.Delete(ctx, "x"))
}

func TestErrorsAreWrapped(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()
	require.NoError(t, db.Close())

	_, err := r.Get(ctx, "k")
	require.ErrorContains(t, err, "failed to read mirror[k]")

	err = r.Set(ctx, "k", []byte("v"))
	require.ErrorContains(t, err, "failed to write mirror[k]")

	err = r.Delete(ctx, "k")
	require.ErrorContains(t, err, "failed to delete mirror[k]")
}
