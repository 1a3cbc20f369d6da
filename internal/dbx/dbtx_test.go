package dbx

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func openInbox(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`CREATE TABLE inbox (id TEXT PRIMARY KEY, account_id TEXT NOT NULL, text TEXT NOT NULL)`)
	require.NoError(t, err)
	return db
}

func inboxSize(t *testing.T, db *sql.DB, accountID string) int {
	t.Helper()
	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM inbox WHERE account_id = ?`, accountID).Scan(&n))
	return n
}

func pushTwo(ctx context.Context, tx DBTX) error {
	for _, id := range []string{"msg-1", "msg-2"} {
		if _, err := tx.ExecContext(ctx, `INSERT INTO inbox (id, account_id, text) VALUES (?, 'u1', 'hi')`, id); err != nil {
			return err
		}
	}
	return nil
}

func TestWithTx_CommitsBatch(t *testing.T) {
	db := openInbox(t)

	require.NoError(t, WithTx(context.Background(), db, nil, pushTwo))
	assert.Equal(t, 2, inboxSize(t, db, "u1"))
}

func TestWithTx_ErrorDiscardsWholeBatch(t *testing.T) {
	db := openInbox(t)
	errStop := errors.New("stop")

	err := WithTx(context.Background(), db, nil, func(ctx context.Context, tx DBTX) error {
		if err := pushTwo(ctx, tx); err != nil {
			return err
		}
		return errStop
	})

	require.ErrorIs(t, err, errStop)
	assert.Equal(t, 0, inboxSize(t, db, "u1"))
}

func TestWithTx_ConstraintViolationRollsBack(t *testing.T) {
	db := openInbox(t)

	err := WithTx(context.Background(), db, nil, func(ctx context.Context, tx DBTX) error {
		if err := pushTwo(ctx, tx); err != nil {
			return err
		}
		return pushTwo(ctx, tx) // duplicate ids
	})

	require.Error(t, err)
	assert.Equal(t, 0, inboxSize(t, db, "u1"))
}

func TestWithTx_PanicRollsBackAndRethrows(t *testing.T) {
	db := openInbox(t)

	assert.PanicsWithValue(t, "kaboom", func() {
		_ = WithTx(context.Background(), db, nil, func(ctx context.Context, tx DBTX) error {
			_ = pushTwo(ctx, tx)
			panic("kaboom")
		})
	})
	assert.Equal(t, 0, inboxSize(t, db, "u1"))
}

func TestWithTx_BeginError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin().WillReturnError(errors.New("locked"))

	called := false
	err = WithTx(context.Background(), db, nil, func(context.Context, DBTX) error {
		called = true
		return nil
	})

	require.EqualError(t, err, "locked")
	assert.False(t, called)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithTx_CommitError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectCommit().WillReturnError(errors.New("disk full"))

	err = WithTx(context.Background(), db, nil, func(context.Context, DBTX) error { return nil })

	require.EqualError(t, err, "disk full")
	assert.NoError(t, mock.ExpectationsWereMet())
}
