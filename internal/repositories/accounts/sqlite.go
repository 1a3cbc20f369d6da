package accounts

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dmitrijs2005/inodesk/internal/dbx"
	"github.com/dmitrijs2005/inodesk/internal/models"
)

// Database is what the repository needs from *sql.DB.
type Database interface {
	dbx.DBTX
	dbx.Beginner
}

type SQLiteRepository struct {
	db Database
}

func NewSQLiteRepository(db Database) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

const upsertAccount = `
	INSERT INTO accounts (id, name, email, email_key, password, is_admin, phone, status, created_at, seq)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, (SELECT COALESCE(MAX(seq), 0) + 1 FROM accounts))
	ON CONFLICT(id) DO UPDATE SET
		name      = excluded.name,
		email     = excluded.email,
		email_key = excluded.email_key,
		password  = excluded.password,
		is_admin  = excluded.is_admin,
		phone     = excluded.phone,
		status    = excluded.status
`

const insertNotification = `
	INSERT INTO notifications (id, account_id, position, text, created_at, is_read, type)
	VALUES (?, ?, ?, ?, ?, ?, ?)
`

func (r *SQLiteRepository) Save(ctx context.Context, a models.Account) error {
	err := dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		_, err := tx.ExecContext(ctx, upsertAccount,
			a.ID, a.Name, a.Email, models.NormalizeEmail(a.Email), a.Password,
			boolToInt(a.IsAdmin), a.Phone, string(a.Status), formatTime(a.CreatedAt))
		if err != nil {
			return err
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM notifications WHERE account_id = ?`, a.ID); err != nil {
			return err
		}
		for i, m := range a.Notifications {
			_, err := tx.ExecContext(ctx, insertNotification,
				m.ID, a.ID, i, m.Text, formatTime(m.Timestamp), boolToInt(m.IsRead), string(m.Type))
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to save account %s: %w", a.ID, err)
	}
	return nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, id string) error {
	err := dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM notifications WHERE account_id = ?`, id); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx, `DELETE FROM accounts WHERE id = ?`, id)
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to delete account %s: %w", id, err)
	}
	return nil
}

func (r *SQLiteRepository) List(ctx context.Context) ([]models.Account, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, email, password, is_admin, phone, status, created_at
		FROM accounts ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	defer rows.Close()

	var result []models.Account
	index := make(map[string]int)
	for rows.Next() {
		var (
			a       models.Account
			status  string
			created string
		)
		if err := rows.Scan(&a.ID, &a.Name, &a.Email, &a.Password, &a.IsAdmin, &a.Phone, &status, &created); err != nil {
			return nil, fmt.Errorf("failed to scan account row: %w", err)
		}
		a.Status = models.Status(status)
		if a.CreatedAt, err = parseTime(created); err != nil {
			return nil, fmt.Errorf("account %s: %w", a.ID, err)
		}
		a.Notifications = []models.Message{}
		index[a.ID] = len(result)
		result = append(result, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate account rows: %w", err)
	}
	_ = rows.Close()

	if err := r.attachNotifications(ctx, result, index); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *SQLiteRepository) attachNotifications(ctx context.Context, accounts []models.Account, index map[string]int) error {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, account_id, text, created_at, is_read, type
		FROM notifications ORDER BY account_id, position`)
	if err != nil {
		return fmt.Errorf("failed to list notifications: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			m         models.Message
			accountID string
			created   string
			kind      string
		)
		if err := rows.Scan(&m.ID, &accountID, &m.Text, &created, &m.IsRead, &kind); err != nil {
			return fmt.Errorf("failed to scan notification row: %w", err)
		}
		if m.Timestamp, err = parseTime(created); err != nil {
			return fmt.Errorf("notification %s: %w", m.ID, err)
		}
		m.Type = models.MessageType(kind)

		i, ok := index[accountID]
		if !ok {
			continue
		}
		accounts[i].Notifications = append(accounts[i].Notifications, m)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to iterate notification rows: %w", err)
	}
	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("bad timestamp %q: %w", s, err)
	}
	return t, nil
}

var _ Repository = (*SQLiteRepository)(nil)
var _ Database = (*sql.DB)(nil)
