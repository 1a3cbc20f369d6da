// Package accounts persists the account directory to the local database so
// that signups and admin changes survive restarts.
package accounts

import (
	"context"

	"github.com/dmitrijs2005/inodesk/internal/models"
)

// Repository stores whole account records, ledger included.
type Repository interface {
	// Save inserts or replaces the account and its ledger.
	Save(ctx context.Context, a models.Account) error
	// Delete removes the account and its ledger. Missing ids are ignored.
	Delete(ctx context.Context, id string) error
	// List returns every stored account in insertion order.
	List(ctx context.Context) ([]models.Account, error)
}
