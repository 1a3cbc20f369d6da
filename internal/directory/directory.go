// Package directory holds the in-memory collection of known accounts. It is
// the single source of truth for identity, status and notifications; the
// session only remembers which entry is active.
//
// Every read returns a clone, so callers can never mutate directory state
// except through the methods below. A Directory is safe for concurrent use.
package directory

import (
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/inodesk/internal/common"
	"github.com/dmitrijs2005/inodesk/internal/ledger"
	"github.com/dmitrijs2005/inodesk/internal/models"
)

// Directory is an id-keyed account store with a folded-email index.
type Directory struct {
	mu      sync.RWMutex
	byID    map[string]*models.Account
	byEmail map[string]string
	order   []string
	now     func() time.Time
}

// Option customizes a Directory.
type Option func(*Directory)

// WithClock injects the time source used to stamp new messages.
func WithClock(now func() time.Time) Option {
	return func(d *Directory) {
		if now != nil {
			d.now = now
		}
	}
}

// New returns an empty Directory.
func New(opts ...Option) *Directory {
	d := &Directory{now: time.Now}
	for _, opt := range opts {
		opt(d)
	}
	d.reset()
	return d
}

// Reset drops every account.
func (d *Directory) Reset() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.reset()
}

func (d *Directory) reset() {
	d.byID = make(map[string]*models.Account)
	d.byEmail = make(map[string]string)
	d.order = nil
}

// Load replaces the directory contents with accounts. It fails without
// changing anything if two accounts share an id or a folded email.
func (d *Directory) Load(accounts []models.Account) error {
	fresh := New()
	for _, a := range accounts {
		if err := fresh.Add(a); err != nil {
			return fmt.Errorf("load account %s: %w", a.ID, err)
		}
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	d.byID, d.byEmail, d.order = fresh.byID, fresh.byEmail, fresh.order
	return nil
}

// Len returns the number of accounts.
func (d *Directory) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.order)
}

// List returns all accounts in insertion order.
func (d *Directory) List() []models.Account {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make([]models.Account, 0, len(d.order))
	for _, id := range d.order {
		out = append(out, d.byID[id].Clone())
	}
	return out
}

// Get returns the account with the given id.
func (d *Directory) Get(id string) (models.Account, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	a, ok := d.byID[id]
	if !ok {
		return models.Account{}, false
	}
	return a.Clone(), true
}

// FindByEmail returns the account whose email matches under case folding.
// Partial matches never count.
func (d *Directory) FindByEmail(email string) (models.Account, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	id, ok := d.byEmail[models.NormalizeEmail(email)]
	if !ok {
		return models.Account{}, false
	}
	return d.byID[id].Clone(), true
}

// Add inserts a new account.
func (d *Directory) Add(a models.Account) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	key := models.NormalizeEmail(a.Email)
	if _, taken := d.byEmail[key]; taken {
		return common.ErrDuplicateEmail
	}
	if _, taken := d.byID[a.ID]; taken {
		return common.ErrAlreadyExists
	}

	c := a.Clone()
	d.byID[a.ID] = &c
	d.byEmail[key] = a.ID
	d.order = append(d.order, a.ID)
	return nil
}

// SetStatus sets the account status. It reports false if id is unknown.
func (d *Directory) SetStatus(id string, status models.Status) (models.Account, bool) {
	return d.mutate(id, func(a *models.Account) { a.Status = status })
}

// ToggleStatus flips Active and Suspended.
func (d *Directory) ToggleStatus(id string) (models.Account, bool) {
	return d.mutate(id, func(a *models.Account) { a.Status = a.Status.Toggled() })
}

// SetPassword replaces the stored password hash.
func (d *Directory) SetPassword(id, hash string) (models.Account, bool) {
	return d.mutate(id, func(a *models.Account) { a.Password = hash })
}

// PushNotification records a new unread message at the head of the
// account's ledger and returns it.
func (d *Directory) PushNotification(id, text string, kind models.MessageType) (models.Message, models.Account, bool) {
	msg := ledger.NewMessage(text, kind, d.now())
	a, ok := d.mutate(id, func(a *models.Account) {
		a.Notifications = ledger.Push(a.Notifications, msg)
	})
	if !ok {
		return models.Message{}, models.Account{}, false
	}
	return msg, a, true
}

// MarkAsRead flags one message of the account as read. Unknown message ids
// are ignored; the bool reports whether the account exists.
func (d *Directory) MarkAsRead(id, messageID string) (models.Account, bool) {
	return d.mutate(id, func(a *models.Account) {
		a.Notifications, _ = ledger.MarkRead(a.Notifications, messageID)
	})
}

// ClearNotifications empties the account's ledger.
func (d *Directory) ClearNotifications(id string) (models.Account, bool) {
	return d.mutate(id, func(a *models.Account) { a.Notifications = []models.Message{} })
}

// UpdateFields merges patch into the account. Fields absent from the patch
// are untouched. Changing the email to one held by another account fails
// with common.ErrDuplicateEmail.
func (d *Directory) UpdateFields(id string, patch models.AccountPatch) (models.Account, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	a, ok := d.byID[id]
	if !ok {
		return models.Account{}, common.ErrNotFound
	}

	oldKey := models.NormalizeEmail(a.Email)
	newKey := oldKey
	if patch.Email != nil {
		newKey = models.NormalizeEmail(*patch.Email)
		if owner, taken := d.byEmail[newKey]; taken && owner != id {
			return models.Account{}, common.ErrDuplicateEmail
		}
	}

	patch.Apply(a)
	if newKey != oldKey {
		delete(d.byEmail, oldKey)
		d.byEmail[newKey] = id
	}
	return a.Clone(), nil
}

// Delete removes a non-admin account. Admin accounts are never deleted.
func (d *Directory) Delete(id string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	a, ok := d.byID[id]
	if !ok {
		return common.ErrNotFound
	}
	if a.IsAdmin {
		return common.ErrProtectedAccount
	}

	delete(d.byEmail, models.NormalizeEmail(a.Email))
	delete(d.byID, id)
	for i, v := range d.order {
		if v == id {
			d.order = append(d.order[:i], d.order[i+1:]...)
			break
		}
	}
	return nil
}

func (d *Directory) mutate(id string, fn func(a *models.Account)) (models.Account, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	a, ok := d.byID[id]
	if !ok {
		return models.Account{}, false
	}
	fn(a)
	return a.Clone(), true
}
