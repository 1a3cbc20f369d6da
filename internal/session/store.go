// Package session tracks which account is signed in on this client and keeps
// a durable mirror of it, so a restart resumes the same session.
//
// The store holds only the active account id. The profile shown to the user
// is looked up in the directory, so there is no second mutable copy to keep
// in step; the durable mirror is rewritten whenever the active account
// changes (see Sync).
//
// Mirror contract: a single key (common.SessionMirrorKey) holding the
// JSON-serialized account, absent while logged out. Mirror writes are best
// effort: failures are logged and never returned to the caller.
package session

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/dmitrijs2005/inodesk/internal/common"
	"github.com/dmitrijs2005/inodesk/internal/logging"
	"github.com/dmitrijs2005/inodesk/internal/models"
	"github.com/dmitrijs2005/inodesk/internal/repositories/mirror"
)

// Store is the single-slot session holder.
type Store struct {
	mu       sync.RWMutex
	activeID string

	mirror  mirror.Repository
	key     string
	timeout time.Duration
	log     logging.Logger
}

// Option customizes a Store.
type Option func(*Store)

// WithLogger sets the logger used to report mirror failures.
func WithLogger(l logging.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.log = l
		}
	}
}

// WithTimeout bounds each mirror read or write.
func WithTimeout(d time.Duration) Option {
	return func(s *Store) { s.timeout = d }
}

// WithKey overrides the mirror key.
func WithKey(key string) Option {
	return func(s *Store) {
		if key != "" {
			s.key = key
		}
	}
}

// NewStore returns a logged-out Store backed by m.
func NewStore(m mirror.Repository, opts ...Option) *Store {
	s := &Store{
		mirror:  m,
		key:     common.SessionMirrorKey,
		timeout: 3 * time.Second,
		log:     logging.Nop{},
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.With("component", "session")
	return s
}

// ActiveID returns the id of the signed-in account.
func (s *Store) ActiveID() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.activeID, s.activeID != ""
}

// IsActive reports whether id is the signed-in account.
func (s *Store) IsActive(id string) bool {
	active, ok := s.ActiveID()
	return ok && active == id
}

// Restore reads the durable mirror and, if it holds a well-formed account,
// makes that account active and returns the stored snapshot. Missing,
// unreadable or malformed data leaves the store logged out; a malformed
// entry is dropped.
func (s *Store) Restore(ctx context.Context) (models.Account, bool) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	raw, err := s.mirror.Get(ctx, s.key)
	if err != nil {
		s.log.Warn(ctx, "session mirror unreadable", "error", err)
		return models.Account{}, false
	}
	if raw == nil {
		return models.Account{}, false
	}

	a, err := decode(raw)
	if err != nil {
		s.log.Warn(ctx, "discarding malformed session mirror", "error", err)
		if err := s.mirror.Delete(ctx, s.key); err != nil {
			s.log.Error(ctx, "session mirror delete failed", "error", err)
		}
		return models.Account{}, false
	}

	s.mu.Lock()
	s.activeID = a.ID
	s.mu.Unlock()
	s.log.Debug(ctx, "session restored", "account_id", a.ID)
	return a, true
}

// Adopt makes a the active account and writes the mirror.
func (s *Store) Adopt(ctx context.Context, a models.Account) {
	s.mu.Lock()
	s.activeID = a.ID
	s.mu.Unlock()
	s.write(ctx, a)
}

// Sync rewrites the mirror if a is the active account, so that a restart
// reproduces its latest state. Other accounts are ignored.
func (s *Store) Sync(ctx context.Context, a models.Account) {
	if !s.IsActive(a.ID) {
		return
	}
	s.write(ctx, a)
}

// Clear logs out and deletes the mirror entry.
func (s *Store) Clear(ctx context.Context) {
	s.mu.Lock()
	s.activeID = ""
	s.mu.Unlock()

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	if err := s.mirror.Delete(ctx, s.key); err != nil {
		s.log.Error(ctx, "session mirror delete failed", "error", err)
	}
}

// Forget logs out in memory only, leaving the mirror as is.
func (s *Store) Forget() {
	s.mu.Lock()
	s.activeID = ""
	s.mu.Unlock()
}

func (s *Store) write(ctx context.Context, a models.Account) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	raw, err := json.Marshal(a)
	if err != nil {
		s.log.Error(ctx, "session mirror encode failed", "account_id", a.ID, "error", err)
		return
	}
	if err := s.mirror.Set(ctx, s.key, raw); err != nil {
		s.log.Error(ctx, "session mirror write failed", "account_id", a.ID, "error", err)
	}
}

func (s *Store) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.timeout)
}

func decode(raw []byte) (models.Account, error) {
	var a models.Account
	if err := json.Unmarshal(raw, &a); err != nil {
		return models.Account{}, err
	}
	if a.ID == "" || a.Email == "" {
		return models.Account{}, errMalformed
	}
	return a, nil
}
