// Package services contains the application services of the inodesk client.
// This file implements IdentityService: login, signup, logout, the admin
// account operations and the active user's notification ledger.
package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/inodesk/internal/common"
	"github.com/dmitrijs2005/inodesk/internal/cryptox"
	"github.com/dmitrijs2005/inodesk/internal/directory"
	"github.com/dmitrijs2005/inodesk/internal/ids"
	"github.com/dmitrijs2005/inodesk/internal/ledger"
	"github.com/dmitrijs2005/inodesk/internal/logging"
	"github.com/dmitrijs2005/inodesk/internal/models"
	"github.com/dmitrijs2005/inodesk/internal/obs"
	"github.com/dmitrijs2005/inodesk/internal/repositories/accounts"
	"github.com/dmitrijs2005/inodesk/internal/session"
)

// Seed is an account created when the directory starts out empty.
type Seed struct {
	Data    models.SignupData
	IsAdmin bool
}

// DefaultSeeds are the accounts every fresh installation starts with.
var DefaultSeeds = []Seed{
	{Data: models.SignupData{Name: "Logistics Admin", Email: "admin@gmail.com", Password: "admin@123"}, IsAdmin: true},
	{Data: models.SignupData{Name: "Desta", Email: "desta@gmail.com", Password: "password123", Phone: "0987654321"}},
}

// IdentityService owns the account directory and the session slot.
//
// Inputs are trusted: password strength, phone format and email syntax are
// checked by callers (see package validation) before any method is invoked.
// Every mutation of an account goes through the directory first; the
// session only records the active id, and its durable mirror is refreshed
// after each mutation of the active account.
type IdentityService struct {
	mu sync.Mutex

	dir      *directory.Directory
	session  *session.Store
	accounts accounts.Repository

	metrics *obs.Metrics
	log     logging.Logger
	now     func() time.Time
	cost    int
	seeds   []Seed
	timeout time.Duration
}

// Option customizes an IdentityService.
type Option func(*IdentityService)

// WithAccounts enables write-through persistence of the directory.
func WithAccounts(r accounts.Repository) Option {
	return func(s *IdentityService) { s.accounts = r }
}

func WithMetrics(m *obs.Metrics) Option {
	return func(s *IdentityService) { s.metrics = m }
}

func WithLogger(l logging.Logger) Option {
	return func(s *IdentityService) {
		if l != nil {
			s.log = l
		}
	}
}

// WithClock injects the time source for creation timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *IdentityService) {
		if now != nil {
			s.now = now
		}
	}
}

// WithPasswordCost sets the bcrypt cost for new hashes.
func WithPasswordCost(cost int) Option {
	return func(s *IdentityService) { s.cost = cost }
}

// WithSeeds replaces DefaultSeeds. Passing none disables seeding.
func WithSeeds(seeds ...Seed) Option {
	return func(s *IdentityService) { s.seeds = seeds }
}

// WithStorageTimeout bounds each write-through save.
func WithStorageTimeout(d time.Duration) Option {
	return func(s *IdentityService) { s.timeout = d }
}

// NewIdentityService wires a service over dir and sess. Call Init before use.
func NewIdentityService(dir *directory.Directory, sess *session.Store, opts ...Option) *IdentityService {
	s := &IdentityService{
		dir:     dir,
		session: sess,
		log:     logging.Nop{},
		now:     time.Now,
		cost:    cryptox.DefaultCost,
		seeds:   DefaultSeeds,
		timeout: 3 * time.Second,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.With("component", "identity")
	return s
}

// Init loads persisted accounts, seeds an empty directory and restores the
// session from its durable mirror.
func (s *IdentityService) Init(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.accounts != nil {
		stored, err := s.accounts.List(ctx)
		if err != nil {
			return fmt.Errorf("load accounts: %w", err)
		}
		if err := s.dir.Load(stored); err != nil {
			return fmt.Errorf("load accounts: %w", err)
		}
	}

	if s.dir.Len() == 0 {
		for _, seed := range s.seeds {
			if _, err := s.create(ctx, seed.Data, seed.IsAdmin, nil); err != nil {
				return fmt.Errorf("seed %s: %w", seed.Data.Email, err)
			}
		}
	}

	s.restore(ctx)
	s.metrics.SetAccounts(s.dir.Len())
	return nil
}

// restore re-activates the mirrored session. A snapshot whose account is
// missing from the directory is re-admitted, unless its email now belongs
// to another account; then the session is dropped.
func (s *IdentityService) restore(ctx context.Context) {
	snap, ok := s.session.Restore(ctx)
	if !ok {
		return
	}

	if current, exists := s.dir.Get(snap.ID); exists {
		s.session.Sync(ctx, current)
		return
	}

	if err := s.dir.Add(snap); err != nil {
		s.log.Warn(ctx, "dropping restored session", "account_id", snap.ID, "error", err)
		s.session.Clear(ctx)
		return
	}
	s.persist(ctx, snap)
	s.log.Info(ctx, "restored session account re-admitted", "account_id", snap.ID)
}

// Reset tears the in-memory state down. Durable data is left alone, so a
// following Init reproduces the persisted state.
func (s *IdentityService) Reset(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dir.Reset()
	s.session.Forget()
	s.log.Debug(ctx, "identity state reset")
}

// Login authenticates by email and password. Failures are reported in this
// order: common.ErrNotFound, common.ErrInvalidCredential,
// common.ErrAccountSuspended. On success the account becomes the session.
func (s *IdentityService) Login(ctx context.Context, email, password string) (models.Role, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.dir.FindByEmail(email)
	if !ok {
		s.metrics.Login(obs.OutcomeNotFound)
		return "", common.ErrNotFound
	}

	if err := cryptox.ComparePassword(a.Password, password); err != nil {
		if !errors.Is(err, cryptox.ErrMismatchedPassword) {
			s.log.Error(ctx, "stored password hash unusable", "account_id", a.ID, "error", err)
		}
		s.metrics.Login(obs.OutcomeBadSecret)
		return "", common.ErrInvalidCredential
	}

	if a.Status == models.StatusSuspended {
		s.metrics.Login(obs.OutcomeSuspended)
		return "", common.ErrAccountSuspended
	}

	s.session.Adopt(ctx, a)
	s.metrics.Login(obs.OutcomeSuccess)
	s.log.Info(ctx, "login succeeded", "account_id", a.ID, "role", a.Role())
	return a.Role(), nil
}

// Signup registers a customer and signs it in. An email already present in
// any letter case yields common.ErrDuplicateEmail and changes nothing.
func (s *IdentityService) Signup(ctx context.Context, data models.SignupData) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.dir.FindByEmail(data.Email); exists {
		s.metrics.Signup(obs.OutcomeDuplicate)
		return common.ErrDuplicateEmail
	}

	welcome := ledger.NewMessage(ledger.WelcomeText, models.MessageGeneral, s.now())
	a, err := s.create(ctx, data, false, []models.Message{welcome})
	if err != nil {
		s.metrics.Signup(obs.OutcomeError)
		return err
	}

	s.session.Adopt(ctx, a)
	s.metrics.Signup(obs.OutcomeSuccess)
	s.log.Info(ctx, "signup succeeded", "account_id", a.ID)
	return nil
}

// CreateAdmin adds an administrator account without signing it in.
func (s *IdentityService) CreateAdmin(ctx context.Context, data models.SignupData) (models.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.dir.FindByEmail(data.Email); exists {
		return models.Account{}, common.ErrDuplicateEmail
	}
	a, err := s.create(ctx, data, true, nil)
	if err != nil {
		return models.Account{}, err
	}
	s.log.Info(ctx, "admin created", "account_id", a.ID)
	return a, nil
}

func (s *IdentityService) create(ctx context.Context, data models.SignupData, admin bool, inbox []models.Message) (models.Account, error) {
	hash, err := cryptox.HashPassword(data.Password, s.cost)
	if err != nil {
		return models.Account{}, fmt.Errorf("hash password: %w", err)
	}
	if inbox == nil {
		inbox = []models.Message{}
	}

	a := models.Account{
		ID:            ids.NewAccountID(),
		Name:          data.Name,
		Email:         data.Email,
		Password:      hash,
		IsAdmin:       admin,
		Phone:         data.Phone,
		Status:        models.StatusActive,
		Notifications: inbox,
		CreatedAt:     s.now().UTC(),
	}
	if err := s.dir.Add(a); err != nil {
		return models.Account{}, err
	}
	s.persist(ctx, a)
	s.metrics.SetAccounts(s.dir.Len())
	return a, nil
}

// Logout ends the session and deletes its mirror. The directory is untouched.
func (s *IdentityService) Logout(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if id, ok := s.session.ActiveID(); ok {
		s.log.Info(ctx, "logout", "account_id", id)
	}
	s.session.Clear(ctx)
}

// CurrentUser returns the signed-in account as currently stored in the directory.
func (s *IdentityService) CurrentUser() (models.Account, bool) {
	id, ok := s.session.ActiveID()
	if !ok {
		return models.Account{}, false
	}
	return s.dir.Get(id)
}

// IsAuthenticated reports whether a session is active.
func (s *IdentityService) IsAuthenticated() bool {
	_, ok := s.CurrentUser()
	return ok
}

// AllUsers lists every account in the directory.
func (s *IdentityService) AllUsers() []models.Account {
	return s.dir.List()
}

// User returns one account by id.
func (s *IdentityService) User(id string) (models.Account, bool) {
	return s.dir.Get(id)
}

// AddNotification pushes a status message to userID's ledger.
func (s *IdentityService) AddNotification(ctx context.Context, userID, text string) (models.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	msg, a, ok := s.dir.PushNotification(userID, text, models.MessageStatus)
	if !ok {
		return models.Message{}, common.ErrNotFound
	}
	s.committed(ctx, a)
	s.metrics.NotificationPushed()
	return msg, nil
}

// MarkAsRead flags a message of the signed-in account as read. Unknown
// message ids are ignored.
func (s *IdentityService) MarkAsRead(ctx context.Context, messageID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, ok := s.session.ActiveID()
	if !ok {
		return common.ErrNoSession
	}
	a, ok := s.dir.MarkAsRead(id, messageID)
	if !ok {
		return common.ErrNotFound
	}
	s.committed(ctx, a)
	return nil
}

// ClearNotifications empties the signed-in account's ledger.
func (s *IdentityService) ClearNotifications(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, ok := s.session.ActiveID()
	if !ok {
		return common.ErrNoSession
	}
	a, ok := s.dir.ClearNotifications(id)
	if !ok {
		return common.ErrNotFound
	}
	s.committed(ctx, a)
	return nil
}

// ToggleUserStatus flips an account between Active and Suspended and
// returns the new status. A suspended account that is signed in stays
// signed in; it is refused at its next login.
func (s *IdentityService) ToggleUserStatus(ctx context.Context, userID string) (models.Status, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.dir.ToggleStatus(userID)
	if !ok {
		return "", common.ErrNotFound
	}
	s.committed(ctx, a)
	s.metrics.StatusChanged(string(a.Status))
	s.log.Info(ctx, "account status changed", "account_id", a.ID, "status", a.Status)
	return a.Status, nil
}

// UpdateUser merges a partial profile update into userID.
func (s *IdentityService) UpdateUser(ctx context.Context, userID string, patch models.AccountPatch) (models.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, err := s.dir.UpdateFields(userID, patch)
	if err != nil {
		return models.Account{}, err
	}
	s.committed(ctx, a)
	return a, nil
}

// UpdatePassword stores a new password for userID.
func (s *IdentityService) UpdatePassword(ctx context.Context, userID, newPassword string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.dir.Get(userID); !ok {
		return common.ErrNotFound
	}
	hash, err := cryptox.HashPassword(newPassword, s.cost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	a, ok := s.dir.SetPassword(userID, hash)
	if !ok {
		return common.ErrNotFound
	}
	s.committed(ctx, a)
	s.log.Info(ctx, "password changed", "account_id", a.ID)
	return nil
}

// DeleteUser removes a customer account. Admin accounts are refused with
// common.ErrProtectedAccount. Deleting the signed-in account logs it out.
func (s *IdentityService) DeleteUser(ctx context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.dir.Delete(userID); err != nil {
		return err
	}
	if s.accounts != nil {
		sctx, cancel := context.WithTimeout(ctx, s.timeout)
		if err := s.accounts.Delete(sctx, userID); err != nil {
			s.log.Error(ctx, "account delete not persisted", "account_id", userID, "error", err)
		}
		cancel()
	}
	if s.session.IsActive(userID) {
		s.session.Clear(ctx)
	}
	s.metrics.SetAccounts(s.dir.Len())
	s.log.Info(ctx, "account deleted", "account_id", userID)
	return nil
}

// committed propagates a directory change: durable directory row first,
// then the session mirror if a is the active account.
func (s *IdentityService) committed(ctx context.Context, a models.Account) {
	s.persist(ctx, a)
	s.session.Sync(ctx, a)
}

func (s *IdentityService) persist(ctx context.Context, a models.Account) {
	if s.accounts == nil {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	if err := s.accounts.Save(ctx, a); err != nil {
		s.log.Error(ctx, "account change not persisted", "account_id", a.ID, "error", err)
	}
}
