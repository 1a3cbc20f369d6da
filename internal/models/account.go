// Package models defines the identity records kept by the directory:
// accounts, their ledger messages and the partial updates applied to them.
package models

import (
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Status is the administrative state of an account.
type Status string

const (
	StatusActive    Status = "Active"
	StatusSuspended Status = "Suspended"
)

// Toggled returns the opposite status. Anything that is not Active
// toggles to Active.
func (s Status) Toggled() Status {
	if s == StatusActive {
		return StatusSuspended
	}
	return StatusActive
}

// Role is what a successful login yields to the UI.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleCustomer Role = "customer"
)

// MessageType classifies a ledger message.
type MessageType string

const (
	MessageGeneral MessageType = "general"
	MessageStatus  MessageType = "status"
)

// Message is a single system message in an account's ledger.
type Message struct {
	ID        string      `json:"id"`
	Text      string      `json:"text"`
	Timestamp time.Time   `json:"timestamp"`
	IsRead    bool        `json:"isRead"`
	Type      MessageType `json:"type"`
}

// Account is an identity record. Password holds a bcrypt hash.
// Notifications are ordered newest first.
type Account struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	Password      string    `json:"password"`
	IsAdmin       bool      `json:"isAdmin"`
	Phone         string    `json:"phone,omitempty"`
	Status        Status    `json:"status"`
	Notifications []Message `json:"notifications"`
	CreatedAt     time.Time `json:"createdAt"`
}

// Role reports the role granted to the account on login.
func (a Account) Role() Role {
	if a.IsAdmin {
		return RoleAdmin
	}
	return RoleCustomer
}

// Clone returns a copy that shares no mutable state with a.
func (a Account) Clone() Account {
	c := a
	if a.Notifications != nil {
		c.Notifications = make([]Message, len(a.Notifications))
		copy(c.Notifications, a.Notifications)
	}
	return c
}

// SignupData is the caller-supplied payload for creating an account.
type SignupData struct {
	Name     string
	Email    string
	Password string
	Phone    string
}

// AccountPatch is a partial profile update. Nil fields are left untouched.
type AccountPatch struct {
	Name  *string
	Email *string
	Phone *string
}

// IsEmpty reports whether the patch changes nothing.
func (p AccountPatch) IsEmpty() bool {
	return p.Name == nil && p.Email == nil && p.Phone == nil
}

// Apply merges the patch into a.
func (p AccountPatch) Apply(a *Account) {
	if p.Name != nil {
		a.Name = *p.Name
	}
	if p.Email != nil {
		a.Email = *p.Email
	}
	if p.Phone != nil {
		a.Phone = *p.Phone
	}
}

// NormalizeEmail lowercases an email address for identity comparison.
// Lookup, duplicate checks and login must all go through it. Only letter
// case is ignored; "ß" and "ss" stay distinct.
func NormalizeEmail(email string) string {
	return cases.Lower(language.Und).String(email)
}
