// Package ledger implements the per-account notification log. A ledger is a
// newest-first slice of messages: new messages go to the head, read flags
// only move from false to true.
//
// Functions never modify their input slices; they return new ones, so a
// ledger handed out by the directory can be read without locking.
package ledger

import (
	"time"

	"github.com/dmitrijs2005/inodesk/internal/ids"
	"github.com/dmitrijs2005/inodesk/internal/models"
)

// WelcomeText is the message every new signup starts with.
const WelcomeText = "Welcome! Profile verified."

// NewMessage builds an unread message stamped with now.
func NewMessage(text string, kind models.MessageType, now time.Time) models.Message {
	return models.Message{
		ID:        ids.NewMessageID(now),
		Text:      text,
		Timestamp: now.UTC(),
		IsRead:    false,
		Type:      kind,
	}
}

// Push returns msgs with m inserted at the head.
func Push(msgs []models.Message, m models.Message) []models.Message {
	out := make([]models.Message, 0, len(msgs)+1)
	out = append(out, m)
	return append(out, msgs...)
}

// MarkRead returns a copy of msgs with the message id flagged as read and
// whether such a message exists. Marking an already read message is a no-op.
func MarkRead(msgs []models.Message, id string) ([]models.Message, bool) {
	out := make([]models.Message, len(msgs))
	copy(out, msgs)
	for i := range out {
		if out[i].ID == id {
			out[i].IsRead = true
			return out, true
		}
	}
	return out, false
}

// Find returns the message with the given id.
func Find(msgs []models.Message, id string) (models.Message, bool) {
	for _, m := range msgs {
		if m.ID == id {
			return m, true
		}
	}
	return models.Message{}, false
}

// Unread counts messages not yet read.
func Unread(msgs []models.Message) int {
	n := 0
	for _, m := range msgs {
		if !m.IsRead {
			n++
		}
	}
	return n
}
