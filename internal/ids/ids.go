// Package ids generates identifiers for accounts and ledger messages.
package ids

import (
	mathrand "math/rand"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
)

// MessagePrefix marks ledger message identifiers.
const MessagePrefix = "msg-"

var (
	entropyMu sync.Mutex
	entropy   = ulid.Monotonic(mathrand.New(mathrand.NewSource(time.Now().UnixNano())), 0)
)

// NewAccountID returns a random identifier for a new account.
func NewAccountID() string {
	return uuid.NewString()
}

// NewMessageID returns a sortable message identifier stamped with t.
// Identifiers generated within the same millisecond stay strictly increasing.
func NewMessageID(t time.Time) string {
	entropyMu.Lock()
	defer entropyMu.Unlock()
	return MessagePrefix + strings.ToLower(ulid.MustNew(ulid.Timestamp(t), entropy).String())
}
