package ids

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAccountID_IsUUID(t *testing.T) {
	id := NewAccountID()
	_, err := uuid.Parse(id)
	require.NoError(t, err)
	assert.NotEqual(t, id, NewAccountID())
}

func TestNewMessageID_PrefixedAndUnique(t *testing.T) {
	now := time.Now()
	seen := make(map[string]struct{}, 100)
	prev := ""
	for i := 0; i < 100; i++ {
		id := NewMessageID(now)
		require.True(t, strings.HasPrefix(id, MessagePrefix), id)
		_, dup := seen[id]
		require.False(t, dup, "duplicate id %s", id)
		seen[id] = struct{}{}
		if prev != "" {
			assert.Greater(t, id, prev, "ids within one millisecond must increase")
		}
		prev = id
	}
}
