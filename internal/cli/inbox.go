package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/inodesk/internal/common"
	"github.com/dmitrijs2005/inodesk/internal/ledger"
)

func (a *App) Inbox(ctx context.Context) error {
	u, ok := a.service.CurrentUser()
	if !ok {
		return a.fail(common.ErrNoSession)
	}
	if len(u.Notifications) == 0 {
		a.println("No messages")
		return nil
	}
	for _, m := range u.Notifications {
		mark := " "
		if !m.IsRead {
			mark = "*"
		}
		a.println(fmt.Sprintf("%s %s  %s  [%s] %s",
			mark, m.ID, m.Timestamp.Local().Format(time.DateTime), m.Type, m.Text))
	}
	return nil
}

// Read marks one message of the signed-in account as read. Ids that are not
// in the inbox are reported without touching the ledger.
func (a *App) Read(ctx context.Context, messageID string) error {
	u, ok := a.service.CurrentUser()
	if !ok {
		return a.fail(common.ErrNoSession)
	}
	if _, found := ledger.Find(u.Notifications, messageID); !found {
		a.println("Message not found:", messageID)
		return common.ErrNotFound
	}
	if err := a.service.MarkAsRead(ctx, messageID); err != nil {
		return a.fail(err)
	}
	return nil
}

func (a *App) Clear(ctx context.Context) error {
	if err := a.service.ClearNotifications(ctx); err != nil {
		return a.fail(err)
	}
	a.println("Inbox cleared")
	return nil
}
