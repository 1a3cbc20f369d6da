package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/inodesk/internal/common"
	"github.com/dmitrijs2005/inodesk/internal/validation"
)

func (a *App) Users(ctx context.Context) error {
	for _, u := range a.service.AllUsers() {
		a.println(fmt.Sprintf("%s  %-20s %-28s %-8s %s", u.ID, u.Name, u.Email, u.Role(), u.Status))
	}
	return nil
}

// Suspend toggles a customer between Active and Suspended. Admin accounts
// are not offered the toggle.
func (a *App) Suspend(ctx context.Context, userID string) error {
	u, ok := a.service.User(userID)
	if !ok {
		return a.fail(common.ErrNotFound)
	}
	if u.IsAdmin {
		a.println("Admin accounts cannot be suspended.")
		return common.ErrProtectedAccount
	}

	status, err := a.service.ToggleUserStatus(ctx, userID)
	if err != nil {
		return a.fail(err)
	}
	a.println(u.Name, "is now", status)
	return nil
}

func (a *App) Notify(ctx context.Context, userID, text string) error {
	msg, err := a.service.AddNotification(ctx, userID, text)
	if err != nil {
		return a.fail(err)
	}
	a.println("Sent", msg.ID)
	return nil
}

func (a *App) MkAdmin(ctx context.Context) error {
	d, confirm, err := a.readSignup(false)
	if err != nil {
		return a.fail(err)
	}
	if err := validation.PasswordChange(d.Password, confirm); err != nil {
		return a.fail(err)
	}
	if err := validation.Admin(d); err != nil {
		return a.fail(err)
	}

	u, err := a.service.CreateAdmin(ctx, d)
	if err != nil {
		return a.fail(err)
	}
	a.println("Admin created:", u.ID)
	return nil
}

func (a *App) Remove(ctx context.Context, userID string) error {
	if err := a.service.DeleteUser(ctx, userID); err != nil {
		return a.fail(err)
	}
	a.println("Removed", userID)
	return nil
}
