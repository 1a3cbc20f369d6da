package cli

import (
	"context"

	"github.com/dmitrijs2005/inodesk/internal/common"
	"github.com/dmitrijs2005/inodesk/internal/ledger"
	"github.com/dmitrijs2005/inodesk/internal/models"
	"github.com/dmitrijs2005/inodesk/internal/validation"
)

func (a *App) password(prompt string) (string, error) {
	pw, err := GetPassword(prompt, a.out)
	if err != nil {
		return "", err
	}
	defer common.WipeByteArray(pw)
	return string(pw), nil
}

// readSignup collects a signup form and the repeated password.
func (a *App) readSignup(withPhone bool) (models.SignupData, string, error) {
	var d models.SignupData
	var err error

	if d.Name, err = GetSimpleText(a.reader, "-Enter full name", a.out); err != nil {
		return d, "", err
	}
	if d.Email, err = GetSimpleText(a.reader, "-Enter email", a.out); err != nil {
		return d, "", err
	}
	if withPhone {
		if d.Phone, err = GetSimpleText(a.reader, "-Enter phone (09XXXXXXXX)", a.out); err != nil {
			return d, "", err
		}
	}
	if d.Password, err = a.password("-Enter password"); err != nil {
		return d, "", err
	}
	confirm, err := a.password("-Confirm password")
	if err != nil {
		return d, "", err
	}
	return d, confirm, nil
}

func (a *App) Signup(ctx context.Context) error {
	d, confirm, err := a.readSignup(true)
	if err != nil {
		return a.fail(err)
	}
	if err := validation.PasswordChange(d.Password, confirm); err != nil {
		return a.fail(err)
	}
	if err := validation.Signup(d); err != nil {
		return a.fail(err)
	}

	if err := a.service.Signup(ctx, d); err != nil {
		return a.fail(err)
	}
	a.println("Welcome,", d.Name+"!")
	return nil
}

func (a *App) Login(ctx context.Context) error {
	email, err := GetSimpleText(a.reader, "-Enter email", a.out)
	if err != nil {
		return a.fail(err)
	}
	password, err := a.password("-Enter password")
	if err != nil {
		return a.fail(err)
	}

	role, err := a.service.Login(ctx, email, password)
	if err != nil {
		return a.fail(err)
	}
	a.println("Logged in as", role)
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	a.service.Logout(ctx)
	a.println("Logged out")
	return nil
}

func (a *App) WhoAmI(ctx context.Context) error {
	u, ok := a.service.CurrentUser()
	if !ok {
		return a.fail(common.ErrNoSession)
	}
	a.println("Name:  ", u.Name)
	a.println("Email: ", u.Email)
	if u.Phone != "" {
		a.println("Phone: ", validation.FormatPhone(u.Phone))
	}
	a.println("Role:  ", u.Role())
	a.println("Status:", u.Status)
	a.println("Unread:", ledger.Unread(u.Notifications))
	return nil
}

// Edit updates the signed-in profile. An empty answer keeps the field.
func (a *App) Edit(ctx context.Context) error {
	u, ok := a.service.CurrentUser()
	if !ok {
		return a.fail(common.ErrNoSession)
	}

	var patch models.AccountPatch
	prompts := []struct {
		text  string
		field **string
	}{
		{"-New name (" + u.Name + ")", &patch.Name},
		{"-New email (" + u.Email + ")", &patch.Email},
		{"-New phone (" + u.Phone + ")", &patch.Phone},
	}
	for _, p := range prompts {
		v, err := GetSimpleText(a.reader, p.text, a.out)
		if err != nil {
			return a.fail(err)
		}
		if v != "" {
			*p.field = &v
		}
	}

	if patch.IsEmpty() {
		a.println("Nothing to change")
		return nil
	}
	if err := validation.Profile(patch); err != nil {
		return a.fail(err)
	}
	if _, err := a.service.UpdateUser(ctx, u.ID, patch); err != nil {
		return a.fail(err)
	}
	a.println("Profile updated")
	return nil
}

func (a *App) Passwd(ctx context.Context) error {
	u, ok := a.service.CurrentUser()
	if !ok {
		return a.fail(common.ErrNoSession)
	}
	pw, err := a.password("-New password")
	if err != nil {
		return a.fail(err)
	}
	confirm, err := a.password("-Confirm password")
	if err != nil {
		return a.fail(err)
	}
	if err := validation.PasswordChange(pw, confirm); err != nil {
		return a.fail(err)
	}
	if err := a.service.UpdatePassword(ctx, u.ID, pw); err != nil {
		return a.fail(err)
	}
	a.println("Password changed")
	return nil
}
