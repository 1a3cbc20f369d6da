// Package validation holds the input checks the UI runs before calling the
// identity service. The service itself trusts its input, so every caller
// that accepts user data must go through these functions first.
package validation

import (
	"fmt"
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/nyaruka/phonenumbers"

	"github.com/dmitrijs2005/inodesk/internal/common"
	"github.com/dmitrijs2005/inodesk/internal/models"
)

// MinPasswordLength is the shortest accepted password.
const MinPasswordLength = 6

// MaxPasswordBytes is bcrypt's input limit.
const MaxPasswordBytes = 72

// phonePattern accepts local mobile numbers: 10 digits starting with 09.
var phonePattern = regexp.MustCompile(`^09\d{8}$`)

var (
	passwordRule = validation.Length(MinPasswordLength, 0).Error(
		fmt.Sprintf("must be at least %d characters", MinPasswordLength))
	passwordBytesRule = validation.By(func(value interface{}) error {
		if s, _ := value.(string); len(s) > MaxPasswordBytes {
			return fmt.Errorf("must be at most %d bytes", MaxPasswordBytes)
		}
		return nil
	})
	phoneRule = validation.Match(phonePattern).Error("must be 10 digits and start with 09")
)

// Signup checks a signup form.
func Signup(d models.SignupData) error {
	return wrap(validation.ValidateStruct(&d,
		validation.Field(&d.Name, validation.Required),
		validation.Field(&d.Email, validation.Required, is.Email),
		validation.Field(&d.Password, validation.Required, passwordRule, passwordBytesRule),
		validation.Field(&d.Phone, validation.Required, phoneRule),
	))
}

// Admin checks the form used to create an admin account. Phone is optional.
func Admin(d models.SignupData) error {
	return wrap(validation.ValidateStruct(&d,
		validation.Field(&d.Name, validation.Required),
		validation.Field(&d.Email, validation.Required, is.Email),
		validation.Field(&d.Password, validation.Required, passwordRule, passwordBytesRule),
		validation.Field(&d.Phone, phoneRule),
	))
}

// profileForm mirrors AccountPatch with plain strings so ozzo can walk it.
type profileForm struct {
	Name  string
	Email string
	Phone string
}

// Profile checks the fields present in a profile patch.
func Profile(p models.AccountPatch) error {
	var f profileForm
	var fields []*validation.FieldRules
	if p.Name != nil {
		f.Name = *p.Name
		fields = append(fields, validation.Field(&f.Name, validation.Required))
	}
	if p.Email != nil {
		f.Email = *p.Email
		fields = append(fields, validation.Field(&f.Email, validation.Required, is.Email))
	}
	if p.Phone != nil {
		f.Phone = *p.Phone
		fields = append(fields, validation.Field(&f.Phone, validation.Required, phoneRule))
	}
	return wrap(validation.ValidateStruct(&f, fields...))
}

// PasswordChange checks a new password and its confirmation.
func PasswordChange(newPassword, confirm string) error {
	if newPassword != confirm {
		return fmt.Errorf("%w: passwords mismatch", common.ErrValidation)
	}
	return wrap(validation.Validate(newPassword, validation.Required, passwordRule, passwordBytesRule))
}

// FormatPhone renders a local number in E.164 form for display. Numbers that
// cannot be parsed are returned unchanged.
func FormatPhone(phone string) string {
	if phone == "" {
		return ""
	}
	num, err := phonenumbers.Parse(phone, common.DefaultPhoneRegion)
	if err != nil {
		return phone
	}
	return phonenumbers.Format(num, phonenumbers.E164)
}

func wrap(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %v", common.ErrValidation, err)
}
