package validation

import (
	"strings"
	"testing"

	"github.com/dmitrijs2005/inodesk/internal/common"
	"github.com/dmitrijs2005/inodesk/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestSignup(t *testing.T) {
	valid := models.SignupData{Name: "Abel", Email: "abel@x.com", Password: "secret1", Phone: "0912345678"}

	tests := []struct {
		name    string
		mutate  func(d *models.SignupData)
		wantErr string
	}{
		{name: "valid", mutate: func(d *models.SignupData) {}},
		{name: "short password", mutate: func(d *models.SignupData) { d.Password = "12345" }, wantErr: "at least 6"},
		{name: "exactly six", mutate: func(d *models.SignupData) { d.Password = "123456" }},
		{name: "bcrypt limit", mutate: func(d *models.SignupData) { d.Password = strings.Repeat("a", MaxPasswordBytes) }},
		{name: "over bcrypt limit", mutate: func(d *models.SignupData) { d.Password = strings.Repeat("a", MaxPasswordBytes+1) }, wantErr: "at most 72 bytes"},
		{name: "multibyte over limit", mutate: func(d *models.SignupData) { d.Password = strings.Repeat("ß", 37) }, wantErr: "at most 72 bytes"},
		{name: "phone prefix", mutate: func(d *models.SignupData) { d.Phone = "0812345678" }, wantErr: "start with 09"},
		{name: "phone length", mutate: func(d *models.SignupData) { d.Phone = "091234567" }, wantErr: "start with 09"},
		{name: "phone letters", mutate: func(d *models.SignupData) { d.Phone = "09123456ab" }, wantErr: "start with 09"},
		{name: "missing phone", mutate: func(d *models.SignupData) { d.Phone = "" }, wantErr: "cannot be blank"},
		{name: "bad email", mutate: func(d *models.SignupData) { d.Email = "not-an-email" }, wantErr: "valid email"},
		{name: "missing name", mutate: func(d *models.SignupData) { d.Name = "" }, wantErr: "cannot be blank"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := valid
			tt.mutate(&d)
			err := Signup(d)
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, common.ErrValidation)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestAdmin_PhoneOptional(t *testing.T) {
	d := models.SignupData{Name: "Ops", Email: "ops@x.com", Password: "admin@123"}
	require.NoError(t, Admin(d))

	d.Phone = "12"
	require.ErrorIs(t, Admin(d), common.ErrValidation)
}

func TestProfile_OnlyPresentFieldsChecked(t *testing.T) {
	require.NoError(t, Profile(models.AccountPatch{}))
	require.NoError(t, Profile(models.AccountPatch{Name: strPtr("Abel")}))
	require.NoError(t, Profile(models.AccountPatch{Phone: strPtr("0911223344"), Email: strPtr("a@x.com")}))

	err := Profile(models.AccountPatch{Phone: strPtr("12345")})
	require.ErrorIs(t, err, common.ErrValidation)

	err = Profile(models.AccountPatch{Name: strPtr("")})
	require.ErrorIs(t, err, common.ErrValidation)

	err = Profile(models.AccountPatch{Email: strPtr("nope")})
	require.ErrorIs(t, err, common.ErrValidation)
}

func TestPasswordChange(t *testing.T) {
	require.NoError(t, PasswordChange("secret2", "secret2"))

	err := PasswordChange("secret2", "secret3")
	require.ErrorIs(t, err, common.ErrValidation)
	assert.Contains(t, err.Error(), "mismatch")

	err = PasswordChange("abc", "abc")
	require.ErrorIs(t, err, common.ErrValidation)

	long := strings.Repeat("x", MaxPasswordBytes+1)
	err = PasswordChange(long, long)
	require.ErrorIs(t, err, common.ErrValidation)
	assert.Contains(t, err.Error(), "at most 72 bytes")
}

func TestFormatPhone(t *testing.T) {
	assert.Equal(t, "+251912345678", FormatPhone("0912345678"))
	assert.Equal(t, "", FormatPhone(""))
	assert.Equal(t, "garbage", FormatPhone("garbage"))
}
