package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spectraretail/spectra-pos/app/models"
	"github.com/spectraretail/spectra-pos/pkg/auth"
)

func TestRegisterAndAuthenticate(t *testing.T) {
	svc := NewAuthService(newMemStaffStore())

	staff, err := svc.Register(RegisterInput{
		Email:    "clerk@spectra.com",
		Password: "secret1",
	})
	require.NoError(t, err)
	assert.Equal(t, models.RoleCashier, staff.Role)
	assert.NotEqual(t, "secret1", staff.Password) // stored as a hash

	got, token, err := svc.Authenticate("clerk@spectra.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, staff.ID, got.ID)
	assert.NotEmpty(t, token)

	claims, err := auth.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, staff.ID, claims.StaffID)
	assert.Equal(t, models.RoleCashier, claims.Role)
}

func TestRegisterKeepsExplicitRole(t *testing.T) {
	svc := NewAuthService(newMemStaffStore())

	staff, err := svc.Register(RegisterInput{
		Email:    "boss@spectra.com",
		Password: "secret1",
		Role:     models.RoleOwner,
	})
	require.NoError(t, err)
	assert.Equal(t, models.RoleOwner, staff.Role)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := NewAuthService(newMemStaffStore())

	_, err := svc.Register(RegisterInput{Email: "clerk@spectra.com", Password: "secret1"})
	require.NoError(t, err)

	_, err = svc.Register(RegisterInput{Email: "clerk@spectra.com", Password: "other99"})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestAuthenticateRejections(t *testing.T) {
	svc := NewAuthService(newMemStaffStore())
	_, err := svc.Register(RegisterInput{Email: "clerk@spectra.com", Password: "secret1"})
	require.NoError(t, err)

	// Unknown email and wrong password look identical to the caller.
	_, _, err = svc.Authenticate("nobody@spectra.com", "secret1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = svc.Authenticate("clerk@spectra.com", "wrong99")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestResetPassword(t *testing.T) {
	svc := NewAuthService(newMemStaffStore())
	_, err := svc.Register(RegisterInput{Email: "clerk@spectra.com", Password: "secret1"})
	require.NoError(t, err)

	require.NoError(t, svc.ResetPassword("clerk@spectra.com", "newpass2"))

	_, _, err = svc.Authenticate("clerk@spectra.com", "secret1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = svc.Authenticate("clerk@spectra.com", "newpass2")
	assert.NoError(t, err)
}

func TestResetPasswordUnknownEmail(t *testing.T) {
	svc := NewAuthService(newMemStaffStore())

	err := svc.ResetPassword("nobody@spectra.com", "whatever1")
	assert.ErrorIs(t, err, ErrStaffNotFound)
}
