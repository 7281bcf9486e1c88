package services

import (
	"testing"

	"github.com/MdAyanBadar/interview-prep/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAndValidateToken(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, "test-secret")

	token, err := svc.Register("Jane", "jane@example.com", "hunter22")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, role, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, models.RoleUser, role)

	user, err := svc.Profile(userID)
	require.NoError(t, err)
	assert.Equal(t, "jane@example.com", user.Email)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, "test-secret")

	_, err := svc.Register("Jane", "jane@example.com", "hunter22")
	require.NoError(t, err)

	_, err = svc.Register("Impostor", "jane@example.com", "other")
	assert.ErrorIs(t, err, ErrAlreadyExists)
}

func TestLogin(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, "test-secret")

	_, err := svc.Register("Jane", "jane@example.com", "hunter22")
	require.NoError(t, err)

	token, err := svc.Login("jane@example.com", "hunter22")
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	_, err = svc.Login("jane@example.com", "wrong")
	assert.Error(t, err)

	_, err = svc.Login("nobody@example.com", "hunter22")
	assert.Error(t, err)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, "test-secret")

	_, _, err := svc.ValidateToken("not-a-token")
	assert.Error(t, err)

	other := NewAuthService(db, "different-secret")
	token, err := other.GenerateToken(1, models.RoleUser)
	require.NoError(t, err)

	_, _, err = svc.ValidateToken(token)
	assert.Error(t, err)
}
