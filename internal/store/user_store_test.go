package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kumusta-app/kumusta-api/internal/models"
)

func TestUserStoreCreateRejectsDuplicate(t *testing.T) {
	s := NewUserStore()
	require.NoError(t, s.Create(&models.User{Username: "ana"}))
	assert.ErrorIs(t, s.Create(&models.User{Username: "ana"}), ErrDuplicate)
}

func TestUserStoreGetReturnsCopy(t *testing.T) {
	s := NewUserStore()
	require.NoError(t, s.Create(&models.User{Username: "ana", FullName: "ANA CRUZ"}))

	user, err := s.Get("ana")
	require.NoError(t, err)
	user.FullName = "CHANGED"

	again, err := s.Get("ana")
	require.NoError(t, err)
	assert.Equal(t, "ANA CRUZ", again.FullName)
}

func TestUserStoreSetStatusUnknownUser(t *testing.T) {
	s := NewUserStore()
	assert.ErrorIs(t, s.SetStatus("ghost", models.StatusStudying), ErrNotFound)
}

func TestUserStoreRefreshTokenLifecycle(t *testing.T) {
	s := NewUserStore()
	require.NoError(t, s.CreateRefreshToken(&models.RefreshToken{
		ID:       "id-1",
		Username: "ana",
		Token:    "tok",
	}))

	found, err := s.FindRefreshToken("tok")
	require.NoError(t, err)
	assert.False(t, found.Revoked)

	revokedAt := time.Now().UTC()
	require.NoError(t, s.RevokeRefreshToken("tok", revokedAt))

	found, err = s.FindRefreshToken("tok")
	require.NoError(t, err)
	assert.True(t, found.Revoked)
	require.NotNil(t, found.RevokedAt)
	assert.Equal(t, revokedAt, *found.RevokedAt)

	_, err = s.FindRefreshToken("missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUserStoreAuditTrail(t *testing.T) {
	s := NewUserStore()
	s.AppendAuditLog(models.AuditLog{ID: "1", Action: models.AuditActionLogin})
	s.AppendAuditLog(models.AuditLog{ID: "2", Action: models.AuditActionLogout})

	trail := s.AuditTrail()
	require.Len(t, trail, 2)
	assert.Equal(t, models.AuditActionLogin, trail[0].Action)
}
