package service

import (
	"errors"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/kumusta-app/kumusta-api/internal/models"
	"github.com/kumusta-app/kumusta-api/internal/store"
	appErrors "github.com/kumusta-app/kumusta-api/pkg/errors"
)

type mockPictureStorage struct {
	saved   map[string][]byte
	deleted []string
	saveErr error
}

func newMockPictureStorage() *mockPictureStorage {
	return &mockPictureStorage{saved: make(map[string][]byte)}
}

func (m *mockPictureStorage) Save(filename string, data []byte) (string, error) {
	if m.saveErr != nil {
		return "", m.saveErr
	}
	m.saved[filename] = data
	return filename, nil
}

func (m *mockPictureStorage) Delete(filename string) error {
	m.deleted = append(m.deleted, filename)
	return nil
}

func newTestAuthService(users *store.UserStore, pictures *mockPictureStorage) *AuthService {
	return NewAuthService(users, pictures, validator.New(), zap.NewNop(), AuthConfig{
		AccessTokenSecret:  "secret",
		AccessTokenExpiry:  time.Hour,
		RefreshTokenExpiry: 24 * time.Hour,
		Issuer:             "kumusta-api",
	})
}

func registerRequest() models.RegisterRequest {
	return models.RegisterRequest{
		FullName:   "Ana Cruz",
		Username:   "ana",
		Password:   "password",
		Picture:    []byte{0x89, 0x50},
		PictureExt: ".png",
	}
}

func TestAuthServiceRegisterSuccess(t *testing.T) {
	users := store.NewUserStore()
	pictures := newMockPictureStorage()
	svc := newTestAuthService(users, pictures)

	info, err := svc.Register(registerRequest())
	require.NoError(t, err)
	assert.Equal(t, "ANA CRUZ", info.FullName)
	assert.Equal(t, "ana.png", info.PictureFile)
	assert.Equal(t, models.StatusOffline, info.Status)
	assert.Contains(t, pictures.saved, "ana.png")

	stored, err := users.Get("ana")
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("password")))

	trail := users.AuditTrail()
	require.Len(t, trail, 1)
	assert.Equal(t, models.AuditActionRegister, trail[0].Action)
}

func TestAuthServiceRegisterDuplicateUsername(t *testing.T) {
	users := store.NewUserStore()
	svc := newTestAuthService(users, newMockPictureStorage())

	_, err := svc.Register(registerRequest())
	require.NoError(t, err)

	_, err = svc.Register(registerRequest())
	assert.ErrorIs(t, err, appErrors.ErrDuplicateUsername)
}

func TestAuthServiceRegisterRejectsBadExtension(t *testing.T) {
	svc := newTestAuthService(store.NewUserStore(), newMockPictureStorage())

	req := registerRequest()
	req.PictureExt = ".exe"
	_, err := svc.Register(req)
	assert.ErrorIs(t, err, appErrors.ErrValidation)
}

func TestAuthServiceRegisterRollsBackOnPictureFailure(t *testing.T) {
	users := store.NewUserStore()
	pictures := newMockPictureStorage()
	pictures.saveErr = errors.New("disk full")
	svc := newTestAuthService(users, pictures)

	_, err := svc.Register(registerRequest())
	require.Error(t, err)

	assert.False(t, users.Exists("ana"))
}

func TestAuthServiceLoginSuccessResetsPresence(t *testing.T) {
	users := store.NewUserStore()
	svc := newTestAuthService(users, newMockPictureStorage())
	_, err := svc.Register(registerRequest())
	require.NoError(t, err)
	require.NoError(t, users.SetStatus("ana", models.StatusStudying))

	res, err := svc.Login(models.LoginRequest{Username: "ana", Password: "password"})
	require.NoError(t, err)
	assert.NotEmpty(t, res.AccessToken)
	assert.NotEmpty(t, res.RefreshToken)
	assert.Equal(t, models.StatusOffline, res.User.Status)

	stored, err := users.Get("ana")
	require.NoError(t, err)
	assert.Equal(t, models.StatusOffline, stored.Status)
}

func TestAuthServiceLoginWrongPassword(t *testing.T) {
	users := store.NewUserStore()
	svc := newTestAuthService(users, newMockPictureStorage())
	_, err := svc.Register(registerRequest())
	require.NoError(t, err)

	_, err = svc.Login(models.LoginRequest{Username: "ana", Password: "nope"})
	assert.ErrorIs(t, err, appErrors.ErrInvalidCredentials)

	_, err = svc.Login(models.LoginRequest{Username: "ghost", Password: "nope"})
	assert.ErrorIs(t, err, appErrors.ErrInvalidCredentials)
}

func TestAuthServiceValidateTokenRoundTrip(t *testing.T) {
	users := store.NewUserStore()
	svc := newTestAuthService(users, newMockPictureStorage())
	_, err := svc.Register(registerRequest())
	require.NoError(t, err)

	res, err := svc.Login(models.LoginRequest{Username: "ana", Password: "password"})
	require.NoError(t, err)

	claims, err := svc.ValidateToken(res.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "ana", claims.Username)
	assert.Equal(t, "ANA CRUZ", claims.FullName)
}

func TestAuthServiceRefreshRotatesToken(t *testing.T) {
	users := store.NewUserStore()
	svc := newTestAuthService(users, newMockPictureStorage())
	_, err := svc.Register(registerRequest())
	require.NoError(t, err)

	login, err := svc.Login(models.LoginRequest{Username: "ana", Password: "password"})
	require.NoError(t, err)

	refreshed, err := svc.RefreshToken(models.RefreshTokenRequest{RefreshToken: login.RefreshToken})
	require.NoError(t, err)
	assert.NotEqual(t, login.RefreshToken, refreshed.RefreshToken)

	// the used token is revoked and cannot be replayed
	_, err = svc.RefreshToken(models.RefreshTokenRequest{RefreshToken: login.RefreshToken})
	assert.ErrorIs(t, err, appErrors.ErrUnauthorized)
}

func TestAuthServiceLogoutRevokesAndGoesOffline(t *testing.T) {
	users := store.NewUserStore()
	svc := newTestAuthService(users, newMockPictureStorage())
	_, err := svc.Register(registerRequest())
	require.NoError(t, err)

	login, err := svc.Login(models.LoginRequest{Username: "ana", Password: "password"})
	require.NoError(t, err)
	require.NoError(t, users.SetStatus("ana", models.StatusResting))

	require.NoError(t, svc.Logout("ana", login.RefreshToken, "127.0.0.1", "test"))

	stored, err := users.Get("ana")
	require.NoError(t, err)
	assert.Equal(t, models.StatusOffline, stored.Status)

	_, err = svc.RefreshToken(models.RefreshTokenRequest{RefreshToken: login.RefreshToken})
	assert.ErrorIs(t, err, appErrors.ErrUnauthorized)
}

func TestAuthServiceLogoutRejectsForeignToken(t *testing.T) {
	users := store.NewUserStore()
	svc := newTestAuthService(users, newMockPictureStorage())
	_, err := svc.Register(registerRequest())
	require.NoError(t, err)

	login, err := svc.Login(models.LoginRequest{Username: "ana", Password: "password"})
	require.NoError(t, err)

	err = svc.Logout("ben", login.RefreshToken, "", "")
	assert.ErrorIs(t, err, appErrors.ErrForbidden)
}

func TestAuthServiceSetStatusValidation(t *testing.T) {
	users := store.NewUserStore()
	svc := newTestAuthService(users, newMockPictureStorage())
	_, err := svc.Register(registerRequest())
	require.NoError(t, err)

	require.NoError(t, svc.SetStatus("ana", models.StatusStudying))
	assert.ErrorIs(t, svc.SetStatus("ana", "sleeping"), appErrors.ErrValidation)
}

func TestAuthServiceSetModeValidation(t *testing.T) {
	users := store.NewUserStore()
	svc := newTestAuthService(users, newMockPictureStorage())
	_, err := svc.Register(registerRequest())
	require.NoError(t, err)

	require.NoError(t, svc.SetMode("ana", models.ModeSchool))
	assert.ErrorIs(t, svc.SetMode("ana", "Library"), appErrors.ErrValidation)
}

func TestAuthServiceConfirmCredential(t *testing.T) {
	users := store.NewUserStore()
	svc := newTestAuthService(users, newMockPictureStorage())
	_, err := svc.Register(registerRequest())
	require.NoError(t, err)

	assert.NoError(t, svc.ConfirmCredential("ana", "password"))
	assert.ErrorIs(t, svc.ConfirmCredential("ana", "wrong"), appErrors.ErrInvalidCredentials)
}

func TestAuthServiceUpdatePictureReplacesOldFile(t *testing.T) {
	users := store.NewUserStore()
	pictures := newMockPictureStorage()
	svc := newTestAuthService(users, pictures)
	_, err := svc.Register(registerRequest())
	require.NoError(t, err)

	info, err := svc.UpdatePicture("ana", []byte{0xff}, ".jpg")
	require.NoError(t, err)
	assert.Equal(t, "ana.jpg", info.PictureFile)
	assert.Contains(t, pictures.deleted, "ana.png")
}
