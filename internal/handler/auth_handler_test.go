package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/kumusta-app/kumusta-api/internal/middleware"
	"github.com/kumusta-app/kumusta-api/internal/models"
	"github.com/kumusta-app/kumusta-api/internal/service"
	"github.com/kumusta-app/kumusta-api/internal/store"
)

type nopPictureStorage struct{}

func (nopPictureStorage) Save(filename string, data []byte) (string, error) { return filename, nil }
func (nopPictureStorage) Delete(filename string) error                      { return nil }

func newTestAuthService(t *testing.T) (*service.AuthService, *store.UserStore) {
	t.Helper()
	users := store.NewUserStore()
	svc := service.NewAuthService(users, nopPictureStorage{}, validator.New(), zap.NewNop(), service.AuthConfig{
		AccessTokenSecret:  "secret",
		AccessTokenExpiry:  time.Hour,
		RefreshTokenExpiry: 24 * time.Hour,
	})
	_, err := svc.Register(models.RegisterRequest{
		FullName:   "Ana Cruz",
		Username:   "ana",
		Password:   "password",
		Picture:    []byte{0x1},
		PictureExt: ".png",
	})
	require.NoError(t, err)
	return svc, users
}

func TestAuthHandlerLoginSuccess(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc, _ := newTestAuthService(t)
	handler := NewAuthHandler(svc)

	body, _ := json.Marshal(map[string]string{"username": "ana", "password": "password"})
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/auth/login", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	handler.Login(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "access_token")
	assert.NotContains(t, w.Body.String(), "password_hash")
}

func TestAuthHandlerLoginBadCredentials(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc, _ := newTestAuthService(t)
	handler := NewAuthHandler(svc)

	body, _ := json.Marshal(map[string]string{"username": "ana", "password": "nope"})
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/auth/login", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	handler.Login(c)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthHandlerLoginMissingPayload(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc, _ := newTestAuthService(t)
	handler := NewAuthHandler(svc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/auth/login", bytes.NewReader([]byte("{}")))
	c.Request.Header.Set("Content-Type", "application/json")

	handler.Login(c)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuthHandlerMeRequiresClaims(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc, _ := newTestAuthService(t)
	handler := NewAuthHandler(svc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/auth/me", nil)

	handler.Me(c)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthHandlerMe(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc, _ := newTestAuthService(t)
	handler := NewAuthHandler(svc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/auth/me", nil)
	c.Set(middleware.ContextUserKey, &models.JWTClaims{Username: "ana"})

	handler.Me(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "ANA CRUZ")
}

func TestJWTMiddlewareProtectsRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc, _ := newTestAuthService(t)

	router := gin.New()
	router.GET("/secure", middleware.JWT(svc), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	// no token
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/secure", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// garbage token
	w = httptest.NewRecorder()
	req, _ = http.NewRequest(http.MethodGet, "/secure", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// valid token
	login, err := svc.Login(models.LoginRequest{Username: "ana", Password: "password"})
	require.NoError(t, err)
	w = httptest.NewRecorder()
	req, _ = http.NewRequest(http.MethodGet, "/secure", nil)
	req.Header.Set("Authorization", "Bearer "+login.AccessToken)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}
