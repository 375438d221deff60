package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/kumusta-app/kumusta-api/internal/middleware"
	"github.com/kumusta-app/kumusta-api/internal/models"
	"github.com/kumusta-app/kumusta-api/internal/service"
	"github.com/kumusta-app/kumusta-api/internal/store"
)

func newTestActivityHandler(t *testing.T) *ActivityHandler {
	t.Helper()
	users := store.NewUserStore()
	for _, name := range []string{"ana", "ben"} {
		require.NoError(t, users.Create(&models.User{Username: name, FullName: name}))
	}
	classrooms := store.NewClassroomStore()
	require.NoError(t, classrooms.Create(models.Classroom{Code: "ABC123", Name: "Math", Owner: "ana"}))
	require.NoError(t, classrooms.Join("ABC123", "ben"))

	svc := service.NewActivityService(store.NewActivityStore(), classrooms, users, service.NewInsightService(), nil, zap.NewNop(), time.UTC)
	return NewActivityHandler(svc)
}

func postJSON(t *testing.T, handler gin.HandlerFunc, path string, code string, username string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Params = gin.Params{{Key: "code", Value: code}}
	c.Set(middleware.ContextUserKey, &models.JWTClaims{Username: username})

	handler(c)
	return w
}

func TestActivityHandlerSubmitEmotion(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newTestActivityHandler(t)

	w := postJSON(t, handler.SubmitEmotion, "/classrooms/ABC123/emotions", "ABC123", "ben",
		map[string]string{"emotion": "Happy"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"already_submitted":false`)

	// same-day resubmit reports the original, still 200
	w = postJSON(t, handler.SubmitEmotion, "/classrooms/ABC123/emotions", "ABC123", "ben",
		map[string]string{"emotion": "Sad"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"already_submitted":true`)
	assert.Contains(t, w.Body.String(), `"emotion":"Happy"`)
}

func TestActivityHandlerSubmitEmotionNonMember(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newTestActivityHandler(t)

	w := postJSON(t, handler.SubmitEmotion, "/classrooms/ABC123/emotions", "ABC123", "cara",
		map[string]string{"emotion": "Happy"})
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestActivityHandlerSubmitEmotionUnknownLabel(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newTestActivityHandler(t)

	w := postJSON(t, handler.SubmitEmotion, "/classrooms/ABC123/emotions", "ABC123", "ben",
		map[string]string{"emotion": "Euphoric"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestActivityHandlerAnnouncementForbiddenForStudent(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newTestActivityHandler(t)

	w := postJSON(t, handler.PostAnnouncement, "/classrooms/ABC123/announcements", "ABC123", "ben",
		map[string]string{"text": "quiz tomorrow"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = postJSON(t, handler.PostAnnouncement, "/classrooms/ABC123/announcements", "ABC123", "ana",
		map[string]string{"text": "quiz tomorrow"})
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestActivityHandlerAnalyticsOwnerOnly(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newTestActivityHandler(t)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/classrooms/ABC123/analytics", nil)
	c.Params = gin.Params{{Key: "code", Value: "ABC123"}}
	c.Set(middleware.ContextUserKey, &models.JWTClaims{Username: "ben"})

	handler.Analytics(c)
	assert.Equal(t, http.StatusForbidden, w.Code)
}
