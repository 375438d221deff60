package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/kumusta-app/kumusta-api/internal/models"
	"github.com/kumusta-app/kumusta-api/internal/store"
	appErrors "github.com/kumusta-app/kumusta-api/pkg/errors"
)

func TestDashboardServiceOverview(t *testing.T) {
	users := store.NewUserStore()
	require.NoError(t, users.Create(&models.User{Username: "ana", FullName: "ANA CRUZ", Status: models.StatusStudying}))
	require.NoError(t, users.Create(&models.User{Username: "ben"}))

	social := store.NewSocialStore()
	social.SendRequest("ben", "ana")

	classrooms := store.NewClassroomStore()
	require.NoError(t, classrooms.Create(models.Classroom{Code: "ABC123", Owner: "ana"}))

	activity := store.NewActivityStore()
	activity.AppendHelp("ABC123", models.HelpMessage{ID: "1", Text: "help", SeenBy: []string{"ben"}})

	svc := NewDashboardService(users, social, classrooms, activity, zap.NewNop(), time.UTC)
	svc.now = func() time.Time { return time.Date(2026, 8, 24, 10, 0, 0, 0, time.UTC) }

	dashboard, err := svc.Overview("ana")
	require.NoError(t, err)
	assert.Equal(t, "ANA CRUZ", dashboard.User.FullName)
	assert.Equal(t, 1, dashboard.PendingRequests)
	assert.Equal(t, 1, dashboard.UnseenHelp)
	assert.Equal(t, 1, dashboard.Classrooms)
	assert.Equal(t, "2026-08-24", dashboard.Today)
}

func TestDashboardServiceUnknownUser(t *testing.T) {
	svc := NewDashboardService(store.NewUserStore(), store.NewSocialStore(), store.NewClassroomStore(), store.NewActivityStore(), zap.NewNop(), time.UTC)

	_, err := svc.Overview("ghost")
	assert.ErrorIs(t, err, appErrors.ErrNotFound)
}
