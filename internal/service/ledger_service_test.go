package service

import (
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/kumusta-app/kumusta-api/internal/models"
	"github.com/kumusta-app/kumusta-api/internal/store"
	appErrors "github.com/kumusta-app/kumusta-api/pkg/errors"
)

func newTestLedgerService(t *testing.T) (*LedgerService, *store.LedgerStore, *store.UserStore) {
	t.Helper()
	ledger := store.NewLedgerStore()
	users := store.NewUserStore()
	require.NoError(t, users.Create(&models.User{Username: "ana", Status: models.StatusStudying}))

	svc := NewLedgerService(ledger, users, NewInsightService(), nil, validator.New(), zap.NewNop(), time.UTC)
	svc.now = func() time.Time { return time.Date(2026, 8, 24, 10, 0, 0, 0, time.UTC) }
	return svc, ledger, users
}

func TestLedgerServiceRecordMoodUpsertsToday(t *testing.T) {
	svc, ledger, _ := newTestLedgerService(t)

	entry, err := svc.RecordMood("ana", "  feeling tired  ")
	require.NoError(t, err)
	assert.Equal(t, "2026-08-24", entry.Date)
	assert.Equal(t, "feeling tired", entry.Text)

	_, err = svc.RecordMood("ana", "better now")
	require.NoError(t, err)

	text, ok := ledger.MoodOn("ana", "2026-08-24")
	require.True(t, ok)
	assert.Equal(t, "better now", text)
}

func TestLedgerServiceRecordMoodRequiresText(t *testing.T) {
	svc, _, _ := newTestLedgerService(t)

	_, err := svc.RecordMood("ana", "   ")
	assert.ErrorIs(t, err, appErrors.ErrValidation)
}

func TestLedgerServiceRecordStudyRejectsNonPositiveMinutes(t *testing.T) {
	svc, _, _ := newTestLedgerService(t)

	_, err := svc.RecordStudy("ana", RecordStudyRequest{Minutes: 0})
	assert.ErrorIs(t, err, appErrors.ErrValidation)

	_, err = svc.RecordStudy("ana", RecordStudyRequest{Minutes: -5})
	assert.ErrorIs(t, err, appErrors.ErrValidation)
}

func TestLedgerServiceRecordTimerRoundsToNearestMinute(t *testing.T) {
	svc, _, _ := newTestLedgerService(t)

	result, err := svc.RecordTimer("ana", RecordTimerRequest{StudySeconds: 90})
	require.NoError(t, err)
	assert.Equal(t, 2, result.RecordedMinutes)

	result, err = svc.RecordTimer("ana", RecordTimerRequest{StudySeconds: 89})
	require.NoError(t, err)
	assert.Equal(t, 1, result.RecordedMinutes)
}

func TestLedgerServiceRecordTimerZeroMinutesStillGoesOffline(t *testing.T) {
	svc, ledger, users := newTestLedgerService(t)

	result, err := svc.RecordTimer("ana", RecordTimerRequest{StudySeconds: 20})
	require.NoError(t, err)
	assert.Equal(t, 0, result.RecordedMinutes)
	assert.Empty(t, ledger.Sessions("ana"))

	user, err := users.Get("ana")
	require.NoError(t, err)
	assert.Equal(t, models.StatusOffline, user.Status)
}

func TestLedgerServiceWeeklyTotalsSevenDaysAscending(t *testing.T) {
	svc, ledger, _ := newTestLedgerService(t)
	ledger.AppendSession("ana", models.StudySession{Date: "2026-08-24", Minutes: 30})
	ledger.AppendSession("ana", models.StudySession{Date: "2026-08-20", Minutes: 15})

	totals := svc.WeeklyTotals("ana")
	require.Len(t, totals, 7)
	assert.Equal(t, "2026-08-18", totals[0].Date)
	assert.Equal(t, "2026-08-24", totals[6].Date)
	assert.Equal(t, 30, totals[6].Minutes)
	assert.Equal(t, 15, totals[2].Minutes)
	assert.Equal(t, 0, totals[1].Minutes)
}

func TestLedgerServiceWeeklySummaryLightWeek(t *testing.T) {
	svc, ledger, _ := newTestLedgerService(t)
	ledger.AppendSession("ana", models.StudySession{Date: "2026-08-23", Minutes: 20})
	ledger.AppendSession("ana", models.StudySession{Date: "2026-08-24", Minutes: 40})
	ledger.UpsertMood("ana", "2026-08-24", "hopeful")

	summary, err := svc.WeeklySummary("ana")
	require.NoError(t, err)
	require.Len(t, summary.Rows, 7)
	assert.Equal(t, 60, summary.TotalMinutes)
	assert.InDelta(t, 8.57, summary.AverageMinutes, 0.01)
	assert.Equal(t, adviceLight, summary.Advice)
	assert.Equal(t, ProductivityModerate, summary.Productivity)

	assert.Equal(t, "hopeful", summary.Rows[6].Mood)
	assert.Equal(t, "-", summary.Rows[0].Mood)
}

func TestLedgerServiceWeeklySummaryEmptyWeek(t *testing.T) {
	svc, _, _ := newTestLedgerService(t)

	summary, err := svc.WeeklySummary("ana")
	require.NoError(t, err)
	assert.Equal(t, 0, summary.TotalMinutes)
	assert.Equal(t, 0.0, summary.AverageMinutes)
	assert.Equal(t, adviceNoStudy, summary.Advice)
	assert.Equal(t, ProductivityNone, summary.Productivity)
	assert.Equal(t, RecommendationStartSmall, summary.Recommendation)
}

func TestLedgerServiceWeeklySummaryRecommendationUsesWeeklyTotals(t *testing.T) {
	svc, ledger, _ := newTestLedgerService(t)
	// all study happened yesterday; the rules still see the 7-day total
	ledger.AppendSession("ana", models.StudySession{Date: "2026-08-23", Minutes: 150, RestSeconds: 600})

	summary, err := svc.WeeklySummary("ana")
	require.NoError(t, err)
	assert.Equal(t, 10, summary.TotalRestMinutes)
	assert.Equal(t, RecommendationTakeBreaks, summary.Recommendation)
}

func TestLedgerServiceWeeklySummaryRecommendationRestHeavyWeek(t *testing.T) {
	svc, ledger, _ := newTestLedgerService(t)
	ledger.AppendSession("ana", models.StudySession{Date: "2026-08-22", Minutes: 30, RestSeconds: 2400})

	summary, err := svc.WeeklySummary("ana")
	require.NoError(t, err)
	assert.Equal(t, 40, summary.TotalRestMinutes)
	assert.Equal(t, RecommendationFocusMore, summary.Recommendation)
}

func TestLedgerServiceRecordHelpNote(t *testing.T) {
	svc, _, _ := newTestLedgerService(t)

	note, err := svc.RecordHelpNote("ana", "I need someone to talk to")
	require.NoError(t, err)
	assert.Equal(t, "2026-08-24", note.Date)

	notes := svc.HelpNotes("ana")
	require.Len(t, notes, 1)

	_, err = svc.RecordHelpNote("ana", " ")
	assert.ErrorIs(t, err, appErrors.ErrValidation)
}
