package service

import (
	"math"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/kumusta-app/kumusta-api/internal/models"
	appErrors "github.com/kumusta-app/kumusta-api/pkg/errors"
)

type ledgerStore interface {
	UpsertMood(username, date, text string)
	MoodOn(username, date string) (string, bool)
	AppendSession(username string, session models.StudySession)
	TotalsFor(username string, dates []string) map[string]int
	TotalRestSeconds(username string) int
	AppendHelpNote(username string, note models.HelpNote)
	HelpNotes(username string) []models.HelpNote
}

type presenceSetter interface {
	SetStatus(username string, status models.PresenceStatus) error
}

type studyMinutesCounter interface {
	AddStudyMinutes(minutes int)
}

// RecordStudyRequest carries a manual study entry.
type RecordStudyRequest struct {
	Minutes     int `json:"minutes" validate:"required,gt=0"`
	RestSeconds int `json:"rest_seconds" validate:"gte=0"`
}

// RecordTimerRequest carries the raw seconds from a finished timer run.
type RecordTimerRequest struct {
	StudySeconds int `json:"study_seconds" validate:"gte=0"`
	RestSeconds  int `json:"rest_seconds" validate:"gte=0"`
}

// TimerResult reports what the timer submission actually recorded.
type TimerResult struct {
	Date            string `json:"date"`
	RecordedMinutes int    `json:"recorded_minutes"`
	RestSeconds     int    `json:"rest_seconds"`
}

// LedgerService handles mood logs, study sessions, timer submissions, the
// weekly summary and personal help notes.
type LedgerService struct {
	ledger    ledgerStore
	presence  presenceSetter
	insight   *InsightService
	metrics   studyMinutesCounter
	validator *validator.Validate
	logger    *zap.Logger
	location  *time.Location
	now       func() time.Time
}

// NewLedgerService constructs a LedgerService instance.
func NewLedgerService(ledger ledgerStore, presence presenceSetter, insight *InsightService, metrics studyMinutesCounter, validate *validator.Validate, logger *zap.Logger, location *time.Location) *LedgerService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	if location == nil {
		location = time.UTC
	}
	return &LedgerService{
		ledger:    ledger,
		presence:  presence,
		insight:   insight,
		metrics:   metrics,
		validator: validate,
		logger:    logger,
		location:  location,
		now:       time.Now,
	}
}

// RecordMood upserts today's free-text mood. A second write on the same day
// replaces the first.
func (s *LedgerService) RecordMood(username, text string) (*models.MoodEntry, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "mood text is required")
	}
	date := s.today()
	s.ledger.UpsertMood(username, date, text)
	return &models.MoodEntry{Date: date, Text: text}, nil
}

// RecordStudy appends a manual study session for today.
func (s *LedgerService) RecordStudy(username string, req RecordStudyRequest) (*models.StudySession, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "minutes must be a positive number")
	}
	session := models.StudySession{
		Date:        s.today(),
		Minutes:     req.Minutes,
		RestSeconds: req.RestSeconds,
		RecordedAt:  s.now().UTC(),
	}
	s.ledger.AppendSession(username, session)
	if s.metrics != nil {
		s.metrics.AddStudyMinutes(req.Minutes)
	}
	return &session, nil
}

// RecordTimer converts a finished timer run into a study session. Seconds are
// rounded to the nearest minute; a run that rounds to zero minutes records
// nothing but still drops presence back to offline.
func (s *LedgerService) RecordTimer(username string, req RecordTimerRequest) (*TimerResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "timer values cannot be negative")
	}

	minutes := int(math.Round(float64(req.StudySeconds) / 60.0))
	result := &TimerResult{Date: s.today(), RecordedMinutes: minutes, RestSeconds: req.RestSeconds}
	if minutes > 0 {
		s.ledger.AppendSession(username, models.StudySession{
			Date:        result.Date,
			Minutes:     minutes,
			RestSeconds: req.RestSeconds,
			RecordedAt:  s.now().UTC(),
		})
		if s.metrics != nil {
			s.metrics.AddStudyMinutes(minutes)
		}
	}

	if err := s.presence.SetStatus(username, models.StatusOffline); err != nil {
		s.logger.Warn("failed to reset presence after timer", zap.String("username", username), zap.Error(err))
	}
	return result, nil
}

// WeeklyTotals returns per-day study totals for the trailing 7 days, oldest
// first, zero-filled.
func (s *LedgerService) WeeklyTotals(username string) []models.DayTotal {
	dates := s.lastSevenDays()
	totals := s.ledger.TotalsFor(username, dates)
	out := make([]models.DayTotal, 0, len(dates))
	for _, date := range dates {
		out = append(out, models.DayTotal{Date: date, Minutes: totals[date]})
	}
	return out
}

// WeeklySummary builds the full trailing-7-day view with advice, a
// productivity label and a recommendation fed by the weekly totals.
func (s *LedgerService) WeeklySummary(username string) (*models.WeeklySummary, error) {
	dates := s.lastSevenDays()
	totals := s.ledger.TotalsFor(username, dates)

	rows := make([]models.SummaryRow, 0, len(dates))
	moods := make([]string, 0, len(dates))
	totalMinutes := 0
	for _, date := range dates {
		mood, ok := s.ledger.MoodOn(username, date)
		if !ok {
			mood = "-"
		}
		moods = append(moods, mood)
		rows = append(rows, models.SummaryRow{Date: date, Mood: mood, Minutes: totals[date]})
		totalMinutes += totals[date]
	}

	average := float64(totalMinutes) / 7.0
	restMinutes := int(math.Round(float64(s.ledger.TotalRestSeconds(username)) / 60.0))

	return &models.WeeklySummary{
		Rows:             rows,
		TotalMinutes:     totalMinutes,
		AverageMinutes:   math.Round(average*100) / 100,
		TotalRestMinutes: restMinutes,
		Advice:           s.insight.WeeklyAdvice(average, moods),
		Productivity:     s.insight.ProductivityLabel(totalMinutes),
		Recommendation:   s.insight.Recommendation(totalMinutes, restMinutes),
	}, nil
}

// RecordHelpNote stores a personal anonymous help note dated today.
func (s *LedgerService) RecordHelpNote(username, text string) (*models.HelpNote, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "message text is required")
	}
	note := models.HelpNote{Date: s.today(), Text: text}
	s.ledger.AppendHelpNote(username, note)
	return &note, nil
}

// HelpNotes lists the user's own help notes.
func (s *LedgerService) HelpNotes(username string) []models.HelpNote {
	return s.ledger.HelpNotes(username)
}

func (s *LedgerService) today() string {
	return s.now().In(s.location).Format(models.DateLayout)
}

// lastSevenDays returns today and the six days before it, oldest first.
func (s *LedgerService) lastSevenDays() []string {
	today := s.now().In(s.location)
	out := make([]string, 0, 7)
	for i := 6; i >= 0; i-- {
		out = append(out, today.AddDate(0, 0, -i).Format(models.DateLayout))
	}
	return out
}
