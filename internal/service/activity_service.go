package service

import (
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kumusta-app/kumusta-api/internal/models"
	appErrors "github.com/kumusta-app/kumusta-api/pkg/errors"
)

type activityStore interface {
	SubmitCheckIn(code string, checkIn models.EmotionCheckIn) (models.EmotionCheckIn, bool)
	CheckIns(code string) map[string]models.EmotionCheckIn
	AppendHelp(code string, message models.HelpMessage)
	ListAndMarkHelpSeen(code, reader string) []models.HelpMessage
	UnseenHelpCount(codes []string, username string) int
	AppendAnnouncement(code string, announcement models.Announcement)
	Announcements(code string) []models.Announcement
}

type membershipReader interface {
	IsMember(code, username string) (bool, error)
	Get(code string) (*models.Classroom, error)
	CodesFor(username string) []string
}

type activityUserReader interface {
	Get(username string) (*models.User, error)
}

type checkInCounter interface {
	CountCheckIn(emotion string)
	CountHelpMessage()
}

// CheckInResult is returned to the submitter. AlreadySubmitted reports that
// an earlier same-day check-in was kept instead of this one.
type CheckInResult struct {
	Emotion          models.Emotion `json:"emotion"`
	Message          string         `json:"message"`
	Date             string         `json:"date"`
	Time             string         `json:"time"`
	AlreadySubmitted bool           `json:"already_submitted"`
}

// ActivityService handles classroom emotion check-ins, anonymous help
// messages and Class Rep announcements. Every operation authorizes against
// classroom membership first.
type ActivityService struct {
	activity   activityStore
	membership membershipReader
	users      activityUserReader
	insight    *InsightService
	metrics    checkInCounter
	logger     *zap.Logger
	location   *time.Location
	now        func() time.Time
}

// NewActivityService constructs an ActivityService instance.
func NewActivityService(activity activityStore, membership membershipReader, users activityUserReader, insight *InsightService, metrics checkInCounter, logger *zap.Logger, location *time.Location) *ActivityService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if location == nil {
		location = time.UTC
	}
	return &ActivityService{
		activity:   activity,
		membership: membership,
		users:      users,
		insight:    insight,
		metrics:    metrics,
		logger:     logger,
		location:   location,
		now:        time.Now,
	}
}

// SubmitEmotion records the member's daily check-in. A second submit on the
// same day keeps the first check-in and reports it back instead of erroring.
func (s *ActivityService) SubmitEmotion(username, code string, emotion models.Emotion) (*CheckInResult, error) {
	code = normalizeCode(code)
	if err := s.requireMember(code, username); err != nil {
		return nil, err
	}
	if !models.ValidEmotion(emotion) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unknown emotion")
	}

	local := s.now().In(s.location)
	stored, created := s.activity.SubmitCheckIn(code, models.EmotionCheckIn{
		Username:    username,
		Emotion:     emotion,
		Date:        local.Format(models.DateLayout),
		Time:        local.Format(models.TimeLayout),
		SubmittedAt: s.now().UTC(),
	})
	if created && s.metrics != nil {
		s.metrics.CountCheckIn(string(stored.Emotion))
	}

	return &CheckInResult{
		Emotion:          stored.Emotion,
		Message:          models.EmotionMessages[stored.Emotion],
		Date:             stored.Date,
		Time:             stored.Time,
		AlreadySubmitted: !created,
	}, nil
}

// TodaysFeelings lists today's check-ins for every classroom member, sorted
// by username.
func (s *ActivityService) TodaysFeelings(username, code string) ([]models.FeelingRow, error) {
	code = normalizeCode(code)
	if err := s.requireMember(code, username); err != nil {
		return nil, err
	}
	classroom, err := s.membership.Get(code)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrNotMember, "")
	}

	today := s.now().In(s.location).Format(models.DateLayout)
	checkIns := s.activity.CheckIns(code)
	rows := make([]models.FeelingRow, 0, len(classroom.Members))
	for _, member := range classroom.Members {
		checkIn, ok := checkIns[member]
		if !ok || checkIn.Date != today {
			continue
		}
		row := models.FeelingRow{
			Username: member,
			Emotion:  checkIn.Emotion,
			Date:     checkIn.Date,
			Time:     checkIn.Time,
		}
		if user, err := s.users.Get(member); err == nil {
			row.FullName = user.FullName
			row.PictureFile = user.PictureFile
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// PostHelp stores an anonymous help message. The sender is marked as having
// seen their own message so it never counts against their unseen badge.
func (s *ActivityService) PostHelp(username, code, text string) (*models.HelpMessage, error) {
	code = normalizeCode(code)
	if err := s.requireMember(code, username); err != nil {
		return nil, err
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "message text is required")
	}

	local := s.now().In(s.location)
	message := models.HelpMessage{
		ID:     uuid.NewString(),
		Text:   text,
		Date:   local.Format(models.DateLayout),
		Time:   local.Format(models.TimeLayout),
		SeenBy: []string{username},
	}
	s.activity.AppendHelp(code, message)
	if s.metrics != nil {
		s.metrics.CountHelpMessage()
	}
	return &message, nil
}

// ListHelp returns all help messages newest-first and marks them seen by the
// reader. Reading is what clears the unseen badge.
func (s *ActivityService) ListHelp(username, code string) ([]models.HelpMessage, error) {
	code = normalizeCode(code)
	if err := s.requireMember(code, username); err != nil {
		return nil, err
	}
	return s.activity.ListAndMarkHelpSeen(code, username), nil
}

// UnseenHelpCount counts unread help messages across all the user's
// classrooms.
func (s *ActivityService) UnseenHelpCount(username string) int {
	return s.activity.UnseenHelpCount(s.membership.CodesFor(username), username)
}

// PostAnnouncement broadcasts to the classroom. Checks run in order:
// membership, then ownership, then the text itself.
func (s *ActivityService) PostAnnouncement(username, code, text string) (*models.Announcement, error) {
	code = normalizeCode(code)
	if err := s.requireMember(code, username); err != nil {
		return nil, err
	}
	classroom, err := s.membership.Get(code)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrNotMember, "")
	}
	if classroom.Owner != username {
		return nil, appErrors.Clone(appErrors.ErrNotOwner, "only the class rep can post announcements")
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "announcement text is required")
	}

	sender := username
	if user, err := s.users.Get(username); err == nil {
		sender = user.FullName
	}
	announcement := models.Announcement{
		ID:       uuid.NewString(),
		Sender:   sender,
		Text:     text,
		Date:     s.now().In(s.location).Format(models.DateLayout),
		PostedAt: s.now().UTC(),
	}
	s.activity.AppendAnnouncement(code, announcement)
	return &announcement, nil
}

// Announcements lists classroom announcements newest-first.
func (s *ActivityService) Announcements(username, code string) ([]models.Announcement, error) {
	code = normalizeCode(code)
	if err := s.requireMember(code, username); err != nil {
		return nil, err
	}
	return s.activity.Announcements(code), nil
}

// EmotionAnalytics aggregates the trailing 7 days of check-ins. Restricted
// to the Class Rep.
func (s *ActivityService) EmotionAnalytics(username, code string) (*models.EmotionAnalytics, error) {
	code = normalizeCode(code)
	if err := s.requireMember(code, username); err != nil {
		return nil, err
	}
	classroom, err := s.membership.Get(code)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrNotMember, "")
	}
	if classroom.Owner != username {
		return nil, appErrors.Clone(appErrors.ErrNotOwner, "only the class rep can view analytics")
	}

	days := s.lastSevenDays()
	inWindow := make(map[string]struct{}, len(days))
	for _, d := range days {
		inWindow[d] = struct{}{}
	}

	checkIns := s.activity.CheckIns(code)
	counts := s.insight.EmotionCounts(checkIns, days)
	top, message := s.insight.TopEmotion(counts)

	detailed := make([]models.FeelingRow, 0, len(checkIns))
	for member, checkIn := range checkIns {
		if _, ok := inWindow[checkIn.Date]; !ok {
			continue
		}
		row := models.FeelingRow{
			Username: member,
			Emotion:  checkIn.Emotion,
			Date:     checkIn.Date,
			Time:     checkIn.Time,
		}
		if user, err := s.users.Get(member); err == nil {
			row.FullName = user.FullName
		}
		detailed = append(detailed, row)
	}
	sort.Slice(detailed, func(i, j int) bool { return detailed[i].Username < detailed[j].Username })

	return &models.EmotionAnalytics{
		Days:       days,
		Counts:     counts,
		Detailed:   detailed,
		TopEmotion: top,
		TopMessage: message,
	}, nil
}

func (s *ActivityService) requireMember(code, username string) error {
	member, err := s.membership.IsMember(code, username)
	if err != nil || !member {
		return appErrors.Clone(appErrors.ErrNotMember, "")
	}
	return nil
}

func (s *ActivityService) lastSevenDays() []string {
	today := s.now().In(s.location)
	out := make([]string, 0, 7)
	for i := 6; i >= 0; i-- {
		out = append(out, today.AddDate(0, 0, -i).Format(models.DateLayout))
	}
	return out
}
