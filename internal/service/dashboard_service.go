package service

import (
	"time"

	"go.uber.org/zap"

	"github.com/kumusta-app/kumusta-api/internal/models"
	appErrors "github.com/kumusta-app/kumusta-api/pkg/errors"
)

type dashboardUserReader interface {
	Get(username string) (*models.User, error)
}

type pendingRequestCounter interface {
	PendingCount(recipient string) int
}

type classroomLister interface {
	CodesFor(username string) []string
}

type unseenHelpCounter interface {
	UnseenHelpCount(codes []string, username string) int
}

// Dashboard is the landing-page payload: who the user is plus their
// notification badge counts.
type Dashboard struct {
	User            models.UserInfo `json:"user"`
	PendingRequests int             `json:"pending_requests"`
	UnseenHelp      int             `json:"unseen_help"`
	Classrooms      int             `json:"classrooms"`
	Today           string          `json:"today"`
}

// DashboardService composes account, social and activity state into the
// single dashboard view.
type DashboardService struct {
	users      dashboardUserReader
	social     pendingRequestCounter
	classrooms classroomLister
	activity   unseenHelpCounter
	logger     *zap.Logger
	location   *time.Location
	now        func() time.Time
}

// NewDashboardService constructs a DashboardService instance.
func NewDashboardService(users dashboardUserReader, social pendingRequestCounter, classrooms classroomLister, activity unseenHelpCounter, logger *zap.Logger, location *time.Location) *DashboardService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if location == nil {
		location = time.UTC
	}
	return &DashboardService{
		users:      users,
		social:     social,
		classrooms: classrooms,
		activity:   activity,
		logger:     logger,
		location:   location,
		now:        time.Now,
	}
}

// Overview builds the dashboard for the user.
func (s *DashboardService) Overview(username string) (*Dashboard, error) {
	user, err := s.users.Get(username)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "user not found")
	}

	codes := s.classrooms.CodesFor(username)
	return &Dashboard{
		User: models.UserInfo{
			Username:    user.Username,
			FullName:    user.FullName,
			PictureFile: user.PictureFile,
			Status:      user.Status,
			Mode:        user.Mode,
		},
		PendingRequests: s.social.PendingCount(username),
		UnseenHelp:      s.activity.UnseenHelpCount(codes, username),
		Classrooms:      len(codes),
		Today:           s.now().In(s.location).Format(models.DateLayout),
	}, nil
}
