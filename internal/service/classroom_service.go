package service

import (
	"crypto/rand"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/kumusta-app/kumusta-api/internal/models"
	"github.com/kumusta-app/kumusta-api/internal/store"
	appErrors "github.com/kumusta-app/kumusta-api/pkg/errors"
)

const codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// maxCodeAttempts bounds the re-roll loop on code collisions.
const maxCodeAttempts = 5

type classroomStore interface {
	Create(classroom models.Classroom) error
	Get(code string) (*models.Classroom, error)
	IsMember(code, username string) (bool, error)
	Join(code, username string) error
	Leave(code, username string) error
	Delete(code string) ([]string, error)
	CodesFor(username string) []string
}

type classroomUserStore interface {
	Get(username string) (*models.User, error)
}

type activityPurger interface {
	PurgeClassroom(code string)
}

// ClassroomService manages classroom lifecycle and membership.
type ClassroomService struct {
	classrooms classroomStore
	users      classroomUserStore
	activity   activityPurger
	logger     *zap.Logger
	codeLength int
	now        func() time.Time
}

// NewClassroomService constructs a ClassroomService instance.
func NewClassroomService(classrooms classroomStore, users classroomUserStore, activity activityPurger, logger *zap.Logger, codeLength int) *ClassroomService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if codeLength <= 0 {
		codeLength = 6
	}
	return &ClassroomService{
		classrooms: classrooms,
		users:      users,
		activity:   activity,
		logger:     logger,
		codeLength: codeLength,
		now:        time.Now,
	}
}

// Create makes a classroom owned by the caller, generating a unique join
// code. Code collisions are re-rolled.
func (s *ClassroomService) Create(owner, name string) (*models.Classroom, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "classroom name is required")
	}

	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		code, err := s.generateCode()
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to generate classroom code")
		}
		classroom := models.Classroom{
			Code:      code,
			Name:      name,
			Owner:     owner,
			CreatedAt: s.now().UTC(),
		}
		err = s.classrooms.Create(classroom)
		if err == nil {
			classroom.Members = []string{owner}
			s.logger.Info("classroom created", zap.String("code", code), zap.String("owner", owner))
			return &classroom, nil
		}
		if !errors.Is(err, store.ErrDuplicate) {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create classroom")
		}
	}
	return nil, appErrors.Clone(appErrors.ErrInternal, "could not allocate a unique classroom code")
}

// Join adds the caller to the classroom behind the code. Joining a classroom
// the caller already belongs to is a no-op.
func (s *ClassroomService) Join(username, code string) (*models.Classroom, error) {
	code = normalizeCode(code)
	if code == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "classroom code is required")
	}
	if err := s.classrooms.Join(code, username); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "classroom code not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to join classroom")
	}
	classroom, err := s.classrooms.Get(code)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load classroom")
	}
	return classroom, nil
}

// Leave removes the caller from the classroom. The owner cannot leave their
// own classroom; deletion is the way out.
func (s *ClassroomService) Leave(username, code string) error {
	code = normalizeCode(code)
	classroom, err := s.classrooms.Get(code)
	if err != nil {
		return appErrors.Clone(appErrors.ErrNotMember, "")
	}
	if classroom.Owner == username {
		return appErrors.Clone(appErrors.ErrForbidden, "the class rep cannot leave, delete the classroom instead")
	}
	if err := s.classrooms.Leave(code, username); err != nil {
		return appErrors.Clone(appErrors.ErrNotMember, "")
	}
	return nil
}

// Delete removes the classroom and every log kept for it. Checks run in
// order: membership, then ownership, then the re-entered password.
func (s *ClassroomService) Delete(username, code, password string) error {
	code = normalizeCode(code)
	member, err := s.classrooms.IsMember(code, username)
	if err != nil || !member {
		return appErrors.Clone(appErrors.ErrNotMember, "")
	}

	classroom, err := s.classrooms.Get(code)
	if err != nil {
		return appErrors.Clone(appErrors.ErrNotMember, "")
	}
	if classroom.Owner != username {
		return appErrors.Clone(appErrors.ErrNotOwner, "only the class rep can delete this classroom")
	}

	user, err := s.users.Get(username)
	if err != nil {
		return appErrors.Clone(appErrors.ErrNotFound, "user not found")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return appErrors.Clone(appErrors.ErrInvalidCredentials, "wrong password, the classroom was not deleted")
	}

	if _, err := s.classrooms.Delete(code); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete classroom")
	}
	s.activity.PurgeClassroom(code)
	s.logger.Info("classroom deleted", zap.String("code", code), zap.String("owner", username))
	return nil
}

// Get returns the classroom when the caller is a member.
func (s *ClassroomService) Get(username, code string) (*models.Classroom, error) {
	code = normalizeCode(code)
	member, err := s.classrooms.IsMember(code, username)
	if err != nil || !member {
		return nil, appErrors.Clone(appErrors.ErrNotMember, "")
	}
	return s.classrooms.Get(code)
}

// ListMine lists the caller's classrooms in joined order with their role.
func (s *ClassroomService) ListMine(username string) []models.ClassroomInfo {
	codes := s.classrooms.CodesFor(username)
	out := make([]models.ClassroomInfo, 0, len(codes))
	for _, code := range codes {
		classroom, err := s.classrooms.Get(code)
		if err != nil {
			continue
		}
		info := models.ClassroomInfo{Code: code, Name: classroom.Name, Role: models.RoleStudent}
		if classroom.Owner == username {
			info.Role = models.RoleClassRep
			info.IsOwner = true
		}
		out = append(out, info)
	}
	return out
}

func (s *ClassroomService) generateCode() (string, error) {
	buf := make([]byte, s.codeLength)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	code := make([]byte, s.codeLength)
	for i, b := range buf {
		code[i] = codeAlphabet[int(b)%len(codeAlphabet)]
	}
	return string(code), nil
}

func normalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
