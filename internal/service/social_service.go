package service

import (
	"strings"

	"go.uber.org/zap"

	"github.com/kumusta-app/kumusta-api/internal/models"
	appErrors "github.com/kumusta-app/kumusta-api/pkg/errors"
)

type socialStore interface {
	SendRequest(from, to string) models.FriendRequestOutcome
	Accept(recipient, sender string) bool
	Decline(recipient, sender string) bool
	FriendsOf(username string) []string
	PendingFor(recipient string) []string
	PendingCount(recipient string) int
}

type socialUserReader interface {
	Get(username string) (*models.User, error)
	Exists(username string) bool
}

// FriendRequestResult reports what a send-request call did, with a
// user-facing message. Duplicate sends are informational, never errors.
type FriendRequestResult struct {
	Outcome models.FriendRequestOutcome `json:"outcome"`
	Message string                      `json:"message"`
}

// SocialService handles friend requests and the friends overview.
type SocialService struct {
	social socialStore
	users  socialUserReader
	logger *zap.Logger
}

// NewSocialService constructs a SocialService instance.
func NewSocialService(social socialStore, users socialUserReader, logger *zap.Logger) *SocialService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SocialService{social: social, users: users, logger: logger}
}

// SendRequest queues a friend request. Self-requests and unknown recipients
// are rejected; resends and already-friends collapse into their outcomes.
func (s *SocialService) SendRequest(from, to string) (*FriendRequestResult, error) {
	to = strings.TrimSpace(to)
	if to == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "username is required")
	}
	if to == from {
		return nil, appErrors.Clone(appErrors.ErrValidation, "you cannot add yourself as a friend")
	}
	if !s.users.Exists(to) {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "that user does not exist")
	}

	outcome := s.social.SendRequest(from, to)
	result := &FriendRequestResult{Outcome: outcome}
	switch outcome {
	case models.FriendRequestSent:
		result.Message = "friend request sent"
	case models.FriendRequestPending:
		result.Message = "you already sent a request to this user"
	case models.AlreadyFriends:
		result.Message = "you are already friends"
	}
	return result, nil
}

// Accept converts a pending request into a friendship. Accepting a request
// that no longer exists is a quiet no-op.
func (s *SocialService) Accept(recipient, sender string) bool {
	accepted := s.social.Accept(recipient, sender)
	if !accepted {
		s.logger.Debug("accept ignored, no pending request",
			zap.String("recipient", recipient), zap.String("sender", sender))
	}
	return accepted
}

// Decline drops a pending request. Declining a missing request is a no-op.
func (s *SocialService) Decline(recipient, sender string) bool {
	return s.social.Decline(recipient, sender)
}

// Overview returns accepted friends with live presence plus the senders of
// pending incoming requests.
func (s *SocialService) Overview(username string) *models.FriendsOverview {
	friendNames := s.social.FriendsOf(username)
	friends := make([]models.FriendInfo, 0, len(friendNames))
	for _, name := range friendNames {
		info := models.FriendInfo{Username: name, Status: models.StatusOffline}
		if user, err := s.users.Get(name); err == nil {
			info.FullName = user.FullName
			info.Status = user.Status
			info.PictureFile = user.PictureFile
		}
		friends = append(friends, info)
	}
	return &models.FriendsOverview{
		Friends:          friends,
		IncomingRequests: s.social.PendingFor(username),
	}
}
