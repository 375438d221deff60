package store

import (
	"sync"
	"time"

	"github.com/kumusta-app/kumusta-api/internal/models"
)

// UserStore owns the account table, issued refresh tokens and the audit
// trail.
type UserStore struct {
	mu            sync.RWMutex
	users         map[string]*models.User
	refreshTokens map[string]*models.RefreshToken
	auditLogs     []models.AuditLog
}

// NewUserStore builds an empty user store.
func NewUserStore() *UserStore {
	return &UserStore{
		users:         make(map[string]*models.User),
		refreshTokens: make(map[string]*models.RefreshToken),
	}
}

// Create registers a new account. The username must be unused.
func (s *UserStore) Create(user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.users[user.Username]; exists {
		return ErrDuplicate
	}
	clone := *user
	s.users[user.Username] = &clone
	return nil
}

// Get returns a copy of the account.
func (s *UserStore) Get(username string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.users[username]
	if !ok {
		return nil, ErrNotFound
	}
	clone := *user
	return &clone, nil
}

// Exists reports whether the username is registered.
func (s *UserStore) Exists(username string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.users[username]
	return ok
}

// Delete removes an account outright. Only used to roll back a registration
// whose picture write failed; accounts are never deleted otherwise.
func (s *UserStore) Delete(username string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[username]; !ok {
		return ErrNotFound
	}
	delete(s.users, username)
	return nil
}

// SetStatus updates the presence status.
func (s *UserStore) SetStatus(username string, status models.PresenceStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[username]
	if !ok {
		return ErrNotFound
	}
	user.Status = status
	return nil
}

// SetMode updates the study mode.
func (s *UserStore) SetMode(username string, mode models.StudyMode) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[username]
	if !ok {
		return ErrNotFound
	}
	user.Mode = mode
	return nil
}

// SetPicture records the stored profile picture filename.
func (s *UserStore) SetPicture(username, filename string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[username]
	if !ok {
		return ErrNotFound
	}
	user.PictureFile = filename
	return nil
}

// CreateRefreshToken persists a refresh token entry.
func (s *UserStore) CreateRefreshToken(token *models.RefreshToken) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	clone := *token
	s.refreshTokens[token.Token] = &clone
	return nil
}

// FindRefreshToken returns a refresh token by token string.
func (s *UserStore) FindRefreshToken(token string) (*models.RefreshToken, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rt, ok := s.refreshTokens[token]
	if !ok {
		return nil, ErrNotFound
	}
	clone := *rt
	return &clone, nil
}

// RevokeRefreshToken marks a token as revoked.
func (s *UserStore) RevokeRefreshToken(token string, revokedAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rt, ok := s.refreshTokens[token]
	if !ok {
		return ErrNotFound
	}
	rt.Revoked = true
	rt.RevokedAt = &revokedAt
	return nil
}

// AppendAuditLog stores an audit entry.
func (s *UserStore) AppendAuditLog(log models.AuditLog) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.auditLogs = append(s.auditLogs, log)
}

// AuditTrail returns a copy of all recorded audit entries.
func (s *UserStore) AuditTrail() []models.AuditLog {
	s.mu.RLock()
	defer s.mu.RUnlock()
	trail := make([]models.AuditLog, len(s.auditLogs))
	copy(trail, s.auditLogs)
	return trail
}
