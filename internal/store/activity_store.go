package store

import (
	"sync"

	"github.com/kumusta-app/kumusta-api/internal/models"
)

// ActivityStore owns per-classroom emotion check-ins, anonymous help
// messages and announcements.
type ActivityStore struct {
	mu            sync.RWMutex
	checkIns      map[string]map[string]models.EmotionCheckIn
	help          map[string][]*models.HelpMessage
	announcements map[string][]models.Announcement
}

// NewActivityStore builds an empty activity store.
func NewActivityStore() *ActivityStore {
	return &ActivityStore{
		checkIns:      make(map[string]map[string]models.EmotionCheckIn),
		help:          make(map[string][]*models.HelpMessage),
		announcements: make(map[string][]models.Announcement),
	}
}

// SubmitCheckIn records the check-in unless one already exists for the same
// day. The existing check-in wins: the first return value is what is stored
// after the call, and created reports whether this call stored it. The
// check-then-write runs under one lock.
func (s *ActivityStore) SubmitCheckIn(code string, checkIn models.EmotionCheckIn) (models.EmotionCheckIn, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	byUser, ok := s.checkIns[code]
	if !ok {
		byUser = make(map[string]models.EmotionCheckIn)
		s.checkIns[code] = byUser
	}
	if existing, has := byUser[checkIn.Username]; has && existing.Date == checkIn.Date {
		return existing, false
	}
	byUser[checkIn.Username] = checkIn
	return checkIn, true
}

// CheckIns returns a copy of the latest check-in per member.
func (s *ActivityStore) CheckIns(code string) map[string]models.EmotionCheckIn {
	s.mu.RLock()
	defer s.mu.RUnlock()
	byUser := s.checkIns[code]
	out := make(map[string]models.EmotionCheckIn, len(byUser))
	for username, checkIn := range byUser {
		out[username] = checkIn
	}
	return out
}

// AppendHelp stores an anonymous help message.
func (s *ActivityStore) AppendHelp(code string, message models.HelpMessage) {
	s.mu.Lock()
	defer s.mu.Unlock()
	clone := message
	clone.SeenBy = append([]string(nil), message.SeenBy...)
	s.help[code] = append(s.help[code], &clone)
}

// ListAndMarkHelpSeen returns all help messages newest-first and, in the
// same critical section, marks every stored message as seen by the reader.
// The mutation is part of the read contract.
func (s *ActivityStore) ListAndMarkHelpSeen(code, reader string) []models.HelpMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	messages := s.help[code]
	out := make([]models.HelpMessage, 0, len(messages))
	for i := len(messages) - 1; i >= 0; i-- {
		msg := messages[i]
		if !containsReader(msg.SeenBy, reader) {
			msg.SeenBy = append(msg.SeenBy, reader)
		}
		clone := *msg
		clone.SeenBy = append([]string(nil), msg.SeenBy...)
		out = append(out, clone)
	}
	return out
}

// UnseenHelpCount counts messages across the given classrooms that the user
// has not read yet.
func (s *ActivityStore) UnseenHelpCount(codes []string, username string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	count := 0
	for _, code := range codes {
		for _, msg := range s.help[code] {
			if !containsReader(msg.SeenBy, username) {
				count++
			}
		}
	}
	return count
}

// AppendAnnouncement stores a Class Rep broadcast.
func (s *ActivityStore) AppendAnnouncement(code string, announcement models.Announcement) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.announcements[code] = append(s.announcements[code], announcement)
}

// Announcements returns announcements newest-first.
func (s *ActivityStore) Announcements(code string) []models.Announcement {
	s.mu.RLock()
	defer s.mu.RUnlock()
	stored := s.announcements[code]
	out := make([]models.Announcement, 0, len(stored))
	for i := len(stored) - 1; i >= 0; i-- {
		out = append(out, stored[i])
	}
	return out
}

// PurgeClassroom drops every log kept for the classroom. Called by the
// deletion cascade.
func (s *ActivityStore) PurgeClassroom(code string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.checkIns, code)
	delete(s.help, code)
	delete(s.announcements, code)
}

func containsReader(seenBy []string, username string) bool {
	for _, seen := range seenBy {
		if seen == username {
			return true
		}
	}
	return false
}
