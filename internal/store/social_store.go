package store

import (
	"sync"

	"github.com/kumusta-app/kumusta-api/internal/models"
)

// SocialStore owns friendship edges and the pending request queue. Friend
// lists and pending queues keep insertion order. The symmetry invariant
// (A friends B iff B friends A) is maintained entirely under this store's
// lock.
type SocialStore struct {
	mu      sync.RWMutex
	friends map[string][]string
	pending map[string][]string // recipient -> senders, oldest first
}

// NewSocialStore builds an empty social store.
func NewSocialStore() *SocialStore {
	return &SocialStore{
		friends: make(map[string][]string),
		pending: make(map[string][]string),
	}
}

// SendRequest queues a pending request from one user to another. Duplicate
// sends and already-friends cases collapse into informational outcomes; the
// check-then-append runs under one lock.
func (s *SocialStore) SendRequest(from, to string) models.FriendRequestOutcome {
	s.mu.Lock()
	defer s.mu.Unlock()
	if contains(s.friends[from], to) {
		return models.AlreadyFriends
	}
	if contains(s.pending[to], from) {
		return models.FriendRequestPending
	}
	s.pending[to] = append(s.pending[to], from)
	return models.FriendRequestSent
}

// Accept converts a pending request into a symmetric friend edge. Returns
// false (no-op) when nothing was pending for that pair.
func (s *SocialStore) Accept(recipient, sender string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.removePending(recipient, sender) {
		return false
	}
	if !contains(s.friends[recipient], sender) {
		s.friends[recipient] = append(s.friends[recipient], sender)
	}
	if !contains(s.friends[sender], recipient) {
		s.friends[sender] = append(s.friends[sender], recipient)
	}
	return true
}

// Decline drops a pending request. Returns false when nothing was pending.
func (s *SocialStore) Decline(recipient, sender string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.removePending(recipient, sender)
}

// FriendsOf returns the user's friends in acceptance order.
func (s *SocialStore) FriendsOf(username string) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	list := s.friends[username]
	out := make([]string, len(list))
	copy(out, list)
	return out
}

// PendingFor returns senders of pending requests, oldest first.
func (s *SocialStore) PendingFor(recipient string) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	list := s.pending[recipient]
	out := make([]string, len(list))
	copy(out, list)
	return out
}

// PendingCount returns the number of pending incoming requests.
func (s *SocialStore) PendingCount(recipient string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.pending[recipient])
}

func (s *SocialStore) removePending(recipient, sender string) bool {
	queue := s.pending[recipient]
	for i, candidate := range queue {
		if candidate == sender {
			s.pending[recipient] = append(queue[:i], queue[i+1:]...)
			if len(s.pending[recipient]) == 0 {
				delete(s.pending, recipient)
			}
			return true
		}
	}
	return false
}

func contains(list []string, value string) bool {
	for _, item := range list {
		if item == value {
			return true
		}
	}
	return false
}
