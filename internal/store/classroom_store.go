package store

import (
	"sort"
	"sync"

	"github.com/kumusta-app/kumusta-api/internal/models"
)

type classroomRecord struct {
	classroom models.Classroom
	members   map[string]struct{}
}

// ClassroomStore owns classroom records and the per-user membership index.
// Invariant, maintained under one lock: username in classroom members iff
// classroom code in that user's index.
type ClassroomStore struct {
	mu         sync.RWMutex
	classrooms map[string]*classroomRecord
	index      map[string][]string // username -> codes in joined order
}

// NewClassroomStore builds an empty classroom store.
func NewClassroomStore() *ClassroomStore {
	return &ClassroomStore{
		classrooms: make(map[string]*classroomRecord),
		index:      make(map[string][]string),
	}
}

// Create registers a classroom with the owner as sole member. Returns
// ErrDuplicate when the code is already taken so callers can re-roll.
func (s *ClassroomStore) Create(classroom models.Classroom) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.classrooms[classroom.Code]; exists {
		return ErrDuplicate
	}
	record := &classroomRecord{
		classroom: classroom,
		members:   map[string]struct{}{classroom.Owner: {}},
	}
	record.classroom.Members = nil
	s.classrooms[classroom.Code] = record
	s.index[classroom.Owner] = append(s.index[classroom.Owner], classroom.Code)
	return nil
}

// Get returns a copy of the classroom with its member list sorted.
func (s *ClassroomStore) Get(code string) (*models.Classroom, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	record, ok := s.classrooms[code]
	if !ok {
		return nil, ErrNotFound
	}
	clone := record.classroom
	clone.Members = sortedMembers(record.members)
	return &clone, nil
}

// IsMember reports membership; ErrNotFound when the classroom is unknown.
func (s *ClassroomStore) IsMember(code, username string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	record, ok := s.classrooms[code]
	if !ok {
		return false, ErrNotFound
	}
	_, member := record.members[username]
	return member, nil
}

// Join adds the user to the classroom and its index. Joining twice is a
// no-op.
func (s *ClassroomStore) Join(code, username string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	record, ok := s.classrooms[code]
	if !ok {
		return ErrNotFound
	}
	if _, member := record.members[username]; member {
		return nil
	}
	record.members[username] = struct{}{}
	s.index[username] = append(s.index[username], code)
	return nil
}

// Leave removes the user from both the member set and the index.
func (s *ClassroomStore) Leave(code, username string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	record, ok := s.classrooms[code]
	if !ok {
		return ErrNotFound
	}
	if _, member := record.members[username]; !member {
		return ErrNotFound
	}
	delete(record.members, username)
	s.removeFromIndex(username, code)
	return nil
}

// Delete removes the classroom and strips the code from every member's
// index, returning the former members so callers can cascade further.
func (s *ClassroomStore) Delete(code string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	record, ok := s.classrooms[code]
	if !ok {
		return nil, ErrNotFound
	}
	members := sortedMembers(record.members)
	for _, member := range members {
		s.removeFromIndex(member, code)
	}
	delete(s.classrooms, code)
	return members, nil
}

// CodesFor returns the user's classroom codes in joined order.
func (s *ClassroomStore) CodesFor(username string) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	codes := s.index[username]
	out := make([]string, len(codes))
	copy(out, codes)
	return out
}

func (s *ClassroomStore) removeFromIndex(username, code string) {
	codes := s.index[username]
	for i, candidate := range codes {
		if candidate == code {
			s.index[username] = append(codes[:i], codes[i+1:]...)
			break
		}
	}
	if len(s.index[username]) == 0 {
		delete(s.index, username)
	}
}

func sortedMembers(members map[string]struct{}) []string {
	out := make([]string, 0, len(members))
	for member := range members {
		out = append(out, member)
	}
	sort.Strings(out)
	return out
}
