package store

import (
	"sync"

	"github.com/kumusta-app/kumusta-api/internal/models"
)

// LedgerStore owns per-user mood entries, study sessions and personal help
// notes. Moods are keyed by calendar date (last write wins); sessions are
// append-only.
type LedgerStore struct {
	mu        sync.RWMutex
	moods     map[string]map[string]string
	sessions  map[string][]models.StudySession
	helpNotes map[string][]models.HelpNote
}

// NewLedgerStore builds an empty ledger store.
func NewLedgerStore() *LedgerStore {
	return &LedgerStore{
		moods:     make(map[string]map[string]string),
		sessions:  make(map[string][]models.StudySession),
		helpNotes: make(map[string][]models.HelpNote),
	}
}

// UpsertMood records the mood for one day, overwriting any earlier entry.
func (s *LedgerStore) UpsertMood(username, date, text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	days, ok := s.moods[username]
	if !ok {
		days = make(map[string]string)
		s.moods[username] = days
	}
	days[date] = text
}

// MoodOn returns the mood text recorded for the given day.
func (s *LedgerStore) MoodOn(username, date string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	text, ok := s.moods[username][date]
	return text, ok
}

// AppendSession adds an immutable study record. Same-day records are never
// merged; aggregation happens on read.
func (s *LedgerStore) AppendSession(username string, session models.StudySession) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[username] = append(s.sessions[username], session)
}

// Sessions returns a copy of all study records for the user.
func (s *LedgerStore) Sessions(username string) []models.StudySession {
	s.mu.RLock()
	defer s.mu.RUnlock()
	records := s.sessions[username]
	out := make([]models.StudySession, len(records))
	copy(out, records)
	return out
}

// TotalsFor sums study minutes per date over the supplied window,
// zero-filling days without records.
func (s *LedgerStore) TotalsFor(username string, dates []string) map[string]int {
	totals := make(map[string]int, len(dates))
	for _, d := range dates {
		totals[d] = 0
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, record := range s.sessions[username] {
		if _, inWindow := totals[record.Date]; inWindow {
			totals[record.Date] += record.Minutes
		}
	}
	return totals
}

// TotalRestSeconds sums recorded rest across all of the user's sessions.
func (s *LedgerStore) TotalRestSeconds(username string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	total := 0
	for _, record := range s.sessions[username] {
		total += record.RestSeconds
	}
	return total
}

// AppendHelpNote stores a personal anonymous help note.
func (s *LedgerStore) AppendHelpNote(username string, note models.HelpNote) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.helpNotes[username] = append(s.helpNotes[username], note)
}

// HelpNotes returns a copy of the user's help notes.
func (s *LedgerStore) HelpNotes(username string) []models.HelpNote {
	s.mu.RLock()
	defer s.mu.RUnlock()
	notes := s.helpNotes[username]
	out := make([]models.HelpNote, len(notes))
	copy(out, notes)
	return out
}
