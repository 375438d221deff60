package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kumusta-app/kumusta-api/internal/models"
)

func TestActivityStoreFirstCheckInOfDayWins(t *testing.T) {
	s := NewActivityStore()

	first, created := s.SubmitCheckIn("ABC123", models.EmotionCheckIn{
		Username: "ana", Emotion: models.EmotionHappy, Date: "2026-08-24",
	})
	require.True(t, created)
	assert.Equal(t, models.EmotionHappy, first.Emotion)

	second, created := s.SubmitCheckIn("ABC123", models.EmotionCheckIn{
		Username: "ana", Emotion: models.EmotionSad, Date: "2026-08-24",
	})
	assert.False(t, created)
	assert.Equal(t, models.EmotionHappy, second.Emotion)
}

func TestActivityStoreNewDayReplacesCheckIn(t *testing.T) {
	s := NewActivityStore()
	s.SubmitCheckIn("ABC123", models.EmotionCheckIn{Username: "ana", Emotion: models.EmotionHappy, Date: "2026-08-24"})

	stored, created := s.SubmitCheckIn("ABC123", models.EmotionCheckIn{Username: "ana", Emotion: models.EmotionTired, Date: "2026-08-25"})
	assert.True(t, created)
	assert.Equal(t, models.EmotionTired, stored.Emotion)

	checkIns := s.CheckIns("ABC123")
	require.Len(t, checkIns, 1)
	assert.Equal(t, "2026-08-25", checkIns["ana"].Date)
}

func TestActivityStoreListAndMarkHelpSeen(t *testing.T) {
	s := NewActivityStore()
	s.AppendHelp("ABC123", models.HelpMessage{ID: "1", Text: "first", SeenBy: []string{"ana"}})
	s.AppendHelp("ABC123", models.HelpMessage{ID: "2", Text: "second", SeenBy: []string{"ben"}})

	assert.Equal(t, 1, s.UnseenHelpCount([]string{"ABC123"}, "ana"))

	messages := s.ListAndMarkHelpSeen("ABC123", "ana")
	require.Len(t, messages, 2)
	assert.Equal(t, "second", messages[0].Text)

	assert.Equal(t, 0, s.UnseenHelpCount([]string{"ABC123"}, "ana"))
	assert.Equal(t, 1, s.UnseenHelpCount([]string{"ABC123"}, "cara"))
}

func TestActivityStoreAnnouncementsNewestFirst(t *testing.T) {
	s := NewActivityStore()
	s.AppendAnnouncement("ABC123", models.Announcement{ID: "1", Text: "old"})
	s.AppendAnnouncement("ABC123", models.Announcement{ID: "2", Text: "new"})

	list := s.Announcements("ABC123")
	require.Len(t, list, 2)
	assert.Equal(t, "new", list[0].Text)
}

func TestActivityStorePurgeClassroom(t *testing.T) {
	s := NewActivityStore()
	s.SubmitCheckIn("ABC123", models.EmotionCheckIn{Username: "ana", Emotion: models.EmotionHappy, Date: "2026-08-24"})
	s.AppendHelp("ABC123", models.HelpMessage{ID: "1", Text: "help"})
	s.AppendAnnouncement("ABC123", models.Announcement{ID: "1", Text: "note"})

	s.PurgeClassroom("ABC123")

	assert.Empty(t, s.CheckIns("ABC123"))
	assert.Empty(t, s.ListAndMarkHelpSeen("ABC123", "ana"))
	assert.Empty(t, s.Announcements("ABC123"))
}
