package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kumusta-app/kumusta-api/internal/models"
)

func TestClassroomStoreCreateRejectsDuplicateCode(t *testing.T) {
	s := NewClassroomStore()
	require.NoError(t, s.Create(models.Classroom{Code: "ABC123", Name: "Math", Owner: "ana"}))
	assert.ErrorIs(t, s.Create(models.Classroom{Code: "ABC123", Name: "Other", Owner: "ben"}), ErrDuplicate)
}

func TestClassroomStoreOwnerIsMemberAndIndexed(t *testing.T) {
	s := NewClassroomStore()
	require.NoError(t, s.Create(models.Classroom{Code: "ABC123", Name: "Math", Owner: "ana"}))

	member, err := s.IsMember("ABC123", "ana")
	require.NoError(t, err)
	assert.True(t, member)
	assert.Equal(t, []string{"ABC123"}, s.CodesFor("ana"))
}

func TestClassroomStoreJoinIsIdempotent(t *testing.T) {
	s := NewClassroomStore()
	require.NoError(t, s.Create(models.Classroom{Code: "ABC123", Owner: "ana"}))

	require.NoError(t, s.Join("ABC123", "ben"))
	require.NoError(t, s.Join("ABC123", "ben"))

	classroom, err := s.Get("ABC123")
	require.NoError(t, err)
	assert.Equal(t, []string{"ana", "ben"}, classroom.Members)
	assert.Equal(t, []string{"ABC123"}, s.CodesFor("ben"))
}

func TestClassroomStoreLeaveUnknownOrNotMember(t *testing.T) {
	s := NewClassroomStore()
	require.NoError(t, s.Create(models.Classroom{Code: "ABC123", Owner: "ana"}))

	assert.ErrorIs(t, s.Leave("NOPE00", "ana"), ErrNotFound)
	assert.ErrorIs(t, s.Leave("ABC123", "ben"), ErrNotFound)
}

func TestClassroomStoreDeleteStripsEveryIndex(t *testing.T) {
	s := NewClassroomStore()
	require.NoError(t, s.Create(models.Classroom{Code: "ABC123", Owner: "ana"}))
	require.NoError(t, s.Join("ABC123", "ben"))

	members, err := s.Delete("ABC123")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"ana", "ben"}, members)

	_, err = s.Get("ABC123")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Empty(t, s.CodesFor("ana"))
	assert.Empty(t, s.CodesFor("ben"))
}
