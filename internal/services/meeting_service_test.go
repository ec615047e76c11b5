package services

import (
	"testing"
	"time"

	"task-planner-api/internal/apperrors"
	"task-planner-api/internal/models"
	"task-planner-api/internal/testutil"

	"github.com/stretchr/testify/require"
)

func TestCreateMeeting_Success(t *testing.T) {
	db, err := testutil.NewInMemoryDB()
	require.NoError(t, err)

	user := testutil.SeedUser(t, db, "alice", "alice@test.com")

	start := time.Now().UTC().Add(time.Hour)
	end := start.Add(time.Hour)
	meeting, err := CreateMeeting(db, user.ID, start, end)
	require.NoError(t, err)
	require.Equal(t, user.ID, meeting.UserID)
}

func TestCreateMeeting_StartInPast(t *testing.T) {
	db, err := testutil.NewInMemoryDB()
	require.NoError(t, err)

	user := testutil.SeedUser(t, db, "alice", "alice@test.com")

	now := time.Now().UTC()
	_, err = CreateMeeting(db, user.ID, now.Add(-time.Hour), now.Add(time.Hour))
	require.Error(t, err)
	require.Equal(t, apperrors.InvalidStartDate, apperrors.KindOf(err))
}

func TestCreateMeeting_EndBeforeStart(t *testing.T) {
	db, err := testutil.NewInMemoryDB()
	require.NoError(t, err)

	user := testutil.SeedUser(t, db, "alice", "alice@test.com")

	now := time.Now().UTC()
	_, err = CreateMeeting(db, user.ID, now.Add(2*time.Hour), now.Add(time.Hour))
	require.Error(t, err)
	require.Equal(t, apperrors.InvalidDateRange, apperrors.KindOf(err))
}

func TestListMeetings_DurationMinutes(t *testing.T) {
	db, err := testutil.NewInMemoryDB()
	require.NoError(t, err)

	user := testutil.SeedUser(t, db, "alice", "alice@test.com")

	start := time.Now().UTC().Add(time.Hour)
	_, err = CreateMeeting(db, user.ID, start, start.Add(90*time.Minute))
	require.NoError(t, err)

	meetings, err := ListMeetings(db, user.ID)
	require.NoError(t, err)
	require.Len(t, meetings, 1)
	require.Equal(t, int64(90), meetings[0].Duration)
}

func TestUpdateMeeting_DefaultsToExisting(t *testing.T) {
	db, err := testutil.NewInMemoryDB()
	require.NoError(t, err)

	user := testutil.SeedUser(t, db, "alice", "alice@test.com")

	start := time.Now().UTC().Add(time.Hour)
	meeting, err := CreateMeeting(db, user.ID, start, start.Add(time.Hour))
	require.NoError(t, err)

	newEnd := start.Add(3 * time.Hour)
	updated, err := UpdateMeeting(db, meeting.ID, user.ID, nil, &newEnd)
	require.NoError(t, err)
	require.Equal(t, meeting.StartDate.Unix(), updated.StartDate.Unix())
	require.Equal(t, newEnd.Unix(), updated.EndDate.Unix())
}

func TestUpdateMeeting_NotFoundForOtherUser(t *testing.T) {
	db, err := testutil.NewInMemoryDB()
	require.NoError(t, err)

	alice := testutil.SeedUser(t, db, "alice", "alice@test.com")
	bob := testutil.SeedUser(t, db, "bob", "bob@test.com")

	start := time.Now().UTC().Add(time.Hour)
	meeting, err := CreateMeeting(db, alice.ID, start, start.Add(time.Hour))
	require.NoError(t, err)

	newEnd := start.Add(2 * time.Hour)
	_, err = UpdateMeeting(db, meeting.ID, bob.ID, nil, &newEnd)
	require.Error(t, err)
	require.Equal(t, apperrors.NotFound, apperrors.KindOf(err))
}

func TestUpdateMeeting_RevalidatesAgainstNow(t *testing.T) {
	db, err := testutil.NewInMemoryDB()
	require.NoError(t, err)

	user := testutil.SeedUser(t, db, "alice", "alice@test.com")

	// Insert a meeting whose start has already passed, bypassing the
	// service to simulate an old row.
	past := time.Now().UTC().Add(-time.Hour)
	meeting := models.Meeting{
		UserID:    user.ID,
		StartDate: past,
		EndDate:   past.Add(2 * time.Hour),
		CreatedAt: past,
		UpdatedAt: past,
	}
	require.NoError(t, db.Create(&meeting).Error)

	// Editing only the end still re-checks the stored start against now.
	newEnd := time.Now().UTC().Add(3 * time.Hour)
	_, err = UpdateMeeting(db, meeting.ID, user.ID, nil, &newEnd)
	require.Error(t, err)
	require.Equal(t, apperrors.InvalidStartDate, apperrors.KindOf(err))
}

func TestDeleteMeeting_OtherUserNotFoundAndRowSurvives(t *testing.T) {
	db, err := testutil.NewInMemoryDB()
	require.NoError(t, err)

	alice := testutil.SeedUser(t, db, "alice", "alice@test.com")
	bob := testutil.SeedUser(t, db, "bob", "bob@test.com")

	start := time.Now().UTC().Add(time.Hour)
	meeting, err := CreateMeeting(db, alice.ID, start, start.Add(time.Hour))
	require.NoError(t, err)

	err = DeleteMeeting(db, meeting.ID, bob.ID)
	require.Error(t, err)
	require.Equal(t, apperrors.NotFound, apperrors.KindOf(err))

	// The meeting remains retrievable by its owner.
	got, err := GetMeetingByID(db, meeting.ID, alice.ID)
	require.NoError(t, err)
	require.Equal(t, meeting.ID, got.ID)
}

func TestDeleteMeeting_Success(t *testing.T) {
	db, err := testutil.NewInMemoryDB()
	require.NoError(t, err)

	user := testutil.SeedUser(t, db, "alice", "alice@test.com")

	start := time.Now().UTC().Add(time.Hour)
	meeting, err := CreateMeeting(db, user.ID, start, start.Add(time.Hour))
	require.NoError(t, err)

	require.NoError(t, DeleteMeeting(db, meeting.ID, user.ID))

	_, err = GetMeetingByID(db, meeting.ID, user.ID)
	require.Error(t, err)
	require.Equal(t, apperrors.NotFound, apperrors.KindOf(err))
}
