package services

import (
	"errors"
	"time"

	"task-planner-api/internal/apperrors"
	"task-planner-api/internal/models"
	"task-planner-api/internal/validation"

	"gorm.io/gorm"
)

// CreateMeeting validates the date pair and inserts a meeting for userID.
func CreateMeeting(db *gorm.DB, userID uint, start, end time.Time) (*models.Meeting, error) {
	if err := validation.ValidateMeetingDates(start, end); err != nil {
		return nil, err
	}

	meetingTime := time.Now().UTC()
	meeting := models.Meeting{
		UserID:    userID,
		StartDate: start,
		EndDate:   end,
		CreatedAt: meetingTime,
		UpdatedAt: meetingTime,
	}
	if err := db.Create(&meeting).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.Internal, err, "failed to create meeting")
	}

	return &meeting, nil
}

// ListMeetings returns every meeting owned by userID.
func ListMeetings(db *gorm.DB, userID uint) ([]models.MeetingResponse, error) {
	var meetings []models.Meeting
	if err := db.Where("user_id = ?", userID).Find(&meetings).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.Internal, err, "failed to fetch meetings")
	}

	responses := make([]models.MeetingResponse, 0, len(meetings))
	for _, m := range meetings {
		responses = append(responses, models.NewMeetingResponse(m))
	}
	return responses, nil
}

// GetMeetingByID returns a meeting scoped to its owner. A meeting that does
// not exist and a meeting owned by someone else are indistinguishable.
func GetMeetingByID(db *gorm.DB, meetingID, userID uint) (*models.MeetingResponse, error) {
	var meeting models.Meeting
	err := db.Where("id = ? AND user_id = ?", meetingID, userID).First(&meeting).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.E(apperrors.NotFound, "meeting not found")
		}
		return nil, apperrors.Wrap(apperrors.Internal, err, "failed to fetch meeting")
	}

	resp := models.NewMeetingResponse(meeting)
	return &resp, nil
}

// UpdateMeeting changes the start and/or end of a meeting owned by userID.
// Missing fields default to the stored values, and the resulting pair is
// re-validated against current time: a previously valid meeting can become
// invalid to edit once its start has passed.
func UpdateMeeting(db *gorm.DB, meetingID, userID uint, start, end *time.Time) (*models.MeetingResponse, error) {
	var meeting models.Meeting
	err := db.Where("id = ? AND user_id = ?", meetingID, userID).First(&meeting).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.E(apperrors.NotFound, "meeting not found")
		}
		return nil, apperrors.Wrap(apperrors.Internal, err, "failed to fetch meeting")
	}

	newStart := meeting.StartDate
	if start != nil {
		newStart = *start
	}
	newEnd := meeting.EndDate
	if end != nil {
		newEnd = *end
	}

	if err := validation.ValidateMeetingDates(newStart, newEnd); err != nil {
		return nil, err
	}

	meeting.StartDate = newStart
	meeting.EndDate = newEnd
	meeting.UpdatedAt = time.Now().UTC()
	if err := db.Save(&meeting).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.Internal, err, "failed to update meeting")
	}

	resp := models.NewMeetingResponse(meeting)
	return &resp, nil
}

// DeleteMeeting removes a meeting owned by userID. An ownership mismatch is
// reported as NotFound, never as a permission error, so callers cannot
// probe for other users' meetings.
func DeleteMeeting(db *gorm.DB, meetingID, userID uint) error {
	var meeting models.Meeting
	if err := db.First(&meeting, meetingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.E(apperrors.NotFound, "meeting not found")
		}
		return apperrors.Wrap(apperrors.Internal, err, "failed to fetch meeting")
	}

	if meeting.UserID != userID {
		return apperrors.E(apperrors.NotFound, "meeting not found")
	}

	if err := db.Where("id = ? AND user_id = ?", meetingID, userID).
		Delete(&models.Meeting{}).Error; err != nil {
		return apperrors.Wrap(apperrors.Internal, err, "failed to delete meeting")
	}
	return nil
}
