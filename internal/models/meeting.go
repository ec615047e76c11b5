package models

import "time"

// Meeting belongs to one user. Start must precede end, and neither may be
// in the past at creation or update time.
type Meeting struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"index;not null"`
	StartDate time.Time `json:"start_date" gorm:"not null"`
	EndDate   time.Time `json:"end_date" gorm:"not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for Meeting Model
func (Meeting) TableName() string {
	return "meetings"
}

// MeetingResponse adds the derived duration in minutes to a meeting.
type MeetingResponse struct {
	ID        uint      `json:"id"`
	UserID    uint      `json:"user_id"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
	Duration  int64     `json:"duration"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewMeetingResponse converts a stored meeting into its response shape.
func NewMeetingResponse(m Meeting) MeetingResponse {
	return MeetingResponse{
		ID:        m.ID,
		UserID:    m.UserID,
		StartDate: m.StartDate,
		EndDate:   m.EndDate,
		Duration:  int64(m.EndDate.Sub(m.StartDate).Minutes()),
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}
