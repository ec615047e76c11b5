package handlers

import (
	"net/http"
	"time"

	"task-planner-api/internal/realtime"
	"task-planner-api/internal/services"
	"task-planner-api/internal/validation"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// MeetingHandler serves the meeting (agenda) endpoints.
type MeetingHandler struct {
	db  *gorm.DB
	hub *realtime.Hub
}

func NewMeetingHandler(db *gorm.DB) *MeetingHandler {
	return &MeetingHandler{db: db, hub: realtime.GetHub()}
}

// CreateMeetingRequest carries meeting bounds as 'DD-MM-YYYY HH:MM' strings.
type CreateMeetingRequest struct {
	StartDate string `json:"start_date" binding:"required"`
	EndDate   string `json:"end_date" binding:"required"`
}

// UpdateMeetingRequest carries optional replacement bounds.
type UpdateMeetingRequest struct {
	StartDate *string `json:"start_date"`
	EndDate   *string `json:"end_date"`
}

// CreateMeeting handles POST /api/meetings
func (h *MeetingHandler) CreateMeeting(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		abortUnauthorized(c)
		return
	}

	var req CreateMeetingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	start, err := validation.ParseMeetingTime(req.StartDate)
	if err != nil {
		respondError(c, err)
		return
	}
	end, err := validation.ParseMeetingTime(req.EndDate)
	if err != nil {
		respondError(c, err)
		return
	}

	meeting, err := services.CreateMeeting(h.db, userID, start, end)
	if err != nil {
		respondError(c, err)
		return
	}

	h.hub.Notify(userID, "meeting_created", meeting.ID)
	c.JSON(http.StatusCreated, meeting)
}

// GetMeetings handles GET /api/meetings
func (h *MeetingHandler) GetMeetings(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		abortUnauthorized(c)
		return
	}

	meetings, err := services.ListMeetings(h.db, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"meetings": meetings,
		"count":    len(meetings),
	})
}

// GetMeetingByID handles GET /api/meetings/:id
func (h *MeetingHandler) GetMeetingByID(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		abortUnauthorized(c)
		return
	}
	meetingID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	meeting, err := services.GetMeetingByID(h.db, meetingID, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, meeting)
}

// UpdateMeeting handles PATCH /api/meetings/:id
// Omitted bounds keep their stored values; the resulting pair is
// re-validated against current time.
func (h *MeetingHandler) UpdateMeeting(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		abortUnauthorized(c)
		return
	}
	meetingID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req UpdateMeetingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var start, end *time.Time
	if req.StartDate != nil {
		parsed, err := validation.ParseMeetingTime(*req.StartDate)
		if err != nil {
			respondError(c, err)
			return
		}
		start = &parsed
	}
	if req.EndDate != nil {
		parsed, err := validation.ParseMeetingTime(*req.EndDate)
		if err != nil {
			respondError(c, err)
			return
		}
		end = &parsed
	}

	meeting, err := services.UpdateMeeting(h.db, meetingID, userID, start, end)
	if err != nil {
		respondError(c, err)
		return
	}

	h.hub.Notify(userID, "meeting_updated", meeting.ID)
	c.JSON(http.StatusOK, meeting)
}

// DeleteMeeting handles DELETE /api/meetings/:id
func (h *MeetingHandler) DeleteMeeting(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		abortUnauthorized(c)
		return
	}
	meetingID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := services.DeleteMeeting(h.db, meetingID, userID); err != nil {
		respondError(c, err)
		return
	}

	h.hub.Notify(userID, "meeting_deleted", meetingID)
	c.Status(http.StatusNoContent)
}
