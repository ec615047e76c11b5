package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"task-planner-api/internal/middleware"
	"task-planner-api/internal/models"
	"task-planner-api/internal/testutil"
	"task-planner-api/internal/validation"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newMeetingRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewMeetingHandler(db)
	r := gin.New()
	api := r.Group("/api")
	api.Use(middleware.JWTAuthMiddleware())
	api.POST("/meetings", h.CreateMeeting)
	api.GET("/meetings", h.GetMeetings)
	api.GET("/meetings/:id", h.GetMeetingByID)
	api.PATCH("/meetings/:id", h.UpdateMeeting)
	api.DELETE("/meetings/:id", h.DeleteMeeting)
	return r
}

func TestCreateMeeting_Success(t *testing.T) {
	db, err := testutil.NewInMemoryDB()
	require.NoError(t, err)

	user := testutil.SeedUser(t, db, "alice", "alice@test.com")

	start := time.Now().UTC().Add(24 * time.Hour)
	end := start.Add(time.Hour)
	r := newMeetingRouter(db)
	req := authedRequest(t, http.MethodPost, "/api/meetings", map[string]string{
		"start_date": start.Format(validation.MeetingTimeLayout),
		"end_date":   end.Format(validation.MeetingTimeLayout),
	}, user)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code)

	var created models.Meeting
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	require.Equal(t, user.ID, created.UserID)
}

func TestCreateMeeting_StartInPast(t *testing.T) {
	db, err := testutil.NewInMemoryDB()
	require.NoError(t, err)

	user := testutil.SeedUser(t, db, "alice", "alice@test.com")

	start := time.Now().UTC().Add(-time.Hour)
	end := time.Now().UTC().Add(time.Hour)
	r := newMeetingRouter(db)
	req := authedRequest(t, http.MethodPost, "/api/meetings", map[string]string{
		"start_date": start.Format(validation.MeetingTimeLayout),
		"end_date":   end.Format(validation.MeetingTimeLayout),
	}, user)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, w.Body.String(), "start date")
}

func TestCreateMeeting_BadFormat(t *testing.T) {
	db, err := testutil.NewInMemoryDB()
	require.NoError(t, err)

	user := testutil.SeedUser(t, db, "alice", "alice@test.com")

	r := newMeetingRouter(db)
	req := authedRequest(t, http.MethodPost, "/api/meetings", map[string]string{
		"start_date": "2025-06-15T10:00:00Z",
		"end_date":   "2025-06-15T11:00:00Z",
	}, user)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeleteMeeting_OtherUser(t *testing.T) {
	db, err := testutil.NewInMemoryDB()
	require.NoError(t, err)

	alice := testutil.SeedUser(t, db, "alice", "alice@test.com")
	bob := testutil.SeedUser(t, db, "bob", "bob@test.com")

	start := time.Now().UTC().Add(24 * time.Hour)
	meeting := models.Meeting{
		UserID:    alice.ID,
		StartDate: start,
		EndDate:   start.Add(time.Hour),
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}
	require.NoError(t, db.Create(&meeting).Error)

	r := newMeetingRouter(db)
	req := authedRequest(t, http.MethodDelete, fmt.Sprintf("/api/meetings/%d", meeting.ID), nil, bob)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusNotFound, w.Code)

	// Still retrievable by its owner.
	req = authedRequest(t, http.MethodGet, fmt.Sprintf("/api/meetings/%d", meeting.ID), nil, alice)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
}
