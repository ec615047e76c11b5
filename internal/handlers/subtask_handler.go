package handlers

import (
	"net/http"

	"task-planner-api/internal/models"
	"task-planner-api/internal/realtime"
	"task-planner-api/internal/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SubTaskHandler serves the subtask endpoints.
type SubTaskHandler struct {
	db  *gorm.DB
	hub *realtime.Hub
}

func NewSubTaskHandler(db *gorm.DB) *SubTaskHandler {
	return &SubTaskHandler{db: db, hub: realtime.GetHub()}
}

// CreateSubTaskRequest represents the request payload for creating a subtask
type CreateSubTaskRequest struct {
	TaskID        uint            `json:"task_id" binding:"required"`
	Title         string          `json:"title" binding:"required"`
	Description   string          `json:"description"`
	CreatedAt     *string         `json:"created_at"`
	DueDate       *string         `json:"due_date"`
	Priority      models.Priority `json:"priority"`
	Progress      models.Progress `json:"progress"`
	AssignedUsers []uint          `json:"assigned_users"`
}

// UpdateSubTaskRequest represents the request payload for updating a subtask
type UpdateSubTaskRequest struct {
	Title         *string          `json:"title"`
	Description   *string          `json:"description"`
	Completed     *bool            `json:"completed"`
	Progress      *models.Progress `json:"progress"`
	Priority      *models.Priority `json:"priority"`
	CreatedAt     *string          `json:"created_at"`
	DueDate       *string          `json:"due_date"`
	AssignedUsers *[]uint          `json:"assigned_users"`
}

// CreateSubTask handles POST /api/subtasks
func (h *SubTaskHandler) CreateSubTask(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		abortUnauthorized(c)
		return
	}

	var req CreateSubTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	subtask, err := services.CreateSubTask(h.db, userID, services.CreateSubTaskInput{
		TaskID:        req.TaskID,
		Title:         req.Title,
		Description:   req.Description,
		CreatedAt:     req.CreatedAt,
		DueDate:       req.DueDate,
		Priority:      req.Priority,
		Progress:      req.Progress,
		AssignedUsers: req.AssignedUsers,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	h.hub.Notify(userID, "subtask_created", subtask.ID)
	c.JSON(http.StatusCreated, subtask)
}

// GetSubTasks handles GET /api/subtasks
// Returns the subtasks created by the authenticated user.
func (h *SubTaskHandler) GetSubTasks(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		abortUnauthorized(c)
		return
	}

	subtasks, err := services.ListSubTasks(h.db, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"subtasks": subtasks,
		"count":    len(subtasks),
	})
}

// GetSubTasksWithAssignees handles GET /api/subtasks/:task_id
// Returns every subtask of the task with its assigned users.
func (h *SubTaskHandler) GetSubTasksWithAssignees(c *gin.Context) {
	if _, ok := currentUserID(c); !ok {
		abortUnauthorized(c)
		return
	}
	taskID, ok := parseIDParam(c, "task_id")
	if !ok {
		return
	}

	subtasks, err := services.GetSubTasksWithAssignees(h.db, taskID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, subtasks)
}

// UpdateSubTask handles PATCH /api/subtasks/:task_id/:id
// The (subtask, task, user) triple must match; any mismatch reads as
// not found.
func (h *SubTaskHandler) UpdateSubTask(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		abortUnauthorized(c)
		return
	}
	taskID, ok := parseIDParam(c, "task_id")
	if !ok {
		return
	}
	subTaskID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req UpdateSubTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updated, err := services.UpdateSubTask(h.db, subTaskID, taskID, userID, services.UpdateSubTaskInput{
		Title:         req.Title,
		Description:   req.Description,
		Completed:     req.Completed,
		Progress:      req.Progress,
		Priority:      req.Priority,
		CreatedAt:     req.CreatedAt,
		DueDate:       req.DueDate,
		AssignedUsers: req.AssignedUsers,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	h.hub.Notify(userID, "subtask_updated", updated.SubTask.ID)
	c.JSON(http.StatusOK, updated)
}

// DeleteSubTask handles DELETE /api/subtasks/:task_id/:id
func (h *SubTaskHandler) DeleteSubTask(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		abortUnauthorized(c)
		return
	}
	taskID, ok := parseIDParam(c, "task_id")
	if !ok {
		return
	}
	subTaskID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := services.DeleteSubTask(h.db, subTaskID, taskID, userID); err != nil {
		respondError(c, err)
		return
	}

	h.hub.Notify(userID, "subtask_deleted", subTaskID)
	c.Status(http.StatusNoContent)
}
