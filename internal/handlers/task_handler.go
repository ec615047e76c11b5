package handlers

import (
	"net/http"

	"task-planner-api/internal/models"
	"task-planner-api/internal/realtime"
	"task-planner-api/internal/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// TaskHandler serves the task endpoints.
type TaskHandler struct {
	db  *gorm.DB
	hub *realtime.Hub
}

func NewTaskHandler(db *gorm.DB) *TaskHandler {
	return &TaskHandler{db: db, hub: realtime.GetHub()}
}

// CreateTaskRequest represents the request payload for creating a task
type CreateTaskRequest struct {
	Description string  `json:"description" binding:"required"`
	Reward      int64   `json:"reward"`
	ProjectID   uint    `json:"project_id" binding:"required"`
	Title       string  `json:"title" binding:"required"`
	DueDate     *string `json:"due_date"`
}

// UpdateTaskRequest represents the request payload for updating a task
type UpdateTaskRequest struct {
	Description   *string          `json:"description"`
	Reward        *int64           `json:"reward"`
	Completed     *bool            `json:"completed"`
	Title         *string          `json:"title"`
	Progress      *models.Progress `json:"progress"`
	Priority      *models.Priority `json:"priority"`
	DueDate       *string          `json:"due_date"`
	AssignedUsers *[]uint          `json:"assigned_users"`
}

// GrantAccessRequest names the user receiving a task access grant.
type GrantAccessRequest struct {
	UserID uint `json:"user_id" binding:"required"`
}

// CreateTask handles POST /api/tasks
func (h *TaskHandler) CreateTask(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		abortUnauthorized(c)
		return
	}

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	task, err := services.CreateTask(h.db, req.Description, req.Reward, req.ProjectID, userID, req.Title, req.DueDate)
	if err != nil {
		respondError(c, err)
		return
	}

	h.hub.Notify(userID, "task_created", task.ID)
	c.JSON(http.StatusCreated, task)
}

// GetTasks handles GET /api/tasks
// Returns the tasks owned by the authenticated user.
func (h *TaskHandler) GetTasks(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		abortUnauthorized(c)
		return
	}

	tasks, err := services.ListTasks(h.db, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"tasks": tasks,
		"count": len(tasks),
	})
}

// GetTaskByID handles GET /api/tasks/:id
// Returns the task with its subtasks, authorized at project level.
func (h *TaskHandler) GetTaskByID(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		abortUnauthorized(c)
		return
	}
	taskID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	task, err := services.GetTaskByID(h.db, taskID, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, task)
}

// UpdateTask handles PATCH /api/tasks/:id
// Applies a partial update; a supplied assigned_users list replaces the
// current assignee set wholesale.
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		abortUnauthorized(c)
		return
	}
	taskID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updated, err := services.UpdateTask(h.db, taskID, userID, services.UpdateTaskInput{
		Description:   req.Description,
		Reward:        req.Reward,
		Completed:     req.Completed,
		Title:         req.Title,
		Progress:      req.Progress,
		Priority:      req.Priority,
		DueDate:       req.DueDate,
		AssignedUsers: req.AssignedUsers,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	h.hub.Notify(userID, "task_updated", updated.Task.ID)
	c.JSON(http.StatusOK, updated)
}

// DeleteTask handles DELETE /api/tasks/:id
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		abortUnauthorized(c)
		return
	}
	taskID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := services.DeleteTask(h.db, taskID, userID); err != nil {
		respondError(c, err)
		return
	}

	h.hub.Notify(userID, "task_deleted", taskID)
	c.JSON(http.StatusOK, gin.H{
		"message": "Task deleted successfully",
		"id":      taskID,
	})
}

// GrantAccess handles POST /api/tasks/:id/access
// Grants another user explicit authorization on a task the caller owns.
func (h *TaskHandler) GrantAccess(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		abortUnauthorized(c)
		return
	}
	taskID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req GrantAccessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := services.GrantTaskAccess(h.db, taskID, userID, req.UserID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"task_id": taskID,
		"user_id": req.UserID,
	})
}
