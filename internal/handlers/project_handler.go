package handlers

import (
	"net/http"

	"task-planner-api/internal/realtime"
	"task-planner-api/internal/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ProjectHandler serves the project endpoints.
type ProjectHandler struct {
	db  *gorm.DB
	hub *realtime.Hub
}

func NewProjectHandler(db *gorm.DB) *ProjectHandler {
	return &ProjectHandler{db: db, hub: realtime.GetHub()}
}

// CreateProjectRequest represents the request payload for creating a project
type CreateProjectRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
}

// CreateProject handles POST /api/projects
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		abortUnauthorized(c)
		return
	}

	var req CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	project, err := services.CreateProject(h.db, req.Title, req.Description, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	h.hub.Notify(userID, "project_created", project.ID)
	c.JSON(http.StatusCreated, project)
}

// GetProjects handles GET /api/projects
func (h *ProjectHandler) GetProjects(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		abortUnauthorized(c)
		return
	}

	projects, err := services.ListProjects(h.db, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"projects": projects,
		"count":    len(projects),
	})
}

// GetProjectByID handles GET /api/projects/:id
func (h *ProjectHandler) GetProjectByID(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		abortUnauthorized(c)
		return
	}
	projectID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	project, err := services.GetProjectByID(h.db, projectID, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, project)
}

// DeleteProject handles DELETE /api/projects/:id
func (h *ProjectHandler) DeleteProject(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		abortUnauthorized(c)
		return
	}
	projectID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := services.DeleteProject(h.db, projectID, userID); err != nil {
		respondError(c, err)
		return
	}

	h.hub.Notify(userID, "project_deleted", projectID)
	c.Status(http.StatusNoContent)
}
