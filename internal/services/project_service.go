package services

import (
	"errors"
	"time"

	"task-planner-api/internal/access"
	"task-planner-api/internal/apperrors"
	"task-planner-api/internal/models"

	"gorm.io/gorm"
)

// CreateProject inserts a new project owned by userID.
func CreateProject(db *gorm.DB, title, description string, userID uint) (*models.Project, error) {
	project := models.Project{
		Title:       title,
		Description: description,
		UserID:      userID,
		CreatedAt:   time.Now().UTC(),
	}
	if err := db.Create(&project).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.Internal, err, "failed to create project")
	}
	return &project, nil
}

// ListProjects returns every project owned by userID.
func ListProjects(db *gorm.DB, userID uint) ([]models.Project, error) {
	var projects []models.Project
	if err := db.Where("user_id = ?", userID).Find(&projects).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.Internal, err, "failed to fetch projects")
	}
	return projects, nil
}

// GetProjectByID returns a project the user owns or has task-grant access to.
func GetProjectByID(db *gorm.DB, projectID, userID uint) (*models.Project, error) {
	return access.ValidateUserProjectAccess(db, userID, projectID)
}

// DeleteProject removes a project the user owns, cascading to its tasks,
// subtasks, and every assignee/access mapping, in one transaction.
func DeleteProject(db *gorm.DB, projectID, userID uint) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var project models.Project
		err := tx.Where("id = ? AND user_id = ?", projectID, userID).First(&project).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.E(apperrors.NotFound, "project not found")
			}
			return apperrors.Wrap(apperrors.Internal, err, "failed to fetch project")
		}

		var taskIDs []uint
		if err := tx.Model(&models.Task{}).
			Where("project_id = ?", projectID).
			Pluck("id", &taskIDs).Error; err != nil {
			return apperrors.Wrap(apperrors.Internal, err, "failed to fetch project tasks")
		}

		if len(taskIDs) > 0 {
			if err := tx.Where("task_id IN ?", taskIDs).Delete(&models.SubTaskAssignee{}).Error; err != nil {
				return apperrors.Wrap(apperrors.Internal, err, "failed to delete subtask assignees")
			}
			if err := tx.Where("task_id IN ?", taskIDs).Delete(&models.SubTask{}).Error; err != nil {
				return apperrors.Wrap(apperrors.Internal, err, "failed to delete subtasks")
			}
			if err := tx.Where("task_id IN ?", taskIDs).Delete(&models.TaskAssignee{}).Error; err != nil {
				return apperrors.Wrap(apperrors.Internal, err, "failed to delete task assignees")
			}
			if err := tx.Where("task_id IN ?", taskIDs).Delete(&models.TaskAccess{}).Error; err != nil {
				return apperrors.Wrap(apperrors.Internal, err, "failed to delete task access grants")
			}
			if err := tx.Where("project_id = ?", projectID).Delete(&models.Task{}).Error; err != nil {
				return apperrors.Wrap(apperrors.Internal, err, "failed to delete tasks")
			}
		}

		if err := tx.Delete(&project).Error; err != nil {
			return apperrors.Wrap(apperrors.Internal, err, "failed to delete project")
		}
		return nil
	})
}
