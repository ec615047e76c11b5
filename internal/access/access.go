package access

import (
	"errors"

	"task-planner-api/internal/apperrors"
	"task-planner-api/internal/models"

	"gorm.io/gorm"
)

// ValidateTaskOwnership returns the task when userID may act on it: either
// the user created the task, or a TaskAccess grant exists for the pair.
// The ownership check runs first so it short-circuits without a second
// lookup. Failures never confirm whether the task exists.
func ValidateTaskOwnership(db *gorm.DB, taskID, userID uint) (*models.Task, error) {
	var task models.Task
	if err := db.First(&task, taskID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.E(apperrors.PermissionDenied, "not authorized")
		}
		return nil, apperrors.Wrap(apperrors.Internal, err, "failed to fetch task")
	}

	if task.UserID != nil && *task.UserID == userID {
		return &task, nil
	}

	var grant models.TaskAccess
	err := db.Where("task_id = ? AND user_id = ?", taskID, userID).First(&grant).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.E(apperrors.PermissionDenied, "not authorized")
		}
		return nil, apperrors.Wrap(apperrors.Internal, err, "failed to fetch task access")
	}

	return &task, nil
}

// ValidateUserProjectAccess returns the project when userID may act on it:
// either the user created the project, or the user holds a TaskAccess grant
// on some task inside it.
func ValidateUserProjectAccess(db *gorm.DB, userID, projectID uint) (*models.Project, error) {
	var project models.Project
	if err := db.First(&project, projectID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.E(apperrors.PermissionDenied, "not authorized")
		}
		return nil, apperrors.Wrap(apperrors.Internal, err, "failed to fetch project")
	}

	if project.UserID == userID {
		return &project, nil
	}

	var granted int64
	err := db.Model(&models.TaskAccess{}).
		Joins("JOIN tasks ON tasks.id = task_access.task_id").
		Where("tasks.project_id = ? AND task_access.user_id = ?", projectID, userID).
		Count(&granted).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.Internal, err, "failed to fetch task access")
	}
	if granted == 0 {
		return nil, apperrors.E(apperrors.PermissionDenied, "not authorized")
	}

	return &project, nil
}
