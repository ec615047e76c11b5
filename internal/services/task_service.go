package services

import (
	"errors"
	"time"

	"task-planner-api/internal/access"
	"task-planner-api/internal/apperrors"
	"task-planner-api/internal/models"
	"task-planner-api/internal/validation"

	"gorm.io/gorm"
)

// CreateTask inserts a new task under projectID for userID. The due date is
// an optional 'DD-MM-YYYY' string resolved through the date validator. The
// project must already exist.
func CreateTask(db *gorm.DB, description string, reward int64, projectID, userID uint, title string, dueDate *string) (*models.Task, error) {
	parsedDue, err := validation.ParseAndValidateDueDate(dueDate)
	if err != nil {
		return nil, err
	}

	var project models.Project
	if err := db.First(&project, projectID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.E(apperrors.ProjectNotFound, "project with id %d not found", projectID)
		}
		return nil, apperrors.Wrap(apperrors.Internal, err, "failed to fetch project")
	}

	task := models.Task{
		Title:       title,
		Description: description,
		Reward:      reward,
		Completed:   false,
		Progress:    models.ProgressToDo,
		Priority:    models.PriorityMedium,
		ProjectID:   projectID,
		UserID:      &userID,
		CreatedAt:   time.Now().UTC(),
		DueDate:     parsedDue,
	}
	if err := db.Create(&task).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.Internal, err, "failed to create task")
	}

	return &task, nil
}

// GetTaskByID returns a task together with its subtasks. The read path is
// authorized at project level: the caller must own the project containing
// the task, or hold a task grant within that project.
func GetTaskByID(db *gorm.DB, taskID, userID uint) (*models.TaskWithSubTasks, error) {
	var task models.Task
	if err := db.First(&task, taskID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.E(apperrors.NotFound, "task not found")
		}
		return nil, apperrors.Wrap(apperrors.Internal, err, "failed to fetch task")
	}

	if _, err := access.ValidateUserProjectAccess(db, userID, task.ProjectID); err != nil {
		return nil, err
	}

	var subtasks []models.SubTask
	if err := db.Where("task_id = ?", task.ID).Find(&subtasks).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.Internal, err, "failed to fetch subtasks")
	}

	return &models.TaskWithSubTasks{Task: task, SubTasks: subtasks}, nil
}

// ListTasks returns every task whose owning user matches userID.
func ListTasks(db *gorm.DB, userID uint) ([]models.Task, error) {
	var tasks []models.Task
	if err := db.Where("user_id = ?", userID).Find(&tasks).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.Internal, err, "failed to fetch tasks")
	}
	return tasks, nil
}

// UpdateTaskInput carries the optional fields of a task update. Nil fields
// are left unchanged. A non-nil AssignedUsers fully replaces the assignee
// set rather than merging with it.
type UpdateTaskInput struct {
	Description   *string
	Reward        *int64
	Completed     *bool
	Title         *string
	Progress      *models.Progress
	Priority      *models.Priority
	DueDate       *string
	AssignedUsers *[]uint
}

// UpdateTask applies a partial update to a task the user owns or has been
// granted access to. The field updates and the assignee replacement run in
// one transaction; a failure rolls back all of it.
func UpdateTask(db *gorm.DB, taskID, userID uint, in UpdateTaskInput) (*models.TaskWithAssignedUsers, error) {
	parsedDue, err := validation.ParseAndValidateDueDate(in.DueDate)
	if err != nil {
		return nil, err
	}

	var result models.TaskWithAssignedUsers
	err = db.Transaction(func(tx *gorm.DB) error {
		task, err := access.ValidateTaskOwnership(tx, taskID, userID)
		if err != nil {
			return err
		}

		if in.Description != nil {
			task.Description = *in.Description
		}
		if in.Reward != nil {
			task.Reward = *in.Reward
		}
		if in.Completed != nil {
			task.Completed = *in.Completed
		}
		if in.Title != nil {
			task.Title = *in.Title
		}
		if in.Progress != nil {
			task.Progress = *in.Progress
		}
		if in.Priority != nil {
			task.Priority = *in.Priority
		}
		if parsedDue != nil {
			task.DueDate = parsedDue
		}

		if err := tx.Save(task).Error; err != nil {
			return apperrors.Wrap(apperrors.Internal, err, "failed to update task")
		}

		if in.AssignedUsers != nil {
			if err := replaceTaskAssignees(tx, task.ID, *in.AssignedUsers); err != nil {
				return err
			}
		}

		var assigned []uint
		if err := tx.Model(&models.TaskAssignee{}).
			Where("task_id = ?", task.ID).
			Pluck("user_id", &assigned).Error; err != nil {
			return apperrors.Wrap(apperrors.Internal, err, "failed to fetch task assignees")
		}

		result = models.TaskWithAssignedUsers{Task: *task, AssignedUsers: assigned}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &result, nil
}

// replaceTaskAssignees clears the assignee relation for a task and inserts
// the new set. Callers must invoke it inside a transaction.
func replaceTaskAssignees(tx *gorm.DB, taskID uint, userIDs []uint) error {
	if err := tx.Where("task_id = ?", taskID).Delete(&models.TaskAssignee{}).Error; err != nil {
		return apperrors.Wrap(apperrors.Internal, err, "failed to clear task assignees")
	}
	if len(userIDs) == 0 {
		return nil
	}

	assignedAt := time.Now().UTC()
	rows := make([]models.TaskAssignee, 0, len(userIDs))
	for _, id := range userIDs {
		rows = append(rows, models.TaskAssignee{TaskID: taskID, UserID: id, AssignedAt: assignedAt})
	}
	if err := tx.Create(&rows).Error; err != nil {
		return apperrors.Wrap(apperrors.Internal, err, "failed to insert task assignees")
	}
	return nil
}

// GrantTaskAccess records an explicit authorization for granteeID on a task
// owned by ownerID. Only the task owner may grant access, and each
// (task, user) pair may be granted at most once.
func GrantTaskAccess(db *gorm.DB, taskID, ownerID, granteeID uint) error {
	task, err := access.ValidateTaskOwnership(db, taskID, ownerID)
	if err != nil {
		return err
	}
	if task.UserID == nil || *task.UserID != ownerID {
		return apperrors.E(apperrors.PermissionDenied, "not authorized")
	}

	var existing models.TaskAccess
	err = db.Where("task_id = ? AND user_id = ?", taskID, granteeID).First(&existing).Error
	if err == nil {
		return apperrors.E(apperrors.Conflict, "user %d already has access to task %d", granteeID, taskID)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.Wrap(apperrors.Internal, err, "failed to fetch task access")
	}

	grant := models.TaskAccess{TaskID: taskID, UserID: granteeID, GrantedAt: time.Now().UTC()}
	if err := db.Create(&grant).Error; err != nil {
		return apperrors.Wrap(apperrors.Internal, err, "failed to grant task access")
	}
	return nil
}

// DeleteTask removes a task the user owns, cascading to its subtasks and
// every assignee/access mapping, all in one transaction.
func DeleteTask(db *gorm.DB, taskID, userID uint) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var task models.Task
		err := tx.Where("id = ? AND user_id = ?", taskID, userID).First(&task).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.E(apperrors.NotFound, "task not found")
			}
			return apperrors.Wrap(apperrors.Internal, err, "failed to fetch task")
		}

		if err := tx.Where("task_id = ?", taskID).Delete(&models.SubTaskAssignee{}).Error; err != nil {
			return apperrors.Wrap(apperrors.Internal, err, "failed to delete subtask assignees")
		}
		if err := tx.Where("task_id = ?", taskID).Delete(&models.SubTask{}).Error; err != nil {
			return apperrors.Wrap(apperrors.Internal, err, "failed to delete subtasks")
		}
		if err := tx.Where("task_id = ?", taskID).Delete(&models.TaskAssignee{}).Error; err != nil {
			return apperrors.Wrap(apperrors.Internal, err, "failed to delete task assignees")
		}
		if err := tx.Where("task_id = ?", taskID).Delete(&models.TaskAccess{}).Error; err != nil {
			return apperrors.Wrap(apperrors.Internal, err, "failed to delete task access grants")
		}
		if err := tx.Delete(&task).Error; err != nil {
			return apperrors.Wrap(apperrors.Internal, err, "failed to delete task")
		}
		return nil
	})
}
