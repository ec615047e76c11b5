package services

import (
	"errors"
	"time"

	"task-planner-api/internal/apperrors"
	"task-planner-api/internal/models"
	"task-planner-api/internal/validation"

	"gorm.io/gorm"
)

// CreateSubTaskInput carries the fields for a new subtask. CreatedAt and
// DueDate are optional 'DD-MM-YYYY' strings.
type CreateSubTaskInput struct {
	TaskID        uint
	Title         string
	Description   string
	CreatedAt     *string
	DueDate       *string
	Priority      models.Priority
	Progress      models.Progress
	AssignedUsers []uint
}

// CreateSubTask inserts a subtask under an existing task. The parent task
// must exist; assignees, when given, are inserted in the same transaction.
func CreateSubTask(db *gorm.DB, userID uint, in CreateSubTaskInput) (*models.SubTask, error) {
	var parent models.Task
	if err := db.First(&parent, in.TaskID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.E(apperrors.TaskNotFound, "task with id %d not found", in.TaskID)
		}
		return nil, apperrors.Wrap(apperrors.Internal, err, "failed to fetch task")
	}

	createdAt, err := validation.ParseAndValidateCreatedAt(in.CreatedAt)
	if err != nil {
		return nil, err
	}
	dueDate, err := validation.ParseAndValidateDueDate(in.DueDate)
	if err != nil {
		return nil, err
	}

	priority := in.Priority
	if priority == "" {
		priority = models.PriorityMedium
	}
	progress := in.Progress
	if progress == "" {
		progress = models.ProgressToDo
	}

	subtask := models.SubTask{
		TaskID:      in.TaskID,
		Title:       in.Title,
		Description: in.Description,
		Completed:   false,
		Progress:    progress,
		Priority:    priority,
		UserID:      userID,
		CreatedAt:   createdAt,
		UpdatedAt:   time.Now().UTC(),
		DueDate:     dueDate,
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&subtask).Error; err != nil {
			return apperrors.Wrap(apperrors.Internal, err, "failed to create subtask")
		}
		if len(in.AssignedUsers) > 0 {
			return insertSubTaskAssignees(tx, subtask.ID, in.TaskID, in.AssignedUsers)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &subtask, nil
}

// ListSubTasks returns every subtask created by userID.
func ListSubTasks(db *gorm.DB, userID uint) ([]models.SubTask, error) {
	var subtasks []models.SubTask
	if err := db.Where("user_id = ?", userID).Find(&subtasks).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.Internal, err, "failed to fetch subtasks")
	}
	return subtasks, nil
}

// GetSubTasksWithAssignees returns the subtasks of a task, each paired with
// the users currently assigned to it.
func GetSubTasksWithAssignees(db *gorm.DB, taskID uint) ([]models.SubTaskWithAssignees, error) {
	var subtasks []models.SubTask
	if err := db.Where("task_id = ?", taskID).Find(&subtasks).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.Internal, err, "failed to fetch subtasks")
	}

	result := make([]models.SubTaskWithAssignees, 0, len(subtasks))
	for _, subtask := range subtasks {
		var assignees []models.User
		err := db.Model(&models.User{}).
			Joins("JOIN subtask_assignees ON subtask_assignees.user_id = users.id").
			Where("subtask_assignees.sub_task_id = ?", subtask.ID).
			Find(&assignees).Error
		if err != nil {
			return nil, apperrors.Wrap(apperrors.Internal, err, "failed to fetch subtask assignees")
		}
		result = append(result, models.SubTaskWithAssignees{SubTask: subtask, Assignees: assignees})
	}

	return result, nil
}

// UpdateSubTaskInput carries the optional fields of a subtask update.
type UpdateSubTaskInput struct {
	Title         *string
	Description   *string
	Completed     *bool
	Progress      *models.Progress
	Priority      *models.Priority
	CreatedAt     *string
	DueDate       *string
	AssignedUsers *[]uint
}

// UpdateSubTask applies a partial update to a subtask scoped by the
// (subtask, task, user) triple. A mismatch on any of the three reports
// "not found or unauthorized" without distinguishing which. Field updates
// and assignee replacement run in one transaction.
func UpdateSubTask(db *gorm.DB, subTaskID, taskID, userID uint, in UpdateSubTaskInput) (*models.SubTaskWithAssignedUsers, error) {
	var parsedCreatedAt *time.Time
	if in.CreatedAt != nil {
		created, err := validation.ParseAndValidateCreatedAt(in.CreatedAt)
		if err != nil {
			return nil, err
		}
		parsedCreatedAt = &created
	}
	parsedDue, err := validation.ParseAndValidateDueDate(in.DueDate)
	if err != nil {
		return nil, err
	}

	var result models.SubTaskWithAssignedUsers
	err = db.Transaction(func(tx *gorm.DB) error {
		var subtask models.SubTask
		err := tx.Where("id = ? AND task_id = ? AND user_id = ?", subTaskID, taskID, userID).
			First(&subtask).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.E(apperrors.NotFound, "subtask not found or unauthorized")
			}
			return apperrors.Wrap(apperrors.Internal, err, "failed to fetch subtask")
		}

		if in.Title != nil {
			subtask.Title = *in.Title
		}
		if in.Description != nil {
			subtask.Description = *in.Description
		}
		if in.Completed != nil {
			subtask.Completed = *in.Completed
		}
		if in.Progress != nil {
			subtask.Progress = *in.Progress
		}
		if in.Priority != nil {
			subtask.Priority = *in.Priority
		}
		if parsedCreatedAt != nil {
			subtask.CreatedAt = *parsedCreatedAt
		}
		if parsedDue != nil {
			subtask.DueDate = parsedDue
		}
		subtask.UpdatedAt = time.Now().UTC()

		if err := tx.Save(&subtask).Error; err != nil {
			return apperrors.Wrap(apperrors.Internal, err, "failed to update subtask")
		}

		if in.AssignedUsers != nil {
			if err := tx.Where("sub_task_id = ?", subtask.ID).
				Delete(&models.SubTaskAssignee{}).Error; err != nil {
				return apperrors.Wrap(apperrors.Internal, err, "failed to clear subtask assignees")
			}
			if len(*in.AssignedUsers) > 0 {
				if err := insertSubTaskAssignees(tx, subtask.ID, taskID, *in.AssignedUsers); err != nil {
					return err
				}
			}
		}

		var assigned []uint
		if err := tx.Model(&models.SubTaskAssignee{}).
			Where("sub_task_id = ?", subtask.ID).
			Pluck("user_id", &assigned).Error; err != nil {
			return apperrors.Wrap(apperrors.Internal, err, "failed to fetch subtask assignees")
		}

		result = models.SubTaskWithAssignedUsers{SubTask: subtask, AssignedUsers: assigned}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &result, nil
}

// DeleteSubTask removes a subtask scoped by the (subtask, task, user)
// triple, cascading to its assignee rows. Any mismatch reports NotFound.
func DeleteSubTask(db *gorm.DB, subTaskID, taskID, userID uint) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var subtask models.SubTask
		err := tx.Where("id = ? AND task_id = ? AND user_id = ?", subTaskID, taskID, userID).
			First(&subtask).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.E(apperrors.NotFound, "subtask not found or unauthorized")
			}
			return apperrors.Wrap(apperrors.Internal, err, "failed to fetch subtask")
		}

		if err := tx.Where("sub_task_id = ?", subtask.ID).
			Delete(&models.SubTaskAssignee{}).Error; err != nil {
			return apperrors.Wrap(apperrors.Internal, err, "failed to delete subtask assignees")
		}
		if err := tx.Delete(&subtask).Error; err != nil {
			return apperrors.Wrap(apperrors.Internal, err, "failed to delete subtask")
		}
		return nil
	})
}

func insertSubTaskAssignees(tx *gorm.DB, subTaskID, taskID uint, userIDs []uint) error {
	assignedAt := time.Now().UTC()
	rows := make([]models.SubTaskAssignee, 0, len(userIDs))
	for _, id := range userIDs {
		rows = append(rows, models.SubTaskAssignee{
			SubTaskID:  subTaskID,
			UserID:     id,
			TaskID:     taskID,
			AssignedAt: assignedAt,
		})
	}
	if err := tx.Create(&rows).Error; err != nil {
		return apperrors.Wrap(apperrors.Internal, err, "failed to insert subtask assignees")
	}
	return nil
}
