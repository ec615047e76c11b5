package testutil

import (
	"testing"
	"time"

	"task-planner-api/internal/models"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// SeedUser inserts a user and returns it.
func SeedUser(t *testing.T, db *gorm.DB, username, email string) models.User {
	t.Helper()
	user := models.User{Username: username, Email: email, Password: "x"}
	require.NoError(t, db.Create(&user).Error)
	return user
}

// SeedProject inserts a project owned by userID.
func SeedProject(t *testing.T, db *gorm.DB, userID uint, title string) models.Project {
	t.Helper()
	project := models.Project{Title: title, Description: "seeded project", UserID: userID}
	require.NoError(t, db.Create(&project).Error)
	return project
}

// SeedTask inserts a task under projectID owned by userID.
func SeedTask(t *testing.T, db *gorm.DB, projectID, userID uint, title string) models.Task {
	t.Helper()
	task := models.Task{
		Title:       title,
		Description: "seeded task",
		Reward:      100,
		Progress:    models.ProgressToDo,
		Priority:    models.PriorityMedium,
		ProjectID:   projectID,
		UserID:      &userID,
		CreatedAt:   time.Now().UTC(),
	}
	require.NoError(t, db.Create(&task).Error)
	return task
}
