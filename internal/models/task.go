package models

import "time"

// Progress represents the lifecycle stage of a task or subtask
type Progress string

const (
	ProgressToDo       Progress = "todo"
	ProgressInProgress Progress = "inProgress"
	ProgressCompleted  Progress = "completed"
)

// Priority represents the urgency of a task or subtask
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Task represents a task in the system. Every task belongs to one project;
// the owning user is optional at the schema level.
type Task struct {
	ID          uint       `json:"id" gorm:"primaryKey"`
	Title       string     `json:"title" gorm:"not null"`
	Description string     `json:"description"`
	Reward      int64      `json:"reward"`
	Completed   bool       `json:"completed" gorm:"not null;default:false"`
	Progress    Progress   `json:"progress" gorm:"not null;default:'todo'"`
	Priority    Priority   `json:"priority" gorm:"not null;default:'medium'"`
	ProjectID   uint       `json:"project_id" gorm:"index;not null"`
	UserID      *uint      `json:"user_id" gorm:"index"`
	CreatedAt   time.Time  `json:"created_at"`
	DueDate     *time.Time `json:"due_date"`
}

// TableName specifies the table name for Task Model
func (Task) TableName() string {
	return "tasks"
}

// TaskAssignee is the many-to-many join between tasks and users carrying
// responsibility (not authorization). Composite key keeps each pair unique.
type TaskAssignee struct {
	TaskID     uint      `json:"task_id" gorm:"primaryKey;autoIncrement:false"`
	UserID     uint      `json:"user_id" gorm:"primaryKey;autoIncrement:false"`
	AssignedAt time.Time `json:"assigned_at"`
}

// TableName specifies the table name for TaskAssignee Model
func (TaskAssignee) TableName() string {
	return "task_assignees"
}

// TaskAccess grants a non-owner user explicit permission to act on a task.
// Access implies authorization, assignment implies responsibility.
type TaskAccess struct {
	TaskID    uint      `json:"task_id" gorm:"primaryKey;autoIncrement:false"`
	UserID    uint      `json:"user_id" gorm:"primaryKey;autoIncrement:false"`
	GrantedAt time.Time `json:"granted_at"`
}

// TableName specifies the table name for TaskAccess Model
func (TaskAccess) TableName() string {
	return "task_access"
}

// TaskWithSubTasks is the read-path projection of a task and its subtasks.
type TaskWithSubTasks struct {
	Task     Task      `json:"task"`
	SubTasks []SubTask `json:"subtasks"`
}

// TaskWithAssignedUsers is returned from task updates: the task plus the ids
// of users currently assigned to it.
type TaskWithAssignedUsers struct {
	Task          Task   `json:"task"`
	AssignedUsers []uint `json:"assigned_users"`
}
