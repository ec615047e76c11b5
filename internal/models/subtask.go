package models

import "time"

// SubTask belongs to one task; the parent task must exist at creation time.
type SubTask struct {
	ID          uint       `json:"id" gorm:"primaryKey"`
	TaskID      uint       `json:"task_id" gorm:"index;not null"`
	Title       string     `json:"title" gorm:"not null"`
	Description string     `json:"description"`
	Completed   bool       `json:"completed" gorm:"not null;default:false"`
	Progress    Progress   `json:"progress" gorm:"not null;default:'todo'"`
	Priority    Priority   `json:"priority" gorm:"not null;default:'medium'"`
	UserID      uint       `json:"user_id" gorm:"index;not null"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	DueDate     *time.Time `json:"due_date"`
}

// TableName specifies the table name for SubTask Model
func (SubTask) TableName() string {
	return "sub_tasks"
}

// SubTaskAssignee mirrors TaskAssignee at the subtask level.
type SubTaskAssignee struct {
	SubTaskID  uint      `json:"sub_task_id" gorm:"primaryKey;autoIncrement:false"`
	UserID     uint      `json:"user_id" gorm:"primaryKey;autoIncrement:false"`
	TaskID     uint      `json:"task_id" gorm:"index;not null"`
	AssignedAt time.Time `json:"assigned_at"`
}

// TableName specifies the table name for SubTaskAssignee Model
func (SubTaskAssignee) TableName() string {
	return "subtask_assignees"
}

// SubTaskWithAssignees pairs a subtask with the users assigned to it.
type SubTaskWithAssignees struct {
	SubTask   SubTask `json:"sub_task"`
	Assignees []User  `json:"assignees"`
}

// SubTaskWithAssignedUsers is returned from subtask updates.
type SubTaskWithAssignedUsers struct {
	SubTask       SubTask `json:"sub_task"`
	AssignedUsers []uint  `json:"assigned_users"`
}
