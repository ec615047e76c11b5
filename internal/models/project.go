package models

import "time"

// Project is owned by exactly one user, its creator.
type Project struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Title       string    `json:"title" gorm:"not null"`
	Description string    `json:"description"`
	UserID      uint      `json:"user_id" gorm:"index;not null"`
	CreatedAt   time.Time `json:"created_at"`
}

// TableName specifies the table name for Project Model
func (Project) TableName() string {
	return "projects"
}
