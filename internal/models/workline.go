package models

import (
	"gorm.io/gorm"
)

// WorkLine is the top-level partition: every project, task and risk belongs
// to exactly one line. Deleting a line does not cascade to its children.
type WorkLine struct {
	ID          string `json:"id" gorm:"primaryKey"`
	Name        string `json:"name" gorm:"not null"`
	Description string `json:"description"`
	CreatedAt   string `json:"createdAt" gorm:"column:created_at_iso"`
	gorm.Model  `json:"-"`
}

// TableName specifies the table name for the WorkLine model
func (WorkLine) TableName() string {
	return "work_lines"
}
