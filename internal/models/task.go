package models

import (
	"gorm.io/gorm"
)

// TaskStatus represents the status of a task
type TaskStatus string

const (
	StatusReadyToStart TaskStatus = "Ready to Start"
	StatusInProgress   TaskStatus = "In Progress"
	StatusDelayed      TaskStatus = "Delayed"
	StatusCompleted    TaskStatus = "Completed"
)

// ChecklistItem is a single entry of a task's checklist.
type ChecklistItem struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}

// Attachment is a file attached to a task, stored inline as a data URL.
type Attachment struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	MimeType  string `json:"type"`
	Size      int64  `json:"size"`
	Data      string `json:"data"`
	CreatedAt string `json:"createdAt"`
}

// Task represents a task or subtask in the system.
// A task with an empty ParentID is top-level; a non-empty ParentID must
// reference a top-level task (one level of nesting only, enforced at the
// mutation boundary).
//
// The stored Progress of a top-level task is authoritative only while it has
// no subtasks. Once children exist, the effective value is the rounded mean
// of the children's progress, computed at read time; the stored field is
// ignored.
type Task struct {
	ID           string          `json:"id" gorm:"primaryKey"`
	LineID       string          `json:"lineId" gorm:"column:line_id;index"`
	ProjectID    string          `json:"projectId" gorm:"column:project_id;index"`
	ParentID     string          `json:"parentId" gorm:"column:parent_id;index"`
	Title        string          `json:"title" gorm:"not null"`
	Assignee     string          `json:"assignee"`
	StartDate    string          `json:"startDate" gorm:"column:start_date"`
	EndDate      string          `json:"endDate" gorm:"column:end_date"`
	Priority     Level           `json:"priority" gorm:"default:'Medium'"`
	Difficulty   Level           `json:"difficulty" gorm:"default:'Medium'"`
	Progress     int             `json:"progress" gorm:"default:0"`
	Status       TaskStatus      `json:"status" gorm:"default:'Ready to Start'"`
	Dependencies string          `json:"dependencies"`
	Comments     string          `json:"comments"`
	Checklist    []ChecklistItem `json:"checklist" gorm:"serializer:json"`
	Attachments  []Attachment    `json:"attachments" gorm:"serializer:json"`
	gorm.Model   `json:"-"`
}

// TableName specifies the table name for the Task model
func (Task) TableName() string {
	return "tasks"
}

// IsSubtask reports whether the task references a parent.
func (t Task) IsSubtask() bool {
	return t.ParentID != ""
}
