package models

import (
	"gorm.io/gorm"
)

// ProjectStatus represents the lifecycle state of a project
type ProjectStatus string

const (
	ProjectReady      ProjectStatus = "Ready"
	ProjectInProgress ProjectStatus = "In Progress"
	ProjectCompleted  ProjectStatus = "Completed"
)

// Level is the shared Low/Medium/High scale used for priority, difficulty
// and risk impact.
type Level string

const (
	LevelLow    Level = "Low"
	LevelMedium Level = "Medium"
	LevelHigh   Level = "High"
)

// Project represents a project inside a work line.
// Progress is a derived-and-cached field: it is recomputed from the
// project's top-level tasks and written back on every task mutation.
type Project struct {
	ID         string        `json:"id" gorm:"primaryKey"`
	LineID     string        `json:"lineId" gorm:"column:line_id;index"`
	Name       string        `json:"name" gorm:"not null"`
	Objective  string        `json:"objective"`
	Assignee   string        `json:"assignee"`
	Status     ProjectStatus `json:"status" gorm:"default:'Ready'"`
	Priority   Level         `json:"priority" gorm:"default:'Medium'"`
	Difficulty Level         `json:"difficulty" gorm:"default:'Medium'"`
	Budget     string        `json:"budget"`
	Progress   int           `json:"progress" gorm:"default:0"`
	StartDate  string        `json:"startDate" gorm:"column:start_date"`
	EndDate    string        `json:"endDate" gorm:"column:end_date"`
	NextSteps  []string      `json:"nextSteps" gorm:"column:next_steps;serializer:json"`
	Notes      string        `json:"notes"`
	gorm.Model `json:"-"`
}

// TableName specifies the table name for the Project model
func (Project) TableName() string {
	return "projects"
}
