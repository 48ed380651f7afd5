package models

import (
	"gorm.io/gorm"
)

// RiskStatus represents the lifecycle state of a risk
type RiskStatus string

const (
	RiskOpen       RiskStatus = "Open"
	RiskInProgress RiskStatus = "In Progress"
	RiskMitigated  RiskStatus = "Mitigated"
	RiskClosed     RiskStatus = "Closed"
)

// Risk represents a tracked risk inside a work line. TaskID is a weak
// reference: the task may have been deleted, in which case listings render a
// placeholder instead of failing.
type Risk struct {
	ID             string     `json:"id" gorm:"primaryKey"`
	LineID         string     `json:"lineId" gorm:"column:line_id;index"`
	TaskID         string     `json:"taskId" gorm:"column:task_id"`
	Description    string     `json:"description" gorm:"not null"`
	Responsible    string     `json:"responsible"`
	RequiredAction string     `json:"requiredAction" gorm:"column:required_action"`
	Status         RiskStatus `json:"status" gorm:"default:'Open'"`
	Priority       Level      `json:"priority" gorm:"default:'Medium'"`
	Impact         Level      `json:"impact" gorm:"default:'Medium'"`

	// TaskTitle is resolved at read time from TaskID; not persisted.
	TaskTitle string `json:"taskTitle,omitempty" gorm:"-"`

	gorm.Model `json:"-"`
}

// TableName specifies the table name for the Risk model
func (Risk) TableName() string {
	return "risks"
}
