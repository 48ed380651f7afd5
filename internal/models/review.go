package models

import (
	"gorm.io/gorm"
)

// MonthlyReview is the saved narrative review of a work line for one
// calendar month (Month is "YYYY-MM"). The four text fields mirror the JSON
// the review generator produces.
type MonthlyReview struct {
	ID           string `json:"id" gorm:"primaryKey"`
	LineID       string `json:"lineId" gorm:"column:line_id;index"`
	Month        string `json:"month" gorm:"index"`
	Summary      string `json:"summary"`
	Achievements string `json:"achievements"`
	Issues       string `json:"issues"`
	NextSteps    string `json:"nextSteps" gorm:"column:next_steps"`
	gorm.Model   `json:"-"`
}

// TableName specifies the table name for the MonthlyReview model
func (MonthlyReview) TableName() string {
	return "monthly_reviews"
}
