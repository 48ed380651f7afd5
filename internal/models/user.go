package models

import (
	"gorm.io/gorm"
)

// Role represents the access level of a user
type Role string

const (
	RoleAdmin Role = "ADMIN"
	RoleUser  Role = "USER"
)

// User represents a user in the system. Users with RoleUser are pinned to a
// single work line via AssignedLineID; admins see every line.
type User struct {
	ID             string `json:"id" gorm:"primaryKey"`
	Name           string `json:"name" gorm:"not null"`
	Email          string `json:"email" gorm:"unique;not null"`
	Password       string `json:"-" gorm:"not null"`
	Role           Role   `json:"role" gorm:"default:'USER'"`
	AssignedLineID string `json:"assignedLineId" gorm:"column:assigned_line_id"`
	gorm.Model     `json:"-"`
}

// TableName specifies the table name for the User model
func (User) TableName() string {
	return "users"
}
