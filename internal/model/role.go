package model

import "tasktrack/internal/abstraction"

type RoleEntity struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// RoleEntityModel ...
type RoleEntityModel struct {
	ID int `json:"id" param:"id" form:"id" validate:"number,min=1" gorm:"primaryKey;autoIncrement;"`

	// entity
	RoleEntity

	// context
	Context *abstraction.Context `json:"-" gorm:"-"`
}

// TableName ...
func (RoleEntityModel) TableName() string {
	return "role"
}
