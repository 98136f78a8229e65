package model

import (
	"tasktrack/internal/abstraction"
)

type UserEntity struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	RoleId   int    `json:"role_id"`

	// EntityId is the owning-entity partition the account belongs to.
	// Non-admin callers are scoped to it on every read.
	EntityId int `json:"entity_id" gorm:"index"`

	IsDelete bool `json:"is_delete"`
}

// UserEntityModel ...
type UserEntityModel struct {
	ID int `json:"id" param:"id" form:"id" validate:"number,min=1" gorm:"primaryKey;autoIncrement;"`

	// entity
	UserEntity

	abstraction.Entity

	Role RoleEntityModel `json:"role" gorm:"foreignKey:RoleId"`

	// context
	Context *abstraction.Context `json:"-" gorm:"-"`
}

// TableName ...
func (UserEntityModel) TableName() string {
	return "user"
}

type UserCountDataModel struct {
	Count int `json:"count"`
}
