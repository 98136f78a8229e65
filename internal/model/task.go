package model

import (
	"time"

	"tasktrack/internal/abstraction"
)

const (
	TaskStatusPending   = "Pending"
	TaskStatusCompleted = "Completed"

	TaskCategoryProfessional = "Professional"
	TaskCategoryAcademic     = "Academic"
	TaskCategoryAppointments = "Appointments"

	TaskPriorityRed   = "Red"
	TaskPriorityGreen = "Green"
	TaskPriorityGray  = "Gray"
)

type TaskEntity struct {
	Title       string    `json:"title"`
	Description string    `json:"description" gorm:"size:500"`
	DueDate     time.Time `json:"due_date"`
	Status      string    `json:"status"`
	EntityId    int       `json:"entity_id" gorm:"index"`

	Category       string `json:"category"`
	Priority       string `json:"priority"`
	TaskIdentifier string `json:"task_identifier"`
	UserName       string `json:"user_name"`
}

// TaskEntityModel ...
type TaskEntityModel struct {
	ID int `json:"id" param:"id" form:"id" validate:"number,min=1" gorm:"primaryKey;autoIncrement;"`

	// entity
	TaskEntity

	abstraction.Entity

	// context
	Context *abstraction.Context `json:"-" gorm:"-"`
}

// TableName ...
func (TaskEntityModel) TableName() string {
	return "task"
}

type TaskCountDataModel struct {
	Count int `json:"count"`
}

type TaskPriorityCountDataModel struct {
	Priority string `json:"priority"`
	Count    int    `json:"count"`
}
