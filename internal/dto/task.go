package dto

// TaskFilterRequest carries the optional read filters. Precedence is
// resolved in the service layer: search wins over category/priority,
// which win over the explicit entity filter.
type TaskFilterRequest struct {
	Search   string `query:"search"`
	Category string `query:"category" validate:"omitempty,oneof=Professional Academic Appointments"`
	Priority string `query:"priority" validate:"omitempty,oneof=Red Green Gray"`
	EntityId *int   `query:"entity_id" validate:"omitempty,min=1"`
}

type TaskCreateRequest struct {
	Title       string `json:"title" form:"title" validate:"required"`
	Description string `json:"description" form:"description" validate:"required,max=500"`
	DueDate     string `json:"due_date" form:"due_date" validate:"required,datetime=2006-01-02"`
	Status      string `json:"status" form:"status" validate:"omitempty,oneof=Pending Completed"`

	// Required for admin callers, ignored (and overridden) for everyone else.
	EntityId *int `json:"entity_id" form:"entity_id" validate:"omitempty,min=1"`

	Category       string `json:"category" form:"category" validate:"omitempty,oneof=Professional Academic Appointments"`
	Priority       string `json:"priority" form:"priority" validate:"omitempty,oneof=Red Green Gray"`
	TaskIdentifier string `json:"task_identifier" form:"task_identifier"`
	UserName       string `json:"user_name" form:"user_name"`
}

// TaskUpdateRequest is a full replace: every mutable field is
// overwritten from the payload, no partial merge. BodyID exists only to
// detect a path/body id mismatch.
type TaskUpdateRequest struct {
	ID     int  `param:"id" json:"-" validate:"required,min=1"`
	BodyID *int `json:"id"`

	Title       string `json:"title" form:"title" validate:"required"`
	Description string `json:"description" form:"description" validate:"required,max=500"`
	DueDate     string `json:"due_date" form:"due_date" validate:"required,datetime=2006-01-02"`
	Status      string `json:"status" form:"status" validate:"required,oneof=Pending Completed"`

	EntityId *int `json:"entity_id" form:"entity_id" validate:"omitempty,min=1"`

	Category       string `json:"category" form:"category" validate:"omitempty,oneof=Professional Academic Appointments"`
	Priority       string `json:"priority" form:"priority" validate:"omitempty,oneof=Red Green Gray"`
	TaskIdentifier string `json:"task_identifier" form:"task_identifier"`
	UserName       string `json:"user_name" form:"user_name"`
}

type TaskUpdateStatusRequest struct {
	ID     int    `param:"id" json:"-" validate:"required,min=1"`
	Status string `json:"status" form:"status" validate:"required,oneof=Pending Completed"`
}

type TaskFindByIDRequest struct {
	ID int `param:"id" validate:"required,min=1"`
}

type TaskDeleteByIDRequest struct {
	ID int `param:"id" validate:"required,min=1"`
}

type TaskDashboardRequest struct {
	EntityId *int `query:"entity_id" validate:"omitempty,min=1"`
}

type TaskPriorityCountRequest struct {
	EntityId *int `query:"entity_id" validate:"omitempty,min=1"`
}

type TaskExportRequest struct {
	Format string `query:"format" validate:"required,oneof=pdf excel"`

	TaskFilterRequest
}

type TaskShareRequest struct {
	ID int `param:"id" validate:"required,min=1"`
}
