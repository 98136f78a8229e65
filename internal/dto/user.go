package dto

type UserCreateRequest struct {
	Name     string `json:"name" form:"name" validate:"required"`
	Email    string `json:"email" form:"email" validate:"required,email"`
	Password string `json:"password" form:"password" validate:"required,min=8"`
	RoleId   int    `json:"role_id" form:"role_id" validate:"required,min=1"`
	EntityId int    `json:"entity_id" form:"entity_id" validate:"required,min=1"`
}

type UserUpdateRequest struct {
	ID       int     `param:"id" json:"-" validate:"required,min=1"`
	Name     *string `json:"name" form:"name"`
	Email    *string `json:"email" form:"email" validate:"omitempty,email"`
	RoleId   *int    `json:"role_id" form:"role_id" validate:"omitempty,min=1"`
	EntityId *int    `json:"entity_id" form:"entity_id" validate:"omitempty,min=1"`
}

type UserFindByIDRequest struct {
	ID int `param:"id" validate:"required,min=1"`
}

type UserDeleteByIDRequest struct {
	ID int `param:"id" validate:"required,min=1"`
}

type UserChangePasswordRequest struct {
	OldPassword string `json:"old_password" form:"old_password" validate:"required"`
	NewPassword string `json:"new_password" form:"new_password" validate:"required,min=8"`
}
