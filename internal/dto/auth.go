package dto

type AuthLoginRequest struct {
	Email    string `json:"email" form:"email" validate:"required,email"`
	Password string `json:"password" form:"password" validate:"required"`
}

type AuthSendEmailForgotPasswordRequest struct {
	Email string `json:"email" form:"email" validate:"required,email"`
}

type AuthValidationResetPasswordRequest struct {
	Token string `param:"token" validate:"required"`
}
