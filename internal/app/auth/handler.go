package auth

import (
	"fmt"
	"net/http"

	"tasktrack/internal/abstraction"
	"tasktrack/internal/dto"
	"tasktrack/internal/factory"
	"tasktrack/pkg/util/response"

	"github.com/labstack/echo/v4"
)

type handler struct {
	service Service
}

func NewHandler(f *factory.Factory) *handler {
	return &handler{
		service: NewService(f),
	}
}

func (h *handler) Login(c echo.Context) error {
	payload := new(dto.AuthLoginRequest)
	if err := c.Bind(payload); err != nil {
		return response.ErrorBuilder(http.StatusBadRequest, err, "error bind payload").SendError(c)
	}
	if err := c.Validate(payload); err != nil {
		return response.ErrorBuilder(http.StatusBadRequest, err, "error validate payload").SendError(c)
	}
	data, err := h.service.Login(c.(*abstraction.Context), payload)
	if err != nil {
		return response.ErrorResponse(err).SendError(c)
	}
	return response.SuccessResponse(data).SendSuccess(c)
}

func (h *handler) Logout(c echo.Context) error {
	data, err := h.service.Logout(c.(*abstraction.Context))
	if err != nil {
		return response.ErrorResponse(err).SendError(c)
	}
	return response.SuccessResponse(data).SendSuccess(c)
}

func (h *handler) RefreshToken(c echo.Context) error {
	data, err := h.service.RefreshToken(c.(*abstraction.Context))
	if err != nil {
		return response.ErrorResponse(err).SendError(c)
	}
	return response.SuccessResponse(data).SendSuccess(c)
}

func (h *handler) SendEmailForgotPassword(c echo.Context) error {
	payload := new(dto.AuthSendEmailForgotPasswordRequest)
	if err := c.Bind(payload); err != nil {
		return response.ErrorBuilder(http.StatusBadRequest, err, "error bind payload").SendError(c)
	}
	if err := c.Validate(payload); err != nil {
		return response.ErrorBuilder(http.StatusBadRequest, err, "error validate payload").SendError(c)
	}
	data, err := h.service.SendEmailForgotPassword(c.(*abstraction.Context), payload)
	if err != nil {
		return response.ErrorResponse(err).SendError(c)
	}
	return response.SuccessResponse(data).SendSuccess(c)
}

func (h *handler) ValidationResetPassword(c echo.Context) error {
	payload := new(dto.AuthValidationResetPasswordRequest)
	if err := c.Bind(payload); err != nil {
		return response.ErrorBuilder(http.StatusBadRequest, err, "error bind payload").SendError(c)
	}
	if err := c.Validate(payload); err != nil {
		return response.ErrorBuilder(http.StatusBadRequest, err, "error validate payload").SendError(c)
	}
	data, err := h.service.ValidationResetPassword(c.(*abstraction.Context), payload)
	if err != nil {
		return c.HTML(http.StatusOK, fmt.Sprintf("<html><body><h3>Reset password failed</h3><p>%s</p></body></html>", err.Error()))
	}
	return c.HTML(http.StatusOK, fmt.Sprintf("<html><body><h3>Reset password success</h3><p>A new password has been sent to %s</p></body></html>", data))
}
