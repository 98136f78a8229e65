package http

import (
	"fmt"
	"net/http"

	"tasktrack/internal/app/auth"
	"tasktrack/internal/app/role"
	"tasktrack/internal/app/tasks"
	"tasktrack/internal/app/user"
	"tasktrack/internal/config"
	"tasktrack/internal/factory"
	"tasktrack/pkg/constant"

	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"
)

func Init(e *echo.Echo, f *factory.Factory) {

	e.GET("/", func(c echo.Context) error {
		message := fmt.Sprintf("Hello there, welcome to app %s version %s.", config.Get().App.App, config.Get().App.Version)
		return c.String(http.StatusOK, message)
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	e.Static("/images", constant.PATH_ASSETS_IMAGES)

	auth.NewHandler(f).Route(e.Group("/auth"))
	role.NewHandler(f).Route(e.Group("/role"))
	tasks.NewHandler(f).Route(e.Group("/tasks"))
	user.NewHandler(f).Route(e.Group("/user"))
}
