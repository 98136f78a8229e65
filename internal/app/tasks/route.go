package tasks

import (
	"tasktrack/internal/middleware"

	"github.com/labstack/echo/v4"
)

func (h *handler) Route(v *echo.Group) {
	v.GET("", h.Find, middleware.Authentication)
	v.POST("", h.Create, middleware.Authentication)
	v.GET("/dashboard", h.Dashboard, middleware.Authentication)
	v.GET("/priority-count", h.PriorityCount, middleware.Authentication)
	v.GET("/export", h.Export, middleware.Authentication)
	v.GET("/:id", h.FindById, middleware.Authentication)
	v.PUT("/:id", h.Update, middleware.Authentication)
	v.PATCH("/:id/status", h.UpdateStatus, middleware.Authentication)
	v.DELETE("/:id", h.Delete, middleware.Authentication)
	v.GET("/:id/pdf", h.DocumentPdf, middleware.Authentication)
	v.GET("/:id/share", h.ShareLink, middleware.Authentication)
}
