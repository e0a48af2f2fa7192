package router

import (
	"go-calendar-api/core/middleware"
	"go-calendar-api/modules/reminder/controller"

	"github.com/labstack/echo/v4"
)

type ReminderRouter struct {
	controller *controller.ReminderController
}

func NewReminderRouter(controller *controller.ReminderController) *ReminderRouter {
	return &ReminderRouter{controller: controller}
}

func (r *ReminderRouter) Setup(e *echo.Echo, mw *middleware.Middleware) {
	v1 := e.Group("/api/v1")

	reminderRoutes := v1.Group("/private/reminders")
	reminderRoutes.Use(mw.AuthMiddleware())

	reminderRoutes.GET("", r.controller.List)
	reminderRoutes.GET("/unread-count", r.controller.UnreadCount)
	reminderRoutes.PUT("/read", r.controller.MarkRead)
	reminderRoutes.PUT("/read-all", r.controller.MarkAllRead)
}
