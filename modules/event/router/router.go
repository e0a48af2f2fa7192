package router

import (
	"go-calendar-api/core/middleware"
	"go-calendar-api/modules/event/controller"

	"github.com/labstack/echo/v4"
)

type EventRouter struct {
	controller *controller.EventController
}

func NewEventRouter(controller *controller.EventController) *EventRouter {
	return &EventRouter{controller: controller}
}

func (r *EventRouter) Setup(e *echo.Echo, mw *middleware.Middleware) {
	v1 := e.Group("/api/v1")

	eventRoutes := v1.Group("/private/events")
	eventRoutes.Use(mw.AuthMiddleware())

	eventRoutes.GET("", r.controller.List)
	eventRoutes.GET("/expanded", r.controller.ListExpanded)
	eventRoutes.POST("", r.controller.Create)
	eventRoutes.PUT("/:id", r.controller.Update)
	eventRoutes.DELETE("/:id", r.controller.Delete)
}
