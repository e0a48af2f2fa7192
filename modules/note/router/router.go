package router

import (
	"go-calendar-api/core/middleware"
	"go-calendar-api/modules/note/controller"

	"github.com/labstack/echo/v4"
)

type NoteRouter struct {
	controller *controller.NoteController
}

func NewNoteRouter(controller *controller.NoteController) *NoteRouter {
	return &NoteRouter{controller: controller}
}

func (r *NoteRouter) Setup(e *echo.Echo, mw *middleware.Middleware) {
	v1 := e.Group("/api/v1")

	noteRoutes := v1.Group("/private/notes")
	noteRoutes.Use(mw.AuthMiddleware())

	noteRoutes.GET("", r.controller.GetAll)
	noteRoutes.GET("/:date", r.controller.Get)
	noteRoutes.PUT("/:date", r.controller.Save)
}
