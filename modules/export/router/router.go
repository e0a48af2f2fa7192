package router

import (
	"go-calendar-api/core/middleware"
	"go-calendar-api/modules/export/controller"

	"github.com/labstack/echo/v4"
)

type ExportRouter struct {
	controller *controller.ExportController
}

func NewExportRouter(controller *controller.ExportController) *ExportRouter {
	return &ExportRouter{controller: controller}
}

func (r *ExportRouter) Setup(e *echo.Echo, mw *middleware.Middleware) {
	v1 := e.Group("/api/v1")

	exportRoutes := v1.Group("/private/export")
	exportRoutes.Use(mw.AuthMiddleware())

	exportRoutes.GET("/calendar.ics", r.controller.DownloadICS)
	exportRoutes.POST("/share", r.controller.Share)
}
