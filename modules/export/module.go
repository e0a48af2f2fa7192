package export

import (
	"go-calendar-api/core/cache"
	"go-calendar-api/core/config"
	"go-calendar-api/core/database"
	"go-calendar-api/core/middleware"
	"go-calendar-api/modules/auth"
	eventrepo "go-calendar-api/modules/event/repository"
	"go-calendar-api/modules/export/controller"
	"go-calendar-api/modules/export/router"
	"go-calendar-api/modules/export/service"

	"github.com/labstack/echo/v4"
)

func Init(e *echo.Echo, db database.Database, c cache.Cache) {
	events := eventrepo.NewEventRepository(db)
	uploader := service.NewS3Uploader(config.Get().S3)
	svc := service.NewExportService(events, uploader)
	ctrl := controller.NewExportController(svc)
	mw := middleware.NewMiddleware(auth.GetService(db, c))

	router.NewExportRouter(ctrl).Setup(e, mw)
}
