package event

import (
	"go-calendar-api/core/cache"
	"go-calendar-api/core/database"
	"go-calendar-api/core/middleware"
	"go-calendar-api/modules/auth"
	"go-calendar-api/modules/event/controller"
	"go-calendar-api/modules/event/repository"
	"go-calendar-api/modules/event/router"
	"go-calendar-api/modules/event/service"

	"github.com/labstack/echo/v4"
)

func Init(e *echo.Echo, db database.Database, c cache.Cache, reminders service.ReminderScheduler) {
	repo := repository.NewEventRepository(db)
	eventService := service.NewEventService(repo, reminders)
	eventController := controller.NewEventController(eventService)
	mw := middleware.NewMiddleware(auth.GetService(db, c))

	router.NewEventRouter(eventController).Setup(e, mw)
}
