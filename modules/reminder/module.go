package reminder

import (
	"go-calendar-api/core/cache"
	"go-calendar-api/core/database"
	"go-calendar-api/core/middleware"
	"go-calendar-api/modules/auth"
	"go-calendar-api/modules/reminder/controller"
	"go-calendar-api/modules/reminder/repository"
	"go-calendar-api/modules/reminder/router"
	"go-calendar-api/modules/reminder/service"

	"github.com/hibiken/asynq"
	"github.com/labstack/echo/v4"
)

// Init wires the reminder module and returns the service so the event module
// can schedule reminders on create.
func Init(e *echo.Echo, db database.Database, c cache.Cache, client *asynq.Client) *service.ReminderService {
	repo := repository.NewReminderRepository(db)
	svc := service.NewReminderService(repo, client)
	ctrl := controller.NewReminderController(svc)
	mw := middleware.NewMiddleware(auth.GetService(db, c))

	router.NewReminderRouter(ctrl).Setup(e, mw)
	return svc
}

// RegisterWorker attaches the reminder task handler to the asynq mux.
func RegisterWorker(mux *asynq.ServeMux, svc *service.ReminderService) {
	mux.HandleFunc(service.TypeEventReminder, svc.HandleEventReminderTask)
}
