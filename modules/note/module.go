package note

import (
	"go-calendar-api/core/cache"
	"go-calendar-api/core/database"
	"go-calendar-api/core/middleware"
	"go-calendar-api/modules/auth"
	"go-calendar-api/modules/note/controller"
	"go-calendar-api/modules/note/repository"
	"go-calendar-api/modules/note/router"
	"go-calendar-api/modules/note/service"

	"github.com/labstack/echo/v4"
)

func Init(e *echo.Echo, db database.Database, c cache.Cache) {
	repo := repository.NewNoteRepository(c)
	noteService := service.NewNoteService(repo)
	noteController := controller.NewNoteController(noteService)
	mw := middleware.NewMiddleware(auth.GetService(db, c))

	router.NewNoteRouter(noteController).Setup(e, mw)
}
