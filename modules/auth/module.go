package auth

import (
	"go-calendar-api/core/cache"
	"go-calendar-api/core/database"
	"go-calendar-api/core/middleware"
	"go-calendar-api/modules/auth/controller"
	"go-calendar-api/modules/auth/repository"
	"go-calendar-api/modules/auth/router"
	"go-calendar-api/modules/auth/service"

	"github.com/labstack/echo/v4"
)

func Init(e *echo.Echo, db database.Database, cache cache.Cache) {
	repo := repository.NewAuthRepository(db)
	authService := service.NewAuthService(repo, cache)
	authController := controller.NewAuthController(authService)
	mw := middleware.NewMiddleware(authService)

	router.NewAuthRouter(authController).Setup(e, mw)
}

// GetService creates an AuthService instance for use by other modules.
func GetService(db database.Database, cache cache.Cache) service.AuthServiceInterface {
	repo := repository.NewAuthRepository(db)
	return service.NewAuthService(repo, cache)
}
