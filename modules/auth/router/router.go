package router

import (
	"go-calendar-api/core/middleware"
	"go-calendar-api/modules/auth/controller"

	"github.com/labstack/echo/v4"
)

type AuthRouter struct {
	controller *controller.AuthController
}

func NewAuthRouter(controller *controller.AuthController) *AuthRouter {
	return &AuthRouter{controller: controller}
}

func (r *AuthRouter) Setup(e *echo.Echo, mw *middleware.Middleware) {
	v1 := e.Group("/api/v1")

	// Public routes
	authRoutes := v1.Group("/auth")
	authRoutes.GET("/:provider/url", r.controller.GetOAuthURL)
	authRoutes.GET("/:provider/callback", r.controller.HandleCallback)

	// Private routes (require authentication)
	privateRoutes := v1.Group("/private/auth")
	privateRoutes.Use(mw.AuthMiddleware())
	privateRoutes.POST("/logout", r.controller.Logout)
	privateRoutes.GET("/me", r.controller.Me)
}
