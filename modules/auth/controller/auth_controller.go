package controller

import (
	"net/http"
	"strings"

	"go-calendar-api/core/constants"
	"go-calendar-api/core/errors"
	"go-calendar-api/core/utils"
	"go-calendar-api/modules/auth/dto"
	"go-calendar-api/modules/auth/service"

	"github.com/labstack/echo/v4"
)

type AuthController struct {
	service service.AuthServiceInterface
}

func NewAuthController(service service.AuthServiceInterface) *AuthController {
	return &AuthController{service: service}
}

// GetOAuthURL returns the provider consent URL
// GET /api/v1/auth/:provider/url
func (c *AuthController) GetOAuthURL(ctx echo.Context) error {
	provider := ctx.Param("provider")
	resp, appErr := c.service.GetOAuthURL(ctx.Request().Context(), provider)
	if appErr != nil {
		return ctx.JSON(statusFor(appErr), appErr)
	}
	return ctx.JSON(http.StatusOK, resp)
}

// HandleCallback completes the OAuth flow and returns a session token
// GET /api/v1/auth/:provider/callback?code=...&state=...
func (c *AuthController) HandleCallback(ctx echo.Context) error {
	provider := ctx.Param("provider")
	code := ctx.QueryParam("code")
	state := ctx.QueryParam("state")
	if code == "" || state == "" {
		return ctx.JSON(http.StatusBadRequest,
			errors.New(errors.ErrInvalidInput, "code and state are required"))
	}

	resp, appErr := c.service.HandleCallback(ctx.Request().Context(), provider, code, state)
	if appErr != nil {
		return ctx.JSON(statusFor(appErr), appErr)
	}
	return ctx.JSON(http.StatusOK, resp)
}

// Logout revokes the current session token
// POST /api/v1/private/auth/logout
func (c *AuthController) Logout(ctx echo.Context) error {
	token := strings.TrimPrefix(ctx.Request().Header.Get("Authorization"), "Bearer ")
	if appErr := c.service.Logout(ctx.Request().Context(), token); appErr != nil {
		return ctx.JSON(statusFor(appErr), appErr)
	}
	return ctx.JSON(http.StatusOK, map[string]string{"message": "signed out"})
}

// Me returns the session user
// GET /api/v1/private/auth/me
func (c *AuthController) Me(ctx echo.Context) error {
	tokenData, ok := ctx.Get(constants.ContextTokenData).(*utils.TokenData)
	if !ok {
		return ctx.JSON(http.StatusUnauthorized, errors.New(errors.ErrUnauthorized, "sign-in required"))
	}

	user, appErr := c.service.GetUser(ctx.Request().Context(), tokenData.UserID)
	if appErr != nil {
		return ctx.JSON(statusFor(appErr), appErr)
	}
	return ctx.JSON(http.StatusOK, dto.UserResponse{
		ID:    user.ID.String(),
		Email: user.Email,
		Name:  user.Name,
	})
}

func statusFor(appErr *errors.AppError) int {
	switch appErr.Code {
	case errors.ErrInvalidInput, errors.ErrInvalidRequestData:
		return http.StatusBadRequest
	case errors.ErrUnauthorized, errors.ErrTokenExpired, errors.ErrInvalidTokenFormat:
		return http.StatusUnauthorized
	case errors.ErrForbidden:
		return http.StatusForbidden
	case errors.ErrNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
