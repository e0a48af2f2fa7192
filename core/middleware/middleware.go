package middleware

import (
	"context"
	"net/http"
	"strings"

	"go-calendar-api/core/constants"
	"go-calendar-api/core/errors"
	"go-calendar-api/core/utils"

	"github.com/labstack/echo/v4"
)

// TokenChecker is the slice of the auth service the middleware needs.
type TokenChecker interface {
	IsTokenBlacklisted(ctx context.Context, token string) (bool, error)
}

type Middleware struct {
	tokens TokenChecker
}

func NewMiddleware(tokens TokenChecker) *Middleware {
	return &Middleware{tokens: tokens}
}

// AuthMiddleware authenticates requests via a Bearer session token. On
// success the parsed TokenData is stored under constants.ContextTokenData.
// Failures map to 401 so clients can surface "sign-in required".
func (m *Middleware) AuthMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get("Authorization")
			if header == "" {
				return c.JSON(http.StatusUnauthorized,
					errors.New(errors.ErrMissingAuthorizationHeader, "sign-in required"))
			}

			token := strings.TrimPrefix(header, "Bearer ")
			if token == header {
				return c.JSON(http.StatusUnauthorized,
					errors.New(errors.ErrInvalidTokenFormat, "authorization header must use Bearer scheme"))
			}

			if m.tokens != nil {
				blacklisted, err := m.tokens.IsTokenBlacklisted(c.Request().Context(), token)
				if err == nil && blacklisted {
					return c.JSON(http.StatusUnauthorized,
						errors.New(errors.ErrUnauthorized, "session revoked, sign-in required"))
				}
			}

			tokenData, err := utils.ValidateAndParseToken(token)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, err)
			}
			if tokenData.Scope != constants.ScopeTokenAccess {
				return c.JSON(http.StatusUnauthorized,
					errors.New(errors.ErrUnauthorized, "token scope not valid for API access"))
			}

			c.Set(constants.ContextTokenData, tokenData)
			return next(c)
		}
	}
}
