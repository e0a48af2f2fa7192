package controller

import (
	"net/http"

	"go-calendar-api/core/constants"
	"go-calendar-api/core/controller"
	"go-calendar-api/core/errors"
	"go-calendar-api/core/params"
	"go-calendar-api/core/utils"
	"go-calendar-api/modules/reminder/dto"
	"go-calendar-api/modules/reminder/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type ReminderController struct {
	controller.BaseController
	service *service.ReminderService
}

func NewReminderController(service *service.ReminderService) *ReminderController {
	return &ReminderController{
		BaseController: controller.NewBaseController(),
		service:        service,
	}
}

// List returns the user's reminders, newest first
// GET /api/v1/private/reminders
func (c *ReminderController) List(ctx echo.Context) error {
	userID, err := getUserIDFromContext(ctx)
	if err != nil {
		return ctx.JSON(http.StatusUnauthorized, errors.New(errors.ErrUnauthorized, "sign-in required"))
	}

	page, appErr := c.service.GetByUserID(ctx.Request().Context(), userID, params.FromEcho(ctx))
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return ctx.JSON(http.StatusOK, page)
}

// MarkRead marks the given reminder ids as read
// PUT /api/v1/private/reminders/read
func (c *ReminderController) MarkRead(ctx echo.Context) error {
	userID, err := getUserIDFromContext(ctx)
	if err != nil {
		return ctx.JSON(http.StatusUnauthorized, errors.New(errors.ErrUnauthorized, "sign-in required"))
	}

	var req dto.MarkReadRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, errors.New(errors.ErrInvalidRequestData, "invalid request body"))
	}

	if appErr := c.service.MarkAsRead(ctx.Request().Context(), userID, req.IDs); appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return ctx.JSON(http.StatusOK, map[string]string{"message": "reminders marked read"})
}

// MarkAllRead marks every reminder of the user as read
// PUT /api/v1/private/reminders/read-all
func (c *ReminderController) MarkAllRead(ctx echo.Context) error {
	userID, err := getUserIDFromContext(ctx)
	if err != nil {
		return ctx.JSON(http.StatusUnauthorized, errors.New(errors.ErrUnauthorized, "sign-in required"))
	}

	if appErr := c.service.MarkAllAsRead(ctx.Request().Context(), userID); appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return ctx.JSON(http.StatusOK, map[string]string{"message": "reminders marked read"})
}

// UnreadCount returns the number of unread reminders
// GET /api/v1/private/reminders/unread-count
func (c *ReminderController) UnreadCount(ctx echo.Context) error {
	userID, err := getUserIDFromContext(ctx)
	if err != nil {
		return ctx.JSON(http.StatusUnauthorized, errors.New(errors.ErrUnauthorized, "sign-in required"))
	}

	count, appErr := c.service.CountUnread(ctx.Request().Context(), userID)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return ctx.JSON(http.StatusOK, dto.UnreadCountResponse{Count: count})
}

func getUserIDFromContext(ctx echo.Context) (uuid.UUID, error) {
	tokenData, ok := ctx.Get(constants.ContextTokenData).(*utils.TokenData)
	if !ok || tokenData == nil {
		return uuid.Nil, errors.New(errors.ErrUnauthorized, "no session in context")
	}
	return tokenData.UserID, nil
}
