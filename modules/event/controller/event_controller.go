package controller

import (
	"net/http"

	"go-calendar-api/core/constants"
	"go-calendar-api/core/controller"
	"go-calendar-api/core/errors"
	"go-calendar-api/core/utils"
	"go-calendar-api/modules/event/dto"
	"go-calendar-api/modules/event/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type EventController struct {
	controller.BaseController
	service service.EventService
}

func NewEventController(service service.EventService) *EventController {
	return &EventController{
		BaseController: controller.NewBaseController(),
		service:        service,
	}
}

// List returns the current user's base events
// GET /api/v1/private/events
func (c *EventController) List(ctx echo.Context) error {
	userID, err := getUserIDFromContext(ctx)
	if err != nil {
		return ctx.JSON(http.StatusUnauthorized, errors.New(errors.ErrUnauthorized, "sign-in required"))
	}

	events, appErr := c.service.List(ctx.Request().Context(), userID)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return ctx.JSON(http.StatusOK, events)
}

// ListExpanded returns the displayable instance list for the grid
// GET /api/v1/private/events/expanded
func (c *EventController) ListExpanded(ctx echo.Context) error {
	userID, err := getUserIDFromContext(ctx)
	if err != nil {
		return ctx.JSON(http.StatusUnauthorized, errors.New(errors.ErrUnauthorized, "sign-in required"))
	}

	instances, appErr := c.service.ListExpanded(ctx.Request().Context(), userID)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return ctx.JSON(http.StatusOK, dto.ExpandedEventsResponse{Instances: instances})
}

// Create stores a new event and returns the canonical representation
// POST /api/v1/private/events
func (c *EventController) Create(ctx echo.Context) error {
	userID, err := getUserIDFromContext(ctx)
	if err != nil {
		return ctx.JSON(http.StatusUnauthorized, errors.New(errors.ErrUnauthorized, "sign-in required"))
	}

	var req dto.CreateEventRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, errors.New(errors.ErrInvalidRequestData, "invalid request body"))
	}

	event, appErr := c.service.Create(ctx.Request().Context(), userID, &req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return ctx.JSON(http.StatusCreated, event)
}

// Update applies a full or partial update keyed by id
// PUT /api/v1/private/events/:id
func (c *EventController) Update(ctx echo.Context) error {
	userID, err := getUserIDFromContext(ctx)
	if err != nil {
		return ctx.JSON(http.StatusUnauthorized, errors.New(errors.ErrUnauthorized, "sign-in required"))
	}

	var req dto.UpdateEventRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, errors.New(errors.ErrInvalidRequestData, "invalid request body"))
	}

	event, appErr := c.service.Update(ctx.Request().Context(), userID, ctx.Param("id"), &req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return ctx.JSON(http.StatusOK, event)
}

// Delete removes an event after the ownership check
// DELETE /api/v1/private/events/:id
func (c *EventController) Delete(ctx echo.Context) error {
	userID, err := getUserIDFromContext(ctx)
	if err != nil {
		return ctx.JSON(http.StatusUnauthorized, errors.New(errors.ErrUnauthorized, "sign-in required"))
	}

	if appErr := c.service.Delete(ctx.Request().Context(), userID, ctx.Param("id")); appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return ctx.JSON(http.StatusOK, map[string]string{"message": "event deleted successfully"})
}

// getUserIDFromContext extracts the user ID placed by the auth middleware.
func getUserIDFromContext(ctx echo.Context) (uuid.UUID, error) {
	tokenData, ok := ctx.Get(constants.ContextTokenData).(*utils.TokenData)
	if !ok || tokenData == nil {
		return uuid.Nil, errors.New(errors.ErrUnauthorized, "no session in context")
	}
	return tokenData.UserID, nil
}
