package controller

import (
	"net/http"

	"go-calendar-api/core/constants"
	"go-calendar-api/core/controller"
	"go-calendar-api/core/errors"
	"go-calendar-api/core/utils"
	"go-calendar-api/modules/note/service"

	"github.com/labstack/echo/v4"
)

type NoteController struct {
	controller.BaseController
	service service.NoteService
}

func NewNoteController(service service.NoteService) *NoteController {
	return &NoteController{
		BaseController: controller.NewBaseController(),
		service:        service,
	}
}

type saveNoteRequest struct {
	Content string `json:"content"`
}

// GetAll returns the full date -> note map for the current user
// GET /api/v1/private/notes
func (c *NoteController) GetAll(ctx echo.Context) error {
	tokenData, ok := ctx.Get(constants.ContextTokenData).(*utils.TokenData)
	if !ok {
		return ctx.JSON(http.StatusUnauthorized, errors.New(errors.ErrUnauthorized, "sign-in required"))
	}

	notes, appErr := c.service.GetAll(ctx.Request().Context(), tokenData.UserID)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return ctx.JSON(http.StatusOK, notes)
}

// Get returns one day's note
// GET /api/v1/private/notes/:date
func (c *NoteController) Get(ctx echo.Context) error {
	tokenData, ok := ctx.Get(constants.ContextTokenData).(*utils.TokenData)
	if !ok {
		return ctx.JSON(http.StatusUnauthorized, errors.New(errors.ErrUnauthorized, "sign-in required"))
	}

	content, appErr := c.service.Get(ctx.Request().Context(), tokenData.UserID, ctx.Param("date"))
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return ctx.JSON(http.StatusOK, map[string]string{"date": ctx.Param("date"), "content": content})
}

// Save stores one day's note; empty content deletes it
// PUT /api/v1/private/notes/:date
func (c *NoteController) Save(ctx echo.Context) error {
	tokenData, ok := ctx.Get(constants.ContextTokenData).(*utils.TokenData)
	if !ok {
		return ctx.JSON(http.StatusUnauthorized, errors.New(errors.ErrUnauthorized, "sign-in required"))
	}

	var req saveNoteRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, errors.New(errors.ErrInvalidRequestData, "invalid request body"))
	}

	if appErr := c.service.Save(ctx.Request().Context(), tokenData.UserID, ctx.Param("date"), req.Content); appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return ctx.JSON(http.StatusOK, map[string]string{"message": "note saved"})
}
