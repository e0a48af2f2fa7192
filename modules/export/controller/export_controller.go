package controller

import (
	"net/http"

	"go-calendar-api/core/constants"
	"go-calendar-api/core/controller"
	"go-calendar-api/core/errors"
	"go-calendar-api/core/utils"
	"go-calendar-api/modules/export/service"

	"github.com/labstack/echo/v4"
)

type ExportController struct {
	controller.BaseController
	service service.ExportService
}

func NewExportController(service service.ExportService) *ExportController {
	return &ExportController{
		BaseController: controller.NewBaseController(),
		service:        service,
	}
}

// DownloadICS streams the user's calendar as an .ics attachment
// GET /api/v1/private/export/ics
func (c *ExportController) DownloadICS(ctx echo.Context) error {
	tokenData, ok := ctx.Get(constants.ContextTokenData).(*utils.TokenData)
	if !ok || tokenData == nil {
		return ctx.JSON(http.StatusUnauthorized, errors.New(errors.ErrUnauthorized, "sign-in required"))
	}

	payload, appErr := c.service.BuildICS(ctx.Request().Context(), tokenData.UserID)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	ctx.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="calendar.ics"`)
	return ctx.Blob(http.StatusOK, "text/calendar; charset=utf-8", payload)
}

// Share uploads the export and returns a time-limited link
// POST /api/v1/private/export/share
func (c *ExportController) Share(ctx echo.Context) error {
	tokenData, ok := ctx.Get(constants.ContextTokenData).(*utils.TokenData)
	if !ok || tokenData == nil {
		return ctx.JSON(http.StatusUnauthorized, errors.New(errors.ErrUnauthorized, "sign-in required"))
	}

	resp, appErr := c.service.ShareICS(ctx.Request().Context(), tokenData.UserID, tokenData.Name)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return ctx.JSON(http.StatusOK, resp)
}
