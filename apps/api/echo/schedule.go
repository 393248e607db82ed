package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/ifag/portal/core"
	"github.com/ifag/portal/core/schedule"
)

type scheduleApi struct {
	service  schedule.Service
	validate *validator.Validate
}

func registerScheduleAPI(router *echo.Group, jwt echo.MiddlewareFunc, svc schedule.Service, validate *validator.Validate) {
	api := scheduleApi{service: svc, validate: validate}

	router.GET("/schedule", api.query, jwt)
}

func (api scheduleApi) query(ctx echo.Context) error {
	filter := new(schedule.Filter)
	if err := ctx.Bind(filter); err != nil {
		return errors.Wrap(err, "binding to Filter")
	}
	filter.Clean()
	if err := api.validate.Struct(filter); err != nil {
		return err
	}

	slots, err := api.service.Query(ctx.Request().Context(), *filter)
	if err != nil {
		return core.NewLoadError("schedule", err)
	}
	return ctx.JSON(http.StatusOK, slots)
}
