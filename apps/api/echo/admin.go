package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/ifag/portal/core"
	"github.com/ifag/portal/core/admin"
)

type adminApi struct {
	service  admin.Service
	validate *validator.Validate
}

func registerAdminAPI(router *echo.Group, jwt echo.MiddlewareFunc, svc admin.Service, validate *validator.Validate) {
	api := adminApi{service: svc, validate: validate}

	g := router.Group("/admin", jwt, adminMiddleware)
	g.GET("/stats", api.stats)
	g.GET("/overview", api.overview)
}

func (api adminApi) stats(ctx echo.Context) error {
	stats, err := api.service.GetStats(ctx.Request().Context())
	if err != nil {
		return core.NewLoadError("dashboard", err)
	}
	return ctx.JSON(http.StatusOK, stats)
}

func (api adminApi) overview(ctx echo.Context) error {
	filter := new(admin.OverviewFilter)
	if err := ctx.Bind(filter); err != nil {
		return errors.Wrap(err, "binding to OverviewFilter")
	}
	filter.Clean()
	if err := api.validate.Struct(filter); err != nil {
		return err
	}

	overview, err := api.service.GetOverview(ctx.Request().Context(), *filter)
	if err != nil {
		return core.NewLoadError("dashboard", err)
	}
	return ctx.JSON(http.StatusOK, overview)
}
