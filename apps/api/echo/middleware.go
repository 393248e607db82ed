package echoapi

import (
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/ifag/portal/core"
)

var errInvalidStudentID = core.NewValidationError(
	errors.New("invalid student id"),
	core.FieldError{Field: "id", Error: "must be a positive integer"},
)

func adminMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		claims, err := getContextClaims(ctx)
		if err != nil {
			return errors.Wrap(err, "getting context claims")
		}
		if claims.IsAdmin {
			return next(ctx)
		}
		return errHttpForbidden
	}
}

// studentAccessMiddleware resolves the :id path param and only lets through
// the student it belongs to or an admin. Other callers get a 404.
func studentAccessMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
		if err != nil || id <= 0 {
			return errInvalidStudentID
		}
		claims, err := getContextClaims(ctx)
		if err != nil {
			return errors.Wrap(err, "getting context claims")
		}
		if !claims.IsAdmin {
			if sid, ok := claims.StudentID(); !ok || sid != id {
				return errStudentNotFound
			}
		}
		ctx.Set(contextStudentKey, id)
		return next(ctx)
	}
}
