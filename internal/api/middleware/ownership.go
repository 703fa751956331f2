package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/postwall/social-api/internal/core/domain"
)

// RequireSelf only lets the request through when the authenticated actor is
// the user named by the path parameter param. Must run after Auth.
func RequireSelf(param string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			actor, ok := ActorID(c)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "No token, access denied").SetInternal(domain.ErrNoToken)
			}
			if !domain.CanModify(actor, c.Param(param)) {
				return echo.NewHTTPError(http.StatusForbidden, "Forbidden").SetInternal(domain.ErrForbidden)
			}
			return next(c)
		}
	}
}
