package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/postwall/social-api/internal/api/middleware"
	"github.com/postwall/social-api/internal/core/domain"
)

// ctxActor returns the identity verified by the Auth middleware. Its absence
// means the route was registered without the guard; fail closed with 401.
func ctxActor(c echo.Context) (string, error) {
	id, ok := middleware.ActorID(c)
	if !ok {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "No token, access denied").SetInternal(domain.ErrNoToken)
	}
	return id, nil
}

// bindAndValidate decodes the request body into req and runs struct validation.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}
