package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/postwall/social-api/internal/pkg/metrics"
	"github.com/postwall/social-api/internal/core/domain"
)

const bearerPrefix = "Bearer "

// TokenVerifier resolves a raw token to the identity it was issued for.
type TokenVerifier interface {
	Verify(token string) (string, error)
}

type actorKey struct{}

// Authenticate checks an Authorization header value and returns the verified
// identity id. It fails with domain.ErrNoToken when the header is absent or
// not a bearer credential, and with domain.ErrInvalidToken when verification
// fails.
func Authenticate(header string, verifier TokenVerifier) (string, error) {
	if !strings.HasPrefix(header, bearerPrefix) {
		return "", domain.ErrNoToken
	}

	token := strings.TrimSpace(strings.TrimPrefix(header, bearerPrefix))
	if token == "" {
		return "", domain.ErrInvalidToken
	}

	id, err := verifier.Verify(token)
	if err != nil || id == "" {
		return "", domain.ErrInvalidToken
	}
	return id, nil
}

// Auth gates a route on a valid bearer token. On success the identity is
// attached to the request context and can be read with ActorID.
func Auth(verifier TokenVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id, err := Authenticate(c.Request().Header.Get(echo.HeaderAuthorization), verifier)
			if err != nil {
				if errors.Is(err, domain.ErrNoToken) {
					metrics.TokenRejectionsTotal.WithLabelValues("no_token").Inc()
					return echo.NewHTTPError(http.StatusUnauthorized, "No token, access denied").SetInternal(err)
				}
				metrics.TokenRejectionsTotal.WithLabelValues("invalid_token").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token").SetInternal(err)
			}

			ctx := WithActor(c.Request().Context(), id)
			c.SetRequest(c.Request().WithContext(ctx))
			return next(c)
		}
	}
}

// WithActor returns a copy of ctx carrying the authenticated identity id.
func WithActor(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, actorKey{}, id)
}

// ActorID returns the identity verified by Auth for the current request.
// It is the only trusted source of the actor for authorization decisions.
func ActorID(c echo.Context) (string, bool) {
	id, ok := c.Request().Context().Value(actorKey{}).(string)
	return id, ok && id != ""
}
