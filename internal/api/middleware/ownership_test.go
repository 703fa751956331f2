package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
)

func newSelfContext(actor, param string) (echo.Context, *httptest.ResponseRecorder, *echo.Echo) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPut, "/", nil)
	if actor != "" {
		req = req.WithContext(WithActor(req.Context(), actor))
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(param)
	return c, rec, e
}

func TestRequireSelf_Allows(t *testing.T) {
	id := "60f1a2b3c4d5e6f7a8b9c0d1"
	c, rec, _ := newSelfContext(id, strings.ToUpper(id))

	called := false
	handler := RequireSelf("id")(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next handler not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestRequireSelf_Forbids(t *testing.T) {
	c, rec, e := newSelfContext("60f1a2b3c4d5e6f7a8b9c0d1", "60f1a2b3c4d5e6f7a8b9c0d2")

	handler := RequireSelf("id")(func(c echo.Context) error {
		t.Fatalf("should not reach next handler")
		return nil
	})

	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}

func TestRequireSelf_NoActor(t *testing.T) {
	c, rec, e := newSelfContext("", "60f1a2b3c4d5e6f7a8b9c0d1")

	handler := RequireSelf("id")(func(c echo.Context) error {
		t.Fatalf("should not reach next handler")
		return nil
	})

	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}
