package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func runAdminAPIKey(t *testing.T, configured, provided string) *httptest.ResponseRecorder {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/admin/visitors", nil)
	if provided != "" {
		req.Header.Set(HeaderAdminAPIKey, provided)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	next := func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	}
	if err := AdminAPIKey(configured)(next)(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return rec
}

func TestAdminAPIKey(t *testing.T) {
	if rec := runAdminAPIKey(t, "secret", "secret"); rec.Code != http.StatusOK {
		t.Fatalf("valid key must pass, got %d", rec.Code)
	}
	if rec := runAdminAPIKey(t, "secret", ""); rec.Code != http.StatusUnauthorized {
		t.Fatalf("missing key must be unauthorized, got %d", rec.Code)
	}
	if rec := runAdminAPIKey(t, "secret", "wrong"); rec.Code != http.StatusForbidden {
		t.Fatalf("wrong key must be forbidden, got %d", rec.Code)
	}
	// An unset server-side key can never be matched.
	if rec := runAdminAPIKey(t, "", "anything"); rec.Code != http.StatusForbidden {
		t.Fatalf("unset configured key must reject, got %d", rec.Code)
	}
}
