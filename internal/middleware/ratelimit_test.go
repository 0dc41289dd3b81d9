package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/visitordesk/api/internal/config"
)

func TestUploadRateLimiter(t *testing.T) {
	mw := UploadRateLimiter(config.RateLimitConfig{Requests: 2, Interval: time.Minute})
	next := func(c echo.Context) error { return c.NoContent(http.StatusOK) }

	e := echo.New()
	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodPost, "/visitors/upload", nil)
		rec := httptest.NewRecorder()
		if err := mw(next)(e.NewContext(req, rec)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		codes = append(codes, rec.Code)
	}

	if codes[0] != http.StatusOK || codes[1] != http.StatusOK {
		t.Fatalf("burst requests must pass, got %v", codes)
	}
	if codes[2] != http.StatusTooManyRequests {
		t.Fatalf("expected third request limited, got %v", codes)
	}
}

func TestUploadRateLimiterDisabled(t *testing.T) {
	mw := UploadRateLimiter(config.RateLimitConfig{})
	next := func(c echo.Context) error { return c.NoContent(http.StatusOK) }

	e := echo.New()
	for i := 0; i < 10; i++ {
		req := httptest.NewRequest(http.MethodPost, "/visitors/upload", nil)
		rec := httptest.NewRecorder()
		if err := mw(next)(e.NewContext(req, rec)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if rec.Code != http.StatusOK {
			t.Fatalf("disabled limiter must pass all requests, got %d", rec.Code)
		}
	}
}
