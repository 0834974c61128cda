package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"loanhub-backend/internal/metrics"
)

func TestRequestMetrics_RecordsRouteTemplate(t *testing.T) {
	m := metrics.New()
	e := echo.New()
	e.Use(RequestMetrics(m))
	e.GET("/api/loans/my-loans/:loan_id", func(c echo.Context) error { return c.NoContent(http.StatusNoContent) })

	e.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/loans/my-loans/abc", nil))

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	out := rec.Body.String()
	if !strings.Contains(out, `loanhub_http_requests_total{method="GET",route="/api/loans/my-loans/:loan_id",status="204"} 1`) {
		t.Fatalf("request counter missing:\n%s", out)
	}
}

func TestRequestLogger_WritesLine(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	e := echo.New()
	e.Use(RequestLogger(logger))
	e.GET("/boom", func(c echo.Context) error { return echo.NewHTTPError(http.StatusTeapot, "short and stout") })

	e.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/boom", nil))
	line := buf.String()
	if !strings.Contains(line, "status=418") || !strings.Contains(line, "level=WARN") || !strings.Contains(line, "uri=/boom") {
		t.Fatalf("log line=%q", line)
	}
}
