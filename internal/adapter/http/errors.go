package http

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"loanhub-backend/internal/domain/apperr"
	"loanhub-backend/pkg/id"
)

// statusOf maps an apperr kind to its HTTP status; anything unknown is a 500.
func statusOf(err error) int {
	switch {
	case errors.Is(err, apperr.ErrValidation),
		errors.Is(err, apperr.ErrDuplicatePending),
		errors.Is(err, apperr.ErrMissingProfile),
		errors.Is(err, apperr.ErrInvalidTransition),
		errors.Is(err, apperr.ErrConflict):
		return http.StatusBadRequest
	case errors.Is(err, apperr.ErrAuth):
		return http.StatusUnauthorized
	case errors.Is(err, apperr.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, apperr.ErrNotFound):
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

// writeError renders err as {"error": ...}. Internal failures are logged and
// answered with a generic message.
func writeError(c echo.Context, err error) error {
	status := statusOf(err)
	if status == http.StatusInternalServerError {
		slog.Error("request failed",
			"method", c.Request().Method, "route", c.Path(), "err", err)
		return c.JSON(status, ErrorResponse{Error: "internal server error"})
	}
	return c.JSON(status, ErrorResponse{Error: err.Error()})
}

func badRequest(c echo.Context, msg string) error {
	return c.JSON(http.StatusBadRequest, ErrorResponse{Error: msg})
}

// bind decodes and validates the request into dst. A non-nil result is the
// 400 payload to send back.
func bind(c echo.Context, dst any) *ErrorResponse {
	if err := c.Bind(dst); err != nil {
		return &ErrorResponse{Error: "invalid body"}
	}
	if err := c.Validate(dst); err != nil {
		return &ErrorResponse{Error: "validation failed", Details: ToFieldErrors(err)}
	}
	return nil
}

// publicID reads a 32-hex path parameter.
func publicID(c echo.Context, name string) (string, bool) {
	v := c.Param(name)
	return v, id.IsID32(v)
}

func uintParam(c echo.Context, name string) (uint64, bool) {
	n, err := strconv.ParseUint(c.Param(name), 10, 64)
	return n, err == nil && n > 0
}
