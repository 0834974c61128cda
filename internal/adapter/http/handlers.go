package http

import (
	"context"
	"log/slog"
	"net/http"
	"sort"
	"time"

	"github.com/labstack/echo/v4"
)

// Probe reports whether a backing service is reachable.
type Probe func(ctx context.Context) error

const probeTimeout = 2 * time.Second

type Handler struct {
	probes map[string]Probe
}

func NewHandler(probes map[string]Probe) *Handler { return &Handler{probes: probes} }

// Health answers 200 when every probe passes and 503 otherwise.
func (h *Handler) Health(c echo.Context) error {
	names := make([]string, 0, len(h.probes))
	for name := range h.probes {
		names = append(names, name)
	}
	sort.Strings(names)

	status, code := "ok", http.StatusOK
	checks := make(map[string]string, len(names))
	for _, name := range names {
		ctx, cancel := context.WithTimeout(c.Request().Context(), probeTimeout)
		err := h.probes[name](ctx)
		cancel()
		if err != nil {
			slog.WarnContext(c.Request().Context(), "health probe failed", "probe", name, "err", err)
			checks[name] = "down"
			status, code = "degraded", http.StatusServiceUnavailable
			continue
		}
		checks[name] = "ok"
	}

	return c.JSON(code, map[string]any{
		"status":  status,
		"service": "loanhub",
		"checks":  checks,
		"time":    time.Now().UTC().Format(time.RFC3339Nano),
	})
}
