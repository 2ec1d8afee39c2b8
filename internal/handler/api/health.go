package api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	domrepo "github.com/energy-oracle/eo-api/internal/domain/repository"
	xhttp "github.com/energy-oracle/eo-api/pkg/http"
	xlogger "github.com/energy-oracle/eo-api/pkg/logger"
)

const serviceName = "eo-api"

// HealthHandler serves the service root and liveness endpoints.
type HealthHandler struct {
	logger  *xlogger.Logger
	store   domrepo.PriceStore
	version string
}

func NewHealthHandler(logger *xlogger.Logger, store domrepo.PriceStore, version string) *HealthHandler {
	if version == "" {
		version = "dev"
	}
	return &HealthHandler{logger: logger, store: store, version: version}
}

func (h *HealthHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/", h.Root)
	e.GET("/health", h.Health)
}

func (h *HealthHandler) Root(c echo.Context) error {
	return xhttp.SuccessResponse(c, map[string]string{
		"name":    serviceName,
		"version": h.version,
		"status":  "running",
	})
}

// Health reports whether the store answers. A failing store degrades the
// service but the process itself stays up, hence 503 rather than a crash.
func (h *HealthHandler) Health(c echo.Context) error {
	if err := h.store.Health(c.Request().Context()); err != nil {
		h.logger.Error("health check store error", xlogger.Error(err))
		return xhttp.DataResponse(c, http.StatusServiceUnavailable, map[string]string{
			"status":   "degraded",
			"database": "unreachable",
		})
	}
	return xhttp.SuccessResponse(c, map[string]string{
		"status":   "healthy",
		"database": "connected",
	})
}
