package handlers

import (
	"context"
	"net/http"
	"time"

	"cashflow-api/internal/errors"

	"github.com/labstack/echo/v4"
)

// HealthChecker reports whether the database is reachable
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// HealthCheckHandler handles the service info and health check endpoints
type HealthCheckHandler struct {
	db      HealthChecker
	name    string
	version string
}

// NewHealthCheckHandler creates a new health check handler
func NewHealthCheckHandler(db HealthChecker, name, version string) *HealthCheckHandler {
	return &HealthCheckHandler{db: db, name: name, version: version}
}

// Root describes the running service
// @Summary Service info
// @Tags Health
// @Produce json
// @Success 200 {object} object{name=string,version=string,status=string,timestamp=string}
// @Router / [get]
func (h *HealthCheckHandler) Root(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"name":      h.name,
		"version":   h.version,
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// HealthCheck pings the database
// @Summary Health check
// @Description Check API and database connectivity status
// @Tags Health
// @Produce json
// @Success 200 {object} object{status=string} "Service is healthy"
// @Failure 503 {object} errors.ErrorResponse "SYSTEM_003 - Service unavailable (database connection failed)"
// @Router /api/health [get]
func (h *HealthCheckHandler) HealthCheck(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
	defer cancel()

	if err := h.db.HealthCheck(ctx); err != nil {
		return SendError(c, errors.SystemServiceUnavailable, errors.WithDetails("Database connection failed"))
	}

	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
