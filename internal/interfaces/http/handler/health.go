package handler

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopadmin/backend/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// HealthCheck probes one dependency
type HealthCheck func(ctx context.Context) error

// HealthHandler reports the status of the database and optional dependencies
type HealthHandler struct {
	checks  map[string]HealthCheck
	details map[string]HealthDetail
	now     func() time.Time
}

// HealthDetail reports diagnostic data that never affects the status, such as pool stats
type HealthDetail func() (any, error)

// NewHealthHandler creates a health handler over named checks
func NewHealthHandler(checks map[string]HealthCheck) *HealthHandler {
	return &HealthHandler{checks: checks, details: map[string]HealthDetail{}, now: time.Now}
}

// WithDetail adds a named detail section to the response body
func (h *HealthHandler) WithDetail(name string, detail HealthDetail) *HealthHandler {
	h.details[name] = detail
	return h
}

// Health godoc
// @ID           health
// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200 {object} map[string]any
// @Failure      503 {object} map[string]any
// @Router       /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	reqLog := logger.GetGinLogger(c)

	names := make([]string, 0, len(h.checks))
	for name := range h.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	status := http.StatusOK
	body := gin.H{"time": h.now().Format(time.RFC3339)}
	for _, name := range names {
		if err := h.checks[name](c.Request.Context()); err != nil {
			reqLog.Warn("Health check failed", zap.String("dependency", name), zap.Error(err))
			body[name] = "error"
			status = http.StatusServiceUnavailable
			continue
		}
		body[name] = "ok"
	}
	for name, detail := range h.details {
		v, err := detail()
		if err != nil {
			reqLog.Warn("Health detail unavailable", zap.String("detail", name), zap.Error(err))
			continue
		}
		body[name] = v
	}

	if status == http.StatusOK {
		body["status"] = "healthy"
	} else {
		body["status"] = "unhealthy"
	}
	c.JSON(status, body)
}
