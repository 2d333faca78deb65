package v1

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// HealthCheck probes one dependency.
type HealthCheck func(ctx context.Context) error

// RegisterHealthCheck adds a named dependency probe to the health endpoint.
func (h *Handler) RegisterHealthCheck(name string, check HealthCheck) {
	if h.checks == nil {
		h.checks = make(map[string]HealthCheck)
	}
	h.checks[name] = check
}

type HealthResponse struct {
	Status       string            `json:"status"`
	Dependencies map[string]string `json:"dependencies,omitempty"`
	CheckedAt    time.Time         `json:"checked_at"`
}

// CheckHealth godoc
// @Summary Report service and dependency health
// @Tags system
// @Produce json
// @Success 200 {object} HealthResponse
// @Failure 503 {object} HealthResponse
// @Router /health [get]
func (h *Handler) CheckHealth(c *gin.Context) {
	resp := HealthResponse{
		Status:       "ok",
		Dependencies: make(map[string]string),
		CheckedAt:    time.Now(),
	}

	status := http.StatusOK
	for name, check := range h.checks {
		if err := check(c.Request.Context()); err != nil {
			resp.Dependencies[name] = err.Error()
			resp.Status = "degraded"
			status = http.StatusServiceUnavailable
		} else {
			resp.Dependencies[name] = "ok"
		}
	}

	sendJSON(c, status, resp)
}
