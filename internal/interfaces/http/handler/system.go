package handler

import (
	"net/http"
	"runtime"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

// HealthCheck probes one dependency; name appears in the health payload
type HealthCheck struct {
	Name  string
	Check func() error
}

// SystemHandler exposes health and runtime information endpoints
type SystemHandler struct {
	BaseHandler
	version   string
	startedAt time.Time
	checks    []HealthCheck
}

// NewSystemHandler creates a new SystemHandler
func NewSystemHandler(version string, checks ...HealthCheck) *SystemHandler {
	return &SystemHandler{
		version:   version,
		startedAt: time.Now(),
		checks:    checks,
	}
}

// Health handles GET /health. Any failing dependency turns the
// response into a 503.
func (h *SystemHandler) Health(c *gin.Context) {
	status := http.StatusOK
	payload := gin.H{"status": "ok"}
	for _, hc := range h.checks {
		if err := hc.Check(); err != nil {
			status = http.StatusServiceUnavailable
			payload["status"] = "unhealthy"
			payload[hc.Name] = "error"
		} else {
			payload[hc.Name] = "ok"
		}
	}
	c.JSON(status, payload)
}

// Ping handles GET /api/v1/system/ping
func (h *SystemHandler) Ping(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "pong"})
}

// Info handles GET /api/v1/system/info
func (h *SystemHandler) Info(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"version":    h.version,
		"go_version": runtime.Version(),
		"uptime":     time.Since(h.startedAt).Round(time.Second).String(),
		"goroutines": runtime.NumGoroutine(),
	})
}

// parseIDParam reads an int64 path parameter
func parseIDParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
