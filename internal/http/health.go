package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type HealthResponse struct {
	Status     string            `json:"status"`
	Time       string            `json:"time"`
	Version    string            `json:"version,omitempty"`
	Checks     map[string]string `json:"checks"`
	NextExport string            `json:"next_export,omitempty"`
}

// HealthController pings each named dependency. A failing check makes the
// service unhealthy; a missing "database" check is reported as not configured.
type HealthController struct {
	checks  map[string]Pinger
	exports ExportQueue
	version string
}

func NewHealthController(checks map[string]Pinger, exports ExportQueue, version string) *HealthController {
	return &HealthController{
		checks:  checks,
		exports: exports,
		version: version,
	}
}

func (h *HealthController) Status(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	health := HealthResponse{
		Status:  "healthy",
		Time:    time.Now().Format(time.RFC3339),
		Version: h.version,
		Checks:  map[string]string{"database": "not configured"},
	}

	for name, check := range h.checks {
		if err := check.Ping(ctx); err != nil {
			health.Checks[name] = "error: " + err.Error()
			health.Status = "unhealthy"
			continue
		}
		health.Checks[name] = "ok"
	}

	if h.exports != nil {
		if next := h.exports.GetNextRunTime(); next != nil {
			health.NextExport = next.Format(time.RFC3339)
		}
	}

	statusCode := http.StatusOK
	if health.Status != "healthy" {
		statusCode = http.StatusServiceUnavailable
	}

	c.IndentedJSON(statusCode, health)
}

func Ping(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "pong"})
}
