package handlers

import (
	"net/http"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/unisave/unisave/internal/services/extractor"
	"github.com/unisave/unisave/internal/utils"
)

type HealthHandler struct {
	runner  extractor.Runner
	started time.Time
}

type CheckResult struct {
	Status  string `json:"status"`
	Latency string `json:"latency,omitempty"`
	Error   string `json:"error,omitempty"`
}

func NewHealthHandler(runner extractor.Runner) *HealthHandler {
	return &HealthHandler{
		runner:  runner,
		started: time.Now(),
	}
}

// Health godoc
// @Summary Liveness check
// @Description Report process uptime and memory usage.
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /api/health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"timestamp": time.Now().Format(time.RFC3339),
		"uptime":    time.Since(h.started).Seconds(),
		"memory": gin.H{
			"used":  mem.HeapAlloc / 1024 / 1024,
			"total": mem.Sys / 1024 / 1024,
		},
		"version": "1.0.0",
	})
}

// Detailed godoc
// @Summary Dependency health check
// @Description Additionally probes extraction tool availability by running its version command.
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Success 503 {object} map[string]interface{}
// @Router /api/health/detailed [get]
func (h *HealthHandler) Detailed(c *gin.Context) {
	ctx := c.Request.Context()
	checks := make(map[string]CheckResult)

	start := time.Now()
	version, err := h.runner.Version(ctx)
	if err != nil {
		utils.LogError(ctx, "Extraction tool health check failed", err)
		checks["yt-dlp"] = CheckResult{
			Status: "error",
			Error:  "extraction tool not available",
		}
	} else {
		checks["yt-dlp"] = CheckResult{
			Status:  "ok",
			Latency: time.Since(start).String(),
		}
		utils.LogDebug(ctx, "Extraction tool available", utils.Fields{"version": version})
	}

	allOK := true
	for _, check := range checks {
		if check.Status != "ok" {
			allOK = false
			break
		}
	}

	status := "healthy"
	code := http.StatusOK
	if !allOK {
		status = "degraded"
		code = http.StatusServiceUnavailable
	}

	c.JSON(code, gin.H{
		"status":    status,
		"timestamp": time.Now().Format(time.RFC3339),
		"checks":    checks,
	})
}
