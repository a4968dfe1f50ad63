package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// HealthHandler handles health check endpoints.
type HealthHandler struct {
	sources []string
}

// NewHealthHandler creates a new HealthHandler reporting the configured
// enrichment sources.
func NewHealthHandler(sources []string) *HealthHandler {
	return &HealthHandler{sources: sources}
}

// Liveness handles GET /healthz
// @Summary Liveness probe
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /healthz [get]
func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Readiness handles GET /readyz
// @Summary Readiness probe
// @Description Reports the configured enrichment sources
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} map[string]string "No enrichment source configured"
// @Router /readyz [get]
func (h *HealthHandler) Readiness(c *gin.Context) {
	if len(h.sources) == 0 {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": "no enrichment source configured"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "enrichment_sources": h.sources})
}
