package router

import (
	"github.com/gin-gonic/gin"

	"travelfuse/internal/handler"
	"travelfuse/internal/middleware"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	planH *handler.PlanHandler,
	healthH *handler.HealthHandler,
	allowedOrigins []string,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(allowedOrigins))

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	v1 := r.Group("/api/v1")

	plans := v1.Group("/plans")
	plans.POST("/parse", planH.Parse)
	plans.POST("/export", planH.Export)

	v1.POST("/timeline/parse", planH.Timeline)

	return r
}
