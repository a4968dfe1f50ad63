package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"travelfuse/internal/app"
	"travelfuse/internal/config"
	"travelfuse/internal/handler"
	"travelfuse/internal/router"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	app.ConfigureLogging(cfg.Log)
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	a, err := app.New(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize pipeline: %w", err)
	}

	// Initialize handlers
	planH := handler.NewPlanHandler(a.Service, cfg.Export.DefaultFormat)
	healthH := handler.NewHealthHandler(a.Chain.Sources)

	// Setup router
	r := router.Setup(planH, healthH, cfg.CORS.AllowedOrigins)

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	log.Printf("Server starting on %s (modules=%v strict=%t)", cfg.Server.Port, cfg.Parser.EnabledModules, cfg.Parser.StrictMode)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}
