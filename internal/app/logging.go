package app

import (
	"io"
	"log"
	"os"

	"github.com/gin-gonic/gin"

	"travelfuse/internal/config"
)

// ConfigureLogging applies cfg to the standard logger and the gin mode.
// Only debug keeps gin's route and request debug output.
func ConfigureLogging(cfg config.LogConfig) {
	switch cfg.Format {
	case "plain":
		log.SetFlags(0)
	default:
		log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	}

	switch cfg.Level {
	case "silent":
		log.SetOutput(io.Discard)
		gin.SetMode(gin.ReleaseMode)
	case "info":
		log.SetOutput(os.Stderr)
		gin.SetMode(gin.ReleaseMode)
	default:
		log.SetOutput(os.Stderr)
		gin.SetMode(gin.DebugMode)
	}
}
