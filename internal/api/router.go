package api

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/qrstash/qrstash/internal/app"
	"github.com/qrstash/qrstash/internal/database"
	"github.com/qrstash/qrstash/internal/handlers"
	"github.com/qrstash/qrstash/internal/middleware"
	"github.com/qrstash/qrstash/internal/services"
)

// NewRouter builds the Gin engine, wires middleware and registers routes.
func NewRouter(db *database.Mongo, cfg *app.Config) (*gin.Engine, error) {
	if db == nil {
		return nil, fmt.Errorf("database handle must be provided")
	}
	if cfg == nil {
		return nil, fmt.Errorf("config must be provided")
	}

	store, err := services.NewQRCodeService(db)
	if err != nil {
		return nil, fmt.Errorf("build record store: %w", err)
	}

	qrHandler, err := handlers.NewQRCodeHandler(db, store)
	if err != nil {
		return nil, fmt.Errorf("build qrcode handler: %w", err)
	}

	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Metrics())
	r.Use(middleware.CORS())
	r.Use(middleware.BodyLimit(middleware.MaxBodyBytes))

	// Health endpoint (public)
	r.GET("/health", handlers.Health())

	api := r.Group("/api")
	{
		api.GET("/status", handlers.Status(db, cfg.Server.Environment))
		api.POST("/qrcodes", qrHandler.Create)
		api.POST("/qrcodes/generate", qrHandler.Generate)
		api.GET("/qrcodes", qrHandler.List)
		api.GET("/qrcodes/:id", qrHandler.Get)
	}

	// Metrics endpoint
	if cfg.Metrics.Enabled {
		r.GET(cfg.Metrics.Endpoint, gin.WrapH(promhttp.Handler()))
	}

	// NotFound fallback
	r.NoRoute(middleware.NotFoundHandler)

	return r, nil
}
