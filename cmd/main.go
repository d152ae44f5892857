// Package main provides the entry point for the Unisave media download API.
// @title Unisave API
// @version 1.0
// @description A Go-based microservice that normalizes media download requests across video platforms.

// @contact.name API Support
// @contact.url http://www.example.com/support
// @contact.email support@example.com

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:3000
// @BasePath /

package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/unisave/unisave/docs" // Import for swagger docs
	"github.com/unisave/unisave/internal/api/handlers"
	"github.com/unisave/unisave/internal/api/router"
	"github.com/unisave/unisave/internal/config"
	"github.com/unisave/unisave/internal/models"
	"github.com/unisave/unisave/internal/services/extractor"
	"github.com/unisave/unisave/internal/services/platforms"
	"github.com/unisave/unisave/internal/services/resolver"
	"github.com/unisave/unisave/internal/services/scraper"
	"github.com/unisave/unisave/internal/utils"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := utils.GetLogger()
	logger.Info("Starting Unisave service")

	// Error details are only exposed outside production
	handlers.SetErrorDetail(!cfg.IsProduction())

	// Initialize extraction tool runner
	runner := extractor.NewCLI(extractor.Config{Path: cfg.Extractor.Path})

	// Initialize HTML scraper for image fallbacks
	imageScraper := scraper.New(cfg.Extractor.ScrapeTimeout)

	// Initialize platform parsers
	youtube := platforms.NewYouTube(runner)
	registry := platforms.Registry{
		models.PlatformYouTube:   youtube,
		models.PlatformInstagram: platforms.NewInstagram(runner, imageScraper),
		models.PlatformTikTok:    platforms.NewTikTok(runner),
		models.PlatformFacebook:  platforms.NewFacebook(runner),
		models.PlatformReddit:    platforms.NewReddit(runner),
	}

	// Initialize stream resolver
	streamResolver := resolver.New(runner, imageScraper)

	// Initialize handlers
	parseHandler := handlers.NewParseHandler(registry)
	streamHandler := handlers.NewStreamHandler(streamResolver)
	batchHandler := handlers.NewBatchHandler(youtube)
	healthHandler := handlers.NewHealthHandler(runner)

	// Initialize router
	r := router.NewRouter(cfg, parseHandler, streamHandler, batchHandler, healthHandler)

	// Start server
	go func() {
		logger.Infof("Starting server on %s:%s", cfg.Server.Host, cfg.Server.Port)
		if err := r.Start(); err != nil {
			logger.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Server shutdown complete")
}
