package main

import (
	"context"
	"fmt"
	"log"

	"github.com/unisave/unisave/internal/config"
	"github.com/unisave/unisave/internal/services/extractor"
)

func main() {
	fmt.Println("Extractor Tool Test")
	fmt.Println("===================")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	fmt.Printf("Tool path: %s\n", cfg.Extractor.Path)
	fmt.Println()

	runner := extractor.NewCLI(extractor.Config{Path: cfg.Extractor.Path})

	version, err := runner.Version(context.Background())
	if err != nil {
		fmt.Printf("Tool is NOT available: %v\n", err)
		fmt.Println("Install yt-dlp or set YTDLP_PATH to the binary location")
		return
	}

	fmt.Printf("Tool is available, version %s\n", version)
}
