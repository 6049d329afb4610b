// Package main is the entry point for Cmd Crafter.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"

	"github.com/joho/godotenv"

	"github.com/samdwyer/cmdcrafter/internal/config"
	"github.com/samdwyer/cmdcrafter/internal/game"
	"github.com/samdwyer/cmdcrafter/internal/narration"
	"github.com/samdwyer/cmdcrafter/internal/storage"
	"github.com/samdwyer/cmdcrafter/internal/telemetry"
)

func main() {
	// Load .env file for local development
	if err := godotenv.Load(); err != nil {
		// Not fatal - env vars might be set directly
		log.Printf("Note: .env file not loaded: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// tcell owns the terminal, so diagnostics go to a file
	logFile, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		log.Fatalf("Failed to open log file: %v", err)
	}
	defer logFile.Close()
	log.SetOutput(logFile)
	log.SetPrefix(fmt.Sprintf("[%s] ", telemetry.SessionID()[:8]))
	log.Printf("starting cmdcrafter (save backend %s at %s)", cfg.SaveBackend, cfg.SavePath)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if cfg.Telemetry {
		setupOTelEnv()
		shutdown, err := telemetry.Setup(ctx)
		if err != nil {
			log.Printf("Warning: telemetry setup failed: %v", err)
			log.Printf("Game will run without observability")
		} else {
			defer func() {
				if err := shutdown(context.Background()); err != nil {
					log.Printf("Error shutting down telemetry: %v", err)
				}
			}()
		}
	}

	saves, closeSaves, err := storage.Open(cfg.SaveBackend, cfg.SavePath, cfg.SaveSlot)
	if err != nil {
		log.Fatalf("Failed to open save storage: %v", err)
	}
	defer func() {
		if err := closeSaves(); err != nil {
			log.Printf("Error closing save storage: %v", err)
		}
	}()

	client := narration.NewClient(narration.ClientConfig{
		Endpoint: cfg.AIEndpoint,
		Model:    cfg.AIModel,
		APIKey:   cfg.AIAPIKey,
	})
	g, err := game.New(game.Config{
		Seed: cfg.Seed,
		Narration: narration.Config{
			Enabled:  cfg.AIEnabled,
			Endpoint: cfg.AIEndpoint,
			Model:    cfg.AIModel,
			Timeout:  cfg.AITimeout,
		},
	}, saves, client)
	if err != nil {
		log.Fatalf("Failed to initialize game: %v", err)
	}
	defer g.Close()

	if err := g.Run(ctx); err != nil {
		log.Printf("Game error: %v", err)
	}
	log.Printf("cmdcrafter exited")
}

// setupOTelEnv configures OTEL environment variables from our custom env vars.
func setupOTelEnv() {
	if os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT") == "" {
		os.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "https://api.honeycomb.io")
	}

	// The .env file may hold an unexpanded variable reference, so the
	// headers are built here from the raw key.
	apiKey := os.Getenv("HONEYCOMB_CMDCRAFTER_API_KEY")
	dataset := os.Getenv("HONEYCOMB_CMDCRAFTER_DATASET")
	if dataset == "" {
		dataset = "cmdcrafter"
	}
	if apiKey != "" {
		os.Setenv("OTEL_EXPORTER_OTLP_HEADERS",
			fmt.Sprintf("x-honeycomb-team=%s,x-honeycomb-dataset=%s", apiKey, dataset))
	}
}
