package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"BioPatch_V1/internal/config"
	"BioPatch_V1/internal/database"
	"BioPatch_V1/internal/geminiservice"
	"BioPatch_V1/internal/logging"
	"BioPatch_V1/internal/recommendation"
	"BioPatch_V1/internal/server"
	"github.com/rs/zerolog/log"
)

func gracefulShutdown(apiServer *http.Server, done chan bool) {
	// Create context that listens for the interrupt signal from the OS.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	log.Info().Msg("shutting down gracefully, press Ctrl+C again to force")
	stop() // Allow Ctrl+C to force shutdown

	// The server has 5 seconds to finish the requests it is currently handling.
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := apiServer.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exiting")
	done <- true
}

func main() {
	cfg := config.Load()
	logging.Init("biopatch-api", cfg.IsDevelopment(), cfg.LogLevel)

	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	ctx := context.Background()

	dbService, err := database.NewService(ctx, cfg.DatabaseURL, cfg.DBMaxConns)
	if err != nil {
		log.Fatal().Err(err).Msg("could not initialize database")
	}
	defer dbService.Close()

	gemini, err := geminiservice.NewClient(ctx, geminiservice.Config{
		APIKey:  cfg.GeminiAPIKey,
		Model:   cfg.GeminiModel,
		Timeout: cfg.GeminiTimeout,
		BaseURL: cfg.GeminiBaseURL,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("could not initialize Gemini client")
	}
	log.Info().Str("model", gemini.Model()).Msg("Recommendation engine ready")

	apiServer, err := server.NewServer(cfg, dbService, recommendation.NewOrchestrator(gemini))
	if err != nil {
		log.Fatal().Err(err).Msg("could not build server")
	}

	done := make(chan bool, 1)
	go gracefulShutdown(apiServer, done)

	log.Info().Str("addr", apiServer.Addr).Str("env", cfg.Env).Msg("Server starting")
	if err := apiServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("http server error")
	}

	<-done
	log.Info().Msg("Graceful shutdown complete.")
}
