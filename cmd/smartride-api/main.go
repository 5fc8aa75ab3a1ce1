// README: Entry point; loads config, wires services, starts the HTTP API.
package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"smartride/internal/ai"
	"smartride/internal/config"
	httptransport "smartride/internal/http"
	"smartride/internal/logging"
	"smartride/internal/modules/assistant"
	"smartride/internal/modules/rides"
	"smartride/internal/modules/weather"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	logger := logging.NewLogger(cfg.Log.Level)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var recommender ai.Recommender
	switch cfg.AI.Provider {
	case "gemini":
		gemini, err := ai.NewGeminiRecommender(ctx, cfg.AI.GeminiKey)
		if err != nil {
			log.Fatalf("gemini init: %v", err)
		}
		defer gemini.Close()
		recommender = gemini
	case "openai":
		openai, err := ai.NewOpenAIRecommender(cfg.AI.OpenAIKey)
		if err != nil {
			log.Fatalf("openai init: %v", err)
		}
		recommender = openai
	default:
		logger.Info("no AI provider configured, using deterministic option selection")
	}

	uberClient := rides.NewProviderClient("uber", cfg.Providers.UberBaseURL)
	lyftClient := rides.NewProviderClient("lyft", cfg.Providers.LyftBaseURL)
	weatherSvc := weather.NewService()

	ridesSvc := rides.NewService(uberClient, lyftClient, recommender, weatherSvc, logger)
	assistantSvc := assistant.NewService(ridesSvc, logger)

	server := &http.Server{
		Addr:    cfg.HTTP.Addr,
		Handler: httptransport.NewRouter(assistantSvc, logger),
	}

	go func() {
		<-ctx.Done()
		_ = server.Shutdown(context.Background())
	}()

	logger.Info("starting", "addr", cfg.HTTP.Addr, "ai_provider", cfg.AI.Provider)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
}
