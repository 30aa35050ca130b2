package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	restfulspec "github.com/emicklei/go-restful-openapi/v2"
	"github.com/emicklei/go-restful/v3"
	"github.com/go-openapi/spec"
	"github.com/joho/godotenv"
	"github.com/povarna/generative-ai-agents/prompt-relay/internal/api"
	"github.com/povarna/generative-ai-agents/prompt-relay/internal/api/middleware"
	"github.com/povarna/generative-ai-agents/prompt-relay/internal/setup"
	"github.com/povarna/generative-ai-agents/prompt-relay/internal/setup/logger"
	"github.com/rs/cors"
	"github.com/rs/zerolog/log"
)

func enrichSwaggerObject(swo *spec.Swagger) {
	swo.Info = &spec.Info{
		InfoProps: spec.InfoProps{
			Title:       "Prompt Relay API",
			Description: "Forwards prompts to a hosted LLM and returns the generated text",
			Version:     "1.0.0",
		},
	}
	swo.Tags = []spec.Tag{
		{TagProps: spec.TagProps{Name: "health", Description: "Health checks"}},
		{TagProps: spec.TagProps{Name: "ask", Description: "Prompt relay"}},
	}
}

func main() {
	// Load env
	envErr := godotenv.Load()

	cfg := setup.LoadConfig()
	appLogger := logger.Setup(cfg.LogLevel, cfg.LogFormat)

	if envErr != nil {
		log.Warn().Msg("No .env file found")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	deps, err := setup.Wire(ctx, cfg, &appLogger)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to wire dependencies")
	}
	defer deps.Close()

	// API
	handler := api.NewHandler(deps.Relay, &appLogger)
	container := restful.NewContainer()
	container.Filter(middleware.Logger)
	container.Filter(middleware.RecoverPanic)
	api.RegisterRoutes(container, handler)

	container.Add(restfulspec.NewOpenAPIService(restfulspec.Config{
		WebServices:                   container.RegisteredWebServices(),
		APIPath:                       "/openapi.json",
		PostBuildSwaggerObjectHandler: enrichSwaggerObject,
	}))

	// CORS
	corsHandler := cors.New(cors.Options{
		AllowedOrigins: cfg.CORSAllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	})

	addr := fmt.Sprintf(":%s", cfg.Port)
	server := &http.Server{
		Addr:        addr,
		Handler:     corsHandler.Handler(container),
		ReadTimeout: 15 * time.Second,
		IdleTimeout: 60 * time.Second,
	}

	go func() {
		log.Info().Str("address", addr).Msg("Starting Prompt Relay API")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Graceful shutdown failed")
	}

	log.Info().Msg("Prompt Relay API stopped")
}
