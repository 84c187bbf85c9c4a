package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pageza/pantry-recipes/backend/config"
	"github.com/pageza/pantry-recipes/backend/internal/database"
	"github.com/pageza/pantry-recipes/backend/internal/logging"
	"github.com/pageza/pantry-recipes/backend/internal/middleware"
	"github.com/pageza/pantry-recipes/backend/internal/router"
	"github.com/pageza/pantry-recipes/backend/internal/server"
	"github.com/pageza/pantry-recipes/backend/internal/service"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger, err := logging.New(cfg.Environment, cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if cfg.Environment.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	if cfg.GeminiAPIKey == "" {
		logger.Warn("GEMINI_API_KEY not set, recipe requests will fail with 503")
	}
	gemini := service.NewGeminiClient(service.GeminiConfig{
		APIKey:  cfg.GeminiAPIKey,
		Model:   cfg.GeminiModel,
		BaseURL: cfg.GeminiURL,
		Timeout: cfg.UpstreamTimeout,
	}, logger)

	var limiter *middleware.RateLimiter
	if cfg.RateLimitRequests > 0 {
		redisClient, err := database.NewRedisClient(context.Background(), cfg, logger)
		if err != nil {
			logger.Warn("Redis unavailable, falling back to in-process rate limiting", zap.Error(err))
		}
		if redisClient != nil {
			defer redisClient.Close()
		}
		limiter = middleware.NewRateLimiter(redisClient, middleware.RateLimitConfig{
			Window:    cfg.RateLimitWindow,
			Limit:     cfg.RateLimitRequests,
			KeyPrefix: "rate_limit:recipes",
		}, logger)
	}

	auth := middleware.ClientAuthConfig{Token: cfg.ClientToken, TokenHash: cfg.ClientTokenHash}
	if cfg.ClientToken != "" {
		auth.Validator = service.NewTokenIssuer(cfg.ClientToken)
	}
	if !auth.Enabled() {
		logger.Warn("no client token configured, recipe endpoints are open")
	}

	handler := router.SetupRecipeRouter(router.RecipeRouterConfig{
		Recipes:     service.NewRecipeService(gemini, logger),
		Auth:        auth,
		CORSOrigins: cfg.CORSOrigins,
		RateLimiter: limiter,
		Logger:      logger,
	})
	srv := server.New("recipes", cfg.RecipeAddr(), handler, logger)

	// Channel to listen for errors coming from the server
	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

	// Channel to listen for an interrupt or terminate signal from the OS
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil {
			logger.Fatal("server error", zap.Error(err))
		}
		return
	case sig := <-quit:
		logger.Info("received signal", zap.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.UpstreamTimeout+5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server shutdown error", zap.Error(err))
	}
	logger.Info("server stopped")
}
