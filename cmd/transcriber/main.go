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
	"github.com/pageza/pantry-recipes/backend/internal/logging"
	"github.com/pageza/pantry-recipes/backend/internal/router"
	"github.com/pageza/pantry-recipes/backend/internal/server"
	"github.com/pageza/pantry-recipes/backend/internal/service"
	"github.com/pageza/pantry-recipes/backend/internal/stt"
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

	// The model is loaded once, before accepting requests.
	loadCtx, cancelLoad := context.WithTimeout(context.Background(), 10*time.Minute)
	engine, err := stt.New(loadCtx, cfg, logger)
	cancelLoad()
	if err != nil {
		logger.Fatal("failed to initialize speech engine", zap.Error(err))
	}
	logger.Info("speech engine loaded", zap.String("engine", cfg.STTEngine), zap.String("model", engine.Name()))

	handler := router.SetupTranscriptionRouter(router.TranscriptionRouterConfig{
		Transcription: service.NewTranscriptionService(engine, logger),
		MaxUpload:     cfg.MaxUploadBytes,
		Logger:        logger,
	})
	srv := server.New("transcriber", cfg.TranscriberAddr(), handler, logger)

	errChan := make(chan error, 1)
	go func() {
		errChan <- srv.Start()
	}()

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

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server shutdown error", zap.Error(err))
	}
	logger.Info("server stopped")
}
