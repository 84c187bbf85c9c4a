package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/pageza/pantry-recipes/backend/internal/api"
	"github.com/pageza/pantry-recipes/backend/internal/logging"
	"github.com/pageza/pantry-recipes/backend/internal/middleware"
	"github.com/pageza/pantry-recipes/backend/internal/service"
)

// RecipeRouterConfig holds the dependencies of the recipe service routes
type RecipeRouterConfig struct {
	Recipes     service.IRecipeService
	Auth        middleware.ClientAuthConfig
	CORSOrigins []string
	// RateLimiter is optional.
	RateLimiter *middleware.RateLimiter
	Logger      *zap.Logger
}

// TranscriptionRouterConfig holds the dependencies of the transcription service routes
type TranscriptionRouterConfig struct {
	Transcription service.ITranscriptionService
	MaxUpload     int64
	WorkDir       string
	Logger        *zap.Logger
}

// SetupRecipeRouter configures the recipe service routes
func SetupRecipeRouter(cfg RecipeRouterConfig) *gin.Engine {
	logger := orNop(cfg.Logger)
	router := newEngine("recipes", logger, nil)
	router.Use(middleware.CORS(cfg.CORSOrigins))

	router.GET("/", api.ServiceInfo)
	router.GET("/health", api.HealthCheck)
	router.GET("/healthz", api.HealthCheck)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	guards := []gin.HandlerFunc{middleware.ClientAuth(cfg.Auth)}
	if cfg.RateLimiter != nil {
		guards = append(guards, cfg.RateLimiter.RateLimitMiddleware())
	}
	api.NewRecipeHandler(cfg.Recipes, logger).RegisterRoutes(router, guards...)

	return router
}

// SetupTranscriptionRouter configures the transcription service routes
func SetupTranscriptionRouter(cfg TranscriptionRouterConfig) *gin.Engine {
	logger := orNop(cfg.Logger)
	router := newEngine("transcriber", logger, gin.H{"error": "Internal Server Error", "success": false})
	router.Use(middleware.CORS(nil))
	router.MaxMultipartMemory = 8 << 20

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	api.NewTranscriptionHandler(cfg.Transcription, cfg.MaxUpload, cfg.WorkDir, logger).RegisterRoutes(router)

	return router
}

func newEngine(name string, logger *zap.Logger, panicBody any) *gin.Engine {
	router := gin.New()
	router.Use(
		middleware.Recovery(logger, panicBody),
		middleware.RequestID(),
		logging.RequestLogger(logger),
		middleware.Metrics(name),
	)
	return router
}

func orNop(logger *zap.Logger) *zap.Logger {
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}
