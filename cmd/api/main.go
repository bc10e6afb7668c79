package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prefeitura-rio/app-contacts/internal/config"
	"github.com/prefeitura-rio/app-contacts/internal/handlers"
	"github.com/prefeitura-rio/app-contacts/internal/logging"
	"github.com/prefeitura-rio/app-contacts/internal/middleware"
	"github.com/prefeitura-rio/app-contacts/internal/observability"
	"github.com/prefeitura-rio/app-contacts/internal/services"
	"github.com/prefeitura-rio/app-contacts/internal/utils"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"

	_ "github.com/prefeitura-rio/app-contacts/docs"
)

// @title           Contacts Import API
// @version         1.0
// @description     API for importing contact spreadsheets into groups with configurable duplicate detection and merging.

// @contact.name   API Support

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @host      localhost:8080
// @BasePath  /v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

// @tag.name import
// @tag.description Contact import and preview

// @tag.name import-configs
// @tag.description Saved import configs and presets

// @tag.name health
// @tag.description Health check operations

func main() {
	// Initialize logger first
	if err := logging.InitLogger(); err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}

	// Load configuration
	if err := config.LoadConfig(); err != nil {
		logging.Logger.Fatal("failed to load config", zap.Error(err))
	}

	// Initialize observability
	observability.InitTracer()
	defer observability.ShutdownTracer()

	// Initialize database connections
	if err := config.InitMongoDB(); err != nil {
		logging.Logger.Fatal("failed to initialize MongoDB", zap.Error(err))
	}
	config.InitRedis()

	// Services
	logger := logging.Logger
	contacts := services.NewMongoContactStore(config.MongoDB, logger)
	phones := utils.NewPhoneNormalizer(config.AppConfig.PhoneStructuralFallback)
	importService := services.NewImportService(contacts, phones, logger, config.AppConfig.ImportMaxRows)
	configService := services.NewImportConfigService(
		services.NewMongoImportConfigRepository(config.MongoDB, logger),
		config.Redis,
		config.AppConfig.RedisTTL,
		logger,
	)

	limiter := services.NewImportRateLimiter(config.AppConfig.ImportRateLimit, logger)
	go func() {
		ticker := time.NewTicker(time.Hour)
		defer ticker.Stop()
		for range ticker.C {
			limiter.Cleanup(time.Hour)
		}
	}()

	importHandlers := handlers.NewImportHandlers(importService, configService, limiter, config.AppConfig.ImportMaxFileSize, logger)
	configHandlers := handlers.NewImportConfigHandlers(configService, logger)
	healthHandlers := handlers.NewHealthHandlers(healthChecks(), logger)

	// Set Gin mode
	if config.AppConfig.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Create router with middleware
	router := gin.New()
	router.MaxMultipartMemory = config.AppConfig.ImportMaxFileSize
	router.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.RequestTiming(),
		middleware.RequestLogger(),
		middleware.RequestTracker(),
		cors.Default(),
	)

	// Metrics endpoint
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API v1 routes
	v1 := router.Group("/v1")
	{
		v1.GET("/health", healthHandlers.HealthCheck)

		authed := v1.Group("")
		authed.Use(middleware.AuthMiddleware(), middleware.AuditMiddleware())
		{
			authed.POST("/groups/:group_id/import", importHandlers.ImportContacts)
			authed.POST("/import/preview", importHandlers.PreviewImport)

			authed.GET("/import-configs", configHandlers.ListConfigs)
			authed.POST("/import-configs", configHandlers.CreateConfig)
			authed.GET("/import-configs/presets", configHandlers.ListPresets)
			authed.GET("/import-configs/default", configHandlers.GetDefaultConfig)
			authed.GET("/import-configs/:config_id", configHandlers.GetConfig)
			authed.PUT("/import-configs/:config_id", configHandlers.UpdateConfig)
			authed.DELETE("/import-configs/:config_id", configHandlers.DeleteConfig)
			authed.POST("/import-configs/:config_id/default", configHandlers.SetDefaultConfig)
		}
	}

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Imports of large sheets run well past the usual request budget
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", config.AppConfig.Port),
		Handler:      router,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 10 * time.Minute,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logging.Logger.Info("starting server",
			zap.Int("port", config.AppConfig.Port),
			zap.String("environment", config.AppConfig.Environment),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Logger.Fatal("failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	// Graceful shutdown
	logging.Logger.Info("shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logging.Logger.Fatal("server forced to shutdown", zap.Error(err))
	}

	if err := config.MongoDB.Client().Disconnect(ctx); err != nil {
		logging.Logger.Warn("failed to disconnect from MongoDB", zap.Error(err))
	}

	logging.Logger.Info("server exited gracefully")
}

// healthChecks pings MongoDB and, when connected, Redis
func healthChecks() map[string]handlers.HealthCheckFunc {
	checks := map[string]handlers.HealthCheckFunc{
		"mongodb": func(ctx context.Context) error {
			return config.MongoDB.Client().Ping(ctx, readpref.Primary())
		},
	}
	if config.Redis != nil {
		checks["redis"] = func(ctx context.Context) error {
			return config.Redis.Ping(ctx).Err()
		}
	}
	return checks
}
