package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.opentelemetry.io/contrib/bridges/otelslog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutlog"
	"go.opentelemetry.io/otel/log/global"
	sdklog "go.opentelemetry.io/otel/sdk/log"

	"user-directory-service/handlers"
	"user-directory-service/storage"
)

func main() {
	// Initialize OpenTelemetry logging
	logger, cleanup, err := initLogger()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer cleanup()

	logger.Info("Starting user directory server")

	// The directory is ephemeral: it lives in memory and starts empty.
	store := storage.NewMemoryStore()

	// Initialize Gin router
	gin.SetMode(getEnv("GIN_MODE", gin.DebugMode))
	router := gin.New()

	// Add recovery middleware
	router.Use(gin.Recovery())

	// Add logging middleware
	router.Use(loggingMiddleware(logger))

	// Initialize handlers
	version := getEnv("API_VERSION", "1.0.0")
	meter := otel.Meter("user-directory-service")
	userHandler := handlers.NewUserHandler(store, logger, meter)
	systemHandler := handlers.NewSystemHandler(store, version)

	router.GET("/", systemHandler.Welcome)
	router.GET("/health", systemHandler.Health)

	api := router.Group("/api")
	{
		api.GET("/stats", systemHandler.Stats)

		users := api.Group("/users")
		{
			users.GET("", userHandler.List)
			users.GET("/:id", userHandler.GetByID)
			users.POST("", userHandler.Create)
			users.PUT("/:id", userHandler.Update)
			users.DELETE("/:id", userHandler.Delete)
		}
	}

	router.NoRoute(handlers.NotFound)

	// Start server
	port := getEnv("PORT", "8080")
	logger.Info("Server starting", "port", port)

	if err := router.Run(":" + port); err != nil {
		logger.Error("Server failed to start", "error", err)
		os.Exit(1)
	}
}

// initLogger initializes OpenTelemetry logging with stdout exporter
func initLogger() (*slog.Logger, func(), error) {
	// Create stdout exporter for logs
	exporter, err := stdoutlog.New()
	if err != nil {
		return nil, nil, err
	}

	// Create log processor and provider
	processor := sdklog.NewSimpleProcessor(exporter)
	provider := sdklog.NewLoggerProvider(sdklog.WithProcessor(processor))

	// Set the global logger provider
	global.SetLoggerProvider(provider)

	// Create slog logger using OTel bridge
	logger := otelslog.NewLogger("user-directory-service")

	// Cleanup function to shutdown the provider
	cleanup := func() {
		if err := provider.Shutdown(context.Background()); err != nil {
			log.Printf("Error shutting down logger provider: %v", err)
		}
	}

	return logger, cleanup, nil
}

// loggingMiddleware logs incoming HTTP requests, tagging each with a
// request id.
func loggingMiddleware(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := uuid.New().String()
		c.Set("request_id", requestID)

		// Log request
		logger.InfoContext(c.Request.Context(), "Incoming request",
			"request_id", requestID,
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"client_ip", c.ClientIP(),
		)

		// Process request
		c.Next()

		// Log response
		logger.InfoContext(c.Request.Context(), "Request completed",
			"request_id", requestID,
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
		)
	}
}

// getEnv returns the value of an environment variable or a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
