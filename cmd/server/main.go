package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rmittal-realty/api/internal/config"
	"github.com/rmittal-realty/api/internal/database"
	apierrors "github.com/rmittal-realty/api/internal/errors"
	"github.com/rmittal-realty/api/internal/handlers"
	"github.com/rmittal-realty/api/internal/logger"
	"github.com/rmittal-realty/api/internal/middleware"
	"github.com/rmittal-realty/api/internal/repository"
	"github.com/rmittal-realty/api/internal/services"
)

const (
	shutdownTimeout = 30 * time.Second
)

func main() {
	// Load configuration from environment variables
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize structured logger
	log := logger.New(cfg.Server.Env)
	log.Info("Starting realty API", map[string]interface{}{
		"version":     handlers.APIVersion,
		"environment": cfg.Server.Env,
		"port":        cfg.Server.Port,
	})

	// Create database connection pool
	ctx := context.Background()
	db, err := database.NewPostgresPool(ctx, cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database", err, map[string]interface{}{
			"host": cfg.Database.Host,
			"port": cfg.Database.Port,
			"name": cfg.Database.Name,
		})
	}
	defer db.Close()

	log.Info("Database connection established", map[string]interface{}{
		"host":     cfg.Database.Host,
		"port":     cfg.Database.Port,
		"database": cfg.Database.Name,
		"pool_min": cfg.Database.PoolMin,
		"pool_max": cfg.Database.PoolMax,
	})

	// Setup Gin router
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	// Add middleware in order: RequestID -> Logger -> Recovery -> CORS
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(log))
	router.Use(middleware.Recovery(log))
	router.Use(middleware.CORS(cfg.CORS.Origins))

	// Unsupported verbs on a known route get the 405 envelope instead of
	// gin's default 404.
	router.HandleMethodNotAllowed = true
	router.NoMethod(func(c *gin.Context) {
		apierrors.MethodNotAllowed(c)
	})

	// Register health check routes
	healthHandler := handlers.NewHealthHandler(db, cfg.Server.Env)
	router.GET("/health", healthHandler.Health)
	router.GET("/health/ready", healthHandler.Ready)
	router.GET("/api/v1/info", healthHandler.Info)

	// Initialize repository and service layers
	propertyRepo := repository.NewPropertyRepository(db)
	blogRepo := repository.NewBlogRepository(db)
	consultationRepo := repository.NewConsultationRepository(db)

	propertyService := services.NewPropertyService(propertyRepo, log)
	blogService := services.NewBlogService(blogRepo, log)
	consultationService := services.NewConsultationService(consultationRepo, log)

	// Initialize handlers
	propertyHandler := handlers.NewPropertyHandler(propertyService)
	blogHandler := handlers.NewBlogHandler(blogService)
	consultationHandler := handlers.NewConsultationHandler(consultationService)
	publicPropertyHandler := handlers.NewPublicPropertyHandler(propertyService)

	// Register API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Public, unauthenticated surface
		v1.GET("/public/properties", publicPropertyHandler.List)
		v1.GET("/blog", blogHandler.PublicList)
		v1.POST("/consultations", consultationHandler.Submit)

		// Admin surface, bearer-token protected
		admin := v1.Group("/admin", middleware.RequireAdmin(cfg.Auth.JWTSecret))
		{
			admin.GET("/properties", propertyHandler.List)
			admin.POST("/properties", propertyHandler.Create)
			admin.PUT("/properties", propertyHandler.Update)
			admin.DELETE("/properties", propertyHandler.Delete)

			admin.GET("/blog", blogHandler.List)
			admin.POST("/blog", blogHandler.Create)
			admin.PUT("/blog", blogHandler.Update)
			admin.DELETE("/blog", blogHandler.Delete)

			admin.GET("/consultations", consultationHandler.List)
			admin.PUT("/consultations", consultationHandler.UpdateStatus)
			admin.DELETE("/consultations", consultationHandler.Delete)
		}
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: router,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server listening", map[string]interface{}{
			"port": cfg.Server.Port,
			"addr": srv.Addr,
		})
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start", err, nil)
		}
	}()

	// Wait for interrupt signal (SIGINT or SIGTERM)
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	// Graceful shutdown
	log.Info("Shutting down server...", nil)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", err, map[string]interface{}{
			"timeout": shutdownTimeout.String(),
		})
	}

	log.Info("Server exited", nil)
}
