// cmd/price-movement-rest-api/main.go
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

	"github.com/gin-contrib/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	v1 "github.com/zeeliu7/nlp-stock-price-movement-prediction/internal/api/rest/v1"
	"github.com/zeeliu7/nlp-stock-price-movement-prediction/internal/app"
	"github.com/zeeliu7/nlp-stock-price-movement-prediction/internal/domain/corpus"
	"github.com/zeeliu7/nlp-stock-price-movement-prediction/internal/domain/datasets"
	"github.com/zeeliu7/nlp-stock-price-movement-prediction/internal/infrastructure/cache"
	"github.com/zeeliu7/nlp-stock-price-movement-prediction/internal/infrastructure/connector"
	"github.com/zeeliu7/nlp-stock-price-movement-prediction/internal/infrastructure/generation"
	"github.com/zeeliu7/nlp-stock-price-movement-prediction/internal/infrastructure/messaging"
	"github.com/zeeliu7/nlp-stock-price-movement-prediction/internal/infrastructure/persistence"
	"github.com/zeeliu7/nlp-stock-price-movement-prediction/internal/infrastructure/persistence/models"
	"github.com/zeeliu7/nlp-stock-price-movement-prediction/internal/pkg/config"
	"github.com/zeeliu7/nlp-stock-price-movement-prediction/internal/pkg/logger"
	"gorm.io/gorm"

	"github.com/gin-gonic/gin"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Application error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Parse configuration
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "../../configs/rest-app.yaml"
	}

	restConfig, err := config.InitializeRestConfig(configPath)
	if err != nil {
		return fmt.Errorf("failed to initialize config: %w", err)
	}

	// Initialize logger
	if err := logger.InitLogger(&restConfig.Logger); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	log, err := logger.GetLogger()
	if err != nil {
		return fmt.Errorf("failed to get logger: %w", err)
	}

	// Initialize application dependencies
	deps, err := initializeDependencies(restConfig, log)
	if err != nil {
		return fmt.Errorf("failed to initialize dependencies: %w", err)
	}
	defer deps.close(log)

	// Setup and start server with graceful shutdown
	return startServerWithGracefulShutdown(restConfig, deps, log)
}

// appDependencies holds all initialized application components
type appDependencies struct {
	services         *appServices
	db               *gorm.DB
	eventPublisher   messaging.Publisher
	idempotencyStore cache.IdempotencyStore
	catalog          *corpus.Catalog
}

type appServices struct {
	generation datasets.GenerationService
	metadata   datasets.MetadataService
	download   datasets.DownloadService
}

// close releases the dependencies that hold connections.
func (deps *appDependencies) close(log logger.Logger) {
	if err := deps.eventPublisher.Close(); err != nil {
		log.Error("failed to close event publisher ", err)
	}
	if err := deps.idempotencyStore.Close(); err != nil {
		log.Error("failed to close idempotency store ", err)
	}
	if sqlDB, err := deps.db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			log.Error("failed to close database ", err)
		}
	}
}

// initializeDependencies sets up all application components
func initializeDependencies(cfg *config.RestConfig, log logger.Logger) (*appDependencies, error) {
	// Initialize database
	db, err := persistence.NewDBConnection(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to create db connection: %w", err)
	}

	// Run migrations
	if err := db.AutoMigrate(&models.DatasetModel{}); err != nil {
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}
	log.Info("Database migrations completed successfully")

	// Initialize repositories
	datasetRepo, err := persistence.NewGormDatasetRepository(db, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create dataset repository: %w", err)
	}

	// Initialize artifact store, event publisher and idempotency store
	ctx := context.Background()
	artifactStore, err := connector.NewArtifactStore(ctx, &cfg.ArtifactStore, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create artifact store: %w", err)
	}

	eventPublisher, err := messaging.NewEventPublisher(&cfg.Events, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create event publisher: %w", err)
	}

	idempotencyStore, err := cache.NewIdempotencyStore(ctx, &cfg.Idempotency)
	if err != nil {
		return nil, fmt.Errorf("failed to create idempotency store: %w", err)
	}

	// Initialize the generation engine over the built-in catalog
	catalog := corpus.DefaultCatalog()
	engine, err := generation.NewEngine(catalog, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create generation engine: %w", err)
	}

	// Initialize services
	services, err := initializeApplicationServices(engine, datasetRepo, artifactStore, eventPublisher, cfg.Generation, log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize services: %w", err)
	}

	return &appDependencies{
		services:         services,
		db:               db,
		eventPublisher:   eventPublisher,
		idempotencyStore: idempotencyStore,
		catalog:          catalog,
	}, nil
}

// startServerWithGracefulShutdown starts the HTTP server and handles graceful shutdown
func startServerWithGracefulShutdown(cfg *config.RestConfig, deps *appDependencies, log logger.Logger) error {
	// Setup router
	r := gin.Default()

	// Configure CORS
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "Idempotency-Key"},
		ExposeHeaders:    []string{"Content-Length", "Content-Type", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Setup API routes
	v1.SetupRoutes(r,
		deps.services.generation,
		deps.services.metadata,
		deps.services.download,
		deps.idempotencyStore,
		cfg.Idempotency.TTL,
		deps.catalog,
		deps.db,
	)

	// Prometheus metrics
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Serve OpenAPI spec
	r.GET("/api/v1/pmp/openapi.yaml", func(c *gin.Context) {
		c.File("./api/openapi/v1/price-movement.yaml")
	})

	// Create HTTP server
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second, // Prevent Slowloris attack
	}

	// Channel to listen for errors from the server
	serverErrors := make(chan error, 1)

	// Start server in goroutine
	go func() {
		log.Info("Starting server on port ", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrors <- fmt.Errorf("server failed to start: %w", err)
		}
	}()

	// Channel to listen for interrupt signals
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	// Block until we receive a signal or server error
	select {
	case err := <-serverErrors:
		return err
	case sig := <-quit:
		log.Info("Received signal ", sig, ", initiating graceful shutdown")
	}

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	log.Info("Shutting down server...")
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Info("Server stopped gracefully")
	return nil
}

// initializeApplicationServices sets up all application services
func initializeApplicationServices(
	engine *generation.Engine,
	datasetRepo datasets.Repository,
	artifactStore datasets.ArtifactStore,
	eventPublisher datasets.EventPublisher,
	generationDefaults config.GenerationSettings,
	log logger.Logger,
) (*appServices, error) {
	generationService, err := app.NewGenerationService(engine, datasetRepo, artifactStore, eventPublisher, generationDefaults, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create generation service: %w", err)
	}

	metadataService, err := app.NewMetadataService(datasetRepo, artifactStore, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create metadata service: %w", err)
	}

	downloadService, err := app.NewDownloadService(datasetRepo, artifactStore, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create download service: %w", err)
	}

	log.Info("Application services initialized successfully")
	return &appServices{
		generation: generationService,
		metadata:   metadataService,
		download:   downloadService,
	}, nil
}
