package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"

	"media-insight-dashboard/config"
	_ "media-insight-dashboard/docs"
	"media-insight-dashboard/internal/controller"
	"media-insight-dashboard/internal/filestate"
	"media-insight-dashboard/internal/kafka"
	"media-insight-dashboard/internal/model"
	"media-insight-dashboard/internal/repository"
	"media-insight-dashboard/internal/scheduler"
	"media-insight-dashboard/internal/service"
	"media-insight-dashboard/internal/store"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the dashboard HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServer(cfg)
	},
}

func runServer(cfg *config.Config) error {
	app := fx.New(
		// Core Dependencies
		fx.Supply(cfg),
		// Infrastructure Dependencies
		fx.Provide(
			NewGinEngine,
			NewDatasetRepository,
			NewLLMService,
			NewInsightEventPublisher,
			NewFileStateManager,
			newInsightCache,
			store.NewInMemorySessionStore,
			service.NewDatasetService,
			service.NewInsightService,
			service.NewDashboardService,
			service.NewCacheMaintenanceService,
			controller.NewDashboardController,
			controller.NewViewController,
			controller.NewSessionController,
		),
		fx.Invoke(
			LoadInitialState,
			RegisterAPIRoutes,
			RegisterScheduler,
		),
	)

	startCtx, cancelStart := context.WithTimeout(context.Background(), 2*time.Minute) // Timeout for startup
	defer cancelStart()
	if err := app.Start(startCtx); err != nil {
		log.Error().Err(err).Msg("Failed to start application")
		return err
	}
	<-app.Done()

	// Initiate shutdown
	stopCtx, cancelStop := context.WithTimeout(context.Background(), 30*time.Second) // Timeout for graceful shutdown
	defer cancelStop()
	log.Info().Msg("Shutting down application...")
	if err := app.Stop(stopCtx); err != nil {
		log.Error().Err(err).Msg("Forced shutdown due to error or timeout")
		return err
	}
	log.Info().Msg("All background processes finished. Exiting.")
	return nil
}

func NewGinEngine() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())

	// Configure CORS
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"}, // Add your frontend URLs
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", controller.SessionHeader},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Add swagger route
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

// --- Factory Functions ---

func NewDatasetRepository(lc fx.Lifecycle, cfg *config.Config) (repository.DatasetRepository, error) {
	repo, closeRepo, err := newDatasetRepository(context.Background(), cfg)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			closeRepo()
			return nil
		},
	})
	return repo, nil
}

func NewLLMService(cfg *config.Config) (service.LLMService, error) {
	return newLLMService(cfg)
}

func NewInsightEventPublisher(lc fx.Lifecycle, cfg *config.Config) kafka.InsightEventPublisher {
	publisher := kafka.NewInsightEventPublisher(cfg)
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return publisher.Close()
		},
	})
	return publisher
}

func NewFileStateManager(cfg *config.Config) filestate.Manager {
	return newFileStateManager(cfg)
}

// --- Invoker Functions ---

// LoadInitialState loads the dataset before the server accepts requests and restores the
// insight cache snapshot. The snapshot is written again on shutdown.
func LoadInitialState(lc fx.Lifecycle, datasets service.DatasetService, maintenance service.CacheMaintenanceService) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := datasets.Reload(ctx); err != nil {
				return err
			}
			if err := maintenance.Restore(); err != nil {
				log.Warn().Err(err).Msg("Starting with an empty insight cache")
			}
			return nil
		},
		OnStop: func(ctx context.Context) error {
			if err := maintenance.Snapshot(); err != nil {
				log.Error().Err(err).Msg("Failed to snapshot insight cache on shutdown")
			}
			return nil
		},
	})
}

func RegisterAPIRoutes(
	lifecycle fx.Lifecycle,
	router *gin.Engine,
	cfg *config.Config,
	dashboardController *controller.DashboardController,
	viewController *controller.ViewController,
	sessionController *controller.SessionController,
) {
	router.GET("/health", HealthCheck)
	controller.RegisterDashboardRoutes(router, dashboardController)
	controller.RegisterViewRoutes(router, viewController)
	controller.RegisterSessionRoutes(router, sessionController)

	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}
	lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info().Msgf("Starting HTTP server on port %s", cfg.Server.Port)
			go func() {
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Error().Err(err).Msg("HTTP server ListenAndServe error")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info().Msg("Shutting down HTTP server...")
			return server.Shutdown(ctx)
		},
	})
}

// HealthCheck godoc
// @Summary      Health check
// @Description  Reports that the API process is up.
// @Tags         health
// @Produce      json
// @Success      200  {object}  model.Response
// @Router       /health [get]
func HealthCheck(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, model.NewResponse("OK", nil))
}

func RegisterScheduler(lc fx.Lifecycle, cfg *config.Config, datasets service.DatasetService, maintenance service.CacheMaintenanceService) error {
	_, err := scheduler.NewScheduler(lc, cfg, datasets, maintenance)
	return err
}
