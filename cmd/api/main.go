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

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"riskreport/internal/config"
	"riskreport/internal/database"
	"riskreport/internal/handlers"
	"riskreport/internal/logger"
	"riskreport/internal/middleware"
	"riskreport/internal/report"
	"riskreport/internal/risk"
	"riskreport/internal/scheduler"
	"riskreport/internal/services"
	"riskreport/internal/store"
	"riskreport/internal/validator"

	_ "riskreport/internal/docs" // Import swagger docs
)

// @title           Risk Report API
// @version         1.0
// @description     Computes portfolio risk key figures (market value, 1-day return, 3-month annualized volatility) and cumulative return series from stored positions and prices.

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key
// @description Key for endpoints that compute or delete key figure values.

func main() {
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	dbManager, err := database.NewManager(database.NewConfig(appConfig))
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}
	defer dbManager.Close()

	if err := dbManager.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	mode, err := risk.ParseWriteMode(appConfig.KeyFigureWriteMode)
	if err != nil {
		return err
	}

	// Initialize services
	conn := store.New(dbManager.DB())
	reportService := report.NewService(risk.NewGenerator(conn, risk.WithWriteMode(mode)))
	catalogService := services.NewCatalogService(conn)

	// Initialize handlers
	catalogHandler := handlers.NewCatalogHandler(catalogService)
	reportHandler := handlers.NewReportHandler(reportService)

	validator.Register()

	if appConfig.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.Metrics())
	router.Use(middleware.ErrorHandler())

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	handlers.RegisterRoutes(router.Group("/api/v1"), catalogHandler, reportHandler, appConfig.PipelineAPIKey)

	if appConfig.ReportSchedule != "" {
		sched := scheduler.New()
		job := scheduler.NewReportJob(scheduler.ReportJobConfig{
			Reports:      reportService,
			Portfolio:    appConfig.ReportPortfolio,
			KeyFigures:   appConfig.ReportKeyFigures,
			LookbackDays: appConfig.ReportLookbackDays,
		})
		if err := sched.AddJob(appConfig.ReportSchedule, job); err != nil {
			return fmt.Errorf("invalid REPORT_SCHEDULE %q: %w", appConfig.ReportSchedule, err)
		}
		sched.Start()
		defer sched.Stop()
	}

	srv := &http.Server{
		Addr:              ":" + appConfig.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		log.Infof("Starting risk report server on port %s", appConfig.Port)
		log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
		serveErr <- srv.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
