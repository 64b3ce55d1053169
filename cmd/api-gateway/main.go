package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/schoolsuite/reportcard-api/api/swagger"
	"github.com/schoolsuite/reportcard-api/internal/handler"
	"github.com/schoolsuite/reportcard-api/internal/middleware"
	"github.com/schoolsuite/reportcard-api/internal/repository"
	"github.com/schoolsuite/reportcard-api/internal/service"
	"github.com/schoolsuite/reportcard-api/pkg/cache"
	"github.com/schoolsuite/reportcard-api/pkg/config"
	"github.com/schoolsuite/reportcard-api/pkg/database"
	"github.com/schoolsuite/reportcard-api/pkg/export"
	"github.com/schoolsuite/reportcard-api/pkg/jobs"
	"github.com/schoolsuite/reportcard-api/pkg/logger"
	corsmiddleware "github.com/schoolsuite/reportcard-api/pkg/middleware/cors"
	reqidmiddleware "github.com/schoolsuite/reportcard-api/pkg/middleware/requestid"
	"github.com/schoolsuite/reportcard-api/pkg/storage"
	"github.com/schoolsuite/reportcard-api/pkg/tabular"
)

// @title Report Card API
// @version 0.1.0
// @description Normalizes school result spreadsheets into student records and rendered report cards
// @BasePath /
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close() //nolint:errcheck

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Sugar().Warnw("redis unavailable, subject config caching disabled", "error", err)
		redisClient = nil
	}

	files, err := storage.NewLocalStorage(cfg.Archives.StorageDir)
	if err != nil {
		logr.Sugar().Fatalw("failed to prepare archive storage", "error", err)
	}
	signer := storage.NewSignedURLSigner(cfg.Archives.SignedURLSecret, cfg.Archives.SignedURLTTL)

	metricsSvc := service.NewMetricsService()
	cacheRepo := repository.NewCacheRepository(redisClient, logr)
	cacheSvc := service.NewCacheService(cacheRepo, metricsSvc, cfg.SubjectConfigs.CacheTTL, logr, redisClient != nil)

	subjectConfigRepo := repository.NewSubjectConfigRepository(db)
	archiveRepo := repository.NewArchiveRepository(db)

	subjectConfigSvc := service.NewSubjectConfigService(subjectConfigRepo, cacheSvc, nil, logr)
	reportSvc := service.NewReportService(archiveRepo, files, signer, export.NewPDFExporter(), metricsSvc, logr)

	renderQueue := jobs.NewQueue("report-renders", reportSvc.HandleRenderJob, jobs.QueueConfig{
		Workers:    cfg.Jobs.Workers,
		MaxRetries: cfg.Jobs.MaxRetries,
		RetryDelay: cfg.Jobs.RetryDelay,
		Logger:     logr,
	})
	renderQueue.Start(context.Background())
	defer renderQueue.Stop()

	uploadSvc := service.NewUploadService(tabular.NewXLSXReader(), subjectConfigSvc, renderQueue, metricsSvc, logr)

	uploadHandler := handler.NewUploadHandler(uploadSvc, cfg.Uploads.MaxFileSizeBytes)
	subjectConfigHandler := handler.NewSubjectConfigHandler(subjectConfigSvc)
	archiveHandler := handler.NewArchiveHandler(reportSvc, files)
	metricsHandler := handler.NewMetricsHandler(metricsSvc)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", metricsHandler.Prometheus)

	api := r.Group(cfg.APIPrefix)
	{
		api.POST("/upload/report-cards", uploadHandler.Upload)

		api.GET("/subject-configs", subjectConfigHandler.List)
		api.POST("/subject-configs", subjectConfigHandler.Create)
		api.DELETE("/subject-configs/:id", subjectConfigHandler.Delete)
		api.POST("/subject-configs/detect", subjectConfigHandler.Detect)

		api.GET("/archives", archiveHandler.List)
		api.GET("/archives/export", archiveHandler.Export)
		api.POST("/archives/:id/download", archiveHandler.Sign)
		api.GET("/archives/download/:token", archiveHandler.Download)

		api.GET("/status", metricsHandler.Snapshot)
	}

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
