package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/noah-isme/checklist-epi-api/api/swagger"
	"github.com/noah-isme/checklist-epi-api/internal/handler"
	internalmiddleware "github.com/noah-isme/checklist-epi-api/internal/middleware"
	"github.com/noah-isme/checklist-epi-api/internal/repository"
	"github.com/noah-isme/checklist-epi-api/internal/service"
	"github.com/noah-isme/checklist-epi-api/pkg/cache"
	"github.com/noah-isme/checklist-epi-api/pkg/config"
	"github.com/noah-isme/checklist-epi-api/pkg/database"
	"github.com/noah-isme/checklist-epi-api/pkg/export"
	"github.com/noah-isme/checklist-epi-api/pkg/jobs"
	"github.com/noah-isme/checklist-epi-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/checklist-epi-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/checklist-epi-api/pkg/middleware/requestid"
	"github.com/noah-isme/checklist-epi-api/pkg/storage"
)

// @title Checklist EPI/EPC API
// @version 1.0.0
// @description Field inspection checklists for safety equipment and tools
// @BasePath /api/v1
// @schemes http

const (
	exportCleanupInterval = time.Hour
	sessionEvictInterval  = 10 * time.Minute
)

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

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	metrics := service.NewMetricsService()
	validate := validator.New()

	historyStore, checks, closeStore, err := openHistoryStore(ctx, cfg)
	if err != nil {
		logr.Fatal("history store unavailable", zap.String("backend", cfg.History.Backend), zap.Error(err))
	}
	defer closeStore()

	historySvc := service.NewHistoryService(historyStore, service.HistoryServiceConfig{
		Key:      cfg.History.Key,
		Capacity: cfg.History.Capacity,
	}, metrics, logr)
	loaded := historySvc.Load(ctx)
	logr.Info("checklist history loaded", zap.String("backend", cfg.History.Backend), zap.Int("snapshots", loaded))

	checklistSvc := service.NewChecklistService(historySvc, validate, metrics, logr)

	evidenceSvc := service.NewEvidenceService(checklistSvc, service.EvidenceServiceConfig{
		MaxFileSize: cfg.Evidence.MaxFileSizeBytes,
	}, metrics, logr)
	evidenceQueue := jobs.NewQueue("evidence", evidenceSvc.Process, jobs.QueueConfig{
		Workers:    cfg.Evidence.Workers,
		MaxRetries: 1,
		Logger:     logr,
		OnResult:   evidenceSvc.OnResult,
	})
	evidenceQueue.Start(ctx)
	defer evidenceQueue.Stop()
	evidenceSvc.UseQueue(evidenceQueue)

	exportStore, err := storage.NewLocalStorage(cfg.Export.StorageDir)
	if err != nil {
		logr.Fatal("export storage unavailable", zap.String("dir", cfg.Export.StorageDir), zap.Error(err))
	}
	logo := export.LoadLogo(cfg.Export.LogoPath)
	if logo == nil {
		logr.Warn("export logo not found, rendering without it", zap.String("path", cfg.Export.LogoPath))
	}
	exportSvc := service.NewExportService(
		checklistSvc,
		exportStore,
		storage.NewSignedURLSigner(cfg.Export.SignedURLSecret, cfg.Export.SignedURLTTL),
		service.ExportRenderers{
			XLSX: export.NewXLSXExporter(logo),
			PDF:  export.NewPDFExporter(logo),
			CSV:  export.NewCSVExporter(),
		},
		service.ExportServiceConfig{
			APIPrefix: cfg.APIPrefix,
			Location:  cfg.Export.Location(),
			ResultTTL: cfg.Export.SignedURLTTL,
		},
		metrics,
		logr,
	)
	go runExportCleanup(ctx, exportSvc, logr)
	go runSessionEviction(ctx, checklistSvc, cfg.SessionTTL)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(internalmiddleware.Metrics(metrics))

	metricsHandler := handler.NewMetricsHandler(metrics, checks)
	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", metricsHandler.Ready)
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	checklistHandler := handler.NewChecklistHandler(checklistSvc, evidenceSvc)
	exportHandler := handler.NewExportHandler(exportSvc)
	historyHandler := handler.NewHistoryHandler(historySvc)

	uploads := r.Group(cfg.APIPrefix)
	uploads.POST("/sessions/:id/items/:itemId/evidence", checklistHandler.UploadEvidence)

	api := r.Group(cfg.APIPrefix, internalmiddleware.BodyLimit(cfg.BodyLimitBytes))
	{
		api.GET("/teams", checklistHandler.Teams)
		api.GET("/categories", checklistHandler.Categories)

		sessions := api.Group("/sessions")
		sessions.POST("", checklistHandler.Create)
		sessions.GET("/:id", checklistHandler.Get)
		sessions.DELETE("/:id", checklistHandler.Delete)
		sessions.POST("/:id/reset", checklistHandler.Reset)
		sessions.PUT("/:id/sector", checklistHandler.SelectSector)
		sessions.PUT("/:id/modality", checklistHandler.SelectModality)
		sessions.PUT("/:id/mode", checklistHandler.SelectMode)
		sessions.PUT("/:id/team", checklistHandler.SelectTeam)
		sessions.PATCH("/:id/names", checklistHandler.SetNames)
		sessions.PUT("/:id/filter", checklistHandler.SetFilter)
		sessions.PATCH("/:id/items/:itemId", checklistHandler.UpdateItem)
		sessions.PUT("/:id/confirmation", checklistHandler.SetConfirmation)
		sessions.POST("/:id/finalize", checklistHandler.Finalize)
		sessions.GET("/:id/export", exportHandler.Session)

		api.POST("/excel/checklist", exportHandler.Excel)
		api.POST("/pdf/checklist", exportHandler.PDF)
		api.POST("/csv/checklist", exportHandler.CSV)
		api.GET("/exports/:token", exportHandler.Download)

		api.GET("/history", historyHandler.List)
		api.GET("/history/:id", historyHandler.Get)
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logr.Sugar().Infow("server starting", "addr", srv.Addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	logr.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Error("graceful shutdown failed", zap.Error(err))
	}
}

type historyStore interface {
	Read(ctx context.Context, key string) ([]byte, error)
	Write(ctx context.Context, key string, payload []byte) error
}

// openHistoryStore connects the configured history backend and returns its
// readiness checks and a close func.
func openHistoryStore(ctx context.Context, cfg *config.Config) (historyStore, map[string]handler.ReadinessCheck, func(), error) {
	noop := func() {}
	switch cfg.History.Backend {
	case config.HistoryBackendMemory:
		return repository.NewMemoryHistoryStore(), nil, noop, nil
	case config.HistoryBackendRedis:
		client, err := cache.NewRedis(ctx, cfg.Redis)
		if err != nil {
			return nil, nil, noop, err
		}
		checks := map[string]handler.ReadinessCheck{
			"redis": func(c *gin.Context) error { return client.Ping(c.Request.Context()).Err() },
		}
		repo := repository.NewRedisHistoryRepository(client)
		return repo, checks, func() { _ = repo.Close() }, nil
	case config.HistoryBackendPostgres:
		db, err := database.NewPostgres(ctx, cfg.Database)
		if err != nil {
			return nil, nil, noop, err
		}
		repo := repository.NewPostgresHistoryRepository(db)
		if err := repo.EnsureSchema(ctx); err != nil {
			_ = db.Close()
			return nil, nil, noop, err
		}
		checks := map[string]handler.ReadinessCheck{
			"postgres": func(c *gin.Context) error { return db.PingContext(c.Request.Context()) },
		}
		return repo, checks, func() { _ = db.Close() }, nil
	case config.HistoryBackendFile, "":
		store, err := storage.NewLocalStorage(filepath.Clean(cfg.History.Dir))
		if err != nil {
			return nil, nil, noop, err
		}
		return repository.NewFileHistoryRepository(store), nil, noop, nil
	default:
		return nil, nil, noop, fmt.Errorf("unknown history backend %q", cfg.History.Backend)
	}
}

func runExportCleanup(ctx context.Context, exports *service.ExportService, logr *zap.Logger) {
	ticker := time.NewTicker(exportCleanupInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			removed, err := exports.Cleanup(0)
			if err != nil {
				logr.Warn("export cleanup failed", zap.Error(err))
				continue
			}
			if len(removed) > 0 {
				logr.Info("expired exports removed", zap.Int("count", len(removed)))
			}
		}
	}
}

func runSessionEviction(ctx context.Context, sessions *service.ChecklistService, ttl time.Duration) {
	ticker := time.NewTicker(sessionEvictInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			sessions.EvictIdle(ttl)
		}
	}
}
