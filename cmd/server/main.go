package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"fundtracker/internal/config"
	cronrunner "fundtracker/internal/cron"
	"fundtracker/internal/db"
	"fundtracker/internal/handler"
	"fundtracker/internal/logger"
	gormrepository "fundtracker/internal/repository/gorm"
	"fundtracker/internal/service"

	_ "fundtracker/docs"
)

func main() {
	cfgPath := os.Getenv("FT_CONFIG")
	if cfgPath == "" {
		cfgPath = "config/config.yaml"
	}

	envOnly := false
	if envOnlyRaw := os.Getenv("FT_ENV_ONLY"); envOnlyRaw != "" {
		envOnly = strings.EqualFold(envOnlyRaw, "true") || envOnlyRaw == "1"
	}

	cfg, err := config.Load(cfgPath, envOnly)
	if err != nil {
		panic(err)
	}

	logger, err := logger.New(cfg.Log)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	// Rates and ratios go out as JSON numbers, not strings.
	decimal.MarshalJSONWithoutQuotes = true

	dbConn, err := db.Open(cfg.DB)
	if err != nil {
		logger.Fatal("db open failed", zap.Error(err))
	}
	defer db.Close(dbConn)

	if err := db.SetTimezone(dbConn, cfg.DB.Timezone); err != nil {
		logger.Warn("failed to set timezone", zap.Error(err))
	}
	if err := db.AutoMigrate(dbConn); err != nil {
		logger.Fatal("auto-migrate failed", zap.Error(err))
	}

	store := gormrepository.New(dbConn.Gorm)
	dateResolver := &service.ReportDateResolver{
		Repo:   store,
		Source: cfg.Query.ReportDateSource,
	}
	compareService := &service.CompareService{Repo: store}
	ingestService := &service.ReportIngestService{
		Repo:   store,
		Logger: logger,
		Config: cfg.Ingest,
	}
	reconcileService := &service.ReportReconcileService{
		Repo:   store,
		Logger: logger,
	}

	if strings.EqualFold(cfg.App.Env, "dev") {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(corsMiddleware())
	engine.Use(accessLogMiddleware(logger))

	healthHandler := &handler.HealthHandler{DB: dbConn.Gorm}
	healthHandler.Register(engine)
	fundHandler := &handler.FundHandler{
		Repo:   store,
		Dates:  dateResolver,
		Query:  cfg.Query,
		Logger: logger,
	}
	fundHandler.Register(engine)
	strategyHandler := &handler.StrategyHandler{
		Repo:   store,
		Dates:  dateResolver,
		Logger: logger,
	}
	strategyHandler.Register(engine)
	managerHandler := &handler.ManagerHandler{
		Repo:   store,
		Query:  cfg.Query,
		Logger: logger,
	}
	managerHandler.Register(engine)
	analyticsHandler := &handler.AnalyticsHandler{
		Repo:    store,
		Dates:   dateResolver,
		Compare: compareService,
		Logger:  logger,
	}
	analyticsHandler.Register(engine)

	engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	srv := &http.Server{
		Addr:    cfg.Server.HTTPAddr,
		Handler: engine,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cronRunner := cronrunner.New(logger, ctx)
	if cfg.Cron.Enabled {
		if cfg.Ingest.Enabled {
			_, err := cronRunner.Add(cfg.Cron.IngestScan, func(ctx context.Context) {
				result, err := ingestService.ScanOnce(ctx)
				if err != nil {
					logger.Warn("cron report ingest failed", zap.Error(err))
					return
				}
				if result.Files > 0 {
					logger.Info("cron report ingest ok",
						zap.Int("files", result.Files),
						zap.Int("imported", result.Imported),
						zap.Int("skipped", result.Skipped),
						zap.Int("failed", result.Failed),
					)
				}
			})
			if err != nil {
				logger.Warn("cron register report ingest failed", zap.Error(err))
			}
		}
		if cfg.Reconcile.Enabled {
			_, err := cronRunner.Add(cfg.Cron.Reconcile, func(ctx context.Context) {
				repaired, err := reconcileService.ReconcileOnce(ctx)
				if err != nil {
					logger.Warn("cron metadata reconcile failed", zap.Error(err))
					return
				}
				if repaired > 0 {
					logger.Info("cron metadata reconcile ok", zap.Int("repaired", repaired))
				}
			})
			if err != nil {
				logger.Warn("cron register metadata reconcile failed", zap.Error(err))
			}
		}
		cronRunner.Start()
		defer cronRunner.Stop()
	}

	// Pick up reports already waiting in the drop directory before the
	// first cron tick.
	if cfg.Ingest.Enabled {
		if result, err := ingestService.ScanOnce(ctx); err != nil {
			logger.Warn("initial report scan failed (continuing)", zap.Error(err))
		} else if result.Imported > 0 {
			logger.Info("initial report scan complete",
				zap.Int("imported", result.Imported),
				zap.Int("snapshots", result.Snapshots),
			)
		}
	}

	errCh := make(chan error, 2)

	go func() {
		logger.Info("http server starting", zap.String("addr", cfg.Server.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown requested")
	case err := <-errCh:
		logger.Error("server error", zap.Error(err))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
}

func accessLogMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Info("http request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("elapsed", time.Since(start)),
		)
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET,POST,PUT,DELETE,OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type,Authorization")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}
