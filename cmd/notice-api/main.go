package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	_ "github.com/noah-isme/nawa-notice-api/api/swagger"
	"github.com/noah-isme/nawa-notice-api/internal/handler"
	"github.com/noah-isme/nawa-notice-api/internal/repository"
	"github.com/noah-isme/nawa-notice-api/internal/service"
	"github.com/noah-isme/nawa-notice-api/pkg/cache"
	"github.com/noah-isme/nawa-notice-api/pkg/config"
	"github.com/noah-isme/nawa-notice-api/pkg/database"
	"github.com/noah-isme/nawa-notice-api/pkg/jobs"
	"github.com/noah-isme/nawa-notice-api/pkg/logger"
	"github.com/noah-isme/nawa-notice-api/pkg/storage"
)

// @title Nawa Notice API
// @version 1.0.0
// @description School notice board: role-scoped listings, calendar grid and admin publishing.
// @BasePath /
// @schemes http

type noticeStore interface {
	repository.NoticeStore
	Ping(ctx context.Context) error
}

type stores struct {
	notices noticeStore
	admins  repository.AdminFinder
	close   func()
}

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

	st, err := openStores(cfg, logr)
	if err != nil {
		logr.Fatal("failed to open notice store", zap.String("driver", cfg.StoreDriver), zap.Error(err))
	}
	defer st.close()

	metrics := service.NewMetricsService()

	checks := map[string]handler.Pinger{"store": st.notices}

	// A nil repository keeps the cache service disabled.
	var cacheRepo service.CacheRepository
	if cfg.Notices.CacheEnabled {
		client, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Warn("redis unavailable, listing cache disabled", zap.Error(err))
		} else {
			repo := repository.NewCacheRepository(client)
			defer repo.Close() //nolint:errcheck
			cacheRepo = repo
			checks["cache"] = repo
		}
	}
	cacheSvc := service.NewCacheService(cacheRepo, metrics, cfg.Notices.CacheTTL, logr, cacheRepo != nil)

	files, err := storage.NewLocalStorage(cfg.Attachments.Dir, cfg.Attachments.MaxSizeBytes)
	if err != nil {
		logr.Fatal("failed to prepare attachment directory", zap.String("dir", cfg.Attachments.Dir), zap.Error(err))
	}

	enricher := service.NewNoticeEnricher(st.admins, cfg.Notices.EnrichConcurrency, metrics, logr)
	noticeSvc := service.NewNoticeService(
		st.notices,
		enricher,
		files,
		cacheSvc,
		metrics,
		validator.New(),
		logr,
		cfg.Notices.Location(),
		cfg.Notices.PageSize,
	)

	// Failed removals are logged, never retried.
	cleanup := jobs.NewQueue("attachment-cleanup", service.AttachmentCleanupHandler(files, st.notices), jobs.Config{
		Workers:    2,
		MaxRetries: 0,
		Logger:     logr,
	})
	cleanup.Start(context.Background())
	noticeSvc.UseCleanupQueue(cleanup)

	calendarSvc := service.NewCalendarService(noticeSvc, logr)
	exportSvc := service.NewExportService(noticeSvc, logr)
	tokens := service.NewTokenService(cfg.Session.Secret)

	router := newRouter(routerDeps{
		cfg:            cfg,
		logger:         logr,
		metrics:        metrics,
		tokens:         tokens,
		notices:        handler.NewNoticeHandler(noticeSvc),
		calendar:       handler.NewCalendarHandler(calendarSvc),
		exports:        handler.NewExportHandler(exportSvc),
		ops:            handler.NewMetricsHandler(metrics, checks),
		attachmentsDir: files.Dir(),
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logr.Sugar().Infow("server starting", "addr", srv.Addr, "env", cfg.Env, "store", cfg.StoreDriver)
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
	if err := cleanup.Stop(shutdownCtx); err != nil {
		logr.Warn("attachment cleanup did not finish", zap.Error(err))
	}
}

func openStores(cfg *config.Config, logr *zap.Logger) (*stores, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	switch cfg.StoreDriver {
	case config.StoreDriverPostgres:
		db, err := database.NewPostgres(cfg.Database)
		if err != nil {
			return nil, err
		}
		if err := database.EnsureSchema(ctx, db); err != nil {
			_ = db.Close()
			return nil, err
		}
		return &stores{
			notices: repository.NewNoticeRepository(db),
			admins:  repository.NewAdminRepository(db),
			close:   closer(logr, "postgres", db),
		}, nil
	default:
		mdb, err := database.NewMongoDB(cfg.Mongo)
		if err != nil {
			return nil, err
		}
		if err := mdb.EnsureIndexes(ctx); err != nil {
			logr.Warn("failed to ensure notice indexes", zap.Error(err))
		}
		return &stores{
			notices: repository.NewNoticeMongoRepository(mdb.Database, cfg.Notices.Location()),
			admins:  repository.NewAdminMongoRepository(mdb.Database),
			close: func() {
				if err := mdb.Close(); err != nil {
					logr.Warn("mongodb close failed", zap.Error(err))
				}
			},
		}, nil
	}
}

func closer(logr *zap.Logger, name string, db *sqlx.DB) func() {
	return func() {
		if err := db.Close(); err != nil {
			logr.Warn(name+" close failed", zap.Error(err))
		}
	}
}
