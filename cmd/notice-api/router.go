package main

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/noah-isme/nawa-notice-api/internal/handler"
	"github.com/noah-isme/nawa-notice-api/internal/middleware"
	"github.com/noah-isme/nawa-notice-api/internal/models"
	"github.com/noah-isme/nawa-notice-api/internal/service"
	"github.com/noah-isme/nawa-notice-api/pkg/config"
	"github.com/noah-isme/nawa-notice-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/nawa-notice-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/nawa-notice-api/pkg/middleware/requestid"
)

type routerDeps struct {
	cfg            *config.Config
	logger         *zap.Logger
	metrics        *service.MetricsService
	tokens         *service.TokenService
	notices        *handler.NoticeHandler
	calendar       *handler.CalendarHandler
	exports        *handler.ExportHandler
	ops            *handler.MetricsHandler
	attachmentsDir string
}

func newRouter(d routerDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(middleware.Session(d.cfg.Session))
	r.Use(logger.GinMiddleware(d.logger))
	r.Use(corsmiddleware.New(d.cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(d.metrics))
	r.Use(middleware.WithResponseMeta())

	r.GET("/health", d.ops.Health)
	r.GET("/ready", d.ops.Ready)
	r.GET("/metrics", d.ops.Prometheus)

	if d.cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	// Routes the existing front end calls. Bodies are plain JSON.
	r.GET("/notices", d.notices.ListFor(models.RolePublic))
	r.GET("/notices/teachers", d.notices.ListFor(models.RoleTeacher))
	r.GET("/notices/admins", d.notices.ListFor(models.RoleAdmin))
	r.GET("/notices/students", d.notices.ListFor(models.RoleStudent))
	r.GET("/get/notices", d.notices.ListForSession)
	if d.attachmentsDir != "" {
		r.Static(publicPath(d.cfg.Attachments.PublicPath), d.attachmentsDir)
	}

	admin := r.Group("/admin", middleware.RequireAdmin(d.cfg.Session, d.tokens))
	admin.POST("/create-notice", d.notices.Create)
	admin.DELETE("/delete/notice/:id", d.notices.Delete)

	api := r.Group(d.cfg.APIPrefix)
	api.GET("/notices", d.notices.Page)
	api.GET("/notices/calendar", d.calendar.Month)
	api.GET("/notices/calendar/day", d.calendar.Day)
	api.GET("/notices/:id", d.notices.Get)

	apiAdmin := api.Group("/admin", middleware.RequireAdminEnvelope(d.cfg.Session, d.tokens))
	apiAdmin.GET("/notices/export", d.exports.Export)

	return r
}

func publicPath(p string) string {
	if p == "" {
		return "/notice_files"
	}
	return p
}
