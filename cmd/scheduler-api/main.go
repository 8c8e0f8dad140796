package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/opencampus/scheduler-api/api/swagger"
	"github.com/opencampus/scheduler-api/internal/handler"
	internalmiddleware "github.com/opencampus/scheduler-api/internal/middleware"
	"github.com/opencampus/scheduler-api/internal/models"
	"github.com/opencampus/scheduler-api/internal/repository"
	"github.com/opencampus/scheduler-api/internal/service"
	"github.com/opencampus/scheduler-api/pkg/cache"
	"github.com/opencampus/scheduler-api/pkg/config"
	"github.com/opencampus/scheduler-api/pkg/database"
	"github.com/opencampus/scheduler-api/pkg/export"
	"github.com/opencampus/scheduler-api/pkg/jobs"
	"github.com/opencampus/scheduler-api/pkg/logger"
	corsmiddleware "github.com/opencampus/scheduler-api/pkg/middleware/cors"
	reqidmiddleware "github.com/opencampus/scheduler-api/pkg/middleware/requestid"
	"github.com/opencampus/scheduler-api/pkg/storage"
)

// @title Course Scheduler API
// @version 1.0.0
// @description Automatic timetable generation for university course offerings
// @BasePath /api/v1
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

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close()

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Sugar().Warnw("redis unavailable, caching disabled", "error", err)
		redisClient = nil
	}

	validate := validator.New()
	metricsSvc := service.NewMetricsService()

	courseRepo := repository.NewCourseRepository(db)
	ruleRepo := repository.NewRuleRepository(db)
	sessionRepo := repository.NewSessionRepository(db)
	userRepo := repository.NewUserRepository(db)
	cacheRepo := repository.NewCacheRepository(redisClient, logr)

	cacheSvc := service.NewCacheService(cacheRepo, metricsSvc, cfg.Schedule.CacheTTL, logr, redisClient != nil)
	authSvc := service.NewAuthService(userRepo, validate, logr, service.AuthConfig{
		AccessTokenSecret: cfg.JWT.Secret,
		AccessTokenExpiry: cfg.JWT.Expiration,
		Issuer:            cfg.JWT.Issuer,
	})
	courseSvc := service.NewCourseService(courseRepo, validate, logr)
	ruleSvc := service.NewRuleService(ruleRepo, validate, logr)
	generatorSvc := service.NewGeneratorService(courseRepo, ruleRepo, sessionRepo, cacheRepo, metricsSvc, validate, logr, service.GeneratorConfig{
		DefaultMaxDailyHours: cfg.Generator.DefaultMaxDailyHours,
		DefaultLabAfterHour:  cfg.Generator.DefaultLabAfterHour,
	})
	scheduleSvc := service.NewScheduleService(sessionRepo, cacheSvc, export.NewCSVExporter(), export.NewPDFExporter(), validate, logr, cfg.Schedule.CacheTTL)

	exportStore, err := storage.NewLocalStorage(cfg.Export.Dir)
	if err != nil {
		logr.Sugar().Fatalw("failed to prepare export storage", "error", err)
	}
	signer := storage.NewSignedURLSigner(cfg.Export.TokenSecret, cfg.Export.ResultTTL)
	exportJobRepo := repository.NewExportJobRepository(db)

	var exportWorker *service.ExportWorker
	exportQueue := jobs.NewQueue("exports", func(ctx context.Context, job jobs.Job) error {
		return exportWorker.Handle(ctx, job)
	}, jobs.Options{Workers: cfg.Export.Workers, Logger: logr})

	exportSvc := service.NewExportJobService(exportJobRepo, exportQueue, exportStore, signer, scheduleSvc, validate, logr, service.ExportJobConfig{
		APIPrefix:       cfg.APIPrefix,
		ResultTTL:       cfg.Export.ResultTTL,
		CleanupInterval: cfg.Export.CleanupInterval,
	})
	exportWorker = service.NewExportWorker(exportJobRepo, exportSvc, 3, logr)

	rootCtx, cancel := context.WithCancel(context.Background())
	defer cancel()
	exportQueue.Start(rootCtx)
	defer exportQueue.Stop()
	exportSvc.RecoverPendingJobs(rootCtx)
	exportSvc.StartCleanup(rootCtx)

	authHandler := handler.NewAuthHandler(authSvc)
	courseHandler := handler.NewCourseHandler(courseSvc)
	ruleHandler := handler.NewRuleHandler(ruleSvc)
	generatorHandler := handler.NewScheduleGeneratorHandler(generatorSvc)
	scheduleHandler := handler.NewScheduleHandler(scheduleSvc)
	exportJobHandler := handler.NewExportJobHandler(exportSvc)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(internalmiddleware.Metrics(metricsSvc))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/ready", func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	r.GET("/metrics", gin.WrapH(metricsSvc.Handler()))

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)

	auth := api.Group("/auth")
	{
		auth.POST("/login", authHandler.Login)
		auth.POST("/change-password", internalmiddleware.JWT(authSvc), authHandler.ChangePassword)
		auth.GET("/me", internalmiddleware.JWT(authSvc), authHandler.Me)
	}

	staffOrAdmin := []gin.HandlerFunc{
		internalmiddleware.JWT(authSvc),
		internalmiddleware.RequireRoles(models.RoleAdmin, models.RoleStaff),
	}

	courses := api.Group("/courses")
	{
		courses.GET("", internalmiddleware.JWT(authSvc), courseHandler.List)
		courses.GET("/:id", internalmiddleware.JWT(authSvc), courseHandler.Get)
		courses.POST("", append(staffOrAdmin, courseHandler.Create)...)
		courses.PUT("/:id", append(staffOrAdmin, courseHandler.Update)...)
		courses.DELETE("/:id", append(staffOrAdmin, courseHandler.Delete)...)
	}

	rules := api.Group("/rules", staffOrAdmin...)
	{
		rules.GET("", ruleHandler.List)
		rules.POST("", ruleHandler.Create)
		rules.PATCH("/:id/activate", ruleHandler.SetActive)
		rules.DELETE("/:id", ruleHandler.Delete)
	}

	schedule := api.Group("/schedule")
	{
		schedule.GET("", internalmiddleware.JWT(authSvc), scheduleHandler.Get)
		schedule.GET("/export", internalmiddleware.JWT(authSvc), scheduleHandler.Export)
		schedule.POST("/generate", append(staffOrAdmin, generatorHandler.Generate)...)
		schedule.DELETE("", append(staffOrAdmin, scheduleHandler.Delete)...)
		schedule.POST("/export-jobs", append(staffOrAdmin, exportJobHandler.Create)...)
		schedule.GET("/export-jobs/:id", internalmiddleware.JWT(authSvc), exportJobHandler.Status)
		schedule.GET("/download/:token", exportJobHandler.Download)
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
