package main

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/kumusta-app/kumusta-api/api/swagger"
	"github.com/kumusta-app/kumusta-api/internal/handler"
	"github.com/kumusta-app/kumusta-api/internal/middleware"
	"github.com/kumusta-app/kumusta-api/internal/models"
	"github.com/kumusta-app/kumusta-api/internal/service"
	"github.com/kumusta-app/kumusta-api/internal/store"
	"github.com/kumusta-app/kumusta-api/pkg/config"
	"github.com/kumusta-app/kumusta-api/pkg/logger"
	corsmiddleware "github.com/kumusta-app/kumusta-api/pkg/middleware/cors"
	reqidmiddleware "github.com/kumusta-app/kumusta-api/pkg/middleware/requestid"
	"github.com/kumusta-app/kumusta-api/pkg/storage"
)

// @title Kumusta API
// @version 1.0.0
// @description Student wellbeing and study tracking service
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

	location, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		logr.Sugar().Warnw("unknown timezone, falling back to UTC", "timezone", cfg.Timezone)
		location = time.UTC
	}

	uploads, err := storage.NewLocalStorage(cfg.Uploads.Dir)
	if err != nil {
		logr.Sugar().Fatalw("failed to init upload storage", "error", err)
	}
	exports, err := storage.NewLocalStorage(cfg.Exports.StorageDir)
	if err != nil {
		logr.Sugar().Fatalw("failed to init export storage", "error", err)
	}

	userStore := store.NewUserStore()
	ledgerStore := store.NewLedgerStore()
	socialStore := store.NewSocialStore()
	classroomStore := store.NewClassroomStore()
	activityStore := store.NewActivityStore()

	validate := validator.New()
	metricsSvc := service.NewMetricsService()
	insightSvc := service.NewInsightService()

	authSvc := service.NewAuthService(userStore, uploads, validate, logr, service.AuthConfig{
		AccessTokenSecret:  cfg.JWT.Secret,
		AccessTokenExpiry:  cfg.JWT.Expiration,
		RefreshTokenExpiry: cfg.JWT.RefreshExpiration,
		Issuer:             "kumusta-api",
		AllowedPictureExts: cfg.Uploads.AllowedExtensions,
	})
	ledgerSvc := service.NewLedgerService(ledgerStore, userStore, insightSvc, metricsSvc, validate, logr, location)
	socialSvc := service.NewSocialService(socialStore, userStore, logr)
	classroomSvc := service.NewClassroomService(classroomStore, userStore, activityStore, logr, cfg.Classrooms.CodeLength)
	activitySvc := service.NewActivityService(activityStore, classroomStore, userStore, insightSvc, metricsSvc, logr, location)
	dashboardSvc := service.NewDashboardService(userStore, socialStore, classroomStore, activityStore, logr, location)
	exportSvc := service.NewExportService(ledgerSvc, exports, logr)

	authHandler := handler.NewAuthHandler(authSvc)
	profileHandler := handler.NewProfileHandler(authSvc)
	ledgerHandler := handler.NewLedgerHandler(ledgerSvc)
	socialHandler := handler.NewSocialHandler(socialSvc)
	classroomHandler := handler.NewClassroomHandler(classroomSvc)
	activityHandler := handler.NewActivityHandler(activitySvc)
	dashboardHandler := handler.NewDashboardHandler(dashboardSvc)
	exportHandler := handler.NewExportHandler(exportSvc)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))
	r.MaxMultipartMemory = cfg.Uploads.MaxFileSizeBytes

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", gin.WrapH(metricsSvc.Handler()))
	r.StaticFS("/uploads", http.Dir(cfg.Uploads.Dir))

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)

	auth := api.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/refresh", authHandler.Refresh)
	auth.POST("/logout", middleware.JWT(authSvc), authHandler.Logout)
	auth.GET("/me", middleware.JWT(authSvc), authHandler.Me)

	me := api.Group("/me", middleware.JWT(authSvc))
	me.PUT("/status", profileHandler.SetStatus)
	me.PUT("/mode", profileHandler.SetMode)
	me.PUT("/picture", profileHandler.UpdatePicture)
	me.POST("/moods", ledgerHandler.RecordMood)
	me.POST("/study-sessions", ledgerHandler.RecordStudy)
	me.POST("/timer", ledgerHandler.RecordTimer)
	me.GET("/weekly-totals", ledgerHandler.WeeklyTotals)
	me.GET("/summary", ledgerHandler.WeeklySummary)
	me.GET("/dashboard", dashboardHandler.Overview)
	me.POST("/help-notes", ledgerHandler.RecordHelpNote)
	me.GET("/help-notes", ledgerHandler.HelpNotes)
	if cfg.Exports.Enabled {
		me.GET("/summary/export", exportHandler.WeeklySummary)
	}

	friends := api.Group("/friends", middleware.JWT(authSvc))
	friends.GET("", socialHandler.Overview)
	friends.POST("/requests", socialHandler.SendRequest)
	friends.POST("/requests/:username/accept", socialHandler.Accept)
	friends.POST("/requests/:username/decline", socialHandler.Decline)

	classrooms := api.Group("/classrooms", middleware.JWT(authSvc))
	classrooms.GET("", classroomHandler.ListMine)
	classrooms.POST("", classroomHandler.Create)
	classrooms.POST("/join", classroomHandler.Join)
	classrooms.GET("/:code", classroomHandler.Get)
	classrooms.POST("/:code/leave", classroomHandler.Leave)
	classrooms.DELETE("/:code",
		middleware.Audit(userStore, models.AuditActionClassroomDelete, "classroom"),
		classroomHandler.Delete)
	classrooms.POST("/:code/emotions", activityHandler.SubmitEmotion)
	classrooms.GET("/:code/feelings", activityHandler.TodaysFeelings)
	classrooms.POST("/:code/help", activityHandler.PostHelp)
	classrooms.GET("/:code/help", activityHandler.ListHelp)
	classrooms.POST("/:code/announcements", activityHandler.PostAnnouncement)
	classrooms.GET("/:code/announcements", activityHandler.ListAnnouncements)
	classrooms.GET("/:code/analytics", activityHandler.Analytics)

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env, "timezone", location.String())
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
