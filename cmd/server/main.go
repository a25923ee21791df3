package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	complaintapp "github.com/gymhub/backend/internal/application/complaint"
	convenioapp "github.com/gymhub/backend/internal/application/convenio"
	identityapp "github.com/gymhub/backend/internal/application/identity"
	notificationapp "github.com/gymhub/backend/internal/application/notification"
	prospectapp "github.com/gymhub/backend/internal/application/prospect"
	reportapp "github.com/gymhub/backend/internal/application/report"
	schedulingapp "github.com/gymhub/backend/internal/application/scheduling"
	"github.com/gymhub/backend/internal/infrastructure/auth"
	"github.com/gymhub/backend/internal/infrastructure/cache"
	"github.com/gymhub/backend/internal/infrastructure/config"
	"github.com/gymhub/backend/internal/infrastructure/logger"
	"github.com/gymhub/backend/internal/infrastructure/pdf"
	"github.com/gymhub/backend/internal/infrastructure/persistence"
	"github.com/gymhub/backend/internal/infrastructure/storage"
	"github.com/gymhub/backend/internal/interfaces/http/handler"
	"github.com/gymhub/backend/internal/interfaces/http/middleware"
	"github.com/gymhub/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// version is overridden at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting GymHub Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("version", version),
		zap.String("port", cfg.App.Port),
	)

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))

	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Redis is optional: the unread-count badge falls back to the
	// database when the cache is unavailable.
	var unreadCache convenioapp.UnreadCache
	redisClient, err := cache.NewRedisClient(&cfg.Redis)
	if err != nil {
		log.Warn("Redis unavailable, unread counts will not be cached", zap.Error(err))
	} else {
		defer func() {
			_ = redisClient.Close()
		}()
		unreadCache = cache.NewUnreadCountCache(redisClient, 5*time.Minute)
		log.Info("Redis connected successfully")
	}

	// Repositories
	userRepo := persistence.NewGormUserRepository(db.DB)
	convenioRepo := persistence.NewGormConvenioRepository(db.DB)
	threadRepo := persistence.NewGormThreadRepository(db.DB)
	messageRepo := persistence.NewGormMessageRepository(db.DB)
	actionRepo := persistence.NewGormMonthlyActionRepository(db.DB)
	prospectRepo := persistence.NewGormProspectRepository(db.DB)
	sessionRepo := persistence.NewGormSessionRepository(db.DB)
	bookingRepo := persistence.NewGormBookingRepository(db.DB)
	complaintRepo := persistence.NewGormComplaintRepository(db.DB)
	novedadRepo := persistence.NewGormNovedadRepository(db.DB)
	notificationRepo := persistence.NewGormNotificationRepository(db.DB)
	reportRepo := persistence.NewGormReportRepository(db.DB)

	chatScope := persistence.NewGormChatTransactionScope(db.DB)
	bookingScope := persistence.NewGormBookingScope(db.DB)

	// Infrastructure services
	jwtService := auth.NewJWTService(cfg.JWT)

	templateEngine, err := pdf.NewTemplateEngine()
	if err != nil {
		log.Fatal("Failed to load report templates", zap.Error(err))
	}
	pdfRenderer := pdf.NewChromedpRenderer(&cfg.PDF, log)
	defer func() {
		_ = pdfRenderer.Close()
	}()

	objectStorage, err := storage.NewS3ObjectStorage(&cfg.Storage, log)
	if err != nil {
		log.Fatal("Failed to initialize object storage", zap.Error(err))
	}

	// Application services
	resolver := convenioapp.NewIdentityResolver(userRepo)
	authService := identityapp.NewAuthService(userRepo, jwtService, identityapp.DefaultAuthServiceConfig(), log)
	userService := identityapp.NewUserService(userRepo)
	convenioService := convenioapp.NewConvenioService(convenioRepo)
	chatService := convenioapp.NewChatService(convenioRepo, threadRepo, messageRepo, actionRepo, chatScope, resolver, unreadCache)
	actionService := convenioapp.NewActionService(actionRepo, convenioRepo, resolver, unreadCache)
	prospectService := prospectapp.NewService(prospectRepo)
	schedulingService := schedulingapp.NewService(sessionRepo, bookingRepo, bookingScope)
	complaintService := complaintapp.NewService(complaintRepo)
	novedadService := notificationapp.NewNovedadService(novedadRepo, log)
	notificationService := notificationapp.NewNotificationService(notificationRepo, log)
	reportService := reportapp.NewService(reportRepo, templateEngine, pdfRenderer, objectStorage, log)

	// HTTP layer
	middleware.SetupValidator()
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
		log.Fatal("Invalid trusted proxy configuration", zap.Error(err))
	}

	// Middleware stack, in order: request ID, panic recovery, request
	// logging, security headers, CORS, body limit, rate limit.
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())

	corsCfg := middleware.DefaultCORSConfig()
	corsCfg.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	if len(cfg.HTTP.CORSAllowMethods) > 0 {
		corsCfg.AllowMethods = cfg.HTTP.CORSAllowMethods
	}
	if len(cfg.HTTP.CORSAllowHeaders) > 0 {
		corsCfg.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	}
	engine.Use(middleware.CORSWithConfig(corsCfg))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	if cfg.HTTP.RateLimitEnabled {
		limiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		engine.Use(middleware.RateLimit(limiter))
	}

	jwtCfg := middleware.DefaultJWTConfig(jwtService)
	jwtCfg.Logger = log

	healthChecks := []handler.HealthCheck{
		{Name: "database", Check: db.Ping},
	}
	if redisClient != nil {
		healthChecks = append(healthChecks, handler.HealthCheck{
			Name: "redis",
			Check: func() error {
				ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
				defer cancel()
				return redisClient.Ping(ctx).Err()
			},
		})
	}

	handlers := router.Handlers{
		System:       handler.NewSystemHandler(version, healthChecks...),
		Auth:         handler.NewAuthHandler(authService),
		User:         handler.NewUserHandler(userService),
		Convenio:     handler.NewConvenioHandler(convenioService),
		Chat:         handler.NewChatHandler(chatService),
		Action:       handler.NewActionHandler(actionService),
		Prospect:     handler.NewProspectHandler(prospectService),
		Scheduling:   handler.NewSchedulingHandler(schedulingService),
		Complaint:    handler.NewComplaintHandler(complaintService),
		Novedad:      handler.NewNovedadHandler(novedadService),
		Notification: handler.NewNotificationHandler(notificationService),
		Report:       handler.NewReportHandler(reportService),
	}
	router.Setup(engine, handlers, router.AuthMiddleware{
		Required: middleware.JWTAuthWithConfig(jwtCfg),
		Optional: middleware.JWTOptionalWithConfig(jwtCfg),
	})

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
