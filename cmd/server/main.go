package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"delit-api/internal/config"
	"delit-api/internal/database"
	"delit-api/internal/handler"
	"delit-api/internal/logger"
	"delit-api/internal/middleware"
	"delit-api/internal/models"
	"delit-api/internal/repository"
	"delit-api/internal/router"
	"delit-api/internal/service"
	"delit-api/internal/storage"
	"delit-api/internal/telemetry"
	"delit-api/internal/token"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	// 1. Load configuration
	cfg := config.LoadConfig()

	zlog, err := logger.New(cfg.Server.GinMode)
	if err != nil {
		log.Fatalf("Failed to initialise logger: %v", err)
	}
	defer func() { _ = zlog.Sync() }()
	zlog.Info("configuration loaded", zap.String("asset_backend", cfg.Assets.Backend))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 2. Tracing
	tracing, err := telemetry.New(ctx, cfg.Telemetry, zlog)
	if err != nil {
		zlog.Fatal("failed to initialise telemetry", zap.Error(err))
	}

	// 3. Initialize database connection
	db, err := database.Connect(cfg)
	if err != nil {
		zlog.Fatal("failed to connect to database", zap.Error(err))
	}
	if err := database.Migrate(db); err != nil {
		zlog.Fatal("failed to migrate database", zap.Error(err))
	}

	// 4. Asset host
	assets, err := storage.New(ctx, cfg.Assets)
	if err != nil {
		zlog.Fatal("failed to initialise asset store", zap.Error(err))
	}

	// 5. Initialize repositories
	userRepo := repository.NewUserRepo(db)
	tokenRepo := repository.NewTokenRepo(db)
	auditRepo := repository.NewAuditRepo(db)

	issuer := token.NewIssuer(
		cfg.JWT.AccessSecret,
		cfg.JWT.RefreshSecret,
		cfg.JWT.AccessTokenExpiry,
		cfg.JWT.RefreshTokenExpiry,
	)

	// 6. Initialize services
	userService := service.NewUserService(userRepo, tokenRepo, auditRepo, zlog)
	authService := service.NewAuthService(userService, tokenRepo, issuer, auditRepo)
	homeService := service.NewHomeService(repository.NewCollection[models.HomeBlock](db, "block"), auditRepo)
	blogService := service.NewBlogService(repository.NewCollection[models.Blog](db, "blog"), auditRepo)
	galleryService := service.NewGalleryService(repository.NewCollection[models.GalleryImage](db, "image"), assets, auditRepo, zlog)
	publicationService := service.NewPublicationService(
		repository.NewCollection[models.Publication](db, "publication"),
		assets,
		auditRepo,
		zlog,
		cfg.Server.MaxUploadBytes,
	)
	bannerService := service.NewBannerService(repository.NewCollection[models.Banner](db, "banner"), assets, auditRepo, zlog)
	footerService := service.NewFooterService(repository.NewCollection[models.FooterLink](db, "link"), auditRepo)
	subscriptionService := service.NewSubscriptionService(repository.NewCollection[models.Subscriber](db, "subscriber"), auditRepo)

	if err := userService.EnsureAdmin(ctx, cfg.Admin); err != nil {
		zlog.Fatal("failed to bootstrap admin user", zap.Error(err))
	}

	// 7. Start background token sweeper
	sweeper := service.NewTokenSweeper(tokenRepo, cfg.JWT.SweepInterval, zlog)
	go sweeper.Start(ctx)

	// 8. Setup Gin router
	gin.SetMode(cfg.Server.GinMode)

	handlers := router.Handlers{
		Auth:         handler.NewAuthHandler(authService),
		Users:        handler.NewUserHandler(userService),
		Home:         handler.NewHomeHandler(homeService),
		Blog:         handler.NewBlogHandler(blogService),
		Gallery:      handler.NewGalleryHandler(galleryService, cfg.Server.MaxUploadBytes),
		Publications: handler.NewPublicationHandler(publicationService, cfg.Server.MaxUploadBytes),
		Banner:       handler.NewBannerHandler(bannerService, cfg.Server.MaxUploadBytes),
		Footer:       handler.NewFooterHandler(footerService),
		Subscription: handler.NewSubscriptionHandler(subscriptionService),
		Audit:        handler.NewAuditHandler(service.NewAuditService(auditRepo)),
	}
	session := middleware.NewSession(issuer, router.PublicRoutes)
	r := router.New(handlers, session, router.Options{
		ServiceName:    cfg.Telemetry.ServiceName,
		Logger:         zlog,
		CORS:           middleware.CORS(cfg.CORS),
		AuthLimiter:    middleware.NewRateLimiter(cfg.RateLimit.AuthRequestsPerMinute),
		MaxUploadBytes: cfg.Server.MaxUploadBytes,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// 9. Setup graceful shutdown
	go func() {
		zlog.Info("server starting", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Fatal("failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zlog.Info("shutting down server")

	// Cancel background worker context
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zlog.Error("server shutdown failed", zap.Error(err))
	}
	if err := tracing.Shutdown(shutdownCtx); err != nil {
		zlog.Error("telemetry shutdown failed", zap.Error(err))
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	zlog.Info("server exited")
}
