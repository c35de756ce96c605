package main

import (
	"context"
	"fmt"
	"log"
	"myOysterGuide/app/echo-server/router"
	"myOysterGuide/business/oyster"
	"myOysterGuide/business/recommendation"
	"myOysterGuide/business/review"
	userService "myOysterGuide/business/user"
	"myOysterGuide/internal/middleware"
	psqlRepo "myOysterGuide/internal/repository/postgres"
	redisRepo "myOysterGuide/internal/repository/redis"
	"myOysterGuide/internal/rest"
	"myOysterGuide/pkg/config"
	"myOysterGuide/pkg/database"
	redisConn "myOysterGuide/pkg/database/redis"
	"myOysterGuide/pkg/logger"
	"myOysterGuide/pkg/metrics"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.Init(cfg.App.Environment)
	logger.Info("Starting MyOysterGuide", "version", cfg.App.Version)

	db, err := database.InitPostgres(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}

	logger.Info("Database connected successfully")

	// Redis backs session revocation; the API stays up without it.
	redisClient, err := redisConn.NewRedisClient(cfg)
	if err != nil {
		logger.Warn("Redis unavailable, sessions will not be revocable", "error", err)
		redisClient = nil
	}

	// Init validate
	validate := validator.New()

	// Init repo
	userRepo := psqlRepo.NewUserRepository(db)
	oysterRepo := psqlRepo.NewOysterRepository(db)
	reviewRepo := psqlRepo.NewReviewRepository(db)
	profileRepo := psqlRepo.NewTasteProfileRepository(db)
	eventRepo := psqlRepo.NewRecommendationEventRepository(db)

	var tokenStore userService.TokenStore
	if redisClient != nil {
		tokenStore = redisRepo.NewTokenRepository(redisClient)
	}

	// Init service
	usrService := userService.NewUserService(userRepo, profileRepo, tokenStore, validate, cfg.JWT.SecretKey)
	oysterService := oyster.NewOysterService(oysterRepo)
	reviewService := review.NewReviewService(reviewRepo, oysterRepo)
	recoService := recommendation.NewRecommendationService(reviewRepo, oysterRepo, profileRepo, userRepo, eventRepo)

	// Init handler
	userHandler := rest.NewUserHandler(usrService)
	oysterHandler := rest.NewOysterHandler(oysterService)
	reviewHandler := rest.NewReviewHandler(reviewService)
	recoHandler := rest.NewRecommendationHandler(recoService)

	// Init echo
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// HTTP error handler
	e.HTTPErrorHandler = middleware.ErrorHandler

	// Global middleware
	e.Use(echomiddleware.Recover())
	e.Use(middleware.TraceMiddleware())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: []string{"http://localhost:3000", "http://localhost:8080"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))

	// Auth middleware
	var authRequired echo.MiddlewareFunc
	if redisClient != nil {
		authRequired = middleware.AuthMiddlewareWithRedis(cfg.JWT.SecretKey, usrService)
	} else {
		authRequired = middleware.AuthMiddleware(cfg.JWT.SecretKey)
	}
	adminOnly := middleware.AdminOnly()

	// Setup routes
	api := e.Group("/api/v1")
	router.SetupUserRoutes(api, userHandler, authRequired)
	router.SetupOysterRoutes(api, oysterHandler, authRequired, adminOnly)
	router.SetReviewRoutes(api, reviewHandler, authRequired)
	router.SetRecommendationRoutes(api, recoHandler, authRequired)

	// Metrics
	metrics.Init()
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Goroutine server
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server starting", "address", addr)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", "error", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown server
	if err := e.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown error", "error", err)
	}

	if err := redisConn.CloseRedisClient(redisClient); err != nil {
		logger.Error("Redis shutdown error", "error", err)
	}

	logger.Info("Server stopped")
}
