package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	appmetrics "smartshop/app/echo-server/metrics"
	"smartshop/app/echo-server/router"
	"smartshop/business/chat"
	"smartshop/business/product"
	"smartshop/business/recommendation"
	"smartshop/business/search"
	userService "smartshop/business/user"
	"smartshop/internal/middleware"
	"smartshop/internal/repository/filestore"
	psqlRepo "smartshop/internal/repository/postgres"
	redisRepo "smartshop/internal/repository/redis"
	"smartshop/internal/rest"
	"smartshop/pkg/config"
	"smartshop/pkg/database"
	redisdb "smartshop/pkg/database/redis"
	"smartshop/pkg/logger"

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
	logger.Info("Starting SmartShop", "version", cfg.App.Version)

	// Init repo, either the JSON file store or Postgres
	var (
		productRepo product.ProductRepository
		searchRepo  search.ProductRepository
		chatRepo    chat.ProductRepository
		recoRepo    recommendation.ProductRepository
		userRepo    userService.UserRepository
	)

	if cfg.Database.UseFileDB {
		store, err := filestore.NewStore(cfg.Database.FileDBDir)
		if err != nil {
			logger.Fatal("Failed to open file store", "error", err)
		}
		pr := filestore.NewProductRepository(store)
		productRepo, searchRepo, chatRepo, recoRepo = pr, pr, pr, pr
		userRepo = filestore.NewUserRepository(store)

		logger.Info("File store opened", "dir", cfg.Database.FileDBDir)
	} else {
		db, err := database.InitPostgres(cfg)
		if err != nil {
			logger.Fatal("Failed to connect to database", "error", err)
		}
		pr := psqlRepo.NewProductRepository(db)
		productRepo, searchRepo, chatRepo, recoRepo = pr, pr, pr, pr
		userRepo = psqlRepo.NewUserRepository(db)

		logger.Info("Database connected successfully")
	}

	// Redis is optional: without it sessions are stateless JWT only.
	var sessions rest.SessionStore
	authRequired := middleware.AuthMiddleware()

	redisClient, err := redisdb.NewRedisClient(cfg)
	if err != nil {
		logger.Warn("Redis unavailable, falling back to stateless sessions", "error", err)
	} else {
		tokenRepo := redisRepo.NewTokenRepository(redisClient)
		sessions = tokenRepo
		authRequired = middleware.AuthMiddlewareWithRedis(tokenRepo)
		logger.Info("Redis connected successfully")
	}

	// Init validate
	validate := validator.New()

	// Ranking weights, defaults unless a profile file is configured
	weights := recommendation.LoadWeightsOrDefault(cfg.Ranking.WeightsFile)

	// Init service
	productService := product.NewProductService(productRepo)
	searchService := search.NewSearchService(searchRepo, weights.Popularity)
	chatService := chat.NewChatService(chatRepo)
	recoService := recommendation.NewService(recoRepo, weights)
	usersService := userService.NewUserService(userRepo, validate)

	// Init handler
	productHandler := rest.NewProductHandler(productService)
	searchHandler := rest.NewSearchHandler(searchService)
	chatHandler := rest.NewChatHandler(chatService)
	recoHandler := rest.NewRecommendationHandler(recoService)
	userHandler := rest.NewUserHandler(usersService, sessions)

	// Init metrics
	appmetrics.Init()
	recommendation.InitMetrics()

	// Init echo
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// HTTP error handler
	e.HTTPErrorHandler = middleware.ErrorHandler

	// Global middleware
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: []string{"http://localhost:3000", "http://localhost:8080"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	adminOnly := middleware.AdminOnly()

	// Setup routes
	api := e.Group("/api/v1")
	router.SetupUserRoutes(api, userHandler, authRequired)
	router.SetupProductRoutes(api, productHandler, authRequired, adminOnly)
	router.SetupSearchRoutes(api, searchHandler)
	router.SetRecommendationRoutes(api, recoHandler)
	router.SetChatRoutes(api, chatHandler)

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

	if redisClient != nil {
		if err := redisdb.CloseRedisClient(redisClient); err != nil {
			logger.Error("Redis shutdown error", "error", err)
		}
	}

	logger.Info("Server stopped")
}
