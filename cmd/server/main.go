package main

import (
	"fmt"
	"os"
	"time"

	"github.com/gr3edydevel0per/N-Layer-API/internal/api"
	"github.com/gr3edydevel0per/N-Layer-API/internal/auth"
	"github.com/gr3edydevel0per/N-Layer-API/internal/config"
	"github.com/gr3edydevel0per/N-Layer-API/internal/database"
	"github.com/gr3edydevel0per/N-Layer-API/internal/database/models"
	"github.com/gr3edydevel0per/N-Layer-API/internal/database/repository"
	"github.com/gr3edydevel0per/N-Layer-API/internal/database/service"
	"github.com/gr3edydevel0per/N-Layer-API/internal/handler"
	"github.com/gr3edydevel0per/N-Layer-API/internal/logger"
	"github.com/gr3edydevel0per/N-Layer-API/internal/middleware"
)

func main() {
	// 1. Config
	cfg := config.LoadConfig()

	// 2. Logger
	appLogger := logger.New(cfg)

	appLogger.Info("🚀 [Go] Starting Gadget API...",
		"environment", cfg.AppEnv,
	)

	// 3. Connect to Database
	db, err := database.Connect(cfg, appLogger)
	if err != nil {
		appLogger.Error("❌ Failed to connect to database", "error", err)
		os.Exit(1)
	}

	// 4. Initialize Repositories
	userRepo := repository.NewUserRepository(db)
	gadgetRepo := repository.NewGadgetRepository(db)

	// 5. Initialize Token Codec and Services
	codec := auth.NewTokenCodec(cfg)
	userService := service.NewUserService(userRepo, codec, cfg, appLogger)
	gadgetService := service.NewGadgetService(gadgetRepo, models.NewNameGenerator(time.Now().UnixNano()), appLogger)

	// 6. Initialize Handlers & Middleware
	userHandler := handler.NewUserHandler(userService, appLogger)
	gadgetHandler := handler.NewGadgetHandler(gadgetService, appLogger)
	authMiddleware := middleware.NewAuthMiddleware(codec, userRepo, appLogger)

	// 7. Initialize Rate Limiter
	rateLimiter, err := middleware.NewRateLimiter(cfg, appLogger)
	if err != nil {
		appLogger.Warn("⚠️ Failed to connect to Redis, using no-op rate limiter", "error", err)
		rateLimiter = middleware.NewNoOpRateLimiter(appLogger)
	}
	defer rateLimiter.Close()

	// 8. Setup Router and Start HTTP Server
	r := api.SetupRouter(userHandler, gadgetHandler, authMiddleware, rateLimiter)

	addr := fmt.Sprintf(":%s", cfg.ApiServicePort)
	appLogger.Info("🌍 [Go] HTTP Server running...", "port", addr)
	if err := r.Run(addr); err != nil {
		appLogger.Error("❌ HTTP Server failed to start", "error", err)
		os.Exit(1)
	}
}
