package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/mhakbari/orderstack/internal/config"
	"github.com/mhakbari/orderstack/internal/database"
	"github.com/mhakbari/orderstack/internal/handler"
	"github.com/mhakbari/orderstack/internal/logger"
	"github.com/mhakbari/orderstack/internal/mail"
	"github.com/mhakbari/orderstack/internal/queue"
	"github.com/mhakbari/orderstack/internal/repository"
	"github.com/mhakbari/orderstack/internal/router"
	"github.com/mhakbari/orderstack/internal/service"
	"github.com/mhakbari/orderstack/internal/validate"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()
	if err := logger.Initialize(cfg.LogLevel); err != nil {
		log.Fatalf("logger init: %v", err)
	}
	defer func() { _ = logger.Log.Sync() }()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		logger.Log.Fatal("database connect failed", zap.Error(err))
	}
	defer func() { _ = db.Close() }()

	rdb := config.NewRedisClient()
	if rdb == nil {
		logger.Log.Warn("redis unreachable; rate limiting, caching and reset-token single use disabled")
	}

	users := repository.NewUserRepo(db, cfg.BcryptCost)
	orders := repository.NewOrderRepo(db)

	var ledger service.ResetLedger
	if rdb != nil {
		ledger = repository.NewResetLedger(rdb)
	}

	sender, err := mail.NewSender(cfg.Mail)
	if err != nil {
		logger.Log.Fatal("mail provider init failed", zap.Error(err))
	}
	render, err := mail.NewRenderer()
	if err != nil {
		logger.Log.Fatal("mail templates failed", zap.Error(err))
	}

	publisher := queue.NewPublisher()
	go queue.StartEmailConsumer(sender)

	authSvc := service.NewAuth(cfg, users, sender, render, publisher, ledger)
	adminSvc := service.NewAdmin(users)

	e := echo.New()
	e.HideBanner = true
	e.Validator = validate.New()
	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())

	router.Register(e, router.Deps{
		Cfg:     cfg,
		Redis:   rdb,
		Auth:    handler.NewAuthHandler(authSvc),
		Users:   handler.NewUserHandler(users),
		Orders:  handler.NewOrderHandler(orders),
		Admin:   handler.NewAdminHandler(adminSvc),
		Mail:    handler.NewMailHandler(sender),
		RateCfg: config.LoadRateLimitConfig(),
		CacheC:  config.LoadCacheConfig(),
	})

	addr := ":" + cfg.Port
	logger.Log.Info("server starting", zap.String("addr", addr), zap.String("env", cfg.Env))
	if err := e.Start(addr); err != nil {
		logger.Log.Fatal("server stopped", zap.Error(err))
	}
}
