package main

import (
	"os"

	"github.com/labstack/echo/v4"

	"boutique/internal/config"
	"boutique/internal/database"
	"boutique/internal/handler"
	"boutique/internal/logger"
	"boutique/internal/middleware"
	"boutique/internal/queue"
	"boutique/internal/repository"
	"boutique/internal/router"
)

func main() {
	cfg := config.Load()
	log := logger.New(cfg.Env, os.Getenv("LOG_LEVEL"), os.Stdout)

	db, err := database.Open(cfg.DBPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.DBPath).Msg("open database")
	}
	defer db.Close()

	if err := database.NewMigrator(db, log).Run(); err != nil {
		log.Fatal().Err(err).Msg("apply migrations")
	}

	users := repository.NewUserRepo(db)
	products := repository.NewProductRepo(db)
	categories := repository.NewCategoryRepo(db)
	orders := repository.NewOrderRepo(db)
	reviews := repository.NewReviewRepo(db)
	messages := repository.NewMessageRepo(db)

	// Redis is optional: a nil client turns the limiter and the cache into
	// pass-throughs.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Warn().Msg("redis unavailable; rate limiting and response cache disabled")
	}
	cacheCfg := config.LoadCacheConfig()
	rateLimit := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)
	cache := middleware.NewRedisCache(cacheCfg, rdb)
	invalidate := middleware.NewCacheInvalidator(cacheCfg, rdb)

	// Background consumer for catalog events; runs its own reconnect loop.
	go func() {
		if err := queue.StartCatalogConsumer(log); err != nil {
			log.Error().Err(err).Msg("catalog consumer stopped")
		}
	}()

	productHandler := handler.NewProductHandler(cfg, products, log)
	productHandler.Invalidate = invalidate
	orderHandler := handler.NewOrderHandler(orders, log)
	orderHandler.Invalidate = invalidate

	e := echo.New()
	e.HideBanner = true
	router.Register(e, router.Handlers{
		Auth:     handler.NewAuthHandler(cfg, users),
		Products: productHandler,
		Orders:   orderHandler,
		Users:    handler.NewUserHandler(users),
		Category: handler.NewCategoryHandler(categories),
		Reviews:  handler.NewReviewHandler(reviews, products),
		Messages: handler.NewMessageHandler(messages),
	}, cfg.JWTSecret, rateLimit, cache)

	addr := ":" + cfg.Port
	log.Info().Str("addr", addr).Str("env", cfg.Env).Msg("listening")
	if err := e.Start(addr); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
