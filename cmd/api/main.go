package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"pakety/internal/cache"
	"pakety/internal/config"
	"pakety/internal/db"
	"pakety/internal/httpserver"
	cartrepo "pakety/internal/repository/cart"
	productrepo "pakety/internal/repository/product"
	promotionrepo "pakety/internal/repository/promotion"
	settingsrepo "pakety/internal/repository/settings"
	cartsvc "pakety/internal/service/cart"
	productsvc "pakety/internal/service/product"
	promotionsvc "pakety/internal/service/promotion"
	settingssvc "pakety/internal/service/settings"
)

func main() {
	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[api] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	ctx := context.Background()
	dbpool, err := db.Connect(ctx, cfg.DBConnString, cfg.DBMaxConns)
	if err != nil {
		logger.Fatalf("connect to db: %v", err)
	}
	defer dbpool.Close()

	redisClient := cache.Connect(ctx, cfg.RedisURL, logger)
	if redisClient != nil {
		defer redisClient.Close()
	}

	productRepo := productrepo.NewPostgres(dbpool)
	productService := productsvc.New(productRepo)
	promotionRepo := promotionrepo.NewPostgres(dbpool)
	promotionService := promotionsvc.New(promotionRepo, redisClient, cfg.TierCacheTTL, logger)
	settingsRepo := settingsrepo.NewPostgres(dbpool)
	settingsService := settingssvc.New(settingsRepo, redisClient, cfg.TierCacheTTL, logger)
	cartRepo := cartrepo.NewPostgres(dbpool)
	cartService := cartsvc.New(cartRepo, productRepo, promotionService, settingsService)

	srv := httpserver.New(cfg.HTTPAddr, logger, dbpool, httpserver.Deps{
		CartSvc:      cartService,
		ProductSvc:   productService,
		PromotionSvc: promotionService,
		SettingsSvc:  settingsService,
	}, cfg.AllowedOrigins)

	serverErr := make(chan error, 1)
	go func() {
		logger.Printf("starting http server on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.Printf("received signal %s, shutting down", sig)
	case err := <-serverErr:
		logger.Printf("server error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Printf("graceful shutdown failed: %v", err)
	} else {
		logger.Printf("server stopped")
	}
}
