package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"campusmart/internal/api"
	"campusmart/internal/catalog"
	catalogcache "campusmart/internal/catalog/cache"
	catalogrepo "campusmart/internal/catalog/repository"
	"campusmart/internal/commons"
	"campusmart/internal/config"
	"campusmart/internal/infrastructure/logger"
	"campusmart/internal/infrastructure/mysql"
	"campusmart/internal/infrastructure/redis"
	"campusmart/internal/listing"
	listingusecase "campusmart/internal/listing/usecase"
	"campusmart/internal/notify"
	notifyctrl "campusmart/internal/notify/controller"
	"campusmart/internal/order"
	"campusmart/internal/server"
	"campusmart/internal/session"
	"campusmart/internal/store"
	"campusmart/internal/wallet"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}
	if path := os.Getenv("STOREFRONT_CONFIG"); path != "" {
		cfg, err = commons.LoadConfig(path, cfg)
		if err != nil {
			log.Fatalf("loading config file: %v", err)
		}
	}

	zapLogger, err := logger.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		log.Fatalf("creating logger: %v", err)
	}
	defer zapLogger.Sync()

	startupCtx, cancelStartup := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelStartup()

	var (
		catalogRepo  catalog.Repository
		catalogCache catalog.Cache
		invalidator  listingusecase.CatalogInvalidator
	)

	if cfg.Catalog.Database.Enabled() {
		db, err := mysql.NewConnection(startupCtx, cfg.Catalog.Database)
		if err != nil {
			zapLogger.Warn("catalog database unavailable, order views use defaults", zap.Error(err))
		} else {
			defer db.Close()
			catalogRepo = catalogrepo.NewMySQLRepository(db)
			zapLogger.Info("catalog database connected")
		}
	}

	if cfg.Redis.Enabled() {
		rdb, err := redis.NewClient(startupCtx, cfg.Redis)
		if err != nil {
			zapLogger.Warn("catalog cache unavailable", zap.Error(err))
		} else {
			defer rdb.Close()
			c := catalogcache.NewRedisCache(rdb, cfg.Catalog.CacheTTL)
			catalogCache, invalidator = c, c
			zapLogger.Info("catalog cache connected", zap.String("addr", cfg.Redis.Addr))
		}
	}

	client := api.NewClient(cfg.API.BaseURL,
		api.WithToken(cfg.API.Token),
		api.WithTimeout(cfg.API.Timeout),
		api.WithLogger(zapLogger),
	)
	st := store.New(zapLogger)
	feed := notify.NewFeed(cfg.Notify.Capacity, zapLogger)
	catalogSvc := catalog.NewService(catalogRepo, catalogCache, zapLogger)

	router := server.NewRouter(server.Controllers{
		Orders:        order.NewModule(client, st, catalogSvc, feed, cfg, zapLogger),
		Listings:      listing.NewModule(client, st, invalidator, feed, cfg, zapLogger),
		Wallet:        wallet.NewModule(client, st, cfg, zapLogger),
		Session:       session.NewModule(client, st, feed, zapLogger),
		Notifications: notifyctrl.NewNotificationsController(feed, zapLogger),
		Catalog:       catalog.NewModule(catalogSvc, st, zapLogger),
	}, zapLogger)

	srv := server.New(cfg.Server, router, zapLogger)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := srv.Start(); err != nil {
			zapLogger.Fatal("server error", zap.Error(err))
		}
	}()

	<-quit
	zapLogger.Info("received shutdown signal")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		zapLogger.Fatal("server shutdown failed", zap.Error(err))
	}

	zapLogger.Info("server stopped gracefully")
}
