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

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"daily-reconciliation/internal/calc"
	"daily-reconciliation/internal/config"
	"daily-reconciliation/internal/gateway"
	"daily-reconciliation/internal/handler"
	"daily-reconciliation/internal/usecase"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Error loading configuration: %v", err)
	}
	logger := config.NewLogger(cfg.LogLevel)

	var (
		db   *gorm.DB
		rdb  *redis.Client
		repo gateway.HintedRepository
	)
	if cfg.Store.Driver == config.DriverMemory {
		logger.Warn("using the in-memory store; records are lost on restart")
		repo = gateway.NewMemoryDayRecordRepository()
	} else {
		db, err = gateway.OpenDatabase(cfg.Store.Driver, cfg.Store.DSN)
		if err != nil {
			logger.WithFields(logrus.Fields{"driver": cfg.Store.Driver}).Fatal(err)
		}
		repo = gateway.NewGormDayRecordRepository(db)
	}

	opts := []usecase.Option{usecase.WithDefaultCoefficients(cfg.Defaults.Coefficients())}
	if cfg.Redis.URL != "" {
		rdb, err = gateway.NewRedis(cfg.Redis.URL)
		if err != nil {
			logger.WithFields(logrus.Fields{"field": "redis"}).Fatal(err)
		}
		repo = gateway.NewRedisRateHintCache(repo, rdb, time.Duration(cfg.Redis.HintTTLSeconds)*time.Second, logger)
		opts = append(opts, usecase.WithDateLocker(gateway.NewRedisDateLocker(rdb, time.Duration(cfg.Redis.LockTTLSeconds)*time.Second)))
	}
	opts = append(opts, usecase.WithRateHints(repo))

	uc := usecase.NewReconciliationUseCase(repo, calc.NewResolver(cfg.Defaults.Rates()), logger, opts...)
	router := handler.NewRouter(handler.NewDayHandler(uc, logger), handler.RouterConfig{
		Logger:    logger,
		RateLimit: cfg.HTTP.RateLimit,
		DB:        db,
		Redis:     rdb,
	})

	srv := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	serverErrCh := make(chan error, 1)
	go func() {
		logger.WithFields(logrus.Fields{"addr": cfg.HTTP.Addr}).Info("server listening")
		serverErrCh <- srv.ListenAndServe()
	}()

	select {
	case <-sigCtx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		uc.Close(shutdownCtx)
	case err := <-serverErrCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithFields(logrus.Fields{"field": "server"}).Error(err)
		}
	}

	if rdb != nil {
		_ = rdb.Close()
	}
	if db != nil {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
}
