package main

import (
	"context"
	"fmt"

	"authsvc/internal/config"
	"authsvc/internal/handlers"
	"authsvc/internal/logger"
	"authsvc/internal/metrics"
	"authsvc/internal/publicapi"
	"authsvc/internal/repository"
	"authsvc/internal/repository/db"
	"authsvc/internal/service"

	"github.com/gin-gonic/gin"
)

// app is the wired dependency graph of one server process.
type app struct {
	router  *gin.Engine
	closers []func()
}

func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
}

func newApp(ctx context.Context, cfg *config.Config, log *logger.Logger) (_ *app, err error) {
	a := &app{}
	defer func() {
		if err != nil {
			a.Close()
		}
	}()

	repos, err := openRepository(ctx, cfg.DB, a)
	if err != nil {
		return nil, err
	}

	hasher, err := service.NewBcryptHasher(cfg.Auth.BcryptCost)
	if err != nil {
		return nil, err
	}
	tokens, err := service.NewTokenManager([]byte(cfg.Auth.Secret), cfg.Auth.TokenTTL)
	if err != nil {
		return nil, err
	}

	var entries publicapi.Source = publicapi.NewClient(publicapi.Options{
		BaseURL:            cfg.PublicAPI.BaseURL,
		Timeout:            cfg.PublicAPI.Timeout,
		InsecureSkipVerify: cfg.PublicAPI.InsecureSkipVerify,
	})
	if cfg.PublicAPI.InsecureSkipVerify {
		log.Warnw("publicapi TLS verification disabled", "base_url", cfg.PublicAPI.BaseURL)
	}
	if cfg.Cache.RedisURL != "" {
		rdb, err := publicapi.NewRedisClient(ctx, cfg.Cache.RedisURL)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, func() { _ = rdb.Close() })
		entries = publicapi.NewCachedSource(entries, rdb, cfg.Cache.TTL, log)
	}

	services := service.NewService(repos, service.Deps{
		Hasher:  hasher,
		Tokens:  tokens,
		Entries: entries,
	})

	gin.SetMode(gin.ReleaseMode)
	a.router = handlers.NewHandler(services, log, metrics.NewDefault()).InitRoutes()
	return a, nil
}

func openRepository(ctx context.Context, cfg config.DBConfig, a *app) (*repository.Repository, error) {
	switch cfg.Driver {
	case config.DriverPostgres:
		pool, err := db.InitPostgres(ctx, cfg.DSN)
		if err != nil {
			return nil, fmt.Errorf("init postgres: %w", err)
		}
		a.closers = append(a.closers, pool.Close)
		return repository.NewPostgresRepository(pool), nil
	default:
		sqlDB, err := db.InitDB(cfg.Path)
		if err != nil {
			return nil, fmt.Errorf("init sqlite: %w", err)
		}
		a.closers = append(a.closers, func() { _ = sqlDB.Close() })
		return repository.NewRepository(sqlDB), nil
	}
}
