package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/Simplici0/marsloop/internal/auth"
	"github.com/Simplici0/marsloop/internal/config"
	"github.com/Simplici0/marsloop/internal/db"
	"github.com/Simplici0/marsloop/internal/migrations"
	"github.com/Simplici0/marsloop/internal/regolith"
	"github.com/Simplici0/marsloop/internal/seed"
	"github.com/Simplici0/marsloop/internal/solar"
	"github.com/Simplici0/marsloop/internal/sources"
	"github.com/Simplici0/marsloop/internal/store"
)

func main() {
	bootstrap, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}

	cfg, err := config.Load(os.Getenv("MARSLOOP_CONFIG"), bootstrap)
	if err != nil {
		bootstrap.Fatal("failed to load config", zap.Error(err))
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		bootstrap.Fatal("failed to build logger", zap.Error(err))
	}
	defer func() { _ = logger.Sync() }()

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		logger.Fatal("failed to open database", zap.Error(err))
	}
	defer database.Close()

	if cfg.IsDev() {
		if err := migrations.Up(database); err != nil {
			logger.Fatal("failed to run database migrations", zap.Error(err))
		}
	}

	ctx := context.Background()
	stats, err := seed.Run(ctx, database, seed.Config{
		AdminEmail:      cfg.AdminEmail,
		AdminPassword:   cfg.AdminPassword,
		RegolithDataDir: cfg.RegolithDataDir,
	})
	if err != nil {
		logger.Fatal("failed to seed database", zap.Error(err))
	}
	logger.Info("seed complete", zap.Int("inserts", stats.Inserts), zap.Int("skipped", stats.Skipped))

	st := store.New(database)
	srv := &server{
		auth:     auth.New(database, cfg.SessionSecret),
		store:    st,
		regolith: profileSource(st, cfg.RegolithDataDir),
		gatherer: sources.Gatherer{
			Filament: st,
			Solar:    solar.NewPowerClient(cfg.SolarAPIURL),
			Timeout:  cfg.FetchTimeout,
			Logger:   logger,
		},
		logger: logger,
	}
	srv.gatherer.Regolith = srv.regolith

	httpServer := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           newRouter(srv),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("listening", zap.String("addr", httpServer.Addr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server stopped", zap.Error(err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown", zap.Error(err))
	}
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, err
	}
	zcfg := zap.NewProductionConfig()
	zcfg.Level = lvl
	return zcfg.Build()
}

// profileSource prefers stored profiles and falls back to files in dataDir.
func profileSource(st *store.Store, dataDir string) regolith.Source {
	if dataDir == "" {
		return st
	}
	return regolith.Chain{st, regolith.FileSource{Dir: dataDir}}
}
