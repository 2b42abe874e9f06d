package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/and161185/dev-diary/internal/config"
	"github.com/and161185/dev-diary/internal/migrate"
	"github.com/and161185/dev-diary/internal/repository/postgres"
	httpserver "github.com/and161185/dev-diary/internal/server/http"
	"github.com/and161185/dev-diary/internal/service"
	"github.com/and161185/dev-diary/internal/token"
)

const shutdownTimeout = 5 * time.Second

func newServeCmd(f *rootFlags) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(f.configPath)
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Addr = addr
			}
			return serve(cmd.Context(), cfg, f.dev)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides config)")
	return cmd
}

// serve wires the repositories, services and router, then blocks until a
// signal arrives or the listener fails.
func serve(parent context.Context, cfg config.Config, dev bool) error {
	logger, err := newLogger(cfg.LogLevel, dev)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()
	logger.Info("starting",
		zap.String("version", version),
		zap.String("buildDate", buildDate),
		zap.String("addr", cfg.Addr),
	)

	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.MigrateOnStart {
		if err := migrate.Up(ctx, cfg.DatabaseURL); err != nil {
			logger.Error("migrate up", zap.Error(err))
			return err
		}
	}

	db, err := postgres.New(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error("pgxpool.New", zap.Error(err))
		return err
	}
	defer db.Close()

	codec, err := token.NewCodec(token.Config{
		Secret:     []byte(cfg.SecretKey),
		Algorithm:  cfg.Algorithm,
		AccessTTL:  cfg.AccessTTL(),
		RefreshTTL: cfg.RefreshTTL(),
		Leeway:     cfg.TokenLeeway(),
	})
	if err != nil {
		return err
	}

	// Repositories
	userRepo := postgres.NewUserRepo(db)
	entryRepo := postgres.NewEntryRepo(db)
	projectRepo := postgres.NewProjectRepo(db)
	tagRepo := postgres.NewTagRepo(db)
	insightsRepo := postgres.NewInsightsRepo(db)

	hashKey, blockKey := cfg.CookieKeys()
	api := httpserver.New(httpserver.Deps{
		Auth:     service.NewAuthService(userRepo, codec, logger),
		Entries:  service.NewEntryService(entryRepo, projectRepo),
		Projects: service.NewProjectService(projectRepo),
		Tags:     service.NewTagService(tagRepo),
		Insights: service.NewInsightsService(insightsRepo, nil),
		DB:       db,
		Cookies: httpserver.NewRefreshCookies(httpserver.CookieConfig{
			HashKey:  hashKey,
			BlockKey: blockKey,
			Secure:   cfg.CookieSecure,
			TTL:      cfg.RefreshTTL(),
		}),
	}, httpserver.Options{CORSOrigins: cfg.CORSOrigins}, logger)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           api.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", zap.String("addr", cfg.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Warn("graceful shutdown", zap.Error(err))
			_ = srv.Close()
		}
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", zap.Error(err))
			return err
		}
	}

	logger.Info("shutdown complete")
	return nil
}
