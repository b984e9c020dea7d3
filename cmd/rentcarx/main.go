// Package main запускает HTTP-сервер витрины RentCarX.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/mmeshcher/rentcarx-storefront/internal/backend"
	"github.com/mmeshcher/rentcarx-storefront/internal/catalog"
	"github.com/mmeshcher/rentcarx-storefront/internal/config"
	"github.com/mmeshcher/rentcarx-storefront/internal/handler"
	"github.com/mmeshcher/rentcarx-storefront/internal/logger"
	"github.com/mmeshcher/rentcarx-storefront/internal/middleware"
	"github.com/mmeshcher/rentcarx-storefront/internal/service"
	"github.com/mmeshcher/rentcarx-storefront/internal/session"
)

func main() {
	cfg, err := config.Parse()
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger error: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err = run(ctx, cfg, log)
	stop()

	if err != nil {
		log.Error("application terminated with error", zap.Error(err))
		_ = log.Sync()
		os.Exit(1)
	}
	_ = log.Sync()
}

// run собирает зависимости и обслуживает запросы до отмены ctx.
// Ресурсы освобождаются до возврата, в том числе при ошибке.
func run(ctx context.Context, cfg *config.Config, log *zap.Logger) error {
	sugar := log.Sugar()

	store, err := newStore(cfg.DatabaseURI)
	if err != nil {
		return fmt.Errorf("session storage initialization error: %w", err)
	}
	defer store.Close()

	sessions := session.NewManager(store, cfg.SessionTTL, log)

	client := backend.NewClient(cfg.BackendAddress, cfg.RequestTimeout)
	svc := service.NewService(client, log)

	catalogs := catalog.NewRegistry(svc, catalog.Options{
		ApplyDelay: cfg.ApplyDelay,
		Timeout:    cfg.RequestTimeout,
		Logger:     log,
	})
	sessions.OnRemove(catalogs.Forget)

	cookies := middleware.NewSessionMiddleware(sessions, cfg.SessionSecret, log)
	if cfg.SessionSecret == "" {
		sugar.Warn("session secret is not set, sessions will not survive a restart")
	}

	h, err := handler.NewHandler(svc, sessions, catalogs, cookies, log, handler.Options{
		AssetsAddress: cfg.AssetsAddress,
		WaitTimeout:   cfg.RequestTimeout + cfg.ApplyDelay,
	})
	if err != nil {
		return fmt.Errorf("handler initialization error: %w", err)
	}

	sweeper, err := session.NewSweeper(sessions, session.DefaultSweepSpec, log)
	if err != nil {
		return fmt.Errorf("session sweeper initialization error: %w", err)
	}

	server := &http.Server{
		Addr:              cfg.RunAddress,
		Handler:           h.SetupRouter(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)

	// Очистка истёкших сессий
	g.Go(func() error {
		return sweeper.Run(ctx)
	})

	// Запуск HTTP-сервера
	g.Go(func() error {
		sugar.Infow("starting rentcarx storefront",
			"addr", cfg.RunAddress,
			"backend", cfg.BackendAddress,
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	// Graceful shutdown при отмене контекста (сигнал или ошибка в другой горутине)
	g.Go(func() error {
		<-ctx.Done()
		sugar.Info("shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown error: %w", err)
		}
		sugar.Info("server stopped gracefully")
		return nil
	})

	return g.Wait()
}

// newStore выбирает хранилище сессий: PostgreSQL при заданном DSN, иначе память процесса.
func newStore(dsn string) (session.Store, error) {
	if dsn == "" {
		return session.NewMemoryStore(), nil
	}
	return session.NewPostgresStore(dsn)
}
