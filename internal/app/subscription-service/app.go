// Package subscriptionservice собирает HTTP-приложение: подключение к базе,
// миграции, сервисы и сервер с graceful shutdown.
package subscriptionservice

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/webrise/subscription-service/internal/config"
	"github.com/webrise/subscription-service/internal/migrations"
	providerservice "github.com/webrise/subscription-service/internal/services/provider"
	subscriptionsvc "github.com/webrise/subscription-service/internal/services/subscription"
	userservice "github.com/webrise/subscription-service/internal/services/user"
	"github.com/webrise/subscription-service/internal/storage/repository"
)

// App объединяет HTTP-сервер и подключение к базе данных.
type App struct {
	server *http.Server
	logger *slog.Logger
	db     *repository.Storage
}

// New создает приложение: открывает базу, применяет миграции,
// связывает сервисы и настраивает маршруты.
func New(_ context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		return nil, err
	}
	if err = repository.CheckDatabaseReady(db); err != nil {
		return nil, err
	}

	providerService := providerservice.New(db, logger)
	userService := userservice.New(db, providerService, logger)
	subscriptionService := subscriptionsvc.New(db, userService, providerService, logger)

	router := chi.NewRouter()

	RegisterRoutes(router, logger, userService, providerService, subscriptionService)

	router.Get("/docs/*", httpSwagger.WrapHandler)

	srv := &http.Server{
		Addr:         cfg.Address,
		Handler:      router,
		ReadTimeout:  cfg.Timeout,
		WriteTimeout: cfg.Timeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
		db:     db,
	}, nil
}

// Run запускает сервер и останавливает его при отмене контекста.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		a.db.DB.Close()
		return err
	}
}
