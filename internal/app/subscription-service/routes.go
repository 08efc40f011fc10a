package subscriptionservice

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	providercreate "github.com/webrise/subscription-service/internal/http/handlers/provider/create"
	providerread "github.com/webrise/subscription-service/internal/http/handlers/provider/read"
	providerremove "github.com/webrise/subscription-service/internal/http/handlers/provider/remove"
	providerupdate "github.com/webrise/subscription-service/internal/http/handlers/provider/update"
	subcreate "github.com/webrise/subscription-service/internal/http/handlers/subscription/create"
	sublist "github.com/webrise/subscription-service/internal/http/handlers/subscription/list"
	subremove "github.com/webrise/subscription-service/internal/http/handlers/subscription/remove"
	subtop "github.com/webrise/subscription-service/internal/http/handlers/subscription/top"
	subupdate "github.com/webrise/subscription-service/internal/http/handlers/subscription/update"
	usercreate "github.com/webrise/subscription-service/internal/http/handlers/user/create"
	userread "github.com/webrise/subscription-service/internal/http/handlers/user/read"
	userremove "github.com/webrise/subscription-service/internal/http/handlers/user/remove"
	userupdate "github.com/webrise/subscription-service/internal/http/handlers/user/update"
	"github.com/webrise/subscription-service/internal/http/mware"
	providerservice "github.com/webrise/subscription-service/internal/services/provider"
	subscriptionsvc "github.com/webrise/subscription-service/internal/services/subscription"
	userservice "github.com/webrise/subscription-service/internal/services/user"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, userService *userservice.Service, providerService *providerservice.Service, subscriptionService *subscriptionsvc.Service) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
		mware.RateLimit(logger),
	)

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/users", func(r chi.Router) {
			r.Post("/", usercreate.New(logger, userService).ServeHTTP)
			r.Get("/{userId}", userread.New(logger, userService).ServeHTTP)
			r.Patch("/{userId}", userupdate.New(logger, userService).ServeHTTP)
			r.Delete("/{userId}", userremove.New(logger, userService).ServeHTTP)

			r.Post("/{userId}/subscriptions", subcreate.New(logger, subscriptionService).ServeHTTP)
			r.Get("/{userId}/subscriptions", sublist.New(logger, subscriptionService).ServeHTTP)
			r.Put("/{userId}/subscriptions/{subId}", subupdate.New(logger, subscriptionService).ServeHTTP)
			r.Delete("/{userId}/subscriptions/{subId}", subremove.New(logger, subscriptionService).ServeHTTP)
		})

		r.Route("/subscription-provider", func(r chi.Router) {
			r.Post("/", providercreate.New(logger, providerService).ServeHTTP)
			r.Get("/{id}", providerread.New(logger, providerService).ServeHTTP)
			r.Put("/{id}", providerupdate.New(logger, providerService).ServeHTTP)
			r.Delete("/{id}", providerremove.New(logger, providerService).ServeHTTP)
		})

		r.Get("/subscriptions/top", subtop.New(logger, subscriptionService).ServeHTTP)
	})

	r.Handle("/metrics", promhttp.Handler())
}
