// Package mware содержит HTTP middleware приложения.
package mware

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/render"
	"golang.org/x/time/rate"

	"github.com/webrise/subscription-service/internal/http/response"
)

var limiter = rate.NewLimiter(50, 100)

// RateLimit ограничивает частоту входящих запросов общим токен-бакетом.
func RateLimit(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				log.Error("too many requests")
				w.WriteHeader(http.StatusTooManyRequests)
				render.JSON(w, r, response.Error("too many requests"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
