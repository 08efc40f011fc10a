// Package top реализует HTTP-обработчик рейтинга провайдеров
// по числу активных подписок.
package top

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/webrise/subscription-service/internal/http/response"
	"github.com/webrise/subscription-service/internal/lib/sl"
	"github.com/webrise/subscription-service/internal/models"
	"github.com/webrise/subscription-service/internal/storage/repository"
)

// defaultLimit используется, когда параметр limit не передан.
const defaultLimit = 3

// Handler управляет HTTP-запросами на рейтинг провайдеров.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики рейтинга провайдеров.
type Service interface {
	Top(ctx context.Context, limit int) ([]*models.ProviderStats, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Топ провайдеров по активным подпискам
// @Description Возвращает первые limit провайдеров, отсортированных по числу активных подписок.
// @Tags Subscriptions
// @Produce  json
// @Param limit query int false "Размер рейтинга, по умолчанию 3"
// @Success 200 {array} models.ProviderStats "Рейтинг провайдеров"
// @Failure 400 {object} response.ErrorResponse "Некорректное значение limit"
// @Failure 404 {object} response.ErrorResponse "Активных подписок нет"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /subscriptions/top [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.subscription.top"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	limit := defaultLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			log.Error("failed to decode limit from query", sl.Err(err))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("failed to decode limit from query"))
			return
		}
		limit = parsed
	}
	if limit < 1 {
		log.Error("invalid limit", slog.Int("limit", limit))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("limit cannot be less than 1"))
		return
	}

	stats, err := h.service.Top(r.Context(), limit)
	switch {
	case errors.Is(err, repository.ErrSubscriptionNotFound):
		log.Error("no active subscriptions found")
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, response.Error(repository.ErrSubscriptionNotFound.Error()))
		return
	case err != nil:
		log.Error("failed to get top providers", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not get top providers"))
		return
	}

	log.Info("success to get top providers", slog.Int("limit", limit))
	render.JSON(w, r, stats)
}
