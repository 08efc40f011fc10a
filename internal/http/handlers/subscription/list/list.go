// Package list реализует HTTP-обработчик для получения активных подписок пользователя.
package list

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/webrise/subscription-service/internal/http/response"
	"github.com/webrise/subscription-service/internal/lib/sl"
	"github.com/webrise/subscription-service/internal/models"
	"github.com/webrise/subscription-service/internal/storage/repository"
)

// Handler управляет HTTP-запросами на список подписок.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики выборки подписок пользователя.
type Service interface {
	ListByUser(ctx context.Context, userID int64) ([]models.SubscriptionView, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Получить активные подписки пользователя
// @Description Возвращает список активных подписок с данными провайдеров. Пользователь без подписок получает пустой список.
// @Tags Subscriptions
// @Produce  json
// @Param userId path int true "ID пользователя"
// @Success 200 {array} models.SubscriptionView "Активные подписки пользователя"
// @Failure 400 {object} response.ErrorResponse "Некорректный id в URL"
// @Failure 404 {object} response.ErrorResponse "Пользователь не найден"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /users/{userId}/subscriptions [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.subscription.list"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	userID, err := strconv.ParseInt(chi.URLParam(r, "userId"), 10, 64)
	if err != nil {
		log.Error("failed to decode id from url", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("failed to decode id from url"))
		return
	}

	subs, err := h.service.ListByUser(r.Context(), userID)
	switch {
	case errors.Is(err, repository.ErrUserNotFound):
		log.Error("user not found", slog.Int64("user_id", userID))
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, response.Error(repository.ErrUserNotFound.Error()))
		return
	case err != nil:
		log.Error("failed to list subscriptions", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list subscriptions"))
		return
	}

	log.Info("success to list subscriptions",
		slog.Int64("user_id", userID), slog.Int("count", len(subs)))
	render.JSON(w, r, subs)
}
