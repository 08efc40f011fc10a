// Package remove реализует HTTP-обработчик для удаления подписки пользователя.
package remove

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
	"github.com/webrise/subscription-service/internal/storage/repository"
)

// Handler управляет HTTP-запросами на удаление подписок.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики удаления подписки.
type Service interface {
	Remove(ctx context.Context, subID, userID int64) error
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Удалить подписку пользователя
// @Description Удаляет подписку по идентификатору, если она принадлежит данному пользователю.
// @Tags Subscriptions
// @Produce  json
// @Param userId path int true "ID пользователя"
// @Param subId path int true "ID подписки"
// @Success 200 {object} response.OKResponse "Успешное удаление"
// @Failure 400 {object} response.ErrorResponse "Некорректный id в URL"
// @Failure 404 {object} response.ErrorResponse "Подписка не найдена"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /users/{userId}/subscriptions/{subId} [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.subscription.remove"
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

	subID, err := strconv.ParseInt(chi.URLParam(r, "subId"), 10, 64)
	if err != nil {
		log.Error("failed to decode id from url", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("failed to decode id from url"))
		return
	}

	err = h.service.Remove(r.Context(), subID, userID)
	switch {
	case errors.Is(err, repository.ErrSubscriptionNotFound):
		log.Error("subscription not found",
			slog.Int64("subscription_id", subID), slog.Int64("user_id", userID))
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, response.Error(repository.ErrSubscriptionNotFound.Error()))
		return
	case err != nil:
		log.Error("failed to delete subscription", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not delete subscription"))
		return
	}

	log.Info("success to delete subscription",
		slog.Int64("id", subID), slog.Int64("user_id", userID))
	render.JSON(w, r, response.OK("Subscription was successfully deleted"))
}
