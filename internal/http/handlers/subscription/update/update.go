// Package update реализует HTTP-обработчик для обновления подписки пользователя.
package update

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/webrise/subscription-service/internal/http/response"
	"github.com/webrise/subscription-service/internal/lib/sl"
	"github.com/webrise/subscription-service/internal/lib/validation"
	"github.com/webrise/subscription-service/internal/models"
	"github.com/webrise/subscription-service/internal/storage/repository"
)

// Handler управляет HTTP-запросами на обновление подписок.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики обновления подписки.
type Service interface {
	Update(ctx context.Context, userID, subID int64, req models.DummySubscription) error
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validation.New(),
	}
}

// ServeHTTP godoc
// @Summary Обновить подписку пользователя
// @Description Перезаписывает даты, флаг активности и провайдера подписки.
// @Tags Subscriptions
// @Accept  json
// @Produce  json
// @Param userId path int true "ID пользователя"
// @Param subId path int true "ID подписки"
// @Param request body models.DummySubscription true "Обновляемые данные подписки"
// @Success 200 {object} response.OKResponse "Успешное обновление"
// @Failure 400 {object} response.ErrorResponse "Некорректный запрос или дубликат подписки"
// @Failure 404 {object} response.ErrorResponse "Пользователь, подписка или провайдер не найдены"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /users/{userId}/subscriptions/{subId} [put]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.subscription.update"
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

	var req models.DummySubscription
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}
	log.Info("request body decoded", slog.Any("request", req))

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	err = h.service.Update(r.Context(), userID, subID, req)
	switch {
	case errors.Is(err, repository.ErrUserNotFound):
		log.Error("user not found", slog.Int64("user_id", userID))
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, response.Error(repository.ErrUserNotFound.Error()))
		return
	case errors.Is(err, repository.ErrSubscriptionNotFound):
		log.Error("subscription not found", slog.Int64("subscription_id", subID))
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, response.Error(repository.ErrSubscriptionNotFound.Error()))
		return
	case errors.Is(err, repository.ErrProviderNotFound):
		log.Error("provider not found", sl.Err(err))
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, response.Error(repository.ErrProviderNotFound.Error()))
		return
	case errors.Is(err, repository.ErrSubscriptionExists):
		log.Error("failed to update subscription", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error(repository.ErrSubscriptionExists.Error()))
		return
	case err != nil:
		log.Error("failed to update subscription", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not update subscription"))
		return
	}

	log.Info("success to update subscription",
		slog.Int64("id", subID), slog.Int64("user_id", userID))
	render.JSON(w, r, response.OK("Subscription was successfully updated"))
}
