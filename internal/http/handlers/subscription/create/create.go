// Package create реализует HTTP-обработчик для добавления подписки пользователю.
package create

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

// Handler управляет HTTP-запросами на создание подписок.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики добавления подписки.
type Service interface {
	Add(ctx context.Context, userID int64, req models.DummySubscription) (int64, error)
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
// @Summary Добавить подписку пользователю
// @Description Создает подписку пользователя на провайдера. Повторная подписка на того же провайдера отклоняется.
// @Tags Subscriptions
// @Accept  json
// @Produce  json
// @Param userId path int true "ID пользователя"
// @Param request body models.DummySubscription true "Данные новой подписки"
// @Success 200 {object} response.OKResponse "Успешное создание подписки"
// @Failure 400 {object} response.ErrorResponse "Некорректный запрос или подписка уже существует"
// @Failure 404 {object} response.ErrorResponse "Пользователь или провайдер не найдены"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /users/{userId}/subscriptions [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.subscription.create"
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

	id, err := h.service.Add(r.Context(), userID, req)
	switch {
	case errors.Is(err, repository.ErrUserNotFound):
		log.Error("user not found", slog.Int64("user_id", userID))
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, response.Error(repository.ErrUserNotFound.Error()))
		return
	case errors.Is(err, repository.ErrProviderNotFound):
		log.Error("provider not found", sl.Err(err))
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, response.Error(repository.ErrProviderNotFound.Error()))
		return
	case errors.Is(err, repository.ErrSubscriptionExists):
		log.Error("failed to create subscription", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error(repository.ErrSubscriptionExists.Error()))
		return
	case err != nil:
		log.Error("failed to create subscription", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not create subscription"))
		return
	}

	log.Info("success to create subscription",
		slog.Int64("id", id), slog.Int64("user_id", userID))
	render.JSON(w, r, response.OKWithID(id, "Subscription was successfully added"))
}
