// Package create реализует HTTP-обработчик для создания новых пользователей.
//
// Handler принимает JSON-запрос с данными пользователя и, опционально,
// начальным списком подписок, валидирует их, вызывает бизнес-логику
// создания и возвращает ID созданной записи в JSON-формате.
package create

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/webrise/subscription-service/internal/http/response"
	"github.com/webrise/subscription-service/internal/lib/sl"
	"github.com/webrise/subscription-service/internal/lib/validation"
	"github.com/webrise/subscription-service/internal/models"
	"github.com/webrise/subscription-service/internal/storage/repository"
)

// Handler управляет HTTP-запросами на создание пользователей.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики создания пользователя.
type Service interface {
	Create(ctx context.Context, req models.DummyUser) (int64, error)
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
// @Summary Создать нового пользователя
// @Description Создает пользователя, опционально вместе с начальными подписками. Возвращает ID созданной записи.
// @Tags Users
// @Accept  json
// @Produce  json
// @Param request body models.DummyUser true "Данные нового пользователя"
// @Success 200 {object} response.OKResponse "Успешное создание пользователя"
// @Failure 400 {object} response.ErrorResponse "Некорректный запрос или конфликт уникальности"
// @Failure 404 {object} response.ErrorResponse "Провайдер из списка подписок не найден"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /users [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.user.create"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.DummyUser
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

	id, err := h.service.Create(r.Context(), req)
	switch {
	case errors.Is(err, repository.ErrUsernameTaken):
		log.Error("failed to create user", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error(repository.ErrUsernameTaken.Error()))
		return
	case errors.Is(err, repository.ErrEmailTaken):
		log.Error("failed to create user", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error(repository.ErrEmailTaken.Error()))
		return
	case errors.Is(err, repository.ErrSubscriptionExists):
		log.Error("failed to create user", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error(repository.ErrSubscriptionExists.Error()))
		return
	case errors.Is(err, repository.ErrProviderNotFound):
		log.Error("failed to create user", sl.Err(err))
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, response.Error(repository.ErrProviderNotFound.Error()))
		return
	case err != nil:
		log.Error("failed to create user", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not create user"))
		return
	}

	log.Info("success to create user", slog.Int64("id", id))
	render.JSON(w, r, response.OKWithID(id, "User was successfully added"))
}
