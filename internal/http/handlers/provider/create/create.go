// Package create реализует HTTP-обработчик для создания провайдеров подписок.
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

// Handler управляет HTTP-запросами на создание провайдеров.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики создания провайдера.
type Service interface {
	Create(ctx context.Context, req models.DummyProvider) (int64, error)
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
// @Summary Создать провайдера подписок
// @Description Создает нового провайдера с уникальным названием и ценой больше нуля.
// @Tags Providers
// @Accept  json
// @Produce  json
// @Param request body models.DummyProvider true "Данные нового провайдера"
// @Success 200 {object} response.OKResponse "Успешное создание провайдера"
// @Failure 400 {object} response.ErrorResponse "Некорректный запрос или название занято"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /subscription-provider [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.provider.create"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.DummyProvider
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
	case errors.Is(err, repository.ErrProviderNameTaken):
		log.Error("failed to create provider", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error(repository.ErrProviderNameTaken.Error()))
		return
	case err != nil:
		log.Error("failed to create provider", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not create subscription provider"))
		return
	}

	log.Info("success to create provider", slog.Int64("id", id))
	render.JSON(w, r, response.OKWithID(id, "Subscription provider was successfully added"))
}
