// Package update реализует HTTP-обработчик для обновления провайдера подписок.
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

// Handler управляет HTTP-запросами на обновление провайдеров.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики обновления провайдера.
type Service interface {
	Update(ctx context.Context, id int64, req models.DummyProvider) error
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
// @Summary Обновить провайдера подписок
// @Description Перезаписывает название и цену провайдера.
// @Tags Providers
// @Accept  json
// @Produce  json
// @Param id path int true "ID провайдера"
// @Param request body models.DummyProvider true "Обновляемые данные провайдера"
// @Success 200 {object} response.OKResponse "Успешное обновление"
// @Failure 400 {object} response.ErrorResponse "Некорректный запрос или название занято"
// @Failure 404 {object} response.ErrorResponse "Провайдер не найден"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /subscription-provider/{id} [put]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.provider.update"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		log.Error("failed to decode id from url", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("failed to decode id from url"))
		return
	}

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

	err = h.service.Update(r.Context(), id, req)
	switch {
	case errors.Is(err, repository.ErrProviderNotFound):
		log.Error("provider not found", slog.Int64("provider_id", id))
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, response.Error(repository.ErrProviderNotFound.Error()))
		return
	case errors.Is(err, repository.ErrProviderNameTaken):
		log.Error("failed to update provider", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error(repository.ErrProviderNameTaken.Error()))
		return
	case err != nil:
		log.Error("failed to update provider", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not update subscription provider"))
		return
	}

	log.Info("success to update provider", slog.Int64("id", id))
	render.JSON(w, r, response.OK("Subscription provider was successfully updated"))
}
