// Package read реализует HTTP-обработчик для получения данных провайдера подписок.
package read

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

// Handler управляет HTTP-запросами на чтение провайдера.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики чтения провайдера.
type Service interface {
	Get(ctx context.Context, id int64) (*models.Provider, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Получить провайдера подписок
// @Description Возвращает данные провайдера по идентификатору.
// @Tags Providers
// @Produce  json
// @Param id path int true "ID провайдера"
// @Success 200 {object} models.Provider "Данные провайдера"
// @Failure 400 {object} response.ErrorResponse "Некорректный id в URL"
// @Failure 404 {object} response.ErrorResponse "Провайдер не найден"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /subscription-provider/{id} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.provider.read"
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

	provider, err := h.service.Get(r.Context(), id)
	switch {
	case errors.Is(err, repository.ErrProviderNotFound):
		log.Error("provider not found", slog.Int64("provider_id", id))
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, response.Error(repository.ErrProviderNotFound.Error()))
		return
	case err != nil:
		log.Error("failed to read provider", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not read subscription provider"))
		return
	}

	log.Info("success to read provider", slog.Int64("id", id))
	render.JSON(w, r, provider)
}
