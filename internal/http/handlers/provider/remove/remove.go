// Package remove реализует HTTP-обработчик для удаления провайдера подписок.
// Провайдер, на которого ещё есть подписки, не удаляется.
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

// Handler управляет HTTP-запросами на удаление провайдеров.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики удаления провайдера.
type Service interface {
	Delete(ctx context.Context, id int64) error
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Удалить провайдера подписок
// @Description Удаляет провайдера. Провайдер с существующими подписками удалить нельзя.
// @Tags Providers
// @Produce  json
// @Param id path int true "ID провайдера"
// @Success 200 {object} response.OKResponse "Успешное удаление"
// @Failure 400 {object} response.ErrorResponse "Некорректный id или провайдер ещё используется"
// @Failure 404 {object} response.ErrorResponse "Провайдер не найден"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /subscription-provider/{id} [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.provider.remove"
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

	err = h.service.Delete(r.Context(), id)
	switch {
	case errors.Is(err, repository.ErrProviderNotFound):
		log.Error("provider not found", slog.Int64("provider_id", id))
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, response.Error(repository.ErrProviderNotFound.Error()))
		return
	case errors.Is(err, repository.ErrProviderHasSubscriptions):
		log.Error("failed to delete provider", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error(repository.ErrProviderHasSubscriptions.Error()))
		return
	case err != nil:
		log.Error("failed to delete provider", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not delete subscription provider"))
		return
	}

	log.Info("success to delete provider", slog.Int64("id", id))
	render.JSON(w, r, response.OK("Subscription provider was successfully deleted"))
}
