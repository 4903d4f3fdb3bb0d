// Package remove реализует HTTP-обработчик удаления накладной.
// Подписанная накладная неизменяема, её удаление отклоняется.
package remove

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/albaranes-app/delivery-notes/internal/http/response"
	"github.com/albaranes-app/delivery-notes/internal/lib/sl"
)

// Service описывает интерфейс бизнес-логики удаления накладной.
type Service interface {
	Delete(ctx context.Context, id string) error
}

// Handler управляет HTTP-запросами удаления накладной.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Удалить накладную
// @Tags DeliveryNotes
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID накладной"
// @Success 200 {object} response.Response "Накладная удалена"
// @Failure 404 {object} response.ErrorResponse "Накладная не найдена"
// @Failure 403 {object} response.ErrorResponse "Накладная уже подписана"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /deliverynote/{id} [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.deliverynote.remove"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id := chi.URLParam(r, "id")
	if id == "" {
		log.Error("missing id in url")
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("missing id in url"))
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		log.Error("failed to delete delivery note", sl.Err(err))
		response.WriteError(w, r, err, "failed to delete delivery note")
		return
	}

	log.Info("delivery note deleted", slog.String("id", id))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"message": "delivery note deleted",
	}))
}
