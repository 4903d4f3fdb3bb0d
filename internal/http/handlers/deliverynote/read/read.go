// Package read реализует HTTP-обработчик чтения накладной по ID.
package read

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/albaranes-app/delivery-notes/internal/http/response"
	"github.com/albaranes-app/delivery-notes/internal/lib/sl"
	"github.com/albaranes-app/delivery-notes/internal/models"
)

// Service описывает интерфейс бизнес-логики чтения накладной.
type Service interface {
	Read(ctx context.Context, id string) (*models.DeliveryNote, error)
}

// Handler управляет HTTP-запросами чтения накладной.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Получить накладную
// @Tags DeliveryNotes
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID накладной"
// @Success 200 {object} response.Response "Накладная"
// @Failure 404 {object} response.ErrorResponse "Накладная не найдена"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /deliverynote/{id} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.deliverynote.read"

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

	note, err := h.service.Read(r.Context(), id)
	if err != nil {
		log.Error("failed to read delivery note", sl.Err(err))
		response.WriteError(w, r, err, "failed to read delivery note")
		return
	}

	render.JSON(w, r, response.StatusOKWithData(note))
}
