// Package archive реализует HTTP-обработчик архивирования и восстановления
// клиента. Один Handler обслуживает обе операции, цель задаётся при создании.
package archive

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

// Service описывает интерфейс бизнес-логики архивирования клиента.
type Service interface {
	SetArchived(ctx context.Context, id string, archived bool) error
}

// Handler управляет HTTP-запросами архивирования клиента.
type Handler struct {
	log      *slog.Logger
	service  Service
	archived bool
}

// New создает новый Handler. archived=true архивирует, false восстанавливает.
func New(log *slog.Logger, service Service, archived bool) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		archived: archived,
	}
}

// ServeHTTP godoc
// @Summary Архивировать или восстановить клиента
// @Tags Clients
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID клиента"
// @Success 200 {object} response.Response "Состояние изменено"
// @Failure 404 {object} response.ErrorResponse "Клиент не найден"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /client/archive/{id} [put]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.client.archive"

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

	if err := h.service.SetArchived(r.Context(), id, h.archived); err != nil {
		log.Error("failed to change client archive state", sl.Err(err))
		response.WriteError(w, r, err, "failed to change client archive state")
		return
	}

	log.Info("client archive state changed", slog.String("id", id), slog.Bool("archived", h.archived))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"id":       id,
		"archived": h.archived,
	}))
}
