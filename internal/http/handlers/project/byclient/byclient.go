// Package byclient реализует HTTP-обработчик списков проектов клиента.
// Отсутствующий клиент - это 404, а не пустой список.
package byclient

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

// Service описывает интерфейс бизнес-логики списков проектов клиента.
type Service interface {
	ListByClient(ctx context.Context, clientID string, archived bool) ([]*models.Project, error)
}

// Handler управляет HTTP-запросами списков проектов клиента.
type Handler struct {
	log      *slog.Logger
	service  Service
	archived bool
}

// New создает новый Handler. archived переключает его на архивный список.
func New(log *slog.Logger, service Service, archived bool) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		archived: archived,
	}
}

// ServeHTTP godoc
// @Summary Список проектов клиента
// @Tags Projects
// @Produce json
// @Security BearerAuth
// @Param client path string true "ID клиента"
// @Success 200 {object} response.Response "Список проектов"
// @Failure 404 {object} response.ErrorResponse "Клиент не найден"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /project/client/{client} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.project.byclient"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	clientID := chi.URLParam(r, "client")
	if clientID == "" {
		log.Error("missing client id in url")
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("missing client id in url"))
		return
	}

	projects, err := h.service.ListByClient(r.Context(), clientID, h.archived)
	if err != nil {
		log.Error("failed to list client projects", sl.Err(err))
		response.WriteError(w, r, err, "failed to list client projects")
		return
	}

	render.JSON(w, r, response.StatusOKWithData(projects))
}
