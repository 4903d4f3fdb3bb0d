// Package read реализует HTTP-обработчик чтения клиента по ID.
package read

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/albaranes-app/delivery-notes/internal/http/middlewarectx"
	"github.com/albaranes-app/delivery-notes/internal/http/response"
	"github.com/albaranes-app/delivery-notes/internal/lib/sl"
	"github.com/albaranes-app/delivery-notes/internal/models"
)

// Service описывает интерфейс бизнес-логики чтения клиента.
type Service interface {
	Read(ctx context.Context, id, userID, companyID string) (*models.Client, error)
}

// Handler управляет HTTP-запросами чтения клиента.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Получить клиента
// @Description Возвращает клиента, видимого владельцу или его компании.
// @Tags Clients
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID клиента"
// @Success 200 {object} response.Response "Клиент"
// @Failure 404 {object} response.ErrorResponse "Клиент не найден"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /client/{id} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.client.read"

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

	userID, ok := r.Context().Value(middlewarectx.UserID).(string)
	if !ok || userID == "" {
		log.Error("user id not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}
	companyID, _ := r.Context().Value(middlewarectx.CompanyID).(string)

	client, err := h.service.Read(r.Context(), id, userID, companyID)
	if err != nil {
		log.Error("failed to read client", sl.Err(err))
		response.WriteError(w, r, err, "failed to read client")
		return
	}

	render.JSON(w, r, response.StatusOKWithData(client))
}
