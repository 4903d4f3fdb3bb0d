// Package list реализует HTTP-обработчик списков накладных. Один Handler
// обслуживает полный список и список подписанных, режим задаётся при создании.
package list

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/albaranes-app/delivery-notes/internal/http/middlewarectx"
	"github.com/albaranes-app/delivery-notes/internal/http/response"
	"github.com/albaranes-app/delivery-notes/internal/lib/sl"
	"github.com/albaranes-app/delivery-notes/internal/models"
)

// Service описывает интерфейс бизнес-логики списков накладных.
type Service interface {
	List(ctx context.Context, userID string, signedOnly bool) ([]*models.DeliveryNote, error)
}

// Handler управляет HTTP-запросами списков накладных.
type Handler struct {
	log        *slog.Logger
	service    Service
	signedOnly bool
}

// New создает новый Handler. signedOnly оставляет только подписанные накладные.
func New(log *slog.Logger, service Service, signedOnly bool) *Handler {
	return &Handler{
		log:        log,
		service:    service,
		signedOnly: signedOnly,
	}
}

// ServeHTTP godoc
// @Summary Список накладных
// @Tags DeliveryNotes
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response "Список накладных"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /deliverynote [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.deliverynote.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	userID, ok := r.Context().Value(middlewarectx.UserID).(string)
	if !ok || userID == "" {
		log.Error("user id not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	notes, err := h.service.List(r.Context(), userID, h.signedOnly)
	if err != nil {
		log.Error("failed to list delivery notes", sl.Err(err))
		response.WriteError(w, r, err, "failed to list delivery notes")
		return
	}

	render.JSON(w, r, response.StatusOKWithData(notes))
}
