// Package list реализует HTTP-обработчик списков клиентов. Один Handler
// обслуживает живые и архивные списки, режим задаётся при создании.
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

// Service описывает интерфейс бизнес-логики списков клиентов.
type Service interface {
	List(ctx context.Context, userID, companyID string) ([]*models.Client, error)
	ListArchived(ctx context.Context, userID string) ([]*models.Client, error)
}

// Handler управляет HTTP-запросами списков клиентов.
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
// @Summary Список клиентов
// @Description Возвращает неархивных клиентов владельца и его компании либо архивных клиентов владельца.
// @Tags Clients
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response "Список клиентов"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /client [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.client.list"

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
	companyID, _ := r.Context().Value(middlewarectx.CompanyID).(string)

	var (
		clients []*models.Client
		err     error
	)
	if h.archived {
		clients, err = h.service.ListArchived(r.Context(), userID)
	} else {
		clients, err = h.service.List(r.Context(), userID, companyID)
	}
	if err != nil {
		log.Error("failed to list clients", sl.Err(err))
		response.WriteError(w, r, err, "failed to list clients")
		return
	}

	render.JSON(w, r, response.StatusOKWithData(clients))
}
