// Package list реализует HTTP-обработчик списков проектов. Один Handler
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

// Service описывает интерфейс бизнес-логики списков проектов.
type Service interface {
	List(ctx context.Context, userID, companyID string) ([]*models.Project, error)
	ListArchived(ctx context.Context, userID string) ([]*models.Project, error)
}

// Handler управляет HTTP-запросами списков проектов.
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
// @Summary Список проектов
// @Description Возвращает неархивные проекты владельца и его компании либо архивные проекты владельца.
// @Tags Projects
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response "Список проектов"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /project [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.project.list"

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
		projects []*models.Project
		err      error
	)
	if h.archived {
		projects, err = h.service.ListArchived(r.Context(), userID)
	} else {
		projects, err = h.service.List(r.Context(), userID, companyID)
	}
	if err != nil {
		log.Error("failed to list projects", sl.Err(err))
		response.WriteError(w, r, err, "failed to list projects")
		return
	}

	render.JSON(w, r, response.StatusOKWithData(projects))
}
