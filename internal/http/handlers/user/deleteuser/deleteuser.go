// Package deleteuser реализует HTTP-обработчик удаления учётной записи.
// По умолчанию запись переводится в inactive; безвозвратное удаление
// происходит только при явном параметре soft=false.
package deleteuser

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/albaranes-app/delivery-notes/internal/http/middlewarectx"
	"github.com/albaranes-app/delivery-notes/internal/http/response"
	"github.com/albaranes-app/delivery-notes/internal/lib/sl"
)

// Service описывает интерфейс бизнес-логики удаления учётной записи.
type Service interface {
	Delete(ctx context.Context, userID string, soft bool) error
}

// Handler управляет HTTP-запросами удаления учётной записи.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Удалить учётную запись
// @Description Деактивирует текущего пользователя. С параметром soft=false запись удаляется безвозвратно.
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Param soft query bool false "Мягкое удаление"
// @Success 200 {object} response.Response "Учётная запись удалена"
// @Failure 404 {object} response.ErrorResponse "Пользователь не найден"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /user/deleteuser [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.user.deleteuser"

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

	// Безвозвратное удаление только при явном soft=false.
	soft := r.URL.Query().Get("soft") != "false"
	if err := h.service.Delete(r.Context(), userID, soft); err != nil {
		log.Error("failed to delete user", sl.Err(err))
		response.WriteError(w, r, err, "failed to delete user")
		return
	}

	log.Info("user deleted", slog.String("user_id", userID), slog.Bool("soft", soft))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"message": "user deleted",
	}))
}
