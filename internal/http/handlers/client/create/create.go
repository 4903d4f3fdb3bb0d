// Package create реализует HTTP-обработчик создания клиента.
//
// Handler принимает JSON с данными клиента, валидирует их, извлекает
// владельца из контекста и вызывает бизнес-логику создания. Повтор имени
// среди неархивных клиентов владельца отклоняется.
package create

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/albaranes-app/delivery-notes/internal/http/middlewarectx"
	"github.com/albaranes-app/delivery-notes/internal/http/response"
	"github.com/albaranes-app/delivery-notes/internal/lib/sl"
	"github.com/albaranes-app/delivery-notes/internal/models"
)

// Service описывает интерфейс бизнес-логики создания клиента.
type Service interface {
	Create(ctx context.Context, userID, companyID string, in models.ClientInput) (*models.Client, error)
}

// Handler управляет HTTP-запросами создания клиента.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Создать клиента
// @Tags Clients
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.ClientInput true "Данные клиента"
// @Success 200 {object} response.Response "Созданный клиент"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 400 {object} response.ErrorResponse "Клиент с таким именем уже есть"
// @Failure 422 {object} response.Response "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /client [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.client.create"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.ClientInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}
	log.Info("request body decoded", slog.String("name", req.Name))

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
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

	client, err := h.service.Create(r.Context(), userID, companyID, req)
	if err != nil {
		log.Error("failed to create client", sl.Err(err))
		response.WriteError(w, r, err, "failed to create client")
		return
	}

	log.Info("client created", slog.String("id", client.ID))
	render.JSON(w, r, response.StatusOKWithData(client))
}
