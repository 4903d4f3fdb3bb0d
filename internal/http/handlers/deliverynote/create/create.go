// Package create реализует HTTP-обработчик создания накладной.
//
// Payload обязан соответствовать формату: material требует непустой список
// материалов, hours - непустой список работников.
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

// Service описывает интерфейс бизнес-логики создания накладной.
type Service interface {
	Create(ctx context.Context, userID string, in models.DeliveryNoteInput) (*models.DeliveryNote, error)
}

// Handler управляет HTTP-запросами создания накладной.
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
// @Summary Создать накладную
// @Description Создает накладную в состоянии pending. Payload обязан соответствовать формату.
// @Tags DeliveryNotes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.DeliveryNoteInput true "Данные накладной"
// @Success 200 {object} response.Response "Созданная накладная"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 404 {object} response.ErrorResponse "Клиент или проект не найден"
// @Failure 422 {object} response.Response "Ошибка валидации или payload не соответствует формату"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /deliverynote [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.deliverynote.create"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.DeliveryNoteInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}
	log.Info("request body decoded", slog.String("format", req.Format))

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

	note, err := h.service.Create(r.Context(), userID, req)
	if err != nil {
		log.Error("failed to create delivery note", sl.Err(err))
		response.WriteError(w, r, err, "failed to create delivery note")
		return
	}

	log.Info("delivery note created", slog.String("id", note.ID))
	render.JSON(w, r, response.StatusOKWithData(note))
}
