// Package send реализует HTTP-обработчик постановки письма в очередь.
// Письмо не отправляется синхронно: доставкой занимается mail-sender.
package send

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/albaranes-app/delivery-notes/internal/http/response"
	"github.com/albaranes-app/delivery-notes/internal/lib/sl"
	"github.com/albaranes-app/delivery-notes/internal/models"
)

// Publisher ставит письмо в очередь исходящей почты.
type Publisher interface {
	Publish(msg models.EmailMessage) error
}

// Handler управляет HTTP-запросами отправки писем.
type Handler struct {
	log       *slog.Logger
	publisher Publisher
	validate  *validator.Validate
}

// New создает новый Handler с переданными логгером и издателем очереди.
func New(log *slog.Logger, publisher Publisher) *Handler {
	return &Handler{
		log:       log,
		publisher: publisher,
		validate:  validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Отправить письмо
// @Description Ставит письмо в очередь исходящей почты.
// @Tags Mail
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.EmailMessage true "Письмо"
// @Success 200 {object} response.Response "Письмо поставлено в очередь"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 422 {object} response.Response "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /mail [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.mail.send"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.EmailMessage
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	if err := h.publisher.Publish(req); err != nil {
		log.Error("failed to enqueue email", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to enqueue email"))
		return
	}

	log.Info("email enqueued", slog.String("to", req.To))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"message": "email enqueued",
	}))
}
