// Package forgotpassword реализует HTTP-обработчик восстановления пароля.
// На почту уходит ссылка с токеном восстановления.
package forgotpassword

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/albaranes-app/delivery-notes/internal/http/response"
	"github.com/albaranes-app/delivery-notes/internal/lib/sl"
)

// Request - email учётной записи для восстановления.
type Request struct {
	Email string `json:"email" validate:"required,email"`
}

// Service описывает интерфейс бизнес-логики восстановления пароля.
type Service interface {
	ForgotPassword(ctx context.Context, email, resetBaseURL string) error
}

// Handler управляет HTTP-запросами восстановления пароля.
type Handler struct {
	log          *slog.Logger
	service      Service
	resetBaseURL string
	validate     *validator.Validate
}

// New создает новый Handler. resetBaseURL - база ссылки восстановления в письме.
func New(log *slog.Logger, service Service, resetBaseURL string) *Handler {
	return &Handler{
		log:          log,
		service:      service,
		resetBaseURL: resetBaseURL,
		validate:     validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Восстановить пароль
// @Description Ставит в очередь письмо со ссылкой восстановления пароля.
// @Tags Users
// @Accept json
// @Produce json
// @Param request body Request true "Email учётной записи"
// @Success 200 {object} response.Response "Письмо поставлено в очередь"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 404 {object} response.ErrorResponse "Пользователь не найден"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /user/forgotpassword [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.user.forgotpassword"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req Request
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

	if err := h.service.ForgotPassword(r.Context(), req.Email, h.resetBaseURL); err != nil {
		log.Error("failed to start password recovery", sl.Err(err))
		response.WriteError(w, r, err, "failed to start password recovery")
		return
	}

	log.Info("password recovery email enqueued", slog.String("email", req.Email))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"message": "recovery email sent",
	}))
}
