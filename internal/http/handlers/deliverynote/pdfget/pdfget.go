// Package pdfget реализует HTTP-обработчик скачивания PDF накладной.
// Документ отдаётся потоком из контентного хранилища владельцу накладной
// или гостевой роли.
package pdfget

import (
	"context"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/albaranes-app/delivery-notes/internal/http/middlewarectx"
	"github.com/albaranes-app/delivery-notes/internal/http/response"
	"github.com/albaranes-app/delivery-notes/internal/lib/sl"
)

// Service описывает интерфейс бизнес-логики чтения PDF накладной.
type Service interface {
	StreamPDF(ctx context.Context, id, callerID, callerRole string) (io.ReadCloser, string, error)
}

// Handler управляет HTTP-запросами скачивания PDF.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Скачать PDF накладной
// @Tags DeliveryNotes
// @Produce application/pdf
// @Security BearerAuth
// @Param id path string true "ID накладной"
// @Success 200 {file} binary "PDF-документ"
// @Failure 403 {object} response.ErrorResponse "Нет доступа к накладной"
// @Failure 404 {object} response.ErrorResponse "Накладная не найдена или не подписана"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /deliverynote/pdf/{id} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.deliverynote.pdfget"

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

	callerID, ok := r.Context().Value(middlewarectx.UserID).(string)
	if !ok || callerID == "" {
		log.Error("user id not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}
	callerRole, _ := r.Context().Value(middlewarectx.Role).(string)

	body, contentType, err := h.service.StreamPDF(r.Context(), id, callerID, callerRole)
	if err != nil {
		log.Error("failed to stream pdf", sl.Err(err))
		response.WriteError(w, r, err, "failed to stream pdf")
		return
	}
	defer func() {
		_ = body.Close()
	}()

	w.Header().Set("Content-Type", contentType)
	if _, err := io.Copy(w, body); err != nil {
		log.Error("failed to write pdf to response", sl.Err(err))
	}
}
