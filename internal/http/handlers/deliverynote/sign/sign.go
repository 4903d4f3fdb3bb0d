// Package sign реализует HTTP-обработчик подписания накладной.
//
// Handler принимает multipart-форму с изображением подписи. Сервис выгружает
// подпись, рендерит PDF и атомарно снимает pending: при конкурирующих
// запросах побеждает ровно один, остальные получают конфликт.
package sign

import (
	"context"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/albaranes-app/delivery-notes/internal/http/response"
	"github.com/albaranes-app/delivery-notes/internal/lib/sl"
	"github.com/albaranes-app/delivery-notes/internal/models"
)

// Service описывает интерфейс бизнес-логики подписания накладной.
type Service interface {
	Sign(ctx context.Context, id string, signature []byte, filename string) (*models.DeliveryNote, error)
}

// Handler управляет HTTP-запросами подписания накладной.
type Handler struct {
	log      *slog.Logger
	service  Service
	maxBytes int64
}

// New создает новый Handler. maxBytes ограничивает размер изображения подписи.
func New(log *slog.Logger, service Service, maxBytes int64) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		maxBytes: maxBytes,
	}
}

// ServeHTTP godoc
// @Summary Подписать накладную
// @Description Принимает multipart-форму с полем signature (изображение подписи), рендерит PDF и помечает накладную подписанной.
// @Tags DeliveryNotes
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID накладной"
// @Param signature formData file true "Изображение подписи"
// @Success 200 {object} response.Response "Подписанная накладная со ссылками"
// @Failure 400 {object} response.ErrorResponse "Некорректная форма"
// @Failure 404 {object} response.ErrorResponse "Накладная не найдена"
// @Failure 400 {object} response.ErrorResponse "Накладная уже подписана"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /deliverynote/sign/{id} [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.deliverynote.sign"

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

	r.Body = http.MaxBytesReader(w, r.Body, h.maxBytes)
	if err := r.ParseMultipartForm(h.maxBytes); err != nil {
		log.Error("failed to parse multipart form", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid multipart form"))
		return
	}

	file, header, err := r.FormFile("signature")
	if err != nil {
		log.Error("signature file is missing in form", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("signature file is required"))
		return
	}
	defer func() {
		_ = file.Close()
	}()

	signature, err := io.ReadAll(file)
	if err != nil {
		log.Error("failed to read file", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("failed to read file"))
		return
	}

	note, err := h.service.Sign(r.Context(), id, signature, header.Filename)
	if err != nil {
		log.Error("failed to sign delivery note", sl.Err(err))
		response.WriteError(w, r, err, "failed to sign delivery note")
		return
	}

	log.Info("delivery note signed", slog.String("id", note.ID))
	render.JSON(w, r, response.StatusOKWithData(note))
}
