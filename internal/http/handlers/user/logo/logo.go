// Package logo реализует HTTP-обработчик выгрузки логотипа компании.
//
// Handler принимает multipart-форму с файлом, выгружает его в контентное
// хранилище и возвращает запись о файле с публичной ссылкой.
package logo

import (
	"context"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/albaranes-app/delivery-notes/internal/http/response"
	"github.com/albaranes-app/delivery-notes/internal/lib/sl"
	"github.com/albaranes-app/delivery-notes/internal/models"
)

// Service описывает интерфейс бизнес-логики выгрузки логотипа.
type Service interface {
	UploadLogo(ctx context.Context, filename string, data []byte) (*models.StoredFile, error)
}

// Handler управляет HTTP-запросами выгрузки логотипа.
type Handler struct {
	log      *slog.Logger
	service  Service
	maxBytes int64
}

// New создает новый Handler. maxBytes ограничивает размер принимаемого файла.
func New(log *slog.Logger, service Service, maxBytes int64) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		maxBytes: maxBytes,
	}
}

// ServeHTTP godoc
// @Summary Выгрузить логотип
// @Description Принимает multipart-форму с полем logo и возвращает ссылку на логотип.
// @Tags Users
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param logo formData file true "Файл логотипа"
// @Success 200 {object} response.Response "Запись о файле"
// @Failure 400 {object} response.ErrorResponse "Некорректная форма или слишком большой файл"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /user/logo [patch]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.user.logo"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	r.Body = http.MaxBytesReader(w, r.Body, h.maxBytes)
	if err := r.ParseMultipartForm(h.maxBytes); err != nil {
		log.Error("failed to parse multipart form", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid multipart form"))
		return
	}

	file, header, err := r.FormFile("logo")
	if err != nil {
		log.Error("logo file is missing in form", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("logo file is required"))
		return
	}
	defer func() {
		_ = file.Close()
	}()

	data, err := io.ReadAll(file)
	if err != nil {
		log.Error("failed to read file", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("failed to read file"))
		return
	}

	stored, err := h.service.UploadLogo(r.Context(), header.Filename, data)
	if err != nil {
		log.Error("failed to upload logo", sl.Err(err))
		response.WriteError(w, r, err, "failed to upload logo")
		return
	}

	log.Info("logo uploaded", slog.String("url", stored.URL))
	render.JSON(w, r, response.StatusOKWithData(stored))
}
