package deliverynotes

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"

	"github.com/albaranes-app/delivery-notes/internal/config"
	"github.com/albaranes-app/delivery-notes/internal/lib/jwt"
)

// Запрос без токена к зарегистрированному маршруту даёт 401 от middleware,
// к незарегистрированному - 404, к чужому методу - 405. Этого достаточно,
// чтобы зафиксировать поверхность маршрутов без поднятия сервисов.
func TestRegisterRoutes_UserSurface(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
	maker := jwt.NewJWTMaker("test_secret_key_1234567890", 15*time.Minute)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, &config.Config{}, maker, &Services{})

	tests := []struct {
		name       string
		method     string
		path       string
		wantStatus int
	}{
		{"validatemail PUT", http.MethodPut, "/api/user/validatemail", http.StatusUnauthorized},
		{"personadata PUT", http.MethodPut, "/api/user/personadata", http.StatusUnauthorized},
		{"companydata PATCH", http.MethodPatch, "/api/user/companydata", http.StatusUnauthorized},
		{"logo PATCH", http.MethodPatch, "/api/user/logo", http.StatusUnauthorized},
		{"getuser GET", http.MethodGet, "/api/user/getuser", http.StatusUnauthorized},
		{"deleteuser DELETE", http.MethodDelete, "/api/user/deleteuser", http.StatusUnauthorized},
		{"invite POST", http.MethodPost, "/api/user/invite", http.StatusUnauthorized},
		{"validatemail не POST", http.MethodPost, "/api/user/validatemail", http.StatusMethodNotAllowed},
		{"logo не POST", http.MethodPost, "/api/user/logo", http.StatusMethodNotAllowed},
		{"короткого пути getuser нет", http.MethodGet, "/api/user", http.StatusNotFound},
		{"register открыт", http.MethodPost, "/api/user/register", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
