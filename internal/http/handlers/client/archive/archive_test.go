package archive

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/albaranes-app/delivery-notes/internal/models"
)

// MockService реализует интерфейс archive.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) SetArchived(ctx context.Context, id string, archived bool) error {
	args := m.Called(ctx, id, archived)
	return args.Error(0)
}

func TestArchiveClientHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	const clientID = "8c2f5c2e-25b3-4f4e-9a54-222222222222"

	tests := []struct {
		name           string
		id             string
		archived       bool
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:     "успешное архивирование",
			id:       clientID,
			archived: true,
			setupMock: func(m *MockService) {
				m.On("SetArchived", mock.Anything, clientID, true).Return(nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"archived":true`,
		},
		{
			name:     "успешное восстановление",
			id:       clientID,
			archived: false,
			setupMock: func(m *MockService) {
				m.On("SetArchived", mock.Anything, clientID, false).Return(nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"archived":false`,
		},
		{
			name:     "клиент не найден",
			id:       clientID,
			archived: true,
			setupMock: func(m *MockService) {
				m.On("SetArchived", mock.Anything, clientID, true).
					Return(models.ErrNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `"error":"not found"`,
		},
		{
			name:           "нет id в URL",
			id:             "",
			archived:       true,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"error":"missing id in url"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService, tt.archived)

			req := httptest.NewRequest(http.MethodPut, "/client/archive/"+tt.id, nil)
			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("id", tt.id)
			req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.True(t, strings.Contains(w.Body.String(), tt.expectedBody),
				"response body should contain %s, got %s", tt.expectedBody, w.Body.String())

			mockService.AssertExpectations(t)
		})
	}
}
