package remove

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

// MockService реализует интерфейс remove.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func TestRemoveDeliveryNoteHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	const noteID = "8c2f5c2e-25b3-4f4e-9a54-444444444444"

	tests := []struct {
		name           string
		id             string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "успешное удаление",
			id:   noteID,
			setupMock: func(m *MockService) {
				m.On("Delete", mock.Anything, noteID).Return(nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"message":"delivery note deleted"`,
		},
		{
			name: "подписанную накладную удалить нельзя",
			id:   noteID,
			setupMock: func(m *MockService) {
				m.On("Delete", mock.Anything, noteID).
					Return(models.ErrSignedImmutable)
			},
			expectedStatus: http.StatusForbidden,
			expectedBody:   `"error":"signed delivery note cannot be deleted"`,
		},
		{
			name: "накладная не найдена",
			id:   noteID,
			setupMock: func(m *MockService) {
				m.On("Delete", mock.Anything, noteID).
					Return(models.ErrNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `"error":"not found"`,
		},
		{
			name:           "нет id в URL",
			id:             "",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"error":"missing id in url"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodDelete, "/deliverynote/"+tt.id, nil)
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
