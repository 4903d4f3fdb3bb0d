package deleteuser

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/albaranes-app/delivery-notes/internal/http/middlewarectx"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) Delete(ctx context.Context, userID string, soft bool) error {
	args := m.Called(ctx, userID, soft)
	return args.Error(0)
}

func TestDeleteUserHandler(t *testing.T) {
	userID := "8c2f5c2e-25b3-4f4e-9a54-111111111111"

	tests := []struct {
		name           string
		query          string
		ctxUserID      string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:      "без параметра удаление мягкое",
			query:     "",
			ctxUserID: userID,
			setupMock: func(m *MockService) {
				m.On("Delete", mock.Anything, userID, true).Return(nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"message":"user deleted"`,
		},
		{
			name:      "soft=true удаление мягкое",
			query:     "?soft=true",
			ctxUserID: userID,
			setupMock: func(m *MockService) {
				m.On("Delete", mock.Anything, userID, true).Return(nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"message":"user deleted"`,
		},
		{
			name:      "безвозвратно только при явном soft=false",
			query:     "?soft=false",
			ctxUserID: userID,
			setupMock: func(m *MockService) {
				m.On("Delete", mock.Anything, userID, false).Return(nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"message":"user deleted"`,
		},
		{
			name:           "нет пользователя в контексте",
			query:          "",
			ctxUserID:      "",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `"error":"unauthorized"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{}))
			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodDelete, "/user/deleteuser"+tt.query, nil)
			if tt.ctxUserID != "" {
				ctx := context.WithValue(req.Context(), middlewarectx.UserID, tt.ctxUserID)
				req = req.WithContext(ctx)
			}

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			assert.True(t, strings.Contains(rec.Body.String(), tt.expectedBody),
				"body %s should contain %s", rec.Body.String(), tt.expectedBody)

			mockService.AssertExpectations(t)
		})
	}
}
