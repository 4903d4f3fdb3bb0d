package create

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
	"github.com/albaranes-app/delivery-notes/internal/models"
)

// MockService реализует интерфейс create.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Create(ctx context.Context, userID string, in models.DeliveryNoteInput) (*models.DeliveryNote, error) {
	args := m.Called(ctx, userID, in)
	if res := args.Get(0); res != nil {
		return res.(*models.DeliveryNote), args.Error(1)
	}
	return nil, args.Error(1)
}

func TestCreateDeliveryNoteHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	const (
		userID    = "8c2f5c2e-25b3-4f4e-9a54-111111111111"
		clientID  = "8c2f5c2e-25b3-4f4e-9a54-222222222222"
		projectID = "8c2f5c2e-25b3-4f4e-9a54-333333333333"
	)

	materialBody := `{"clientId":"` + clientID + `","projectId":"` + projectID + `","format":"material","material":["Cemento 25kg x10"]}`

	tests := []struct {
		name           string
		body           string
		ctxUserID      string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:      "успешное создание накладной",
			body:      materialBody,
			ctxUserID: userID,
			setupMock: func(m *MockService) {
				note := &models.DeliveryNote{
					ID:        "8c2f5c2e-25b3-4f4e-9a54-444444444444",
					UserID:    userID,
					ClientID:  clientID,
					ProjectID: projectID,
					Format:    models.FormatMaterial,
					Materials: []string{"Cemento 25kg x10"},
					Pending:   true,
				}
				m.On("Create", mock.Anything, userID, mock.AnythingOfType("models.DeliveryNoteInput")).
					Return(note, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"pending":true`,
		},
		{
			name:      "payload не соответствует формату",
			body:      `{"clientId":"` + clientID + `","projectId":"` + projectID + `","format":"hours","material":["Cemento"]}`,
			ctxUserID: userID,
			setupMock: func(m *MockService) {
				m.On("Create", mock.Anything, userID, mock.AnythingOfType("models.DeliveryNoteInput")).
					Return(nil, models.ErrInvalidPayload)
			},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `"error":"payload does not match format"`,
		},
		{
			name:      "проект не найден",
			body:      materialBody,
			ctxUserID: userID,
			setupMock: func(m *MockService) {
				m.On("Create", mock.Anything, userID, mock.AnythingOfType("models.DeliveryNoteInput")).
					Return(nil, models.ErrNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `"error":"not found"`,
		},
		{
			name:           "неподдерживаемый формат",
			body:           `{"clientId":"` + clientID + `","projectId":"` + projectID + `","format":"weekly"}`,
			ctxUserID:      userID,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `field Format has an unsupported value`,
		},
		{
			name:           "clientId не uuid",
			body:           `{"clientId":"123","projectId":"` + projectID + `","format":"material","material":["Cemento"]}`,
			ctxUserID:      userID,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `field ClientID can contain only uuid`,
		},
		{
			name:           "нет пользователя в контексте",
			body:           materialBody,
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

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodPost, "/deliverynote", strings.NewReader(tt.body))
			if tt.ctxUserID != "" {
				req = req.WithContext(context.WithValue(req.Context(), middlewarectx.UserID, tt.ctxUserID))
			}
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.True(t, strings.Contains(w.Body.String(), tt.expectedBody),
				"response body should contain %s, got %s", tt.expectedBody, w.Body.String())

			mockService.AssertExpectations(t)
		})
	}
}
