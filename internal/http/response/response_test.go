package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/albaranes-app/delivery-notes/internal/models"
)

func TestWriteError_StatusMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{
			name:       "not found",
			err:        models.ErrNotFound,
			wantStatus: http.StatusNotFound,
			wantMsg:    "not found",
		},
		{
			name:       "invalid credentials",
			err:        models.ErrInvalidCredentials,
			wantStatus: http.StatusBadRequest,
			wantMsg:    "incorrect credentials",
		},
		{
			name:       "invalid verification code",
			err:        models.ErrInvalidCode,
			wantStatus: http.StatusBadRequest,
			wantMsg:    "incorrect validation code",
		},
		{
			name:       "attempts exhausted",
			err:        models.ErrAttemptsExhausted,
			wantStatus: http.StatusBadRequest,
			wantMsg:    "verification attempts exhausted",
		},
		{
			name:       "forbidden",
			err:        models.ErrForbidden,
			wantStatus: http.StatusForbidden,
			wantMsg:    "forbidden",
		},
		{
			name:       "email taken",
			err:        models.ErrEmailTaken,
			wantStatus: http.StatusConflict,
			wantMsg:    "email is already in use",
		},
		{
			name:       "duplicate",
			err:        models.ErrDuplicate,
			wantStatus: http.StatusBadRequest,
			wantMsg:    "already exists",
		},
		{
			name:       "already signed",
			err:        models.ErrAlreadySigned,
			wantStatus: http.StatusBadRequest,
			wantMsg:    "already signed",
		},
		{
			name:       "signed immutable",
			err:        models.ErrSignedImmutable,
			wantStatus: http.StatusForbidden,
			wantMsg:    "signed delivery note cannot be deleted",
		},
		{
			name:       "payload format mismatch",
			err:        models.ErrInvalidPayload,
			wantStatus: http.StatusUnprocessableEntity,
			wantMsg:    "payload does not match format",
		},
		{
			name:       "wrapped domain error keeps mapping",
			err:        fmt.Errorf("services.client.Create: %w", models.ErrDuplicate),
			wantStatus: http.StatusBadRequest,
			wantMsg:    "services.client.Create: already exists",
		},
		{
			name:       "unknown error hides details",
			err:        errors.New("pq: connection refused"),
			wantStatus: http.StatusInternalServerError,
			wantMsg:    "internal error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodGet, "/", nil)

			WriteError(w, r, tt.err, "internal error")

			assert.Equal(t, tt.wantStatus, w.Code)

			var resp ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, StatusError, resp.Status)
			assert.Equal(t, tt.wantMsg, resp.Error)
		})
	}
}

func TestStatusOKWithData(t *testing.T) {
	resp := StatusOKWithData(map[string]string{"id": "123"})
	assert.Equal(t, StatusOK, resp.Status)
	assert.Empty(t, resp.Error)
	assert.NotNil(t, resp.Data)
}
