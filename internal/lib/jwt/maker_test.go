package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTMaker_GenerateAndParseToken_ValidCases(t *testing.T) {
	secretKey := "test_secret_key_1234567890"
	tokenTTL := 15 * time.Minute
	maker := NewJWTMaker(secretKey, tokenTTL)

	tests := []struct {
		name      string
		userID    string
		email     string
		companyID string
		role      string
	}{
		{
			name:   "regular user without company",
			userID: "8c2f5c2e-25b3-4f4e-9a54-111111111111",
			email:  "user@example.com",
			role:   "user",
		},
		{
			name:      "user with company",
			userID:    "8c2f5c2e-25b3-4f4e-9a54-222222222222",
			email:     "worker@company.com",
			companyID: "8c2f5c2e-25b3-4f4e-9a54-333333333333",
			role:      "user",
		},
		{
			name:   "guest role",
			userID: "8c2f5c2e-25b3-4f4e-9a54-444444444444",
			email:  "guest@example.com",
			role:   "guest",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := maker.GenerateToken(tt.userID, tt.email, tt.companyID, tt.role)
			require.NoError(t, err)
			assert.NotEmpty(t, token)

			claims, err := maker.ParseToken(token)
			require.NoError(t, err)

			assert.Equal(t, tt.userID, claims.UserID)
			assert.Equal(t, tt.email, claims.Email)
			assert.Equal(t, tt.companyID, claims.CompanyID)
			assert.Equal(t, tt.role, claims.Role)
			assert.WithinDuration(t, time.Now(), claims.IssuedAt.Time, time.Second)
			assert.WithinDuration(t, time.Now().Add(tokenTTL), claims.ExpiresAt.Time, time.Second)
		})
	}
}

func TestJWTMaker_ParseToken_InvalidTokens(t *testing.T) {
	maker := NewJWTMaker("test_secret_key_1234567890", 15*time.Minute)

	tests := []struct {
		name  string
		token string
	}{
		{
			name:  "empty token",
			token: "",
		},
		{
			name:  "malformed token",
			token: "invalid.token.here",
		},
		{
			name: "token signed with another key",
			token: func() string {
				other := NewJWTMaker("completely_different_key", 15*time.Minute)
				tok, err := other.GenerateToken("id", "user@example.com", "", "user")
				require.NoError(t, err)
				return tok
			}(),
		},
		{
			name: "expired token",
			token: func() string {
				expired := NewJWTMaker("test_secret_key_1234567890", -time.Minute)
				tok, err := expired.GenerateToken("id", "user@example.com", "", "user")
				require.NoError(t, err)
				return tok
			}(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := maker.ParseToken(tt.token)
			require.Error(t, err)
			assert.Nil(t, claims)
		})
	}
}
