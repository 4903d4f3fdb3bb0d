package auth

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/albaranes-app/delivery-notes/internal/lib/jwt"
	"github.com/albaranes-app/delivery-notes/internal/lib/password"
	"github.com/albaranes-app/delivery-notes/internal/models"
)

// MockUserRepository реализует интерфейс auth.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) RegisterUser(ctx context.Context, user models.User) (string, error) {
	args := m.Called(ctx, user)
	return args.String(0), args.Error(1)
}

func (m *MockUserRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if res := args.Get(0); res != nil {
		return res.(*models.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserRepository) GetUser(ctx context.Context, userID string) (*models.User, error) {
	args := m.Called(ctx, userID)
	if res := args.Get(0); res != nil {
		return res.(*models.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserRepository) MarkEmailVerified(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockUserRepository) DecrementVerificationAttempts(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateCompany(ctx context.Context, userID string, c models.Company) error {
	args := m.Called(ctx, userID, c)
	return args.Error(0)
}

// MockMailPublisher реализует интерфейс auth.MailPublisher
type MockMailPublisher struct {
	mock.Mock
}

func (m *MockMailPublisher) Publish(msg models.EmailMessage) error {
	args := m.Called(msg)
	return args.Error(0)
}

func newTestService(users *MockUserRepository, mail *MockMailPublisher) *AuthService {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	maker := jwt.NewJWTMaker("test_secret_key_1234567890", 15*time.Minute)
	return NewAuthService(users, maker, mail, "noreply@example.com", logger)
}

func TestAuthService_Register(t *testing.T) {
	const email = "new@example.com"

	t.Run("успешная регистрация с письмом", func(t *testing.T) {
		users := new(MockUserRepository)
		mail := new(MockMailPublisher)

		users.On("GetUserByEmail", mock.Anything, email).Return(nil, models.ErrNotFound)
		users.On("RegisterUser", mock.Anything, mock.AnythingOfType("models.User")).
			Return("8c2f5c2e-25b3-4f4e-9a54-111111111111", nil)
		mail.On("Publish", mock.MatchedBy(func(msg models.EmailMessage) bool {
			return msg.To == email && msg.Subject == "Verify your email"
		})).Return(nil)

		service := newTestService(users, mail)

		token, user, err := service.Register(context.Background(), email, "supersecret")
		require.NoError(t, err)
		assert.NotEmpty(t, token)
		assert.Equal(t, "8c2f5c2e-25b3-4f4e-9a54-111111111111", user.ID)
		assert.Equal(t, models.StatusPending, user.Status)
		assert.Equal(t, models.RoleUser, user.Role)
		assert.Equal(t, 3, user.VerificationAttempts)
		assert.Len(t, user.VerificationCode, 6)

		// пароль сохраняется только как bcrypt-хэш
		assert.NoError(t, password.CompareHash(user.PasswordHash, "supersecret"))

		users.AssertExpectations(t)
		mail.AssertExpectations(t)
	})

	t.Run("email уже занят", func(t *testing.T) {
		users := new(MockUserRepository)
		mail := new(MockMailPublisher)

		users.On("GetUserByEmail", mock.Anything, email).
			Return(&models.User{ID: "existing", Email: email}, nil)

		service := newTestService(users, mail)

		_, _, err := service.Register(context.Background(), email, "supersecret")
		assert.ErrorIs(t, err, models.ErrEmailTaken)

		users.AssertExpectations(t)
		mail.AssertNotCalled(t, "Publish", mock.Anything)
	})

	t.Run("гонка регистраций упирается в уникальный индекс", func(t *testing.T) {
		users := new(MockUserRepository)
		mail := new(MockMailPublisher)

		// конкурент успел вставить между проверкой и INSERT
		users.On("GetUserByEmail", mock.Anything, email).Return(nil, models.ErrNotFound)
		users.On("RegisterUser", mock.Anything, mock.AnythingOfType("models.User")).
			Return("", fmt.Errorf("storage.RegisterUser: %w", models.ErrEmailTaken))

		service := newTestService(users, mail)

		_, _, err := service.Register(context.Background(), email, "supersecret")
		assert.ErrorIs(t, err, models.ErrEmailTaken)

		users.AssertExpectations(t)
		mail.AssertNotCalled(t, "Publish", mock.Anything)
	})

	t.Run("сбой очереди почты не отменяет регистрацию", func(t *testing.T) {
		users := new(MockUserRepository)
		mail := new(MockMailPublisher)

		users.On("GetUserByEmail", mock.Anything, email).Return(nil, models.ErrNotFound)
		users.On("RegisterUser", mock.Anything, mock.AnythingOfType("models.User")).
			Return("8c2f5c2e-25b3-4f4e-9a54-111111111111", nil)
		mail.On("Publish", mock.AnythingOfType("models.EmailMessage")).
			Return(assert.AnError)

		service := newTestService(users, mail)

		token, user, err := service.Register(context.Background(), email, "supersecret")
		require.NoError(t, err)
		assert.NotEmpty(t, token)
		assert.NotNil(t, user)
	})
}

func TestAuthService_Login(t *testing.T) {
	const email = "user@example.com"

	hashed, err := password.GetHash("supersecret")
	require.NoError(t, err)

	stored := &models.User{
		ID:           "8c2f5c2e-25b3-4f4e-9a54-111111111111",
		Email:        email,
		PasswordHash: hashed,
		Status:       models.StatusVerified,
		Role:         models.RoleUser,
	}

	t.Run("успешный вход", func(t *testing.T) {
		users := new(MockUserRepository)
		users.On("GetUserByEmail", mock.Anything, email).Return(stored, nil)

		service := newTestService(users, new(MockMailPublisher))

		token, user, err := service.Login(context.Background(), email, "supersecret")
		require.NoError(t, err)
		assert.NotEmpty(t, token)
		assert.Equal(t, stored.ID, user.ID)
	})

	t.Run("неверный пароль", func(t *testing.T) {
		users := new(MockUserRepository)
		users.On("GetUserByEmail", mock.Anything, email).Return(stored, nil)

		service := newTestService(users, new(MockMailPublisher))

		_, _, err := service.Login(context.Background(), email, "wrongpass")
		assert.ErrorIs(t, err, models.ErrInvalidCredentials)
	})

	t.Run("неизвестный email неотличим от неверного пароля", func(t *testing.T) {
		users := new(MockUserRepository)
		users.On("GetUserByEmail", mock.Anything, "nobody@example.com").
			Return(nil, models.ErrNotFound)

		service := newTestService(users, new(MockMailPublisher))

		_, _, err := service.Login(context.Background(), "nobody@example.com", "supersecret")
		assert.ErrorIs(t, err, models.ErrInvalidCredentials)
	})
}

func TestAuthService_ValidateEmail(t *testing.T) {
	const userID = "8c2f5c2e-25b3-4f4e-9a54-111111111111"

	t.Run("успешное подтверждение", func(t *testing.T) {
		users := new(MockUserRepository)
		users.On("GetUser", mock.Anything, userID).Return(&models.User{
			ID:                   userID,
			Status:               models.StatusPending,
			VerificationCode:     "482913",
			VerificationAttempts: 3,
		}, nil)
		users.On("MarkEmailVerified", mock.Anything, userID).Return(nil)

		service := newTestService(users, new(MockMailPublisher))

		require.NoError(t, service.ValidateEmail(context.Background(), userID, "482913"))
		users.AssertExpectations(t)
	})

	t.Run("неверный код тратит попытку", func(t *testing.T) {
		users := new(MockUserRepository)
		users.On("GetUser", mock.Anything, userID).Return(&models.User{
			ID:                   userID,
			Status:               models.StatusPending,
			VerificationCode:     "482913",
			VerificationAttempts: 2,
		}, nil)
		users.On("DecrementVerificationAttempts", mock.Anything, userID).Return(nil)

		service := newTestService(users, new(MockMailPublisher))

		err := service.ValidateEmail(context.Background(), userID, "000000")
		assert.ErrorIs(t, err, models.ErrInvalidCode)
		users.AssertExpectations(t)
	})

	t.Run("попытки исчерпаны", func(t *testing.T) {
		users := new(MockUserRepository)
		users.On("GetUser", mock.Anything, userID).Return(&models.User{
			ID:                   userID,
			Status:               models.StatusPending,
			VerificationCode:     "482913",
			VerificationAttempts: 0,
		}, nil)

		service := newTestService(users, new(MockMailPublisher))

		err := service.ValidateEmail(context.Background(), userID, "482913")
		assert.ErrorIs(t, err, models.ErrAttemptsExhausted)
		users.AssertNotCalled(t, "MarkEmailVerified", mock.Anything, mock.Anything)
	})

	t.Run("повторное подтверждение идемпотентно", func(t *testing.T) {
		users := new(MockUserRepository)
		users.On("GetUser", mock.Anything, userID).Return(&models.User{
			ID:     userID,
			Status: models.StatusVerified,
		}, nil)

		service := newTestService(users, new(MockMailPublisher))

		require.NoError(t, service.ValidateEmail(context.Background(), userID, "000000"))
		users.AssertNotCalled(t, "DecrementVerificationAttempts", mock.Anything, mock.Anything)
	})
}

func TestAuthService_Invite(t *testing.T) {
	const inviterID = "8c2f5c2e-25b3-4f4e-9a54-111111111111"

	inviter := &models.User{
		ID:        inviterID,
		Email:     "boss@company.com",
		CompanyID: "8c2f5c2e-25b3-4f4e-9a54-333333333333",
		Company:   models.Company{CompanyName: "Construcciones Pérez SL"},
	}

	t.Run("приглашённый наследует компанию приглашающего", func(t *testing.T) {
		users := new(MockUserRepository)
		mail := new(MockMailPublisher)

		users.On("GetUser", mock.Anything, inviterID).Return(inviter, nil)
		users.On("GetUserByEmail", mock.Anything, "worker@company.com").
			Return(nil, models.ErrNotFound)
		users.On("RegisterUser", mock.Anything, mock.AnythingOfType("models.User")).
			Return("8c2f5c2e-25b3-4f4e-9a54-222222222222", nil)
		users.On("UpdateCompany", mock.Anything, "8c2f5c2e-25b3-4f4e-9a54-222222222222", inviter.Company).
			Return(nil)
		mail.On("Publish", mock.MatchedBy(func(msg models.EmailMessage) bool {
			return msg.To == "worker@company.com" && msg.Subject == "You have been invited"
		})).Return(nil)

		service := newTestService(users, mail)

		invited, err := service.Invite(context.Background(), inviterID, "worker@company.com")
		require.NoError(t, err)
		assert.Equal(t, inviter.CompanyID, invited.CompanyID)
		assert.Equal(t, inviter.Company, invited.Company)
		assert.Equal(t, models.StatusPending, invited.Status)
		assert.NoError(t, password.CompareHash(invited.PasswordHash, invitedPassword))

		users.AssertExpectations(t)
		mail.AssertExpectations(t)
	})

	t.Run("email приглашённого уже занят", func(t *testing.T) {
		users := new(MockUserRepository)
		users.On("GetUser", mock.Anything, inviterID).Return(inviter, nil)
		users.On("GetUserByEmail", mock.Anything, "worker@company.com").
			Return(&models.User{ID: "existing"}, nil)

		service := newTestService(users, new(MockMailPublisher))

		_, err := service.Invite(context.Background(), inviterID, "worker@company.com")
		assert.ErrorIs(t, err, models.ErrEmailTaken)
	})
}
