// Package auth содержит логику бизнес-уровня для регистрации, входа,
// подтверждения почты и приглашений.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/albaranes-app/delivery-notes/internal/lib/jwt"
	"github.com/albaranes-app/delivery-notes/internal/lib/password"
	"github.com/albaranes-app/delivery-notes/internal/lib/sl"
	"github.com/albaranes-app/delivery-notes/internal/lib/vercode"
	"github.com/albaranes-app/delivery-notes/internal/models"
)

// Пресеты приглашённой учётной записи. Приглашённый входит с временным
// паролем и ролью-заглушкой, пока не завершит собственную регистрацию.
const (
	invitedRole     = "Jhon Doe"
	invitedPassword = "user1234"
)

// UserRepository описывает контракт для работы с пользователями в базе данных.
type UserRepository interface {
	// RegisterUser сохраняет нового пользователя и возвращает его ID.
	RegisterUser(ctx context.Context, user models.User) (string, error)

	// GetUserByEmail возвращает пользователя по email или models.ErrNotFound.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// GetUser возвращает пользователя по ID или models.ErrNotFound.
	GetUser(ctx context.Context, userID string) (*models.User, error)

	// MarkEmailVerified переводит пользователя в verified.
	MarkEmailVerified(ctx context.Context, userID string) error

	// DecrementVerificationAttempts уменьшает счётчик попыток, не ниже нуля.
	DecrementVerificationAttempts(ctx context.Context, userID string) error

	// UpdateCompany обновляет данные компании пользователя.
	UpdateCompany(ctx context.Context, userID string, c models.Company) error
}

// MailPublisher ставит письмо в очередь исходящей почты.
type MailPublisher interface {
	Publish(msg models.EmailMessage) error
}

// AuthService отвечает за регистрацию, авторизацию и подтверждение почты.
type AuthService struct {
	users    UserRepository
	jwtMaker jwt.Maker
	mail     MailPublisher
	mailFrom string
	log      *slog.Logger
}

// NewAuthService создает новый экземпляр AuthService.
func NewAuthService(users UserRepository, jwtMaker jwt.Maker, mail MailPublisher, mailFrom string, log *slog.Logger) *AuthService {
	return &AuthService{
		users:    users,
		jwtMaker: jwtMaker,
		mail:     mail,
		mailFrom: mailFrom,
		log:      log,
	}
}

// Register создает нового пользователя со статусом pending, ставит письмо
// с кодом подтверждения в очередь и возвращает токен вместе с пользователем.
func (s *AuthService) Register(ctx context.Context, email, rawPassword string) (string, *models.User, error) {
	const op = "services.auth.Register"

	_, err := s.users.GetUserByEmail(ctx, email)
	if err == nil {
		return "", nil, models.ErrEmailTaken
	}
	if !errors.Is(err, models.ErrNotFound) {
		return "", nil, fmt.Errorf("%s: %w", op, err)
	}

	hashed, err := password.GetHash(rawPassword)
	if err != nil {
		return "", nil, fmt.Errorf("%s: %w", op, err)
	}
	code, err := vercode.New()
	if err != nil {
		return "", nil, fmt.Errorf("%s: %w", op, err)
	}

	user := models.User{
		Email:                email,
		PasswordHash:         hashed,
		Status:               models.StatusPending,
		Role:                 models.RoleUser, // дефолтная роль при регистрации
		VerificationCode:     code,
		VerificationAttempts: 3,
	}
	id, err := s.users.RegisterUser(ctx, user)
	if err != nil {
		return "", nil, fmt.Errorf("%s: %w", op, err)
	}
	user.ID = id

	// Доставка письма - отложенная задача, её сбой не отменяет регистрацию.
	if err := s.mail.Publish(models.EmailMessage{
		From:    s.mailFrom,
		To:      email,
		Subject: "Verify your email",
		Text:    fmt.Sprintf("Your verification code is %s", code),
	}); err != nil {
		s.log.Warn("failed to enqueue verification email", sl.Err(err))
	}

	token, err := s.jwtMaker.GenerateToken(id, email, "", user.Role)
	if err != nil {
		return "", nil, fmt.Errorf("%s: %w", op, err)
	}
	return token, &user, nil
}

// Login проверяет пароль пользователя и генерирует JWT.
// Неизвестный email и неверный пароль неразличимы для вызывающего.
func (s *AuthService) Login(ctx context.Context, email, rawPassword string) (string, *models.User, error) {
	const op = "services.auth.Login"

	user, err := s.users.GetUserByEmail(ctx, email)
	if errors.Is(err, models.ErrNotFound) {
		return "", nil, models.ErrInvalidCredentials
	}
	if err != nil {
		return "", nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := password.CompareHash(user.PasswordHash, rawPassword); err != nil {
		return "", nil, models.ErrInvalidCredentials
	}

	token, err := s.jwtMaker.GenerateToken(user.ID, user.Email, user.CompanyID, user.Role)
	if err != nil {
		return "", nil, fmt.Errorf("%s: %w", op, err)
	}
	return token, user, nil
}

// ValidateEmail сверяет код подтверждения. Несовпадение тратит одну попытку,
// после исчерпания попыток подтверждение блокируется.
func (s *AuthService) ValidateEmail(ctx context.Context, userID, code string) error {
	const op = "services.auth.ValidateEmail"

	user, err := s.users.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return models.ErrNotFound
		}
		return fmt.Errorf("%s: %w", op, err)
	}
	if user.Status == models.StatusVerified {
		return nil
	}
	if user.VerificationAttempts <= 0 {
		return models.ErrAttemptsExhausted
	}
	if user.VerificationCode != code {
		if err := s.users.DecrementVerificationAttempts(ctx, userID); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		return models.ErrInvalidCode
	}
	if err := s.users.MarkEmailVerified(ctx, userID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// ForgotPassword выпускает токен восстановления и ставит письмо со ссылкой
// в очередь.
func (s *AuthService) ForgotPassword(ctx context.Context, email, resetBaseURL string) error {
	const op = "services.auth.ForgotPassword"

	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return models.ErrNotFound
		}
		return fmt.Errorf("%s: %w", op, err)
	}

	token, err := s.jwtMaker.GenerateToken(user.ID, user.Email, user.CompanyID, user.Role)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := s.mail.Publish(models.EmailMessage{
		From:    s.mailFrom,
		To:      email,
		Subject: "Password recovery",
		Text:    fmt.Sprintf("Follow the link to reset your password: %s/%s", resetBaseURL, token),
	}); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Invite создает учётную запись с временным паролем, копирует компанию
// приглашающего и отправляет приглашение на почту.
func (s *AuthService) Invite(ctx context.Context, inviterID, email string) (*models.User, error) {
	const op = "services.auth.Invite"

	inviter, err := s.users.GetUser(ctx, inviterID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	_, err = s.users.GetUserByEmail(ctx, email)
	if err == nil {
		return nil, models.ErrEmailTaken
	}
	if !errors.Is(err, models.ErrNotFound) {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	hashed, err := password.GetHash(invitedPassword)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	invited := models.User{
		Email:                email,
		PasswordHash:         hashed,
		Status:               models.StatusPending,
		Role:                 invitedRole,
		VerificationAttempts: 3,
		CompanyID:            inviter.CompanyID,
		Company:              inviter.Company,
	}
	id, err := s.users.RegisterUser(ctx, invited)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	invited.ID = id
	if err := s.users.UpdateCompany(ctx, id, inviter.Company); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := s.mail.Publish(models.EmailMessage{
		From:    s.mailFrom,
		To:      email,
		Subject: "You have been invited",
		Text: fmt.Sprintf("You have been invited to join %s. Log in with the temporary password %q.",
			inviter.Company.CompanyName, invitedPassword),
	}); err != nil {
		s.log.Warn("failed to enqueue invitation email", sl.Err(err))
	}
	return &invited, nil
}
