// Package user содержит логику бизнес-уровня для работы с профилем
// пользователя: личные данные, компания, логотип, удаление учётной записи.
package user

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/albaranes-app/delivery-notes/internal/contentstore"
	"github.com/albaranes-app/delivery-notes/internal/models"
)

// UserRepository описывает контракт для работы с пользователями в базе данных.
type UserRepository interface {
	// GetUser возвращает пользователя по ID или models.ErrNotFound.
	GetUser(ctx context.Context, userID string) (*models.User, error)

	// UpdatePersona обновляет личные данные пользователя.
	UpdatePersona(ctx context.Context, userID string, p models.Persona) error

	// UpdateCompany обновляет данные компании пользователя.
	UpdateCompany(ctx context.Context, userID string, c models.Company) error

	// SetUserStatus выставляет статус учётной записи.
	SetUserStatus(ctx context.Context, userID, status string) error

	// DeleteUser удаляет пользователя безвозвратно.
	DeleteUser(ctx context.Context, userID string) error
}

// FileRepository сохраняет записи о выгруженных файлах.
type FileRepository interface {
	CreateStoredFile(ctx context.Context, filename, url string) (*models.StoredFile, error)
}

// Service реализует операции над профилем пользователя.
type Service struct {
	users UserRepository
	files FileRepository
	store contentstore.Uploader
	log   *slog.Logger
}

// New создает новый экземпляр Service.
func New(users UserRepository, files FileRepository, store contentstore.Uploader, log *slog.Logger) *Service {
	return &Service{
		users: users,
		files: files,
		store: store,
		log:   log,
	}
}

// GetProfile возвращает пользователя по ID.
func (s *Service) GetProfile(ctx context.Context, userID string) (*models.User, error) {
	return s.users.GetUser(ctx, userID)
}

// UpdatePersona обновляет личные данные. Пустые поля входа сохраняют
// прежние значения: обновление частичное.
func (s *Service) UpdatePersona(ctx context.Context, userID string, p models.Persona) (*models.User, error) {
	const op = "services.user.UpdatePersona"

	user, err := s.users.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	merged := user.Persona
	if p.Name != "" {
		merged.Name = p.Name
	}
	if p.Surname != "" {
		merged.Surname = p.Surname
	}
	if p.NIF != "" {
		merged.NIF = p.NIF
	}
	if err := s.users.UpdatePersona(ctx, userID, merged); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	user.Persona = merged
	return user, nil
}

// UpdateCompany заменяет данные компании. Для самозанятого название и CIF
// компании берутся из личных данных, а не из входа.
func (s *Service) UpdateCompany(ctx context.Context, userID string, c models.Company) (*models.User, error) {
	const op = "services.user.UpdateCompany"

	user, err := s.users.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.IsAutonomous {
		c.CompanyName = user.Persona.Name + " " + user.Persona.Surname
		c.CIF = user.Persona.NIF
	}
	if err := s.users.UpdateCompany(ctx, userID, c); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	user.Company = c
	return user, nil
}

// UploadLogo выгружает логотип в контентное хранилище и сохраняет запись
// о файле.
func (s *Service) UploadLogo(ctx context.Context, filename string, data []byte) (*models.StoredFile, error) {
	const op = "services.user.UploadLogo"

	_, url, err := s.store.Upload(ctx, data, filename)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	file, err := s.files.CreateStoredFile(ctx, filename, url)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return file, nil
}

// Delete удаляет учётную запись. При soft=true запись остаётся, статус
// переводится в inactive.
func (s *Service) Delete(ctx context.Context, userID string, soft bool) error {
	const op = "services.user.Delete"

	if _, err := s.users.GetUser(ctx, userID); err != nil {
		return err
	}
	if soft {
		if err := s.users.SetUserStatus(ctx, userID, models.StatusInactive); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		return nil
	}
	if err := s.users.DeleteUser(ctx, userID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
