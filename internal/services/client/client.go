// Package client содержит бизнес-логику для управления клиентами и их
// кеширования.
package client

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/albaranes-app/delivery-notes/internal/lib/sl"
	"github.com/albaranes-app/delivery-notes/internal/models"
)

const cacheTTL = 5 * time.Minute

// ClientRepository определяет методы для работы с клиентами в хранилище.
type ClientRepository interface {
	// CreateClient сохраняет нового клиента и возвращает его ID.
	CreateClient(ctx context.Context, c models.Client) (string, error)
	// ClientExistsLive проверяет наличие неархивного клиента (name, owner).
	ClientExistsLive(ctx context.Context, name, userID string) (bool, error)
	// ListClients возвращает неархивных клиентов владельца либо его компании.
	ListClients(ctx context.Context, userID, companyID string) ([]*models.Client, error)
	// ListArchivedClients возвращает архивных клиентов владельца.
	ListArchivedClients(ctx context.Context, userID string) ([]*models.Client, error)
	// GetClientScoped возвращает клиента, видимого владельцу или компании.
	GetClientScoped(ctx context.Context, id, userID, companyID string) (*models.Client, error)
	// GetClientByID возвращает клиента по ID без проверки владельца.
	GetClientByID(ctx context.Context, id string) (*models.Client, error)
	// UpdateClient заменяет основные поля клиента.
	UpdateClient(ctx context.Context, id string, in models.ClientInput) error
	// SetClientArchived выставляет флаг архивности.
	SetClientArchived(ctx context.Context, id string, archived bool) error
	// DeleteClient удаляет клиента безвозвратно.
	DeleteClient(ctx context.Context, id string) error
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	// Get пытается получить значение из кеша по ключу.
	Get(key string, result any) (bool, error)
	// Set сохраняет значение в кеш с временем жизни.
	Set(key string, value any, expiration time.Duration) error
	// Invalidate удаляет значение из кеша по ключу.
	Invalidate(key string) error
}

// Service реализует бизнес-логику работы с клиентами, включая кеширование.
type Service struct {
	repo  ClientRepository
	cache Cache
	log   *slog.Logger
}

// New создает новый экземпляр Service.
func New(repo ClientRepository, cache Cache, log *slog.Logger) *Service {
	return &Service{
		repo:  repo,
		cache: cache,
		log:   log,
	}
}

func cacheKey(id string) string {
	return "client:" + id
}

// Create создает нового клиента владельца. Повтор (name, owner) среди
// неархивных отклоняется.
func (s *Service) Create(ctx context.Context, userID, companyID string, in models.ClientInput) (*models.Client, error) {
	const op = "services.client.Create"

	exists, err := s.repo.ClientExistsLive(ctx, in.Name, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if exists {
		return nil, models.ErrDuplicate
	}

	c := models.Client{
		Name:      in.Name,
		CIF:       in.CIF,
		Address:   in.Address,
		UserID:    userID,
		CompanyID: companyID,
	}
	id, err := s.repo.CreateClient(ctx, c)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	created, err := s.repo.GetClientByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := s.cache.Set(cacheKey(id), created, cacheTTL); err != nil {
		s.log.Warn("failed to cache client", sl.Err(err))
	}
	return created, nil
}

// List возвращает неархивных клиентов, видимых пользователю.
func (s *Service) List(ctx context.Context, userID, companyID string) ([]*models.Client, error) {
	return s.repo.ListClients(ctx, userID, companyID)
}

// ListArchived возвращает архивных клиентов владельца.
func (s *Service) ListArchived(ctx context.Context, userID string) ([]*models.Client, error) {
	return s.repo.ListArchivedClients(ctx, userID)
}

// Read возвращает клиента по ID с проверкой видимости. Чтение идёт через
// кеш, проверка владельца выполняется и для закешированного значения.
func (s *Service) Read(ctx context.Context, id, userID, companyID string) (*models.Client, error) {
	const op = "services.client.Read"

	var cached models.Client
	found, err := s.cache.Get(cacheKey(id), &cached)
	if err != nil {
		s.log.Warn("cache read failed", sl.Err(err))
	}
	if found {
		if cached.UserID != userID && (companyID == "" || cached.CompanyID != companyID) {
			return nil, models.ErrNotFound
		}
		return &cached, nil
	}

	c, err := s.repo.GetClientScoped(ctx, id, userID, companyID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := s.cache.Set(cacheKey(id), c, cacheTTL); err != nil {
		s.log.Warn("failed to cache client", sl.Err(err))
	}
	return c, nil
}

// Update заменяет основные поля клиента и сбрасывает кеш.
func (s *Service) Update(ctx context.Context, id string, in models.ClientInput) (*models.Client, error) {
	const op = "services.client.Update"

	if _, err := s.repo.GetClientByID(ctx, id); err != nil {
		return nil, err
	}
	if err := s.repo.UpdateClient(ctx, id, in); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := s.cache.Invalidate(cacheKey(id)); err != nil {
		s.log.Warn("failed to invalidate client cache", sl.Err(err))
	}
	return s.repo.GetClientByID(ctx, id)
}

// SetArchived архивирует или восстанавливает клиента.
func (s *Service) SetArchived(ctx context.Context, id string, archived bool) error {
	const op = "services.client.SetArchived"

	if _, err := s.repo.GetClientByID(ctx, id); err != nil {
		return err
	}
	if err := s.repo.SetClientArchived(ctx, id, archived); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := s.cache.Invalidate(cacheKey(id)); err != nil {
		s.log.Warn("failed to invalidate client cache", sl.Err(err))
	}
	return nil
}

// Delete удаляет клиента безвозвратно и сбрасывает кеш.
func (s *Service) Delete(ctx context.Context, id string) error {
	const op = "services.client.Delete"

	if _, err := s.repo.GetClientByID(ctx, id); err != nil {
		return err
	}
	if err := s.repo.DeleteClient(ctx, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := s.cache.Invalidate(cacheKey(id)); err != nil {
		s.log.Warn("failed to invalidate client cache", sl.Err(err))
	}
	return nil
}
