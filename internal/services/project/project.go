// Package project содержит бизнес-логику для управления проектами.
// Счётчики проектов на клиенте обновляются при записи, без транзакций.
package project

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/albaranes-app/delivery-notes/internal/lib/sl"
	"github.com/albaranes-app/delivery-notes/internal/models"
)

// ProjectRepository определяет методы для работы с проектами в хранилище.
type ProjectRepository interface {
	// CreateProject сохраняет новый проект и возвращает его ID.
	CreateProject(ctx context.Context, p models.Project) (string, error)
	// ProjectExistsLive проверяет наличие неархивного проекта (name, owner, client).
	ProjectExistsLive(ctx context.Context, name, userID, clientID string) (bool, error)
	// ListProjects возвращает неархивные проекты владельца либо его компании.
	ListProjects(ctx context.Context, userID, companyID string) ([]*models.Project, error)
	// ListProjectsByClient возвращает проекты клиента с заданной архивностью.
	ListProjectsByClient(ctx context.Context, clientID string, archived bool) ([]*models.Project, error)
	// ListArchivedProjects возвращает архивные проекты владельца.
	ListArchivedProjects(ctx context.Context, userID string) ([]*models.Project, error)
	// GetProjectByID возвращает проект по ID или models.ErrNotFound.
	GetProjectByID(ctx context.Context, id string) (*models.Project, error)
	// UpdateProject заменяет основные поля проекта.
	UpdateProject(ctx context.Context, id string, in models.ProjectInput) error
	// SetProjectArchived выставляет флаг архивности проекта.
	SetProjectArchived(ctx context.Context, id string, archived bool) error
	// DeleteProject удаляет проект безвозвратно.
	DeleteProject(ctx context.Context, id string) error
}

// ClientRepository - часть хранилища клиентов, нужная проектам:
// существование клиента и денормализованные счётчики.
type ClientRepository interface {
	GetClientByID(ctx context.Context, id string) (*models.Client, error)
	AdjustClientCounters(ctx context.Context, id string, activeProjects, pendingNotes, archivedProjects int) error
}

// Service реализует бизнес-логику работы с проектами.
type Service struct {
	repo    ProjectRepository
	clients ClientRepository
	log     *slog.Logger
}

// New создает новый экземпляр Service.
func New(repo ProjectRepository, clients ClientRepository, log *slog.Logger) *Service {
	return &Service{
		repo:    repo,
		clients: clients,
		log:     log,
	}
}

// Create создает новый проект. Повтор (name, owner, client) среди неархивных
// отклоняется, счётчик активных проектов клиента увеличивается.
func (s *Service) Create(ctx context.Context, userID, companyID string, in models.ProjectInput) (*models.Project, error) {
	const op = "services.project.Create"

	if _, err := s.clients.GetClientByID(ctx, in.ClientID); err != nil {
		return nil, err
	}
	exists, err := s.repo.ProjectExistsLive(ctx, in.Name, userID, in.ClientID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if exists {
		return nil, models.ErrDuplicate
	}

	p := models.Project{
		Name:        in.Name,
		ProjectCode: in.ProjectCode,
		Code:        in.Code,
		Email:       in.Email,
		Address:     in.Address,
		Notes:       in.Notes,
		Begin:       in.Begin,
		End:         in.End,
		UserID:      userID,
		ClientID:    in.ClientID,
		CompanyID:   companyID,
	}
	id, err := s.repo.CreateProject(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := s.clients.AdjustClientCounters(ctx, in.ClientID, 1, 0, 0); err != nil {
		s.log.Warn("failed to adjust client counters", sl.Err(err))
	}
	return s.repo.GetProjectByID(ctx, id)
}

// List возвращает неархивные проекты, видимые пользователю.
func (s *Service) List(ctx context.Context, userID, companyID string) ([]*models.Project, error) {
	return s.repo.ListProjects(ctx, userID, companyID)
}

// ListByClient возвращает проекты клиента с заданной архивностью.
// Отсутствующий клиент - ошибка, а не пустой список.
func (s *Service) ListByClient(ctx context.Context, clientID string, archived bool) ([]*models.Project, error) {
	if _, err := s.clients.GetClientByID(ctx, clientID); err != nil {
		return nil, err
	}
	return s.repo.ListProjectsByClient(ctx, clientID, archived)
}

// ListArchived возвращает архивные проекты владельца.
func (s *Service) ListArchived(ctx context.Context, userID string) ([]*models.Project, error) {
	return s.repo.ListArchivedProjects(ctx, userID)
}

// Read возвращает проект по ID.
func (s *Service) Read(ctx context.Context, id string) (*models.Project, error) {
	return s.repo.GetProjectByID(ctx, id)
}

// Update заменяет основные поля проекта.
func (s *Service) Update(ctx context.Context, id string, in models.ProjectInput) (*models.Project, error) {
	const op = "services.project.Update"

	if _, err := s.repo.GetProjectByID(ctx, id); err != nil {
		return nil, err
	}
	if err := s.repo.UpdateProject(ctx, id, in); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return s.repo.GetProjectByID(ctx, id)
}

// SetArchived архивирует или восстанавливает проект, сдвигая счётчики
// клиента между active и archived.
func (s *Service) SetArchived(ctx context.Context, id string, archived bool) error {
	const op = "services.project.SetArchived"

	p, err := s.repo.GetProjectByID(ctx, id)
	if err != nil {
		return err
	}
	if p.Archived == archived {
		return nil
	}
	if err := s.repo.SetProjectArchived(ctx, id, archived); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	deltaActive, deltaArchived := -1, 1
	if !archived {
		deltaActive, deltaArchived = 1, -1
	}
	if err := s.clients.AdjustClientCounters(ctx, p.ClientID, deltaActive, 0, deltaArchived); err != nil {
		s.log.Warn("failed to adjust client counters", sl.Err(err))
	}
	return nil
}

// Delete удаляет проект безвозвратно и уменьшает счётчик клиента.
func (s *Service) Delete(ctx context.Context, id string) error {
	const op = "services.project.Delete"

	p, err := s.repo.GetProjectByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.DeleteProject(ctx, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	deltaActive, deltaArchived := -1, 0
	if p.Archived {
		deltaActive, deltaArchived = 0, -1
	}
	if err := s.clients.AdjustClientCounters(ctx, p.ClientID, deltaActive, 0, deltaArchived); err != nil {
		s.log.Warn("failed to adjust client counters", sl.Err(err))
	}
	return nil
}
