package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/albaranes-app/delivery-notes/internal/models"
)

const projectColumns = `id, name, project_code, code, email, street, number,
	postal, city, province, notes, begin_date, end_date, user_id, client_id,
	company_id, archived, created_at, updated_at`

func scanProject(row interface{ Scan(...any) error }) (*models.Project, error) {
	p := &models.Project{}
	var companyID sql.NullString
	if err := row.Scan(&p.ID, &p.Name, &p.ProjectCode, &p.Code, &p.Email,
		&p.Address.Street, &p.Address.Number, &p.Address.Postal, &p.Address.City,
		&p.Address.Province, &p.Notes, &p.Begin, &p.End, &p.UserID, &p.ClientID,
		&companyID, &p.Archived, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	if companyID.Valid {
		p.CompanyID = companyID.String
	}
	return p, nil
}

// CreateProject сохраняет новый проект и возвращает его ID.
func (s *Storage) CreateProject(ctx context.Context, p models.Project) (string, error) {
	const op = "storage.CreateProject"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var newID string
	query := `INSERT INTO projects (name, project_code, code, email, street,
			      number, postal, city, province, notes, begin_date, end_date,
			      user_id, client_id, company_id)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12,
			      $13, $14, NULLIF($15, '')::uuid)
			  RETURNING id;`
	if err := s.DB.QueryRowContext(ctx, query,
		p.Name, p.ProjectCode, p.Code, p.Email, p.Address.Street,
		p.Address.Number, p.Address.Postal, p.Address.City, p.Address.Province,
		p.Notes, p.Begin, p.End, p.UserID, p.ClientID, p.CompanyID).Scan(&newID); err != nil {
		if isUniqueViolation(err) {
			return "", fmt.Errorf("%s: %w", op, models.ErrDuplicate)
		}
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// ProjectExistsLive проверяет наличие неархивного проекта (name, owner, client).
func (s *Storage) ProjectExistsLive(ctx context.Context, name, userID, clientID string) (bool, error) {
	const op = "storage.ProjectExistsLive"

	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM projects
			  WHERE name = $1 AND user_id = $2 AND client_id = $3 AND NOT archived)`
	if err := s.DB.QueryRowContext(ctx, query, name, userID, clientID).Scan(&exists); err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return exists, nil
}

// ListProjects возвращает неархивные проекты владельца либо его компании.
func (s *Storage) ListProjects(ctx context.Context, userID, companyID string) ([]*models.Project, error) {
	const op = "storage.ListProjects"

	query := `SELECT ` + projectColumns + ` FROM projects
			  WHERE NOT archived
			    AND (user_id = $1 OR company_id = NULLIF($2, '')::uuid)
			  ORDER BY created_at`
	return s.queryProjects(ctx, op, query, userID, companyID)
}

// ListProjectsByClient возвращает проекты клиента с заданной архивностью.
func (s *Storage) ListProjectsByClient(ctx context.Context, clientID string, archived bool) ([]*models.Project, error) {
	const op = "storage.ListProjectsByClient"

	query := `SELECT ` + projectColumns + ` FROM projects
			  WHERE client_id = $1 AND archived = $2
			  ORDER BY created_at`
	return s.queryProjects(ctx, op, query, clientID, archived)
}

// ListArchivedProjects возвращает архивные проекты владельца.
func (s *Storage) ListArchivedProjects(ctx context.Context, userID string) ([]*models.Project, error) {
	const op = "storage.ListArchivedProjects"

	query := `SELECT ` + projectColumns + ` FROM projects
			  WHERE archived AND user_id = $1
			  ORDER BY created_at`
	return s.queryProjects(ctx, op, query, userID)
}

func (s *Storage) queryProjects(ctx context.Context, op, query string, args ...any) ([]*models.Project, error) {
	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// GetProjectByID возвращает проект по ID или models.ErrNotFound.
func (s *Storage) GetProjectByID(ctx context.Context, id string) (*models.Project, error) {
	const op = "storage.GetProjectByID"

	query := `SELECT ` + projectColumns + ` FROM projects WHERE id = $1`
	p, err := scanProject(s.DB.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return p, nil
}

// GetProjectByClientAndID возвращает проект клиента по паре идентификаторов.
func (s *Storage) GetProjectByClientAndID(ctx context.Context, clientID, id string) (*models.Project, error) {
	const op = "storage.GetProjectByClientAndID"

	query := `SELECT ` + projectColumns + ` FROM projects
			  WHERE id = $1 AND client_id = $2`
	p, err := scanProject(s.DB.QueryRowContext(ctx, query, id, clientID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return p, nil
}

// UpdateProject заменяет основные поля проекта.
func (s *Storage) UpdateProject(ctx context.Context, id string, in models.ProjectInput) error {
	const op = "storage.UpdateProject"

	query := `UPDATE projects
			  SET name = $1, project_code = $2, code = $3, email = $4,
			      street = $5, number = $6, postal = $7, city = $8,
			      province = $9, notes = $10, begin_date = $11, end_date = $12,
			      updated_at = NOW()
			  WHERE id = $13`
	if _, err := s.DB.ExecContext(ctx, query, in.Name, in.ProjectCode, in.Code,
		in.Email, in.Address.Street, in.Address.Number, in.Address.Postal,
		in.Address.City, in.Address.Province, in.Notes, in.Begin, in.End, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// SetProjectArchived выставляет флаг архивности проекта.
func (s *Storage) SetProjectArchived(ctx context.Context, id string, archived bool) error {
	const op = "storage.SetProjectArchived"

	query := `UPDATE projects SET archived = $1, updated_at = NOW() WHERE id = $2`
	if _, err := s.DB.ExecContext(ctx, query, archived, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// DeleteProject удаляет проект безвозвратно.
func (s *Storage) DeleteProject(ctx context.Context, id string) error {
	const op = "storage.DeleteProject"

	if _, err := s.DB.ExecContext(ctx, `DELETE FROM projects WHERE id = $1`, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
