package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/albaranes-app/delivery-notes/internal/models"
)

const clientColumns = `id, name, cif, street, number, postal, city, province,
	logo_url, user_id, company_id, archived, active_projects,
	pending_delivery_notes, archived_projects, created_at, updated_at`

func scanClient(row interface{ Scan(...any) error }) (*models.Client, error) {
	c := &models.Client{}
	var companyID sql.NullString
	if err := row.Scan(&c.ID, &c.Name, &c.CIF, &c.Address.Street, &c.Address.Number,
		&c.Address.Postal, &c.Address.City, &c.Address.Province, &c.LogoURL,
		&c.UserID, &companyID, &c.Archived, &c.ActiveProjects,
		&c.PendingDeliveryNotes, &c.ArchivedProjects, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	if companyID.Valid {
		c.CompanyID = companyID.String
	}
	return c, nil
}

// CreateClient сохраняет нового клиента и возвращает его ID.
func (s *Storage) CreateClient(ctx context.Context, c models.Client) (string, error) {
	const op = "storage.CreateClient"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var newID string
	query := `INSERT INTO clients (name, cif, street, number, postal, city, province,
			      user_id, company_id)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NULLIF($9, '')::uuid)
			  RETURNING id;`
	if err := s.DB.QueryRowContext(ctx, query,
		c.Name, c.CIF, c.Address.Street, c.Address.Number, c.Address.Postal,
		c.Address.City, c.Address.Province, c.UserID, c.CompanyID).Scan(&newID); err != nil {
		if isUniqueViolation(err) {
			return "", fmt.Errorf("%s: %w", op, models.ErrDuplicate)
		}
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// ClientExistsLive проверяет наличие неархивного клиента (name, owner).
func (s *Storage) ClientExistsLive(ctx context.Context, name, userID string) (bool, error) {
	const op = "storage.ClientExistsLive"

	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM clients
			  WHERE name = $1 AND user_id = $2 AND NOT archived)`
	if err := s.DB.QueryRowContext(ctx, query, name, userID).Scan(&exists); err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return exists, nil
}

// ListClients возвращает неархивных клиентов владельца либо его компании.
func (s *Storage) ListClients(ctx context.Context, userID, companyID string) ([]*models.Client, error) {
	const op = "storage.ListClients"

	query := `SELECT ` + clientColumns + ` FROM clients
			  WHERE NOT archived
			    AND (user_id = $1 OR company_id = NULLIF($2, '')::uuid)
			  ORDER BY created_at`
	return s.queryClients(ctx, op, query, userID, companyID)
}

// ListArchivedClients возвращает архивных клиентов владельца.
func (s *Storage) ListArchivedClients(ctx context.Context, userID string) ([]*models.Client, error) {
	const op = "storage.ListArchivedClients"

	query := `SELECT ` + clientColumns + ` FROM clients
			  WHERE archived AND user_id = $1
			  ORDER BY created_at`
	return s.queryClients(ctx, op, query, userID)
}

func (s *Storage) queryClients(ctx context.Context, op, query string, args ...any) ([]*models.Client, error) {
	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Client
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, c)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// GetClientScoped возвращает клиента по ID, видимого владельцу или его компании.
func (s *Storage) GetClientScoped(ctx context.Context, id, userID, companyID string) (*models.Client, error) {
	const op = "storage.GetClientScoped"

	query := `SELECT ` + clientColumns + ` FROM clients
			  WHERE id = $1 AND (user_id = $2 OR company_id = NULLIF($3, '')::uuid)`
	c, err := scanClient(s.DB.QueryRowContext(ctx, query, id, userID, companyID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return c, nil
}

// GetClientByID возвращает клиента по ID без проверки владельца.
func (s *Storage) GetClientByID(ctx context.Context, id string) (*models.Client, error) {
	const op = "storage.GetClientByID"

	query := `SELECT ` + clientColumns + ` FROM clients WHERE id = $1`
	c, err := scanClient(s.DB.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return c, nil
}

// UpdateClient заменяет основные поля клиента.
func (s *Storage) UpdateClient(ctx context.Context, id string, in models.ClientInput) error {
	const op = "storage.UpdateClient"

	query := `UPDATE clients
			  SET name = $1, cif = $2, street = $3, number = $4, postal = $5,
			      city = $6, province = $7, updated_at = NOW()
			  WHERE id = $8`
	if _, err := s.DB.ExecContext(ctx, query, in.Name, in.CIF, in.Address.Street,
		in.Address.Number, in.Address.Postal, in.Address.City, in.Address.Province, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// SetClientArchived выставляет флаг архивности клиента.
func (s *Storage) SetClientArchived(ctx context.Context, id string, archived bool) error {
	const op = "storage.SetClientArchived"

	query := `UPDATE clients SET archived = $1, updated_at = NOW() WHERE id = $2`
	if _, err := s.DB.ExecContext(ctx, query, archived, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// DeleteClient удаляет клиента безвозвратно.
func (s *Storage) DeleteClient(ctx context.Context, id string) error {
	const op = "storage.DeleteClient"

	if _, err := s.DB.ExecContext(ctx, `DELETE FROM clients WHERE id = $1`, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// AdjustClientCounters сдвигает денормализованные счётчики клиента.
// Обновление не транзакционно с записями проектов и накладных.
func (s *Storage) AdjustClientCounters(ctx context.Context, id string, activeProjects, pendingNotes, archivedProjects int) error {
	const op = "storage.AdjustClientCounters"

	query := `UPDATE clients
			  SET active_projects = GREATEST(active_projects + $1, 0),
			      pending_delivery_notes = GREATEST(pending_delivery_notes + $2, 0),
			      archived_projects = GREATEST(archived_projects + $3, 0),
			      updated_at = NOW()
			  WHERE id = $4`
	if _, err := s.DB.ExecContext(ctx, query, activeProjects, pendingNotes, archivedProjects, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
