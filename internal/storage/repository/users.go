package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/albaranes-app/delivery-notes/internal/models"
)

const userColumns = `id, email, password_hash, status, role, verification_code,
	verification_attempts, is_autonomous, company_id,
	persona_name, persona_surname, persona_nif,
	company_name, company_cif, company_address, company_number,
	company_postal, company_city, company_province, created_at, updated_at`

func scanUser(row interface{ Scan(...any) error }) (*models.User, error) {
	u := &models.User{}
	var companyID sql.NullString
	if err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Status, &u.Role,
		&u.VerificationCode, &u.VerificationAttempts, &u.IsAutonomous, &companyID,
		&u.Persona.Name, &u.Persona.Surname, &u.Persona.NIF,
		&u.Company.CompanyName, &u.Company.CIF, &u.Company.Address,
		&u.Company.Number, &u.Company.Postal, &u.Company.City,
		&u.Company.Province, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, err
	}
	if companyID.Valid {
		u.CompanyID = companyID.String
	}
	return u, nil
}

// RegisterUser сохраняет нового пользователя в базу данных и возвращает его ID.
func (s *Storage) RegisterUser(ctx context.Context, user models.User) (string, error) {
	const op = "storage.RegisterUser"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var newID string
	query := `INSERT INTO users (email, password_hash, status, role,
			      verification_code, verification_attempts, company_id)
			  VALUES ($1, $2, $3, $4, $5, $6, NULLIF($7, '')::uuid)
			  RETURNING id;`
	if err := s.DB.QueryRowContext(ctx, query,
		user.Email, user.PasswordHash, user.Status, user.Role,
		user.VerificationCode, user.VerificationAttempts, user.CompanyID).Scan(&newID); err != nil {
		if isUniqueViolation(err) {
			return "", fmt.Errorf("%s: %w", op, models.ErrEmailTaken)
		}
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// GetUserByEmail возвращает пользователя по email или models.ErrNotFound.
func (s *Storage) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	const op = "storage.GetUserByEmail"

	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	u, err := scanUser(s.DB.QueryRowContext(ctx, query, email))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return u, nil
}

// GetUser возвращает пользователя по его ID или models.ErrNotFound.
func (s *Storage) GetUser(ctx context.Context, userID string) (*models.User, error) {
	const op = "storage.GetUser"

	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	u, err := scanUser(s.DB.QueryRowContext(ctx, query, userID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return u, nil
}

// MarkEmailVerified переводит пользователя в verified и гасит код подтверждения.
func (s *Storage) MarkEmailVerified(ctx context.Context, userID string) error {
	const op = "storage.MarkEmailVerified"

	query := `UPDATE users
			  SET status = $1, verification_code = '', updated_at = NOW()
			  WHERE id = $2`
	if _, err := s.DB.ExecContext(ctx, query, models.StatusVerified, userID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// DecrementVerificationAttempts уменьшает счётчик оставшихся попыток, не ниже нуля.
func (s *Storage) DecrementVerificationAttempts(ctx context.Context, userID string) error {
	const op = "storage.DecrementVerificationAttempts"

	query := `UPDATE users
			  SET verification_attempts = GREATEST(verification_attempts - 1, 0),
			      updated_at = NOW()
			  WHERE id = $1`
	if _, err := s.DB.ExecContext(ctx, query, userID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// UpdatePersona обновляет личные данные пользователя.
func (s *Storage) UpdatePersona(ctx context.Context, userID string, p models.Persona) error {
	const op = "storage.UpdatePersona"

	query := `UPDATE users
			  SET persona_name = $1, persona_surname = $2, persona_nif = $3,
			      updated_at = NOW()
			  WHERE id = $4`
	if _, err := s.DB.ExecContext(ctx, query, p.Name, p.Surname, p.NIF, userID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// UpdateCompany обновляет данные компании пользователя.
func (s *Storage) UpdateCompany(ctx context.Context, userID string, c models.Company) error {
	const op = "storage.UpdateCompany"

	query := `UPDATE users
			  SET company_name = $1, company_cif = $2, company_address = $3,
			      company_number = $4, company_postal = $5, company_city = $6,
			      company_province = $7, updated_at = NOW()
			  WHERE id = $8`
	if _, err := s.DB.ExecContext(ctx, query, c.CompanyName, c.CIF, c.Address,
		c.Number, c.Postal, c.City, c.Province, userID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// SetUserStatus выставляет статус учётной записи (soft delete: inactive).
func (s *Storage) SetUserStatus(ctx context.Context, userID, status string) error {
	const op = "storage.SetUserStatus"

	query := `UPDATE users SET status = $1, updated_at = NOW() WHERE id = $2`
	if _, err := s.DB.ExecContext(ctx, query, status, userID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// DeleteUser удаляет пользователя безвозвратно.
func (s *Storage) DeleteUser(ctx context.Context, userID string) error {
	const op = "storage.DeleteUser"

	if _, err := s.DB.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, userID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
