package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/albaranes-app/delivery-notes/internal/models"
)

const noteColumns = `id, user_id, client_id, project_id, format, materials,
	workers, description, work_date, pending, sign_url, pdf_url,
	created_at, updated_at`

func scanNote(row interface{ Scan(...any) error }) (*models.DeliveryNote, error) {
	n := &models.DeliveryNote{}
	var materials, workers []byte
	if err := row.Scan(&n.ID, &n.UserID, &n.ClientID, &n.ProjectID, &n.Format,
		&materials, &workers, &n.Description, &n.WorkDate, &n.Pending,
		&n.SignURL, &n.PDFURL, &n.CreatedAt, &n.UpdatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(materials, &n.Materials); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(workers, &n.Workers); err != nil {
		return nil, err
	}
	return n, nil
}

// CreateDeliveryNote сохраняет новую накладную (pending=true) и возвращает её ID.
func (s *Storage) CreateDeliveryNote(ctx context.Context, n models.DeliveryNote) (string, error) {
	const op = "storage.CreateDeliveryNote"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	materials, err := json.Marshal(n.Materials)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	workers, err := json.Marshal(n.Workers)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	var newID string
	query := `INSERT INTO delivery_notes (user_id, client_id, project_id,
			      format, materials, workers, description, work_date)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			  RETURNING id;`
	if err := s.DB.QueryRowContext(ctx, query,
		n.UserID, n.ClientID, n.ProjectID, n.Format, materials, workers,
		n.Description, n.WorkDate).Scan(&newID); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// ListDeliveryNotes возвращает накладные владельца;
// signedOnly оставляет только подписанные.
func (s *Storage) ListDeliveryNotes(ctx context.Context, userID string, signedOnly bool) ([]*models.DeliveryNote, error) {
	const op = "storage.ListDeliveryNotes"

	query := `SELECT ` + noteColumns + ` FROM delivery_notes
			  WHERE user_id = $1 AND ($2 = FALSE OR pending = FALSE)
			  ORDER BY created_at`
	rows, err := s.DB.QueryContext(ctx, query, userID, signedOnly)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.DeliveryNote
	for rows.Next() {
		n, err := scanNote(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, n)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// GetDeliveryNote возвращает накладную по ID или models.ErrNotFound.
func (s *Storage) GetDeliveryNote(ctx context.Context, id string) (*models.DeliveryNote, error) {
	const op = "storage.GetDeliveryNote"

	query := `SELECT ` + noteColumns + ` FROM delivery_notes WHERE id = $1`
	n, err := scanNote(s.DB.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return n, nil
}

// MarkDeliveryNoteSigned записывает ссылки подписи и PDF и снимает pending
// одним условным UPDATE. Возвращает false, если накладная уже была подписана
// конкурирующим запросом: побеждает ровно один.
func (s *Storage) MarkDeliveryNoteSigned(ctx context.Context, id, signURL, pdfURL string) (bool, error) {
	const op = "storage.MarkDeliveryNoteSigned"

	query := `UPDATE delivery_notes
			  SET sign_url = $1, pdf_url = $2, pending = FALSE, updated_at = NOW()
			  WHERE id = $3 AND pending`
	res, err := s.DB.ExecContext(ctx, query, signURL, pdfURL, id)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return affected == 1, nil
}

// DeleteDeliveryNote удаляет накладную безвозвратно.
func (s *Storage) DeleteDeliveryNote(ctx context.Context, id string) error {
	const op = "storage.DeleteDeliveryNote"

	if _, err := s.DB.ExecContext(ctx, `DELETE FROM delivery_notes WHERE id = $1`, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
