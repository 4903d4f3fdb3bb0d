package repository

import (
	"context"
	"fmt"

	"github.com/albaranes-app/delivery-notes/internal/models"
)

// CreateStoredFile сохраняет запись о выгруженном файле и возвращает её.
func (s *Storage) CreateStoredFile(ctx context.Context, filename, url string) (*models.StoredFile, error) {
	const op = "storage.CreateStoredFile"

	f := &models.StoredFile{Filename: filename, URL: url}
	query := `INSERT INTO stored_files (filename, url)
			  VALUES ($1, $2)
			  RETURNING id, created_at;`
	if err := s.DB.QueryRowContext(ctx, query, filename, url).Scan(&f.ID, &f.CreatedAt); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return f, nil
}
