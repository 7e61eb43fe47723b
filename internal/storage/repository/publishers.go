package repository

import (
	"context"

	"github.com/magabrotheeeer/daily-lens/internal/models"
)

// CreatePublisher добавляет издателя и возвращает его id.
func (s *Storage) CreatePublisher(ctx context.Context, publisher models.Publisher) (int64, error) {
	const op = "storage.CreatePublisher"
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var id int64
	err := s.DB.QueryRowContext(ctx,
		`INSERT INTO publishers (name, logo_url) VALUES ($1, $2) RETURNING id`,
		publisher.Name, publisher.LogoURL,
	).Scan(&id)
	if err != nil {
		return 0, wrapErr(op, err)
	}
	return id, nil
}

// ListPublishers возвращает всех издателей по алфавиту.
func (s *Storage) ListPublishers(ctx context.Context) ([]*models.Publisher, error) {
	const op = "storage.ListPublishers"
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	rows, err := s.DB.QueryContext(ctx, `SELECT id, name, logo_url, created_at FROM publishers ORDER BY name`)
	if err != nil {
		return nil, wrapErr(op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Publisher
	for rows.Next() {
		var p models.Publisher
		if err := rows.Scan(&p.ID, &p.Name, &p.LogoURL, &p.CreatedAt); err != nil {
			return nil, wrapErr(op, err)
		}
		result = append(result, &p)
	}
	if err = rows.Err(); err != nil {
		return nil, wrapErr(op, err)
	}
	return result, nil
}
