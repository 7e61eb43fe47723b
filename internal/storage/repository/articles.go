package repository

import (
	"context"
	"fmt"

	"github.com/magabrotheeeer/daily-lens/internal/models"
)

const articleColumns = `id, title, description, image_url, publisher, author_email, status, is_premium, views, created_at`

func scanArticle(row rowScanner) (*models.Article, error) {
	var a models.Article
	var status string
	if err := row.Scan(&a.ID, &a.Title, &a.Description, &a.ImageURL, &a.Publisher,
		&a.AuthorEmail, &status, &a.IsPremium, &a.Views, &a.CreatedAt); err != nil {
		return nil, err
	}
	a.Status = models.ArticleStatus(status)
	return &a, nil
}

// CreateArticle сохраняет статью со статусом pending и возвращает её id.
func (s *Storage) CreateArticle(ctx context.Context, article models.Article) (int64, error) {
	const op = "storage.CreateArticle"
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	query := `INSERT INTO articles (title, description, image_url, publisher, author_email, status)
			  VALUES ($1, $2, $3, $4, $5, $6)
			  RETURNING id`
	var id int64
	err := s.DB.QueryRowContext(ctx, query,
		article.Title, article.Description, article.ImageURL, article.Publisher,
		article.AuthorEmail, string(models.ArticlePending),
	).Scan(&id)
	if err != nil {
		return 0, wrapErr(op, err)
	}
	return id, nil
}

// GetArticle возвращает статью по id.
func (s *Storage) GetArticle(ctx context.Context, id int64) (*models.Article, error) {
	const op = "storage.GetArticle"
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	query := `SELECT ` + articleColumns + ` FROM articles WHERE id = $1`
	a, err := scanArticle(s.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, wrapErr(op, err)
	}
	return a, nil
}

// ListPremiumArticles возвращает одобренные премиальные статьи, новые первыми.
func (s *Storage) ListPremiumArticles(ctx context.Context, limit, offset int) ([]*models.Article, error) {
	const op = "storage.ListPremiumArticles"
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	query := `SELECT ` + articleColumns + `
			  FROM articles
			  WHERE is_premium AND status = $1
			  ORDER BY created_at DESC
			  LIMIT $2 OFFSET $3`
	rows, err := s.DB.QueryContext(ctx, query, string(models.ArticleApproved), limit, offset)
	if err != nil {
		return nil, wrapErr(op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	result := make([]*models.Article, 0, limit)
	for rows.Next() {
		a, err := scanArticle(rows)
		if err != nil {
			return nil, wrapErr(op, err)
		}
		result = append(result, a)
	}
	if err = rows.Err(); err != nil {
		return nil, wrapErr(op, err)
	}
	return result, nil
}

// SetArticleStatus меняет статус модерации статьи.
func (s *Storage) SetArticleStatus(ctx context.Context, id int64, status models.ArticleStatus) error {
	const op = "storage.SetArticleStatus"
	return s.execOne(ctx, op, `UPDATE articles SET status = $1 WHERE id = $2`, string(status), id)
}

// SetArticlePremium помечает статью как премиальную.
func (s *Storage) SetArticlePremium(ctx context.Context, id int64) error {
	const op = "storage.SetArticlePremium"
	return s.execOne(ctx, op, `UPDATE articles SET is_premium = TRUE WHERE id = $1`, id)
}

// RemoveArticle удаляет статью.
func (s *Storage) RemoveArticle(ctx context.Context, id int64) error {
	const op = "storage.RemoveArticle"
	return s.execOne(ctx, op, `DELETE FROM articles WHERE id = $1`, id)
}

// execOne выполняет запрос, который должен затронуть ровно одну запись.
func (s *Storage) execOne(ctx context.Context, op, query string, args ...any) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	res, err := s.DB.ExecContext(ctx, query, args...)
	if err != nil {
		return wrapErr(op, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return wrapErr(op, err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", op, models.ErrNotFound)
	}
	return nil
}
