// Package article управляет статьями и издателями: приём статей на модерацию,
// решения администратора и выдача премиальной ленты.
package article

import (
	"context"
	"log/slog"

	"github.com/magabrotheeeer/daily-lens/internal/models"
)

// Repository методы хранилища для статей и издателей.
type Repository interface {
	CreateArticle(ctx context.Context, article models.Article) (int64, error)
	ListPremiumArticles(ctx context.Context, limit, offset int) ([]*models.Article, error)
	SetArticleStatus(ctx context.Context, id int64, status models.ArticleStatus) error
	SetArticlePremium(ctx context.Context, id int64) error
	RemoveArticle(ctx context.Context, id int64) error
	CreatePublisher(ctx context.Context, publisher models.Publisher) (int64, error)
	ListPublishers(ctx context.Context) ([]*models.Publisher, error)
}

// Service бизнес-логика статей.
type Service struct {
	repo Repository
	log  *slog.Logger
}

// New создаёт Service.
func New(repo Repository, log *slog.Logger) *Service {
	return &Service{repo: repo, log: log}
}

// Submit сохраняет статью автора со статусом pending.
func (s *Service) Submit(ctx context.Context, author string, req models.DummyArticle) (int64, error) {
	id, err := s.repo.CreateArticle(ctx, models.Article{
		Title:       req.Title,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		Publisher:   req.Publisher,
		AuthorEmail: author,
		Status:      models.ArticlePending,
	})
	if err != nil {
		return 0, err
	}
	s.log.Info("article submitted", slog.Int64("id", id), slog.String("author", author))
	return id, nil
}

// Approve одобряет статью.
func (s *Service) Approve(ctx context.Context, id int64) error {
	return s.moderate(ctx, id, models.ArticleApproved)
}

// Decline отклоняет статью.
func (s *Service) Decline(ctx context.Context, id int64) error {
	return s.moderate(ctx, id, models.ArticleDeclined)
}

func (s *Service) moderate(ctx context.Context, id int64, status models.ArticleStatus) error {
	if err := s.repo.SetArticleStatus(ctx, id, status); err != nil {
		return err
	}
	s.log.Info("article moderated", slog.Int64("id", id), slog.String("status", string(status)))
	return nil
}

// MakePremium делает статью доступной только подписчикам.
func (s *Service) MakePremium(ctx context.Context, id int64) error {
	return s.repo.SetArticlePremium(ctx, id)
}

// Remove удаляет статью.
func (s *Service) Remove(ctx context.Context, id int64) error {
	if err := s.repo.RemoveArticle(ctx, id); err != nil {
		return err
	}
	s.log.Info("article removed", slog.Int64("id", id))
	return nil
}

// ListPremium возвращает одобренные премиальные статьи.
func (s *Service) ListPremium(ctx context.Context, limit, offset int) ([]*models.Article, error) {
	return s.repo.ListPremiumArticles(ctx, limit, offset)
}

// AddPublisher регистрирует издателя.
func (s *Service) AddPublisher(ctx context.Context, req models.DummyPublisher) (int64, error) {
	return s.repo.CreatePublisher(ctx, models.Publisher{Name: req.Name, LogoURL: req.LogoURL})
}

// Publishers возвращает всех издателей.
func (s *Service) Publishers(ctx context.Context) ([]*models.Publisher, error) {
	return s.repo.ListPublishers(ctx)
}
