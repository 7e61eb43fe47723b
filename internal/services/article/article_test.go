package article

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/daily-lens/internal/models"
)

type RepoMock struct{ mock.Mock }

func (m *RepoMock) CreateArticle(ctx context.Context, a models.Article) (int64, error) {
	args := m.Called(ctx, a)
	return args.Get(0).(int64), args.Error(1)
}
func (m *RepoMock) ListPremiumArticles(ctx context.Context, limit, offset int) ([]*models.Article, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Article), args.Error(1)
}
func (m *RepoMock) SetArticleStatus(ctx context.Context, id int64, status models.ArticleStatus) error {
	return m.Called(ctx, id, status).Error(0)
}
func (m *RepoMock) SetArticlePremium(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}
func (m *RepoMock) RemoveArticle(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}
func (m *RepoMock) CreatePublisher(ctx context.Context, p models.Publisher) (int64, error) {
	args := m.Called(ctx, p)
	return args.Get(0).(int64), args.Error(1)
}
func (m *RepoMock) ListPublishers(ctx context.Context) ([]*models.Publisher, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Publisher), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func TestService_Submit(t *testing.T) {
	ctx := context.Background()
	repo := new(RepoMock)
	repo.On("CreateArticle", ctx, models.Article{
		Title: "T", Description: "D", Publisher: "Daily",
		AuthorEmail: "a@x.io", Status: models.ArticlePending,
	}).Return(int64(3), nil)

	s := New(repo, newNoopLogger())
	id, err := s.Submit(ctx, "a@x.io", models.DummyArticle{Title: "T", Description: "D", Publisher: "Daily"})
	require.NoError(t, err)
	assert.EqualValues(t, 3, id)
	repo.AssertExpectations(t)
}

func TestService_Moderation(t *testing.T) {
	ctx := context.Background()
	repo := new(RepoMock)
	repo.On("SetArticleStatus", ctx, int64(1), models.ArticleApproved).Return(nil)
	repo.On("SetArticleStatus", ctx, int64(2), models.ArticleDeclined).Return(nil)
	repo.On("SetArticleStatus", ctx, int64(9), models.ArticleApproved).Return(models.ErrNotFound)
	repo.On("SetArticlePremium", ctx, int64(1)).Return(nil)
	repo.On("RemoveArticle", ctx, int64(2)).Return(nil)

	s := New(repo, newNoopLogger())
	require.NoError(t, s.Approve(ctx, 1))
	require.NoError(t, s.Decline(ctx, 2))
	require.NoError(t, s.MakePremium(ctx, 1))
	require.NoError(t, s.Remove(ctx, 2))
	assert.ErrorIs(t, s.Approve(ctx, 9), models.ErrNotFound)
	repo.AssertExpectations(t)
}

func TestService_Publishers(t *testing.T) {
	ctx := context.Background()
	repo := new(RepoMock)
	repo.On("CreatePublisher", ctx, models.Publisher{Name: "Daily"}).Return(int64(0), models.ErrAlreadyExists)
	repo.On("ListPublishers", ctx).Return([]*models.Publisher{{ID: 1, Name: "Daily"}}, nil)

	s := New(repo, newNoopLogger())
	_, err := s.AddPublisher(ctx, models.DummyPublisher{Name: "Daily"})
	assert.ErrorIs(t, err, models.ErrAlreadyExists)

	list, err := s.Publishers(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}
