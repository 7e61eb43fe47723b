package account

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/daily-lens/internal/config"
	"github.com/magabrotheeeer/daily-lens/internal/models"
	"github.com/magabrotheeeer/daily-lens/internal/storage/cache"
)

type RepoMock struct{ mock.Mock }

func (m *RepoMock) CreateAccount(ctx context.Context, account models.Account) (bool, error) {
	args := m.Called(ctx, account)
	return args.Bool(0), args.Error(1)
}
func (m *RepoMock) GetAccountByEmail(ctx context.Context, email string) (*models.Account, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Account), args.Error(1)
}
func (m *RepoMock) ListAccounts(ctx context.Context, limit, offset int) ([]*models.Account, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Account), args.Error(1)
}
func (m *RepoMock) SetRole(ctx context.Context, email string, role models.Role) (int64, error) {
	args := m.Called(ctx, email, role)
	return args.Get(0).(int64), args.Error(1)
}

type CacheMock struct{ mock.Mock }

func (m *CacheMock) Get(ctx context.Context, key string, result any) (bool, error) {
	args := m.Called(ctx, key, result)
	return args.Bool(0), args.Error(1)
}
func (m *CacheMock) Version(ctx context.Context, key string) (int64, error) {
	args := m.Called(ctx, key)
	return args.Get(0).(int64), args.Error(1)
}
func (m *CacheMock) SetIfVersion(ctx context.Context, key string, value any, expiration time.Duration, version int64) (bool, error) {
	args := m.Called(ctx, key, value, expiration, version)
	return args.Bool(0), args.Error(1)
}
func (m *CacheMock) Invalidate(ctx context.Context, keys ...string) error {
	return m.Called(ctx, keys).Error(0)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func TestService_GetCacheMiss(t *testing.T) {
	ctx := context.Background()
	repo := new(RepoMock)
	c := new(CacheMock)
	acc := &models.Account{Email: "a@x.io", Role: models.RoleUser}

	c.On("Get", ctx, "account:a@x.io", mock.Anything).Return(false, nil)
	c.On("Version", ctx, "account:a@x.io").Return(int64(3), nil)
	repo.On("GetAccountByEmail", ctx, "a@x.io").Return(acc, nil)
	c.On("SetIfVersion", ctx, "account:a@x.io", acc, 30*time.Second, int64(3)).Return(true, nil)

	s := New(repo, c, 30*time.Second, newNoopLogger())
	got, err := s.Get(ctx, "a@x.io")
	require.NoError(t, err)
	assert.Equal(t, acc, got)

	repo.AssertExpectations(t)
	c.AssertExpectations(t)
}

func TestService_GetCacheHit(t *testing.T) {
	ctx := context.Background()
	repo := new(RepoMock)
	c := new(CacheMock)

	c.On("Get", ctx, "account:a@x.io", mock.Anything).
		Run(func(args mock.Arguments) {
			out := args.Get(2).(*models.Account)
			out.Email = "a@x.io"
			out.Role = models.RoleAdmin
		}).
		Return(true, nil)

	s := New(repo, c, time.Minute, newNoopLogger())
	got, err := s.Get(ctx, "a@x.io")
	require.NoError(t, err)
	assert.True(t, got.IsAdmin())
	repo.AssertNotCalled(t, "GetAccountByEmail", mock.Anything, mock.Anything)
}

func TestService_GetCacheErrorFallsBackToStore(t *testing.T) {
	ctx := context.Background()
	repo := new(RepoMock)
	c := new(CacheMock)
	acc := &models.Account{Email: "a@x.io"}

	c.On("Get", ctx, "account:a@x.io", mock.Anything).Return(false, errors.New("redis down"))
	c.On("Version", ctx, "account:a@x.io").Return(int64(0), errors.New("redis down"))
	repo.On("GetAccountByEmail", ctx, "a@x.io").Return(acc, nil)

	s := New(repo, c, time.Minute, newNoopLogger())
	got, err := s.Get(ctx, "a@x.io")
	require.NoError(t, err)
	assert.Equal(t, acc, got)
	c.AssertNotCalled(t, "SetIfVersion", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestService_GetNotFound(t *testing.T) {
	ctx := context.Background()
	repo := new(RepoMock)
	repo.On("GetAccountByEmail", ctx, "ghost@x.io").Return(nil, models.ErrNotFound)

	s := New(repo, nil, time.Minute, newNoopLogger())
	_, err := s.Get(ctx, "ghost@x.io")
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestService_Create(t *testing.T) {
	ctx := context.Background()
	req := models.DummyAccount{Email: "a@x.io", Name: "Ann"}
	want := models.Account{Email: "a@x.io", Name: "Ann", Role: models.RoleUser}

	tests := []struct {
		name        string
		created     bool
		invalidates bool
	}{
		{"new account", true, true},
		{"already exists", false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(RepoMock)
			c := new(CacheMock)
			repo.On("CreateAccount", ctx, want).Return(tt.created, nil)
			if tt.invalidates {
				c.On("Invalidate", ctx, []string{"account:a@x.io"}).Return(nil)
			}

			s := New(repo, c, time.Minute, newNoopLogger())
			created, err := s.Create(ctx, req)
			require.NoError(t, err)
			assert.Equal(t, tt.created, created)
			c.AssertExpectations(t)
		})
	}
}

func TestService_PromoteToAdmin(t *testing.T) {
	ctx := context.Background()
	repo := new(RepoMock)
	c := new(CacheMock)

	repo.On("SetRole", ctx, "a@x.io", models.RoleAdmin).Return(int64(1), nil)
	repo.On("SetRole", ctx, "ghost@x.io", models.RoleAdmin).Return(int64(0), nil)
	c.On("Invalidate", ctx, []string{"account:a@x.io"}).Return(nil)

	s := New(repo, c, time.Minute, newNoopLogger())
	require.NoError(t, s.PromoteToAdmin(ctx, "a@x.io"))
	assert.ErrorIs(t, s.PromoteToAdmin(ctx, "ghost@x.io"), models.ErrNotFound)
	c.AssertExpectations(t)
}

func TestService_InvalidateIgnoresCacheErrors(t *testing.T) {
	ctx := context.Background()
	c := new(CacheMock)
	c.On("Invalidate", ctx, []string{"account:a@x.io", "account:b@x.io"}).Return(errors.New("redis down"))

	s := New(new(RepoMock), c, time.Minute, newNoopLogger())
	assert.NotPanics(t, func() { s.Invalidate(ctx, "a@x.io", "b@x.io") })
	s.Invalidate(ctx)
	c.AssertNumberOfCalls(t, "Invalidate", 1)
}

// interleavingRepo отдаёт снимок записи и перед возвратом выполняет duringRead,
// как если бы параллельный запрос успел изменить запись.
type interleavingRepo struct {
	RepoMock
	account    models.Account
	duringRead func()
}

func (r *interleavingRepo) GetAccountByEmail(_ context.Context, _ string) (*models.Account, error) {
	snapshot := r.account
	if r.duringRead != nil {
		hook := r.duringRead
		r.duringRead = nil
		hook()
	}
	return &snapshot, nil
}

func newRedisCache(t *testing.T) *cache.Cache {
	t.Helper()
	mr := miniredis.RunT(t)
	c, err := cache.InitServer(context.Background(), config.RedisConnection{AddressRedis: mr.Addr()})
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestService_GetDoesNotCacheRowChangedDuringRead(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)
	repo := &interleavingRepo{account: models.Account{Email: "a@x.io", Role: models.RoleUser}}
	s := New(repo, newRedisCache(t), 30*time.Second, newNoopLogger())

	expiry := now.Add(5 * 24 * time.Hour)
	repo.duringRead = func() {
		repo.account.SubscriptionExpiry = &expiry
		repo.account.Amount = 5
		s.Invalidate(ctx, "a@x.io")
	}

	first, err := s.Get(ctx, "a@x.io")
	require.NoError(t, err)
	assert.False(t, first.HasActiveSubscription(now))

	second, err := s.Get(ctx, "a@x.io")
	require.NoError(t, err)
	assert.True(t, second.HasActiveSubscription(now))
	assert.Equal(t, 5.0, second.Amount)
}

func TestService_GetCachesAfterQuietRead(t *testing.T) {
	ctx := context.Background()
	repo := &interleavingRepo{account: models.Account{Email: "a@x.io", Role: models.RoleAdmin}}
	s := New(repo, newRedisCache(t), 30*time.Second, newNoopLogger())

	_, err := s.Get(ctx, "a@x.io")
	require.NoError(t, err)

	// Изменение без инвалидации не видно, пока запись живёт в кеше.
	repo.account.Role = models.RoleUser
	got, err := s.Get(ctx, "a@x.io")
	require.NoError(t, err)
	assert.True(t, got.IsAdmin())

	s.Invalidate(ctx, "a@x.io")
	got, err = s.Get(ctx, "a@x.io")
	require.NoError(t, err)
	assert.False(t, got.IsAdmin())
}
