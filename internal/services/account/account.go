// Package account читает и изменяет учётные записи пользователей.
// Чтения идут через кеш с коротким временем жизни, любые изменения прав
// сбрасывают закешированную запись.
package account

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/daily-lens/internal/lib/sl"
	"github.com/magabrotheeeer/daily-lens/internal/models"
	"github.com/magabrotheeeer/daily-lens/internal/storage/cache"
)

// Repository методы хранилища для работы с учётными записями.
type Repository interface {
	CreateAccount(ctx context.Context, account models.Account) (bool, error)
	GetAccountByEmail(ctx context.Context, email string) (*models.Account, error)
	ListAccounts(ctx context.Context, limit, offset int) ([]*models.Account, error)
	SetRole(ctx context.Context, email string, role models.Role) (int64, error)
}

// Cache описывает методы для кэширования данных. Запись условная: SetIfVersion
// ничего не пишет, если между Version и записью ключ был инвалидирован.
type Cache interface {
	Get(ctx context.Context, key string, result any) (bool, error)
	Version(ctx context.Context, key string) (int64, error)
	SetIfVersion(ctx context.Context, key string, value any, expiration time.Duration, version int64) (bool, error)
	Invalidate(ctx context.Context, keys ...string) error
}

// Service работает с учётными записями поверх хранилища и кеша.
type Service struct {
	repo  Repository
	cache Cache
	ttl   time.Duration
	log   *slog.Logger
}

// New создаёт Service. cache может быть nil, тогда все чтения идут в хранилище.
func New(repo Repository, cache Cache, ttl time.Duration, log *slog.Logger) *Service {
	return &Service{
		repo:  repo,
		cache: cache,
		ttl:   ttl,
		log:   log,
	}
}

// Get возвращает учётную запись по email, сначала заглядывая в кеш.
// Запись, прочитанная из хранилища, кешируется только если ключ не инвалидировали,
// пока шло чтение.
func (s *Service) Get(ctx context.Context, email string) (*models.Account, error) {
	email = models.NormalizeEmail(email)
	key := cache.AccountKey(email)
	cacheable := s.cache != nil
	var version int64
	if cacheable {
		var cached models.Account
		found, err := s.cache.Get(ctx, key, &cached)
		if err != nil {
			s.log.Warn("failed to read account from cache", slog.String("key", key), sl.Err(err))
		}
		if found {
			return &cached, nil
		}
		version, err = s.cache.Version(ctx, key)
		if err != nil {
			s.log.Warn("failed to read cache version", slog.String("key", key), sl.Err(err))
			cacheable = false
		}
	}

	account, err := s.repo.GetAccountByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	if cacheable {
		stored, err := s.cache.SetIfVersion(ctx, key, account, s.ttl, version)
		switch {
		case err != nil:
			s.log.Warn("failed to cache account", slog.String("key", key), sl.Err(err))
		case !stored:
			s.log.Debug("account changed while reading, not cached", slog.String("key", key))
		}
	}
	return account, nil
}

// Create регистрирует пользователя при первом входе. Повторный вызов с тем же email
// в любом регистре ничего не меняет и возвращает false.
func (s *Service) Create(ctx context.Context, req models.DummyAccount) (bool, error) {
	email := models.NormalizeEmail(req.Email)
	created, err := s.repo.CreateAccount(ctx, models.Account{
		Email:    email,
		Name:     req.Name,
		PhotoURL: req.PhotoURL,
		Role:     models.RoleUser,
	})
	if err != nil {
		return false, err
	}
	if created {
		s.log.Info("created new account", slog.String("email", email))
		s.Invalidate(ctx, email)
	}
	return created, nil
}

// List возвращает учётные записи с пагинацией, минуя кеш.
func (s *Service) List(ctx context.Context, limit, offset int) ([]*models.Account, error) {
	return s.repo.ListAccounts(ctx, limit, offset)
}

// PromoteToAdmin назначает пользователю роль администратора.
func (s *Service) PromoteToAdmin(ctx context.Context, email string) error {
	const op = "account.PromoteToAdmin"
	n, err := s.repo.SetRole(ctx, email, models.RoleAdmin)
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", op, models.ErrNotFound)
	}
	s.Invalidate(ctx, email)
	s.log.Info("account promoted to admin", slog.String("email", email))
	return nil
}

// Invalidate сбрасывает закешированные записи. Ошибки кеша только логируются:
// запись всё равно истечёт по TTL.
func (s *Service) Invalidate(ctx context.Context, emails ...string) {
	if s.cache == nil || len(emails) == 0 {
		return
	}
	keys := make([]string, 0, len(emails))
	for _, email := range emails {
		keys = append(keys, cache.AccountKey(email))
	}
	if err := s.cache.Invalidate(ctx, keys...); err != nil {
		s.log.Warn("failed to invalidate accounts in cache", slog.Int("count", len(keys)), sl.Err(err))
	}
}
