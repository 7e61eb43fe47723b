// Package subscription выдаёт премиум-подписку после оплаты: вычисляет срок
// действия по тарифу и записывает его в учётную запись.
package subscription

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/daily-lens/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/daily-lens/internal/lib/sl"
	"github.com/magabrotheeeer/daily-lens/internal/metrics"
	"github.com/magabrotheeeer/daily-lens/internal/models"
)

// Store запись срока подписки в хранилище.
type Store interface {
	GrantSubscription(ctx context.Context, email string, amount float64, expiry time.Time) (int64, error)
}

// Invalidator сбрасывает закешированные учётные записи.
type Invalidator interface {
	Invalidate(ctx context.Context, emails ...string)
}

// ComputeExpiry возвращает момент окончания подписки по тарифу, купленной в момент now.
func ComputeExpiry(period string, now time.Time) (time.Time, error) {
	plan, ok := models.LookupPlan(period)
	if !ok {
		return time.Time{}, fmt.Errorf("subscription.ComputeExpiry: %q: %w", period, models.ErrRejectedPlan)
	}
	return now.Add(plan.Duration), nil
}

// GrantResult итог выдачи подписки.
type GrantResult struct {
	// Updated false, если пользователь с таким email не найден.
	Updated bool
	Expiry  time.Time
}

// Service выдаёт подписки.
type Service struct {
	store     Store
	accounts  Invalidator
	publisher rabbitmq.Publisher
	metrics   *metrics.Metrics
	now       func() time.Time
	log       *slog.Logger
}

// New создаёт Service. Если now равен nil, используется time.Now.
func New(store Store, accounts Invalidator, publisher rabbitmq.Publisher, m *metrics.Metrics, now func() time.Time, log *slog.Logger) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{
		store:     store,
		accounts:  accounts,
		publisher: publisher,
		metrics:   m,
		now:       now,
		log:       log,
	}
}

// Grant записывает оплаченную сумму и новый срок подписки пользователю email.
// Неизвестный тариф отклоняется до обращения к хранилищу. Новый срок отсчитывается
// от текущего момента и заменяет прежний.
func (s *Service) Grant(ctx context.Context, email, period string, price float64) (GrantResult, error) {
	expiry, err := ComputeExpiry(period, s.now())
	if err != nil {
		s.metrics.ObserveGrant(period, err)
		return GrantResult{}, err
	}

	n, err := s.store.GrantSubscription(ctx, email, price, expiry)
	s.metrics.ObserveGrant(period, err)
	if err != nil {
		return GrantResult{}, err
	}
	if n == 0 {
		s.log.Info("nothing to update", slog.String("email", email))
		return GrantResult{Updated: false}, nil
	}

	s.accounts.Invalidate(ctx, email)
	s.log.Info("subscription granted",
		slog.String("email", email),
		slog.String("period", period),
		slog.Time("expiry", expiry),
	)

	event := models.EntitlementEvent{
		Email:      email,
		Period:     period,
		Amount:     price,
		Expiry:     &expiry,
		OccurredAt: s.now(),
	}
	if err := s.publisher.Publish(ctx, rabbitmq.RoutingGranted, event); err != nil {
		s.log.Error("failed to publish grant event", slog.String("email", email), sl.Err(err))
	}

	return GrantResult{Updated: true, Expiry: expiry}, nil
}
