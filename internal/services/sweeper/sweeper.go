// Package sweeper периодически сбрасывает истёкшие подписки.
package sweeper

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/magabrotheeeer/daily-lens/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/daily-lens/internal/lib/sl"
	"github.com/magabrotheeeer/daily-lens/internal/metrics"
	"github.com/magabrotheeeer/daily-lens/internal/models"
)

const (
	DefaultInterval = time.Minute
	DefaultTimeout  = 30 * time.Second
)

// Store массовый сброс истёкших подписок.
type Store interface {
	ResetExpiredSubscriptions(ctx context.Context, now time.Time) ([]string, error)
}

// Invalidator сбрасывает закешированные учётные записи.
type Invalidator interface {
	Invalidate(ctx context.Context, emails ...string)
}

// Options настройки очистки.
type Options struct {
	Interval time.Duration
	Timeout  time.Duration
	Now      func() time.Time
}

// Sweeper сбрасывает срок и сумму у всех подписок, истёкших к моменту прохода.
type Sweeper struct {
	store     Store
	accounts  Invalidator
	publisher rabbitmq.Publisher
	metrics   *metrics.Metrics
	log       *slog.Logger

	interval time.Duration
	timeout  time.Duration
	now      func() time.Time

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// New создаёт Sweeper. Нулевые значения Options заменяются значениями по умолчанию.
func New(store Store, accounts Invalidator, publisher rabbitmq.Publisher, m *metrics.Metrics, log *slog.Logger, opts Options) *Sweeper {
	if opts.Interval <= 0 {
		opts.Interval = DefaultInterval
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Sweeper{
		store:     store,
		accounts:  accounts,
		publisher: publisher,
		metrics:   m,
		log:       log.With(slog.String("component", "sweeper")),
		interval:  opts.Interval,
		timeout:   opts.Timeout,
		now:       opts.Now,
	}
}

// Sweep выполняет один проход и возвращает число сброшенных подписок.
// Повторный проход без новых истечений ничего не меняет.
func (s *Sweeper) Sweep(ctx context.Context) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	now := s.now()
	emails, err := s.store.ResetExpiredSubscriptions(ctx, now)
	s.metrics.ObserveSweep(len(emails), err)
	if err != nil {
		return 0, err
	}
	if len(emails) == 0 {
		return 0, nil
	}

	s.accounts.Invalidate(ctx, emails...)
	for _, email := range emails {
		event := models.EntitlementEvent{Email: email, OccurredAt: now}
		if err := s.publisher.Publish(ctx, rabbitmq.RoutingExpired, event); err != nil {
			s.log.Error("failed to publish expiration event", slog.String("email", email), sl.Err(err))
		}
	}
	s.log.Info("expired subscriptions reset", slog.Int("count", len(emails)))
	return len(emails), nil
}

// Run сразу выполняет проход, затем повторяет его с заданным интервалом до отмены ctx.
// Ошибки прохода логируются, следующий проход повторяет попытку.
func (s *Sweeper) Run(ctx context.Context) {
	s.log.Info("sweeper started", slog.Duration("interval", s.interval))
	s.runOnce(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			s.log.Info("sweeper stopped")
			return
		case <-ticker.C:
			s.runOnce(ctx)
		}
	}
}

func (s *Sweeper) runOnce(ctx context.Context) {
	if _, err := s.Sweep(ctx); err != nil {
		s.log.Error("sweep failed", sl.Err(err))
	}
}

// Start запускает Run в отдельной горутине. Повторный вызов без Stop ничего не делает.
func (s *Sweeper) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		return
	}
	ctx, s.cancel = context.WithCancel(ctx)
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.Run(ctx)
	}()
}

// Stop останавливает запущенный Start и дожидается завершения текущего прохода.
func (s *Sweeper) Stop() {
	s.mu.Lock()
	cancel := s.cancel
	s.cancel = nil
	s.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	s.wg.Wait()
}
