// Package payment переводит цену тарифа в минимальные единицы валюты
// и запрашивает у провайдера PaymentIntent.
package payment

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/daily-lens/internal/lib/sl"
	"github.com/magabrotheeeer/daily-lens/internal/metrics"
	"github.com/magabrotheeeer/daily-lens/internal/models"
)

// Provider платёжный провайдер.
type Provider interface {
	CreatePaymentIntent(ctx context.Context, amount int64, currency string) (string, error)
}

// ToMinorUnits переводит сумму в основных единицах в минимальные: умножение на 100
// с отбрасыванием дробной части.
func ToMinorUnits(price float64) int64 {
	return int64(price * 100)
}

// Service создаёт платёжные намерения.
type Service struct {
	provider Provider
	currency string
	timeout  time.Duration
	metrics  *metrics.Metrics
	log      *slog.Logger
}

// New создаёт Service.
func New(provider Provider, currency string, timeout time.Duration, m *metrics.Metrics, log *slog.Logger) *Service {
	return &Service{
		provider: provider,
		currency: currency,
		timeout:  timeout,
		metrics:  m,
		log:      log,
	}
}

// CreateIntent запрашивает PaymentIntent на сумму price и возвращает client secret.
// Ошибка провайдера не повторяется.
func (s *Service) CreateIntent(ctx context.Context, price float64) (string, error) {
	const op = "payment.CreateIntent"

	amount := ToMinorUnits(price)
	if amount <= 0 {
		return "", fmt.Errorf("%s: non-positive amount: %w", op, models.ErrBadRequest)
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	secret, err := s.provider.CreatePaymentIntent(ctx, amount, s.currency)
	s.metrics.ObservePaymentIntent(err)
	if err != nil {
		s.log.Error("failed to create payment intent", slog.Int64("amount", amount), sl.Err(err))
		return "", fmt.Errorf("%s: %w: %w", op, models.ErrPaymentProvider, err)
	}
	return secret, nil
}
