// Package access принимает решения о доступе: администратор, действующий премиум
// и доступ только к собственной учётной записи. Проверки ничего не изменяют.
package access

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/magabrotheeeer/daily-lens/internal/models"
)

// AccountGetter источник учётных записей.
type AccountGetter interface {
	Get(ctx context.Context, email string) (*models.Account, error)
}

// Checker проверяет права пользователя по его учётной записи.
type Checker struct {
	accounts AccountGetter
	now      func() time.Time
}

// NewChecker создаёт Checker. Если now равен nil, используется time.Now.
func NewChecker(accounts AccountGetter, now func() time.Time) *Checker {
	if now == nil {
		now = time.Now
	}
	return &Checker{accounts: accounts, now: now}
}

// Admin пропускает только администраторов. Отсутствующая учётная запись тоже Forbidden.
func (c *Checker) Admin(ctx context.Context, identity models.Identity) error {
	const op = "access.Admin"
	account, err := c.accounts.Get(ctx, identity.Email)
	if errors.Is(err, models.ErrNotFound) {
		return fmt.Errorf("%s: %w", op, models.ErrForbidden)
	}
	if err != nil {
		return err
	}
	if !account.IsAdmin() {
		return fmt.Errorf("%s: %w", op, models.ErrForbidden)
	}
	return nil
}

// ActivePremium пропускает пользователей, чья подписка истекает строго позже текущего момента.
// Истёкшая, но ещё не сброшенная очисткой подписка доступа не даёт.
func (c *Checker) ActivePremium(ctx context.Context, identity models.Identity) error {
	const op = "access.ActivePremium"
	account, err := c.accounts.Get(ctx, identity.Email)
	if err != nil {
		return err
	}
	if !account.HasActiveSubscription(c.now()) {
		return fmt.Errorf("%s: %w", op, models.ErrForbidden)
	}
	return nil
}

// Self разрешает обращение только к собственной учётной записи.
func Self(identity models.Identity, email string) error {
	if identity.Email == "" || models.NormalizeEmail(identity.Email) != models.NormalizeEmail(email) {
		return fmt.Errorf("access.Self: %w", models.ErrForbidden)
	}
	return nil
}
