package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/daily-lens/internal/models"
)

const accountColumns = `uid, email, name, photo_url, role, subscription_expiry, amount, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAccount(row rowScanner) (*models.Account, error) {
	var a models.Account
	var role string
	var expiry sql.NullTime
	if err := row.Scan(&a.UID, &a.Email, &a.Name, &a.PhotoURL, &role, &expiry, &a.Amount, &a.CreatedAt); err != nil {
		return nil, err
	}
	a.Role = models.Role(role)
	if expiry.Valid {
		t := expiry.Time
		a.SubscriptionExpiry = &t
	}
	return &a, nil
}

// CreateAccount добавляет учётную запись, если пользователя с таким email ещё нет.
// Возвращает false без ошибки, если запись уже существует.
func (s *Storage) CreateAccount(ctx context.Context, account models.Account) (bool, error) {
	const op = "storage.CreateAccount"
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	if account.UID == "" {
		account.UID = uuid.New().String()
	}
	if account.Role == "" {
		account.Role = models.RoleUser
	}

	query := `INSERT INTO users (uid, email, name, photo_url, role)
			  VALUES ($1, $2, $3, $4, $5)
			  ON CONFLICT (email) DO NOTHING`
	res, err := s.DB.ExecContext(ctx, query,
		account.UID, account.Email, account.Name, account.PhotoURL, string(account.Role))
	if err != nil {
		return false, wrapErr(op, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, wrapErr(op, err)
	}
	return n == 1, nil
}

// GetAccountByEmail возвращает учётную запись по email.
func (s *Storage) GetAccountByEmail(ctx context.Context, email string) (*models.Account, error) {
	const op = "storage.GetAccountByEmail"
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	query := `SELECT ` + accountColumns + `
			  FROM users
			  WHERE email = $1`
	a, err := scanAccount(s.DB.QueryRowContext(ctx, query, email))
	if err != nil {
		return nil, wrapErr(op, err)
	}
	return a, nil
}

// ListAccounts возвращает учётные записи с пагинацией.
func (s *Storage) ListAccounts(ctx context.Context, limit, offset int) ([]*models.Account, error) {
	const op = "storage.ListAccounts"
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	query := `SELECT ` + accountColumns + `
			  FROM users
			  ORDER BY created_at, email
			  LIMIT $1 OFFSET $2`
	rows, err := s.DB.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, wrapErr(op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	result := make([]*models.Account, 0, limit)
	for rows.Next() {
		a, err := scanAccount(rows)
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

// SetRole меняет роль пользователя. Возвращает количество изменённых записей.
func (s *Storage) SetRole(ctx context.Context, email string, role models.Role) (int64, error) {
	const op = "storage.SetRole"
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	res, err := s.DB.ExecContext(ctx, `UPDATE users SET role = $1 WHERE email = $2`, string(role), email)
	if err != nil {
		return 0, wrapErr(op, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, wrapErr(op, err)
	}
	return n, nil
}

// GrantSubscription записывает сумму оплаты и новый срок подписки.
// Отсутствие пользователя не ошибка: вернётся 0 изменённых записей.
func (s *Storage) GrantSubscription(ctx context.Context, email string, amount float64, expiry time.Time) (int64, error) {
	const op = "storage.GrantSubscription"
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	query := `UPDATE users
			  SET amount = $1,
			      subscription_expiry = $2
			  WHERE email = $3`
	res, err := s.DB.ExecContext(ctx, query, amount, expiry, email)
	if err != nil {
		return 0, wrapErr(op, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, wrapErr(op, err)
	}
	return n, nil
}

// ResetExpiredSubscriptions одним запросом сбрасывает все подписки,
// срок которых наступил к моменту now, и возвращает email затронутых пользователей.
func (s *Storage) ResetExpiredSubscriptions(ctx context.Context, now time.Time) ([]string, error) {
	const op = "storage.ResetExpiredSubscriptions"
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	query := `UPDATE users
			  SET subscription_expiry = NULL,
			      amount = 0
			  WHERE subscription_expiry IS NOT NULL
			    AND subscription_expiry <= $1
			  RETURNING email`
	rows, err := s.DB.QueryContext(ctx, query, now)
	if err != nil {
		return nil, wrapErr(op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var emails []string
	for rows.Next() {
		var email string
		if err := rows.Scan(&email); err != nil {
			return nil, wrapErr(op, err)
		}
		emails = append(emails, email)
	}
	if err = rows.Err(); err != nil {
		return nil, wrapErr(op, err)
	}
	return emails, nil
}
