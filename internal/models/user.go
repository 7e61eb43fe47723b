// Package models содержит доменные структуры сервиса: учётную запись пользователя
// с её правами (роль и срок подписки), тарифные планы, статьи и издателей,
// а также общий набор ошибок, которыми обмениваются слои приложения.
package models

import (
	"strings"
	"time"
)

// Role роль пользователя в системе.
type Role string

const (
	// RoleUser обычный пользователь.
	RoleUser Role = "user"
	// RoleAdmin администратор, модерирует статьи и управляет пользователями.
	RoleAdmin Role = "admin"
)

// Account представляет учётную запись пользователя.
//
// Роль и срок подписки независимы: администратор тоже может иметь премиум.
type Account struct {
	UID                string     `json:"uid"`                           // Уникальный идентификатор
	Email              string     `json:"email"`                         // Электронная почта (уникальная)
	Name               string     `json:"name,omitempty"`                // Отображаемое имя
	PhotoURL           string     `json:"photo_url,omitempty"`           // Ссылка на аватар
	Role               Role       `json:"role"`                          // user или admin
	SubscriptionExpiry *time.Time `json:"subscription_expiry,omitempty"` // nil, если подписки нет
	Amount             float64    `json:"amount"`                        // Сумма последней оплаты
	CreatedAt          time.Time  `json:"created_at"`
}

// IsAdmin сообщает, является ли пользователь администратором.
func (a *Account) IsAdmin() bool {
	return a.Role == RoleAdmin
}

// HasActiveSubscription сообщает, действует ли подписка в момент now.
// Подписка, истекающая ровно в now, считается истёкшей.
func (a *Account) HasActiveSubscription(now time.Time) bool {
	return a.SubscriptionExpiry != nil && a.SubscriptionExpiry.After(now)
}

// DummyAccount используется для приёма данных из JSON-запроса при первом входе пользователя.
type DummyAccount struct {
	Email    string `json:"email" validate:"required,email"`
	Name     string `json:"name" validate:"omitempty,max=100"`
	PhotoURL string `json:"photo" validate:"omitempty,url"`
}

// NormalizeEmail приводит email к виду, в котором он хранится и сравнивается.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Identity данные пользователя, извлечённые из проверенного токена.
type Identity struct {
	Email string `json:"email"`
}
