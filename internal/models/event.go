package models

import "time"

// EntitlementEvent событие об изменении прав пользователя, публикуемое в брокер.
type EntitlementEvent struct {
	Email      string     `json:"email"`
	Period     string     `json:"period,omitempty"`
	Amount     float64    `json:"amount"`
	Expiry     *time.Time `json:"subscription_expiry,omitempty"`
	OccurredAt time.Time  `json:"occurred_at"`
}
