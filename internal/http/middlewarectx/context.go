package middlewarectx

import (
	"context"

	"github.com/magabrotheeeer/daily-lens/internal/models"
)

// Key тип для ключей контекста HTTP-запроса.
type Key string

// identityKey ключ для данных пользователя из проверенного токена.
const identityKey Key = "identity"

// WithIdentity кладёт данные пользователя в контекст.
func WithIdentity(ctx context.Context, identity models.Identity) context.Context {
	return context.WithValue(ctx, identityKey, identity)
}

// IdentityFromContext достаёт данные пользователя из контекста.
func IdentityFromContext(ctx context.Context) (models.Identity, bool) {
	identity, ok := ctx.Value(identityKey).(models.Identity)
	if !ok || identity.Email == "" {
		return models.Identity{}, false
	}
	return identity, true
}
