// Package middlewarectx содержит HTTP middleware: проверку JWT, цепочку проверок доступа,
// ограничение частоты запросов.
//
// JWTMiddleware проверяет наличие и валидность JWT токена в заголовке Authorization
// и в случае успеха добавляет в контекст данные пользователя для дальнейшего
// использования в проверках доступа и обработчиках.
package middlewarectx

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/daily-lens/internal/http/response"
	"github.com/magabrotheeeer/daily-lens/internal/lib/sl"
	"github.com/magabrotheeeer/daily-lens/internal/models"
)

// TokenParser проверяет токен и возвращает данные пользователя.
type TokenParser interface {
	ParseToken(tokenString string) (*models.Identity, error)
}

// JWTMiddleware возвращает HTTP middleware, который проверяет JWT в заголовке Authorization.
//
// Без заголовка возвращает 401 с ErrUnauthorized, с негодным или истёкшим токеном
// 401 с ErrInvalidToken или ErrExpiredToken соответственно.
func JWTMiddleware(parser TokenParser, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.JWTMiddleware"
			log := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			authHeader := r.Header.Get("Authorization")
			if !strings.HasPrefix(authHeader, "Bearer ") {
				log.Warn("missing or invalid authorization header")
				response.RenderError(w, r, models.ErrUnauthorized)
				return
			}
			tokenStr := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
			if tokenStr == "" {
				log.Warn("empty bearer token")
				response.RenderError(w, r, models.ErrUnauthorized)
				return
			}

			identity, err := parser.ParseToken(tokenStr)
			if err != nil {
				log.Warn("token rejected", sl.Err(err))
				response.RenderError(w, r, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), *identity)))
		})
	}
}
