package middlewarectx

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/daily-lens/internal/http/handlers/params"
	"github.com/magabrotheeeer/daily-lens/internal/http/response"
	"github.com/magabrotheeeer/daily-lens/internal/lib/sl"
	"github.com/magabrotheeeer/daily-lens/internal/metrics"
	"github.com/magabrotheeeer/daily-lens/internal/models"
	"github.com/magabrotheeeer/daily-lens/internal/services/access"
)

// Guard проверка доступа для аутентифицированного пользователя. nil означает разрешение.
type Guard func(r *http.Request, identity models.Identity) error

// Checker проверки, требующие учётной записи пользователя.
type Checker interface {
	Admin(ctx context.Context, identity models.Identity) error
	ActivePremium(ctx context.Context, identity models.Identity) error
}

// Admin пропускает только администраторов.
func Admin(c Checker) Guard {
	return func(r *http.Request, identity models.Identity) error {
		return c.Admin(r.Context(), identity)
	}
}

// ActivePremium пропускает только пользователей с действующей подпиской.
func ActivePremium(c Checker) Guard {
	return func(r *http.Request, identity models.Identity) error {
		return c.ActivePremium(r.Context(), identity)
	}
}

// Self пропускает, только если параметр маршрута param совпадает с email пользователя.
func Self(param string) Guard {
	return func(r *http.Request, identity models.Identity) error {
		email, err := params.Email(r, param)
		if err != nil {
			return err
		}
		return access.Self(identity, email)
	}
}

// Require выполняет проверки по порядку и останавливается на первой неудачной.
// Должен стоять после JWTMiddleware.
func Require(log *slog.Logger, m *metrics.Metrics, guards ...Guard) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.Require"
			log := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			identity, ok := IdentityFromContext(r.Context())
			if !ok {
				log.Error("identity missing in context")
				m.ObserveDenial(response.RenderError(w, r, models.ErrUnauthorized))
				return
			}

			for _, guard := range guards {
				if err := guard(r, identity); err != nil {
					log.Warn("access denied", slog.String("email", identity.Email), sl.Err(err))
					m.ObserveDenial(response.RenderError(w, r, err))
					return
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}
